package plantmap

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
)

func validateCreateInput(input *CreateInput) error {
	if input.DeviceID == "" || input.PlantName == "" {
		return fmt.Errorf("%w: device_id and plant_name are required", ErrValidation)
	}
	if input.GPSLatitude != nil && (*input.GPSLatitude < -90 || *input.GPSLatitude > 90) {
		return fmt.Errorf("%w: gps_latitude must be between -90 and 90", ErrValidation)
	}
	if input.GPSLongitude != nil && (*input.GPSLongitude < -180 || *input.GPSLongitude > 180) {
		return fmt.Errorf("%w: gps_longitude must be between -180 and 180", ErrValidation)
	}
	if input.StartTime != nil && input.EndTime != nil && *input.EndTime <= *input.StartTime {
		return fmt.Errorf("%w: given start_time %s and end_time %s", ErrInvalidInterval, *input.StartTime, *input.EndTime)
	}
	return nil
}

func (p *PlantMap) create(input *CreateInput) (*models.Association, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePlantmapCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAssociation),
	)

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := p.now()

	startTime := now
	if input.StartTime != nil {
		startTime = *input.StartTime
	}
	if input.EndTime != nil && *input.EndTime <= startTime {
		return nil, fmt.Errorf("%w: end_time %s with start_time %s", ErrInvalidInterval, *input.EndTime, startTime)
	}

	additionalData := input.AdditionalData
	if additionalData == nil {
		additionalData = map[string]any{}
	}

	assoc := models.Association{
		ID:             "assoc_" + uuid.NewString(),
		DeviceID:       input.DeviceID,
		PlantName:      input.PlantName,
		PlantSpecies:   input.PlantSpecies,
		GPSLatitude:    input.GPSLatitude,
		GPSLongitude:   input.GPSLongitude,
		GPSAltitude:    input.GPSAltitude,
		AdditionalData: additionalData,
		StartTime:      startTime,
		EndTime:        input.EndTime,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	logger.Info("Creating association for device", zap.Reflect("association", assoc))

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	snap, err := p.Store.Load()
	if err != nil {
		return nil, err
	}

	if closed := Insert(snap, assoc, now); closed != nil {
		logger.Info("Auto-closed prior open association",
			zap.String("device_id", closed.DeviceID),
			zap.String("association_id", closed.ID),
			zap.Stringp("end_time", closed.EndTime))
	}

	if err := p.Store.Save(snap); err != nil {
		return nil, err
	}

	logger.Info("Created association for device", zap.Reflect("association", assoc))

	return &assoc, nil
}

func (p *PlantMap) closeAssociation(deviceID string, endTime *string) (*models.Association, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePlantmapCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAssociation),
	)

	if deviceID == "" {
		return nil, fmt.Errorf("%w: device_id is required", ErrValidation)
	}

	now := p.now()
	end := now
	if endTime != nil {
		end = *endTime
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	snap, err := p.Store.Load()
	if err != nil {
		return nil, err
	}

	var open []models.Association
	for _, a := range snap.Associations {
		if a.DeviceID == deviceID && a.Open() && a.StartTime <= end {
			open = append(open, a)
		}
	}
	target := latest(open)
	if target == nil {
		return nil, fmt.Errorf("%w: no open association for device %s", ErrNotFound, deviceID)
	}

	updated, err := CloseAssociation(snap, target.ID, end, now)
	if err != nil {
		return nil, err
	}

	if err := p.Store.Save(snap); err != nil {
		return nil, err
	}

	logger.Info("Closed association for device",
		zap.String("device_id", deviceID),
		zap.Reflect("association", *updated))

	return updated, nil
}

func (p *PlantMap) getActive(deviceID string, at *string) (*models.Association, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device_id is required", ErrValidation)
	}

	ts := p.now()
	if at != nil {
		ts = *at
	}

	snap, err := p.Cache.Get()
	if err != nil {
		return nil, err
	}

	active := ActiveAt(snap, deviceID, ts)
	if active == nil {
		return nil, fmt.Errorf("%w: no active association for device %s at %s", ErrNotFound, deviceID, ts)
	}
	return active, nil
}

func (p *PlantMap) getAll(deviceID string) ([]models.Association, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device_id is required", ErrValidation)
	}

	snap, err := p.Cache.Get()
	if err != nil {
		return nil, err
	}
	return AllFor(snap, deviceID), nil
}

func (p *PlantMap) getMap(at *string) (map[string]models.Association, error) {
	ts := p.now()
	if at != nil {
		ts = *at
	}

	snap, err := p.Cache.Get()
	if err != nil {
		return nil, err
	}
	return AllActiveWithLocation(snap, ts), nil
}

type IAssociationImpl struct {
	pm *PlantMap
}

func (ia *IAssociationImpl) Create(input *CreateInput) (*models.Association, error) {
	return ia.pm.create(input)
}

func (ia *IAssociationImpl) Close(deviceID string, endTime *string) (*models.Association, error) {
	return ia.pm.closeAssociation(deviceID, endTime)
}

func (ia *IAssociationImpl) GetActive(deviceID string, at *string) (*models.Association, error) {
	return ia.pm.getActive(deviceID, at)
}

func (ia *IAssociationImpl) GetAll(deviceID string) ([]models.Association, error) {
	return ia.pm.getAll(deviceID)
}

func (ia *IAssociationImpl) GetMap(at *string) (map[string]models.Association, error) {
	return ia.pm.getMap(at)
}

func (p *PlantMap) GetIAssociation() IAssociation {
	return &IAssociationImpl{pm: p}
}
