package plantmap

import (
	"sync"
	"time"

	"molinolab.org/plant-mapping-service/pkg/models"
)

// StoreAdapter is the persistence contract: a snapshot is loaded and saved as
// a whole, never partially. Implementations live in pkg/store.
type StoreAdapter interface {
	Load() (*models.Snapshot, error)
	Save(snap *models.Snapshot) error
}

type CreateInput struct {
	DeviceID       string
	PlantName      string
	PlantSpecies   *string
	GPSLatitude    *float64
	GPSLongitude   *float64
	GPSAltitude    *float64
	AdditionalData map[string]any
	StartTime      *string
	EndTime        *string
}

type IAssociation interface {
	Create(input *CreateInput) (*models.Association, error)
	Close(deviceID string, endTime *string) (*models.Association, error)
	GetActive(deviceID string, at *string) (*models.Association, error)
	GetAll(deviceID string) ([]models.Association, error)
	GetMap(at *string) (map[string]models.Association, error)
}

// PlantMap composes the store, the read cache and the association service.
// Writes go straight to Store under writeMu; reads go through Cache.
type PlantMap struct {
	Store       StoreAdapter
	Cache       *ReadCache
	Association IAssociation

	// Clock is injectable for tests; nil means time.Now.
	Clock func() time.Time

	writeMu sync.Mutex
}

type ServiceOpts struct {
	Association IAssociation
}

func (p *PlantMap) WithServices(opts ServiceOpts) *PlantMap {
	if opts.Association != nil {
		p.Association = opts.Association
	}
	return p
}

func (p *PlantMap) now() string {
	if p.Clock != nil {
		return models.FormatTime(p.Clock())
	}
	return models.FormatTime(time.Now())
}
