package http

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, plantmap.ErrValidation), errors.Is(err, plantmap.ErrInvalidInterval):
		return http.StatusBadRequest
	case errors.Is(err, plantmap.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

// optional ?at= timestamp, for querying history instead of now
func atParam(c *gin.Context) *string {
	if v := c.Query("at"); v != "" {
		return &v
	}
	return nil
}

type AssociateRequest struct {
	DeviceID       string         `json:"device_id"`
	PlantName      string         `json:"plant_name"`
	PlantSpecies   *string        `json:"plant_species"`
	GPSLatitude    *float64       `json:"gps_latitude"`
	GPSLongitude   *float64       `json:"gps_longitude"`
	GPSAltitude    *float64       `json:"gps_altitude"`
	AdditionalData map[string]any `json:"additional_data"`
	StartTime      *string        `json:"start_time"`
	EndTime        *string        `json:"end_time"`
}

func (rs *RestfulServer) PostAssociate(c *gin.Context) {
	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !rs.CheckDeviceLimiter(req.DeviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	assoc, err := rs.PlantMap.Association.Create(&plantmap.CreateInput{
		DeviceID:       req.DeviceID,
		PlantName:      req.PlantName,
		PlantSpecies:   req.PlantSpecies,
		GPSLatitude:    req.GPSLatitude,
		GPSLongitude:   req.GPSLongitude,
		GPSAltitude:    req.GPSAltitude,
		AdditionalData: req.AdditionalData,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"association_id": assoc.ID,
		"message":        "association created",
		"association":    assoc,
	})
}

func (rs *RestfulServer) GetActive(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	assoc, err := rs.PlantMap.Association.GetActive(deviceID, atParam(c))
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, assoc)
}

func (rs *RestfulServer) GetAssociations(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	associations, err := rs.PlantMap.Association.GetAll(deviceID)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id":    deviceID,
		"count":        len(associations),
		"associations": associations,
	})
}

type CloseRequest struct {
	EndTime *string `json:"end_time"`
}

func (rs *RestfulServer) CloseAssociation(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	// body is optional: absent end_time means close at now
	var req CloseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	assoc, err := rs.PlantMap.Association.Close(deviceID, req.EndTime)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "association closed",
		"association": assoc,
	})
}

type PlantMapEntry struct {
	DeviceID      string   `json:"device_id"`
	AssociationID string   `json:"association_id"`
	PlantName     string   `json:"plant_name"`
	PlantSpecies  *string  `json:"plant_species"`
	GPSLatitude   *float64 `json:"gps_latitude"`
	GPSLongitude  *float64 `json:"gps_longitude"`
	GPSAltitude   *float64 `json:"gps_altitude"`
	StartTime     string   `json:"start_time"`
	EndTime       *string  `json:"end_time"`
}

func (rs *RestfulServer) GetPlantsMap(c *gin.Context) {
	active, err := rs.PlantMap.Association.GetMap(atParam(c))
	if err != nil {
		abortWith(c, err)
		return
	}

	entries := make([]models.Association, 0, len(active))
	for _, assoc := range active {
		entries = append(entries, assoc)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DeviceID < entries[j].DeviceID
	})

	plants := common.Mapper(entries, func(a models.Association) PlantMapEntry {
		return PlantMapEntry{
			DeviceID:      a.DeviceID,
			AssociationID: a.ID,
			PlantName:     a.PlantName,
			PlantSpecies:  a.PlantSpecies,
			GPSLatitude:   a.GPSLatitude,
			GPSLongitude:  a.GPSLongitude,
			GPSAltitude:   a.GPSAltitude,
			StartTime:     a.StartTime,
			EndTime:       a.EndTime,
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"plants": plants,
		"count":  len(plants),
	})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
