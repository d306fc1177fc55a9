package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
)

type RestfulServer struct {
	Server           *gin.Engine
	PlantMap         *plantmap.PlantMap
	RateLimiterStore *plantmap.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	devicePlant := rs.Server.Group("/device-plant")
	{
		devicePlant.POST("/associate", rs.PostAssociate)
		devicePlant.GET("/active/:device_id", rs.GetActive)
		devicePlant.GET("/associations/:device_id", rs.GetAssociations)
		devicePlant.POST("/close/:device_id", rs.CloseAssociation)
	}

	rs.Server.GET("/api/plants/map", rs.GetPlantsMap)
	rs.Server.POST("/devices/:device_id/limiter", rs.PostLimiter)
}
