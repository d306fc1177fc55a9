package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"molinolab.org/plant-mapping-service/pkg/common"
	plantmapHttp "molinolab.org/plant-mapping-service/pkg/http"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
	"molinolab.org/plant-mapping-service/pkg/store"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var adapter plantmap.StoreAdapter
	storeType := os.Getenv(common.EnvKeyStoreType)
	switch storeType {
	case "file":
		storePath := os.Getenv(common.EnvKeyStorePath)
		if storePath == "" {
			storePath = common.DefaultStorePath
		}
		adapter = store.NewFileAdapter(storePath)
	case "sqlite":
		adapter = store.GetSqliteInstance(store.UseSqliteDialector())
	case "memory":
		adapter = store.GetSqliteInstance(store.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown PLANTMAP_STORE_TYPE: " + storeType)
	}

	cacheTTLMs := common.DefaultCacheTTLMs
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyCacheTTLMs)); raw != "" {
		if cacheTTLMs, err = strconv.ParseInt(raw, 10, 64); err != nil {
			log.Fatal("Invalid PLANTMAP_CACHE_TTL_MS, should be an int value in milliseconds")
		}
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyDefaultRate), 64); err != nil {
		log.Fatal("Invalid PLANTMAP_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid PLANTMAP_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	pm := plantmap.PlantMap{
		Store: adapter,
		Cache: plantmap.NewReadCache(adapter, time.Duration(cacheTTLMs)*time.Millisecond, nil),
	}
	pm.WithServices(plantmap.ServiceOpts{
		Association: pm.GetIAssociation(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &plantmapHttp.RestfulServer{
		Server:           gin.Default(),
		PlantMap:         &pm,
		RateLimiterStore: plantmap.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)),
		zap.String("store_type", storeType),
		zap.Int64("cache_ttl_ms", cacheTTLMs))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
