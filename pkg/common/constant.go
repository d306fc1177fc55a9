package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyStoreType string = "PLANTMAP_STORE_TYPE"
	EnvKeyStorePath string = "PLANTMAP_STORE_PATH"

	EnvKeyHttpHostPort string = "PLANTMAP_HTTP_HOST_PORT"

	EnvKeyCacheTTLMs string = "PLANTMAP_CACHE_TTL_MS"

	EnvKeyDefaultRate  string = "PLANTMAP_DEFAULT_RATE"
	EnvKeyDefaultBurst string = "PLANTMAP_DEFAULT_BURST"

	DefaultCacheTTLMs int64  = 60000
	DefaultStorePath  string = "data/device-plant-mapping.json"

	LoggerNamePlantmapCore    string = "plantmap_core"
	LoggerNameRestfulServer   string = "restful_server"
	LoggerFieldCategory       string = "category"
	LoggerCategoryAssociation string = "association"
	LoggerCategoryCache       string = "cache"
	LoggerCategoryStore       string = "store"
)
