package config

// EnvPrefix is passed to envconfig; every field carries its full variable name.
const EnvPrefix = "VENDO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

const (
	EnvAppEnv       = "VENDO_APP_ENV"
	EnvPort         = "VENDO_APP_PORT"
	EnvLogLevel     = "VENDO_LOG_LEVEL"
	EnvDBDSN        = "VENDO_DB_DSN"
	EnvDBDriver     = "VENDO_DB_DRIVER"
	EnvDBHost       = "VENDO_DB_HOST"
	EnvDBUser       = "VENDO_DB_USER"
	EnvDBName       = "VENDO_DB_NAME"
	EnvDBPassword   = "VENDO_DB_PASSWORD"
	EnvUseSQLite    = "VENDO_USE_SQLITE"
	EnvRedisURL     = "VENDO_REDIS_URL"
	EnvSessionStore = "VENDO_SESSION_STORE"
	EnvSessionTTL   = "VENDO_SESSION_TTL"
	EnvCatalogSeed  = "VENDO_CATALOG_SEED_PATH"
	EnvCatalogEvery = "VENDO_CATALOG_REFRESH_INTERVAL"
	EnvCurrency     = "VENDO_CURRENCY_SYMBOL"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
