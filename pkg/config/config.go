package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Catalog      CatalogConfig
	Storefront   StorefrontConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// A seeded catalog runs without a database.
	if !cfg.Catalog.UsesSeed() {
		if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
			return nil, err
		}
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	if cfg.Session.UsesRedis() && !cfg.Redis.Enabled() {
		return nil, fmt.Errorf("%s=%s requires %s or VENDO_REDIS_ADDR", EnvSessionStore, SessionStoreRedis, EnvRedisURL)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDO_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VENDO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VENDO_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VENDO_DB_DSN"`
	Driver string `envconfig:"VENDO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"VENDO_DB_HOST"`
	Port     int    `envconfig:"VENDO_DB_PORT" default:"5432"`
	User     string `envconfig:"VENDO_DB_USER"`
	Password string `envconfig:"VENDO_DB_PASSWORD"`
	Name     string `envconfig:"VENDO_DB_NAME"`
	SSLMode  string `envconfig:"VENDO_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"VENDO_DB_SQLITE_PATH" default:"file:vendo.db?cache=shared"`

	MaxOpenConns    int           `envconfig:"VENDO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector should be used.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDO_REDIS_URL"`
	Address      string        `envconfig:"VENDO_REDIS_ADDR"`
	Password     string        `envconfig:"VENDO_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	Store string        `envconfig:"VENDO_SESSION_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"VENDO_SESSION_TTL" default:"24h"`
}

// UsesRedis reports whether carts are kept in redis instead of process memory.
func (s SessionConfig) UsesRedis() bool {
	return strings.EqualFold(s.Store, SessionStoreRedis)
}

func (s SessionConfig) validate() error {
	switch strings.ToLower(s.Store) {
	case SessionStoreMemory, SessionStoreRedis:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q", EnvSessionStore, SessionStoreMemory, SessionStoreRedis)
}

type CatalogConfig struct {
	RefreshInterval time.Duration `envconfig:"VENDO_CATALOG_REFRESH_INTERVAL" default:"5m"`
	SeedPath        string        `envconfig:"VENDO_CATALOG_SEED_PATH"`
}

// UsesSeed reports whether the catalog is served from a YAML seed instead of the database.
func (c CatalogConfig) UsesSeed() bool {
	return c.SeedPath != ""
}

type StorefrontConfig struct {
	CurrencySymbol  string `envconfig:"VENDO_CURRENCY_SYMBOL" default:"₱"`
	DefaultCategory string `envconfig:"VENDO_DEFAULT_CATEGORY"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VENDO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VENDO_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VENDO_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DBDriverSQLite
	}
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
