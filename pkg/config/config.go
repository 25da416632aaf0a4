package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "NOURFASHION"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv     = "NOURFASHION_APP_ENV"
	EnvPort       = "NOURFASHION_APP_PORT"
	EnvDBDSN      = "NOURFASHION_DB_DSN"
	EnvDBHost     = "NOURFASHION_DB_HOST"
	EnvDBUser     = "NOURFASHION_DB_USER"
	EnvDBName     = "NOURFASHION_DB_NAME"
	EnvRedisURL   = "NOURFASHION_REDIS_URL"
	EnvJWTSecret  = "NOURFASHION_JWT_SECRET"
	EnvJWTIssuer  = "NOURFASHION_JWT_ISSUER"
	EnvJWTExpMins = "NOURFASHION_JWT_EXPIRATION_MINUTES"
	EnvAdminEmail = "NOURFASHION_ADMIN_EMAIL"
	EnvAdminHash  = "NOURFASHION_ADMIN_PASSWORD_HASH"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Password     PasswordConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NOURFASHION_APP_ENV" required:"true"`
	Port         string `envconfig:"NOURFASHION_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NOURFASHION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NOURFASHION_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NOURFASHION_DB_DSN"`
	Driver string `envconfig:"NOURFASHION_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NOURFASHION_DB_HOST"`
	LegacyPort     int    `envconfig:"NOURFASHION_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NOURFASHION_DB_USER"`
	LegacyPassword string `envconfig:"NOURFASHION_DB_PASSWORD"`
	LegacyName     string `envconfig:"NOURFASHION_DB_NAME"`
	LegacySSLMode  string `envconfig:"NOURFASHION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NOURFASHION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NOURFASHION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NOURFASHION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NOURFASHION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NOURFASHION_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NOURFASHION_REDIS_ADDR"`
	Password     string        `envconfig:"NOURFASHION_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOURFASHION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOURFASHION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOURFASHION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOURFASHION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOURFASHION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOURFASHION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NOURFASHION_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NOURFASHION_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"NOURFASHION_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// AdminConfig holds the single administrator credential for the storefront.
type AdminConfig struct {
	Email        string `envconfig:"NOURFASHION_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"NOURFASHION_ADMIN_PASSWORD_HASH" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NOURFASHION_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NOURFASHION_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NOURFASHION_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NOURFASHION_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NOURFASHION_ARGON_KEY_LEN" default:"32"`
}

// CartConfig tunes the session cart snapshots kept in Redis.
type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"NOURFASHION_CART_SNAPSHOT_TTL" default:"720h"`
}

type CatalogConfig struct {
	DefaultPageSize int `envconfig:"NOURFASHION_CATALOG_DEFAULT_PAGE_SIZE" default:"12"`
	MaxPageSize     int `envconfig:"NOURFASHION_CATALOG_MAX_PAGE_SIZE" default:"100"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NOURFASHION_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
