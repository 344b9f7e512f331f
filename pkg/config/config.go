package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty: every variable carries the explicit ESHOP_ prefix in
// its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ESHOP_DB_DSN"
	EnvDBHost = "ESHOP_DB_HOST"
	EnvDBUser = "ESHOP_DB_USER"
	EnvDBName = "ESHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Reports      ReportsConfig
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
	Env          string `envconfig:"ESHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"ESHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ESHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESHOP_DB_DSN"`
	Driver string `envconfig:"ESHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"ESHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESHOP_DB_USER"`
	LegacyPassword string `envconfig:"ESHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ESHOP_REDIS_URL"`
	Address      string        `envconfig:"ESHOP_REDIS_ADDR"`
	Password     string        `envconfig:"ESHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type ReportsConfig struct {
	CacheTTL time.Duration `envconfig:"ESHOP_REPORT_CACHE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESHOP_AUTO_MIGRATE" default:"false"`
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
