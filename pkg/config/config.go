package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "TECBUNNY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Tax          TaxConfig
	Coupons      CouponConfig
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
	Env          string `envconfig:"TECBUNNY_APP_ENV" required:"true"`
	Port         string `envconfig:"TECBUNNY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TECBUNNY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECBUNNY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECBUNNY_DB_DSN"`
	Driver string `envconfig:"TECBUNNY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TECBUNNY_DB_HOST"`
	Port     int    `envconfig:"TECBUNNY_DB_PORT" default:"5432"`
	User     string `envconfig:"TECBUNNY_DB_USER"`
	Password string `envconfig:"TECBUNNY_DB_PASSWORD"`
	Name     string `envconfig:"TECBUNNY_DB_NAME"`
	SSLMode  string `envconfig:"TECBUNNY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECBUNNY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECBUNNY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECBUNNY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECBUNNY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TECBUNNY_REDIS_URL"`
	Address      string        `envconfig:"TECBUNNY_REDIS_ADDR"`
	Password     string        `envconfig:"TECBUNNY_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECBUNNY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECBUNNY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECBUNNY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECBUNNY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECBUNNY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECBUNNY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TECBUNNY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TECBUNNY_JWT_ISSUER" default:"tecbunny"`
	ExpirationMinutes int    `envconfig:"TECBUNNY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TaxConfig carries the flat GST rate applied to discounted subtotals.
type TaxConfig struct {
	GSTRatePercent int `envconfig:"TECBUNNY_GST_RATE_PERCENT" default:"18"`
}

// CouponConfig throttles coupon-apply attempts to slow down code guessing.
type CouponConfig struct {
	ApplyWindow    time.Duration `envconfig:"TECBUNNY_COUPON_APPLY_WINDOW" default:"1m"`
	ApplyIPLimit   int           `envconfig:"TECBUNNY_COUPON_APPLY_IP_LIMIT" default:"20"`
	ApplyUserLimit int           `envconfig:"TECBUNNY_COUPON_APPLY_USER_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TECBUNNY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TECBUNNY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"TECBUNNY_DB_HOST": db.Host,
		"TECBUNNY_DB_USER": db.User,
		"TECBUNNY_DB_NAME": db.Name,
	}
	for _, env := range []string{"TECBUNNY_DB_HOST", "TECBUNNY_DB_USER", "TECBUNNY_DB_NAME"} {
		if required[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either TECBUNNY_DB_DSN or %s are required", strings.Join(missing, ", "))
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
