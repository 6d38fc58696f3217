package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	CartSlot     CartSlotConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	Notify       NotifyConfig
	Outbox       OutboxConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env            string   `envconfig:"ATLASTOURS_APP_ENV" required:"true"`
	Port           string   `envconfig:"ATLASTOURS_APP_PORT" default:"8080"`
	LogLevel       string   `envconfig:"ATLASTOURS_LOG_LEVEL" default:"info"`
	LogWarnStack   bool     `envconfig:"ATLASTOURS_LOG_WARN_STACK" default:"false"`
	AllowedOrigins []string `envconfig:"ATLASTOURS_APP_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ATLASTOURS_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"ATLASTOURS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ATLASTOURS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ATLASTOURS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ATLASTOURS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// CartSlotConfig locates the local durable slot holding the serialized cart.
type CartSlotConfig struct {
	Path string `envconfig:"ATLASTOURS_CART_SLOT_PATH" default:"cart.db"`
	Key  string `envconfig:"ATLASTOURS_CART_SLOT_KEY" default:"cart"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ATLASTOURS_REDIS_URL"`
	Address      string        `envconfig:"ATLASTOURS_REDIS_ADDR"`
	Password     string        `envconfig:"ATLASTOURS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ATLASTOURS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ATLASTOURS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ATLASTOURS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ATLASTOURS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ATLASTOURS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ATLASTOURS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the external auth provider.
type JWTConfig struct {
	Secret string `envconfig:"ATLASTOURS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"ATLASTOURS_JWT_ISSUER" required:"true"`
}

// PricingConfig carries the per-day rates and the service-fee percentage.
type PricingConfig struct {
	ServiceFeePercent    float64 `envconfig:"ATLASTOURS_PRICING_SERVICE_FEE_PERCENT" default:"5"`
	DriverPerDayCents    int     `envconfig:"ATLASTOURS_PRICING_DRIVER_PER_DAY_CENTS" default:"5000"`
	ChildSeatPerDayCents int     `envconfig:"ATLASTOURS_PRICING_CHILD_SEAT_PER_DAY_CENTS" default:"700"`
	CampingPerDayCents   int     `envconfig:"ATLASTOURS_PRICING_CAMPING_PER_DAY_CENTS" default:"1500"`
}

type CheckoutConfig struct {
	DepositPercent float64 `envconfig:"ATLASTOURS_CHECKOUT_DEPOSIT_PERCENT" default:"30"`
}

// NotifyConfig points at the external notification endpoint that renders
// confirmation emails.
type NotifyConfig struct {
	EndpointURL string        `envconfig:"ATLASTOURS_NOTIFY_ENDPOINT_URL"`
	Timeout     time.Duration `envconfig:"ATLASTOURS_NOTIFY_TIMEOUT" default:"10s"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"ATLASTOURS_OUTBOX_POLL_INTERVAL" default:"5s"`
	BatchSize    int           `envconfig:"ATLASTOURS_OUTBOX_BATCH_SIZE" default:"20"`
	MaxAttempts  int           `envconfig:"ATLASTOURS_OUTBOX_MAX_ATTEMPTS" default:"8"`
	BaseBackoff  time.Duration `envconfig:"ATLASTOURS_OUTBOX_BASE_BACKOFF" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ATLASTOURS_FEATURE_AUTO_MIGRATE" default:"false"`
}
