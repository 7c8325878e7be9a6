package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Cart     CartConfig
	Upstream UpstreamConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SINCRO_APP_ENV" required:"true"`
	Port         string `envconfig:"SINCRO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SINCRO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SINCRO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"SINCRO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SINCRO_REDIS_ADDR"`
	Password     string        `envconfig:"SINCRO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SINCRO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SINCRO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SINCRO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SINCRO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SINCRO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SINCRO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes durable cart storage. TTL bounds how long an abandoned
// cart survives in Redis; zero keeps keys forever.
type CartConfig struct {
	StorageTTL time.Duration `envconfig:"SINCRO_CART_STORAGE_TTL" default:"168h"`
}

// UpstreamConfig points at the webhook backend that owns catalog data and
// order creation.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"SINCRO_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SINCRO_UPSTREAM_TIMEOUT" default:"15s"`
}

func (u UpstreamConfig) validate() error {
	if strings.TrimSpace(u.BaseURL) == "" {
		return fmt.Errorf("%s is required", EnvUpstreamBaseURL)
	}
	if strings.HasSuffix(u.BaseURL, "/") {
		return fmt.Errorf("%s must not end with a trailing slash", EnvUpstreamBaseURL)
	}
	return nil
}

type GCPConfig struct {
	ProjectID string `envconfig:"SINCRO_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrderTopic string `envconfig:"SINCRO_PUBSUB_ORDER_TOPIC" default:"sincro-order-events"`
}

// EventingEnabled reports whether order events should be published at all.
func (c *Config) EventingEnabled() bool {
	return strings.TrimSpace(c.GCP.ProjectID) != ""
}
