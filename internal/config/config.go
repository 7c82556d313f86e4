// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, auth tuning).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the NZWALKS_ prefix, lowercased, and nested
	with "." as the key-path delimiter:

		NZWALKS_SERVER.PORT           -> server.port        -> Config.Server.Port
		NZWALKS_STORAGE.S3.BUCKET     -> storage.s3.bucket  -> Config.Storage.S3.Bucket

	koanf's default decode hooks turn "15m" into a time.Duration and
	"a,b" into a []string.
*/

// EnvPrefix is the prefix every recognized environment variable carries.
const EnvPrefix = "NZWALKS_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// we inject defaults at runtime.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained requests per second allowed per client IP,
	// RateLimitBurst the bucket size on top of it.
	RateLimit      float64 `koanf:"rate_limit" validate:"omitempty,gt=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"omitempty,gt=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the JWT signing material and password hashing cost.
//
// SecretKey signs and verifies access tokens (HS256); keep it out of VCS.
type AuthConfig struct {
	SecretKey  string        `koanf:"secret_key" validate:"required,min=32"`
	Issuer     string        `koanf:"issuer" validate:"required"`
	Audience   string        `koanf:"audience" validate:"required"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
}

// StorageDriver selects where uploaded image bytes end up.
type StorageDriver string

const (
	StorageDriverLocal StorageDriver = "local"
	StorageDriverS3    StorageDriver = "s3"
)

// StorageConfig configures the image store.
type StorageConfig struct {
	Driver   StorageDriver `koanf:"driver" validate:"required,oneof=local s3"`
	LocalDir string        `koanf:"local_dir"`
	S3       S3Config      `koanf:"s3"`
}

// S3Config is only read when Driver is "s3". Endpoint is optional and lets
// the same client talk to S3-compatible stores (R2, MinIO).
type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	// PublicURL is a fmt pattern receiving the object key, e.g. "https://cdn.example.com/%s".
	PublicURL string `koanf:"public_url"`
}

// IntegrationConfig holds third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
}

// Validate applies the driver-dependent rules struct tags cannot express.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case StorageDriverLocal:
		if s.LocalDir == "" {
			return fmt.Errorf("storage local_dir is required for the local driver")
		}
	case StorageDriverS3:
		if s.S3.Bucket == "" || s.S3.Region == "" || s.S3.PublicURL == "" {
			return fmt.Errorf("storage s3 bucket, region and public_url are required for the s3 driver")
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix NZWALKS_
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Sets default auth tuning and observability if missing
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}

	if mainConfig.Server.RateLimit == 0 {
		mainConfig.Server.RateLimit = DefaultRateLimit
	}
	if mainConfig.Server.RateLimitBurst == 0 {
		mainConfig.Server.RateLimitBurst = DefaultRateLimitBurst
	}

	if mainConfig.Auth.TokenTTL <= 0 {
		mainConfig.Auth.TokenTTL = DefaultTokenTTL
	}
	if mainConfig.Auth.BcryptCost == 0 {
		mainConfig.Auth.BcryptCost = DefaultBcryptCost
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force service name and environment values regardless of what user set,
	// so tracing/logging sees consistent service naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

const (
	// ServiceName tags every log line and New Relic transaction.
	ServiceName = "nzwalks"

	// DefaultTokenTTL is how long an issued access token stays valid.
	DefaultTokenTTL = 15 * time.Minute

	// DefaultBcryptCost matches bcrypt.DefaultCost.
	DefaultBcryptCost = 10

	DefaultRateLimit      = 20
	DefaultRateLimitBurst = 40
)
