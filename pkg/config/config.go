package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "laska"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	Admin     AdminConfig
	Session   SessionConfig
	Catalog   CatalogConfig
	Invoice   InvoiceConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	GCP       GCPConfig
	GCS       GCSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LASKA_APP_ENV" default:"development"`
	Port         string `envconfig:"LASKA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LASKA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LASKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AdminConfig holds the shared admin credential. Password accepts either an
// argon2id hash string or a plain value compared in constant time.
type AdminConfig struct {
	Password string `envconfig:"LASKA_ADMIN_PASSWORD" required:"true"`
}

type SessionConfig struct {
	Secret     string        `envconfig:"LASKA_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"LASKA_SESSION_ISSUER" default:"laska-api"`
	TTL        time.Duration `envconfig:"LASKA_SESSION_TTL" default:"24h"`
	CookieName string        `envconfig:"LASKA_SESSION_COOKIE" default:"laska_admin"`
}

type CatalogConfig struct {
	ProductsPath string `envconfig:"LASKA_CATALOG_PRODUCTS_PATH" default:"data/products.json"`
	ShippingPath string `envconfig:"LASKA_CATALOG_SHIPPING_PATH" default:"data/shipping.json"`
}

type InvoiceConfig struct {
	BusinessName string `envconfig:"LASKA_INVOICE_BUSINESS_NAME" default:"Laska Legacy"`
	ContactLine  string `envconfig:"LASKA_INVOICE_CONTACT_LINE" default:"Thank you for your order. Questions? hello@laskalegacy.co.za"`
	LogoPath     string `envconfig:"LASKA_INVOICE_LOGO_PATH" default:"data/logo.png"`
}

// RedisConfig is optional; an empty URL disables login rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"LASKA_REDIS_URL"`
	Address      string        `envconfig:"LASKA_REDIS_ADDR"`
	Password     string        `envconfig:"LASKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LASKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LASKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LASKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LASKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LASKA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LASKA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"LASKA_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"LASKA_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"LASKA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"LASKA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"LASKA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"LASKA_GCS_BUCKET_NAME" required:"true"`
}
