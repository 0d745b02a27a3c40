package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	AppURL      string `envconfig:"APP_URL" default:"http://localhost:3000"`
	AdminToken  string `envconfig:"ADMIN_TOKEN"`

	PostgresDSN       string        `envconfig:"POSTGRES_DSN"`
	IdempotencyKeyTTL time.Duration `envconfig:"IDEMPOTENCY_KEY_TTL" default:"24h"`

	TemporalAddress   string `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	TemporalDisabled  bool   `envconfig:"TEMPORAL_DISABLED" default:"false"`

	KafkaBrokers    string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderTopic string `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`

	CatalogSeedFile  string        `envconfig:"CATALOG_SEED_FILE"`
	SeedDemoOrders   bool          `envconfig:"SEED_DEMO_ORDERS" default:"true"`
	DeliveryLeadTime time.Duration `envconfig:"DELIVERY_LEAD_TIME" default:"48h"`

	SMTP SMTPConfig `envconfig:"SMTP"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	StdoutTraces bool   `envconfig:"OTEL_STDOUT_TRACES" default:"false"`
}

// SMTPConfig is the outgoing mail server, read from SMTP_*. The defaults are
// placeholders; an unset SMTP_USER keeps notifications in the log.
type SMTPConfig struct {
	Host     string        `envconfig:"HOST" default:"smtp.example.com"`
	Port     int           `envconfig:"PORT" default:"587"`
	Secure   bool          `envconfig:"SECURE" default:"false"`
	User     string        `envconfig:"USER"`
	Password string        `envconfig:"PASSWORD"`
	From     string        `envconfig:"FROM" default:"noreply@example.com"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Enabled reports whether real SMTP delivery is configured.
func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.User) != ""
}

// LoadConfig loads an optional .env file, reads environment variables, applies
// defaults, and validates basic constraints.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !isMissingFile(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if cfg.DeliveryLeadTime < 0 {
		return Config{}, errors.New("DELIVERY_LEAD_TIME must not be negative")
	}
	if cfg.IdempotencyKeyTTL <= 0 {
		return Config{}, errors.New("IDEMPOTENCY_KEY_TTL must be positive")
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		return Config{}, errors.New("SMTP_PORT must be a valid TCP port")
	}
	return cfg, nil
}

// KafkaEnabled reports whether order events should be published.
func (c Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KafkaBrokers) != ""
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
