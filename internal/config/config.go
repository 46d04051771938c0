// Package config loads run settings from the environment and credentials
// from the two-line secret file.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
)

const (
	DefaultSubject     = "You have received a payment"
	DefaultKafkaTopic  = "payout_batch_submitted"
	DefaultHTTPTimeout = 30 * time.Second

	IDFormatNumeric = "numeric"
	IDFormatUUID    = "uuid"

	TracesNone   = "none"
	TracesStdout = "stdout"
	TracesOTLP   = "otlp"
)

type Config struct {
	Subject      string        `validate:"required,max=255"`
	BaseURL      string        `validate:"omitempty,url"`
	HTTPTimeout  time.Duration `validate:"gt=0"`
	IDFormat     string        `validate:"oneof=numeric uuid"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	KafkaBrokers []string      `validate:"dive,hostname_port"`
	KafkaTopic   string        `validate:"required"`

	TracesExporter string `validate:"oneof=none stdout otlp"`
	OTLPEndpoint   string `validate:"omitempty,url"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Subject:      getenv("PAYOUT_SUBJECT", DefaultSubject),
		BaseURL:      os.Getenv("PAYOUT_API_BASE_URL"),
		HTTPTimeout:  DefaultHTTPTimeout,
		IDFormat:     strings.ToLower(getenv("PAYOUT_ID_FORMAT", IDFormatNumeric)),
		LogLevel:     strings.ToLower(getenv("LOG_LEVEL", "info")),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", DefaultKafkaTopic),
	}

	// otlp is implied by an endpoint, as the OpenTelemetry SDKs do
	cfg.OTLPEndpoint = strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	cfg.TracesExporter = strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")))
	if cfg.TracesExporter == "" {
		cfg.TracesExporter = TracesNone
		if cfg.OTLPEndpoint != "" {
			cfg.TracesExporter = TracesOTLP
		}
	}

	if raw := os.Getenv("PAYOUT_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &errs.ConfigurationError{Field: "PAYOUT_HTTP_TIMEOUT", Message: "not a duration", Err: err}
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg and reports the first invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		return errs.Configf(envName[field], "failed %q check (value %v)", fe.Tag(), fe.Value())
	}
	return &errs.ConfigurationError{Message: "invalid configuration", Err: err}
}

// EventsEnabled reports whether submissions are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

var envName = map[string]string{
	"Subject":      "PAYOUT_SUBJECT",
	"BaseURL":      "PAYOUT_API_BASE_URL",
	"HTTPTimeout":  "PAYOUT_HTTP_TIMEOUT",
	"IDFormat":     "PAYOUT_ID_FORMAT",
	"LogLevel":     "LOG_LEVEL",
	"KafkaBrokers": "KAFKA_BROKERS",
	"KafkaTopic":   "KAFKA_TOPIC",

	"TracesExporter": "OTEL_TRACES_EXPORTER",
	"OTLPEndpoint":   "OTEL_EXPORTER_OTLP_ENDPOINT",
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
