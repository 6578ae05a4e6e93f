package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// MongoConfig holds the document database connection settings.
// URI, when set, takes precedence over the individual components.
type MongoConfig struct {
	URI                    string        `env:"MONGODB_URI"`
	User                   string        `env:"MONGODB_USER"`
	Password               string        `env:"MONGODB_PASSWORD"`
	Host                   string        `env:"MONGODB_HOST" envDefault:"localhost"`
	Port                   string        `env:"MONGODB_PORT" envDefault:"27017"`
	Database               string        `env:"MONGODB_DATABASE" envDefault:"antt_multas"`
	AuthSource             string        `env:"MONGODB_AUTH_SOURCE" envDefault:"admin"`
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"`
	SocketTimeout          time.Duration `env:"MONGODB_SOCKET_TIMEOUT" envDefault:"45s"`
}

// DatabaseConfig holds PostgreSQL settings for the deletion audit log.
// The audit log is disabled when Host is empty.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// Enabled reports whether an audit database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings for the documents bucket.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"docsync-anntmultas"`
	Region    string `env:"MINIO_REGION"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	// MaxListedKeys bounds the bucket scan used to flag processed files that still exist.
	MaxListedKeys int `env:"MINIO_MAX_LISTED_KEYS" envDefault:"10000"`
}

// KafkaConfig holds settings for domain event publication.
// Publication is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers          []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic            string   `env:"KAFKA_TOPIC" envDefault:"multas.documents"`
	Retries          int      `env:"KAFKA_RETRIES" envDefault:"3"`
	CompressionCodec string   `env:"KAFKA_COMPRESSION_CODEC" envDefault:"snappy"`
	BatchSize        int      `env:"KAFKA_BATCH_SIZE" envDefault:"100"`
	// BatchTimeout is how long a synchronous write waits for the batch to fill.
	BatchTimeout time.Duration `env:"KAFKA_BATCH_TIMEOUT" envDefault:"10ms"`
	// PublishTimeout caps one publish including retries.
	PublishTimeout time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" envDefault:"2s"`
}

// Enabled reports whether event publication is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// UploadConfig bounds multipart uploads to the storage API.
type UploadConfig struct {
	MaxFileBytes int64 `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"52428800"`
	MaxFiles     int   `env:"UPLOAD_MAX_FILES" envDefault:"10"`
	Concurrency  int   `env:"UPLOAD_CONCURRENCY" envDefault:"4"`
}

// TracingConfig selects the OTLP exporter and sampler.
type TracingConfig struct {
	Disabled    bool   `env:"OTEL_SDK_DISABLED" envDefault:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"multasapi"`
	Protocol    string `env:"OTEL_EXPORTER_OTLP_PROTOCOL" envDefault:"grpc"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Sampler     string `env:"OTEL_TRACES_SAMPLER" envDefault:"parentbased_traceidratio"`
	SamplerArg  string `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string   `env:"APP_HOST" envDefault:"localhost:3000"`
	Port           string   `env:"PORT" envDefault:"3000"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	Timezone       string   `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	CORSOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	BodyLimitBytes int      `env:"BODY_LIMIT_BYTES" envDefault:"536870912"`

	Mongo    MongoConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Kafka    KafkaConfig
	Upload   UploadConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured time zone used to render dates for export.
// Unknown zones return UTC together with the lookup error so callers can report the fallback.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("load time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
