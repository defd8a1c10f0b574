package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration shared by every binary. Each binary reads
// only the sections it needs.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	// Evaluation
	Words        []string `env:"WORDS" envDefault:"cat,dog,kitten,puppy,apple,banana,orange,fruit,car,bus,train,vehicle,king,queen,man,woman" validate:"min=1,unique,dive,required"`
	PreviewDims  int      `env:"PREVIEW_DIMS" envDefault:"10" validate:"min=1"`
	ReportFormat string   `env:"REPORT_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Locale       string   `env:"LOCALE" envDefault:"en" validate:"oneof=en zh"`

	// GloVe
	GloveFile string `env:"GLOVE_FILE" envDefault:"./models/glove.6B.50d.txt"`
	VectorDim int    `env:"VECTOR_DIM" envDefault:"50" validate:"min=0"` // 0 keeps the file's width

	// Trainable embedding matrix
	RandomDim  int    `env:"RANDOM_DIM" envDefault:"5" validate:"min=1"`
	RandomSeed uint64 `env:"RANDOM_SEED" envDefault:"42"`

	// Vector store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"./vectordb.sqlite"`
	DBURL         string `env:"DB_URL"`
	TableName     string `env:"TABLE_NAME" envDefault:"vector_table"`
	TopK          int    `env:"TOP_K" envDefault:"3" validate:"min=0"`

	// Transformer encoder
	OpenAIKey           string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string        `env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	EmbeddingModel      string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDimensions int           `env:"EMBEDDING_DIMENSIONS" envDefault:"0" validate:"min=0"`
	Normalize           bool          `env:"NORMALIZE" envDefault:"true"`
	EmbeddingTimeout    time.Duration `env:"EMBEDDING_TIMEOUT" envDefault:"30s"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"none" validate:"oneof=none redis"` // "none" or "redis"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"86400" validate:"min=0"` // seconds, 0 = no expiry
	LRUSize       int    `env:"LRU_SIZE" envDefault:"1024" validate:"min=1"`

	// Report sink
	ReportSink string `env:"REPORT_SINK" envDefault:"none" validate:"oneof=none nats"`
	QueueURL   string `env:"QUEUE_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

var validate = validator.New()

// Validate checks enumerations and ranges. Settings that are only required by one
// provider are checked where that provider is built.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// CacheTTLDuration converts CacheTTL to a time.Duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}
