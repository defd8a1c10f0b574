package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"wordsim/internal/cache"
	"wordsim/internal/config"
	"wordsim/internal/embeddings"
	"wordsim/internal/logger"
	"wordsim/internal/queue"
	"wordsim/internal/vectordb"
)

// Deps bundles common runtime dependencies for the binaries.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Cache     cache.VectorCache
	Publisher queue.Publisher
}

// Build loads env, config, and shared components. A missing .env file is not an error.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}

	vc, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	pub, err := buildPublisher(cfg, log)
	if err != nil {
		_ = vc.Close()
		return Deps{}, fmt.Errorf("failed to initialize report sink: %w", err)
	}
	return Deps{
		Config:    cfg,
		Log:       log,
		Cache:     vc,
		Publisher: pub,
	}, nil
}

// Close releases the cache and report sink connections.
func (d Deps) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	if d.Cache != nil {
		errs = append(errs, d.Cache.Close())
	}
	return errors.Join(errs...)
}

// Cached wraps p with the in-process LRU and the configured shared cache.
func (d Deps) Cached(p embeddings.Provider) (embeddings.Provider, error) {
	cp, err := cache.NewCachedProvider(p, d.Cache, d.Config.LRUSize, d.Config.CacheTTLDuration(), d.Log)
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.VectorCache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis vector cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTLDuration())
		return rc, nil
	case "none", "":
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: none, redis)", cfg.CacheProvider)
	}
}

func buildPublisher(cfg config.Config, log *slog.Logger) (queue.Publisher, error) {
	switch cfg.ReportSink {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when REPORT_SINK=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("publishing reports to NATS", "url", cfg.QueueURL)
		return queue.NewNATS(log, nc), nil
	case "none", "":
		return queue.NewNoOpPublisher(), nil
	default:
		return nil, fmt.Errorf("invalid REPORT_SINK: %s (valid options: none, nats)", cfg.ReportSink)
	}
}

// BuildGlove loads the GloVe file, truncated to VECTOR_DIM.
func BuildGlove(cfg config.Config, log *slog.Logger) (*embeddings.Glove, error) {
	if cfg.GloveFile == "" {
		return nil, fmt.Errorf("GLOVE_FILE is required")
	}
	log.Info("loading GloVe model", "path", cfg.GloveFile)
	start := time.Now()
	g, err := embeddings.OpenGlove(cfg.GloveFile, embeddings.GloveOptions{MaxDim: cfg.VectorDim})
	if err != nil {
		return nil, err
	}
	log.Info("GloVe model loaded", "words", g.Vocabulary(), "dim", g.Dim(), "elapsed", time.Since(start))
	return g, nil
}

// BuildRandomMatrix allocates an untrained embedding matrix over the candidate words.
func BuildRandomMatrix(cfg config.Config, log *slog.Logger) (*embeddings.RandomMatrix, error) {
	m, err := embeddings.NewRandomMatrix(cfg.Words, cfg.RandomDim, cfg.RandomSeed)
	if err != nil {
		return nil, err
	}
	log.Info("using random embedding matrix", "words", len(cfg.Words), "dim", cfg.RandomDim, "seed", cfg.RandomSeed)
	return m, nil
}

// BuildEncoder connects the transformer encoder.
func BuildEncoder(cfg config.Config, log *slog.Logger) (*embeddings.Encoder, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the transformer encoder")
	}
	enc, err := embeddings.NewEncoder(embeddings.EncoderConfig{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		Dimensions: cfg.EmbeddingDimensions,
		Normalize:  cfg.Normalize,
		Timeout:    cfg.EmbeddingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encoder: %w", err)
	}
	log.Info("using transformer encoder", "model", cfg.EmbeddingModel, "base_url", cfg.OpenAIBaseURL)
	return enc, nil
}

// BuildStore opens the configured vector store.
func BuildStore(cfg config.Config, log *slog.Logger) (vectordb.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := vectordb.NewPostgres(cfg.DBURL, cfg.TableName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres vector store", "table", cfg.TableName)
		return db, nil
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORE_PROVIDER=sqlite")
		}
		db, err := vectordb.NewSQLite(cfg.SQLitePath, cfg.TableName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		log.Info("using SQLite vector store", "path", cfg.SQLitePath, "table", cfg.TableName)
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: sqlite, postgres)", cfg.StoreProvider)
	}
}
