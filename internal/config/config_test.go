package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// Save original env and restore after test
	originalEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	})
	os.Clearenv()
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"Words", len(cfg.Words), 16},
		{"FirstWord", cfg.Words[0], "cat"},
		{"LastWord", cfg.Words[15], "woman"},
		{"PreviewDims", cfg.PreviewDims, 10},
		{"ReportFormat", cfg.ReportFormat, "text"},
		{"Locale", cfg.Locale, "en"},
		{"GloveFile", cfg.GloveFile, "./models/glove.6B.50d.txt"},
		{"VectorDim", cfg.VectorDim, 50},
		{"RandomDim", cfg.RandomDim, 5},
		{"RandomSeed", cfg.RandomSeed, uint64(42)},
		{"StoreProvider", cfg.StoreProvider, "sqlite"},
		{"TableName", cfg.TableName, "vector_table"},
		{"TopK", cfg.TopK, 3},
		{"EmbeddingModel", cfg.EmbeddingModel, "text-embedding-3-small"},
		{"Normalize", cfg.Normalize, true},
		{"EmbeddingTimeout", cfg.EmbeddingTimeout, 30 * time.Second},
		{"CacheProvider", cfg.CacheProvider, "none"},
		{"CacheTTL", cfg.CacheTTLDuration(), 24 * time.Hour},
		{"LRUSize", cfg.LRUSize, 1024},
		{"ReportSink", cfg.ReportSink, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)

	os.Setenv("WORDS", "king,queen")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOCALE", "zh")
	os.Setenv("RANDOM_SEED", "7")
	os.Setenv("NORMALIZE", "false")
	os.Setenv("CACHE_TTL", "60")

	cfg := Load()

	if len(cfg.Words) != 2 || cfg.Words[1] != "queen" {
		t.Errorf("expected words [king queen], got %v", cfg.Words)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.Locale != "zh" {
		t.Errorf("expected locale 'zh', got %s", cfg.Locale)
	}
	if cfg.RandomSeed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.RandomSeed)
	}
	if cfg.Normalize {
		t.Errorf("expected normalize false")
	}
	if cfg.CacheTTLDuration() != time.Minute {
		t.Errorf("expected 1m ttl, got %v", cfg.CacheTTLDuration())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"postgres store", map[string]string{"STORE_PROVIDER": "postgres"}, false},
		{"unknown store", map[string]string{"STORE_PROVIDER": "lancedb"}, true},
		{"unknown locale", map[string]string{"LOCALE": "fr"}, true},
		{"unknown format", map[string]string{"REPORT_FORMAT": "xml"}, true},
		{"duplicate words", map[string]string{"WORDS": "cat,cat"}, true},
		{"zero preview", map[string]string{"PREVIEW_DIMS": "0"}, true},
		{"bad base url", map[string]string{"OPENAI_BASE_URL": "not a url"}, true},
		{"good base url", map[string]string{"OPENAI_BASE_URL": "http://localhost:8000/v1/"}, false},
		{"unknown sink", map[string]string{"REPORT_SINK": "kafka"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			err := Load().Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
