package testsupport

import (
	"path/filepath"
	"testing"

	"molmine/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Recognition.BaseURL = "http://127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithRecognitionURL points the recognition client at the given base URL,
// typically an httptest server.
func WithRecognitionURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Recognition.BaseURL = baseURL
	}
}
