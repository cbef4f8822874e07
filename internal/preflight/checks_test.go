package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"molmine/internal/config"
)

func TestRunAllChecksPass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.LogDir = base
	cfg.Recognition.BaseURL = server.URL

	results := Run(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if !Passed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}

func TestRunMissingDirectoryFails(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "does-not-exist")
	cfg.Paths.LogDir = base
	cfg.Recognition.BaseURL = "http://127.0.0.1:1"

	results := Run(context.Background(), &cfg)
	if Passed(results) {
		t.Fatal("expected failures for missing directory and unreachable service")
	}
	if results[0].Passed {
		t.Fatalf("expected data directory check to fail: %+v", results[0])
	}
}
