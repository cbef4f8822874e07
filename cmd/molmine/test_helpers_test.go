package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

// setupCLITestEnv writes a config file whose directories live under a
// per-test temp dir, so commands never touch the real home directory.
func setupCLITestEnv(t *testing.T, recognitionURL string) cliTestEnv {
	t.Helper()

	base := t.TempDir()
	if recognitionURL == "" {
		recognitionURL = "http://127.0.0.1:0"
	}
	contents := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[recognition]
base_url = %q
timeout_seconds = 5
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), recognitionURL)

	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return cliTestEnv{baseDir: base, configPath: configPath}
}

// runCLI executes the root command with the given args against the test
// config and returns the combined output.
func runCLI(t *testing.T, env cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
