// Package preflight runs environment checks before Molmine touches the store
// or the recognition service: directory permissions, free disk space, and
// service reachability.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"molmine/internal/config"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// minFreeBytes is the free-space floor for the data volume. PDF blobs land in
// the database file, so running the disk completely out corrupts nothing but
// fails writes mid-transaction; warn well before that.
const minFreeBytes = 256 << 20

// Run executes every check and returns the results in a stable order.
func Run(ctx context.Context, cfg *config.Config) []Result {
	return []Result{
		checkDirectory("Data directory", cfg.Paths.DataDir),
		checkDirectory("Log directory", cfg.Paths.LogDir),
		checkDiskSpace("Disk space", cfg.Paths.DataDir),
		checkRecognitionService(ctx, "Recognition service", cfg.Recognition.BaseURL),
	}
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func checkDirectory(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func checkDiskSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%d MiB free)", path, free>>20)
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + ", below minimum"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func checkRecognitionService(ctx context.Context, name, baseURL string) Result {
	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, baseURL, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", baseURL, err)}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (unreachable: %v)", baseURL, err)}
	}
	defer resp.Body.Close()
	// Any HTTP answer means the service is up; the API paths are POST-only.
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable, http %d)", baseURL, resp.StatusCode)}
}
