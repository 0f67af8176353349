// Package backupclient triggers dump and restore jobs on the backup sidecar
// deployed next to the database. The service only asks; scheduling and
// retention stay in the sidecar.
package backupclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBase = "http://horas-backup:8081"

func baseURL() string {
	if v := os.Getenv("BACKUP_SIDECAR_URL"); v != "" {
		return v
	}
	return defaultBase
}

func trigger(ctx context.Context, job string, timeout time.Duration) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL()+"/jobs/"+job, nil)
	if err != nil {
		return "", err
	}
	cl := &http.Client{Timeout: timeout}
	resp, err := cl.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%s: http %d: %s", job, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return strings.TrimSpace(string(body)), nil
}

// TriggerBackup requests an immediate dump and returns the sidecar's report.
func TriggerBackup(ctx context.Context) (string, error) {
	return trigger(ctx, "backup", 2*time.Minute)
}

// RestoreLatest replays the newest dump. Destructive; callers gate it behind
// the administrator role.
func RestoreLatest(ctx context.Context) (string, error) {
	return trigger(ctx, "restore-latest", 5*time.Minute)
}
