package raml

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/raml2obj"
	"github.com/erraggy/raml2obj/ramlerrors"
)

// fetchURL downloads urlStr, enforcing the size limit.
func (l *Loader) fetchURL(ctx context.Context, urlStr string) ([]byte, error) {
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("raml: failed to create request: %w", err)
	}

	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = raml2obj.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is caller-provided input
	if err != nil {
		return nil, fmt.Errorf("raml: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("raml: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limit := l.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("raml: failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &ramlerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      urlStr,
		}
	}
	l.log().Debug("fetched RAML source", "url", urlStr, "bytes", len(data))
	return data, nil
}

// readFile reads path, enforcing the size limit.
func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("raml: failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("raml: %s is a directory", path)
	}
	if limit := l.maxFileSize(); info.Size() > limit {
		return nil, &ramlerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      path,
		}
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided input
	if err != nil {
		return nil, fmt.Errorf("raml: failed to read file: %w", err)
	}
	return data, nil
}
