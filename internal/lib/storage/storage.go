// Package storage writes uploaded image bytes to local disk or to an
// S3-compatible bucket and builds the public URL for a stored object.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/deppfellow/nzwalks/internal/config"
)

// ImageStore persists image bytes under key.
type ImageStore interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// URL returns the public address of key. baseURL is the scheme+host of
	// the current request; stores with their own public host ignore it.
	URL(baseURL, key string) string
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg *config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.LocalDir)
	case config.StorageDriverS3:
		return NewS3FromConfig(ctx, &cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// CleanURL escapes spaces and normalizes urlStr, returning it unchanged
// when it does not parse.
func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	return parsedURL.String()
}
