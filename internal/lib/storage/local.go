package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalPublicPrefix is the URL path the router serves the local directory under.
const LocalPublicPrefix = "/images"

// Local stores images in a directory on disk.
type Local struct {
	dir string
}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir is the directory images are written to.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes body to <dir>/<key>, replacing any existing file.
func (l *Local) Save(ctx context.Context, key string, body io.Reader, _ int64, _ string) error {
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("invalid image key %q", key)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(l.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing image file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing image file: %w", err)
	}
	return nil
}

func (l *Local) URL(baseURL, key string) string {
	return CleanURL(strings.TrimSuffix(baseURL, "/") + LocalPublicPrefix + "/" + url.PathEscape(key))
}
