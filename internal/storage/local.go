package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localDisk struct {
	dir     string
	baseURL string
}

func newLocalDisk(dir, baseURL string) *localDisk {
	if dir == "" {
		dir = "static/images"
	}
	return &localDisk{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (d *localDisk) Put(_ context.Context, key string, r io.Reader) error {
	path := filepath.Join(d.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimPrefix(d.dir, "./") + "/" + key
}
