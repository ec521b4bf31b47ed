// Package storage stores uploaded assets behind a small driver interface.
// Two drivers exist: "local" (filesystem under a public static dir) and
// "s3" (any S3-compatible object store).
package storage

import (
	"context"
	"fmt"
	"io"
)

type Disk interface {
	// Put writes the content under key, creating parents as needed.
	Put(ctx context.Context, key string, r io.Reader) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}

type Options struct {
	Driver  string
	Dir     string
	BaseURL string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
}

func Open(ctx context.Context, opts Options) (Disk, error) {
	switch opts.Driver {
	case "", "local":
		return newLocalDisk(opts.Dir, opts.BaseURL), nil
	case "s3":
		return newS3Disk(ctx, opts)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
