package storage

import (
	"context"
	"io"
)

// BlobStore abstracts where attachment bytes live. Keys are opaque paths
// chosen by the caller, e.g. "org/3/tickets/12/att_x1".
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
