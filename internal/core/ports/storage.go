package ports

import (
	"context"
	"io"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

// ProgressFunc receives the bytes uploaded so far and the expected total.
type ProgressFunc func(uploaded, total int64)

// ObjectStore stores avatar objects.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string, progress ProgressFunc) error
	Open(ctx context.Context, key string) (*domain.Photo, error)
	Delete(ctx context.Context, key string) error
}

// CleanupQueue accepts avatar cleanup work off the request path.
type CleanupQueue interface {
	Enqueue(job domain.CleanupJob)
}
