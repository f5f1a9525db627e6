package ports

import (
	"context"
	"io"
)

// MediaStore holds report attachments.
type MediaStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}
