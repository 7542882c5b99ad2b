package storage

import (
	"context"
	"io"
	"time"
)

// SaveOptions conveys upload destination metadata.
type SaveOptions struct {
	Bucket      string
	KeyPrefix   string
	ContentType string
}

// Service stores uploaded listing photos and resolves their serving URLs.
// Implementations return an opaque stored path; callers persist it as-is.
type Service interface {
	SavePhoto(ctx context.Context, name string, r io.Reader, opts SaveOptions) (string, error)
	PhotoURL(ctx context.Context, stored string, expires time.Duration) (string, error)
}
