// Package storage defines the object storage capabilities used by the share lifecycle.
// The MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"time"
)

// Signer issues time-limited, capability-bearing URLs for one object operation.
type Signer interface {
	// SignUpload returns a URL that permits a single PUT of key until ttl elapses.
	SignUpload(ctx context.Context, key string, ttl time.Duration) (string, error)
	// SignDownload returns a URL that permits GET of key until ttl elapses.
	SignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Prober reports whether the backing bucket is reachable.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}
