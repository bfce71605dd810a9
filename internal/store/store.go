// Package store defines the unified interface for the remote object store.
//
// The one current provider (MinIO / any S3-compatible endpoint) lives in the
// minio subpackage. Callers depend only on this package — never on a specific
// provider package.
//
// Usage:
//
//	cfg := store.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	s, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer s.Close()
//
//	page, err := s.ListPage(ctx, "demo", store.ListOptions{Prefix: "photos/", Delimiter: "/"})
package store

import (
	"context"
	"io"
	"time"
)

// Store is the single interface the remote object store provider implements.
// All methods honor context cancellation: aborting the caller's context must
// abort the in-flight remote call, including mid-stream transfers.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// ListBuckets returns all buckets accessible with the configured credentials.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)

	// ListPage returns one page of objects in bucket that match opts, along
	// with the common prefixes folded out by opts.Delimiter and the
	// continuation token for the next page.
	ListPage(ctx context.Context, bucket string, opts ListOptions) (*Page, error)

	// StatObject returns metadata for the object at key inside bucket
	// without downloading its content.
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// GetObject opens a streaming handle to the object at key inside bucket,
	// optionally restricted to a byte range.
	// The caller MUST close Download.Body after reading.
	GetObject(ctx context.Context, bucket, key string, opts GetOptions) (*Download, error)

	// PutObject streams body into the object at key inside bucket. size may
	// be -1 when the content length is unknown (chunked upload). It returns
	// the metadata reported by the put acknowledgment; callers that need the
	// authoritative stored state should StatObject afterwards.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// RemoveObject deletes one object. The remote delete primitive is
	// idempotent: deleting an absent key succeeds.
	RemoveObject(ctx context.Context, bucket, key string) error

	// RemoveObjects deletes up to 1000 keys in one bulk call and returns the
	// per-key failures. A non-nil slice with entries means partial failure;
	// the error return is reserved for failures of the call itself.
	RemoveObjects(ctx context.Context, bucket string, keys []string) ([]RemoveError, error)

	// PresignGetURL returns a time-limited URL that allows anyone to download
	// the object at key inside bucket without credentials.
	PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
