// Package minio provides a MinIO / S3-compatible implementation of store.Store.
//
// Usage:
//
//	cfg := store.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	s, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer s.Close()
//
//	page, err := s.ListPage(ctx, "demo", store.ListOptions{Delimiter: "/"})
package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/store"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Driver is a MinIO implementation of store.Store.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
	core   *miniogo.Core
}

// New connects to the store using the provided Config and returns a Driver.
// It calls Ping to validate the connection and credentials before returning.
func New(ctx context.Context, cfg *store.Config) (*Driver, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errs.New(errs.CodeAuthMissingCredentials, "store access key and secret key must be provided")
	}

	opts := &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}

	core, err := miniogo.NewCore(cfg.Endpoint, opts)
	if err != nil {
		return nil, errs.Wrap(errs.CodeNetworkError, "failed to create store client", err)
	}

	d := &Driver{client: core.Client, core: core}

	if err := d.Ping(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// --- store.Store implementation ---

// Ping verifies the store is reachable by listing buckets.
func (d *Driver) Ping(ctx context.Context) error {
	_, err := d.client.ListBuckets(ctx)
	if err != nil {
		return mapError(err, "ping failed", "", "")
	}
	return nil
}

// Close is a no-op — the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// ListBuckets returns all buckets accessible with the configured credentials.
func (d *Driver) ListBuckets(ctx context.Context) ([]store.BucketInfo, error) {
	raw, err := d.client.ListBuckets(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list buckets", "", "")
	}

	buckets := make([]store.BucketInfo, len(raw))
	for i, b := range raw {
		buckets[i] = store.BucketInfo{
			Name:      b.Name,
			CreatedAt: b.CreationDate,
		}
	}
	return buckets, nil
}

// ListPage returns one listing page. The Core API is used because the
// high-level ListObjects channel hides the continuation token the gateway
// must hand back to its own callers.
func (d *Driver) ListPage(ctx context.Context, bucket string, opts store.ListOptions) (*store.Page, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 || maxKeys > store.MaxKeysLimit {
		maxKeys = store.MaxKeysLimit
	}

	res, err := d.core.ListObjectsV2(bucket, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, maxKeys)
	if err != nil {
		return nil, mapError(err, "failed to list objects", bucket, "")
	}

	page := &store.Page{
		Objects:               make([]store.ObjectInfo, 0, len(res.Contents)),
		CommonPrefixes:        make([]string, 0, len(res.CommonPrefixes)),
		IsTruncated:           res.IsTruncated,
		NextContinuationToken: res.NextContinuationToken,
		KeyCount:              len(res.Contents) + len(res.CommonPrefixes),
	}

	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, store.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
			StorageClass: obj.StorageClass,
		})
	}
	for _, cp := range res.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, cp.Prefix)
	}

	return page, nil
}

// StatObject returns metadata for the object at key inside bucket
// without downloading its content.
func (d *Driver) StatObject(ctx context.Context, bucket, key string) (*store.ObjectInfo, error) {
	stat, err := d.client.StatObject(ctx, bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, "failed to stat object", bucket, key)
	}

	return &store.ObjectInfo{
		Key:          key,
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		ETag:         stat.ETag,
		LastModified: stat.LastModified,
		StorageClass: stat.StorageClass,
	}, nil
}

// GetObject opens a streaming handle to the object at key inside bucket.
// The Core API returns body, metadata, and response headers in one round
// trip, so ranged reads need no extra stat call.
// The caller MUST close Download.Body after reading.
func (d *Driver) GetObject(ctx context.Context, bucket, key string, opts store.GetOptions) (*store.Download, error) {
	getOpts := miniogo.GetObjectOptions{}
	if opts.Range != nil {
		getOpts.Set("Range", rangeSpec(opts.Range))
	}

	body, info, header, err := d.core.GetObject(ctx, bucket, key, getOpts)
	if err != nil {
		return nil, mapError(err, "failed to get object", bucket, key)
	}

	return &store.Download{
		Body: body,
		Info: store.ObjectInfo{
			Key:          key,
			Size:         info.Size,
			ContentType:  info.ContentType,
			ETag:         info.ETag,
			LastModified: info.LastModified,
			StorageClass: info.StorageClass,
		},
		ContentRange: header.Get("Content-Range"),
	}, nil
}

// PutObject streams body into the object at key. size -1 selects the SDK's
// streaming path for unknown-length (chunked) uploads.
func (d *Driver) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) (*store.ObjectInfo, error) {
	info, err := d.client.PutObject(ctx, bucket, key, body, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, mapError(err, "failed to put object", bucket, key)
	}

	return &store.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  contentType,
		LastModified: info.LastModified,
	}, nil
}

// RemoveObject deletes one object. S3 delete is idempotent, so a missing
// key is not an error.
func (d *Driver) RemoveObject(ctx context.Context, bucket, key string) error {
	err := d.client.RemoveObject(ctx, bucket, key, miniogo.RemoveObjectOptions{})
	if err != nil {
		return mapError(err, "failed to delete object", bucket, key)
	}
	return nil
}

// RemoveObjects deletes the given keys in one bulk call. Per-key failures
// are returned as RemoveError entries; the error return covers only a
// failure of the bulk call itself.
func (d *Driver) RemoveObjects(ctx context.Context, bucket string, keys []string) ([]store.RemoveError, error) {
	if len(keys) == 0 || len(keys) > store.MaxKeysLimit {
		return nil, errs.Newf(errs.CodeValidationInvalidParam,
			"bulk delete requires between 1 and %d keys", store.MaxKeysLimit)
	}

	objectsCh := make(chan miniogo.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- miniogo.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failures []store.RemoveError
	for rerr := range d.client.RemoveObjects(ctx, bucket, objectsCh, miniogo.RemoveObjectsOptions{}) {
		if rerr.Err == nil {
			continue
		}
		mapped := mapError(rerr.Err, "failed to delete object", bucket, rerr.ObjectName)
		failures = append(failures, store.RemoveError{
			Key:     rerr.ObjectName,
			Code:    string(mapped.Code),
			Message: mapped.Message,
		})
	}

	// A cancelled context aborts the whole bulk call, not just single keys.
	if err := ctx.Err(); err != nil {
		return nil, mapError(err, "bulk delete aborted", bucket, "")
	}

	return failures, nil
}

// PresignGetURL returns a time-limited public download URL for the object.
func (d *Driver) PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := d.client.PresignedGetObject(ctx, bucket, key, ttl, nil)
	if err != nil {
		return "", mapError(err, "failed to generate presigned URL", bucket, key)
	}
	return u.String(), nil
}

// rangeSpec renders a store.ByteRange as an RFC 7233 Range header value.
func rangeSpec(r *store.ByteRange) string {
	switch {
	case r.Suffix > 0:
		return fmt.Sprintf("bytes=-%d", r.Suffix)
	case r.End < 0:
		return fmt.Sprintf("bytes=%d-", r.Start)
	default:
		return fmt.Sprintf("bytes=%d-%d", r.Start, r.End)
	}
}
