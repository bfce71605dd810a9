package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/store"
)

// fakeStore is an in-memory store.Store emulating S3 listing semantics:
// lexicographic key order, delimiter folding into common prefixes, and
// opaque continuation tokens.
type fakeStore struct {
	buckets []store.BucketInfo
	objects map[string]store.ObjectInfo
	content map[string][]byte

	pingErr error
	listErr error

	// removeFailures injects per-key bulk delete failures.
	removeFailures map[string]store.RemoveError

	// removeCalls records the key slices passed to RemoveObjects.
	removeCalls [][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		buckets: []store.BucketInfo{{Name: "demo", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
		objects: make(map[string]store.ObjectInfo),
		content: make(map[string][]byte),
	}
}

func (f *fakeStore) add(key string, body []byte, modified time.Time) {
	f.objects[key] = store.ObjectInfo{
		Key:          key,
		Size:         int64(len(body)),
		ContentType:  "application/octet-stream",
		ETag:         fmt.Sprintf("etag-%s", key),
		LastModified: modified,
		StorageClass: "STANDARD",
	}
	f.content[key] = body
}

func (f *fakeStore) sortedKeys(prefix string) []string {
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeStore) Close() error                   { return nil }

func (f *fakeStore) ListBuckets(ctx context.Context) ([]store.BucketInfo, error) {
	return f.buckets, nil
}

type listEntry struct {
	obj    *store.ObjectInfo
	prefix string
}

func (f *fakeStore) ListPage(ctx context.Context, bucket string, opts store.ListOptions) (*store.Page, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if bucket != "demo" {
		return nil, errs.New(errs.CodeBucketNotFound, "bucket does not exist")
	}

	maxKeys := opts.MaxKeys
	if maxKeys <= 0 || maxKeys > store.MaxKeysLimit {
		maxKeys = store.MaxKeysLimit
	}

	var entries []listEntry
	seenPrefix := make(map[string]bool)
	for _, key := range f.sortedKeys(opts.Prefix) {
		rest := strings.TrimPrefix(key, opts.Prefix)
		if opts.Delimiter != "" {
			if i := strings.Index(rest, opts.Delimiter); i >= 0 {
				cp := opts.Prefix + rest[:i+len(opts.Delimiter)]
				if !seenPrefix[cp] {
					seenPrefix[cp] = true
					entries = append(entries, listEntry{prefix: cp})
				}
				continue
			}
		}
		obj := f.objects[key]
		entries = append(entries, listEntry{obj: &obj})
	}

	// Tokens mark the last key seen, like real S3: they stay valid when
	// earlier keys are deleted between pages.
	if opts.ContinuationToken != "" {
		after, ok := strings.CutPrefix(opts.ContinuationToken, "after:")
		if !ok {
			return nil, errs.New(errs.CodeValidationInvalidParam, "invalid continuation token")
		}
		i := 0
		for i < len(entries) && entryKey(entries[i]) <= after {
			i++
		}
		entries = entries[i:]
	}

	end := maxKeys
	if end > len(entries) {
		end = len(entries)
	}

	page := &store.Page{KeyCount: end}
	for _, e := range entries[:end] {
		if e.obj != nil {
			page.Objects = append(page.Objects, *e.obj)
		} else {
			page.CommonPrefixes = append(page.CommonPrefixes, e.prefix)
		}
	}
	if end < len(entries) {
		page.IsTruncated = true
		page.NextContinuationToken = "after:" + entryKey(entries[end-1])
	}
	return page, nil
}

func entryKey(e listEntry) string {
	if e.obj != nil {
		return e.obj.Key
	}
	return e.prefix
}

func (f *fakeStore) StatObject(ctx context.Context, bucket, key string) (*store.ObjectInfo, error) {
	info, ok := f.objects[key]
	if !ok {
		return nil, errs.New(errs.CodeObjectNotFound, "object does not exist").
			WithDetail("bucket", bucket).WithDetail("key", key)
	}
	return &info, nil
}

func (f *fakeStore) GetObject(ctx context.Context, bucket, key string, opts store.GetOptions) (*store.Download, error) {
	info, ok := f.objects[key]
	if !ok {
		return nil, errs.New(errs.CodeObjectNotFound, "object does not exist").
			WithDetail("bucket", bucket).WithDetail("key", key)
	}

	body := f.content[key]
	total := int64(len(body))
	contentRange := ""

	if r := opts.Range; r != nil {
		var from, to int64
		switch {
		case r.Suffix > 0:
			from = total - r.Suffix
			if from < 0 {
				from = 0
			}
			to = total - 1
		case r.End < 0:
			from, to = r.Start, total-1
		default:
			from, to = r.Start, r.End
			if to > total-1 {
				to = total - 1
			}
		}
		if from >= total {
			return nil, errs.New(errs.CodeValidationInvalidRange, "requested range not satisfiable")
		}
		contentRange = fmt.Sprintf("bytes %d-%d/%d", from, to, total)
		body = body[from : to+1]
	}

	info.Size = int64(len(body))
	return &store.Download{
		Body:         io.NopCloser(bytes.NewReader(body)),
		Info:         info,
		ContentRange: contentRange,
	}, nil
}

func (f *fakeStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) (*store.ObjectInfo, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errs.Wrap(errs.CodeNetworkError, "upload interrupted", err)
	}
	f.objects[key] = store.ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  contentType,
		ETag:         fmt.Sprintf("etag-%s", key),
		LastModified: time.Now().UTC(),
	}
	f.content[key] = data
	info := f.objects[key]
	return &info, nil
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key string) error {
	// Idempotent like the real primitive: absent keys do not error.
	delete(f.objects, key)
	delete(f.content, key)
	return nil
}

func (f *fakeStore) RemoveObjects(ctx context.Context, bucket string, keys []string) ([]store.RemoveError, error) {
	f.removeCalls = append(f.removeCalls, append([]string(nil), keys...))

	var failures []store.RemoveError
	for _, key := range keys {
		if fail, ok := f.removeFailures[key]; ok {
			failures = append(failures, fail)
			continue
		}
		delete(f.objects, key)
		delete(f.content, key)
	}
	return failures, nil
}

func (f *fakeStore) PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://store.example/%s/%s?X-Amz-Expires=%d", bucket, key, int(ttl.Seconds())), nil
}

var _ store.Store = (*fakeStore)(nil)
