package store

import (
	"io"
	"time"
)

// MaxKeysLimit is the provider ceiling on keys per listing page and on keys
// per bulk delete request.
const MaxKeysLimit = 1000

// BucketInfo describes a storage bucket.
type BucketInfo struct {
	// Name is the bucket name.
	Name string

	// CreatedAt is when the bucket was created.
	// May be zero if the backend does not expose creation time.
	CreatedAt time.Time
}

// ObjectInfo describes a single object stored in a bucket.
type ObjectInfo struct {
	// Key is the full object path within the bucket (e.g. "images/photo.jpg").
	Key string

	// Size is the byte size of the object. -1 if unknown.
	Size int64

	// ContentType is the MIME type (e.g. "image/jpeg").
	ContentType string

	// ETag is the object's entity tag / content hash, as returned by the backend.
	ETag string

	// LastModified is when the object was last written.
	LastModified time.Time

	// StorageClass is the backend storage tier (e.g. "STANDARD").
	// Empty when the backend does not report one.
	StorageClass string
}

// ListOptions controls one page of a bucket listing.
type ListOptions struct {
	// Prefix restricts results to objects whose key starts with this string.
	// Use "" to list everything in the bucket.
	Prefix string

	// Delimiter groups keys sharing a path segment into common prefixes.
	// Use "" to list recursively with no folder grouping.
	Delimiter string

	// MaxKeys caps the number of keys returned in this page.
	// 0 means the provider maximum (MaxKeysLimit).
	MaxKeys int

	// ContinuationToken resumes listing from a previous Page. Pass "" to
	// start from the beginning. A token is only valid for the exact
	// Prefix/Delimiter/MaxKeys it was issued under.
	ContinuationToken string
}

// Page is one page of a bucket listing.
type Page struct {
	// Objects are the leaf objects in this page.
	Objects []ObjectInfo

	// CommonPrefixes are the immediate child prefixes folded out by the
	// delimiter ("virtual folders"). Empty when no delimiter was used.
	CommonPrefixes []string

	// IsTruncated reports whether more results exist beyond this page.
	IsTruncated bool

	// NextContinuationToken fetches the next page when IsTruncated is true.
	NextContinuationToken string

	// KeyCount is the number of keys the backend returned in this page
	// (objects plus common prefixes), before any gateway-side filtering.
	KeyCount int
}

// ByteRange selects part of an object for download.
// Exactly one of the three forms is valid:
//   - Start ≥ 0, End ≥ Start: bytes Start through End inclusive
//   - Start ≥ 0, End == -1:  bytes Start through the end of the object
//   - Suffix > 0:            the last Suffix bytes
type ByteRange struct {
	Start  int64
	End    int64
	Suffix int64
}

// GetOptions controls a download.
type GetOptions struct {
	// Range restricts the download to a byte range. Nil fetches the whole object.
	Range *ByteRange
}

// Download is a streaming handle to an object's content.
// The caller MUST close Body after reading to avoid resource leaks.
type Download struct {
	// Body streams the (possibly partial) object content.
	Body io.ReadCloser

	// Info describes the object. For ranged reads, Size is the number of
	// bytes in this response, not the full object size.
	Info ObjectInfo

	// ContentRange is the backend's Content-Range header when a byte range
	// was honored, "" otherwise.
	ContentRange string
}

// RemoveError describes one key that failed inside a bulk delete.
type RemoveError struct {
	// Key is the object key that could not be deleted.
	Key string

	// Code is the normalized gateway error code for the failure.
	Code string

	// Message is a safe description of the failure.
	Message string
}
