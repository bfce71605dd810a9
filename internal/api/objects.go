package api

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/logger"
	"github.com/harborview/gateway/internal/store"
)

// bucketParam extracts and validates the bucket path segment.
func bucketParam(r *http.Request) (string, error) {
	bucket := chi.URLParam(r, "bucket")
	if bucket == "" {
		return "", errs.New(errs.CodeValidationInvalidParam, "bucket name is required")
	}
	return bucket, nil
}

// keyParam extracts the object key: the percent-decoded remainder of the
// path after the objects segment.
func keyParam(r *http.Request) (string, error) {
	key := chi.URLParam(r, "*")
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}
	if key == "" {
		return "", errs.New(errs.CodeValidationInvalidKey, "object key is required")
	}
	return key, nil
}

// listFilters are the client-side post-filters applied after a remote page
// is received. A filtered page may come back empty while more pages remain.
type listFilters struct {
	modifiedAfter  time.Time
	modifiedBefore time.Time
	minSize        int64
	maxSize        int64
}

func (f *listFilters) active() bool {
	return !f.modifiedAfter.IsZero() || !f.modifiedBefore.IsZero() || f.minSize > 0 || f.maxSize > 0
}

func (f *listFilters) match(obj store.ObjectInfo) bool {
	if !f.modifiedAfter.IsZero() && !obj.LastModified.After(f.modifiedAfter) {
		return false
	}
	if !f.modifiedBefore.IsZero() && !obj.LastModified.Before(f.modifiedBefore) {
		return false
	}
	if f.minSize > 0 && obj.Size < f.minSize {
		return false
	}
	if f.maxSize > 0 && obj.Size > f.maxSize {
		return false
	}
	return true
}

func parseListFilters(q url.Values) (*listFilters, error) {
	f := &listFilters{}
	var err error

	if v := q.Get("modifiedAfter"); v != "" {
		if f.modifiedAfter, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, errs.New(errs.CodeValidationInvalidParam, "modifiedAfter must be an RFC3339 timestamp")
		}
	}
	if v := q.Get("modifiedBefore"); v != "" {
		if f.modifiedBefore, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, errs.New(errs.CodeValidationInvalidParam, "modifiedBefore must be an RFC3339 timestamp")
		}
	}
	if v := q.Get("minSize"); v != "" {
		if f.minSize, err = strconv.ParseInt(v, 10, 64); err != nil || f.minSize < 0 {
			return nil, errs.New(errs.CodeValidationInvalidParam, "minSize must be a non-negative integer")
		}
	}
	if v := q.Get("maxSize"); v != "" {
		if f.maxSize, err = strconv.ParseInt(v, 10, 64); err != nil || f.maxSize < 0 {
			return nil, errs.New(errs.CodeValidationInvalidParam, "maxSize must be a non-negative integer")
		}
	}
	return f, nil
}

// parseMaxKeys parses a maxKeys query value within [1, limit]; def applies
// when the parameter is absent.
func parseMaxKeys(q url.Values, def, limit int) (int, error) {
	v := q.Get("maxKeys")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > limit {
		return 0, errs.Newf(errs.CodeValidationInvalidParam, "maxKeys must be an integer between 1 and %d", limit)
	}
	return n, nil
}

// handleListObjects is the pagination engine: one remote page per call, with
// delimiter-based folder grouping and optional client-side post-filters.
func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()

	delimiter := "/"
	if q.Has("delimiter") {
		delimiter = q.Get("delimiter")
	}

	maxKeys, err := parseMaxKeys(q, store.MaxKeysLimit, store.MaxKeysLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filters, err := parseListFilters(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.store.ListPage(r.Context(), bucket, store.ListOptions{
		Prefix:            q.Get("prefix"),
		Delimiter:         delimiter,
		MaxKeys:           maxKeys,
		ContinuationToken: q.Get("continuationToken"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	objects := make([]objectDTO, 0, len(page.Objects))
	for _, obj := range page.Objects {
		if filters.active() && !filters.match(obj) {
			continue
		}
		objects = append(objects, toObjectDTO(obj))
	}

	folders := page.CommonPrefixes
	if folders == nil {
		folders = []string{}
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"objects": objects,
		"folders": folders,
		"pagination": paginationDTO{
			IsTruncated: page.IsTruncated,
			// KeyCount is the remote page's count, pre-filter, so callers
			// can observe scan progress even when a page filters to zero.
			KeyCount:              page.KeyCount,
			NextContinuationToken: page.NextContinuationToken,
		},
	})
}

// handleHeadObject returns object metadata as headers only.
func (s *Server) handleHeadObject(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := keyParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := s.store.StatObject(r.Context(), bucket, key)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setObjectHeaders(w, info)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.WriteHeader(http.StatusOK)
}

// handleGetObject streams an object to the client, honoring a single byte
// range. The body is piped straight from the store: backpressure comes from
// the client socket, and a client disconnect cancels the store read through
// the request context.
//
// The presigned-url subresource shares this wildcard route and is dispatched
// by path suffix.
func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := keyParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if trimmed, ok := strings.CutSuffix(key, "/presigned-url"); ok {
		s.servePresignedURL(w, r, bucket, trimmed)
		return
	}

	var opts store.GetOptions
	if rangeHdr := r.Header.Get("Range"); rangeHdr != "" {
		br, err := parseRangeHeader(rangeHdr)
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts.Range = br
	}

	dl, err := s.store.GetObject(r.Context(), bucket, key, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer dl.Body.Close()

	setObjectHeaders(w, &dl.Info)
	w.Header().Set("Content-Disposition", `attachment; filename="`+url.PathEscape(objectName(key))+`"`)
	if dl.Info.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.Info.Size, 10))
	}

	status := http.StatusOK
	if dl.ContentRange != "" {
		w.Header().Set("Content-Range", dl.ContentRange)
		status = http.StatusPartialContent
	}
	w.WriteHeader(status)

	if _, err := io.Copy(w, dl.Body); err != nil {
		// Headers are gone; nothing to send. Usually the client went away.
		logger.FromContext(r.Context()).WarnWith("download stream interrupted", map[string]any{
			"bucket": bucket,
			"key":    key,
			"error":  err.Error(),
		})
	}
}

// handlePutObject streams the request body into the store without
// materializing it. Content-Length is optional: -1 selects the chunked
// upload path. After the store acknowledges, the object is re-stat'ed so the
// confirmation reflects the stored state rather than the bare put ack.
func (s *Server) handlePutObject(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := keyParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := s.store.PutObject(r.Context(), bucket, key, r.Body, r.ContentLength, contentType); err != nil {
		writeError(w, r, err)
		return
	}

	info, err := s.store.StatObject(r.Context(), bucket, key)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusCreated, map[string]any{
		"key":          key,
		"etag":         info.ETag,
		"size":         info.Size,
		"contentType":  info.ContentType,
		"lastModified": info.LastModified,
	})
}

// handleDeleteObject deletes one object. The remote delete primitive is
// idempotent, so deleting an absent key still reports deleted=true.
func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := keyParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.RemoveObject(r.Context(), bucket, key); err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"key":     key,
		"deleted": true,
	})
}

// setObjectHeaders writes the metadata headers shared by HEAD and GET.
func setObjectHeaders(w http.ResponseWriter, info *store.ObjectInfo) {
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Accept-Ranges", "bytes")
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+strings.Trim(info.ETag, `"`)+`"`)
	}
	if !info.LastModified.IsZero() {
		w.Header().Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	}
	if info.StorageClass != "" {
		w.Header().Set("X-Amz-Storage-Class", info.StorageClass)
	}
}

// parseRangeHeader parses a single-range RFC 7233 header value:
// "bytes=a-b", "bytes=a-", or "bytes=-n". Multi-range requests are rejected.
func parseRangeHeader(value string) (*store.ByteRange, error) {
	spec, ok := strings.CutPrefix(value, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return nil, errs.New(errs.CodeValidationInvalidRange, "range header must be a single bytes= range")
	}

	start, end, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, errs.New(errs.CodeValidationInvalidRange, "malformed range header")
	}

	// Suffix form: bytes=-n
	if start == "" {
		n, err := strconv.ParseInt(end, 10, 64)
		if err != nil || n <= 0 {
			return nil, errs.New(errs.CodeValidationInvalidRange, "malformed suffix range")
		}
		return &store.ByteRange{Suffix: n}, nil
	}

	from, err := strconv.ParseInt(start, 10, 64)
	if err != nil || from < 0 {
		return nil, errs.New(errs.CodeValidationInvalidRange, "malformed range start")
	}

	// Open-ended form: bytes=a-
	if end == "" {
		return &store.ByteRange{Start: from, End: -1}, nil
	}

	to, err := strconv.ParseInt(end, 10, 64)
	if err != nil || to < from {
		return nil, errs.New(errs.CodeValidationInvalidRange, "malformed range end")
	}
	return &store.ByteRange{Start: from, End: to}, nil
}
