package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/harborview/gateway/internal/errs"
)

const (
	presignDefaultExpiry = 3600   // seconds
	presignMaxExpiry     = 604800 // 7 days, the S3 signature ceiling
)

// servePresignedURL issues a time-limited credential-free download URL for
// one object. Reached through the GET object wildcard route via the
// /presigned-url path suffix.
func (s *Server) servePresignedURL(w http.ResponseWriter, r *http.Request, bucket, key string) {
	if key == "" {
		writeError(w, r, errs.New(errs.CodeValidationInvalidKey, "object key is required"))
		return
	}

	expiresIn := presignDefaultExpiry
	if v := r.URL.Query().Get("expiresIn"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > presignMaxExpiry {
			writeError(w, r, errs.Newf(errs.CodeValidationInvalidParam,
				"expiresIn must be an integer between 1 and %d seconds", presignMaxExpiry))
			return
		}
		expiresIn = n
	}

	ttl := time.Duration(expiresIn) * time.Second
	signed, err := s.store.PresignGetURL(r.Context(), bucket, key, ttl)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"key":       key,
		"url":       signed,
		"expiresIn": expiresIn,
		"expiresAt": time.Now().UTC().Add(ttl),
	})
}
