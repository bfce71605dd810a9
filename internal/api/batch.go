package api

import (
	"encoding/json"
	"net/http"

	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/logger"
	"github.com/harborview/gateway/internal/store"
)

type batchDeleteRequest struct {
	Keys []string `json:"keys"`
}

type batchKeyError struct {
	Key     string `json:"key"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleBatchDelete deletes 1–1000 keys in one bulk store call.
//
// Partial-failure semantics: the HTTP status stays 200 even when some keys
// fail; callers must inspect the errors array. deletedCount always equals
// len(deleted), and every deleted key was present in the request.
func (s *Server) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req batchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errs.Wrap(errs.CodeValidationInvalidParam, "request body must be JSON with a keys array", err))
		return
	}

	if len(req.Keys) == 0 || len(req.Keys) > store.MaxKeysLimit {
		writeError(w, r, errs.Newf(errs.CodeValidationInvalidParam,
			"keys must contain between 1 and %d entries", store.MaxKeysLimit))
		return
	}
	for _, key := range req.Keys {
		if key == "" {
			writeError(w, r, errs.New(errs.CodeValidationInvalidParam, "keys must not contain empty strings"))
			return
		}
	}

	failures, err := s.store.RemoveObjects(r.Context(), bucket, req.Keys)
	if err != nil {
		writeError(w, r, err)
		return
	}

	failed := make(map[string]bool, len(failures))
	keyErrors := make([]batchKeyError, 0, len(failures))
	for _, f := range failures {
		failed[f.Key] = true
		keyErrors = append(keyErrors, batchKeyError{Key: f.Key, Code: f.Code, Message: f.Message})
	}

	deleted := make([]string, 0, len(req.Keys))
	for _, key := range req.Keys {
		if !failed[key] {
			deleted = append(deleted, key)
		}
	}

	data := map[string]any{
		"deletedCount": len(deleted),
		"deleted":      deleted,
	}
	if len(keyErrors) > 0 {
		data["errors"] = keyErrors
	}
	writeData(w, r, http.StatusOK, data)
}

// handleFolderDelete removes every object under a prefix with an iterative
// list→delete loop: list up to 1000 keys, bulk-delete them, follow the
// continuation token, stop when the listing is exhausted. The loop is
// sequential and retry-free; per-object delete failures are logged and
// counted but do not abort the run, while a listing failure aborts it.
func (s *Server) handleFolderDelete(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		writeError(w, r, errs.New(errs.CodeValidationInvalidParam, "prefix query parameter is required"))
		return
	}

	log := logger.FromContext(r.Context())

	var (
		totalDeleted int
		batchCount   int
		token        string
	)

	for {
		page, err := s.store.ListPage(r.Context(), bucket, store.ListOptions{
			Prefix:            prefix,
			MaxKeys:           store.MaxKeysLimit,
			ContinuationToken: token,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		if len(page.Objects) > 0 {
			keys := make([]string, len(page.Objects))
			for i, obj := range page.Objects {
				keys[i] = obj.Key
			}

			failures, err := s.store.RemoveObjects(r.Context(), bucket, keys)
			if err != nil {
				writeError(w, r, err)
				return
			}

			batchCount++
			totalDeleted += len(keys) - len(failures)

			for _, f := range failures {
				log.WarnWith("folder delete: object failed, continuing", map[string]any{
					"bucket": bucket,
					"key":    f.Key,
					"code":   f.Code,
				})
			}
		}

		if !page.IsTruncated || page.NextContinuationToken == "" {
			break
		}
		token = page.NextContinuationToken
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"prefix":       prefix,
		"totalDeleted": totalDeleted,
		"batchCount":   batchCount,
	})
}
