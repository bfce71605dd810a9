package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/store"
)

const searchDefaultMaxKeys = 100

type searchResult struct {
	objectDTO
	MatchType string `json:"matchType"` // "filename" or "path"
}

type searchMetaDTO struct {
	Query        string  `json:"query"`
	Prefix       string  `json:"prefix,omitempty"`
	TotalMatches int     `json:"totalMatches"`
	ScannedKeys  int     `json:"scannedKeys"`
	SearchTime   float64 `json:"searchTime"` // wall-clock seconds
}

type searchResponse struct {
	Status     string         `json:"status"`
	Data       []searchResult `json:"data"`
	SearchMeta searchMetaDTO  `json:"searchMeta"`
	Pagination paginationDTO  `json:"pagination"`
	Meta       Meta           `json:"meta"`
}

// handleSearch scans one remote listing page (≤1000 keys) for a
// case-insensitive substring match against the filename and the full key.
// Hits on the trailing path segment classify as "filename"; hits found only
// in a parent segment classify as "path".
//
// totalMatches counts matches within the scanned page only — not a
// corpus-wide total. Deeper results require re-issuing the search with the
// returned continuation token.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	bucket, err := bucketParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		writeError(w, r, errs.New(errs.CodeValidationMissingQuery, "q query parameter is required"))
		return
	}

	maxKeys, err := parseMaxKeys(q, searchDefaultMaxKeys, store.MaxKeysLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()

	page, err := s.store.ListPage(r.Context(), bucket, store.ListOptions{
		Prefix:            q.Get("prefix"),
		MaxKeys:           store.MaxKeysLimit,
		ContinuationToken: q.Get("continuationToken"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	needle := strings.ToLower(term)
	results := make([]searchResult, 0, maxKeys)
	totalMatches := 0

	for _, obj := range page.Objects {
		matchType, ok := classifyMatch(obj.Key, needle)
		if !ok {
			continue
		}
		totalMatches++
		if len(results) < maxKeys {
			results = append(results, searchResult{
				objectDTO: toObjectDTO(obj),
				MatchType: matchType,
			})
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Status: "success",
		Data:   results,
		SearchMeta: searchMetaDTO{
			Query:        term,
			Prefix:       q.Get("prefix"),
			TotalMatches: totalMatches,
			ScannedKeys:  len(page.Objects),
			SearchTime:   time.Since(start).Seconds(),
		},
		Pagination: paginationDTO{
			IsTruncated:           page.IsTruncated,
			NextContinuationToken: page.NextContinuationToken,
		},
		Meta: meta(r),
	})
}

// classifyMatch reports whether key matches needle (already lowercased) and
// where: "filename" when the final path segment matches, "path" when only a
// parent segment does.
func classifyMatch(key, needle string) (string, bool) {
	if strings.Contains(strings.ToLower(objectName(key)), needle) {
		return "filename", true
	}
	if strings.Contains(strings.ToLower(key), needle) {
		return "path", true
	}
	return "", false
}
