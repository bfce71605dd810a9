package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harborview/gateway/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(f *fakeStore) http.Handler {
	log := logger.New(&logger.Config{Level: "error", Format: "json", Output: io.Discard})
	return NewServer(f, log).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// requireMeta asserts the response carries the mandatory meta block and
// returns the request id.
func requireMeta(t *testing.T, body map[string]any) string {
	t.Helper()
	m, ok := body["meta"].(map[string]any)
	require.True(t, ok, "response must carry a meta block")
	assert.NotEmpty(t, m["timestamp"])
	require.NotEmpty(t, m["requestId"])
	return m["requestId"].(string)
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "error envelope missing: %s", rec.Body.String())
	assert.Equal(t, code, e["code"])
	assert.NotEmpty(t, e["message"])
	requireMeta(t, body)
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "data block missing")
	return d
}
