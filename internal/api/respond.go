package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/logger"
)

// Meta is attached to every response, success or error.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
	Meta   Meta       `json:"meta"`
}

// meta builds the per-response metadata from the request context.
func meta(r *http.Request) Meta {
	return Meta{
		Timestamp: time.Now().UTC(),
		RequestID: requestIDFrom(r.Context()),
	}
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, envelope{
		Status: "success",
		Data:   data,
		Meta:   meta(r),
	})
}

// writeError normalizes err and writes an error envelope. The full error
// chain (including raw provider detail) is logged here; only the safe code,
// message, and details reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := errs.From(err)

	log := logger.FromContext(r.Context())
	log.ErrorWith("request failed", err, map[string]any{
		"code":   string(e.Code),
		"status": e.HTTPStatus(),
	})

	writeJSON(w, e.HTTPStatus(), envelope{
		Status: "error",
		Error: &errorBody{
			Code:    string(e.Code),
			Message: e.Message,
			Details: e.Details,
		},
		Meta: meta(r),
	})
}

// writeJSON serializes v with the given status. Handlers that need a custom
// top-level shape (search) call this directly.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding failures past this point cannot change the status line;
	// they surface as a truncated body and a closed connection.
	_ = json.NewEncoder(w).Encode(v)
}
