// Package api exposes the gateway's HTTP surface: paginated listing,
// streaming transfer, batch mutation, and search over a remote object store.
//
// Every response carries a meta block with a timestamp and a unique request
// id. Errors always use the normalized envelope
// {status:"error", error:{code,message,details?}, meta}.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harborview/gateway/internal/errs"
	"github.com/harborview/gateway/internal/logger"
	"github.com/harborview/gateway/internal/store"
)

// Server wires the route handlers to the object store.
// It holds no mutable state: the remote store is the single source of truth.
type Server struct {
	store store.Store
	log   *logger.Logger
}

// NewServer returns a Server backed by st.
func NewServer(st store.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New(nil)
	}
	return &Server{store: st, log: log}
}

// Handler builds the chi router for the full HTTP surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRequestScope, s.withAccessLog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errs.New(errs.CodeObjectNotFound, "no such endpoint"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errs.New(errs.CodeValidationInvalidParam, "method not allowed for this endpoint"))
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/buckets", s.handleListBuckets)

	r.Route("/buckets/{bucket}", func(r chi.Router) {
		r.Get("/objects", s.handleListObjects)
		// The static batch route must coexist with the key wildcard;
		// chi prefers the static match.
		r.Delete("/objects/batch", s.handleBatchDelete)
		r.Head("/objects/*", s.handleHeadObject)
		r.Get("/objects/*", s.handleGetObject)
		r.Put("/objects/*", s.handlePutObject)
		r.Delete("/objects/*", s.handleDeleteObject)
		r.Delete("/folders", s.handleFolderDelete)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// handleHealth reports whether the remote store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"state": "ok"})
}

// handleListBuckets returns all buckets visible to the configured credentials.
func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.store.ListBuckets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]bucketDTO, len(buckets))
	for i, b := range buckets {
		out[i] = bucketDTO{Name: b.Name, CreationDate: b.CreatedAt}
	}
	writeData(w, r, http.StatusOK, map[string]any{"buckets": out})
}
