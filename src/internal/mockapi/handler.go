// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mockapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
)

// DefaultTypes are the business associate types served unless overridden.
var DefaultTypes = []string{"vendor", "customer"}

// maxBodyBytes bounds write bodies.
const maxBodyBytes = 1 << 20

// Server is the mock API HTTP handler.
type Server struct {
	mux     *http.ServeMux
	store   *Store
	schemas *bodySchemas
	types   []string
	log     logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithTypes replaces the accepted business associate types.
func WithTypes(types ...string) Option {
	return func(s *Server) {
		if len(types) > 0 {
			s.types = types
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer builds the handler over a migrated database.
func NewServer(db *sql.DB, opts ...Option) (*Server, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:     http.NewServeMux(),
		store:   NewStore(db),
		schemas: schemas,
		types:   DefaultTypes,
		log:     logger.NewMCPLogger(nil, true),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /api/v1/{type}", s.handleList)
	s.mux.HandleFunc("POST /api/v1/{type}", s.handleCreate)
	s.mux.HandleFunc("PUT /api/v1/{type}/{id}", s.handleUpdate)
	s.mux.HandleFunc("DELETE /api/v1/{type}/{id}", s.handleDelete)
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Printf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

type envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Message: msg})
}

// entityType returns the {type} path value, writing a 404 when the type is
// not served.
func (s *Server) entityType(w http.ResponseWriter, r *http.Request) (string, bool) {
	t := r.PathValue("type")
	if !slices.Contains(s.types, t) {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("unknown business associate type %q", t))
		return "", false
	}
	return t, true
}

func (s *Server) entityID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeFailure(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

// readChanges validates and decodes a write body.
func (s *Server) readChanges(w http.ResponseWriter, r *http.Request, create bool) (Changes, bool) {
	body, err := gc.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "failed to read request body")
		return Changes{}, false
	}

	schema := s.schemas.update
	if create {
		schema = s.schemas.create
	}
	if err := validate(schema, body); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return Changes{}, false
	}

	c, err := DecodeChanges(body)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return Changes{}, false
	}
	return c, true
}

func (s *Server) storeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeFailure(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.Warnf("store error: %v", err)
	writeFailure(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	t, ok := s.entityType(w, r)
	if !ok {
		return
	}

	records, err := s.store.List(r.Context(), t)
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	count := len(records)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: records})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.entityType(w, r)
	if !ok {
		return
	}
	c, ok := s.readChanges(w, r, true)
	if !ok {
		return
	}

	rec, err := s.store.Create(r.Context(), t, c)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: rec, Message: "created"})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.entityType(w, r)
	if !ok {
		return
	}
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	c, ok := s.readChanges(w, r, false)
	if !ok {
		return
	}

	rec, err := s.store.Update(r.Context(), t, id, c)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rec, Message: "updated"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := s.entityType(w, r)
	if !ok {
		return
	}
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), t, id); err != nil {
		s.storeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: fmt.Sprintf("business associate %d deleted", id)})
}

var _ http.Handler = (*Server)(nil)
