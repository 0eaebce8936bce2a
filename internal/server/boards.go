package server

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/errors"
	"github.com/tessella/gridlock/pkg/store"
)

// handleListBoards returns the names of all stored boards.
//
//	GET /v1/boards -> {"boards": ["dashboard", ...]}
func (s *server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list boards"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"boards": names})
}

// handleGetBoard returns a stored board.
//
//	GET /v1/boards/{name} -> board JSON
func (s *server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	b, err := s.store.Load(r.Context(), name)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeBoardNotFound, "no board named %q", name))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "load board %q", name))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handlePutBoard stores the posted board under the URL name, replacing any
// existing board.
//
//	PUT /v1/boards/{name} <- board JSON
func (s *server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateBoardName(name); err != nil {
		s.writeError(w, err)
		return
	}

	b, err := board.ReadBoard(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := b.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	b.Name = name

	if err := s.store.Save(r.Context(), b); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "save board %q", name))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleDeleteBoard removes a stored board. Deleting a missing board is a
// no-op, matching the store contract.
//
//	DELETE /v1/boards/{name} -> 204
func (s *server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "delete board %q", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
