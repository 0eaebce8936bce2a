package server

import (
	"encoding/json"
	"net/http"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/errors"
)

// layoutRequest is the shared request shape for the /v1/layout endpoints.
// Widgets and config are passed through to the engine untouched, so the
// HTTP layer never re-encodes client state.
type layoutRequest struct {
	Widgets   json.RawMessage `json:"widgets"`
	Config    json.RawMessage `json:"config"`
	DraggedID string          `json:"dragged_id,omitempty"`
	NewWidget json.RawMessage `json:"new_widget,omitempty"`
}

// decodeLayoutRequest reads and validates the common request envelope.
func decodeLayoutRequest(r *http.Request) (*layoutRequest, error) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "parse request body")
	}
	if len(req.Widgets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request is missing widgets")
	}
	if len(req.Config) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request is missing config")
	}
	return &req, nil
}

// handleOptimize compacts the posted widgets toward the top.
//
//	POST /v1/layout/optimize
//	{"widgets": [...], "config": {...}}
//	-> {"widgets": [...]}
func (s *server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := board.OptimizeLayout(r.Context(), req.Widgets, req.Config)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"widgets": out})
}

// handleResolve reflows the posted widgets around the dragged widget.
//
//	POST /v1/layout/resolve
//	{"widgets": [...], "config": {...}, "dragged_id": "w1"}
//	-> {"widgets": [...]}
func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.DraggedID == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request is missing dragged_id"))
		return
	}

	out, err := board.ResolveConflictsLayout(r.Context(), req.Widgets, req.Config, req.DraggedID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"widgets": out})
}

// handlePosition finds the first free position for a new widget.
//
//	POST /v1/layout/position
//	{"widgets": [...], "config": {...}, "new_widget": {"position": {"w": 4, "h": 2}}}
//	-> {"position": {"x": 0, "y": 0, "w": 4, "h": 2}}
func (s *server) handlePosition(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.NewWidget) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request is missing new_widget"))
		return
	}

	out, err := board.FindBestPosition(r.Context(), req.Widgets, req.NewWidget, req.Config)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"position": out})
}
