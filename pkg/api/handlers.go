package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qsketch/qsketch/pkg/circuit"
	qerrors "github.com/qsketch/qsketch/pkg/errors"
	"github.com/qsketch/qsketch/pkg/export/qasm"
	"github.com/qsketch/qsketch/pkg/pipeline"
	"github.com/qsketch/qsketch/pkg/source"
	"github.com/qsketch/qsketch/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// RenderRequest is the body for POST /api/render.
type RenderRequest struct {
	Circuit source.Document  `json:"circuit"`
	Options pipeline.Options `json:"options"`
}

// RenderOptionsRequest is the body for POST /api/circuits/{id}/render.
// The circuit comes from the store, only options are supplied.
type RenderOptionsRequest struct {
	Options pipeline.Options `json:"options"`
}

// RenderResponse is the body returned by the render endpoints.
// Artifact values are base64-encoded by the JSON encoder.
type RenderResponse struct {
	CircuitHash string            `json:"circuit_hash"`
	QBits       int               `json:"qbits"`
	CBits       int               `json:"cbits"`
	Ops         int               `json:"ops"`
	CacheHit    bool              `json:"cache_hit"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

// CreateCircuitRequest is the body for POST /api/circuits.
type CreateCircuitRequest struct {
	Name    string          `json:"name"`
	Circuit source.Document `json:"circuit"`
}

// CircuitResponse describes a stored circuit.
type CircuitResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Circuit   source.Document `json:"circuit"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// =============================================================================
// Render Handlers
// =============================================================================

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.render(w, r, &req.Circuit, req.Options)
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req RenderOptionsRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "invalid request body"))
			return
		}
	}
	s.render(w, r, &rec.Circuit, req.Options)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *source.Document, opts pipeline.Options) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidFormat, err, "invalid render options"))
		return
	}

	result, err := s.Runner.Execute(r.Context(), doc, opts)
	if err != nil {
		writeError(w, classifyPipelineError(err))
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		CircuitHash: result.CircuitHash,
		QBits:       result.Circuit.NumQbits(),
		CBits:       result.Circuit.NumCbits(),
		Ops:         result.Circuit.OpCount(),
		CacheHit:    result.CacheInfo.RenderHit,
		Artifacts:   result.Artifacts,
	})
}

// classifyPipelineError attaches an error code to pipeline failures that
// carry only sentinel errors, so writeError can pick the right status.
func classifyPipelineError(err error) error {
	if qerrors.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, circuit.ErrNotExportable),
		errors.Is(err, qasm.ErrNotExportable),
		errors.Is(err, qasm.ErrUnsupportedCondition),
		errors.Is(err, qasm.ErrUnsupportedMeasurement):
		return qerrors.Wrap(qerrors.ErrCodeUnsupported, err, "circuit cannot be exported to the requested format")
	default:
		return qerrors.Wrap(qerrors.ErrCodeExport, err, "render failed")
	}
}

// =============================================================================
// Circuit CRUD Handlers
// =============================================================================

func (s *Server) handleCreateCircuit(w http.ResponseWriter, r *http.Request) {
	var req CreateCircuitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	name := req.Name
	if name == "" {
		name = req.Circuit.Name
	}
	if err := qerrors.ValidateCircuitName(name); err != nil {
		writeError(w, err)
		return
	}

	// Reject documents that do not build; storage is for valid circuits only.
	if _, err := source.Build(&req.Circuit); err != nil {
		writeError(w, err)
		return
	}

	rec := &store.Record{Name: name, Circuit: req.Circuit}
	if err := s.Store.Put(r.Context(), rec); err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeStorage, err, "store circuit"))
		return
	}

	writeJSON(w, http.StatusCreated, circuitResponse(rec))
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circuitResponse(rec))
}

func (s *Server) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	records, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeStorage, err, "list circuits"))
		return
	}

	resp := make([]CircuitResponse, 0, len(records))
	for i := range records {
		resp = append(resp, circuitResponse(records[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func circuitResponse(rec *store.Record) CircuitResponse {
	return CircuitResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Circuit:   rec.Circuit,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}
}
