package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/qsketch/qsketch/pkg/cache"
	"github.com/qsketch/qsketch/pkg/pipeline"
	"github.com/qsketch/qsketch/pkg/source"
	"github.com/qsketch/qsketch/pkg/store"
)

func newTestServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	return NewServer(store.NewMemoryStore(), runner, logger)
}

func bellDocument() source.Document {
	return source.Document{
		Name:  "bell",
		QBits: 2,
		CBits: 2,
		Ops: []source.OpSpec{
			{Type: "gate", Gate: "h", Bits: []int{0}},
			{Type: "gate", Gate: "cx", Bits: []int{0, 1}},
			{Type: "measure", QBit: 0, CBit: 0},
			{Type: "measure", QBit: 1, CBit: 1},
		},
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestServer().Router()

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want ok status", rec.Body.String())
	}
}

func TestRenderInline(t *testing.T) {
	router := newTestServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/api/render", RenderRequest{
		Circuit: bellDocument(),
		Options: pipeline.Options{Formats: []string{"latex", "qasm"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.QBits != 2 || resp.Ops != 4 {
		t.Errorf("QBits = %d, Ops = %d, want 2 and 4", resp.QBits, resp.Ops)
	}
	if resp.CircuitHash == "" {
		t.Error("CircuitHash is empty")
	}
	if !strings.Contains(string(resp.Artifacts["latex"]), `\Qcircuit`) {
		t.Errorf("latex artifact missing \\Qcircuit:\n%s", resp.Artifacts["latex"])
	}
	if !strings.Contains(string(resp.Artifacts["qasm"]), "OPENQASM 2.0;") {
		t.Errorf("qasm artifact missing header:\n%s", resp.Artifacts["qasm"])
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	router := newTestServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/api/render", RenderRequest{
		Circuit: bellDocument(),
		Options: pipeline.Options{Formats: []string{"pdf"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestRenderInvalidCircuit(t *testing.T) {
	router := newTestServer().Router()

	doc := source.Document{Name: "bad", QBits: 1, Ops: []source.OpSpec{
		{Type: "gate", Gate: "nope", Bits: []int{0}},
	}}
	rec := doJSON(t, router, http.MethodPost, "/api/render", RenderRequest{Circuit: doc})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code == "" {
		t.Error("error response missing code")
	}
}

func TestRenderMalformedBody(t *testing.T) {
	router := newTestServer().Router()

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCircuitCRUD(t *testing.T) {
	router := newTestServer().Router()

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/circuits", CreateCircuitRequest{
		Name:    "bell",
		Circuit: bellDocument(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created CircuitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created circuit has no ID")
	}

	// Get
	rec = doJSON(t, router, http.MethodGet, "/api/circuits/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	// List
	rec = doJSON(t, router, http.MethodGet, "/api/circuits", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var listed []CircuitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("len(list) = %d, want 1", len(listed))
	}

	// Render stored
	rec = doJSON(t, router, http.MethodPost, "/api/circuits/"+created.ID+"/render", RenderOptionsRequest{
		Options: pipeline.Options{Formats: []string{"cqasm"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("render stored status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var rendered RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rendered); err != nil {
		t.Fatalf("decode render response: %v", err)
	}
	if !strings.Contains(string(rendered.Artifacts["cqasm"]), "version 1.0") {
		t.Errorf("cqasm artifact missing version line:\n%s", rendered.Artifacts["cqasm"])
	}

	// Delete
	rec = doJSON(t, router, http.MethodDelete, "/api/circuits/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	// Get after delete
	rec = doJSON(t, router, http.MethodGet, "/api/circuits/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateCircuitRejectsInvalid(t *testing.T) {
	router := newTestServer().Router()

	// Invalid name
	rec := doJSON(t, router, http.MethodPost, "/api/circuits", CreateCircuitRequest{
		Name:    "../escape",
		Circuit: bellDocument(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid name status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// Document that does not build
	rec = doJSON(t, router, http.MethodPost, "/api/circuits", CreateCircuitRequest{
		Name:    "bad",
		Circuit: source.Document{Name: "bad", QBits: 0},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid circuit status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListCircuitsMultiple(t *testing.T) {
	router := newTestServer().Router()

	names := []string{"bell", "ghz", "teleport"}
	for _, name := range names {
		doc := bellDocument()
		doc.Name = name
		rec := doJSON(t, router, http.MethodPost, "/api/circuits", CreateCircuitRequest{Circuit: doc})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q status = %d, want %d", name, rec.Code, http.StatusCreated)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/circuits", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var listed []CircuitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != len(names) {
		t.Fatalf("len(list) = %d, want %d", len(listed), len(names))
	}
	for i, want := range names {
		if listed[i].Name != want {
			t.Errorf("list[%d].Name = %q, want %q", i, listed[i].Name, want)
		}
		if listed[i].ID == "" {
			t.Errorf("list[%d].ID is empty", i)
		}
	}
}

func TestRenderStoredMissing(t *testing.T) {
	router := newTestServer().Router()

	rec := doJSON(t, router, http.MethodPost, "/api/circuits/nope/render", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
