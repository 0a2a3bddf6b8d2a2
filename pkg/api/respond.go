package api

import (
	"encoding/json"
	"errors"
	"net/http"

	qerrors "github.com/qsketch/qsketch/pkg/errors"
	"github.com/qsketch/qsketch/pkg/store"
)

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error string       `json:"error"`
	Code  qerrors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status using its error code and
// writes a JSON error body. Unclassified errors become 500s with a
// generic message so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	code := qerrors.GetCode(err)
	status := statusForCode(code)
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
		code = qerrors.ErrCodeCircuitNotFound
	}

	msg := qerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func statusForCode(code qerrors.Code) int {
	switch code {
	case qerrors.ErrCodeInvalidInput,
		qerrors.ErrCodeInvalidCircuit,
		qerrors.ErrCodeInvalidGate,
		qerrors.ErrCodeInvalidBit,
		qerrors.ErrCodeInvalidFormat,
		qerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case qerrors.ErrCodeNotFound,
		qerrors.ErrCodeCircuitNotFound,
		qerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case qerrors.ErrCodeExport,
		qerrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
