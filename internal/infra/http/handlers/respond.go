package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto status codes. Upstream provider
// failures surface as 502 so callers can tell them from our own faults.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case usecase.IsNotFoundError(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case usecase.IsAmbiguousMatchError(err), provider.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case usecase.IsConfigurationError(err):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		if _, ok := provider.AsError(err); ok {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
