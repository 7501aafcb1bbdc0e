package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type SearchHandler struct {
	Search *usecase.SearchLeadsUseCase
}

func NewSearchHandler(search *usecase.SearchLeadsUseCase) *SearchHandler {
	return &SearchHandler{Search: search}
}

type SearchRequest struct {
	Category string `json:"category"`
	City     string `json:"city"`
}

func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := h.Search.Execute(r.Context(), req.Category, req.City)
	if err != nil {
		if pe, ok := provider.AsError(err); ok {
			middleware.RecordProviderError(pe.Provider)
		}
		writeError(w, err)
		return
	}

	middleware.RecordCacheLookup(out.Cached)
	writeJSON(w, http.StatusOK, out)
}
