package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type LeadHandler struct {
	Leads *usecase.ManageLeadsUseCase
}

func NewLeadHandler(leads *usecase.ManageLeadsUseCase) *LeadHandler {
	return &LeadHandler{Leads: leads}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}

func (h *LeadHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req usecase.IngestLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := h.Leads.Ingest(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	updated, err := h.Leads.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
