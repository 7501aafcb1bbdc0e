package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type EmailHandler struct {
	Outreach *usecase.SendOutreachUseCase
}

func NewEmailHandler(outreach *usecase.SendOutreachUseCase) *EmailHandler {
	return &EmailHandler{Outreach: outreach}
}

func (h *EmailHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req usecase.SendOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := h.Outreach.Execute(r.Context(), req)
	if err != nil {
		if pe, ok := provider.AsError(err); ok {
			middleware.RecordProviderError(pe.Provider)
		}
		writeError(w, err)
		return
	}

	if out.Transitioned {
		middleware.RecordStageTransition(string(out.Stage))
	}
	writeJSON(w, http.StatusOK, out)
}
