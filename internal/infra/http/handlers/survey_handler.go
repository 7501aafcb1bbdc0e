package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type SurveyHandler struct {
	Survey *usecase.RecordSurveyUseCase
}

func NewSurveyHandler(survey *usecase.RecordSurveyUseCase) *SurveyHandler {
	return &SurveyHandler{Survey: survey}
}

func (h *SurveyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req usecase.RecordSurveyInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := h.Survey.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	if out.Transitioned {
		middleware.RecordStageTransition(string(out.Stage))
	}
	writeJSON(w, http.StatusOK, out)
}
