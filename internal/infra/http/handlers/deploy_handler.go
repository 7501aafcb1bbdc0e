package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type DeployHandler struct {
	Deploy       *usecase.DeploySiteUseCase
	StrategyName string
}

func NewDeployHandler(deploy *usecase.DeploySiteUseCase, strategyName string) *DeployHandler {
	return &DeployHandler{Deploy: deploy, StrategyName: strategyName}
}

func (h *DeployHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req usecase.DeploySiteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	result, err := h.Deploy.Execute(r.Context(), req)
	if err != nil {
		middleware.RecordDeploy(h.StrategyName, false)
		if pe, ok := provider.AsError(err); ok {
			middleware.RecordProviderError(pe.Provider)
		}
		writeError(w, err)
		return
	}

	middleware.RecordDeploy(h.StrategyName, result.Published)
	writeJSON(w, http.StatusOK, result)
}
