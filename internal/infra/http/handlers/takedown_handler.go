package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/cloudflare"
)

// TakedownHandler removes a hosting project and every deployment under
// it. Only meaningful with the manifest-upload strategy; CF is nil
// otherwise and the route answers 404.
type TakedownHandler struct {
	CF  *cloudflare.Client
	Log *slog.Logger
}

func NewTakedownHandler(cf *cloudflare.Client, log *slog.Logger) *TakedownHandler {
	return &TakedownHandler{CF: cf, Log: log}
}

type TakedownRequest struct {
	ProjectName string `json:"projectName"`
}

func (h *TakedownHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.CF == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "hosting takedown requires the manifest-upload strategy"})
		return
	}

	var req TakedownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.ProjectName == "" {
		badRequest(w, "projectName is required")
		return
	}

	if err := h.CF.DeleteProject(req.ProjectName); err != nil {
		writeError(w, err)
		return
	}

	h.Log.Info("hosting project deleted", slog.String("project", req.ProjectName))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
