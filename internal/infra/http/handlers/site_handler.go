package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hashtagwebpage/prospector/internal/infra/deploy"
)

// SiteHandler exposes locally saved preview sites. Only the local-push
// strategy keeps site files on disk; with a remote strategy Local is nil
// and these routes answer 404.
type SiteHandler struct {
	Local *deploy.LocalPush
}

func NewSiteHandler(local *deploy.LocalPush) *SiteHandler {
	return &SiteHandler{Local: local}
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Local == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "local site hosting is not enabled"})
		return
	}

	slugs, err := h.Local.SavedSlugs()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sites": slugs,
		"count": len(slugs),
	})
}

func (h *SiteHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.Local == nil {
		http.NotFound(w, r)
		return
	}

	slug := chi.URLParam(r, "slug")
	if err := deploy.ValidateSlug(slug); err != nil {
		http.NotFound(w, r)
		return
	}

	path, ok := h.Local.SitePath(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, path)
}
