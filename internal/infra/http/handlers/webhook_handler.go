package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/stripe"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

const maxWebhookBody = 1 << 20

// WebhookHandler receives payment events. The signature is verified over
// the raw body before any JSON decoding; without a configured secret the
// check is skipped, which is only acceptable for local runs.
type WebhookHandler struct {
	Confirm       *usecase.ConfirmPaymentUseCase
	SigningSecret string
	Log           *slog.Logger
}

func NewWebhookHandler(confirm *usecase.ConfirmPaymentUseCase, signingSecret string, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{Confirm: confirm, SigningSecret: signingSecret, Log: log}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		badRequest(w, "unreadable body")
		return
	}

	if h.SigningSecret != "" {
		sig := r.Header.Get("Stripe-Signature")
		if !stripe.VerifySignature(body, sig, h.SigningSecret) {
			h.Log.Warn("webhook signature rejected")
			badRequest(w, "Invalid signature")
			return
		}
	} else {
		h.Log.Warn("webhook signature check skipped: no signing secret configured")
	}

	var event stripe.Event
	if err := json.Unmarshal(body, &event); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := h.Confirm.Execute(r.Context(), event)
	if err != nil {
		writeError(w, err)
		return
	}

	switch out.Action {
	case usecase.PaymentOrphan:
		middleware.RecordOrphanPaymentEvent()
	case usecase.PaymentConverted:
		middleware.RecordStageTransition(string(entity.StageCustomer))
	}

	writeJSON(w, http.StatusOK, out)
}
