package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/stripe"
	"github.com/hashtagwebpage/prospector/internal/infra/queue"
)

// Payment event outcomes, reported back to the webhook caller.
const (
	PaymentIgnored   = "ignored"        // not a payment-confirmation event type
	PaymentOrphan    = "no_lead_id"     // no resolvable lead; kept for manual reconciliation
	PaymentNoChange  = "no_change"      // lead already terminal (duplicate delivery) or not yet contacted
	PaymentConverted = "lead_converted" // stage moved to customer
)

type ConfirmPaymentOutput struct {
	Action string `json:"action"`
	LeadID string `json:"leadId,omitempty"`
}

// ConfirmPaymentUseCase reacts to a verified payment webhook. The webhook
// may be delivered more than once; events for leads already in a terminal
// stage are acknowledged without re-applying side effects.
type ConfirmPaymentUseCase struct {
	Repo     entity.LeadRepository
	Producer queue.EventProducer
	Log      *slog.Logger
}

func NewConfirmPaymentUseCase(repo entity.LeadRepository, producer queue.EventProducer, log *slog.Logger) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{Repo: repo, Producer: producer, Log: log}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, event stripe.Event) (*ConfirmPaymentOutput, error) {
	if !stripe.PaymentEvents[event.Type] {
		return &ConfirmPaymentOutput{Action: PaymentIgnored}, nil
	}

	obj := event.Data.Object
	leadID := obj.Metadata["lead_id"]
	if leadID == "" {
		// Accepted, not failed: the provider would retry a non-2xx
		// forever. Logged for manual reconciliation.
		uc.Log.Warn("payment event without lead_id metadata",
			slog.String("event_id", event.ID), slog.String("event_type", event.Type))
		return &ConfirmPaymentOutput{Action: PaymentOrphan}, nil
	}

	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		uc.Log.Warn("payment event for unknown lead",
			slog.String("event_id", event.ID), slog.String("lead_id", leadID))
		return &ConfirmPaymentOutput{Action: PaymentOrphan, LeadID: leadID}, nil
	}

	if !lead.Stage.CanTransition(entity.StageCustomer) {
		uc.Log.Info("payment event left stage unchanged",
			slog.String("lead_id", leadID), slog.String("stage", string(lead.Stage)))
		return &ConfirmPaymentOutput{Action: PaymentNoChange, LeadID: leadID}, nil
	}

	now := time.Now()
	stage := entity.StageCustomer
	customer := obj.Customer
	if customer == "" {
		customer = "N/A"
	}
	note := fmt.Sprintf("Payment received. Customer ID: %s. Amount: $%.2f",
		customer, float64(obj.AmountTotal)/100)
	notes := entity.PrependNote(lead.Notes, note, now)

	fromStage := lead.Stage
	updated, err := uc.Repo.Update(ctx, leadID, entity.LeadPatch{
		Stage:           &stage,
		ConvertedAt:     &now,
		ClearFollowUpAt: true,
		Notes:           &notes,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return &ConfirmPaymentOutput{Action: PaymentOrphan, LeadID: leadID}, nil
	}

	uc.Log.Info("lead promoted to customer", slog.String("lead_id", leadID))

	if err := uc.Producer.PublishLeadEvent(ctx, queue.LeadEventPayload{
		LeadID:     leadID,
		Name:       updated.Name,
		Email:      updated.Email,
		FromStage:  string(fromStage),
		ToStage:    string(entity.StageCustomer),
		Origin:     "payment-webhook",
		OccurredAt: now,
	}); err != nil {
		uc.Log.Warn("lead event publish failed", slog.String("err", err.Error()))
	}

	return &ConfirmPaymentOutput{Action: PaymentConverted, LeadID: leadID}, nil
}
