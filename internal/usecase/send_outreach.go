package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/queue"
)

type SendOutreachInput struct {
	LeadID string `json:"leadId"`
	To     string `json:"to"`
}

type SendOutreachOutput struct {
	LeadID       string       `json:"leadId"`
	Stage        entity.Stage `json:"stage"`
	ReceiptID    string       `json:"receiptId,omitempty"`
	Transitioned bool         `json:"transitioned"`
}

// SendOutreachUseCase emails a prospect their preview link and moves the
// lead from new to contacted once delivery is accepted.
type SendOutreachUseCase struct {
	Repo     entity.LeadRepository
	Email    EmailSender
	Producer queue.EventProducer
	Log      *slog.Logger
}

func NewSendOutreachUseCase(repo entity.LeadRepository, email EmailSender, producer queue.EventProducer, log *slog.Logger) *SendOutreachUseCase {
	return &SendOutreachUseCase{Repo: repo, Email: email, Producer: producer, Log: log}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, input SendOutreachInput) (*SendOutreachOutput, error) {
	if input.LeadID == "" {
		return nil, &ValidationError{Field: "leadId", Message: "is required"}
	}
	if input.To == "" {
		return nil, &ValidationError{Field: "to", Message: "is required"}
	}

	lead, err := uc.Repo.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, &NotFoundError{Resource: "lead", Key: input.LeadID}
	}
	if lead.PreviewURL == "" {
		return nil, &ValidationError{Field: "leadId", Message: "lead has no deployed preview site"}
	}

	subject := fmt.Sprintf("Your free website preview is ready, %s!", lead.Name)
	receiptID, err := uc.Email.SendEmail(input.To, subject, outreachBody(lead))
	if err != nil {
		return nil, err
	}

	out := &SendOutreachOutput{LeadID: lead.ID, Stage: lead.Stage, ReceiptID: receiptID}

	// The email went out either way; only a lead still in "new" moves.
	// Terminal and already-contacted leads keep their stage.
	if !lead.Stage.CanTransition(entity.StageContacted) {
		uc.Log.Info("outreach sent without stage change",
			slog.String("lead_id", lead.ID), slog.String("stage", string(lead.Stage)))
		return out, nil
	}

	now := time.Now()
	stage := entity.StageContacted
	notes := entity.PrependNote(lead.Notes, "Outreach email sent to "+input.To, now)
	updated, err := uc.Repo.Update(ctx, lead.ID, entity.LeadPatch{
		Stage:  &stage,
		Email:  &input.To,
		SentAt: &now,
		Notes:  &notes,
	})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		out.Stage = updated.Stage
		out.Transitioned = true
	}

	if err := uc.Producer.PublishLeadEvent(ctx, queue.LeadEventPayload{
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      input.To,
		FromStage:  string(entity.StageNew),
		ToStage:    string(entity.StageContacted),
		PreviewURL: lead.PreviewURL,
		Origin:     "outreach",
		OccurredAt: now,
	}); err != nil {
		// the transition is committed; event delivery is best effort
		uc.Log.Warn("lead event publish failed", slog.String("err", err.Error()))
	}

	return out, nil
}

func outreachBody(lead *entity.Lead) string {
	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:600px;margin:0 auto;padding:24px">
  <h2>Your website is ready!</h2>
  <p>Hi %s team,</p>
  <p>We built you a <strong>free website preview</strong>. Take a look:</p>
  <p><a href="%s">View Your Free Website</a></p>
  <p style="color:#666">This preview is live for 7 days. Reply to this email to claim your site.</p>
</div>`, lead.Name, lead.PreviewURL)
}
