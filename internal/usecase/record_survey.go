package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/queue"
)

type RecordSurveyInput struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

type RecordSurveyOutput struct {
	LeadID       string       `json:"leadId"`
	Stage        entity.Stage `json:"stage"`
	Transitioned bool         `json:"transitioned"`
}

// RecordSurveyUseCase handles "not interested" survey responses from
// preview sites. The external caller knows only the deploy slug, so the
// lead is resolved through its preview URL.
type RecordSurveyUseCase struct {
	Repo     entity.LeadRepository
	Producer queue.EventProducer
	Log      *slog.Logger
}

func NewRecordSurveyUseCase(repo entity.LeadRepository, producer queue.EventProducer, log *slog.Logger) *RecordSurveyUseCase {
	return &RecordSurveyUseCase{Repo: repo, Producer: producer, Log: log}
}

func (uc *RecordSurveyUseCase) Execute(ctx context.Context, input RecordSurveyInput) (*RecordSurveyOutput, error) {
	if input.Slug == "" {
		return nil, &ValidationError{Field: "slug", Message: "is required"}
	}
	if input.Reason == "" {
		return nil, &ValidationError{Field: "reason", Message: "is required"}
	}
	newStage, ok := entity.StageForDeclineReason(input.Reason)
	if !ok {
		// unknown reason codes are rejected, never defaulted
		return nil, &ValidationError{Field: "reason", Message: "invalid reason: " + input.Reason}
	}

	matches, err := uc.Repo.FindByPreviewURLFragment(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Resource: "lead", Key: input.Slug}
	}
	if len(matches) > 1 {
		return nil, &AmbiguousMatchError{Fragment: input.Slug, Count: len(matches)}
	}
	lead := matches[0]

	// Duplicate deliveries for a lead already declined (or converted)
	// are acknowledged without a second note.
	if lead.Stage.Terminal() {
		uc.Log.Info("survey response for terminal lead ignored",
			slog.String("lead_id", lead.ID), slog.String("stage", string(lead.Stage)))
		return &RecordSurveyOutput{LeadID: lead.ID, Stage: lead.Stage}, nil
	}
	if !lead.Stage.CanTransition(newStage) {
		uc.Log.Info("survey response left stage unchanged",
			slog.String("lead_id", lead.ID), slog.String("stage", string(lead.Stage)))
		return &RecordSurveyOutput{LeadID: lead.ID, Stage: lead.Stage}, nil
	}

	now := time.Now()
	noteText := "Survey response: " + input.Reason
	if input.Note != "" {
		noteText = input.Note
	}
	notes := entity.PrependNote(lead.Notes, noteText, now)

	updated, err := uc.Repo.Update(ctx, lead.ID, entity.LeadPatch{
		Stage: &newStage,
		Notes: &notes,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "lead", Key: lead.ID}
	}

	uc.Log.Info("lead declined",
		slog.String("lead_id", lead.ID), slog.String("reason", input.Reason))

	if err := uc.Producer.PublishLeadEvent(ctx, queue.LeadEventPayload{
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		FromStage:  string(lead.Stage),
		ToStage:    string(newStage),
		PreviewURL: lead.PreviewURL,
		Origin:     "survey",
		OccurredAt: now,
	}); err != nil {
		uc.Log.Warn("lead event publish failed", slog.String("err", err.Error()))
	}

	return &RecordSurveyOutput{LeadID: updated.ID, Stage: updated.Stage, Transitioned: true}, nil
}
