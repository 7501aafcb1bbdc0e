package usecase

import (
	"context"
	"log/slog"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/deploy"
)

type DeploySiteInput struct {
	Slug   string `json:"slug"`
	HTML   string `json:"html"`
	LeadID string `json:"leadId,omitempty"`
}

// DeploySiteUseCase publishes a preview page through the configured
// strategy and, when the caller names a lead, records the preview URL on
// it so later slug lookups resolve.
type DeploySiteUseCase struct {
	Strategy deploy.Strategy
	Repo     entity.LeadRepository
	Log      *slog.Logger
}

func NewDeploySiteUseCase(s deploy.Strategy, repo entity.LeadRepository, log *slog.Logger) *DeploySiteUseCase {
	return &DeploySiteUseCase{Strategy: s, Repo: repo, Log: log}
}

func (uc *DeploySiteUseCase) Execute(ctx context.Context, input DeploySiteInput) (*deploy.Result, error) {
	if input.Slug == "" {
		return nil, &ValidationError{Field: "slug", Message: "is required"}
	}
	if input.HTML == "" {
		return nil, &ValidationError{Field: "html", Message: "is required"}
	}
	if err := deploy.ValidateSlug(input.Slug); err != nil {
		return nil, &ValidationError{Field: "slug", Message: err.Error()}
	}

	result, err := uc.Strategy.Deploy(ctx, input.Slug, input.HTML)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("site deployed",
		slog.String("slug", input.Slug),
		slog.String("strategy", uc.Strategy.Name()),
		slog.Bool("published", result.Published),
	)

	if input.LeadID != "" {
		patch := entity.LeadPatch{PreviewURL: &result.ProductionURL}
		updated, err := uc.Repo.Update(ctx, input.LeadID, patch)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			// deployment already succeeded; unknown lead id only costs
			// the back-reference
			uc.Log.Warn("deployed for unknown lead", slog.String("lead_id", input.LeadID))
		}
	}

	return result, nil
}
