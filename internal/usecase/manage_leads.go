package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

type IngestLeadInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`
	MapsURL     string  `json:"mapsUrl,omitempty"`
	Email       string  `json:"email,omitempty"`
}

type IngestLeadOutput struct {
	Lead  entity.Lead `json:"lead"`
	Total int         `json:"total"`
}

type UpdateLeadInput struct {
	ID    string           `json:"id"`
	Patch entity.LeadPatch `json:"patch"`
}

type ManageLeadsUseCase struct {
	Repo entity.LeadRepository
	Log  *slog.Logger
}

func NewManageLeadsUseCase(repo entity.LeadRepository, log *slog.Logger) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Repo: repo, Log: log}
}

// Ingest stores a lead picked from search results. Re-submitting an id
// already in the store is a no-op on the stored row.
func (uc *ManageLeadsUseCase) Ingest(ctx context.Context, input IngestLeadInput) (*IngestLeadOutput, error) {
	lead := entity.NewLead(input.ID, input.Name, input.Category, input.City)
	lead.Phone = input.Phone
	lead.Address = input.Address
	lead.Rating = input.Rating
	lead.ReviewCount = input.ReviewCount
	lead.MapsURL = input.MapsURL
	lead.Email = input.Email

	if err := lead.Validate(); err != nil {
		return nil, &ValidationError{Field: "lead", Message: err.Error()}
	}

	total, err := uc.Repo.Add(ctx, lead)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("lead ingested",
		slog.String("lead_id", lead.ID), slog.String("name", lead.Name), slog.Int("total", total))

	return &IngestLeadOutput{Lead: *lead, Total: total}, nil
}

// Update applies a partial edit. Stage changes coming through this path
// are free-form edits from the operator UI, but still must name a stage
// the pipeline knows about.
func (uc *ManageLeadsUseCase) Update(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	if input.ID == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	if input.Patch.Stage != nil && !input.Patch.Stage.Valid() {
		return nil, &ValidationError{Field: "stage", Message: "unknown stage: " + string(*input.Patch.Stage)}
	}

	updated, err := uc.Repo.Update(ctx, input.ID, input.Patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "lead", Key: input.ID}
	}
	return updated, nil
}

func (uc *ManageLeadsUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	return uc.Repo.List(ctx)
}

// ScheduleFollowUp stamps a future contact date without touching the stage.
func (uc *ManageLeadsUseCase) ScheduleFollowUp(ctx context.Context, id string, at time.Time) (*entity.Lead, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	updated, err := uc.Repo.Update(ctx, id, entity.LeadPatch{FollowUpAt: &at})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Resource: "lead", Key: id}
	}
	return updated, nil
}
