package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective customer tracked through the sales pipeline.
// Discovery filters out businesses that already have a website, so
// HasWebsite is always false for a stored lead.
type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	HasWebsite  bool       `json:"hasWebsite"`
	MapsURL     string     `json:"mapsUrl,omitempty"`
	Stage       Stage      `json:"stage"`
	Email       string     `json:"email,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	PreviewURL  string     `json:"previewUrl,omitempty"`
	FoundAt     *time.Time `json:"foundAt,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	FollowUpAt  *time.Time `json:"followUpAt,omitempty"`
	ConvertedAt *time.Time `json:"convertedAt,omitempty"`
}

// NewLead builds a lead for ingestion. When id is empty a UUID is assigned.
func NewLead(id, name, category, city string) *Lead {
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now()
	return &Lead{
		ID:       id,
		Name:     name,
		Category: category,
		City:     city,
		Stage:    StageNew,
		FoundAt:  &now,
	}
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("name is required")
	}
	if l.HasWebsite {
		return fmt.Errorf("leads with an existing website are not tracked")
	}
	return nil
}

// PrependNote returns the notes log with a new timestamped entry at the
// head. Existing text is preserved, never overwritten.
func PrependNote(existing, note string, at time.Time) string {
	entry := fmt.Sprintf("[%s] %s", at.UTC().Format(time.RFC3339), note)
	if existing == "" {
		return entry
	}
	return entry + "\n" + existing
}

// LeadPatch is a partial update. Nil fields are left untouched; the store
// applies the whole patch as one non-interleaved merge.
type LeadPatch struct {
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Stage       *Stage     `json:"stage,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	PreviewURL  *string    `json:"previewUrl,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	FollowUpAt  *time.Time `json:"followUpAt,omitempty"`
	ConvertedAt *time.Time `json:"convertedAt,omitempty"`

	// ClearFollowUpAt nulls FollowUpAt; a nil *time.Time alone cannot
	// distinguish "leave unchanged" from "clear".
	ClearFollowUpAt bool `json:"-"`
}

// Apply merges the patch into a copy of the lead.
func (p LeadPatch) Apply(l Lead) Lead {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Stage != nil {
		l.Stage = *p.Stage
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.PreviewURL != nil {
		l.PreviewURL = *p.PreviewURL
	}
	if p.SentAt != nil {
		l.SentAt = p.SentAt
	}
	if p.FollowUpAt != nil {
		l.FollowUpAt = p.FollowUpAt
	}
	if p.ConvertedAt != nil {
		l.ConvertedAt = p.ConvertedAt
	}
	if p.ClearFollowUpAt {
		l.FollowUpAt = nil
	}
	return l
}

// LeadRepository is the authoritative lead store. Add is idempotent by id.
// Update applies the patch as a single non-interleaved merge and returns
// (nil, nil) when the id is unknown so callers can detect the no-op.
type LeadRepository interface {
	Add(ctx context.Context, lead *Lead) (total int, err error)
	List(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	FindByPreviewURLFragment(ctx context.Context, fragment string) ([]Lead, error)
}
