package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

// LeadRepository is the Postgres-backed lead store. A sequence column
// preserves insertion order for List.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, category, city, phone, address, rating,
	review_count, maps_url, stage, email, notes, preview_url,
	found_at, sent_at, follow_up_at, converted_at`

// Add inserts unless the id already exists (idempotent ingestion) and
// returns the total count after the operation.
func (r *LeadRepository) Add(ctx context.Context, lead *entity.Lead) (int, error) {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Category, lead.City,
		nullString(lead.Phone), nullString(lead.Address),
		lead.Rating, lead.ReviewCount, nullString(lead.MapsURL),
		string(lead.Stage), nullString(lead.Email), lead.Notes,
		nullString(lead.PreviewURL),
		lead.FoundAt, lead.SentAt, lead.FollowUpAt, lead.ConvertedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return total, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

// Update applies the patch as one merge under a row lock, so two
// concurrent patches to the same lead never interleave field-by-field.
// Unknown id returns (nil, nil).
func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
	current, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock lead: %w", err)
	}

	merged := patch.Apply(*current)
	_, err = tx.ExecContext(ctx, `
		UPDATE leads SET
			name = $2, phone = $3, address = $4, stage = $5, email = $6,
			notes = $7, preview_url = $8, sent_at = $9, follow_up_at = $10,
			converted_at = $11
		WHERE id = $1`,
		id, merged.Name, nullString(merged.Phone), nullString(merged.Address),
		string(merged.Stage), nullString(merged.Email), merged.Notes,
		nullString(merged.PreviewURL),
		merged.SentAt, merged.FollowUpAt, merged.ConvertedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return &merged, nil
}

// FindByPreviewURLFragment resolves a deploy slug back to its owning
// lead(s) via case-insensitive substring match.
func (r *LeadRepository) FindByPreviewURLFragment(ctx context.Context, fragment string) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE preview_url ILIKE '%' || $1 || '%' ORDER BY seq`, fragment)
	if err != nil {
		return nil, fmt.Errorf("find by preview url: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var phone, address, mapsURL, email, previewURL sql.NullString
	var stage string
	err := row.Scan(
		&l.ID, &l.Name, &l.Category, &l.City, &phone, &address,
		&l.Rating, &l.ReviewCount, &mapsURL, &stage, &email, &l.Notes,
		&previewURL, &l.FoundAt, &l.SentAt, &l.FollowUpAt, &l.ConvertedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Phone = phone.String
	l.Address = address.String
	l.MapsURL = mapsURL.String
	l.Email = email.String
	l.PreviewURL = previewURL.String
	l.Stage = entity.Stage(stage)
	return &l, nil
}

func scanLeads(rows *sql.Rows) ([]entity.Lead, error) {
	var out []entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
