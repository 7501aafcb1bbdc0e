package database

import (
	"context"
	"strings"
	"sync"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

// MemoryLeadRepository is the in-process lead store, used in tests and in
// local runs without a DATABASE_URL. One mutex gives the single-writer
// discipline: every Update is a whole, non-interleaved merge.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads []entity.Lead
	index map[string]int // id -> position in leads
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{index: make(map[string]int)}
}

func (r *MemoryLeadRepository) Add(ctx context.Context, lead *entity.Lead) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[lead.ID]; !exists {
		r.index[lead.ID] = len(r.leads)
		r.leads = append(r.leads, *lead)
	}
	return len(r.leads), nil
}

func (r *MemoryLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	l := r.leads[i]
	return &l, nil
}

func (r *MemoryLeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	merged := patch.Apply(r.leads[i])
	r.leads[i] = merged
	return &merged, nil
}

func (r *MemoryLeadRepository) FindByPreviewURLFragment(ctx context.Context, fragment string) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(fragment)
	var out []entity.Lead
	for _, l := range r.leads {
		if l.PreviewURL != "" && strings.Contains(strings.ToLower(l.PreviewURL), needle) {
			out = append(out, l)
		}
	}
	return out, nil
}
