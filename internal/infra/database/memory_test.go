package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

func TestAddIsIdempotentByID(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	total, err := repo.Add(ctx, &entity.Lead{ID: "p1", Name: "Acme Plumbing"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// re-adding the same id changes nothing, even with different fields
	total, err = repo.Add(ctx, &entity.Lead{ID: "p1", Name: "Acme Renamed"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Plumbing", leads[0].Name)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Add(ctx, &entity.Lead{ID: id, Name: id})
		require.NoError(t, err)
	}

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "c", leads[0].ID)
	assert.Equal(t, "a", leads[1].ID)
	assert.Equal(t, "b", leads[2].ID)
}

func TestUpdateMergesPartially(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, &entity.Lead{ID: "p1", Name: "Acme", City: "Austin", Stage: entity.StageNew})
	require.NoError(t, err)

	email := "owner@acme.example"
	updated, err := repo.Update(ctx, "p1", entity.LeadPatch{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "Acme", updated.Name, "absent fields untouched")
	assert.Equal(t, "Austin", updated.City)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	repo := NewMemoryLeadRepository()
	name := "ghost"
	updated, err := repo.Update(context.Background(), "missing", entity.LeadPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated, "caller detects the no-op from the nil result")
}

func TestFindByPreviewURLFragment(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, &entity.Lead{ID: "p1", Name: "Acme", PreviewURL: "https://x.pages.dev/Acme-Plumbing"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &entity.Lead{ID: "p2", Name: "Bakery", PreviewURL: "https://x.pages.dev/bay-bakery"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &entity.Lead{ID: "p3", Name: "No site"})
	require.NoError(t, err)

	// case-insensitive substring
	got, err := repo.FindByPreviewURLFragment(ctx, "acme-plumbing")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	got, err = repo.FindByPreviewURLFragment(ctx, "pages.dev")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByPreviewURLFragment(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConcurrentUpdatesDoNotInterleave(t *testing.T) {
	repo := NewMemoryLeadRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, &entity.Lead{ID: "p1", Name: "Acme", Stage: entity.StageNew})
	require.NoError(t, err)

	// Each goroutine writes a consistent (email, phone) pair; after the
	// race the stored pair must come from a single patch.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := "v"
			if i%2 == 0 {
				v = "w"
			}
			email, phone := v+"@a", v+"-555"
			_, _ = repo.Update(ctx, "p1", entity.LeadPatch{Email: &email, Phone: &phone})
		}(i)
	}
	wg.Wait()

	lead, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, lead.Email[:1], lead.Phone[:1], "fields from different patches must not mix")
}
