package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashtagwebpage/prospector/internal/entity"
)

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, "plumber::austin", Key("Plumber", "  Austin "))
	assert.Equal(t, Key("plumber", "austin"), Key("PLUMBER", "AUSTIN"))
}

func TestCacheHitWithinTTL(t *testing.T) {
	c := NewSearchCache()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put(Key("plumber", "Austin"), []entity.Lead{{ID: "p1", Name: "Acme"}})

	// 6 days 23h later: still a hit
	c.now = func() time.Time { return base.Add(6*24*time.Hour + 23*time.Hour) }
	got, ok := c.Get(Key("plumber", "Austin"))
	require.True(t, ok)
	assert.Equal(t, "p1", got[0].ID)
}

func TestCacheMissAfterTTL(t *testing.T) {
	c := NewSearchCache()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put(Key("plumber", "Austin"), []entity.Lead{{ID: "p1"}})

	// 7 days 1h later: expired, treated as absent
	c.now = func() time.Time { return base.Add(7*24*time.Hour + time.Hour) }
	_, ok := c.Get(Key("plumber", "Austin"))
	assert.False(t, ok)
}

func TestEmptyResultIsAHitNotAMiss(t *testing.T) {
	c := NewSearchCache()
	c.Put(Key("plumber", "Nowhere"), []entity.Lead{})

	got, ok := c.Get(Key("plumber", "Nowhere"))
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = c.Get(Key("plumber", "Elsewhere"))
	assert.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	c := NewSearchCache()
	k := Key("plumber", "Austin")
	c.Put(k, []entity.Lead{{ID: "old"}})
	c.Put(k, []entity.Lead{{ID: "new"}})

	got, ok := c.Get(k)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestGetReturnsACopy(t *testing.T) {
	c := NewSearchCache()
	k := Key("plumber", "Austin")
	c.Put(k, []entity.Lead{{ID: "p1", Name: "Acme"}})

	got, _ := c.Get(k)
	got[0].Name = "mutated"

	again, _ := c.Get(k)
	assert.Equal(t, "Acme", again[0].Name)
}
