package places

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
)

func TestSearchBusinesses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.NotEmpty(t, r.Header.Get("X-Goog-FieldMask"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"places":[
			{"id":"p1","displayName":{"text":"Acme Plumbing"},"rating":4.5,"userRatingCount":37,"googleMapsUri":"https://maps.example/p1"},
			{"id":"p2","displayName":{"text":"Webbed Pipes"},"websiteUri":"https://webbedpipes.example"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	got, err := c.SearchBusinesses("plumber", "Austin")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Acme Plumbing", got[0].Name)
	assert.False(t, got[0].HasWebsite())
	assert.True(t, got[1].HasWebsite())
}

func TestSearchBusinessesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	got, err := c.SearchBusinesses("plumber", "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchBusinessesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	_, err := c.SearchBusinesses("plumber", "Austin")
	pe, ok := provider.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "places", pe.Provider)
	assert.Equal(t, http.StatusTooManyRequests, pe.Status)
}

func TestSearchBusinessesMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"places": [`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	_, err := c.SearchBusinesses("plumber", "Austin")
	_, ok := provider.AsError(err)
	assert.True(t, ok)
}

func TestSearchBusinessesNoKey(t *testing.T) {
	c := NewClient("", "http://127.0.0.1:0", time.Second)
	_, err := c.SearchBusinesses("plumber", "Austin")
	assert.Error(t, err)
}
