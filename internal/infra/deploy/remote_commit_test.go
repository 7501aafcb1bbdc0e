package deploy

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/github"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
)

func newRemoteCommit(t *testing.T, handler http.HandlerFunc) (*RemoteCommit, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := github.NewClient("hashtagwebpage", "sites", "ghp_test", srv.URL, time.Second)
	return NewRemoteCommit(client, "hashtagwebpage.com", discard()), srv
}

func TestRemoteCommitNewFile(t *testing.T) {
	var put struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	s, _ := newRemoteCommit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/hashtagwebpage/sites/contents/webapp/sites/acme-plumbing/index.html", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			// absence of the remote object is "new file", not an error
			http.NotFound(w, r)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.Write([]byte(`{"content":{"sha":"new"}}`))
		}
	})

	res, err := s.Deploy(context.Background(), "acme-plumbing", "<html>hi</html>")
	require.NoError(t, err)

	assert.True(t, res.Published)
	assert.Equal(t, "https://hashtagwebpage.com/acme-plumbing", res.ProductionURL)
	assert.Empty(t, put.SHA)
	assert.Equal(t, "Deploy: acme-plumbing", put.Message)

	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", string(decoded))
}

func TestRemoteCommitExistingFileCarriesSHA(t *testing.T) {
	var gotSHA string
	s, _ := newRemoteCommit(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"sha":"abc123"}`))
		case http.MethodPut:
			var put struct {
				SHA string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&put)
			gotSHA = put.SHA
			w.Write([]byte(`{}`))
		}
	})

	_, err := s.Deploy(context.Background(), "acme-plumbing", "<html/>")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotSHA)
}

func TestRemoteCommitStaleRevisionIsConflict(t *testing.T) {
	s, _ := newRemoteCommit(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"sha":"stale"}`))
		case http.MethodPut:
			http.Error(w, `{"message":"is at ... but expected stale"}`, http.StatusConflict)
		}
	})

	_, err := s.Deploy(context.Background(), "acme-plumbing", "<html/>")
	require.Error(t, err)
	assert.True(t, provider.IsConflict(err), "stale revision must surface as ConflictError, got %v", err)
}

func TestRemoteCommitLargeContentEncodesChunked(t *testing.T) {
	// > 8190 bytes so encoding crosses a chunk boundary; the concatenated
	// output must still decode as one document.
	big := strings.Repeat("<p>block</p>\n", 2000)
	s, _ := newRemoteCommit(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.NotFound(w, r)
		case http.MethodPut:
			var put struct {
				Content string `json:"content"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			decoded, err := base64.StdEncoding.DecodeString(put.Content)
			require.NoError(t, err)
			assert.Equal(t, big, string(decoded))
			w.Write([]byte(`{}`))
		}
	})

	res, err := s.Deploy(context.Background(), "acme-plumbing", big)
	require.NoError(t, err)
	assert.True(t, res.Published)
}
