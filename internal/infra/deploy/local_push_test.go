package deploy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	calls    [][]string
	failWith map[string]error // subcommand -> error
}

func (f *fakeGit) Run(ctx context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if err := f.failWith[args[0]]; err != nil {
		return "", err
	}
	if args[0] == "rev-parse" {
		return dir, nil
	}
	return "", nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalPushDeploy(t *testing.T) {
	dir := t.TempDir()
	git := &fakeGit{}
	s := NewLocalPush(dir, "preview.example.com", git, discard())

	res, err := s.Deploy(context.Background(), "acme-plumbing", "<html>hi</html>")
	require.NoError(t, err)

	assert.True(t, res.Published)
	assert.Equal(t, "https://preview.example.com/acme-plumbing", res.ProductionURL)

	saved, err := os.ReadFile(filepath.Join(dir, "acme-plumbing", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", string(saved))

	// rev-parse, add, commit, push
	require.Len(t, git.calls, 4)
	assert.Equal(t, "push", git.calls[3][0])
}

func TestLocalPushDeployPushFailure(t *testing.T) {
	dir := t.TempDir()
	git := &fakeGit{failWith: map[string]error{"push": errors.New("remote unreachable")}}
	s := NewLocalPush(dir, "preview.example.com", git, discard())

	res, err := s.Deploy(context.Background(), "acme-plumbing", "<html>hi</html>")
	require.NoError(t, err, "push failure degrades, it does not fail the call")

	assert.False(t, res.Published)
	assert.NotEmpty(t, res.Detail)
	assert.Contains(t, res.Detail, filepath.Join(dir, "acme-plumbing", "index.html"),
		"detail must carry the local path for manual recovery")

	// content stays retrievable locally
	path, ok := s.SitePath("acme-plumbing")
	require.True(t, ok)
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", string(saved))
}

func TestLocalPushSavedSlugs(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalPush(dir, "preview.example.com", &fakeGit{}, discard())

	slugs, err := s.SavedSlugs()
	require.NoError(t, err)
	assert.Empty(t, slugs)

	_, err = s.Deploy(context.Background(), "acme-plumbing", "<html/>")
	require.NoError(t, err)
	_, err = s.Deploy(context.Background(), "bay-bakery", "<html/>")
	require.NoError(t, err)

	slugs, err = s.SavedSlugs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"acme-plumbing", "bay-bakery"}, slugs)
}

func TestValidateSlug(t *testing.T) {
	for _, ok := range []string{"acme-plumbing", "a", "shop-24"} {
		assert.NoError(t, ValidateSlug(ok), ok)
	}
	for _, bad := range []string{"", "Acme", "a b", "../etc", "a_b", "a--", "-a"} {
		assert.Error(t, ValidateSlug(bad), bad)
	}
}

func TestProductionURL(t *testing.T) {
	assert.Equal(t, "https://x.pages.dev/s", productionURL("x.pages.dev", "s"))
	assert.Equal(t, "https://x.pages.dev/s", productionURL("https://x.pages.dev/", "s"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "fatal: not a repo", firstLine("fatal: not a repo\nhint: more\n"))
	assert.True(t, strings.HasPrefix(firstLine("one"), "one"))
}
