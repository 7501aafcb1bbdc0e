package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	botName  = "HashtagWebpage Bot"
	botEmail = "deploy@hashtagwebpage.co"

	gitTimeout  = 5 * time.Second
	pushTimeout = 30 * time.Second
)

// GitRunner executes one git subcommand in dir. Swapped for a fake in
// tests.
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecGitRunner shells out to git with a fixed bot identity.
type ExecGitRunner struct{}

func (ExecGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+botName,
		"GIT_AUTHOR_EMAIL="+botEmail,
		"GIT_COMMITTER_NAME="+botName,
		"GIT_COMMITTER_EMAIL="+botEmail,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, firstLine(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

// LocalPush writes the page under sitesDir and pushes exactly that path;
// the connected hosting pipeline deploys on push. A push failure degrades
// to "saved locally, not yet propagated" rather than failing the call.
type LocalPush struct {
	sitesDir string
	domain   string
	git      GitRunner
	log      *slog.Logger
}

func NewLocalPush(sitesDir, domain string, git GitRunner, log *slog.Logger) *LocalPush {
	return &LocalPush{sitesDir: sitesDir, domain: domain, git: git, log: log}
}

func (s *LocalPush) Name() string { return "local-push" }

func (s *LocalPush) Deploy(ctx context.Context, slug, html string) (*Result, error) {
	siteDir := filepath.Join(s.sitesDir, slug)
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		return nil, fmt.Errorf("create site dir: %w", err)
	}
	localPath := filepath.Join(siteDir, "index.html")
	if err := os.WriteFile(localPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write site: %w", err)
	}

	result := &Result{ProductionURL: productionURL(s.domain, slug)}

	if err := s.push(ctx, siteDir, slug); err != nil {
		s.log.Warn("git push skipped, site saved locally",
			slog.String("slug", slug), slog.String("err", err.Error()))
		result.Published = false
		result.Detail = fmt.Sprintf("saved to %s, push failed: %v", localPath, err)
		return result, nil
	}

	result.Published = true
	result.Detail = "pushed " + siteDir
	return result, nil
}

// SavedSlugs lists the slugs with a locally saved index.html.
func (s *LocalPush) SavedSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.sitesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.sitesDir, e.Name(), "index.html")); err == nil {
			slugs = append(slugs, e.Name())
		}
	}
	return slugs, nil
}

// SitePath returns the local path of a saved site, if present.
func (s *LocalPush) SitePath(slug string) (string, bool) {
	p := filepath.Join(s.sitesDir, slug, "index.html")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func (s *LocalPush) push(ctx context.Context, path, slug string) error {
	rootCtx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	root, err := s.git.Run(rootCtx, s.sitesDir, "rev-parse", "--show-toplevel")
	if err != nil {
		return err
	}

	addCtx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	if _, err := s.git.Run(addCtx, root, "add", path); err != nil {
		return err
	}

	commitCtx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	if _, err := s.git.Run(commitCtx, root, "commit", "-m", "Deploy: "+slug); err != nil {
		return err
	}

	pushCtx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	_, err = s.git.Run(pushCtx, root, "push")
	return err
}
