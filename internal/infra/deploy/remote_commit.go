package deploy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/github"
)

// RemoteCommit publishes by committing the page through the hosting
// provider's content API. The connected hosting pipeline redeploys on
// commit, so a successful write means published.
type RemoteCommit struct {
	client *github.Client
	domain string
	log    *slog.Logger
}

func NewRemoteCommit(client *github.Client, domain string, log *slog.Logger) *RemoteCommit {
	return &RemoteCommit{client: client, domain: domain, log: log}
}

func (s *RemoteCommit) Name() string { return "remote-commit" }

func (s *RemoteCommit) Deploy(ctx context.Context, slug, html string) (*Result, error) {
	path := fmt.Sprintf("webapp/sites/%s/index.html", slug)

	// Absence is not an error: empty sha means new file. A stale sha is
	// rejected by the provider and surfaces as a ConflictError; the
	// caller refetches, never this engine.
	sha, err := s.client.GetFileSHA(path)
	if err != nil {
		return nil, err
	}

	if err := s.client.PutFile(path, "Deploy: "+slug, []byte(html), sha); err != nil {
		return nil, err
	}

	s.log.Info("site committed", slog.String("slug", slug), slog.String("path", path))
	return &Result{
		ProductionURL: productionURL(s.domain, slug),
		Published:     true,
		Detail:        "committed " + path,
	}, nil
}
