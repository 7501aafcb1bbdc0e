package deploy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/cloudflare"
)

// ManifestUpload publishes via the hosting provider's direct-upload
// protocol: ensure project, submit a manifest, upload only the bytes the
// provider's content-addressed cache is missing, then finalize.
type ManifestUpload struct {
	client  *cloudflare.Client
	project string
	domain  string
	log     *slog.Logger
}

func NewManifestUpload(client *cloudflare.Client, project, domain string, log *slog.Logger) *ManifestUpload {
	return &ManifestUpload{client: client, project: project, domain: domain, log: log}
}

func (s *ManifestUpload) Name() string { return "manifest-upload" }

func (s *ManifestUpload) Deploy(ctx context.Context, slug, html string) (*Result, error) {
	content := []byte(html)
	digest := contentDigest(content)
	path := fmt.Sprintf("/%s/index.html", slug)

	// "Already exists" is success here, not an error.
	if err := s.client.EnsureProject(s.project); err != nil {
		return nil, err
	}

	// The deployment id and upload credential below are valid for this
	// attempt only; a retry restarts from a fresh manifest.
	manifest := map[string]string{path: digest}
	dep, err := s.client.CreateDeployment(s.project, manifest)
	if err != nil {
		return nil, err
	}

	if len(dep.MissingHashes) > 0 {
		assets := make([]cloudflare.Asset, 0, len(dep.MissingHashes))
		for _, h := range dep.MissingHashes {
			if h != digest {
				continue
			}
			assets = append(assets, cloudflare.Asset{
				Hash:        h,
				Content:     content,
				ContentType: "text/html",
			})
		}
		if err := s.client.UploadAssets(dep.UploadJWT, assets); err != nil {
			// Content-save stage failed; the manifest stage succeeded.
			// Report so the caller retries from a fresh manifest.
			return &Result{
				ProductionURL: productionURL(s.domain, slug),
				Published:     false,
				Detail:        fmt.Sprintf("manifest accepted but asset upload failed (deployment %s): %v", dep.ID, err),
			}, nil
		}
	} else {
		s.log.Debug("assets already cached", slog.String("slug", slug))
	}

	// Finalize failure is a warning: some provider plans auto-finalize.
	detail := "deployment " + dep.ID + " finalized"
	if err := s.client.FinalizeDeployment(s.project, dep.ID); err != nil {
		s.log.Warn("finalize failed, relying on auto-finalize",
			slog.String("deployment", dep.ID), slog.String("err", err.Error()))
		detail = fmt.Sprintf("deployment %s uploaded; finalize failed: %v", dep.ID, err)
	}

	return &Result{
		ProductionURL: productionURL(s.domain, slug),
		Published:     true,
		Detail:        detail,
	}, nil
}

func contentDigest(content []byte) string {
	sum := sha256.Sum256(content)
	// Pages digests are the first 32 hex chars of the content hash.
	return hex.EncodeToString(sum[:])[:32]
}
