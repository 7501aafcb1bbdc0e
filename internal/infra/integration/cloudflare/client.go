// Package cloudflare is the client for the manifest-then-upload hosting
// backend (Cloudflare Pages direct upload).
package cloudflare

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
)

const (
	DefaultBaseURL   = "https://api.cloudflare.com/client/v4"
	DefaultUploadURL = "https://upload.workers.cloudflare.com"

	// projectExistsCode is the API error code for "project already
	// exists"; EnsureProject treats it as success.
	projectExistsCode = 8000026
)

type Client struct {
	baseURL   string
	uploadURL string
	accountID string
	apiToken  string
	http      *http.Client
}

func NewClient(accountID, apiToken, baseURL, uploadURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		uploadURL: uploadURL,
		accountID: accountID,
		apiToken:  apiToken,
		http:      &http.Client{Timeout: timeout},
	}
}

// EnsureProject creates the hosting project if it does not exist yet.
func (c *Client) EnsureProject(name string) error {
	payload := createProjectRequest{Name: name, ProductionBranch: "main"}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", c.projectsURL(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: "cloudflare", Message: err.Error()}
	}
	defer resp.Body.Close()

	var response apiResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return &provider.Error{Provider: "cloudflare", Message: "malformed project response: " + err.Error()}
	}
	if response.Success || response.hasErrorCode(projectExistsCode) {
		return nil
	}
	return &provider.Error{
		Provider: "cloudflare",
		Status:   resp.StatusCode,
		Message:  "create project failed: " + response.errorText(),
	}
}

// CreateDeployment submits a manifest (path -> content digest) and returns
// the deployment id, the single-use upload credential, and the digests the
// provider is missing from its content-addressed cache.
func (c *Client) CreateDeployment(project string, manifest map[string]string) (*Deployment, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	if err := mw.WriteField("manifest", string(manifestJSON)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/deployments", c.projectsURL(), project)
	req, err := http.NewRequest("POST", url, &body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: "cloudflare", Message: err.Error()}
	}
	defer resp.Body.Close()

	var response apiResponse[deploymentResult]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &provider.Error{Provider: "cloudflare", Message: "malformed deployment response: " + err.Error()}
	}
	if !response.Success {
		return nil, &provider.Error{
			Provider: "cloudflare",
			Status:   resp.StatusCode,
			Message:  "create deployment failed: " + response.errorText(),
		}
	}

	return &Deployment{
		ID:            response.Result.ID,
		UploadJWT:     response.Result.JWT,
		URL:           response.Result.URL,
		MissingHashes: response.Result.MissingHashes,
	}, nil
}

// UploadAssets pushes raw file bytes under the deployment's single-use
// credential. Only the hashes the provider reported missing are sent.
func (c *Client) UploadAssets(uploadJWT string, assets []Asset) error {
	payload := make([]uploadAssetRequest, 0, len(assets))
	for _, a := range assets {
		payload = append(payload, uploadAssetRequest{
			Key:      a.Hash,
			Value:    base64.StdEncoding.EncodeToString(a.Content),
			Metadata: assetMetadata{ContentType: a.ContentType},
			Base64:   true,
		})
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", c.uploadURL+"/api/pages/assets/upload", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+uploadJWT)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: "cloudflare", Message: err.Error()}
	}
	defer resp.Body.Close()

	var response apiResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return &provider.Error{Provider: "cloudflare", Message: "malformed upload response: " + err.Error()}
	}
	if !response.Success {
		return &provider.Error{
			Provider: "cloudflare",
			Status:   resp.StatusCode,
			Message:  "asset upload failed: " + response.errorText(),
		}
	}
	return nil
}

// FinalizeDeployment makes the deployment live. Some plans auto-finalize,
// so the caller treats a failure here as a warning, not a fatal error.
func (c *Client) FinalizeDeployment(project, deploymentID string) error {
	url := fmt.Sprintf("%s/%s/deployments/%s/finalize", c.projectsURL(), project, deploymentID)
	req, err := http.NewRequest("POST", url, strings.NewReader("{}"))
	if err != nil {
		return err
	}
	c.setHeaders(req, "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: "cloudflare", Message: err.Error()}
	}
	defer resp.Body.Close()

	var response apiResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return &provider.Error{Provider: "cloudflare", Message: "malformed finalize response: " + err.Error()}
	}
	if !response.Success {
		return &provider.Error{
			Provider: "cloudflare",
			Status:   resp.StatusCode,
			Message:  "finalize failed: " + response.errorText(),
		}
	}
	return nil
}

// DeleteProject removes a hosting project and its deployments.
func (c *Client) DeleteProject(name string) error {
	req, err := http.NewRequest("DELETE", c.projectsURL()+"/"+name, strings.NewReader("{}"))
	if err != nil {
		return err
	}
	c.setHeaders(req, "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: "cloudflare", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &provider.Error{
			Provider: "cloudflare",
			Status:   resp.StatusCode,
			Message:  "delete project failed",
		}
	}
	return nil
}

func (c *Client) projectsURL() string {
	return fmt.Sprintf("%s/accounts/%s/pages/projects", c.baseURL, c.accountID)
}

func (c *Client) setHeaders(req *http.Request, contentType string) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "Prospector/1.0")
}
