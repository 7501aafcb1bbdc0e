// Package github is the client for the remote-content-commit hosting
// backend (GitHub Contents API).
package github

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
)

const DefaultBaseURL = "https://api.github.com"

// encodeChunkSize bounds each base64 encoding step so a large page never
// goes through one oversized call. Multiple of 3, so chunk outputs
// concatenate without interior padding.
const encodeChunkSize = 8190

type Client struct {
	baseURL string
	owner   string
	repo    string
	token   string
	http    *http.Client
}

func NewClient(owner, repo, token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		owner:   owner,
		repo:    repo,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetFileSHA fetches the revision marker of an existing file. A missing
// file is not an error; it returns ("", nil) and the commit creates it.
func (c *Client) GetFileSHA(path string) (string, error) {
	req, err := http.NewRequest("GET", c.contentsURL(path), nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &provider.Error{Provider: "github", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &provider.Error{
			Provider: "github",
			Status:   resp.StatusCode,
			Message:  "fetch file revision failed",
		}
	}

	var existing contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&existing); err != nil {
		return "", &provider.Error{Provider: "github", Message: "malformed contents response: " + err.Error()}
	}
	return existing.SHA, nil
}

// PutFile commits content at path. sha is the revision marker from
// GetFileSHA; empty means new file. A stale sha is surfaced as a
// ConflictError so the caller can refetch and retry.
func (c *Client) PutFile(path, message string, content []byte, sha string) error {
	payload := putContentsRequest{
		Message: message,
		Content: chunkedBase64(content),
	}
	if sha != "" {
		payload.SHA = sha
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", c.contentsURL(path), bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: "github", Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return &provider.ConflictError{Provider: "github", Path: path}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("commit failed: %s", strings.TrimSpace(string(body)))
		return &provider.Error{Provider: "github", Status: resp.StatusCode, Message: msg}
	}
	return nil
}

// chunkedBase64 encodes content in fixed-size chunks; the result matches
// a single-call encode while each step stays bounded.
func chunkedBase64(content []byte) string {
	var b strings.Builder
	for off := 0; off < len(content); off += encodeChunkSize {
		end := off + encodeChunkSize
		if end > len(content) {
			end = len(content)
		}
		b.WriteString(base64.StdEncoding.EncodeToString(content[off:end]))
	}
	return b.String()
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, path)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Prospector/1.0")
}
