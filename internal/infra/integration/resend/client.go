// Package resend is the client for the transactional-email provider.
package resend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

const DefaultBaseURL = "https://api.resend.com"

type Client struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
}

func NewClient(apiKey, from, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: timeout},
	}
}

// SendEmail delivers one HTML email and returns the provider receipt id.
// The caller decides whether a missing key is log-and-continue or fatal.
func (c *Client) SendEmail(to, subject, htmlBody string) (string, error) {
	if c.apiKey == "" {
		return "", &usecase.ConfigurationError{Name: "RESEND_API_KEY"}
	}

	payload := sendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/emails", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &provider.Error{Provider: "resend", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &provider.Error{
			Provider: "resend",
			Status:   resp.StatusCode,
			Message:  "email rejected",
		}
	}

	var response sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &provider.Error{Provider: "resend", Message: "malformed response: " + err.Error()}
	}
	return response.ID, nil
}
