// Package places is the client for the business-search provider
// (Google Places text search).
package places

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashtagwebpage/prospector/internal/infra/integration/provider"
)

const DefaultBaseURL = "https://places.googleapis.com/v1"

// fieldMask keeps the paid response down to the attributes the pipeline
// actually stores.
var fieldMask = strings.Join([]string{
	"places.id", "places.displayName", "places.formattedAddress",
	"places.nationalPhoneNumber", "places.rating", "places.userRatingCount",
	"places.websiteUri", "places.googleMapsUri", "places.primaryType",
}, ",")

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// SearchBusinesses runs a text search for "{category} in {city}". Zero
// matches is an empty slice, not an error.
func (c *Client) SearchBusinesses(category, city string) ([]Candidate, error) {
	if c.apiKey == "" {
		return nil, &provider.Error{Provider: "places", Message: "GOOGLE_API_KEY not configured"}
	}

	payload := searchTextRequest{
		TextQuery:      fmt.Sprintf("%s in %s", category, city),
		MaxResultCount: 20,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/places:searchText", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: "places", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &provider.Error{
			Provider: "places",
			Status:   resp.StatusCode,
			Message:  "text search rejected",
		}
	}

	var response searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &provider.Error{Provider: "places", Message: "malformed search response: " + err.Error()}
	}

	out := make([]Candidate, 0, len(response.Places))
	for _, p := range response.Places {
		out = append(out, Candidate{
			ID:          p.ID,
			Name:        p.DisplayName.Text,
			Phone:       p.NationalPhoneNumber,
			Address:     p.FormattedAddress,
			Rating:      p.Rating,
			ReviewCount: p.UserRatingCount,
			WebsiteURI:  p.WebsiteURI,
			MapsURL:     p.GoogleMapsURI,
		})
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
	req.Header.Set("User-Agent", "Prospector/1.0")
}
