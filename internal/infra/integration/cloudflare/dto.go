package cloudflare

import "strings"

// Deployment is one direct-upload attempt. The id and credential are valid
// only for this attempt; a retry restarts from a fresh manifest.
type Deployment struct {
	ID            string
	UploadJWT     string
	URL           string
	MissingHashes []string
}

// Asset is one file the provider asked for by content digest.
type Asset struct {
	Hash        string
	Content     []byte
	ContentType string
}

// --- wire format ---

type createProjectRequest struct {
	Name             string `json:"name"`
	ProductionBranch string `json:"production_branch"`
}

type deploymentResult struct {
	ID            string   `json:"id"`
	JWT           string   `json:"jwt"`
	URL           string   `json:"url"`
	MissingHashes []string `json:"missing_hashes"`
}

type uploadAssetRequest struct {
	Key      string        `json:"key"`
	Value    string        `json:"value"`
	Metadata assetMetadata `json:"metadata"`
	Base64   bool          `json:"base64"`
}

type assetMetadata struct {
	ContentType string `json:"contentType"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type apiResponse[T any] struct {
	Success bool       `json:"success"`
	Errors  []apiError `json:"errors"`
	Result  T          `json:"result"`
}

func (r apiResponse[T]) hasErrorCode(code int) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func (r apiResponse[T]) errorText() string {
	if len(r.Errors) == 0 {
		return "unknown error"
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, ", ")
}
