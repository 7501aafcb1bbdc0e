package usecase

import (
	"github.com/hashtagwebpage/prospector/internal/infra/integration/places"
)

// SearchProvider is the paid business-search API behind the result cache.
type SearchProvider interface {
	SearchBusinesses(category, city string) ([]places.Candidate, error)
}

// EmailSender delivers one HTML email and returns a provider receipt id
// when the backend has one.
type EmailSender interface {
	SendEmail(to, subject, htmlBody string) (string, error)
}
