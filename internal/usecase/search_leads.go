package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/cache"
)

// SearchLeadsOutput reports the discovered leads and whether they came
// from the cache instead of a fresh (paid) provider call.
type SearchLeadsOutput struct {
	Results []entity.Lead `json:"results"`
	Cached  bool          `json:"cached"`
	Count   int           `json:"count"`
}

// SearchLeadsUseCase discovers businesses without a website in a city.
// The cache sits in front of the provider's search calls only.
type SearchLeadsUseCase struct {
	Cache    *cache.SearchCache
	Provider SearchProvider
	Log      *slog.Logger
}

func NewSearchLeadsUseCase(c *cache.SearchCache, p SearchProvider, log *slog.Logger) *SearchLeadsUseCase {
	return &SearchLeadsUseCase{Cache: c, Provider: p, Log: log}
}

func (uc *SearchLeadsUseCase) Execute(ctx context.Context, category, city string) (*SearchLeadsOutput, error) {
	if strings.TrimSpace(category) == "" {
		return nil, &ValidationError{Field: "category", Message: "is required"}
	}
	if strings.TrimSpace(city) == "" {
		return nil, &ValidationError{Field: "city", Message: "is required"}
	}

	key := cache.Key(category, city)
	if results, ok := uc.Cache.Get(key); ok {
		uc.Log.Debug("search cache hit", slog.String("key", key))
		return &SearchLeadsOutput{Results: results, Cached: true, Count: len(results)}, nil
	}

	uc.Log.Info("searching businesses",
		slog.String("category", category), slog.String("city", city))

	candidates, err := uc.Provider.SearchBusinesses(category, city)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]entity.Lead, 0, len(candidates))
	for _, c := range candidates {
		// businesses that already have a website are not prospects
		if c.HasWebsite() {
			continue
		}
		foundAt := now
		results = append(results, entity.Lead{
			ID:          c.ID,
			Name:        c.Name,
			Category:    category,
			City:        city,
			Phone:       c.Phone,
			Address:     c.Address,
			Rating:      c.Rating,
			ReviewCount: c.ReviewCount,
			HasWebsite:  false,
			MapsURL:     c.MapsURL,
			Stage:       entity.StageNew,
			FoundAt:     &foundAt,
		})
	}

	uc.Log.Info("search complete",
		slog.Int("total", len(candidates)), slog.Int("without_website", len(results)))

	uc.Cache.Put(key, results)
	return &SearchLeadsOutput{Results: results, Cached: false, Count: len(results)}, nil
}
