package qdrant

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/pkg/log"
	"guest-response-agent/pkg/qdrant"
)

// searcher is the slice of qdrant.Client this repository uses.
type searcher interface {
	SearchPoints(ctx context.Context, collectionName string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}

// embedder turns query text into vectors.
type embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type implRepository struct {
	search     searcher
	embed      embedder
	cache      *expirable.LRU[string, []float32]
	collection string
	l          log.Logger
}

// Config holds construction parameters for the template repository.
type Config struct {
	Collection string
	CacheSize  int
	CacheTTL   time.Duration
}

// New creates a Qdrant-backed TemplateRepository with an in-process
// embedding cache, so repeated phrasings of common questions skip the
// embedding round-trip.
func New(search searcher, embed embedder, cfg Config, l log.Logger) repository.TemplateRepository {
	if search == nil {
		panic("inquiry/repository/qdrant: search client is required")
	}
	if embed == nil {
		panic("inquiry/repository/qdrant: embedder is required")
	}
	return &implRepository{
		search:     search,
		embed:      embed,
		cache:      expirable.NewLRU[string, []float32](cfg.CacheSize, nil, cfg.CacheTTL),
		collection: cfg.Collection,
		l:          l,
	}
}
