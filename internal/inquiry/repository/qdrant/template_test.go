package qdrant

import (
	"context"
	"errors"
	"testing"
	"time"

	repo "guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/pkg/log"
	"guest-response-agent/pkg/qdrant"
)

type fakeSearcher struct {
	points  []qdrant.ScoredPoint
	err     error
	lastReq qdrant.SearchRequest
}

func (f *fakeSearcher) SearchPoints(ctx context.Context, collection string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &qdrant.SearchResponse{Result: f.points}, nil
}

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return [][]float32{{0.1, 0.2, 0.3}}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                 {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Fatal(ctx context.Context, args ...any)                 {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any) {}

var _ log.Logger = nopLogger{}

func point(templateID string, score float64) qdrant.ScoredPoint {
	return qdrant.ScoredPoint{
		ID:    templateID + "-trigger",
		Score: score,
		Payload: map[string]interface{}{
			"template_id": templateID,
			"category":    "check-in",
			"text":        "Check-in is at {check_in_time}.",
		},
	}
}

func newTestRepo(s *fakeSearcher, e *fakeEmbedder) repo.TemplateRepository {
	return New(s, e, Config{Collection: "templates", CacheSize: 10, CacheTTL: time.Minute}, nopLogger{})
}

func TestSearchTemplatesDedup(t *testing.T) {
	searcher := &fakeSearcher{points: []qdrant.ScoredPoint{
		point("tpl-a", 0.91),
		point("tpl-b", 0.88),
		point("tpl-a", 0.95),
		point("tpl-c", 0.72),
		point("tpl-b", 0.80),
	}}
	r := newTestRepo(searcher, &fakeEmbedder{})

	matches, err := r.SearchTemplates(context.Background(), repo.SearchTemplatesOptions{
		Query: "what time is check-in", TopK: 3, ScoreThreshold: 0.70,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 unique templates, got %d", len(matches))
	}
	seen := map[string]bool{}
	for _, m := range matches {
		if seen[m.TemplateID] {
			t.Errorf("duplicate template id %s in results", m.TemplateID)
		}
		seen[m.TemplateID] = true
	}
	if matches[0].TemplateID != "tpl-a" || matches[0].Score != 0.95 {
		t.Errorf("expected tpl-a at 0.95 first, got %s at %v", matches[0].TemplateID, matches[0].Score)
	}
	if matches[1].TemplateID != "tpl-b" || matches[1].Score != 0.88 {
		t.Errorf("expected tpl-b at 0.88 second, got %s at %v", matches[1].TemplateID, matches[1].Score)
	}
}

func TestSearchTemplatesTruncatesToTopK(t *testing.T) {
	searcher := &fakeSearcher{points: []qdrant.ScoredPoint{
		point("a", 0.9), point("b", 0.8), point("c", 0.75), point("d", 0.72),
	}}
	r := newTestRepo(searcher, &fakeEmbedder{})

	matches, err := r.SearchTemplates(context.Background(), repo.SearchTemplatesOptions{
		Query: "q", TopK: 2, ScoreThreshold: 0.70,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected TopK=2 results, got %d", len(matches))
	}
	if searcher.lastReq.Limit != 4 {
		t.Errorf("expected raw fetch of 2x TopK, got limit %d", searcher.lastReq.Limit)
	}
	if searcher.lastReq.ScoreThreshold != 0.70 {
		t.Errorf("score threshold not forwarded: %v", searcher.lastReq.ScoreThreshold)
	}
}

func TestSearchTemplatesEmpty(t *testing.T) {
	r := newTestRepo(&fakeSearcher{}, &fakeEmbedder{})

	matches, err := r.SearchTemplates(context.Background(), repo.SearchTemplatesOptions{
		Query: "q", TopK: 3, ScoreThreshold: 0.70,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected empty result, got %v", matches)
	}
}

func TestSearchTemplatesEmbeddingCache(t *testing.T) {
	emb := &fakeEmbedder{}
	r := newTestRepo(&fakeSearcher{}, emb)

	opt := repo.SearchTemplatesOptions{Query: "same query", TopK: 3, ScoreThreshold: 0.70}
	for i := 0; i < 3; i++ {
		if _, err := r.SearchTemplates(context.Background(), opt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if emb.calls != 1 {
		t.Errorf("expected 1 embedding call for repeated query, got %d", emb.calls)
	}
}

func TestSearchTemplatesErrors(t *testing.T) {
	t.Run("embed failure", func(t *testing.T) {
		r := newTestRepo(&fakeSearcher{}, &fakeEmbedder{err: errors.New("api down")})
		_, err := r.SearchTemplates(context.Background(), repo.SearchTemplatesOptions{Query: "q", TopK: 3})
		if !errors.Is(err, repo.ErrFailedToEmbed) {
			t.Errorf("expected ErrFailedToEmbed, got %v", err)
		}
	})

	t.Run("search failure", func(t *testing.T) {
		r := newTestRepo(&fakeSearcher{err: errors.New("qdrant down")}, &fakeEmbedder{})
		_, err := r.SearchTemplates(context.Background(), repo.SearchTemplatesOptions{Query: "q", TopK: 3})
		if !errors.Is(err, repo.ErrFailedToSearch) {
			t.Errorf("expected ErrFailedToSearch, got %v", err)
		}
	})
}
