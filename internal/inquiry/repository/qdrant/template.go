package qdrant

import (
	"context"
	"sort"

	"guest-response-agent/internal/inquiry"
	repo "guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/internal/metrics"
	"guest-response-agent/pkg/qdrant"
)

// SearchTemplates embeds the query and searches the trigger-phrase index.
// The index holds one point per trigger phrase, so several hits may belong
// to the same template; the raw fetch is 2x TopK to survive deduplication.
func (r *implRepository) SearchTemplates(ctx context.Context, opt repo.SearchTemplatesOptions) ([]inquiry.TemplateMatch, error) {
	vector, err := r.queryVector(ctx, opt.Query)
	if err != nil {
		r.l.Errorf(ctx, "inquiry/repository/qdrant.SearchTemplates embed: %v", err)
		return nil, repo.ErrFailedToEmbed
	}

	resp, err := r.search.SearchPoints(ctx, r.collection, qdrant.SearchRequest{
		Vector:         vector,
		Limit:          opt.TopK * 2,
		WithPayload:    true,
		ScoreThreshold: opt.ScoreThreshold,
	})
	if err != nil {
		r.l.Errorf(ctx, "inquiry/repository/qdrant.SearchTemplates search: %v", err)
		return nil, repo.ErrFailedToSearch
	}

	return dedupeByTemplateID(resp.Result, opt.TopK), nil
}

// queryVector returns the embedding for the query, consulting the LRU first.
func (r *implRepository) queryVector(ctx context.Context, query string) ([]float32, error) {
	if v, ok := r.cache.Get(query); ok {
		metrics.CacheHit.WithLabelValues("embedding").Inc()
		return v, nil
	}
	metrics.CacheMiss.WithLabelValues("embedding").Inc()

	vectors, err := r.embed.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	r.cache.Add(query, vectors[0])
	return vectors[0], nil
}

// dedupeByTemplateID collapses trigger-phrase hits onto their templates,
// keeping the highest score per template id, sorted descending, up to topK.
func dedupeByTemplateID(points []qdrant.ScoredPoint, topK int) []inquiry.TemplateMatch {
	best := map[string]inquiry.TemplateMatch{}
	for _, p := range points {
		m := toMatch(p)
		if m.TemplateID == "" {
			continue
		}
		if prev, ok := best[m.TemplateID]; !ok || m.Score > prev.Score {
			best[m.TemplateID] = m
		}
	}

	out := make([]inquiry.TemplateMatch, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

func toMatch(p qdrant.ScoredPoint) inquiry.TemplateMatch {
	m := inquiry.TemplateMatch{Score: p.Score}
	if v, ok := p.Payload["template_id"].(string); ok {
		m.TemplateID = v
	}
	if v, ok := p.Payload["category"].(string); ok {
		m.Category = v
	}
	if v, ok := p.Payload["text"].(string); ok {
		m.Text = v
	}
	return m
}
