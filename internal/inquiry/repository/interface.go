package repository

import (
	"context"

	"guest-response-agent/internal/inquiry"
	"guest-response-agent/internal/model"
)

// TemplateRepository is the semantic template index.
type TemplateRepository interface {
	// SearchTemplates returns candidates ordered descending by score,
	// deduplicated by template id, truncated to opt.TopK.
	SearchTemplates(ctx context.Context, opt SearchTemplatesOptions) ([]inquiry.TemplateMatch, error)
}

// RecordRepository is the property/reservation record store.
// Missing records return (nil, nil) — not-found is not an error.
type RecordRepository interface {
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	GetReservation(ctx context.Context, id string) (*model.Reservation, error)
}
