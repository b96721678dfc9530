package usecase

import (
	"context"

	"guest-response-agent/internal/guardrail"
	"guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/pkg/llmprovider"
	"guest-response-agent/pkg/log"
)

// completer is the slice of llmprovider.Manager used for drafting.
type completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config tunes the response pipeline.
type Config struct {
	RetrievalTopK                int
	RetrievalSimilarityThreshold float64
	DirectSubstitutionEnabled    bool
	DirectSubstitutionThreshold  float64
	Temperature                  float64
	MaxTokens                    int
}

// implUseCase is the private implementation of inquiry.UseCase.
type implUseCase struct {
	pii       guardrail.PIIGuard
	topic     guardrail.TopicGuard
	templates repository.TemplateRepository
	records   repository.RecordRepository
	llm       completer
	cfg       Config
	l         log.Logger
}

// New creates the inquiry UseCase implementation.
func New(
	pii guardrail.PIIGuard,
	topic guardrail.TopicGuard,
	templates repository.TemplateRepository,
	records repository.RecordRepository,
	llm completer,
	cfg Config,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		pii:       pii,
		topic:     topic,
		templates: templates,
		records:   records,
		llm:       llm,
		cfg:       cfg,
		l:         l,
	}
}
