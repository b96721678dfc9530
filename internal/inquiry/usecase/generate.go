package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"guest-response-agent/internal/inquiry"
	"guest-response-agent/internal/metrics"
	"guest-response-agent/internal/model"
	"guest-response-agent/pkg/llmprovider"
)

// parseFallbackConfidence is reported when the draft does not parse as
// JSON and the raw completion text is used verbatim.
const parseFallbackConfidence = 0.7

// defaultTemplateConfidence is used when a parsed template draft omits its
// self-reported score.
const defaultTemplateConfidence = 0.9

// draftResult is the outcome of one drafting call.
type draftResult struct {
	text       string
	tier       inquiry.ResponseTier
	confidence float64
	err        error
}

func errDraftPanic(rec any) error {
	return fmt.Errorf("draft panic: %v", rec)
}

// draft picks the generation strategy: template-grounded when the best
// match clears the retrieval threshold, custom otherwise.
func (uc *implUseCase) draft(ctx context.Context, redacted string, matches []inquiry.TemplateMatch, property *model.Property, reservation *model.Reservation) draftResult {
	if len(matches) > 0 && matches[0].Score >= uc.cfg.RetrievalSimilarityThreshold {
		return uc.draftFromTemplates(ctx, redacted, matches, property, reservation)
	}
	return uc.draftCustom(ctx, redacted, property, reservation)
}

// draftFromTemplates issues one LLM call grounded on up to the top 3
// matched templates plus property/reservation context.
func (uc *implUseCase) draftFromTemplates(ctx context.Context, redacted string, matches []inquiry.TemplateMatch, property *model.Property, reservation *model.Reservation) draftResult {
	prompt := strings.NewReplacer(
		"%GUEST_MESSAGE%", redacted,
		"%TEMPLATES%", formatTemplates(matches),
		"%PROPERTY_INFO%", marshalInfo(property),
		"%RESERVATION_INFO%", marshalInfo(reservation),
	).Replace(responseGenerationPrompt)

	resp, err := uc.complete(ctx, prompt)
	if err != nil {
		return draftResult{err: err}
	}

	var parsed struct {
		ResponseText    string   `json:"response_text"`
		ConfidenceScore *float64 `json:"confidence_score"`
	}
	if jsonErr := json.Unmarshal([]byte(extractJSON(resp.Text)), &parsed); jsonErr != nil || parsed.ResponseText == "" {
		uc.l.Warnf(ctx, "uc.Respond: template draft not parseable as JSON, using raw text")
		return draftResult{text: resp.Text, tier: inquiry.TierTemplate, confidence: parseFallbackConfidence}
	}

	confidence := defaultTemplateConfidence
	if parsed.ConfidenceScore != nil {
		confidence = *parsed.ConfidenceScore
	}
	return draftResult{text: parsed.ResponseText, tier: inquiry.TierTemplate, confidence: confidence}
}

// draftCustom issues one LLM call with property/reservation context only.
// The custom tier has no self-reported score; confidence is fixed.
func (uc *implUseCase) draftCustom(ctx context.Context, redacted string, property *model.Property, reservation *model.Reservation) draftResult {
	prompt := strings.NewReplacer(
		"%GUEST_MESSAGE%", redacted,
		"%PROPERTY_INFO%", marshalInfo(property),
		"%RESERVATION_INFO%", marshalInfo(reservation),
	).Replace(customResponsePrompt)

	resp, err := uc.complete(ctx, prompt)
	if err != nil {
		return draftResult{err: err}
	}

	text := resp.Text
	var parsed struct {
		ResponseText string `json:"response_text"`
	}
	if jsonErr := json.Unmarshal([]byte(extractJSON(resp.Text)), &parsed); jsonErr == nil && parsed.ResponseText != "" {
		text = parsed.ResponseText
	}

	return draftResult{text: text, tier: inquiry.TierCustom, confidence: parseFallbackConfidence}
}

func (uc *implUseCase) complete(ctx context.Context, prompt string) (*llmprovider.Response, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    []llmprovider.Message{{Role: "user", Text: prompt}},
		Temperature: uc.cfg.Temperature,
		MaxTokens:   uc.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if resp.Usage != nil {
		metrics.TokensUsed.WithLabelValues("prompt").Add(float64(resp.Usage.InputTokens))
		metrics.TokensUsed.WithLabelValues("completion").Add(float64(resp.Usage.OutputTokens))
	}
	return resp, nil
}

// formatTemplates renders up to the top 3 candidates for the prompt.
func formatTemplates(matches []inquiry.TemplateMatch) string {
	if len(matches) > 3 {
		matches = matches[:3]
	}
	parts := make([]string, 0, len(matches))
	for i, m := range matches {
		parts = append(parts, fmt.Sprintf(
			"Template %d (similarity: %.3f):\nCategory: %s\nText: %s",
			i+1, m.Score, m.Category, m.Text,
		))
	}
	return strings.Join(parts, "\n\n")
}

// marshalInfo renders a record as indented JSON for the prompt, or the
// literal "Not available" for absent records.
func marshalInfo(v any) string {
	switch rec := v.(type) {
	case *model.Property:
		if rec == nil {
			return "Not available"
		}
	case *model.Reservation:
		if rec == nil {
			return "Not available"
		}
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Not available"
	}
	return string(raw)
}

// extractJSON strips markdown code fences and surrounding prose, returning
// the first top-level JSON object in the text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
