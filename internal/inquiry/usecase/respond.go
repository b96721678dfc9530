package usecase

import (
	"context"
	"sync"
	"time"

	"guest-response-agent/internal/inquiry"
	repo "guest-response-agent/internal/inquiry/repository"
	"guest-response-agent/internal/metrics"
	"guest-response-agent/internal/model"
	"guest-response-agent/internal/substitute"
)

const (
	// refusalText is the fixed, non-diagnostic reply for blocked requests.
	// It deliberately reveals nothing about which guardrail fired.
	refusalText = "I apologize, but I'm unable to assist with this type of request. Please contact the property directly for further assistance."

	// errorText is the recovery reply when the pipeline itself faults.
	errorText = "I apologize, but I encountered an error processing your request. Please try again or contact the property directly."
)

// Respond runs the full pipeline: PII block check, redaction, concurrent
// retrieval and record lookup, fast-path or classified topic verdict, then
// tiered generation. It never returns a non-nil error for business flow;
// unexpected panics resolve to the error tier.
func (uc *implUseCase) Respond(ctx context.Context, input inquiry.RespondInput) (output inquiry.RespondOutput, err error) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			uc.l.Errorf(ctx, "uc.Respond: pipeline panic: %v", rec)
			metrics.RequestCount.WithLabelValues("error", string(inquiry.TierError)).Inc()
			output = inquiry.RespondOutput{
				Text:       errorText,
				Tier:       inquiry.TierError,
				Confidence: 0.0,
				Metadata:   inquiry.Metadata{LatencyMS: time.Since(start).Milliseconds()},
			}
			err = nil
			return
		}

		output.Metadata.LatencyMS = time.Since(start).Milliseconds()
		status := "success"
		if output.Tier == inquiry.TierError {
			status = "error"
		}
		metrics.RequestCount.WithLabelValues(status, string(output.Tier)).Inc()
		metrics.RequestDuration.Observe(time.Since(start).Seconds())
		metrics.ResponseTypeCount.WithLabelValues(string(output.Tier)).Inc()
	}()

	output = uc.respond(ctx, input)
	return output, nil
}

func (uc *implUseCase) respond(ctx context.Context, input inquiry.RespondInput) inquiry.RespondOutput {
	// Hard stop on payment/government identifiers. No redaction, no topic
	// check, no network call happens for these messages.
	if uc.pii.ShouldBlock(input.Message) {
		uc.l.Warnf(ctx, "uc.Respond: blocking PII detected, refusing request")
		metrics.GuardrailTriggered.WithLabelValues("pii_block").Inc()
		return inquiry.RespondOutput{
			Text:       refusalText,
			Tier:       inquiry.TierNoResponse,
			Confidence: 1.0,
			Metadata:   inquiry.Metadata{PIIDetected: true},
		}
	}

	redacted, hadPII := uc.pii.Redact(input.Message)
	if hadPII {
		metrics.PIIDetected.Inc()
		metrics.GuardrailTriggered.WithLabelValues("pii_redaction").Inc()
	}

	// Template matching and record lookup are independent; overlap them.
	matches, property, reservation := uc.gatherInputs(ctx, redacted, input.PropertyID, input.ReservationID)

	fillCtx := substitute.BuildContext(property, reservation)
	meta := inquiry.Metadata{PIIDetected: hadPII, TemplatesFound: len(matches)}

	fastSafe := uc.topic.IsObviouslySafe(redacted)
	if fastSafe {
		metrics.TopicFilterPath.WithLabelValues("fast_path").Inc()
		return uc.respondAllowed(ctx, redacted, matches, fillCtx, property, reservation, meta)
	}
	metrics.TopicFilterPath.WithLabelValues("llm").Inc()

	return uc.respondWithTopicCheck(ctx, redacted, matches, fillCtx, property, reservation, meta)
}

// gatherInputs runs template search and property/reservation lookups
// concurrently. All three degrade to empty results on failure: retrieval
// or lookup outages must not abort the request.
func (uc *implUseCase) gatherInputs(ctx context.Context, redacted, propertyID, reservationID string) ([]inquiry.TemplateMatch, *model.Property, *model.Reservation) {
	var (
		wg          sync.WaitGroup
		matches     []inquiry.TemplateMatch
		property    *model.Property
		reservation *model.Reservation
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer uc.recoverGather(ctx, "template search")
		found, err := uc.templates.SearchTemplates(ctx, repo.SearchTemplatesOptions{
			Query:          redacted,
			TopK:           uc.cfg.RetrievalTopK,
			ScoreThreshold: uc.cfg.RetrievalSimilarityThreshold,
		})
		if err != nil {
			uc.l.Warnf(ctx, "uc.Respond: template search failed, continuing without templates: %v", err)
			return
		}
		matches = found
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer uc.recoverGather(ctx, "property lookup")
		p, err := uc.records.GetProperty(ctx, propertyID)
		if err != nil {
			uc.l.Warnf(ctx, "uc.Respond: property lookup failed: %v", err)
			return
		}
		property = p
	}()

	if reservationID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer uc.recoverGather(ctx, "reservation lookup")
			r, err := uc.records.GetReservation(ctx, reservationID)
			if err != nil {
				uc.l.Warnf(ctx, "uc.Respond: reservation lookup failed: %v", err)
				return
			}
			reservation = r
		}()
	}

	wg.Wait()

	// A reservation from another property must never leak into a response.
	if reservation != nil && reservation.PropertyID != propertyID {
		uc.l.Warnf(ctx, "uc.Respond: reservation %s does not belong to property %s, clearing reservation data",
			reservationID, propertyID)
		reservation = nil
	}

	return matches, property, reservation
}

// recoverGather keeps a panicking collaborator goroutine from killing the
// process; the gather step degrades to an empty result instead.
func (uc *implUseCase) recoverGather(ctx context.Context, what string) {
	if rec := recover(); rec != nil {
		uc.l.Errorf(ctx, "uc.Respond: %s panicked: %v", what, rec)
	}
}

// respondAllowed generates a response for a message whose topic verdict is
// already allowed: direct substitution first, then template or custom.
func (uc *implUseCase) respondAllowed(
	ctx context.Context,
	redacted string,
	matches []inquiry.TemplateMatch,
	fillCtx map[string]string,
	property *model.Property,
	reservation *model.Reservation,
	meta inquiry.Metadata,
) inquiry.RespondOutput {
	if out, ok := uc.tryDirectSubstitution(ctx, matches, fillCtx, meta); ok {
		return out
	}

	dr := uc.draft(ctx, redacted, matches, property, reservation)
	return uc.draftToOutput(ctx, dr, meta)
}

// respondWithTopicCheck overlaps the topic classifier with drafting. The
// classifier is awaited first; a blocking verdict cancels the in-flight
// draft and its result is discarded, never surfaced.
func (uc *implUseCase) respondWithTopicCheck(
	ctx context.Context,
	redacted string,
	matches []inquiry.TemplateMatch,
	fillCtx map[string]string,
	property *model.Property,
	reservation *model.Reservation,
	meta inquiry.Metadata,
) inquiry.RespondOutput {
	draftCtx, cancelDraft := context.WithCancel(ctx)
	defer cancelDraft()

	draftCh := make(chan draftResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				draftCh <- draftResult{err: errDraftPanic(rec)}
			}
		}()
		draftCh <- uc.draft(draftCtx, redacted, matches, property, reservation)
	}()

	verdict := uc.topic.Classify(ctx, redacted)
	if !verdict.Allowed {
		cancelDraft()
		uc.l.Infof(ctx, "uc.Respond: topic %q blocked (%s), discarding draft", verdict.Topic, verdict.Reason)
		metrics.GuardrailTriggered.WithLabelValues("topic_filter").Inc()
		return inquiry.RespondOutput{
			Text:       refusalText,
			Tier:       inquiry.TierNoResponse,
			Confidence: 1.0,
			Metadata:   meta,
		}
	}

	return uc.draftToOutput(ctx, <-draftCh, meta)
}

// tryDirectSubstitution answers from the best template with zero LLM calls
// when the match is confident enough and every placeholder fills. Templates
// carrying guest-identifying placeholders are excluded so the generation
// prompt rules (never echo guest names) always apply to them.
func (uc *implUseCase) tryDirectSubstitution(ctx context.Context, matches []inquiry.TemplateMatch, fillCtx map[string]string, meta inquiry.Metadata) (inquiry.RespondOutput, bool) {
	if !uc.cfg.DirectSubstitutionEnabled || len(matches) == 0 {
		return inquiry.RespondOutput{}, false
	}

	best := matches[0]
	if best.Score < uc.cfg.RetrievalSimilarityThreshold || best.Score < uc.cfg.DirectSubstitutionThreshold {
		return inquiry.RespondOutput{}, false
	}

	for _, name := range substitute.PlaceholderNames(best.Text) {
		if name == "guest_name" {
			metrics.DirectSubstitutionCount.WithLabelValues("fallback_guest_identifying").Inc()
			return inquiry.RespondOutput{}, false
		}
	}

	ok, filled, unfilled := substitute.CanUseDirectly(best.Text, best.Score, uc.cfg.DirectSubstitutionThreshold, fillCtx)
	if !ok {
		if len(unfilled) > 0 {
			uc.l.Infof(ctx, "uc.Respond: direct substitution failed, unfilled placeholders: %v", unfilled)
			metrics.DirectSubstitutionCount.WithLabelValues("fallback_unfilled").Inc()
		} else {
			metrics.DirectSubstitutionCount.WithLabelValues("fallback_low_score").Inc()
		}
		return inquiry.RespondOutput{}, false
	}

	uc.l.Infof(ctx, "uc.Respond: direct template substitution, score %.3f, template %s", best.Score, best.TemplateID)
	metrics.DirectSubstitutionCount.WithLabelValues("success").Inc()

	return inquiry.RespondOutput{
		Text:       filled,
		Tier:       inquiry.TierDirectTemplate,
		Confidence: clamp01(best.Score),
		Metadata:   meta,
	}, true
}

func (uc *implUseCase) draftToOutput(ctx context.Context, dr draftResult, meta inquiry.Metadata) inquiry.RespondOutput {
	if dr.err != nil {
		uc.l.Errorf(ctx, "uc.Respond: drafting failed: %v", dr.err)
		return inquiry.RespondOutput{
			Text:       errorText,
			Tier:       inquiry.TierError,
			Confidence: 0.0,
			Metadata:   meta,
		}
	}
	return inquiry.RespondOutput{
		Text:       dr.text,
		Tier:       dr.tier,
		Confidence: clamp01(dr.confidence),
		Metadata:   meta,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
