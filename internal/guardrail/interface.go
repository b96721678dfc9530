package guardrail

import "context"

// PIIGuard detects and redacts personally identifying data in guest messages.
type PIIGuard interface {
	// ShouldBlock reports whether the text contains high-risk identifiers
	// (card numbers, national IDs, bank codes) that terminate the request.
	ShouldBlock(text string) bool
	// Redact replaces detected PII spans with typed markers and reports
	// whether any redaction occurred.
	Redact(text string) (string, bool)
}

// TopicGuard decides whether a message concerns a restricted topic.
type TopicGuard interface {
	// IsObviouslySafe is the zero-latency fast path. A false result does
	// not mean blocked, only that full classification is required.
	IsObviouslySafe(text string) bool
	// Classify calls the LLM classifier and returns an authoritative verdict.
	Classify(ctx context.Context, text string) TopicVerdict
}
