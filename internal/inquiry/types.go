package inquiry

// ResponseTier names the strategy that produced a response.
type ResponseTier string

const (
	// TierDirectTemplate answered from a matched template with pure
	// placeholder substitution, zero LLM calls.
	TierDirectTemplate ResponseTier = "direct_template"
	// TierTemplate answered with one LLM call grounded on matched templates.
	TierTemplate ResponseTier = "template"
	// TierCustom answered with one LLM call from property/reservation
	// context only.
	TierCustom ResponseTier = "custom"
	// TierNoResponse is the guardrail refusal.
	TierNoResponse ResponseTier = "no_response"
	// TierError is the recovery output for unexpected pipeline faults.
	TierError ResponseTier = "error"
)

// TemplateMatch is one deduplicated retrieval candidate.
type TemplateMatch struct {
	TemplateID string
	Category   string
	Text       string
	Score      float64
}

// --- UseCase Inputs ---

type RespondInput struct {
	Message       string
	PropertyID    string
	ReservationID string
}

// --- UseCase Outputs ---

type RespondOutput struct {
	Text       string
	Tier       ResponseTier
	Confidence float64
	Metadata   Metadata
}

// Metadata carries per-request observability fields returned to the caller.
type Metadata struct {
	PIIDetected    bool
	TemplatesFound int
	LatencyMS      int64
}
