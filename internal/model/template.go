package model

// TemplateCategory labels a canonical response template.
type TemplateCategory string

const (
	CategoryCheckIn         TemplateCategory = "check-in"
	CategoryCheckOut        TemplateCategory = "check-out"
	CategoryParking         TemplateCategory = "parking"
	CategoryAmenities       TemplateCategory = "amenities"
	CategoryPolicies        TemplateCategory = "policies"
	CategorySpecialRequests TemplateCategory = "special-requests"
	CategoryGeneral         TemplateCategory = "general"
)

// Template is one canonical response record. The text may contain
// {placeholder} tokens filled from property/reservation data at answer time.
// The JSON tags are the seed-file format consumed by scripts/seed-templates.
type Template struct {
	ID       string           `json:"template_id"`
	Category TemplateCategory `json:"category"`
	Text     string           `json:"text"`
	// TriggerPhrases are the short guest phrasings indexed for this template.
	// Each phrase is embedded as its own point in the vector index.
	TriggerPhrases []string `json:"trigger_phrases"`
}
