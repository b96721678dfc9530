package repository

// SearchTemplatesOptions holds parameters for semantic template search.
type SearchTemplatesOptions struct {
	Query          string
	TopK           int
	ScoreThreshold float64
}
