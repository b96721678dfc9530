package embedding

import "context"

// IEmbedder defines the interface for text embedding generation.
// Implementations are safe for concurrent use.
type IEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
