package embedding

import "context"

// Embedder wraps the external text-to-vector capability. BatchEmbedding
// returns one vector per input in the same order; how the inputs are
// split into upstream calls is the adapter's business. Failures surface
// as EmbeddingServiceError - never silently dropped vectors.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
