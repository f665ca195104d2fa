package vectorstore

import (
	"context"

	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
)

// Store is the persistence-backed chunk index. The single implementation
// is a linear-scan file store; the interface exists so an ANN index can
// slot in behind the same contract later.
type Store interface {
	// Insert appends the chunks of one document and persists the whole
	// state before returning. On a persistence failure the in-memory
	// index is rolled back so memory and disk stay consistent.
	Insert(ctx context.Context, chunks []commonModels.DocumentChunk, meta commonModels.DocumentMeta) error

	// Search scores every stored embedding against queryVector by cosine
	// similarity and returns up to topK results with score >= minScore,
	// best first. Ties rank the earlier-inserted chunk first.
	Search(ctx context.Context, queryVector []float32, topK int, minScore float64) ([]commonModels.SearchResult, error)

	Stats(ctx context.Context) commonModels.StoreStats

	// Clear empties the index and persists the empty state. Idempotent.
	Clear(ctx context.Context) error

	// HasDocument reports whether a document with this content
	// fingerprint was already ingested.
	HasDocument(ctx context.Context, fingerprint string) bool
}
