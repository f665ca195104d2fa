package rag_test

import (
	"context"

	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
)

// MockStore implements vectorstore.Store
type MockStore struct {
	// Control fields to simulate different behaviors
	OnInsert      func(ctx context.Context, chunks []commonModels.DocumentChunk, meta commonModels.DocumentMeta) error
	OnSearch      func(ctx context.Context, queryVector []float32, topK int, minScore float64) ([]commonModels.SearchResult, error)
	OnStats       func(ctx context.Context) commonModels.StoreStats
	OnClear       func(ctx context.Context) error
	OnHasDocument func(ctx context.Context, fingerprint string) bool

	Inserted []commonModels.DocumentChunk
}

func (m *MockStore) Insert(ctx context.Context, chunks []commonModels.DocumentChunk, meta commonModels.DocumentMeta) error {
	if m.OnInsert != nil {
		return m.OnInsert(ctx, chunks, meta)
	}
	m.Inserted = append(m.Inserted, chunks...)
	return nil
}

func (m *MockStore) Search(ctx context.Context, v []float32, topK int, minScore float64) ([]commonModels.SearchResult, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, topK, minScore)
	}
	return []commonModels.SearchResult{
		{Chunk: commonModels.DocumentChunk{Text: "default context", SourceFile: "doc.pdf"}, Score: 0.9},
	}, nil
}

func (m *MockStore) Stats(ctx context.Context) commonModels.StoreStats {
	if m.OnStats != nil {
		return m.OnStats(ctx)
	}
	return commonModels.StoreStats{TotalChunks: len(m.Inserted)}
}

func (m *MockStore) Clear(ctx context.Context) error {
	if m.OnClear != nil {
		return m.OnClear(ctx)
	}
	m.Inserted = nil
	return nil
}

func (m *MockStore) HasDocument(ctx context.Context, fingerprint string) bool {
	if m.OnHasDocument != nil {
		return m.OnHasDocument(ctx, fingerprint)
	}
	return false
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate       func(ctx context.Context, query string, matches []string, history []string) (string, error)
	OnJudgeRelevance func(ctx context.Context, excerpt string) (float64, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, mth []string, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, mth, hist)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) JudgeRelevance(ctx context.Context, excerpt string) (float64, error) {
	if m.OnJudgeRelevance != nil {
		return m.OnJudgeRelevance(ctx, excerpt)
	}
	return 8.0, nil
}
