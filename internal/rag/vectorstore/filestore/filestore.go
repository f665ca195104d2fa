package filestore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

// FileStore keeps every chunk in memory in insertion order and mirrors
// the full state to two JSON artifacts on every mutation (write-through,
// so a crash never loses an ingested document). Search is a linear scan,
// which is fine at the scale of one user's uploads.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	logger *logger_i.Logger

	dimension int
	chunks    []commonModels.DocumentChunk
	docs      map[string]commonModels.DocumentMeta //keyed by filename
	docOrder  []string
}

// Open loads the persisted state from dir, creating the directory and an
// empty store when nothing is there yet. A mismatch between the two
// artifacts is treated as corruption and refused.
func Open(dir string) (*FileStore, error) {
	s := &FileStore{
		dir:    dir,
		logger: logger_i.NewLogger("FileStore"),
		docs:   make(map[string]commonModels.DocumentMeta),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.logger.Info("Vector store loaded", "chunks", len(s.chunks), "documents", len(s.docOrder))
	return s, nil
}

func (s *FileStore) Insert(ctx context.Context, chunks []commonModels.DocumentChunk, meta commonModels.DocumentMeta) error {
	if len(chunks) == 0 {
		return commonModels.PersistenceError("nothing to insert", nil)
	}
	if len(chunks) != meta.ChunkCount {
		return commonModels.PersistenceError(
			fmt.Sprintf("metadata says %d chunks but got %d", meta.ChunkCount, len(chunks)), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dimension
	if dim == 0 {
		dim = len(chunks[0].Embedding)
	}
	for _, c := range chunks {
		if len(c.Embedding) != dim {
			return commonModels.EmbeddingServiceError(
				fmt.Sprintf("embedding dimensionality mismatch: store holds %d, chunk %d of %q has %d",
					dim, c.ChunkIndex, c.SourceFile, len(c.Embedding)), nil)
		}
	}
	if _, exists := s.docs[meta.Filename]; exists {
		return commonModels.PersistenceError("document already present: "+meta.Filename, nil)
	}

	prevChunks := len(s.chunks)
	prevDim := s.dimension

	s.dimension = dim
	s.chunks = append(s.chunks, chunks...)
	s.docs[meta.Filename] = meta
	s.docOrder = append(s.docOrder, meta.Filename)

	if err := s.persist(); err != nil {
		//roll back so readers never see state the disk doesn't have
		s.chunks = s.chunks[:prevChunks]
		s.dimension = prevDim
		delete(s.docs, meta.Filename)
		s.docOrder = s.docOrder[:len(s.docOrder)-1]
		s.logger.Error("Insert rolled back", "filename", meta.Filename, "error", err)
		return commonModels.PersistenceError("persisting store state", err)
	}
	return nil
}

func (s *FileStore) Search(ctx context.Context, queryVector []float32, topK int, minScore float64) ([]commonModels.SearchResult, error) {
	if topK <= 0 {
		return nil, commonModels.QueryError("top_k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []commonModels.SearchResult
	for _, c := range s.chunks {
		score := CosineSimilarity(queryVector, c.Embedding)
		if score >= minScore {
			results = append(results, commonModels.SearchResult{Chunk: c, Score: score})
		}
	}

	//stable sort keeps insertion order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *FileStore) Stats(ctx context.Context) commonModels.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filenames := make([]string, len(s.docOrder))
	copy(filenames, s.docOrder)
	return commonModels.StoreStats{
		TotalChunks:    len(s.chunks),
		TotalDocuments: len(s.docOrder),
		Filenames:      filenames,
	}
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevChunks := s.chunks
	prevDocs := s.docs
	prevOrder := s.docOrder
	prevDim := s.dimension

	s.chunks = nil
	s.docs = make(map[string]commonModels.DocumentMeta)
	s.docOrder = nil
	s.dimension = 0

	if err := s.persist(); err != nil {
		s.chunks = prevChunks
		s.docs = prevDocs
		s.docOrder = prevOrder
		s.dimension = prevDim
		return commonModels.PersistenceError("persisting cleared state", err)
	}
	s.logger.Info("Vector store cleared")
	return nil
}

func (s *FileStore) HasDocument(ctx context.Context, fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, meta := range s.docs {
		if meta.Fingerprint == fingerprint {
			return true
		}
	}
	return false
}

// CosineSimilarity is dot(a,b) / (||a||*||b||). A zero-norm vector is
// defined to have similarity 0 with anything.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
