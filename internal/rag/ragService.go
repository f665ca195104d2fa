package rag

import (
	"context"
	"strings"
	"time"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/domain/jobModel"
	"github.com/akolanti/MentorAPI/internal/metrics"
	"github.com/akolanti/MentorAPI/internal/rag/cache"
	"github.com/akolanti/MentorAPI/internal/rag/embedding"
	"github.com/akolanti/MentorAPI/internal/rag/llm"
	"github.com/akolanti/MentorAPI/internal/rag/validator"
	"github.com/akolanti/MentorAPI/internal/rag/vectorstore"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - The PUBLIC contract the worker and HTTP handlers call.

2. service (Private Struct):
  - The PRIVATE implementation - holds the store, embedder, validator
    and LLM clients. Lowercase so external packages can't reach the
    dependencies directly.

3. Pointer Receiver (*service):
  - Implicitly satisfies the Service interface.

4. Dependency Injection (NewService):
  - Lets tests swap real clients for mocks without touching callers.
*/

// Service is everything the worker pool and the HTTP layer can do with
// the retrieval core.
type Service interface {
	// ProcessRequest runs the chat RAG flow for a query job.
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job

	// IngestDocument runs Ingest for a queued ingestion job, reading the
	// uploaded file from the job's temp path.
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job

	// Ingest pushes one uploaded document through extract -> validate ->
	// chunk -> embed -> store.
	Ingest(ctx context.Context, data []byte, filename string) (commonModels.IngestionResult, error)

	// Query embeds text and returns the topK best-matching chunks with
	// score >= minScore.
	Query(ctx context.Context, text string, topK int, minScore float64) ([]commonModels.SearchResult, error)

	Stats(ctx context.Context) commonModels.StoreStats
	Clear(ctx context.Context) error
}

type service struct {
	store       vectorstore.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	validator   *validator.Validator
	cache       *cache.SemanticCache //nil disables semantic caching
	logger      *logger_i.Logger
}

// NewService constructor. sc may be nil.
func NewService(store vectorstore.Store, provider llm.Provider, em embedding.Embedder, val *validator.Validator, sc *cache.SemanticCache) Service {
	return &service{
		store:       store,
		llmProvider: provider,
		embedder:    em,
		validator:   val,
		cache:       sc,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Vector Store Search
	matches, err := s.executeSearchStep(processContext, inMethodLogger, &jobt, queryVector)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_SEARCH_FAILURE", true)
	}

	// LLM Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, matches, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save
	if s.cache != nil {
		go func() {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer saveCancel()
			if err := s.cache.SaveToCache(saveCtx, newCacheID(), queryVector, answer); err != nil {
				s.logger.Error("Failed to save to cache")
			}
		}()
	}

	return returnOutput(jobt, answer)
}

func (s *service) Query(ctx context.Context, text string, topK int, minScore float64) ([]commonModels.SearchResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, commonModels.QueryError("query text must not be empty")
	}
	if topK <= 0 {
		return nil, commonModels.QueryError("top_k must be positive")
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query", time.Since(start)) }()

	queryVector, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, queryVector, topK, minScore)
}

func (s *service) Stats(ctx context.Context) commonModels.StoreStats {
	return s.store.Stats(ctx)
}

func (s *service) Clear(ctx context.Context) error {
	s.logger.Info("Clearing vector store")
	return s.store.Clear(ctx)
}
