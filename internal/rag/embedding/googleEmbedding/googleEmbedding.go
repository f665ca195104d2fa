package googleEmbedding

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/MentorAPI/internal/adapter/utils"
	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/rag/embedding"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
	"google.golang.org/genai"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

// above this many inputs we go through the async batch job API instead of
// inline embedding calls
const hugeDataSetSize = 1000000

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Info("Google Embedding client created", "model", modelName)
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	if err != nil {
		logger.Error("Error getting Embedding from Google", "error", err)
		return nil, commonModels.EmbeddingServiceError("google embedding call", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, commonModels.EmbeddingServiceError("google embedding returned no vector", nil)
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	log := logger.With("inputs", len(texts))

	if len(texts) <= hugeDataSetSize {
		res, err := c.doCall(ctx, getContent(texts))
		if err != nil || res == nil {
			if doRetry(err, log) {
				time.Sleep(5 * time.Second)
				log.Debug("Retrying after rate limit")
				res, err = c.doCall(ctx, getContent(texts))
			}
			if err != nil || res == nil {
				log.Error("Error getting Embeddings from Google", "error", err)
				return nil, commonModels.EmbeddingServiceError("google embedding batch", err)
			}
		}
		if len(res.Embeddings) != len(texts) {
			return nil, commonModels.EmbeddingServiceError("google embedding returned wrong vector count", nil)
		}
		embeddingResults := make([][]float32, 0, len(res.Embeddings))
		for _, r := range res.Embeddings {
			if len(r.Values) == 0 {
				return nil, commonModels.EmbeddingServiceError("google embedding returned an empty vector", nil)
			}
			embeddingResults = append(embeddingResults, r.Values)
		}
		return embeddingResults, nil
	}

	batchJobName := utils.GetNewUUID()
	log = log.With("batchJobName", batchJobName)

	source := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(texts)}
	conf := genai.CreateEmbeddingsBatchJobConfig{DisplayName: batchJobName}
	_, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source, &conf)
	if err != nil {
		log.Error("Error creating batch embedding job", "error", err)
		return nil, commonModels.EmbeddingServiceError("creating google batch embedding job", err)
	}

	answer, err := c.pollForAnswer(ctx, batchJobName, log)
	if err != nil {
		return nil, commonModels.EmbeddingServiceError("polling google batch embedding job", err)
	}
	resultVectors, downErr := downloadAnswerFromClient(answer, log)
	if downErr != nil {
		return nil, commonModels.EmbeddingServiceError("downloading google batch embedding results", downErr)
	}
	return resultVectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	return result, err
}
