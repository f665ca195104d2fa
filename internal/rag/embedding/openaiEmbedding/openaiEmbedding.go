package openaiEmbedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/customHttpClient"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/rag/embedding"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	api   openai.Client
	model string
}

func GetOpenAIEmbeddingClient(modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		embeddingClient = &client{
			api:   openai.NewClient(option.WithAPIKey(apikey), option.WithHTTPClient(customHttpClient.GetPooledClient())),
			model: modelName,
		}
		logger.Info("OpenAI embedding client created", "model", modelName)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{api: embeddingClient.api, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))

	for start := 0; start < len(texts); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Model:      c.model,
			Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: batch},
			Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
		})
		if err != nil {
			logger.Error("Embedding call failed", "batch start", start, "error", err)
			return nil, commonModels.EmbeddingServiceError("embedding batch call", err)
		}
		if len(res.Data) != len(batch) {
			return nil, commonModels.EmbeddingServiceError(
				fmt.Sprintf("embedding service returned %d vectors for %d inputs", len(res.Data), len(batch)), nil)
		}

		// validate and convert at the boundary - malformed shapes never
		// travel further inward
		for _, item := range res.Data {
			idx := int(item.Index)
			if idx < 0 || idx >= len(batch) {
				return nil, commonModels.EmbeddingServiceError(
					fmt.Sprintf("embedding result index %d out of range", idx), nil)
			}
			if len(item.Embedding) == 0 {
				return nil, commonModels.EmbeddingServiceError("embedding service returned an empty vector", nil)
			}
			vec := make([]float32, len(item.Embedding))
			for i, v := range item.Embedding {
				vec[i] = float32(v)
			}
			results[start+idx] = vec
		}
	}

	for i, v := range results {
		if v == nil {
			return nil, commonModels.EmbeddingServiceError(
				fmt.Sprintf("embedding service skipped input %d", i), nil)
		}
	}
	return results, nil
}
