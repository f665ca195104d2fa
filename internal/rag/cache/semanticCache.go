package cache

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var cacheInstance *qdrant.Client
var once sync.Once

// SemanticCache short-circuits the LLM call when a semantically
// near-identical question was answered before. It lives in qdrant and is
// strictly optional: a nil *SemanticCache simply means no caching.
type SemanticCache struct {
	q *qdrant.Client
}

func GetSemanticCache(ctx context.Context) *SemanticCache {
	once.Do(func() {
		logger = logger_i.NewLogger("SemanticCache")
		client := newClient(ctx)
		if client != nil {
			cacheInstance = client
			go closeQdrant(ctx, cacheInstance)
		}
	})

	if cacheInstance == nil {
		return nil
	}
	return &SemanticCache{q: cacheInstance}
}

func newClient(ctx context.Context) *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}

	if err := ensureCollection(ctx, client); err != nil {
		logger.Error("semantic cache collection unavailable, caching disabled", "error", err)
		return nil
	}
	return client
}

func ensureCollection(ctx context.Context, client *qdrant.Client) error {
	exists, err := client.CollectionExists(ctx, config.CacheCollectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: config.CacheCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(config.EmbeddingOutputDimensionality),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down qdrant semantic cache")
	if err := qi.Close(); err != nil {
		logger.Error("could not close qdrant", "error", err)
	}
}

func (c *SemanticCache) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	searchResult, err := c.q.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.CacheCollectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		return "", false, err
	}

	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Info("Semantic cache hit", "score", searchResult[0].Score)
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (c *SemanticCache) SaveToCache(ctx context.Context, id string, vector []float32, answer string) error {
	_, err := c.q.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.CacheCollectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":    answer,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		logger.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
