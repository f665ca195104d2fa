package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	NoAuthBypass                = true //local dev only - flip for deployments
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//chunking
	ChunkSize    = 1000
	ChunkOverlap = 200

	//content validation
	RelevanceThreshold  = 4.0 //0-10 scale, minimum combined score to accept a document
	KeywordScoreWeight  = 0.4
	AIScoreWeight       = 0.6
	AIJudgeBand         = 2.0 //AI judge runs only when the keyword score lands this close to the threshold
	ValidationExcerpt   = 1000
	IngestPreviewLength = 500

	//embeddings
	EmbeddingProvider                   = "openai" //"openai" or "google"
	OpenAIEmbeddingModel                = "text-embedding-3-small"
	GoogleEmbeddingModel                = "gemini-embedding-001"
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingBatchSize                  = 100

	//llm
	GeminiModelName          = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTemperature float32 = 0.7
	ModelContext             = "You are a specialized startup mentor AI. Only discuss entrepreneurship, business strategy and uploaded business documents. Redirect non-startup questions politely. If you don't know the answer, say you don't know."

	//retrieval
	DefaultTopK     = 5
	DefaultMinScore = 0.0
	ChatMinScore    = 0.1

	//vector store persistence
	StorageDir       = "rag_storage"
	VectorDataFile   = "vector_data.json"
	DocumentMetaFile = "document_meta.json"

	//semantic cache (optional, qdrant-backed)
	CacheCollectionName     = "semantic-cache"
	CacheSimilarityCutoff   = 0.97
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
)

// AuthToken guards the HTTP surface when NoAuthBypass is off.
var AuthToken = os.Getenv("API_AUTH_TOKEN")

func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GoogleAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
