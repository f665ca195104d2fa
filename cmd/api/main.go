// @title           Startup Mentor RAG API
// @version         1.0
// @description     This API handles document ingestion, retrieval and asynchronous chat RAG
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/data/store"
	jobmodel "github.com/akolanti/MentorAPI/internal/domain/jobModel"
	"github.com/akolanti/MentorAPI/internal/handlers"
	"github.com/akolanti/MentorAPI/internal/job"
	"github.com/akolanti/MentorAPI/internal/mcpserver"
	"github.com/akolanti/MentorAPI/internal/rag"
	"github.com/akolanti/MentorAPI/internal/rag/cache"
	"github.com/akolanti/MentorAPI/internal/rag/embedding"
	"github.com/akolanti/MentorAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/MentorAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/MentorAPI/internal/rag/llm/gemini"
	"github.com/akolanti/MentorAPI/internal/rag/validator"
	"github.com/akolanti/MentorAPI/internal/rag/vectorstore/filestore"
	"github.com/akolanti/MentorAPI/internal/server"
	"github.com/akolanti/MentorAPI/internal/worker"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//vector store is local disk - if it won't open there is nothing to serve
	vectorStore, err := filestore.Open(config.StorageDir)
	if err != nil {
		logger.Error("Could not open vector store", "dir", config.StorageDir, "error", err)
		os.Exit(1)
	}

	embeddingService := buildEmbedder(serviceContext, logger)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	relevanceValidator := validator.New(llmProvider, config.RelevanceThreshold)
	semanticCache := cache.GetSemanticCache(serviceContext) //nil when qdrant is offline, caching just turns off

	ragService := rag.NewService(vectorStore, llmProvider, embeddingService, relevanceValidator, semanticCache)

	if mcpMode {
		if err := mcpserver.NewServer(ragService).Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
		MessageStore:      store.GetRedisMessageStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.MessageStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	}
	service := job.InitJobService(serviceConfig)

	handlers.InitJobHandler(service)
	handlers.InitRAGHandlers(ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildEmbedder(ctx context.Context, logger *logger_i.Logger) embedding.Embedder {
	switch config.EmbeddingProvider {
	case "google":
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	case "openai":
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIKey())
	default:
		logger.Error("Unknown embedding provider", "provider", config.EmbeddingProvider)
		return nil
	}
}
