package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/MentorAPI/internal/adapter"
	"github.com/akolanti/MentorAPI/internal/api"
	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/rag"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

// synchronous retrieval endpoints - these hit the vector store directly
// instead of going through the job queue, since a search is fast enough
// to answer inline

var (
	_ragService rag.Service
	logQH       *logger_i.Logger
)

func InitRAGHandlers(ragService rag.Service) {
	_ragService = ragService
	logQH = logger_i.NewLogger("RAGHandler")
}

// QueryHandler godoc
// @Summary      Search the document store
// @Description  Embeds the query text and returns the best-matching chunks with their similarity scores.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Query text with optional top_k and min_score"
// @Success      200      {object}  api.QueryResponse  "Ranked matches"
// @Failure      400      {object}  api.JobResponse    "Invalid request"
// @Failure      502      {object}  api.JobResponse    "Embedding service unavailable"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logQH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logQH.Error("Couldn't close the Query handler reader :", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	if requestData.TopK == 0 {
		requestData.TopK = config.DefaultTopK
	}

	results, err := _ragService.Query(r.Context(), requestData.Query, requestData.TopK, requestData.MinScore)
	if err != nil {
		writeRAGError(w, requestData.Query, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(requestData.Query, results))
}

// StatsHandler godoc
// @Summary      Document store statistics
// @Description  Returns the number of stored chunks and documents along with the known filenames.
// @Tags         Retrieval
// @Produce      json
// @Success      200  {object}  api.StatsResponse
// @Router       /stats [get]
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logQH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatsResponse(_ragService.Stats(r.Context())))
}

// ClearHandler godoc
// @Summary      Delete all ingested documents
// @Description  Removes every chunk and document record from the store, in memory and on disk.
// @Tags         Retrieval
// @Produce      json
// @Success      200  {object}  api.StatsResponse  "Post-clear statistics, all zero"
// @Failure      500  {object}  api.JobResponse    "Persistence failure, store unchanged"
// @Router       /documents [delete]
func ClearHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logQH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := _ragService.Clear(r.Context()); err != nil {
		logQH.Error("Clear failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not clear document store")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatsResponse(_ragService.Stats(r.Context())))
}

func writeRAGError(w http.ResponseWriter, id string, err error) {
	var re *commonModels.RAGError
	if !errors.As(err, &re) {
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Internal Server Error")
		return
	}

	switch re.Kind {
	case commonModels.KindQuery:
		WriteErrorResponse(w, http.StatusBadRequest, id, re.Reason)
	case commonModels.KindEmbedding:
		WriteErrorResponse(w, http.StatusBadGateway, id, re.Reason)
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, id, re.Reason)
	}
}
