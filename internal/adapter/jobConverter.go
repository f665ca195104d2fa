package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/MentorAPI/internal/api"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:       job.Error.Code,
			Message:    job.Error.Message,
			Retry:      job.Error.Retry,
			Assessment: ToAPIAssessment(job.Error.Assessment),
		}
	}

	result := api.Result{
		Status:              string(job.Status),
		RAGExternalResponse: ToRAGExternalStatus(job.JobPayload),
		IngestResult:        ToAPIIngestResult(job.JobPayload.Ingest),
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToRAGExternalStatus(ragData jobModel.JobPayload) *api.RAGResponse {
	if ragData.Answer == "" && len(ragData.Sources) == 0 {
		return nil
	}

	return &api.RAGResponse{
		Question: ragData.Question,
		Answer:   ragData.Answer,
		Sources:  ragData.Sources,
	}
}

func ToAPIIngestResult(res *commonModels.IngestionResult) *api.IngestResult {
	if res == nil {
		return nil
	}
	return &api.IngestResult{
		Filename:         res.Filename,
		ChunksAdded:      res.ChunksAdded,
		TextPreview:      res.TextPreview,
		Fingerprint:      res.Fingerprint,
		AlreadyProcessed: res.AlreadyProcessed,
	}
}

func ToAPIAssessment(a *commonModels.RelevanceAssessment) *api.Assessment {
	if a == nil {
		return nil
	}
	return &api.Assessment{
		KeywordScore:  a.KeywordScore,
		AIScore:       a.AIScore,
		CombinedScore: a.CombinedScore,
		Reason:        a.Reason,
	}
}

func ToQueryResponse(query string, results []commonModels.SearchResult) api.QueryResponse {
	matches := make([]api.QueryMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, api.QueryMatch{
			Text:       r.Chunk.Text,
			SourceFile: r.Chunk.SourceFile,
			ChunkIndex: r.Chunk.ChunkIndex,
			Score:      r.Score,
		})
	}
	return api.QueryResponse{Query: query, Matches: matches}
}

func ToStatsResponse(stats commonModels.StoreStats) api.StatsResponse {
	return api.StatsResponse{
		TotalChunks:    stats.TotalChunks,
		TotalDocuments: stats.TotalDocuments,
		Filenames:      stats.Filenames,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:              string(api.JobStatusError),
			RAGExternalResponse: ToRAGExternalStatus(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
