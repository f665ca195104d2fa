package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code       int         `json:"code" example:"400"`
	Message    string      `json:"message" example:"Job not found"`
	Retry      bool        `json:"can_retry" example:"false"`
	Assessment *Assessment `json:"assessment,omitempty"`
}

// Assessment explains a document rejection to the uploader.
type Assessment struct {
	KeywordScore  float64  `json:"keyword_score" example:"1.2"`
	AIScore       *float64 `json:"ai_score,omitempty" example:"3"`
	CombinedScore float64  `json:"combined_score" example:"2.3"`
	Reason        string   `json:"reason"`
}

type RAGResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

type Result struct {
	Status              string        `json:"status"`
	RAGExternalResponse *RAGResponse  `json:"rag_response,omitempty"`
	IngestResult        *IngestResult `json:"ingest_result,omitempty"`
}

type IngestResult struct {
	Filename         string `json:"filename"`
	ChunksAdded      int    `json:"chunks_added"`
	TextPreview      string `json:"text_preview,omitempty"`
	Fingerprint      string `json:"fingerprint"`
	AlreadyProcessed bool   `json:"already_processed"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required" `
	ChatID  string `json:"chatID,omitempty" `
}
type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}

type QueryRequest struct {
	Query    string  `json:"query" validate:"required"`
	TopK     int     `json:"top_k,omitempty" example:"5"`
	MinScore float64 `json:"min_score,omitempty" example:"0.25"`
}

type QueryMatch struct {
	Text       string  `json:"text"`
	SourceFile string  `json:"source_file"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score" example:"0.83"`
}

type QueryResponse struct {
	Query   string       `json:"query"`
	Matches []QueryMatch `json:"matches"`
}

type StatsResponse struct {
	TotalChunks    int      `json:"total_chunks"`
	TotalDocuments int      `json:"total_documents"`
	Filenames      []string `json:"filenames"`
}
