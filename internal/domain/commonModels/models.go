package commonModels

import "time"

// DocumentChunk is the unit of embedding and retrieval. Immutable once
// stored; (SourceFile, ChunkIndex) is unique across the store.
type DocumentChunk struct {
	Text       string    `json:"text"`
	SourceFile string    `json:"source_filename"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"embedding"`
}

// DocumentMeta is the per-document bookkeeping persisted next to the
// vector data. Fingerprint is the sha256 of the extracted text.
type DocumentMeta struct {
	Filename    string    `json:"filename"`
	ChunkCount  int       `json:"chunk_count"`
	Fingerprint string    `json:"fingerprint"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// SearchResult pairs a stored chunk with its cosine similarity score.
type SearchResult struct {
	Chunk DocumentChunk `json:"chunk"`
	Score float64       `json:"score"`
}

// StoreStats summarizes the current store contents.
type StoreStats struct {
	TotalChunks    int      `json:"total_chunks"`
	TotalDocuments int      `json:"total_documents"`
	Filenames      []string `json:"filenames"`
}

// RelevanceAssessment is the content validator's verdict. AIScore is nil
// when the LLM judge was skipped or its answer could not be parsed.
type RelevanceAssessment struct {
	KeywordScore  float64  `json:"keyword_score"`
	AIScore       *float64 `json:"ai_score,omitempty"`
	CombinedScore float64  `json:"combined_score"`
	Accepted      bool     `json:"accepted"`
	Reason        string   `json:"reason,omitempty"`
}

// IngestionResult reports a completed (or short-circuited) ingestion.
type IngestionResult struct {
	Filename         string `json:"filename"`
	ChunksAdded      int    `json:"chunks_added"`
	TextPreview      string `json:"text_preview"`
	Fingerprint      string `json:"fingerprint"`
	AlreadyProcessed bool   `json:"already_processed"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	TXT  DocType = "TXT"
	ERR  DocType = "ERROR"
)
