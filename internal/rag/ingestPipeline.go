package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/domain/jobModel"
	"github.com/akolanti/MentorAPI/internal/metrics"
	"github.com/akolanti/MentorAPI/internal/rag/chunker"
	"github.com/akolanti/MentorAPI/internal/rag/extract"
)

// IngestDocument adapts a queued ingestion job onto the Ingest pipeline:
// it reads the uploaded temp file, runs the pipeline and translates the
// outcome into job state the status endpoint can report.
func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)
	job.CurrentStep = jobModel.IngestProcessing

	data, err := os.ReadFile(job.JobPayload.IngestURL)
	if err != nil {
		log.Error("Could not read uploaded file", "path", job.JobPayload.IngestURL, "error", err)
		return s.jobError(job, err, "INGESTION_FAILURE", false)
	}

	result, err := s.Ingest(ctx, data, job.JobPayload.IngestFileName)

	if removeErr := os.Remove(job.JobPayload.IngestURL); removeErr != nil {
		log.Error("Error removing temp file", "error", removeErr)
	}

	if err != nil {
		log.Error("Ingestion failed", "filename", job.JobPayload.IngestFileName, "error", err)
		return s.ingestJobError(job, err)
	}

	job.JobPayload.Ingest = &result
	job.CurrentStep = jobModel.Complete
	return job
}

// Ingest is the per-upload state machine: Received -> Validated ->
// Chunked -> Embedded -> Stored, with Rejected and Failed terminals. Any
// failure before the store insert leaves the store untouched; a failed
// insert rolls back (the store's contract), so memory and disk never
// diverge.
func (s *service) Ingest(ctx context.Context, data []byte, filename string) (commonModels.IngestionResult, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename)
	var none commonModels.IngestionResult

	text, err := extract.Text(data, filename)
	if err != nil {
		return none, err
	}

	fingerprint := Fingerprint(text)
	if s.store.HasDocument(ctx, fingerprint) {
		//idempotent re-upload: same content, no duplicate chunks, no error
		log.Info("Document already processed, skipping", "fingerprint", fingerprint)
		return commonModels.IngestionResult{
			Filename:         filename,
			TextPreview:      preview(text),
			Fingerprint:      fingerprint,
			AlreadyProcessed: true,
		}, nil
	}

	assessment := s.validator.Assess(ctx, text)
	if !assessment.Accepted {
		log.Info("Document rejected", "reason", assessment.Reason)
		return none, commonModels.RejectedDocumentError(assessment)
	}

	spans := chunker.Split(text, config.ChunkSize, config.ChunkOverlap)
	if len(spans) == 0 {
		return none, commonModels.ExtractionError("no chunks could be produced from "+filename, nil)
	}
	log.Debug("Document chunked", "chunks", len(spans))

	embedStart := time.Now()
	vectors, err := s.embedder.BatchEmbedding(ctx, spans)
	metrics.CaptureExecutionMetrics("embedding_batch", time.Since(embedStart))
	if err != nil {
		return none, err
	}

	chunks := make([]commonModels.DocumentChunk, len(spans))
	for i, span := range spans {
		chunks[i] = commonModels.DocumentChunk{
			Text:       span,
			SourceFile: filename,
			ChunkIndex: i,
			Embedding:  vectors[i],
		}
	}
	meta := commonModels.DocumentMeta{
		Filename:    filename,
		ChunkCount:  len(chunks),
		Fingerprint: fingerprint,
		IngestedAt:  time.Now(),
	}

	if err := s.store.Insert(ctx, chunks, meta); err != nil {
		return none, err
	}

	log.Info("Document ingested", "chunks", len(chunks))
	return commonModels.IngestionResult{
		Filename:    filename,
		ChunksAdded: len(chunks),
		TextPreview: preview(text),
		Fingerprint: fingerprint,
	}, nil
}

// Fingerprint is the content-addressed identity of a document: the
// sha256 of its extracted text. Re-uploading the same bytes under a new
// name is still the same document.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func preview(text string) string {
	if len(text) <= config.IngestPreviewLength {
		return text
	}
	return text[:config.IngestPreviewLength] + "..."
}

// ingestJobError maps the error taxonomy onto job error codes: rejection
// and extraction are the user's problem (4xx, no retry), embedding and
// persistence are ours (5xx, retryable).
func (s *service) ingestJobError(job jobModel.Job, err error) jobModel.Job {
	code := http.StatusInternalServerError
	switch commonModels.KindOf(err) {
	case commonModels.KindExtraction, commonModels.KindRejected, commonModels.KindQuery:
		code = http.StatusUnprocessableEntity
	}

	job.Error = jobModel.JobError{
		Code:       code,
		Message:    err.Error(),
		Retry:      commonModels.Retryable(err),
		Assessment: commonModels.AssessmentOf(err),
	}
	job.Status = jobModel.JobStatusError
	return job
}
