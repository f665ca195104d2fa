package commonModels

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindExtraction  ErrorKind = "EXTRACTION"
	KindRejected    ErrorKind = "REJECTED_DOCUMENT"
	KindEmbedding   ErrorKind = "EMBEDDING_SERVICE"
	KindPersistence ErrorKind = "PERSISTENCE"
	KindQuery       ErrorKind = "QUERY"
)

// RAGError carries enough structure for the HTTP layer to render a
// specific message instead of a generic failure. Extraction and rejection
// errors are user-fixable; embedding and persistence errors may be
// retried by the caller - the core never retries internally.
type RAGError struct {
	Kind       ErrorKind
	Reason     string
	Assessment *RelevanceAssessment
	Err        error
}

func (e *RAGError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *RAGError) Unwrap() error { return e.Err }

func ExtractionError(reason string, err error) *RAGError {
	return &RAGError{Kind: KindExtraction, Reason: reason, Err: err}
}

func RejectedDocumentError(assessment RelevanceAssessment) *RAGError {
	return &RAGError{
		Kind:       KindRejected,
		Reason:     fmt.Sprintf("document scored %.1f/10, below the acceptance threshold", assessment.CombinedScore),
		Assessment: &assessment,
	}
}

func EmbeddingServiceError(reason string, err error) *RAGError {
	return &RAGError{Kind: KindEmbedding, Reason: reason, Err: err}
}

func PersistenceError(reason string, err error) *RAGError {
	return &RAGError{Kind: KindPersistence, Reason: reason, Err: err}
}

func QueryError(reason string) *RAGError {
	return &RAGError{Kind: KindQuery, Reason: reason}
}

// KindOf extracts the error kind, or "" for plain errors.
func KindOf(err error) ErrorKind {
	var re *RAGError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// AssessmentOf returns the attached relevance assessment, if any.
func AssessmentOf(err error) *RelevanceAssessment {
	var re *RAGError
	if errors.As(err, &re) {
		return re.Assessment
	}
	return nil
}

// Retryable reports whether the caller may retry with backoff.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindEmbedding, KindPersistence:
		return true
	}
	return false
}
