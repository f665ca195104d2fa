package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/domain/jobModel"
	"github.com/akolanti/MentorAPI/internal/rag"
	"github.com/akolanti/MentorAPI/internal/rag/validator"
)

// keyword-dense so the nil-judge validator accepts it
const businessText = "Our startup business plan projects revenue growth. The market strategy " +
	"targets customer acquisition and investor funding. The founder team tracks " +
	"burn rate, runway and unit economics for the venture."

const offTopicText = "The quick brown fox jumps over the lazy dog. " +
	"It rained all afternoon and the river rose slowly under the old stone bridge."

func newTestService(store *MockStore, em *MockEmbedder, l *MockLLM) rag.Service {
	return rag.NewService(store, l, em, validator.New(nil, config.RelevanceThreshold), nil)
}

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, s *MockStore, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedAnswer string
		expectError    bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, s *MockStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStatus: jobModel.JobStatusQueued,
			expectedAnswer: "final answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, s *MockStore, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, s *MockStore, l *MockLLM) {
				s.OnSearch = func(ctx context.Context, v []float32, topK int, minScore float64) ([]commonModels.SearchResult, error) {
					return nil, commonModels.QueryError("store unavailable")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, s *MockStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mStore := &MockStore{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mStore, mLLM)

			s := newTestService(mStore, mEmbed, mLLM)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:     "test-job",
				Status: jobModel.JobStatusQueued,
				JobPayload: jobModel.JobPayload{
					Question: "test question",
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if tt.expectError && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}
		})
	}
}

func TestProcessRequest_SearchResultsReachLLM(t *testing.T) {
	mStore := &MockStore{
		OnSearch: func(ctx context.Context, v []float32, topK int, minScore float64) ([]commonModels.SearchResult, error) {
			return []commonModels.SearchResult{
				{Chunk: commonModels.DocumentChunk{Text: "funding round details", SourceFile: "plan.pdf"}, Score: 0.8},
			}, nil
		},
	}

	var receivedMatches []string
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, matches []string, h []string) (string, error) {
			receivedMatches = matches
			return "ok", nil
		},
	}

	s := newTestService(mStore, &MockEmbedder{}, mLLM)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace")
	job := jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{Question: "what is the funding plan"}}

	result := s.ProcessRequest(ctx, job, nil)

	if len(receivedMatches) != 1 {
		t.Fatalf("LLM received %d matches, want 1", len(receivedMatches))
	}
	if len(result.JobPayload.Sources) != 1 || result.JobPayload.Sources[0] != "plan.pdf" {
		t.Errorf("Sources got %v, want [plan.pdf]", result.JobPayload.Sources)
	}
}

func TestIngest_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		filename     string
		setupMocks   func(e *MockEmbedder, s *MockStore)
		expectedKind commonModels.ErrorKind
		checkResult  func(t *testing.T, res commonModels.IngestionResult, s *MockStore)
	}{
		{
			name:       "Success",
			text:       businessText,
			filename:   "plan.txt",
			setupMocks: func(e *MockEmbedder, s *MockStore) {},
			checkResult: func(t *testing.T, res commonModels.IngestionResult, s *MockStore) {
				if res.ChunksAdded == 0 {
					t.Error("expected chunks to be added")
				}
				if len(s.Inserted) != res.ChunksAdded {
					t.Errorf("store holds %d chunks, result reports %d", len(s.Inserted), res.ChunksAdded)
				}
				if res.Fingerprint == "" {
					t.Error("expected a fingerprint")
				}
			},
		},
		{
			name:         "Rejected_OffTopic",
			text:         offTopicText,
			filename:     "recipe.txt",
			setupMocks:   func(e *MockEmbedder, s *MockStore) {},
			expectedKind: commonModels.KindRejected,
		},
		{
			name:         "Unsupported_FileType",
			text:         businessText,
			filename:     "plan.xyz",
			setupMocks:   func(e *MockEmbedder, s *MockStore) {},
			expectedKind: commonModels.KindExtraction,
		},
		{
			name:     "Duplicate_Fingerprint_Is_Idempotent",
			text:     businessText,
			filename: "plan-again.txt",
			setupMocks: func(e *MockEmbedder, s *MockStore) {
				s.OnHasDocument = func(ctx context.Context, fp string) bool { return true }
			},
			checkResult: func(t *testing.T, res commonModels.IngestionResult, s *MockStore) {
				if !res.AlreadyProcessed {
					t.Error("expected AlreadyProcessed")
				}
				if res.ChunksAdded != 0 {
					t.Errorf("ChunksAdded got %d, want 0", res.ChunksAdded)
				}
				if len(s.Inserted) != 0 {
					t.Error("duplicate must not insert chunks")
				}
			},
		},
		{
			name:     "Embedding_Failure_Leaves_Store_Untouched",
			text:     businessText,
			filename: "plan.txt",
			setupMocks: func(e *MockEmbedder, s *MockStore) {
				e.OnBatchEmbedding = func(ctx context.Context, texts []string) ([][]float32, error) {
					return nil, commonModels.EmbeddingServiceError("quota exceeded", nil)
				}
			},
			expectedKind: commonModels.KindEmbedding,
		},
		{
			name:     "Persistence_Failure",
			text:     businessText,
			filename: "plan.txt",
			setupMocks: func(e *MockEmbedder, s *MockStore) {
				s.OnInsert = func(ctx context.Context, chunks []commonModels.DocumentChunk, meta commonModels.DocumentMeta) error {
					return commonModels.PersistenceError("disk full", nil)
				}
			},
			expectedKind: commonModels.KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mStore := &MockStore{}
			tt.setupMocks(mEmbed, mStore)

			s := newTestService(mStore, mEmbed, &MockLLM{})
			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")

			res, err := s.Ingest(ctx, []byte(tt.text), tt.filename)

			if tt.expectedKind != "" {
				if err == nil {
					t.Fatal("expected an error")
				}
				if kind := commonModels.KindOf(err); kind != tt.expectedKind {
					t.Errorf("error kind got %s, want %s", kind, tt.expectedKind)
				}
				if len(mStore.Inserted) != 0 {
					t.Error("failed ingest must not leave chunks behind")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkResult != nil {
				tt.checkResult(t, res, mStore)
			}
		})
	}
}

func TestIngestDocument_JobAdaptation(t *testing.T) {
	dir := t.TempDir()

	writeUpload := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(dir, "upload.txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("Success_Sets_Result_And_Removes_Temp_File", func(t *testing.T) {
		path := writeUpload(t, businessText)
		s := newTestService(&MockStore{}, &MockEmbedder{}, &MockLLM{})

		ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "t1")
		job := jobModel.Job{
			Id:      "ingest-job-1",
			JobType: jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{
				IngestFileName: "pitch.txt",
				IngestURL:      path,
			},
		}

		result := s.IngestDocument(ctx, job)

		if result.Status == jobModel.JobStatusError {
			t.Fatalf("unexpected job error: %+v", result.Error)
		}
		if result.CurrentStep != jobModel.Complete {
			t.Errorf("CurrentStep got %v, want %v", result.CurrentStep, jobModel.Complete)
		}
		if result.JobPayload.Ingest == nil || result.JobPayload.Ingest.ChunksAdded == 0 {
			t.Error("expected a populated ingest result")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("temp file should be removed after ingestion")
		}
	})

	t.Run("Rejection_Is_Not_Retryable", func(t *testing.T) {
		path := writeUpload(t, offTopicText)
		s := newTestService(&MockStore{}, &MockEmbedder{}, &MockLLM{})

		ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "t2")
		job := jobModel.Job{
			Id:      "ingest-job-2",
			JobType: jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{
				IngestFileName: "recipe.txt",
				IngestURL:      path,
			},
		}

		result := s.IngestDocument(ctx, job)

		if result.Status != jobModel.JobStatusError {
			t.Fatal("expected job error status")
		}
		if result.Error.Code != http.StatusUnprocessableEntity {
			t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusUnprocessableEntity)
		}
		if result.Error.Retry {
			t.Error("rejection must not be retryable")
		}
		if result.Error.Assessment == nil {
			t.Error("rejection should carry the assessment")
		}
	})

	t.Run("Embedding_Failure_Is_Retryable", func(t *testing.T) {
		path := writeUpload(t, businessText)
		mEmbed := &MockEmbedder{
			OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
				return nil, commonModels.EmbeddingServiceError("quota exceeded", nil)
			},
		}
		s := newTestService(&MockStore{}, mEmbed, &MockLLM{})

		ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "t3")
		job := jobModel.Job{
			Id:      "ingest-job-3",
			JobType: jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{
				IngestFileName: "pitch.txt",
				IngestURL:      path,
			},
		}

		result := s.IngestDocument(ctx, job)

		if result.Status != jobModel.JobStatusError {
			t.Fatal("expected job error status")
		}
		if result.Error.Code != http.StatusInternalServerError {
			t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
		}
		if !result.Error.Retry {
			t.Error("embedding failure should be retryable")
		}
	})
}

func TestQuery_Validation(t *testing.T) {
	s := newTestService(&MockStore{}, &MockEmbedder{}, &MockLLM{})
	ctx := context.Background()

	if _, err := s.Query(ctx, "   ", 5, 0); commonModels.KindOf(err) != commonModels.KindQuery {
		t.Errorf("empty query: kind got %s, want %s", commonModels.KindOf(err), commonModels.KindQuery)
	}
	if _, err := s.Query(ctx, "valid", 0, 0); commonModels.KindOf(err) != commonModels.KindQuery {
		t.Errorf("zero topK: kind got %s, want %s", commonModels.KindOf(err), commonModels.KindQuery)
	}

	results, err := s.Query(ctx, "funding", 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results got %d, want 1", len(results))
	}
}
