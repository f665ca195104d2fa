package llm

import "context"

type Provider interface {
	Generate(ctx context.Context, query string, matches []string, messageHistory []string) (string, error)

	// JudgeRelevance asks the model to rate how relevant an excerpt is to
	// startup/business content on a 0-10 scale. Best-effort: callers fall
	// back to heuristics on error.
	JudgeRelevance(ctx context.Context, excerpt string) (float64, error)
}
