package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
	"github.com/akolanti/MentorAPI/internal/rag/llm"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
)

// startupVocabulary is the domain term list the keyword heuristic counts.
// Multi-word terms are matched as phrases.
var startupVocabulary = []string{
	"startup", "business", "company", "entrepreneur", "venture", "funding",
	"investment", "revenue", "profit", "market", "customer", "product",
	"service", "strategy", "business plan", "pitch", "investor", "valuation",
	"growth", "scale", "competition", "team", "founder", "ceo", "cto",
	"board", "equity", "shares", "financial", "marketing", "sales",
	"operations", "vision", "mission", "metrics", "kpi", "roi", "churn",
	"acquisition", "retention", "industry", "sector", "management",
	"lean startup", "mvp", "minimum viable product", "product market fit",
	"pivot", "hypothesis", "validation", "user research", "customer development",
	"roadmap", "go to market", "launch", "market penetration", "user acquisition",
	"growth hacking", "network effects", "marketplace", "partnership",
	"unit economics", "burn rate", "runway", "cash flow", "profitability",
	"monetization", "pricing", "business model", "value proposition",
	"competitive advantage", "market share", "total addressable market",
	"forecast", "projection", "budget",
}

// Validator gates documents before they reach the chunk/embed/store
// pipeline, so off-domain uploads are rejected cheaply. The LLM judge is
// best effort and only consulted when the keyword heuristic lands close
// to the threshold.
type Validator struct {
	judge     llm.Provider //nil disables the AI score
	threshold float64
	logger    *logger_i.Logger
}

func New(judge llm.Provider, threshold float64) *Validator {
	return &Validator{
		judge:     judge,
		threshold: threshold,
		logger:    logger_i.NewLogger("ContentValidator"),
	}
}

func (v *Validator) Assess(ctx context.Context, text string) commonModels.RelevanceAssessment {
	keywordScore := KeywordScore(text)

	assessment := commonModels.RelevanceAssessment{
		KeywordScore:  keywordScore,
		CombinedScore: keywordScore,
	}

	if v.judge != nil && inconclusive(keywordScore, v.threshold) {
		aiScore, err := v.judge.JudgeRelevance(ctx, excerpt(text, config.ValidationExcerpt))
		if err != nil {
			//fall back to the keyword score alone - a flaky judge must not
			//fail the whole assessment
			v.logger.Warn("AI relevance judgement unavailable", "error", err)
		} else {
			assessment.AIScore = &aiScore
			assessment.CombinedScore = config.KeywordScoreWeight*keywordScore + config.AIScoreWeight*aiScore
		}
	}

	assessment.Accepted = assessment.CombinedScore >= v.threshold
	assessment.Reason = fmt.Sprintf("keyword score %.1f, combined score %.1f (threshold %.1f)",
		assessment.KeywordScore, assessment.CombinedScore, v.threshold)
	return assessment
}

// KeywordScore counts vocabulary occurrences and normalizes them against
// the document length onto a 0-10 scale: score = min(10, 2 * matches per
// 100 words).
func KeywordScore(text string) float64 {
	lower := strings.ToLower(text)
	totalWords := len(strings.Fields(lower))
	if totalWords == 0 {
		return 0
	}

	matches := 0
	for _, term := range startupVocabulary {
		matches += strings.Count(lower, term)
	}

	density := float64(matches) / float64(totalWords) * 100
	score := density * 2
	if score > 10 {
		score = 10
	}
	return score
}

// inconclusive reports whether the keyword score is close enough to the
// threshold that the AI judge is worth its cost.
func inconclusive(keywordScore, threshold float64) bool {
	diff := keywordScore - threshold
	if diff < 0 {
		diff = -diff
	}
	return diff <= config.AIJudgeBand
}

func excerpt(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
