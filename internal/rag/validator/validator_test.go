package validator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/MentorAPI/internal/config"
)

type stubJudge struct {
	score float64
	err   error
	calls int
}

func (s *stubJudge) Generate(ctx context.Context, q string, m []string, h []string) (string, error) {
	return "", nil
}

func (s *stubJudge) JudgeRelevance(ctx context.Context, excerpt string) (float64, error) {
	s.calls++
	return s.score, s.err
}

const richText = "Our startup business plan projects revenue growth. The market strategy " +
	"targets customer acquisition and investor funding for the venture."

const poorText = "The quick brown fox jumps over the lazy dog while the rain " +
	"falls gently on the quiet village rooftops all through the night."

func TestKeywordScore(t *testing.T) {
	if got := KeywordScore(""); got != 0 {
		t.Errorf("empty text score = %f, want 0", got)
	}
	if got := KeywordScore(poorText); got != 0 {
		t.Errorf("off-topic score = %f, want 0", got)
	}
	if got := KeywordScore(richText); got < config.RelevanceThreshold {
		t.Errorf("keyword-dense score = %f, want >= %f", got, config.RelevanceThreshold)
	}
	if got := KeywordScore(strings.Repeat("startup ", 100)); got != 10 {
		t.Errorf("saturated score = %f, want capped at 10", got)
	}
}

func TestAssess_KeywordOnlyWithoutJudge(t *testing.T) {
	v := New(nil, config.RelevanceThreshold)
	ctx := context.Background()

	if a := v.Assess(ctx, richText); !a.Accepted {
		t.Errorf("keyword-dense text rejected: %+v", a)
	}
	if a := v.Assess(ctx, poorText); a.Accepted {
		t.Errorf("off-topic text accepted: %+v", a)
	}
}

func TestAssess_JudgeOnlyConsultedNearThreshold(t *testing.T) {
	ctx := context.Background()

	judge := &stubJudge{score: 9}
	v := New(judge, config.RelevanceThreshold)

	// far below threshold, the judge is never asked
	v.Assess(ctx, poorText)
	if judge.calls != 0 {
		t.Errorf("judge consulted %d times for a clear rejection, want 0", judge.calls)
	}

	// saturated keyword score is far above threshold too
	v.Assess(ctx, strings.Repeat("startup funding ", 100))
	if judge.calls != 0 {
		t.Errorf("judge consulted %d times for a clear acceptance, want 0", judge.calls)
	}
}

func TestAssess_JudgeSwingsBorderlineDocument(t *testing.T) {
	ctx := context.Background()

	// one keyword in 40 words: density 2.5 per 100 -> keyword score 5.0,
	// inside the judge band around the 4.0 threshold
	borderline := "startup " + strings.Repeat("word ", 39)

	up := &stubJudge{score: 9}
	v := New(up, config.RelevanceThreshold)
	a := v.Assess(ctx, borderline)
	if up.calls != 1 {
		t.Fatalf("judge consulted %d times, want 1", up.calls)
	}
	if a.AIScore == nil || *a.AIScore != 9 {
		t.Errorf("AIScore = %v, want 9", a.AIScore)
	}
	if !a.Accepted {
		t.Errorf("high judge score should accept: %+v", a)
	}

	down := &stubJudge{score: 0}
	v = New(down, config.RelevanceThreshold)
	a = v.Assess(ctx, borderline)
	if a.Accepted {
		t.Errorf("low judge score should reject: %+v", a)
	}
	// combined = 0.4*5.0 + 0.6*0 = 2.0
	if a.CombinedScore >= config.RelevanceThreshold {
		t.Errorf("combined score = %f, want below threshold", a.CombinedScore)
	}
}

func TestAssess_FallsBackWhenJudgeFails(t *testing.T) {
	ctx := context.Background()
	borderline := "startup " + strings.Repeat("word ", 39)

	judge := &stubJudge{err: errors.New("model offline")}
	v := New(judge, config.RelevanceThreshold)

	a := v.Assess(ctx, borderline)
	if judge.calls != 1 {
		t.Fatalf("judge consulted %d times, want 1", judge.calls)
	}
	if a.AIScore != nil {
		t.Error("failed judgement must not contribute an AI score")
	}
	// keyword score 5.0 stands alone and clears the 4.0 threshold
	if !a.Accepted {
		t.Errorf("keyword fallback should accept: %+v", a)
	}
}

func TestAssess_ConfigurableThreshold(t *testing.T) {
	ctx := context.Background()
	// keyword score 5.0
	borderline := "startup " + strings.Repeat("word ", 39)

	strict := New(nil, 6.0)
	if a := strict.Assess(ctx, borderline); a.Accepted {
		t.Errorf("strict threshold should reject: %+v", a)
	}

	lenient := New(nil, 3.5)
	if a := lenient.Assess(ctx, borderline); !a.Accepted {
		t.Errorf("lenient threshold should accept: %+v", a)
	}
}
