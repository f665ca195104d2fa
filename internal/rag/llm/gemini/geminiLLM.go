package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/rag/llm"
	"github.com/akolanti/MentorAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

var ratingPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}

}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string, messageHistory []string) (string, error) {
	logger.With("traceId", ctx.Value("traceId"))
	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.ModelContext},
		},
	}

	var sb strings.Builder
	if len(messageHistory) > 0 {
		sb.WriteString("Recent conversation (Question is what the user asked, Answer is what you replied):\n")
		sb.WriteString(strings.Join(messageHistory, "\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Context from uploaded business documents:\n")
	sb.WriteString(strings.Join(matches, "\n"))

	userPrompt := fmt.Sprintf("%s\n\nUser Question: %s", sb.String(), userQuery)

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		logger.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func (c *llmClient) JudgeRelevance(ctx context.Context, excerpt string) (float64, error) {
	prompt := fmt.Sprintf(
		"Rate from 0 to 10 how relevant the following document excerpt is to startups, "+
			"entrepreneurship or business operations. 0-3 means not business related, 4-6 somewhat "+
			"related, 7-10 highly relevant. Reply with just the number.\n\nExcerpt:\n%s", excerpt)

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		logger.Error("Relevance judgement failed", "error", err)
		return 0, err
	}
	return ParseRating(result.Text())
}

// ParseRating pulls the first number out of a model reply and clamps it
// to the 0-10 scale. Models occasionally reply "Rating: 7/10" instead of
// a bare number.
func ParseRating(reply string) (float64, error) {
	match := ratingPattern.FindString(reply)
	if match == "" {
		return 0, errors.New("no numeric rating in model reply: " + reply)
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, err
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
