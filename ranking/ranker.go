package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/coreybb/daybrief/models"
)

// ErrAPIKeyMissing reports that no completion-API credential is configured.
// Callers must not attempt a ranking request without one.
var ErrAPIKeyMissing = errors.New("OpenAI API key is not configured")

const (
	completionModel = openai.GPT3Dot5TurboInstruct
	maxOutputTokens = 256
	temperature     = 0.7
	blockDelimiter  = "***"
)

// Ranker asks the OpenAI completions endpoint to pick the top articles from
// a candidate list.
type Ranker struct {
	apiKey string
	client *openai.Client
}

func NewRanker(apiKey string) *Ranker {
	r := &Ranker{apiKey: apiKey}
	if apiKey != "" {
		r.client = openai.NewClient(apiKey)
	}
	return r
}

// Rank sends a single non-streaming completion request and returns the
// model's answer: expected to be a short comma-separated list of article
// IDs. The answer is passed through verbatim; IDs are not validated against
// the candidate list.
func (r *Ranker) Rank(ctx context.Context, articles []models.Article, guidance string) (string, error) {
	if r.client == nil {
		return "", ErrAPIKeyMissing
	}

	resp, err := r.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       completionModel,
		Prompt:      BuildPrompt(articles, guidance),
		MaxTokens:   maxOutputTokens,
		N:           1,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Text), nil
}

// BuildPrompt assembles the ranking instruction, embedding the caller's
// guidance verbatim, followed by one block per article carrying its ID and
// content. Each block is delimited by the fixed marker before and after.
func BuildPrompt(articles []models.Article, guidance string) string {
	var b strings.Builder

	b.WriteString("You are given a list of articles. Each article is delimited by ")
	b.WriteString(blockDelimiter)
	b.WriteString(" and starts with its id. ")
	b.WriteString(guidance)
	b.WriteString(" Respond with a comma-separated list of the chosen article ids and nothing else.\n")

	for _, a := range articles {
		b.WriteString(blockDelimiter)
		b.WriteString("\n")
		b.WriteString(a.ID)
		b.WriteString("\n")
		b.WriteString(a.Content)
		b.WriteString("\n")
		b.WriteString(blockDelimiter)
		b.WriteString("\n")
	}

	return b.String()
}
