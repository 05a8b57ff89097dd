package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// Translator converts text into the target language in a single shot.
type Translator interface {
	Translate(ctx context.Context, text string, target Target) (string, error)
}

// OpenAITranslator implements Translator via a chat completion
// instructed to act as a translator.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

func NewOpenAITranslator(client *openai.Client, model string) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAITranslator{client: client, model: model}
}

func (t *OpenAITranslator) Translate(ctx context.Context, text string, target Target) (string, error) {

	if !target.Translate() {
		return "", fmt.Errorf("no target language selected")
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional translator.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following English text to %s:\n\n%s", target.Label(), text),
			},
		},
		// omitempty drops a literal 0, which would fall back to the
		// upstream default of 1; the smallest positive value keeps the
		// output deterministic-leaning.
		Temperature: 1e-8,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", errors.Join(shared.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", shared.ErrUpstream
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
