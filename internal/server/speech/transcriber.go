package speech

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// Transcriber converts a local audio file to text in a single shot.
// Retry policy, if any, belongs to the caller.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// OpenAITranscriber implements Transcriber using the audio
// transcriptions endpoint (Whisper).
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

func NewOpenAITranscriber(client *openai.Client, model string) *OpenAITranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAITranscriber{client: client, model: model}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, path string) (string, error) {

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", errors.Join(shared.ErrUpstream, err)
	}

	return strings.TrimSpace(resp.Text), nil
}
