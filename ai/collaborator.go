// Package ai reaches the external assistant answering /chatgpt questions.
// The server treats it as an opaque ask/answer collaborator: failures are
// converted to errors for the asking session and never leak further.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"chatline/errors"
)

// Assistant is the OpenAI-backed collaborator.
type Assistant struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewAssistant(apiKey, model string, log *slog.Logger) *Assistant {
	return &Assistant{client: openai.NewClient(apiKey), model: model, log: log}
}

// Ask submits one question and blocks until the answer, a failure, or the
// context deadline. No retries; the caller owns the timeout.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.ErrEmptyAnswer
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.ErrEmptyAnswer
	}

	a.log.Debug("Assistant answered", "model", a.model, "tokens", resp.Usage.TotalTokens)
	return answer, nil
}
