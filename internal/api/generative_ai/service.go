package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/genai"
)

// CompletionClient is the contract for one-shot text completions. The
// queue serializes calls through it; nothing else touches the model.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

var _ CompletionClient = (*AIClient)(nil)

// AIClient wraps the Gemini API behind the CompletionClient contract.
type AIClient struct {
	client *genai.Client
	model  string
}

func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &AIClient{client: client, model: model}, nil
}

// Complete runs a single completion with a system instruction and one
// user message. Temperature 0: extraction should not be creative.
func (ai *AIClient) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       genai.Ptr[float32](0),
	}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return result.Text(), nil
}

// IsRateLimited reports whether err is a 429 from the completion
// backend. Only this class of failure is worth retrying; everything
// else fails the call immediately.
func IsRateLimited(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}
