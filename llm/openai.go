package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/maximecaron/deepresearch/schema"
)

// OpenAIClient implements Client against an OpenAI-compatible chat
// completion API. Structured completions use the strict json_schema
// response format with each contract's hand-authored schema document.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Client = (*OpenAIClient)(nil)

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient, *openai.ClientConfig)

// WithModel sets the model identifier for all completions.
func WithModel(model string) OpenAIOption {
	return func(c *OpenAIClient, _ *openai.ClientConfig) {
		c.model = model
	}
}

// WithBaseURL points the client at an alternative OpenAI-compatible
// endpoint.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(_ *OpenAIClient, cfg *openai.ClientConfig) {
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}
}

// NewOpenAIClient creates a new client. If apiKey is empty, it tries the
// OPENAI_API_KEY environment variable.
func NewOpenAIClient(apiKey string, opts ...OpenAIOption) (*OpenAIClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	c := &OpenAIClient{model: openai.GPT4o}
	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(c, &cfg)
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c, nil
}

// Complete performs a single free-text completion.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteStructured requests a completion constrained to the contract's
// JSON schema and decodes the response into out.
func (c *OpenAIClient) CompleteStructured(ctx context.Context, system, user string, out schema.Schema) error {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   out.SchemaName(),
				Schema: out.JSONSchema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return &CompletionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return &CompletionError{Err: errors.New("empty response")}
	}

	return DecodeStructured(resp.Choices[0].Message.Content, out)
}
