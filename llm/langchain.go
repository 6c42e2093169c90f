package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/maximecaron/deepresearch/schema"
)

// LangchainClient adapts any langchaingo llms.Model to the Client
// interface, so locally hosted or non-OpenAI models can drive the agent.
// Structured completions use JSON mode; providers that wrap the payload in
// markdown fences are handled by fence stripping plus brace recovery.
type LangchainClient struct {
	model llms.Model
}

var _ Client = (*LangchainClient)(nil)

// NewLangchainClient wraps model as a Client.
func NewLangchainClient(model llms.Model) *LangchainClient {
	return &LangchainClient{model: model}
}

// Complete performs a single free-text completion.
func (c *LangchainClient) Complete(ctx context.Context, system, user string) (string, error) {
	return c.generate(ctx, system, user)
}

// CompleteStructured requests a JSON-mode completion and decodes it into
// out.
func (c *LangchainClient) CompleteStructured(ctx context.Context, system, user string, out schema.Schema) error {
	content, err := c.generate(ctx, system, user, llms.WithJSONMode())
	if err != nil {
		return err
	}
	return DecodeStructured(stripFences(content), out)
}

func (c *LangchainClient) generate(ctx context.Context, system, user string, opts ...llms.CallOption) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("empty response")}
	}
	return resp.Choices[0].Content, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
