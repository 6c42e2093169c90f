package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/maximecaron/deepresearch/schema"
)

// fakeModel returns canned content for every GenerateContent call.
type fakeModel struct {
	content string
	err     error

	lastMessages []llms.MessageContent
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.lastMessages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.content}},
	}, nil
}

func (m *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return m.content, m.err
}

func TestLangchainClient_Complete(t *testing.T) {
	t.Parallel()

	model := &fakeModel{content: "a summary"}
	client := NewLangchainClient(model)

	got, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "a summary", got)

	require.Len(t, model.lastMessages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.lastMessages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.lastMessages[1].Role)
}

func TestLangchainClient_CompleteStructured(t *testing.T) {
	t.Parallel()

	model := &fakeModel{content: `{"action":"execute","reason":"ready"}`}
	client := NewLangchainClient(model)

	var action schema.AgentAction
	err := client.CompleteStructured(context.Background(), "sys", "user", &action)
	require.NoError(t, err)
	assert.Equal(t, schema.ActionExecute, action.Action)
}

func TestLangchainClient_CompleteStructured_StripsFences(t *testing.T) {
	t.Parallel()

	model := &fakeModel{content: "```json\n{\"action\":\"plan\",\"reason\":\"need more subquestions\"}\n```"}
	client := NewLangchainClient(model)

	var action schema.AgentAction
	err := client.CompleteStructured(context.Background(), "sys", "user", &action)
	require.NoError(t, err)
	assert.Equal(t, schema.ActionPlan, action.Action)
}

func TestLangchainClient_TransportError(t *testing.T) {
	t.Parallel()

	model := &fakeModel{err: errors.New("connection refused")}
	client := NewLangchainClient(model)

	_, err := client.Complete(context.Background(), "sys", "user")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
}

func TestLangchainClient_MalformedOutput(t *testing.T) {
	t.Parallel()

	model := &fakeModel{content: "no json here"}
	client := NewLangchainClient(model)

	var action schema.AgentAction
	err := client.CompleteStructured(context.Background(), "sys", "user", &action)

	var merr *MalformedOutputError
	require.ErrorAs(t, err, &merr)
}
