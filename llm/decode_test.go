package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maximecaron/deepresearch/schema"
)

func TestDecodeStructured_CleanJSON(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured(`{"action":"execute","reason":"plan is ready"}`, &action)
	require.NoError(t, err)
	assert.Equal(t, schema.ActionExecute, action.Action)
	assert.Equal(t, "plan is ready", action.Reason)
}

func TestDecodeStructured_RecoversFromProseWrap(t *testing.T) {
	t.Parallel()

	raw := "Sure, here is the decision:\n{\"action\":\"synthesize\",\"reason\":\"notes cover every subquestion\"}\nLet me know if you need anything else."

	var action schema.AgentAction
	err := DecodeStructured(raw, &action)
	require.NoError(t, err)
	assert.Equal(t, schema.ActionSynthesize, action.Action)
}

func TestDecodeStructured_RecoversFromJSONLiteralPrefix(t *testing.T) {
	t.Parallel()

	// The leading prose can itself begin with a valid JSON literal, which
	// makes the direct decode fail with a type error instead of a syntax
	// error. Recovery must still kick in.
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "boolean prefix",
			raw:  `true enough, here you go: {"action":"synthesize","reason":"notes are complete"}`,
		},
		{
			name: "number prefix",
			raw:  `3 options considered: {"action":"synthesize","reason":"notes are complete"}`,
		},
		{
			name: "string prefix",
			raw:  `"answer": {"action":"synthesize","reason":"notes are complete"}`,
		},
		{
			name: "null prefix",
			raw:  `null - see below: {"action":"synthesize","reason":"notes are complete"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var action schema.AgentAction
			err := DecodeStructured(tt.raw, &action)
			require.NoError(t, err)
			assert.Equal(t, schema.ActionSynthesize, action.Action)
		})
	}
}

func TestDecodeStructured_TrailingProse(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured(`{"action":"plan","reason":"more subquestions needed"} hope this helps!`, &action)
	require.NoError(t, err)
	assert.Equal(t, schema.ActionPlan, action.Action)
}

func TestDecodeStructured_NoBraces(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured("I cannot answer that.", &action)

	var merr *MalformedOutputError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "I cannot answer that.", merr.Raw)
}

func TestDecodeStructured_RecoveryStillInvalidJSON(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured(`prefix {"action": "execute", } suffix`, &action)

	var merr *MalformedOutputError
	require.ErrorAs(t, err, &merr)
}

func TestDecodeStructured_MissingRequiredField(t *testing.T) {
	t.Parallel()

	var req schema.ResearchRequest
	err := DecodeStructured(`{"constraints":{"audience":null,"depth":null,"region":null,"time_scope":null,"format":null}}`, &req)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ResearchRequest", verr.Schema)
	assert.NotEmpty(t, verr.Raw)
}

func TestDecodeStructured_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured(`{"action":"plan","reason":"x","confidence":0.9}`, &action)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Constraint, "confidence")
}

func TestDecodeStructured_WrongType(t *testing.T) {
	t.Parallel()

	var queries schema.SearchQueries
	err := DecodeStructured(`{"queries":"not a list"}`, &queries)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDecodeStructured_EnumViolation(t *testing.T) {
	t.Parallel()

	var action schema.AgentAction
	err := DecodeStructured(`{"action":"retreat","reason":"x"}`, &action)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Constraint, "retreat")
	assert.NotEmpty(t, verr.Raw)
}

func TestDecodeStructured_QueryCountBounds(t *testing.T) {
	t.Parallel()

	var queries schema.SearchQueries
	err := DecodeStructured(`{"queries":["one","two"]}`, &queries)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
}
