package schema

import "encoding/json"

// JSON Schema documents for the structured contracts, in the strict-mode
// dialect: every property listed in required, additionalProperties false,
// optionality expressed as a null type alternative.

const researchRequestSchema = `{
	"type": "object",
	"properties": {
		"goal": {"type": "string"},
		"constraints": {
			"type": "object",
			"properties": {
				"audience": {"type": ["string", "null"]},
				"depth": {"type": ["string", "null"]},
				"region": {"type": ["string", "null"]},
				"time_scope": {"type": ["string", "null"]},
				"format": {"type": ["string", "null"]}
			},
			"required": ["audience", "depth", "region", "time_scope", "format"],
			"additionalProperties": false
		}
	},
	"required": ["goal", "constraints"],
	"additionalProperties": false
}`

const researchPlanSchema = `{
	"type": "object",
	"properties": {
		"overall_objective": {"type": "string"},
		"subquestions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"description": {"type": "string"},
					"priority": {"type": "integer"},
					"dependencies": {"type": "array", "items": {"type": "string"}},
					"suggested_tools": {"type": "array", "items": {"type": "string"}},
					"notes": {"type": "string"}
				},
				"required": ["id", "description", "priority", "dependencies", "suggested_tools", "notes"],
				"additionalProperties": false
			}
		},
		"global_strategy": {"type": "string"}
	},
	"required": ["overall_objective", "subquestions", "global_strategy"],
	"additionalProperties": false
}`

const agentActionSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["plan", "execute", "reflect", "synthesize"]},
		"reason": {"type": "string"}
	},
	"required": ["action", "reason"],
	"additionalProperties": false
}`

const searchQueriesSchema = `{
	"type": "object",
	"properties": {
		"queries": {
			"type": "array",
			"minItems": 3,
			"maxItems": 5,
			"items": {"type": "string"}
		}
	},
	"required": ["queries"],
	"additionalProperties": false
}`

func (r *ResearchRequest) JSONSchema() json.RawMessage {
	return json.RawMessage(researchRequestSchema)
}

func (p *ResearchPlan) JSONSchema() json.RawMessage {
	return json.RawMessage(researchPlanSchema)
}

func (a *AgentAction) JSONSchema() json.RawMessage {
	return json.RawMessage(agentActionSchema)
}

func (q *SearchQueries) JSONSchema() json.RawMessage {
	return json.RawMessage(searchQueriesSchema)
}
