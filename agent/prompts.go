package agent

import (
	"encoding/json"
	"fmt"

	"github.com/maximecaron/deepresearch/schema"
	"github.com/maximecaron/deepresearch/search"
)

const (
	clarifySystemPrompt = "You are a research planner. Given a raw user question, " +
		"normalize it into a research goal and explicit constraints."

	planSystemPrompt = "You are a senior research planner. Break a research goal into subquestions."

	decideSystemPrompt = "You are a meta-controller for a research agent using a " +
		"Thought-Action-Observation loop.\n" +
		"Pick exactly one next action from: 'plan', 'execute', 'reflect', 'synthesize'."

	queriesSystemPrompt = "You are a search query generator helping a research agent. " +
		"Generate 3-5 focused web search queries for the subquestion."

	summarySystemPrompt = "You are a research summarizer. Given search results, " +
		"write a concise answer to the subquestion, with bullet points and source notes."

	synthesizeSystemPrompt = "You are a research writer. Write a clear, structured report " +
		"based on notes and reflection."
)

func clarifyUserPrompt(userQuery string) string {
	return fmt.Sprintf("User query:\n%s\n", userQuery)
}

func planUserPrompt(goal string, constraints schema.ResearchConstraints) string {
	return fmt.Sprintf(`Goal:
%s

Constraints (may be null):
%s

Return a JSON object.
`, goal, jsonString(constraints))
}

func decideUserPrompt(in decideInput) string {
	lastAction := "(none yet)"
	if in.LastAction != "" {
		lastAction = string(in.LastAction)
	}
	lastObservation := in.LastObservation
	if lastObservation == "" {
		lastObservation = "(no observation yet)"
	}

	return fmt.Sprintf(`Current steps taken: %d

Goal:
%s

Constraints:
%s

Current plan:
%s

Current notes:
%s

Current reflection:
%s

Last action: %s
Last observation: %s

Return JSON:
{
  "action": "plan" | "execute" | "reflect" | "synthesize",
  "reason": "short explanation of your reasoning"
}
`, in.Steps, in.Goal, jsonString(in.Constraints), jsonString(in.Plan), jsonString(in.Notes),
		jsonString(in.Reflection), lastAction, lastObservation)
}

func queriesUserPrompt(subq schema.SubQuestion, goal string, constraints schema.ResearchConstraints) string {
	return fmt.Sprintf(`Overall goal: %s
Constraints: %s

Subquestion:
%s

Return JSON:
{ "queries": ["...", "..."] }
`, goal, jsonString(constraints), subq.Description)
}

func summaryUserPrompt(subq schema.SubQuestion, goal string, constraints schema.ResearchConstraints, results []search.Result) string {
	return fmt.Sprintf(`Overall goal: %s
Constraints: %s
Subquestion: %s

Here are search results (JSON):
%s

Write:
- A short paragraph answer
- 3-7 bullet points with key findings
- A short note on source quality / limitations.
Return your answer as plain Markdown text (no JSON).
`, goal, jsonString(constraints), subq.Description, jsonString(results))
}

func synthesizeUserPrompt(in synthesizeInput) string {
	return fmt.Sprintf(`Goal:
%s

Constraints:
%s

Notes (JSON):
%s

Reflection (JSON):
%s

Write a report in Markdown with:
- Title
- Short executive summary
- Sections per subquestion
- Integrated discussion that links subquestions
- Brief 'Limitations & Further Work' section reflecting on gaps
Avoid making up citations; base on the provided sources, but you can paraphrase them.
`, in.Goal, jsonString(in.Constraints), jsonString(in.Notes), jsonString(in.Reflection))
}

// jsonString renders v as indented JSON for prompt embedding.
func jsonString(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
