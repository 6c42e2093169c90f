// Deep Research - a staged research agent for the terminal
//
// deepresearch turns a raw question into a sourced Markdown report. A run
// moves through fixed stages: clarify the question into a goal with
// explicit constraints, plan it into subquestions, gather and summarize
// web results per subquestion, and synthesize the final report. Between
// planning and execution a bounded decide loop picks the next action, so a
// run always terminates even when the model keeps asking for more work.
//
// # Quick Start
//
// Install the command:
//
//	go install github.com/maximecaron/deepresearch/cmd/deepresearch@latest
//
// Run a query (requires OPENAI_API_KEY):
//
//	deepresearch "How do container runtimes differ for edge deployments?"
//
// Library example:
//
//	client, err := llm.NewOpenAIClient("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	a, err := agent.New(agent.Config{}, client, search.NewDuckDuckGoProvider())
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := a.Run(context.Background(), "your question")
//
// # Packages
//
//   - agent: the staged workflow and its shared run state
//   - graph: the labeled state-graph engine driving the stages
//   - schema: structured contracts exchanged with the model
//   - llm: completion clients (OpenAI-compatible and langchaingo)
//   - search: web search providers (Brave, DuckDuckGo)
//   - report: Markdown to sanitized HTML rendering
//   - store: run persistence (memory, Redis, SQLite, Postgres)
package deepresearch
