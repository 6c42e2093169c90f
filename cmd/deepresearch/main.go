// Command deepresearch runs the research agent from the terminal:
//
//	deepresearch [flags] "your research question"
//
// The final report is printed to stdout (or written to -out), and progress
// for each stage is streamed to stderr unless -quiet is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/maximecaron/deepresearch/agent"
	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/log"
	"github.com/maximecaron/deepresearch/report"
	"github.com/maximecaron/deepresearch/search"
	"github.com/maximecaron/deepresearch/store"
	postgresstore "github.com/maximecaron/deepresearch/store/postgres"
	redisstore "github.com/maximecaron/deepresearch/store/redis"
	sqlitestore "github.com/maximecaron/deepresearch/store/sqlite"
)

var (
	stageStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	elementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// consoleSink prints stage progress to stderr.
type consoleSink struct{}

func (consoleSink) Emit(_ context.Context, entry *agent.TraceEntry) {
	fmt.Fprintln(os.Stderr, stageStyle.Render("▸ "+entry.Stage))
	for _, k := range []string{"Thought", "Action", "Observation"} {
		if v, ok := entry.Elements[k]; ok {
			fmt.Fprintln(os.Stderr, elementStyle.Render(fmt.Sprintf("  %s: %s", k, v)))
		}
	}
}

func main() {
	var (
		model       = flag.String("model", "", "chat model name (default gpt-4o)")
		baseURL     = flag.String("base-url", "", "OpenAI-compatible API base URL")
		maxSteps    = flag.Int("max-steps", agent.DefaultMaxSteps, "decide-loop step budget")
		engine      = flag.String("engine", "duckduckgo", "search engine: brave or duckduckgo")
		results     = flag.Int("results", search.DefaultLimit, "search results per query")
		htmlOut     = flag.Bool("html", false, "render the report as sanitized HTML")
		outPath     = flag.String("out", "", "write the report to a file instead of stdout")
		sqlitePath  = flag.String("save", "", "save the run to a SQLite database at this path")
		redisAddr   = flag.String("redis-addr", "", "save the run to Redis at this address")
		postgresURL = flag.String("postgres-url", "", "save the run to Postgres at this connection string")
		quiet       = flag.Bool("quiet", false, "suppress progress output")
	)
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: deepresearch [flags] \"your research question\"")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *quiet {
		log.SetDefaultLogger(&log.NoOpLogger{})
	}

	ctx := context.Background()

	var llmOpts []llm.OpenAIOption
	if *model != "" {
		llmOpts = append(llmOpts, llm.WithModel(*model))
	}
	if *baseURL == "" {
		*baseURL = os.Getenv("OPENAI_API_BASE")
	}
	if *baseURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(*baseURL))
	}
	client, err := llm.NewOpenAIClient("", llmOpts...)
	if err != nil {
		fatal(err)
	}

	provider, err := newProvider(*engine)
	if err != nil {
		fatal(err)
	}

	var agentOpts []agent.Option
	if !*quiet {
		agentOpts = append(agentOpts, agent.WithSink(consoleSink{}))
	}

	a, err := agent.New(agent.Config{
		MaxSteps:    *maxSteps,
		SearchLimit: *results,
	}, client, provider, agentOpts...)
	if err != nil {
		fatal(err)
	}

	state, err := a.RunState(ctx, query)
	if err != nil {
		fatal(err)
	}

	if err := saveRun(ctx, *sqlitePath, *redisAddr, *postgresURL, query, state); err != nil {
		fatal(err)
	}

	out := state.Report
	if *htmlOut {
		out = report.RenderHTML(out)
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
			fatal(err)
		}
		return
	}
	fmt.Println(out)
}

func newProvider(engine string) (search.Provider, error) {
	switch engine {
	case "brave":
		return search.NewBraveProvider("")
	case "duckduckgo":
		return search.NewDuckDuckGoProvider(), nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", engine)
	}
}

func saveRun(ctx context.Context, sqlitePath, redisAddr, postgresURL, query string, state *agent.State) error {
	record := &store.RunRecord{
		ID:        uuid.NewString(),
		Query:     query,
		Goal:      state.Goal,
		Report:    state.Report,
		Steps:     state.Steps,
		CreatedAt: time.Now().UTC(),
	}

	if sqlitePath != "" {
		s, err := sqlitestore.NewSqliteRunStore(sqlitestore.SqliteOptions{Path: sqlitePath})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Save(ctx, record); err != nil {
			return err
		}
	}
	if redisAddr != "" {
		s := redisstore.NewRedisRunStore(redisstore.RedisOptions{Addr: redisAddr})
		defer s.Close()
		if err := s.Save(ctx, record); err != nil {
			return err
		}
	}
	if postgresURL != "" {
		s, err := postgresstore.NewPostgresRunStore(ctx, postgresstore.PostgresOptions{ConnString: postgresURL})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.InitSchema(ctx); err != nil {
			return err
		}
		if err := s.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "deepresearch:", err)
	os.Exit(1)
}
