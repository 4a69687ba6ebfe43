package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/termlens/internal/analyzer"
	"github.com/sells-group/termlens/internal/config"
	"github.com/sells-group/termlens/internal/fetch"
	"github.com/sells-group/termlens/internal/llm"
	"github.com/sells-group/termlens/internal/session"
	"github.com/sells-group/termlens/pkg/anthropic"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "termlens",
	Short: "Terms-of-service analyzer",
	Long:  "Fetches a page of terms or API usage rules, extracts the legally relevant text, condenses it into a structured role-segmented summary via Claude, and answers follow-up questions against it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newAnalyzer wires the orchestrator from config. The session store lives
// only as long as the process; CLI commands that ask follow-ups do so in
// the same invocation that summarized.
func newAnalyzer() (*analyzer.Analyzer, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic.key is not set (TERMLENS_ANTHROPIC_KEY)")
	}

	fetcher := fetch.NewHTTPFetcher(fetch.Options{
		Timeout:           time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		UserAgent:         cfg.Fetch.UserAgent,
		MaxBodySize:       cfg.Fetch.MaxBodyKB * 1024,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	})

	completer := llm.NewAnthropicCompleter(anthropic.NewClient(cfg.Anthropic.Key), llm.Options{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
	})

	store := session.NewStore(time.Duration(cfg.Sessions.TTLHours) * time.Hour)

	return analyzer.New(fetcher, completer, store), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
