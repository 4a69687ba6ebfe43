package main

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/termlens/internal/summary"
)

var (
	batchFile        string
	batchConcurrency int
	batchOutput      string
)

// batchResult pairs a URL with its outcome for the output report.
type batchResult struct {
	URL     string            `json:"url"`
	Summary *summary.Document `json:"summary,omitempty"`
	Error   string            `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many URLs from a file",
	Long:  "Reads one URL per line (blank lines and #-comments skipped) and summarizes each with bounded concurrency. Per-URL failures are reported, not fatal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchFile == "" {
			return eris.New("--file is required")
		}

		urls, err := readURLFile(batchFile)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			return eris.New("no URLs to analyze")
		}

		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		var mu sync.Mutex
		results := make([]batchResult, 0, len(urls))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(concurrency)
		for _, url := range urls {
			g.Go(func() error {
				doc, err := a.Summarize(ctx, url)
				res := batchResult{URL: url}
				if err != nil {
					zap.L().Warn("batch: analyze failed", zap.String("url", url), zap.Error(err))
					res.Error = err.Error()
				} else {
					res.Summary = doc
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := os.Stdout
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrap(err, "batch: create output file")
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

// readURLFile reads one URL per line, skipping blanks and comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open url file")
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "batch: read url file")
	}
	return urls, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one URL per line")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent analyses (default from config)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write JSON results to file instead of stdout")
	rootCmd.AddCommand(batchCmd)
}
