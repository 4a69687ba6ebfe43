// Package llm exposes the model as an opaque capability: given a prompt,
// return a text completion. Provider failures surface immediately; there is
// no retry at this boundary.
package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/termlens/pkg/anthropic"
)

// Completer is the single capability the orchestrator needs from a model
// provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// systemPreamble is constant across requests and carries a cache
// breakpoint, so repeated summarize/ask calls hit the warm prompt cache.
const systemPreamble = "You are a careful assistant that analyzes website and API terms of service. Follow the instructions in each request exactly."

// Options configure the Anthropic-backed completer.
type Options struct {
	Model     string
	MaxTokens int64
}

// AnthropicCompleter implements Completer on top of pkg/anthropic.
type AnthropicCompleter struct {
	client anthropic.Client
	opts   Options
}

// NewAnthropicCompleter wraps client as a Completer.
func NewAnthropicCompleter(client anthropic.Client, opts Options) *AnthropicCompleter {
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5-20250929"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4096
	}
	return &AnthropicCompleter{client: client, opts: opts}
}

// Complete sends prompt as a single user message and returns the
// concatenated text of the response.
func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemPreamble),
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: complete")
	}

	resp.Usage.LogCost(c.opts.Model, "complete")
	return resp.Text(), nil
}
