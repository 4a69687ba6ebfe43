// Package analyzer sequences the summarize and ask flows: fetch → extract →
// prompt → complete → parse → store, and lookup → prompt → complete →
// append. Failures surface immediately as typed errors; nothing is retried
// here and a failed summarize never touches the session store.
package analyzer

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/termlens/internal/extract"
	"github.com/sells-group/termlens/internal/fetch"
	"github.com/sells-group/termlens/internal/llm"
	"github.com/sells-group/termlens/internal/prompt"
	"github.com/sells-group/termlens/internal/session"
	"github.com/sells-group/termlens/internal/summary"
)

// Analyzer orchestrates summarization and question answering over a shared
// session store.
type Analyzer struct {
	fetcher   fetch.Fetcher
	completer llm.Completer
	store     *session.Store

	// summarizeGroup collapses concurrent summarize calls for the same
	// identifier into one fetch+completion. Sessions for distinct
	// identifiers stay fully independent.
	summarizeGroup singleflight.Group
}

// New wires an Analyzer from its collaborators.
func New(fetcher fetch.Fetcher, completer llm.Completer, store *session.Store) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		completer: completer,
		store:     store,
	}
}

// Summarize fetches the page behind identifier, extracts the relevant
// corpus, asks the model for a structured summary, and installs a fresh
// session on success. Any prior session for the identifier, including its
// history, is replaced.
func (a *Analyzer) Summarize(ctx context.Context, identifier string) (*summary.Document, error) {
	if identifier == "" {
		return nil, fail(KindMissingInput, eris.New("identifier is required"))
	}

	v, err, shared := a.summarizeGroup.Do(identifier, func() (any, error) {
		return a.summarize(ctx, identifier)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		zap.L().Debug("summarize: deduplicated concurrent call", zap.String("identifier", identifier))
	}
	return v.(*summary.Document), nil
}

func (a *Analyzer) summarize(ctx context.Context, identifier string) (*summary.Document, error) {
	rawHTML, err := a.fetcher.Fetch(ctx, identifier)
	if err != nil {
		return nil, fail(KindFetchFailed, err)
	}

	corpus := extract.Extract(rawHTML)
	zap.L().Info("summarize: extracted corpus",
		zap.String("identifier", identifier),
		zap.Int("corpus_bytes", len(corpus)),
	)

	completion, err := a.completer.Complete(ctx, prompt.SummaryPrompt(corpus))
	if err != nil {
		return nil, fail(KindLLMFailed, err)
	}

	doc, err := summary.Parse(completion)
	if err != nil {
		return nil, fail(KindMalformedSummary, err)
	}

	a.store.CreateOrReplace(identifier, corpus, doc)
	return doc, nil
}

// Ask answers a follow-up question against the session's corpus and prior
// conversation, then appends the exchange to the history. Asking before any
// successful Summarize for the identifier fails with KindUnknownSource.
func (a *Analyzer) Ask(ctx context.Context, identifier, question string) (string, error) {
	if identifier == "" || question == "" {
		return "", fail(KindMissingInput, eris.New("identifier and question are required"))
	}

	sess, err := a.store.Get(identifier)
	if err != nil {
		return "", fail(KindUnknownSource, err)
	}

	completion, err := a.completer.Complete(ctx, prompt.QuestionPrompt(sess.Corpus, sess.History, question))
	if err != nil {
		return "", fail(KindLLMFailed, err)
	}

	answer := summary.ParseAnswer(completion)
	if err := a.store.AppendHistory(identifier, question, answer); err != nil {
		// The session vanished between lookup and append (eviction).
		return "", fail(KindUnknownSource, err)
	}

	return answer, nil
}

// Sessions reports live session identifiers and their history lengths.
func (a *Analyzer) Sessions() map[string]int {
	return a.store.Identifiers()
}
