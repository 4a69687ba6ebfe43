package analyzer

import (
	"errors"

	"github.com/sells-group/termlens/internal/session"
	"github.com/sells-group/termlens/internal/summary"
)

// Kind classifies a failure so callers can react without string matching.
type Kind string

const (
	KindFetchFailed      Kind = "fetch_failed"
	KindLLMFailed        Kind = "llm_failed"
	KindMalformedSummary Kind = "malformed_summary"
	KindUnknownSource    Kind = "unknown_source"
	KindMissingInput     Kind = "missing_input"
	KindInternal         Kind = "internal"
)

// Error carries a failure Kind alongside the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// fail wraps err with a kind, leaving nil untouched.
func fail(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf classifies any error returned by the orchestrator. Errors that did
// not come out of the orchestrator classify as KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, session.ErrUnknownSource) {
		return KindUnknownSource
	}
	var me *summary.MalformedError
	if errors.As(err, &me) {
		return KindMalformedSummary
	}
	return KindInternal
}
