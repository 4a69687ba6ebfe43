package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// MalformedError reports model output that could not be parsed as a summary
// document. Raw and Cleaned are kept for diagnostics.
type MalformedError struct {
	Raw     string
	Cleaned string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed summary: %v", e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Parse cleans raw completion text and parses it into a Document. Any parse
// failure, including a non-object top level, is reported as *MalformedError.
// Successfully parsed JSON is passed through as-is; deep schema validation
// is left to callers that want it.
func Parse(raw string) (*Document, error) {
	cleaned := Clean(raw)

	// json.Unmarshal accepts "null" and bare scalars into a struct; the
	// contract requires an object at the top level.
	if !strings.HasPrefix(cleaned, "{") {
		return nil, &MalformedError{Raw: raw, Cleaned: cleaned, Err: eris.New("top level is not a JSON object")}
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &MalformedError{Raw: raw, Cleaned: cleaned, Err: err}
	}

	return &doc, nil
}

// ParseAnswer recovers a plain-text question answer from completion text.
// Answers are prose, not JSON, so this is only whitespace trimming.
func ParseAnswer(raw string) string {
	return strings.TrimSpace(raw)
}
