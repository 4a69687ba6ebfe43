package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/termlens/internal/session"
	"github.com/sells-group/termlens/internal/summary"
)

func TestSummaryPrompt_EmbedsCorpusVerbatim(t *testing.T) {
	corpus := "You agree to our Privacy policy.\nNo commercial redistribution."
	p := SummaryPrompt(corpus)
	assert.Contains(t, p, corpus)
	assert.True(t, strings.HasSuffix(p, corpus), "corpus goes at the end of the prompt")
}

func TestSummaryPrompt_NamesAllRolesAndTitles(t *testing.T) {
	p := SummaryPrompt("corpus")
	for _, role := range summary.Roles() {
		assert.Contains(t, p, role)
	}
	for _, title := range summary.Titles() {
		assert.Contains(t, p, title)
	}
	assert.Contains(t, p, summary.UnaddressedRole)
	assert.Contains(t, p, "importantNotices")
	assert.Contains(t, p, "Return only valid JSON")
}

func TestSummaryPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, SummaryPrompt("same corpus"), SummaryPrompt("same corpus"))
}

func TestQuestionPrompt_EmbedsAllInputs(t *testing.T) {
	history := []session.Exchange{
		{Question: "Can minors sign up?", Answer: "No, users must be 18+."},
		{Question: "What data is collected?", Answer: "Email and IP address."},
	}
	p := QuestionPrompt("the corpus text", history, "Is scraping allowed?")

	assert.Contains(t, p, "the corpus text")
	assert.Contains(t, p, "Is scraping allowed?")
	assert.Contains(t, p, "Q1: Can minors sign up?")
	assert.Contains(t, p, "A1: No, users must be 18+.")
	assert.Contains(t, p, "Q2: What data is collected?")
	assert.Contains(t, p, "A2: Email and IP address.")

	// History renders in insertion order.
	assert.Less(t, strings.Index(p, "Q1:"), strings.Index(p, "Q2:"))
}

func TestQuestionPrompt_EmptyHistory(t *testing.T) {
	p := QuestionPrompt("corpus", nil, "q")
	assert.Contains(t, p, "(none)")
}

func TestQuestionPrompt_Deterministic(t *testing.T) {
	history := []session.Exchange{{Question: "q", Answer: "a"}}
	assert.Equal(t,
		QuestionPrompt("c", history, "next"),
		QuestionPrompt("c", history, "next"),
	)
}
