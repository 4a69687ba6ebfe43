// Package prompt renders the two deterministic prompt templates: one for
// initial summarization, one for follow-up question answering. Both are
// pure functions of their inputs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sells-group/termlens/internal/session"
)

// summaryTemplate directs the model to return a single JSON object matching
// the summary wire contract. The five role labels, the four point-group
// titles, and the unaddressed-role sentinel must stay in sync with
// internal/summary.
const summaryTemplate = `You are a legal assistant. Read the following full API terms or documentation and condense it into a structured JSON object.

Explain the rules like you are talking to a smart kid - simple, clear, and friendly. Use sentences and avoid difficult legal words. But also be very detailed: do not just say "they collect your data", say what kind (name, email, IP address, device info, usage patterns, and so on). Make the hidden or easily missed parts obvious. Call out anything users might skip over, misunderstand, or assume is harmless. If a clause gives the company broad power (like removing an account at any time) or shifts responsibility to the user, highlight it.

Your job is to:
1. Give a Markdown-formatted summary of the overall terms - what the service is, what users must agree to, and any tricky or surprising rules.
2. For each of these 5 user roles, explain what applies to them:
   - 🧑 Public User
   - 🧑‍💻 Developer
   - 🏢 Non-Developer (like businesses, third-party tools)
   - 🎓 Student
   - 🧒 Minor
3. For each role, return a list called "points". Each item in "points" must be an object of the form:
{
  "title": "Data Collected",
  "items": ["<specific example of data>", "..."]
}
Use the following 4 titles exactly:
   - Data Collected
   - Terms You Are Agreeing To
   - Does
   - Don'ts
Each list of items should be as detailed as possible. Instead of "You agree to follow the rules", say "You agree not to overload the servers, or try to bypass login systems".
4. If the terms do not mention a user type at all, or it is unclear whether they are allowed, clearly return:
"This kind of person is not really talked about in specific in the terms and conditions"
5. Include a list called "importantNotices" - major red flags, risks, or powers the company holds (no refunds, account removal, changes without notice, sharing data with third parties). Be honest, not scary.

Only include what is actually stated in the terms; do not invent anything.

Return only valid JSON in the following format:
{
  "summary": "<Markdown summary of overall terms>",
  "userTypes": [
    {
      "userType": "🧑 Public User",
      "points": [
        {
          "title": "Data Collected",
          "items": ["IP address", "browser version", "actions taken on the site"]
        },
        {
          "title": "Don'ts",
          "items": ["Do not try to scrape data", "Do not share your account with others"]
        }
      ]
    },
    ...(same for Developer, Non-Developer, Student, Minor)
  ],
  "importantNotices": [
    "The company can delete your account anytime, even without notice.",
    "They may share your data with authorities or partners under some conditions."
  ]
}

Do not include any extra commentary, code fences, or markdown outside the JSON.

Here are the rules:
%s`

// questionTemplate answers a follow-up question against the corpus and the
// prior conversation, and nothing else.
const questionTemplate = `You are a helpful assistant. A user has a question about some terms and rules from an API or website. Using the context below, answer their question simply and clearly in detail. If the answer is not in the context, say so explicitly.

### CONTEXT:
%s

### PREVIOUS CHATS:
%s
### QUESTION:
%s

Answer:`

// SummaryPrompt renders the summarization prompt with corpus embedded
// verbatim.
func SummaryPrompt(corpus string) string {
	return fmt.Sprintf(summaryTemplate, corpus)
}

// QuestionPrompt renders the follow-up prompt with the corpus, the
// serialized history in insertion order, and the new question.
func QuestionPrompt(corpus string, history []session.Exchange, question string) string {
	return fmt.Sprintf(questionTemplate, corpus, renderHistory(history), question)
}

// renderHistory serializes prior question/answer pairs, one pair per
// numbered block, preserving order.
func renderHistory(history []session.Exchange) string {
	if len(history) == 0 {
		return "(none)\n"
	}
	var b strings.Builder
	for i, ex := range history {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, ex.Question, i+1, ex.Answer)
	}
	return b.String()
}
