// Package extract turns raw HTML into the plain-text corpus used to ground
// summarization and follow-up questions.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// keywords gates which blocks make it into the corpus. Matching is
// lowercase substring, not tokenized, so "usage" also matches "outage".
// The set is fixed; it is the relevance heuristic, not a user surface.
var keywords = []string{
	"terms",
	"usage",
	"license",
	"privacy",
	"data",
	"limitation",
	"prohibited",
	"commercial",
	"redistribution",
}

// discardSelector matches subtrees that never contribute corpus text.
const discardSelector = "script, style, nav, footer, head"

// blockSelector matches the block kinds collected into the corpus. Tables,
// blockquotes and the rest are deliberately excluded: precision over recall.
const blockSelector = "p, li, h1, h2, h3, h4"

// Extract parses rawHTML, drops non-content subtrees, and returns the
// keyword-relevant blocks joined one per line in document order. Empty or
// unparseable input yields an empty corpus, never an error.
func Extract(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find(discardSelector).Remove()

	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := blockText(sel)
		if text == "" {
			return
		}
		if containsKeyword(strings.ToLower(text)) {
			blocks = append(blocks, text)
		}
	})

	return strings.Join(blocks, "\n")
}

// blockText renders the visible text of a block with inter-element
// whitespace collapsed to single spaces and the ends trimmed.
func blockText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func containsKeyword(lower string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
