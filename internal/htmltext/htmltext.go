// Package htmltext holds small text helpers shared by the AI and SEO paths.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text converts HTML to plain text, collapsing whitespace.
func Text(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Collapse(html) // Fallback to original if parsing fails
	}
	return Collapse(doc.Text())
}

// Collapse squeezes runs of whitespace into single spaces and trims.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts a string to max length, appending ellipsis if truncated.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen > 3 {
		return text[:maxLen-3] + "..."
	}
	return text[:maxLen]
}
