// Package slug produces URL-safe identifiers from human-readable titles.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make lower-cases text, strips diacritics and punctuation, collapses
// separators to single hyphens and trims leading/trailing hyphens.
// Idempotent: Make(Make(x)) == Make(x).
func Make(text string) string {
	if folded, _, err := transform.String(stripMarks, text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// Taken reports whether a candidate slug is already in use.
type Taken func(ctx context.Context, slug string) (bool, error)

// Unique resolves a collision-free slug by probing base, then base-1,
// base-2, ... until a free value is found. The probe loop is not
// transactional; concurrent creations with the same base rely on the
// store's uniqueness constraint as the backstop.
func Unique(ctx context.Context, base string, taken Taken) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug probe failed: %w", err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
