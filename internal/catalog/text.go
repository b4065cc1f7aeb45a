// Package catalog implements the filtering and import-normalization engine:
// text canonicalization, price bucket classification, tabular record parsing,
// store normalization, non-destructive enrichment merging, and facet
// filtering. Everything here is a pure, synchronous transformation over
// values the caller passes in; there is no shared state and no I/O.
package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// NormalizeName produces the stable comparison key for a store name: outer
// whitespace trimmed, internal whitespace collapsed, case folded. Used for
// deterministic sorting and duplicate detection, never for display.
func NormalizeName(s string) string {
	return foldCaser.String(collapseSpace(s))
}

// CleanName prepares a name for display: trimmed with internal whitespace
// collapsed, case preserved.
func CleanName(s string) string {
	return collapseSpace(s)
}

// CompareNames returns a total order consistent with NormalizeName.
// Ties between names with identical normalized keys are broken by raw string
// comparison so repeated sorts are reproducible.
func CompareNames(a, b string) int {
	if c := strings.Compare(NormalizeName(a), NormalizeName(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

var (
	lineSpaceRe  = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	spacePunctRe = regexp.MustCompile(`[ \t]+([,.;:!?])`)
)

// FormatDescription normalizes whitespace and punctuation spacing in a
// description without truncating it. It runs on every description before it
// is persisted, whether hand-typed or enrichment-sourced, and is idempotent:
// applying it twice yields the same result as applying it once. Enrichment
// may re-run over already-formatted data, so idempotence is load-bearing.
func FormatDescription(text string) string {
	// Normalize line endings first so the per-line pass sees plain \n.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = lineSpaceRe.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	// At most one blank line between paragraphs.
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	// No space before terminal punctuation.
	text = spacePunctRe.ReplaceAllString(text, "$1")

	return strings.TrimSpace(text)
}

// collapseSpace trims and collapses every whitespace run to a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// foldContains reports whether substr occurs in s, case-folded.
func foldContains(s, substr string) bool {
	return strings.Contains(foldCaser.String(s), foldCaser.String(substr))
}
