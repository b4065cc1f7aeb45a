package catalog

import (
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// sentinelNonValues are placeholder strings users type to mean "no value".
// The exact membership is deliberate and affects merge outcomes; do not
// generalize it into a broader looks-empty heuristic.
var sentinelNonValues = map[string]bool{
	"none":  true,
	"n/a":   true,
	"na":    true,
	"false": true,
}

// minDescriptionLength is the shortest description considered meaningful.
// Anything shorter is treated as empty and eligible for enrichment fill.
const minDescriptionLength = 10

// MergeEnrichment overlays externally-sourced fields onto an existing store
// under a strictly fill-only policy: an enriched value is accepted only if
// the existing field is empty per its own emptiness rule. User-authored
// content is never overwritten. Accepted descriptions pass through
// FormatDescription; accepted websites are written verbatim. No other field
// is touched.
func MergeEnrichment(existing domain.Store, enriched domain.PartialStore) domain.Store {
	merged := existing
	changed := false

	if isEmptyWebsite(existing.Website) && strings.TrimSpace(enriched.Website) != "" {
		merged.Website = enriched.Website
		changed = true
	}

	if isEmptyDescription(existing.Description) && strings.TrimSpace(enriched.Description) != "" {
		merged.Description = FormatDescription(enriched.Description)
		changed = true
	}

	if changed {
		merged.Touch()
	}
	return merged
}

// isEmptyWebsite reports whether a website field is blank or a sentinel
// non-value after trimming, case-insensitively.
func isEmptyWebsite(website string) bool {
	website = strings.ToLower(strings.TrimSpace(website))
	return website == "" || sentinelNonValues[website]
}

// isEmptyDescription reports whether a description is blank, shorter than
// the minimum meaningful length, or a sentinel non-value.
func isEmptyDescription(description string) bool {
	description = strings.TrimSpace(description)
	if len(description) < minDescriptionLength {
		return true
	}
	return sentinelNonValues[strings.ToLower(description)]
}
