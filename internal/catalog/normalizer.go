package catalog

import (
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	"github.com/storefolioapp/storefolio-server/internal/id"
)

// Context carries the ambient facts a raw payload cannot know about itself:
// which collection it lands in and who added it.
type Context struct {
	CollectionID string
	User         domain.UserRef
}

// NormalizeStore turns a partial/raw payload into a fully-populated canonical
// store: fresh identity, collection and provenance attached from context,
// every unset field defaulted to its neutral value, tags lowercased and
// deduplicated, price classified. Pure given its inputs apart from identity
// generation, which is unique within the process lifetime.
func NormalizeStore(raw domain.PartialStore, ctx Context) domain.Store {
	store := domain.Store{
		CollectionID:   ctx.CollectionID,
		Name:           CleanName(raw.Name),
		Description:    FormatDescription(raw.Description),
		Website:        strings.TrimSpace(raw.Website),
		Country:        strings.TrimSpace(raw.Country),
		City:           strings.TrimSpace(raw.City),
		Tags:           NormalizeTags(raw.Tags),
		PriceBucket:    ClassifyPrice(raw.PriceRange),
		OnSale:         raw.OnSale,
		Rating:         raw.Rating,
		Sustainability: strings.TrimSpace(raw.Sustainability),
		CustomFields:   normalizeCustomFields(raw.CustomFields),
		AddedBy:        ctx.User,
	}
	store.ID = id.MustGenerate("store")
	store.InitTimestamps()
	return store
}

// NormalizeTags lowercases, trims, and deduplicates a tag list while
// preserving first-seen insertion order for display.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// normalizeCustomFields trims and deduplicates every field's selected
// options, dropping fields left with no values.
func normalizeCustomFields(fields map[string][]string) map[string][]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(fields))
	for name, options := range fields {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cleaned := splitCleanOptions(options)
		if len(cleaned) > 0 {
			out[name] = cleaned
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitCleanOptions(options []string) []string {
	var out []string
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || seen[opt] {
			continue
		}
		seen[opt] = true
		out = append(out, opt)
	}
	return out
}
