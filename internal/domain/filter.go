package domain

// FilterState is the transient per-session facet query evaluated against a
// collection's stores. It is never persisted with the collection.
//
// Semantics per facet: Search is a case-insensitive substring over name, city,
// country, and tags. Tags require every listed tag (AND). OnSale is a gate
// that, when set, admits only on-sale stores. PriceBuckets admit a store whose
// classified bucket is any member (OR). CustomFields require, for each listed
// field, that the store's selection intersects the requested options (OR
// within a field, AND across fields).
type FilterState struct {
	Search       string              `json:"search"`
	Tags         []string            `json:"tags,omitempty"`
	OnSale       bool                `json:"on_sale"`
	PriceBuckets []Bucket            `json:"price_buckets,omitempty"`
	CustomFields map[string][]string `json:"custom_fields,omitempty"`
}
