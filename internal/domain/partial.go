package domain

// PartialStore is a raw, loosely-structured store payload before normalization.
// It is produced by the CSV parser, manual-add forms, and enrichment providers.
// Every field is optional; PriceRange carries the raw price text (symbolic
// tiers, bucket ids, or free text) before classification.
type PartialStore struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Website        string              `json:"website"`
	Country        string              `json:"country"`
	City           string              `json:"city"`
	Tags           []string            `json:"tags,omitempty"`
	PriceRange     string              `json:"price_range"`
	OnSale         bool                `json:"on_sale"`
	Rating         float64             `json:"rating"`
	Sustainability string              `json:"sustainability"`
	CustomFields   map[string][]string `json:"custom_fields,omitempty"`
}
