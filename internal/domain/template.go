package domain

// CustomFieldDef defines one template-scoped custom field and its allowed options.
type CustomFieldDef struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Template defines a collection's field schema: the canonical columns its
// imports recognize and the custom fields its stores may carry. The core
// parse/normalize/filter operations receive the schema explicitly; nothing
// reads it from ambient state.
type Template struct {
	Name          string           `json:"name"`
	Fields        []string         `json:"fields"` // ordered canonical field names
	CustomFields  []CustomFieldDef `json:"custom_fields,omitempty"`
	DefaultFacets []string         `json:"default_facets,omitempty"`
}

// CustomFieldNames returns the names of all template-defined custom fields.
func (t *Template) CustomFieldNames() []string {
	names := make([]string, len(t.CustomFields))
	for i, f := range t.CustomFields {
		names[i] = f.Name
	}
	return names
}

// HasCustomField checks if the template defines a custom field with the given name.
func (t *Template) HasCustomField(name string) bool {
	for _, f := range t.CustomFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// OptionsFor returns the allowed options for a custom field, or nil if the
// field is not defined by this template.
func (t *Template) OptionsFor(name string) []string {
	for _, f := range t.CustomFields {
		if f.Name == name {
			return f.Options
		}
	}
	return nil
}
