package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// FieldSchema describes what a tabular import should recognize: the ordered
// canonical columns the collection expects plus the template-defined custom
// field names. The parser matches headers case- and whitespace-insensitively
// against both; anything left unmatched is preserved as an extra custom field
// so no user-provided data is silently dropped.
type FieldSchema struct {
	Fields       []string
	CustomFields []string
}

// SchemaFromTemplate builds the parse schema for a collection's template.
func SchemaFromTemplate(t domain.Template) FieldSchema {
	return FieldSchema{
		Fields:       t.Fields,
		CustomFields: t.CustomFieldNames(),
	}
}

// RowError records a problem with a single data row. Row is 1-based over the
// data rows (the header is row 0). Row-level errors never abort the parse.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParseResult is the outcome of a tabular parse: the accepted records, the
// rows that could not be accepted, and whether input past the record cap was
// dropped. Partial success is the default outcome, not a failure.
type ParseResult struct {
	Records   []domain.PartialStore `json:"records"`
	Errors    []RowError            `json:"errors,omitempty"`
	Truncated bool                  `json:"truncated"`
}

// Top-level parse failures. These mean zero records were produced; everything
// row-shaped is reported through ParseResult.Errors instead.
var (
	ErrEmptyInput      = errors.New("empty input: no rows to parse")
	ErrDuplicateHeader = errors.New("duplicate header column")
)

// column kinds bound from the header row.
const (
	colName = iota
	colDescription
	colWebsite
	colCountry
	colCity
	colTags
	colPrice
	colSale
	colRating
	colSustainability
	colCustom
)

// canonicalColumns maps normalized header keys to canonical column kinds.
var canonicalColumns = map[string]int{
	"name":           colName,
	"storename":      colName,
	"description":    colDescription,
	"website":        colWebsite,
	"url":            colWebsite,
	"country":        colCountry,
	"city":           colCity,
	"tags":           colTags,
	"price":          colPrice,
	"pricerange":     colPrice,
	"sale":           colSale,
	"onsale":         colSale,
	"rating":         colRating,
	"sustainability": colSustainability,
}

type columnBinding struct {
	kind int
	// custom field name, set when kind == colCustom
	name string
	// multi-valued columns absorb overflow cells when a row has too many
	multi bool
}

// ParseTabular converts raw delimited text plus a field schema into candidate
// store records with per-row error collection. The first row is the header.
// maxRecords caps how many records are parsed; rows past the cap set
// Truncated instead of being silently lost. maxRecords <= 0 means no cap.
//
// The parser is stateless per input: callers are free to chunk large imports
// however they like and only surface the result once parsing completes.
func ParseTabular(text string, schema FieldSchema, maxRecords int) (ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return ParseResult{}, ErrEmptyInput
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // column counts are checked per row below
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return ParseResult{}, ErrEmptyInput
	}

	bindings, err := bindHeader(header, schema)
	if err != nil {
		return ParseResult{}, err
	}

	var result ParseResult
	row := 0
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Reason: "malformed row: " + err.Error()})
			continue
		}

		if maxRecords > 0 && len(result.Records) >= maxRecords {
			result.Truncated = true
			break
		}

		record, rowErr := buildRecord(cells, bindings, row)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// bindHeader matches header cells against canonical columns and the
// template's custom fields. Unmatched headers become extra custom fields.
func bindHeader(header []string, schema FieldSchema) ([]columnBinding, error) {
	bindings := make([]columnBinding, 0, len(header))
	seen := make(map[string]bool, len(header))

	for _, cell := range header {
		key := headerKey(cell)
		if key == "" {
			return nil, ErrDuplicateHeader // blank header cells are indistinguishable
		}
		if seen[key] {
			return nil, ErrDuplicateHeader
		}
		seen[key] = true

		if kind, ok := canonicalColumns[key]; ok {
			bindings = append(bindings, columnBinding{kind: kind, multi: kind == colTags})
			continue
		}

		// Template custom fields match with the template's own casing.
		name := strings.TrimSpace(cell)
		for _, cf := range schema.CustomFields {
			if headerKey(cf) == key {
				name = cf
				break
			}
		}
		bindings = append(bindings, columnBinding{kind: colCustom, name: name, multi: true})
	}

	return bindings, nil
}

// headerKey normalizes a header cell for matching: lowercased with
// whitespace, underscores, and dashes removed.
func headerKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, s)
}

func buildRecord(cells []string, bindings []columnBinding, row int) (domain.PartialStore, *RowError) {
	// Rows may be short: missing trailing cells read as empty. Rows may also
	// be long: overflow cells fold into a trailing multi-valued column, the
	// common case being an unquoted tag list.
	if len(cells) > len(bindings) {
		last := bindings[len(bindings)-1]
		if !last.multi {
			return domain.PartialStore{}, &RowError{Row: row, Reason: "wrong column count"}
		}
		merged := strings.Join(cells[len(bindings)-1:], ",")
		cells = append(cells[:len(bindings)-1:len(bindings)-1], merged)
	}

	record := domain.PartialStore{}
	for i, binding := range bindings {
		var cell string
		if i < len(cells) {
			cell = strings.TrimSpace(cells[i])
		}
		if cell == "" {
			continue
		}

		switch binding.kind {
		case colName:
			record.Name = cell
		case colDescription:
			record.Description = cell
		case colWebsite:
			record.Website = cell
		case colCountry:
			record.Country = cell
		case colCity:
			record.City = cell
		case colTags:
			record.Tags = NormalizeTags(strings.Split(cell, ","))
		case colPrice:
			// Classified cells carry the bucket id forward; everything else
			// stays raw and resolves to unclassified at normalization.
			if bucket := ClassifyPrice(cell); bucket.IsClassified() {
				record.PriceRange = string(bucket)
			} else {
				record.PriceRange = cell
			}
		case colSale:
			record.OnSale = parseBoolCell(cell)
		case colRating:
			if rating, err := strconv.ParseFloat(cell, 64); err == nil {
				record.Rating = rating
			}
		case colSustainability:
			record.Sustainability = cell
		case colCustom:
			if record.CustomFields == nil {
				record.CustomFields = make(map[string][]string)
			}
			record.CustomFields[binding.name] = splitOptions(cell)
		}
	}

	if record.Name == "" {
		return domain.PartialStore{}, &RowError{Row: row, Reason: "missing store name"}
	}
	return record, nil
}

func parseBoolCell(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// splitOptions splits a multi-value cell on commas, trims, and deduplicates,
// preserving first-seen order and original casing.
func splitOptions(cell string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
