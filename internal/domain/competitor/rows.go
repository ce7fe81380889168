package competitor

import (
	"fmt"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Export tools name the same logical columns differently (Ahrefs CSV says
// "Domain rating", SEMrush says "Page ascore", our own UI posts
// "domainRating"). RowAdapter maps any known alias onto the canonical Row
// shape before the pure classifier ever sees the data.

// Canonical logical field names understood by the adapter.
const (
	FieldURL           = "url"
	FieldDomainRating  = "domain_rating"
	FieldDomainTraffic = "domain_traffic"
	FieldAnchorText    = "anchor_text"
	FieldNofollow      = "nofollow"
)

// fieldAliases maps lowercased column names onto canonical fields. Lookup
// is case-insensitive and ignores surrounding whitespace.
var fieldAliases = map[string]string{
	"url":            FieldURL,
	"page url":       FieldURL,
	"referring url":  FieldURL,
	"referring_url":  FieldURL,
	"referringurl":   FieldURL,
	"source url":     FieldURL,
	"source_url":     FieldURL,
	"domain_rating":  FieldDomainRating,
	"domainrating":   FieldDomainRating,
	"domain rating":  FieldDomainRating,
	"dr":             FieldDomainRating,
	"page ascore":    FieldDomainRating,
	"domain_traffic": FieldDomainTraffic,
	"domaintraffic":  FieldDomainTraffic,
	"domain traffic": FieldDomainTraffic,
	"traffic":        FieldDomainTraffic,
	"anchor":         FieldAnchorText,
	"anchor text":    FieldAnchorText,
	"anchor_text":    FieldAnchorText,
	"anchortext":     FieldAnchorText,
	"nofollow":       FieldNofollow,
	"no follow":      FieldNofollow,
	"link type":      FieldNofollow,
	"link_type":      FieldNofollow,
}

// RowAdapter converts loosely-typed import rows (decoded JSON objects or
// CSV records zipped with their header) into Rows.
type RowAdapter struct {
	// paths optionally maps canonical fields to JMESPath expressions for
	// sources that nest values (e.g. "metrics.dr"). Expressions are
	// validated at construction and evaluated per row.
	paths map[string]string
}

// NewRowAdapter builds an adapter using only the alias table.
func NewRowAdapter() *RowAdapter {
	return &RowAdapter{}
}

// NewRowAdapterWithPaths builds an adapter that first evaluates the given
// JMESPath expression per canonical field and falls back to the alias table
// when an expression is absent or yields nothing.
func NewRowAdapterWithPaths(paths map[string]string) (*RowAdapter, error) {
	validated := make(map[string]string, len(paths))
	for field, expr := range paths {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile path for field %q: %w", field, err)
		}
		validated[field] = expr
	}
	return &RowAdapter{paths: validated}, nil
}

// Adapt converts one raw row. It never fails: unmappable values degrade to
// the zero value for their field, and the classifier's URL validation
// decides whether the row is usable at all.
func (a *RowAdapter) Adapt(raw map[string]any) Row {
	var row Row
	row.URL = strings.TrimSpace(coerceString(a.lookup(raw, FieldURL)))
	row.AnchorText = strings.TrimSpace(coerceString(a.lookup(raw, FieldAnchorText)))
	row.DomainRating = coerceIntPtr(a.lookup(raw, FieldDomainRating))
	row.DomainTraffic = coerceIntPtr(a.lookup(raw, FieldDomainTraffic))
	row.Nofollow = coerceNofollow(a.lookup(raw, FieldNofollow))
	return row
}

// AdaptAll converts a batch of raw rows.
func (a *RowAdapter) AdaptAll(raws []map[string]any) []Row {
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, a.Adapt(raw))
	}
	return rows
}

func (a *RowAdapter) lookup(raw map[string]any, field string) any {
	if expr, ok := a.paths[field]; ok {
		if v, err := jmespath.Search(expr, raw); err == nil && v != nil {
			return v
		}
	}
	for key, value := range raw {
		if fieldAliases[strings.ToLower(strings.TrimSpace(key))] == field {
			return value
		}
	}
	return nil
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

// coerceIntPtr accepts the numeric shapes JSON and CSV decoding produce.
// Non-numeric values become nil, never zero, so the max-wins merge policy
// is not polluted by unparsable cells.
func coerceIntPtr(v any) *int {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		if parsed, err := strconv.Atoi(s); err == nil {
			return &parsed
		}
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			i := int(parsed)
			return &i
		}
		return nil
	default:
		return nil
	}
}

// coerceNofollow accepts booleans, "true"/"false", and Ahrefs-style link
// type columns whose value is the literal string "nofollow".
func coerceNofollow(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "nofollow" || s == "1" || s == "yes"
	default:
		return false
	}
}
