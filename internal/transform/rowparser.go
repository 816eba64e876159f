package transform

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Record is one parsed sheet row. Keys are the camel-cased column
// headers in sheet order; blank cells are absent rather than empty.
type Record struct {
	keys   []string
	fields map[string]string
}

// Keys returns the full column key list in sheet order, including
// columns absent from this particular row.
func (r Record) Keys() []string { return r.keys }

// Get returns the cell for a column key, or "" when absent.
func (r Record) Get(key string) string { return r.fields[key] }

// Has reports whether the row has a non-blank cell for the column key.
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// SchemaError reports a sheet whose header row does not match the
// configured layout. It fails the whole request rather than letting
// misaligned columns silently produce malformed records.
type SchemaError struct {
	Sheet  string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q: %s", e.Sheet, e.Detail)
}

// ValidateHeaders checks the grid's header row against the expected
// baseline. Extra columns beyond the baseline are allowed (the
// purchases sheet carries ad-hoc month columns).
func ValidateHeaders(sheet string, grid [][]string, want []string) error {
	if len(grid) == 0 {
		return &SchemaError{Sheet: sheet, Detail: "missing header row"}
	}
	header := grid[0]
	for i, w := range want {
		if i >= len(header) {
			return &SchemaError{Sheet: sheet, Detail: fmt.Sprintf("missing column %d, expected %q", i+1, w)}
		}
		if !strings.EqualFold(strings.TrimSpace(header[i]), w) {
			return &SchemaError{Sheet: sheet, Detail: fmt.Sprintf("column %d is %q, expected %q", i+1, header[i], w)}
		}
	}
	return nil
}

// ParseRows converts a grid (header row first) into ordered records.
// The sheet is assumed to hold one contiguous populated block: parsing
// stops at the first row whose second cell is blank, which ignores the
// trailing empty rows a values-API range returns.
func ParseRows(grid [][]string) []Record {
	if len(grid) == 0 {
		return nil
	}

	keys := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		keys[i] = camelKey(h)
	}

	var records []Record
	for _, row := range grid[1:] {
		if len(row) < 2 || row[1] == "" {
			break
		}
		fields := make(map[string]string, len(keys))
		for i, k := range keys {
			if i < len(row) && row[i] != "" {
				fields[k] = row[i]
			}
		}
		records = append(records, Record{keys: keys, fields: fields})
	}
	return records
}

// camelKey converts a header cell to its camel-cased record key
// ("Distribution Site" -> "distributionSite", "BIPOC Owned" ->
// "bipocOwned", "2021 June" -> "2021June"). Words split on
// non-alphanumerics, lower-to-upper case transitions, and letter/digit
// boundaries.
func camelKey(header string) string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(strings.TrimSpace(header))
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			boundary := (unicode.IsUpper(r) && unicode.IsLower(prev)) ||
				(unicode.IsDigit(r) != unicode.IsDigit(prev) && (unicode.IsLetter(prev) || unicode.IsDigit(prev)))
			if boundary {
				flush()
			}
		}
		cur.WriteRune(r)
	}
	flush()

	var b strings.Builder
	for i, w := range words {
		lower := strings.ToLower(w)
		if i == 0 {
			b.WriteString(lower)
			continue
		}
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	return b.String()
}

// parseGeocode splits a "lat, lng" cell. Anything that does not split
// into exactly two float-parseable parts is treated as absent.
func parseGeocode(cell string) (*Geocode, bool) {
	if cell == "" {
		return nil, false
	}
	parts := strings.Split(cell, ", ")
	if len(parts) != 2 {
		return nil, false
	}
	for _, p := range parts {
		if _, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return nil, false
		}
	}
	return &Geocode{parts[0], parts[1]}, true
}
