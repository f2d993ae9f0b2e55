package center

// csv.go is the tabular codec for center datasets.
//
// The wire format is plain CSV with a fixed, case-insensitive header
// vocabulary. Quoting follows RFC 4180: a doubled quote inside a
// quoted cell is a literal quote, and a newline inside a quoted cell
// belongs to the cell. Decoding is a pure function of the input bytes.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Columns is the full header vocabulary, in canonical emit order.
var Columns = []string{"id", "name", "address", "lat", "lng", "phone", "hours", "note", "tags"}

// requiredColumns must all be present in the header or the decode
// fails wholesale.
var requiredColumns = []string{"id", "name", "lat", "lng"}

// ParseError is a structural failure of the whole document: no record
// is returned alongside it.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse: " + e.Reason
}

// headerIndex maps lowercased column names to their position in a row.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(cleanCell(h))] = i
	}
	return idx
}

// Decode parses raw tabular text into centers.
//
// Empty input (or input with no rows at all) is a zero-row dataset,
// not an error. A header missing any of id/name/lat/lng aborts the
// decode with a *ParseError and no partial result. Unparseable lat or
// lng values become NaN so the validator can name the offending
// record; they are never silently defaulted.
func Decode(data []byte) ([]Center, error) {
	data = sanitizeUTF8(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return []Center{}, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if len(rows) == 0 {
		return []Center{}, nil
	}

	idx := makeHeaderIndex(rows[0])
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	centers := make([]Center, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		centers = append(centers, Center{
			ID:      cell(row, idx, "id"),
			Name:    cell(row, idx, "name"),
			Address: cell(row, idx, "address"),
			Lat:     parseCoord(cell(row, idx, "lat")),
			Lng:     parseCoord(cell(row, idx, "lng")),
			Phone:   cell(row, idx, "phone"),
			Hours:   cell(row, idx, "hours"),
			Note:    cell(row, idx, "note"),
			Tags:    SplitTags(cell(row, idx, "tags")),
		})
	}
	return centers, nil
}

// Encode writes centers back out in the canonical column order. Tags
// are joined with ";" so Decode(Encode(cs)) preserves the tag list.
func Encode(centers []Center) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, c := range centers {
		row := []string{
			c.ID,
			c.Name,
			c.Address,
			formatCoord(c.Lat),
			formatCoord(c.Lng),
			c.Phone,
			c.Hours,
			c.Note,
			strings.Join(c.Tags, ";"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Template returns a header-only document for download, so admins
// start from the exact column contract.
func Template() []byte {
	return []byte(strings.Join(Columns, ",") + "\n")
}

// SplitTags breaks a tags cell on ";", "|", or ",". Entries are
// normalized and empties dropped. A comma only acts as a tag separator
// inside a quoted cell; unquoted commas are consumed by the CSV reader
// as field delimiters before this function ever sees them, so tags
// containing a literal comma are not representable; author with ";".
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := NormalizeTag(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// cell returns the named column of a row, or "" when the column is
// absent from the header or the row is short.
func cell(row []string, idx headerIndex, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return cleanCell(row[pos])
}

// cleanCell trims whitespace and a leading BOM.
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

func parseCoord(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with U+FFFD so the CSV
// reader and downstream normalization always see valid UTF-8.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('\uFFFD')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
