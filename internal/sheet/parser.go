// Package sheet parses the society's published member register, a
// comma-delimited text export with a single header line.
package sheet

import (
	"strings"
)

// Row is a single data line keyed by normalized header. Headers keeps
// the column order of the source line; Values holds the cell text.
type Row struct {
	Headers []string
	Values  map[string]string
}

// Get returns the cell value for a normalized header, or "" when the
// column is absent.
func (r Row) Get(header string) string {
	return r.Values[header]
}

// GetFirst returns the first non-empty value among the given headers.
func (r Row) GetFirst(headers ...string) string {
	for _, h := range headers {
		if v := r.Values[h]; v != "" {
			return v
		}
	}
	return ""
}

// NormalizeHeader canonicalizes a header cell: trimmed, lowercased,
// internal whitespace removed, quote characters stripped.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ToLower(h)
	h = strings.Join(strings.Fields(h), "")
	h = strings.ReplaceAll(h, `"`, "")
	h = strings.ReplaceAll(h, "'", "")
	return h
}

// Parse converts raw delimited text into rows. The first line is the
// header line; blank lines are skipped. Inputs with fewer than two
// lines yield no rows rather than an error, matching the feed's
// soft-failure contract.
//
// Field splitting is quote-aware: a comma inside quotes is literal
// content. Escaped quotes ("") are not handled; the register's
// producer never emits them, and an embedded literal quote would
// toggle the quoting state.
func Parse(text string) []Row {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}

	rawHeaders := splitFields(lines[0])
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = NormalizeHeader(h)
	}

	var rows []Row
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitFields(line)
		row := Row{
			Headers: headers,
			Values:  make(map[string]string, len(headers)),
		}
		for i, h := range headers {
			if i < len(values) {
				row.Values[h] = values[i]
			} else {
				row.Values[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// splitFields splits one line on commas outside quotes. Each field is
// trimmed and stripped of one pair of surrounding quotes.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range strings.TrimSpace(line) {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, cleanField(current.String()))
	return fields
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}
