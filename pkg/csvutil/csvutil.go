// Package csvutil renders tabular report data as delimited text that opens
// cleanly in common spreadsheet tools.
package csvutil

import "strings"

// utf8BOM is prepended so Excel detects UTF-8 encoded Korean text.
const utf8BOM = "\uFEFF"

// ToCSV renders a header line followed by one line per row. Fields containing
// a comma, double quote, or line break are quoted with internal quotes
// doubled. The result is total: empty rows yield the header line only.
func ToCSV(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(utf8BOM)

	writeLine(&b, headers)
	for _, row := range rows {
		writeLine(&b, row)
	}

	return b.String()
}

func writeLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(field))
	}
	b.WriteByte('\n')
}

func escapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
