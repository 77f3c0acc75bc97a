// package export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type csvRenderer struct{}

// NewCSVRenderer creates a renderer producing ';'-separated, ISO-8859-1 encoded CSV
// with decimal commas. Tables are written one after the other, separated by a blank line.
func NewCSVRenderer() Renderer {
	return &csvRenderer{}
}

func (r *csvRenderer) Extension() string { return "csv" }

func (r *csvRenderer) ContentType() string { return "text/csv; charset=iso-8859-1" }

// Render writes the tables to w.
func (r *csvRenderer) Render(w io.Writer, tables ...Table) error {
	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	encoded := transform.NewWriter(w, encoder)

	writer := csv.NewWriter(encoded)
	writer.Comma = ';'

	for i, table := range tables {
		if err := table.validate(); err != nil {
			return err
		}
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return err
			}
		}

		header := make([]string, len(table.Schema.Columns))
		for col, column := range table.Schema.Columns {
			header[col] = sanitizeForCSV(column.Header)
		}
		if err := writer.Write(header); err != nil {
			return err
		}

		for _, row := range table.Rows {
			record := make([]string, len(row))
			for col, value := range row {
				record[col] = formatCell(value, table.Schema.Columns[col].Format)
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("erro ao gerar CSV: %w", err)
	}
	return encoded.Close()
}

func formatCell(value any, format Format) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return sanitizeForCSV(v)
	case int:
		return strconv.Itoa(v)
	case *float64:
		if v == nil {
			return ""
		}
		return formatNumber(*v, format)
	case float64:
		return formatNumber(v, format)
	}
	return sanitizeForCSV(fmt.Sprint(value))
}

func formatNumber(v float64, format Format) string {
	var s string
	switch format {
	case FormatInteger:
		s = strconv.FormatFloat(v, 'f', 0, 64)
	case FormatGeneral:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strings.Replace(s, ".", ",", 1)
}

// sanitizeForCSV trims s and drops embedded line breaks, tabs and control characters.
func sanitizeForCSV(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
