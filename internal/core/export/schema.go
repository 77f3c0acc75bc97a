// package export/schema.go
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format tells a renderer how to present the values of a column.
type Format int

// Column formats.
const (
	FormatText Format = iota
	FormatCurrency
	FormatPercent
	FormatInteger
	FormatGeneral
)

// Column describes one column of a table.
type Column struct {
	Header string
	Width  float64
	Format Format
}

// TableSchema is the declarative layout of a table: its name and ordered columns.
type TableSchema struct {
	SheetName string
	Columns   []Column
}

// Table is a schema plus its rows. Each row holds one cell per column; a nil cell is blank.
type Table struct {
	Schema TableSchema
	Rows   [][]any
}

// Renderer writes tables to a destination format.
type Renderer interface {
	Render(w io.Writer, tables ...Table) error
	Extension() string
	ContentType() string
}

// ErrUnsupportedFormat is returned for export formats with no renderer.
var ErrUnsupportedFormat = errors.New("formato de exportação não suportado")

// RendererFor returns the renderer registered for format ("xlsx" or "csv").
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "xlsx":
		return NewXLSXRenderer(), nil
	case "csv":
		return NewCSVRenderer(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// FileName builds the dated name of an exported file, e.g. notas_fiscais_2024-05-01.xlsx.
func FileName(prefix string, now time.Time, r Renderer) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("2006-01-02"), r.Extension())
}

// validate checks that every row matches the column count of its schema.
func (t Table) validate() error {
	if t.Schema.SheetName == "" {
		return errors.New("tabela sem nome de planilha")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Schema.Columns) {
			return fmt.Errorf("tabela %q: linha %d tem %d células, esperado %d", t.Schema.SheetName, i+1, len(row), len(t.Schema.Columns))
		}
	}
	return nil
}
