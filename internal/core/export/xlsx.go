// package export/xlsx.go
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	currencyNumFmt = `"R$" #,##0.00`
	percentNumFmt  = `0.00"%"`
	defaultSheet   = "Sheet1"
)

type xlsxRenderer struct{}

// NewXLSXRenderer creates a renderer that writes one worksheet per table.
func NewXLSXRenderer() Renderer {
	return &xlsxRenderer{}
}

func (r *xlsxRenderer) Extension() string { return "xlsx" }

func (r *xlsxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes the tables as a workbook to w.
func (r *xlsxRenderer) Render(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("erro ao criar estilos da planilha: %w", err)
	}

	for i, table := range tables {
		if err := table.validate(); err != nil {
			return err
		}
		name := table.Schema.SheetName
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("erro ao nomear planilha %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("erro ao criar planilha %q: %w", name, err)
		}
		if err := writeSheet(f, name, table, styles); err != nil {
			return fmt.Errorf("erro ao preencher planilha %q: %w", name, err)
		}
	}

	return f.Write(w)
}

type styleSet struct {
	header int
	byFmt  map[Format]int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styleSet{}, err
	}

	currencyFmt, percentFmt := currencyNumFmt, percentNumFmt
	defs := map[Format]*excelize.Style{
		FormatCurrency: {CustomNumFmt: &currencyFmt},
		FormatPercent:  {CustomNumFmt: &percentFmt},
		FormatInteger:  {NumFmt: 1},
	}

	set := styleSet{header: header, byFmt: make(map[Format]int, len(defs))}
	for format, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return styleSet{}, err
		}
		set.byFmt[format] = id
	}
	return set, nil
}

func writeSheet(f *excelize.File, sheet string, table Table, styles styleSet) error {
	for col, column := range table.Schema.Columns {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if column.Width > 0 {
			if err := f.SetColWidth(sheet, colName, colName, column.Width); err != nil {
				return err
			}
		}

		cell := colName + "1"
		if err := f.SetCellValue(sheet, cell, column.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return err
		}

		if style, ok := styles.byFmt[column.Format]; ok && len(table.Rows) > 0 {
			last, err := excelize.CoordinatesToCellName(col+1, len(table.Rows)+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, colName+"2", last, style); err != nil {
				return err
			}
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			if value == nil {
				continue
			}
			if p, ok := value.(*float64); ok {
				if p == nil {
					continue
				}
				value = *p
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
