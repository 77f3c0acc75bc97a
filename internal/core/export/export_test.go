package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"reconciliation-service/internal/core/export"
	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/domain"
)

var generatedAt = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func sampleDocs() []domain.FiscalDocument {
	return []domain.FiscalDocument{
		{
			AccessKey:        "35240512345678000199550010000001231000001234",
			DocumentNumber:   "123",
			DocumentType:     domain.TypeNFe,
			FlowDirection:    domain.Inbound,
			CounterpartyName: "Fornecedor São João",
			TotalValue:       10000,
			PIS:              domain.TaxFields{ActualValue: 165.05, ActualRate: 1.65, Flagged: true},
			COFINS:           domain.TaxFields{ActualValue: 700, ActualRate: 7.6},
			ICMS:             domain.TaxFields{ActualValue: 50, ActualRate: 18, ExpectedValue: domain.Amount(500).Ptr()},
			Year:             "2024",
		},
		{
			DocumentNumber:   "900",
			DocumentType:     domain.TypeCTe,
			FlowDirection:    domain.Outbound,
			CounterpartyName: "Transportadora\nNorte",
			CTeNumber:        "900",
			TotalValue:       250.5,
		},
	}
}

func sampleReport() domain.Report {
	docs := sampleDocs()
	rows := make([]domain.ReconciliationRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, reconciliation.Reconcile(reconciliation.Normalize(d)))
	}
	totals := reconciliation.Totals(docs)
	return domain.Report{
		ID:             "r1",
		GeneratedAt:    generatedAt,
		Documents:      docs,
		Reconciliation: rows,
		Summary:        reconciliation.SummaryRows(totals),
		Totals:         totals,
	}
}

func TestRendererFor(t *testing.T) {
	r, err := export.RendererFor("")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", r.Extension())

	r, err = export.RendererFor("CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", r.Extension())

	_, err = export.RendererFor("pdf")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "notas_fiscais_2024-05-01.xlsx", export.FileName("notas_fiscais", generatedAt, export.NewXLSXRenderer()))
	assert.Equal(t, "notas_fiscais_2024-05-01.csv", export.FileName("notas_fiscais", generatedAt, export.NewCSVRenderer()))
}

func TestSchemasMatchProjections(t *testing.T) {
	for _, table := range export.ReportTables(sampleReport()) {
		for i, row := range table.Rows {
			assert.Len(t, row, len(table.Schema.Columns), "%s row %d", table.Schema.SheetName, i)
		}
	}
	assert.Len(t, export.ReconciliationSchema.Columns, 4+4*len(domain.ReconciledTaxes))
	assert.Len(t, export.DocumentsSchema.Columns, 21)
}

func TestDocumentsTable(t *testing.T) {
	table := export.DocumentsTable(sampleDocs(), generatedAt)

	require.Len(t, table.Rows, 2)
	nfe, cte := table.Rows[0], table.Rows[1]

	assert.Equal(t, "01/05/2024", nfe[0])
	assert.Equal(t, "Entrada", nfe[1])
	assert.Equal(t, "123", nfe[3])
	assert.Equal(t, "", nfe[4])
	assert.Equal(t, "X", nfe[7])
	assert.Equal(t, "", nfe[10])

	assert.Equal(t, "Saída", cte[1])
	assert.Equal(t, "", cte[3], "CT-e has no NF-e number")
	assert.Equal(t, "900", cte[4])
}

func TestReconciliationTable_UppercasesCauses(t *testing.T) {
	table := export.ReconciliationTable(sampleReport().Reconciliation)

	require.Len(t, table.Rows, 2)
	row := table.Rows[0]
	assert.Equal(t, "ROUNDING", row[7], "PIS cause")
	assert.Equal(t, "PERCENTAGE OVER TOTAL", row[11], "COFINS cause")
	assert.Equal(t, "DIFFERENCE", row[19], "ICMS cause")
}

func TestXLSXRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewXLSXRenderer().Render(&buf, export.ReportTables(sampleReport())...)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.DocumentsSheet, export.ReconciliationSheet, export.SummarySheet}, f.GetSheetList())

	header, err := f.GetCellValue(export.DocumentsSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor/Cliente", header)

	name, err := f.GetCellValue(export.DocumentsSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Fornecedor São João", name)

	width, err := f.GetColWidth(export.DocumentsSheet, "C")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)

	label, err := f.GetCellValue(export.SummarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total de Documentos", label)

	count, err := f.GetCellValue(export.SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	blank, err := f.GetCellValue(export.SummarySheet, "B5")
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestXLSXRenderer_RejectsMismatchedRows(t *testing.T) {
	table := export.Table{
		Schema: export.SummarySchema,
		Rows:   [][]any{{"only one cell"}},
	}
	err := export.NewXLSXRenderer().Render(&bytes.Buffer{}, table)
	assert.Error(t, err)
}

func TestCSVRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewCSVRenderer().Render(&buf, export.SummaryTable(sampleReport().Summary), export.DocumentsTable(sampleDocs(), generatedAt))
	require.NoError(t, err)

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	text := string(decoded)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	assert.Equal(t, "Descrição;Valor", lines[0])
	assert.Equal(t, "Total de Documentos;2", lines[1])
	assert.Equal(t, ";", lines[4], "blank separator row")
	assert.Contains(t, text, "Valor Total Entradas;10000\n")
	assert.Contains(t, text, "Valor Total Saídas;250,5\n")
	assert.Contains(t, text, "\n\nData;Tipo NF;", "tables separated by a blank line")
	assert.Contains(t, text, "01/05/2024;Entrada;Fornecedor São João;123;;10000,00;165,05;X;7,60;")
	assert.Contains(t, text, "TransportadoraNorte", "embedded line breaks are removed")
}
