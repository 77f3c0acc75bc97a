// package export/tables.go
package export

import (
	"time"

	"reconciliation-service/internal/domain"
)

// Sheet names of the report workbook.
const (
	DocumentsSheet      = "Notas Fiscais"
	ReconciliationSheet = "Conciliação"
	SummarySheet        = "Resumo"
)

// DocumentsSchema is the layout of the document listing.
var DocumentsSchema = TableSchema{
	SheetName: DocumentsSheet,
	Columns: []Column{
		{Header: "Data", Width: 12, Format: FormatText},
		{Header: "Tipo NF", Width: 10, Format: FormatText},
		{Header: "Fornecedor/Cliente", Width: 40, Format: FormatText},
		{Header: "Nº NF-e", Width: 12, Format: FormatText},
		{Header: "Nº CT-e", Width: 12, Format: FormatText},
		{Header: "Valor", Width: 15, Format: FormatCurrency},
		{Header: "PIS", Width: 12, Format: FormatCurrency},
		{Header: "P", Width: 4, Format: FormatText},
		{Header: "Alíq. COF", Width: 10, Format: FormatPercent},
		{Header: "COFINS", Width: 12, Format: FormatCurrency},
		{Header: "C", Width: 4, Format: FormatText},
		{Header: "Alíq. IPI", Width: 10, Format: FormatPercent},
		{Header: "IPI", Width: 12, Format: FormatCurrency},
		{Header: "I", Width: 4, Format: FormatText},
		{Header: "Alíq. ICMS", Width: 10, Format: FormatPercent},
		{Header: "ICMS", Width: 12, Format: FormatCurrency},
		{Header: "IC", Width: 4, Format: FormatText},
		{Header: "Alíq. DIFAL", Width: 10, Format: FormatPercent},
		{Header: "DIFAL", Width: 12, Format: FormatCurrency},
		{Header: "Ano", Width: 6, Format: FormatText},
		{Header: "Reduz ICMS", Width: 12, Format: FormatCurrency},
	},
}

// SummarySchema is the layout of the summary sheet.
var SummarySchema = TableSchema{
	SheetName: SummarySheet,
	Columns: []Column{
		{Header: "Descrição", Width: 25, Format: FormatText},
		{Header: "Valor", Width: 18, Format: FormatGeneral},
	},
}

// ReconciliationSchema is the layout of the reconciliation sheet: identity columns
// followed by declared, expected, difference and cause for each reconciled tax.
var ReconciliationSchema = buildReconciliationSchema()

func buildReconciliationSchema() TableSchema {
	columns := []Column{
		{Header: "Chave de Acesso", Width: 46, Format: FormatText},
		{Header: "Nº Documento", Width: 12, Format: FormatText},
		{Header: "Fornecedor/Cliente", Width: 40, Format: FormatText},
		{Header: "Valor", Width: 15, Format: FormatCurrency},
	}
	for _, tax := range domain.ReconciledTaxes {
		name := string(tax)
		columns = append(columns,
			Column{Header: name + " Declarado", Width: 14, Format: FormatCurrency},
			Column{Header: name + " Esperado", Width: 14, Format: FormatCurrency},
			Column{Header: name + " Diferença", Width: 14, Format: FormatCurrency},
			Column{Header: name + " Causa", Width: 26, Format: FormatText},
		)
	}
	return TableSchema{SheetName: ReconciliationSheet, Columns: columns}
}

// DocumentsTable projects documents onto DocumentsSchema. date fills the "Data" column.
func DocumentsTable(docs []domain.FiscalDocument, date time.Time) Table {
	today := date.Format("02/01/2006")
	rows := make([][]any, 0, len(docs))
	for _, doc := range docs {
		nfeNumber := ""
		if doc.DocumentType == domain.TypeNFe {
			nfeNumber = doc.DocumentNumber
		}
		cteNumber := doc.CTeNumber
		if cteNumber == "" {
			cteNumber = doc.ReferencedNFe
		}

		rows = append(rows, []any{
			today,
			string(doc.FlowDirection),
			doc.CounterpartyName,
			nfeNumber,
			cteNumber,
			doc.TotalValue.Float(),
			doc.PIS.ActualValue.Float(),
			flag(doc.PIS.Flagged),
			doc.COFINS.ActualRate.Float(),
			doc.COFINS.ActualValue.Float(),
			flag(doc.COFINS.Flagged),
			doc.IPI.ActualRate.Float(),
			doc.IPI.ActualValue.Float(),
			flag(doc.IPI.Flagged),
			doc.ICMS.ActualRate.Float(),
			doc.ICMS.ActualValue.Float(),
			flag(doc.ICMS.Flagged),
			doc.DIFAL.ActualRate.Float(),
			doc.DIFAL.ActualValue.Float(),
			doc.Year,
			doc.ICMSReduction.Float(),
		})
	}
	return Table{Schema: DocumentsSchema, Rows: rows}
}

func flag(set bool) string {
	if set {
		return "X"
	}
	return ""
}

// ReconciliationTable projects reconciliation rows onto ReconciliationSchema.
// Causes are written in their upper-cased display form.
func ReconciliationTable(recs []domain.ReconciliationRow) Table {
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		row := []any{rec.AccessKey, rec.DocumentNumber, rec.CounterpartyName, rec.TotalValue}
		for _, tax := range domain.ReconciledTaxes {
			t := rec.Tax(tax)
			row = append(row, t.Actual, t.Expected, t.Difference, t.Cause.Label())
		}
		rows = append(rows, row)
	}
	return Table{Schema: ReconciliationSchema, Rows: rows}
}

// SummaryTable projects summary rows onto SummarySchema.
func SummaryTable(summary []domain.SummaryRow) Table {
	rows := make([][]any, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []any{s.Label, s.Value})
	}
	return Table{Schema: SummarySchema, Rows: rows}
}

// ReportTables returns every table of a report in workbook order.
func ReportTables(report domain.Report) []Table {
	return []Table{
		DocumentsTable(report.Documents, report.GeneratedAt),
		ReconciliationTable(report.Reconciliation),
		SummaryTable(report.Summary),
	}
}
