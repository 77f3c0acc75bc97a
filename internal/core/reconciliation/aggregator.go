// package reconciliation/aggregator.go
package reconciliation

import "reconciliation-service/internal/domain"

// Totals computes counts and sums over docs, split by document type and flow direction.
// Documents whose direction is neither inbound nor outbound only count towards the overall figures.
func Totals(docs []domain.FiscalDocument) domain.Totals {
	var totals domain.Totals
	totals.Documents = len(docs)

	for _, doc := range docs {
		switch doc.DocumentType {
		case domain.TypeNFe:
			totals.NFe++
		case domain.TypeCTe:
			totals.CTe++
		}

		accumulate(&totals.Overall, doc)
		switch doc.FlowDirection {
		case domain.Inbound:
			accumulate(&totals.Inbound, doc)
		case domain.Outbound:
			accumulate(&totals.Outbound, doc)
		}
	}

	roundTotals(&totals.Overall)
	roundTotals(&totals.Inbound)
	roundTotals(&totals.Outbound)
	return totals
}

func accumulate(t *domain.DirectionTotals, doc domain.FiscalDocument) {
	t.Count++
	t.TotalValue += doc.TotalValue.Float()
	t.ICMS += doc.ICMS.ActualValue.Float()
	t.PIS += doc.PIS.ActualValue.Float()
	t.COFINS += doc.COFINS.ActualValue.Float()
	t.IPI += doc.IPI.ActualValue.Float()
	t.DIFAL += doc.DIFAL.ActualValue.Float()
}

func roundTotals(t *domain.DirectionTotals) {
	t.TotalValue = round(t.TotalValue, 2)
	t.ICMS = round(t.ICMS, 2)
	t.PIS = round(t.PIS, 2)
	t.COFINS = round(t.COFINS, 2)
	t.IPI = round(t.IPI, 2)
	t.DIFAL = round(t.DIFAL, 2)
}

// Summarize renders the totals of docs as the ordered rows of the summary sheet.
// The row order is part of the report layout and must not change.
func Summarize(docs []domain.FiscalDocument) []domain.SummaryRow {
	return SummaryRows(Totals(docs))
}

// SummaryRows lays out already computed totals.
func SummaryRows(totals domain.Totals) []domain.SummaryRow {
	rows := []domain.SummaryRow{
		valueRow("Total de Documentos", float64(totals.Documents)),
		valueRow("Total NF-e", float64(totals.NFe)),
		valueRow("Total CT-e", float64(totals.CTe)),
		blankRow(""),
		blankRow("--- ENTRADAS ---"),
	}
	rows = append(rows, directionRows("Entradas", totals.Inbound)...)
	rows = append(rows, blankRow(""), blankRow("--- SAÍDAS ---"))
	rows = append(rows, directionRows("Saídas", totals.Outbound)...)
	return rows
}

func directionRows(suffix string, t domain.DirectionTotals) []domain.SummaryRow {
	return []domain.SummaryRow{
		valueRow("Qtd. "+suffix, float64(t.Count)),
		valueRow("Valor Total "+suffix, t.TotalValue),
		valueRow("ICMS "+suffix, t.ICMS),
		valueRow("PIS "+suffix, t.PIS),
		valueRow("COFINS "+suffix, t.COFINS),
		valueRow("IPI "+suffix, t.IPI),
		valueRow("DIFAL "+suffix, t.DIFAL),
	}
}

func valueRow(label string, v float64) domain.SummaryRow {
	return domain.SummaryRow{Label: label, Value: &v}
}

func blankRow(label string) domain.SummaryRow {
	return domain.SummaryRow{Label: label}
}
