package reconciliation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/domain"
)

var summaryLabels = []string{
	"Total de Documentos",
	"Total NF-e",
	"Total CT-e",
	"",
	"--- ENTRADAS ---",
	"Qtd. Entradas",
	"Valor Total Entradas",
	"ICMS Entradas",
	"PIS Entradas",
	"COFINS Entradas",
	"IPI Entradas",
	"DIFAL Entradas",
	"",
	"--- SAÍDAS ---",
	"Qtd. Saídas",
	"Valor Total Saídas",
	"ICMS Saídas",
	"PIS Saídas",
	"COFINS Saídas",
	"IPI Saídas",
	"DIFAL Saídas",
}

func summaryValues(rows []domain.SummaryRow) map[string]float64 {
	values := make(map[string]float64, len(rows))
	for _, r := range rows {
		if r.Value != nil {
			values[r.Label] = *r.Value
		}
	}
	return values
}

func TestSummarize_RowOrder(t *testing.T) {
	rows := reconciliation.Summarize(nil)

	require.Len(t, rows, len(summaryLabels))
	for i, label := range summaryLabels {
		assert.Equal(t, label, rows[i].Label, "row %d", i)
	}
	for _, i := range []int{3, 4, 12, 13} {
		assert.Nil(t, rows[i].Value, "row %d should be blank", i)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	rows := reconciliation.Summarize([]domain.FiscalDocument{})

	for _, r := range rows {
		if r.Value != nil {
			assert.Zero(t, *r.Value, r.Label)
		}
	}
}

func TestSummarize_InboundOnly(t *testing.T) {
	docs := []domain.FiscalDocument{
		{DocumentType: domain.TypeNFe, FlowDirection: domain.Inbound, TotalValue: 100},
		{DocumentType: domain.TypeNFe, FlowDirection: domain.Inbound, TotalValue: 200},
		{DocumentType: domain.TypeCTe, FlowDirection: domain.Inbound, TotalValue: 300},
	}

	values := summaryValues(reconciliation.Summarize(docs))

	assert.Equal(t, 3.0, values["Total de Documentos"])
	assert.Equal(t, 2.0, values["Total NF-e"])
	assert.Equal(t, 1.0, values["Total CT-e"])
	assert.Equal(t, 3.0, values["Qtd. Entradas"])
	assert.Equal(t, 600.0, values["Valor Total Entradas"])
	for _, label := range summaryLabels[14:] {
		assert.Zero(t, values[label], label)
	}
}

func TestTotals_SumsTaxesPerDirection(t *testing.T) {
	docs := []domain.FiscalDocument{
		{
			DocumentType:  domain.TypeNFe,
			FlowDirection: domain.Inbound,
			TotalValue:    1000,
			ICMS:          domain.TaxFields{ActualValue: 180},
			PIS:           domain.TaxFields{ActualValue: 16.5},
			COFINS:        domain.TaxFields{ActualValue: 76},
			IPI:           domain.TaxFields{ActualValue: 50},
			DIFAL:         domain.TaxFields{ActualValue: 10},
		},
		{
			DocumentType:  domain.TypeNFe,
			FlowDirection: domain.Outbound,
			TotalValue:    0.1,
			ICMS:          domain.TaxFields{ActualValue: 0.2},
		},
		{
			DocumentType:  domain.TypeNFe,
			FlowDirection: domain.Outbound,
			TotalValue:    0.2,
			ICMS:          domain.TaxFields{ActualValue: 0.1},
			PIS:           domain.TaxFields{ActualValue: 1},
		},
		{
			DocumentType:  domain.TypeCTe,
			FlowDirection: "desconhecida",
			TotalValue:    999,
		},
	}

	totals := reconciliation.Totals(docs)

	assert.Equal(t, 4, totals.Documents)
	assert.Equal(t, 3, totals.NFe)
	assert.Equal(t, 1, totals.CTe)
	assert.Equal(t, domain.DirectionTotals{Count: 1, TotalValue: 1000, ICMS: 180, PIS: 16.5, COFINS: 76, IPI: 50, DIFAL: 10}, totals.Inbound)
	assert.Equal(t, domain.DirectionTotals{Count: 2, TotalValue: 0.3, ICMS: 0.3, PIS: 1}, totals.Outbound)
	assert.Equal(t, 4, totals.Overall.Count)
	assert.Equal(t, 1999.3, totals.Overall.TotalValue)
}
