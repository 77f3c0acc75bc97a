package reconciliation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/domain"
)

func amt(v float64) *domain.Amount {
	return domain.Amount(v).Ptr()
}

func TestNormalize_PISFallbackChain(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		pis   domain.TaxFields
		want  float64
	}{
		{
			name:  "upstream expected value wins over rate and base",
			total: 5000,
			pis:   domain.TaxFields{ExpectedValue: amt(42), ActualRate: 2, DeclaredRate: amt(7), BaseAmount: amt(1000)},
			want:  42,
		},
		{
			name:  "rate applied to base amount before total",
			total: 5000,
			pis:   domain.TaxFields{ActualRate: 2, BaseAmount: amt(1000)},
			want:  20,
		},
		{
			name:  "rate applied to total when base is absent",
			total: 10000,
			pis:   domain.TaxFields{ActualRate: 1.65},
			want:  165,
		},
		{
			name:  "declared rate takes precedence over actual rate",
			total: 1000,
			pis:   domain.TaxFields{ActualRate: 1, DeclaredRate: amt(3)},
			want:  30,
		},
		{
			name:  "zero base falls back to total",
			total: 1000,
			pis:   domain.TaxFields{ActualRate: 2, BaseAmount: amt(0)},
			want:  20,
		},
		{
			name:  "base ignored when rate is zero",
			total: 1000,
			pis:   domain.TaxFields{BaseAmount: amt(500)},
			want:  0,
		},
		{
			name:  "no rate at all yields zero",
			total: 1000,
			pis:   domain.TaxFields{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.FiscalDocument{TotalValue: domain.Amount(tt.total), PIS: tt.pis}
			got := reconciliation.Normalize(doc)

			require.NotNil(t, got.PIS.ExpectedValue)
			assert.InDelta(t, tt.want, got.PIS.ExpectedValue.Float(), 1e-9)
		})
	}
}

func TestNormalize_COFINSUsesSameChain(t *testing.T) {
	doc := domain.FiscalDocument{
		TotalValue: 10000,
		COFINS:     domain.TaxFields{ActualRate: 7.6, BaseAmount: amt(2000)},
	}

	got := reconciliation.Normalize(doc)

	require.NotNil(t, got.COFINS.ExpectedValue)
	assert.InDelta(t, 152, got.COFINS.ExpectedValue.Float(), 1e-9)
}

func TestNormalize_LeavesIPIAndICMSUntouched(t *testing.T) {
	doc := domain.FiscalDocument{
		TotalValue: 1000,
		IPI:        domain.TaxFields{ActualRate: 10, ActualValue: 100},
		ICMS:       domain.TaxFields{ActualRate: 18, ExpectedValue: amt(180)},
	}

	got := reconciliation.Normalize(doc)

	assert.Nil(t, got.IPI.ExpectedValue)
	require.NotNil(t, got.ICMS.ExpectedValue)
	assert.Equal(t, 180.0, got.ICMS.ExpectedValue.Float())
}

func TestNormalize_Idempotent(t *testing.T) {
	docs := []domain.FiscalDocument{
		{TotalValue: 10000, PIS: domain.TaxFields{ActualRate: 1.65}, COFINS: domain.TaxFields{ActualRate: 7.6}},
		{TotalValue: 5000, PIS: domain.TaxFields{ActualRate: 2, BaseAmount: amt(1000)}, COFINS: domain.TaxFields{DeclaredRate: amt(3)}},
		{TotalValue: 0},
	}

	for _, doc := range docs {
		once := reconciliation.Normalize(doc)
		twice := reconciliation.Normalize(once.FiscalDocument)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	doc := domain.FiscalDocument{TotalValue: 1000, PIS: domain.TaxFields{ActualRate: 1}}

	_ = reconciliation.Normalize(doc)

	assert.Nil(t, doc.PIS.ExpectedValue)
}
