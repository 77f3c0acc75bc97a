// package reconciliation/normalizer.go
package reconciliation

import "reconciliation-service/internal/domain"

// fallbackTaxes are the taxes that get an expected value computed locally.
// IPI and ICMS rely on values supplied upstream.
var fallbackTaxes = []domain.Tax{domain.TaxPIS, domain.TaxCOFINS}

// Normalize fills the expected PIS and COFINS values of doc when they are absent.
//
// The first satisfied rule wins:
//  1. an expected value already present (per-item sum) is kept as is;
//  2. rate = declared rate, else actual rate, else 0;
//  3. base amount > 0 and rate > 0: base × rate/100;
//  4. otherwise: total value × rate/100.
func Normalize(doc domain.FiscalDocument) domain.NormalizedDocument {
	for _, tax := range fallbackTaxes {
		fields := doc.Tax(tax)
		if fields.ExpectedValue != nil {
			continue
		}
		fields.ExpectedValue = expectedValue(fields, doc.TotalValue.Float()).Ptr()
		doc = doc.WithTax(tax, fields)
	}
	return domain.NormalizedDocument{FiscalDocument: doc}
}

func expectedValue(fields domain.TaxFields, totalValue float64) domain.Amount {
	rate := fields.ActualRate.Float()
	if fields.DeclaredRate != nil {
		rate = fields.DeclaredRate.Float()
	}

	if base := domain.OrZero(fields.BaseAmount); base > 0 && rate > 0 {
		return domain.Amount(base * (rate / 100))
	}
	return domain.Amount(totalValue * (rate / 100))
}
