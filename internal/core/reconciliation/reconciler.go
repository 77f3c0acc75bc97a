// package reconciliation/reconciler.go
package reconciliation

import (
	"math"

	"reconciliation-service/internal/domain"
)

// Tolerance is the currency band below which a difference is attributed to rounding.
const Tolerance = 0.10

// EPSILON absorbs float noise when a difference sits exactly on the tolerance edge.
const EPSILON = 1e-9

// Reconcile compares the declared value of each reconciled tax against its expected value.
func Reconcile(doc domain.NormalizedDocument) domain.ReconciliationRow {
	return domain.ReconciliationRow{
		AccessKey:        doc.AccessKey,
		DocumentNumber:   doc.DocumentNumber,
		CounterpartyName: doc.CounterpartyName,
		TotalValue:       doc.TotalValue.Float(),
		PIS:              reconcileWithFallback(doc.PIS),
		COFINS:           reconcileWithFallback(doc.COFINS),
		IPI:              reconcileUpstream(doc.IPI),
		ICMS:             reconcileUpstream(doc.ICMS),
	}
}

// reconcileWithFallback classifies PIS/COFINS, whose expected value came from the normalizer.
func reconcileWithFallback(fields domain.TaxFields) domain.TaxReconciliation {
	result := compare(fields)

	switch {
	case fields.ExpectedValue == nil || result.Expected == 0:
		result.Cause = domain.CauseNoData
	case withinTolerance(result.Difference):
		result.Cause = domain.CauseRounding
	case fields.DeclaredRate != nil:
		result.Cause = domain.CauseDeclaredRateOnBase
	default:
		result.Cause = domain.CausePercentageOverTotal
	}
	return toCents(result)
}

// reconcileUpstream classifies IPI/ICMS, which have no local fallback rule.
func reconcileUpstream(fields domain.TaxFields) domain.TaxReconciliation {
	result := compare(fields)
	if withinTolerance(result.Difference) {
		result.Cause = domain.CauseOKRounding
	} else {
		result.Cause = domain.CauseDifference
	}
	return toCents(result)
}

func compare(fields domain.TaxFields) domain.TaxReconciliation {
	actual := fields.ActualValue.Float()
	expected := domain.OrZero(fields.ExpectedValue)
	return domain.TaxReconciliation{
		Actual:     actual,
		Expected:   expected,
		Difference: actual - expected,
	}
}

// toCents rounds the figures shown in the report. Causes are decided on the raw values.
func toCents(r domain.TaxReconciliation) domain.TaxReconciliation {
	r.Actual = round(r.Actual, 2)
	r.Expected = round(r.Expected, 2)
	r.Difference = round(r.Difference, 2)
	return r
}

func withinTolerance(diff float64) bool {
	return math.Abs(diff) <= Tolerance+EPSILON
}

// round rounds a float to the specified places.
func round(val float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(val*pow) / pow
}
