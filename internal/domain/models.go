// package domain/models.go
package domain

import "time"

// DocumentType identifies the fiscal document family.
type DocumentType string

// Constants for document types.
const (
	TypeNFe DocumentType = "NF-e"
	TypeCTe DocumentType = "CT-e"
)

// FlowDirection tells whether a document is an inbound or an outbound operation.
type FlowDirection string

// Constants for flow directions.
const (
	Inbound  FlowDirection = "Entrada"
	Outbound FlowDirection = "Saída"
)

// Tax names a tax category carried by a fiscal document.
type Tax string

// Constants for the taxes tracked on a document.
const (
	TaxPIS    Tax = "PIS"
	TaxCOFINS Tax = "COFINS"
	TaxIPI    Tax = "IPI"
	TaxICMS   Tax = "ICMS"
	TaxDIFAL  Tax = "DIFAL"
)

// ReconciledTaxes lists, in report order, the taxes that get an expected value.
var ReconciledTaxes = []Tax{TaxPIS, TaxCOFINS, TaxIPI, TaxICMS}

// TaxFields holds the declared and expected figures of one tax on a document.
// Pointer fields are optional: nil means "not present", which is not the same as zero.
type TaxFields struct {
	ActualValue   Amount  `json:"actual_value"`
	ActualRate    Amount  `json:"actual_rate"`
	DeclaredRate  *Amount `json:"declared_rate,omitempty"`
	BaseAmount    *Amount `json:"base_amount,omitempty"`
	ExpectedValue *Amount `json:"expected_value,omitempty"`
	Flagged       bool    `json:"flagged,omitempty"`
}

// FiscalDocument is a parsed NF-e/CT-e record. The engine never mutates it.
type FiscalDocument struct {
	AccessKey        string        `json:"access_key"`
	DocumentNumber   string        `json:"document_number"`
	DocumentType     DocumentType  `json:"document_type"`
	FlowDirection    FlowDirection `json:"flow_direction"`
	CounterpartyName string        `json:"counterparty_name"`
	TotalValue       Amount        `json:"total_value"`

	PIS    TaxFields `json:"pis"`
	COFINS TaxFields `json:"cofins"`
	IPI    TaxFields `json:"ipi"`
	ICMS   TaxFields `json:"icms"`
	DIFAL  TaxFields `json:"difal"`

	CTeNumber     string `json:"cte_number,omitempty"`
	ReferencedNFe string `json:"referenced_nfe,omitempty"`
	Year          string `json:"year,omitempty"`
	ICMSReduction Amount `json:"icms_reduction,omitempty"`
}

// Tax returns the fields of the given tax.
func (d FiscalDocument) Tax(t Tax) TaxFields {
	switch t {
	case TaxPIS:
		return d.PIS
	case TaxCOFINS:
		return d.COFINS
	case TaxIPI:
		return d.IPI
	case TaxICMS:
		return d.ICMS
	case TaxDIFAL:
		return d.DIFAL
	}
	return TaxFields{}
}

// WithTax returns a copy of the document with the fields of t replaced.
func (d FiscalDocument) WithTax(t Tax, f TaxFields) FiscalDocument {
	switch t {
	case TaxPIS:
		d.PIS = f
	case TaxCOFINS:
		d.COFINS = f
	case TaxIPI:
		d.IPI = f
	case TaxICMS:
		d.ICMS = f
	case TaxDIFAL:
		d.DIFAL = f
	}
	return d
}

// NormalizedDocument is a FiscalDocument whose PIS and COFINS expected values are always set.
type NormalizedDocument struct {
	FiscalDocument
}

// Cause explains a difference between the declared and the expected value of a tax.
type Cause string

// Cause codes assigned by the reconciler.
const (
	CauseNoData              Cause = "no data"
	CauseRounding            Cause = "rounding"
	CauseDeclaredRateOnBase  Cause = "declared rate over base"
	CausePercentageOverTotal Cause = "percentage over total"
	CauseOKRounding          Cause = "ok/rounding"
	CauseDifference          Cause = "difference"
)

// TaxReconciliation is the actual-vs-expected comparison of one tax.
type TaxReconciliation struct {
	Actual     float64 `json:"actual"`
	Expected   float64 `json:"expected"`
	Difference float64 `json:"difference"`
	Cause      Cause   `json:"cause"`
}

// ReconciliationRow is the reconciliation of one document.
type ReconciliationRow struct {
	AccessKey        string            `json:"access_key"`
	DocumentNumber   string            `json:"document_number"`
	CounterpartyName string            `json:"counterparty_name"`
	TotalValue       float64           `json:"total_value"`
	PIS              TaxReconciliation `json:"pis"`
	COFINS           TaxReconciliation `json:"cofins"`
	IPI              TaxReconciliation `json:"ipi"`
	ICMS             TaxReconciliation `json:"icms"`
}

// Tax returns the reconciliation of the given tax.
func (r ReconciliationRow) Tax(t Tax) TaxReconciliation {
	switch t {
	case TaxPIS:
		return r.PIS
	case TaxCOFINS:
		return r.COFINS
	case TaxIPI:
		return r.IPI
	case TaxICMS:
		return r.ICMS
	}
	return TaxReconciliation{}
}

// SummaryRow is a labeled line of the summary sheet. A nil Value renders blank.
type SummaryRow struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// DirectionTotals holds the count and sums of a set of documents.
type DirectionTotals struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
	ICMS       float64 `json:"icms"`
	PIS        float64 `json:"pis"`
	COFINS     float64 `json:"cofins"`
	IPI        float64 `json:"ipi"`
	DIFAL      float64 `json:"difal"`
}

// Totals is the aggregated view of a document set.
type Totals struct {
	Documents int             `json:"documents"`
	NFe       int             `json:"nfe"`
	CTe       int             `json:"cte"`
	Inbound   DirectionTotals `json:"inbound"`
	Outbound  DirectionTotals `json:"outbound"`
	Overall   DirectionTotals `json:"overall"`
}

// Report bundles every table produced for one batch of documents.
type Report struct {
	ID             string              `json:"report_id"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Documents      []FiscalDocument    `json:"-"`
	Reconciliation []ReconciliationRow `json:"reconciliation"`
	Summary        []SummaryRow        `json:"summary"`
	Totals         Totals              `json:"totals"`
	Duplicates     []FiscalDocument    `json:"duplicates,omitempty"`
}
