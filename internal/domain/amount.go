package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Amount is a monetary value or a percentage. It decodes from JSON numbers and
// from Brazilian formatted strings ("1.234,56", "R$ 10,00"). Anything that does
// not parse becomes zero.
type Amount float64

// Ptr returns a pointer to a, handy for optional fields.
func (a Amount) Ptr() *Amount {
	return &a
}

// Float returns the amount as float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// OrZero dereferences an optional amount, treating nil as zero.
func OrZero(a *Amount) float64 {
	if a == nil {
		return 0
	}
	return float64(*a)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(ParseBRLNumber(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// ParseBRLNumber parses numbers written either the Brazilian way (1.234,56) or
// the anglo way (1,234.56). Malformed input yields 0.
func ParseBRLNumber(val string) float64 {
	s := strings.TrimSpace(val)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return 0
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot > lastComma:
		s = strings.ReplaceAll(s, ",", "")
		if strings.Count(s, ".") > 1 {
			parts := strings.Split(s, ".")
			s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if neg {
		f = -f
	}
	return f
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// foldKey uppercases s, drops accents and anything that is not a letter or digit.
func foldKey(s string) string {
	result, _, _ := transform.String(foldTransformer, s)
	var b strings.Builder
	for _, r := range strings.ToUpper(result) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnmarshalText accepts the usual spellings of a flow direction, including the
// NF-e tpNF codes (0 = entrada, 1 = saída). Unknown values are kept verbatim.
func (f *FlowDirection) UnmarshalText(text []byte) error {
	switch foldKey(string(text)) {
	case "ENTRADA", "INBOUND", "IN", "0":
		*f = Inbound
	case "SAIDA", "OUTBOUND", "OUT", "1":
		*f = Outbound
	default:
		*f = FlowDirection(strings.TrimSpace(string(text)))
	}
	return nil
}

// UnmarshalText accepts "NF-e", "nfe", "55" and similar spellings.
func (t *DocumentType) UnmarshalText(text []byte) error {
	switch foldKey(string(text)) {
	case "NFE", "55":
		*t = TypeNFe
	case "CTE", "57":
		*t = TypeCTe
	default:
		*t = DocumentType(strings.TrimSpace(string(text)))
	}
	return nil
}
