package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is the display form of the cause used in reports.
// A Caser keeps state, so one is built per call.
func (c Cause) Label() string {
	return cases.Upper(language.BrazilianPortuguese).String(string(c))
}
