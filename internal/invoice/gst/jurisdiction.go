// Package gst implements the tax jurisdiction and amount computation rules
// for GST invoices. Everything here is pure: no clock, no database, no
// logging. Callers resolve master data first and pass plain values in.
package gst

import (
	"errors"
	"strings"
)

// Jurisdiction classifies a transaction for tax-bucket purposes.
// Export taxes like Interstate but keeps its own tag for reporting.
type Jurisdiction string

const (
	Intrastate Jurisdiction = "INTRASTATE"
	Interstate Jurisdiction = "INTERSTATE"
	Export     Jurisdiction = "EXPORT"
)

var (
	// ErrMissingGSTIN means the company registration number is absent or too
	// short to carry a state code. This is a configuration problem, never
	// silently defaulted.
	ErrMissingGSTIN = errors.New("missing_company_gstin")

	// ErrInvalidStateCode means a non-empty customer state code is not
	// exactly two characters.
	ErrInvalidStateCode = errors.New("invalid_state_code")
)

// SplitsTax reports whether the jurisdiction splits total tax into the two
// half-rate components (SGST + CGST).
func (j Jurisdiction) SplitsTax() bool { return j == Intrastate }

// Classify decides the tax regime from the company GSTIN and the customer
// state code. The company's state code is the first two characters of its
// GSTIN; a blank customer code means the customer is outside the country.
func Classify(companyGSTIN, customerStateCode string) (Jurisdiction, error) {
	customerCode := strings.TrimSpace(customerStateCode)
	if customerCode == "" {
		return Export, nil
	}
	if len(customerCode) != 2 {
		return "", ErrInvalidStateCode
	}

	gstin := strings.TrimSpace(companyGSTIN)
	if len(gstin) < 2 {
		return "", ErrMissingGSTIN
	}

	if gstin[:2] == customerCode {
		return Intrastate, nil
	}
	return Interstate, nil
}
