package gst

import (
	"errors"
	"fmt"

	"github.com/saralbooks/saral/internal/money"
)

var (
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidUnitRate = errors.New("invalid_unit_rate")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
)

// Line holds the computed amounts for one invoice line, all in paise.
type Line struct {
	Base  money.Paise // quantity × unit rate, pre-tax
	Tax   money.Paise
	Total money.Paise
}

// ComputeLine computes tax and total for a single line item.
// Tax rounds half-up to the paisa; downstream aggregates sum these rounded
// line amounts rather than recomputing from an unrounded total, so invoice
// totals tie out to the paisa against the printed lines.
//
// Tax-exempt overrides (exempt customer, invoice issued without tax) must
// be applied by the caller as rate = 0 before calling.
func ComputeLine(unitRate money.Paise, quantity int64, rate money.BasisPoints) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if unitRate < 0 {
		return Line{}, ErrInvalidUnitRate
	}
	if rate < 0 {
		return Line{}, ErrInvalidTaxRate
	}

	base := money.Paise(quantity) * unitRate
	tax := money.ApplyRate(base, rate)
	return Line{
		Base:  base,
		Tax:   tax,
		Total: base + tax,
	}, nil
}

// Totals is the invoice-level aggregate with the jurisdiction-dependent
// tax split.
type Totals struct {
	Assessable money.Paise
	TotalTax   money.Paise
	SGST       money.Paise
	CGST       money.Paise
	IGST       money.Paise
	Grand      money.Paise
}

// Aggregate sums computed lines and splits total tax by jurisdiction.
// Intrastate splits tax into equal halves; when the total is an odd number
// of paise the extra paisa goes to CGST so the halves still sum exactly.
// Interstate and Export carry the whole tax as IGST.
//
// The invariant grand == assessable + sgst + cgst + igst holds exactly in
// integer paise. A violation is a programming error and panics.
func Aggregate(lines []Line, jurisdiction Jurisdiction) Totals {
	var assessable, totalTax money.Paise
	for _, line := range lines {
		assessable += line.Base
		totalTax += line.Tax
	}

	t := Totals{
		Assessable: assessable,
		TotalTax:   totalTax,
		Grand:      assessable + totalTax,
	}

	if jurisdiction.SplitsTax() {
		t.SGST = totalTax / 2
		t.CGST = totalTax - t.SGST
	} else {
		t.IGST = totalTax
	}

	if sum := t.Assessable + t.SGST + t.CGST + t.IGST; sum != t.Grand {
		panic(fmt.Sprintf("gst: totals invariant violated: %s + buckets = %s, grand = %s",
			t.Assessable, sum, t.Grand))
	}

	return t
}
