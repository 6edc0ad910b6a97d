// Package format derives display identifiers for invoices.
package format

import "fmt"

// BillNumber formats the display bill number from its four inputs:
// 4-digit company id, one digit for the tax flag, 6-digit sequence and
// 4-digit bill year, concatenated in that order. Longer values keep their
// last digits. The result is display-only; the invoice id stays the key.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func BillNumber(companyID int64, hasTax bool, seq int64, billYear int) string {
	flag := "0"
	if hasTax {
		flag = "1"
	}
	return lastN(fmt.Sprintf("%04d", companyID), 4) +
		flag +
		lastN(fmt.Sprintf("%06d", seq), 6) +
		lastN(fmt.Sprintf("%04d", billYear), 4)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
