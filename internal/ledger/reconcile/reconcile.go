// Package reconcile rebuilds a customer's running-balance ledger from the
// invoice and payment history. Everything here is pure: callers load the
// history and pass it in, so the same inputs always produce the same rows.
package reconcile

import (
	"errors"
	"sort"
	"time"

	"github.com/saralbooks/saral/internal/money"
)

// ErrInvalidRange means the query window ends before it starts.
var ErrInvalidRange = errors.New("invalid_date_range")

// EntryKind tags a ledger row by its source transaction.
type EntryKind string

const (
	KindInvoice EntryKind = "invoice"
	KindPayment EntryKind = "payment"
)

// Entry is one historical transaction. Invoices debit the account for the
// invoice grand total; payments credit it for the paid amount.
type Entry struct {
	Date      time.Time
	Reference string
	Amount    money.Paise
	Kind      EntryKind
}

// Row is one line of the reconstructed ledger. Exactly one of Debited or
// Credited is set; renderers show the other side blank, not zero.
type Row struct {
	Seq       int
	Date      time.Time
	Reference string
	Kind      EntryKind
	Debited   money.Paise
	Credited  money.Paise
	Balance   money.Paise
}

// Statement is the reconciled ledger for one query window.
type Statement struct {
	OpeningDate    *time.Time
	OpeningBalance money.Paise
	Rows           []Row
	ClosingBalance money.Paise
}

// Reconcile merges invoices and payments into a chronological running
// balance. When from is set, the opening balance absorbs every transaction
// dated before the window: opening + invoices-before − payments-before.
// Filtering is by calendar date, inclusive on both ends. Ties on the same
// date keep invoices before payments, in input order, so output is
// deterministic.
func Reconcile(opening money.Paise, invoices, payments []Entry, from, to *time.Time) (Statement, error) {
	var fromDay, toDay *time.Time
	if from != nil {
		d := dateOf(*from)
		fromDay = &d
	}
	if to != nil {
		d := dateOf(*to)
		toDay = &d
	}
	if fromDay != nil && toDay != nil && toDay.Before(*fromDay) {
		return Statement{}, ErrInvalidRange
	}

	adjusted := opening
	if fromDay != nil {
		for _, inv := range invoices {
			if dateOf(inv.Date).Before(*fromDay) {
				adjusted += inv.Amount
			}
		}
		for _, pay := range payments {
			if dateOf(pay.Date).Before(*fromDay) {
				adjusted -= pay.Amount
			}
		}
	}

	merged := make([]Entry, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		if inWindow(inv.Date, fromDay, toDay) {
			inv.Kind = KindInvoice
			merged = append(merged, inv)
		}
	}
	for _, pay := range payments {
		if inWindow(pay.Date, fromDay, toDay) {
			pay.Kind = KindPayment
			merged = append(merged, pay)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return dateOf(merged[i].Date).Before(dateOf(merged[j].Date))
	})

	stmt := Statement{
		OpeningDate:    fromDay,
		OpeningBalance: adjusted,
		ClosingBalance: adjusted,
	}

	running := adjusted
	for i, entry := range merged {
		row := Row{
			Seq:       i + 1,
			Date:      dateOf(entry.Date),
			Reference: entry.Reference,
			Kind:      entry.Kind,
		}
		if entry.Kind == KindInvoice {
			row.Debited = entry.Amount
		} else {
			row.Credited = entry.Amount
		}
		running += row.Debited - row.Credited
		row.Balance = running
		stmt.Rows = append(stmt.Rows, row)
	}
	stmt.ClosingBalance = running

	return stmt, nil
}

func inWindow(t time.Time, from, to *time.Time) bool {
	d := dateOf(t)
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// dateOf strips the time-of-day component; ledger queries work on ISO
// calendar dates.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
