// Package pdf renders printable invoices and ledger statements.
package pdf

import (
	"context"

	"go.uber.org/fx"
)

// InvoiceData carries the already-formatted strings the invoice layout
// prints. Amount formatting happens before rendering, never inside it.
type InvoiceData struct {
	CompanyName    string
	CompanyAddress string
	CompanyGSTIN   string
	BankDetails    string

	BillNumber string
	BillDate   string

	CustomerName    string
	CustomerAddress string
	CustomerGSTIN   string

	Items []InvoiceItemData

	AssessableValue string
	SGST            string
	CGST            string
	IGST            string
	GrandTotal      string
}

type InvoiceItemData struct {
	Name     string
	HSNCode  string
	Quantity string
	UnitRate string
	Total    string
}

// LedgerData carries one reconciled statement. Inactive cells hold "" and
// render blank, never "0.00".
type LedgerData struct {
	CustomerName string
	Period       string

	OpeningBalance string
	Rows           []LedgerRowData
	ClosingBalance string
}

type LedgerRowData struct {
	Date      string
	Reference string
	Debited   string
	Credited  string
	Balance   string
}

// ReportData carries a period-wise invoice summary: one row per invoice
// plus the summed GST buckets. Amounts arrive formatted like the other
// layouts.
type ReportData struct {
	CompanyName  string
	CompanyGSTIN string
	Period       string
	GeneratedOn  string

	Rows []ReportRowData

	TotalInvoices   string
	TotalAssessable string
	TotalSGST       string
	TotalCGST       string
	TotalIGST       string
	GrandTotal      string
}

type ReportRowData struct {
	BillNumber   string
	BillDate     string
	CustomerName string
	Assessable   string
	SGST         string
	CGST         string
	IGST         string
}

type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) ([]byte, error)
	GenerateLedger(ctx context.Context, data LedgerData) ([]byte, error)
	GenerateBillReport(ctx context.Context, data ReportData) ([]byte, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
