package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/invoice/gst"
	"github.com/saralbooks/saral/pkg/db/pagination"
)

// CreateInvoiceItemRequest carries one line keyed in at billing time.
// UnitRate is rupees; ProductID is optional and only links the catalog
// entry, the line always snapshots its own name, HSN and rate.
type CreateInvoiceItemRequest struct {
	ProductID *string
	Name      string
	HSNCode   string
	UOM       string
	Quantity  int64
	UnitRate  float64
}

type CreateInvoiceRequest struct {
	CompanyID  string
	CustomerID string
	TaxTierID  string
	WithTax    bool
	BillDate   time.Time
	Remarks    string
	Items      []CreateInvoiceItemRequest
}

// UpdateInvoiceRequest replaces the mutable parts of an invoice and
// recomputes every derived amount. The bill number, sequence and year
// never change after creation.
type UpdateInvoiceRequest struct {
	ID         string
	CustomerID *string
	TaxTierID  *string
	WithTax    *bool
	BillDate   *time.Time
	Remarks    *string
	Items      []CreateInvoiceItemRequest
}

type ListInvoiceRequest struct {
	PageToken  string
	PageSize   int32
	CompanyID  string
	CustomerID string
	Search     string
	From       *time.Time
	To         *time.Time
}

type ListInvoiceFilter struct {
	CompanyID  string
	CustomerID string
	Search     string
	From       *time.Time
	To         *time.Time
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// ReportRequest scopes a period-wise invoice summary for one company.
// CustomerID narrows the report to a single party when set.
type ReportRequest struct {
	CompanyID  string
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// ReportRow is one invoice on the bill report. CustomerName is joined in
// at query time; the amounts are the stored columns, never recomputed.
type ReportRow struct {
	BillNumber      string           `json:"bill_number"`
	BillDate        time.Time        `json:"bill_date"`
	CustomerName    string           `json:"customer_name"`
	Jurisdiction    gst.Jurisdiction `json:"jurisdiction"`
	AssessableValue int64            `json:"assessable_value"`
	SGST            int64            `json:"sgst"`
	CGST            int64            `json:"cgst"`
	IGST            int64            `json:"igst"`
	GrandTotal      int64            `json:"grand_total"`
}

// Report is a period-wise invoice summary with per-bucket GST totals, the
// shape a filing return works from.
type Report struct {
	CompanyID       snowflake.ID `json:"company_id"`
	CompanyName     string       `json:"company_name"`
	From            *time.Time   `json:"from,omitempty"`
	To              *time.Time   `json:"to,omitempty"`
	Rows            []ReportRow  `json:"rows"`
	TotalInvoices   int          `json:"total_invoices"`
	TotalAssessable int64        `json:"total_assessable"`
	TotalSGST       int64        `json:"total_sgst"`
	TotalCGST       int64        `json:"total_cgst"`
	TotalIGST       int64        `json:"total_igst"`
	GrandTotal      int64        `json:"grand_total"`
	GeneratedAt     time.Time    `json:"generated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	Report(ctx context.Context, req ReportRequest) (Report, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidRange     = errors.New("invalid_date_range")
	ErrNotFound         = errors.New("not_found")
	ErrNoItems          = errors.New("invoice_has_no_items")
	ErrInvalidItem      = errors.New("invalid_invoice_item")
	ErrCompanyNotFound  = errors.New("company_not_found")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrTierNotFound     = errors.New("tax_tier_not_found")
)
