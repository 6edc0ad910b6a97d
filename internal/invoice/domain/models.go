// Package domain contains persistence models for GST invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/invoice/gst"
)

// Invoice is a finalized tax invoice. All monetary columns are paise.
// SGST and CGST are populated on intrastate invoices, IGST otherwise;
// the two splits are mutually exclusive.
type Invoice struct {
	ID           snowflake.ID     `gorm:"primaryKey" json:"id"`
	CompanyID    snowflake.ID     `gorm:"not null;index" json:"company_id"`
	CustomerID   snowflake.ID     `gorm:"not null;index" json:"customer_id"`
	TaxTierID    snowflake.ID     `gorm:"not null" json:"tax_tier_id"`
	Jurisdiction gst.Jurisdiction `gorm:"type:text;not null" json:"jurisdiction"`
	WithTax      bool             `gorm:"not null" json:"with_tax"`
	SequenceNo   int64            `gorm:"not null" json:"sequence_no"`
	BillYear     int              `gorm:"not null" json:"bill_year"`
	BillNumber   string           `gorm:"type:text;not null;uniqueIndex" json:"bill_number"`
	BillDate     time.Time        `gorm:"not null;index" json:"bill_date"`

	AssessableValue int64 `gorm:"not null" json:"assessable_value"`
	TotalTax        int64 `gorm:"not null" json:"total_tax"`
	SGST            int64 `gorm:"column:sgst;not null;default:0" json:"sgst"`
	CGST            int64 `gorm:"column:cgst;not null;default:0" json:"cgst"`
	IGST            int64 `gorm:"column:igst;not null;default:0" json:"igst"`
	GrandTotal      int64 `gorm:"not null" json:"grand_total"`

	Remarks   string        `gorm:"type:text" json:"remarks"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line on an invoice. Base, Tax and Total carry the
// already-rounded per-line amounts; invoice totals are their sums.
type InvoiceItem struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID  `gorm:"not null;index" json:"invoice_id"`
	ProductID *snowflake.ID `gorm:"index" json:"product_id,omitempty"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	HSNCode   string        `gorm:"column:hsn_code;type:text" json:"hsn_code"`
	UOM       string        `gorm:"column:uom;type:text" json:"uom"`
	Quantity  int64         `gorm:"not null" json:"quantity"`
	UnitRate  int64         `gorm:"not null" json:"unit_rate"`
	Base      int64         `gorm:"not null" json:"base"`
	Tax       int64         `gorm:"not null" json:"tax"`
	Total     int64         `gorm:"not null" json:"total"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceSequence hands out bill sequence numbers per company and
// financial year. NextSeq is advanced with an atomic upsert so two
// concurrent invoices never share a number.
type InvoiceSequence struct {
	CompanyID snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	BillYear  int          `gorm:"primaryKey;autoIncrement:false"`
	NextSeq   int64        `gorm:"not null;default:0"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }
