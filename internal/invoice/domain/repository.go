package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []InvoiceItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// ReportRows loads the summary rows for a bill report window with the
	// customer name joined in, ordered by bill date.
	ReportRows(ctx context.Context, db *gorm.DB, filter ListInvoiceFilter) ([]ReportRow, error)

	// NextSequence atomically advances and returns the bill sequence for
	// the (company, financial year) pair. Safe under concurrent callers.
	NextSequence(ctx context.Context, db *gorm.DB, companyID snowflake.ID, billYear int) (int64, error)
}
