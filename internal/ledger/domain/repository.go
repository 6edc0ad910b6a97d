package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/ledger/reconcile"
	"gorm.io/gorm"
)

// Repository projects the invoice and payment history of one customer
// into reconciler entries, ordered by date then insertion.
type Repository interface {
	InvoiceEntries(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]reconcile.Entry, error)
	PaymentEntries(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]reconcile.Entry, error)
}
