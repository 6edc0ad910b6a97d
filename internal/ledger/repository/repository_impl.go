package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/ledger/domain"
	"github.com/saralbooks/saral/internal/ledger/reconcile"
	"github.com/saralbooks/saral/internal/money"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InvoiceEntries(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]reconcile.Entry, error) {
	var invoices []invoicedomain.Invoice
	err := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("bill_date", "bill_number", "grand_total").
		Where("customer_id = ?", customerID).
		Order("bill_date asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	entries := make([]reconcile.Entry, 0, len(invoices))
	for _, inv := range invoices {
		entries = append(entries, reconcile.Entry{
			Date:      inv.BillDate,
			Reference: inv.BillNumber,
			Amount:    money.Paise(inv.GrandTotal),
			Kind:      reconcile.KindInvoice,
		})
	}
	return entries, nil
}

func (r *repo) PaymentEntries(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]reconcile.Entry, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Select("paid_on", "receipt_no", "amount").
		Where("customer_id = ?", customerID).
		Order("paid_on asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	entries := make([]reconcile.Entry, 0, len(payments))
	for _, pay := range payments {
		entries = append(entries, reconcile.Entry{
			Date:      pay.PaidOn,
			Reference: pay.ReceiptNo,
			Amount:    money.Paise(pay.Amount),
			Kind:      reconcile.KindPayment,
		})
	}
	return entries, nil
}
