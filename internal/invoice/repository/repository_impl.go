package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Preload("Items").First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{}).Preload("Items")
	if filter.CompanyID != "" {
		stmt = stmt.Where("company_id = ?", filter.CompanyID)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Search != "" {
		// subquery keeps the customer-name match join-free so the cursor
		// columns stay unambiguous
		like := "%" + filter.Search + "%"
		stmt = stmt.Where(
			"bill_number LIKE ? OR customer_id IN (SELECT id FROM customers WHERE name LIKE ?)",
			like, like,
		)
	}
	if filter.From != nil {
		stmt = stmt.Where("bill_date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("bill_date <= ?", *filter.To)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}
	if err := stmt.Order("created_at desc, id desc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Omit("Items").Save(invoice).Error
}

func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).Delete(&domain.InvoiceItem{}, "invoice_id = ?", invoiceID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Delete(&domain.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

// ReportRows feeds the bill report: one row per invoice in the window
// with the customer name joined in. Amounts come straight from the stored
// columns.
func (r *repo) ReportRows(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	stmt := db.WithContext(ctx).Table("invoices").
		Select("invoices.bill_number, invoices.bill_date, customers.name AS customer_name, invoices.jurisdiction, invoices.assessable_value, invoices.sgst, invoices.cgst, invoices.igst, invoices.grand_total").
		Joins("JOIN customers ON customers.id = invoices.customer_id")
	if filter.CompanyID != "" {
		stmt = stmt.Where("invoices.company_id = ?", filter.CompanyID)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("invoices.customer_id = ?", filter.CustomerID)
	}
	if filter.From != nil {
		stmt = stmt.Where("invoices.bill_date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("invoices.bill_date <= ?", *filter.To)
	}
	if err := stmt.Order("invoices.bill_date asc, invoices.id asc").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// NextSequence relies on the (company_id, bill_year) primary key: the
// conflict arm increments in place and RETURNING reads the value the same
// statement wrote, so the round trip is one atomic statement on both
// postgres and sqlite. The mysql dialect is not supported for invoice
// creation: it has no ON CONFLICT .. RETURNING form.
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB, companyID snowflake.ID, billYear int) (int64, error) {
	var seq int64
	err := db.WithContext(ctx).Raw(`
		INSERT INTO invoice_sequences (company_id, bill_year, next_seq)
		VALUES (?, ?, 1)
		ON CONFLICT (company_id, bill_year)
		DO UPDATE SET next_seq = invoice_sequences.next_seq + 1
		RETURNING next_seq`,
		companyID, billYear,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
