package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("name LIKE ? OR billing_address LIKE ? OR gst_number LIKE ?", like, like, like)
	}
	if filter.StateCode != "" {
		stmt = stmt.Where("state_code = ?", filter.StateCode)
	}
	if filter.TaxExempt != nil {
		stmt = stmt.Where("tax_exempt = ?", *filter.TaxExempt)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}
	if err := stmt.Order("created_at desc, id desc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}
