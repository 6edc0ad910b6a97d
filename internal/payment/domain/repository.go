package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, filter ListPaymentFilter, page pagination.Pagination) ([]*Payment, error)
	Update(ctx context.Context, db *gorm.DB, payment *Payment) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
