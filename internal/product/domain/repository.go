package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCategory(ctx context.Context, db *gorm.DB, category *Category) error
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CountProductsInCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListProductFilter, page pagination.Pagination) ([]*Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
