package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, company *Company) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Company, error)
	List(ctx context.Context, db *gorm.DB, filter ListCompanyRequest) ([]Company, error)
	Update(ctx context.Context, db *gorm.DB, company *Company) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
