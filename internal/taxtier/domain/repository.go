package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *TaxTier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TaxTier, error)
	List(ctx context.Context, db *gorm.DB, filter ListTaxTierRequest) ([]TaxTier, error)
	Update(ctx context.Context, db *gorm.DB, tier *TaxTier) error
}
