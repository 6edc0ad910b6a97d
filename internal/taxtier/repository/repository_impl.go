package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/taxtier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tier *domain.TaxTier) error {
	return db.WithContext(ctx).Create(tier).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.TaxTier, error) {
	var tier domain.TaxTier
	err := db.WithContext(ctx).First(&tier, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListTaxTierRequest) ([]domain.TaxTier, error) {
	var tiers []domain.TaxTier
	stmt := db.WithContext(ctx).Model(&domain.TaxTier{})
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	err := stmt.Order("total_rate_percent asc, id asc").Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tier *domain.TaxTier) error {
	return db.WithContext(ctx).Save(tier).Error
}
