package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Create(company).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCompanyRequest) ([]domain.Company, error) {
	var companies []domain.Company
	stmt := db.WithContext(ctx).Model(&domain.Company{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	err := stmt.Order("created_at asc, id asc").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Save(company).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id).Error
}
