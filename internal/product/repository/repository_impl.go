package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/product/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var categories []domain.Category
	err := db.WithContext(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

func (r *repo) CountProductsInCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter, page pagination.Pagination) ([]*domain.Product, error) {
	var products []*domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("name LIKE ? OR hsn_code LIKE ?", like, like)
	}
	if filter.CategoryID != "" {
		stmt = stmt.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}
	if err := stmt.Order("created_at desc, id desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}
