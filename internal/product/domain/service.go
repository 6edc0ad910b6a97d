package domain

import (
	"context"
	"errors"

	"github.com/saralbooks/saral/pkg/db/pagination"
)

type CreateCategoryRequest struct {
	Name string
}

type CreateProductRequest struct {
	CategoryID  *string
	Name        string
	HSNCode     string
	UOM         string
	UnitRate    float64 // rupees, converted to paise at the boundary
	Description *string
}

type UpdateProductRequest struct {
	ID          string
	CategoryID  *string
	Name        *string
	HSNCode     *string
	UOM         *string
	UnitRate    *float64
	Description *string
	Active      *bool
}

type ListProductRequest struct {
	PageToken  string
	PageSize   int32
	Search     string
	CategoryID string
	Active     *bool
}

type ListProductFilter struct {
	Search     string
	CategoryID string
	Active     *bool
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	List(ctx context.Context, req ListProductRequest) (ListProductResponse, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidRate      = errors.New("invalid_unit_rate")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrCategoryInUse    = errors.New("category_in_use")
)
