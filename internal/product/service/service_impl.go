package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/money"
	"github.com/saralbooks/saral/internal/product/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Category{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	category := domain.Category{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertCategory(ctx, s.db, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, s.db)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	category, err := s.repo.FindCategoryByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}

	count, err := s.repo.CountProductsInCategory(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	return s.repo.DeleteCategory(ctx, s.db, parsed)
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.UnitRate < 0 {
		return domain.Product{}, domain.ErrInvalidRate
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return domain.Product{}, err
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:          s.genID.Generate(),
		CategoryID:  categoryID,
		Name:        name,
		HSNCode:     strings.TrimSpace(req.HSNCode),
		UOM:         strings.TrimSpace(req.UOM),
		UnitRate:    int64(money.FromRupees(req.UnitRate)),
		Description: req.Description,
		Active:      true,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("hsn_code", product.HSNCode),
	)
	return product, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	products, err := s.repo.List(ctx, s.db, domain.ListProductFilter{
		Search:     strings.TrimSpace(req.Search),
		CategoryID: strings.TrimSpace(req.CategoryID),
		Active:     req.Active,
	}, pagination.Pagination{PageToken: page.PageToken, PageSize: page.PageSize + 1})
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	info := pagination.BuildCursorPageInfo(products, int32(page.PageSize), func(p *domain.Product) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        p.ID.String(),
			CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(products) > page.PageSize {
		products = products[:page.PageSize]
	}

	resp := domain.ListProductResponse{PageInfo: *info}
	for _, p := range products {
		resp.Products = append(resp.Products, *p)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *product, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	product, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, domain.ErrInvalidName
		}
		product.Name = name
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return domain.Product{}, err
		}
		product.CategoryID = categoryID
	}
	if req.HSNCode != nil {
		product.HSNCode = strings.TrimSpace(*req.HSNCode)
	}
	if req.UOM != nil {
		product.UOM = strings.TrimSpace(*req.UOM)
	}
	if req.UnitRate != nil {
		if *req.UnitRate < 0 {
			return domain.Product{}, domain.ErrInvalidRate
		}
		product.UnitRate = int64(money.FromRupees(*req.UnitRate))
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	product.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, product.ID)
}

func (s *Service) resolveCategory(ctx context.Context, id *string) (*snowflake.ID, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(*id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	category, err := s.repo.FindCategoryByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return &parsed, nil
}
