package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/product/domain"
	"github.com/saralbooks/saral/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
}

func TestCreateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.CreateProductRequest{
		Name:     "Cotton Yarn",
		HSNCode:  "5205",
		UOM:      "KG",
		UnitRate: 125.50,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cotton Yarn", product.Name)
	assert.Equal(t, int64(12550), product.UnitRate)
	assert.True(t, product.Active)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "x", UnitRate: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestCategorySlugAndLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Raw Material"})
	require.NoError(t, err)
	assert.Equal(t, "raw-material", category.Slug)

	id := category.ID.String()
	product, err := svc.Create(ctx, domain.CreateProductRequest{
		Name:       "Dye",
		CategoryID: &id,
	})
	require.NoError(t, err)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)

	missing := snowflake.ID(999999).String()
	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Name:       "Orphan",
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Chemicals"})
	require.NoError(t, err)

	id := category.ID.String()
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Bleach", CategoryID: &id})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, id)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)

	empty, err := svc.CreateCategory(ctx, domain.CreateCategoryRequest{Name: "Empty"})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteCategory(ctx, empty.ID.String()))
}
