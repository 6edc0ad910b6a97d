package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/taxtier/domain"
	"github.com/saralbooks/saral/internal/taxtier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TaxTier{}))

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

func TestCreateTaxTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tier, err := svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "GST 18%",
		TotalRatePercent: 18,
		HalfRatePercent:  9,
	})
	require.NoError(t, err)
	assert.Equal(t, "GST 18%", tier.Label)
	assert.True(t, tier.Active)
	assert.NotZero(t, tier.ID)
}

func TestCreateTaxTierValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "",
		TotalRatePercent: 18,
		HalfRatePercent:  9,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLabel)

	_, err = svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "bad",
		TotalRatePercent: 101,
		HalfRatePercent:  50.5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)

	_, err = svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "bad halves",
		TotalRatePercent: 18,
		HalfRatePercent:  8,
	})
	assert.ErrorIs(t, err, domain.ErrHalfRateMismatch)
}

func TestListTaxTiersOrderedByRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, r := range []float64{28, 0, 12} {
		_, err := svc.Create(ctx, domain.CreateTaxTierRequest{
			Label:            "tier",
			TotalRatePercent: r,
			HalfRatePercent:  r / 2,
		})
		require.NoError(t, err)
	}

	tiers, err := svc.List(ctx, domain.ListTaxTierRequest{})
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, float64(0), tiers[0].TotalRatePercent)
	assert.Equal(t, float64(12), tiers[1].TotalRatePercent)
	assert.Equal(t, float64(28), tiers[2].TotalRatePercent)
}

func TestDisableTaxTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tier, err := svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "GST 5%",
		TotalRatePercent: 5,
		HalfRatePercent:  2.5,
	})
	require.NoError(t, err)

	disabled, err := svc.Disable(ctx, tier.ID.String())
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	active := true
	tiers, err := svc.List(ctx, domain.ListTaxTierRequest{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, tiers)
}

func TestUpdateTaxTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tier, err := svc.Create(ctx, domain.CreateTaxTierRequest{
		Label:            "GST 12%",
		TotalRatePercent: 12,
		HalfRatePercent:  6,
	})
	require.NoError(t, err)

	newTotal, newHalf := 18.0, 9.0
	updated, err := svc.Update(ctx, domain.UpdateTaxTierRequest{
		ID:               tier.ID.String(),
		TotalRatePercent: &newTotal,
		HalfRatePercent:  &newHalf,
	})
	require.NoError(t, err)
	assert.Equal(t, 18.0, updated.TotalRatePercent)

	badHalf := 5.0
	_, err = svc.Update(ctx, domain.UpdateTaxTierRequest{
		ID:              tier.ID.String(),
		HalfRatePercent: &badHalf,
	})
	assert.ErrorIs(t, err, domain.ErrHalfRateMismatch)

	_, err = svc.Update(ctx, domain.UpdateTaxTierRequest{ID: "not-a-snowflake"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
