package domain

import (
	"context"
	"errors"
)

type CreateTaxTierRequest struct {
	Label            string
	TotalRatePercent float64
	HalfRatePercent  float64
	Active           *bool
}

type UpdateTaxTierRequest struct {
	ID               string
	Label            *string
	TotalRatePercent *float64
	HalfRatePercent  *float64
}

type ListTaxTierRequest struct {
	Active *bool
}

type Service interface {
	Create(ctx context.Context, req CreateTaxTierRequest) (TaxTier, error)
	List(ctx context.Context, req ListTaxTierRequest) ([]TaxTier, error)
	GetByID(ctx context.Context, id string) (TaxTier, error)
	Update(ctx context.Context, req UpdateTaxTierRequest) (TaxTier, error)
	Disable(ctx context.Context, id string) (TaxTier, error)
}

var (
	ErrInvalidLabel     = errors.New("invalid_label")
	ErrInvalidRate      = errors.New("invalid_tax_rate")
	ErrHalfRateMismatch = errors.New("half_rate_mismatch")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")

	// ErrTierDisabled is returned when an invoice references a deactivated
	// tier. The rate is never silently substituted.
	ErrTierDisabled = errors.New("tax_tier_disabled")
)
