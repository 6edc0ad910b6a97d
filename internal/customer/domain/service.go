package domain

import (
	"context"
	"errors"

	"github.com/saralbooks/saral/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name           string
	BillingAddress string
	StateCode      *string
	GSTNumber      *string
	Phone          string
	Email          string
	TaxExempt      bool
	OpeningBalance float64 // rupees, converted to paise at the boundary
}

type UpdateCustomerRequest struct {
	ID             string
	Name           *string
	BillingAddress *string
	StateCode      *string
	GSTNumber      *string
	Phone          *string
	Email          *string
	TaxExempt      *bool
	OpeningBalance *float64
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int32
	Search    string
	StateCode string
	TaxExempt *bool
}

type ListCustomerFilter struct {
	Search    string
	StateCode string
	TaxExempt *bool
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidStateCode = errors.New("invalid_state_code")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
)
