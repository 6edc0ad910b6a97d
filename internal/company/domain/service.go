package domain

import (
	"context"
	"errors"
)

type CreateCompanyRequest struct {
	Name             string
	Address          string
	GSTIN            string
	Phone            string
	Email            string
	BankName         string
	BankAccount      string
	BankIFSC         string
	DefaultTaxTierID string
}

type UpdateCompanyRequest struct {
	ID               string
	Name             *string
	Address          *string
	GSTIN            *string
	Phone            *string
	Email            *string
	BankName         *string
	BankAccount      *string
	BankIFSC         *string
	DefaultTaxTierID *string
}

type ListCompanyRequest struct {
	Name string
}

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	List(ctx context.Context, req ListCompanyRequest) ([]Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (Company, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidGSTIN = errors.New("invalid_gstin")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
