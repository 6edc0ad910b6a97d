package domain

import (
	"context"
	"errors"
	"time"

	"github.com/saralbooks/saral/pkg/db/pagination"
)

type CreatePaymentRequest struct {
	CustomerID string
	InvoiceID  *string
	Amount     float64 // rupees, converted to paise at the boundary
	Mode       PaymentMode
	PaidOn     time.Time
	Remarks    string
}

type UpdatePaymentRequest struct {
	ID      string
	Amount  *float64
	Mode    *PaymentMode
	PaidOn  *time.Time
	Remarks *string
}

type ListPaymentRequest struct {
	PageToken  string
	PageSize   int32
	CustomerID string
	From       *time.Time
	To         *time.Time
}

type ListPaymentFilter struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	Update(ctx context.Context, req UpdatePaymentRequest) (Payment, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidMode      = errors.New("invalid_mode")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
)
