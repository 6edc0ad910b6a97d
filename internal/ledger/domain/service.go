// Package domain defines the customer ledger statement surface.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/saralbooks/saral/internal/ledger/reconcile"
)

type StatementRequest struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// Statement is a reconciled ledger for one customer and window. Rows come
// straight from the reconciler; amounts stay integer paise until a
// renderer formats them.
type Statement struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance int64           `json:"opening_balance"`
	Rows           []reconcile.Row `json:"rows"`
	ClosingBalance int64           `json:"closing_balance"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

type Service interface {
	Statement(ctx context.Context, req StatementRequest) (Statement, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrCustomerNotFound = errors.New("customer_not_found")
)
