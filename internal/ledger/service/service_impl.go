package service

import (
	"context"
	"errors"

	"github.com/saralbooks/saral/internal/clock"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/internal/ledger/domain"
	"github.com/saralbooks/saral/internal/ledger/reconcile"
	"github.com/saralbooks/saral/internal/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	repo        domain.Repository
	customerSvc customerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("ledger.service"),
		clock:       p.Clock,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
	}
}

func (s *Service) Statement(ctx context.Context, req domain.StatementRequest) (domain.Statement, error) {
	customer, err := s.customerSvc.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerdomain.ErrNotFound) {
			return domain.Statement{}, domain.ErrCustomerNotFound
		}
		if errors.Is(err, customerdomain.ErrInvalidID) {
			return domain.Statement{}, domain.ErrInvalidID
		}
		return domain.Statement{}, err
	}

	var invoices, payments []reconcile.Entry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if invoices, err = s.repo.InvoiceEntries(ctx, tx, customer.ID); err != nil {
			return err
		}
		payments, err = s.repo.PaymentEntries(ctx, tx, customer.ID)
		return err
	})
	if err != nil {
		return domain.Statement{}, err
	}

	stmt, err := reconcile.Reconcile(money.Paise(customer.OpeningBalance), invoices, payments, req.From, req.To)
	if err != nil {
		return domain.Statement{}, err
	}

	s.log.Debug("ledger reconciled",
		zap.String("customer_id", customer.ID.String()),
		zap.Int("rows", len(stmt.Rows)),
		zap.Int64("closing_balance", int64(stmt.ClosingBalance)),
	)

	return domain.Statement{
		CustomerID:     customer.ID.String(),
		CustomerName:   customer.Name,
		From:           req.From,
		To:             req.To,
		OpeningBalance: int64(stmt.OpeningBalance),
		Rows:           stmt.Rows,
		ClosingBalance: int64(stmt.ClosingBalance),
		GeneratedAt:    s.clock.Now(),
	}, nil
}
