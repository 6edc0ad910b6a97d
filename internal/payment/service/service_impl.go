package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/saralbooks/saral/internal/clock"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/money"
	"github.com/saralbooks/saral/internal/payment/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	if req.Amount <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return domain.Payment{}, err
	}

	customer, err := s.customerSvc.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerdomain.ErrNotFound) {
			return domain.Payment{}, domain.ErrCustomerNotFound
		}
		if errors.Is(err, customerdomain.ErrInvalidID) {
			return domain.Payment{}, domain.ErrInvalidID
		}
		return domain.Payment{}, err
	}

	var invoiceID *snowflake.ID
	if req.InvoiceID != nil && strings.TrimSpace(*req.InvoiceID) != "" {
		invoice, err := s.invoiceSvc.GetByID(ctx, *req.InvoiceID)
		if err != nil {
			if errors.Is(err, invoicedomain.ErrNotFound) {
				return domain.Payment{}, domain.ErrInvoiceNotFound
			}
			if errors.Is(err, invoicedomain.ErrInvalidID) {
				return domain.Payment{}, domain.ErrInvalidID
			}
			return domain.Payment{}, err
		}
		invoiceID = &invoice.ID
	}

	paidOn := req.PaidOn
	if paidOn.IsZero() {
		paidOn = s.clock.Now()
	}

	now := s.clock.Now()
	payment := domain.Payment{
		ID:         s.genID.Generate(),
		CustomerID: customer.ID,
		InvoiceID:  invoiceID,
		ReceiptNo:  uuid.NewString(),
		Amount:     int64(money.FromRupees(req.Amount)),
		Mode:       mode,
		PaidOn:     paidOn,
		Remarks:    strings.TrimSpace(req.Remarks),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}

	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("customer_id", payment.CustomerID.String()),
		zap.Int64("amount", payment.Amount),
		zap.String("mode", string(payment.Mode)),
	)
	return payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	payments, err := s.repo.List(ctx, s.db, domain.ListPaymentFilter{
		CustomerID: strings.TrimSpace(req.CustomerID),
		From:       req.From,
		To:         req.To,
	}, pagination.Pagination{PageToken: page.PageToken, PageSize: page.PageSize + 1})
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}

	info := pagination.BuildCursorPageInfo(payments, int32(page.PageSize), func(p *domain.Payment) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        p.ID.String(),
			CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(payments) > page.PageSize {
		payments = payments[:page.PageSize]
	}

	resp := domain.ListPaymentResponse{PageInfo: *info}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, *p)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidID
	}

	payment, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	payment, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Payment{}, err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		payment.Amount = int64(money.FromRupees(*req.Amount))
	}
	if req.Mode != nil {
		mode, err := normalizeMode(*req.Mode)
		if err != nil {
			return domain.Payment{}, err
		}
		payment.Mode = mode
	}
	if req.PaidOn != nil {
		payment.PaidOn = *req.PaidOn
	}
	if req.Remarks != nil {
		payment.Remarks = strings.TrimSpace(*req.Remarks)
	}

	payment.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &payment); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, payment.ID)
}

func normalizeMode(mode domain.PaymentMode) (domain.PaymentMode, error) {
	normalized := domain.PaymentMode(strings.ToUpper(strings.TrimSpace(string(mode))))
	switch normalized {
	case domain.ModeCash, domain.ModeCheque, domain.ModeUPI, domain.ModeTransfer:
		return normalized, nil
	case "":
		return domain.ModeCash, nil
	default:
		return "", domain.ErrInvalidMode
	}
}
