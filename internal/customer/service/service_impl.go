package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/internal/money"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	stateCode, err := normalizeStateCode(req.StateCode)
	if err != nil {
		return domain.Customer{}, err
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:             s.genID.Generate(),
		Name:           name,
		BillingAddress: strings.TrimSpace(req.BillingAddress),
		StateCode:      stateCode,
		GSTNumber:      normalizeOptional(req.GSTNumber),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		TaxExempt:      req.TaxExempt,
		OpeningBalance: int64(money.FromRupees(req.OpeningBalance)),
		Metadata:       datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.Bool("tax_exempt", customer.TaxExempt),
	)
	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	customers, err := s.repo.List(ctx, s.db, domain.ListCustomerFilter{
		Search:    strings.TrimSpace(req.Search),
		StateCode: strings.TrimSpace(req.StateCode),
		TaxExempt: req.TaxExempt,
	}, pagination.Pagination{PageToken: page.PageToken, PageSize: page.PageSize + 1})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	info := pagination.BuildCursorPageInfo(customers, int32(page.PageSize), func(c *domain.Customer) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(customers) > page.PageSize {
		customers = customers[:page.PageSize]
	}

	resp := domain.ListCustomerResponse{PageInfo: *info}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, *c)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	customer, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.StateCode != nil {
		stateCode, err := normalizeStateCode(req.StateCode)
		if err != nil {
			return domain.Customer{}, err
		}
		customer.StateCode = stateCode
	}
	if req.BillingAddress != nil {
		customer.BillingAddress = strings.TrimSpace(*req.BillingAddress)
	}
	if req.GSTNumber != nil {
		customer.GSTNumber = normalizeOptional(req.GSTNumber)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.TaxExempt != nil {
		customer.TaxExempt = *req.TaxExempt
	}
	if req.OpeningBalance != nil {
		customer.OpeningBalance = int64(money.FromRupees(*req.OpeningBalance))
	}

	customer.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, customer.ID)
}

func normalizeStateCode(code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) != 2 {
		return nil, domain.ErrInvalidStateCode
	}
	return &trimmed, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
