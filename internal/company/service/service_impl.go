package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	gstin := strings.ToUpper(strings.TrimSpace(req.GSTIN))
	if gstin != "" && len(gstin) < 2 {
		return domain.Company{}, domain.ErrInvalidGSTIN
	}

	var defaultTier *snowflake.ID
	if strings.TrimSpace(req.DefaultTaxTierID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.DefaultTaxTierID))
		if err != nil {
			return domain.Company{}, domain.ErrInvalidID
		}
		defaultTier = &id
	}

	now := s.clock.Now()
	company := domain.Company{
		ID:               s.genID.Generate(),
		Name:             name,
		Address:          strings.TrimSpace(req.Address),
		GSTIN:            gstin,
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		BankName:         strings.TrimSpace(req.BankName),
		BankAccount:      strings.TrimSpace(req.BankAccount),
		BankIFSC:         strings.TrimSpace(req.BankIFSC),
		DefaultTaxTierID: defaultTier,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}

	s.log.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("state_code", company.StateCode()),
	)
	return company, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCompanyRequest) ([]domain.Company, error) {
	return s.repo.List(ctx, s.db, domain.ListCompanyRequest{
		Name: strings.TrimSpace(req.Name),
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Company, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Company{}, domain.ErrInvalidID
	}

	company, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCompanyRequest) (domain.Company, error) {
	company, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Company{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Company{}, domain.ErrInvalidName
		}
		company.Name = name
	}
	if req.GSTIN != nil {
		gstin := strings.ToUpper(strings.TrimSpace(*req.GSTIN))
		if gstin != "" && len(gstin) < 2 {
			return domain.Company{}, domain.ErrInvalidGSTIN
		}
		company.GSTIN = gstin
	}
	if req.Address != nil {
		company.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		company.Email = strings.TrimSpace(*req.Email)
	}
	if req.BankName != nil {
		company.BankName = strings.TrimSpace(*req.BankName)
	}
	if req.BankAccount != nil {
		company.BankAccount = strings.TrimSpace(*req.BankAccount)
	}
	if req.BankIFSC != nil {
		company.BankIFSC = strings.TrimSpace(*req.BankIFSC)
	}
	if req.DefaultTaxTierID != nil {
		trimmed := strings.TrimSpace(*req.DefaultTaxTierID)
		if trimmed == "" {
			company.DefaultTaxTierID = nil
		} else {
			id, err := snowflake.ParseString(trimmed)
			if err != nil {
				return domain.Company{}, domain.ErrInvalidID
			}
			company.DefaultTaxTierID = &id
		}
	}

	company.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, company.ID)
}
