package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/taxtier/domain"
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
		log:   p.Log.Named("taxtier.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTaxTierRequest) (domain.TaxTier, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return domain.TaxTier{}, domain.ErrInvalidLabel
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now()
	tier := domain.TaxTier{
		ID:               s.genID.Generate(),
		Label:            label,
		TotalRatePercent: req.TotalRatePercent,
		HalfRatePercent:  req.HalfRatePercent,
		Active:           active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := tier.Validate(); err != nil {
		return domain.TaxTier{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &tier); err != nil {
		return domain.TaxTier{}, err
	}

	s.log.Info("tax tier created",
		zap.String("tier_id", tier.ID.String()),
		zap.Float64("total_rate_percent", tier.TotalRatePercent),
	)
	return tier, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTaxTierRequest) ([]domain.TaxTier, error) {
	return s.repo.List(ctx, s.db, req)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.TaxTier, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.TaxTier{}, domain.ErrInvalidID
	}

	tier, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.TaxTier{}, err
	}
	if tier == nil {
		return domain.TaxTier{}, domain.ErrNotFound
	}
	return *tier, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateTaxTierRequest) (domain.TaxTier, error) {
	tier, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.TaxTier{}, err
	}

	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return domain.TaxTier{}, domain.ErrInvalidLabel
		}
		tier.Label = label
	}
	if req.TotalRatePercent != nil {
		tier.TotalRatePercent = *req.TotalRatePercent
	}
	if req.HalfRatePercent != nil {
		tier.HalfRatePercent = *req.HalfRatePercent
	}
	if err := tier.Validate(); err != nil {
		return domain.TaxTier{}, err
	}

	tier.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &tier); err != nil {
		return domain.TaxTier{}, err
	}
	return tier, nil
}

func (s *Service) Disable(ctx context.Context, id string) (domain.TaxTier, error) {
	tier, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.TaxTier{}, err
	}

	tier.Active = false
	tier.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &tier); err != nil {
		return domain.TaxTier{}, err
	}

	s.log.Info("tax tier disabled", zap.String("tier_id", tier.ID.String()))
	return tier, nil
}
