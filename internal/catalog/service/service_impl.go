package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	"github.com/shinglesoft/roofline/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Snapshot(ctx context.Context) (*catalogdomain.Catalog, error) {
	rules, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return catalogdomain.NewCatalog(rules), nil
}

// GetRule resolves a single rule by key. Unknown or inactive keys are absence,
// not an error.
func (s *Service) GetRule(ctx context.Context, key string) (*catalogdomain.PricingRule, error) {
	rule, err := s.repo.FindByKey(ctx, s.db, strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if rule == nil || !rule.IsActive {
		return nil, nil
	}
	return rule, nil
}

func (s *Service) GetRulesByCategory(ctx context.Context, category string) ([]catalogdomain.PricingRule, error) {
	rules, err := s.repo.ListByCategory(ctx, s.db, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []catalogdomain.PricingRule{}
	}
	return rules, nil
}

func (s *Service) UpsertRule(ctx context.Context, req catalogdomain.UpsertRuleRequest) (*catalogdomain.PricingRule, error) {
	key := strings.TrimSpace(req.RuleKey)
	if key == "" {
		return nil, catalogdomain.ErrInvalidRuleKey
	}
	category := strings.TrimSpace(req.RuleCategory)
	if category == "" {
		return nil, catalogdomain.ErrInvalidRuleCategory
	}
	if req.Multiplier < 0 {
		return nil, catalogdomain.ErrInvalidMultiplier
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = catalogdomain.UnitFlat
	}

	multiplier := req.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	rule := &catalogdomain.PricingRule{
		RuleKey:      key,
		RuleCategory: category,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Description:  strings.TrimSpace(req.Description),
		BaseRate:     req.BaseRate,
		Multiplier:   multiplier,
		FlatFee:      req.FlatFee,
		Unit:         unit,
		IsActive:     active,
		UpdatedAt:    now,
	}

	existing, err := s.repo.FindByKey(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, s.db, rule); err != nil {
			return nil, err
		}
		s.log.Info("rule updated", zap.String("rule_key", key))
		return rule, nil
	}

	rule.ID = s.genID.Generate()
	rule.CreatedAt = now
	if err := s.repo.Insert(ctx, s.db, rule); err != nil {
		// A concurrent insert of the same key wins; fall back to updating it.
		if db.IsDuplicateKeyErr(err) {
			return s.UpsertRule(ctx, req)
		}
		return nil, err
	}
	s.log.Info("rule created", zap.String("rule_key", key), zap.String("rule_category", category))
	return rule, nil
}

func (s *Service) DeactivateRule(ctx context.Context, key string) error {
	existing, err := s.repo.FindByKey(ctx, s.db, strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if existing == nil {
		return catalogdomain.ErrRuleNotFound
	}
	if !existing.IsActive {
		return nil
	}

	existing.IsActive = false
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return err
	}
	s.log.Info("rule deactivated", zap.String("rule_key", existing.RuleKey))
	return nil
}
