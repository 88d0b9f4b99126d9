package repository

import (
	"context"

	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *catalogdomain.PricingRule) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO pricing_rules (
			id, rule_key, rule_category, display_name, description,
			base_rate, multiplier, flat_fee, unit, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.RuleKey,
		rule.RuleCategory,
		rule.DisplayName,
		rule.Description,
		rule.BaseRate,
		rule.Multiplier,
		rule.FlatFee,
		rule.Unit,
		rule.IsActive,
		rule.CreatedAt,
		rule.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *catalogdomain.PricingRule) error {
	return db.WithContext(ctx).Exec(
		`UPDATE pricing_rules SET
			rule_category = ?, display_name = ?, description = ?,
			base_rate = ?, multiplier = ?, flat_fee = ?, unit = ?, is_active = ?, updated_at = ?
		 WHERE rule_key = ?`,
		rule.RuleCategory,
		rule.DisplayName,
		rule.Description,
		rule.BaseRate,
		rule.Multiplier,
		rule.FlatFee,
		rule.Unit,
		rule.IsActive,
		rule.UpdatedAt,
		rule.RuleKey,
	).Error
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, key string) (*catalogdomain.PricingRule, error) {
	var rule catalogdomain.PricingRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, rule_key, rule_category, display_name, description,
		 base_rate, multiplier, flat_fee, unit, is_active, created_at, updated_at
		 FROM pricing_rules WHERE rule_key = ?`,
		key,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]catalogdomain.PricingRule, error) {
	var rules []catalogdomain.PricingRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, rule_key, rule_category, display_name, description,
		 base_rate, multiplier, flat_fee, unit, is_active, created_at, updated_at
		 FROM pricing_rules WHERE is_active = ? ORDER BY rule_key ASC`,
		true,
	).Scan(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]catalogdomain.PricingRule, error) {
	var rules []catalogdomain.PricingRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, rule_key, rule_category, display_name, description,
		 base_rate, multiplier, flat_fee, unit, is_active, created_at, updated_at
		 FROM pricing_rules WHERE rule_category = ? AND is_active = ? ORDER BY rule_key ASC`,
		category,
		true,
	).Scan(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM pricing_rules`).Scan(&count).Error
	return count, err
}
