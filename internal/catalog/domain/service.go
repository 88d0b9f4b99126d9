package domain

import (
	"context"
	"errors"
)

// Service exposes the rule catalog to the estimation engine and to tenant
// configuration surfaces. Reads resolve against the stored catalog; Snapshot
// returns the immutable index a single evaluation runs against.
type Service interface {
	Snapshot(ctx context.Context) (*Catalog, error)
	GetRule(ctx context.Context, key string) (*PricingRule, error)
	GetRulesByCategory(ctx context.Context, category string) ([]PricingRule, error)
	UpsertRule(ctx context.Context, req UpsertRuleRequest) (*PricingRule, error)
	DeactivateRule(ctx context.Context, key string) error
}

type UpsertRuleRequest struct {
	RuleKey      string  `json:"rule_key"`
	RuleCategory string  `json:"rule_category"`
	DisplayName  string  `json:"display_name"`
	Description  string  `json:"description"`
	BaseRate     *int64  `json:"base_rate"`
	Multiplier   float64 `json:"multiplier"`
	FlatFee      int64   `json:"flat_fee"`
	Unit         string  `json:"unit"`
	IsActive     *bool   `json:"is_active"`
}

var (
	ErrInvalidRuleKey      = errors.New("invalid_rule_key")
	ErrInvalidRuleCategory = errors.New("invalid_rule_category")
	ErrInvalidMultiplier   = errors.New("invalid_multiplier")
	ErrInvalidUnit         = errors.New("invalid_unit")
	ErrRuleNotFound        = errors.New("rule_not_found")
)
