package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	Update(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*PricingRule, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]PricingRule, error)
	ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]PricingRule, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
