// Package domain contains the pricing rule catalog models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Rule categories are open string tags, not a closed enum. The constants below
// cover the categories the evaluator derives from job attributes; tenants can
// add rules under new categories without code changes.
const (
	CategoryBase     = "base"
	CategoryMaterial = "material"
	CategoryPitch    = "pitch"
	CategoryStories  = "stories"
	CategoryUrgency  = "urgency"
	CategoryFeature  = "feature"
	CategoryIssue    = "issue"
)

const (
	UnitSqft = "sqft"
	UnitFlat = "flat"
)

// PricingRule is one configurable pricing rule. Monetary columns are integer
// cents; Multiplier scales the running subtotal, FlatFee is added once after
// all multipliers are resolved.
type PricingRule struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	RuleKey      string       `json:"rule_key" gorm:"column:rule_key;type:text;not null;uniqueIndex"`
	RuleCategory string       `json:"rule_category" gorm:"column:rule_category;type:text;not null;index"`
	DisplayName  string       `json:"display_name" gorm:"type:text;not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	BaseRate     *int64       `json:"base_rate,omitempty" gorm:"column:base_rate"`
	Multiplier   float64      `json:"multiplier" gorm:"not null;default:1"`
	FlatFee      int64        `json:"flat_fee" gorm:"column:flat_fee;not null;default:0"`
	Unit         string       `json:"unit" gorm:"type:text;not null;default:flat"`
	IsActive     bool         `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PricingRule) TableName() string { return "pricing_rules" }

// Catalog is an immutable in-memory index over the active rules: a map from
// rule key plus a secondary index from category to rule list. Lookups never
// mutate it, so a snapshot is safe to share across concurrent evaluations.
type Catalog struct {
	byKey      map[string]*PricingRule
	byCategory map[string][]*PricingRule
}

// NewCatalog indexes the given rules. Inactive rules are skipped; they stay in
// storage for audit but are invisible to evaluation.
func NewCatalog(rules []PricingRule) *Catalog {
	c := &Catalog{
		byKey:      make(map[string]*PricingRule, len(rules)),
		byCategory: make(map[string][]*PricingRule),
	}
	for i := range rules {
		rule := rules[i]
		if !rule.IsActive {
			continue
		}
		if _, exists := c.byKey[rule.RuleKey]; exists {
			continue
		}
		c.byKey[rule.RuleKey] = &rule
		c.byCategory[rule.RuleCategory] = append(c.byCategory[rule.RuleCategory], &rule)
	}
	return c
}

// Rule returns the active rule for key, or false when absent.
func (c *Catalog) Rule(key string) (*PricingRule, bool) {
	rule, ok := c.byKey[key]
	return rule, ok
}

// RulesByCategory returns the active rules tagged with category. The result is
// empty, never nil-panicking, for unknown categories.
func (c *Catalog) RulesByCategory(category string) []*PricingRule {
	return c.byCategory[category]
}

// Len reports the number of active rules in the snapshot.
func (c *Catalog) Len() int { return len(c.byKey) }
