// Package domain contains the price adjustment ledger model and the pure
// apply/replay primitives both the service and its tests share.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type AdjustmentType string

const (
	TypeDiscountPercent AdjustmentType = "discount_percent"
	TypeDiscountFixed   AdjustmentType = "discount_fixed"
	TypePriceOverride   AdjustmentType = "price_override"
)

// MaxDiscountPercent caps percentage discounts. A guardrail against
// fat-finger giveaways, not a pricing policy.
const MaxDiscountPercent = 50.0

// PriceAdjustment is one ledger record. Records are append-only: created by an
// explicit apply, never mutated, deleted only by an explicit remove which
// replays the survivors. AdjustmentValue is percent points for
// discount_percent and cents for the money-valued types; amounts and prices
// are integer cents.
type PriceAdjustment struct {
	ID               snowflake.ID   `json:"id" gorm:"primaryKey"`
	EstimateID       snowflake.ID   `json:"estimate_id" gorm:"column:estimate_id;not null;index"`
	AdjustmentType   AdjustmentType `json:"adjustment_type" gorm:"column:adjustment_type;type:text;not null"`
	AdjustmentValue  float64        `json:"adjustment_value" gorm:"column:adjustment_value;not null"`
	AdjustmentAmount int64          `json:"adjustment_amount" gorm:"column:adjustment_amount;not null"`
	OriginalPrice    int64          `json:"original_price" gorm:"column:original_price;not null"`
	NewPrice         int64          `json:"new_price" gorm:"column:new_price;not null"`
	Description      string         `json:"description,omitempty" gorm:"type:text"`
	InternalReason   string         `json:"internal_reason,omitempty" gorm:"column:internal_reason;type:text"`
	AppliedBy        string         `json:"applied_by,omitempty" gorm:"column:applied_by;type:text"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PriceAdjustment) TableName() string { return "price_adjustments" }
