// Package domain contains the estimation engine types and the persisted
// estimate model the adjustment ledger anchors to.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeFullReplacement    JobType = "full_replacement"
	JobTypePartialReplacement JobType = "partial_replacement"
	JobTypeRepair             JobType = "repair"
	JobTypeInspection         JobType = "inspection"
)

// PricingInput is the sparse attribute bag describing one job. Every field is
// optional; nil means "not specified" and falls back to a neutral default,
// which is deliberately distinct from a field explicitly set to the default
// value even though both price identically today.
type PricingInput struct {
	JobType         *JobType `json:"job_type,omitempty"`
	RoofSizeSqft    *float64 `json:"roof_size_sqft,omitempty"`
	RoofMaterial    *string  `json:"roof_material,omitempty"`
	Stories         *int     `json:"stories,omitempty"`
	PitchCategory   *string  `json:"pitch_category,omitempty"`
	TimelineUrgency *string  `json:"timeline_urgency,omitempty"`
	HasSkylights    *bool    `json:"has_skylights,omitempty"`
	HasChimneys     *bool    `json:"has_chimneys,omitempty"`
	HasSolarPanels  *bool    `json:"has_solar_panels,omitempty"`
	Issues          []string `json:"issues,omitempty"`
}

// Adjustment explains one applied rule's dollar contribution. The base entry
// plus all impacts sum to the likely price exactly.
type Adjustment struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Impact      int64  `json:"impact"`
	Description string `json:"description,omitempty"`
}

// PricingResult is the three-point estimate. Prices are integer cents; the
// low/high band is rounded to whole dollars.
type PricingResult struct {
	PriceLow    int64        `json:"price_low"`
	PriceLikely int64        `json:"price_likely"`
	PriceHigh   int64        `json:"price_high"`
	Adjustments []Adjustment `json:"adjustments"`
}

// Estimate is a persisted pricing result. AdjustedPrice is nil until the
// adjustment ledger touches it; nil means "no adjustment", not zero.
type Estimate struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	JobType       string            `json:"job_type" gorm:"column:job_type;type:text;not null;index"`
	PriceLow      int64             `json:"price_low" gorm:"column:price_low;not null"`
	PriceLikely   int64             `json:"price_likely" gorm:"column:price_likely;not null"`
	PriceHigh     int64             `json:"price_high" gorm:"column:price_high;not null"`
	AdjustedPrice *int64            `json:"adjusted_price,omitempty" gorm:"column:adjusted_price"`
	Input         datatypes.JSONMap `json:"input" gorm:"type:jsonb"`
	Breakdown     datatypes.JSON    `json:"breakdown" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Estimate) TableName() string { return "estimates" }
