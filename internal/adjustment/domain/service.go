package domain

import (
	"context"
	"errors"
)

type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
	Remove(ctx context.Context, estimateID, adjustmentID string) (*RemoveResult, error)
	List(ctx context.Context, estimateID string) ([]PriceAdjustment, error)
}

type ApplyRequest struct {
	EstimateID     string         `json:"estimate_id"`
	Type           AdjustmentType `json:"adjustment_type"`
	Value          float64        `json:"adjustment_value"`
	Description    string         `json:"description"`
	InternalReason string         `json:"internal_reason"`
	AppliedBy      string         `json:"applied_by"`
}

type ApplyResult struct {
	Record        *PriceAdjustment `json:"record"`
	AdjustedPrice int64            `json:"adjusted_price"`
}

// RemoveResult reports the replayed price. NewPrice is nil when the last
// record was removed and the estimate is back to unadjusted.
type RemoveResult struct {
	NewPrice *int64 `json:"new_price"`
}

var (
	ErrInvalidEstimateID      = errors.New("invalid_estimate_id")
	ErrInvalidAdjustmentID    = errors.New("invalid_adjustment_id")
	ErrInvalidAdjustmentType  = errors.New("invalid_adjustment_type")
	ErrInvalidAdjustmentValue = errors.New("invalid_adjustment_value")
	ErrPercentOutOfRange      = errors.New("percent_out_of_range")
	ErrEstimateNotFound       = errors.New("estimate_not_found")
	ErrAdjustmentNotFound     = errors.New("adjustment_not_found")
	ErrAdjustmentMismatch     = errors.New("adjustment_mismatch")
	ErrConcurrentUpdate       = errors.New("concurrent_update")
)
