package domain

import (
	"context"
	"errors"
)

type Service interface {
	CalculateEstimate(ctx context.Context, input PricingInput) (*PricingResult, error)
	CreateEstimate(ctx context.Context, input PricingInput) (*Estimate, error)
	GetEstimate(ctx context.Context, id string) (*Estimate, error)
}

var (
	ErrInvalidEstimateID = errors.New("invalid_estimate_id")
	ErrEstimateNotFound  = errors.New("estimate_not_found")
)
