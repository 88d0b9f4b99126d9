package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	estimationdomain "github.com/shinglesoft/roofline/internal/estimation/domain"
	"github.com/shinglesoft/roofline/internal/observability/metrics"
	"github.com/shinglesoft/roofline/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	catalog      catalogdomain.Service
	estimateRepo repository.Repository[estimationdomain.Estimate]
	metrics      *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Catalog catalogdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) estimationdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("estimation.service"),

		genID:        p.GenID,
		catalog:      p.Catalog,
		estimateRepo: repository.ProvideStore[estimationdomain.Estimate](p.DB),
		metrics:      p.Metrics,
	}
}

// CalculateEstimate prices one job against the current catalog without
// persisting anything.
func (s *Service) CalculateEstimate(ctx context.Context, input estimationdomain.PricingInput) (*estimationdomain.PricingResult, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := Evaluate(snapshot, input)
	s.metrics.RecordEstimateCalculated(ctx, jobTypeLabel(input))
	return &result, nil
}

// CreateEstimate prices the job and stores the result with the input snapshot
// so the adjustment ledger has an anchor row to replay against.
func (s *Service) CreateEstimate(ctx context.Context, input estimationdomain.PricingInput) (*estimationdomain.Estimate, error) {
	result, err := s.CalculateEstimate(ctx, input)
	if err != nil {
		return nil, err
	}

	inputSnapshot, err := marshalInput(input)
	if err != nil {
		return nil, err
	}
	breakdown, err := json.Marshal(result.Adjustments)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	estimate := &estimationdomain.Estimate{
		ID:          s.genID.Generate(),
		JobType:     jobTypeLabel(input),
		PriceLow:    result.PriceLow,
		PriceLikely: result.PriceLikely,
		PriceHigh:   result.PriceHigh,
		Input:       inputSnapshot,
		Breakdown:   datatypes.JSON(breakdown),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, err
	}

	s.log.Info("estimate created",
		zap.String("estimate_id", estimate.ID.String()),
		zap.String("job_type", estimate.JobType),
		zap.Int64("price_likely", estimate.PriceLikely),
	)
	return estimate, nil
}

func (s *Service) GetEstimate(ctx context.Context, id string) (*estimationdomain.Estimate, error) {
	estimateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, estimationdomain.ErrInvalidEstimateID
	}

	estimate, err := s.estimateRepo.FindOne(ctx, &estimationdomain.Estimate{ID: estimateID})
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, estimationdomain.ErrEstimateNotFound
	}
	return estimate, nil
}

func marshalInput(input estimationdomain.PricingInput) (datatypes.JSONMap, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var snapshot datatypes.JSONMap
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func jobTypeLabel(input estimationdomain.PricingInput) string {
	if input.JobType != nil && *input.JobType != "" {
		return string(*input.JobType)
	}
	return string(estimationdomain.JobTypeFullReplacement)
}
