package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	adjustmentdomain "github.com/shinglesoft/roofline/internal/adjustment/domain"
	estimationdomain "github.com/shinglesoft/roofline/internal/estimation/domain"
	"github.com/shinglesoft/roofline/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	repo    adjustmentdomain.Repository
	metrics *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    adjustmentdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) adjustmentdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("adjustment.service"),

		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Apply appends one ledger record and moves the estimate's adjusted price.
// The step's base is the current adjusted price when one exists, else the
// original likely price: stacked adjustments compose sequentially, not each
// against the pristine original.
func (s *Service) Apply(ctx context.Context, req adjustmentdomain.ApplyRequest) (*adjustmentdomain.ApplyResult, error) {
	estimateID, err := parseID(req.EstimateID)
	if err != nil {
		return nil, adjustmentdomain.ErrInvalidEstimateID
	}

	var result adjustmentdomain.ApplyResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estimate, err := s.loadEstimate(ctx, tx, estimateID)
		if err != nil {
			return err
		}
		if estimate == nil {
			return adjustmentdomain.ErrEstimateNotFound
		}

		basePrice := estimate.PriceLikely
		if estimate.AdjustedPrice != nil {
			basePrice = *estimate.AdjustedPrice
		}

		amount, newPrice, err := adjustmentdomain.ComputeStep(basePrice, req.Type, req.Value)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		record := &adjustmentdomain.PriceAdjustment{
			ID:               s.genID.Generate(),
			EstimateID:       estimateID,
			AdjustmentType:   req.Type,
			AdjustmentValue:  req.Value,
			AdjustmentAmount: amount,
			OriginalPrice:    basePrice,
			NewPrice:         newPrice,
			Description:      strings.TrimSpace(req.Description),
			InternalReason:   strings.TrimSpace(req.InternalReason),
			AppliedBy:        strings.TrimSpace(req.AppliedBy),
			CreatedAt:        now,
		}
		if err := s.repo.Insert(ctx, tx, record); err != nil {
			return err
		}

		if err := s.storeAdjustedPrice(ctx, tx, estimate, &newPrice, now); err != nil {
			return err
		}

		result = adjustmentdomain.ApplyResult{Record: record, AdjustedPrice: newPrice}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAdjustmentApplied(ctx, string(req.Type))
	s.log.Info("adjustment applied",
		zap.String("estimate_id", estimateID.String()),
		zap.String("adjustment_type", string(req.Type)),
		zap.Int64("adjusted_price", result.AdjustedPrice),
	)
	return &result, nil
}

// Remove deletes one record and recomputes the adjusted price from scratch by
// replaying the survivors in creation order.
func (s *Service) Remove(ctx context.Context, estimateID, adjustmentID string) (*adjustmentdomain.RemoveResult, error) {
	estID, err := parseID(estimateID)
	if err != nil {
		return nil, adjustmentdomain.ErrInvalidEstimateID
	}
	adjID, err := parseID(adjustmentID)
	if err != nil {
		return nil, adjustmentdomain.ErrInvalidAdjustmentID
	}

	var result adjustmentdomain.RemoveResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindByID(ctx, tx, adjID)
		if err != nil {
			return err
		}
		if record == nil {
			return adjustmentdomain.ErrAdjustmentNotFound
		}
		if record.EstimateID != estID {
			return adjustmentdomain.ErrAdjustmentMismatch
		}

		estimate, err := s.loadEstimate(ctx, tx, estID)
		if err != nil {
			return err
		}
		if estimate == nil {
			return adjustmentdomain.ErrEstimateNotFound
		}

		if err := s.repo.Delete(ctx, tx, adjID); err != nil {
			return err
		}

		remaining, err := s.repo.ListByEstimate(ctx, tx, estID, true)
		if err != nil {
			return err
		}

		newPrice, err := adjustmentdomain.Replay(estimate.PriceLikely, remaining)
		if err != nil {
			return err
		}

		if err := s.storeAdjustedPrice(ctx, tx, estimate, newPrice, time.Now().UTC()); err != nil {
			return err
		}

		result = adjustmentdomain.RemoveResult{NewPrice: newPrice}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAdjustmentRemoved(ctx)
	s.log.Info("adjustment removed",
		zap.String("estimate_id", estID.String()),
		zap.String("adjustment_id", adjID.String()),
	)
	return &result, nil
}

// List returns the estimate's ledger, newest first.
func (s *Service) List(ctx context.Context, estimateID string) ([]adjustmentdomain.PriceAdjustment, error) {
	estID, err := parseID(estimateID)
	if err != nil {
		return nil, adjustmentdomain.ErrInvalidEstimateID
	}

	records, err := s.repo.ListByEstimate(ctx, s.db, estID, false)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []adjustmentdomain.PriceAdjustment{}
	}
	return records, nil
}

func (s *Service) loadEstimate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*estimationdomain.Estimate, error) {
	var estimate estimationdomain.Estimate
	err := tx.WithContext(ctx).Model(&estimationdomain.Estimate{}).
		Where("id = ?", id).
		First(&estimate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &estimate, nil
}

// storeAdjustedPrice moves the estimate's adjusted price with a conditional
// update keyed on the value read at the start of the operation. Two concurrent
// mutations against the same estimate cannot both win: the loser's condition
// no longer matches and the write is rejected instead of clobbering.
func (s *Service) storeAdjustedPrice(ctx context.Context, tx *gorm.DB, estimate *estimationdomain.Estimate, newPrice *int64, now time.Time) error {
	stmt := tx.WithContext(ctx).Model(&estimationdomain.Estimate{}).
		Where("id = ?", estimate.ID)
	if estimate.AdjustedPrice == nil {
		stmt = stmt.Where("adjusted_price IS NULL")
	} else {
		stmt = stmt.Where("adjusted_price = ?", *estimate.AdjustedPrice)
	}

	res := stmt.Updates(map[string]any{
		"adjusted_price": newPrice,
		"updated_at":     now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return adjustmentdomain.ErrConcurrentUpdate
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
