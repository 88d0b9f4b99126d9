package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	adjustmentdomain "github.com/shinglesoft/roofline/internal/adjustment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() adjustmentdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *adjustmentdomain.PriceAdjustment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO price_adjustments (
			id, estimate_id, adjustment_type, adjustment_value, adjustment_amount,
			original_price, new_price, description, internal_reason, applied_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.EstimateID,
		record.AdjustmentType,
		record.AdjustmentValue,
		record.AdjustmentAmount,
		record.OriginalPrice,
		record.NewPrice,
		record.Description,
		record.InternalReason,
		record.AppliedBy,
		record.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*adjustmentdomain.PriceAdjustment, error) {
	var record adjustmentdomain.PriceAdjustment
	err := db.WithContext(ctx).Raw(
		`SELECT id, estimate_id, adjustment_type, adjustment_value, adjustment_amount,
		 original_price, new_price, description, internal_reason, applied_by, created_at
		 FROM price_adjustments WHERE id = ?`,
		id,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM price_adjustments WHERE id = ?`,
		id,
	).Error
}

func (r *repo) ListByEstimate(ctx context.Context, db *gorm.DB, estimateID snowflake.ID, ascending bool) ([]adjustmentdomain.PriceAdjustment, error) {
	order := `ORDER BY created_at DESC, id DESC`
	if ascending {
		order = `ORDER BY created_at ASC, id ASC`
	}

	var records []adjustmentdomain.PriceAdjustment
	err := db.WithContext(ctx).Raw(
		`SELECT id, estimate_id, adjustment_type, adjustment_value, adjustment_amount,
		 original_price, new_price, description, internal_reason, applied_by, created_at
		 FROM price_adjustments WHERE estimate_id = ? `+order,
		estimateID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
