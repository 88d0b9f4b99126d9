package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PriceAdjustment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceAdjustment, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	// ListByEstimate returns the estimate's records in creation order when
	// ascending, newest first otherwise. Creation-time ties break on ID, which
	// is generation-ordered.
	ListByEstimate(ctx context.Context, db *gorm.DB, estimateID snowflake.ID, ascending bool) ([]PriceAdjustment, error)
}
