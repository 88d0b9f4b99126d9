package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	adjustmentdomain "github.com/shinglesoft/roofline/internal/adjustment/domain"
	adjustmentrepository "github.com/shinglesoft/roofline/internal/adjustment/repository"
	estimationdomain "github.com/shinglesoft/roofline/internal/estimation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	svc      adjustmentdomain.Service
	db       *gorm.DB
	node     *snowflake.Node
	estimate *estimationdomain.Estimate
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&estimationdomain.Estimate{},
		&adjustmentdomain.PriceAdjustment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	estimate := &estimationdomain.Estimate{
		ID:          node.Generate(),
		JobType:     string(estimationdomain.JobTypeFullReplacement),
		PriceLow:    850000,
		PriceLikely: 1000000,
		PriceHigh:   1250000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(estimate).Error)

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  adjustmentrepository.Provide(),
	})

	return &ledgerFixture{svc: svc, db: db, node: node, estimate: estimate}
}

func (f *ledgerFixture) apply(t *testing.T, adjType adjustmentdomain.AdjustmentType, value float64) *adjustmentdomain.ApplyResult {
	t.Helper()
	result, err := f.svc.Apply(context.Background(), adjustmentdomain.ApplyRequest{
		EstimateID: f.estimate.ID.String(),
		Type:       adjType,
		Value:      value,
	})
	require.NoError(t, err)
	return result
}

func (f *ledgerFixture) storedAdjustedPrice(t *testing.T) *int64 {
	t.Helper()
	var stored estimationdomain.Estimate
	require.NoError(t, f.db.First(&stored, "id = ?", f.estimate.ID).Error)
	return stored.AdjustedPrice
}

func TestApply_SequentialStacking(t *testing.T) {
	f := newLedgerFixture(t)

	first := f.apply(t, adjustmentdomain.TypeDiscountPercent, 10)
	assert.Equal(t, int64(100000), first.Record.AdjustmentAmount)
	assert.Equal(t, int64(1000000), first.Record.OriginalPrice)
	assert.Equal(t, int64(900000), first.AdjustedPrice)

	// The second discount bases on the adjusted price, not the original.
	second := f.apply(t, adjustmentdomain.TypeDiscountPercent, 10)
	assert.Equal(t, int64(900000), second.Record.OriginalPrice)
	assert.Equal(t, int64(90000), second.Record.AdjustmentAmount)
	assert.Equal(t, int64(810000), second.AdjustedPrice)

	stored := f.storedAdjustedPrice(t)
	require.NotNil(t, stored)
	assert.Equal(t, int64(810000), *stored)
}

func TestRemove_ReplaysNotSubtracts(t *testing.T) {
	f := newLedgerFixture(t)

	// $10,000 -> 10% off -> $9,000 -> $500 off -> $8,500.
	percent := f.apply(t, adjustmentdomain.TypeDiscountPercent, 10)
	f.apply(t, adjustmentdomain.TypeDiscountFixed, 50000)

	result, err := f.svc.Remove(context.Background(), f.estimate.ID.String(), percent.Record.ID.String())
	require.NoError(t, err)
	require.NotNil(t, result.NewPrice)

	// Replay yields $10,000 - $500 = $9,500.
	assert.Equal(t, int64(950000), *result.NewPrice)
	stored := f.storedAdjustedPrice(t)
	require.NotNil(t, stored)
	assert.Equal(t, int64(950000), *stored)
}

func TestRemove_NonCommutingOrder(t *testing.T) {
	f := newLedgerFixture(t)

	// Percent-then-percent distinguishes replay from naive subtraction:
	// $10,000 -> 10% -> $9,000 -> 20% -> $7,200.
	first := f.apply(t, adjustmentdomain.TypeDiscountPercent, 10)
	f.apply(t, adjustmentdomain.TypeDiscountPercent, 20)

	result, err := f.svc.Remove(context.Background(), f.estimate.ID.String(), first.Record.ID.String())
	require.NoError(t, err)
	require.NotNil(t, result.NewPrice)

	// Replay: $10,000 * 0.8 = $8,000. Naive subtraction would give
	// $7,200 + $1,000 = $8,200.
	assert.Equal(t, int64(800000), *result.NewPrice)
}

func TestRemove_LastRecordClearsAdjustedPrice(t *testing.T) {
	f := newLedgerFixture(t)

	applied := f.apply(t, adjustmentdomain.TypeDiscountFixed, 25000)

	result, err := f.svc.Remove(context.Background(), f.estimate.ID.String(), applied.Record.ID.String())
	require.NoError(t, err)
	assert.Nil(t, result.NewPrice)
	assert.Nil(t, f.storedAdjustedPrice(t))
}

func TestApply_PercentCap(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, adjustmentdomain.ApplyRequest{
		EstimateID: f.estimate.ID.String(),
		Type:       adjustmentdomain.TypeDiscountPercent,
		Value:      51,
	})
	assert.ErrorIs(t, err, adjustmentdomain.ErrPercentOutOfRange)

	// Rejected before any write: nothing in the ledger, estimate untouched.
	records, err := f.svc.List(ctx, f.estimate.ID.String())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Nil(t, f.storedAdjustedPrice(t))

	result := f.apply(t, adjustmentdomain.TypeDiscountPercent, 50)
	assert.Equal(t, int64(500000), result.AdjustedPrice)
}

func TestApply_Validation(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, adjustmentdomain.ApplyRequest{
		EstimateID: f.estimate.ID.String(),
		Type:       adjustmentdomain.AdjustmentType("markdown"),
		Value:      10,
	})
	assert.ErrorIs(t, err, adjustmentdomain.ErrInvalidAdjustmentType)

	_, err = f.svc.Apply(ctx, adjustmentdomain.ApplyRequest{
		EstimateID: "not-an-id",
		Type:       adjustmentdomain.TypeDiscountFixed,
		Value:      100,
	})
	assert.ErrorIs(t, err, adjustmentdomain.ErrInvalidEstimateID)

	_, err = f.svc.Apply(ctx, adjustmentdomain.ApplyRequest{
		EstimateID: f.node.Generate().String(),
		Type:       adjustmentdomain.TypeDiscountFixed,
		Value:      100,
	})
	assert.ErrorIs(t, err, adjustmentdomain.ErrEstimateNotFound)
}

func TestApply_PriceOverrideIncrease(t *testing.T) {
	f := newLedgerFixture(t)

	result := f.apply(t, adjustmentdomain.TypePriceOverride, 1200000)
	assert.Equal(t, int64(-200000), result.Record.AdjustmentAmount)
	assert.Equal(t, int64(1200000), result.AdjustedPrice)
}

func TestRemove_OwnershipChecked(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	applied := f.apply(t, adjustmentdomain.TypeDiscountFixed, 10000)

	// A second estimate must not be able to remove the first one's record.
	now := time.Now().UTC()
	other := &estimationdomain.Estimate{
		ID:          f.node.Generate(),
		JobType:     string(estimationdomain.JobTypeRepair),
		PriceLow:    40000,
		PriceLikely: 45000,
		PriceHigh:   56300,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.svc.Remove(ctx, other.ID.String(), applied.Record.ID.String())
	assert.ErrorIs(t, err, adjustmentdomain.ErrAdjustmentMismatch)

	// The record survives the rejected removal.
	records, err := f.svc.List(ctx, f.estimate.ID.String())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = f.svc.Remove(ctx, f.estimate.ID.String(), f.node.Generate().String())
	assert.ErrorIs(t, err, adjustmentdomain.ErrAdjustmentNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	f.apply(t, adjustmentdomain.TypeDiscountPercent, 5)
	f.apply(t, adjustmentdomain.TypeDiscountFixed, 10000)
	last := f.apply(t, adjustmentdomain.TypeDiscountPercent, 15)

	records, err := f.svc.List(ctx, f.estimate.ID.String())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, last.Record.ID, records[0].ID)
	assert.True(t, records[0].CreatedAt.After(records[2].CreatedAt) || records[0].ID > records[2].ID)
}
