package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStep_DiscountPercent(t *testing.T) {
	amount, newPrice, err := ComputeStep(1000000, TypeDiscountPercent, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), amount)
	assert.Equal(t, int64(900000), newPrice)

	// The cap is inclusive.
	_, newPrice, err = ComputeStep(1000000, TypeDiscountPercent, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), newPrice)

	_, _, err = ComputeStep(1000000, TypeDiscountPercent, 51)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)

	_, _, err = ComputeStep(1000000, TypeDiscountPercent, 0)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)

	_, _, err = ComputeStep(1000000, TypeDiscountPercent, -5)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)
}

func TestComputeStep_DiscountFixed(t *testing.T) {
	amount, newPrice, err := ComputeStep(1000000, TypeDiscountFixed, 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), amount)
	assert.Equal(t, int64(950000), newPrice)

	_, _, err = ComputeStep(1000000, TypeDiscountFixed, 0)
	assert.ErrorIs(t, err, ErrInvalidAdjustmentValue)
}

func TestComputeStep_PriceOverride(t *testing.T) {
	amount, newPrice, err := ComputeStep(1000000, TypePriceOverride, 800000)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), amount)
	assert.Equal(t, int64(800000), newPrice)

	// Overriding upward yields a negative amount: a price increase.
	amount, newPrice, err = ComputeStep(1000000, TypePriceOverride, 1200000)
	require.NoError(t, err)
	assert.Equal(t, int64(-200000), amount)
	assert.Equal(t, int64(1200000), newPrice)

	_, _, err = ComputeStep(1000000, TypePriceOverride, -1)
	assert.ErrorIs(t, err, ErrInvalidAdjustmentValue)
}

func TestComputeStep_UnknownType(t *testing.T) {
	_, _, err := ComputeStep(1000000, AdjustmentType("markdown"), 10)
	assert.ErrorIs(t, err, ErrInvalidAdjustmentType)
}

func TestReplay_EmptyLedgerMeansUnadjusted(t *testing.T) {
	price, err := Replay(1000000, nil)
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestReplay_SequentialComposition(t *testing.T) {
	records := []PriceAdjustment{
		{AdjustmentType: TypeDiscountPercent, AdjustmentValue: 10},
		{AdjustmentType: TypeDiscountFixed, AdjustmentValue: 50000},
		{AdjustmentType: TypeDiscountPercent, AdjustmentValue: 20},
	}

	// 1000000 -> 900000 -> 850000 -> 680000; each step bases on the prior.
	price, err := Replay(1000000, records)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, int64(680000), *price)
}
