package domain

import "math"

// ComputeStep applies one adjustment to basePrice and returns the signed
// amount and the resulting price. Validation happens here, before anything is
// written: a bad type or out-of-range value rejects the whole operation.
//
// The amount sign follows the stored convention: positive amounts lower the
// price, a negative override amount signals an increase.
func ComputeStep(basePrice int64, adjustmentType AdjustmentType, value float64) (amount int64, newPrice int64, err error) {
	switch adjustmentType {
	case TypeDiscountPercent:
		if value <= 0 || value > MaxDiscountPercent {
			return 0, 0, ErrPercentOutOfRange
		}
		amount = roundMoney(float64(basePrice) * value / 100)
		return amount, basePrice - amount, nil
	case TypeDiscountFixed:
		if value <= 0 {
			return 0, 0, ErrInvalidAdjustmentValue
		}
		amount = roundMoney(value)
		return amount, basePrice - amount, nil
	case TypePriceOverride:
		if value < 0 {
			return 0, 0, ErrInvalidAdjustmentValue
		}
		target := roundMoney(value)
		return basePrice - target, target, nil
	default:
		return 0, 0, ErrInvalidAdjustmentType
	}
}

// Replay recomputes the adjusted price from scratch: starting at the
// estimate's original likely price, every surviving record is reapplied in
// creation order, each step's base being the prior step's result. A nil return
// means no records remain, i.e. "no adjustment", not "adjusted to zero".
//
// Adjustments are not independently reversible by subtracting their stored
// amount: later records were computed against intermediate prices that may
// have depended on the removed one. Replay is mandatory, not an optimization.
func Replay(priceLikely int64, records []PriceAdjustment) (*int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	price := priceLikely
	for i := range records {
		_, next, err := ComputeStep(price, records[i].AdjustmentType, records[i].AdjustmentValue)
		if err != nil {
			return nil, err
		}
		price = next
	}
	return &price, nil
}

func roundMoney(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
