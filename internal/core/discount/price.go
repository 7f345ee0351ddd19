package discount

import (
	"fmt"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DiscountedPrice applies percent to the base price and rounds half
// away from zero to 2 decimal places. A zero percent returns the base
// price rounded the same way.
func DiscountedPrice(base float64, percent int) (float64, error) {
	const op = "discount.DiscountedPrice"

	if base < 0 {
		return 0, fmt.Errorf(
			"%s: base price %v: %w", op, base, domain.ErrInvalidInput,
		)
	}
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf(
			"%s: percent %d: %w", op, percent, domain.ErrInvalidDiscount,
		)
	}

	p := decimal.NewFromFloat(base).
		Mul(decimal.NewFromInt(int64(100 - percent))).
		Shift(-2).
		Round(2)
	return p.InexactFloat64(), nil
}
