package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDiscount = errors.New("invalid discount percent")
)

// A DiscountAssignment maps product ids to discount percents for one
// calendar week. Absence of an id means no discount.
type DiscountAssignment map[string]int

// Percent returns the assigned percent or 0 when the product
// is not discounted.
func (a DiscountAssignment) Percent(productID string) int {
	return a[productID]
}
