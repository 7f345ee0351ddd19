package discount_test

import (
	"testing"

	"github.com/niksmo/swimstore/internal/core/discount"
	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	t.Run("RoundsHalfAwayFromZero", func(t *testing.T) {
		// 89.99 * 0.75 = 67.4925
		got, err := discount.DiscountedPrice(89.99, 25)
		require.NoError(t, err)
		assert.Equal(t, 67.49, got)

		// 19.99 * 0.85 = 16.9915
		got, err = discount.DiscountedPrice(19.99, 15)
		require.NoError(t, err)
		assert.Equal(t, 16.99, got)
	})

	t.Run("ZeroPercentIdentity", func(t *testing.T) {
		got, err := discount.DiscountedPrice(49.99, 0)
		require.NoError(t, err)
		assert.Equal(t, 49.99, got)
	})

	t.Run("ZeroBase", func(t *testing.T) {
		got, err := discount.DiscountedPrice(0, 25)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("FullDiscount", func(t *testing.T) {
		got, err := discount.DiscountedPrice(100, 100)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("ExactTier", func(t *testing.T) {
		got, err := discount.DiscountedPrice(100, 15)
		require.NoError(t, err)
		assert.Equal(t, 85.0, got)
	})

	t.Run("NegativeBase", func(t *testing.T) {
		_, err := discount.DiscountedPrice(-1, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("PercentOutOfRange", func(t *testing.T) {
		_, err := discount.DiscountedPrice(10, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

		_, err = discount.DiscountedPrice(10, 101)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})
}

func TestAssignmentPercent(t *testing.T) {
	a := domain.DiscountAssignment{"42": 15, "107": 25}

	assert.Equal(t, 15, a.Percent("42"))
	assert.Equal(t, 25, a.Percent("107"))
	assert.Equal(t, 0, a.Percent("absent"))
	assert.Equal(t, 0, domain.DiscountAssignment(nil).Percent("42"))
}
