package pricing_test

import (
	"testing"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitMargin(t *testing.T) {
	t.Parallel()

	t.Run("fifty percent", func(t *testing.T) {
		t.Parallel()
		margin, err := pricing.ProfitMargin(100, 150)
		require.NoError(t, err)
		assert.Equal(t, 50.0, margin)
	})

	t.Run("break even is zero", func(t *testing.T) {
		t.Parallel()
		margin, err := pricing.ProfitMargin(100, 100)
		require.NoError(t, err)
		assert.Equal(t, 0.0, margin)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		t.Parallel()
		margin, err := pricing.ProfitMargin(3, 4)
		require.NoError(t, err)
		assert.Equal(t, 33.33, margin)
	})

	t.Run("selling below cost is negative", func(t *testing.T) {
		t.Parallel()
		margin, err := pricing.ProfitMargin(100, 80)
		require.NoError(t, err)
		assert.Equal(t, -20.0, margin)
	})

	t.Run("zero purchase price rejected", func(t *testing.T) {
		t.Parallel()
		_, err := pricing.ProfitMargin(0, 150)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero sale price rejected", func(t *testing.T) {
		t.Parallel()
		_, err := pricing.ProfitMargin(100, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestLineTotals(t *testing.T) {
	t.Parallel()

	t.Run("vat applied on subtotal", func(t *testing.T) {
		t.Parallel()
		subtotal, total, err := pricing.LineTotals(100, 3, 19)
		require.NoError(t, err)
		assert.Equal(t, 300.0, subtotal)
		assert.InDelta(t, 357.0, total, 0.0001)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := pricing.LineTotals(100, 0, 19)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero vat rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := pricing.LineTotals(100, 1, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestValidVAT(t *testing.T) {
	t.Parallel()
	assert.NoError(t, pricing.ValidVAT(19))
	assert.ErrorIs(t, pricing.ValidVAT(0), apperrors.ErrValidation)
	assert.ErrorIs(t, pricing.ValidVAT(-5), apperrors.ErrValidation)
}

func TestNonNegative(t *testing.T) {
	t.Parallel()
	assert.NoError(t, pricing.NonNegative("remaining_balance", 0))
	assert.ErrorIs(t, pricing.NonNegative("remaining_balance", -1), apperrors.ErrValidation)
}
