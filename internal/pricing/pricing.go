// Package pricing holds the arithmetic shared by product management and the
// purchase flow: profit margins and per-line VAT totals.
package pricing

import (
	"fmt"
	"math"

	"andhara-backend/internal/apperrors"
)

// ProfitMargin returns the margin percentage derived from the purchase and
// sale price, rounded to two decimals. Both prices must be strictly positive;
// the margin is always recomputed from them and never trusted from input.
func ProfitMargin(purchasePrice, salePrice float64) (float64, error) {
	if purchasePrice <= 0 || salePrice <= 0 {
		return 0, fmt.Errorf("%w: purchase price and sale price must be greater than zero to compute the profit margin", apperrors.ErrValidation)
	}
	margin := ((salePrice - purchasePrice) / purchasePrice) * 100
	return math.Round(margin*100) / 100, nil
}

// LineTotals returns the subtotal without VAT and the total with VAT for one
// purchase line. A VAT of zero or less is a data-integrity error, not a
// tax-free sale.
func LineTotals(salePrice float64, quantity int, vat float64) (subtotal, total float64, err error) {
	if quantity <= 0 {
		return 0, 0, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}
	if vat <= 0 {
		return 0, 0, fmt.Errorf("%w: VAT must be greater than zero", apperrors.ErrValidation)
	}
	subtotal = salePrice * float64(quantity)
	total = subtotal * (1 + vat/100)
	return subtotal, total, nil
}

// ValidVAT rejects a VAT percentage of zero or less.
func ValidVAT(vat float64) error {
	if vat <= 0 {
		return fmt.Errorf("%w: VAT must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

// NonNegative fails when value is below zero. Used across product and stock
// payloads.
func NonNegative(field string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, field)
	}
	return nil
}
