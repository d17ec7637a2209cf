package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Quantity is an immutable sale quantity. Paint is tinted and sold in
// whole or half units (e.g. half-litre tins), so valid quantities land on
// the half-unit grid.
type Quantity struct {
	value decimal.Decimal
}

// IsSaleStep reports whether value lands on the half-unit grid
func IsSaleStep(value decimal.Decimal) bool {
	return value.Mul(two).IsInteger()
}

// NewSaleQuantity validates and wraps a sale quantity. The value must be
// a positive multiple of 0.5.
func NewSaleQuantity(value decimal.Decimal) (Quantity, error) {
	if !value.IsPositive() {
		return Quantity{}, errors.New("quantity must be positive")
	}
	if !IsSaleStep(value) {
		return Quantity{}, errors.New("quantity must be a multiple of 0.5")
	}
	return Quantity{value: value}, nil
}

// Amount returns the underlying decimal
func (q Quantity) Amount() decimal.Decimal {
	return q.value
}

// Cost returns the line total for this quantity at the given unit rate
func (q Quantity) Cost(rate Money) Money {
	return Money{amount: q.value.Mul(rate.amount)}
}

// String returns the plain decimal representation
func (q Quantity) String() string {
	return q.value.String()
}
