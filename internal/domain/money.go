package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places carried by every balance and
// amount. All arithmetic happens on int64 minor units; decimal is only used
// at the parse/format boundary so binary floating point never enters the
// money path.
const moneyScale = 2

// Money is a non-negative amount in minor units (cents).
type Money struct {
	units int64
}

var ZeroMoney = Money{}

// NewMoney builds a Money from a minor-unit value.
func NewMoney(units int64) (Money, error) {
	if units < 0 {
		return Money{}, fmt.Errorf("%w: minor units cannot be negative", ErrInvalidAmount)
	}
	return Money{units: units}, nil
}

// MoneyFromDecimal converts a boundary decimal into Money. Negative values
// and sub-cent precision are rejected rather than rounded, so a request
// cannot smuggle in an amount the ledger would have to truncate.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}
	scaled := d.Shift(moneyScale)
	if !scaled.IsInteger() {
		return Money{}, fmt.Errorf("%w: amount has more than %d decimal places", ErrInvalidAmount, moneyScale)
	}
	if !scaled.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: amount is out of range", ErrInvalidAmount)
	}
	return Money{units: scaled.IntPart()}, nil
}

// ParseMoney parses a boundary string such as "150.00".
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount must be numeric", ErrInvalidAmount)
	}
	return MoneyFromDecimal(d)
}

func (m Money) Units() int64 { return m.units }

func (m Money) IsZero() bool { return m.units == 0 }

func (m Money) IsPositive() bool { return m.units > 0 }

func (m Money) Add(other Money) Money {
	return Money{units: m.units + other.units}
}

// Sub returns m - other, failing with ErrUnderflow when the result would be
// negative. Balances are never allowed below zero, so there is no signed
// variant.
func (m Money) Sub(other Money) (Money, error) {
	if other.units > m.units {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrUnderflow, m, other)
	}
	return Money{units: m.units - other.units}, nil
}

func (m Money) LessThan(other Money) bool { return m.units < other.units }

func (m Money) Equal(other Money) bool { return m.units == other.units }

// Decimal returns the major-unit decimal view, e.g. 1234 -> 12.34.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -moneyScale)
}

// String renders the amount with the full scale, e.g. "12.34".
func (m Money) String() string {
	return m.Decimal().StringFixed(moneyScale)
}
