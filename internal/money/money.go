// Package money provides the currency-tagged exact decimal value type used
// for all monetary arithmetic, plus the supported-currency reference table.
//
// Amounts are shopspring decimals, never binary floats. Rounding happens
// only at display time via Rounded; every intermediate result keeps full
// precision so repeated conversions cannot drift at the cent level.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
// Callers must normalize through an exchange snapshot first.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an exact decimal amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// New creates a Money value.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// FromString parses a decimal string into a Money value.
func FromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. Both values must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Rounded returns the amount rounded to the currency's minor units.
// Display only; never feed the result back into a computation.
func (m Money) Rounded() decimal.Decimal {
	return m.Amount.Round(m.Currency.MinorUnits())
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Rounded().String(), m.Currency)
}
