// Package exchange supplies exchange-rate snapshots and currency conversion.
//
// A Snapshot is an immutable set of rates relative to one base currency.
// Every logical computation (one balance run, one settlement run) must take
// a single Snapshot and thread it through all conversions so cross-rates
// stay consistent; the Provider is never re-queried mid-computation.
package exchange

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// ErrUnsupportedCurrency is returned when a requested currency code is
// absent from the active snapshot. Recoverable by refreshing rates or
// picking a supported currency.
var ErrUnsupportedCurrency = errors.New("currency not in rate snapshot")

// divisionScale is the decimal scale used for rate division. Well above the
// 18 significant digits conversions need; rounding to display precision
// happens only at the edges.
const divisionScale = 24

// Snapshot is an immutable set of exchange rates relative to Base.
// Rates are "units of currency per 1 unit of Base". A snapshot is
// superseded by the next refresh, never mutated.
type Snapshot struct {
	Base      money.Currency
	Date      string // as-of date, YYYY-MM-DD
	Rates     map[money.Currency]decimal.Decimal
	FetchedAt time.Time
}

// Rate returns the rate for a currency relative to the snapshot base.
func (s *Snapshot) Rate(c money.Currency) (decimal.Decimal, error) {
	rate, ok := s.Rates[c]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c)
	}
	return rate, nil
}

// Supports reports whether the snapshot carries a rate for the currency.
func (s *Snapshot) Supports(c money.Currency) bool {
	_, ok := s.Rates[c]
	return ok
}

// Convert converts m into the target currency through the snapshot base:
// amount / rate[from] * rate[to]. Same-currency conversion returns the
// input unchanged without touching the snapshot, so no precision is lost.
func Convert(m money.Money, to money.Currency, snap *Snapshot) (money.Money, error) {
	if m.Currency == to {
		return m, nil
	}
	fromRate, err := snap.Rate(m.Currency)
	if err != nil {
		return money.Money{}, err
	}
	toRate, err := snap.Rate(to)
	if err != nil {
		return money.Money{}, err
	}
	// Multiply before dividing so the single rounding point sits at
	// divisionScale, far below anything a display rounding can see.
	amount := m.Amount.Mul(toRate).DivRound(fromRate, divisionScale)
	return money.New(amount, to), nil
}
