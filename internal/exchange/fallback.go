package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// fallbackDate records when the static table was last refreshed.
const fallbackDate = "2025-11-04"

// fallbackRates is the embedded USD-based rate table used whenever the live
// source is unreachable or unparseable. Approximate by construction; good
// enough to keep balances and suggestions working offline. Covers every
// currency in the money package reference table.
var fallbackRates = map[money.Currency]string{
	"AED": "3.6725",
	"ARS": "1052.50",
	"AUD": "1.53",
	"BDT": "119.50",
	"BGN": "1.80",
	"BHD": "0.376",
	"BND": "1.34",
	"BOB": "6.91",
	"BRL": "5.42",
	"CAD": "1.40",
	"CHF": "0.88",
	"CLP": "965.00",
	"CNY": "7.15",
	"COP": "4185.00",
	"CRC": "508.00",
	"CZK": "23.30",
	"DKK": "6.88",
	"DOP": "60.50",
	"DZD": "133.40",
	"EGP": "48.60",
	"EUR": "0.92",
	"FJD": "2.27",
	"GBP": "0.79",
	"GEL": "2.72",
	"GHS": "15.90",
	"GTQ": "7.72",
	"HKD": "7.78",
	"HNL": "25.30",
	"HRK": "6.93",
	"HUF": "374.00",
	"IDR": "15850.00",
	"ILS": "3.72",
	"INR": "84.30",
	"ISK": "137.50",
	"JMD": "157.80",
	"JOD": "0.709",
	"JPY": "152.50",
	"KES": "129.20",
	"KHR": "4060.00",
	"KRW": "1392.00",
	"KWD": "0.307",
	"KZT": "489.00",
	"LAK": "21950.00",
	"LKR": "292.50",
	"MAD": "9.95",
	"MMK": "2100.00",
	"MNT": "3450.00",
	"MOP": "8.02",
	"MUR": "46.30",
	"MVR": "15.40",
	"MXN": "20.10",
	"MYR": "4.37",
	"NGN": "1645.00",
	"NOK": "11.00",
	"NPR": "134.90",
	"NZD": "1.68",
	"OMR": "0.385",
	"PAB": "1.00",
	"PEN": "3.76",
	"PHP": "58.40",
	"PKR": "277.80",
	"PLN": "3.98",
	"PYG": "7820.00",
	"QAR": "3.64",
	"RON": "4.58",
	"RSD": "107.70",
	"RUB": "97.50",
	"SAR": "3.75",
	"SEK": "10.65",
	"SGD": "1.32",
	"THB": "33.80",
	"TND": "3.13",
	"TRY": "34.40",
	"TWD": "32.20",
	"TZS": "2705.00",
	"UAH": "41.30",
	"USD": "1.00",
	"UYU": "41.80",
	"VND": "25350.00",
	"ZAR": "17.60",
}

// FallbackSnapshot returns the static USD-based snapshot. It is
// unconditionally available and must never fail; the table is parsed once
// at package init and a bad literal is a programming error.
func FallbackSnapshot() *Snapshot {
	return &Snapshot{
		Base:  money.USD,
		Date:  fallbackDate,
		Rates: fallbackSnapshot,
	}
}

var fallbackSnapshot = func() map[money.Currency]decimal.Decimal {
	rates := make(map[money.Currency]decimal.Decimal, len(fallbackRates))
	for currency, rate := range fallbackRates {
		rates[currency] = decimal.RequireFromString(rate)
	}
	return rates
}()
