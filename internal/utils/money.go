package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Money represents a monetary value in the smallest currency unit (cents).
// Loan principals, installments and repayments are all KSh amounts with
// two decimal places, so int64 cents keeps them exact.
type Money int64

// Currency represents a currency with its formatting rules
type Currency struct {
	Code          string // ISO 4217 code (e.g., "KES")
	Symbol        string // Display symbol (e.g., "KSh")
	SymbolFirst   bool   // True if symbol comes before amount
	DecimalPlaces int    // Usually 2
	ThousandsSep  string // Thousands separator
	DecimalSep    string // Decimal separator
}

// Currencies seen in East African microfinance reporting
var Currencies = map[string]Currency{
	"KES": {Code: "KES", Symbol: "KSh", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"UGX": {Code: "UGX", Symbol: "USh", SymbolFirst: true, DecimalPlaces: 0, ThousandsSep: ",", DecimalSep: "."},
	"TZS": {Code: "TZS", Symbol: "TSh", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
}

// DefaultCurrency is used when a currency code is not found
var DefaultCurrency = Currencies["KES"]

// Shillings creates a Money value from whole shillings
func Shillings(shillings int64) Money {
	return Money(shillings * 100)
}

// FromFloat creates a Money value from a float64, rounding to the nearest cent
func FromFloat(amount float64) Money {
	if amount >= 0 {
		return Money(amount*100 + 0.5)
	}
	return Money(amount*100 - 0.5)
}

// ToFloat returns the value in shillings as a float64
func (m Money) ToFloat() float64 {
	return float64(m) / 100
}

// ShillingsPart returns just the whole shillings portion
func (m Money) ShillingsPart() int64 {
	return int64(m) / 100
}

// Add returns the sum of two Money values
func (m Money) Add(other Money) Money {
	return m + other
}

// DivRound divides by an integer, rounding half away from zero to the nearest cent
func (m Money) DivRound(n int64) Money {
	if n == 0 {
		return m
	}
	q := int64(m) / n
	r := int64(m) % n
	if r < 0 {
		r = -r
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if 2*r >= abs {
		if (int64(m) < 0) != (n < 0) {
			q--
		} else {
			q++
		}
	}
	return Money(q)
}

// Max returns the larger of two Money values
func (m Money) Max(other Money) Money {
	if m > other {
		return m
	}
	return other
}

// String returns a simple string representation (e.g., "123.45")
func (m Money) String() string {
	negative := m < 0
	if negative {
		m = -m
	}
	shillings := int64(m) / 100
	cents := int64(m) % 100

	result := fmt.Sprintf("%d.%02d", shillings, cents)
	if negative {
		result = "-" + result
	}
	return result
}

// Format formats the money value with the given currency
func (m Money) Format(currencyCode string) string {
	currency, ok := Currencies[currencyCode]
	if !ok {
		currency = DefaultCurrency
	}

	negative := m < 0
	if negative {
		m = -m
	}

	// Money is always stored in cents; rescale for the currency's precision
	scaled := int64(m)
	for i := currency.DecimalPlaces; i < 2; i++ {
		scaled /= 10
	}

	multiplier := int64(1)
	for i := 0; i < currency.DecimalPlaces; i++ {
		multiplier *= 10
	}

	whole := scaled / multiplier
	frac := scaled % multiplier

	wholeStr := formatWithSeparator(whole, currency.ThousandsSep)

	var result string
	if currency.DecimalPlaces > 0 {
		fracStr := fmt.Sprintf("%0*d", currency.DecimalPlaces, frac)
		result = wholeStr + currency.DecimalSep + fracStr
	} else {
		result = wholeStr
	}

	if currency.SymbolFirst {
		result = currency.Symbol + " " + result
	} else {
		result = result + " " + currency.Symbol
	}

	if negative {
		result = "-" + result
	}

	return result
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}
