// Package money handles the two amount concerns the client has: parsing
// user-typed or server-sent decimal amounts, and rendering balances the
// way the bank displays them (en-IN digit grouping, two fraction digits).
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("amount must be a positive number")

var printer = message.NewPrinter(language.MustParse("en-IN"))

// ParseAmount parses a user-entered transfer/deposit amount. Empty input,
// non-numeric input, zero, and negatives are all rejected.
func ParseAmount(s string) (float64, error) {
	v, err := parse(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseBalance parses a server-reported balance. Unlike ParseAmount it
// tolerates zero and negative values; callers decide what a parse
// failure means (the dashboard counts it as 0).
func ParseBalance(s string) (float64, error) {
	return parse(s)
}

func parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Format renders an amount with the given currency symbol, grouped for
// en-IN: Format("₹", 100000) == "₹1,00,000.00".
func Format(symbol string, v float64) string {
	return symbol + printer.Sprintf("%v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
