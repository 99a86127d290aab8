package expense

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "JPY"

// Format renders total in the given ISO 4217 currency, rounded to the
// currency's minor unit. Unknown codes, and amounts whose minor-unit value
// does not fit in an int64, fall back to the plain decimal string.
func Format(total decimal.Decimal, currency string) string {
	cur := money.GetCurrency(NormalizeCurrency(currency))
	if cur == nil {
		return total.String()
	}
	minor := total.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return total.String()
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// NormalizeCurrency upper-cases code and substitutes DefaultCurrency for an
// empty one.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// KnownCurrency reports whether code names a currency Format can render.
func KnownCurrency(code string) bool {
	return money.GetCurrency(NormalizeCurrency(code)) != nil
}
