package expense

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "¥600", Format(decimal.NewFromInt(600), ""))
	require.Equal(t, "¥1,100", Format(decimal.NewFromInt(1100), "jpy"))
	require.Equal(t, "$1.50", Format(decimal.RequireFromString("1.5"), "USD"))
	require.Equal(t, "12.5", Format(decimal.RequireFromString("12.5"), "NOPE"))
}

func TestFormat_BeyondMinorUnitRange(t *testing.T) {
	huge := decimal.New(1, 30)
	require.Equal(t, huge.String(), Format(huge, "JPY"))

	usd := decimal.New(1, 18)
	require.Equal(t, "1000000000000000000", Format(usd, "USD"))
	require.Equal(t, "-1000000000000000000", Format(usd.Neg(), "USD"))

	require.Equal(t, "¥9,223,372,036,854,775,807", Format(decimal.NewFromInt(math.MaxInt64), "JPY"))
}

func TestNormalizeCurrency(t *testing.T) {
	require.Equal(t, "JPY", NormalizeCurrency(""))
	require.Equal(t, "EUR", NormalizeCurrency(" eur "))
	require.True(t, KnownCurrency("usd"))
	require.False(t, KnownCurrency("ZZZ"))
}
