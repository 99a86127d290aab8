// Package expense sums loosely typed expense entries.
//
// Entries arrive from JSON bodies, CLI arguments and stored documents, so a
// single list can mix numbers, numeric strings and junk. Anything that is not
// a number counts as zero; the reduction never fails.
package expense

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// CalculateTotal sums values left to right, starting from zero. Numbers are
// used as-is, numeric strings are parsed, and everything else adds zero.
// The float64 result carries the usual binary rounding error.
func CalculateTotal(values []any) float64 {
	var total float64
	for _, v := range values {
		total += Coerce(v)
	}
	return total
}

// CalculateTotalExact applies the same coercion as CalculateTotal but
// accumulates in decimal. NaN and infinities add zero.
func CalculateTotalExact(values []any) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		if c := coerce(v); c.exact {
			total = total.Add(c.d)
		}
	}
	return total
}

// Coerce converts a single entry to float64, defaulting to zero.
func Coerce(v any) float64 {
	return coerce(v).f
}

// IsNumeric reports whether v is a number or a numeric string. Entries for
// which it returns false contribute zero to a total.
func IsNumeric(v any) bool {
	return coerce(v).ok
}

// Summary is the result of Summarize.
type Summary struct {
	Total   float64
	Exact   decimal.Decimal
	Count   int
	Ignored int
}

// Summarize computes both totals in one pass and counts entries that were
// not numeric.
func Summarize(values []any) Summary {
	s := Summary{Exact: decimal.Zero, Count: len(values)}
	for _, v := range values {
		c := coerce(v)
		s.Total += c.f
		if c.exact {
			s.Exact = s.Exact.Add(c.d)
		}
		if !c.ok {
			s.Ignored++
		}
	}
	return s
}

// maxMagnitude bounds the decimal exponent of parsed strings; float64 tops
// out near 1e308.
const maxMagnitude = 400

// number is a coerced entry. exact is false when d could not hold the
// value (NaN, infinities, non-numeric input).
type number struct {
	f     float64
	d     decimal.Decimal
	exact bool
	ok    bool
}

func coerce(v any) number {
	switch x := v.(type) {
	case nil, bool:
		return number{}
	case decimal.Decimal:
		return number{f: x.InexactFloat64(), d: x, exact: true, ok: true}
	case json.Number:
		return fromString(string(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return number{}
		}
		return coerce(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return number{f: float64(n), d: decimal.NewFromInt(n), exact: true, ok: true}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		return number{f: float64(n), d: decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), exact: true, ok: true}
	case reflect.Float32:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fromFloat(f)
		}
		return number{f: f, d: decimal.NewFromFloat32(float32(f)), exact: true, ok: true}
	case reflect.Float64:
		return fromFloat(rv.Float())
	case reflect.String:
		return fromString(rv.String())
	}
	return number{}
}

func fromFloat(f float64) number {
	switch {
	case math.IsNaN(f):
		return number{}
	case math.IsInf(f, 0):
		return number{f: f, ok: true}
	}
	return number{f: f, d: decimal.NewFromFloat(f), exact: true, ok: true}
}

// fromString accepts the whole trimmed string or nothing: "12abc" is zero.
func fromString(s string) number {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return number{}
	case "Infinity", "+Infinity":
		return number{f: math.Inf(1), ok: true}
	case "-Infinity":
		return number{f: math.Inf(-1), ok: true}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return number{}
	}
	if d.IsZero() {
		return number{d: decimal.Zero, exact: true, ok: true}
	}
	// Outside float64 range. Converting would expand the exponent.
	switch mag := d.NumDigits() + int(d.Exponent()); {
	case mag > maxMagnitude:
		return number{f: math.Inf(d.Sign()), ok: true}
	case mag < -maxMagnitude:
		return number{ok: true}
	}
	return number{f: d.InexactFloat64(), d: d, exact: true, ok: true}
}
