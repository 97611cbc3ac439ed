package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in the reporting currency. Arithmetic keeps full
// decimal precision; the JSON and YAML encodings round to cents.
type Money struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// M builds a Money from a float, an integer or a decimal.
func M[T float64 | int | int64 | decimal.Decimal](v T) Money {
	switch x := any(v).(type) {
	case float64:
		return Money{value: decimal.NewFromFloat(x)}
	case int:
		return Money{value: decimal.NewFromInt(int64(x))}
	case int64:
		return Money{value: decimal.NewFromInt(x)}
	case decimal.Decimal:
		return Money{value: x}
	}
	return Money{}
}

// ParseMoney parses a decimal literal such as "1250.75".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// Sum adds every amount.
func Sum(ms ...Money) Money {
	total := decimal.Zero
	for _, m := range ms {
		total = total.Add(m.value)
	}
	return Money{value: total}
}

func (m Money) Add(o Money) Money { return Money{value: m.value.Add(o.value)} }
func (m Money) Sub(o Money) Money { return Money{value: m.value.Sub(o.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money        { return Money{value: m.value.Abs()} }

// Half returns m/2, used for period averages.
func (m Money) Half() Money { return Money{value: m.value.Div(decimal.NewFromInt(2))} }

// Mul scales the amount by an exact factor.
func (m Money) Mul(f decimal.Decimal) Money { return Money{value: m.value.Mul(f)} }

// MulFloat scales the amount by a float factor.
func (m Money) MulFloat(f float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(f))}
}

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }
func (m Money) Sign() int        { return m.value.Sign() }

func (m Money) Equal(o Money) bool       { return m.value.Equal(o.value) }
func (m Money) LessThan(o Money) bool    { return m.value.LessThan(o.value) }
func (m Money) GreaterThan(o Money) bool { return m.value.GreaterThan(o.value) }

// Within reports whether |m − o| <= tol.
func (m Money) Within(o, tol Money) bool {
	return m.value.Sub(o.value).Abs().LessThanOrEqual(tol.value)
}

// Decimal exposes the exact amount.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Float64 returns the nearest float. Only used for ratios and formatting.
func (m Money) Float64() float64 { return m.value.InexactFloat64() }

// Round returns the amount rounded half away from zero to places decimals.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places)} }

// String renders the amount with two decimals.
func (m Money) String() string { return m.value.StringFixed(2) }

// Exact renders the amount with no rounding and no trailing zeros.
func (m Money) Exact() string { return m.value.String() }

// MarshalJSON writes an unquoted number rounded to cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("amount is null")
	}
	s := string(bytes.Trim(data, `"`))
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("amount %s is not numeric", string(data))
	}
	m.value = d
	return nil
}

// MarshalYAML writes the amount as a float rounded to cents.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.value.Round(2).InexactFloat64(), nil
}
