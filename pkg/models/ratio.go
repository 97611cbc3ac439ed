package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Ratio is a derived figure that may be undefined. The zero value is the
// division sentinel: it encodes as JSON null and propagates through
// arithmetic.
type Ratio struct {
	value float64
	valid bool
}

// R wraps a computed value. NaN and infinities become the sentinel.
func R(v float64) Ratio {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{value: v, valid: true}
}

// Sentinel returns the undefined ratio.
func Sentinel() Ratio { return Ratio{} }

// Div returns num/den, or the sentinel when den is zero.
func Div(num, den Money) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return R(num.value.DivRound(den.value, 16).InexactFloat64())
}

func (r Ratio) Valid() bool { return r.valid }

// Value returns the ratio, or 0 for the sentinel.
func (r Ratio) Value() float64 {
	if !r.valid {
		return 0
	}
	return r.value
}

func (r Ratio) Mul(o Ratio) Ratio {
	if !r.valid || !o.valid {
		return Ratio{}
	}
	return R(r.value * o.value)
}

func (r Ratio) Scale(f float64) Ratio {
	if !r.valid {
		return Ratio{}
	}
	return R(r.value * f)
}

func (r Ratio) Sub(o Ratio) Ratio {
	if !r.valid || !o.valid {
		return Ratio{}
	}
	return R(r.value - o.value)
}

// Above reports whether the ratio is defined and strictly greater than v.
func (r Ratio) Above(v float64) bool { return r.valid && r.value > v }

// Below reports whether the ratio is defined and strictly less than v.
func (r Ratio) Below(v float64) bool { return r.valid && r.value < v }

// Approx reports whether both ratios are defined and differ by at most tol.
func (r Ratio) Approx(o Ratio, tol float64) bool {
	return r.valid && o.valid && math.Abs(r.value-o.value) <= tol
}

// Rounded returns the value rounded to places decimals.
func (r Ratio) Rounded(places int) float64 {
	if !r.valid {
		return 0
	}
	p := math.Pow(10, float64(places))
	v := math.Round(r.value*p) / p
	if v == 0 {
		return 0 // no "-0"
	}
	return v
}

func (r Ratio) String() string {
	if !r.valid {
		return "n/d"
	}
	return fmt.Sprintf("%.2f", r.value)
}

// MarshalJSON writes null for the sentinel and a number rounded to four
// places otherwise.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.Rounded(4), 'f', -1, 64)), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = R(v)
	return nil
}

func (r Ratio) MarshalYAML() (interface{}, error) {
	if !r.valid {
		return nil, nil
	}
	return r.Rounded(4), nil
}
