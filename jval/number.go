// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// A Number is an exact decimal number.
//
// The zero value is ready for use and represents 0.
type Number struct{ d decimal.Decimal }

// Int constructs a Number from a signed integer.
func Int(z int64) Number { return Number{d: decimal.NewFromInt(z)} }

// Uint constructs a Number from an unsigned integer.
func Uint(z uint64) Number {
	return Number{d: decimal.NewFromBigInt(new(big.Int).SetUint64(z), 0)}
}

// Float constructs a Number from a floating-point value, using the shortest
// decimal representation that rounds to f. It reports an error if f is NaN
// or infinite.
func Float(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, fmt.Errorf("invalid number %v", f)
	}
	return Number{d: decimal.NewFromFloat(f)}, nil
}

// NumberFromBig constructs a Number from an integer. It reports an error if
// z == nil.
func NumberFromBig(z *big.Int) (Number, error) {
	if z == nil {
		return Number{}, errors.New("nil integer")
	}
	return Number{d: decimal.NewFromBigInt(z, 0)}, nil
}

// NumberFromDecimal constructs a Number from a decimal value.
func NumberFromDecimal(d decimal.Decimal) Number { return Number{d: d} }

// ParseNumber parses s as a JSON number literal. The value is decoded
// exactly, without an intermediate binary floating-point representation.
func ParseNumber(s string) (Number, error) {
	if !IsNumber(s) {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Number{d: d}, nil
}

// IsNumber reports whether s is a valid JSON number literal.
func IsNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	n := digits(s)
	if n == 0 || (n > 1 && s[0] == '0') {
		return false // missing digits, or extra leading zeroes
	}
	s = s[n:]
	if rest, ok := strings.CutPrefix(s, "."); ok {
		n = digits(rest)
		if n == 0 {
			return false
		}
		s = rest[n:]
	}
	if s == "" {
		return true
	} else if s[0] != 'e' && s[0] != 'E' {
		return false
	}
	s = s[1:]
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	n = digits(s)
	return n != 0 && n == len(s)
}

func digits(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i
		}
	}
	return len(s)
}

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return KindNumber }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return formatDecimal(n.d) }

// String returns the JSON text of n.
func (n Number) String() string { return n.JSON() }

// Equal satisfies the Value interface. Numbers are equal if they have the
// same numeric value, regardless of how they were written.
func (n Number) Equal(w Value) bool {
	m, ok := w.(Number)
	if !ok {
		return false
	}
	ns, nd, ne := normalize(n.d)
	ms, md, me := normalize(m.d)
	return ns == ms && nd == md && ne == me
}

func (Number) isValue() {}

// Decimal returns the exact decimal value of n.
func (n Number) Decimal() decimal.Decimal { return n.d }

// Sign returns -1, 0, or 1 according to whether n is negative, zero, or
// positive.
func (n Number) Sign() int { return n.d.Sign() }

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool { _, _, exp := normalize(n.d); return exp >= 0 }

// BigInt returns n as an integer, or reports a *ConversionError if n has a
// fractional part or more than 65536 digits.
func (n Number) BigInt() (*big.Int, error) {
	sign, digits, exp := normalize(n.d)
	if exp < 0 {
		return nil, n.convError("big.Int", "fractional part would be lost")
	} else if int64(len(digits))+exp > maxIntDigits {
		return nil, n.convError("big.Int", "value too large")
	} else if sign == 0 {
		return new(big.Int), nil
	}
	z, _ := new(big.Int).SetString(digits, 10)
	z.Mul(z, pow10(exp))
	if sign < 0 {
		z.Neg(z)
	}
	return z, nil
}

// Int64 converts n exactly to an int64.
func (n Number) Int64() (int64, error) { return exactInt[int64](n) }

// Int32 converts n exactly to an int32.
func (n Number) Int32() (int32, error) { return exactInt[int32](n) }

// Int16 converts n exactly to an int16.
func (n Number) Int16() (int16, error) { return exactInt[int16](n) }

// Int8 converts n exactly to an int8.
func (n Number) Int8() (int8, error) { return exactInt[int8](n) }

// Int converts n exactly to an int.
func (n Number) Int() (int, error) { return exactInt[int](n) }

// Uint64 converts n exactly to a uint64.
func (n Number) Uint64() (uint64, error) { return exactInt[uint64](n) }

// Uint32 converts n exactly to a uint32.
func (n Number) Uint32() (uint32, error) { return exactInt[uint32](n) }

// Uint16 converts n exactly to a uint16.
func (n Number) Uint16() (uint16, error) { return exactInt[uint16](n) }

// Uint8 converts n exactly to a uint8.
func (n Number) Uint8() (uint8, error) { return exactInt[uint8](n) }

// Uint converts n exactly to a uint.
func (n Number) Uint() (uint, error) { return exactInt[uint](n) }

// Float64 returns the float64 value nearest to n. Values too large in
// magnitude are reported as infinities.
func (n Number) Float64() float64 {
	r, f, ok := n.rat()
	if !ok {
		return f
	}
	f, _ = r.Float64()
	return f
}

// Float32 returns the float32 value nearest to n.
func (n Number) Float32() float32 {
	r, f, ok := n.rat()
	if !ok {
		return float32(f)
	}
	f32, _ := r.Float32()
	return f32
}

// rat returns n as a rational. If n is zero or its magnitude lies far outside
// the range of a float64, rat instead reports false with the nearest float64.
func (n Number) rat() (*big.Rat, float64, bool) {
	sign, digits, exp := normalize(n.d)
	point := int64(len(digits)) + exp
	switch {
	case sign == 0:
		return nil, 0, false
	case point > maxFloatPoint:
		return nil, math.Inf(sign), false
	case point < minFloatPoint:
		return nil, math.Copysign(0, float64(sign)), false
	}
	z, _ := new(big.Int).SetString(digits, 10)
	if sign < 0 {
		z.Neg(z)
	}
	if exp >= 0 {
		return new(big.Rat).SetInt(z.Mul(z, pow10(exp))), 0, true
	}
	return new(big.Rat).SetFrac(z, pow10(-exp)), 0, true
}

func (n Number) convError(typ, reason string) error {
	return &ConversionError{Value: n.JSON(), Type: typ, Reason: reason}
}

// exactInt converts n to a value of type T, or reports an error if n has a
// fractional part or is out of range for T.
func exactInt[T constraints.Integer](n Number) (T, error) {
	typ := fmt.Sprintf("%T", T(0))
	_, digits, exp := normalize(n.d)
	if exp < 0 {
		return 0, n.convError(typ, "fractional part would be lost")
	} else if int64(len(digits))+exp > 20 {
		return 0, n.convError(typ, "value out of range") // wider than any 64-bit integer
	}
	z, err := n.BigInt()
	if err != nil {
		return 0, err
	}
	if isSigned[T]() {
		if z.IsInt64() {
			if v := z.Int64(); int64(T(v)) == v {
				return T(v), nil
			}
		}
	} else if z.Sign() >= 0 && z.IsUint64() {
		if v := z.Uint64(); uint64(T(v)) == v {
			return T(v), nil
		}
	}
	return 0, n.convError(typ, "value out of range")
}

func isSigned[T constraints.Integer]() bool {
	var zero T
	return zero-1 < 0
}

const (
	// Thresholds for plain (non-exponent) rendering of numbers.
	maxTrailZeroes = 100 // integer trailing zeroes before switching
	maxLeadZeroes  = 6   // fractional leading zeroes before switching

	maxIntDigits  = 1 << 16 // largest integer BigInt will construct
	maxFloatPoint = 310     // decimal point positions beyond float64 range
	minFloatPoint = -330
)

// normalize reports the sign of d, its significant digits without trailing
// zeroes, and the exponent such that |d| = digits * 10^exp. For zero, digits
// is empty and exp is 0. The cost is proportional to the length of the
// coefficient, not the size of the exponent.
func normalize(d decimal.Decimal) (sign int, digits string, exp int64) {
	coef := d.Coefficient()
	if sign = coef.Sign(); sign == 0 {
		return 0, "", 0
	}
	text := coef.Abs(coef).String()
	digits = strings.TrimRight(text, "0")
	return sign, digits, int64(d.Exponent()) + int64(len(text)-len(digits))
}

func pow10(exp int64) *big.Int { return new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil) }

// formatDecimal renders d as a JSON number with no redundant zeroes.  Values
// with an extreme exponent are written in exponent form so that their text
// stays proportional to the number of significant digits.
func formatDecimal(d decimal.Decimal) string {
	sign, digits, exp := normalize(d)
	if sign == 0 {
		return "0"
	}
	var neg string
	if sign < 0 {
		neg = "-"
	}

	switch point := int64(len(digits)) + exp; {
	case exp >= 0 && exp <= maxTrailZeroes:
		return neg + digits + strings.Repeat("0", int(exp))
	case exp < 0 && point > 0:
		return neg + digits[:point] + "." + digits[point:]
	case exp < 0 && point > -maxLeadZeroes:
		return neg + "0." + strings.Repeat("0", int(-point)) + digits
	default:
		return neg + digits + "e" + strconv.FormatInt(exp, 10)
	}
}
