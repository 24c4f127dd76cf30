// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package decnum compares and classifies decimal numbers in their lexical
// form, without materializing their values. A literal such as 1e99999999999
// is a valid JSON number whose integer value could not be constructed.
package decnum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrFraction is reported when an integer is requested from a number with a
// nonzero fractional part.
var ErrFraction = errors.New("number is not an integer")

// ErrRange is reported when the integer part of a number has more digits
// than the caller permits.
var ErrRange = errors.New("number out of range")

// A Form is the normal form of a decimal number. Its value is
//
//	[-]0.Digits * 10^Exp
//
// Digits has no leading or trailing zeros. Zero has empty Digits, no sign,
// and a zero exponent.
type Form struct {
	Neg    bool
	Digits string
	Exp    *big.Int
}

// Parse returns the normal form of text, which must be a decimal number with
// an optional leading "-", an optional fraction, and an optional exponent.
func Parse(text string) (Form, error) {
	s, neg := strings.CutPrefix(text, "-")
	exp := new(big.Int)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		if _, ok := exp.SetString(s[i+1:], 10); !ok {
			return Form{Exp: new(big.Int)}, fmt.Errorf("invalid exponent in %q", text)
		}
		s = s[:i]
	}
	ipart, fpart, _ := strings.Cut(s, ".")
	if ipart == "" || !allDigits(ipart) || !allDigits(fpart) {
		return Form{Exp: new(big.Int)}, fmt.Errorf("invalid number %q", text)
	}

	all := ipart + fpart
	digits := strings.TrimLeft(all, "0")
	point := len(ipart) - (len(all) - len(digits))
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		return Form{Exp: new(big.Int)}, nil
	}
	return Form{Neg: neg, Digits: digits, Exp: exp.Add(exp, big.NewInt(int64(point)))}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether f is zero.
func (f Form) IsZero() bool { return f.Digits == "" }

// Equal reports whether f and g denote the same value.
func (f Form) Equal(g Form) bool {
	return f.Neg == g.Neg && f.Digits == g.Digits && f.Exp.Cmp(g.Exp) == 0
}

// IsIntegral reports whether f has no fractional part.
func (f Form) IsIntegral() bool {
	return f.IsZero() || f.Exp.Cmp(big.NewInt(int64(len(f.Digits)))) >= 0
}

// IntPart returns the integer part of f, truncated toward zero. It reports
// ErrRange if the integer part has more than maxDigits digits.
func (f Form) IntPart(maxDigits int) (*big.Int, error) {
	if f.IsZero() || f.Exp.Sign() <= 0 {
		return new(big.Int), nil
	} else if !f.Exp.IsInt64() || f.Exp.Int64() > int64(maxDigits) {
		return nil, ErrRange
	}
	n := int(f.Exp.Int64())
	var s string
	if n <= len(f.Digits) {
		s = f.Digits[:n]
	} else {
		s = f.Digits + strings.Repeat("0", n-len(f.Digits))
	}
	z, _ := new(big.Int).SetString(s, 10)
	if f.Neg {
		z.Neg(z)
	}
	return z, nil
}

// Int64 returns the integer part of f, truncated toward zero. It reports
// ErrRange if the result does not fit in an int64.
func (f Form) Int64() (int64, error) {
	z, err := f.IntPart(19)
	if err != nil {
		return 0, err
	} else if !z.IsInt64() {
		return 0, ErrRange
	}
	return z.Int64(), nil
}

// Int64Exact is as Int64, but reports ErrFraction if f is not an integer.
func (f Form) Int64Exact() (int64, error) {
	if !f.IsIntegral() {
		return 0, ErrFraction
	}
	return f.Int64()
}
