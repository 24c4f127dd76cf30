// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/creachadair/jdom"
	"github.com/creachadair/jdom/internal/decnum"
	"github.com/shopspring/decimal"
)

// A Number is a numeric value. It retains the lexical form it was parsed or
// constructed from, so that generating a tree reproduces its numbers exactly.
// The zero value represents 0.
type Number struct {
	text string
}

// Int constructs a Number from an integer.
func Int(v int64) Number { return Number{text: strconv.FormatInt(v, 10)} }

// Float constructs a Number from a floating-point value in its shortest
// representation. It reports a *jdom.NumberError if v is NaN or infinite.
func Float(v float64) (Number, error) {
	if err := jdom.CheckFloat(v); err != nil {
		return Number{}, err
	}
	return Number{text: strconv.FormatFloat(v, 'g', -1, 64)}, nil
}

// NumberFromDecimal constructs a Number from an exact decimal value.
func NumberFromDecimal(d decimal.Decimal) Number { return Number{text: d.String()} }

// ParseNumber constructs a Number from its JSON lexical form. It reports an
// error if text is not a valid JSON number.
func ParseNumber(text string) (Number, error) {
	if !jdom.IsNumber(text) {
		return Number{}, fmt.Errorf("invalid number %q", text)
	}
	return Number{text: text}, nil
}

// MustParseNumber is as ParseNumber, but panics on error.
func MustParseNumber(text string) Number {
	n, err := ParseNumber(text)
	if err != nil {
		panic(err)
	}
	return n
}

func (Number) isValue() {}

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.Text() }

// Text returns the lexical form of n.
func (n Number) Text() string {
	if n.text == "" {
		return "0"
	}
	return n.text
}

func (n Number) String() string { return n.Text() }

// Decimal returns the exact value of n. It reports an error if the exponent
// of n is outside the range a decimal.Decimal can represent.
func (n Number) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.Text())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("number %s: %w", n.Text(), err)
	}
	return d, nil
}

// form returns the normal form of n. The text of a Number is always a valid
// number, so the error is discarded.
func (n Number) form() decnum.Form {
	f, _ := decnum.Parse(n.Text())
	return f
}

// IsIntegral reports whether n has no fractional part.
func (n Number) IsIntegral() bool { return n.form().IsIntegral() }

// Int64 returns n as an int64. It reports an error if n has a fractional part
// or is out of range for int64.
func (n Number) Int64() (int64, error) {
	if v, err := strconv.ParseInt(n.Text(), 10, 64); err == nil {
		return v, nil
	}
	v, err := n.form().Int64Exact()
	if errors.Is(err, decnum.ErrFraction) {
		return 0, fmt.Errorf("number %s is not an integer", n.Text())
	} else if err != nil {
		return 0, fmt.Errorf("number %s out of range for int64", n.Text())
	}
	return v, nil
}

// maxIntDigits bounds the zeros BigInt adds beyond the digits written in the
// lexical form of a number.
const maxIntDigits = 4096

// BigInt returns the integer part of n, truncated toward zero. It reports an
// error if the integer part has more than 4096 digits beyond those written in
// the text of n.
func (n Number) BigInt() (*big.Int, error) {
	f := n.form()
	z, err := f.IntPart(len(f.Digits) + maxIntDigits)
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", n.Text(), err)
	}
	return z, nil
}

// Float64 returns the nearest float64 to n. Numbers too large in magnitude
// for a float64 are reported as infinities, and numbers too small as zero.
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(n.Text(), 64)
	return f
}

// Equal reports whether n and m have the same numeric value, regardless of
// their lexical forms.
func (n Number) Equal(m Number) bool {
	if n.text == m.text {
		return true
	}
	return n.form().Equal(m.form())
}
