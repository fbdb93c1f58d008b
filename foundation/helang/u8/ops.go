// File: ops.go
// Title: u8 Arithmetic and Comparison
// Description: Implements the binary operators. Addition and subtraction work
//              element-wise or broadcast a single element; multiplication and
//              comparisons zero-pad the shorter operand.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-12 v0.1.0: Initial operators
// - 2026-10-15 v0.1.0: Relations for the comparison operators
// - 2026-10-19 v0.1.0: Number minus vector broadcasts the number

package u8

import (
	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

// Add returns u + other. A single-element operand on either side is
// broadcast over the other one.
func (u *U8) Add(other *U8) (*U8, error) {
	switch {
	case len(u.values) == len(other.values):
		return zipWith(u.values, other.values, func(a, b int) int { return a + b }), nil
	case len(other.values) == 1:
		return broadcast(u.values, other.values[0], func(a, b int) int { return a + b }), nil
	case len(u.values) == 1:
		return broadcast(other.values, u.values[0], func(a, b int) int { return b + a }), nil
	default:
		return nil, lengthMismatch("+", u, other)
	}
}

// Sub returns u - other. A single-element operand on either side is
// broadcast over the other one.
func (u *U8) Sub(other *U8) (*U8, error) {
	switch {
	case len(u.values) == len(other.values):
		return zipWith(u.values, other.values, func(a, b int) int { return a - b }), nil
	case len(other.values) == 1:
		return broadcast(u.values, other.values[0], func(a, b int) int { return a - b }), nil
	case len(u.values) == 1:
		return broadcast(other.values, u.values[0], func(a, b int) int { return b - a }), nil
	default:
		return nil, lengthMismatch("-", u, other)
	}
}

// Mul returns the dot product of u and other as a single-element vector
func (u *U8) Mul(other *U8) *U8 {
	a, b := pad(u.values, other.values)
	sum := 0
	for i := range a {
		sum += a[i] * b[i]
	}
	return New(sum)
}

// Relation is a comparison between two vectors
type Relation int

const (
	Less Relation = iota
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
)

// String returns the operator spelling of the relation
func (r Relation) String() string {
	switch r {
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	default:
		return "?"
	}
}

// Compare applies the relation to u and other. The shorter operand is padded
// with zeros and the relation must hold at every position. other may be a
// vector, a []int or an int.
func (u *U8) Compare(r Relation, other interface{}) (bool, error) {
	o, err := Coerce(other)
	if err != nil {
		return false, err
	}

	if r == NotEqual {
		return !u.Equal(o), nil
	}

	var holds func(a, b int) bool
	switch r {
	case Less:
		holds = func(a, b int) bool { return a < b }
	case LessEqual:
		holds = func(a, b int) bool { return a <= b }
	case Greater:
		holds = func(a, b int) bool { return a > b }
	case GreaterEqual:
		holds = func(a, b int) bool { return a >= b }
	case Equal:
		holds = func(a, b int) bool { return a == b }
	default:
		return false, heerror.Newf(heerror.CodeCyberNotSupported, "illegal comparator: %d", int(r)).
			WithOperation("u8.Compare")
	}

	a, b := pad(u.values, o.values)
	for i := range a {
		if !holds(a[i], b[i]) {
			return false, nil
		}
	}
	return true, nil
}

// Equal reports whether u and other are equal after zero padding
func (u *U8) Equal(other *U8) bool {
	eq, _ := u.Compare(Equal, other)
	return eq
}

func zipWith(a, b []int, f func(a, b int) int) *U8 {
	out := make([]int, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return &U8{values: out}
}

func broadcast(values []int, scalar int, f func(a, b int) int) *U8 {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = f(v, scalar)
	}
	return &U8{values: out}
}

func pad(a, b []int) ([]int, []int) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pa := make([]int, n)
	pb := make([]int, n)
	copy(pa, a)
	copy(pb, b)
	return pa, pb
}

func lengthMismatch(op string, a, b *U8) error {
	return heerror.Newf(heerror.CodeCyberArithmetic,
		"cannot apply %s to u8 of lengths %d and %d", op, a.Len(), b.Len()).
		WithOperation("u8.Arithmetic").
		WithDetail("left", a.Len()).
		WithDetail("right", b.Len())
}
