// File: u8.go
// Title: HeLang u8 Vector Type
// Description: Implements the single value type of the language: an ordered
//              sequence of integers. Provides construction, indexed access,
//              in-place mutation and the textual forms used by print and
//              sprint.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial vector type
// - 2026-10-16 v0.1.0: Loose construction for stored snapshots

package u8

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

// U8 is an ordered sequence of integers. The zero value is an empty vector.
// A U8 is not safe for concurrent mutation.
type U8 struct {
	values []int
}

// New creates a vector holding a copy of values
func New(values ...int) *U8 {
	return &U8{values: append([]int(nil), values...)}
}

// Empty creates a vector without elements
func Empty() *U8 {
	return &U8{}
}

// Zeros creates a vector of n zeros
func Zeros(n int) *U8 {
	if n < 0 {
		n = 0
	}
	return &U8{values: make([]int, n)}
}

// Len returns the number of elements
func (u *U8) Len() int {
	return len(u.values)
}

// Values returns a copy of the elements
func (u *U8) Values() []int {
	return append([]int(nil), u.values...)
}

// Clone returns an independent copy of the vector
func (u *U8) Clone() *U8 {
	return New(u.values...)
}

// String joins the elements with " | "; an empty vector renders as "".
func (u *U8) String() string {
	parts := make([]string, len(u.values))
	for i, v := range u.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " | ")
}

// Chars interprets every element as a Unicode code point
func (u *U8) Chars() (string, error) {
	var b strings.Builder
	for i, v := range u.values {
		if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
			return "", heerror.Newf(heerror.CodeCyberNotSupported, "%d is not a character", v).
				WithOperation("u8.Chars").
				WithDetail("position", i+1)
		}
		b.WriteRune(rune(v))
	}
	return b.String(), nil
}

// Bool returns the truth value of a single-element vector
func (u *U8) Bool() (bool, error) {
	if len(u.values) != 1 {
		return false, heerror.Newf(heerror.CodeCyberNotSupported,
			"cannot use a u8 of length %d as a boolean", len(u.values)).
			WithOperation("u8.Bool")
	}
	return u.values[0] != 0, nil
}

// FromBool converts a truth value into [1] or [0]
func FromBool(b bool) *U8 {
	if b {
		return New(1)
	}
	return New(0)
}

// Get returns the elements whose 1-based position is listed in index, in
// data order. Positions outside the vector match nothing.
func (u *U8) Get(index *U8) *U8 {
	wanted := index.positions()
	result := Empty()
	for i, v := range u.values {
		if wanted[i+1] {
			result.values = append(result.values, v)
		}
	}
	return result
}

// Set writes the single element of value to every position listed in index.
// Index 0 addresses every element.
func (u *U8) Set(index, value *U8) error {
	if len(value.values) != 1 {
		return heerror.Newf(heerror.CodeCyberNotSupported,
			"cannot assign a u8 of length %d to an element", len(value.values)).
			WithOperation("u8.Set")
	}
	v := value.values[0]

	for _, pos := range index.values {
		if pos == 0 {
			for i := range u.values {
				u.values[i] = v
			}
			return nil
		}
	}

	for _, pos := range index.values {
		if pos < 1 || pos > len(u.values) {
			return heerror.Newf(heerror.CodeCyberNotSupported,
				"index %d out of range for a u8 of length %d", pos, len(u.values)).
				WithOperation("u8.Set").
				WithDetail("index", pos)
		}
	}
	for _, pos := range index.values {
		u.values[pos-1] = v
	}
	return nil
}

// Increment adds one to every element in place
func (u *U8) Increment() {
	for i := range u.values {
		u.values[i]++
	}
}

func (u *U8) positions() map[int]bool {
	set := make(map[int]bool, len(u.values))
	for _, v := range u.values {
		set[v] = true
	}
	return set
}

// MarshalJSON encodes the vector as a JSON array
func (u *U8) MarshalJSON() ([]byte, error) {
	if u.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(u.values)
}

// MarshalYAML encodes the vector as a YAML sequence
func (u *U8) MarshalYAML() (interface{}, error) {
	values := u.Values()
	if values == nil {
		values = []int{}
	}
	return values, nil
}

// Coerce accepts the operand types a vector can be compared with: another
// vector, a list of ints or a bare int.
func Coerce(v interface{}) (*U8, error) {
	switch x := v.(type) {
	case *U8:
		if x == nil {
			return Empty(), nil
		}
		return x, nil
	case U8:
		return &x, nil
	case []int:
		return New(x...), nil
	case int:
		return New(x), nil
	default:
		return nil, heerror.Newf(heerror.CodeCyberU8Comparing, "cannot compare u8 with %T", v).
			WithOperation("u8.Coerce")
	}
}

// FromAny builds a vector from loosely typed data such as decoded JSON.
// Every element must be an integer.
func FromAny(v interface{}) (*U8, error) {
	switch x := v.(type) {
	case nil:
		return Empty(), nil
	case *U8:
		return x.Clone(), nil
	case []int:
		return New(x...), nil
	case []interface{}:
		values := make([]int, len(x))
		for i, item := range x {
			n, err := toInt(item)
			if err != nil {
				return nil, err
			}
			values[i] = n
		}
		return &U8{values: values}, nil
	default:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		return New(n), nil
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, heerror.New(fmt.Sprintf("%v is not an integer", v)).
		WithCode(heerror.CodeCyberNotSupported).
		WithOperation("u8.FromAny")
}
