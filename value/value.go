// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package value defines a tree of semantic JSON values, and a builder that
// constructs value trees from grammar parse trees.
package value

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/pjson/internal/escape"

	"go4.org/mem"
)

// A Value is an arbitrary JSON value: one of Null, Bool, Number, String,
// Array, or Object. A Value tree is constructed in full and never modified;
// two trees built from equal inputs compare equal.
type Value interface {
	// JSON renders the value as JSON source text.
	JSON() string
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// A Number is a numeric value. All numbers, whether or not their source
// text has a fractional part, share this 64-bit floating-point
// representation.
type Number float64

// JSON satisfies the Value interface.
func (n Number) JSON() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// A String is a JSON string's content, with its escape sequences retained
// verbatim as matched from the source. Use Unescape to decode them.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return `"` + string(s) + `"` }

// Unescape decodes the escape sequences of s.
func (s String) Unescape() (string, error) {
	dec, err := escape.Unescape(mem.S(string(s)))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Quote encodes plain text as a String, adding escape sequences as needed.
func Quote(text string) String { return String(escape.Escape(mem.S(text))) }

// An Array is an ordered sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len reports the number of elements of a.
func (a Array) Len() int { return len(a) }

// An Object is a mapping from keys to values. Keys are string content with
// escape sequences verbatim, like String; their order is not significant.
type Object map[string]Value

// JSON satisfies the Value interface. Keys are rendered in sorted order so
// that equal objects render identically.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(o)) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(String(key).JSON())
		sb.WriteByte(':')
		sb.WriteString(o[key].JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Len reports the number of members of o.
func (o Object) Len() int { return len(o) }
