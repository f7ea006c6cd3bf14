// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import "fmt"

// Path traverses a sequence of path elements starting from v, and returns
// the value it arrives at. A string element selects the named member of an
// Object; an int element selects the element at that offset of an Array,
// negative offsets counting backward from the end; an element of type
// func(Value) (Value, error) replaces the current value with its result.
//
// If an element does not apply to the current value, Path reports an error
// and returns v unchanged.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(Object)
			if !ok {
				return v, fmt.Errorf("cannot select %q from %T", t, cur)
			}
			m, ok := o[t]
			if !ok {
				return v, fmt.Errorf("no member %q", t)
			}
			cur = m

		case int:
			a, ok := cur.(Array)
			if !ok {
				return v, fmt.Errorf("cannot index %T", cur)
			}
			i := t
			if i < 0 {
				i += len(a)
			}
			if i < 0 || i >= len(a) {
				return v, fmt.Errorf("index %d out of range for %d elements", t, len(a))
			}
			cur = a[i]

		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return v, err
			}
			cur = next

		default:
			return v, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}
