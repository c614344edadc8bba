// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// Path traverses a sequential path into the structure of v and returns the
// value it reaches, which must have type T.
//
// Each path element is either a string or an int. A string selects the value
// of the first member of an object with that key. An int selects an element
// of an array, or the value of the member of an object at that offset.
// Negative indices count backward from the end (-1 is last, -2 second last).
func Path[T Value](v Value, path ...any) (T, error) {
	var zero T
	cur := v
	for i, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*Object)
			if !ok {
				return zero, fmt.Errorf("path %d: cannot traverse %T with %q", i, cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return zero, fmt.Errorf("path %d: key %q not found", i, t)
			}
			cur = m.Value

		case int:
			switch e := cur.(type) {
			case *Array:
				j, ok := fixArrayBound(len(e.Values), t)
				if !ok {
					return zero, fmt.Errorf("path %d: array index %d out of bounds (n=%d)", i, t, len(e.Values))
				}
				cur = e.Values[j]
			case *Object:
				j, ok := fixArrayBound(len(e.Members), t)
				if !ok {
					return zero, fmt.Errorf("path %d: object index %d out of bounds (n=%d)", i, t, len(e.Members))
				}
				cur = e.Members[j].Value
			default:
				return zero, fmt.Errorf("path %d: cannot traverse %T with %d", i, cur, t)
			}

		default:
			return zero, fmt.Errorf("path %d: invalid path element %T", i, elt)
		}
	}
	out, ok := cur.(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", cur)
	}
	return out, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
