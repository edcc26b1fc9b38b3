// pkg/util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

///////////////////////////////////////////////////////////////////////////
// SingleOrArray

// SingleOrArray makes it possible to have an object in a JSON file that
// may be initialized with either a single value or an array of values.  In
// either case, the object's value is represented by a slice of the
// underlying type.
type SingleOrArray[V any] []V

func (s *SingleOrArray[V]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}

	if n := len(b); n > 2 && b[0] == '[' && b[n-1] == ']' { // Array
		var v []V
		err := json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		*s = v
		return nil
	} else {
		var v V
		err := json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		*s = []V{v}
		return nil
	}
}

func (s *SingleOrArray[V]) CheckJSON(json interface{}) bool {
	return TypeCheckJSON[V](json) || TypeCheckJSON[[]V](json)
}

///////////////////////////////////////////////////////////////////////////

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// MapSlice returns the slice that is the result of
// applying the provided xform function to all the elements of the given slice.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	to := make([]T, len(from))
	for i := range from {
		to[i] = xform(from[i])
	}
	return to
}
