// pkg/util/generic_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := MapSlice(a, func(i int) float32 { return 2 * float32(i) })
	if len(a) != len(b) {
		t.Fatalf("expected %d elements, got %d", len(a), len(b))
	}
	for i := range a {
		if b[i] != 2*float32(a[i]) {
			t.Errorf("index %d: got %v, expected %v", i, b[i], 2*float32(a[i]))
		}
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[float64]string{3: "c", 1: "a", 2: "b"}
	keys := SortedMapKeys(m)
	if !reflect.DeepEqual(keys, []float64{1, 2, 3}) {
		t.Errorf("got %v, expected [1 2 3]", keys)
	}
}

func TestSingleOrArraySingleValue(t *testing.T) {
	var s SingleOrArray[int]
	if err := json.Unmarshal([]byte("3"), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual([]int(s), []int{3}) {
		t.Errorf("got %v, expected [3]", s)
	}
}

func TestSingleOrArrayArrayValue(t *testing.T) {
	var s SingleOrArray[int]
	if err := json.Unmarshal([]byte("[1,2,3]"), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual([]int(s), []int{1, 2, 3}) {
		t.Errorf("got %v, expected [1 2 3]", s)
	}
}

func TestSingleOrArrayNull(t *testing.T) {
	s := SingleOrArray[int]{1, 2}
	if err := json.Unmarshal([]byte("null"), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil after unmarshaling null, got %v", s)
	}
}

type checkTarget struct {
	A int    `json:"a"`
	B string `json:"b"`
}

func TestTypeCheckJSONRejectsUnexpectedKey(t *testing.T) {
	if TypeCheckJSON[checkTarget](map[string]interface{}{"a": 1.0, "b": "x"}) != true {
		t.Error("expected valid object to type-check")
	}
	if TypeCheckJSON[checkTarget](map[string]interface{}{"a": 1.0, "c": "x"}) != false {
		t.Error("expected object with unexpected key \"c\" to fail type-checking")
	}
}

func TestCheckJSONReportsUnexpectedKey(t *testing.T) {
	var e ErrorLogger
	CheckJSON[checkTarget]([]byte(`{"a":1,"cc":"x"}`), &e)
	if !e.HaveErrors() {
		t.Error("expected an error for the misspelled key \"cc\"")
	}
}
