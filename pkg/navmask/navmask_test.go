// pkg/navmask/navmask_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navmask

import (
	"bytes"
	"testing"

	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

func allSeaMask(t *testing.T) *Mask {
	buf := bytes.Repeat([]byte{'1'}, NbLon*NbLat)
	m, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestAllSeaNavigable(t *testing.T) {
	m := allSeaMask(t)
	if !m.IsNavigable(40, -30) {
		t.Error("expected navigable on all-sea raster")
	}
}

func TestLandIsNotNavigable(t *testing.T) {
	buf := bytes.Repeat([]byte{'1'}, NbLon*NbLat)
	buf[idx(40, -30)] = '0'
	m, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.IsNavigable(40, -30) {
		t.Error("expected land cell to be non-navigable")
	}
}

func TestForbidZoneMasksOutSea(t *testing.T) {
	m := allSeaMask(t)
	m.AddForbidZone([]geo.Pos{{Lat: 39, Lon: -28}, {Lat: 39, Lon: -26}, {Lat: 41, Lon: -26}, {Lat: 41, Lon: -28}})
	if m.IsNavigable(40, -27) {
		t.Error("expected point inside forbid zone to be non-navigable")
	}
	if !m.IsNavigable(40, -20) {
		t.Error("expected point outside forbid zone to stay navigable")
	}
}

func TestAlwaysSeaOverridesEverything(t *testing.T) {
	buf := bytes.Repeat([]byte{'0'}, NbLon*NbLat)
	m, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.SetAlwaysSea(true)
	if !m.IsNavigable(40, -30) {
		t.Error("expected allwaysSea to force navigable")
	}
}
