// pkg/geo/geom_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import "testing"

func almostEqual(a, b, eps float64) bool {
	return Abs(a-b) <= eps
}

func TestOrthoDistZero(t *testing.T) {
	p := Pos{Lat: 40, Lon: -30}
	if d := OrthoDist(p, p); !almostEqual(d, 0, 1e-9) {
		t.Errorf("OrthoDist(p,p) = %v, want 0", d)
	}
}

func TestOrthoDistKnownLeg(t *testing.T) {
	// Roughly 10 degrees of longitude along the equator.
	a := Pos{Lat: 0, Lon: 0}
	b := Pos{Lat: 0, Lon: 10}
	d := OrthoDist(a, b)
	want := 10 * 60.0 // 60 nm per degree on the equator
	if !almostEqual(d, want, 1) {
		t.Errorf("OrthoDist = %v, want ~%v", d, want)
	}
}

func TestOrthoCapCardinal(t *testing.T) {
	a := Pos{Lat: 0, Lon: 0}
	north := Pos{Lat: 1, Lon: 0}
	if c := OrthoCap(a, north); !almostEqual(c, 0, 1e-6) {
		t.Errorf("OrthoCap north = %v, want 0", c)
	}
	east := Pos{Lat: 0, Lon: 1}
	if c := OrthoCap(a, east); !almostEqual(c, 90, 1e-6) {
		t.Errorf("OrthoCap east = %v, want 90", c)
	}
}

// P7: movePosition(movePosition inverse of orthoCap/orthoDist) round trip.
func TestMovePositionRoundTrip(t *testing.T) {
	tests := []struct{ a, b Pos }{
		{Pos{40, -30}, Pos{45, -20}},
		{Pos{-10, 100}, Pos{-5, 110}},
		{Pos{60, 5}, Pos{62, 8}},
	}
	for _, tc := range tests {
		cap := OrthoCap(tc.a, tc.b)
		dist := OrthoDist(tc.a, tc.b)
		const sog = 10.0
		got := MovePosition(tc.a, sog, cap, dist/sog)
		if d := OrthoDist(got, tc.b); d > 0.01 {
			t.Errorf("MovePosition(%v -> %v) landed %v nm off, want <= 0.01", tc.a, tc.b, d)
		}
	}
}

// P8: distSegment is symmetric in (a,b) and zero on the segment.
func TestDistSegmentSymmetry(t *testing.T) {
	a := Pos{Lat: 40, Lon: -30}
	b := Pos{Lat: 42, Lon: -28}
	x := Pos{Lat: 41, Lon: -29.5}

	d1 := DistSegment(x, a, b)
	d2 := DistSegment(x, b, a)
	if !almostEqual(d1, d2, 1e-9) {
		t.Errorf("DistSegment not symmetric: %v vs %v", d1, d2)
	}

	mid := Pos{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
	if d := DistSegment(mid, a, b); d > 1e-6 {
		t.Errorf("DistSegment(mid, a, b) = %v, want ~0", d)
	}
}

func TestFTwaSign(t *testing.T) {
	// Wind from the north (twd=0), boat heading east (cog=90): wind comes
	// over the port side, twa negative.
	twa := FTwa(90, 0)
	if twa >= 0 {
		t.Errorf("FTwa(90,0) = %v, want < 0 (port)", twa)
	}
	// Boat heading west, same wind: wind over starboard, twa positive.
	twa = FTwa(270, 0)
	if twa <= 0 {
		t.Errorf("FTwa(270,0) = %v, want > 0 (starboard)", twa)
	}
}

func TestLonNormalize(t *testing.T) {
	if l := LonNormalize(190, false); !almostEqual(l, -170, 1e-9) {
		t.Errorf("LonNormalize(190,false) = %v, want -170", l)
	}
	if l := LonNormalize(-170, true); !almostEqual(l, 190, 1e-9) {
		t.Errorf("LonNormalize(-170,true) = %v, want 190", l)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Pos{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if !PointInPolygon(Pos{5, 5}, square) {
		t.Error("expected (5,5) inside square")
	}
	if PointInPolygon(Pos{15, 15}, square) {
		t.Error("expected (15,15) outside square")
	}
}
