// pkg/navmask/navmask.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package navmask answers "is this point navigable": a coarse binary sea
// raster, masked further by an AND of user-supplied forbidden polygons.
package navmask

import (
	"fmt"
	"io"

	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

// NbLon and NbLat are the raster dimensions at 0.1 degree resolution:
// 3601 longitude columns (-180..180) by 1801 latitude rows (90..-90).
const (
	NbLon = 3601
	NbLat = 1801
)

// Mask is a navigability evaluator: a binary sea/land raster AND-ed with
// zero or more forbidden polygons.
type Mask struct {
	sea       []bool
	forbid    [][]geo.Pos
	alwaysSea bool
}

// Load reads the sea raster: NbLon*NbLat bytes of '0' (land) or '1'
// (sea), in row-major order starting at (90N, -180W).
func Load(r io.Reader) (*Mask, error) {
	buf := make([]byte, NbLon*NbLat)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("navmask: %w", err)
	}

	m := &Mask{sea: make([]bool, len(buf))}
	for i, b := range buf {
		m.sea[i] = b == '1'
	}
	return m, nil
}

// SetAlwaysSea forces IsNavigable to always return true, bypassing the
// raster and forbidden polygons; this is the "allwaysSea" configuration
// option.
func (m *Mask) SetAlwaysSea(b bool) { m.alwaysSea = b }

// AddForbidZone adds a closed polygon (lat, lon pairs) whose interior is
// masked out of navigability, regardless of what the sea raster says.
func (m *Mask) AddForbidZone(poly []geo.Pos) {
	m.forbid = append(m.forbid, poly)
}

// idx maps a (lat, lon) to its raster index, per the 0.1 degree,
// 3601x1801 layout.
func idx(lat, lon float64) int {
	row := int((90 - lat) * 10)
	col := int((lon + 180) * 10)
	return row*NbLon + col
}

// IsNavigable reports whether (lat, lon) is sea and outside every
// forbidden polygon.
func (m *Mask) IsNavigable(lat, lon float64) bool {
	if m.alwaysSea {
		return true
	}

	if m.sea != nil {
		lon = geo.LonNormalize(lon, false)
		if lat < -90 || lat > 90 {
			return false
		}
		i := idx(lat, lon)
		if i < 0 || i >= len(m.sea) {
			return false
		}
		if !m.sea[i] {
			return false
		}
	}

	p := geo.Pos{Lat: lat, Lon: lon}
	for _, poly := range m.forbid {
		if geo.PointInPolygon(p, poly) {
			return false
		}
	}
	return true
}
