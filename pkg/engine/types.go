// pkg/engine/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package engine implements the isochrone expansion core: forward
// expansion from an origin toward a destination over a gridded wind
// field, sector pruning, and the destination reachability test.
package engine

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/navmask"
	"github.com/rigault/simplerouting-sub000/pkg/polar"
)

// Amure is the tack side: Starboard (wind from the right, twa > 0) or
// Port (twa < 0).
type Amure int

const (
	Starboard Amure = iota
	Port
)

// Pp is one point in an isochrone. Id is a monotonically increasing
// serial within a run (the origin is -1, the destination is 0, all
// others are > 0); Father is the id of the expanding predecessor in the
// previous isochrone.
type Pp struct {
	Lat, Lon  float64
	Id        int
	Father    int
	ToIndexWp int
	Sector    int
	Amure     Amure
	Sail      int
	Motor     bool
	Dd        float64 // orthodist to the destination
	Vmc       float64 // velocity made good toward the destination
}

func (p Pp) pos() geo.Pos { return geo.Pos{Lat: p.Lat, Lon: p.Lon} }

// IsoDesc is the metadata describing one isochrone.
type IsoDesc struct {
	Size               int
	First              int // index of the point with the largest gap to its neighbor
	Closest            int // index of the point minimizing orthodist to the destination
	Distance           float64
	BestVmc            float64
	ToIndexWp          int
	FocalLat, FocalLon float64 // center of the pruning sector fan
}

// IsochroneStore holds the forward-expanding family of isochrones
// produced by one run: Points[i] is the i'th frontier, produced at
// t0+(i+1)*dt, paired with its Desc[i].
type IsochroneStore struct {
	Points [][]Pp
	Desc   []IsoDesc
}

func (s *IsochroneStore) append(points []Pp, desc IsoDesc) {
	s.Points = append(s.Points, points)
	s.Desc = append(s.Desc, desc)
}

type sectorState struct {
	dd  float64
	vmc float64
	nPt int
}

func newSectorBuf(n int) []sectorState {
	s := make([]sectorState, n)
	for i := range s {
		s[i].dd = math.MaxFloat64
	}
	return s
}

// RouteContext borrows read-only references to the weather, polar, and
// navigability evaluators for the lifetime of one run and owns all of
// that run's mutable buffers. A context may be reused for successive
// runs (each Run resets Store); nothing here is shared across
// concurrent runs except the read-only Wind/Current/Polar/Mask.
type RouteContext struct {
	Wind    grib.Evaluator
	Current grib.Evaluator // nil if Par.WithCurrent is false
	Polar   *polar.Evaluator
	Mask    *navmask.Mask
	Par     *config.Par

	DataDate, DataTime int
	TimeStampEnd       float64 // last forecast hour offset in Wind's zone
	TDeltaCurrent      float64 // offset between the current zone's origin and Wind's

	Store  IsochroneStore
	nextID int

	sectors [2][]sectorState
}

// NewRouteContext builds a RouteContext for a single routing run.
func NewRouteContext(wind, current grib.Evaluator, pol *polar.Evaluator, mask *navmask.Mask,
	par *config.Par, dataDate, dataTime int, timeStampEnd float64) *RouteContext {

	maxSectors := par.NSectors
	if maxSectors < 180 {
		maxSectors = 180
	}

	return &RouteContext{
		Wind: wind, Current: current, Polar: pol, Mask: mask, Par: par,
		DataDate: dataDate, DataTime: dataTime, TimeStampEnd: timeStampEnd,
		nextID:  1,
		sectors: [2][]sectorState{newSectorBuf(maxSectors), newSectorBuf(maxSectors)},
	}
}

func (rc *RouteContext) allocID() int {
	id := rc.nextID
	rc.nextID++
	return id
}
