// pkg/engine/goal.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

const goalEpsilon = 0.1

// findFirst returns the index of the point that follows the largest gap
// between cyclically consecutive points, used by the serializer to pick
// a stable start point when rendering an isochrone as a polyline.
func findFirst(points []Pp) int {
	n := len(points)
	if n == 0 {
		return 0
	}
	best := 0
	dSquareMax := -1.0
	for i := 0; i < n; i++ {
		next := i + 1
		if next >= n {
			next = 0
		}
		dLat := points[i].Lat - points[next].Lat
		dLon := (points[i].Lon - points[next].Lon) * math.Cos(geo.Radians(points[next].Lat))
		dSquare := dLat*dLat + dLon*dLon
		if dSquare > dSquareMax {
			dSquareMax = dSquare
			best = next
		}
	}
	return best
}

// fClosest returns the index and value of the isochrone point with the
// smallest orthodist to the destination.
func fClosest(points []Pp, pDest *Pp) (index int, closest Pp) {
	index = -1
	best := math.MaxFloat64
	for i, p := range points {
		d := geo.OrthoDist(pDest.pos(), p.pos())
		if d < best {
			best = d
			closest = p
			index = i
		}
	}
	return
}

// replicate produces a no-wind isochrone: a verbatim copy of the
// previous frontier, used when every candidate in an expansion step
// gets pruned (landlocked by waves/wind/navigability), so a run can
// still make forward progress in time without losing the father chain.
func replicate(prevPoints []Pp) []Pp {
	n := len(prevPoints)
	next := make([]Pp, n)
	for i, p := range prevPoints {
		np := p
		np.Father = p.Id
		np.Id = p.Id + n
		next[i] = np
	}
	return next
}

// goalP tests whether the boat, sailing from a straight toward the
// destination at the polar speed for that course, covers the distance
// from the destination to the segment a-b within this time step (dt less
// any tack/gybe/sail-change penalty). timeTo is the orthodromic distance
// from a to the destination divided by that speed.
func (rc *RouteContext) goalP(a, b, pDest *Pp, t, dt float64) (timeTo, distance float64, motor bool, amure Amure, sail int, reached bool) {
	coeffLat := math.Cos(geo.Radians((a.Lat + pDest.Lat) / 2))
	dLat := pDest.Lat - a.Lat
	dLon := (pDest.Lon - a.Lon) * coeffLat
	cog := geo.Degrees(math.Atan2(dLon, dLat))

	distToSegment := geo.DistSegment(pDest.pos(), a.pos(), b.pos())
	distance = geo.OrthoDist(pDest.pos(), a.pos())

	wind := rc.Wind.Wind(a.Lat, a.Lon, t)
	twa := geo.FTwa(cog, wind.Twd)
	amure = Starboard
	if twa <= 0 {
		amure = Port
	}

	eff := rc.Par.NightEfficiency
	if geo.IsDaylight(rc.DataDate, rc.DataTime, t, a.Lat, a.Lon) {
		eff = rc.Par.DayEfficiency
	}

	sog, s := rc.Polar.Speed(twa, wind.Tws*rc.Par.XWind)
	sog *= eff
	sail = s
	if rc.Par.WithWaves && wind.Wave > 0 {
		sog *= rc.Polar.WaveCoeff(twa, wind.Wave)
	}

	if sog <= goalEpsilon {
		return math.MaxFloat64, distance, false, amure, sail, false
	}
	timeTo = distance / sog

	penalty := 0.0
	if pDest.Amure != a.Amure {
		if geo.Abs(twa) < 90 {
			penalty = rc.Par.Penalty0 / 3600
		} else {
			penalty = rc.Par.Penalty1 / 3600
		}
	}
	if pDest.Sail != a.Sail {
		penalty += rc.Par.Penalty2 / 3600
	}

	reached = sog*(dt-penalty) > distToSegment
	return timeTo, distance, false, amure, sail, reached
}

// goal scans one isochrone for the minimum-time predecessor from which
// the destination is reachable within this step, and records it on
// pDest if found.
func (rc *RouteContext) goal(pDest *Pp, isoList []Pp, t, dt float64) (reached bool, lastStepDuration, minDistance float64) {
	minDistance = math.MaxFloat64
	if len(isoList) < 2 {
		return false, 0, minDistance
	}

	bestTime := math.MaxFloat64
	prev := isoList[0]
	for k := 1; k < len(isoList); k++ {
		curr := isoList[k]
		if rc.Par.AllwaysSea || rc.Mask.IsNavigable(curr.Lat, curr.Lon) {
			timeTo, distance, motor, amure, sail, ok := rc.goalP(&prev, &curr, pDest, t, dt)
			if ok && timeTo < bestTime {
				bestTime = timeTo
				reached = true
				pDest.Father = prev.Id
				pDest.Motor = motor
				pDest.Amure = amure
				pDest.Sail = sail
			}
			if distance < minDistance {
				minDistance = distance
			}
		}
		prev = curr
	}
	if !reached {
		bestTime = 0
	}
	return reached, bestTime, minDistance
}
