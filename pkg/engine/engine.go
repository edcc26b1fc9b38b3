// pkg/engine/engine.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import "github.com/rigault/simplerouting-sub000/pkg/geo"

const minStep = 0.25

// Run expands isochrones forward from pOr toward pDest, starting at
// time t and stepping by dt hours, until the destination is reached,
// the weather field is exhausted, or status reports StatusStopped.
//
// status may be nil, in which case the run cannot be cancelled.
func (rc *RouteContext) Run(pOr, pDest Pp, toIndexWp int, t, dt float64, status *StatusWord) Outcome {
	if dt < minStep {
		return Outcome{Kind: OutcomeError, Err: ErrStep}
	}

	rc.Store = IsochroneStore{}
	rc.nextID = 1
	pOr.Id, pOr.Father = -1, -1
	pDest.Id, pDest.Father = 0, 0
	pDest.ToIndexWp = toIndexWp
	pOr.Dd = geo.OrthoDist(pOr.pos(), pDest.pos())

	if status != nil {
		// A stop requested before this run started is honored here
		// instead of being overwritten by StatusRunning.
		for {
			cur := status.v.Load()
			if Status(cur) == StatusStopped {
				return Outcome{Kind: OutcomeStopped}
			}
			if status.v.CompareAndSwap(cur, int32(StatusRunning)) {
				break
			}
		}
	}

	if timeTo, _, motor, amure, sail, ok := rc.goalP(&pOr, &pOr, &pDest, t, dt); ok {
		pDest.Father, pDest.Motor, pDest.Amure, pDest.Sail = pOr.Id, motor, amure, sail
		if status != nil {
			status.Store(StatusExistSolution)
		}
		return Outcome{Kind: OutcomeReached, NIsoc: 0, LastStepDuration: timeTo}
	}

	points, bestVmc, err := rc.buildNextIsochrone(&pOr, &pDest, []Pp{pOr}, t, dt)
	if err != nil {
		if status != nil {
			status.Store(StatusError)
		}
		return Outcome{Kind: OutcomeError, Err: err}
	}
	if len(points) == 0 {
		points = []Pp{pOr}
	}
	closestIdx, closest := fClosest(points, &pDest)
	rc.Store.append(points, IsoDesc{
		Size: len(points), First: findFirst(points), Closest: closestIdx,
		Distance: geo.OrthoDist(closest.pos(), pDest.pos()),
		BestVmc:  bestVmc, ToIndexWp: toIndexWp,
		FocalLat: pOr.Lat, FocalLon: pOr.Lon,
	})
	nIsoc := 1

	maxNIsoc := int(rc.TimeStampEnd/dt) + 2

	for t < rc.TimeStampEnd && nIsoc < maxNIsoc {
		if status != nil && status.Load() == StatusStopped {
			return Outcome{Kind: OutcomeStopped, NIsoc: nIsoc}
		}
		t += dt

		prevPoints := rc.Store.Points[nIsoc-1]
		reached, lastStepDuration, minDistance := rc.goal(&pDest, prevPoints, t, dt)
		rc.Store.Desc[nIsoc-1].Distance = minDistance

		candidates, bestVmc, err := rc.buildNextIsochrone(&pOr, &pDest, prevPoints, t, dt)
		if err != nil {
			if status != nil {
				status.Store(StatusError)
			}
			return Outcome{Kind: OutcomeError, Err: err}
		}

		optPoints, focalLat, focalLon := rc.optimize(&pOr, &pDest, nIsoc, candidates)
		if len(optPoints) == 0 {
			optPoints = replicate(prevPoints)
			if maxID := maxOf(optPoints); maxID >= rc.nextID {
				rc.nextID = maxID + 1
			}
		}

		closestIdx, closest = fClosest(optPoints, &pDest)
		rc.Store.append(optPoints, IsoDesc{
			Size: len(optPoints), First: findFirst(optPoints), Closest: closestIdx,
			Distance: geo.OrthoDist(closest.pos(), pDest.pos()),
			BestVmc:  bestVmc, ToIndexWp: toIndexWp,
			FocalLat: focalLat, FocalLon: focalLon,
		})

		if reached {
			if status != nil {
				status.Store(StatusExistSolution)
			}
			return Outcome{Kind: OutcomeReached, NIsoc: nIsoc + 1, LastStepDuration: lastStepDuration}
		}
		nIsoc++
	}

	if status != nil {
		status.Store(StatusNoSolution)
	}
	return Outcome{Kind: OutcomeExhausted, NIsoc: nIsoc}
}

func maxOf(points []Pp) int {
	m := 0
	for _, p := range points {
		if p.Id > m {
			m = p.Id
		}
	}
	return m
}
