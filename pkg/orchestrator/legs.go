// pkg/orchestrator/legs.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// LegOutcome pairs one leg's raw engine outcome with its reconstructed
// route (nil only when the run or the reconstruction failed).
type LegOutcome struct {
	Outcome engine.Outcome
	Route   *route.SailRoute
}

// RunLeg runs the engine from pOr to pDest and, unless the run ended in
// an error, reconstructs the route immediately, snapshotting rc's isochrone store before the
// next call to Run discards it.
func RunLeg(rc *engine.RouteContext, pOr, pDest engine.Pp, toIndexWp int, t, dt float64,
	status *engine.StatusWord, wind grib.Evaluator, par *config.Par, dataDate, dataTime int) (LegOutcome, error) {

	outcome := rc.Run(pOr, pDest, toIndexWp, t, dt, status)
	if outcome.Kind == engine.OutcomeError {
		return LegOutcome{Outcome: outcome}, outcome.Err
	}

	// Reconstruct regardless of whether the destination was reached: an
	// exhausted or stopped run still sailed as far as the weather window
	// allowed, and that partial route is what gets reported.
	store := rc.Store
	r, err := route.Reconstruct(&store, pOr, pDest, outcome, wind, par, dataDate, dataTime)
	if err != nil {
		return LegOutcome{Outcome: outcome}, err
	}
	return LegOutcome{Outcome: outcome, Route: r}, nil
}

// MultiLegResult is the outcome of routing through zero or more
// waypoints to the final destination, one independent engine run per
// leg, each leg's origin being the previous leg's landfall.
type MultiLegResult struct {
	Legs               []LegOutcome
	DestinationReached bool
	TotalDuration      float64
	TotalDist          float64
}

// RunWaypoints routes pOr through waypoints (in order) to pDest,
// starting each subsequent leg from where the previous one left off, in
// both position and elapsed time. It stops at the first leg that isn't
// reached, grounded on the reference implementation's routingLaunch
// waypoint loop ("break" on the first unreachable leg).
func RunWaypoints(rc *engine.RouteContext, pOr engine.Pp, waypoints []engine.Pp, pDest engine.Pp,
	par *config.Par, startTime, dt float64, status *engine.StatusWord, wind grib.Evaluator,
	dataDate, dataTime int) (*MultiLegResult, error) {

	result := &MultiLegResult{}
	cur := pOr
	t := startTime

	targets := make([]engine.Pp, 0, len(waypoints)+1)
	targets = append(targets, waypoints...)
	targets = append(targets, pDest)

	for i, target := range targets {
		toIndexWp := i
		if i == len(targets)-1 {
			toIndexWp = -1
		}
		leg, err := RunLeg(rc, cur, target, toIndexWp, t, dt, status, wind, par, dataDate, dataTime)
		if err != nil {
			return result, err
		}
		result.Legs = append(result.Legs, leg)
		if leg.Outcome.Kind != engine.OutcomeReached {
			return result, nil
		}

		result.TotalDuration += leg.Route.Duration
		result.TotalDist += leg.Route.TotDist
		t += leg.Route.Duration

		last := leg.Route.Points[len(leg.Route.Points)-1]
		cur = engine.Pp{Lat: last.Lat, Lon: last.Lon, Id: -1, Father: -1}
	}

	result.DestinationReached = true
	return result, nil
}
