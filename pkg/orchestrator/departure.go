// pkg/orchestrator/departure.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// DepartureSearch is the sweep of candidate departure times to try.
type DepartureSearch struct {
	TBegin, TEnd, TInterval float64
	MaxSamples              int // 0 means unbounded
}

// DepartureSample is one sampled departure time's result.
type DepartureSample struct {
	Time      float64
	Duration  float64 // math.Inf(1) if unreachable
	Reachable bool
}

// DepartureResult is the outcome of a best-departure-time sweep.
type DepartureResult struct {
	BestTime                 float64 // -1 if no sample reached the destination
	MinDuration, MaxDuration float64
	Samples                  []DepartureSample
	SolutionExists           bool
	Stopped                  bool

	// ClosestRoute is the partial route of the last sampled departure
	// time, set only when SolutionExists is false. It lets a caller
	// report how far the boat got even though no departure time in the
	// window reached the destination, mirroring the reference
	// implementation's routingLaunch, which calls storeRoute on every
	// sample regardless of outcome, so a route is always available for
	// display even without a solution.
	ClosestRoute *route.SailRoute
}

// BestTimeDeparture samples departure times across search, running one
// engine leg per sample, and returns the earliest-duration departure
// found. It aborts the sweep early once more than config.MaxUnreachable
// consecutive unreachable samples have been seen, mirroring
// the reference implementation's abandonment heuristic for a dead
// weather window.
func BestTimeDeparture(rc *engine.RouteContext, pOr, pDest engine.Pp, par *config.Par, dt float64,
	search DepartureSearch, status *engine.StatusWord, wind grib.Evaluator, dataDate, dataTime int) (*DepartureResult, error) {

	res := &DepartureResult{BestTime: -1, MinDuration: math.MaxFloat64}
	nUnreachable := 0
	count := 0
	lastT := search.TBegin
	sampled := false

	for t := search.TBegin; t < search.TEnd; t += search.TInterval {
		if search.MaxSamples > 0 && count >= search.MaxSamples {
			break
		}
		count++
		sampled, lastT = true, t

		outcome := rc.Run(pOr, pDest, -1, t, dt, status)
		if outcome.Kind == engine.OutcomeStopped {
			res.Stopped = true
			return res, nil
		}
		if outcome.Kind == engine.OutcomeError {
			return res, outcome.Err
		}

		if outcome.Kind == engine.OutcomeReached {
			store := rc.Store
			r, err := route.Reconstruct(&store, pOr, pDest, outcome, wind, par, dataDate, dataTime)
			if err != nil {
				return res, err
			}
			res.Samples = append(res.Samples, DepartureSample{Time: t, Duration: r.Duration, Reachable: true})
			if r.Duration < res.MinDuration {
				res.MinDuration = r.Duration
				res.BestTime = t
			}
			if r.Duration > res.MaxDuration {
				res.MaxDuration = r.Duration
			}
			nUnreachable = 0
			continue
		}

		res.Samples = append(res.Samples, DepartureSample{Time: t, Duration: math.Inf(1)})
		nUnreachable++
		if nUnreachable > config.MaxUnreachable {
			break
		}
	}

	res.SolutionExists = res.BestTime >= 0
	if !res.SolutionExists && sampled {
		// No departure time reached the destination; rerun the last
		// sampled time to recover its store and report the closest-
		// approach route, rather than leaving the caller with nothing.
		outcome := rc.Run(pOr, pDest, -1, lastT, dt, status)
		if outcome.Kind != engine.OutcomeError && outcome.Kind != engine.OutcomeStopped {
			store := rc.Store
			if r, err := route.Reconstruct(&store, pOr, pDest, outcome, wind, par, dataDate, dataTime); err == nil {
				res.ClosestRoute = r
			}
		}
	}
	return res, nil
}
