// pkg/orchestrator/competitors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// Competitor is one boat in a fleet sweep: a starting position with a
// display name.
type Competitor struct {
	Name     string
	Lat, Lon float64
}

// CompetitorResult is one competitor's outcome.
type CompetitorResult struct {
	Name     string
	Duration float64 // hours; math.Inf(1) if unreachable
	Dist     float64 // orthodist from start to destination
	Reached  bool
}

// RunCompetitors routes every competitor to the same destination,
// returning one result per competitor (in input order) and the
// reconstructed routes in the order they were computed.
//
// The sweep runs last-to-first, matching the reference implementation's
// routingLaunch loop, which keeps the first competitor (typically the
// user's own boat) as the most recently computed route for display
// purposes.
func RunCompetitors(rc *engine.RouteContext, competitors []Competitor, pDest engine.Pp, par *config.Par,
	startTime, dt float64, status *engine.StatusWord, wind grib.Evaluator, dataDate, dataTime int) ([]CompetitorResult, []*route.SailRoute, error) {

	results := make([]CompetitorResult, len(competitors))
	var history []*route.SailRoute

	for i := len(competitors) - 1; i >= 0; i-- {
		c := competitors[i]
		pOr := engine.Pp{Lat: c.Lat, Lon: c.Lon, Id: -1, Father: -1}

		outcome := rc.Run(pOr, pDest, -1, startTime, dt, status)
		if outcome.Kind == engine.OutcomeStopped {
			return results, history, ErrStopped
		}
		if outcome.Kind == engine.OutcomeError {
			return results, history, outcome.Err
		}

		// Reconstruct unconditionally, matching the reference's
		// allCompetitors loop, which calls saveRoute on every competitor
		// regardless of whether it reached the destination, so the fleet's
		// most-recently-computed route always has something to display.
		store := rc.Store
		r, err := route.Reconstruct(&store, pOr, pDest, outcome, wind, par, dataDate, dataTime)
		if err != nil {
			return results, history, err
		}
		history = append(history, r)

		if outcome.Kind != engine.OutcomeReached {
			results[i] = CompetitorResult{Name: c.Name, Duration: math.Inf(1), Dist: math.Inf(1)}
			continue
		}
		results[i] = CompetitorResult{
			Name:     c.Name,
			Duration: r.Duration,
			Dist:     geo.OrthoDist(geo.Pos{Lat: c.Lat, Lon: c.Lon}, geo.Pos{Lat: pDest.Lat, Lon: pDest.Lon}),
			Reached:  true,
		}
	}
	return results, history, nil
}
