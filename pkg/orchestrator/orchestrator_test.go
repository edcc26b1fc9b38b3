// pkg/orchestrator/orchestrator_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package orchestrator

import (
	"math"
	"strings"
	"testing"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/polar"
)

const testPolarCSV = `TWA/TWS;5;15;25
0;0;0;0
45;3;5.5;6
90;4;7;8
135;3.5;6;6.5
180;2;3.5;4
`

func newTestEvaluator(t *testing.T) *polar.Evaluator {
	m, err := polar.LoadCSV(strings.NewReader(testPolarCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	return &polar.Evaluator{Polar: m}
}

func newTestPar() *config.Par {
	p := &config.Par{
		NSectors:   36,
		Opt:        1,
		AllwaysSea: true,
	}
	p.SetDefaults()
	return p
}

func newTestContext(t *testing.T, wind grib.Evaluator, par *config.Par, timeStampEnd float64) *engine.RouteContext {
	return engine.NewRouteContext(wind, nil, newTestEvaluator(t), nil, par, 20260101, 0, timeStampEnd)
}

func TestRunWaypointsChainsLegsAndStopsOnUnreachable(t *testing.T) {
	wind := &grib.Constant{WindTwd: 0, WindTws: 15}
	par := newTestPar()
	rc := newTestContext(t, wind, par, 480)

	pOr := engine.Pp{Lat: 45, Lon: -5}
	waypoint := engine.Pp{Lat: 45.2, Lon: -5}
	pDest := engine.Pp{Lat: 45.4, Lon: -5}

	result, err := RunWaypoints(rc, pOr, []engine.Pp{waypoint}, pDest, par, 0, par.TStep, nil, wind, 20260101, 0)
	if err != nil {
		t.Fatalf("RunWaypoints: %v", err)
	}
	if !result.DestinationReached {
		t.Fatalf("expected destination reached")
	}
	if len(result.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(result.Legs))
	}
	for i, leg := range result.Legs {
		if leg.Outcome.Kind != engine.OutcomeReached {
			t.Fatalf("leg %d: expected reached, got %v", i, leg.Outcome.Kind)
		}
		if leg.Route == nil {
			t.Fatalf("leg %d: expected a reconstructed route", i)
		}
	}
	if result.TotalDuration <= 0 {
		t.Errorf("expected positive total duration, got %v", result.TotalDuration)
	}
	if result.TotalDist <= 0 {
		t.Errorf("expected positive total distance, got %v", result.TotalDist)
	}

	lastLeg := result.Legs[1].Route
	lastPoint := lastLeg.Points[len(lastLeg.Points)-1]
	if math.Abs(lastPoint.Lat-pDest.Lat) > 0.5 || math.Abs(lastPoint.Lon-pDest.Lon) > 0.5 {
		t.Errorf("expected final leg to land near pDest, got lat=%v lon=%v", lastPoint.Lat, lastPoint.Lon)
	}
}

func TestRunWaypointsStopsAtFirstUnreachedLeg(t *testing.T) {
	wind := &grib.Constant{WindTwd: 0, WindTws: 200}
	par := newTestPar()
	par.MaxWind = 60
	rc := newTestContext(t, wind, par, 12)

	pOr := engine.Pp{Lat: 45, Lon: -5}
	waypoint := engine.Pp{Lat: 50, Lon: -5}
	pDest := engine.Pp{Lat: 55, Lon: -5}

	result, err := RunWaypoints(rc, pOr, []engine.Pp{waypoint}, pDest, par, 0, par.TStep, nil, wind, 20260101, 0)
	if err != nil {
		t.Fatalf("RunWaypoints: %v", err)
	}
	if result.DestinationReached {
		t.Fatalf("expected destination not reached")
	}
	if len(result.Legs) != 1 {
		t.Fatalf("expected sweep to stop after 1 leg, got %d", len(result.Legs))
	}
	if result.Legs[0].Outcome.Kind != engine.OutcomeExhausted {
		t.Errorf("expected first leg exhausted, got %v", result.Legs[0].Outcome.Kind)
	}
	if result.Legs[0].Route == nil {
		t.Fatal("expected a partial, closest-approach route for the unreached leg")
	}
	if result.Legs[0].Route.DestinationReached {
		t.Error("expected the partial route's DestinationReached to be false")
	}
}

func TestBestTimeDepartureSelectsFastestSample(t *testing.T) {
	wind := &grib.Constant{WindTwd: 0, WindTws: 15}
	par := newTestPar()
	rc := newTestContext(t, wind, par, 48)

	pOr := engine.Pp{Lat: 45, Lon: -5}
	pDest := engine.Pp{Lat: 45.3, Lon: -5}

	search := DepartureSearch{TBegin: 0, TEnd: 3, TInterval: 1}
	res, err := BestTimeDeparture(rc, pOr, pDest, par, par.TStep, search, nil, wind, 20260101, 0)
	if err != nil {
		t.Fatalf("BestTimeDeparture: %v", err)
	}
	if !res.SolutionExists {
		t.Fatalf("expected a solution to exist")
	}
	if res.BestTime < search.TBegin || res.BestTime >= search.TEnd {
		t.Errorf("expected best time within search window, got %v", res.BestTime)
	}
	if len(res.Samples) != 3 {
		t.Errorf("expected 3 samples, got %d", len(res.Samples))
	}
	for _, s := range res.Samples {
		if !s.Reachable {
			t.Errorf("sample at t=%v: expected reachable", s.Time)
		}
	}
	if res.MinDuration > res.MaxDuration {
		t.Errorf("expected MinDuration <= MaxDuration, got %v > %v", res.MinDuration, res.MaxDuration)
	}
}

func TestBestTimeDepartureAbortsAfterMaxUnreachable(t *testing.T) {
	wind := &grib.Constant{WindTwd: 0, WindTws: 200}
	par := newTestPar()
	par.MaxWind = 60
	rc := newTestContext(t, wind, par, 12)

	pOr := engine.Pp{Lat: 45, Lon: -5}
	pDest := engine.Pp{Lat: 55, Lon: -5}

	search := DepartureSearch{TBegin: 0, TEnd: float64(config.MaxUnreachable) * 4, TInterval: 1}
	res, err := BestTimeDeparture(rc, pOr, pDest, par, par.TStep, search, nil, wind, 20260101, 0)
	if err != nil {
		t.Fatalf("BestTimeDeparture: %v", err)
	}
	if res.SolutionExists {
		t.Fatalf("expected no solution")
	}
	if len(res.Samples) > config.MaxUnreachable+1 {
		t.Errorf("expected sweep to abort near MaxUnreachable samples, got %d", len(res.Samples))
	}
	if res.ClosestRoute == nil {
		t.Fatal("expected a closest-approach route even though no departure time reached the destination")
	}
	if res.ClosestRoute.DestinationReached {
		t.Error("expected ClosestRoute.DestinationReached to be false")
	}
}

func TestRunCompetitorsOrdersLastToFirstAndHandlesUnreachable(t *testing.T) {
	wind := &grib.Constant{WindTwd: 0, WindTws: 15}
	par := newTestPar()
	rc := newTestContext(t, wind, par, 48)

	pDest := engine.Pp{Lat: 45.3, Lon: -5}
	competitors := []Competitor{
		{Name: "alpha", Lat: 45, Lon: -5},
		{Name: "bravo", Lat: 45.1, Lon: -5},
		{Name: "charlie", Lat: 80, Lon: -5}, // far away, won't reach in the allotted time
	}

	results, history, err := RunCompetitors(rc, competitors, pDest, par, 0, par.TStep, nil, wind, 20260101, 0)
	if err != nil {
		t.Fatalf("RunCompetitors: %v", err)
	}
	if len(results) != len(competitors) {
		t.Fatalf("expected %d results, got %d", len(competitors), len(results))
	}
	if !results[0].Reached || !results[1].Reached {
		t.Errorf("expected alpha and bravo to reach the destination")
	}
	if results[2].Reached {
		t.Errorf("expected charlie to be unreachable")
	}
	if !math.IsInf(results[2].Duration, 1) || !math.IsInf(results[2].Dist, 1) {
		t.Errorf("expected charlie's duration and distance to be +Inf, got %v / %v", results[2].Duration, results[2].Dist)
	}
	if len(history) != len(competitors) {
		t.Errorf("expected a reconstructed route per competitor, including the unreachable one, got %d", len(history))
	}
	if history[0].DestinationReached {
		t.Error("expected charlie's (first-computed) route to report DestinationReached=false")
	}
}
