// run.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/orchestrator"
	"github.com/rigault/simplerouting-sub000/pkg/route"
	"github.com/rigault/simplerouting-sub000/pkg/serialize"
	"github.com/rigault/simplerouting-sub000/pkg/util"
)

// dispatch runs the mode selected by -mode and renders the result in the
// format selected by -format.
func dispatch(rc *engine.RouteContext, pOr, pDest engine.Pp, wps []engine.Pp, par *config.Par,
	status *engine.StatusWord, wind grib.Evaluator, dd, dt int) ([]byte, error) {

	switch *mode {
	case "route":
		return runRoute(rc, pOr, pDest, wps, par, status, wind, dd, dt)
	case "departure":
		return runDeparture(rc, pOr, pDest, par, status, wind, dd, dt)
	case "competitors":
		return runCompetitors(rc, pDest, par, status, wind, dd, dt)
	default:
		return nil, fmt.Errorf("unknown mode %q (want route, departure, or competitors)", *mode)
	}
}

func runRoute(rc *engine.RouteContext, pOr, pDest engine.Pp, wps []engine.Pp, par *config.Par,
	status *engine.StatusWord, wind grib.Evaluator, dd, dt int) ([]byte, error) {

	result, err := orchestrator.RunWaypoints(rc, pOr, wps, pDest, par, par.StartTimeInHours, par.TStep, status, wind, dd, dt)
	if err != nil {
		return nil, err
	}
	if len(result.Legs) == 0 {
		return nil, fmt.Errorf("no legs run")
	}
	last := result.Legs[len(result.Legs)-1]
	if last.Route == nil {
		return nil, fmt.Errorf("leg produced no route: %v", last.Outcome.Kind)
	}

	// last.Route is the partial, closest-approach route when the leg's
	// outcome isn't OutcomeReached; it is still what gets reported.
	final := last.Route
	var store *engine.IsochroneStore
	if *withIsoc {
		store = &rc.Store
	}

	switch *format {
	case "json":
		rep := serialize.BuildRouteReport(final, "", store)
		return serialize.Marshal(rep)
	case "csv":
		return renderCSV(store)
	case "gpx":
		return renderGPX(final, dd, dt)
	case "text":
		return []byte(serialize.RouteText(final, "")), nil
	default:
		return nil, fmt.Errorf("unknown format %q", *format)
	}
}

func runDeparture(rc *engine.RouteContext, pOr, pDest engine.Pp, par *config.Par,
	status *engine.StatusWord, wind grib.Evaluator, dd, dt int) ([]byte, error) {

	search := orchestrator.DepartureSearch{TBegin: *departBegin, TEnd: *departEnd, TInterval: *departInterval}
	res, err := orchestrator.BestTimeDeparture(rc, pOr, pDest, par, par.TStep, search, status, wind, dd, dt)
	if err != nil {
		return nil, err
	}

	bestRoute := res.ClosestRoute
	if res.SolutionExists {
		outcome := rc.Run(pOr, pDest, -1, res.BestTime, par.TStep, status)
		if outcome.Kind == engine.OutcomeReached {
			store := rc.Store
			bestRoute, err = route.Reconstruct(&store, pOr, pDest, outcome, wind, par, dd, dt)
			if err != nil {
				return nil, err
			}
		}
	}

	switch *format {
	case "json":
		return serialize.Marshal(serialize.BuildBestTimeReport(res, bestRoute))
	case "text":
		if bestRoute == nil {
			return []byte("no departure time reaches the destination\n"), nil
		}
		return []byte(serialize.RouteText(bestRoute, "")), nil
	default:
		return nil, fmt.Errorf("format %q not supported for -mode=departure (use json or text)", *format)
	}
}

func runCompetitors(rc *engine.RouteContext, pDest engine.Pp, par *config.Par,
	status *engine.StatusWord, wind grib.Evaluator, dd, dt int) ([]byte, error) {

	if *competitorsFile == "" {
		return nil, fmt.Errorf("-competitors is required for -mode=competitors")
	}
	specs, err := loadCompetitors(*competitorsFile)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: no competitors listed", *competitorsFile)
	}
	competitors := util.MapSlice(specs, func(s competitorSpec) orchestrator.Competitor {
		return orchestrator.Competitor{Name: s.Name, Lat: s.Lat, Lon: s.Lon}
	})

	results, routes, err := orchestrator.RunCompetitors(rc, competitors, pDest, par, par.StartTimeInHours, par.TStep, status, wind, dd, dt)
	if err != nil {
		return nil, err
	}

	switch *format {
	case "json":
		if len(routes) == 0 {
			return nil, fmt.Errorf("no route computed")
		}
		current := routes[len(routes)-1] // most recently computed, conventionally competitor 0
		rep := serialize.BuildCompetitorsReport(current, competitors[0].Name, *withIsoc, &rc.Store, results[1:])
		return serialize.Marshal(rep)
	case "text":
		names := make([]string, len(results))
		durations := make([]float64, len(results))
		dists := make([]float64, len(results))
		reached := make([]bool, len(results))
		for i, r := range results {
			names[i], reached[i] = r.Name, r.Reached
			if r.Reached {
				durations[i], dists[i] = r.Duration, r.Dist
			}
		}
		return []byte(serialize.CompetitorsText(names, durations, dists, reached)), nil
	default:
		return nil, fmt.Errorf("format %q not supported for -mode=competitors (use json or text)", *format)
	}
}

func renderCSV(store *engine.IsochroneStore) ([]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("-isoc is required for -format=csv")
	}
	var buf bytes.Buffer
	if err := serialize.WriteIsochronesCSV(&buf, store); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderGPX(r *route.SailRoute, dd, dt int) ([]byte, error) {
	epoch, err := gribEpoch(dd, dt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := serialize.WriteGPX(&buf, r, epoch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gribEpoch(dataDate, dataTime int) (time.Time, error) {
	const layout = "20060102 1504"
	return time.Parse(layout, fmt.Sprintf("%d %04d", dataDate, dataTime))
}
