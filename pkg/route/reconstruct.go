// pkg/route/reconstruct.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"errors"
	"fmt"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
)

// ErrBrokenChain is returned when a point's recorded father id cannot be
// found in the preceding isochrone, meaning the father chain in the
// store is corrupt or the store doesn't belong to this pOr/pDest pair.
var ErrBrokenChain = errors.New("route: father chain broken")

func findFather(fatherID int, isoc []engine.Pp) int {
	for i, p := range isoc {
		if p.Id == fatherID {
			return i
		}
	}
	return -1
}

// Reconstruct walks an engine run's isochrone store backward to pOr via
// father links, producing the sailed route and its statistics. outcome
// is the Outcome the run returned; pDest must be the same value the
// engine.Run call mutated (its Father/Motor/Amure/Sail fields, as
// recorded by the goal test).
//
// When outcome.Kind is OutcomeReached, the route's tail is pDest
// itself. Otherwise (OutcomeExhausted or OutcomeStopped) the
// destination was never reached, and the tail is the point of the last
// isochrone closest to pDest (store.Desc[last].Closest) — the boat
// sailed as far toward the destination as the weather window allowed
// and stopped there.
func Reconstruct(store *engine.IsochroneStore, pOr, pDest engine.Pp, outcome engine.Outcome,
	wind grib.Evaluator, par *config.Par, dataDate, dataTime int) (*SailRoute, error) {

	nIsoc := len(store.Points)
	reached := outcome.Kind == engine.OutcomeReached
	route := &SailRoute{
		NIsoc:              nIsoc,
		DestinationReached: reached,
		LastStepDuration:   outcome.LastStepDuration,
	}

	if nIsoc == 0 {
		route.N = 1
		route.Points = []SailPoint{{Lat: pOr.Lat, Lon: geo.LonNormalize(pOr.Lon, false), Id: pOr.Id, Father: pOr.Father}}
		statRoute(route, wind, par, dataDate, dataTime)
		return route, nil
	}

	var tail engine.Pp
	var n, startIsoc int
	if reached {
		tail = pDest
		n = nIsoc + 2
		startIsoc = nIsoc - 1
	} else {
		tail = store.Points[nIsoc-1][store.Desc[nIsoc-1].Closest]
		n = nIsoc + 1
		startIsoc = nIsoc - 2
	}

	route.N = n
	points := make([]SailPoint, n)
	points[n-1] = SailPoint{
		Lat: tail.Lat, Lon: geo.LonNormalize(tail.Lon, false),
		Id: tail.Id, Father: tail.Father, Motor: tail.Motor, Amure: tail.Amure,
		ToIndexWp: tail.ToIndexWp, Sail: tail.Sail,
	}

	pt := tail
	ptLast := tail
	for i := startIsoc; i >= 0; i-- {
		iFather := findFather(pt.Father, store.Points[i])
		if iFather == -1 {
			return nil, fmt.Errorf("%w: isoc %d, father id %d", ErrBrokenChain, i, pt.Father)
		}
		pt = store.Points[i][iFather]
		points[i+1] = SailPoint{
			Lat: pt.Lat, Lon: geo.LonNormalize(pt.Lon, false),
			Id: pt.Id, Father: pt.Father,
			Motor: ptLast.Motor, Amure: ptLast.Amure,
			ToIndexWp: pt.ToIndexWp, Sail: pt.Sail,
		}
		ptLast = pt
	}
	points[0] = SailPoint{
		Lat: pOr.Lat, Lon: geo.LonNormalize(pOr.Lon, false),
		Id: pOr.Id, Father: pOr.Father,
		Motor: ptLast.Motor, Amure: ptLast.Amure,
		ToIndexWp: ptLast.ToIndexWp, Sail: ptLast.Sail,
	}
	route.Points = points

	statRoute(route, wind, par, dataDate, dataTime)
	return route, nil
}
