// pkg/route/stats.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
)

// statRoute fills in each point's leg geometry, weather sample, and
// stamina, and accumulates the route's aggregate statistics.
func statRoute(route *SailRoute, wind grib.Evaluator, par *config.Par, dataDate, dataTime int) {
	n := route.N
	if n == 0 {
		return
	}
	pts := route.Points
	route.DataDate, route.DataTime = dataDate, dataTime
	route.IsocTimeStep = par.TStep
	pts[0].Stamina = par.StaminaVR

	for i := 1; i < n; i++ {
		manoeuvre := false
		a, b := pts[i-1], pts[i]

		pts[i-1].Time = par.TStep*float64(i-1) + par.StartTimeInHours
		pts[i-1].LCap = geo.DirectCap(a.pos(), b.pos())
		pts[i-1].OCap = geo.OrthoCap(a.pos(), b.pos())
		pts[i-1].Ld = geo.LoxoDist(a.pos(), b.pos())
		pts[i-1].Od = geo.OrthoDist(a.pos(), b.pos())
		pts[i-1].Sog = pts[i-1].Od / par.TStep
		route.TotDist += pts[i-1].Od
		route.Duration += par.TStep

		if i > 1 && pts[i-1].Sail != pts[i-2].Sail {
			pts[i-1].Stamina = math.Max(0, pts[i-2].Stamina-100*PointLoss(SailChange, pts[i-2].Tws))
			manoeuvre = true
			route.NSailChange++
		}
		if i > 1 && pts[i-1].Amure != pts[i-2].Amure {
			pts[i-1].Stamina = math.Max(0, pts[i-2].Stamina-100*PointLoss(Tack, pts[i-2].Tws))
			manoeuvre = true
			route.NAmureChange++
		}
		if pts[i-1].Motor {
			route.MotorDuration += par.TStep
			route.MotorDist += pts[i-1].Od
		} else if pts[i-1].Amure == engine.Starboard {
			route.StarboardDist += pts[i-1].Od
		} else {
			route.PortDist += pts[i-1].Od
		}

		w := wind.Wind(a.Lat, a.Lon, pts[i-1].Time)
		pts[i-1].U, pts[i-1].V, pts[i-1].Gust, pts[i-1].Wave, pts[i-1].Twd, pts[i-1].Tws = w.U, w.V, w.Gust, w.Wave, w.Twd, w.Tws

		route.AvrTws += pts[i-1].Tws
		route.AvrGust += pts[i-1].Gust
		route.AvrWave += pts[i-1].Wave
		route.MaxTws = math.Max(route.MaxTws, pts[i-1].Tws)
		route.MaxGust = math.Max(route.MaxGust, pts[i-1].Gust)
		route.MaxWave = math.Max(route.MaxWave, pts[i-1].Wave)
		route.MaxSog = math.Max(route.MaxSog, pts[i-1].Sog)

		if !manoeuvre && i > 1 {
			if recup := RecoveryTime(pts[i-1].Tws); recup > 1 {
				pts[i-1].Stamina = math.Min(100, pts[i-2].Stamina+3600*route.IsocTimeStep/recup)
			}
		}
	}

	last := n - 1
	pts[last].Time = par.TStep*float64(last) + par.StartTimeInHours
	route.Duration += route.LastStepDuration

	manoeuvre := false
	if n > 1 && pts[last].Sail != pts[last-1].Sail {
		manoeuvre = true
		pts[last].Stamina = math.Max(0, pts[last-1].Stamina-100*PointLoss(SailChange, pts[last-1].Tws))
		route.NSailChange++
	}
	if n > 1 && pts[last].Amure != pts[last-1].Amure {
		manoeuvre = true
		pts[last].Stamina = math.Max(0, pts[last-1].Stamina-100*PointLoss(Tack, pts[last-1].Tws))
		route.NAmureChange++
	}
	if !manoeuvre && n > 1 {
		if recup := RecoveryTime(pts[last].Tws); recup > 1 {
			pts[last].Stamina = math.Min(100, pts[last-1].Stamina+3600*route.IsocTimeStep/recup)
		}
	}

	w := wind.Wind(pts[last].Lat, pts[last].Lon, pts[last].Time)
	pts[last].U, pts[last].V, pts[last].Gust, pts[last].Wave, pts[last].Twd, pts[last].Tws = w.U, w.V, w.Gust, w.Wave, w.Twd, w.Tws
	route.MaxTws = math.Max(route.MaxTws, pts[last].Tws)
	route.MaxGust = math.Max(route.MaxGust, pts[last].Gust)
	route.MaxWave = math.Max(route.MaxWave, pts[last].Wave)
	route.AvrTws += pts[last].Tws
	route.AvrGust += pts[last].Gust
	route.AvrWave += pts[last].Wave

	if pts[last].Motor {
		route.MotorDuration += route.LastStepDuration
		route.MotorDist += pts[last].Od
	} else if pts[last].Amure == engine.Starboard {
		route.StarboardDist += pts[last].Od
	} else {
		route.PortDist += pts[last].Od
	}

	route.AvrTws /= float64(n)
	route.AvrGust /= float64(n)
	route.AvrWave /= float64(n)
	if route.Duration > 0 {
		route.AvrSog = route.TotDist / route.Duration
	}
}

func (p SailPoint) pos() geo.Pos { return geo.Pos{Lat: p.Lat, Lon: p.Lon} }
