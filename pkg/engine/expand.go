// pkg/engine/expand.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
)

// buildNextIsochrone expands every point of isoList by sampling the
// wind (and, if enabled, current) at each point and sweeping a fan of
// courses around the direct heading to the destination. It returns the
// raw, unpruned candidate set and the best vmc seen.
func (rc *RouteContext) buildNextIsochrone(pOr, pDest *Pp, isoList []Pp, t, dt float64) ([]Pp, float64, error) {
	var newList []Pp
	bestVmc := 0.0
	pOrToPDestCog := geo.OrthoCap(pOr.pos(), pDest.pos())

	for _, isoPt := range isoList {
		wind := rc.Wind.Wind(isoPt.Lat, isoPt.Lon, t)
		if wind.Tws > rc.Par.MaxWind {
			continue
		}

		var curr grib.CurrentSample
		if rc.Par.WithCurrent && rc.Current != nil {
			curr = rc.Current.Current(isoPt.Lat, isoPt.Lon, t-rc.TDeltaCurrent)
		}

		cogTarget := geo.OrthoCap(isoPt.pos(), pDest.pos())
		motor := rc.Par.MotorSpeed > 0 && rc.Polar.MaxSpeedAtTws(wind.Tws*rc.Par.XWind) < rc.Par.Threshold
		invCosLat := 1.0 / math.Max(0.01, math.Cos(geo.Radians(isoPt.Lat)))

		eff := rc.Par.NightEfficiency
		if geo.IsDaylight(rc.DataDate, rc.DataTime, t, isoPt.Lat, isoPt.Lon) {
			eff = rc.Par.DayEfficiency
		}

		for cog := cogTarget - rc.Par.RangeCog; cog <= cogTarget+rc.Par.RangeCog; cog += rc.Par.CogStep {
			twa := geo.FTwa(cog, wind.Twd)

			var newPt Pp
			newPt.Amure = Starboard
			if twa <= 0 {
				newPt.Amure = Port
			}
			newPt.ToIndexWp = pDest.ToIndexWp
			newPt.Motor = motor

			var sog float64
			if motor {
				sog = rc.Par.MotorSpeed
				newPt.Sail = 0
			} else {
				sog, newPt.Sail = rc.Polar.Speed(twa, wind.Tws*rc.Par.XWind)
				sog *= eff
				if rc.Par.WithWaves && wind.Wave > 0 {
					sog *= rc.Polar.WaveCoeff(twa, wind.Wave)
				}
			}

			penalty := 0.0
			if !motor {
				if newPt.Amure != isoPt.Amure {
					if geo.Abs(twa) < 90 {
						penalty = rc.Par.Penalty0 / 3600
					} else {
						penalty = rc.Par.Penalty1 / 3600
					}
				}
				if newPt.Sail != isoPt.Sail {
					penalty += rc.Par.Penalty2 / 3600
				}
			}

			step := dt - penalty
			if step < 0 {
				step = 0
			}
			dLat := sog * step * math.Cos(geo.Radians(cog))
			dLon := sog * step * math.Sin(geo.Radians(cog)) * invCosLat
			if rc.Par.WithCurrent && rc.Current != nil {
				dLat += curr.V * dt
				dLon += curr.U * dt * invCosLat
			}

			newPt.Lat = isoPt.Lat + dLat/60.0
			newPt.Lon = isoPt.Lon + dLon/60.0

			if !(rc.Par.AllwaysSea || rc.Mask.IsNavigable(newPt.Lat, newPt.Lon)) {
				continue
			}

			newPt.Id = rc.allocID()
			newPt.Father = isoPt.Id

			pos := newPt.pos()
			newPt.Dd = geo.OrthoDist(pos, pDest.pos())
			alpha := geo.OrthoCap(pOr.pos(), pos) - pOrToPDestCog
			newPt.Vmc = geo.OrthoDist(pos, pOr.pos()) * math.Cos(geo.Radians(alpha))
			if newPt.Vmc > bestVmc {
				bestVmc = newPt.Vmc
			}

			if len(newList) >= config.MaxSizeIsoc {
				return nil, 0, ErrCapacity
			}
			newList = append(newList, newPt)
		}
	}
	return newList, bestVmc, nil
}
