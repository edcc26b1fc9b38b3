// pkg/engine/sector.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

const (
	sectorEpsilon            = 0.1
	sectorEpsilonDenominator = 0.01
	minVmcRatio              = 0.8
)

// optimize dispatches to either the identity pass (Par.Opt == 0) or
// forwardSectorOptimize (Par.Opt == 1).
func (rc *RouteContext) optimize(pOr, pDest *Pp, nIsoc int, isoList []Pp) (points []Pp, focalLat, focalLon float64) {
	if rc.Par.Opt == 0 {
		return append([]Pp(nil), isoList...), pOr.Lat, pOr.Lon
	}
	return rc.forwardSectorOptimize(pOr, pDest, nIsoc, isoList)
}

// forwardSectorOptimize keeps at most one survivor per angular sector
// around a focal point that drifts from the origin toward the
// destination as the run progresses, discarding sectors whose survivor
// fails a monotonicity test against the previous isochrone's sector
// state (selected by Par.KFactor).
func (rc *RouteContext) forwardSectorOptimize(pOr, pDest *Pp, nIsoc int, isoList []Pp) (points []Pp, focalLat, focalLon float64) {
	nSectors := rc.Par.NSectors
	if nIsoc < config.ThresholdSector {
		nSectors = 180
	}
	thetaStep := 360.0 / float64(nSectors)

	denom := math.Cos(geo.Radians((pOr.Lat + pDest.Lat) / 2))
	pOrToPDestHdg := geo.DirectCap(pOr.pos(), pDest.pos())
	if denom < sectorEpsilonDenominator {
		return nil, pOr.Lat, pOr.Lon
	}

	if rc.Par.JFactor == 0 || nIsoc < config.Limit {
		focalLat, focalLon = pOr.Lat, pOr.Lon
	} else {
		dist := pOr.Dd - rc.Store.Desc[nIsoc-config.Limit].Distance - rc.Par.JFactor
		dLat := dist * math.Cos(geo.Radians(pOrToPDestHdg))
		dLon := dist * math.Sin(geo.Radians(pOrToPDestHdg)) / denom
		focalLat = pOr.Lat + dLat/60.0
		focalLon = pOr.Lon + dLon/60.0
		if focalLat < -90 || focalLat > 90 || focalLon < -360 || focalLon > 360 {
			return nil, focalLat, focalLon
		}
	}

	current := rc.sectors[nIsoc%2]
	for i := 0; i < nSectors; i++ {
		current[i] = sectorState{dd: math.MaxFloat64}
	}
	previous := rc.sectors[(nIsoc-1)%2]

	optIsoc := make([]Pp, nSectors)
	invThetaStep := 1.0 / thetaStep
	focal := geo.Pos{Lat: focalLat, Lon: focalLon}

	for _, cand := range isoList {
		alpha := geo.DirectCap(focal, cand.pos())
		theta := geo.NormalizeHeading(pOrToPDestHdg - alpha)
		iSector := int(math.Round((360.0 - theta) * invThetaStep))
		if iSector >= nSectors {
			iSector -= nSectors
		}
		if iSector < 0 {
			iSector = 0
		}

		sect := &current[iSector]
		if cand.Dd < sect.dd && cand.Vmc > sect.vmc {
			sect.dd = cand.Dd
			sect.vmc = cand.Vmc
			optIsoc[iSector] = cand
		}
		sect.nPt++
	}

	prevBestVmc := rc.Store.Desc[nIsoc-1].BestVmc
	points = make([]Pp, 0, nSectors)
	for iSector := 0; iSector < nSectors; iSector++ {
		cur := &current[iSector]
		if cur.dd >= math.MaxFloat64-1 {
			continue
		}
		if !(cur.vmc > minVmcRatio*prevBestVmc && cur.vmc < pOr.Dd*1.1) {
			continue
		}

		prev := &previous[iSector]
		keep := false
		switch rc.Par.KFactor {
		case 0:
			keep = true
		case 1:
			keep = cur.vmc >= prev.vmc
		case 2:
			keep = cur.dd <= prev.dd
		case 3:
			keep = cur.vmc >= prev.vmc && cur.dd <= prev.dd
		case 4:
			keep = cur.vmc >= prev.vmc || cur.dd <= prev.dd
		}
		if geo.Abs(cur.dd-prev.dd) < sectorEpsilon {
			keep = true
		}
		if !keep {
			continue
		}

		p := optIsoc[iSector]
		p.Sector = iSector
		points = append(points, p)
	}
	return points, focalLat, focalLon
}
