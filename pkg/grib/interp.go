// pkg/grib/interp.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package grib

import (
	"math"

	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

// WindSample is the wind field evaluated at a point and time.
type WindSample struct {
	U, V, Gust, Wave, Twd, Tws float64
}

// CurrentSample is the ocean current field evaluated at a point and time.
type CurrentSample struct {
	U, V, Twd, Tws float64
}

// Wind returns the interpolated wind, gust, and wave state at (lat, lon,
// t). t is hours after the zone's origin (DataDate, DataTime); values
// before the first or after the last timestamp extrapolate to that end.
func (z *Zone) Wind(lat, lon, t float64) WindSample {
	u := z.interp(fieldU, lat, lon, t)
	v := z.interp(fieldV, lat, lon, t)
	return WindSample{
		U:    u,
		V:    v,
		Gust: z.interp(fieldGust, lat, lon, t),
		Wave: z.interp(fieldWave, lat, lon, t),
		Twd:  windDirection(u, v),
		Tws:  math.Hypot(u, v),
	}
}

// Current returns the interpolated ocean current state at (lat, lon, t).
func (z *Zone) Current(lat, lon, t float64) CurrentSample {
	u := z.interp(fieldCurrentU, lat, lon, t)
	v := z.interp(fieldCurrentV, lat, lon, t)
	return CurrentSample{
		U:   u,
		V:   v,
		Twd: windDirection(u, v),
		Tws: math.Hypot(u, v),
	}
}

// Rain returns the interpolated precipitation rate at (lat, lon, t).
func (z *Zone) Rain(lat, lon, t float64) float64 {
	return z.interp(fieldPrate, lat, lon, t)
}

// Pressure returns the interpolated mean sea level pressure at (lat, lon, t).
func (z *Zone) Pressure(lat, lon, t float64) float64 {
	return z.interp(fieldMSL, lat, lon, t)
}

// windDirection derives twd (the direction the flow comes from, in
// [0,360)) from its u/v components following the meteorological
// convention.
func windDirection(u, v float64) float64 {
	return geo.NormalizeHeading(geo.Degrees(math.Atan2(-u, -v)))
}

func (z *Zone) interp(field int, lat, lon, t float64) float64 {
	if len(z.TimeStamp) == 0 || z.NbLat == 0 || z.NbLon == 0 {
		return 0
	}
	lon = geo.LonNormalize(lon, z.AnteMeridian)

	k0, k1, frac := z.bracketTime(t)
	v0 := z.spatial(field, k0, lat, lon)
	if k0 == k1 {
		return v0
	}
	v1 := z.spatial(field, k1, lat, lon)
	return geo.Lerp(frac, v0, v1)
}

// bracketTime locates the pair of timestamp indices bracketing t,
// extrapolating to the nearest end when t falls outside [TimeStamp[0],
// TimeStamp[last]].
func (z *Zone) bracketTime(t float64) (k0, k1 int, frac float64) {
	ts := z.TimeStamp
	last := len(ts) - 1
	if t <= ts[0] {
		return 0, 0, 0
	}
	if t >= ts[last] {
		return last, last, 0
	}
	for i := 1; i <= last; i++ {
		if t <= ts[i] {
			frac = (t - ts[i-1]) / (ts[i] - ts[i-1])
			return i - 1, i, frac
		}
	}
	return last, last, 0
}

// spatial performs bilinear interpolation of field at timestamp index k.
// A missing corner contributes zero rather than aborting the lookup; a
// point entirely outside the zone's bounding box returns zero.
func (z *Zone) spatial(field, k int, lat, lon float64) float64 {
	grid := z.grid[field][k]
	if grid == nil {
		return 0
	}
	if lat > z.LatMax || lat < z.LatMin {
		return 0
	}
	if z.LonLeft <= z.LonRight {
		if lon < z.LonLeft || lon > z.LonRight {
			return 0
		}
	}

	fi := (z.LatMax - lat) / z.LatStep
	fj := (lon - z.LonLeft) / z.LonStep

	i0 := int(math.Floor(fi))
	j0 := int(math.Floor(fj))
	i1, j1 := i0+1, j0+1

	i0 = geo.Clamp(i0, 0, z.NbLat-1)
	i1 = geo.Clamp(i1, 0, z.NbLat-1)
	j0 = geo.Clamp(j0, 0, z.NbLon-1)
	j1 = geo.Clamp(j1, 0, z.NbLon-1)

	ti := geo.Clamp(fi-math.Floor(fi), 0, 1)
	tj := geo.Clamp(fj-math.Floor(fj), 0, 1)

	get := func(i, j int) float64 {
		v := grid[z.index(i, j)]
		if v <= missing/2 {
			return 0
		}
		return v
	}

	top := geo.Lerp(tj, get(i0, j0), get(i0, j1))
	bot := geo.Lerp(tj, get(i1, j0), get(i1, j1))
	return geo.Lerp(ti, top, bot)
}
