// pkg/geo/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo implements the great-circle and rhumb-line geometry the
// routing engine needs: distance and bearing between lat/lon points,
// perpendicular distance to a segment, and position integration along a
// constant course and speed.
package geo

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// EarthRadiusNM is the mean earth radius in nautical miles, used for all
// great-circle and rhumb-line computations.
const EarthRadiusNM = 3440.065

const (
	Pi      = gomath.Pi
	PiOver2 = gomath.Pi / 2
)

// Degrees converts an angle expressed in radians to degrees.
func Degrees(r float64) float64 {
	return r * 180 / Pi
}

// Radians converts an angle expressed in degrees to radians.
func Radians(d float64) float64 {
	return d / 180 * Pi
}

// Abs returns the absolute value of x.
func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns 1 if v > 0, -1 if v < 0, or 0 if v == 0.
func Sign[V constraints.Integer | constraints.Float](v V) V {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Clamp restricts x to the range [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Lerp performs linear interpolation between a and b using factor x in [0,1].
func Lerp(x, a, b float64) float64 {
	return (1-x)*a + x*b
}

// Mod returns a floating-point remainder with the sign of b, matching the
// behavior NormalizeHeading and LonNormalize depend on.
func Mod(a, b float64) float64 {
	m := gomath.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
