// pkg/route/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route reconstructs a sailed route from an engine run's
// isochrone store by following father links back to the origin, and
// annotates each leg with course, distance, weather, and a stamina
// model.
package route

import "github.com/rigault/simplerouting-sub000/pkg/engine"

// SailPoint is one point of a reconstructed route: a position plus the
// leg geometry, weather sample, and crew stamina at that point.
type SailPoint struct {
	Lat, Lon  float64
	Id        int
	Father    int
	ToIndexWp int
	Amure     engine.Amure
	Sail      int
	Motor     bool

	Time float64 // hours after the GRIB reference time: Par.StartTimeInHours plus TStep per point

	// Leg to the next point (zero-valued on the last point).
	LCap float64 // rhumb-line bearing, degrees
	OCap float64 // great-circle bearing, degrees
	Ld   float64 // rhumb-line distance, nm
	Od   float64 // great-circle distance, nm
	Sog  float64 // speed over ground, knots

	U, V, Gust, Wave, Twd, Tws float64
	Stamina                    float64 // 0..100
}

// SailRoute is a complete reconstructed route plus its aggregate
// statistics.
type SailRoute struct {
	PolarFileName      string
	DataDate, DataTime int
	N                  int // number of points
	NIsoc              int // number of isochrones the run built
	DestinationReached bool

	NSailChange, NAmureChange int
	IsocTimeStep              float64
	LastStepDuration          float64
	Duration, MotorDuration   float64

	TotDist, MotorDist, StarboardDist, PortDist float64
	MaxTws, MaxGust, MaxWave, MaxSog            float64
	AvrTws, AvrGust, AvrWave, AvrSog            float64

	Points []SailPoint
}
