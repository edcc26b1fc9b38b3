// pkg/polar/evaluator.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polar

import "math"

// Evaluator bundles a boat-speed polar with its optional sail-choice and
// wave-correction matrices.
type Evaluator struct {
	Polar *Matrix // required
	Sail  *Matrix // optional; same shape, integer sail ids
	Wave  *Matrix // optional; same shape, percentage correction
}

// Speed returns the boat speed (knots) and chosen sail id for the given
// true wind angle and true wind speed, via bilinear interpolation of the
// polar and nearest-cell lookup of the sail matrix.
func (e *Evaluator) Speed(twa, tws float64) (sog float64, sail int) {
	sog = e.Polar.valueAt(twa, tws)
	if e.Sail != nil {
		sail = e.Sail.nearestAt(twa, tws)
	}
	return sog, sail
}

// WaveCoeff returns the wave speed-correction factor (a multiplier, not a
// percentage) for the given twa and wave height. With no wave polar
// loaded it returns 1 (no correction).
func (e *Evaluator) WaveCoeff(twa, waveHeight float64) float64 {
	if e.Wave == nil {
		return 1
	}
	return e.Wave.valueAt(twa, waveHeight) / 100
}

// MaxSpeedAtTws returns the maximum boat speed over all twa rows at the
// given tws, after bilinear interpolation in tws.
func (e *Evaluator) MaxSpeedAtTws(tws float64) float64 {
	ci0, ci1, cf := bracket(e.Polar.Tws, tws)
	best := math.Inf(-1)
	for r := range e.Polar.Twa {
		v := lerpAt(e.Polar.Cell[r], ci0, ci1, cf)
		if v > best {
			best = v
		}
	}
	return best
}

func lerpAt(row []float64, ci0, ci1 int, cf float64) float64 {
	return (1-cf)*row[ci0] + cf*row[ci1]
}

// BestVmg returns the (twa, speed) pair maximizing speed*cos(twa) over
// the upwind half of the polar (twa in [0,90]) at the given tws.
func (e *Evaluator) BestVmg(tws float64) (twaUp, speedUp float64) {
	return e.bestVmgIn(tws, 0, 90, 1)
}

// BestVmgBack returns the (twa, speed) pair maximizing -speed*cos(twa)
// over the downwind half of the polar (twa in [90,180]) at the given tws.
func (e *Evaluator) BestVmgBack(tws float64) (twaDown, speedDown float64) {
	return e.bestVmgIn(tws, 90, 180, -1)
}

func (e *Evaluator) bestVmgIn(tws, lo, hi, sign float64) (bestTwa, bestSpeed float64) {
	bestVmg := math.Inf(-1)
	const steps = 181
	for i := 0; i <= steps; i++ {
		twa := lo + (hi-lo)*float64(i)/steps
		speed := e.Polar.valueAt(twa, tws)
		vmg := sign * speed * math.Cos(twa*math.Pi/180)
		if vmg > bestVmg {
			bestVmg = vmg
			bestTwa = twa
			bestSpeed = speed
		}
	}
	return bestTwa, bestSpeed
}
