// pkg/route/stamina.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import "github.com/rigault/simplerouting-sub000/pkg/geo"

// ManeuverKind distinguishes the two maneuvers that cost crew stamina.
type ManeuverKind int

const (
	Tack ManeuverKind = iota
	SailChange
)

// PointLoss returns the fraction (0..1) of stamina a maneuver of the
// given kind costs at the given true wind speed: heavier air makes any
// maneuver more tiring, and a sail change costs more than a tack.
func PointLoss(kind ManeuverKind, tws float64) float64 {
	tws = geo.Clamp(tws, 0, 40)
	switch kind {
	case SailChange:
		return 0.01 + 0.0008*tws
	default: // Tack
		return 0.005 + 0.0005*tws
	}
}

// RecoveryTime returns the number of seconds the crew needs to regain
// one stamina point at the given true wind speed: stronger wind leaves
// less slack to recover between maneuvers, so recovery slows.
func RecoveryTime(tws float64) float64 {
	tws = geo.Clamp(tws, 0, 40)
	recup := 300 - 6*tws
	if recup < 30 {
		recup = 30
	}
	return recup
}
