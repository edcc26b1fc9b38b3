// pkg/engine/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import "errors"

var (
	// ErrCapacity is returned when an isochrone would grow past
	// config.MaxSizeIsoc.
	ErrCapacity = errors.New("engine: isochrone exceeds capacity")
	// ErrAlloc covers the (practically unreachable in Go) allocation
	// failure case the reference implementation guards against.
	ErrAlloc = errors.New("engine: allocation failure")
	// ErrCancelled names a cooperative stop via a StatusWord. Run itself
	// reports a stop as OutcomeStopped and leaves Outcome.Err nil.
	ErrCancelled = errors.New("engine: run cancelled")
	// ErrStep is returned when dt is below the minimum admissible time
	// step.
	ErrStep = errors.New("engine: time step too small")
)

// OutcomeKind classifies how a run ended.
type OutcomeKind int

const (
	OutcomeReached OutcomeKind = iota
	OutcomeExhausted
	OutcomeStopped
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReached:
		return "reached"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeStopped:
		return "stopped"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the sum type a run produces: exactly one of the Reached,
// Exhausted, Stopped, or Error cases applies, discriminated by Kind.
type Outcome struct {
	Kind             OutcomeKind
	NIsoc            int     // number of isochrones built (Reached, Exhausted)
	LastStepDuration float64 // hours from the last isochrone to the destination (Reached)
	Err              error   // set iff Kind == OutcomeError
}
