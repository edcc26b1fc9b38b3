// pkg/grib/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package grib

import "errors"

// ErrKind classifies why loading a Zone failed or is degraded.
type ErrKind int

const (
	// Parse means the underlying GRIB2 bytes could not be decoded at all.
	Parse ErrKind = iota
	// Uncomplete means decoding succeeded but at least one timestamp is
	// missing one or more required parameters; the zone is still usable,
	// flagged AllTimeStepOK=false.
	Uncomplete
	// IO means the reader backing a message could not be read.
	IO
)

func (k ErrKind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Uncomplete:
		return "uncomplete"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error reports a grib loading failure, tagged with its ErrKind so callers
// can distinguish fatal parse/IO failures from the non-fatal Uncomplete
// case.
type Error struct {
	Kind ErrKind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

var errNoRecords = errors.New("no recognized parameters in grib message")
