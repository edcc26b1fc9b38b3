// pkg/orchestrator/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package orchestrator drives one or more engine runs: multi-waypoint
// leg sequencing, a best-departure-time sweep, and a competitor fleet
// sweep, all sharing one engine.StatusWord for cooperative
// cancellation.
package orchestrator

import "errors"

// ErrStopped is returned when a sweep observes its StatusWord go to
// StatusStopped mid-sweep.
var ErrStopped = errors.New("orchestrator: stopped")
