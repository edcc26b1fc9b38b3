// pkg/engine/status.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import "sync/atomic"

// Status is the cooperative-cancellation state a run polls at each
// isochrone boundary. The orchestrator and the engine share one
// StatusWord per run; nothing inside the expansion loop itself takes a
// lock.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
	StatusError
	StatusNoSolution
	StatusExistSolution
)

// StatusWord is an atomic box around Status, safe to read from the
// engine's hot loop and write from whatever goroutine requested
// cancellation.
type StatusWord struct {
	v atomic.Int32
}

func NewStatusWord() *StatusWord {
	sw := &StatusWord{}
	sw.Store(StatusIdle)
	return sw
}

func (s *StatusWord) Store(v Status) { s.v.Store(int32(v)) }
func (s *StatusWord) Load() Status   { return Status(s.v.Load()) }

// Stop requests cancellation; the engine observes it at the next
// isochrone boundary and returns OutcomeStopped.
func (s *StatusWord) Stop() { s.Store(StatusStopped) }
