// pkg/config/par.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads and validates the routing run's parameters: the
// "Par" struct the core recognizes, per the external-interface contract.
package config

import (
	"errors"
	"fmt"

	"github.com/rigault/simplerouting-sub000/pkg/util"
)

// MaxSizeIsoc bounds the number of points a single isochrone may hold;
// exceeding it is a fatal CapacityError.
const MaxSizeIsoc = 4096

// MaxNSectors bounds nSectors; ConfigError if exceeded.
const MaxNSectors = 720

// Limit is the number of isochrones, counted from the start of a run,
// during which the sector-pruning focal point stays pinned at the
// origin rather than drifting toward the destination.
const Limit = 50

// ThresholdSector is the number of isochrones, counted from the start of
// a run, during which nSectors is forced to 180 to avoid premature
// pruning.
const ThresholdSector = 5

// MaxUnreachable bounds the number of consecutive unreachable samples the
// best-departure search tolerates before aborting.
const MaxUnreachable = 380

// ErrConfig is the sentinel ConfigError: an invalid parameter, reported
// before any expansion begins.
var ErrConfig = errors.New("config: invalid parameter")

// Par is the routing run's configuration, the fields the core
// recognises from the caller-supplied configuration.
type Par struct {
	StartTimeInHours float64 `json:"startTimeInHours"`
	TStep            float64 `json:"tStep"`
	CogStep          float64 `json:"cogStep"`
	RangeCog         float64 `json:"rangeCog"`
	NSectors         int     `json:"nSectors"`
	JFactor          float64 `json:"jFactor"`
	KFactor          int     `json:"kFactor"`
	Penalty0         float64 `json:"penalty0"` // tack, seconds
	Penalty1         float64 `json:"penalty1"` // gybe, seconds
	Penalty2         float64 `json:"penalty2"` // sail change, seconds
	MotorSpeed       float64 `json:"motorSpeed"`
	Threshold        float64 `json:"threshold"`
	DayEfficiency    float64 `json:"dayEfficiency"`
	NightEfficiency  float64 `json:"nightEfficiency"`
	XWind            float64 `json:"xWind"`
	MaxWind          float64 `json:"maxWind"`
	WithWaves        bool    `json:"withWaves"`
	WithCurrent      bool    `json:"withCurrent"`
	AllwaysSea       bool    `json:"allwaysSea"`
	ConstWindTwd     float64 `json:"constWindTwd"`
	ConstWindTws     float64 `json:"constWindTws"`
	ConstCurrentD    float64 `json:"constCurrentD"`
	ConstCurrentS    float64 `json:"constCurrentS"`
	StaminaVR        float64 `json:"staminaVR"`
	Opt              int     `json:"opt"` // 0 = no prune, 1 = sector prune
}

// SetDefaults fills in the reference implementation's defaults for any
// field left at its zero value. Call it before Validate.
func (p *Par) SetDefaults() {
	if p.TStep == 0 {
		p.TStep = 3
	}
	if p.CogStep == 0 {
		p.CogStep = 5
	}
	if p.RangeCog == 0 {
		p.RangeCog = 90
	}
	if p.NSectors == 0 {
		p.NSectors = 20
	}
	if p.Penalty0 == 0 {
		p.Penalty0 = 30
	}
	if p.Penalty1 == 0 {
		p.Penalty1 = 15
	}
	if p.Penalty2 == 0 {
		p.Penalty2 = 90
	}
	if p.DayEfficiency == 0 {
		p.DayEfficiency = 1
	}
	if p.NightEfficiency == 0 {
		p.NightEfficiency = 1
	}
	if p.XWind == 0 {
		p.XWind = 1
	}
	if p.MaxWind == 0 {
		p.MaxWind = 60
	}
	if p.StaminaVR == 0 {
		p.StaminaVR = 100
	}
}

// Load parses raw JSON into a Par, applies defaults, and validates it.
// Par doesn't implement util.JSONChecker, so util.CheckJSON runs its full
// field-by-field reflection check, rejecting unrecognized or misspelled
// keys rather than silently ignoring them.
func Load(data []byte) (*Par, error) {
	var e util.ErrorLogger
	util.CheckJSON[Par](data, &e)
	if e.HaveErrors() {
		return nil, fmt.Errorf("%w: %s", ErrConfig, e.String())
	}

	var p Par
	if err := util.UnmarshalJSONBytes(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the reference implementation enforces
// before starting a run.
func (p *Par) Validate() error {
	var e util.ErrorLogger
	if p.TStep < 0.25 {
		e.ErrorString("tStep must be >= 0.25 (got %v)", p.TStep)
	}
	if p.NSectors > MaxNSectors {
		e.ErrorString("nSectors must be <= %d (got %d)", MaxNSectors, p.NSectors)
	}
	if p.NSectors < 0 {
		e.ErrorString("nSectors must be >= 0 (got %d)", p.NSectors)
	}
	if p.KFactor < 0 || p.KFactor > 4 {
		e.ErrorString("kFactor must be in [0,4] (got %d)", p.KFactor)
	}
	if p.Opt != 0 && p.Opt != 1 {
		e.ErrorString("opt must be 0 or 1 (got %d)", p.Opt)
	}
	if e.HaveErrors() {
		return fmt.Errorf("%w: %s", ErrConfig, e.String())
	}
	return nil
}
