// pkg/serialize/json.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package serialize renders a reconstructed route, its isochrone store,
// and orchestrator sweep results into the output formats a caller asks
// for: JSON, CSV, GPX, and a fixed-width text report.
package serialize

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/orchestrator"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// TrackPoint is one row of a route's "track" array: position, speed,
// wind, course, true wind angle, gust, wave height, stamina, sail name,
// and motor flag, in that fixed column order. The last point of an
// unreached route carries every column; a reached route's final entry
// is the bare destination position, matching the reference's
// two-element closing row.
type TrackPoint struct {
	Lat, Lon float64
	Sog      float64
	Twd      float64
	Tws      float64
	OCap     float64
	Twa      float64
	Gust     float64
	Wave     float64
	Stamina  float64
	Sail     string
	Motor    bool

	// DestinationOnly is set for the closing [lat, lon] row of a
	// reached route, which carries no other fields.
	DestinationOnly bool
}

// MarshalJSON renders a TrackPoint as the reference's array-of-values
// row rather than a keyed object, so JSON output stays byte-for-byte
// positional the way the reference's track array is.
func (t TrackPoint) MarshalJSON() ([]byte, error) {
	if t.DestinationOnly {
		return json.Marshal([2]float64{t.Lat, t.Lon})
	}
	row := []interface{}{
		round6(t.Lat), round6(t.Lon), round6(t.Sog), round6(t.Twd), round6(t.Tws),
		round6(t.OCap), round6(t.Twa), round6(t.Gust), round6(t.Wave), round6(t.Stamina),
		t.Sail, t.Motor,
	}
	return json.Marshal(row)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// RouteReport is the JSON rendering of one reconstructed route, field
// order fixed to keep output deterministic run to run (P5).
type RouteReport struct {
	CompetitorName     string       `json:"competitorName"`
	Heading            float64      `json:"heading"`
	Duration           int          `json:"duration"` // seconds
	TotDist            float64      `json:"totDist"`
	IsocTimeStep       float64      `json:"isocTimeStep"` // seconds
	DestinationReached bool         `json:"destinationReached"`
	MotorDuration      float64      `json:"motorDuration"`
	MotorDist          float64      `json:"motorDist"`
	StarboardDist      float64      `json:"starboardDist"`
	PortDist           float64      `json:"portDist"`
	NSailChange        int          `json:"nSailChange"`
	NAmureChange       int          `json:"nAmureChange"`
	Polar              string       `json:"polar"`
	Track              []TrackPoint `json:"track"`
	Isochrones         []IsocFrame  `json:"isochrones,omitempty"`
}

// IsocPoint is one isochrone point's JSON rendering.
type IsocPoint struct {
	Lat, Lon float64
	Id       int
	Father   int
	Amure    engine.Amure
	Sail     int
	Motor    bool
}

// IsocFrame is one isochrone's full point set plus its descriptor. Points
// start at the descriptor's First index and wrap around.
type IsocFrame struct {
	Index     int         `json:"index"`
	ToIndexWp int         `json:"toIndexWp"`
	Size      int         `json:"size"`
	BestVmc   float64     `json:"bestVmc"`
	FocalLat  float64     `json:"focalLat"`
	FocalLon  float64     `json:"focalLon"`
	Points    []IsocPoint `json:"points"`
}

// BuildRouteReport assembles the JSON-ready report for r, with
// competitorName identifying which fleet entry produced it. If store is
// non-nil, the full isochrone frames are included too (the reference's
// "isoc" flag).
func BuildRouteReport(r *route.SailRoute, competitorName string, store *engine.IsochroneStore) RouteReport {
	rep := RouteReport{
		CompetitorName:     competitorName,
		Duration:           int(r.Duration * 3600),
		TotDist:            r.TotDist,
		IsocTimeStep:       r.IsocTimeStep * 3600,
		DestinationReached: r.DestinationReached,
		MotorDuration:      r.MotorDuration,
		MotorDist:          r.MotorDist,
		StarboardDist:      r.StarboardDist,
		PortDist:           r.PortDist,
		NSailChange:        r.NSailChange,
		NAmureChange:       r.NAmureChange,
		Polar:              r.PolarFileName,
	}
	if len(r.Points) > 0 {
		rep.Heading = r.Points[0].LCap
	}

	rep.Track = make([]TrackPoint, 0, len(r.Points))
	for i, p := range r.Points {
		last := i == len(r.Points)-1
		if last && r.DestinationReached {
			rep.Track = append(rep.Track, TrackPoint{Lat: p.Lat, Lon: p.Lon, DestinationOnly: true})
			continue
		}
		twa := geo.FTwa(p.OCap, p.Twd)
		rep.Track = append(rep.Track, TrackPoint{
			Lat: p.Lat, Lon: p.Lon, Sog: p.Sog, Twd: p.Twd, Tws: p.Tws,
			OCap: p.OCap, Twa: twa, Gust: p.Gust, Wave: p.Wave, Stamina: p.Stamina,
			Sail: sailName(p.Sail), Motor: p.Motor,
		})
	}

	if store != nil {
		rep.Isochrones = buildIsocFrames(store)
	}
	return rep
}

func buildIsocFrames(store *engine.IsochroneStore) []IsocFrame {
	frames := make([]IsocFrame, len(store.Points))
	for i, pts := range store.Points {
		d := store.Desc[i]
		f := IsocFrame{
			Index: i, ToIndexWp: d.ToIndexWp, Size: d.Size, BestVmc: d.BestVmc,
			FocalLat: d.FocalLat, FocalLon: d.FocalLon,
		}
		f.Points = make([]IsocPoint, len(pts))
		for k := range pts {
			p := pts[(d.First+k)%len(pts)]
			f.Points[k] = IsocPoint{Lat: p.Lat, Lon: p.Lon, Id: p.Id, Father: p.Father, Amure: p.Amure, Sail: p.Sail, Motor: p.Motor}
		}
		frames[i] = f
	}
	return frames
}

// CompetitorsReport is the JSON rendering of a fleet sweep: the most
// recently computed route in full (with isochrones, if requested) plus
// a summary entry per remaining competitor.
type CompetitorsReport struct {
	Current RouteReport  `json:"current"`
	Fleet   []FleetEntry `json:"fleet"`
}

// FleetEntry summarizes one non-current competitor's result.
type FleetEntry struct {
	Name     string  `json:"name"`
	Duration int     `json:"duration"` // seconds, -1 if unreached
	TotDist  float64 `json:"totDist"`
	Reached  bool    `json:"reached"`
}

// BuildCompetitorsReport mirrors the reference's allCompetitorsToJson:
// the current (most recently computed, conventionally competitor 0)
// route is rendered in full, the rest as summary entries.
func BuildCompetitorsReport(current *route.SailRoute, currentName string, withIsoc bool, store *engine.IsochroneStore, rest []orchestrator.CompetitorResult) CompetitorsReport {
	var store2 *engine.IsochroneStore
	if withIsoc {
		store2 = store
	}
	rep := CompetitorsReport{Current: BuildRouteReport(current, currentName, store2)}
	for _, c := range rest {
		entry := FleetEntry{Name: c.Name, Reached: c.Reached, TotDist: c.Dist, Duration: -1}
		if c.Reached {
			entry.Duration = int(c.Duration * 3600)
		}
		rep.Fleet = append(rep.Fleet, entry)
	}
	return rep
}

// BestTimeReport is the JSON rendering of a best-departure-time sweep.
type BestTimeReport struct {
	BestTime       float64      `json:"bestTime"`
	MinDuration    int          `json:"minDuration"` // seconds
	MaxDuration    int          `json:"maxDuration"` // seconds
	SolutionExists bool         `json:"solutionExists"`
	Route          RouteReport  `json:"route"`
	Samples        []SampleJSON `json:"samples"`
}

// SampleJSON is one sampled departure time's JSON rendering.
type SampleJSON struct {
	Time      float64 `json:"time"`
	Duration  float64 `json:"duration"` // hours, +Inf encoded as null
	Reachable bool    `json:"reachable"`
}

// MarshalJSON renders an unreachable sample's duration as null rather
// than attempting to encode +Inf, which encoding/json rejects.
func (s SampleJSON) MarshalJSON() ([]byte, error) {
	type alias struct {
		Time      float64  `json:"time"`
		Duration  *float64 `json:"duration"`
		Reachable bool     `json:"reachable"`
	}
	a := alias{Time: s.Time, Reachable: s.Reachable}
	if s.Reachable {
		a.Duration = &s.Duration
	}
	return json.Marshal(a)
}

// BuildBestTimeReport assembles the JSON-ready report for a
// best-departure-time sweep. bestRoute, when non-nil, is rendered as the
// report's route: the caller's reconstructed route for res.BestTime, or
// a closest-approach route when no departure time reached the
// destination.
func BuildBestTimeReport(res *orchestrator.DepartureResult, bestRoute *route.SailRoute) BestTimeReport {
	rep := BestTimeReport{
		BestTime:       res.BestTime,
		SolutionExists: res.SolutionExists,
	}
	if res.SolutionExists {
		rep.MinDuration = int(res.MinDuration * 3600)
		rep.MaxDuration = int(res.MaxDuration * 3600)
	}
	if bestRoute != nil {
		rep.Route = BuildRouteReport(bestRoute, "", nil)
	}
	for _, s := range res.Samples {
		rep.Samples = append(rep.Samples, SampleJSON{Time: s.Time, Duration: s.Duration, Reachable: s.Reachable})
	}
	return rep
}

// Marshal renders v as indented JSON. Every JSON type in this package
// is built from struct fields in a fixed declaration order, so two
// calls over equal inputs always produce byte-identical output.
func Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func sailName(id int) string {
	if id <= 0 {
		return "NoSail"
	}
	return "Sail" + strconv.Itoa(id)
}
