// pkg/serialize/serialize_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package serialize

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/orchestrator"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

func testRoute() *route.SailRoute {
	return &route.SailRoute{
		PolarFileName:      "polar.csv",
		N:                  2,
		NIsoc:              1,
		DestinationReached: true,
		Duration:           3.5,
		TotDist:            18.2,
		AvrSog:             5.2,
		MaxSog:             6.1,
		AvrTws:             12,
		MaxTws:             15,
		IsocTimeStep:       1,
		Points: []route.SailPoint{
			{Lat: 45, Lon: -5, Id: -1, Father: -1, Amure: engine.Starboard, Sail: 1, OCap: 10, Sog: 5, Twd: 350, Tws: 12, Stamina: 100},
			{Lat: 45.3, Lon: -5, Id: 0, Father: -1, Amure: engine.Starboard, Sail: 1, Stamina: 98},
		},
	}
}

func testStore() *engine.IsochroneStore {
	return &engine.IsochroneStore{
		Points: [][]engine.Pp{
			{{Lat: 45.1, Lon: -5, Id: 1, Father: -1, Sail: 1}},
		},
		Desc: []engine.IsoDesc{{Size: 1, BestVmc: 2.5, FocalLat: 45.1, FocalLon: -5}},
	}
}

func TestBuildRouteReportMarshalsDeterministically(t *testing.T) {
	r := testRoute()
	rep := BuildRouteReport(r, "alpha", testStore())

	b1, err := Marshal(rep)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b2, err := Marshal(BuildRouteReport(r, "alpha", testStore()))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Error("expected two marshals of equal inputs to be byte-identical")
	}

	var roundTrip map[string]interface{}
	if err := json.Unmarshal(b1, &roundTrip); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if roundTrip["competitorName"] != "alpha" {
		t.Errorf("expected competitorName=alpha, got %v", roundTrip["competitorName"])
	}
	if roundTrip["isochrones"] == nil {
		t.Error("expected isochrones to be present when a store is passed")
	}
}

func TestBuildRouteReportOmitsIsochronesWhenStoreNil(t *testing.T) {
	rep := BuildRouteReport(testRoute(), "alpha", nil)
	b, err := Marshal(rep)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(b), "isochrones") {
		t.Error("expected isochrones to be omitted when store is nil")
	}
}

func TestBuildRouteReportClosesWithDestinationOnlyRow(t *testing.T) {
	rep := BuildRouteReport(testRoute(), "alpha", nil)
	if len(rep.Track) != 2 {
		t.Fatalf("expected 2 track rows, got %d", len(rep.Track))
	}
	b, err := json.Marshal(rep.Track[1])
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var row []float64
	if err := json.Unmarshal(b, &row); err != nil {
		t.Fatalf("expected destination row to decode as a 2-element array, got %s: %v", b, err)
	}
	if len(row) != 2 {
		t.Errorf("expected a 2-element [lat, lon] row, got %v", row)
	}
}

func TestSampleJSONEncodesUnreachableAsNull(t *testing.T) {
	b, err := json.Marshal(SampleJSON{Time: 3, Reachable: false})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"duration":null`) {
		t.Errorf("expected null duration for unreachable sample, got %s", b)
	}
}

func TestBuildCompetitorsReportIncludesFleetSummaries(t *testing.T) {
	rest := []orchestrator.CompetitorResult{
		{Name: "bravo", Duration: 4.0, Dist: 20, Reached: true},
		{Name: "charlie", Reached: false},
	}
	rep := BuildCompetitorsReport(testRoute(), "alpha", false, nil, rest)
	if rep.Current.CompetitorName != "alpha" {
		t.Errorf("expected current competitor alpha, got %s", rep.Current.CompetitorName)
	}
	if len(rep.Fleet) != 2 {
		t.Fatalf("expected 2 fleet entries, got %d", len(rep.Fleet))
	}
	if rep.Fleet[0].Duration != 14400 {
		t.Errorf("expected bravo's duration in seconds, got %d", rep.Fleet[0].Duration)
	}
	if rep.Fleet[1].Duration != -1 {
		t.Errorf("expected charlie's duration sentinel -1, got %d", rep.Fleet[1].Duration)
	}
}

func TestWriteIsochronesCSVHasHeaderAndOneRowPerPoint(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIsochronesCSV(&buf, testStore()); err != nil {
		t.Fatalf("WriteIsochronesCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "n,wp,lat,lon") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestWriteGPXProducesWellFormedRoute(t *testing.T) {
	var buf bytes.Buffer
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := WriteGPX(&buf, testRoute(), epoch); err != nil {
		t.Fatalf("WriteGPX: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<gpx") || !strings.Contains(out, "</gpx>") {
		t.Errorf("expected a well-formed gpx document, got %s", out)
	}
	if strings.Count(out, "<rtept") != 3 { // 2 route points + destination row
		t.Errorf("expected 3 rtept elements, got %d", strings.Count(out, "<rtept"))
	}
	if !strings.Contains(out, "Destination") {
		t.Error("expected a closing Destination waypoint")
	}
}

func TestRouteTextIncludesSummaryFooter(t *testing.T) {
	out := RouteText(testRoute(), "alpha")
	for _, want := range []string{"pOr", "Avr/Max SOG", "Total/Motor Dist.", "polar.csv", "alpha"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCompetitorsTextRendersReachedAndUnreachedRows(t *testing.T) {
	out := CompetitorsText(
		[]string{"alpha", "bravo"},
		[]float64{3.5, 0},
		[]float64{18.2, 40},
		[]bool{true, false},
	)
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "bravo") {
		t.Errorf("expected both competitors listed, got:\n%s", out)
	}
}
