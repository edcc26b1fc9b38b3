// pkg/route/route_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"testing"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
)

func testPar() *config.Par {
	p := &config.Par{}
	p.SetDefaults()
	return p
}

func TestReconstructBuildsWellFormedRoute(t *testing.T) {
	pOr := engine.Pp{Lat: 45, Lon: -5, Id: -1, Father: -1}
	pDest := engine.Pp{Lat: 45.6, Lon: -5, Id: 0, Father: 2, Amure: engine.Starboard, Sail: 1}

	store := &engine.IsochroneStore{
		Points: [][]engine.Pp{
			{{Lat: 45.2, Lon: -5, Id: 1, Father: -1, Amure: engine.Starboard, Sail: 1}},
			{{Lat: 45.4, Lon: -5, Id: 2, Father: 1, Amure: engine.Starboard, Sail: 1}},
		},
		Desc: []engine.IsoDesc{{Size: 1}, {Size: 1}},
	}
	outcome := engine.Outcome{Kind: engine.OutcomeReached, NIsoc: 2, LastStepDuration: 1.5}
	wind := &grib.Constant{WindTwd: 0, WindTws: 12}

	r, err := Reconstruct(store, pOr, pDest, outcome, wind, testPar(), 20260101, 0)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if r.N != 4 {
		t.Fatalf("expected 4 points, got %d", r.N)
	}
	if r.Points[0].Id != pOr.Id || r.Points[3].Id != pDest.Id {
		t.Errorf("expected endpoints to match pOr/pDest, got first=%d last=%d", r.Points[0].Id, r.Points[3].Id)
	}
	if r.Points[1].Id != 1 || r.Points[2].Id != 2 {
		t.Errorf("expected backtrace order [1,2], got [%d,%d]", r.Points[1].Id, r.Points[2].Id)
	}
	for i := 1; i < len(r.Points); i++ {
		if r.Points[i].Time <= r.Points[i-1].Time && i < len(r.Points)-1 {
			t.Errorf("expected strictly increasing time at %d", i)
		}
	}
	if r.TotDist <= 0 {
		t.Errorf("expected positive total distance, got %v", r.TotDist)
	}
	for i, p := range r.Points {
		if p.Stamina < 0 || p.Stamina > 100 {
			t.Errorf("point %d: stamina out of range: %v", i, p.Stamina)
		}
	}
}

func TestReconstructSingleIsocRun(t *testing.T) {
	pOr := engine.Pp{Lat: 45, Lon: -5, Id: -1, Father: -1}
	pDest := engine.Pp{Lat: 45, Lon: -5, Id: 0, Father: -1}
	outcome := engine.Outcome{Kind: engine.OutcomeReached, NIsoc: 0, LastStepDuration: 0.2}
	wind := &grib.Constant{WindTwd: 0, WindTws: 12}

	r, err := Reconstruct(&engine.IsochroneStore{}, pOr, pDest, outcome, wind, testPar(), 20260101, 0)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if r.N != 1 {
		t.Fatalf("expected 1 point, got %d", r.N)
	}
}

func TestReconstructUnreachedWalksBackFromClosestPoint(t *testing.T) {
	pOr := engine.Pp{Lat: 45, Lon: -5, Id: -1, Father: -1}
	pDest := engine.Pp{Lat: 46, Lon: -5, Id: 0, Father: -1}

	store := &engine.IsochroneStore{
		Points: [][]engine.Pp{
			{{Lat: 45.2, Lon: -5, Id: 1, Father: -1, Amure: engine.Starboard, Sail: 1}},
			{{Lat: 45.4, Lon: -5, Id: 2, Father: 1, Amure: engine.Starboard, Sail: 1}},
		},
		Desc: []engine.IsoDesc{{Size: 1, Closest: 0}, {Size: 1, Closest: 0}},
	}
	outcome := engine.Outcome{Kind: engine.OutcomeExhausted, NIsoc: 2}
	wind := &grib.Constant{WindTwd: 0, WindTws: 12}

	r, err := Reconstruct(store, pOr, pDest, outcome, wind, testPar(), 20260101, 0)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if r.DestinationReached {
		t.Error("expected DestinationReached=false")
	}
	// n = nIsoc+1 = 3: pOr, isoc[0][closest], isoc[1][closest]. pDest never appears.
	if r.N != 3 {
		t.Fatalf("expected 3 points, got %d", r.N)
	}
	if r.Points[0].Id != pOr.Id {
		t.Errorf("expected first point to be pOr, got id=%d", r.Points[0].Id)
	}
	if r.Points[2].Id != 2 {
		t.Errorf("expected tail to be the last isochrone's closest point (id 2), got id=%d", r.Points[2].Id)
	}
	if r.Points[2].Lat == pDest.Lat && r.Points[2].Lon == pDest.Lon {
		t.Error("expected tail to be the closest point, not pDest itself")
	}
}

func TestReconstructUnreachedSingleIsoc(t *testing.T) {
	pOr := engine.Pp{Lat: 45, Lon: -5, Id: -1, Father: -1}
	pDest := engine.Pp{Lat: 46, Lon: -5, Id: 0, Father: -1}

	store := &engine.IsochroneStore{
		Points: [][]engine.Pp{{{Lat: 45.2, Lon: -5, Id: 1, Father: -1, Amure: engine.Starboard, Sail: 1}}},
		Desc:   []engine.IsoDesc{{Size: 1, Closest: 0}},
	}
	outcome := engine.Outcome{Kind: engine.OutcomeStopped, NIsoc: 1}
	wind := &grib.Constant{WindTwd: 0, WindTws: 12}

	r, err := Reconstruct(store, pOr, pDest, outcome, wind, testPar(), 20260101, 0)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if r.N != 2 {
		t.Fatalf("expected 2 points, got %d", r.N)
	}
	if r.Points[0].Id != pOr.Id || r.Points[1].Id != 1 {
		t.Errorf("expected [pOr, isoc0[closest]], got ids [%d, %d]", r.Points[0].Id, r.Points[1].Id)
	}
}

func TestReconstructBrokenChainErrors(t *testing.T) {
	pOr := engine.Pp{Lat: 45, Lon: -5, Id: -1, Father: -1}
	pDest := engine.Pp{Lat: 45.6, Lon: -5, Id: 0, Father: 99} // no such father id
	store := &engine.IsochroneStore{
		Points: [][]engine.Pp{{{Lat: 45.2, Lon: -5, Id: 1, Father: -1}}},
		Desc:   []engine.IsoDesc{{Size: 1}},
	}
	outcome := engine.Outcome{Kind: engine.OutcomeReached, NIsoc: 1}
	wind := &grib.Constant{WindTwd: 0, WindTws: 12}

	if _, err := Reconstruct(store, pOr, pDest, outcome, wind, testPar(), 20260101, 0); err == nil {
		t.Error("expected ErrBrokenChain, got nil")
	}
}

func TestPointLossIncreasesWithWind(t *testing.T) {
	if PointLoss(Tack, 25) <= PointLoss(Tack, 5) {
		t.Error("expected point loss to increase with tws")
	}
}

func TestRecoveryTimeDecreasesWithWind(t *testing.T) {
	if RecoveryTime(25) >= RecoveryTime(5) {
		t.Error("expected recovery time to decrease with tws")
	}
}
