// input.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rigault/simplerouting-sub000/pkg/config"
	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/grib"
	"github.com/rigault/simplerouting-sub000/pkg/navmask"
	"github.com/rigault/simplerouting-sub000/pkg/polar"
	"github.com/rigault/simplerouting-sub000/pkg/util"
)

// loadPolar builds a polar.Evaluator from the required boat-speed polar
// CSV and an optional wave-correction polar CSV.
func loadPolar(polarPath, wavePath string) (*polar.Evaluator, error) {
	f, err := os.Open(polarPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := polar.LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", polarPath, err)
	}

	e := &polar.Evaluator{Polar: m}
	if wavePath != "" {
		wf, err := os.Open(wavePath)
		if err != nil {
			return nil, err
		}
		defer wf.Close()
		wm, err := polar.LoadCSV(wf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", wavePath, err)
		}
		e.Wave = wm
	}
	return e, nil
}

// loadWind assembles a grib.Zone from dir, a directory of per-forecast-
// hour GRIB2 files named "<hour>.grb2" (e.g. "000.grb2", "003.grb2",
// matching the hour-suffixed naming convention used by GRIB file
// providers such as zyGrib/XyGrib). dataDate/dataTime are the run's GRIB
// reference date/time (-datadate/-datatime); an empty dir falls back to
// a Constant field with no spatial or temporal variation.
func loadWind(dir string, dataDate, dataTime int) (grib.Evaluator, error) {
	if dir == "" {
		return &grib.Constant{}, nil
	}
	messages, closers, err := openGribMessages(dir)
	defer closeAll(closers)
	if err != nil {
		return nil, err
	}
	return grib.Load(messages, dataDate, dataTime)
}

// loadCurrent is loadWind's counterpart for ocean current fields. An
// empty dir means no current data; a nil Evaluator tells RouteContext to
// skip current sampling entirely (tDeltaCurrent never applies).
func loadCurrent(dir string, dataDate, dataTime int) (grib.Evaluator, error) {
	if dir == "" {
		return nil, nil
	}
	return loadWind(dir, dataDate, dataTime)
}

func openGribMessages(dir string) (map[float64]io.Reader, []io.Closer, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	messages := make(map[float64]io.Reader, len(entries))
	var closers []io.Closer
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		hourStr := strings.TrimSuffix(filepath.Base(ent.Name()), filepath.Ext(ent.Name()))
		hour, err := strconv.ParseFloat(hourStr, 64)
		if err != nil {
			continue // not an hour-named grib file; skip silently
		}
		f, err := os.Open(filepath.Join(dir, ent.Name()))
		if err != nil {
			return nil, closers, err
		}
		closers = append(closers, f)
		messages[hour] = f
	}
	if len(messages) == 0 {
		return nil, closers, fmt.Errorf("%s: no hour-named GRIB2 files found", dir)
	}
	return messages, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}

// loadMask reads the sea/land raster, if one was given; an empty path
// yields an empty Mask, which treats every point as sea.
func loadMask(path string) (*navmask.Mask, error) {
	if path == "" {
		return &navmask.Mask{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return navmask.Load(f)
}

// loadPar reads the JSON routing parameter file, if one was given, and
// applies defaults; an empty path yields all-default parameters.
func loadPar(path string) (*config.Par, error) {
	if path == "" {
		p := &config.Par{}
		p.SetDefaults()
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.Load(data)
}

// parsePos parses a "lat,lon" flag value into an engine.Pp with Id/Father
// set to the engine's "not yet in any isochrone" sentinel.
func parsePos(s string) (engine.Pp, error) {
	lat, lon, err := parseLatLon(s)
	if err != nil {
		return engine.Pp{}, err
	}
	return engine.Pp{Lat: lat, Lon: lon, Id: -1, Father: -1}, nil
}

// parseWaypoints parses a ";"-separated list of "lat,lon" pairs.
func parseWaypoints(s string) ([]engine.Pp, error) {
	if s == "" {
		return nil, nil
	}
	var pts []engine.Pp
	for _, part := range strings.Split(s, ";") {
		p, err := parsePos(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseLatLon(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"lat,lon\", got %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return lat, lon, nil
}

// competitorSpec mirrors orchestrator.Competitor's JSON shape for
// reading the -competitors input file.
type competitorSpec struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// loadCompetitors reads the -competitors JSON file, which may hold either
// a single competitor object or an array of them.
func loadCompetitors(path string) ([]competitorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs util.SingleOrArray[competitorSpec]
	if err := util.UnmarshalJSONBytes(data, &specs); err != nil {
		return nil, err
	}
	return []competitorSpec(specs), nil
}
