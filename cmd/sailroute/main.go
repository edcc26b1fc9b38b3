// main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains main(), which parses flags, assembles a
// RouteContext from the weather/polar/mask inputs, runs the requested
// mode, and writes the rendered result.

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/log"
	"github.com/rigault/simplerouting-sub000/pkg/util"
)

var (
	logLevel = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "log file directory")

	gribDir    = flag.String("grib", "", "directory of per-forecast-hour wind/wave GRIB2 files (named HH.grb2)")
	currentDir = flag.String("current", "", "directory of per-forecast-hour ocean current GRIB2 files")
	polarFile  = flag.String("polar", "", "boat speed polar CSV file")
	waveFile   = flag.String("wavepolar", "", "wave speed-correction polar CSV file")
	seaMask    = flag.String("seamask", "", "binary sea/land raster file")
	parFile    = flag.String("par", "", "JSON routing parameter file (defaults applied for anything absent)")

	origin      = flag.String("origin", "", "origin position, \"lat,lon\"")
	destination = flag.String("destination", "", "destination position, \"lat,lon\"")
	waypoints   = flag.String("waypoints", "", "intermediate waypoints, \"lat,lon;lat,lon;...\"")

	mode = flag.String("mode", "route", "route | departure | competitors")

	competitorsFile = flag.String("competitors", "", "JSON file of [{\"name\":..,\"lat\":..,\"lon\":..}, ...] for -mode=competitors")
	departBegin     = flag.Float64("depart-begin", 0, "departure sweep start, hours after the GRIB reference time")
	departEnd       = flag.Float64("depart-end", 24, "departure sweep end, hours after the GRIB reference time")
	departInterval  = flag.Float64("depart-interval", 1, "departure sweep sampling interval, hours")

	format       = flag.String("format", "json", "json | csv | gpx | text")
	outFile      = flag.String("out", "", "output file (default: stdout)")
	withIsoc     = flag.Bool("isoc", false, "include the isochrone dump (json: embedded; csv: separate isochrone rows)")
	dataDateFlag = flag.Int("datadate", 0, "GRIB reference date, YYYYMMDD")
	dataTimeFlag = flag.Int("datatime", 0, "GRIB reference time, HHMM")
	timeStampEnd = flag.Float64("timestampend", 240, "forecast horizon past which the routing stops expanding isochrones, hours")
)

func fatal(lg *log.Logger, msg string, args ...any) {
	lg.Errorf(msg, args...)
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// setupSignalHandler requests cancellation of the in-flight run on the
// first SIGINT/SIGTERM, letting the engine unwind to OutcomeStopped and
// report whatever partial route it has; a second signal means the
// caller wants out immediately.
func setupSignalHandler(status *engine.StatusWord, lg *log.Logger) {
	var stopping util.AtomicBool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for range sigCh {
			if stopping.Load() {
				fmt.Fprintln(os.Stderr, "second interrupt, exiting")
				os.Exit(1)
			}
			stopping.Store(true)
			lg.Warnf("caught signal, requesting cancellation")
			status.Stop()
		}
	}()
}

func main() {
	flag.Parse()
	lg := log.New(*logLevel, *logDir)

	if *polarFile == "" {
		fatal(lg, "a -polar file is required")
	}
	if *origin == "" || *destination == "" {
		fatal(lg, "both -origin and -destination are required")
	}

	pol, err := loadPolar(*polarFile, *waveFile)
	if err != nil {
		fatal(lg, "loading polar: %v", err)
	}

	dd, dt := *dataDateFlag, *dataTimeFlag

	wind, err := loadWind(*gribDir, dd, dt)
	if err != nil {
		fatal(lg, "loading wind: %v", err)
	}

	current, err := loadCurrent(*currentDir, dd, dt)
	if err != nil {
		fatal(lg, "loading current: %v", err)
	}

	mask, err := loadMask(*seaMask)
	if err != nil {
		fatal(lg, "loading sea mask: %v", err)
	}

	par, err := loadPar(*parFile)
	if err != nil {
		fatal(lg, "loading parameters: %v", err)
	}

	pOr, err := parsePos(*origin)
	if err != nil {
		fatal(lg, "-origin: %v", err)
	}
	pDest, err := parsePos(*destination)
	if err != nil {
		fatal(lg, "-destination: %v", err)
	}
	wps, err := parseWaypoints(*waypoints)
	if err != nil {
		fatal(lg, "-waypoints: %v", err)
	}

	rc := engine.NewRouteContext(wind, current, pol, mask, par, dd, dt, *timeStampEnd)
	status := engine.NewStatusWord()
	setupSignalHandler(status, lg)

	lg.Infof("starting mode=%s origin=%v destination=%v", *mode, pOr, pDest)

	out, err := dispatch(rc, pOr, pDest, wps, par, status, wind, dd, dt)
	if err != nil {
		fatal(lg, "%s: %v", *mode, err)
	}

	if err := writeOutput(*outFile, out); err != nil {
		fatal(lg, "writing output: %v", err)
	}
	lg.Infof("done")
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
