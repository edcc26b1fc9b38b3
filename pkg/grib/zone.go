// pkg/grib/zone.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package grib evaluates a gridded, time-varying meteorological field —
// wind, ocean current, waves, pressure, and rain rate — at an arbitrary
// (lat, lon, t). Decoding the GRIB2 wire format itself is delegated to
// github.com/mmp/squall; this package only assembles the decoded messages
// into a regular grid and interpolates.
package grib

import (
	"io"

	"github.com/mmp/squall"
	"github.com/rigault/simplerouting-sub000/pkg/util"
)

const (
	fieldU = iota
	fieldV
	fieldGust
	fieldWave
	fieldMSL
	fieldPrate
	fieldCurrentU
	fieldCurrentV
	numFields
)

// shortNameField maps the GRIB2 parameter short names this evaluator
// understands to their field slot.
var shortNameField = map[string]int{
	"UGRD":   fieldU,
	"VGRD":   fieldV,
	"GUST":   fieldGust,
	"HTSGW":  fieldWave,
	"PRMSL":  fieldMSL,
	"PRATE":  fieldPrate,
	"UOGRD":  fieldCurrentU,
	"VOGRD":  fieldCurrentV,
}

// Zone is a gridded time-varying field: a regular lat/lon raster sampled
// at a fixed set of forecast time offsets.
type Zone struct {
	LatMin, LatMax    float64
	LonLeft, LonRight float64
	LatStep, LonStep  float64
	NbLat, NbLon      int

	// TimeStamp holds the forecast hour offsets from (DataDate, DataTime),
	// strictly ascending.
	TimeStamp []float64
	DataDate  int // YYYYMMDD
	DataTime  int // HHMM

	// AnteMeridian is true iff the zone wraps the 180 degree meridian and
	// longitudes are stored in [0,360) rather than (-180,180].
	AnteMeridian bool

	// AllTimeStepOK is false if any timestamp is missing one of the
	// required short names; the zone is still usable, with the missing
	// contribution treated as zero.
	AllTimeStepOK bool

	// grid[field][k] is a packed nbLat*nbLon array for field at timestamp
	// k, or nil if that field is absent at that timestamp.
	grid [numFields][][]float64
}

// index returns the packed-array index for grid row i (0 = LatMax,
// increasing southward) and column j (0 = LonLeft, increasing eastward).
func (z *Zone) index(i, j int) int { return i*z.NbLon + j }

// Load decodes one GRIB2 message set per forecast hour and assembles them
// into a Zone. messages maps each forecast hour offset (from dataDate,
// dataTime) to a reader over that hour's GRIB2 byte stream. The grid
// geometry (bounding box, step, anteMeridian) is inferred from the first
// message that successfully decodes; subsequent hours are assumed to
// share that geometry, as is standard for a single model run.
func Load(messages map[float64]io.Reader, dataDate, dataTime int) (*Zone, error) {
	hours := util.SortedMapKeys(messages)

	z := &Zone{
		TimeStamp:     hours,
		DataDate:      dataDate,
		DataTime:      dataTime,
		AllTimeStepOK: true,
	}
	for f := range z.grid {
		z.grid[f] = make([][]float64, len(hours))
	}

	geometryKnown := false
	for k, h := range hours {
		records, err := squall.Read(messages[h])
		if err != nil {
			return nil, &Error{Kind: Parse, Err: err}
		}

		seen := make(map[int]bool, numFields)
		for _, rec := range records {
			field, ok := shortNameField[rec.Parameter.ShortName()]
			if !ok {
				continue
			}

			if !geometryKnown {
				z.inferGeometry(rec)
				geometryKnown = true
			}

			if z.grid[field][k] == nil {
				z.grid[field][k] = make([]float64, z.NbLat*z.NbLon)
				for i := range z.grid[field][k] {
					z.grid[field][k][i] = missing
				}
			}
			z.scatter(field, k, rec)
			seen[field] = true
		}

		// UGRD/VGRD are the only fields the engine treats as mandatory;
		// everything else (gust, wave, current, msl, prate) degrades
		// gracefully to a neutral/zero contribution.
		if !seen[fieldU] || !seen[fieldV] {
			z.AllTimeStepOK = false
		}
	}

	if !geometryKnown {
		return nil, &Error{Kind: Parse, Err: errNoRecords}
	}

	return z, nil
}

const missing = -9.99e21

func (z *Zone) inferGeometry(rec *squall.GRIB2) {
	lats, lons := rec.Latitudes, rec.Longitudes
	n := rec.NumPoints

	// Standard GRIB2 scanning order varies longitude fastest within a
	// latitude row; nbLon is the run length before latitude changes.
	nbLon := 1
	for nbLon < n && lats[nbLon] == lats[0] {
		nbLon++
	}
	nbLat := n / nbLon

	lonLeft := float64(lons[0])
	anteMeridian := false
	maxLon := lonLeft
	for j := 0; j < nbLon; j++ {
		l := float64(lons[j])
		if l > maxLon {
			maxLon = l
		}
	}
	if maxLon > 180 {
		anteMeridian = true
	}

	latMax := float64(lats[0])
	latStep := float64(0)
	if nbLat > 1 {
		latStep = latMax - float64(lats[nbLon])
		if latStep < 0 {
			latStep = -latStep
		}
	}
	lonStep := float64(0)
	if nbLon > 1 {
		lonStep = float64(lons[1]) - float64(lons[0])
		if lonStep < 0 {
			lonStep = -lonStep
		}
	}

	z.NbLat, z.NbLon = nbLat, nbLon
	z.LatMax = latMax
	z.LatMin = latMax - float64(nbLat-1)*latStep
	z.LonLeft = lonLeft
	z.LonRight = lonLeft + float64(nbLon-1)*lonStep
	z.LatStep, z.LonStep = latStep, lonStep
	z.AnteMeridian = anteMeridian
}

func (z *Zone) scatter(field, k int, rec *squall.GRIB2) {
	for i := 0; i < rec.NumPoints; i++ {
		v := rec.Data[i]
		if v > 9e20 {
			continue // squall's missing-value sentinel
		}
		lat := float64(rec.Latitudes[i])
		lon := float64(rec.Longitudes[i])

		row := int((z.LatMax-lat)/z.LatStep + 0.5)
		col := int((lon-z.LonLeft)/z.LonStep + 0.5)
		if row < 0 || row >= z.NbLat || col < 0 || col >= z.NbLon {
			continue
		}
		z.grid[field][k][z.index(row, col)] = v
	}
}
