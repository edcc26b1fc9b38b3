// pkg/polar/matrix.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package polar evaluates a vessel's polar table: boat speed (or a
// wave-height speed correction, or a sail identifier) as a function of
// true wind angle and true wind speed.
package polar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rigault/simplerouting-sub000/pkg/geo"
)

// ErrEmpty is returned by LoadCSV when a polar file has no angle rows.
var ErrEmpty = errors.New("polar: empty matrix")

// Matrix is a polar table: row 0 holds wind-speed columns (knots), column
// 0 holds wind-angle rows (degrees, 0..180). Cell (r,c) holds boat speed
// (knots), a wave-correction percentage, or an integer sail id, depending
// on which file it was loaded from.
type Matrix struct {
	Tws  []float64   // ascending wind-speed columns
	Twa  []float64   // ascending wind-angle rows, 0..180
	Cell [][]float64 // Cell[row][col]
}

// LoadCSV reads a polar file: row 0 is "TWA/TWS; tws1; tws2; …", each
// subsequent row is "twa; v1; v2; …". Both ';' and ',' are accepted as
// the field separator.
func LoadCSV(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rows = append(rows, splitFields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	header := rows[0]
	tws := make([]float64, 0, len(header)-1)
	for _, f := range header[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("polar: bad tws header %q: %w", f, err)
		}
		tws = append(tws, v)
	}

	m := &Matrix{Tws: tws}
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		twa, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("polar: bad twa %q: %w", row[0], err)
		}
		cells := make([]float64, 0, len(tws))
		for _, f := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("polar: bad cell %q: %w", f, err)
			}
			cells = append(cells, v)
		}
		for len(cells) < len(tws) {
			cells = append(cells, cells[len(cells)-1])
		}
		m.Twa = append(m.Twa, twa)
		m.Cell = append(m.Cell, cells)
	}

	if len(m.Twa) == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

func splitFields(line string) []string {
	sep := ","
	if strings.Contains(line, ";") {
		sep = ";"
	}
	return strings.Split(line, sep)
}

// bracket returns the pair of indices in a bracketing x, with the
// fractional position between them, clamping x to the table's extent.
func bracket(xs []float64, x float64) (i0, i1 int, frac float64) {
	if x <= xs[0] {
		return 0, 0, 0
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return last, last, 0
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			frac = (x - xs[i-1]) / (xs[i] - xs[i-1])
			return i - 1, i, frac
		}
	}
	return last, last, 0
}

// valueAt performs bilinear interpolation of the matrix at (|twa|, tws),
// both clamped to the table's extent.
func (m *Matrix) valueAt(twa, tws float64) float64 {
	twa = geo.Abs(twa)
	if twa > 180 {
		twa = 360 - twa
	}

	ri0, ri1, rf := bracket(m.Twa, twa)
	ci0, ci1, cf := bracket(m.Tws, tws)

	top := geo.Lerp(cf, m.Cell[ri0][ci0], m.Cell[ri0][ci1])
	bot := geo.Lerp(cf, m.Cell[ri1][ci0], m.Cell[ri1][ci1])
	return geo.Lerp(rf, top, bot)
}

// nearestAt returns the cell nearest (|twa|, tws), used for the sail
// matrix, whose integer identifiers aren't meaningful to interpolate.
func (m *Matrix) nearestAt(twa, tws float64) int {
	twa = geo.Abs(twa)
	if twa > 180 {
		twa = 360 - twa
	}

	ri0, ri1, rf := bracket(m.Twa, twa)
	ri := ri0
	if rf >= 0.5 {
		ri = ri1
	}
	ci0, ci1, cf := bracket(m.Tws, tws)
	ci := ci0
	if cf >= 0.5 {
		ci = ci1
	}
	return int(m.Cell[ri][ci])
}
