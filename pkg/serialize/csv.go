// pkg/serialize/csv.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package serialize

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rigault/simplerouting-sub000/pkg/engine"
)

// WriteIsochronesCSV dumps store's isochrones, one row per point, each
// tagged with the isochrone index it belongs to.
func WriteIsochronesCSV(w io.Writer, store *engine.IsochroneStore) error {
	cw := csv.NewWriter(w)
	header := []string{"n", "wp", "lat", "lon", "id", "father", "amure", "sail", "motor", "dd", "vmc"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, pts := range store.Points {
		wp := store.Desc[i].ToIndexWp
		for _, p := range pts {
			row := []string{
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%d", wp),
				fmt.Sprintf("%.2f", p.Lat),
				fmt.Sprintf("%.2f", p.Lon),
				fmt.Sprintf("%d", p.Id),
				fmt.Sprintf("%d", p.Father),
				fmt.Sprintf("%d", p.Amure),
				fmt.Sprintf("%d", p.Sail),
				fmt.Sprintf("%t", p.Motor),
				fmt.Sprintf("%.2f", p.Dd),
				fmt.Sprintf("%.2f", p.Vmc),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
