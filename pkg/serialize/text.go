// pkg/serialize/text.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package serialize

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rigault/simplerouting-sub000/pkg/engine"
	"github.com/rigault/simplerouting-sub000/pkg/geo"
	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// RouteText renders r as a fixed-column text report, grounded on the
// reference's routeToStr: one row per reconstructed point, followed by
// a summary footer of aggregate statistics.
func RouteText(r *route.SailRoute, competitorName string) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "No\tWP\tLat\tLon\tSail\tM/T/B\tHDG\tDist\tSOG\tTwd\tTwa\tTws\tGust\tWave\tStamina")
	for i, p := range r.Points {
		label := fmt.Sprintf("%d", i-1)
		if i == 0 {
			label = "pOr"
		}
		twa := geo.FTwa(p.OCap, p.Twd)
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%s\t%s\t%.0f\t%.2f\t%.2f\t%.0f\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			label, p.ToIndexWp, p.Lat, p.Lon, sailName(p.Sail), motorTackLabel(p.Motor, p.Amure),
			normalizeDeg(p.OCap), p.Od, p.Sog, normalizeDeg(p.Twd), twa, p.Tws, p.Gust, p.Wave, p.Stamina)
	}
	tw.Flush()

	fmt.Fprintf(&sb, "\n Avr/Max SOG      : %.2f/%.2f Kn\n", r.AvrSog, r.MaxSog)
	fmt.Fprintf(&sb, " Avr/Max Tws      : %.2f/%.2f Kn\n", r.AvrTws, r.MaxTws)
	fmt.Fprintf(&sb, " Total/Motor Dist.: %.2f/%.2f NM\n", r.TotDist, r.MotorDist)
	fmt.Fprintf(&sb, " Total/Motor Dur. : %s/%s Hours\n", durationToStr(r.Duration), durationToStr(r.MotorDuration))
	fmt.Fprintf(&sb, " Sail Changes     : %d\n", r.NSailChange)
	fmt.Fprintf(&sb, " Amures Changes   : %d\n", r.NAmureChange)
	fmt.Fprintf(&sb, " Polar file       : %s\n", r.PolarFileName)
	if competitorName != "" {
		fmt.Fprintf(&sb, " Competitor       : %s\n", competitorName)
	}
	return sb.String()
}

// motorTackLabel mirrors the reference's motorTribordBabord: three
// letters identifying whether the leg was motored, or sailed on
// starboard/port tack.
func motorTackLabel(motor bool, amure engine.Amure) string {
	if motor {
		return "Mot"
	}
	if amure == engine.Port {
		return "Bab"
	}
	return "Tri"
}

// durationToStr renders a duration in hours as hours and zero-padded
// minutes, e.g. 3.5 as "3h30m".
func durationToStr(hours float64) string {
	total := int(hours*60 + 0.5)
	h, m := total/60, total%60
	return fmt.Sprintf("%dh%02dm", h, m)
}

// CompetitorsText renders a fleet sweep summary, grounded on the
// reference's competitorsToStr: one row per competitor, most recently
// computed first.
func CompetitorsText(names []string, durationsHours, dists []float64, reached []bool) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tDuration\tDist\tReached")
	for i, name := range names {
		dur := "-"
		if reached[i] {
			dur = durationToStr(durationsHours[i])
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%t\n", name, dur, dists[i], reached[i])
	}
	tw.Flush()
	return sb.String()
}
