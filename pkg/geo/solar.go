// pkg/geo/solar.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import "time"

// IsDaylight is a simplified day/night test: local theoretical time (UTC
// origin shifted by one hour per 15 degrees of longitude) is day if it
// falls in [6,18], except beyond +-75 degrees latitude where the test
// falls back to the local hemisphere's season. dataDate is YYYYMMDD,
// dataTime is HHMM, t is hours after that origin.
func IsDaylight(dataDate, dataTime int, t, lat, lon float64) bool {
	year := dataDate / 10000
	month := (dataDate % 10000) / 100
	day := dataDate % 100
	hour := dataTime / 100
	minute := dataTime % 100

	origin := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	lon = LonNormalize(lon, false)
	localHours := t + lon/15.0
	local := origin.Add(time.Duration(localHours * float64(time.Hour)))

	summerNorth := local.Month() > time.March && local.Month() < time.September
	if lat > 75 {
		return summerNorth
	}
	if lat < -75 {
		return !summerNorth
	}
	h := local.Hour()
	return h >= 6 && h <= 18
}
