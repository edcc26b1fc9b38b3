// pkg/geo/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import "math"

// Pos is a point on the earth's surface, latitude and longitude in
// degrees.
type Pos struct {
	Lat, Lon float64
}

// OrthoDist returns the great-circle distance between a and b in nautical
// miles, via the haversine formula.
func OrthoDist(a, b Pos) float64 {
	lat1, lat2 := Radians(a.Lat), Radians(b.Lat)
	dLat := Radians(b.Lat - a.Lat)
	dLon := Radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = Clamp(h, 0, 1)
	return 2 * EarthRadiusNM * math.Asin(math.Sqrt(h))
}

// OrthoCap returns the initial great-circle bearing from a to b, in
// [0,360).
func OrthoCap(a, b Pos) float64 {
	lat1, lat2 := Radians(a.Lat), Radians(b.Lat)
	dLon := Radians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return NormalizeHeading(Degrees(math.Atan2(y, x)))
}

// LoxoDist returns the rhumb-line distance between a and b in nautical
// miles.
func LoxoDist(a, b Pos) float64 {
	lat1, lat2 := Radians(a.Lat), Radians(b.Lat)
	dLat := lat2 - lat1
	dLon := Radians(b.Lon - a.Lon)

	dPsi := math.Log(math.Tan(PiOver2/2+lat2/2) / math.Tan(PiOver2/2+lat1/2))
	var q float64
	if math.Abs(dPsi) > 1e-12 {
		q = dLat / dPsi
	} else {
		q = math.Cos(lat1)
	}

	// Take the shorter way around when the longitude delta exceeds a
	// half-turn.
	if math.Abs(dLon) > Pi {
		if dLon > 0 {
			dLon = -(2*Pi - dLon)
		} else {
			dLon = 2*Pi + dLon
		}
	}

	dist := math.Hypot(dLat, q*dLon) * EarthRadiusNM
	return dist
}

// DirectCap returns the constant rhumb-line bearing from a to b, in
// [0,360).
func DirectCap(a, b Pos) float64 {
	lat1, lat2 := Radians(a.Lat), Radians(b.Lat)
	dLon := Radians(b.Lon - a.Lon)

	dPsi := math.Log(math.Tan(PiOver2/2+lat2/2) / math.Tan(PiOver2/2+lat1/2))
	if math.Abs(dLon) > Pi {
		if dLon > 0 {
			dLon = -(2*Pi - dLon)
		} else {
			dLon = 2*Pi + dLon
		}
	}
	return NormalizeHeading(Degrees(math.Atan2(dLon, dPsi)))
}

// MovePosition integrates a constant course and speed track over dt hours
// along a great circle, returning the resulting position.
func MovePosition(from Pos, sog, cog, dt float64) Pos {
	d := sog * dt / EarthRadiusNM // angular distance, radians
	brng := Radians(cog)
	lat1 := Radians(from.Lat)
	lon1 := Radians(from.Lon)

	sinLat2 := math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng)
	lat2 := math.Asin(Clamp(sinLat2, -1, 1))
	y := math.Sin(brng) * math.Sin(d) * math.Cos(lat1)
	x := math.Cos(d) - math.Sin(lat1)*math.Sin(lat2)
	lon2 := lon1 + math.Atan2(y, x)

	return Pos{Lat: Degrees(lat2), Lon: Degrees(lon2)}
}

// DistSegment returns the perpendicular distance from x to the segment ab,
// in nautical miles, via a local equirectangular projection at x's
// latitude. It is symmetric in (a,b) and zero when x lies on the segment.
func DistSegment(x, a, b Pos) float64 {
	cosLat := math.Cos(Radians(x.Lat))

	toXY := func(p Pos) (float64, float64) {
		return (p.Lon - x.Lon) * cosLat, p.Lat - x.Lat
	}

	_, _ = toXY(x) // x maps to the projection origin, (0,0)
	ax, ay := toXY(a)
	bx, by := toXY(b)

	ex, ey := bx-ax, by-ay
	l2 := ex*ex + ey*ey
	var t float64
	if l2 > 0 {
		t = Clamp((-ax*ex-ay*ey)/l2, 0, 1)
	}
	px, py := ax+t*ex, ay+t*ey
	return math.Hypot(px, py) * 60 // degrees -> nm
}

// LonNormalize canonicalizes lon to the representation a zone with the
// given anteMeridian flag uses: [0,360) when true, (-180,180] otherwise.
func LonNormalize(lon float64, anteMeridian bool) float64 {
	if anteMeridian {
		return Mod(lon, 360)
	}
	l := Mod(lon+180, 360) - 180
	if l <= -180 {
		l += 360
	}
	return l
}

// FTwa returns the signed wind angle relative to course cog given true
// wind direction twd (the direction the wind blows from), in (-180,180].
// A positive result means the wind is on the starboard side.
func FTwa(cog, twd float64) float64 {
	d := Mod(twd-cog+180, 360) - 180
	if d <= -180 {
		d += 360
	}
	return d
}

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float64) float64 {
	return Mod(h, 360)
}

// HeadingDifference returns the minimum difference between two headings,
// always in [0,180].
func HeadingDifference(a, b float64) float64 {
	d := Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// PointInPolygon reports whether p is inside the polygon described by pts
// (lat/lon pairs), via ray casting on the longitude/latitude plane. The
// last vertex is not assumed to repeat the first.
func PointInPolygon(p Pos, pts []Pos) bool {
	inside := false
	for i := range pts {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0.Lat <= p.Lat && p.Lat < p1.Lat) || (p1.Lat <= p.Lat && p.Lat < p0.Lat) {
			x := p0.Lon + (p.Lat-p0.Lat)*(p1.Lon-p0.Lon)/(p1.Lat-p0.Lat)
			if x > p.Lon {
				inside = !inside
			}
		}
	}
	return inside
}
