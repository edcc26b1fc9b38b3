// pkg/serialize/gpx.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package serialize

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/rigault/simplerouting-sub000/pkg/route"
)

// creatorName identifies this program in the GPX <gpx creator="..."> attribute.
const creatorName = "sailroute"

type gpxDoc struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Route   gpxRoute `xml:"rte"`
}

type gpxRoute struct {
	Name   string     `xml:"name"`
	Points []gpxPoint `xml:"rtept"`
}

type gpxPoint struct {
	Lat    float64 `xml:"lat,attr"`
	Lon    float64 `xml:"lon,attr"`
	Name   string  `xml:"name,omitempty"`
	Time   string  `xml:"time,omitempty"`
	Course *string `xml:"course,omitempty"`
	Speed  *string `xml:"speed,omitempty"`
}

// WriteGPX renders r as a GPX 1.1 route document, one <rtept> per
// reconstructed point plus a closing "Destination" waypoint, grounded on
// the reference's exportRouteToGpx. epoch is the GRIB data's reference
// time (dataDate/dataTime converted to a time.Time), to which each
// point's elapsed Time (in hours) is added.
func WriteGPX(w io.Writer, r *route.SailRoute, epoch time.Time) error {
	doc := gpxDoc{
		Version: "1.1",
		Creator: creatorName,
		Xmlns:   "http://www.topografix.com/GPX/1/1",
		Route:   gpxRoute{Name: "Maritime Route"},
	}

	for i, p := range r.Points {
		t := epoch.Add(time.Duration(p.Time * float64(time.Hour))).UTC()
		course := fmt.Sprintf("%.2f", normalizeDeg(p.OCap))
		speed := fmt.Sprintf("%.2f", p.Sog)
		doc.Route.Points = append(doc.Route.Points, gpxPoint{
			Lat: p.Lat, Lon: p.Lon,
			Name:   fmt.Sprintf("%d", i),
			Time:   t.Format("2006-01-02T15:04:05Z"),
			Course: &course,
			Speed:  &speed,
		})
	}

	if len(r.Points) > 0 {
		last := r.Points[len(r.Points)-1]
		doc.Route.Points = append(doc.Route.Points, gpxPoint{Lat: last.Lat, Lon: last.Lon, Name: "Destination"})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func normalizeDeg(deg float64) float64 {
	d := deg + 360
	for d >= 360 {
		d -= 360
	}
	return d
}
