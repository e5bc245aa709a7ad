// Package kml extracts location records from the fixed-schema placemark
// document the case map is built from. It handles exactly the subset of KML
// the source document uses: Placemark > {name, description, styleUrl,
// Point|LineString|Polygon > coordinates}, with MultiGeometry containers
// flattened into one record per geometry.
package kml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"chronomap/pkg/model"
)

// ParseError indicates the source document is not well-formed markup.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kml: malformed document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type kmlDocument struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	// Some exports omit the Document wrapper.
	Bare []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string        `xml:"name"`
	Description string        `xml:"description"`
	StyleURL    string        `xml:"styleUrl"`
	Points      []kmlGeometry `xml:"Point"`
	Lines       []kmlGeometry `xml:"LineString"`
	Polygons    []kmlPolygon  `xml:"Polygon"`
	Multi       []kmlMultiGeo `xml:"MultiGeometry"`
}

type kmlMultiGeo struct {
	Points   []kmlGeometry `xml:"Point"`
	Lines    []kmlGeometry `xml:"LineString"`
	Polygons []kmlPolygon  `xml:"Polygon"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer       string `xml:"outerBoundaryIs>LinearRing>coordinates"`
	Coordinates string `xml:"coordinates"`
}

// Parse extracts one LocationRecord per geometry element, preserving document
// order. A placemark with several geometries yields several records sharing
// its name, description and style tag.
func Parse(doc []byte) ([]model.LocationRecord, error) {
	var parsed kmlDocument
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}

	placemarks := parsed.Placemarks
	if len(placemarks) == 0 {
		placemarks = parsed.Bare
	}

	var records []model.LocationRecord
	for _, pm := range placemarks {
		records = append(records, recordsFromPlacemark(pm)...)
	}
	return records, nil
}

// recordsFromPlacemark emits records grouped by kind: points, then lines,
// then polygons. Within one placemark a MultiGeometry mixing kinds loses the
// element order of the markup; the source schema never mixes kinds under one
// placemark, and document order across placemarks is preserved.
func recordsFromPlacemark(pm kmlPlacemark) []model.LocationRecord {
	name := pm.Name
	if name == "" {
		name = "Unknown"
	}

	base := model.LocationRecord{
		Name:        name,
		Description: pm.Description,
		StyleTag:    pm.StyleURL,
	}

	points := pm.Points
	lines := pm.Lines
	polygons := pm.Polygons
	for _, mg := range pm.Multi {
		points = append(points, mg.Points...)
		lines = append(lines, mg.Lines...)
		polygons = append(polygons, mg.Polygons...)
	}

	var records []model.LocationRecord
	for _, p := range points {
		coords, alts := parseCoordinates(p.Coordinates)
		if len(coords) == 0 {
			continue
		}
		rec := base
		rec.Geometry = coords[0]
		if len(alts) > 0 {
			rec.Altitude = alts[0]
		}
		rec.Timestamp = TimestampFromDescription(pm.Description)
		records = append(records, rec)
	}
	for _, l := range lines {
		coords, _ := parseCoordinates(l.Coordinates)
		if len(coords) == 0 {
			continue
		}
		rec := base
		rec.Geometry = orb.LineString(coords)
		records = append(records, rec)
	}
	for _, pg := range polygons {
		raw := pg.Outer
		if raw == "" {
			raw = pg.Coordinates
		}
		coords, _ := parseCoordinates(raw)
		if len(coords) == 0 {
			continue
		}
		rec := base
		rec.Geometry = orb.Polygon{orb.Ring(coords)}
		records = append(records, rec)
	}
	return records
}

// parseCoordinates parses a whitespace-separated sequence of
// "lon,lat[,alt]" tuples. Tuples that fail to parse are skipped.
func parseCoordinates(raw string) ([]orb.Point, []float64) {
	var points []orb.Point
	var alts []float64

	for _, tuple := range strings.Fields(raw) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		alt := 0.0
		if len(parts) >= 3 {
			// Altitude is optional and often just "0".
			alt, _ = strconv.ParseFloat(parts[2], 64)
		}
		points = append(points, orb.Point{lon, lat})
		alts = append(alts, alt)
	}
	return points, alts
}

// TrailFromRecords concatenates the coordinates of every LineString record
// whose name contains the trail marker (case-insensitive), in document
// order. Coincident segment endpoints are kept as-is; the reveal arithmetic
// depends on the raw concatenated length.
func TrailFromRecords(records []model.LocationRecord, marker string) orb.LineString {
	marker = strings.ToLower(marker)

	var trail orb.LineString
	for _, rec := range records {
		line, ok := rec.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Name), marker) {
			continue
		}
		trail = append(trail, line...)
	}
	return trail
}
