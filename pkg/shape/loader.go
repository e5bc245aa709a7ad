// Package shape loads supplementary static layers (search grids, roadblocks)
// from ESRI shapefiles, the format most agency GIS exports arrive in.
package shape

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"chronomap/pkg/model"
)

// Load reads a shapefile into location records. PolyLines become LineString
// records (one per part), Polygons become Polygon records, Points become
// Point records. Name and description come from the NAME/DESC attribute
// columns when present.
func Load(path string) ([]model.LocationRecord, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer reader.Close()

	fields := reader.Fields()
	nameCol, descCol := -1, -1
	for i := range fields {
		switch strings.ToLower(strings.TrimRight(fields[i].String(), "\x00")) {
		case "name":
			nameCol = i
		case "desc", "descriptio", "description":
			descCol = i
		}
	}

	var records []model.LocationRecord
	for reader.Next() {
		n, p := reader.Shape()

		name := "Unknown"
		if nameCol >= 0 {
			if v := reader.ReadAttribute(n, nameCol); v != "" {
				name = v
			}
		}
		desc := ""
		if descCol >= 0 {
			desc = reader.ReadAttribute(n, descCol)
		}

		base := model.LocationRecord{Name: name, Description: desc}

		switch s := p.(type) {
		case *shp.Point:
			rec := base
			rec.Geometry = orb.Point{s.X, s.Y}
			records = append(records, rec)
		case *shp.PolyLine:
			for _, line := range partsToLines(s.NumParts, s.Parts, s.NumPoints, s.Points) {
				rec := base
				rec.Geometry = line
				records = append(records, rec)
			}
		case *shp.Polygon:
			lines := partsToLines(s.NumParts, s.Parts, s.NumPoints, s.Points)
			if len(lines) == 0 {
				continue
			}
			poly := make(orb.Polygon, 0, len(lines))
			for _, line := range lines {
				poly = append(poly, orb.Ring(line))
			}
			rec := base
			rec.Geometry = poly
			records = append(records, rec)
		default:
			// Null shapes and exotic types are skipped.
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shapes: %w", err)
	}

	return records, nil
}

// partsToLines splits a multi-part shape into one line per part.
func partsToLines(numParts int32, parts []int32, numPoints int32, points []shp.Point) []orb.LineString {
	var lines []orb.LineString
	for i := 0; i < int(numParts); i++ {
		start := parts[i]
		end := numPoints
		if i < int(numParts)-1 {
			end = parts[i+1]
		}

		var line orb.LineString
		for j := start; j < end; j++ {
			line = append(line, orb.Point{points[j].X, points[j].Y})
		}
		lines = append(lines, line)
	}
	return lines
}
