package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb/geojson"

	"chronomap/pkg/kml"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .kml file")
	outputPath := flag.String("output", "", "Path to output .geojson file")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Input and output paths are required")
	}

	if err := run(*inputPath, *outputPath); err != nil {
		log.Fatal(err)
	}
}

func run(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	records, err := kml.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		if rec.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(rec.Geometry)
		f.Properties["name"] = rec.Name
		if rec.Description != "" {
			f.Properties["description"] = rec.Description
		}
		if rec.StyleTag != "" {
			f.Properties["style"] = rec.StyleTag
		}
		if rec.Timestamp != nil {
			f.Properties["timestamp"] = rec.Timestamp.Format("2006-01-02T15:04:05Z")
		}
		fc.Append(f)
	}

	out, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Successfully converted %d features to %s\n", len(fc.Features), outputPath)
	return nil
}
