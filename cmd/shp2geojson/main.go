package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"atlasgo/pkg/geo"

	"github.com/paulmach/orb/geojson"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .shp file")
	outputPath := flag.String("output", "", "Path to output .geojson file")
	bordersPath := flag.String("borders", "", "Optional path for the shared borders between regions (.geojson)")
	regionsOnly := flag.Bool("regions", false, "Keep only code and name properties of polygonal records")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Input and output paths are required")
	}

	if err := run(*inputPath, *outputPath, *bordersPath, *regionsOnly); err != nil {
		log.Fatal(err)
	}
}

func run(inputPath, outputPath, bordersPath string, regionsOnly bool) error {
	fc, err := geo.ReadShapefile(inputPath)
	if err != nil {
		return err
	}
	regions := geo.RegionsFromFeatures(fc)

	if regionsOnly {
		var polygonal []geo.Region
		for _, r := range regions {
			if r.Polygonal() {
				polygonal = append(polygonal, r)
			}
		}
		fc = geo.RegionsToFeatures(polygonal)
	}

	if err := writeCollection(outputPath, fc); err != nil {
		return err
	}
	fmt.Printf("Successfully converted %d features to %s\n", len(fc.Features), outputPath)

	if bordersPath == "" {
		return nil
	}
	borders := geo.SharedBorders(regions)
	if err := writeCollection(bordersPath, geo.BordersToFeatures(borders)); err != nil {
		return err
	}
	fmt.Printf("Found %d shared borders, saved to %s\n", len(borders), bordersPath)
	return nil
}

func writeCollection(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
