// Command slim_geojson shrinks a region file for map rendering: it keeps
// only the code and name of each region, simplifies the outlines and
// rounds coordinates.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"atlasgo/pkg/geo"
)

type options struct {
	threshold float64
	precision int
	keep      string
}

func main() {
	var opts options
	flag.Float64Var(&opts.threshold, "threshold", 0.01, "Douglas-Peucker tolerance in degrees (0 disables)")
	flag.IntVar(&opts.precision, "precision", 4, "Decimal places kept in coordinates (0 keeps all)")
	flag.StringVar(&opts.keep, "keep", "", "Comma-separated region codes to keep (default all)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.geojson|.shp> <output.geojson>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1), opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(inputPath, outputPath string, opts options, stdout io.Writer) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	regions, err := geo.LoadRegions(inputPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Input: %d regions, %d bytes\n", len(regions), info.Size())

	regions = filterCodes(regions, opts.keep)
	regions = geo.Simplify(regions, geo.SimplifyOptions{Threshold: opts.threshold, Precision: opts.precision})

	outData, err := json.Marshal(geo.RegionsToFeatures(regions))
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	if err := os.WriteFile(outputPath, outData, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(stdout, "Output: %d regions, %d bytes (%.1f%% reduction)\n",
		len(regions), len(outData), 100*(1-float64(len(outData))/float64(info.Size())))
	return nil
}

func filterCodes(regions []geo.Region, keep string) []geo.Region {
	if strings.TrimSpace(keep) == "" {
		return regions
	}
	want := make(map[string]bool)
	for _, c := range strings.Split(keep, ",") {
		if c = strings.TrimSpace(c); c != "" {
			want[c] = true
		}
	}
	var out []geo.Region
	for _, r := range regions {
		if want[r.Code] {
			out = append(out, r)
		}
	}
	return out
}
