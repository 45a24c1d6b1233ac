// Command slim_cities turns a GeoNames cities dump (cities1000.txt and
// friends) into a map spec: the cities of one country, capitals first,
// then by population.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"atlasgo/pkg/model"
)

// GeoNames column indexes.
const (
	colID         = 0
	colName       = 1
	colLat        = 4
	colLon        = 5
	colFeature    = 7
	colCountry    = 8
	colAdmin1     = 10
	colPopulation = 14
	minColumns    = 19
)

type options struct {
	country   string
	admin     string
	minPop    int
	limit     int
	title     string
	regions   bool
	noCapital bool
}

// city is one GeoNames row we keep.
type city struct {
	model.City
	Admin1     string
	Population int
}

func main() {
	citiesPath := flag.String("cities", "data/cities1000.txt", "Path to a GeoNames cities file")
	outPath := flag.String("out", "", "Output map spec JSON (default stdout)")

	var opts options
	flag.StringVar(&opts.country, "country", "US", "ISO country code to keep")
	flag.StringVar(&opts.admin, "admin", "", "Comma-separated admin1 codes to keep (default all)")
	flag.IntVar(&opts.minPop, "min-pop", 100000, "Minimum population of non-capital cities")
	flag.IntVar(&opts.limit, "limit", 0, "Maximum number of non-capital cities (0 keeps all)")
	flag.StringVar(&opts.title, "title", "", "Map title")
	flag.BoolVar(&opts.regions, "regions", false, "Label the admin1 regions the kept cities fall in")
	flag.BoolVar(&opts.noCapital, "no-capitals", false, "Treat capitals like any other city")
	flag.Parse()

	f, err := os.Open(*citiesPath)
	if err != nil {
		log.Fatalf("Failed to open cities: %v", err)
	}
	defer f.Close()

	log.Println("Loading Cities...")
	spec, err := buildSpec(f, opts)
	if err != nil {
		log.Fatalf("Failed to load cities: %v", err)
	}
	log.Printf("Kept %d cities", len(spec.Cities))

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal spec: %v", err)
	}
	data = append(data, '\n')
	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write spec: %v", err)
	}
}

func buildSpec(r io.Reader, opts options) (*model.MapSpec, error) {
	cities, err := loadCities(r, opts)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(cities, func(i, j int) bool {
		if cities[i].Capital != cities[j].Capital {
			return cities[i].Capital
		}
		return cities[i].Population > cities[j].Population
	})

	spec := &model.MapSpec{Title: opts.title, Cities: []model.City{}}
	seen := make(map[string]bool)
	others := 0
	for _, c := range cities {
		if !c.Capital {
			if c.Population < opts.minPop || (opts.limit > 0 && others >= opts.limit) {
				continue
			}
			others++
		}
		spec.Cities = append(spec.Cities, c.City)
		if opts.regions && c.Admin1 != "" && !seen[c.Admin1] {
			seen[c.Admin1] = true
			spec.Regions = append(spec.Regions, c.Admin1)
		}
	}
	sort.Strings(spec.Regions)

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func loadCities(r io.Reader, opts options) ([]city, error) {
	admin := make(map[string]bool)
	for _, a := range strings.Split(opts.admin, ",") {
		if a = strings.TrimSpace(a); a != "" {
			admin[a] = true
		}
	}

	var out []city
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < minColumns {
			continue
		}
		if opts.country != "" && parts[colCountry] != opts.country {
			continue
		}
		if len(admin) > 0 && !admin[parts[colAdmin1]] {
			continue
		}

		lat, errLat := strconv.ParseFloat(parts[colLat], 64)
		lon, errLon := strconv.ParseFloat(parts[colLon], 64)
		if errLat != nil || errLon != nil {
			continue
		}
		pop, _ := strconv.Atoi(parts[colPopulation])

		out = append(out, city{
			City: model.City{
				ID:      parts[colID],
				Name:    parts[colName],
				Lat:     lat,
				Lon:     lon,
				Capital: !opts.noCapital && isCapital(parts[colFeature]),
			},
			Admin1:     parts[colAdmin1],
			Population: pop,
		})
	}
	return out, scanner.Err()
}

// isCapital reports whether a GeoNames feature code marks the seat of a
// country or a first-order division.
func isCapital(code string) bool {
	switch code {
	case "PPLC", "PPLA":
		return true
	}
	return false
}
