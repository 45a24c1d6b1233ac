package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"atlasgo/pkg/config"
	"atlasgo/pkg/db"
	"atlasgo/pkg/geo"
	"atlasgo/pkg/logging"
	"atlasgo/pkg/map/labels"
	"atlasgo/pkg/model"
	"atlasgo/pkg/render"
	"atlasgo/pkg/store"
	"atlasgo/pkg/textmetrics"
	"atlasgo/pkg/version"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "configs/atlasgo.yaml"

type options struct {
	configPath  string
	specPath    string
	regionsPath string
	outPath     string
	strategy    string
	listRuns    int
	showRun     string
}

func main() {
	// Environment from .env, if present; real environment wins.
	_ = godotenv.Load()

	configDefault := defaultConfigPath
	if p := os.Getenv("ATLASGO_CONFIG"); p != "" {
		configDefault = p
	}

	var opts options
	flag.StringVar(&opts.configPath, "config", configDefault, "Path to the YAML config file")
	flag.StringVar(&opts.specPath, "spec", "", "Path to the map spec JSON")
	flag.StringVar(&opts.regionsPath, "regions", "", "Path to the region GeoJSON or shapefile (.shp)")
	flag.StringVar(&opts.outPath, "out", "", "Path of the layout JSON (default stdout)")
	flag.StringVar(&opts.strategy, "strategy", "", "Override the placement strategy (scoring, anneal)")
	flag.IntVar(&opts.listRuns, "list-runs", 0, "List the N most recent archived runs and exit")
	flag.StringVar(&opts.showRun, "show-run", "", "Print the archived layout of a run and exit")
	initConfig := flag.Bool("init-config", false, "Generate default config file and exit")
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Config file generated: %s\n", opts.configPath)
		return
	}

	if opts.listRuns > 0 || opts.showRun != "" {
		if err := history(opts, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.specPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer) error {
	appCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.strategy != "" {
		appCfg.Placement.Strategy = opts.strategy
		if err := appCfg.Validate(); err != nil {
			return err
		}
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	runID := uuid.New().String()
	logger := slog.Default().With("run", runID)
	logger.Info("atlasgo started", "version", version.Version, "strategy", appCfg.Placement.Strategy)

	data, err := os.ReadFile(opts.specPath)
	if err != nil {
		return fmt.Errorf("failed to read map spec: %w", err)
	}
	spec, err := model.ParseMapSpec(data)
	if err != nil {
		return err
	}

	var regions []geo.Region
	if opts.regionsPath != "" {
		regions, err = geo.LoadRegions(opts.regionsPath)
		if err != nil {
			return err
		}
	}

	measurer, err := textmetrics.NewGoFontMeasurer()
	if err != nil {
		return err
	}

	scene, index, err := render.NewBuilder(appCfg.Render, measurer).Build(*spec, regions)
	if err != nil {
		return err
	}

	mgr, err := labels.NewManager(appCfg.Placement, index)
	if err != nil {
		return err
	}
	res, err := mgr.Layout(scene)
	if err != nil {
		return fmt.Errorf("failed to place labels: %w", err)
	}

	out := render.Layout(*spec, scene, res)
	out.RunID = runID

	logger.Info("Layout complete",
		"cities", len(out.CityLabels),
		"regions", len(out.RegionLabels),
		"dropped_capitals", len(out.Dropped),
		"unmapped_capitals", res.Resolution.Unmapped,
	)

	if appCfg.History.Path != "" {
		if err := archive(context.Background(), appCfg.History, out); err != nil {
			// The layout is still good; a broken archive must not cost the run.
			logger.Warn("Failed to archive layout", "path", appCfg.History.Path, "error", err)
		}
	}

	return writeLayout(out, opts.outPath, stdout)
}

func openStore(path string) (*store.SQLiteStore, *db.DB, error) {
	d, err := db.Init(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store.NewSQLiteStore(d), d, nil
}

// archive prunes expired runs and stores the finished layout.
func archive(ctx context.Context, cfg config.HistoryConfig, out *model.Layout) error {
	s, d, err := openStore(cfg.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.Retention > 0 {
		n, err := d.PruneRuns(time.Duration(cfg.Retention))
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		if n > 0 {
			slog.Debug("Pruned archived runs", "count", n)
		}
	}
	return s.SaveLayout(ctx, out)
}

// history serves the read-only archive flags.
func history(opts options, stdout io.Writer) error {
	appCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if appCfg.History.Path == "" {
		return fmt.Errorf("history is disabled in %s", opts.configPath)
	}

	s, _, err := openStore(appCfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	if opts.showRun != "" {
		l, err := s.GetLayout(ctx, opts.showRun)
		if err != nil {
			return err
		}
		return writeLayout(l, opts.outPath, stdout)
	}

	runs, err := s.ListRuns(ctx, opts.listRuns)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s  %s  %-8s seed=%d cities=%d regions=%d dropped=%d  %s\n",
			r.CreatedAt.Format(time.DateTime), r.ID, r.Strategy, r.Seed, r.CityLabels, r.RegionLabels, r.Dropped, r.Title)
	}
	return nil
}

func writeLayout(out *model.Layout, path string, stdout io.Writer) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}
