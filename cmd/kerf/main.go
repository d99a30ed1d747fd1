// Command kerf reorders the entities of a 2D DXF drawing into an
// efficient cutting sequence: contours are assembled from loose
// entities, nested contours are cut inside-out, and the tour between
// contours follows a greedy nearest-neighbor walk from the travel
// origin.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbeda/geom"

	"github.com/chazu/kerf/pkg/contour"
	"github.com/chazu/kerf/pkg/drawing/dxf"
	"github.com/chazu/kerf/pkg/geometry"
	"github.com/chazu/kerf/pkg/nesting"
	"github.com/chazu/kerf/pkg/planner"
	"github.com/chazu/kerf/pkg/preview"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("kerf failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("kerf", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: kerf [flags] input.dxf\n\n")
		fs.PrintDefaults()
	}

	var (
		tolerance   = fs.Float64("tolerance", contour.DefaultTolerance, "endpoint coincidence distance")
		startFlag   = fs.String("start", "0,0", "travel origin as x,y")
		output      = fs.String("o", "", "output path (default: input base name + suffix)")
		previewPath = fs.String("preview", "", "write an SVG preview of the tour to this path")
		configPath  = fs.String("config", "", "TOML config file")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return err
		}
	}

	// Flags set on the command line override the config file.
	if flagSet(fs, "tolerance") {
		cfg.Tolerance = *tolerance
	}
	start := geom.Coord{X: cfg.Start[0], Y: cfg.Start[1]}
	if flagSet(fs, "start") || *configPath == "" {
		p, err := parsePoint(*startFlag)
		if err != nil {
			return err
		}
		start = p
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}

	outPath := *output
	if outPath == "" {
		outPath = derivedOutputPath(input, cfg.OutputSuffix)
	}

	steps, entities, err := reorder(input, cfg.Tolerance, start)
	if err != nil {
		return err
	}

	// Encode fully in memory first so a failure never leaves a partial
	// output file behind.
	var buf bytes.Buffer
	if err := dxf.NewWriter().Write(&buf, entities); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	slog.Info("wrote reordered drawing",
		"path", outPath,
		"contours", len(steps),
		"entities", len(entities))

	if *previewPath != "" {
		if err := writePreview(*previewPath, steps, start); err != nil {
			return err
		}
		slog.Info("wrote preview", "path", *previewPath)
	}
	return nil
}

// reorder runs the pipeline: read, chain into contours, build the
// nesting forest, plan the tour, and flatten the plan back into an
// entity sequence.
func reorder(input string, tolerance float64, start geom.Coord) ([]planner.Step, []geometry.Entity, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", input, err)
	}
	defer f.Close()

	raw, err := dxf.NewReader().Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", input, err)
	}
	slog.Debug("parsed drawing", "entities", len(raw))

	contours, err := contour.Build(raw, tolerance)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("assembled contours", "count", len(contours))

	forest, err := nesting.Build(contours, tolerance)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("built nesting forest", "roots", len(forest.Roots), "depth", forest.MaxDepth())

	// Baseline for the travel report: contours cut in input order, each
	// entered at its first entity's start point.
	baseline := make([]planner.Step, len(contours))
	for i, c := range contours {
		baseline[i] = planner.Step{Contour: c, Entry: c.Entities()[0].Start()}
	}

	steps := planner.Plan(forest, start)
	slog.Info("planned tour",
		"travel", fmt.Sprintf("%.3f", planner.TravelDistance(steps, start)),
		"input_order_travel", fmt.Sprintf("%.3f", planner.TravelDistance(baseline, start)))

	var out []geometry.Entity
	for _, s := range steps {
		out = append(out, planner.Traverse(s)...)
	}
	return steps, out, nil
}

func writePreview(path string, steps []planner.Step, start geom.Coord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview %s: %w", path, err)
	}
	if err := preview.Render(f, steps, start); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parsePoint parses "x,y" into a coordinate.
func parsePoint(s string) (geom.Coord, error) {
	var p geom.Coord
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f,%f", &p.X, &p.Y); err != nil {
		return geom.Coord{}, fmt.Errorf("invalid point %q, want x,y: %w", s, err)
	}
	return p, nil
}

// derivedOutputPath appends suffix to the input base name, keeping the
// extension: parts.dxf -> parts_sorted.dxf.
func derivedOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
