// Command layersnap builds random point layers and writes PNG snapshots
// of the primary, onion-skin and 3D views.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
	"delaunay-layers/internal/stitch"
	"delaunay-layers/internal/version"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/geometry"
)

func main() {
	out := flag.String("out", ".", "Output directory")
	width := flag.Int("w", 0, "Canvas width (default from settings)")
	height := flag.Int("h", 0, "Canvas height (default from settings)")
	layers := flag.Int("layers", 3, "Number of layers")
	points := flag.Int("points", 12, "Points per layer")
	spacing := flag.Float64("spacing", 4, "Elevation step between layers")
	seed := flag.Int64("seed", 1, "Random seed")
	configPath := flag.String("config", "", "Settings file (TOML)")
	saveConfig := flag.String("save-config", "", "Write the effective settings to this file and exit")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	app.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Canvas.Width = *width
	}
	if *height > 0 {
		cfg.Canvas.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}
	if *saveConfig != "" {
		if err := config.Save(*saveConfig, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save settings: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings written to %s\n", *saveConfig)
		return
	}
	if *layers < 1 || *points < 0 {
		fmt.Println("Usage: layersnap [-out dir] [-w 1024] [-h 768] [-layers 3] [-points 12] [-seed 1] [-config file] [-v]")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	bounds := geometry.NewRect(0, 0, float64(cfg.Canvas.Width), float64(cfg.Canvas.Height))
	store := populate(rng, *layers, *points, *spacing, bounds)
	store.SetOnionDepth(cfg.Onion.Depth)

	fmt.Printf("layersnap %s\n", version.String())
	fmt.Printf("Canvas: %dx%d, %d layers x %d points (seed %d)\n",
		cfg.Canvas.Width, cfg.Canvas.Height, *layers, *points, *seed)

	opts := cfg.ViewOptions()
	mesh := opts.Lifter.Build(store.Layers(), bounds.Width, bounds.Height)
	printMesh(mesh)

	paths, err := views.Export(store, opts, *out, cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Printf("Wrote %s\n", p)
	}
}

// populate builds a store with n layers of random points, stacked by
// spacing, with the bottom layer active.
func populate(rng *rand.Rand, n, points int, spacing float64, bounds geometry.Rect) *app.Store {
	layers := make([]app.Layer, n)
	for i := range layers {
		layers[i] = app.Layer{
			Name:          fmt.Sprintf("Layer %d", i+1),
			ZHeight:       float64(i) * spacing,
			Points:        geometry.RandomPoints(rng, points, bounds, 20),
			DraggingPoint: app.NoPoint,
		}
	}
	store := app.NewStore()
	store.ReplaceLayers(layers)
	return store
}

func printMesh(mesh stitch.Mesh) {
	fmt.Printf("\nMesh:\n")
	for _, l := range mesh.Layers {
		fmt.Printf("  %-12s %3d vertices %3d edges\n", l.Name, len(l.Vertices), len(l.Edges))
	}
	for _, f := range mesh.Failures {
		fmt.Printf("  %-12s skipped: %v\n", f.Name, f.Err)
	}
	fmt.Printf("  stitches: %d\n\n", mesh.StitchCount())
}
