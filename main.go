// Package main provides the entry point for the Delaunay Layers editor.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
	"delaunay-layers/internal/version"
	"delaunay-layers/ui/mainwindow"
	"delaunay-layers/ui/prefs"
)

const (
	appID    = "io.github.delaunay-layers"
	appTitle = "Delaunay Layers"
)

func main() {
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	app.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Printf("Settings: %v, using defaults", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Settings: %v", err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.LayersTheme{})

	win := mainwindow.New(fyneApp, app.NewStore(), prefs.Load(), cfg)
	win.SetTitle(appTitle)
	win.ShowAndRun()
}
