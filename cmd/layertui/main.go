// Command layertui is a keyboard-driven layer manager for the terminal.
// It edits the same layer store as the GUI and exports PNG snapshots.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
)

func main() {
	out := flag.String("out", "snapshots", "Export directory")
	configPath := flag.String("config", "", "Settings file (TOML)")
	logPath := flag.String("log", "", "Write logs to this file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		app.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		newModel(app.NewStore(), cfg, *out, *seed),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
