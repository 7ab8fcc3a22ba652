// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command placesbench compares the frame cost of drawing ~2,000 map markers
// one by one (Places) against merging nearby markers into bubbles
// (GroupedPlaces).
//
// Interactive mode opens a window:
//
//	placesbench
//
//	Space        toggle Places / GroupedPlaces (resets the average)
//	R            reset the average
//	hold Alt     continuous repaint while held, otherwise one frame per 16 ms
//	drag         pan the map
//	wheel, +/-   zoom
//	Home         recenter on Paris
//
// Headless mode draws offscreen and prints the rolling average of each
// overlay:
//
//	placesbench --headless --frames 600 --report run.json --output last.png
//
// --mode picks the overlay measured first, --throttle the delay between
// frames without Alt and --group-radius the GroupedPlaces merge distance.
//
// Every flag can also be set through a PLACESBENCH_* environment variable
// (PLACESBENCH_LOG_LEVEL=debug) or a config file (--config bench.yaml).
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/internal/config"
	"github.com/gogpu/placesbench/perf"
	"github.com/gogpu/placesbench/places"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := config.Flags("placesbench")
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	placesbench.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	faces, err := places.NewFaces()
	if err != nil {
		return err
	}
	defer func() { _ = faces.Close() }()

	// Generated once; both overlays draw this exact slice.
	points := perf.MakePoints(cfg.Points, cfg.Seed)
	placesbench.Logger().Info("placesbench: points generated",
		"count", len(points), "seed", cfg.Seed, "bounds", perf.DefaultBounds.String())

	if cfg.Headless {
		if _, err := runHeadless(cfg, faces, points, stdout); err != nil {
			return fmt.Errorf("headless run: %w", err)
		}
		return nil
	}
	return runWindow(cfg, faces, points)
}
