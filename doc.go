// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package placesbench measures the frame cost of drawing map markers with
// gg, comparing a flat overlay of labeled markers against an overlay that
// groups nearby markers into bubbles.
//
// # Overview
//
// The benchmark draws the same ~2,000 seeded points around Paris every
// frame with one of two overlays and keeps a rolling average of the time
// spent drawing the map:
//
//   - Places: every visible marker is drawn with its glyph and label
//   - GroupedPlaces: markers closer than a pixel radius are merged into a
//     single bubble showing the member count
//
// # Packages
//
//   - geo: lon/lat positions, bounds and the Web Mercator projector
//   - mapview: map camera, map widget and the Plugin contract
//   - places: the two marker overlays
//   - perf: point generator, rolling average and the per-frame driver
//   - cmd/placesbench: interactive window and headless runner
//
// # Controls
//
// In the interactive window, Space toggles between the two overlays and
// resets the average and R resets the average. While Alt is held the map
// repaints continuously; otherwise a frame is drawn every 16 ms. Dragging
// pans the map, the wheel or +/- zooms, and Home recenters on Paris.
//
// # Logging
//
// Nothing is logged by default. Use [SetLogger] to enable output:
//
//	placesbench.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
package placesbench

// Version is the current version of placesbench.
const Version = "0.1.0"
