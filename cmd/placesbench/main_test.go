// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/placesbench/internal/config"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/perf"
	"github.com/gogpu/placesbench/places"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Points = 50
	cfg.Frames = 3
	cfg.Window = 4
	cfg.Width = 200
	cfg.Height = 160
	cfg.Headless = true
	return cfg
}

func TestRunHeadless(t *testing.T) {
	faces, err := places.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	defer func() { _ = faces.Close() }()

	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Output = filepath.Join(dir, "last.png")
	cfg.Report = filepath.Join(dir, "run.json")

	var out bytes.Buffer
	points := perf.MakePoints(cfg.Points, cfg.Seed)
	report, err := runHeadless(cfg, faces, points, &out)
	if err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(perf.Modes) {
		t.Fatalf("printed %d lines, want %d: %q", len(lines), len(perf.Modes), out.String())
	}
	for i, m := range perf.Modes {
		if !strings.HasPrefix(lines[i], m.String()+": avg ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], m.String()+": avg ")
		}
		st, ok := report.Stats(m)
		if !ok {
			t.Fatalf("no stats for %v", m)
		}
		if st.Frames != cfg.Frames {
			t.Errorf("%v frames = %d, want %d", m, st.Frames, cfg.Frames)
		}
		if st.Markers < 0 {
			t.Errorf("%v markers = %d, want a count from the overlay", m, st.Markers)
		}

		png := snapshotPath(cfg.Output, m)
		if fi, err := os.Stat(png); err != nil || fi.Size() == 0 {
			t.Errorf("snapshot %s missing or empty: %v", png, err)
		}
	}

	data, err := os.ReadFile(cfg.Report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded perf.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.RunID != report.RunID || decoded.Points != cfg.Points {
		t.Errorf("decoded report = %+v, want run %s with %d points", decoded, report.RunID, cfg.Points)
	}
}

func TestRunHeadlessStartMode(t *testing.T) {
	faces, err := places.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	defer func() { _ = faces.Close() }()

	cfg := testConfig(t)
	cfg.Mode = perf.Grouped.String()
	var out bytes.Buffer
	report, err := runHeadless(cfg, faces, perf.MakePoints(cfg.Points, cfg.Seed), &out)
	if err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if len(report.Modes) != 2 || report.Modes[0].Mode != "GroupedPlaces" || report.Modes[1].Mode != "Places" {
		t.Errorf("modes = %+v, want GroupedPlaces then Places", report.Modes)
	}
	if !strings.HasPrefix(out.String(), "GroupedPlaces: avg ") {
		t.Errorf("output = %q, want GroupedPlaces first", out.String())
	}
}

func TestRunHeadlessInvalidZoom(t *testing.T) {
	faces, err := places.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	defer func() { _ = faces.Close() }()

	cfg := testConfig(t)
	cfg.Zoom = 99
	if _, err := runHeadless(cfg, faces, perf.MakePoints(cfg.Points, cfg.Seed), &bytes.Buffer{}); err == nil {
		t.Fatal("expected zoom error")
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--help"}, &stdout, &stderr); err != nil {
		t.Fatalf("run --help: %v", err)
	}
	if !strings.Contains(stderr.String(), "--points") {
		t.Errorf("usage does not list --points:\n%s", stderr.String())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--window", "0", "--headless"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for an empty rolling window")
	}
}

func TestSnapshotPath(t *testing.T) {
	tests := []struct {
		prefix string
		mode   perf.Mode
		want   string
	}{
		{"last.png", perf.Ungrouped, "last-places.png"},
		{"out/run", perf.Grouped, "out/run-groupedplaces.png"},
	}
	for _, tt := range tests {
		if got := snapshotPath(tt.prefix, tt.mode); got != tt.want {
			t.Errorf("snapshotPath(%q, %v) = %q, want %q", tt.prefix, tt.mode, got, tt.want)
		}
	}
}

func TestInputLatchAltHeld(t *testing.T) {
	var l inputLatch

	if in := l.take(); in != (perf.Input{}) {
		t.Fatalf("empty latch = %+v", in)
	}

	l.keyPress(gpucontext.KeyLeftAlt, gpucontext.ModAlt)
	for frame := range 3 {
		if in := l.take(); !in.ContinuousHeld {
			t.Errorf("frame %d while Alt is held: ContinuousHeld = false", frame)
		}
	}

	l.keyRelease(gpucontext.KeyLeftAlt, 0)
	for frame := range 3 {
		if in := l.take(); in.ContinuousHeld {
			t.Errorf("frame %d after Alt release: ContinuousHeld = true", frame)
		}
	}

	// A key reported with the Alt modifier also holds it, until the
	// right Alt key is released.
	l.keyPress(gpucontext.KeySpace, gpucontext.ModAlt)
	if in := l.take(); !in.ContinuousHeld || !in.TogglePressed {
		t.Errorf("after Alt+Space: %+v", in)
	}
	l.keyRelease(gpucontext.KeySpace, gpucontext.ModAlt)
	if in := l.take(); !in.ContinuousHeld {
		t.Error("releasing Space must not end continuous repaint")
	}
	l.keyRelease(gpucontext.KeyRightAlt, 0)
	if in := l.take(); in.ContinuousHeld {
		t.Error("releasing right Alt must end continuous repaint")
	}
}

func TestInputLatchKeys(t *testing.T) {
	var l inputLatch

	l.keyPress(gpucontext.KeySpace, 0)
	in := l.take()
	if !in.TogglePressed || in.ResetPressed || in.ContinuousHeld {
		t.Errorf("after Space: %+v", in)
	}
	if in := l.take(); in.TogglePressed {
		t.Error("toggle must fire once")
	}

	l.keyPress(gpucontext.KeyR, 0)
	l.keyPress(gpucontext.KeyEqual, 0)
	l.keyPress(gpucontext.KeyEqual, 0)
	l.keyPress(gpucontext.KeyMinus, 0)
	l.keyPress(gpucontext.KeyHome, 0)
	in = l.take()
	if !in.ResetPressed || in.Zoom != 1 || !in.Recenter {
		t.Errorf("after R, +, +, -, Home: %+v", in)
	}
	if in := l.take(); in != (perf.Input{}) {
		t.Errorf("one-shot input repeated: %+v", in)
	}
}

func TestInputLatchScroll(t *testing.T) {
	var l inputLatch

	l.scrolled(0, -0.5)
	if in := l.take(); in.Zoom != 0 {
		t.Errorf("half a notch zoomed %d steps", in.Zoom)
	}
	l.scrolled(0, -0.5)
	if in := l.take(); in.Zoom != 1 {
		t.Errorf("scroll up: Zoom = %d, want 1", in.Zoom)
	}
	l.scrolled(0, 2)
	if in := l.take(); in.Zoom != -2 {
		t.Errorf("scroll down two notches: Zoom = %d, want -2", in.Zoom)
	}
}

func TestInputLatchDrag(t *testing.T) {
	var l inputLatch
	l.setMapRect(mapview.Rect{Y: 64, W: 400, H: 300})

	// Presses over the top bar do not start a drag.
	l.mousePress(gpucontext.MouseButtonLeft, 10, 10)
	l.mouseMove(50, 30)
	if in := l.take(); in.DragX != 0 || in.DragY != 0 {
		t.Errorf("drag from the top bar: %+v", in)
	}
	l.mouseRelease(gpucontext.MouseButtonLeft, 50, 30)

	l.mousePress(gpucontext.MouseButtonLeft, 100, 100)
	l.mouseMove(110, 95)
	l.mouseMove(130, 90)
	if in := l.take(); in.DragX != 30 || in.DragY != -10 {
		t.Errorf("drag = (%g, %g), want (30, -10)", in.DragX, in.DragY)
	}
	l.mouseMove(135, 90)
	if in := l.take(); in.DragX != 5 {
		t.Errorf("second frame drag = %g, want 5", in.DragX)
	}

	l.mouseRelease(gpucontext.MouseButtonLeft, 135, 90)
	l.mouseMove(200, 200)
	if in := l.take(); in.DragX != 0 || in.DragY != 0 {
		t.Errorf("move after release dragged: %+v", in)
	}
}
