// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/internal/config"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/perf"
	"github.com/gogpu/placesbench/places"
)

// runHeadless draws cfg.Frames frames of every mode into an offscreen
// context, starting with cfg.Mode, prints the final rolling average of
// each mode to out and writes the optional PNG snapshots and JSON report.
func runHeadless(cfg config.Config, faces *places.Faces, points []places.LabeledSymbol, out io.Writer) (*perf.Report, error) {
	logger := placesbench.Logger()

	dc := gg.NewContext(cfg.Width, cfg.Height)
	defer func() { _ = dc.Close() }()
	rect := mapview.Rect{W: float64(cfg.Width), H: float64(cfg.Height)}

	driver := perf.NewDriver(faces, cfg.DriverOptions()...)
	state := perf.NewState(points, cfg.Window)
	state.Mode = cfg.StartMode()
	modes := []perf.Mode{state.Mode, state.Mode.Toggle()}
	if err := state.Memory.SetZoom(cfg.Zoom); err != nil {
		return nil, fmt.Errorf("zoom %g: %w", cfg.Zoom, err)
	}
	report := perf.NewReport(len(points), cfg.Seed, cfg.Window, cfg.Width, cfg.Height)
	logger.Info("headless: run started", "run_id", report.RunID, "frames", cfg.Frames, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	for mi, m := range modes {
		for i := 0; i < cfg.Frames; i++ {
			// The last frame of a mode switches to the next one.
			in := perf.Input{
				ContinuousHeld: true,
				TogglePressed:  i == cfg.Frames-1 && mi < len(modes)-1,
			}
			dc.ClearWithColor(gg.White)

			var res perf.FrameResult
			state, res = driver.Frame(state, in, dc, rect)
			report.Record(res)
		}

		st, _ := report.Stats(m)
		logger.Info("headless: mode done", "mode", m, "frames", st.Frames, "markers", st.Markers,
			"rolling_ms", st.RollingMS, "mean_ms", st.MeanMS, "min_ms", st.MinMS, "max_ms", st.MaxMS)
		if _, err := fmt.Fprintln(out, perf.OverlayText(m, st.RollingMS)); err != nil {
			return nil, err
		}

		if cfg.Output != "" {
			path := snapshotPath(cfg.Output, m)
			if err := dc.SavePNG(path); err != nil {
				return nil, fmt.Errorf("save %s: %w", path, err)
			}
			logger.Info("headless: snapshot saved", "path", path)
		}
	}

	logger.Debug("headless: label cache", "stats", fmt.Sprintf("%+v", faces.CacheStats()))

	if cfg.Report != "" {
		if err := writeReport(cfg.Report, report); err != nil {
			return nil, err
		}
		logger.Info("headless: report written", "path", cfg.Report)
	}
	return report, nil
}

// snapshotPath turns "out/last.png" into "out/last-places.png".
func snapshotPath(prefix string, m perf.Mode) string {
	return fmt.Sprintf("%s-%s.png", strings.TrimSuffix(prefix, ".png"), strings.ToLower(m.String()))
}

func writeReport(path string, r *perf.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()
	return r.WriteJSON(f)
}
