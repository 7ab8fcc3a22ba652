// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/internal/config"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/perf"
	"github.com/gogpu/placesbench/places"
)

// WindowTitle is the title of the interactive window.
const WindowTitle = "placesbench: GroupedPlaces vs Places"

// runWindow opens the benchmark window and blocks until it is closed.
//
// The app renders on demand. An animation token keeps OnDraw firing at
// VSync for the whole session and the pacer decides which callbacks draw a
// new frame; the others only present the last canvas again.
func runWindow(cfg config.Config, faces *places.Faces, points []places.LabeledSymbol) error {
	logger := placesbench.Logger()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(WindowTitle).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	driver := perf.NewDriver(faces, cfg.DriverOptions()...)
	state := perf.NewState(points, cfg.Window)
	state.Mode = cfg.StartMode()
	if err := state.Memory.SetZoom(cfg.Zoom); err != nil {
		return fmt.Errorf("zoom %g: %w", cfg.Zoom, err)
	}

	var (
		canvas    *ggcanvas.Canvas
		animToken *gogpu.AnimationToken
		input     inputLatch
		pacer     perf.Pacer
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if animToken == nil {
			logger.Info("window: backend ready", "backend", dc.Backend())
			animToken = app.StartAnimation()
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				logger.Warn("window: no GPU context provider yet")
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				log.Fatalf("window: create canvas: %v", err)
			}
			logger.Info("window: canvas created", "width", w, "height", h)
		}

		cw, ch := canvas.Size()
		if cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				logger.Warn("window: resize failed", "err", err)
			}
			cw, ch = w, h
			canvas.MarkDirty()
		}

		now := time.Now()
		if pacer.Due(now) {
			in := input.take()
			rect := mapview.Rect{W: float64(cw), H: float64(ch)}

			var res perf.FrameResult
			if err := canvas.Draw(func(cc *gg.Context) {
				cc.ClearWithColor(gg.White)
				state, res = driver.Frame(state, in, cc, rect)
			}); err != nil {
				logger.Warn("window: draw failed", "err", err)
			}
			pacer.Mark(now)
			pacer.Request(res.Repaint)
			input.setMapRect(res.Response.Rect)

			if state.Frames%uint64(cfg.Window) == 0 {
				logger.Debug("window: rolling average", "mode", res.Mode, "avg_ms", res.Mean,
					"markers", res.Markers, "zoom", state.Memory.Zoom())
			}
		}

		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			logger.Warn("window: present failed", "frame", state.Frames, "err", err)
		}
	})

	events := app.EventSource()
	events.OnKeyPress(input.keyPress)
	events.OnKeyRelease(input.keyRelease)
	events.OnScroll(input.scrolled)
	events.OnMousePress(input.mousePress)
	events.OnMouseMove(input.mouseMove)
	events.OnMouseRelease(input.mouseRelease)

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		if canvas != nil {
			_ = canvas.Close()
		}
		gg.CloseAccelerator()
		logger.Info("window: closed", "frames", state.Frames)
	})

	return app.Run()
}
