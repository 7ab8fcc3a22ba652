// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"math"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/perf"
)

// inputLatch collects window events between frames. Event callbacks may
// arrive from the windowing thread, so access is locked.
//
// Key presses and scroll are one-shot and cleared by take. Alt and the
// drag state follow press and release events.
type inputLatch struct {
	mu sync.Mutex

	in      perf.Input
	altHeld bool

	// scroll accumulates wheel movement until it adds up to whole steps.
	scroll float64

	// mapRect is where a drag may start.
	mapRect        mapview.Rect
	dragging       bool
	lastX, lastY   float64
	dragDX, dragDY float64
}

func isAlt(key gpucontext.Key) bool {
	return key == gpucontext.KeyLeftAlt || key == gpucontext.KeyRightAlt
}

// keyPress maps a key onto benchmark input: Space toggles the mode, R
// resets the average, +/- zoom and Home recenters the map. Alt, or any
// key reported with the Alt modifier, holds continuous repaint.
func (l *inputLatch) keyPress(key gpucontext.Key, mods gpucontext.Modifiers) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if isAlt(key) || mods.HasAlt() {
		l.altHeld = true
	}
	switch key {
	case gpucontext.KeySpace:
		l.in.TogglePressed = true
	case gpucontext.KeyR:
		l.in.ResetPressed = true
	case gpucontext.KeyEqual:
		l.in.Zoom++
	case gpucontext.KeyMinus:
		l.in.Zoom--
	case gpucontext.KeyHome:
		l.in.Recenter = true
	}
}

// keyRelease ends continuous repaint when Alt is let go.
func (l *inputLatch) keyRelease(key gpucontext.Key, _ gpucontext.Modifiers) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if isAlt(key) {
		l.altHeld = false
	}
}

// scrolled zooms one step per wheel notch. dy is positive downwards;
// scrolling up zooms in.
func (l *inputLatch) scrolled(_, dy float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scroll -= dy
	steps := math.Trunc(l.scroll)
	l.scroll -= steps
	l.in.Zoom += int(steps)
}

// mousePress starts a drag when the left button goes down over the map.
func (l *inputLatch) mousePress(button gpucontext.MouseButton, x, y float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if button != gpucontext.MouseButtonLeft || !l.mapRect.Contains(x, y) {
		return
	}
	l.dragging = true
	l.lastX, l.lastY = x, y
}

func (l *inputLatch) mouseMove(x, y float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dragging {
		return
	}
	l.dragDX += x - l.lastX
	l.dragDY += y - l.lastY
	l.lastX, l.lastY = x, y
}

func (l *inputLatch) mouseRelease(button gpucontext.MouseButton, _, _ float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if button == gpucontext.MouseButtonLeft {
		l.dragging = false
	}
}

// setMapRect records where the last frame drew the map.
func (l *inputLatch) setMapRect(r mapview.Rect) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mapRect = r
}

// take returns the input collected since the previous call.
func (l *inputLatch) take() perf.Input {
	l.mu.Lock()
	defer l.mu.Unlock()

	in := l.in
	in.ContinuousHeld = l.altHeld
	in.DragX, in.DragY = l.dragDX, l.dragDY
	l.in = perf.Input{}
	l.dragDX, l.dragDY = 0, 0
	return in
}
