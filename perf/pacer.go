// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import "time"

// Pacer turns Repaint requests into draw decisions for hosts that call
// back at a fixed rate (for example every VSync).
type Pacer struct {
	last    time.Time
	started bool
	pending Repaint
}

// Request records the repaint policy returned by the last frame.
func (p *Pacer) Request(r Repaint) {
	p.pending = r
}

// Due reports whether a frame should be drawn at now. The first call is
// always due; afterwards a frame is due immediately under continuous
// repaint, or once the requested delay has passed since the last drawn
// frame.
func (p *Pacer) Due(now time.Time) bool {
	if !p.started || p.pending.Continuous || now.Sub(p.last) >= p.pending.After {
		return true
	}
	return false
}

// Mark records that a frame was drawn at now.
func (p *Pacer) Mark(now time.Time) {
	p.last = now
	p.started = true
}

// Continuous reports whether the last request asked for continuous repaint.
func (p *Pacer) Continuous() bool {
	return p.pending.Continuous
}
