// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import "time"

// DefaultWindow is the number of frames averaged.
const DefaultWindow = 120

// RollingAvg is the mean of the most recent samples, kept in a fixed-size
// ring buffer. Once full, each Push overwrites the oldest sample.
//
// RollingAvg is not safe for concurrent use.
type RollingAvg struct {
	buf []float64
	i   int // next write position
	n   int // valid samples, at most len(buf)
}

// NewRollingAvg returns an empty average over the last capacity samples.
// It panics if capacity < 1.
func NewRollingAvg(capacity int) *RollingAvg {
	if capacity < 1 {
		panic("perf: rolling average capacity must be at least 1")
	}
	return &RollingAvg{buf: make([]float64, capacity)}
}

// Push adds a sample in milliseconds.
func (a *RollingAvg) Push(ms float64) {
	a.buf[a.i] = ms
	a.i = (a.i + 1) % len(a.buf)
	if a.n < len(a.buf) {
		a.n++
	}
}

// PushDuration adds d as a sample in milliseconds.
func (a *RollingAvg) PushDuration(d time.Duration) {
	a.Push(float64(d) / float64(time.Millisecond))
}

// Mean returns the average of the held samples. The divisor is
// max(Len(), 1), so an empty average reports 0.
func (a *RollingAvg) Mean() float64 {
	n := max(a.n, 1)
	var sum float64
	for _, v := range a.buf[:n] {
		sum += v
	}
	return sum / float64(n)
}

// Reset discards all samples.
func (a *RollingAvg) Reset() {
	a.i = 0
	a.n = 0
	clear(a.buf)
}

// Len returns the number of held samples.
func (a *RollingAvg) Len() int {
	return a.n
}

// Cap returns the window size.
func (a *RollingAvg) Cap() int {
	return len(a.buf)
}
