// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

// ModeStats summarises the frames measured in one mode.
type ModeStats struct {
	Mode   string  `json:"mode"`
	Frames int     `json:"frames"`
	MeanMS float64 `json:"mean_ms"`
	MinMS  float64 `json:"min_ms"`
	MaxMS  float64 `json:"max_ms"`
	// RollingMS is the rolling average shown in the overlay on the last
	// frame of the mode.
	RollingMS float64 `json:"rolling_ms"`
	// Markers is how many markers the last frame of the mode painted.
	Markers int `json:"markers"`

	sumMS float64
}

// Report is the summary of a headless run.
type Report struct {
	RunID   string      `json:"run_id"`
	Started time.Time   `json:"started"`
	Points  int         `json:"points"`
	Seed    uint64      `json:"seed"`
	Window  int         `json:"window"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Modes   []ModeStats `json:"modes"`
}

// NewReport starts a report for a run with a fresh run ID.
func NewReport(points int, seed uint64, window, width, height int) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Points:  points,
		Seed:    seed,
		Window:  window,
		Width:   width,
		Height:  height,
	}
}

// Record adds a measured frame.
func (r *Report) Record(res FrameResult) {
	ms := float64(res.Sample) / float64(time.Millisecond)
	st := r.stats(res.Mode)
	st.Frames++
	st.sumMS += ms
	st.MeanMS = st.sumMS / float64(st.Frames)
	st.MinMS = math.Min(st.MinMS, ms)
	st.MaxMS = math.Max(st.MaxMS, ms)
	st.RollingMS = res.Mean
	st.Markers = res.Markers
}

// Stats returns the summary for mode m.
func (r *Report) Stats(m Mode) (ModeStats, bool) {
	for _, st := range r.Modes {
		if st.Mode == m.String() {
			return st, true
		}
	}
	return ModeStats{}, false
}

func (r *Report) stats(m Mode) *ModeStats {
	for i := range r.Modes {
		if r.Modes[i].Mode == m.String() {
			return &r.Modes[i]
		}
	}
	r.Modes = append(r.Modes, ModeStats{
		Mode:  m.String(),
		MinMS: math.Inf(1),
		MaxMS: math.Inf(-1),
	})
	return &r.Modes[len(r.Modes)-1]
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("perf: encode report: %w", err)
	}
	return nil
}
