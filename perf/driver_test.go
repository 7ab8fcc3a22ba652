// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench/geo"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/places"
)

func newTestFaces(t testing.TB) *places.Faces {
	t.Helper()
	faces, err := places.NewFaces()
	if err != nil {
		t.Fatalf("NewFaces() error: %v", err)
	}
	t.Cleanup(func() { _ = faces.Close() })
	return faces
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

// recordingStrategy notes which points each call received.
func recordingStrategy(calls *[][]places.LabeledSymbol) Strategy {
	return func(points []places.LabeledSymbol) mapview.Plugin {
		*calls = append(*calls, points)
		return mapview.PluginFunc(func(*gg.Context, *geo.Projector) {})
	}
}

type driverFixture struct {
	driver    *Driver
	dc        *gg.Context
	rect      mapview.Rect
	ungrouped [][]places.LabeledSymbol
	grouped   [][]places.LabeledSymbol
}

func newDriverFixture(t *testing.T, opts ...DriverOption) *driverFixture {
	t.Helper()
	f := &driverFixture{
		dc:   gg.NewContext(320, 240),
		rect: mapview.Rect{W: 320, H: 240},
	}
	t.Cleanup(func() { _ = f.dc.Close() })

	opts = append([]DriverOption{
		WithClock(stepClock(2 * time.Millisecond)),
		WithStrategy(Ungrouped, recordingStrategy(&f.ungrouped)),
		WithStrategy(Grouped, recordingStrategy(&f.grouped)),
	}, opts...)
	f.driver = NewDriver(newTestFaces(t), opts...)
	return f
}

func TestFrameMeasuresCurrentMode(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(50, DefaultSeed), DefaultWindow)

	s, res := f.driver.Frame(s, Input{}, f.dc, f.rect)

	if res.Mode != Ungrouped {
		t.Errorf("measured mode = %v, want Places", res.Mode)
	}
	if res.Sample != 2*time.Millisecond {
		t.Errorf("Sample = %v, want 2ms", res.Sample)
	}
	if res.Mean != 2 || s.Avg.Len() != 1 {
		t.Errorf("Mean = %g with %d samples, want 2 with 1", res.Mean, s.Avg.Len())
	}
	if len(f.ungrouped) != 1 || len(f.grouped) != 0 {
		t.Errorf("strategy calls ungrouped=%d grouped=%d, want 1/0", len(f.ungrouped), len(f.grouped))
	}
	if s.Frames != 1 {
		t.Errorf("Frames = %d, want 1", s.Frames)
	}
}

func TestFrameOverlayLabel(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(10, DefaultSeed), DefaultWindow)

	_, res := f.driver.Frame(s, Input{}, f.dc, f.rect)
	if res.Label != "Places: avg 2.0 ms / frame" {
		t.Errorf("Label = %q", res.Label)
	}
}

func TestFrameToggleResetsAverage(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(10, DefaultSeed), DefaultWindow)

	for i := 0; i < 5; i++ {
		s, _ = f.driver.Frame(s, Input{}, f.dc, f.rect)
	}
	if s.Avg.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Avg.Len())
	}

	s, res := f.driver.Frame(s, Input{TogglePressed: true}, f.dc, f.rect)
	if !res.Toggled || res.Mode != Ungrouped {
		t.Errorf("toggle frame: Toggled=%v measured %v, want true and Places", res.Toggled, res.Mode)
	}
	if s.Mode != Grouped {
		t.Errorf("mode after toggle = %v, want GroupedPlaces", s.Mode)
	}
	if s.Avg.Mean() != NewRollingAvg(DefaultWindow).Mean() || s.Avg.Len() != 0 {
		t.Errorf("average after toggle: mean %g len %d, want fresh", s.Avg.Mean(), s.Avg.Len())
	}

	s, res = f.driver.Frame(s, Input{}, f.dc, f.rect)
	if res.Mode != Grouped || len(f.grouped) != 1 {
		t.Errorf("next frame measured %v with %d grouped calls", res.Mode, len(f.grouped))
	}
	if !strings.HasPrefix(res.Label, "GroupedPlaces: avg") {
		t.Errorf("Label = %q, want GroupedPlaces prefix", res.Label)
	}

	// Toggling back also resets.
	s, _ = f.driver.Frame(s, Input{TogglePressed: true}, f.dc, f.rect)
	if s.Mode != Ungrouped || s.Avg.Len() != 0 {
		t.Errorf("second toggle: mode %v len %d, want Places and 0", s.Mode, s.Avg.Len())
	}
}

func TestFrameBothModesSeeSamePoints(t *testing.T) {
	f := newDriverFixture(t)
	points := MakePoints(100, DefaultSeed)
	s := NewState(points, DefaultWindow)

	s, _ = f.driver.Frame(s, Input{TogglePressed: true}, f.dc, f.rect)
	f.driver.Frame(s, Input{}, f.dc, f.rect)

	if len(f.ungrouped) != 1 || len(f.grouped) != 1 {
		t.Fatalf("calls ungrouped=%d grouped=%d, want 1/1", len(f.ungrouped), len(f.grouped))
	}
	a, b := f.ungrouped[0], f.grouped[0]
	if len(a) != len(points) || &a[0] != &b[0] {
		t.Error("both modes should draw the same point slice")
	}
}

func TestFrameResetInput(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(10, DefaultSeed), 4)
	for i := 0; i < 3; i++ {
		s, _ = f.driver.Frame(s, Input{}, f.dc, f.rect)
	}

	s, res := f.driver.Frame(s, Input{ResetPressed: true}, f.dc, f.rect)
	// The reset happens before this frame is measured.
	if s.Avg.Len() != 1 || res.Mean != 2 {
		t.Errorf("after reset: len %d mean %g, want 1 and 2", s.Avg.Len(), res.Mean)
	}
	if s.Mode != Ungrouped {
		t.Errorf("reset changed mode to %v", s.Mode)
	}
}

func TestFrameRepaintPolicy(t *testing.T) {
	f := newDriverFixture(t, WithThrottle(20*time.Millisecond))
	s := NewState(MakePoints(10, DefaultSeed), DefaultWindow)

	s, res := f.driver.Frame(s, Input{}, f.dc, f.rect)
	if res.Repaint != (Repaint{After: 20 * time.Millisecond}) {
		t.Errorf("Repaint = %+v, want throttled 20ms", res.Repaint)
	}

	_, res = f.driver.Frame(s, Input{ContinuousHeld: true}, f.dc, f.rect)
	if !res.Repaint.Continuous {
		t.Errorf("Repaint = %+v, want continuous", res.Repaint)
	}
}

func TestFrameMapRectBelowTopBar(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(nil, DefaultWindow)

	_, res := f.driver.Frame(s, Input{}, f.dc, f.rect)
	want := mapview.Rect{Y: TopBarHeight, W: 320, H: 240 - TopBarHeight}
	if res.Response.Rect != want {
		t.Errorf("map rect = %+v, want %+v", res.Response.Rect, want)
	}

	f = newDriverFixture(t, WithTopBar(false))
	_, res = f.driver.Frame(s, Input{}, f.dc, f.rect)
	if res.Response.Rect != f.rect {
		t.Errorf("map rect without top bar = %+v, want %+v", res.Response.Rect, f.rect)
	}
}

func TestFrameZoomInput(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(10, DefaultSeed), DefaultWindow)

	_, before := f.driver.Frame(s, Input{}, f.dc, f.rect)
	s, after := f.driver.Frame(s, Input{Zoom: 2}, f.dc, f.rect)
	if got := after.Response.Projector.Zoom(); got != before.Response.Projector.Zoom()+2 {
		t.Errorf("zoom after 2 steps in = %g, want %g", got, before.Response.Projector.Zoom()+2)
	}

	s, res := f.driver.Frame(s, Input{Zoom: -1}, f.dc, f.rect)
	if got := res.Response.Projector.Zoom(); got != mapview.DefaultZoom+1 {
		t.Errorf("zoom after one step out = %g, want %d", got, mapview.DefaultZoom+1)
	}

	// Steps past the limit are dropped.
	_, res = f.driver.Frame(s, Input{Zoom: 100}, f.dc, f.rect)
	if got := res.Response.Projector.Zoom(); got != geo.MaxZoom {
		t.Errorf("zoom past the limit = %g, want %d", got, geo.MaxZoom)
	}
}

func TestFrameDragMovesMapWithPointer(t *testing.T) {
	f := newDriverFixture(t)
	s := NewState(MakePoints(10, DefaultSeed), DefaultWindow)

	_, before := f.driver.Frame(s, Input{}, f.dc, f.rect)
	x0, y0 := before.Response.Projector.Project(Paris)

	s, res := f.driver.Frame(s, Input{DragX: 30, DragY: -20}, f.dc, f.rect)
	x1, y1 := res.Response.Projector.Project(Paris)
	if math.Abs(x1-x0-30) > 1e-3 || math.Abs(y1-y0+20) > 1e-3 {
		t.Errorf("Paris moved by (%g, %g), want (30, -20)", x1-x0, y1-y0)
	}
	if !s.Memory.Detached() {
		t.Error("camera should be detached after a drag")
	}

	s, res = f.driver.Frame(s, Input{Recenter: true}, f.dc, f.rect)
	x2, y2 := res.Response.Projector.Project(Paris)
	if s.Memory.Detached() || math.Abs(x2-x0) > 1e-6 || math.Abs(y2-y0) > 1e-6 {
		t.Errorf("after recenter: detached %v, Paris at (%g, %g), want (%g, %g)", s.Memory.Detached(), x2, y2, x0, y0)
	}
}

func TestFrameMarkersUnknownForPlainPlugins(t *testing.T) {
	f := newDriverFixture(t)
	_, res := f.driver.Frame(NewState(nil, DefaultWindow), Input{}, f.dc, f.rect)
	if res.Markers != -1 {
		t.Errorf("Markers = %d, want -1", res.Markers)
	}
}

func TestHeadingGroupsThousands(t *testing.T) {
	d := NewDriver(newTestFaces(t))
	if got := d.Heading(2000); got != "Perf test • 2,000 places" {
		t.Errorf("Heading(2000) = %q", got)
	}
}

func TestFrameWithRealOverlays(t *testing.T) {
	faces := newTestFaces(t)
	d := NewDriver(faces)
	dc := gg.NewContext(400, 300)
	defer dc.Close()
	rect := mapview.Rect{W: 400, H: 300}

	s := NewState(MakePoints(200, DefaultSeed), DefaultWindow)
	for _, in := range []Input{{}, {TogglePressed: true}, {}} {
		var res FrameResult
		s, res = d.Frame(s, in, dc, rect)
		if res.Sample <= 0 {
			t.Errorf("%v frame sample = %v, want > 0", res.Mode, res.Sample)
		}
		if res.Markers <= 0 || res.Markers > 200 {
			t.Errorf("%v frame painted %d markers, want 1..200", res.Mode, res.Markers)
		}
	}
	if faces.CacheStats().Hits == 0 {
		t.Error("expected label extents to be reused across frames")
	}
}

func BenchmarkFrame(b *testing.B) {
	faces := newTestFaces(b)
	d := NewDriver(faces)
	dc := gg.NewContext(800, 600)
	defer dc.Close()
	rect := mapview.Rect{W: 800, H: 600}
	points := MakePoints(DefaultCount, DefaultSeed)

	for _, m := range Modes {
		b.Run(m.String(), func(b *testing.B) {
			s := NewState(points, DefaultWindow)
			s.Mode = m
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s, _ = d.Frame(s, Input{}, dc, rect)
			}
		})
	}
}
