// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/places"
)

const (
	// DefaultThrottle is the delay before the next frame when continuous
	// repaint is off.
	DefaultThrottle = 16 * time.Millisecond

	// TopBarHeight is the height of the header drawn above the map.
	TopBarHeight = 64

	// overlayInset offsets the average label from the map's corner.
	overlayInset = 8

	headingSize = 18
	bodySize    = 13
)

// Strategy builds the overlay drawn for one mode. It is called inside the
// timed region, so building the overlay counts towards the frame cost.
type Strategy func(points []places.LabeledSymbol) mapview.Plugin

// UngroupedStrategy draws points with places.Places.
func UngroupedStrategy(faces *places.Faces) Strategy {
	return func(points []places.LabeledSymbol) mapview.Plugin {
		return places.NewPlaces(points, faces)
	}
}

// GroupedStrategy draws points with places.GroupedPlaces and the default
// bubble style, merging places closer than radius pixels.
func GroupedStrategy(faces *places.Faces, radius float64) Strategy {
	return func(points []places.LabeledSymbol) mapview.Plugin {
		group := places.LabeledSymbolGroup{Style: places.DefaultLabeledSymbolGroupStyle()}
		return places.NewGroupedPlaces(points, group, faces).WithRadius(radius)
	}
}

// markerCounter is implemented by overlays that report how many markers
// they painted.
type markerCounter interface {
	Markers() int
}

// State is everything the benchmark keeps between frames. Frame takes a
// State and returns the next one. Memory and Avg are shared with the
// returned State.
type State struct {
	Memory *mapview.Memory
	Points []places.LabeledSymbol
	Mode   Mode
	Avg    *RollingAvg
	Frames uint64
}

// NewState returns the initial state: ungrouped mode, an empty average over
// window frames and a camera following Paris.
func NewState(points []places.LabeledSymbol, window int) State {
	return State{
		Memory: mapview.NewMemory(),
		Points: points,
		Mode:   Ungrouped,
		Avg:    NewRollingAvg(window),
	}
}

// Input is the user input collected since the previous frame.
type Input struct {
	// TogglePressed switches mode and resets the average.
	TogglePressed bool
	// ResetPressed resets the average before this frame is measured.
	ResetPressed bool
	// ContinuousHeld requests the next frame immediately.
	ContinuousHeld bool

	// Zoom is the number of zoom steps to apply; negative zooms out.
	Zoom int
	// DragX and DragY are the pointer drag since the previous frame in
	// pixels. The map moves with the pointer.
	DragX, DragY float64
	// Recenter returns the camera to Paris.
	Recenter bool
}

// Repaint tells the host when to draw the next frame.
type Repaint struct {
	Continuous bool
	After      time.Duration
}

// FrameResult describes one drawn frame.
type FrameResult struct {
	// Mode is the mode that was measured (before any toggle).
	Mode     Mode
	Sample   time.Duration
	Mean     float64
	Label    string
	Repaint  Repaint
	Response mapview.Response
	Toggled  bool
	// Markers is how many markers the overlay painted, or -1 when the
	// overlay does not report it.
	Markers int
}

// Driver draws and times benchmark frames.
type Driver struct {
	faces      *places.Faces
	strategies map[Mode]Strategy
	now        func() time.Time
	throttle   time.Duration
	topBar     bool
	printer    *message.Printer
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithClock replaces time.Now for measuring frames.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) {
		d.now = now
	}
}

// WithStrategy replaces the overlay built for mode m.
func WithStrategy(m Mode, s Strategy) DriverOption {
	return func(d *Driver) {
		d.strategies[m] = s
	}
}

// WithGroupRadius sets the grouping radius of the GroupedPlaces overlay.
func WithGroupRadius(radius float64) DriverOption {
	return func(d *Driver) {
		d.strategies[Grouped] = GroupedStrategy(d.faces, radius)
	}
}

// WithThrottle sets the delay requested when continuous repaint is off.
func WithThrottle(after time.Duration) DriverOption {
	return func(d *Driver) {
		d.throttle = after
	}
}

// WithTopBar enables or disables the header above the map.
func WithTopBar(enabled bool) DriverOption {
	return func(d *Driver) {
		d.topBar = enabled
	}
}

// NewDriver returns a driver drawing text with faces.
func NewDriver(faces *places.Faces, opts ...DriverOption) *Driver {
	d := &Driver{
		faces: faces,
		strategies: map[Mode]Strategy{
			Ungrouped: UngroupedStrategy(faces),
			Grouped:   GroupedStrategy(faces, places.DefaultGroupRadius),
		},
		now:      time.Now,
		throttle: DefaultThrottle,
		topBar:   true,
		printer:  message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Frame draws one frame into rect and returns the next state.
//
// Order within a frame: the camera input and a pending reset are applied,
// the top bar is drawn, the map with the current mode's overlay is drawn
// and timed, the sample is pushed, the average label is drawn in the map's
// top-left corner, and finally a toggle switches mode and empties the
// average.
func (d *Driver) Frame(s State, in Input, dc *gg.Context, rect mapview.Rect) (State, FrameResult) {
	moveCamera(s.Memory, in)
	if in.ResetPressed {
		s.Avg.Reset()
	}

	mapRect := rect
	if d.topBar {
		d.drawTopBar(dc, s, rect)
		mapRect.Y += TopBarHeight
		mapRect.H = max(mapRect.H-TopBarHeight, 0)
	}

	res := FrameResult{Mode: s.Mode}
	res.Response, res.Sample, res.Markers = d.measure(s, dc, mapRect)
	s.Avg.PushDuration(res.Sample)
	res.Mean = s.Avg.Mean()
	res.Label = OverlayText(s.Mode, res.Mean)
	d.drawOverlay(dc, res.Response.Rect, res.Label)

	if in.TogglePressed {
		s.Mode = s.Mode.Toggle()
		s.Avg.Reset()
		res.Toggled = true
		placesbench.Logger().Info("perf: mode switched", "mode", s.Mode, "last_avg_ms", res.Mean)
	}

	if in.ContinuousHeld {
		res.Repaint = Repaint{Continuous: true}
	} else {
		res.Repaint = Repaint{After: d.throttle}
	}

	s.Frames++
	return s, res
}

// measure builds the overlay for s.Mode, draws the map with it and
// returns the elapsed time and the overlay's marker count.
func (d *Driver) measure(s State, dc *gg.Context, rect mapview.Rect) (mapview.Response, time.Duration, int) {
	strategy, ok := d.strategies[s.Mode]
	if !ok {
		panic(fmt.Sprintf("perf: no strategy for %v", s.Mode))
	}

	t0 := d.now()
	plugin := strategy(s.Points)
	resp := mapview.New(s.Memory, Paris).WithPlugin(plugin).Draw(dc, rect)
	elapsed := d.now().Sub(t0)

	markers := -1
	if mc, ok := plugin.(markerCounter); ok {
		markers = mc.Markers()
	}
	return resp, elapsed, markers
}

// moveCamera applies the zoom, drag and recenter input to mem. Zoom steps
// past the zoom limits are dropped.
func moveCamera(mem *mapview.Memory, in Input) {
	if in.Recenter {
		mem.FollowMyPosition()
	}
	if in.DragX != 0 || in.DragY != 0 {
		mem.Pan(Paris, -in.DragX, -in.DragY)
	}

	step := mem.ZoomIn
	if in.Zoom < 0 {
		step = mem.ZoomOut
	}
	for range abs(in.Zoom) {
		if err := step(); err != nil {
			placesbench.Logger().Debug("perf: zoom limit reached", "zoom", mem.Zoom())
			break
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// OverlayText is the label drawn over the map.
func OverlayText(m Mode, meanMS float64) string {
	return fmt.Sprintf("%s: avg %.1f ms / frame", m, meanMS)
}

// Heading is the first line of the top bar.
func (d *Driver) Heading(count int) string {
	return d.printer.Sprintf("Perf test • %d places", count)
}

// Hint is the key help line of the top bar.
const Hint = "Space = toggle Places/Grouped • R = reset avg • hold Alt = continuous repaint"

// NavHint is the map navigation help shown next to the mode checkbox.
const NavHint = "Drag = pan • Wheel, +/- = zoom"

func (d *Driver) drawTopBar(dc *gg.Context, s State, rect mapview.Rect) {
	dc.SetRGB(0.97, 0.97, 0.97)
	dc.DrawRectangle(rect.X, rect.Y, rect.W, min(rect.H, TopBarHeight))
	fillOrLog(dc)

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFont(d.faces.Face(headingSize))
	dc.DrawString(d.Heading(len(s.Points)), rect.X+8, rect.Y+22)

	check := "[ ]"
	if s.Mode == Grouped {
		check = "[x]"
	}
	dc.SetFont(d.faces.Face(bodySize))
	dc.DrawString(Hint, rect.X+8, rect.Y+40)
	nav := NavHint
	if s.Memory.Detached() {
		nav += " • Home = recenter"
	}
	dc.DrawString(check+" Use GroupedPlaces    "+nav, rect.X+8, rect.Y+57)
}

func (d *Driver) drawOverlay(dc *gg.Context, rect mapview.Rect, label string) {
	x, y := rect.LeftTop()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFont(d.faces.Face(bodySize))
	dc.DrawStringAnchored(label, x+overlayInset, y+overlayInset, 0, 1)
}

func fillOrLog(dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		placesbench.Logger().Debug("perf: fill failed", "err", err)
	}
}
