// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapview

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/geo"
)

// Plugin draws an overlay on top of the map. Draw is called once per frame
// with the projector of the map being drawn; the context is clipped to the
// map rectangle.
type Plugin interface {
	Draw(dc *gg.Context, proj *geo.Projector)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(dc *gg.Context, proj *geo.Projector)

// Draw calls f(dc, proj).
func (f PluginFunc) Draw(dc *gg.Context, proj *geo.Projector) {
	f(dc, proj)
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// LeftTop returns the top-left corner.
func (r Rect) LeftTop() (x, y float64) {
	return r.X, r.Y
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Style controls how the map background is painted.
type Style struct {
	Background gg.RGBA
	Grid       gg.RGBA
	GridWidth  float64
	// GridStep is the graticule spacing in degrees. Zero disables it.
	GridStep float64
}

// DefaultStyle returns a light background with a faint 0.05° graticule.
func DefaultStyle() Style {
	return Style{
		Background: gg.RGB(0.93, 0.93, 0.90),
		Grid:       gg.RGBA2(0, 0, 0, 0.08),
		GridWidth:  1,
		GridStep:   0.05,
	}
}

// Response describes the map drawn by Map.Draw.
type Response struct {
	Rect      Rect
	Projector *geo.Projector
}

// Map is a map widget for one frame. Create it every frame from the
// persistent Memory, attach plugins, then Draw it.
type Map struct {
	memory  *Memory
	my      geo.Position
	plugins []Plugin
	style   Style
}

// New returns a map using mem for its camera, following my.
func New(mem *Memory, my geo.Position) *Map {
	return &Map{
		memory: mem,
		my:     my,
		style:  DefaultStyle(),
	}
}

// WithPlugin appends a plugin. Plugins are drawn in the order they are
// added.
func (m *Map) WithPlugin(p Plugin) *Map {
	m.plugins = append(m.plugins, p)
	return m
}

// Draw paints the map into rect and runs every plugin.
func (m *Map) Draw(dc *gg.Context, rect Rect) Response {
	proj := geo.NewProjector(m.memory.Center(m.my), m.memory.Zoom(), rect.X, rect.Y, rect.W, rect.H)
	resp := Response{Rect: rect, Projector: proj}
	if rect.Empty() {
		return resp
	}

	dc.Push()
	defer dc.Pop()
	dc.ClipRect(rect.X, rect.Y, rect.W, rect.H)

	setColor(dc, m.style.Background)
	dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	if err := dc.Fill(); err != nil {
		placesbench.Logger().Debug("mapview: background fill failed", "err", err)
	}

	m.drawGraticule(dc, proj)

	for _, p := range m.plugins {
		p.Draw(dc, proj)
	}
	return resp
}

// drawGraticule strokes meridians and parallels every GridStep degrees.
func (m *Map) drawGraticule(dc *gg.Context, proj *geo.Projector) {
	step := m.style.GridStep
	if step <= 0 {
		return
	}
	b := proj.VisibleBounds()
	x, y, w, h := proj.Viewport()

	setColor(dc, m.style.Grid)
	dc.SetLineWidth(m.style.GridWidth)
	for lon := math.Ceil(b.Min().Lon/step) * step; lon <= b.Max().Lon; lon += step {
		sx, _ := proj.Project(geo.LonLat(lon, b.Center().Lat))
		dc.DrawLine(sx, y, sx, y+h)
	}
	for lat := math.Ceil(b.Min().Lat/step) * step; lat <= b.Max().Lat; lat += step {
		_, sy := proj.Project(geo.LonLat(b.Center().Lon, lat))
		dc.DrawLine(x, sy, x+w, sy)
	}
	if err := dc.Stroke(); err != nil {
		placesbench.Logger().Debug("mapview: graticule stroke failed", "err", err)
	}
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
