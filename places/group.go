// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package places

import (
	"math"
	"slices"
	"strconv"

	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/geo"
)

// DefaultGroupRadius is the pixel distance under which places are merged.
const DefaultGroupRadius = 40

// Group draws a set of places merged into one marker.
type Group[T Place] interface {
	DrawGroup(dc *gg.Context, members []T, x, y float64, faces *Faces)
}

// GroupedPlaces is an overlay that merges places whose screen positions
// are within Radius pixels of a group's first member. Groups with a
// single member are drawn as the place itself.
//
// Grouping runs on every Draw against the current projection, so groups
// split and merge as the map zooms.
type GroupedPlaces[T Place, G Group[T]] struct {
	places []T
	group  G
	faces  *Faces
	radius float64

	// Reused between frames.
	points  []screenPoint
	members []T

	groups int
}

// NewGroupedPlaces returns a grouping overlay for places, drawing merged
// groups with group.
func NewGroupedPlaces[T Place, G Group[T]](places []T, group G, faces *Faces) *GroupedPlaces[T, G] {
	return &GroupedPlaces[T, G]{
		places: places,
		group:  group,
		faces:  faces,
		radius: DefaultGroupRadius,
	}
}

// WithRadius sets the grouping radius in pixels. A radius <= 0 disables
// grouping.
func (g *GroupedPlaces[T, G]) WithRadius(r float64) *GroupedPlaces[T, G] {
	g.radius = r
	return g
}

// Len returns the number of places.
func (g *GroupedPlaces[T, G]) Len() int {
	return len(g.places)
}

// Markers returns how many markers (groups and lone places) the last Draw
// call painted.
func (g *GroupedPlaces[T, G]) Markers() int {
	return g.groups
}

// Draw implements mapview.Plugin.
func (g *GroupedPlaces[T, G]) Draw(dc *gg.Context, proj *geo.Projector) {
	margin := math.Max(g.radius, DefaultMargin)

	g.points = g.points[:0]
	for i, pl := range g.places {
		x, y := proj.Project(pl.Pos())
		if proj.Visible(x, y, margin) {
			g.points = append(g.points, screenPoint{x: x, y: y, idx: i})
		}
	}

	clusters := groupByDistance(g.points, g.radius)
	for _, c := range clusters {
		if len(c.members) == 1 {
			sp := g.points[c.members[0]]
			g.places[sp.idx].Draw(dc, sp.x, sp.y, g.faces)
			continue
		}
		g.members = g.members[:0]
		for _, m := range c.members {
			g.members = append(g.members, g.places[g.points[m].idx])
		}
		g.group.DrawGroup(dc, g.members, c.x, c.y, g.faces)
	}
	g.groups = len(clusters)

	placesbench.Logger().Debug("places: grouped",
		"visible", len(g.points), "groups", len(clusters), "radius", g.radius)
}

// screenPoint is a projected place; idx points back into the place slice.
type screenPoint struct {
	x, y float64
	idx  int
}

// cluster is a group of screen points; members index the input slice and
// (x, y) is their centroid.
type cluster struct {
	x, y    float64
	members []int
}

type cell struct{ cx, cy int }

// groupByDistance greedily groups points in input order: each point not
// yet grouped seeds a new cluster that takes every ungrouped point within
// radius of it. Points are bucketed in a grid of radius-sized cells so
// only the 3x3 neighbourhood of a seed is searched.
//
// The result is deterministic for a given input order. Members of each
// cluster are sorted ascending.
func groupByDistance(points []screenPoint, radius float64) []cluster {
	clusters := make([]cluster, 0, len(points))
	if radius <= 0 {
		for i, p := range points {
			clusters = append(clusters, cluster{x: p.x, y: p.y, members: []int{i}})
		}
		return clusters
	}

	cellOf := func(p screenPoint) cell {
		return cell{int(math.Floor(p.x / radius)), int(math.Floor(p.y / radius))}
	}
	grid := make(map[cell][]int, len(points))
	for i, p := range points {
		c := cellOf(p)
		grid[c] = append(grid[c], i)
	}

	r2 := radius * radius
	grouped := make([]bool, len(points))
	for i, seed := range points {
		if grouped[i] {
			continue
		}
		grouped[i] = true
		members := []int{i}
		sx, sy := seed.x, seed.y

		home := cellOf(seed)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range grid[cell{home.cx + dx, home.cy + dy}] {
					if grouped[j] {
						continue
					}
					ddx, ddy := points[j].x-seed.x, points[j].y-seed.y
					if ddx*ddx+ddy*ddy <= r2 {
						grouped[j] = true
						members = append(members, j)
						sx += points[j].x
						sy += points[j].y
					}
				}
			}
		}

		slices.Sort(members)
		n := float64(len(members))
		clusters = append(clusters, cluster{x: sx / n, y: sy / n, members: members})
	}
	return clusters
}

// LabeledSymbolGroupStyle controls how a group bubble is drawn.
type LabeledSymbolGroupStyle struct {
	Background  gg.RGBA
	Border      gg.RGBA
	BorderWidth float64
	TextColor   gg.RGBA
	FontSize    float64
	// MinRadius and MaxRadius bound the bubble radius in pixels.
	MinRadius float64
	MaxRadius float64
}

// DefaultLabeledSymbolGroupStyle returns the default bubble style.
func DefaultLabeledSymbolGroupStyle() LabeledSymbolGroupStyle {
	return LabeledSymbolGroupStyle{
		Background:  gg.Hex("#1565c0"),
		Border:      gg.RGB(1, 1, 1),
		BorderWidth: 2,
		TextColor:   gg.RGB(1, 1, 1),
		FontSize:    12,
		MinRadius:   12,
		MaxRadius:   28,
	}
}

// LabeledSymbolGroup draws a group of LabeledSymbol as a bubble showing
// the member count.
type LabeledSymbolGroup struct {
	Style LabeledSymbolGroupStyle
}

// Radius returns the bubble radius for a count label of width w.
func (g LabeledSymbolGroup) Radius(w float64) float64 {
	r := math.Max(g.Style.MinRadius, w/2+6)
	if g.Style.MaxRadius > 0 {
		r = math.Min(r, g.Style.MaxRadius)
	}
	return r
}

// DrawGroup implements Group.
func (g LabeledSymbolGroup) DrawGroup(dc *gg.Context, members []LabeledSymbol, x, y float64, faces *Faces) {
	st := g.Style
	label := strconv.Itoa(len(members))
	w, _ := faces.Measure(label, st.FontSize)
	r := g.Radius(w)

	setColor(dc, st.Background)
	dc.DrawCircle(x, y, r)
	fill(dc)

	if st.BorderWidth > 0 {
		setColor(dc, st.Border)
		dc.SetLineWidth(st.BorderWidth)
		dc.DrawCircle(x, y, r)
		stroke(dc)
	}

	setColor(dc, st.TextColor)
	dc.SetFont(faces.Face(st.FontSize))
	dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
}
