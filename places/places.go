// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package places

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench/geo"
)

// DefaultMargin is how far outside the viewport, in pixels, a place is
// still drawn so labels do not pop at the edges.
const DefaultMargin = 64

// Places is an overlay drawing every visible place individually.
type Places[T Place] struct {
	places []T
	faces  *Faces
	margin float64

	drawn int
}

// NewPlaces returns an overlay drawing places with the given faces.
// The slice is not copied; callers must not modify it afterwards.
func NewPlaces[T Place](places []T, faces *Faces) *Places[T] {
	return &Places[T]{
		places: places,
		faces:  faces,
		margin: DefaultMargin,
	}
}

// Len returns the number of places.
func (p *Places[T]) Len() int {
	return len(p.places)
}

// Markers returns how many places the last Draw call painted.
func (p *Places[T]) Markers() int {
	return p.drawn
}

// Draw implements mapview.Plugin.
func (p *Places[T]) Draw(dc *gg.Context, proj *geo.Projector) {
	p.drawn = 0
	for _, pl := range p.places {
		x, y := proj.Project(pl.Pos())
		if !proj.Visible(x, y, p.margin) {
			continue
		}
		pl.Draw(dc, x, y, p.faces)
		p.drawn++
	}
}
