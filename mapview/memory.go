// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapview

import (
	"errors"

	"github.com/gogpu/placesbench/geo"
)

// DefaultZoom shows the whole Paris benchmark box in an 800px wide map.
const DefaultZoom = 12

// ErrInvalidZoom is returned when a zoom change would leave
// [geo.MinZoom, geo.MaxZoom].
var ErrInvalidZoom = errors.New("mapview: invalid zoom level")

// Memory holds the camera state of a map between frames: the zoom level
// and, once the user pans, a detached centre. A fresh Memory follows the
// position given to the Map.
type Memory struct {
	zoom     float64
	detached bool
	center   geo.Position
}

// NewMemory returns a camera at DefaultZoom following the map's position.
func NewMemory() *Memory {
	return &Memory{zoom: DefaultZoom}
}

// Zoom returns the current zoom level.
func (m *Memory) Zoom() float64 {
	return m.zoom
}

// SetZoom sets the zoom level.
func (m *Memory) SetZoom(zoom float64) error {
	if zoom < geo.MinZoom || zoom > geo.MaxZoom {
		return ErrInvalidZoom
	}
	m.zoom = zoom
	return nil
}

// ZoomIn increases the zoom level by one.
func (m *Memory) ZoomIn() error {
	return m.SetZoom(m.zoom + 1)
}

// ZoomOut decreases the zoom level by one.
func (m *Memory) ZoomOut() error {
	return m.SetZoom(m.zoom - 1)
}

// Center returns the camera centre. my is the position the map follows
// while the camera is not detached.
func (m *Memory) Center(my geo.Position) geo.Position {
	if m.detached {
		return m.center
	}
	return my
}

// Detached reports whether the camera was panned away from the followed
// position.
func (m *Memory) Detached() bool {
	return m.detached
}

// Pan moves the camera by (dx, dy) screen pixels at the current zoom and
// detaches it from the followed position.
func (m *Memory) Pan(my geo.Position, dx, dy float64) {
	x, y := geo.WorldPixels(m.Center(my), m.zoom)
	m.center = geo.FromWorldPixels(x+dx, y+dy, m.zoom)
	m.detached = true
}

// FollowMyPosition re-attaches the camera to the followed position.
func (m *Memory) FollowMyPosition() {
	m.detached = false
}
