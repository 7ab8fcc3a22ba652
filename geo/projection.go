// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geo

import (
	"math"

	"github.com/wroge/wgs84"
)

const (
	// TileSize is the edge length in pixels of one map tile.
	TileSize = 256

	// MinZoom and MaxZoom bound the zoom levels a Projector accepts.
	MinZoom = 0
	MaxZoom = 22

	// MaxLatitude is the latitude at which Web Mercator is cut off.
	MaxLatitude = 85.05112878

	// halfWorld is half the Web Mercator world width in metres (R * pi).
	halfWorld = 20037508.342789244
)

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// Mercator returns the EPSG:3857 coordinates of p in metres.
// Latitudes beyond MaxLatitude are clamped.
func Mercator(p Position) (x, y float64) {
	lat := clamp(p.Lat, -MaxLatitude, MaxLatitude)
	x, y, _ = toMercator(p.Lon, lat, 0)
	return x, y
}

// WorldPixels returns the pixel coordinates of p in the world image at the
// given zoom level. The origin is the north-west corner of the world.
func WorldPixels(p Position, zoom float64) (x, y float64) {
	mx, my := Mercator(p)
	size := worldSize(zoom)
	x = (mx + halfWorld) / (2 * halfWorld) * size
	y = (halfWorld - my) / (2 * halfWorld) * size
	return x, y
}

// FromWorldPixels is the inverse of WorldPixels.
func FromWorldPixels(x, y, zoom float64) Position {
	size := worldSize(zoom)
	mx := x/size*(2*halfWorld) - halfWorld
	my := halfWorld - y/size*(2*halfWorld)
	lon, lat, _ := fromMercator(mx, my, 0)
	return LonLat(lon, lat)
}

func worldSize(zoom float64) float64 {
	return TileSize * math.Exp2(clamp(zoom, MinZoom, MaxZoom))
}

// Projector maps positions to screen pixels for one camera placement.
// A Projector is immutable and safe to share between plugins of one frame.
type Projector struct {
	zoom             float64
	centerX, centerY float64 // world pixels of the camera centre
	x, y, w, h       float64 // viewport
}

// NewProjector returns a projector that places center in the middle of the
// viewport (x, y, w, h) at the given zoom level.
func NewProjector(center Position, zoom, x, y, w, h float64) *Projector {
	zoom = clamp(zoom, MinZoom, MaxZoom)
	cx, cy := WorldPixels(center, zoom)
	return &Projector{
		zoom:    zoom,
		centerX: cx,
		centerY: cy,
		x:       x,
		y:       y,
		w:       w,
		h:       h,
	}
}

// Zoom returns the zoom level.
func (p *Projector) Zoom() float64 { return p.zoom }

// Viewport returns the screen rectangle the projector maps into.
func (p *Projector) Viewport() (x, y, w, h float64) { return p.x, p.y, p.w, p.h }

// Center returns the position at the middle of the viewport.
func (p *Projector) Center() Position {
	return FromWorldPixels(p.centerX, p.centerY, p.zoom)
}

// Project returns the screen coordinates of pos.
func (p *Projector) Project(pos Position) (sx, sy float64) {
	wx, wy := WorldPixels(pos, p.zoom)
	sx = p.x + p.w/2 + (wx - p.centerX)
	sy = p.y + p.h/2 + (wy - p.centerY)
	return sx, sy
}

// Unproject returns the position under the screen point (sx, sy).
func (p *Projector) Unproject(sx, sy float64) Position {
	wx := sx - p.x - p.w/2 + p.centerX
	wy := sy - p.y - p.h/2 + p.centerY
	return FromWorldPixels(wx, wy, p.zoom)
}

// Visible reports whether the screen point lies inside the viewport grown
// by margin pixels on every side.
func (p *Projector) Visible(sx, sy, margin float64) bool {
	return sx >= p.x-margin && sx <= p.x+p.w+margin &&
		sy >= p.y-margin && sy <= p.y+p.h+margin
}

// VisibleBounds returns the lon/lat box covered by the viewport.
func (p *Projector) VisibleBounds() Bounds {
	nw := p.Unproject(p.x, p.y)
	se := p.Unproject(p.x+p.w, p.y+p.h)
	return NewBounds(nw.Lon, se.Lat, se.Lon, nw.Lat)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
