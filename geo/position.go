// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// Position is a WGS84 coordinate in degrees.
type Position struct {
	Lon float64
	Lat float64
}

// LonLat returns the position at the given longitude and latitude.
func LonLat(lon, lat float64) Position {
	return Position{Lon: lon, Lat: lat}
}

// XY returns the position as a simplefeatures coordinate (X = lon, Y = lat).
func (p Position) XY() geom.XY {
	return geom.XY{X: p.Lon, Y: p.Lat}
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lon, p.Lat)
}

// Bounds is an axis-aligned lon/lat box, inclusive on every edge.
type Bounds struct {
	min, max Position
	env      geom.Envelope
}

// NewBounds returns the box spanning the two corners. The corners may be
// given in any order. It panics if a coordinate is NaN or infinite.
func NewBounds(minLon, minLat, maxLon, maxLat float64) Bounds {
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	lo, hi := LonLat(minLon, minLat), LonLat(maxLon, maxLat)
	env, err := geom.NewEnvelope([]geom.XY{lo.XY(), hi.XY()})
	if err != nil {
		panic(fmt.Sprintf("geo: bounds %v %v: %v", lo, hi, err))
	}
	return Bounds{min: lo, max: hi, env: env}
}

// Min returns the south-west corner.
func (b Bounds) Min() Position { return b.min }

// Max returns the north-east corner.
func (b Bounds) Max() Position { return b.max }

// Width returns the longitude span in degrees.
func (b Bounds) Width() float64 { return b.max.Lon - b.min.Lon }

// Height returns the latitude span in degrees.
func (b Bounds) Height() float64 { return b.max.Lat - b.min.Lat }

// Center returns the midpoint of the box.
func (b Bounds) Center() Position {
	return LonLat((b.min.Lon+b.max.Lon)/2, (b.min.Lat+b.max.Lat)/2)
}

// Contains reports whether p lies inside the box or on its edge.
func (b Bounds) Contains(p Position) bool {
	return b.env.Contains(p.XY())
}

// String implements fmt.Stringer.
func (b Bounds) String() string {
	return fmt.Sprintf("lon [%g, %g] lat [%g, %g]", b.min.Lon, b.max.Lon, b.min.Lat, b.max.Lat)
}
