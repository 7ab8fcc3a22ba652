// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import (
	"math/rand/v2"
	"strconv"

	"github.com/gogpu/placesbench/geo"
	"github.com/gogpu/placesbench/places"
)

const (
	// DefaultCount is the number of generated points.
	DefaultCount = 2000

	// DefaultSeed makes repeated runs draw identical data.
	DefaultSeed uint64 = 42

	// PointSymbolSize keeps glyph drawing cheap.
	PointSymbolSize = 5

	// PointGlyph is drawn inside every point's symbol.
	PointGlyph = "•"
)

// DefaultBounds is the box points are generated in (central Paris).
var DefaultBounds = geo.NewBounds(2.25, 48.80, 2.45, 48.92)

// Paris is where the map camera starts.
var Paris = geo.LonLat(2.3522, 48.8566)

// MakePoints returns n points uniformly distributed in DefaultBounds,
// labeled "P0" to "P<n-1>". The same seed always produces the same points.
// n <= 0 yields no points.
func MakePoints(n int, seed uint64) []places.LabeledSymbol {
	return MakePointsIn(DefaultBounds, n, seed)
}

// MakePointsIn is MakePoints for an arbitrary box.
func MakePointsIn(b geo.Bounds, n int, seed uint64) []places.LabeledSymbol {
	if n <= 0 {
		return nil
	}
	r := rand.New(rand.NewPCG(seed, seed))
	lo, hi := b.Min(), b.Max()
	w, h := b.Width(), b.Height()

	style := places.DefaultLabeledSymbolStyle()
	style.SymbolSize = PointSymbolSize

	points := make([]places.LabeledSymbol, n)
	for i := range points {
		// min guards against rounding past the upper edge.
		lon := min(lo.Lon+r.Float64()*w, hi.Lon)
		lat := min(lo.Lat+r.Float64()*h, hi.Lat)
		points[i] = places.LabeledSymbol{
			Position: geo.LonLat(lon, lat),
			Label:    "P" + strconv.Itoa(i),
			Symbol:   places.Circle(PointGlyph),
			Style:    style,
		}
	}
	return points
}
