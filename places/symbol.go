// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package places

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/placesbench"
	"github.com/gogpu/placesbench/geo"
)

// Place is anything an overlay can position and draw.
type Place interface {
	// Pos returns the geographic position of the place.
	Pos() geo.Position

	// Draw paints the place centred on the screen point (x, y).
	Draw(dc *gg.Context, x, y float64, faces *Faces)
}

// Symbol is the glyph drawn at a place.
type Symbol struct {
	Glyph string
}

// Circle returns a symbol drawing glyph inside a filled circle.
func Circle(glyph string) *Symbol {
	return &Symbol{Glyph: glyph}
}

// LabeledSymbolStyle controls how a LabeledSymbol is drawn.
type LabeledSymbolStyle struct {
	// SymbolSize is the radius of the symbol circle in pixels.
	SymbolSize       float64
	SymbolColor      gg.RGBA
	SymbolBackground gg.RGBA

	LabelColor      gg.RGBA
	LabelBackground gg.RGBA
	FontSize        float64
}

// DefaultLabeledSymbolStyle returns the default marker style.
func DefaultLabeledSymbolStyle() LabeledSymbolStyle {
	return LabeledSymbolStyle{
		SymbolSize:       10,
		SymbolColor:      gg.RGB(1, 1, 1),
		SymbolBackground: gg.Hex("#1565c0"),
		LabelColor:       gg.RGB(0.1, 0.1, 0.1),
		LabelBackground:  gg.RGBA2(1, 1, 1, 0.75),
		FontSize:         12,
	}
}

// LabeledSymbol is a place drawn as an optional symbol with a text label
// to its right.
type LabeledSymbol struct {
	Position geo.Position
	Label    string
	Symbol   *Symbol
	Style    LabeledSymbolStyle
}

// Pos implements Place.
func (s LabeledSymbol) Pos() geo.Position {
	return s.Position
}

// Draw implements Place.
func (s LabeledSymbol) Draw(dc *gg.Context, x, y float64, faces *Faces) {
	st := s.Style
	r := st.SymbolSize

	if s.Symbol != nil && r > 0 {
		setColor(dc, st.SymbolBackground)
		dc.DrawCircle(x, y, r)
		fill(dc)

		if s.Symbol.Glyph != "" {
			setColor(dc, st.SymbolColor)
			dc.SetFont(faces.Face(2 * r))
			dc.DrawStringAnchored(s.Symbol.Glyph, x, y, 0.5, 0.5)
		}
	}

	if s.Label == "" {
		return
	}
	w, h := faces.Measure(s.Label, st.FontSize)
	lx := x + r + 4

	setColor(dc, st.LabelBackground)
	dc.DrawRoundedRectangle(lx-3, y-h/2-1, w+6, h+2, 3)
	fill(dc)

	setColor(dc, st.LabelColor)
	dc.SetFont(faces.Face(st.FontSize))
	dc.DrawStringAnchored(s.Label, lx, y, 0, 0.5)
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func fill(dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		placesbench.Logger().Debug("places: fill failed", "err", err)
	}
}

func stroke(dc *gg.Context) {
	if err := dc.Stroke(); err != nil {
		placesbench.Logger().Debug("places: stroke failed", "err", err)
	}
}
