// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package places

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/placesbench/internal/labelcache"
)

// Faces hands out font faces by size, all from the embedded Go Regular
// font, and caches the measured extents of labels.
type Faces struct {
	source  *text.FontSource
	extents *labelcache.Cache

	mu    sync.Mutex
	faces map[float64]text.Face
}

// NewFaces loads the embedded font.
func NewFaces() (*Faces, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("places: load font: %w", err)
	}
	return &Faces{
		source:  source,
		extents: labelcache.New(labelcache.DefaultCapacity),
		faces:   make(map[float64]text.Face),
	}, nil
}

// Face returns the face of the given size in points.
func (f *Faces) Face(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	face, ok := f.faces[size]
	if !ok {
		face = f.source.Face(size)
		f.faces[size] = face
	}
	return face
}

// Measure returns the width and line height of s at the given size.
func (f *Faces) Measure(s string, size float64) (w, h float64) {
	ext := f.extents.Measure(labelcache.Key{Label: s, Size: size}, func() labelcache.Extent {
		w, h := text.Measure(s, f.Face(size))
		return labelcache.Extent{W: w, H: h}
	})
	return ext.W, ext.H
}

// CacheStats returns the statistics of the label extent cache.
func (f *Faces) CacheStats() labelcache.Stats {
	return f.extents.Stats()
}

// Close releases the font source.
func (f *Faces) Close() error {
	return f.source.Close()
}
