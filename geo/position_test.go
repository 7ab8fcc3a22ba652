// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geo

import (
	"math"
	"testing"
)

func TestNewBoundsNormalizesCorners(t *testing.T) {
	b := NewBounds(2.45, 48.92, 2.25, 48.80)
	if b.Min() != LonLat(2.25, 48.80) {
		t.Errorf("Min() = %v, want (2.25, 48.80)", b.Min())
	}
	if b.Max() != LonLat(2.45, 48.92) {
		t.Errorf("Max() = %v, want (2.45, 48.92)", b.Max())
	}
}

func TestBoundsContains(t *testing.T) {
	b := NewBounds(2.25, 48.80, 2.45, 48.92)

	tests := []struct {
		name string
		p    Position
		want bool
	}{
		{"center", LonLat(2.35, 48.86), true},
		{"south-west corner", LonLat(2.25, 48.80), true},
		{"north-east corner", LonLat(2.45, 48.92), true},
		{"west edge", LonLat(2.25, 48.86), true},
		{"east edge", LonLat(2.45, 48.86), true},
		{"south edge", LonLat(2.35, 48.80), true},
		{"north edge", LonLat(2.35, 48.92), true},
		{"just east of box", LonLat(2.4500001, 48.86), false},
		{"just south of box", LonLat(2.35, 48.7999999), false},
		{"west of box", LonLat(2.20, 48.86), false},
		{"north of box", LonLat(2.35, 48.93), false},
		{"swapped axes", LonLat(48.86, 2.35), false},
		{"NaN", LonLat(math.NaN(), 48.86), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundsCenter(t *testing.T) {
	b := NewBounds(2.0, 48.0, 3.0, 49.0)
	if got := b.Center(); got != LonLat(2.5, 48.5) {
		t.Errorf("Center() = %v, want (2.5, 48.5)", got)
	}
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("Width/Height = %g/%g, want 1/1", b.Width(), b.Height())
	}
}

func TestNewBoundsPanicsOnNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewBounds with %g did not panic", v)
				}
			}()
			NewBounds(v, 48.80, 2.45, 48.92)
		}()
	}
}
