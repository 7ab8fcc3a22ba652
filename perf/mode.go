// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package perf

import "fmt"

// Mode selects the overlay being benchmarked.
type Mode int

const (
	// Ungrouped draws every marker with places.Places.
	Ungrouped Mode = iota

	// Grouped merges nearby markers with places.GroupedPlaces.
	Grouped
)

// Modes lists every mode in toggle order.
var Modes = []Mode{Ungrouped, Grouped}

// String returns the name of the overlay type.
func (m Mode) String() string {
	switch m {
	case Ungrouped:
		return "Places"
	case Grouped:
		return "GroupedPlaces"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Grouped {
		return Ungrouped
	}
	return Grouped
}

// ParseMode returns the mode named s ("Places", "GroupedPlaces",
// or the short forms "ungrouped" and "grouped").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "Places", "places", "ungrouped":
		return Ungrouped, nil
	case "GroupedPlaces", "groupedplaces", "grouped":
		return Grouped, nil
	default:
		return 0, fmt.Errorf("perf: unknown mode %q", s)
	}
}
