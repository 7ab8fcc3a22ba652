// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package places provides map overlays that draw labeled markers.
//
// Two overlays are available, both implementing mapview.Plugin:
//
//   - Places draws every visible place on its own
//   - GroupedPlaces merges places whose screen positions are closer than a
//     pixel radius and draws each group with a Group renderer
//
// Both overlays take the same []T of places, so the same dataset can be
// drawn either way:
//
//	faces, _ := places.NewFaces()
//	flat := places.NewPlaces(points, faces)
//	grouped := places.NewGroupedPlaces(points, places.LabeledSymbolGroup{
//	    Style: places.DefaultLabeledSymbolGroupStyle(),
//	}, faces)
package places
