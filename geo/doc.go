// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geo provides WGS84 positions, lon/lat bounding boxes and a Web
// Mercator projector that maps positions to screen pixels.
//
// Positions are projected to EPSG:3857 metres with wgs84 and then scaled to
// the pixel space of 256px tiles at a given zoom level, the convention used
// by slippy-map tile servers:
//
//	proj := geo.NewProjector(geo.LonLat(2.3522, 48.8566), 12, 0, 0, 800, 600)
//	x, y := proj.Project(geo.LonLat(2.30, 48.85))
package geo
