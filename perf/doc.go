// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package perf is the benchmark core: the seeded point generator, the
// rolling frame-time average and the per-frame driver that draws one of
// the two overlays and times it.
//
// The driver is written against an explicit State value so it can run in a
// window, offscreen, or in tests:
//
//	faces, _ := places.NewFaces()
//	d := perf.NewDriver(faces)
//	s := perf.NewState(perf.MakePoints(perf.DefaultCount, perf.DefaultSeed), perf.DefaultWindow)
//	for {
//	    var res perf.FrameResult
//	    s, res = d.Frame(s, input, dc, rect)
//	    // present dc, honour res.Repaint
//	}
package perf
