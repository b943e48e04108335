// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing-surface abstraction used by every
// cardkit component.
//
// Surface is an HTML-canvas-like capability set: a current path built with
// MoveTo/LineTo/ArcTo, fill and stroke paints, a font string, text
// measurement, clipping and image blits, plus Save/Restore of the drawing
// state. Card components only consume this interface, so the same drawing
// code works with:
//
//   - Canvas: raster rendering through github.com/gogpu/gg
//   - Recorder: an in-memory call log for tests and dry runs
//
// # Drawing state
//
// The state touched by Save/Restore is explicit (see State): font, fill
// paint, stroke paint and line width, plus the clip region. Components
// bracket every state mutation with Scoped:
//
//	defer surface.Scoped(s)()
//	s.SetFont("bold 28px Microsoft YaHei")
//	s.SetFillStyle(surface.Solid{Color: color.White})
//	s.FillText("Hello", 20, 40, 0)
//
// # Canvas semantics
//
// Stroke, Fill and Clip do not consume the current path; BeginPath clears it.
// ArcTo follows the HTML canvas tangent-arc rules, including the degenerate
// cases (see ArcTo). Non-positive line widths are ignored.
//
// # Fonts
//
// Fonts are selected with CSS-like strings ("bold 28px Family", see
// ParseFont) and resolved by a FontRegistry: registered families first, then
// system fonts, then the embedded Go fonts.
package surface
