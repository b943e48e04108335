// Package cardkit renders card-like graphics (posters, share cards) on top of
// the gg 2D graphics library.
//
// # Overview
//
// cardkit is a small toolkit of stateless drawing functions that operate on a
// caller-supplied drawing surface. It provides:
//
//   - multi-line text layout with line limits and ellipsis truncation (layout)
//   - rounded rectangles with per-corner radii, vertical gradients and
//     speech-bubble outlines (shape)
//   - proxied, asynchronous, optionally clipped image drawing (media)
//   - digit rendering from a pre-loaded table of glyph images (glyph)
//   - declarative YAML/TOML card documents (poster) and a CLI (cmd/cardgen)
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/cardkit/layout"
//	    "github.com/gogpu/cardkit/shape"
//	    "github.com/gogpu/cardkit/surface"
//	)
//
//	cv := surface.NewCanvas(750, 420)
//
//	shape.RoundedPath(cv, shape.Style{
//	    X: 0, Y: 0, Width: 750, Height: 420,
//	    Radius:           shape.Uniform(24),
//	    FillColor:        "#ff7e5f",
//	    Gradient:         true,
//	    GradientEndColor: "#feb47b",
//	})
//
//	layout.Draw(cv, "A very long title that will wrap onto two lines...", layout.Style{
//	    X: 40, Y: 80, MaxWidth: 670, MaxLines: 2,
//	    LineHeight: 48, FontSize: 36, Bold: true, Color: "#fff",
//	})
//
//	cv.SavePNG("card.png")
//
// # Surfaces
//
// All drawing goes through surface.Surface, an HTML-canvas-like capability
// set. surface.Canvas rasterizes with gg; surface.Recorder records calls for
// tests and dry runs. Drawing state (font, paints, line width, clip) is
// always bracketed with Save/Restore so independent draws never leak style
// into each other.
//
// # Logging
//
// cardkit is silent by default. See SetLogger.
package cardkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
