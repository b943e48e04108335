// Package glyph draws numbers from a table of per-character images.
//
// A Table is loaded once per rendering session with LoadTable or
// LoadTableAsync and shared read-only by every Draw call afterwards.
//
//	table, err := glyph.LoadTable(ctx, loader, nil, media.Proxy(api))
//	if err != nil {
//	    return err
//	}
//	glyph.Draw(cv, "12.50", glyph.Box{Left: 100, Width: 10, Height: 20}, table)
package glyph
