// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"
	"unicode/utf8"
)

// OpKind identifies a recorded Surface call.
type OpKind uint8

const (
	// State operations
	OpSave           OpKind = iota // Save
	OpRestore                      // Restore
	OpSetFont                      // SetFont
	OpSetFillStyle                 // SetFillStyle
	OpSetStrokeStyle               // SetStrokeStyle
	OpSetLineWidth                 // SetLineWidth

	// Path operations
	OpBeginPath // BeginPath
	OpMoveTo    // MoveTo
	OpLineTo    // LineTo
	OpArcTo     // ArcTo
	OpClosePath // ClosePath

	// Painting operations
	OpStroke         // Stroke
	OpFill           // Fill
	OpClip           // Clip
	OpFillText       // FillText
	OpDrawImage      // DrawImage
	OpCreateGradient // CreateLinearGradient
)

var opKindNames = [...]string{
	OpSave:           "Save",
	OpRestore:        "Restore",
	OpSetFont:        "SetFont",
	OpSetFillStyle:   "SetFillStyle",
	OpSetStrokeStyle: "SetStrokeStyle",
	OpSetLineWidth:   "SetLineWidth",
	OpBeginPath:      "BeginPath",
	OpMoveTo:         "MoveTo",
	OpLineTo:         "LineTo",
	OpArcTo:          "ArcTo",
	OpClosePath:      "ClosePath",
	OpStroke:         "Stroke",
	OpFill:           "Fill",
	OpClip:           "Clip",
	OpFillText:       "FillText",
	OpDrawImage:      "DrawImage",
	OpCreateGradient: "CreateLinearGradient",
}

// String returns the Surface method name of the operation.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// Op is one recorded Surface call.
type Op struct {
	Kind OpKind

	// Args holds the numeric arguments in call order, e.g. x1, y1, x2, y2, r
	// for ArcTo and x, y, maxWidth for FillText.
	Args []float64

	// Text is the text of FillText or the font string of SetFont.
	Text string

	// Paint is the paint of SetFillStyle and SetStrokeStyle.
	Paint Paint

	// Image is the image of DrawImage.
	Image image.Image

	// State is the drawing state in effect after the call.
	State State

	// Depth is the save depth after the call.
	Depth int
}

// Measurer measures text for a Recorder.
type Measurer func(text string, font FontSpec) float64

// EmMeasure measures every rune as one em (the font size) wide.
func EmMeasure(text string, font FontSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size
}

// FixedAdvance returns a Measurer giving every rune the same advance.
func FixedAdvance(advance float64) Measurer {
	return func(text string, _ FontSpec) float64 {
		return float64(utf8.RuneCountInString(text)) * advance
	}
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithMeasurer sets the text measurement used by MeasureText.
func WithMeasurer(m Measurer) RecorderOption {
	return func(r *Recorder) {
		if m != nil {
			r.measure = m
		}
	}
}

// Recorder is a Surface that records calls instead of rendering them.
//
// It tracks the drawing state and save depth exactly like a real surface,
// which makes it the reference implementation for tests and dry runs.
//
// Example:
//
//	rec := surface.NewRecorder(surface.WithMeasurer(surface.FixedAdvance(10)))
//	layout.Draw(rec, "Hello", style)
//	for _, op := range rec.OpsOf(surface.OpFillText) { ... }
type Recorder struct {
	ops     []Op
	state   State
	stack   []State
	measure Measurer
}

// NewRecorder creates a Recorder with the default drawing state.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		state:   DefaultState(),
		measure: EmMeasure,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) record(op Op) {
	op.State = r.state
	op.Depth = len(r.stack)
	r.ops = append(r.ops, op)
}

// Ops returns all recorded operations in call order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// OpsOf returns the recorded operations of the given kinds.
func (r *Recorder) OpsOf(kinds ...OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// Kinds returns the kinds of all recorded operations in call order.
func (r *Recorder) Kinds() []OpKind {
	out := make([]OpKind, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.Kind
	}
	return out
}

// State returns the current drawing state.
func (r *Recorder) State() State {
	return r.state
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Reset discards the recorded operations and restores the default state.
func (r *Recorder) Reset() {
	r.ops = nil
	r.stack = nil
	r.state = DefaultState()
}

// Save implements Surface.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.record(Op{Kind: OpSave})
}

// Restore implements Surface.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record(Op{Kind: OpRestore})
}

// SetFont implements Surface.
func (r *Recorder) SetFont(font string) {
	r.state.Font = font
	r.record(Op{Kind: OpSetFont, Text: font})
}

// SetFillStyle implements Surface.
func (r *Recorder) SetFillStyle(p Paint) {
	if p != nil {
		r.state.Fill = p
	}
	r.record(Op{Kind: OpSetFillStyle, Paint: p})
}

// SetStrokeStyle implements Surface.
func (r *Recorder) SetStrokeStyle(p Paint) {
	if p != nil {
		r.state.Stroke = p
	}
	r.record(Op{Kind: OpSetStrokeStyle, Paint: p})
}

// SetLineWidth implements Surface.
func (r *Recorder) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		r.state.LineWidth = w
	}
	r.record(Op{Kind: OpSetLineWidth, Args: []float64{w}})
}

// MeasureText implements Surface. Measuring is not recorded.
func (r *Recorder) MeasureText(text string) float64 {
	return r.measure(text, ParseFont(r.state.Font))
}

// FillText implements Surface.
func (r *Recorder) FillText(text string, x, y, maxWidth float64) {
	r.record(Op{Kind: OpFillText, Text: text, Args: []float64{x, y, maxWidth}})
}

// BeginPath implements Surface.
func (r *Recorder) BeginPath() { r.record(Op{Kind: OpBeginPath}) }

// MoveTo implements Surface.
func (r *Recorder) MoveTo(x, y float64) {
	r.record(Op{Kind: OpMoveTo, Args: []float64{x, y}})
}

// LineTo implements Surface.
func (r *Recorder) LineTo(x, y float64) {
	r.record(Op{Kind: OpLineTo, Args: []float64{x, y}})
}

// ArcTo implements Surface.
func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float64) {
	r.record(Op{Kind: OpArcTo, Args: []float64{x1, y1, x2, y2, radius}})
}

// ClosePath implements Surface.
func (r *Recorder) ClosePath() { r.record(Op{Kind: OpClosePath}) }

// Stroke implements Surface.
func (r *Recorder) Stroke() { r.record(Op{Kind: OpStroke}) }

// Fill implements Surface.
func (r *Recorder) Fill() { r.record(Op{Kind: OpFill}) }

// Clip implements Surface.
func (r *Recorder) Clip() { r.record(Op{Kind: OpClip}) }

// DrawImage implements Surface.
func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.record(Op{Kind: OpDrawImage, Image: img, Args: []float64{x, y, w, h}})
}

// CreateLinearGradient implements Surface.
func (r *Recorder) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	r.record(Op{Kind: OpCreateGradient, Args: []float64{x0, y0, x1, y1}})
	return NewLinearGradient(x0, y0, x1, y1)
}

var _ Surface = (*Recorder)(nil)
