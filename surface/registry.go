// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/cardkit"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Errors returned by FontRegistry registration.
var (
	// ErrEmptyFamily is returned when registering a font without a family name.
	ErrEmptyFamily = errors.New("surface: empty font family")
)

// FontLoadError reports font data that could not be parsed.
type FontLoadError struct {
	Family string
	Bold   bool
	Err    error
}

// Error implements the error interface.
func (e *FontLoadError) Error() string {
	weight := "regular"
	if e.Bold {
		weight = "bold"
	}
	return fmt.Sprintf("surface: load font %q (%s): %v", e.Family, weight, e.Err)
}

// Unwrap returns the parse error.
func (e *FontLoadError) Unwrap() error {
	return e.Err
}

// RegistryOption configures a FontRegistry.
type RegistryOption func(*FontRegistry)

// WithSystemFonts enables or disables the system font lookup.
// It is enabled by default.
func WithSystemFonts(enabled bool) RegistryOption {
	return func(r *FontRegistry) {
		r.systemFonts = enabled
	}
}

// WithCacheDir sets the directory where the system font index is cached.
// The default is the user cache directory.
func WithCacheDir(dir string) RegistryOption {
	return func(r *FontRegistry) {
		r.cacheDir = dir
	}
}

type fontKey struct {
	family string
	bold   bool
}

type faceKey struct {
	fontKey
	size float64
}

// defaultFonts is the registry used by canvases created without
// WithFontRegistry.
var defaultFonts = NewFontRegistry()

// FontRegistry resolves font specs to faces.
//
// Resolution order for a family and weight:
//
//  1. the family registered with that weight
//  2. the family registered as regular
//  3. an installed system font with that family (scanned once)
//  4. the embedded Go fonts
//
// Resolution never fails. Faces are cached by family, weight and size.
// FontRegistry is safe for concurrent use.
//
// Example:
//
//	fonts := surface.NewFontRegistry()
//	if err := fonts.RegisterFile("Microsoft YaHei", false, "msyh.ttf"); err != nil {
//	    return err
//	}
//	cv := surface.NewCanvas(750, 1334, surface.WithFontRegistry(fonts))
type FontRegistry struct {
	mu      sync.RWMutex
	sources map[fontKey]*text.FontSource
	faces   map[faceKey]text.Face

	systemFonts bool
	cacheDir    string
	scanOnce    sync.Once
	system      map[fontKey]string

	builtinOnce sync.Once
	builtin     [2]*text.FontSource
}

// NewFontRegistry creates a registry with no registered families.
func NewFontRegistry(opts ...RegistryOption) *FontRegistry {
	r := &FontRegistry{
		sources:     make(map[fontKey]*text.FontSource),
		faces:       make(map[faceKey]text.Face),
		systemFonts: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultFontRegistry returns the process-wide registry.
func DefaultFontRegistry() *FontRegistry {
	return defaultFonts
}

// RegisterFont registers font data in the default registry.
func RegisterFont(family string, bold bool, data []byte) error {
	return defaultFonts.Register(family, bold, data)
}

// Register adds TTF/OTF data under a family name and weight.
// Registering an existing family and weight replaces it.
func (r *FontRegistry) Register(family string, bold bool, data []byte) error {
	key, err := newFontKey(family, bold)
	if err != nil {
		return err
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return &FontLoadError{Family: family, Bold: bold, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[key] = src
	r.dropFaces(key.family)
	return nil
}

// RegisterFile registers the font file at path.
func (r *FontRegistry) RegisterFile(family string, bold bool, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // font path is caller-provided
	if err != nil {
		return &FontLoadError{Family: family, Bold: bold, Err: err}
	}
	return r.Register(family, bold, data)
}

// Unregister removes a registered family and weight.
// It reports whether the family was registered.
func (r *FontRegistry) Unregister(family string, bold bool) bool {
	key := fontKey{family: normalizeFamily(family), bold: bold}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sources[key]; !ok {
		return false
	}
	delete(r.sources, key)
	r.dropFaces(key.family)
	return true
}

// Families returns the registered family names, lower-cased and sorted.
func (r *FontRegistry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.sources))
	names := make([]string, 0, len(r.sources))
	for k := range r.sources {
		if !seen[k.family] {
			seen[k.family] = true
			names = append(names, k.family)
		}
	}
	sort.Strings(names)
	return names
}

// Face returns the face for spec, resolving fallbacks as needed.
// It returns nil only if the embedded fonts cannot be parsed.
func (r *FontRegistry) Face(spec FontSpec) text.Face {
	size := spec.Size
	if !(size > 0) {
		size = defaultFontSize
	}
	key := faceKey{fontKey{normalizeFamily(spec.Family), spec.Bold}, size}

	r.mu.RLock()
	face, ok := r.faces[key]
	r.mu.RUnlock()
	if ok {
		return face
	}

	src := r.resolve(key.fontKey)
	if src == nil {
		return nil
	}
	face = src.Face(size)

	r.mu.Lock()
	r.faces[key] = face
	r.mu.Unlock()
	return face
}

func (r *FontRegistry) resolve(key fontKey) *text.FontSource {
	r.mu.RLock()
	src := r.sources[key]
	if src == nil && key.bold {
		src = r.sources[fontKey{family: key.family}]
	}
	r.mu.RUnlock()
	if src != nil {
		return src
	}

	if src = r.systemSource(key); src != nil {
		return src
	}

	cardkit.Logger().Debug("surface: font fallback",
		"family", key.family, "bold", key.bold)
	return r.builtinSource(key.bold)
}

func (r *FontRegistry) systemSource(key fontKey) *text.FontSource {
	if !r.systemFonts {
		return nil
	}
	r.scanOnce.Do(r.scanSystem)

	path, ok := r.system[key]
	if !ok && key.bold {
		path, ok = r.system[fontKey{family: key.family}]
	}
	if !ok {
		return nil
	}

	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		cardkit.Logger().Debug("surface: system font unusable",
			"family", key.family, "path", path, "err", err)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Keep a concurrently registered font if one appeared meanwhile.
	if existing := r.sources[key]; existing != nil {
		return existing
	}
	r.sources[key] = src
	return src
}

// scanLogger routes fontscan diagnostics to the cardkit logger. fontscan
// writes to the standard log package when given a nil logger.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...any) {
	l := cardkit.Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("surface: fontscan: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (r *FontRegistry) scanSystem() {
	dir := r.cacheDir
	if dir == "" {
		if d, err := os.UserCacheDir(); err == nil {
			dir = filepath.Join(d, "cardkit")
		} else {
			dir = filepath.Join(os.TempDir(), "cardkit")
		}
	}

	footprints, err := fontscan.SystemFonts(scanLogger{}, dir)
	if err != nil {
		cardkit.Logger().Debug("surface: system font scan failed", "err", err)
		return
	}

	r.system = make(map[fontKey]string)
	for _, fp := range footprints {
		// Collection members and italics are not selectable by font string.
		if fp.Location.Index != 0 || fp.Aspect.Style == font.StyleItalic {
			continue
		}
		key := fontKey{
			family: normalizeFamily(fp.Family),
			bold:   fp.Aspect.Weight >= font.WeightBold,
		}
		if _, ok := r.system[key]; !ok {
			r.system[key] = fp.Location.File
		}
	}
	cardkit.Logger().Debug("surface: system fonts scanned", "count", len(r.system))
}

func (r *FontRegistry) builtinSource(bold bool) *text.FontSource {
	r.builtinOnce.Do(func() {
		for i, data := range [2][]byte{goregular.TTF, gobold.TTF} {
			src, err := text.NewFontSource(data)
			if err != nil {
				cardkit.Logger().Warn("surface: embedded font unusable", "err", err)
				continue
			}
			r.builtin[i] = src
		}
	})
	if bold && r.builtin[1] != nil {
		return r.builtin[1]
	}
	return r.builtin[0]
}

// dropFaces evicts cached faces of a family. Caller holds r.mu.
func (r *FontRegistry) dropFaces(family string) {
	for k := range r.faces {
		if k.family == family {
			delete(r.faces, k)
		}
	}
}

func newFontKey(family string, bold bool) (fontKey, error) {
	f := normalizeFamily(family)
	if f == "" {
		return fontKey{}, ErrEmptyFamily
	}
	return fontKey{family: f, bold: bold}, nil
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
}
