package raster

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/gg"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/ggscript"
	"github.com/gogpu/ggscript/internal/cache"
	"github.com/gogpu/ggscript/paint"
	"github.com/gogpu/ggscript/resource"
)

// ErrInvalidFontSize is returned when text is shaped at a size that is not
// positive.
var ErrInvalidFontSize = errors.New("raster: font size must be positive")

// outlineCacheSize bounds the glyph outlines kept across passes.
const outlineCacheSize = 1024

type glyphKey struct {
	face *font.Face
	gid  font.GID
}

// shaper shapes text with HarfBuzz. Text without a font falls back to Go
// Regular, parsed on first use.
type shaper struct {
	hb       shaping.HarfbuzzShaper
	fallback *font.Face
	outlines *cache.Cache[glyphKey, []opentype.Segment]
}

// outline returns the outline segments of a glyph in font units. Bitmap
// and empty glyphs have none.
func (s *shaper) outline(face *font.Face, gid font.GID) []opentype.Segment {
	if s.outlines == nil {
		s.outlines = cache.New[glyphKey, []opentype.Segment](outlineCacheSize)
	}
	return s.outlines.GetOrCreate(glyphKey{face, gid}, func() []opentype.Segment {
		if o, ok := face.GlyphData(gid).(font.GlyphOutline); ok {
			return o.Segments
		}
		return nil
	})
}

func (s *shaper) face(f resource.Font) (resource.Font, error) {
	if f.Face != nil {
		return f, nil
	}
	if s.fallback == nil {
		face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			return f, fmt.Errorf("raster: parse fallback font: %w", err)
		}
		s.fallback = face
	}
	return resource.Font{ID: f.ID, Face: s.fallback}, nil
}

// ShapeText shapes text with font at size pixels. Glyph positions are in
// user space relative to the start of the baseline, y down.
func (b *Backend) ShapeText(f resource.Font, size float64, text string) (*ggscript.ShapedText, error) {
	if size <= 0 {
		return nil, ErrInvalidFontSize
	}
	f, err := b.shaper.face(f)
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	byteOffsets := make([]int, 0, len(runes))
	for i := range text {
		byteOffsets = append(byteOffsets, i)
	}

	out := b.shaper.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(runes),
		Face:      f.Face,
		Size:      fixed.Int26_6(size * 64),
		Script:    script(runes),
	})

	shaped := &ggscript.ShapedText{
		Text:   text,
		Font:   f,
		Size:   size,
		Glyphs: make([]ggscript.Glyph, 0, len(out.Glyphs)),
	}
	pen := 0.0
	for _, g := range out.Glyphs {
		cluster := 0
		if g.ClusterIndex >= 0 && g.ClusterIndex < len(byteOffsets) {
			cluster = byteOffsets[g.ClusterIndex]
		}
		adv := fromFixed(g.XAdvance)
		shaped.Glyphs = append(shaped.Glyphs, ggscript.Glyph{
			ID:      uint32(g.GlyphID),
			Cluster: cluster,
			X:       pen + fromFixed(g.XOffset),
			Y:       -fromFixed(g.YOffset),
			Advance: adv,
		})
		pen += adv
	}
	shaped.Width = pen

	if ext, ok := f.Face.FontHExtents(); ok {
		scale := size / float64(f.Face.Upem())
		shaped.Ascent = float64(ext.Ascender) * scale
		shaped.Descent = -float64(ext.Descender) * scale
	}
	return shaped, nil
}

// DrawGlyphs fills the glyph outlines of t at the current origin with p.
// The current path is left untouched.
func (b *Backend) DrawGlyphs(t *ggscript.ShapedText, p paint.Paint) {
	face := t.Font.Face
	if face == nil || len(t.Glyphs) == 0 {
		return
	}
	scale := t.Size / float64(face.Upem())
	ctm := b.dc.GetTransform()

	path := gg.NewPath()
	for _, g := range t.Glyphs {
		segments := b.shaper.outline(face, font.GID(g.ID))
		if len(segments) == 0 {
			continue
		}
		pt := func(sp opentype.SegmentPoint) gg.Point {
			return ctm.TransformPoint(gg.Pt(g.X+float64(sp.X)*scale, g.Y-float64(sp.Y)*scale))
		}
		for _, seg := range segments {
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				if path.HasCurrentPoint() {
					path.Close()
				}
				a := pt(seg.Args[0])
				path.MoveTo(a.X, a.Y)
			case opentype.SegmentOpLineTo:
				a := pt(seg.Args[0])
				path.LineTo(a.X, a.Y)
			case opentype.SegmentOpQuadTo:
				c, a := pt(seg.Args[0]), pt(seg.Args[1])
				path.QuadraticTo(c.X, c.Y, a.X, a.Y)
			case opentype.SegmentOpCubeTo:
				c0, c1, a := pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])
				path.CubicTo(c0.X, c0.Y, c1.X, c1.Y, a.X, a.Y)
			}
		}
		if path.HasCurrentPoint() {
			path.Close()
		}
	}
	if !path.HasCurrentPoint() {
		return
	}

	b.applyPaint(p, true)
	b.dc.SetPath(path)
	if err := b.dc.Fill(); err != nil {
		b.log().Warn("raster: text fill failed", "text", t.Text, "error", err)
	}
}

// direction returns the paragraph direction: that of the first strong
// character, left-to-right when there is none.
func direction(runes []rune) di.Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// script returns the script of the first character that has one.
func script(runes []rune) language.Script {
	for _, r := range runes {
		s := language.LookupScript(r)
		if s != language.Common && s != language.Inherited {
			return s
		}
	}
	return language.Latin
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
