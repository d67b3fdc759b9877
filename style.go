package ggscript

import "fmt"

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

var lineCapNames = [...]string{
	LineCapButt:   "butt",
	LineCapRound:  "round",
	LineCapSquare: "square",
}

func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "unknown"
}

// ParseLineCap returns the LineCap with the given name.
func ParseLineCap(s string) (LineCap, error) {
	for i, name := range lineCapNames {
		if name == s {
			return LineCap(i), nil
		}
	}
	return 0, fmt.Errorf("ggscript: unknown line cap %q", s)
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{
	LineJoinMiter: "miter",
	LineJoinRound: "round",
	LineJoinBevel: "bevel",
}

func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "unknown"
}

// ParseLineJoin returns the LineJoin with the given name.
func ParseLineJoin(s string) (LineJoin, error) {
	for i, name := range lineJoinNames {
		if name == s {
			return LineJoin(i), nil
		}
	}
	return 0, fmt.Errorf("ggscript: unknown line join %q", s)
}

// TextAlign positions text horizontally relative to the origin.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

var textAlignNames = [...]string{
	TextAlignLeft:   "left",
	TextAlignCenter: "center",
	TextAlignRight:  "right",
}

func (a TextAlign) String() string {
	if int(a) < len(textAlignNames) {
		return textAlignNames[a]
	}
	return "unknown"
}

// ParseTextAlign returns the TextAlign with the given name.
func ParseTextAlign(s string) (TextAlign, error) {
	for i, name := range textAlignNames {
		if name == s {
			return TextAlign(i), nil
		}
	}
	return 0, fmt.Errorf("ggscript: unknown text align %q", s)
}

// TextBaseline positions text vertically relative to the origin.
type TextBaseline uint8

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineMiddle
	TextBaselineBottom
)

var textBaselineNames = [...]string{
	TextBaselineAlphabetic: "alphabetic",
	TextBaselineTop:        "top",
	TextBaselineMiddle:     "middle",
	TextBaselineBottom:     "bottom",
}

func (b TextBaseline) String() string {
	if int(b) < len(textBaselineNames) {
		return textBaselineNames[b]
	}
	return "unknown"
}

// ParseTextBaseline returns the TextBaseline with the given name.
func ParseTextBaseline(s string) (TextBaseline, error) {
	for i, name := range textBaselineNames {
		if name == s {
			return TextBaseline(i), nil
		}
	}
	return 0, fmt.Errorf("ggscript: unknown text baseline %q", s)
}

// StrokeStyle is the stroke configuration handed to Backend.StrokePath.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// AlignOffset returns the horizontal translation that places text of the
// given advance width according to align.
func AlignOffset(align TextAlign, width float64) float64 {
	switch align {
	case TextAlignCenter:
		return -width / 2
	case TextAlignRight:
		return -width
	default:
		return 0
	}
}

// BaselineOffset returns the vertical translation that places text with
// the given font ascent and descent (both positive, y-down) according to
// base.
func BaselineOffset(base TextBaseline, ascent, descent float64) float64 {
	switch base {
	case TextBaselineTop:
		return ascent
	case TextBaselineMiddle:
		return -(descent - ascent) / 2
	case TextBaselineBottom:
		return -descent
	default:
		return 0
	}
}
