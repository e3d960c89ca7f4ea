package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the fixed 7x13 face used to estimate label widths when no
// real font is available.
var DefaultFace font.Face = basicfont.Face7x13

// TextWidth returns the advance width of s in face, rounded up to whole
// pixels. A nil face means DefaultFace.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		face = DefaultFace
	}
	return font.MeasureString(face, s).Ceil()
}

// TextHeight returns the line height of face in whole pixels.
func TextHeight(face font.Face) int {
	if face == nil {
		face = DefaultFace
	}
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Overflows reports whether s does not fit on one line inside r.
func Overflows(face font.Face, s string, r Rect) bool {
	return TextWidth(face, s) > r.W || TextHeight(face) > r.H
}
