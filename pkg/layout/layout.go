// Package layout resolves a widget's (possibly relative) layout specification
// against its parent's size.
//
// A Spec pairs each of x, y, w and h with an attribute saying how the raw
// number is interpreted:
//
//	x: pixel | percent of parent width | centered (+offset) | right anchored (margin)
//	y: pixel | percent of parent height | middle (+offset) | bottom anchored (margin)
//	w: pixel (negative means parent width minus |w|) | percent of parent width
//	h: pixel (negative means parent height minus |h|) | percent of parent height
//
// Calc is the only operation the builder needs; Parse* helpers read the
// textual forms used by YAML descriptions ("c", "m:10", "50%", "r:8").
package layout

// XAttr says how Spec.X is interpreted.
type XAttr uint8

const (
	XDefault XAttr = iota
	XPercent
	XCenter
	XRight
)

// YAttr says how Spec.Y is interpreted.
type YAttr uint8

const (
	YDefault YAttr = iota
	YPercent
	YMiddle
	YBottom
)

// WAttr says how Spec.W is interpreted.
type WAttr uint8

const (
	WPixel WAttr = iota
	WPercent
)

// HAttr says how Spec.H is interpreted.
type HAttr uint8

const (
	HPixel HAttr = iota
	HPercent
)

// Spec is a widget's layout as written in a description.
type Spec struct {
	XAttr XAttr
	YAttr YAttr
	WAttr WAttr
	HAttr HAttr
	X, Y  int
	W, H  int
}

// Pixels returns a plain pixel spec.
func Pixels(x, y, w, h int) Spec {
	return Spec{X: x, Y: y, W: w, H: h}
}

// Rect is an absolute rectangle relative to the parent's origin.
type Rect struct {
	X, Y int
	W, H int
}

// Raw returns the spec's numbers unmodified. Used for root widgets, which
// have no parent to be relative to.
func (s Spec) Raw() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// Calc maps s into an absolute rectangle inside a parent of the given size.
// Size is resolved first since centered and anchored positions depend on it.
func Calc(s Spec, parentW, parentH int) Rect {
	w := s.W
	switch s.WAttr {
	case WPercent:
		w = parentW * s.W / 100
	default:
		if w < 0 {
			w = parentW + w
		}
	}
	h := s.H
	switch s.HAttr {
	case HPercent:
		h = parentH * s.H / 100
	default:
		if h < 0 {
			h = parentH + h
		}
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	x := s.X
	switch s.XAttr {
	case XPercent:
		x = parentW * s.X / 100
	case XCenter:
		x = (parentW-w)/2 + s.X
	case XRight:
		x = parentW - w - s.X
	}

	y := s.Y
	switch s.YAttr {
	case YPercent:
		y = parentH * s.Y / 100
	case YMiddle:
		y = (parentH-h)/2 + s.Y
	case YBottom:
		y = parentH - h - s.Y
	}

	return Rect{X: x, Y: y, W: w, H: h}
}
