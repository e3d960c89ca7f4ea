package layout

import "testing"

func TestCalc(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		pw   int
		ph   int
		want Rect
	}{
		{"pixels", Pixels(10, 20, 30, 40), 320, 480, Rect{10, 20, 30, 40}},
		{"percent size", Spec{WAttr: WPercent, HAttr: HPercent, W: 50, H: 25}, 320, 480, Rect{0, 0, 160, 120}},
		{"percent position", Spec{XAttr: XPercent, YAttr: YPercent, X: 10, Y: 50, W: 10, H: 10}, 200, 100, Rect{20, 50, 10, 10}},
		{"center middle", Spec{XAttr: XCenter, YAttr: YMiddle, W: 100, H: 40}, 320, 480, Rect{110, 220, 100, 40}},
		{"center with offset", Spec{XAttr: XCenter, YAttr: YMiddle, X: -10, Y: 5, W: 100, H: 40}, 320, 480, Rect{100, 225, 100, 40}},
		{"right bottom", Spec{XAttr: XRight, YAttr: YBottom, X: 8, Y: 4, W: 60, H: 30}, 320, 480, Rect{252, 446, 60, 30}},
		{"negative size fills", Spec{X: 10, Y: 10, W: -20, H: -20}, 320, 480, Rect{10, 10, 300, 460}},
		{"negative beyond parent clamps", Spec{W: -400, H: -10}, 320, 5, Rect{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calc(tt.spec, tt.pw, tt.ph); got != tt.want {
				t.Errorf("Calc = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRaw(t *testing.T) {
	s := Spec{XAttr: XCenter, WAttr: WPercent, X: 3, Y: 4, W: 50, H: 6}
	if got, want := s.Raw(), (Rect{3, 4, 50, 6}); got != want {
		t.Errorf("Raw = %+v, want %+v", got, want)
	}
}

func TestParseX(t *testing.T) {
	tests := []struct {
		in   string
		attr XAttr
		n    int
	}{
		{"10", XDefault, 10},
		{"-4", XDefault, -4},
		{"25%", XPercent, 25},
		{"c", XCenter, 0},
		{"c:-10", XCenter, -10},
		{"r", XRight, 0},
		{" r:8 ", XRight, 8},
	}
	for _, tt := range tests {
		attr, n, err := ParseX(tt.in)
		if err != nil {
			t.Fatalf("ParseX(%q) error: %v", tt.in, err)
		}
		if attr != tt.attr || n != tt.n {
			t.Errorf("ParseX(%q) = %v, %d; want %v, %d", tt.in, attr, n, tt.attr, tt.n)
		}
		back, bn, err := ParseX(FormatX(attr, n))
		if err != nil || back != attr || bn != n {
			t.Errorf("FormatX(%v, %d) = %q does not parse back", attr, n, FormatX(attr, n))
		}
	}
}

func TestParseY(t *testing.T) {
	tests := []struct {
		in   string
		attr YAttr
		n    int
	}{
		{"0", YDefault, 0},
		{"100%", YPercent, 100},
		{"m", YMiddle, 0},
		{"m:5", YMiddle, 5},
		{"b:12", YBottom, 12},
	}
	for _, tt := range tests {
		attr, n, err := ParseY(tt.in)
		if err != nil {
			t.Fatalf("ParseY(%q) error: %v", tt.in, err)
		}
		if attr != tt.attr || n != tt.n {
			t.Errorf("ParseY(%q) = %v, %d; want %v, %d", tt.in, attr, n, tt.attr, tt.n)
		}
	}
}

func TestParseSize(t *testing.T) {
	if a, n, err := ParseW("50%"); err != nil || a != WPercent || n != 50 {
		t.Errorf("ParseW(50%%) = %v, %d, %v", a, n, err)
	}
	if a, n, err := ParseH("-20"); err != nil || a != HPixel || n != -20 {
		t.Errorf("ParseH(-20) = %v, %d, %v", a, n, err)
	}
	if FormatW(WPercent, 50) != "50%" || FormatH(HPixel, 30) != "30" {
		t.Error("unexpected size formatting")
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "c:", "x", "m", "10px"} {
		if _, _, err := ParseX(in); err == nil {
			t.Errorf("ParseX(%q) expected error", in)
		}
	}
	for _, in := range []string{"", "c", "abc%"} {
		if _, _, err := ParseW(in); err == nil {
			t.Errorf("ParseW(%q) expected error", in)
		}
	}
}
