package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseX reads an x attribute: "10", "-4", "25%", "c", "c:-10", "r", "r:8".
func ParseX(s string) (XAttr, int, error) {
	attr, n, err := parseAnchored(s, "c", "r")
	if err != nil {
		return XDefault, 0, fmt.Errorf("layout: x %q: %w", s, err)
	}
	return XAttr(attr), n, nil
}

// ParseY reads a y attribute: "10", "25%", "m", "m:5", "b", "b:8".
func ParseY(s string) (YAttr, int, error) {
	attr, n, err := parseAnchored(s, "m", "b")
	if err != nil {
		return YDefault, 0, fmt.Errorf("layout: y %q: %w", s, err)
	}
	return YAttr(attr), n, nil
}

// ParseW reads a width: "120", "-20", "50%".
func ParseW(s string) (WAttr, int, error) {
	pct, n, err := parseSize(s)
	if err != nil {
		return WPixel, 0, fmt.Errorf("layout: w %q: %w", s, err)
	}
	if pct {
		return WPercent, n, nil
	}
	return WPixel, n, nil
}

// ParseH reads a height: "30", "-20", "100%".
func ParseH(s string) (HAttr, int, error) {
	pct, n, err := parseSize(s)
	if err != nil {
		return HPixel, 0, fmt.Errorf("layout: h %q: %w", s, err)
	}
	if pct {
		return HPercent, n, nil
	}
	return HPixel, n, nil
}

// FormatX is the inverse of ParseX.
func FormatX(a XAttr, n int) string { return formatAnchored(uint8(a), n, "c", "r") }

// FormatY is the inverse of ParseY.
func FormatY(a YAttr, n int) string { return formatAnchored(uint8(a), n, "m", "b") }

// FormatW is the inverse of ParseW.
func FormatW(a WAttr, n int) string { return formatSize(a == WPercent, n) }

// FormatH is the inverse of ParseH.
func FormatH(a HAttr, n int) string { return formatSize(a == HPercent, n) }

// parseAnchored returns attr 0 (pixel), 1 (percent), 2 (center/middle) or
// 3 (right/bottom). The numeric values line up with XAttr and YAttr.
func parseAnchored(s, center, far string) (uint8, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty value")
	}
	for attr, tag := range map[uint8]string{2: center, 3: far} {
		if s == tag {
			return attr, 0, nil
		}
		if rest, ok := strings.CutPrefix(s, tag+":"); ok {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return 0, 0, err
			}
			return attr, n, nil
		}
	}
	pct, n, err := parseSize(s)
	if err != nil {
		return 0, 0, err
	}
	if pct {
		return 1, n, nil
	}
	return 0, n, nil
}

func parseSize(s string) (bool, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, 0, fmt.Errorf("empty value")
	}
	pct := false
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		pct = true
		s = rest
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false, 0, err
	}
	return pct, n, nil
}

func formatAnchored(attr uint8, n int, center, far string) string {
	switch attr {
	case 1:
		return strconv.Itoa(n) + "%"
	case 2, 3:
		tag := center
		if attr == 3 {
			tag = far
		}
		if n == 0 {
			return tag
		}
		return tag + ":" + strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}

func formatSize(pct bool, n int) string {
	if pct {
		return strconv.Itoa(n) + "%"
	}
	return strconv.Itoa(n)
}
