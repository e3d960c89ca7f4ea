// Package value provides the typed property values stored on widgets.
package value

import (
	"strconv"
	"unicode/utf16"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	// KindInvalid is the zero Value.
	KindInvalid Kind = iota
	// KindInt holds an integer.
	KindInt
	// KindString holds a UTF-8 string.
	KindString
	// KindWString holds UTF-16 text, the representation widgets render.
	KindWString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindWString:
		return "wstring"
	default:
		return "invalid"
	}
}

// Value is a small tagged union. The zero Value is invalid.
type Value struct {
	kind Kind
	i    int64
	s    string
	ws   []uint16
}

// Int returns an integer value.
func Int(v int) Value { return Value{kind: KindInt, i: int64(v)} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// WString returns a UTF-16 text value. The slice is copied.
func WString(ws []uint16) Value {
	cp := make([]uint16, len(ws))
	copy(cp, ws)
	return Value{kind: KindWString, ws: cp}
}

// Text transcodes UTF-8 to UTF-16 and returns it as a WString value.
// Invalid UTF-8 bytes become U+FFFD.
func Text(s string) Value {
	return Value{kind: KindWString, ws: utf16.Encode([]rune(s))}
}

// Kind reports the held type.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Int returns the integer and whether v is an int.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int(v.i), true
}

// Str returns the string and whether v is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// WStr returns a copy of the UTF-16 text and whether v is a wstring.
func (v Value) WStr() ([]uint16, bool) {
	if v.kind != KindWString {
		return nil, false
	}
	cp := make([]uint16, len(v.ws))
	copy(cp, v.ws)
	return cp, true
}

// String formats v for display. WString values are decoded back to UTF-8.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindWString:
		return string(utf16.Decode(v.ws))
	default:
		return "<invalid>"
	}
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindWString:
		if len(v.ws) != len(o.ws) {
			return false
		}
		for i := range v.ws {
			if v.ws[i] != o.ws[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}
