package loader

import (
	"encoding/binary"
	"errors"
	"fmt"

	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/widgets"
)

// Magic starts every binary description (little endian).
const Magic uint32 = 0x11223344

// ErrBadMagic is returned when binary data does not start with Magic.
var ErrBadMagic = errors.New("loader: bad magic")

// Binary layout, all integers little endian:
//
//	header: u32 magic | u8 len | version bytes
//	node:   u16 type | u8 xattr yattr wattr hattr | i16 x y w h
//	        (key\0 value\0)* \0
//	        u16 child count | child nodes
//
// A description holds exactly one root node and nothing after it.

// Binary loads binary descriptions.
type Binary struct{}

// Load implements Loader. Callbacks fire as nodes are decoded, so a parse
// error can leave a partly built tree behind.
func (Binary) Load(data []byte, b Builder) error {
	r := &binReader{data: data}
	if err := r.header(); err != nil {
		return err
	}
	if err := r.node(b, 0); err != nil {
		return err
	}
	if r.off != len(r.data) {
		return r.fail("trailing data after root node", nil)
	}
	return nil
}

// DecodeBinary decodes a binary description into a Document.
func DecodeBinary(data []byte) (*Document, error) {
	r := &binReader{data: data}
	if err := r.header(); err != nil {
		return nil, err
	}
	rec := &recorder{}
	if err := r.node(rec, 0); err != nil {
		return nil, err
	}
	if r.off != len(r.data) {
		return nil, r.fail("trailing data after root node", nil)
	}
	return &Document{Version: r.version, Root: rec.root}, nil
}

type binReader struct {
	data    []byte
	off     int
	version string
}

func (r *binReader) fail(reason string, err error) error {
	return &uierrors.ParseError{Format: "binary", Offset: int64(r.off), Reason: reason, Err: err}
}

func (r *binReader) need(n int) bool {
	return r.off+n <= len(r.data)
}

func (r *binReader) u8() (uint8, error) {
	if !r.need(1) {
		return 0, r.fail("unexpected end of data", nil)
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *binReader) u16() (uint16, error) {
	if !r.need(2) {
		return 0, r.fail("unexpected end of data", nil)
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *binReader) i16() (int, error) {
	v, err := r.u16()
	return int(int16(v)), err
}

func (r *binReader) cstring() (string, error) {
	for i := r.off; i < len(r.data); i++ {
		if r.data[i] == 0 {
			s := string(r.data[r.off:i])
			r.off = i + 1
			return s, nil
		}
	}
	return "", r.fail("unterminated string", nil)
}

func (r *binReader) header() error {
	if !r.need(4) || binary.LittleEndian.Uint32(r.data) != Magic {
		return r.fail("missing magic", ErrBadMagic)
	}
	r.off = 4
	n, err := r.u8()
	if err != nil {
		return err
	}
	if !r.need(int(n)) {
		return r.fail("truncated version", nil)
	}
	r.version = string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	if err := CheckVersion(r.version); err != nil {
		return r.fail("version", err)
	}
	return nil
}

func (r *binReader) desc() (Desc, error) {
	var d Desc
	typ, err := r.u16()
	if err != nil {
		return d, err
	}
	d.Type = widgets.Type(typ)

	var attrs [4]uint8
	for i := range attrs {
		if attrs[i], err = r.u8(); err != nil {
			return d, err
		}
	}
	var nums [4]int
	for i := range nums {
		if nums[i], err = r.i16(); err != nil {
			return d, err
		}
	}
	d.Layout = layout.Spec{
		XAttr: layout.XAttr(attrs[0]),
		YAttr: layout.YAttr(attrs[1]),
		WAttr: layout.WAttr(attrs[2]),
		HAttr: layout.HAttr(attrs[3]),
		X:     nums[0],
		Y:     nums[1],
		W:     nums[2],
		H:     nums[3],
	}
	return d, nil
}

func (r *binReader) node(b Builder, depth int) error {
	if depth >= MaxDepth {
		return r.fail(fmt.Sprintf("nesting deeper than %d", MaxDepth), nil)
	}
	d, err := r.desc()
	if err != nil {
		return err
	}
	if err := b.OnWidgetStart(d); err != nil {
		return err
	}
	for {
		key, err := r.cstring()
		if err != nil {
			return err
		}
		if key == "" {
			break
		}
		val, err := r.cstring()
		if err != nil {
			return err
		}
		emitProp(b, d, key, val)
	}
	if err := b.OnWidgetPropEnd(); err != nil {
		return err
	}
	count, err := r.u16()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if err := r.node(b, depth+1); err != nil {
			return err
		}
	}
	return b.OnWidgetEnd()
}
