package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-drift/uiloader/pkg/widgets"
)

// Encode writes doc in the binary format. An empty doc.Version is written
// as CurrentVersion.
func Encode(w io.Writer, doc *Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("loader: encode: empty document")
	}
	version := doc.Version
	if version == "" {
		version = CurrentVersion
	}
	if err := CheckVersion(version); err != nil {
		return err
	}
	if len(version) > math.MaxUint8 {
		return fmt.Errorf("loader: encode: version too long")
	}

	bw := bufio.NewWriter(w)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], Magic)
	bw.Write(buf[:])
	bw.WriteByte(byte(len(version)))
	bw.WriteString(version)
	if err := encodeNode(bw, doc.Root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeNode(w *bufio.Writer, n *Node, depth int) error {
	if depth >= MaxDepth {
		return fmt.Errorf("loader: encode: nesting deeper than %d", MaxDepth)
	}
	d := n.Desc
	if d.Type == widgets.TypeNone {
		return fmt.Errorf("loader: encode: unknown widget type %q", d.TypeName)
	}
	l := d.Layout
	for _, v := range []int{l.X, l.Y, l.W, l.H} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("loader: encode: %s: layout value %d out of range", d.Name(), v)
		}
	}
	if len(n.Children) > math.MaxUint16 {
		return fmt.Errorf("loader: encode: %s: too many children", d.Name())
	}

	var b [2]byte
	put16 := func(v uint16) {
		binary.LittleEndian.PutUint16(b[:], v)
		w.Write(b[:])
	}
	put16(uint16(d.Type))
	w.WriteByte(byte(l.XAttr))
	w.WriteByte(byte(l.YAttr))
	w.WriteByte(byte(l.WAttr))
	w.WriteByte(byte(l.HAttr))
	for _, v := range []int{l.X, l.Y, l.W, l.H} {
		put16(uint16(int16(v)))
	}

	for _, p := range n.Props {
		if p.Name == "" {
			return fmt.Errorf("loader: encode: %s: empty property name", d.Name())
		}
		if strings.IndexByte(p.Name, 0) >= 0 || strings.IndexByte(p.Value, 0) >= 0 {
			return fmt.Errorf("loader: encode: %s.%s: NUL byte in property", d.Name(), p.Name)
		}
		w.WriteString(p.Name)
		w.WriteByte(0)
		w.WriteString(p.Value)
		w.WriteByte(0)
	}
	w.WriteByte(0)

	put16(uint16(len(n.Children)))
	for _, c := range n.Children {
		if err := encodeNode(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
