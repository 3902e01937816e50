package binel

import (
	"bytes"
	"encoding/binary"
	"math"
)

// magic identifies the format at the start of every encoded stream.
var magic = [4]byte{'L', 'V', 'L', '1'}

// stringTable interns element names and attribute keys (the strings that
// repeat heavily across a tree) so the encoded form need not repeat them.
// Attribute text *values* are written inline rather than interned: unlike
// names and keys, values such as tile-grid text blobs are usually unique,
// so interning them would grow the table without shrinking the payload.
type stringTable struct {
	order []string
	index map[string]int
}

func newStringTable() *stringTable {
	return &stringTable{index: make(map[string]int)}
}

func (t *stringTable) intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.order)
	t.index[s] = i
	t.order = append(t.order, s)
	return i
}

func collectStrings(e *Element, t *stringTable) {
	t.intern(e.Name)
	for _, a := range e.attrs {
		t.intern(a.key)
	}
	for _, c := range e.Children {
		collectStrings(c, t)
	}
}

// Encode serializes root into the binary element tree format, prefixed by
// the package string. It is a left inverse of Decode for any tree Decode can
// produce.
func Encode(pkg string, root *Element) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	writeString(&buf, pkg)

	table := newStringTable()
	collectStrings(root, table)

	writeUvarint(&buf, uint64(len(table.order)))
	for _, s := range table.order {
		writeString(&buf, s)
	}

	if err := encodeElement(&buf, root, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(buf *bytes.Buffer, e *Element, table *stringTable) error {
	writeUvarint(buf, uint64(table.index[e.Name]))
	writeUvarint(buf, uint64(len(e.attrs)))
	for _, a := range e.attrs {
		writeUvarint(buf, uint64(table.index[a.key]))
		buf.WriteByte(byte(a.value.kind))
		switch a.value.kind {
		case KindBool:
			if a.value.b {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		case KindInt:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(a.value.i))
			buf.Write(b[:])
		case KindFloat:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], math.Float32bits(a.value.f))
			buf.Write(b[:])
		case KindText:
			writeString(buf, a.value.s)
		}
	}

	writeUvarint(buf, uint64(len(e.Children)))
	for _, c := range e.Children {
		if err := encodeElement(buf, c, table); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses the binary element tree format, returning the package string
// and the root element.
func Decode(data []byte) (pkg string, root *Element, err error) {
	r := &reader{buf: data}

	var m [4]byte
	if !r.readBytes(m[:]) || m != magic {
		return "", nil, &ParseError{Description: "bad magic header"}
	}

	pkg, ok := r.readString()
	if !ok {
		return "", nil, &ParseError{Description: "truncated package string"}
	}

	n, ok := r.readUvarint()
	if !ok {
		return "", nil, &ParseError{Description: "truncated string table length"}
	}
	table := make([]string, n)
	for i := range table {
		s, ok := r.readString()
		if !ok {
			return "", nil, &ParseError{Description: "truncated string table entry"}
		}
		table[i] = s
	}

	root, err = decodeElement(r, table)
	if err != nil {
		return "", nil, err
	}
	return pkg, root, nil
}

func decodeElement(r *reader, table []string) (*Element, error) {
	nameIdx, ok := r.readUvarint()
	if !ok || int(nameIdx) >= len(table) {
		return nil, &ParseError{Description: "bad element name index"}
	}
	e := NewElement(table[nameIdx])

	attrCount, ok := r.readUvarint()
	if !ok {
		return nil, &ParseError{Description: "truncated attribute count"}
	}
	for i := uint64(0); i < attrCount; i++ {
		keyIdx, ok := r.readUvarint()
		if !ok || int(keyIdx) >= len(table) {
			return nil, &ParseError{Description: "bad attribute key index"}
		}
		kindByte, ok := r.readByte()
		if !ok {
			return nil, &ParseError{Description: "truncated attribute kind"}
		}
		var v AttrValue
		switch Kind(kindByte) {
		case KindBool:
			b, ok := r.readByte()
			if !ok {
				return nil, &ParseError{Description: "truncated bool attribute"}
			}
			v = Bool(b != 0)
		case KindInt:
			var b [4]byte
			if !r.readBytes(b[:]) {
				return nil, &ParseError{Description: "truncated int attribute"}
			}
			v = Int(int32(binary.BigEndian.Uint32(b[:])))
		case KindFloat:
			var b [4]byte
			if !r.readBytes(b[:]) {
				return nil, &ParseError{Description: "truncated float attribute"}
			}
			v = Float(math.Float32frombits(binary.BigEndian.Uint32(b[:])))
		case KindText:
			s, ok := r.readString()
			if !ok {
				return nil, &ParseError{Description: "truncated text attribute"}
			}
			v = Text(s)
		default:
			return nil, &ParseError{Description: "unknown attribute kind tag"}
		}
		e.Set(table[keyIdx], v)
	}

	childCount, ok := r.readUvarint()
	if !ok {
		return nil, &ParseError{Description: "truncated child count"}
	}
	for i := uint64(0); i < childCount; i++ {
		child, err := decodeElement(r, table)
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	buf.Write(b[:n])
}

// reader walks data front-to-back, tracking its own position. It never
// panics on truncated input; every method reports success via its bool
// return so the caller can turn truncation into a ParseError.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) readByte() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *reader) readBytes(dst []byte) bool {
	if r.pos+len(dst) > len(r.buf) {
		return false
	}
	copy(dst, r.buf[r.pos:r.pos+len(dst)])
	r.pos += len(dst)
	return true
}

func (r *reader) readUvarint() (uint64, bool) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, false
	}
	r.pos += n
	return v, true
}

func (r *reader) readString() (string, bool) {
	n, ok := r.readUvarint()
	if !ok || r.pos+int(n) > len(r.buf) {
		return "", false
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, true
}
