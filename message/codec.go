package message

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Reader is a cursor over a method/content-header payload. It is the Go
// stand-in for the nom-style parser combinators of the original
// implementation (amqp_transport/src/methods/parse_helper.rs): each Read*
// method consumes a fixed or length-prefixed chunk and returns a
// *SyntaxError labelled with what it was trying to read.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) bytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, NewSyntaxError("unexpected end of payload")
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadOctet() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, WrapSyntax(err, "octet")
	}
	return b[0], nil
}

func (r *Reader) ReadShort() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, WrapSyntax(err, "short")
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadLong() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, WrapSyntax(err, "long")
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadLongLong() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, WrapSyntax(err, "longlong")
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadTimestamp() (uint64, error) {
	v, err := r.ReadLongLong()
	if err != nil {
		return 0, WrapSyntax(err, "timestamp")
	}
	return v, nil
}

// ReadShortstr reads a u8-length-prefixed UTF-8 string (<= 255 bytes).
func (r *Reader) ReadShortstr() (string, error) {
	n, err := r.ReadOctet()
	if err != nil {
		return "", WrapSyntax(err, "shortstr length")
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", WrapSyntax(err, "shortstr body")
	}
	return string(b), nil
}

// ReadLongstr reads a u32-length-prefixed byte string.
func (r *Reader) ReadLongstr() ([]byte, error) {
	n, err := r.ReadLong()
	if err != nil {
		return nil, WrapSyntax(err, "longstr length")
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return nil, WrapSyntax(err, "longstr body")
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadBits reads n consecutive packed bit fields.
func (r *Reader) ReadBits(n int) ([]bool, error) {
	nbytes := (n + 7) / 8
	b, err := r.bytes(nbytes)
	if err != nil {
		return nil, WrapSyntax(err, "bit field")
	}
	return UnpackBits(b, n), nil
}

// Writer accumulates an encoded method/content-header payload.
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) WriteOctet(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) WriteShort(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteLong(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteLongLong(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteTimestamp(v uint64) { w.WriteLongLong(v) }

func (w *Writer) WriteShortstr(s string) error {
	if len(s) > 255 {
		return errors.New("shortstr exceeds 255 bytes")
	}
	w.WriteOctet(uint8(len(s)))
	w.buf.WriteString(s)
	return nil
}

func (w *Writer) WriteLongstr(b []byte) {
	w.WriteLong(uint32(len(b)))
	w.buf.Write(b)
}

func (w *Writer) WriteBits(bits []bool) {
	w.buf.Write(PackBits(bits))
}

// Writer implements io.Writer so it can be handed to helpers expecting
// one (e.g. binary.Write for exotic types).
var _ io.Writer = (*Writer)(nil)

func (w *Writer) Write(p []byte) (int, error) { return w.buf.Write(p) }
