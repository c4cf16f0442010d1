package message

import (
	"fmt"
	"math"
	"sort"
)

// Table is an AMQP field table: an ordered-on-the-wire, last-write-wins set
// of named, typed values (spec.md 4.2 "Field tables"). Duplicate keys in the
// input are discarded in favour of the later occurrence, matching the
// protocol's documented ambiguity resolution.
type Table map[string]FieldValue

// FieldValue is the tagged union of field-table value types. Exactly one of
// the typed accessors below is meaningful, selected by Kind.
type FieldValue struct {
	Kind  byte // one of the Field* tag constants
	Bool  bool
	I8    int8
	U8    uint8
	I16   int16
	U16   uint16
	I32   int32
	U32   uint32
	I64   int64
	U64   uint64
	F32   float32
	F64   float64
	DecimalScale uint8
	DecimalValue uint32
	Str   string
	Bytes []byte
	Array []FieldValue
	Table Table
	// Void carries no payload (Kind == FieldVoid).
}

// Wire tags for field-table values, per spec.md 4.2.
const (
	FieldBool    = 't'
	FieldI8      = 'b'
	FieldU8      = 'B'
	FieldI16     = 'U'
	FieldU16     = 'u'
	FieldI32     = 'I'
	FieldU32     = 'i'
	FieldI64     = 'L'
	FieldU64     = 'l'
	FieldF32     = 'f'
	FieldF64     = 'd'
	FieldDecimal = 'D'
	FieldShortstr = 's'
	FieldLongstr  = 'S'
	FieldArray    = 'A'
	FieldTimestamp = 'T'
	FieldTable    = 'F'
	FieldVoid     = 'V'
)

func BoolValue(b bool) FieldValue        { return FieldValue{Kind: FieldBool, Bool: b} }
func LongstrValue(s string) FieldValue   { return FieldValue{Kind: FieldLongstr, Str: s} }
func TableValue(t Table) FieldValue      { return FieldValue{Kind: FieldTable, Table: t} }
func TimestampValue(v uint64) FieldValue { return FieldValue{Kind: FieldTimestamp, U64: v} }

// ReadTable parses a field table: a u32 total-byte-size followed by
// (shortstr name, typed value) pairs until the size is exhausted.
func (r *Reader) ReadTable() (Table, error) {
	size, err := r.ReadLong()
	if err != nil {
		return nil, WrapSyntax(err, "table size")
	}
	if r.Remaining() < int(size) {
		return nil, NewSyntaxError("table body truncated")
	}
	end := r.pos + int(size)
	out := make(Table)
	for r.pos < end {
		name, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "table field name")
		}
		val, err := r.readFieldValue()
		if err != nil {
			return nil, WrapSyntax(err, fmt.Sprintf("table field %q", name))
		}
		out[name] = val // last-write-wins on duplicate keys
	}
	if r.pos != end {
		return nil, NewSyntaxError("table size mismatch")
	}
	return out, nil
}

func (r *Reader) readFieldValue() (FieldValue, error) {
	tag, err := r.ReadOctet()
	if err != nil {
		return FieldValue{}, WrapSyntax(err, "field value tag")
	}
	switch tag {
	case FieldBool:
		v, err := r.ReadOctet()
		return FieldValue{Kind: FieldBool, Bool: v != 0}, err
	case FieldI8:
		v, err := r.ReadOctet()
		return FieldValue{Kind: FieldI8, I8: int8(v)}, err
	case FieldU8:
		v, err := r.ReadOctet()
		return FieldValue{Kind: FieldU8, U8: v}, err
	case FieldI16:
		v, err := r.ReadShort()
		return FieldValue{Kind: FieldI16, I16: int16(v)}, err
	case FieldU16:
		v, err := r.ReadShort()
		return FieldValue{Kind: FieldU16, U16: v}, err
	case FieldI32:
		v, err := r.ReadLong()
		return FieldValue{Kind: FieldI32, I32: int32(v)}, err
	case FieldU32:
		v, err := r.ReadLong()
		return FieldValue{Kind: FieldU32, U32: v}, err
	case FieldI64:
		v, err := r.ReadLongLong()
		return FieldValue{Kind: FieldI64, I64: int64(v)}, err
	case FieldU64:
		v, err := r.ReadLongLong()
		return FieldValue{Kind: FieldU64, U64: v}, err
	case FieldF32:
		v, err := r.ReadLong()
		return FieldValue{Kind: FieldF32, F32: math.Float32frombits(v)}, err
	case FieldF64:
		v, err := r.ReadLongLong()
		return FieldValue{Kind: FieldF64, F64: math.Float64frombits(v)}, err
	case FieldDecimal:
		scale, err := r.ReadOctet()
		if err != nil {
			return FieldValue{}, err
		}
		val, err := r.ReadLong()
		return FieldValue{Kind: FieldDecimal, DecimalScale: scale, DecimalValue: val}, err
	case FieldShortstr:
		v, err := r.ReadShortstr()
		return FieldValue{Kind: FieldShortstr, Str: v}, err
	case FieldLongstr:
		v, err := r.ReadLongstr()
		return FieldValue{Kind: FieldLongstr, Str: string(v)}, err
	case FieldArray:
		return r.readFieldArray()
	case FieldTimestamp:
		v, err := r.ReadTimestamp()
		return FieldValue{Kind: FieldTimestamp, U64: v}, err
	case FieldTable:
		v, err := r.ReadTable()
		return FieldValue{Kind: FieldTable, Table: v}, err
	case FieldVoid:
		return FieldValue{Kind: FieldVoid}, nil
	default:
		return FieldValue{}, NewSyntaxError(fmt.Sprintf("unknown field type tag %q", tag))
	}
}

func (r *Reader) readFieldArray() (FieldValue, error) {
	size, err := r.ReadLong()
	if err != nil {
		return FieldValue{}, WrapSyntax(err, "array size")
	}
	if r.Remaining() < int(size) {
		return FieldValue{}, NewSyntaxError("array body truncated")
	}
	end := r.pos + int(size)
	var out []FieldValue
	for r.pos < end {
		v, err := r.readFieldValue()
		if err != nil {
			return FieldValue{}, WrapSyntax(err, "array element")
		}
		out = append(out, v)
	}
	if r.pos != end {
		return FieldValue{}, NewSyntaxError("array size mismatch")
	}
	return FieldValue{Kind: FieldArray, Array: out}, nil
}

// WriteTable serializes a field table, including its own length prefix.
// Entries are written in sorted key order, so a table always encodes to the
// same bytes.
func (w *Writer) WriteTable(t Table) error {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	inner := NewWriter()
	for _, name := range names {
		if err := inner.WriteShortstr(name); err != nil {
			return err
		}
		if err := inner.writeFieldValue(t[name]); err != nil {
			return err
		}
	}
	w.WriteLong(uint32(len(inner.Bytes())))
	w.buf.Write(inner.Bytes())
	return nil
}

func (w *Writer) writeFieldValue(v FieldValue) error {
	w.WriteOctet(v.Kind)
	switch v.Kind {
	case FieldBool:
		if v.Bool {
			w.WriteOctet(1)
		} else {
			w.WriteOctet(0)
		}
	case FieldI8:
		w.WriteOctet(uint8(v.I8))
	case FieldU8:
		w.WriteOctet(v.U8)
	case FieldI16:
		w.WriteShort(uint16(v.I16))
	case FieldU16:
		w.WriteShort(v.U16)
	case FieldI32:
		w.WriteLong(uint32(v.I32))
	case FieldU32:
		w.WriteLong(v.U32)
	case FieldI64:
		w.WriteLongLong(uint64(v.I64))
	case FieldU64:
		w.WriteLongLong(v.U64)
	case FieldF32:
		w.WriteLong(math.Float32bits(v.F32))
	case FieldF64:
		w.WriteLongLong(math.Float64bits(v.F64))
	case FieldDecimal:
		w.WriteOctet(v.DecimalScale)
		w.WriteLong(v.DecimalValue)
	case FieldShortstr:
		return w.WriteShortstr(v.Str)
	case FieldLongstr:
		w.WriteLongstr([]byte(v.Str))
	case FieldArray:
		inner := NewWriter()
		for _, elem := range v.Array {
			if err := inner.writeFieldValue(elem); err != nil {
				return err
			}
		}
		w.WriteLong(uint32(len(inner.Bytes())))
		w.buf.Write(inner.Bytes())
	case FieldTimestamp:
		w.WriteTimestamp(v.U64)
	case FieldTable:
		return w.WriteTable(v.Table)
	case FieldVoid:
		// no payload
	default:
		return fmt.Errorf("unknown field value kind %q", v.Kind)
	}
	return nil
}
