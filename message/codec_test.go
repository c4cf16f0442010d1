package message

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestPackBits(t *testing.T) {
	got := PackBits([]bool{true, false, true})
	if len(got) != 1 || got[0] != 0b00000101 {
		t.Fatalf("PackBits([t,f,t]) = %08b, want 00000101", got[0])
	}

	got = PackBits([]bool{true, true, true, true, false, false, false, false, true, false, true, true})
	want := []byte{0x0F, 0x0D}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PackBits(...) = %v, want %v", got, want)
	}
}

func TestUnpackBitsRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, true, false, false, true, true}
	packed := PackBits(bits)
	unpacked := UnpackBits(packed, len(bits))
	if !reflect.DeepEqual(bits, unpacked) {
		t.Fatalf("UnpackBits(PackBits(%v)) = %v", bits, unpacked)
	}
}

func TestShortstrRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteShortstr("hello"); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes())
	got, err := r.ReadShortstr()
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestLongstrRoundTrip(t *testing.T) {
	w := NewWriter()
	body := []byte("a longer byte string that doesn't fit in a shortstr's tiny budget")
	w.WriteLongstr(body)
	r := NewReader(w.Bytes())
	got, err := r.ReadLongstr()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(body) {
		t.Fatalf("got %q, want %q", got, body)
	}
}

func TestFieldTableRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		table := randomTable(r, 3)
		w := NewWriter()
		if err := w.WriteTable(table); err != nil {
			t.Fatalf("write table: %v", err)
		}
		rr := NewReader(w.Bytes())
		got, err := rr.ReadTable()
		if err != nil {
			t.Fatalf("read table: %v", err)
		}
		if !reflect.DeepEqual(normalizeTable(table), normalizeTable(got)) {
			t.Fatalf("round trip mismatch:\n got=%#v\nwant=%#v", got, table)
		}
	}
}

// normalizeTable replaces nil/empty map distinctions that don't survive the
// wire (an empty table and a nil table both encode to zero entries).
func normalizeTable(t Table) Table {
	if len(t) == 0 {
		return Table{}
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v FieldValue) FieldValue {
	if v.Kind == FieldTable {
		v.Table = normalizeTable(v.Table)
	}
	if v.Kind == FieldArray {
		arr := make([]FieldValue, len(v.Array))
		for i, e := range v.Array {
			arr[i] = normalizeValue(e)
		}
		v.Array = arr
	}
	return v
}

func TestMethodRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	const iterations = 10000
	for i := 0; i < iterations; i++ {
		m := RandomMethod(r)
		encoded := WriteMethod(m)
		decoded, err := ParseMethod(encoded)
		if err != nil {
			t.Fatalf("iteration %d: parse(%T) failed: %v", i, m, err)
		}
		reencoded := WriteMethod(decoded)
		if !reflect.DeepEqual(encoded, reencoded) {
			t.Fatalf("iteration %d: round trip mismatch for %T:\n in=%v\nout=%v", i, m, encoded, reencoded)
		}
	}
}

func TestContentHeaderRoundTrip(t *testing.T) {
	deliveryMode := uint8(2)
	priority := uint8(5)
	contentType := "application/json"
	ts := uint64(1700000000)
	h := &ContentHeader{
		ClassID:      ClassBasic,
		BodySize:     1234,
		ContentType:  &contentType,
		DeliveryMode: &deliveryMode,
		Priority:     &priority,
		Timestamp:    &ts,
		Headers:      Table{"x-retry": FieldValue{Kind: FieldI32, I32: 3}},
	}
	encoded := WriteContentHeader(h)
	decoded, err := ParseContentHeader(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.BodySize != h.BodySize || *decoded.ContentType != *h.ContentType ||
		*decoded.DeliveryMode != *h.DeliveryMode || *decoded.Priority != *h.Priority ||
		*decoded.Timestamp != *h.Timestamp {
		t.Fatalf("content header round trip mismatch: %+v", decoded)
	}
	if decoded.ReplyTo != nil || decoded.AppID != nil {
		t.Fatalf("unset properties should round trip as absent, got %+v", decoded)
	}
}
