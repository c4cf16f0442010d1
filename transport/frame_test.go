package transport

import (
	"bufio"
	"bytes"
	"testing"
)

func TestReadFrameValid(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 0, 0, 3, 1, 2, 3, 0xCE}
	f, err := ReadFrame(bufio.NewReader(bytes.NewReader(raw)), NoFrameLimit())
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != FrameMethod || f.Channel != 0 || !bytes.Equal(f.Payload, []byte{1, 2, 3}) {
		t.Fatalf("got %+v", f)
	}
}

func TestReadFrameBadEndMarker(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 0, 0, 3, 1, 2, 3, 0x00}
	_, err := ReadFrame(bufio.NewReader(bytes.NewReader(raw)), NoFrameLimit())
	if _, ok := err.(*FrameError); !ok {
		t.Fatalf("expected FrameError, got %v (%T)", err, err)
	}
}

func TestReadFrameHeartbeatOnNonZeroChannel(t *testing.T) {
	raw := []byte{8, 0, 1, 0, 0, 0, 0, 0xCE}
	_, err := ReadFrame(bufio.NewReader(bytes.NewReader(raw)), NoFrameLimit())
	if _, ok := err.(*FrameError); !ok {
		t.Fatalf("expected FrameError, got %v (%T)", err, err)
	}
}

func TestReadFrameExceedsLimit(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 0, 0, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xCE}
	_, err := ReadFrame(bufio.NewReader(bytes.NewReader(raw)), LimitBytes(4))
	if _, ok := err.(*FrameError); !ok {
		t.Fatalf("expected FrameError for oversized frame, got %v (%T)", err, err)
	}
}

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, FrameBody, 7, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	f, err := ReadFrame(bufio.NewReader(&buf), NoFrameLimit())
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != FrameBody || f.Channel != 7 || string(f.Payload) != "hello" {
		t.Fatalf("got %+v", f)
	}
}

func TestSASLPlainParsing(t *testing.T) {
	resp := append(append([]byte("guest\x00guest\x00"), []byte("pw")...))
	creds, err := ParsePlainResponse(resp)
	if err != nil {
		t.Fatal(err)
	}
	if creds.AuthcID != "guest" || creds.Password != "pw" {
		t.Fatalf("got %+v", creds)
	}
}

func TestSASLPlainMalformed(t *testing.T) {
	if _, err := ParsePlainResponse([]byte("no-nuls-here")); err == nil {
		t.Fatal("expected error for malformed SASL response")
	}
}
