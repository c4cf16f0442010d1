package transport

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/go-logr/stdr"

	"github.com/mozilla-services/amqpd/broker"
	"github.com/mozilla-services/amqpd/message"
)

// clientHandshake drives the wire side of spec.md 4.3's handshake over a
// net.Pipe, the way a real client would, and returns the reader/writer left
// positioned right after Open-Ok.
func clientHandshake(t *testing.T, conn net.Conn) (*bufio.Reader, *bufio.Writer) {
	t.Helper()
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	if _, err := w.Write([]byte("AMQP\x00\x00\x09\x01")); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	mustReadMethod(t, r, message.MethodConnectionStart)

	if err := WriteMethodFrame(w, 0, &message.ConnectionStartOk{
		ClientProperties: message.Table{},
		Mechanism:        "PLAIN",
		Response:         []byte("\x00guest\x00guest"),
		Locale:           "en_US",
	}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	mustReadMethod(t, r, message.MethodConnectionTune)

	if err := WriteMethodFrame(w, 0, &message.ConnectionTuneOk{ChannelMax: 0, FrameMax: 131072, Heartbeat: 0}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	if err := WriteMethodFrame(w, 0, &message.ConnectionOpen{VirtualHost: "/"}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	mustReadMethod(t, r, message.MethodConnectionOpenOk)
	return r, w
}

func mustReadMethod(t *testing.T, r *bufio.Reader, wantMethodID uint16) message.Method {
	t.Helper()
	f, err := ReadFrame(r, NoFrameLimit())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	m, err := message.ParseMethod(f.Payload)
	if err != nil {
		t.Fatalf("parse method: %v", err)
	}
	if m.MethodID() != wantMethodID {
		t.Fatalf("got method id %d, want %d", m.MethodID(), wantMethodID)
	}
	return m
}

// TestEndToEndPublishConsume drives spec.md 8's end-to-end scenario:
// handshake, declare+consume a queue, publish on the default exchange, and
// check the consumer receives exactly the published bytes.
func TestEndToEndPublishConsume(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	log := stdr.New(nil)
	reg := broker.NewRegistry(log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewConn(serverConn, reg, log).Serve()
	}()

	r, w := clientHandshake(t, clientConn)

	if err := WriteMethodFrame(w, 1, &message.ChannelOpen{}); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	mustReadMethod(t, r, message.MethodChannelOpenOk)

	if err := WriteMethodFrame(w, 1, &message.QueueDeclare{Queue: "q1"}); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	mustReadMethod(t, r, message.MethodQueueDeclareOk)

	if err := WriteMethodFrame(w, 1, &message.BasicConsume{Queue: "q1", ConsumerTag: "c1"}); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	mustReadMethod(t, r, message.MethodBasicConsumeOk)

	if err := WriteMethodFrame(w, 1, &message.BasicPublish{Exchange: "", RoutingKey: "q1"}); err != nil {
		t.Fatal(err)
	}
	if err := WriteHeaderFrame(w, 1, &message.ContentHeader{ClassID: message.ClassBasic, BodySize: 5}); err != nil {
		t.Fatal(err)
	}
	if err := WriteFrame(w, FrameBody, 1, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	deliver := mustReadMethod(t, r, message.MethodBasicDeliver).(*message.BasicDeliver)
	if deliver.ConsumerTag != "c1" {
		t.Fatalf("got consumer tag %q, want c1", deliver.ConsumerTag)
	}
	hf, err := ReadFrame(r, NoFrameLimit())
	if err != nil || hf.Type != FrameHeader {
		t.Fatalf("expected header frame, got %+v err=%v", hf, err)
	}
	header, err := message.ParseContentHeader(hf.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if header.BodySize != 5 {
		t.Fatalf("body size = %d, want 5", header.BodySize)
	}
	bf, err := ReadFrame(r, NoFrameLimit())
	if err != nil || bf.Type != FrameBody || string(bf.Payload) != "hello" {
		t.Fatalf("expected body 'hello', got %+v err=%v", bf, err)
	}

	if err := WriteMethodFrame(w, 1, &message.ChannelClose{ReplyCode: 200}); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	mustReadMethod(t, r, message.MethodChannelCloseOk)

	clientConn.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server connection did not exit after client close")
	}
}

func TestBadFrameEndMarkerClosesConnection(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	log := stdr.New(nil)
	reg := broker.NewRegistry(log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewConn(serverConn, reg, log).Serve()
	}()

	r, w := clientHandshake(t, clientConn)

	// A method frame with a corrupted end marker (spec.md 8, scenario 5).
	raw := []byte{1, 0, 1, 0, 0, 0, 4, 0, 20, 0, 10, 0x00}
	if _, err := w.Write(raw); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	closeMethod := mustReadMethod(t, r, message.MethodConnectionClose).(*message.ConnectionClose)
	if closeMethod.ReplyCode != broker.ReplyFrameError {
		t.Fatalf("got reply code %d, want %d", closeMethod.ReplyCode, broker.ReplyFrameError)
	}

	clientConn.Close()
	<-done
}
