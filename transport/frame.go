// Package transport implements the per-connection AMQP 0-9-1 runtime: frame
// I/O, the handshake, and the connection/channel state machine described in
// spec.md 4.3. Its shape is grounded on heka's TcpInput (plugins/tcp): one
// goroutine per accepted connection, an explicit stop channel, a bounded
// inbound mailbox instead of a shared decoder pool.
package transport

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mozilla-services/amqpd/message"
)

const FrameEnd = 0xCE

type FrameType uint8

const (
	FrameMethod    FrameType = 1
	FrameHeader    FrameType = 2
	FrameBody      FrameType = 3
	FrameHeartbeat FrameType = 8
)

// Frame is the transport-level envelope: type, channel, and raw payload
// (spec.md 4.1). Method/header/body decoding happens one layer up, in the
// connection runtime, once a channel's assembly state says what to expect.
type Frame struct {
	Type    FrameType
	Channel uint16
	Payload []byte
}

// FrameSizeLimit represents the negotiated max_frame_size. The wire value 0
// means "unbounded" (spec.md 4.1, 9) — that can't be represented as a literal
// zero without every size check silently failing closed, so the zero value
// of FrameSizeLimit means "no limit" and a non-zero Bytes field is an actual
// cap.
type FrameSizeLimit struct {
	Bytes uint32
}

func NoFrameLimit() FrameSizeLimit       { return FrameSizeLimit{} }
func LimitBytes(n uint32) FrameSizeLimit { return FrameSizeLimit{Bytes: n} }

func (l FrameSizeLimit) Unbounded() bool   { return l.Bytes == 0 }
func (l FrameSizeLimit) Exceeds(n uint32) bool {
	return !l.Unbounded() && n > l.Bytes
}

// ReadFrame reads one frame from r, enforcing max. A zero-value max (see
// NoFrameLimit) performs no size check.
func ReadFrame(r *bufio.Reader, max FrameSizeLimit) (*Frame, error) {
	header := make([]byte, 7)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	typ := FrameType(header[0])
	channel := binary.BigEndian.Uint16(header[1:3])
	size := binary.BigEndian.Uint32(header[3:7])

	if max.Exceeds(size) {
		return nil, &FrameError{Reason: fmt.Sprintf("frame size %d exceeds negotiated limit %d", size, max.Bytes)}
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	end := make([]byte, 1)
	if _, err := io.ReadFull(r, end); err != nil {
		return nil, err
	}
	if end[0] != FrameEnd {
		return nil, &FrameError{Reason: fmt.Sprintf("bad frame end marker 0x%02X", end[0])}
	}

	if typ == FrameHeartbeat && channel != 0 {
		return nil, &FrameError{Reason: "heartbeat frame on non-zero channel"}
	}

	return &Frame{Type: typ, Channel: channel, Payload: payload}, nil
}

// WriteFrame serializes type/channel/payload plus the end marker. The
// connection runtime is the only writer of its socket (spec.md 5,
// "Socket half-duplex"), so no framing-level locking is needed here.
func WriteFrame(w io.Writer, typ FrameType, channel uint16, payload []byte) error {
	header := make([]byte, 7)
	header[0] = byte(typ)
	binary.BigEndian.PutUint16(header[1:3], channel)
	binary.BigEndian.PutUint32(header[3:7], uint32(len(payload)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err := w.Write([]byte{FrameEnd})
	return err
}

func WriteMethodFrame(w io.Writer, channel uint16, m message.Method) error {
	return WriteFrame(w, FrameMethod, channel, message.WriteMethod(m))
}

func WriteHeaderFrame(w io.Writer, channel uint16, h *message.ContentHeader) error {
	return WriteFrame(w, FrameHeader, channel, message.WriteContentHeader(h))
}

// WriteBodyFrames splits body across frames no larger than max (spec.md 4.3,
// "Sending content"). An unbounded limit emits the whole body as one frame.
func WriteBodyFrames(w io.Writer, channel uint16, body []byte, max FrameSizeLimit) error {
	if len(body) == 0 {
		return WriteFrame(w, FrameBody, channel, nil)
	}
	chunk := len(body)
	if !max.Unbounded() && int(max.Bytes) < chunk {
		chunk = int(max.Bytes)
	}
	for offset := 0; offset < len(body); offset += chunk {
		end := offset + chunk
		if end > len(body) {
			end = len(body)
		}
		if err := WriteFrame(w, FrameBody, channel, body[offset:end]); err != nil {
			return err
		}
	}
	return nil
}
