package transport

import "github.com/mozilla-services/amqpd/broker"

// FrameError is the framing-layer failure spec.md 4.1 calls out: bad end
// marker, oversized frame, or a heartbeat on the wrong channel. It always
// escalates to a connection exception (reply-code 501); AsConnException
// does that conversion, with class and method ids left zero.
type FrameError struct {
	Reason string
}

func (e *FrameError) Error() string { return "frame error: " + e.Reason }

func (e *FrameError) AsConnException() *broker.ConnException {
	return broker.NewConnException(broker.ReplyFrameError, e.Reason, 0, 0)
}
