package broker

import "github.com/mozilla-services/amqpd/message"

// ChannelStatus is the per-channel content-assembly state machine (spec.md
// 3, "Channel"). It is a closed set of three variants; spec.md 9 asks for a
// tagged-union dispatch rather than a trait hierarchy per state, so this is
// a plain type switch over three structs instead of a method-heavy
// interface with many implementers.
type ChannelStatus interface {
	isChannelStatus()
}

// Default is the idle state: ready for the next method.
type Default struct{}

func (Default) isChannelStatus() {}

// NeedHeader means a content-bearing method has been received and a
// content-header frame is expected next.
type NeedHeader struct {
	ClassID       uint16
	PendingMethod message.Method
}

func (NeedHeader) isChannelStatus() {}

// NeedsBody means the header has been received; body frames accumulate
// until the running total reaches Header.BodySize.
type NeedsBody struct {
	PendingMethod message.Method
	Header        *message.ContentHeader
	Fragments     [][]byte
	received      uint64
}

func (*NeedsBody) isChannelStatus() {}

func (n *NeedsBody) Received() uint64 { return n.received }

// AppendFragment records one body frame and reports whether the body is now
// complete. It returns an error if the running total would exceed the
// declared body size (spec.md 3, "sum(len(fragment)) <= header.body_size").
func (n *NeedsBody) AppendFragment(b []byte) (complete bool, err error) {
	n.Fragments = append(n.Fragments, b)
	n.received += uint64(len(b))
	if n.received > n.Header.BodySize {
		return false, NewChanException(ReplyContentTooLarge, "body size exceeds declared content length",
			message.ClassBasic, n.PendingMethod.MethodID())
	}
	return n.received == n.Header.BodySize, nil
}

// Body concatenates all accumulated fragments into a single contiguous
// slice, once assembly is complete.
func (n *NeedsBody) Body() []byte {
	total := 0
	for _, f := range n.Fragments {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range n.Fragments {
		out = append(out, f...)
	}
	return out
}

// Channel is one logical session multiplexed over a connection.
type Channel struct {
	ID         ChannelID
	Number     ChannelNum
	Connection *Connection
	Status     ChannelStatus
}

func NewChannel(num ChannelNum, conn *Connection) *Channel {
	return &Channel{ID: NewChannelID(), Number: num, Connection: conn, Status: Default{}}
}

// Reset cancels any in-progress content assembly, per spec.md 3: "Any
// method frame on a channel in a non-Default state implicitly cancels the
// partial content assembly."
func (c *Channel) Reset() {
	c.Status = Default{}
}
