package broker

import "github.com/mozilla-services/amqpd/message"

// OutboundEvent is something a queue worker (or any other background task)
// wants written back to a specific connection: either a bare method, or a
// content-bearing triple of method+header+body (spec.md 4.3, "Sending
// content"). The transport layer is the only thing that knows how to turn
// this into frames, so broker depends on it only through the Outbox
// interface below — never on the transport package itself.
type OutboundEvent struct {
	ChannelNumber uint16
	Method        message.Method
	Header        *message.ContentHeader
	Body          []byte
}

// Outbox is a connection's inbound mailbox as seen from the broker side:
// something that can be handed frames to write, non-blockingly. Post
// returns false if the mailbox is full, matching the "full mailbox ==
// could not deliver" backpressure rule of spec.md 5.
type Outbox interface {
	Post(ev OutboundEvent) bool
}
