package broker

import "sync"

// Connection is the registry-side record of one accepted AMQP connection
// (spec.md 3). The transport package owns the actual socket and implements
// Outbox to hand this record frames to write; broker never reaches back
// into transport, avoiding an import cycle between the two.
type Connection struct {
	ID           ConnID
	Peer         string
	MaxFrameSize uint32
	Heartbeat    uint16
	ChannelMax   uint16
	Outbox       Outbox

	mu        sync.Mutex
	channels  map[ChannelNum]*Channel
	consuming map[ConsumerID]*Consumer
}

func NewConnection(peer string, outbox Outbox) *Connection {
	return &Connection{
		ID:        NewConnID(),
		Peer:      peer,
		Outbox:    outbox,
		channels:  make(map[ChannelNum]*Channel),
		consuming: make(map[ConsumerID]*Consumer),
	}
}

// OpenChannel creates and registers a new channel. Channel 0 is reserved
// for connection-level methods and must never appear here (spec.md 3).
func (c *Connection) OpenChannel(num ChannelNum) (*Channel, error) {
	if num.IsZero() {
		return nil, NewConnException(ReplyCommandInvalid, "channel 0 cannot be opened", 20, 10)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.channels[num]; exists {
		return nil, NewConnException(ReplyChannelError, "channel already open", 20, 10)
	}
	ch := NewChannel(num, c)
	c.channels[num] = ch
	return ch, nil
}

func (c *Connection) Channel(num ChannelNum) (*Channel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[num]
	return ch, ok
}

func (c *Connection) CloseChannel(num ChannelNum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.channels, num)
}

func (c *Connection) Channels() []*Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		out = append(out, ch)
	}
	return out
}

// AddConsumer records that this connection owns cons, maintaining spec.md
// 3's invariant that every consumer in a queue's consumer set is also in
// consumer.channel.connection.consuming. dispatchBasicConsume calls this
// alongside the queue-side BindConsumer registration.
func (c *Connection) AddConsumer(cons *Consumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consuming[cons.ID] = cons
}

// RemoveConsumer drops the bookkeeping entry added by AddConsumer.
func (c *Connection) RemoveConsumer(id ConsumerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.consuming, id)
}

// Consuming lists every consumer this connection owns, across all its
// channels, so teardown can unbind them from their queues directly instead
// of rescanning the registry's entire queue set.
func (c *Connection) Consuming() []*Consumer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Consumer, 0, len(c.consuming))
	for _, cons := range c.consuming {
		out = append(out, cons)
	}
	return out
}
