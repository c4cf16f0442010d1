package broker

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"github.com/rafrombrc/go-notify"
)

// mailboxSlots bounds every queue worker's event mailbox, per spec.md 5 ("bounded multi-producer single-consumer queues (10 slots)").
const mailboxSlots = 10

// DeletionPolicy controls when an auto-delete queue goes away. Manual queues
// persist until an explicit Queue.Delete (spec.md 3, "Lifecycles"); that
// method is itself a documented protocol gap (spec.md 9), so AutoDelete is
// currently inert but kept so Queue.Declare's auto_delete flag has
// somewhere to live.
type DeletionPolicy int

const (
	Manual DeletionPolicy = iota
	AutoDelete
)

// QueueEvent is the closed set of things a queue worker goroutine reacts to
// on its mailbox (spec.md 4.4).
type QueueEvent interface {
	isQueueEvent()
}

type PublishMessage struct {
	Msg *Message
}

func (PublishMessage) isQueueEvent() {}

// ReplayMessage re-injects a message a DurableLog already has on record
// (broker.Registry.replayInto), so the worker must not persist it again.
type ReplayMessage struct {
	Msg *Message
}

func (ReplayMessage) isQueueEvent() {}

type BindConsumer struct {
	Consumer *Consumer
}

func (BindConsumer) isQueueEvent() {}

type UnbindConsumer struct {
	ConsumerID ConsumerID
}

func (UnbindConsumer) isQueueEvent() {}

type ShutdownQueue struct{}

func (ShutdownQueue) isQueueEvent() {}

// Queue is one AMQP queue: a named in-memory message list plus the set of
// consumers currently subscribed to it. All mutation happens on the worker
// goroutine reading Events, so mutations are serialised by the mailbox
// (spec.md 3). The worker still takes the short-held q.mu around each
// mutation so MessageCount and ConsumerCount can read from other
// goroutines.
type Queue struct {
	ID         QueueID
	Name       string
	Durable    bool
	Exclusive  *ChannelID
	Policy     DeletionPolicy
	Events     chan QueueEvent
	log        logr.Logger
	storage    DurableLog

	mu        sync.Mutex
	messages  []*Message
	consumers map[ConsumerID]*Consumer
}

// NewQueue starts a queue's worker goroutine. storage may be NoopLog{}; a
// durable queue backed by a real DurableLog has every published message
// appended before delivery is attempted.
func NewQueue(name string, durable bool, storage DurableLog, log logr.Logger) *Queue {
	q := &Queue{
		ID:        NewQueueID(),
		Name:      name,
		Durable:   durable,
		Events:    make(chan QueueEvent, mailboxSlots),
		consumers: make(map[ConsumerID]*Consumer),
		storage:   storage,
		log:       log.WithValues("queue", name),
	}
	go q.run()

	// Subscribe to the process-wide shutdown fan-out (spec.md 5) the same
	// way heka's output runners subscribe to STOP: a dedicated channel per
	// worker, forwarded into this queue's own mailbox so shutdown goes
	// through the same serialised event path as every other mutation.
	shutdownC := make(chan interface{}, 1)
	notify.Start(ShutdownTopic, shutdownC)
	go func() {
		<-shutdownC
		q.Shutdown()
	}()

	return q
}

// run is the queue's worker goroutine (spec.md 4.4): one task per queue,
// listening on its bounded event mailbox, fed by connections publishing
// and by the registry/routing layer binding consumers.
func (q *Queue) run() {
	for ev := range q.Events {
		switch e := ev.(type) {
		case PublishMessage:
			q.handlePublish(e.Msg, true)
		case ReplayMessage:
			q.handlePublish(e.Msg, false)
		case BindConsumer:
			q.mu.Lock()
			q.consumers[e.Consumer.ID] = e.Consumer
			q.mu.Unlock()
		case UnbindConsumer:
			q.mu.Lock()
			delete(q.consumers, e.ConsumerID)
			q.mu.Unlock()
		case ShutdownQueue:
			return
		}
	}
}

// handlePublish attempts delivery to an available consumer, falling back to
// storing the message. spec.md 4.4 and 9 call out first-available-consumer
// delivery as the behavior to implement here, a deliberate deviation from
// the real protocol's round-robin fairness requirement, so this picks the
// first available consumer rather than rotating across the consumer set.
func (q *Queue) handlePublish(msg *Message, persist bool) {
	if persist && q.Durable && q.storage != nil {
		if err := q.storage.AppendMessage(context.Background(), q.Name, msg); err != nil {
			q.log.Error(err, "failed to persist message")
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.consumers) == 0 {
		q.messages = append(q.messages, msg)
		return
	}

	consumer := q.pickConsumerLocked()
	delivery := OutboundEvent{
		ChannelNumber: consumer.Channel.Number,
		Method:        consumer.deliverMethod(msg),
		Header:        msg.Header,
		Body:          msg.ConcatenatedBody(),
	}
	if !consumer.Channel.Connection.Outbox.Post(delivery) {
		// Full mailbox: treat exactly like "no consumer available" (spec.md 5).
		q.messages = append(q.messages, msg)
	}
}

// pickConsumerLocked returns the first available consumer, matching the
// deviation from round-robin fairness documented in handlePublish and
// spec.md 9. Map iteration order is random in Go, so this picks the
// lexicographically lowest id to keep delivery deterministic across calls
// rather than reimplementing round-robin. Caller must hold q.mu.
func (q *Queue) pickConsumerLocked() *Consumer {
	var lowest ConsumerID
	var picked *Consumer
	for id, c := range q.consumers {
		if picked == nil || id.String() < lowest.String() {
			lowest, picked = id, c
		}
	}
	return picked
}

func (q *Queue) MessageCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

func (q *Queue) ConsumerCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.consumers)
}

func (q *Queue) Shutdown() {
	q.Events <- ShutdownQueue{}
}
