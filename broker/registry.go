package broker

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"go.uber.org/atomic"
)

// ShutdownTopic is the go-notify topic every connection task and queue
// worker subscribes to at startup, grounded on heka's STOP broadcast
// (pipeline/pipeline_runner.go, pipeline/outputs.go): a single notify.Post
// fans a graceful-shutdown signal out to all of them (spec.md 5).
const ShutdownTopic = "amqpd.shutdown"

// Registry is the single process-wide value holding every connection,
// queue, and exchange (spec.md 5: "The four registries form a single
// process-wide value initialised at startup, captured by every accepted
// connection task... no teardown other than process exit"). One mutex
// guards mutation; it is never held across I/O or mailbox sends.
type Registry struct {
	log     logr.Logger
	storage DurableLog

	mu          sync.Mutex
	connections map[ConnID]*Connection
	queues      map[string]*Queue
	exchanges   map[string]*Exchange

	// totalPublished counts every message routed to at least one queue,
	// across the process lifetime. It's read far more often (every
	// dashboard scrape) than written, so it's a lock-free counter rather
	// than something read out from under r.mu.
	totalPublished atomic.Uint64
}

// IncrPublished records one more message successfully routed to at least
// one queue. Its caller is CompletePublish.
func (r *Registry) IncrPublished() {
	r.totalPublished.Inc()
}

// NewRegistry creates the registry and the four default exchanges
// required at startup (spec.md 3, 6): the empty-name direct exchange,
// amqp.direct, amqp.fanout, amqp.topic, all durable.
func NewRegistry(log logr.Logger) *Registry {
	r := &Registry{
		log:         log,
		storage:     NoopLog{},
		connections: make(map[ConnID]*Connection),
		queues:      make(map[string]*Queue),
		exchanges:   make(map[string]*Exchange),
	}
	for name, typ := range map[string]ExchangeType{
		"":            Direct,
		"amqp.direct": Direct,
		"amqp.fanout": Fanout,
		"amqp.topic":  Topic,
	} {
		r.exchanges[name] = NewExchange(name, typ, true)
	}
	return r
}

// SetStorage swaps in a durable backend. Called once at startup, before any
// connection is accepted, so there's no concurrent access to race.
func (r *Registry) SetStorage(storage DurableLog) {
	r.storage = storage
}

func (r *Registry) RegisterConnection(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[c.ID] = c
}

// DropConnection tears the connection down (spec.md 3, "Lifecycles"):
// unregisters every consumer the connection owns from the queue holding it,
// then removes the connection from the registry, so no queue is left
// referencing a channel whose connection is gone (spec.md 5,
// "Cancellation"). Connection.consuming names every consumer directly, so
// this needs no scan of the registry's queue set.
func (r *Registry) DropConnection(c *Connection) {
	for _, cons := range c.Consuming() {
		cons.Queue.Events <- UnbindConsumer{ConsumerID: cons.ID}
		c.RemoveConsumer(cons.ID)
	}
	r.mu.Lock()
	delete(r.connections, c.ID)
	r.mu.Unlock()
}

func (r *Registry) DeclareExchange(name string, typ ExchangeType, durable bool) *Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ex, ok := r.exchanges[name]; ok {
		return ex
	}
	ex := NewExchange(name, typ, durable)
	r.exchanges[name] = ex
	return ex
}

func (r *Registry) Exchange(name string) (*Exchange, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exchanges[name]
	return ex, ok
}

// DeclareQueue returns the existing queue by that name, or creates it and
// starts its worker goroutine (spec.md 3, "Lifecycles": "created on first
// Queue.Declare with that name; the worker task lives as long as the
// queue").
func (r *Registry) DeclareQueue(name string, durable bool) *Queue {
	r.mu.Lock()
	if q, ok := r.queues[name]; ok {
		r.mu.Unlock()
		return q
	}
	q := NewQueue(name, durable, r.storage, r.log)
	r.queues[name] = q
	storage := r.storage
	r.mu.Unlock()

	if durable {
		r.replayInto(q, storage)
	}
	return q
}

// replayInto restores a durable queue's backlog from storage on its first
// declaration, so a queue that was non-empty before a restart isn't silently
// flushed (spec.md 1's invitation to honour the durable flag).
func (r *Registry) replayInto(q *Queue, storage DurableLog) {
	backlog, err := storage.Replay(context.Background(), q.Name)
	if err != nil {
		r.log.Error(err, "failed to replay durable queue backlog", "queue", q.Name)
		return
	}
	for _, msg := range backlog {
		q.Events <- ReplayMessage{Msg: msg}
	}
}

func (r *Registry) Queue(name string) (*Queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.queues[name]
	return q, ok
}

// Snapshot is the shape the dashboard's /api/data endpoint serializes
// (spec.md 6). The lists of connections, queues and exchanges are copied
// under the registry lock; the per-entry counts are read after the lock is
// released, through each entry's own lock.
type Snapshot struct {
	Connections    []ConnectionSnapshot `json:"connections"`
	Queues         []QueueSnapshot      `json:"queues"`
	Exchanges      []ExchangeSnapshot   `json:"exchanges"`
	TotalPublished uint64               `json:"total_published"`
}

type ConnectionSnapshot struct {
	ID       string `json:"id"`
	Peer     string `json:"peer"`
	Channels int    `json:"channels"`
}

type QueueSnapshot struct {
	Name          string `json:"name"`
	Durable       bool   `json:"durable"`
	MessageCount  int    `json:"message_count"`
	ConsumerCount int    `json:"consumer_count"`
}

type ExchangeSnapshot struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Durable bool   `json:"durable"`
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.connections))
	for _, c := range r.connections {
		conns = append(conns, c)
	}
	queues := make([]*Queue, 0, len(r.queues))
	for _, q := range r.queues {
		queues = append(queues, q)
	}
	exchanges := make([]*Exchange, 0, len(r.exchanges))
	for _, e := range r.exchanges {
		exchanges = append(exchanges, e)
	}
	r.mu.Unlock()

	snap := Snapshot{TotalPublished: r.totalPublished.Load()}
	for _, c := range conns {
		snap.Connections = append(snap.Connections, ConnectionSnapshot{
			ID: c.ID.String(), Peer: c.Peer, Channels: len(c.Channels()),
		})
	}
	for _, q := range queues {
		snap.Queues = append(snap.Queues, QueueSnapshot{
			Name: q.Name, Durable: q.Durable, MessageCount: q.MessageCount(), ConsumerCount: q.ConsumerCount(),
		})
	}
	for _, e := range exchanges {
		snap.Exchanges = append(snap.Exchanges, ExchangeSnapshot{
			Name: e.Name, Type: string(e.Type), Durable: e.Durable,
		})
	}
	return snap
}
