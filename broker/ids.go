package broker

import "github.com/google/uuid"

// ConnID, ChannelID, QueueID, ConsumerID and MessageID are 128-bit random
// identifiers used as registry keys. They replace the original
// implementation's `newtype_id!` macro (see amqp_core/src/connection.rs):
// each is a distinct type wrapping a uuid.UUID so the compiler catches a
// queue ID accidentally passed where a channel ID is expected.

type ConnID uuid.UUID

func NewConnID() ConnID { return ConnID(uuid.New()) }

func (id ConnID) String() string { return uuid.UUID(id).String() }

type ChannelID uuid.UUID

func NewChannelID() ChannelID { return ChannelID(uuid.New()) }

func (id ChannelID) String() string { return uuid.UUID(id).String() }

type QueueID uuid.UUID

func NewQueueID() QueueID { return QueueID(uuid.New()) }

func (id QueueID) String() string { return uuid.UUID(id).String() }

type ConsumerID uuid.UUID

func NewConsumerID() ConsumerID { return ConsumerID(uuid.New()) }

func (id ConsumerID) String() string { return uuid.UUID(id).String() }

type MessageID uuid.UUID

func NewMessageID() MessageID { return MessageID(uuid.New()) }

func (id MessageID) String() string { return uuid.UUID(id).String() }

// ChannelNum is the 16-bit channel number local to one connection. Channel 0
// is reserved for connection-level methods and must never appear in a
// connection's channel map.
type ChannelNum uint16

func (n ChannelNum) IsZero() bool { return n == 0 }
