package broker

import "github.com/mozilla-services/amqpd/message"

// Message is a published message in flight or at rest in a queue (spec.md
// 3). Body fragments are kept as received — exactly as they arrived in
// body frames — to avoid a reassembly copy on the publish path; they're
// only concatenated lazily, when a delivery actually needs one contiguous
// slice.
type Message struct {
	ID         MessageID
	Header     *message.ContentHeader
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
	Fragments  [][]byte
}

func (m *Message) ConcatenatedBody() []byte {
	total := 0
	for _, f := range m.Fragments {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range m.Fragments {
		out = append(out, f...)
	}
	return out
}
