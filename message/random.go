// RandomMethod is the hand-written, checked-in equivalent of the original generator's
// randomised-value generator used by its round-trip tests (spec.md 4.6).

package message

import "math/rand"

var randomMethodGenerators = []func(*rand.Rand) Method{
	func(r *rand.Rand) Method {
		return &ConnectionStartOk{
			ClientProperties: randomTable(r, 1),
			Mechanism:        "PLAIN",
			Response:         randomBytes(r, 16),
			Locale:           "en_US",
		}
	},
	func(r *rand.Rand) Method {
		return &ConnectionTuneOk{ChannelMax: uint16(r.Intn(2048)), FrameMax: uint32(r.Intn(1 << 20)), Heartbeat: uint16(r.Intn(120))}
	},
	func(r *rand.Rand) Method {
		return &ConnectionOpen{VirtualHost: randomShortstr(r), Reserved2: r.Intn(2) == 0}
	},
	func(r *rand.Rand) Method {
		return &ConnectionClose{ReplyCode: uint16(r.Intn(600)), ReplyText: randomShortstr(r), ClassId: uint16(r.Intn(100)), MethodId: uint16(r.Intn(100))}
	},
	func(r *rand.Rand) Method { return &ConnectionCloseOk{} },
	func(r *rand.Rand) Method { return &ChannelOpen{} },
	func(r *rand.Rand) Method {
		return &ChannelClose{ReplyCode: uint16(r.Intn(600)), ReplyText: randomShortstr(r), ClassId: uint16(r.Intn(100)), MethodId: uint16(r.Intn(100))}
	},
	func(r *rand.Rand) Method { return &ChannelCloseOk{} },
	func(r *rand.Rand) Method {
		return &ExchangeDeclare{
			Exchange: randomShortstr(r), Type: randomExchangeType(r),
			Durable: r.Intn(2) == 0, AutoDelete: r.Intn(2) == 0, Arguments: randomTable(r, 2),
		}
	},
	func(r *rand.Rand) Method { return &ExchangeDeclareOk{} },
	func(r *rand.Rand) Method {
		return &QueueDeclare{
			Queue: randomShortstr(r), Durable: r.Intn(2) == 0, Exclusive: r.Intn(2) == 0,
			AutoDelete: r.Intn(2) == 0, Arguments: randomTable(r, 2),
		}
	},
	func(r *rand.Rand) Method {
		return &QueueDeclareOk{Queue: randomShortstr(r), MessageCount: r.Uint32(), ConsumerCount: r.Uint32()}
	},
	func(r *rand.Rand) Method {
		return &QueueBind{Queue: randomShortstr(r), Exchange: randomShortstr(r), RoutingKey: randomRoutingKey(r), Arguments: randomTable(r, 2)}
	},
	func(r *rand.Rand) Method { return &QueueBindOk{} },
	func(r *rand.Rand) Method {
		return &BasicPublish{Exchange: randomShortstr(r), RoutingKey: randomRoutingKey(r), Mandatory: r.Intn(2) == 0, Immediate: r.Intn(2) == 0}
	},
	func(r *rand.Rand) Method {
		return &BasicConsume{Queue: randomShortstr(r), ConsumerTag: randomShortstr(r), Arguments: randomTable(r, 2)}
	},
	func(r *rand.Rand) Method { return &BasicConsumeOk{ConsumerTag: randomShortstr(r)} },
	func(r *rand.Rand) Method {
		return &BasicDeliver{
			ConsumerTag: randomShortstr(r), DeliveryTag: r.Uint64(), Redelivered: r.Intn(2) == 0,
			Exchange: randomShortstr(r), RoutingKey: randomRoutingKey(r),
		}
	},
}

// RandomMethod returns a pseudo-random, well-formed Method value, used to
// seed the codec round-trip fuzz tests (spec.md 8).
func RandomMethod(r *rand.Rand) Method {
	return randomMethodGenerators[r.Intn(len(randomMethodGenerators))](r)
}

func randomShortstr(r *rand.Rand) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFG0123456789-_."
	n := r.Intn(24)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func randomRoutingKey(r *rand.Rand) string {
	segments := r.Intn(4) + 1
	key := randomShortstr(r)
	for i := 1; i < segments; i++ {
		key += "." + randomShortstr(r)
	}
	return key
}

func randomExchangeType(r *rand.Rand) string {
	types := []string{"direct", "fanout", "topic", "headers"}
	return types[r.Intn(len(types))]
}

func randomBytes(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

// randomTable builds a field table up to maxDepth levels of nested tables,
// exercising the "nested tables, arrays of tables" round-trip requirement
// of spec.md 8.
func randomTable(r *rand.Rand, maxDepth int) Table {
	n := r.Intn(4)
	t := make(Table, n)
	for i := 0; i < n; i++ {
		t[randomShortstr(r)] = randomFieldValue(r, maxDepth)
	}
	return t
}

func randomFieldValue(r *rand.Rand, depth int) FieldValue {
	kinds := []byte{FieldBool, FieldI32, FieldU64, FieldF64, FieldLongstr, FieldTimestamp, FieldVoid}
	if depth > 0 {
		kinds = append(kinds, FieldTable, FieldArray)
	}
	switch kinds[r.Intn(len(kinds))] {
	case FieldBool:
		return BoolValue(r.Intn(2) == 0)
	case FieldI32:
		return FieldValue{Kind: FieldI32, I32: r.Int31()}
	case FieldU64:
		return FieldValue{Kind: FieldU64, U64: r.Uint64()}
	case FieldF64:
		return FieldValue{Kind: FieldF64, F64: r.Float64()}
	case FieldLongstr:
		return LongstrValue(randomShortstr(r))
	case FieldTimestamp:
		return TimestampValue(r.Uint64())
	case FieldTable:
		return TableValue(randomTable(r, depth-1))
	case FieldArray:
		n := r.Intn(3)
		arr := make([]FieldValue, n)
		for i := range arr {
			arr[i] = randomFieldValue(r, depth-1)
		}
		return FieldValue{Kind: FieldArray, Array: arr}
	default:
		return FieldValue{Kind: FieldVoid}
	}
}
