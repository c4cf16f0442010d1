// This file is hand-written; codegen/cmd/amqpgen emits only the per-class
// class_*.go siblings, not this file. It declares one flat Method sum type with a concrete struct
// per Class.Method, the way the original implementation's codegen produced
// a single tagged-union enum (amqp_codegen/src/main.rs).

package message

import "fmt"

// Method is the unit of application-visible protocol traffic: a tagged,
// typed control message. All runtime dispatch is a single type switch over
// this interface (spec.md 9, "do not introduce a trait/interface hierarchy
// per class").
type Method interface {
	ClassID() uint16
	MethodID() uint16
	methodName() string
}

// Class IDs, per the AMQP 0-9-1 protocol descriptor.
const (
	ClassConnection uint16 = 10
	ClassChannel    uint16 = 20
	ClassExchange   uint16 = 40
	ClassQueue      uint16 = 50
	ClassBasic      uint16 = 60
	ClassTx         uint16 = 90
)

// NotImplementedError is returned by ParseMethod for any (class, method)
// pair this broker recognizes as a protocol method but does not implement.
// spec.md 9 ("Source gaps") requires these to be rejected with NotImplemented
// (540) at the method boundary rather than given invented semantics.
type NotImplementedError struct {
	ClassID, MethodID uint16
	Name              string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("method %s (class %d, method %d) is not implemented", e.Name, e.ClassID, e.MethodID)
}

// UnknownMethodError is returned for a (class, method) pair absent from the
// protocol descriptor entirely — always a CommandInvalid (503).
type UnknownMethodError struct {
	ClassID, MethodID uint16
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method (class %d, method %d)", e.ClassID, e.MethodID)
}

// ParseMethod decodes a Method-frame payload: a (class-id, method-id) header
// followed by a type-directed field sequence. The class dispatch mirrors
// amqp_transport/src/classes/mod.rs's per-class `alt` combinators.
func ParseMethod(payload []byte) (Method, error) {
	r := NewReader(payload)
	classID, err := r.ReadShort()
	if err != nil {
		return nil, WrapSyntax(err, "method class id")
	}
	methodID, err := r.ReadShort()
	if err != nil {
		return nil, WrapSyntax(err, "method id")
	}

	switch classID {
	case ClassConnection:
		return parseConnectionMethod(methodID, r)
	case ClassChannel:
		return parseChannelMethod(methodID, r)
	case ClassExchange:
		return parseExchangeMethod(methodID, r)
	case ClassQueue:
		return parseQueueMethod(methodID, r)
	case ClassBasic:
		return parseBasicMethod(methodID, r)
	case ClassTx:
		return parseTxMethod(methodID, r)
	default:
		return nil, &UnknownMethodError{ClassID: classID, MethodID: methodID}
	}
}

// WriteMethod serializes a Method's class/method header and fields, the
// write side symmetric with ParseMethod.
func WriteMethod(m Method) []byte {
	w := NewWriter()
	w.WriteShort(m.ClassID())
	w.WriteShort(m.MethodID())
	writeMethodBody(w, m)
	return w.Bytes()
}

func writeMethodBody(w *Writer, m Method) {
	switch v := m.(type) {
	case *ConnectionStart:
		writeConnectionStart(w, v)
	case *ConnectionStartOk:
		writeConnectionStartOk(w, v)
	case *ConnectionTune:
		writeConnectionTune(w, v)
	case *ConnectionTuneOk:
		writeConnectionTuneOk(w, v)
	case *ConnectionOpen:
		writeConnectionOpen(w, v)
	case *ConnectionOpenOk:
		writeConnectionOpenOk(w, v)
	case *ConnectionClose:
		writeConnectionClose(w, v)
	case *ConnectionCloseOk:
		writeConnectionCloseOk(w, v)
	case *ChannelOpen:
		writeChannelOpen(w, v)
	case *ChannelOpenOk:
		writeChannelOpenOk(w, v)
	case *ChannelClose:
		writeChannelClose(w, v)
	case *ChannelCloseOk:
		writeChannelCloseOk(w, v)
	case *ExchangeDeclare:
		writeExchangeDeclare(w, v)
	case *ExchangeDeclareOk:
		writeExchangeDeclareOk(w, v)
	case *QueueDeclare:
		writeQueueDeclare(w, v)
	case *QueueDeclareOk:
		writeQueueDeclareOk(w, v)
	case *QueueBind:
		writeQueueBind(w, v)
	case *QueueBindOk:
		writeQueueBindOk(w, v)
	case *BasicPublish:
		writeBasicPublish(w, v)
	case *BasicConsume:
		writeBasicConsume(w, v)
	case *BasicConsumeOk:
		writeBasicConsumeOk(w, v)
	case *BasicDeliver:
		writeBasicDeliver(w, v)
	default:
		panic(fmt.Sprintf("message: no writer registered for %T", m))
	}
}
