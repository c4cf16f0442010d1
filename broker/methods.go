package broker

import "github.com/mozilla-services/amqpd/message"

// Dispatch handles every method the messaging layer is responsible for
// (spec.md 4.3, "All other methods are handed to the messaging layer,
// which may return a response method to be written back"). Channel.Open,
// Channel.Close and Basic.Publish are handled inline by the connection
// runtime instead, since they mutate channel/assembly state the transport
// layer already holds open (spec.md 4.3, "Dispatch").
func Dispatch(reg *Registry, ch *Channel, m message.Method) (message.Method, error) {
	switch method := m.(type) {
	case *message.ExchangeDeclare:
		return dispatchExchangeDeclare(reg, method)
	case *message.QueueDeclare:
		return dispatchQueueDeclare(reg, method)
	case *message.QueueBind:
		return dispatchQueueBind(reg, method)
	case *message.BasicConsume:
		return dispatchBasicConsume(reg, ch, method)
	default:
		return nil, notImplemented(m.ClassID(), m.MethodID(), "method")
	}
}

func dispatchExchangeDeclare(reg *Registry, m *message.ExchangeDeclare) (message.Method, error) {
	typ := ExchangeType(m.Type)
	switch typ {
	case Direct, Fanout, Topic, Headers, System:
	default:
		return nil, NewConnException(ReplyCommandInvalid, "unknown exchange type "+m.Type, message.ClassExchange, message.MethodExchangeDeclare)
	}
	reg.DeclareExchange(m.Exchange, typ, m.Durable)
	if m.NoWait {
		return nil, nil
	}
	return &message.ExchangeDeclareOk{}, nil
}

func dispatchQueueDeclare(reg *Registry, m *message.QueueDeclare) (message.Method, error) {
	q := reg.DeclareQueue(m.Queue, m.Durable)
	if m.NoWait {
		return nil, nil
	}
	return &message.QueueDeclareOk{
		Queue:         q.Name,
		MessageCount:  uint32(q.MessageCount()),
		ConsumerCount: uint32(q.ConsumerCount()),
	}, nil
}

func dispatchQueueBind(reg *Registry, m *message.QueueBind) (message.Method, error) {
	ex, ok := reg.Exchange(m.Exchange)
	if !ok {
		return nil, NewChanException(ReplyNotFound, "no exchange "+m.Exchange, message.ClassQueue, message.MethodQueueBind)
	}
	q, ok := reg.Queue(m.Queue)
	if !ok {
		return nil, NewChanException(ReplyNotFound, "no queue "+m.Queue, message.ClassQueue, message.MethodQueueBind)
	}
	ex.Bind(m.RoutingKey, q)
	if m.NoWait {
		return nil, nil
	}
	return &message.QueueBindOk{}, nil
}

func dispatchBasicConsume(reg *Registry, ch *Channel, m *message.BasicConsume) (message.Method, error) {
	q, ok := reg.Queue(m.Queue)
	if !ok {
		return nil, NewChanException(ReplyNotFound, "no queue "+m.Queue, message.ClassBasic, message.MethodBasicConsume)
	}
	tag := m.ConsumerTag
	if tag == "" {
		tag = NewConsumerID().String()
	}
	consumer := &Consumer{ID: NewConsumerID(), Tag: tag, Channel: ch, Queue: q}
	q.Events <- BindConsumer{Consumer: consumer}
	ch.Connection.AddConsumer(consumer)
	if m.NoWait {
		return nil, nil
	}
	return &message.BasicConsumeOk{ConsumerTag: tag}, nil
}

// BeginPublish transitions a channel from Default to NeedHeader, as
// spec.md 4.3 requires for Basic.Publish specifically. It is exported
// because the connection runtime handles Basic.Publish inline rather than
// through Dispatch.
func BeginPublish(ch *Channel, m *message.BasicPublish) {
	ch.Status = NeedHeader{ClassID: message.ClassBasic, PendingMethod: m}
}

// CompletePublish routes a fully-assembled message to its target queues
// and resets the channel to Default (spec.md 4.3, "Multi-frame assembly").
// A routing key matching zero queues simply drops the message — spec.md
// has no mandatory/immediate return-path semantics in scope.
func CompletePublish(reg *Registry, ch *Channel, pub *message.BasicPublish, header *message.ContentHeader, body [][]byte) {
	defer ch.Reset()

	ex, ok := reg.Exchange(pub.Exchange)
	if !ok {
		return
	}
	queues := ex.Route(pub.RoutingKey)
	if len(queues) == 0 {
		return
	}
	for _, q := range queues {
		q.Events <- PublishMessage{Msg: &Message{
			ID:         NewMessageID(),
			Header:     header,
			Exchange:   pub.Exchange,
			RoutingKey: pub.RoutingKey,
			Mandatory:  pub.Mandatory,
			Immediate:  pub.Immediate,
			Fragments:  body,
		}}
	}
	reg.IncrPublished()
}
