package broker

import "github.com/mozilla-services/amqpd/message"

// Consumer is a subscription identified by a client-supplied or
// server-generated tag, jointly registered on its queue (for delivery) and
// on its connection (for close-time cleanup) (spec.md 3).
type Consumer struct {
	ID      ConsumerID
	Tag     string
	Channel *Channel
	Queue   *Queue
}

func (c *Consumer) deliverMethod(msg *Message) message.Method {
	return &message.BasicDeliver{
		ConsumerTag: c.Tag,
		DeliveryTag: 0,
		Redelivered: false,
		Exchange:    msg.Exchange,
		RoutingKey:  msg.RoutingKey,
	}
}
