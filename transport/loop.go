package transport

import (
	"errors"
	"io"
	"time"

	"github.com/mozilla-services/amqpd/broker"
	"github.com/mozilla-services/amqpd/message"
)

type frameOrErr struct {
	frame *Frame
	err   error
}

// mainLoop is the cooperative select over "socket frame / outbound event /
// heartbeat timeout" spec.md 4.3 and 9 describe as the connection task's
// core concurrency primitive. Reading the socket is pushed onto its own
// goroutine feeding a channel, since Go's select has no "next byte off this
// reader" case; everything else about the dispatch loop is single-threaded
// over this one goroutine, preserving the "only the connection task owns
// the writer half" invariant (spec.md 3).
func (c *Conn) mainLoop() {
	frames := make(chan frameOrErr, 1)
	go c.readFrames(frames)

	var heartbeatTimer *time.Timer
	var heartbeatC <-chan time.Time
	if c.heartbeat > 0 {
		heartbeatTimer = time.NewTimer(c.heartbeat)
		heartbeatC = heartbeatTimer.C
		defer heartbeatTimer.Stop()
	}

	for {
		select {
		case fe := <-frames:
			if fe.err != nil {
				if ferr, ok := fe.err.(*FrameError); ok {
					c.failConn(ferr.AsConnException())
				} else {
					c.log.V(1).Info("connection closing", "error", fe.err)
				}
				return
			}
			if heartbeatTimer != nil {
				if !heartbeatTimer.Stop() {
					<-heartbeatTimer.C
				}
				heartbeatTimer.Reset(c.heartbeat)
			}
			if !c.handleFrame(fe.frame) {
				return
			}

		case ev := <-c.outbound:
			if err := c.writeOutboundEvent(ev); err != nil {
				c.log.V(1).Info("connection closing on write error", "error", err)
				return
			}

		case <-heartbeatC:
			c.log.V(1).Info("heartbeat timeout, dropping connection")
			return

		case <-c.stopChan:
			return
		}
	}
}

func (c *Conn) readFrames(out chan<- frameOrErr) {
	for {
		f, err := ReadFrame(c.reader, c.maxFrameSize)
		out <- frameOrErr{frame: f, err: err}
		if err != nil {
			return
		}
	}
}

// handleFrame dispatches one frame and reports whether the connection
// should keep running.
func (c *Conn) handleFrame(f *Frame) bool {
	switch f.Type {
	case FrameHeartbeat:
		return true
	case FrameMethod:
		return c.handleMethodFrame(f)
	case FrameHeader:
		return c.handleHeaderFrame(f)
	case FrameBody:
		return c.handleBodyFrame(f)
	default:
		return c.failConn(broker.NewConnException(broker.ReplyFrameError, "unknown frame type", 0, 0))
	}
}

func (c *Conn) handleMethodFrame(f *Frame) bool {
	m, err := message.ParseMethod(f.Payload)
	if err != nil {
		if niErr, ok := asNotImplemented(err); ok {
			return c.failConn(broker.NewConnException(broker.ReplyNotImplemented, niErr.Error(), niErr.ClassID, niErr.MethodID))
		}
		var unknown *message.UnknownMethodError
		if errors.As(err, &unknown) {
			return c.failConn(broker.NewConnException(broker.ReplyCommandInvalid, unknown.Error(), unknown.ClassID, unknown.MethodID))
		}
		return c.failConn(broker.NewConnException(broker.ReplySyntaxError, err.Error(), 0, 0))
	}

	if f.Channel == 0 {
		return c.handleConnectionMethod(m)
	}

	ch, ok := c.broker.Channel(broker.ChannelNum(f.Channel))
	if !ok {
		if _, isOpen := m.(*message.ChannelOpen); isOpen {
			return c.handleChannelOpen(f.Channel)
		}
		return c.failConn(broker.NewConnException(broker.ReplyChannelError, "no such channel", m.ClassID(), m.MethodID()))
	}

	// Any method frame on a non-Default channel cancels partial assembly
	// (spec.md 3).
	ch.Reset()

	switch method := m.(type) {
	case *message.ChannelClose:
		return c.handleChannelClose(ch, method)
	case *message.ChannelCloseOk:
		return true
	case *message.BasicPublish:
		broker.BeginPublish(ch, method)
		return true
	default:
		resp, err := broker.Dispatch(c.reg, ch, m)
		if err != nil {
			return c.handleDispatchError(ch, err)
		}
		if resp != nil {
			if werr := WriteMethodFrame(c.writer, f.Channel, resp); werr != nil {
				return c.failIO(werr)
			}
			c.writer.Flush()
		}
		return true
	}
}

func (c *Conn) handleConnectionMethod(m message.Method) bool {
	switch method := m.(type) {
	case *message.ConnectionClose:
		WriteMethodFrame(c.writer, 0, &message.ConnectionCloseOk{})
		c.writer.Flush()
		c.log.V(1).Info("connection closed by peer", "reply_code", method.ReplyCode)
		return false
	case *message.ConnectionCloseOk:
		return false
	default:
		return c.failConn(broker.NewConnException(broker.ReplyCommandInvalid, "unexpected method on channel 0", m.ClassID(), m.MethodID()))
	}
}

func (c *Conn) handleChannelOpen(channelNum uint16) bool {
	_, err := c.broker.OpenChannel(broker.ChannelNum(channelNum))
	if err != nil {
		var ce *broker.ConnException
		if errors.As(err, &ce) {
			return c.failConn(ce)
		}
		return c.failConn(broker.NewConnException(broker.ReplyChannelError, err.Error(), message.ClassChannel, message.MethodChannelOpen))
	}
	if werr := WriteMethodFrame(c.writer, channelNum, &message.ChannelOpenOk{}); werr != nil {
		return c.failIO(werr)
	}
	c.writer.Flush()
	return true
}

func (c *Conn) handleChannelClose(ch *broker.Channel, m *message.ChannelClose) bool {
	c.broker.CloseChannel(ch.Number)
	if werr := WriteMethodFrame(c.writer, uint16(ch.Number), &message.ChannelCloseOk{}); werr != nil {
		return c.failIO(werr)
	}
	c.writer.Flush()
	return true
}

func (c *Conn) handleHeaderFrame(f *Frame) bool {
	ch, ok := c.broker.Channel(broker.ChannelNum(f.Channel))
	if !ok {
		return c.failConn(broker.NewConnException(broker.ReplyChannelError, "no such channel", 0, 0))
	}
	pending, ok := ch.Status.(broker.NeedHeader)
	if !ok {
		return c.failConn(broker.NewConnException(broker.ReplyUnexpectedFrame, "header frame without a pending publish", 0, 0))
	}
	header, err := message.ParseContentHeader(f.Payload)
	if err != nil {
		return c.failConn(broker.NewConnException(broker.ReplySyntaxError, err.Error(), 0, 0))
	}
	if header.ClassID != pending.ClassID {
		return c.failConn(broker.NewConnException(broker.ReplyUnexpectedFrame, "content-header class mismatch", pending.ClassID, 0))
	}
	if header.BodySize == 0 {
		// zero-length body: complete immediately, no body frames will follow.
		broker.CompletePublish(c.reg, ch, pending.PendingMethod.(*message.BasicPublish), header, nil)
		return true
	}
	ch.Status = &broker.NeedsBody{PendingMethod: pending.PendingMethod, Header: header}
	return true
}

func (c *Conn) handleBodyFrame(f *Frame) bool {
	ch, ok := c.broker.Channel(broker.ChannelNum(f.Channel))
	if !ok {
		return c.failConn(broker.NewConnException(broker.ReplyChannelError, "no such channel", 0, 0))
	}
	pending, ok := ch.Status.(*broker.NeedsBody)
	if !ok {
		return c.failConn(broker.NewConnException(broker.ReplyUnexpectedFrame, "body frame without a pending publish", 0, 0))
	}
	complete, err := pending.AppendFragment(f.Payload)
	if err != nil {
		var cex *broker.ChanException
		if errors.As(err, &cex) {
			return c.handleDispatchError(ch, cex)
		}
		return c.failConn(broker.NewConnException(broker.ReplyInternalError, err.Error(), 0, 0))
	}
	if complete {
		broker.CompletePublish(c.reg, ch, pending.PendingMethod.(*message.BasicPublish), pending.Header, pending.Fragments)
	}
	return true
}

// handleDispatchError classifies a method-dispatch failure: a channel
// exception closes only the channel, a connection exception is fatal
// (spec.md 7).
func (c *Conn) handleDispatchError(ch *broker.Channel, err error) bool {
	var cex *broker.ChanException
	if errors.As(err, &cex) {
		c.broker.CloseChannel(ch.Number)
		WriteMethodFrame(c.writer, uint16(ch.Number), &message.ChannelClose{
			ReplyCode: cex.ReplyCode, ReplyText: cex.ReplyText, ClassId: cex.ClassID, MethodId: cex.MethodID,
		})
		c.writer.Flush()
		return true
	}
	var conErr *broker.ConnException
	if errors.As(err, &conErr) {
		return c.failConn(conErr)
	}
	return c.failConn(broker.NewConnException(broker.ReplyInternalError, err.Error(), 0, 0))
}

// failConn sends Connection.Close and reports the connection as done
// (spec.md 4.3, "Connection exception"). It does not block waiting for
// Close-Ok beyond what's already buffered; a misbehaving peer that never
// acks just sees its socket closed once Serve returns.
func (c *Conn) failConn(ce *broker.ConnException) bool {
	WriteMethodFrame(c.writer, 0, &message.ConnectionClose{
		ReplyCode: ce.ReplyCode, ReplyText: ce.ReplyText, ClassId: ce.ClassID, MethodId: ce.MethodID,
	})
	c.writer.Flush()
	c.log.V(1).Info("connection exception", "code", ce.ReplyCode, "text", ce.ReplyText)
	return false
}

func (c *Conn) failIO(err error) bool {
	if errors.Is(err, io.EOF) {
		return false
	}
	c.log.V(1).Info("i/o error, dropping connection", "error", err)
	return false
}

func (c *Conn) writeOutboundEvent(ev broker.OutboundEvent) error {
	if err := WriteMethodFrame(c.writer, ev.ChannelNumber, ev.Method); err != nil {
		return err
	}
	if ev.Header != nil {
		if err := WriteHeaderFrame(c.writer, ev.ChannelNumber, ev.Header); err != nil {
			return err
		}
		if err := WriteBodyFrames(c.writer, ev.ChannelNumber, ev.Body, c.maxFrameSize); err != nil {
			return err
		}
	}
	return c.writer.Flush()
}

func asNotImplemented(err error) (*message.NotImplementedError, bool) {
	var ni *message.NotImplementedError
	if errors.As(err, &ni) {
		return ni, true
	}
	return nil, false
}
