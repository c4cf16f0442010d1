package transport

import (
	"bufio"
	"bytes"
	"net"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/rafrombrc/go-notify"

	"github.com/mozilla-services/amqpd/broker"
	"github.com/mozilla-services/amqpd/message"
)

var serverPreamble = []byte("AMQP\x00\x00\x09\x01")

const handshakeMailboxSlots = 10

// Conn drives one accepted TCP connection: handshake, the per-channel
// content-assembly state machine, and the cooperative select loop over
// "socket frame / outbound event / heartbeat" that spec.md 4.3 and 9 call
// the core concurrency primitive. Its accept-loop/goroutine-per-connection
// shape is grounded on heka's TcpInput (plugins/tcp/tcp_input.go).
type Conn struct {
	netConn net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	log     logr.Logger
	reg     *broker.Registry

	broker       *broker.Connection
	maxFrameSize FrameSizeLimit
	heartbeat    time.Duration

	outbound chan broker.OutboundEvent
	stopChan chan struct{}
	closeOnce sync.Once
}

func NewConn(netConn net.Conn, reg *broker.Registry, log logr.Logger) *Conn {
	c := &Conn{
		netConn:  netConn,
		reader:   bufio.NewReader(netConn),
		writer:   bufio.NewWriter(netConn),
		log:      log.WithValues("peer", netConn.RemoteAddr().String()),
		reg:      reg,
		outbound: make(chan broker.OutboundEvent, handshakeMailboxSlots),
		stopChan: make(chan struct{}),
	}

	// Subscribe to the process-wide shutdown fan-out (spec.md 5) before
	// Serve even begins the handshake, so a shutdown posted while this
	// connection is still handshaking is never missed.
	shutdownC := make(chan interface{}, 1)
	notify.Start(broker.ShutdownTopic, shutdownC)
	go func() {
		<-shutdownC
		c.Stop()
	}()

	return c
}

// Stop signals mainLoop to exit, closing stopChan exactly once. Called from
// this connection's shutdown subscription, and safe to call redundantly
// from anywhere else that learns the connection should go away.
func (c *Conn) Stop() {
	c.closeOnce.Do(func() { close(c.stopChan) })
}

// Post implements broker.Outbox: queue workers and other background tasks
// hand this connection frames to write back, non-blockingly.
func (c *Conn) Post(ev broker.OutboundEvent) bool {
	select {
	case c.outbound <- ev:
		return true
	default:
		return false
	}
}

// Serve runs the connection to completion: handshake, then the main loop,
// then teardown. It never returns an error the caller must act on — every
// failure path here already drives the socket to a clean close.
func (c *Conn) Serve() {
	defer c.netConn.Close()

	if err := c.handshake(); err != nil {
		c.log.V(1).Info("handshake failed", "error", err)
		return
	}

	c.reg.RegisterConnection(c.broker)
	defer c.reg.DropConnection(c.broker)

	c.mainLoop()
}

func (c *Conn) handshake() error {
	preamble := make([]byte, 8)
	if _, err := readFull(c.reader, preamble); err != nil {
		return err
	}
	if !bytes.Equal(preamble[:5], []byte("AMQP\x00")) || !bytes.Equal(preamble[5:8], []byte{0, 9, 1}) {
		c.writer.Write(serverPreamble)
		c.writer.Flush()
		return &protocolMismatchError{}
	}

	if err := WriteMethodFrame(c.writer, 0, &message.ConnectionStart{
		VersionMajor:     0,
		VersionMinor:     9,
		ServerProperties: message.Table{"product": message.LongstrValue("amqpd")},
		Mechanisms:       []byte("PLAIN"),
		Locales:          []byte("en_US"),
	}); err != nil {
		return err
	}
	c.writer.Flush()

	startOk, err := c.readMethod(message.ClassConnection, message.MethodConnectionStartOk)
	if err != nil {
		return err
	}
	so := startOk.(*message.ConnectionStartOk)
	if so.Mechanism != "PLAIN" {
		return broker.NewConnException(broker.ReplyNotAllowed, "only PLAIN is supported", message.ClassConnection, message.MethodConnectionStartOk)
	}
	if so.Locale != "en_US" {
		return broker.NewConnException(broker.ReplyNotAllowed, "only en_US is supported", message.ClassConnection, message.MethodConnectionStartOk)
	}
	if _, err := ParsePlainResponse(so.Response); err != nil {
		return broker.NewConnException(broker.ReplyNotAllowed, err.Error(), message.ClassConnection, message.MethodConnectionStartOk)
	}

	if err := WriteMethodFrame(c.writer, 0, &message.ConnectionTune{ChannelMax: 0, FrameMax: 0, Heartbeat: 0}); err != nil {
		return err
	}
	c.writer.Flush()

	tuneOk, err := c.readMethod(message.ClassConnection, message.MethodConnectionTuneOk)
	if err != nil {
		return err
	}
	to := tuneOk.(*message.ConnectionTuneOk)

	open, err := c.readMethod(message.ClassConnection, message.MethodConnectionOpen)
	if err != nil {
		return err
	}
	o := open.(*message.ConnectionOpen)
	if o.VirtualHost != "/" {
		return broker.NewConnException(broker.ReplyNotAllowed, "unknown virtual host "+o.VirtualHost, message.ClassConnection, message.MethodConnectionOpen)
	}

	if err := WriteMethodFrame(c.writer, 0, &message.ConnectionOpenOk{}); err != nil {
		return err
	}
	c.writer.Flush()

	c.broker = broker.NewConnection(c.netConn.RemoteAddr().String(), c)
	c.broker.ChannelMax = to.ChannelMax
	c.broker.MaxFrameSize = to.FrameMax
	c.broker.Heartbeat = to.Heartbeat
	c.maxFrameSize = LimitBytes(to.FrameMax)
	if to.Heartbeat > 0 {
		c.heartbeat = time.Duration(to.Heartbeat) * time.Second / 2
	}
	return nil
}

// readMethod reads exactly one method frame and requires it to be the
// expected (class, method) pair — used only during the strictly ordered
// handshake (spec.md 4.3).
func (c *Conn) readMethod(classID, methodID uint16) (message.Method, error) {
	f, err := ReadFrame(c.reader, NoFrameLimit())
	if err != nil {
		return nil, err
	}
	if f.Type != FrameMethod {
		return nil, broker.NewConnException(broker.ReplyUnexpectedFrame, "expected a method frame during handshake", classID, methodID)
	}
	m, err := message.ParseMethod(f.Payload)
	if err != nil {
		return nil, broker.NewConnException(broker.ReplySyntaxError, err.Error(), classID, methodID)
	}
	if m.ClassID() != classID || m.MethodID() != methodID {
		return nil, broker.NewConnException(broker.ReplyUnexpectedFrame, "unexpected method during handshake", classID, methodID)
	}
	return m, nil
}

type protocolMismatchError struct{}

func (*protocolMismatchError) Error() string { return "protocol version mismatch" }

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
