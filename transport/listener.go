package transport

import (
	"net"
	"sync"

	"github.com/go-logr/logr"
	"github.com/rafrombrc/go-notify"

	"github.com/mozilla-services/amqpd/broker"
)

// Listener accepts AMQP connections and spawns one goroutine per connection,
// grounded directly on heka's TcpInput accept loop (plugins/tcp/tcp_input.go):
// Accept in a loop, wg.Add/go handleConnection per socket, wg.Wait on Stop.
type Listener struct {
	listener net.Listener
	reg      *broker.Registry
	log      logr.Logger
	wg       sync.WaitGroup
}

func Listen(addr string, reg *broker.Registry, log logr.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{listener: ln, reg: reg, log: log}, nil
}

func (l *Listener) Addr() net.Addr { return l.listener.Addr() }

// Serve runs the accept loop until the listener is closed.
func (l *Listener) Serve() {
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			l.log.V(1).Info("accept loop exiting", "error", err)
			return
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			NewConn(conn, l.reg, l.log).Serve()
		}()
	}
}

// Stop closes the accept loop and waits for every connection task to exit.
// It posts the shutdown fan-out itself (spec.md 5) rather than trusting a
// caller to have posted it already, so every live Conn's subscription
// (started in NewConn) closes its stopChan and mainLoop returns — without
// that, wg.Wait would block forever on any still-connected client.
func (l *Listener) Stop() {
	l.listener.Close()
	if err := notify.Post(broker.ShutdownTopic, nil); err != nil {
		l.log.V(1).Info("shutdown broadcast failed", "error", err)
	}
	l.wg.Wait()
}
