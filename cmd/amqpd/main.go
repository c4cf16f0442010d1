// amqpd is the broker daemon: it owns the registry, the listener accept
// loop, and the dashboard server. On SIGINT/SIGHUP, or a post to
// broker.ShutdownTopic, it shuts the dashboard down and stops the listener,
// whose Stop posts the shutdown event to every connection and queue worker
// the way hekad's pipeline_runner.go fans RELOAD/STOP out to every plugin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rafrombrc/go-notify"

	"github.com/mozilla-services/amqpd/broker"
	"github.com/mozilla-services/amqpd/dashboard"
	"github.com/mozilla-services/amqpd/logging"
	"github.com/mozilla-services/amqpd/transport"
)

const VERSION = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	listenAddr := flag.String("listen", "", "override the configured AMQP listen address")
	dashboardAddr := flag.String("dashboard", "", "override the configured dashboard listen address")
	storageBackend := flag.String("storage", "", "durable storage backend: \"\" (none) or \"postgres\"")
	storageDSN := flag.String("storage-dsn", "", "override the configured storage DSN")
	version := flag.Bool("version", false, "Output version and exit")
	flag.Parse()

	if *version {
		fmt.Println(VERSION)
		os.Exit(0)
	}

	config, err := LoadAmqpdConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	if *dashboardAddr != "" {
		config.DashboardAddr = *dashboardAddr
	}
	if *storageDSN != "" {
		config.StorageDSN = *storageDSN
	}
	runtime.GOMAXPROCS(config.Maxprocs)

	log := logging.New("amqpd ")

	storage, err := openStorage(*storageBackend, config.StorageDSN)
	if err != nil {
		log.Error(err, "failed to open durable storage")
		os.Exit(1)
	}
	defer storage.Close()

	reg := broker.NewRegistry(log)
	reg.SetStorage(storage)

	listener, err := transport.Listen(config.ListenAddr, reg, log)
	if err != nil {
		log.Error(err, "failed to bind AMQP listener", "addr", config.ListenAddr)
		os.Exit(1)
	}
	go listener.Serve()
	log.Info("AMQP listener started", "addr", listener.Addr())

	dash := dashboard.New(config.DashboardAddr, reg, log)
	go func() {
		if err := dash.ListenAndServe(); err != nil {
			log.Error(err, "dashboard server exited")
		}
	}()
	log.Info("dashboard started", "addr", config.DashboardAddr)

	shutdownChan := make(chan interface{}, 1)
	notify.Start(broker.ShutdownTopic, shutdownChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP)

	select {
	case sig := <-sigChan:
		log.Info("shutdown initiated", "signal", sig.String())
	case <-shutdownChan:
		log.Info("shutdown initiated via control channel")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dash.Shutdown(ctx); err != nil {
		log.Error(err, "dashboard shutdown error")
	}
	listener.Stop()
	log.Info("shutdown complete")
}

func openStorage(backend, dsn string) (broker.DurableLog, error) {
	switch backend {
	case "", "none":
		return broker.NoopLog{}, nil
	case "postgres":
		return broker.OpenPostgresLog(context.Background(), dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
