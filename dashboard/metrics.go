package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mozilla-services/amqpd/broker"
)

// registryCollector is a Prometheus collector that reads straight from the
// broker registry on every scrape instead of mirroring state into separate
// gauges that could drift (the registry's own mutex-guarded Snapshot is
// already the single source of truth, per spec.md 5).
type registryCollector struct {
	reg *broker.Registry

	connections    *prometheus.Desc
	queueMessages  *prometheus.Desc
	queueConsumers *prometheus.Desc
	exchanges      *prometheus.Desc
	totalPublished *prometheus.Desc
}

func newRegistryCollector(reg *broker.Registry) *registryCollector {
	return &registryCollector{
		reg: reg,
		connections: prometheus.NewDesc(
			"amqpd_connections", "Number of currently open AMQP connections.", nil, nil),
		queueMessages: prometheus.NewDesc(
			"amqpd_queue_messages", "Number of messages currently stored on a queue.", []string{"queue"}, nil),
		queueConsumers: prometheus.NewDesc(
			"amqpd_queue_consumers", "Number of consumers currently subscribed to a queue.", []string{"queue"}, nil),
		exchanges: prometheus.NewDesc(
			"amqpd_exchanges", "Number of declared exchanges, by type.", []string{"type"}, nil),
		totalPublished: prometheus.NewDesc(
			"amqpd_messages_published_total", "Messages routed to at least one queue since startup.", nil, nil),
	}
}

func (c *registryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.connections
	ch <- c.queueMessages
	ch <- c.queueConsumers
	ch <- c.exchanges
	ch <- c.totalPublished
}

func (c *registryCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.reg.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.connections, prometheus.GaugeValue, float64(len(snap.Connections)))

	byType := map[string]int{}
	for _, q := range snap.Queues {
		ch <- prometheus.MustNewConstMetric(c.queueMessages, prometheus.GaugeValue, float64(q.MessageCount), q.Name)
		ch <- prometheus.MustNewConstMetric(c.queueConsumers, prometheus.GaugeValue, float64(q.ConsumerCount), q.Name)
	}
	for _, e := range snap.Exchanges {
		byType[e.Type]++
	}
	for typ, n := range byType {
		ch <- prometheus.MustNewConstMetric(c.exchanges, prometheus.GaugeValue, float64(n), typ)
	}

	ch <- prometheus.MustNewConstMetric(c.totalPublished, prometheus.CounterValue, float64(snap.TotalPublished))
}
