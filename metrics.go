// metrics.go: optional Prometheus export of pipeline internals
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "github.com/prometheus/client_golang/prometheus"

// basedProcessor is implemented by every Processor variant that embeds
// *Base, giving metrics collection a uniform way to reach a node's
// appenders and sub-processors regardless of concrete type.
type basedProcessor interface {
	BaseNode() *Base
}

// ringStatter is implemented by processor variants backed by an
// internal/ring.Ring, exposing its point-in-time counters.
type ringStatter interface {
	RingStats() map[string]int64
}

// sizedAppender is implemented by appenders that track how many bytes
// they have written to their current target.
type sizedAppender interface {
	CurrentSize() int64
}

var (
	ringDepthDesc = prometheus.NewDesc(
		"cascade_ring_depth",
		"Records currently buffered in an async-wait-free processor's ring.",
		[]string{"logger"}, nil,
	)
	ringProcessedDesc = prometheus.NewDesc(
		"cascade_ring_processed_total",
		"Cumulative records drained from an async-wait-free processor's ring.",
		[]string{"logger"}, nil,
	)
	ringDroppedDesc = prometheus.NewDesc(
		"cascade_ring_dropped_total",
		"Cumulative records rejected by a full ring under DropOnFull.",
		[]string{"logger"}, nil,
	)
	rollingFileSizeDesc = prometheus.NewDesc(
		"cascade_rolling_file_size_bytes",
		"Current size of a rolling file appender's live target file.",
		[]string{"logger"}, nil,
	)
)

// MetricsCollector walks a Registry's processor forest on every scrape,
// so it never touches the hot path between scrapes.
type MetricsCollector struct {
	reg *Registry
}

// Metrics returns a prometheus.Collector that reports ring depth,
// processed/dropped counters, and rolling-file sizes across every
// processor tree registered with reg. Register it with a
// prometheus.Registerer; it is inert until scraped.
func (reg *Registry) Metrics() *MetricsCollector {
	return &MetricsCollector{reg: reg}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- ringDepthDesc
	ch <- ringProcessedDesc
	ch <- ringDroppedDesc
	ch <- rollingFileSizeDesc
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, named := range c.reg.Roots() {
		walkProcessorMetrics(named.Root, named.Name, ch)
	}
}

func walkProcessorMetrics(p Processor, label string, ch chan<- prometheus.Metric) {
	if rs, ok := p.(ringStatter); ok {
		stats := rs.RingStats()
		ch <- prometheus.MustNewConstMetric(ringDepthDesc, prometheus.GaugeValue, float64(stats["buffered"]), label)
		ch <- prometheus.MustNewConstMetric(ringProcessedDesc, prometheus.CounterValue, float64(stats["processed"]), label)
		ch <- prometheus.MustNewConstMetric(ringDroppedDesc, prometheus.CounterValue, float64(stats["dropped"]), label)
	}

	bp, ok := p.(basedProcessor)
	if !ok {
		return
	}
	base := bp.BaseNode()
	for _, a := range base.Appenders {
		if sa, ok := a.(sizedAppender); ok {
			ch <- prometheus.MustNewConstMetric(rollingFileSizeDesc, prometheus.GaugeValue, float64(sa.CurrentSize()), label)
		}
	}
	for _, sp := range base.SubProcessors {
		walkProcessorMetrics(sp, label, ch)
	}
}
