// Package gwstats aggregates per-node throughput counters reported on
// a gateway.Graph's Event channel into rolling-rate snapshots, and
// renders them as a debug HTML dashboard. Grounded on
// internal/lidar/monitor.PacketStats (the counter-and-snapshot shape)
// and internal/lidar/monitor/echarts_handlers.go (the chart handler
// shape) in the teacher repo.
package gwstats

import (
	"sync"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/gateway"
	"gonum.org/v1/gonum/stat"
)

// rollingWindow bounds how many interval samples each node's rate
// history keeps for the mean/stddev computed in Snapshot.
const rollingWindow = 12

// NodeSnapshot is one node's latest throughput picture: its most
// recent per-interval counts, plus the mean and standard deviation of
// its received-message rate over the last rollingWindow intervals.
type NodeSnapshot struct {
	NodeID       uint64
	NodeName     string
	Latest       gateway.NodeStats
	MeanRate     float64
	RateStdDev   float64
	LastUpdated  time.Time
	RuntimeError string
}

type nodeHistory struct {
	name    string
	latest  gateway.NodeStats
	rates   []float64
	lastErr string
	updated time.Time
}

// Collector consumes Events from one or more gateway.Graph instances
// and keeps a rolling per-node history. It is safe for concurrent use
// by the consuming goroutine and any HTTP handler reading Snapshot.
type Collector struct {
	mu      sync.Mutex
	history map[uint64]*nodeHistory
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{history: make(map[uint64]*nodeHistory)}
}

// Consume reads events from ch until it is closed or done is closed,
// folding each EventStats into the per-node rolling history and each
// EventRuntimeError into that node's last-seen error message.
func (c *Collector) Consume(done <-chan struct{}, ch <-chan gateway.Event) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			c.record(ev)
		}
	}
}

func (c *Collector) record(ev gateway.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.history[ev.NodeID]
	if !ok {
		h = &nodeHistory{name: ev.NodeName}
		c.history[ev.NodeID] = h
	}
	h.name = ev.NodeName

	switch ev.Kind {
	case gateway.EventStats:
		h.latest = ev.Stats
		h.updated = time.Now()
		rate := float64(ev.Stats.Received) / gateway.StatsInterval.Seconds()
		h.rates = append(h.rates, rate)
		if len(h.rates) > rollingWindow {
			h.rates = h.rates[len(h.rates)-rollingWindow:]
		}
	case gateway.EventRuntimeError:
		h.lastErr = ev.Message
		h.updated = time.Now()
	}
}

// Snapshot returns one NodeSnapshot per node seen so far, in no
// particular order.
func (c *Collector) Snapshot() []NodeSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]NodeSnapshot, 0, len(c.history))
	for id, h := range c.history {
		mean, stddev := 0.0, 0.0
		if len(h.rates) > 0 {
			mean = stat.Mean(h.rates, nil)
		}
		if len(h.rates) > 1 {
			stddev = stat.StdDev(h.rates, nil)
		}
		out = append(out, NodeSnapshot{
			NodeID:       id,
			NodeName:     h.name,
			Latest:       h.latest,
			MeanRate:     mean,
			RateStdDev:   stddev,
			LastUpdated:  h.updated,
			RuntimeError: h.lastErr,
		})
	}
	return out
}
