package gateway

import (
	"context"
	"sync"
)

// Graph is a built, runnable set of nodes produced by Builder.Build.
// Incoming and Outgoing are non-nil only when the spec's [externals]
// table named a matching node.
type Graph struct {
	entries map[string]*nodeEntry
	order   []string
	events  chan Event

	// Incoming, when non-nil, is handed messages that should be
	// delivered to the node named by externals.incoming.
	Incoming chan<- any
	// Outgoing, when non-nil, receives every message published by the
	// node named by externals.outgoing.
	Outgoing <-chan any
}

// Events returns the Graph's shared, single-consumer Event channel.
func (g *Graph) Events() <-chan Event { return g.events }

// Handle is returned by Run; it completes once every node task has
// exited, per spec.md section 4.7.2.
type Handle struct {
	commands chan Command
	done     chan struct{}
}

// Quit closes the Command channel, which every node treats as the signal
// to exit. Nodes observe it within
// one select iteration of their processing loop, per spec.md section
// 5.
func (h *Handle) Quit() {
	close(h.commands)
}

// Wait blocks until every node task has exited.
func (h *Handle) Wait() {
	<-h.done
}

// Run spawns one goroutine per node and returns a Handle. Each node's
// Run method is invoked with its own NodeIO, selecting over the
// broadcast Command channel (closed by Handle.Quit), its input (if
// any), and its own internal timers; this mirrors
// run_from_builder(builder) in spec.md section 4.7.2.
func (g *Graph) Run(ctx context.Context) *Handle {
	commands := make(chan Command)
	h := &Handle{commands: commands, done: make(chan struct{})}

	var wg sync.WaitGroup
	for _, name := range g.order {
		entry := g.entries[name]
		wg.Add(1)
		go func(entry *nodeEntry) {
			defer wg.Done()
			defer entry.output.closeAll()
			io := NodeIO{
				Commands: commands,
				Input:    entry.input,
				Output:   entry.output,
				Events:   g.events,
				Counters: &NodeCounters{},
			}
			entry.node.Run(ctx, io)
		}(entry)
	}

	go func() {
		wg.Wait()
		close(h.done)
	}()

	return h
}
