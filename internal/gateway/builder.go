package gateway

import (
	"fmt"

	"github.com/dis-interop/cdis-gateway/internal/gwconfig"
)

// Constructor builds one Node instance from its name and its
// node-specific settings (gwconfig.NodeSpec.Settings).
type Constructor func(name string, settings map[string]any) (Node, error)

// Builder instantiates Nodes from a gwconfig.GatewaySpec via a
// type-name constructor registry, per spec.md section 4.7.1.
type Builder struct {
	constructors map[string]Constructor
}

// NewBuilder returns a Builder pre-registered with every provided node
// type: udp, tcp_server, tcp_client, pass_through, dis_receiver,
// dis_sender, pcap_replay.
func NewBuilder() *Builder {
	b := &Builder{constructors: make(map[string]Constructor)}
	b.Register("pass_through", newPassThroughNode)
	b.Register("dis_receiver", newDisReceiverNode)
	b.Register("dis_sender", newDisSenderNode)
	b.Register("udp", newUDPNode)
	b.Register("tcp_server", newTCPServerNode)
	b.Register("tcp_client", newTCPClientNode)
	b.Register("pcap_replay", newPCAPReplayNode)
	return b
}

// Register adds or replaces the constructor for a node type name.
func (b *Builder) Register(typeName string, ctor Constructor) {
	b.constructors[typeName] = ctor
}

// nodeEntry pairs a constructed Node with its output broadcaster and
// the input channel it will run with.
type nodeEntry struct {
	node   Node
	output *broadcaster
	input  <-chan any
}

// Build validates spec and constructs a Graph ready to Run. Every
// defect spec.md section 4.7.1 names is reported as *InvalidSpecError.
func (b *Builder) Build(spec gwconfig.GatewaySpec) (*Graph, error) {
	if len(spec.Nodes) == 0 {
		return nil, &InvalidSpecError{Reason: "specification has no nodes"}
	}

	entries := make(map[string]*nodeEntry, len(spec.Nodes))
	order := make([]string, 0, len(spec.Nodes))

	for i, ns := range spec.Nodes {
		if ns.Type == "" {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("node %d missing type", i)}
		}
		if ns.Name == "" {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("node %d missing name", i)}
		}
		if _, exists := entries[ns.Name]; exists {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("duplicate node name %q", ns.Name)}
		}
		ctor, ok := b.constructors[ns.Type]
		if !ok {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("unknown node type %q", ns.Type)}
		}
		node, err := ctor(ns.Name, ns.Settings)
		if err != nil {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("node %q: %v", ns.Name, err)}
		}
		entries[ns.Name] = &nodeEntry{node: node, output: newBroadcaster(DEFAULT_NODE_CHANNEL_CAPACITY)}
		order = append(order, ns.Name)
	}

	adjacency := make(map[string][]string, len(entries))
	for _, ch := range spec.Channels {
		from, ok := entries[ch.From]
		if !ok {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("channel references unknown node %q", ch.From)}
		}
		to, ok := entries[ch.To]
		if !ok {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("channel references unknown node %q", ch.To)}
		}
		if from.node.OutputKind() == PayloadNone || to.node.InputKind() == PayloadNone {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("channel type mismatch: %q has no output or %q has no input", ch.From, ch.To)}
		}
		if from.node.OutputKind() != to.node.InputKind() {
			return nil, &InvalidSpecError{Reason: "channel type mismatch"}
		}
		if to.input != nil {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("node %q already has an input channel", ch.To)}
		}
		to.input = from.output.subscribe()
		adjacency[ch.From] = append(adjacency[ch.From], ch.To)
	}

	if cycle := findCycle(order, adjacency); cycle != "" {
		return nil, &InvalidSpecError{Reason: fmt.Sprintf("cycle detected at node %q", cycle)}
	}

	g := &Graph{
		entries: entries,
		order:   order,
		events:  make(chan Event, DEFAULT_NODE_CHANNEL_CAPACITY),
	}

	if spec.Externals.Incoming != "" {
		entry, ok := entries[spec.Externals.Incoming]
		if !ok {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("externals.incoming references unknown node %q", spec.Externals.Incoming)}
		}
		if entry.input != nil {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("externals.incoming node %q already has an input channel", spec.Externals.Incoming)}
		}
		in := make(chan any, DEFAULT_NODE_CHANNEL_CAPACITY)
		entry.input = in
		g.Incoming = in
	}

	if spec.Externals.Outgoing != "" {
		entry, ok := entries[spec.Externals.Outgoing]
		if !ok {
			return nil, &InvalidSpecError{Reason: fmt.Sprintf("externals.outgoing references unknown node %q", spec.Externals.Outgoing)}
		}
		g.Outgoing = entry.output.subscribe()
	}

	return g, nil
}

// findCycle performs a depth-first search over adjacency, returning
// the name of a node on a cycle, or "" if the graph is acyclic.
func findCycle(order []string, adjacency map[string][]string) string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(order))

	var visit func(name string) string
	visit = func(name string) string {
		switch state[name] {
		case visiting:
			return name
		case done:
			return ""
		}
		state[name] = visiting
		for _, next := range adjacency[name] {
			if found := visit(next); found != "" {
				return found
			}
		}
		state[name] = done
		return ""
	}

	for _, name := range order {
		if state[name] == unvisited {
			if found := visit(name); found != "" {
				return found
			}
		}
	}
	return ""
}
