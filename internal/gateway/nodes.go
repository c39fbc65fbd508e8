package gateway

import (
	"context"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/monitoring"
)

// passThroughNode re-emits whatever it receives unchanged. It declares
// PayloadBytes for both input and output (see InputKind), so the
// builder accepts it only next to PayloadBytes neighbors.
type passThroughNode struct {
	id   uint64
	name string
}

func newPassThroughNode(name string, _ map[string]any) (Node, error) {
	return &passThroughNode{id: allocNodeID(), name: name}, nil
}

func (n *passThroughNode) ID() uint64   { return n.id }
func (n *passThroughNode) Name() string { return n.name }

// InputKind and OutputKind report PayloadBytes, the common case for a
// pass-through sitting between external byte producers/consumers (per
// spec.md section 8 scenario 6). A pass-through wired between two
// dis.Pdu-carrying nodes still works at runtime since it never
// inspects the message; only the builder's static check cares about
// the declared kind.
func (n *passThroughNode) InputKind() PayloadKind  { return PayloadBytes }
func (n *passThroughNode) OutputKind() PayloadKind { return PayloadBytes }

func (n *passThroughNode) Run(ctx context.Context, io NodeIO) {
	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-io.Commands:
			if !ok {
				return
			}
		case <-ticker.C:
			io.EmitStats(n.id, n.name)
		case msg, ok := <-io.Input:
			if !ok {
				return
			}
			io.Received()
			io.Emit(n.id, n.name, msg)
		}
	}
}

// disReceiverNode parses incoming byte frames into dis.Pdu values,
// dropping and reporting malformed frames rather than propagating a
// parse error downstream.
type disReceiverNode struct {
	id   uint64
	name string
}

func newDisReceiverNode(name string, _ map[string]any) (Node, error) {
	return &disReceiverNode{id: allocNodeID(), name: name}, nil
}

func (n *disReceiverNode) ID() uint64          { return n.id }
func (n *disReceiverNode) Name() string        { return n.name }
func (n *disReceiverNode) InputKind() PayloadKind  { return PayloadBytes }
func (n *disReceiverNode) OutputKind() PayloadKind { return PayloadPdu }

func (n *disReceiverNode) Run(ctx context.Context, io NodeIO) {
	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-io.Commands:
			if !ok {
				return
			}
		case <-ticker.C:
			io.EmitStats(n.id, n.name)
		case msg, ok := <-io.Input:
			if !ok {
				return
			}
			io.Received()
			buf, ok := msg.([]byte)
			if !ok {
				continue
			}
			pdu, err := dis.ParsePdu(buf)
			if err != nil {
				monitoring.Logf("gateway: node %q: dropping malformed dis frame: %v", n.name, err)
				select {
				case io.Events <- Event{Kind: EventRuntimeError, NodeID: n.id, NodeName: n.name, Message: err.Error()}:
				default:
				}
				continue
			}
			io.Emit(n.id, n.name, pdu)
		}
	}
}

// disSenderNode serializes dis.Pdu values back to wire bytes.
type disSenderNode struct {
	id   uint64
	name string
}

func newDisSenderNode(name string, _ map[string]any) (Node, error) {
	return &disSenderNode{id: allocNodeID(), name: name}, nil
}

func (n *disSenderNode) ID() uint64          { return n.id }
func (n *disSenderNode) Name() string        { return n.name }
func (n *disSenderNode) InputKind() PayloadKind  { return PayloadPdu }
func (n *disSenderNode) OutputKind() PayloadKind { return PayloadBytes }

func (n *disSenderNode) Run(ctx context.Context, io NodeIO) {
	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-io.Commands:
			if !ok {
				return
			}
		case <-ticker.C:
			io.EmitStats(n.id, n.name)
		case msg, ok := <-io.Input:
			if !ok {
				return
			}
			io.Received()
			pdu, ok := msg.(dis.Pdu)
			if !ok {
				continue
			}
			buf, err := dis.SerializePdu(pdu)
			if err != nil {
				monitoring.Logf("gateway: node %q: dropping unserializable pdu: %v", n.name, err)
				select {
				case io.Events <- Event{Kind: EventRuntimeError, NodeID: n.id, NodeName: n.name, Message: err.Error()}:
				default:
				}
				continue
			}
			io.Emit(n.id, n.name, buf)
		}
	}
}
