package gateway

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/monitoring"
)

const (
	netReadBufferSize = 65536
	netReadDeadline   = 100 * time.Millisecond
)

// udpNode sends/receives raw byte frames over UDP. "bind" makes it a
// source (OutputKind PayloadBytes); "remote" makes it a sink
// (InputKind PayloadBytes); a node may set both for a bidirectional
// link, per spec.md section 4.7's provided "udp" node type. The
// read-deadline-and-recheck-context loop is grounded on
// internal/lidar/network.UDPListener.Start in the teacher repo.
type udpNode struct {
	id     uint64
	name   string
	bind   string
	remote string
}

func newUDPNode(name string, settings map[string]any) (Node, error) {
	bind, _ := settings["bind"].(string)
	remote, _ := settings["remote"].(string)
	if bind == "" && remote == "" {
		return nil, fmt.Errorf("udp node %q needs a bind and/or remote address", name)
	}
	return &udpNode{id: allocNodeID(), name: name, bind: bind, remote: remote}, nil
}

func (n *udpNode) ID() uint64   { return n.id }
func (n *udpNode) Name() string { return n.name }

func (n *udpNode) InputKind() PayloadKind {
	if n.remote == "" {
		return PayloadNone
	}
	return PayloadBytes
}

func (n *udpNode) OutputKind() PayloadKind {
	if n.bind == "" {
		return PayloadNone
	}
	return PayloadBytes
}

func (n *udpNode) Run(ctx context.Context, io NodeIO) {
	var laddr *net.UDPAddr
	var err error
	if n.bind != "" {
		laddr, err = net.ResolveUDPAddr("udp", n.bind)
		if err != nil {
			monitoring.Logf("gateway: node %q: resolve bind address: %v", n.name, err)
			return
		}
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		monitoring.Logf("gateway: node %q: listen udp: %v", n.name, err)
		return
	}
	defer conn.Close()

	var remoteAddr *net.UDPAddr
	if n.remote != "" {
		remoteAddr, err = net.ResolveUDPAddr("udp", n.remote)
		if err != nil {
			monitoring.Logf("gateway: node %q: resolve remote address: %v", n.name, err)
			return
		}
	}

	var wg sync.WaitGroup
	if n.bind != "" {
		wg.Add(1)
		go n.readLoop(ctx, conn, io, &wg)
	}

	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case _, ok := <-io.Commands:
			if !ok {
				wg.Wait()
				return
			}
		case <-ticker.C:
			io.EmitStats(n.id, n.name)
		case msg, ok := <-io.Input:
			if !ok {
				wg.Wait()
				return
			}
			io.Received()
			if remoteAddr == nil {
				continue
			}
			packet, ok := msg.([]byte)
			if !ok {
				continue
			}
			if _, writeErr := conn.WriteToUDP(packet, remoteAddr); writeErr != nil {
				n.reportError(io, writeErr)
			}
		}
	}
}

func (n *udpNode) readLoop(ctx context.Context, conn *net.UDPConn, io NodeIO, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, netReadBufferSize)
	for {
		if ctx.Err() != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(netReadDeadline))
		read, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return
		}
		packet := make([]byte, read)
		copy(packet, buf[:read])
		io.Emit(n.id, n.name, packet)
	}
}

func (n *udpNode) reportError(io NodeIO, err error) {
	select {
	case io.Events <- Event{Kind: EventRuntimeError, NodeID: n.id, NodeName: n.name, Message: err.Error()}:
	default:
	}
}

// tcpServerNode accepts inbound TCP connections one at a time and relays
// byte frames to/from the current one; the next connection is accepted
// once the current one ends.
type tcpServerNode struct {
	id   uint64
	name string
	bind string
}

func newTCPServerNode(name string, settings map[string]any) (Node, error) {
	bind, _ := settings["bind"].(string)
	if bind == "" {
		return nil, fmt.Errorf("tcp_server node %q needs a bind address", name)
	}
	return &tcpServerNode{id: allocNodeID(), name: name, bind: bind}, nil
}

func (n *tcpServerNode) ID() uint64          { return n.id }
func (n *tcpServerNode) Name() string        { return n.name }
func (n *tcpServerNode) InputKind() PayloadKind  { return PayloadBytes }
func (n *tcpServerNode) OutputKind() PayloadKind { return PayloadBytes }

func (n *tcpServerNode) Run(ctx context.Context, io NodeIO) {
	listener, err := net.Listen("tcp", n.bind)
	if err != nil {
		monitoring.Logf("gateway: node %q: listen tcp: %v", n.name, err)
		return
	}
	defer listener.Close()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			monitoring.Logf("gateway: node %q: accept: %v", n.name, err)
			continue
		}
		if !runTCPConn(ctx, conn, io, n.id, n.name) {
			return
		}
	}
}

// tcpClientNode dials a remote TCP server once and relays byte frames
// to/from it for the connection's lifetime.
type tcpClientNode struct {
	id     uint64
	name   string
	remote string
}

func newTCPClientNode(name string, settings map[string]any) (Node, error) {
	remote, _ := settings["remote"].(string)
	if remote == "" {
		return nil, fmt.Errorf("tcp_client node %q needs a remote address", name)
	}
	return &tcpClientNode{id: allocNodeID(), name: name, remote: remote}, nil
}

func (n *tcpClientNode) ID() uint64          { return n.id }
func (n *tcpClientNode) Name() string        { return n.name }
func (n *tcpClientNode) InputKind() PayloadKind  { return PayloadBytes }
func (n *tcpClientNode) OutputKind() PayloadKind { return PayloadBytes }

func (n *tcpClientNode) Run(ctx context.Context, io NodeIO) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", n.remote)
	if err != nil {
		monitoring.Logf("gateway: node %q: dial tcp: %v", n.name, err)
		return
	}
	runTCPConn(ctx, conn, io, n.id, n.name)
}

// runTCPConn relays one TCP connection's bytes through io until the
// connection closes, the Command channel closes, or ctx is done. It
// returns false when the node's caller should stop entirely (quit
// observed), true when only this connection ended (server case, ready
// to accept another).
func runTCPConn(ctx context.Context, conn net.Conn, io NodeIO, nodeID uint64, nodeName string) bool {
	defer conn.Close()

	var wg sync.WaitGroup
	connDone := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(connDone)
		buf := make([]byte, netReadBufferSize)
		for {
			conn.SetReadDeadline(time.Now().Add(netReadDeadline))
			read, err := conn.Read(buf)
			if read > 0 {
				packet := make([]byte, read)
				copy(packet, buf[:read])
				io.Emit(nodeID, nodeName, packet)
			}
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()

	keepGoing := true
	for {
		select {
		case <-ctx.Done():
			keepGoing = false
		case <-connDone:
			wg.Wait()
			return keepGoing
		case _, ok := <-io.Commands:
			if !ok {
				keepGoing = false
			}
		case <-ticker.C:
			io.EmitStats(nodeID, nodeName)
		case msg, ok := <-io.Input:
			if !ok {
				keepGoing = false
				break
			}
			io.Received()
			packet, isBytes := msg.([]byte)
			if !isBytes {
				break
			}
			if _, err := conn.Write(packet); err != nil {
				select {
				case io.Events <- Event{Kind: EventRuntimeError, NodeID: nodeID, NodeName: nodeName, Message: err.Error()}:
				default:
				}
			}
		}
		if !keepGoing {
			conn.Close()
			wg.Wait()
			return false
		}
	}
}
