//go:build pcap
// +build pcap

package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/monitoring"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// pcapReplayNode is a source node that replays the UDP payloads of a
// previously captured PCAP file as byte frames, rather than resolving a
// live bind address. With the "realtime" setting true it keeps the
// capture's own inter-packet gaps; otherwise it replays without pausing. It is gated behind the "pcap" build tag because it links
// against libpcap, per the teacher repo's internal/lidar/network
// package. Grounded on internal/lidar/network.ReadPCAPFile.
type pcapReplayNode struct {
	id     uint64
	name   string
	file   string
	port   int
	replay bool
}

func newPCAPReplayNode(name string, settings map[string]any) (Node, error) {
	file, _ := settings["file"].(string)
	if file == "" {
		return nil, fmt.Errorf("pcap_replay node %q needs a file", name)
	}
	port, _ := settings["udp_port"].(int)
	if port == 0 {
		port = 3000
	}
	replay, _ := settings["realtime"].(bool)
	return &pcapReplayNode{id: allocNodeID(), name: name, file: file, port: port, replay: replay}, nil
}

func (n *pcapReplayNode) ID() uint64          { return n.id }
func (n *pcapReplayNode) Name() string        { return n.name }
func (n *pcapReplayNode) InputKind() PayloadKind  { return PayloadNone }
func (n *pcapReplayNode) OutputKind() PayloadKind { return PayloadBytes }

func (n *pcapReplayNode) Run(ctx context.Context, io NodeIO) {
	handle, err := pcap.OpenOffline(n.file)
	if err != nil {
		monitoring.Logf("gateway: node %q: open pcap file: %v", n.name, err)
		return
	}
	defer handle.Close()

	filterStr := fmt.Sprintf("udp port %d", n.port)
	if err := handle.SetBPFFilter(filterStr); err != nil {
		monitoring.Logf("gateway: node %q: set bpf filter %q: %v", n.name, filterStr, err)
		return
	}

	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	var lastTimestamp time.Time
	for packet := range source.Packets() {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-io.Commands:
			if !ok {
				return
			}
		case <-ticker.C:
			io.EmitStats(n.id, n.name)
		default:
		}

		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || len(udp.Payload) == 0 {
			continue
		}

		if n.replay && !lastTimestamp.IsZero() {
			if gap := packet.Metadata().Timestamp.Sub(lastTimestamp); gap > 0 {
				time.Sleep(gap)
			}
		}
		lastTimestamp = packet.Metadata().Timestamp

		frame := make([]byte, len(udp.Payload))
		copy(frame, udp.Payload)
		io.Received()
		io.Emit(n.id, n.name, frame)
	}
}
