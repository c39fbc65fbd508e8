//go:build !pcap
// +build !pcap

package gateway

import "fmt"

// newPCAPReplayNode is a stub used when PCAP support is disabled.
// Build with -tags=pcap to enable PCAP file replay.
func newPCAPReplayNode(name string, _ map[string]any) (Node, error) {
	return nil, fmt.Errorf("pcap_replay node %q: PCAP support not enabled: rebuild with -tags=pcap", name)
}
