package gateway

import (
	"testing"

	"github.com/dis-interop/cdis-gateway/internal/gwconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RejectsEmptySpec(t *testing.T) {
	_, err := NewBuilder().Build(gwconfig.GatewaySpec{})
	require.Error(t, err)
	var invalid *InvalidSpecError
	require.ErrorAs(t, err, &invalid)
}

func TestBuild_RejectsMissingType(t *testing.T) {
	spec := gwconfig.GatewaySpec{Nodes: []gwconfig.NodeSpec{{Name: "A"}}}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
}

func TestBuild_RejectsMissingName(t *testing.T) {
	spec := gwconfig.GatewaySpec{Nodes: []gwconfig.NodeSpec{{Type: "pass_through"}}}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
}

func TestBuild_RejectsUnknownNodeType(t *testing.T) {
	spec := gwconfig.GatewaySpec{Nodes: []gwconfig.NodeSpec{{Type: "wat", Name: "A"}}}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")
}

func TestBuild_RejectsDanglingChannelEndpoint(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes:    []gwconfig.NodeSpec{{Type: "pass_through", Name: "A"}},
		Channels: []gwconfig.ChannelSpec{{From: "A", To: "Nowhere"}},
	}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node")
}

func TestBuild_RejectsCycle(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes: []gwconfig.NodeSpec{
			{Type: "pass_through", Name: "A"},
			{Type: "pass_through", Name: "B"},
		},
		Channels: []gwconfig.ChannelSpec{
			{From: "A", To: "B"},
			{From: "B", To: "A"},
		},
	}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestBuild_RejectsChannelTypeMismatch(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes: []gwconfig.NodeSpec{
			{Type: "dis_receiver", Name: "A"}, // outputs PayloadPdu
			{Type: "dis_receiver", Name: "B"}, // expects PayloadBytes input
		},
		Channels: []gwconfig.ChannelSpec{{From: "A", To: "B"}},
	}
	_, err := NewBuilder().Build(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel type mismatch")
}

func TestBuild_PassThroughPairWithExternals(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes: []gwconfig.NodeSpec{
			{Type: "pass_through", Name: "Pass One"},
			{Type: "pass_through", Name: "Pass Two"},
		},
		Channels:  []gwconfig.ChannelSpec{{From: "Pass One", To: "Pass Two"}},
		Externals: gwconfig.ExternalsSpec{Incoming: "Pass One", Outgoing: "Pass Two"},
	}
	g, err := NewBuilder().Build(spec)
	require.NoError(t, err)
	require.NotNil(t, g.Incoming)
	require.NotNil(t, g.Outgoing)
}

func TestBuild_AssignsUniqueNonZeroNodeIDs(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes: []gwconfig.NodeSpec{
			{Type: "pass_through", Name: "A"},
			{Type: "pass_through", Name: "B"},
		},
	}
	g, err := NewBuilder().Build(spec)
	require.NoError(t, err)
	idA := g.entries["A"].node.ID()
	idB := g.entries["B"].node.ID()
	assert.NotZero(t, idA)
	assert.NotZero(t, idB)
	assert.NotEqual(t, idA, idB)
}
