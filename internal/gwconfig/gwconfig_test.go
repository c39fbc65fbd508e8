package gwconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGatewaySpec_PassThroughPair(t *testing.T) {
	t.Parallel()

	toml := []byte(`
[[nodes]]
type = "pass_through"
name = "Pass One"

[[nodes]]
type = "pass_through"
name = "Pass Two"

[[channels]]
from = "Pass One"
to = "Pass Two"

[externals]
incoming = "Pass One"
outgoing = "Pass Two"
`)
	spec, err := ParseGatewaySpec(toml)
	require.NoError(t, err)
	require.Len(t, spec.Nodes, 2)
	assert.Equal(t, "pass_through", spec.Nodes[0].Type)
	assert.Equal(t, "Pass One", spec.Nodes[0].Name)
	require.Len(t, spec.Channels, 1)
	assert.Equal(t, "Pass One", spec.Channels[0].From)
	assert.Equal(t, "Pass Two", spec.Channels[0].To)
	assert.Equal(t, "Pass One", spec.Externals.Incoming)
	assert.Equal(t, "Pass Two", spec.Externals.Outgoing)
}

func TestParseGatewaySpec_NodeSettingsCarryExtraKeys(t *testing.T) {
	t.Parallel()

	toml := []byte(`
[[nodes]]
type = "udp"
name = "Radio"
bind = "0.0.0.0:3000"
remote = "10.0.0.2:3000"
`)
	spec, err := ParseGatewaySpec(toml)
	require.NoError(t, err)
	require.Len(t, spec.Nodes, 1)
	assert.Equal(t, "0.0.0.0:3000", spec.Nodes[0].Settings["bind"])
	assert.Equal(t, "10.0.0.2:3000", spec.Nodes[0].Settings["remote"])
}

func TestParseFederationSpec(t *testing.T) {
	t.Parallel()

	toml := []byte(`
[federation]
entity_state_heartbeat = "5s"
transmitter_heartbeat = "2s"
full_update_multiplier = 2.4
`)
	spec, err := ParseFederationSpec(toml)
	require.NoError(t, err)
	assert.Equal(t, "5s", spec.EntityStateHeartbeat)
	assert.Equal(t, "2s", spec.TransmitterHeartbeat)
	assert.Equal(t, 2.4, spec.FullUpdateMultiplier)
}
