package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/gwconfig"
	"github.com/stretchr/testify/require"
)

// TestRun_PassThroughScenario mirrors spec.md section 8 scenario 6:
// a message sent on externals.incoming arrives on externals.outgoing
// within one scheduler turn, and a subsequent quit terminates both
// nodes promptly.
func TestRun_PassThroughScenario(t *testing.T) {
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
	spec, err := gwconfig.ParseGatewaySpec(toml)
	require.NoError(t, err)

	g, err := NewBuilder().Build(spec)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := g.Run(ctx)

	select {
	case g.Incoming <- []byte("Hello"):
	case <-time.After(time.Second):
		t.Fatal("timed out sending to externals.incoming")
	}

	select {
	case msg := <-g.Outgoing:
		require.Equal(t, []byte("Hello"), msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting on externals.outgoing")
	}

	handle.Quit()

	select {
	case <-waitChan(handle):
	case <-time.After(time.Second):
		t.Fatal("nodes did not terminate after Quit")
	}
}

func waitChan(h *Handle) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()
	return done
}

func TestRun_CommandQuitStopsUnconnectedNode(t *testing.T) {
	spec := gwconfig.GatewaySpec{
		Nodes: []gwconfig.NodeSpec{{Type: "pass_through", Name: "Solo"}},
	}
	g, err := NewBuilder().Build(spec)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := g.Run(ctx)
	handle.Quit()

	select {
	case <-waitChan(handle):
	case <-time.After(time.Second):
		t.Fatal("node did not terminate after Quit")
	}
}
