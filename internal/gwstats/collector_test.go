package gwstats

import (
	"testing"

	"github.com/dis-interop/cdis-gateway/internal/gateway"
	"github.com/dis-interop/cdis-gateway/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsStatsAndComputesMeanRate(t *testing.T) {
	c := NewCollector()

	c.record(gateway.Event{Kind: gateway.EventStats, NodeID: 1, NodeName: "Radio", Stats: gateway.NodeStats{Received: 100, Sent: 100}})
	c.record(gateway.Event{Kind: gateway.EventStats, NodeID: 1, NodeName: "Radio", Stats: gateway.NodeStats{Received: 200, Sent: 200}})

	snaps := c.Snapshot()
	require.Len(t, snaps, 1)
	assert.Equal(t, "Radio", snaps[0].NodeName)
	assert.Equal(t, int64(200), snaps[0].Latest.Received)
	assert.Greater(t, snaps[0].MeanRate, 0.0)
}

func TestCollector_RecordsRuntimeErrorMessage(t *testing.T) {
	c := NewCollector()
	c.record(gateway.Event{Kind: gateway.EventRuntimeError, NodeID: 2, NodeName: "Link", Message: "subscriber lagged, message dropped"})

	snaps := c.Snapshot()
	require.Len(t, snaps, 1)
	assert.Equal(t, "subscriber lagged, message dropped", snaps[0].RuntimeError)
}

func TestCollector_ConsumeStopsOnChannelClose(t *testing.T) {
	c := NewCollector()
	ch := make(chan gateway.Event)
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		c.Consume(done, ch)
		close(finished)
	}()

	close(ch)
	<-finished
}

func TestServeDashboard_RendersWithoutError(t *testing.T) {
	c := NewCollector()
	c.record(gateway.Event{Kind: gateway.EventStats, NodeID: 1, NodeName: "Radio", Stats: gateway.NodeStats{Received: 10, Sent: 10}})

	rec := testutil.NewTestRecorder()
	req := testutil.NewTestRequest("GET", "/gwstats")
	c.ServeDashboard(rec, req)

	testutil.AssertStatusCode(t, rec.Code, 200)
	assert.Contains(t, rec.Body.String(), "Gateway Node Throughput")
}
