package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/stretchr/testify/require"
)

func sampleFirePdu() dis.Pdu {
	return dis.Pdu{
		Header: dis.Header{ProtocolVersion: 7, ExerciseId: 1, PduType: dis.PduTypeFire, ProtocolFamily: 2},
		Body: dis.FireBody{
			FiringEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 1},
			TargetEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 2},
			MunitionEntityID: dis.EntityId{Site: 1, Application: 1, Entity: 3},
			EventID:          dis.EventId{Site: 1, Application: 1, EventNumber: 1},
			Location:         dis.WorldCoordinates{X: 1, Y: 2, Z: 3},
			Velocity:         dis.VectorF32{X: 1, Y: 0, Z: 0},
			Range:            100,
		},
	}
}

func TestDisReceiverSenderNode_RoundTrip(t *testing.T) {
	receiver, err := newDisReceiverNode("Receiver", nil)
	require.NoError(t, err)
	sender, err := newDisSenderNode("Sender", nil)
	require.NoError(t, err)

	wire, err := dis.SerializePdu(sampleFirePdu())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan Command)
	events := make(chan Event, 4)

	receiverIn := make(chan any, 1)
	receiverOut := newBroadcaster(DEFAULT_NODE_CHANNEL_CAPACITY)
	senderInput := receiverOut.subscribe()
	senderOut := newBroadcaster(DEFAULT_NODE_CHANNEL_CAPACITY)
	finalOutput := senderOut.subscribe()

	go receiver.Run(ctx, NodeIO{Commands: commands, Input: receiverIn, Output: receiverOut, Events: events})
	go sender.Run(ctx, NodeIO{Commands: commands, Input: senderInput, Output: senderOut, Events: events})

	receiverIn <- wire

	select {
	case out := <-finalOutput:
		buf, ok := out.([]byte)
		require.True(t, ok)
		require.Equal(t, wire, buf)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for round-tripped wire frame")
	}

	close(commands)
}

func TestDisReceiverNode_DropsMalformedFrameAndReportsEvent(t *testing.T) {
	receiver, err := newDisReceiverNode("Receiver", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan Command)
	events := make(chan Event, 4)
	in := make(chan any, 1)
	out := newBroadcaster(DEFAULT_NODE_CHANNEL_CAPACITY)

	go receiver.Run(ctx, NodeIO{Commands: commands, Input: in, Output: out, Events: events})

	in <- []byte{0x00}

	select {
	case ev := <-events:
		require.Equal(t, EventRuntimeError, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for malformed-frame event")
	}

	close(commands)
}

func TestBroadcaster_DropsWhenSubscriberFull(t *testing.T) {
	b := newBroadcaster(1)
	sub := b.subscribe()

	dropped1 := b.publish("first")
	require.Empty(t, dropped1)

	dropped2 := b.publish("second")
	require.Len(t, dropped2, 1)

	require.Equal(t, "first", <-sub)
}
