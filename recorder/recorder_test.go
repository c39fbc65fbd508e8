package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "frames.db")
	r, err := Open(dbPath)
	require.NoError(t, err)

	migrationsFS, err := MigrationsFS()
	require.NoError(t, err)
	require.NoError(t, r.MigrateUp(migrationsFS))

	t.Cleanup(func() { r.Close() })
	return r
}

func sampleFirePdu() dis.Pdu {
	return dis.Pdu{
		Header: dis.Header{ProtocolVersion: 7, ExerciseId: 1, PduType: dis.PduTypeFire, ProtocolFamily: 2},
		Body: dis.FireBody{
			FiringEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 1},
			TargetEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 2},
			MunitionEntityID: dis.EntityId{Site: 1, Application: 1, Entity: 3},
			EventID:          dis.EventId{Site: 1, Application: 1, EventNumber: 42},
			Location:         dis.WorldCoordinates{X: 1, Y: 2, Z: 3},
			Velocity:         dis.VectorF32{X: 1, Y: 0, Z: 0},
			Range:            100,
		},
	}
}

func TestRecorder_RunCommitsFrame(t *testing.T) {
	r := openTestRecorder(t)

	go r.Run()

	r.Frames() <- Frame{Pdu: sampleFirePdu(), Direction: DirectionInbound, Observed: time.Unix(0, 0)}
	close(r.frames)
	<-r.Done()

	stats, err := r.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.FrameCount)
	require.Equal(t, int64(1), stats.InboundCount)
	require.Equal(t, int64(0), stats.OutboundCount)
}

func TestRecorder_RunCommitsMultipleDirections(t *testing.T) {
	r := openTestRecorder(t)

	go r.Run()

	r.Frames() <- Frame{Pdu: sampleFirePdu(), Direction: DirectionInbound, Observed: time.Unix(1, 0)}
	r.Frames() <- Frame{Pdu: sampleFirePdu(), Direction: DirectionOutbound, Observed: time.Unix(2, 0)}
	close(r.frames)
	<-r.Done()

	stats, err := r.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.FrameCount)
	require.Equal(t, int64(1), stats.InboundCount)
	require.Equal(t, int64(1), stats.OutboundCount)
}
