package dis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityState_RoundTrip(t *testing.T) {
	t.Parallel()

	body := EntityStateBody{
		EntityID: EntityId{Site: 7, Application: 127, Entity: 255},
		ForceID:  1,
		EntityType: EntityType{
			Kind: 1, Domain: 2, Country: 225, Category: 1, Subcategory: 1, Specific: 0, Extra: 0,
		},
		EntityLinearVelocity: VectorF32{X: 1.5, Y: -2.5, Z: 0},
		EntityLocation:       WorldCoordinates{X: 4395122.92, Y: 454787.17, Z: 4527894.29},
		EntityOrientation:    Orientation{Psi: 0.1, Theta: 0.2, Phi: 0.3},
		EntityAppearance:     0x0000_0001,
		EntityMarking:        EntityMarking{CharacterSet: 1, Characters: "TEST"},
		Capabilities:         0,
	}
	pdu := Pdu{
		Header: Header{
			ProtocolVersion: 7,
			ExerciseId:      1,
			ProtocolFamily:  ProtocolFamilyEntityInformation,
			Timestamp:       123456,
			PduStatus:       NewPduStatus(0x01),
		},
		Body: body,
	}

	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	assert.Equal(t, PduTypeEntityState, PduType(encoded[2]))

	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)

	got, ok := decoded.Body.(EntityStateBody)
	require.True(t, ok)
	assert.Equal(t, body.EntityID, got.EntityID)
	assert.Equal(t, body.EntityMarking, got.EntityMarking)
	assert.Equal(t, body.EntityLocation, got.EntityLocation)
	assert.Equal(t, body.EntityOrientation, got.EntityOrientation)
	assert.True(t, decoded.Header.PduStatus.TEIndicator())
	assert.Equal(t, int(decoded.Header.Length), len(encoded))
}

func TestFire_RoundTrip(t *testing.T) {
	t.Parallel()
	body := FireBody{
		FiringEntityID:   EntityId{Site: 1, Application: 1, Entity: 1},
		TargetEntityID:   EntityId{Site: 1, Application: 1, Entity: 2},
		MunitionEntityID: EntityId{Site: 1, Application: 1, Entity: 3},
		EventID:          EventId{Site: 1, Application: 1, EventNumber: 42},
		FireMissionIndex: NoFireMission,
		Location:         WorldCoordinates{X: 1, Y: 2, Z: 3},
		Descriptor: BurstDescriptor{
			MunitionType: EntityType{Kind: 2, Domain: 1},
			Warhead:      1000, Fuse: 1000, Quantity: 1, Rate: 0,
		},
		Velocity: VectorF32{X: 100, Y: 0, Z: 0},
		Range:    500,
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyWarfare}, Body: body}

	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(FireBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestCollision_RoundTrip(t *testing.T) {
	t.Parallel()
	body := CollisionBody{
		IssuingEntityID:   EntityId{Site: 1, Application: 1, Entity: 1},
		CollidingEntityID: EntityId{Site: 1, Application: 1, Entity: 2},
		EventID:           EventId{Site: 1, Application: 1, EventNumber: 1},
		CollisionType:     CollisionTypeInelastic,
		Velocity:          VectorF32{X: 1, Y: 2, Z: 3},
		Mass:              1500.0,
		Location:          VectorF32{X: 0.1, Y: 0.2, Z: 0.3},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyEntityInformation}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(CollisionBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestElectromagneticEmission_RoundTrip(t *testing.T) {
	t.Parallel()
	body := ElectromagneticEmissionBody{
		EmittingEntityID:     EntityId{Site: 1, Application: 1, Entity: 1},
		EventID:              EventId{Site: 1, Application: 1, EventNumber: 5},
		StateUpdateIndicator: 0,
		Systems: []EmitterSystem{
			{
				Name: 1, Function: 1, Number: 1,
				Location: VectorF32{X: 1, Y: 0, Z: 0},
				Beams: []EmitterBeam{
					{
						BeamIDNumber:          1,
						ParameterIndex:        1,
						FundamentalParameters: FundamentalParameterData{Frequency: 9000},
						BeamFunction:          1,
						TrackJamTargets: []TrackJamTarget{
							{EntityID: EntityId{Site: 1, Application: 1, Entity: 9}, EmitterNumber: 1, BeamNumber: 1},
						},
					},
				},
			},
		},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyDistributedEmission}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(ElectromagneticEmissionBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestOtherBody_PassThrough(t *testing.T) {
	t.Parallel()
	raw := OtherBody{Type: PduTypeComment, Payload: []byte{1, 2, 3, 4}}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilySimulationManagement}, Body: raw}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(OtherBody)
	require.True(t, ok)
	assert.Equal(t, raw.Payload, got.Payload)
	assert.Equal(t, PduTypeComment, got.Type)
}

func TestParsePdu_InsufficientHeaderLength(t *testing.T) {
	t.Parallel()
	_, err := ParsePdu([]byte{1, 2, 3})
	var insufficient *InsufficientHeaderLengthError
	assert.ErrorAs(t, err, &insufficient)
}
