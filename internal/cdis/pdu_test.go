package cdis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/units"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

func roundTrip(t *testing.T, pdu Pdu) Pdu {
	t.Helper()
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)

	decoded, err := ParsePdu(encoded, len(encoded)*8)
	require.NoError(t, err)
	return decoded
}

func TestEntityState_RoundTrip(t *testing.T) {
	t.Parallel()

	body := EntityStateBody{
		FieldsPresent: entityStateMarkingPresent,
		EntityID:      EntityId{Site: varint.NewUVINT16(7), Application: varint.NewUVINT16(127), Entity: varint.NewUVINT16(255)},
		ForceID:       1,
		EntityType: EntityType{
			Kind: 1, Domain: 2, Country: 225,
			Category: varint.NewUVINT8(1), Subcategory: varint.NewUVINT8(1), Specific: varint.NewUVINT8(0), Extra: varint.NewUVINT8(0),
		},
		EntityLinearVelocity: LinearVelocity{X: varint.NewSVINT16(15), Y: varint.NewSVINT16(-25), Z: varint.NewSVINT16(0)},
		EntityLocation:       WorldCoordinates{LatitudeScaled: 100000, LongitudeScaled: 200000, AltitudeValue: 500, AltitudeUnit: units.AltitudeUnitMeters},
		EntityOrientation:    Orientation{Psi: 10, Theta: -10, Phi: 0},
		EntityAppearance:     0x0000_0001,
		EntityMarking:        EntityMarking{CharacterSet: 1, Characters: "TEST"},
	}
	pdu := Pdu{
		Header: Header{
			ProtocolVersion: 7,
			ExerciseId:      varint.NewUVINT8(1),
			Timestamp:       ClockTime{Absolute: true, QuantizedTicks: 12345},
			PduStatus:       0x01,
		},
		Body: body,
	}

	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(EntityStateBody)
	require.True(t, ok)
	assert.Equal(t, body.EntityID, got.EntityID)
	assert.Equal(t, body.EntityMarking, got.EntityMarking)
	assert.Equal(t, body.EntityLocation, got.EntityLocation)
	assert.Equal(t, body.EntityOrientation, got.EntityOrientation)
	assert.Equal(t, dis.PduTypeEntityState, decoded.Header.PduType)
	assert.Greater(t, decoded.Header.LengthBits, uint16(0))
}

func TestFire_RoundTrip_OmitsNoFireMission(t *testing.T) {
	t.Parallel()

	body := FireBody{
		FiringEntityID:   EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(1)},
		TargetEntityID:   EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(2)},
		MunitionEntityID: EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(3)},
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(42)},
		FireMissionIndex: varint.NewUVINT32(dis.NoFireMission),
		Location:         WorldCoordinates{AltitudeUnit: units.AltitudeUnitMeters},
		Descriptor: BurstDescriptor{
			MunitionType: EntityType{Kind: 2, Domain: 1, Country: 225, Category: varint.NewUVINT8(1), Subcategory: varint.NewUVINT8(1), Specific: varint.NewUVINT8(1), Extra: varint.NewUVINT8(0)},
			Warhead:      varint.NewUVINT16(1000), Fuse: varint.NewUVINT16(1000), Quantity: varint.NewUVINT16(1), Rate: varint.NewUVINT16(0),
		},
		Velocity: LinearVelocity{X: varint.NewSVINT16(100), Y: varint.NewSVINT16(0), Z: varint.NewSVINT16(0)},
		Range:    varint.NewUVINT32(5000),
	}
	pdu := Pdu{
		Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{Absolute: true}},
		Body:   body,
	}

	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(FireBody)
	require.True(t, ok)
	assert.Equal(t, dis.NoFireMission, got.FireMissionIndex.Value)
	assert.Equal(t, body.FiringEntityID, got.FiringEntityID)
	assert.Equal(t, body.Descriptor, got.Descriptor)
}

func TestCollision_RoundTrip_ElasticPreserved(t *testing.T) {
	t.Parallel()

	body := CollisionBody{
		IssuingEntityID:   EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(1)},
		CollidingEntityID: EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(2)},
		EventID:           EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		CollisionType:     dis.CollisionTypeElastic,
		Velocity:          LinearVelocity{X: varint.NewSVINT16(10)},
		MassValue:         200,
		MassUnit:          units.MassUnitKilograms,
		Location:          EntityCoordinateVector{X: varint.NewSVINT16(100)},
	}
	pdu := Pdu{
		Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}},
		Body:   body,
	}

	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(CollisionBody)
	require.True(t, ok)
	assert.Equal(t, dis.CollisionTypeElastic, got.CollisionType)
	assert.Equal(t, uint32(200), got.MassValue)
	assert.Equal(t, units.MassUnitKilograms, got.MassUnit)
}

func TestElectromagneticEmission_RoundTrip(t *testing.T) {
	t.Parallel()

	body := ElectromagneticEmissionBody{
		EmittingEntityID: EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(1)},
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		Systems: []EmitterSystem{
			{
				Name: varint.NewUVINT16(100), Function: 1, Number: 1,
				Location: LinearVelocity{},
				Beams: []EmitterBeam{
					{
						BeamIDNumber: 1, ParameterIndex: varint.NewUVINT16(1), ParametersPresent: true,
						FundamentalParameters: FundamentalParameterData{Frequency: 9500},
						BeamFunction:          1,
						TrackJamTargets: []TrackJamTarget{
							{EntityID: EntityId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), Entity: varint.NewUVINT16(2)}, EmitterNumber: 1, BeamNumber: 1},
						},
					},
				},
			},
		},
	}
	pdu := Pdu{
		Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}},
		Body:   body,
	}

	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(ElectromagneticEmissionBody)
	require.True(t, ok)
	require.Len(t, got.Systems, 1)
	require.Len(t, got.Systems[0].Beams, 1)
	assert.Equal(t, 1, len(got.Systems[0].Beams[0].TrackJamTargets))
	assert.InDelta(t, float64(9500), float64(got.Systems[0].Beams[0].FundamentalParameters.Frequency), 100)
}

func TestParsePdu_UnsupportedPduType(t *testing.T) {
	t.Parallel()

	w := bitio.NewWriter()
	header := Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), PduType: dis.PduTypeOther, Timestamp: ClockTime{}}
	require.NoError(t, header.write(w))
	_, err := ParsePdu(w.Bytes(), w.Cursor())
	var unsupported *UnsupportedPduError
	assert.ErrorAs(t, err, &unsupported)
}
