package dis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopFreeze_FrozenBehaviorBits(t *testing.T) {
	t.Parallel()
	body := StopFreezeBody{
		OriginatingEntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		ReceivingEntityID:   EntityId{Site: 0xFFFF, Application: 0xFFFF, Entity: 0xFFFF},
		RealWorldTime:       ClockTime{Hour: 10, TimePastHour: 2000},
		Reason:              1,
		RunSimulationClock:  true,
		TransmitUpdates:     false,
		ProcessUpdates:      true,
		RequestID:           99,
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilySimulationManagement}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(StopFreezeBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
	assert.Equal(t, uint8(0x05), got.frozenBehaviorOctet())
}

func TestAcknowledge_RoundTrip(t *testing.T) {
	t.Parallel()
	body := AcknowledgeBody{
		OriginatingEntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		ReceivingEntityID:   EntityId{Site: 2, Application: 2, Entity: 2},
		AcknowledgeFlag:     1,
		ResponseFlag:        2,
		RequestID:           7,
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilySimulationManagement}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(AcknowledgeBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestDesignator_RoundTrip(t *testing.T) {
	t.Parallel()
	body := DesignatorBody{
		DesignatingEntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		CodeName:            1,
		DesignatedEntityID:  EntityId{Site: 1, Application: 1, Entity: 2},
		DesignatorCode:      1111,
		DesignatorPower:     100,
		DesignatorWavelength: 1.064,
		DesignatorSpotWrtDesignated: VectorF32{X: 1, Y: 0, Z: 0},
		DesignatorSpotLocation:      WorldCoordinates{X: 10, Y: 20, Z: 30},
		DeadReckoningAlgorithm:      2,
		EntityLinearAcceleration:    VectorF32{X: 0, Y: 0, Z: -9.8},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyWarfare}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(DesignatorBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestTransmitter_RoundTrip(t *testing.T) {
	t.Parallel()
	body := TransmitterBody{
		EntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		RadioID:  1,
		RadioEntityType: RadioEntityType{Kind: 4, Domain: 0, Country: 225, Category: 1, NomenclatureVersion: 1, Nomenclature: 100},
		TransmitState: 2,
		InputSource:   1,
		AntennaLocation:         WorldCoordinates{X: 1, Y: 2, Z: 3},
		RelativeAntennaLocation: VectorF32{X: 0.1, Y: 0.2, Z: 0.3},
		AntennaPatternType:      0,
		Frequency:                30000000,
		TransmitFrequencyBandwidth: 25000,
		Power:                      10,
		ModulationType:             ModulationType{SpreadSpectrum: 0, MajorModulation: 3, Detail: 0, System: 5},
		CryptoSystem:               0,
		CryptoKeyId:                0,
		ModulationParameters:       []byte{1, 2, 3},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyDistributedEmission}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(TransmitterBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestIFF_RoundTrip(t *testing.T) {
	t.Parallel()
	body := IFFBody{
		EmittingEntityID:        EntityId{Site: 1, Application: 1, Entity: 1},
		EventID:                 EventId{Site: 1, Application: 1, EventNumber: 1},
		RelativeAntennaLocation: VectorF32{X: 1, Y: 0, Z: 0},
		SystemID:                IFFSystemID{SystemType: 1, SystemName: 1, SystemMode: 2, ChangeOptions: 0},
		FundamentalOperationalData: IFFFundamentalOperationalData{
			SystemStatus: 1, ParameterOne: 1200,
		},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilyDistributedEmission}, Body: body}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	got, ok := decoded.Body.(IFFBody)
	require.True(t, ok)
	assert.Equal(t, body.SystemID, got.SystemID)
	assert.Equal(t, body.FundamentalOperationalData, got.FundamentalOperationalData)
	assert.Empty(t, got.AdditionalLayers)
}

func TestCreateRemoveEntity_RoundTrip(t *testing.T) {
	t.Parallel()
	create := CreateEntityBody{
		OriginatingEntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		ReceivingEntityID:   EntityId{Site: 2, Application: 2, Entity: 2},
		RequestID:           5,
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilySimulationManagement}, Body: create}
	encoded, err := SerializePdu(pdu)
	require.NoError(t, err)
	decoded, err := ParsePdu(encoded)
	require.NoError(t, err)
	gotCreate, ok := decoded.Body.(CreateEntityBody)
	require.True(t, ok)
	assert.Equal(t, create, gotCreate)

	remove := RemoveEntityBody{
		OriginatingEntityID: EntityId{Site: 1, Application: 1, Entity: 1},
		ReceivingEntityID:   EntityId{Site: 2, Application: 2, Entity: 2},
		RequestID:           6,
	}
	pdu2 := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: 1, ProtocolFamily: ProtocolFamilySimulationManagement}, Body: remove}
	encoded2, err := SerializePdu(pdu2)
	require.NoError(t, err)
	decoded2, err := ParsePdu(encoded2)
	require.NoError(t, err)
	gotRemove, ok := decoded2.Body.(RemoveEntityBody)
	require.True(t, ok)
	assert.Equal(t, remove, gotRemove)
}
