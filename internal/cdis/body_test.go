package cdis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

func entityId(site, app, entity uint16) EntityId {
	return EntityId{Site: varint.NewUVINT16(site), Application: varint.NewUVINT16(app), Entity: varint.NewUVINT16(entity)}
}

func TestStopFreeze_FrozenBehaviorBits(t *testing.T) {
	t.Parallel()

	body := StopFreezeBody{
		OriginatingEntityID: entityId(1, 1, 1),
		ReceivingEntityID:   entityId(1, 1, 2),
		Reason:              dis.StopFreezeReason(1),
		RunSimulationClock:  true,
		ProcessUpdates:      true,
		RequestID:           varint.NewUVINT32(7),
	}
	assert.Equal(t, uint64(0x05), body.frozenBehaviorBits())

	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(StopFreezeBody)
	require.True(t, ok)
	assert.True(t, got.RunSimulationClock)
	assert.False(t, got.TransmitUpdates)
	assert.True(t, got.ProcessUpdates)
	assert.Equal(t, body.RequestID, got.RequestID)
}

func TestAcknowledge_RoundTrip(t *testing.T) {
	t.Parallel()

	body := AcknowledgeBody{
		OriginatingEntityID: entityId(1, 1, 1),
		ReceivingEntityID:   entityId(1, 1, 2),
		AcknowledgeFlag:     dis.AcknowledgeFlag(3),
		ResponseFlag:        dis.ResponseFlag(2),
		RequestID:           varint.NewUVINT32(99),
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(AcknowledgeBody)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestCreateRemoveEntity_RoundTrip(t *testing.T) {
	t.Parallel()

	create := CreateEntityBody{OriginatingEntityID: entityId(1, 1, 1), ReceivingEntityID: entityId(1, 1, 2), RequestID: varint.NewUVINT32(5)}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: create}
	decoded := roundTrip(t, pdu)
	gotCreate, ok := decoded.Body.(CreateEntityBody)
	require.True(t, ok)
	assert.Equal(t, create, gotCreate)

	remove := RemoveEntityBody{OriginatingEntityID: entityId(1, 1, 1), ReceivingEntityID: entityId(1, 1, 2), RequestID: varint.NewUVINT32(6)}
	pdu2 := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: remove}
	decoded2 := roundTrip(t, pdu2)
	gotRemove, ok := decoded2.Body.(RemoveEntityBody)
	require.True(t, ok)
	assert.Equal(t, remove, gotRemove)
}

func TestDesignator_RoundTrip(t *testing.T) {
	t.Parallel()

	body := DesignatorBody{
		DesignatingEntityID:         entityId(1, 1, 1),
		CodeName:                    varint.NewUVINT16(1),
		DesignatedEntityID:          entityId(1, 1, 2),
		DesignatorCode:              varint.NewUVINT16(1001),
		DesignatorPower:             varint.NewUVINT32(500),
		DesignatorWavelength:        varint.NewUVINT32(1),
		DesignatorSpotWrtDesignated: EntityCoordinateVector{X: varint.NewSVINT16(10)},
		DesignatorSpotLocation:      WorldCoordinates{},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(DesignatorBody)
	require.True(t, ok)
	assert.Equal(t, body.DesignatingEntityID, got.DesignatingEntityID)
	assert.Equal(t, body.DesignatorPower, got.DesignatorPower)
}

func TestTransmitter_RoundTrip(t *testing.T) {
	t.Parallel()

	body := TransmitterBody{
		EntityID: entityId(1, 1, 1),
		RadioID:  varint.NewUVINT16(1),
		RadioEntityType: RadioEntityType{
			Kind: 5, Domain: 0, Country: 225, Category: varint.NewUVINT8(1), NomenclatureVersion: 1, Nomenclature: varint.NewUVINT16(1),
		},
		TransmitState:            2,
		Frequency:                225000000,
		TransmitFrequencyBandwidth: 16000,
		Power:                    10,
		ModulationType:           ModulationType{MajorModulation: varint.NewUVINT16(1)},
		ModulationParameters:     []byte{1, 2, 3},
		AntennaPatternParameters: []byte{4, 5, 6, 7},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(TransmitterBody)
	require.True(t, ok)
	assert.Equal(t, body.Frequency, got.Frequency)
	assert.Equal(t, body.ModulationParameters, got.ModulationParameters)
	assert.Equal(t, body.AntennaPatternParameters, got.AntennaPatternParameters)
}

func TestIFF_RoundTrip(t *testing.T) {
	t.Parallel()

	body := IFFBody{
		EmittingEntityID: entityId(1, 1, 1),
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		SystemID:         IFFSystemID{SystemType: 1, SystemName: 1, SystemMode: 1, ChangeOptions: 0},
		AdditionalLayers: []byte{1, 2, 3, 4, 5},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(IFFBody)
	require.True(t, ok)
	assert.Equal(t, body.SystemID, got.SystemID)
	assert.Equal(t, body.AdditionalLayers, got.AdditionalLayers)
}

func TestIFF_Layer2_RoundTrip(t *testing.T) {
	t.Parallel()

	body := IFFBody{
		EmittingEntityID: entityId(1, 1, 1),
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		SystemID:         IFFSystemID{SystemType: 1, SystemName: 1, SystemMode: 1, ChangeOptions: 0},
		Layer2: &IFFLayer2{
			BeamData:              IFFBeamData{AzimuthCenter: varint.NewSVINT13(10), SweepSync: 100},
			OperationalParameter1: 1,
			OperationalParameter2: 2,
			FundamentalParameters: []IFFFundamentalParameterData{
				{ERP: 5, Frequency: 9500, PGRF: 50, PulseWidth: 60, BurstLength: 70, ApplicableModes: 3},
			},
		},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	decoded := roundTrip(t, pdu)
	got, ok := decoded.Body.(IFFBody)
	require.True(t, ok)
	require.NotNil(t, got.Layer2)
	assert.Equal(t, body.Layer2.OperationalParameter1, got.Layer2.OperationalParameter1)
	assert.Equal(t, body.Layer2.OperationalParameter2, got.Layer2.OperationalParameter2)
	require.Len(t, got.Layer2.FundamentalParameters, 1)
	assert.Equal(t, uint8(3), got.Layer2.FundamentalParameters[0].ApplicableModes)
	assert.InDelta(t, float64(9500), float64(got.Layer2.FundamentalParameters[0].Frequency), 100)
}

func TestIFF_Write_RejectsUndeterminedSystemType(t *testing.T) {
	t.Parallel()

	body := IFFBody{
		EmittingEntityID: entityId(1, 1, 1),
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		SystemID:         IFFSystemID{SystemType: 250, SystemName: 1, SystemMode: 1},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	_, err := SerializePdu(pdu)
	require.Error(t, err)
	var typeErr *IffUndeterminedSystemTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestIFF_Write_RejectsIncorrectSystemType(t *testing.T) {
	t.Parallel()

	body := IFFBody{
		EmittingEntityID: entityId(1, 1, 1),
		EventID:          EventId{Site: varint.NewUVINT16(1), Application: varint.NewUVINT16(1), EventNumber: varint.NewUVINT16(1)},
		SystemID:         IFFSystemID{SystemType: iffSystemTypeNotUsed, SystemName: 9, SystemMode: 1},
	}
	pdu := Pdu{Header: Header{ProtocolVersion: 7, ExerciseId: varint.NewUVINT8(1), Timestamp: ClockTime{}}, Body: body}
	_, err := SerializePdu(pdu)
	require.Error(t, err)
	var typeErr *IffIncorrectSystemTypeError
	assert.ErrorAs(t, err, &typeErr)
}
