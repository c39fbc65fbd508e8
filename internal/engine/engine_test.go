package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/timeutil"
)

const entityStateAllFieldsPresent = cdis.EntityStateAltTypePresent | cdis.EntityStateDeadReckonPresent |
	cdis.EntityStateMarkingPresent | cdis.EntityStateCapabilitiesPresent | cdis.EntityStateVarParamsPresent

func sampleEntityState() dis.EntityStateBody {
	return dis.EntityStateBody{
		EntityID:             dis.EntityId{Site: 1, Application: 1, Entity: 1},
		ForceID:              dis.ForceId(1),
		EntityType:           dis.EntityType{Kind: 1, Domain: 2, Country: 225},
		EntityLinearVelocity: dis.VectorF32{X: 10, Y: 0, Z: 0},
		EntityLocation:       dis.WorldCoordinates{X: 4510731.0, Y: 4510731.0, Z: 0},
		EntityOrientation:    dis.Orientation{Psi: 1, Theta: 0, Phi: 0},
		EntityAppearance:     0,
		EntityMarking:        dis.EntityMarking{CharacterSet: 1, Characters: "TANK01"},
	}
}

// TestDeduplicateSiteAppPairs matches the worked example of the
// site_app_pairs table: three track-jam targets naming two distinct
// (site, application) pairs collapse to two entries.
func TestDeduplicateSiteAppPairs(t *testing.T) {
	t.Parallel()

	ids := []dis.EntityId{
		{Site: 1, Application: 1, Entity: 1},
		{Site: 1, Application: 1, Entity: 2},
		{Site: 2, Application: 2, Entity: 2},
	}
	got := DeduplicateSiteAppPairs(ids)
	want := []SiteAppPair{{Site: 1, Application: 1}, {Site: 2, Application: 2}}
	assert.Equal(t, want, got)
}

func TestEncodeEntityState_FirstSeenIsFull(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewEntityStateCache(clock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	out, change, err := EncodeEntityState(cache, sampleEntityState(), opts)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)
	assert.Equal(t, entityStateAllFieldsPresent, out.FieldsPresent)
}

func TestEncodeEntityState_UnchangedIsPartialWithNoOptionalFields(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewEntityStateCache(clock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	body := sampleEntityState()
	_, _, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)

	clock.Advance(time.Second)
	out, change, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change.Kind)
	assert.Equal(t, uint32(0), out.FieldsPresent)
}

func TestEncodeEntityState_MarkingChangeSetsOnlyThatField(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewEntityStateCache(clock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	body := sampleEntityState()
	_, _, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)

	clock.Advance(time.Second)
	body.EntityMarking.Characters = "TANK02"
	out, change, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change.Kind)
	assert.Equal(t, cdis.EntityStateMarkingPresent, out.FieldsPresent)
}

func TestEncodeEntityState_PastThresholdForcesFullUpdate(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewEntityStateCache(clock)
	fed := DefaultFederationParameters()
	opts := Options{Mode: PartialUpdate, Federation: fed}

	body := sampleEntityState()
	_, _, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)

	clock.Advance(fed.entityStateThreshold() + time.Second)
	out, change, err := EncodeEntityState(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)
	assert.Equal(t, entityStateAllFieldsPresent, out.FieldsPresent)
}

func TestDecodeEntityState_PartialWithoutPriorFullUpdateFails(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewEntityStateCache(clock)

	body := cdis.EntityStateBody{
		EntityID:      cdis.EntityIdFromDis(dis.EntityId{Site: 1, Application: 1, Entity: 1}),
		FieldsPresent: 0,
	}
	_, _, err := DecodeEntityState(cache, body)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, dis.EntityId{Site: 1, Application: 1, Entity: 1}, parseErr.EntityID)
}

func TestEncodeDecodeEntityState_RoundTripAcrossIndependentCaches(t *testing.T) {
	t.Parallel()

	encClock := timeutil.NewMockClock(time.Now())
	decClock := timeutil.NewMockClock(time.Now())
	encCache := NewEntityStateCache(encClock)
	decCache := NewEntityStateCache(decClock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	body := sampleEntityState()
	wire, _, err := EncodeEntityState(encCache, body, opts)
	require.NoError(t, err)

	got, change, err := DecodeEntityState(decCache, wire)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)
	assert.Equal(t, body.EntityID, got.EntityID)
	assert.Equal(t, body.ForceID, got.ForceID)
	assert.Equal(t, body.EntityMarking, got.EntityMarking)
	assert.InDelta(t, body.EntityLocation.X, got.EntityLocation.X, 1.0)
	assert.InDelta(t, body.EntityLocation.Y, got.EntityLocation.Y, 1.0)
	assert.InDelta(t, body.EntityLocation.Z, got.EntityLocation.Z, 1.0)

	// Second, unchanged encode yields a partial update the decoder must
	// merge against its own cached copy rather than losing the marking.
	encClock.Advance(time.Second)
	decClock.Advance(time.Second)
	wire2, _, err := EncodeEntityState(encCache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), wire2.FieldsPresent)

	got2, change2, err := DecodeEntityState(decCache, wire2)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change2.Kind)
	assert.Equal(t, body.EntityMarking, got2.EntityMarking)
}

func sampleTransmitter() dis.TransmitterBody {
	return dis.TransmitterBody{
		EntityID:                dis.EntityId{Site: 1, Application: 1, Entity: 5},
		RadioID:                 1,
		RadioEntityType:         dis.RadioEntityType{Kind: 1, Domain: 2, Country: 225},
		TransmitState:           dis.TransmitState(1),
		InputSource:             dis.InputSource(0),
		AntennaLocation:         dis.WorldCoordinates{X: 4510731.0, Y: 4510731.0, Z: 0},
		RelativeAntennaLocation: dis.VectorF32{X: 1, Y: 2, Z: 3},
		AntennaPatternType:      0,
		Frequency:               30000000,
		Power:                   20,
		ModulationType:          dis.ModulationType{System: 5},
		ModulationParameters:    []byte{0xAA, 0xBB},
	}
}

func TestEncodeTransmitter_PartialOmitsUnchangedModulationParameters(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewGenericCache[dis.TransmitterBody](clock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	body := sampleTransmitter()
	first, change, err := EncodeTransmitter(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)
	assert.Equal(t, body.ModulationParameters, first.ModulationParameters)

	clock.Advance(time.Second)
	second, change2, err := EncodeTransmitter(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change2.Kind)
	assert.Empty(t, second.ModulationParameters)
}

func TestDecodeTransmitter_RestoresOmittedModulationParametersFromCache(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewGenericCache[dis.TransmitterBody](clock)

	full := cdis.TransmitterBody{
		EntityID:             cdis.EntityIdFromDis(dis.EntityId{Site: 1, Application: 1, Entity: 5}),
		ModulationParameters: []byte{0xAA, 0xBB},
	}
	decoded, _, err := DecodeTransmitter(cache, full)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, decoded.ModulationParameters)

	partial := cdis.TransmitterBody{EntityID: full.EntityID}
	decoded2, change, err := DecodeTransmitter(cache, partial)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change.Kind)
	assert.Equal(t, []byte{0xAA, 0xBB}, decoded2.ModulationParameters)
}

func TestEncodeDesignator_AlwaysEmitsFullBody(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	cache := NewGenericCache[dis.DesignatorBody](clock)
	opts := Options{Mode: PartialUpdate, Federation: DefaultFederationParameters()}

	body := dis.DesignatorBody{
		DesignatingEntityID: dis.EntityId{Site: 1, Application: 1, Entity: 9},
		DesignatedEntityID:  dis.EntityId{Site: 1, Application: 1, Entity: 10},
		DesignatorPower:     500,
	}
	_, change, err := EncodeDesignator(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)

	clock.Advance(time.Second)
	out2, change2, err := EncodeDesignator(cache, body, opts)
	require.NoError(t, err)
	assert.Equal(t, StateUnaffected, change2.Kind)
	assert.Equal(t, body.DesignatorPower, out2.DesignatorPower)
}

func TestEngine_EncodeDecode_StatelessFireRoundTrip(t *testing.T) {
	t.Parallel()

	eng := New(Options{Mode: PartialUpdate})
	encState := NewState(timeutil.NewMockClock(time.Now()))
	decState := NewState(timeutil.NewMockClock(time.Now()))

	fireBody := dis.FireBody{
		FiringEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 1},
		TargetEntityID:   dis.EntityId{Site: 1, Application: 1, Entity: 2},
		MunitionEntityID: dis.EntityId{Site: 1, Application: 1, Entity: 3},
		Location:         dis.WorldCoordinates{X: 1, Y: 2, Z: 3},
		Range:            100,
	}
	pdu := dis.Pdu{Header: dis.Header{PduType: dis.PduTypeFire}, Body: fireBody}

	wire, change, err := eng.Encode(pdu, encState)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change.Kind)

	back, change2, err := eng.Decode(wire, decState)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, change2.Kind)
	got, ok := back.(dis.FireBody)
	require.True(t, ok)
	assert.Equal(t, fireBody.FiringEntityID, got.FiringEntityID)
	assert.Equal(t, fireBody.TargetEntityID, got.TargetEntityID)
	assert.Equal(t, fireBody.Range, got.Range)
}

func TestEngine_EncodeDecode_EntityStateViaDispatch(t *testing.T) {
	t.Parallel()

	eng := New(Options{Mode: PartialUpdate})
	encState := NewState(timeutil.NewMockClock(time.Now()))
	decState := NewState(timeutil.NewMockClock(time.Now()))

	body := sampleEntityState()
	pdu := dis.Pdu{Header: dis.Header{PduType: dis.PduTypeEntityState}, Body: body}

	wire, _, err := eng.Encode(pdu, encState)
	require.NoError(t, err)

	wireBody, ok := wire.(cdis.EntityStateBody)
	require.True(t, ok)

	back, _, err := eng.Decode(wireBody, decState)
	require.NoError(t, err)
	got, ok := back.(dis.EntityStateBody)
	require.True(t, ok)
	assert.Equal(t, body.EntityID, got.EntityID)
	assert.Equal(t, body.EntityMarking, got.EntityMarking)
}
