package engine

import (
	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/timeutil"
)

// State holds every per-entity cache needed by one direction (encode or
// decode) of traffic. A caller bridging both directions of a link owns
// two independent States; per spec.md section 4.6 neither is ever shared
// or locked.
type State struct {
	EntityState             *EntityStateCache
	Transmitter             *GenericCache[dis.TransmitterBody]
	IFF                     *GenericCache[dis.IFFBody]
	Designator              *GenericCache[dis.DesignatorBody]
	ElectromagneticEmission *GenericCache[dis.ElectromagneticEmissionBody]
	EmissionParameters      *EmissionParameterCache

	// Hour supplies the out-of-band synchronized wall-clock hour used to
	// reconstitute StartResume/StopFreeze ClockTime fields on decode; see
	// cdis.ClockTime's doc comment.
	Hour int32
}

// NewState constructs an empty State. A nil clock defaults to
// timeutil.RealClock{} in every sub-cache.
func NewState(clock timeutil.Clock) *State {
	return &State{
		EntityState:             NewEntityStateCache(clock),
		Transmitter:             NewGenericCache[dis.TransmitterBody](clock),
		IFF:                     NewGenericCache[dis.IFFBody](clock),
		Designator:              NewGenericCache[dis.DesignatorBody](clock),
		ElectromagneticEmission: NewGenericCache[dis.ElectromagneticEmissionBody](clock),
		EmissionParameters:      NewEmissionParameterCache(),
	}
}

// Engine is the stateful DIS<->C-DIS bridge: a dispatch table over the
// per-type Encode/Decode functions in this package, plus the uniform
// failure semantics spec.md section 4.6 requires for PDU types it has no
// C-DIS counterpart for.
type Engine struct {
	Options Options
}

// New constructs an Engine with the given options. FederationParameters
// defaults to DefaultFederationParameters when left zero-valued.
func New(opts Options) *Engine {
	if opts.Federation == (FederationParameters{}) {
		opts.Federation = DefaultFederationParameters()
	}
	return &Engine{Options: opts}
}

// Encode converts one DIS PDU to its C-DIS form, mutating state as the
// timeout decision algorithm requires.
func (e *Engine) Encode(pdu dis.Pdu, state *State) (cdis.Body, StateChange, error) {
	switch body := pdu.Body.(type) {
	case dis.EntityStateBody:
		return wrapEncode3(EncodeEntityState(state.EntityState, body, e.Options))
	case dis.TransmitterBody:
		return wrapEncode3(EncodeTransmitter(state.Transmitter, body, e.Options))
	case dis.IFFBody:
		return wrapEncode3(EncodeIFF(state.IFF, body, e.Options))
	case dis.DesignatorBody:
		return wrapEncode3(EncodeDesignator(state.Designator, body, e.Options))
	case dis.ElectromagneticEmissionBody:
		return wrapEncode3(EncodeElectromagneticEmission(state.ElectromagneticEmission, state.EmissionParameters, body, e.Options))
	case dis.FireBody:
		return wrapEncode2(EncodeFire(body))
	case dis.DetonationBody:
		return wrapEncode2(EncodeDetonation(body))
	case dis.CollisionBody:
		return wrapEncode2(EncodeCollision(body))
	case dis.CreateEntityBody:
		return wrapEncode2(EncodeCreateEntity(body))
	case dis.RemoveEntityBody:
		return wrapEncode2(EncodeRemoveEntity(body))
	case dis.StartResumeBody:
		return wrapEncode2(EncodeStartResume(body))
	case dis.StopFreezeBody:
		return wrapEncode2(EncodeStopFreeze(body))
	case dis.AcknowledgeBody:
		return wrapEncode2(EncodeAcknowledge(body))
	default:
		return nil, StateChange{}, &RejectedUnsupportedDisPduError{PduType: pdu.Header.PduType}
	}
}

// Decode converts one C-DIS PDU body to its DIS form, mutating state as
// the timeout decision algorithm requires.
func (e *Engine) Decode(body cdis.Body, state *State) (dis.Body, StateChange, error) {
	switch b := body.(type) {
	case cdis.EntityStateBody:
		return wrapDecode3(DecodeEntityState(state.EntityState, b))
	case cdis.TransmitterBody:
		return wrapDecode3(DecodeTransmitter(state.Transmitter, b))
	case cdis.IFFBody:
		return wrapDecode3(DecodeIFF(state.IFF, b))
	case cdis.DesignatorBody:
		return wrapDecode3(DecodeDesignator(state.Designator, b))
	case cdis.ElectromagneticEmissionBody:
		return wrapDecode3(DecodeElectromagneticEmission(state.ElectromagneticEmission, state.EmissionParameters, b))
	case cdis.FireBody:
		return wrapDecode2(DecodeFire(b))
	case cdis.DetonationBody:
		return wrapDecode2(DecodeDetonation(b))
	case cdis.CollisionBody:
		return wrapDecode2(DecodeCollision(b))
	case cdis.CreateEntityBody:
		return wrapDecode2(DecodeCreateEntity(b))
	case cdis.RemoveEntityBody:
		return wrapDecode2(DecodeRemoveEntity(b))
	case cdis.StartResumeBody:
		return wrapDecode2(DecodeStartResume(b, state.Hour))
	case cdis.StopFreezeBody:
		return wrapDecode2(DecodeStopFreeze(b, state.Hour))
	case cdis.AcknowledgeBody:
		return wrapDecode2(DecodeAcknowledge(b))
	default:
		return nil, StateChange{}, &RejectedUnsupportedCDisPduError{PduType: body.PduType()}
	}
}

// wrapEncode3/wrapDecode3 lift a (body, StateChange, error) result into
// the Engine's (Body, StateChange, error) interface-typed return.
func wrapEncode3[T cdis.Body](body T, change StateChange, err error) (cdis.Body, StateChange, error) {
	return body, change, err
}

func wrapDecode3[T dis.Body](body T, change StateChange, err error) (dis.Body, StateChange, error) {
	return body, change, err
}

// wrapEncode2/wrapDecode2 lift the stateless (body, error) results,
// always reporting StateUpdate since these PDU types carry no heartbeat
// state to leave unaffected.
func wrapEncode2[T cdis.Body](body T, err error) (cdis.Body, StateChange, error) {
	return body, StateChange{Kind: StateUpdate}, err
}

func wrapDecode2[T dis.Body](body T, err error) (dis.Body, StateChange, error) {
	return body, StateChange{Kind: StateUpdate}, err
}
