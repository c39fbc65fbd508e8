package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// EntityState fields-present bitmap bits, per spec.md section 3.4: a
// leading bit vector indicating which optional records follow the
// always-present kinematic core.
const (
	entityStateAltTypePresent     uint32 = 1 << 0
	entityStateDeadReckonPresent  uint32 = 1 << 1
	entityStateMarkingPresent     uint32 = 1 << 2
	entityStateCapabilitiesPresent uint32 = 1 << 3
	entityStateVarParamsPresent   uint32 = 1 << 4
)

const entityStateFieldsPresentBits = 5

// entityMarkingMaxChars is the field's maximum character count; its
// length prefix is sized to count 0..11 inclusive.
const entityMarkingMaxChars = 11
const entityMarkingLengthBits = 4

// sixBitBase is the packable-character floor: each character is stored
// as its ASCII code minus this offset in 6 bits, covering the 0x20-0x5F
// printable range (space through the uppercase/punctuation block) that
// military marking/callsign text uses, per spec.md section 3.4.
const sixBitBase = 0x20
const sixBitWidth = 6

// packSixBit maps an ASCII byte into its 6-bit packed code.
func packSixBit(field string, b byte) (uint64, error) {
	if b < sixBitBase || b > sixBitBase+(1<<sixBitWidth)-1 {
		return 0, &StringNotASCIIError{Field: field}
	}
	return uint64(b - sixBitBase), nil
}

// unpackSixBit is the inverse of packSixBit.
func unpackSixBit(code uint64) byte {
	return byte(code) + sixBitBase
}

// EntityMarking mirrors dis.EntityMarking, packed per spec.md section
// 3.4 as a length prefix followed by that many 6-bit ASCII characters,
// rather than DIS's fixed 11-byte 8-bit field.
type EntityMarking struct {
	CharacterSet uint8
	Characters   string
}

func (m EntityMarking) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(m.CharacterSet)); err != nil {
		return err
	}
	if len(m.Characters) > entityMarkingMaxChars {
		return &StringTooLongError{Field: "EntityMarking.Characters", Max: entityMarkingMaxChars}
	}
	if err := w.WriteUnsigned(entityMarkingLengthBits, uint64(len(m.Characters))); err != nil {
		return err
	}
	for i := 0; i < len(m.Characters); i++ {
		code, err := packSixBit("EntityMarking.Characters", m.Characters[i])
		if err != nil {
			return err
		}
		if err := w.WriteUnsigned(sixBitWidth, code); err != nil {
			return err
		}
	}
	return nil
}

func readEntityMarking(r *bitio.Reader) (EntityMarking, error) {
	cs, err := r.Take(8)
	if err != nil {
		return EntityMarking{}, err
	}
	length, err := r.Take(entityMarkingLengthBits)
	if err != nil {
		return EntityMarking{}, err
	}
	buf := make([]byte, length)
	for i := range buf {
		code, err := r.Take(sixBitWidth)
		if err != nil {
			return EntityMarking{}, err
		}
		buf[i] = unpackSixBit(code)
	}
	return EntityMarking{CharacterSet: uint8(cs), Characters: string(buf)}, nil
}

// DeadReckoningParameters mirrors dis.DeadReckoningParameters, keeping the
// 15-byte OtherParameters block opaque since its interpretation is
// algorithm-specific and the gateway forwards it verbatim.
type DeadReckoningParameters struct {
	Algorithm          uint8
	OtherParameters    [15]byte
	LinearAcceleration LinearVelocity
	AngularVelocity    LinearVelocity
}

func (d DeadReckoningParameters) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(d.Algorithm)); err != nil {
		return err
	}
	for _, b := range d.OtherParameters {
		if err := w.WriteUnsigned(8, uint64(b)); err != nil {
			return err
		}
	}
	if err := d.LinearAcceleration.write(w); err != nil {
		return err
	}
	return d.AngularVelocity.write(w)
}

func readDeadReckoningParameters(r *bitio.Reader) (DeadReckoningParameters, error) {
	algo, err := r.Take(8)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	var other [15]byte
	for i := range other {
		b, err := r.Take(8)
		if err != nil {
			return DeadReckoningParameters{}, err
		}
		other[i] = byte(b)
	}
	accel, err := readLinearVelocity(r)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	angular, err := readLinearVelocity(r)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	return DeadReckoningParameters{Algorithm: uint8(algo), OtherParameters: other, LinearAcceleration: accel, AngularVelocity: angular}, nil
}

// EntityStateBody is the C-DIS form of dis.EntityStateBody. The optional
// records (alternative entity type, dead reckoning, marking,
// capabilities, variable parameters) are gated by FieldsPresent; the
// heartbeat/partial-update engine (internal/engine) decides which bits to
// clear when re-encoding an unchanged entity inside its timeout window.
type EntityStateBody struct {
	FieldsPresent           uint32
	EntityID                EntityId
	ForceID                 uint8
	EntityType              EntityType
	AlternativeEntityType   EntityType
	EntityLinearVelocity    LinearVelocity
	EntityLocation          WorldCoordinates
	EntityOrientation       Orientation
	EntityAppearance        uint32
	DeadReckoningParameters DeadReckoningParameters
	EntityMarking           EntityMarking
	Capabilities            uint32
	VariableParameters      []VariableParameter
}

func (b EntityStateBody) PduType() dis.PduType { return dis.PduTypeEntityState }

func (b EntityStateBody) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(entityStateFieldsPresentBits, uint64(b.FieldsPresent)); err != nil {
		return err
	}
	if err := b.EntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.ForceID)); err != nil {
		return err
	}
	if err := b.EntityType.write(w); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(b.FieldsPresent&entityStateAltTypePresent != 0, func() error {
		return b.AlternativeEntityType.write(w)
	}); err != nil {
		return err
	}
	if err := b.EntityLinearVelocity.write(w); err != nil {
		return err
	}
	if err := b.EntityLocation.write(w); err != nil {
		return err
	}
	if err := b.EntityOrientation.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(32, uint64(b.EntityAppearance)); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(b.FieldsPresent&entityStateDeadReckonPresent != 0, func() error {
		return b.DeadReckoningParameters.write(w)
	}); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(b.FieldsPresent&entityStateMarkingPresent != 0, func() error {
		return b.EntityMarking.write(w)
	}); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(b.FieldsPresent&entityStateCapabilitiesPresent != 0, func() error {
		return w.WriteUnsigned(32, uint64(b.Capabilities))
	}); err != nil {
		return err
	}
	return bitio.WriteWhenPresent(b.FieldsPresent&entityStateVarParamsPresent != 0, func() error {
		if err := varint.NewUVINT8(uint8(len(b.VariableParameters))).Write(w); err != nil {
			return err
		}
		for _, vp := range b.VariableParameters {
			if err := vp.write(w); err != nil {
				return err
			}
		}
		return nil
	})
}

func parseEntityStateBody(h Header, r *bitio.Reader) (Body, error) {
	fieldsPresent, err := r.Take(entityStateFieldsPresentBits)
	if err != nil {
		return nil, err
	}
	entityID, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	forceID, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	entityType, err := readEntityType(r)
	if err != nil {
		return nil, err
	}
	altType, present, err := bitio.ReadWhenPresent(uint32(fieldsPresent), entityStateAltTypePresent, func() (EntityType, error) {
		return readEntityType(r)
	})
	if err != nil {
		return nil, err
	}
	_ = present
	velocity, err := readLinearVelocity(r)
	if err != nil {
		return nil, err
	}
	location, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	orientation, err := readOrientation(r)
	if err != nil {
		return nil, err
	}
	appearance, err := r.Take(32)
	if err != nil {
		return nil, err
	}
	dr, _, err := bitio.ReadWhenPresent(uint32(fieldsPresent), entityStateDeadReckonPresent, func() (DeadReckoningParameters, error) {
		return readDeadReckoningParameters(r)
	})
	if err != nil {
		return nil, err
	}
	marking, _, err := bitio.ReadWhenPresent(uint32(fieldsPresent), entityStateMarkingPresent, func() (EntityMarking, error) {
		return readEntityMarking(r)
	})
	if err != nil {
		return nil, err
	}
	capabilities, _, err := bitio.ReadWhenPresent(uint32(fieldsPresent), entityStateCapabilitiesPresent, func() (uint64, error) {
		return r.Take(32)
	})
	if err != nil {
		return nil, err
	}
	var vps []VariableParameter
	if uint32(fieldsPresent)&entityStateVarParamsPresent != 0 {
		count, err := varint.ReadUVINT8(r)
		if err != nil {
			return nil, err
		}
		vps = make([]VariableParameter, 0, count.Value)
		for i := uint8(0); i < count.Value; i++ {
			vp, err := readVariableParameter(r)
			if err != nil {
				return nil, err
			}
			vps = append(vps, vp)
		}
	}
	return EntityStateBody{
		FieldsPresent:           uint32(fieldsPresent),
		EntityID:                entityID,
		ForceID:                 uint8(forceID),
		EntityType:              entityType,
		AlternativeEntityType:   altType,
		EntityLinearVelocity:    velocity,
		EntityLocation:          location,
		EntityOrientation:       orientation,
		EntityAppearance:        uint32(appearance),
		DeadReckoningParameters: dr,
		EntityMarking:           marking,
		Capabilities:            uint32(capabilities),
		VariableParameters:      vps,
	}, nil
}
