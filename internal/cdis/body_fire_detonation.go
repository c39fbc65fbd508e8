package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// BurstDescriptor mirrors dis.BurstDescriptor with its scalar fields
// narrowed to UVINT16, shared between Fire and Detonation.
type BurstDescriptor struct {
	MunitionType EntityType
	Warhead      varint.UVINT16
	Fuse         varint.UVINT16
	Quantity     varint.UVINT16
	Rate         varint.UVINT16
}

func (b BurstDescriptor) write(w *bitio.Writer) error {
	if err := b.MunitionType.write(w); err != nil {
		return err
	}
	if err := b.Warhead.Write(w); err != nil {
		return err
	}
	if err := b.Fuse.Write(w); err != nil {
		return err
	}
	if err := b.Quantity.Write(w); err != nil {
		return err
	}
	return b.Rate.Write(w)
}

func readBurstDescriptor(r *bitio.Reader) (BurstDescriptor, error) {
	munitionType, err := readEntityType(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	warhead, err := varint.ReadUVINT16(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	fuse, err := varint.ReadUVINT16(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	quantity, err := varint.ReadUVINT16(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	rate, err := varint.ReadUVINT16(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	return BurstDescriptor{MunitionType: munitionType, Warhead: warhead, Fuse: fuse, Quantity: quantity, Rate: rate}, nil
}

const fireMissionIndexPresent uint32 = 1 << 0
const fireFieldsPresentBits = 1

// FireBody is the C-DIS form of dis.FireBody. FireMissionIndex is gated
// by a one-bit fields-present flag: a PDU reporting dis.NoFireMission
// clears the bit and omits the field entirely rather than spending
// 32 bits to say "none", per spec.md's Fire body layout.
type FireBody struct {
	FiringEntityID   EntityId
	TargetEntityID   EntityId
	MunitionEntityID EntityId
	EventID          EventId
	FireMissionIndex varint.UVINT32
	Location         WorldCoordinates
	Descriptor       BurstDescriptor
	Velocity         LinearVelocity
	Range            varint.UVINT32
}

func (b FireBody) PduType() dis.PduType { return dis.PduTypeFire }

func (b FireBody) write(w *bitio.Writer) error {
	present := uint32(0)
	if b.FireMissionIndex.Value != dis.NoFireMission {
		present = fireMissionIndexPresent
	}
	if err := w.WriteUnsigned(fireFieldsPresentBits, uint64(present)); err != nil {
		return err
	}
	if err := b.FiringEntityID.write(w); err != nil {
		return err
	}
	if err := b.TargetEntityID.write(w); err != nil {
		return err
	}
	if err := b.MunitionEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(present&fireMissionIndexPresent != 0, func() error {
		return b.FireMissionIndex.Write(w)
	}); err != nil {
		return err
	}
	if err := b.Location.write(w); err != nil {
		return err
	}
	if err := b.Descriptor.write(w); err != nil {
		return err
	}
	if err := b.Velocity.write(w); err != nil {
		return err
	}
	return b.Range.Write(w)
}

func parseFireBody(h Header, r *bitio.Reader) (Body, error) {
	present, err := r.Take(fireFieldsPresentBits)
	if err != nil {
		return nil, err
	}
	firing, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	target, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	munition, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	fireMissionIndex, _, err := bitio.ReadWhenPresent(uint32(present), fireMissionIndexPresent, func() (varint.UVINT32, error) {
		return varint.ReadUVINT32(r)
	})
	if err != nil {
		return nil, err
	}
	location, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	descriptor, err := readBurstDescriptor(r)
	if err != nil {
		return nil, err
	}
	velocity, err := readLinearVelocity(r)
	if err != nil {
		return nil, err
	}
	rng, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	return FireBody{
		FiringEntityID: firing, TargetEntityID: target, MunitionEntityID: munition,
		EventID: event, FireMissionIndex: fireMissionIndex, Location: location,
		Descriptor: descriptor, Velocity: velocity, Range: rng,
	}, nil
}

const detonationVarParamsPresent uint32 = 1 << 0
const detonationFieldsPresentBits = 1

// DetonationLocationUnit is the unit selector for Detonation's
// location_entity_coordinates record. Unlike Collision (always meters),
// the C-DIS tables give this field two bits, so the third unit
// (dekameters) is representable even though internal/units.LocationUnit
// only distinguishes centimeters/meters; see DESIGN.md on the Open
// Question this preserves verbatim rather than normalizing.
type DetonationLocationUnit uint8

const (
	DetonationLocationCentimeters DetonationLocationUnit = iota
	DetonationLocationMeters
	DetonationLocationDekameters
)

const detonationLocationUnitBits = 2

// DetonationBody is the C-DIS form of dis.DetonationBody. DetonationResult
// keeps the same field-overload behavior the DIS side documents: this
// codec neither validates nor reinterprets the code, only forwards it.
type DetonationBody struct {
	FiringEntityID              EntityId
	TargetEntityID              EntityId
	ExplodingEntityID           EntityId
	EventID                     EventId
	Velocity                    LinearVelocity
	LocationInWorldCoordinates  WorldCoordinates
	Descriptor                  BurstDescriptor
	LocationInEntityCoordinates EntityCoordinateVector
	EntityCoordinateUnit        DetonationLocationUnit
	DetonationResult            uint8
	VariableParameters          []VariableParameter
}

func (b DetonationBody) PduType() dis.PduType { return dis.PduTypeDetonation }

func (b DetonationBody) write(w *bitio.Writer) error {
	present := uint32(0)
	if len(b.VariableParameters) > 0 {
		present = detonationVarParamsPresent
	}
	if err := w.WriteUnsigned(detonationFieldsPresentBits, uint64(present)); err != nil {
		return err
	}
	if err := b.FiringEntityID.write(w); err != nil {
		return err
	}
	if err := b.TargetEntityID.write(w); err != nil {
		return err
	}
	if err := b.ExplodingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := b.Velocity.write(w); err != nil {
		return err
	}
	if err := b.LocationInWorldCoordinates.write(w); err != nil {
		return err
	}
	if err := b.Descriptor.write(w); err != nil {
		return err
	}
	if err := b.LocationInEntityCoordinates.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(detonationLocationUnitBits, uint64(b.EntityCoordinateUnit)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.DetonationResult)); err != nil {
		return err
	}
	return bitio.WriteWhenPresent(present&detonationVarParamsPresent != 0, func() error {
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

func parseDetonationBody(h Header, r *bitio.Reader) (Body, error) {
	present, err := r.Take(detonationFieldsPresentBits)
	if err != nil {
		return nil, err
	}
	firing, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	target, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	exploding, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	velocity, err := readLinearVelocity(r)
	if err != nil {
		return nil, err
	}
	worldLoc, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	descriptor, err := readBurstDescriptor(r)
	if err != nil {
		return nil, err
	}
	entityLoc, err := readEntityCoordinateVector(r)
	if err != nil {
		return nil, err
	}
	unit, err := r.Take(detonationLocationUnitBits)
	if err != nil {
		return nil, err
	}
	result, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	var vps []VariableParameter
	if uint32(present)&detonationVarParamsPresent != 0 {
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
	return DetonationBody{
		FiringEntityID: firing, TargetEntityID: target, ExplodingEntityID: exploding,
		EventID: event, Velocity: velocity, LocationInWorldCoordinates: worldLoc,
		Descriptor: descriptor, LocationInEntityCoordinates: entityLoc, EntityCoordinateUnit: DetonationLocationUnit(unit),
		DetonationResult: uint8(result), VariableParameters: vps,
	}, nil
}
