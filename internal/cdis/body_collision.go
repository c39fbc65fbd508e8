package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/units"
)

// collisionTypeBits: non-Elastic collision types collapse to Inelastic on
// encode, since C-DIS only distinguishes the two outcomes that affect
// dead-reckoning resumption.
const collisionTypeBits = 2

// CollisionBody is the C-DIS form of dis.CollisionBody. Unlike Detonation,
// Location here carries no unit flag: the C-DIS tables specify Collision's
// location_entity_coordinates in meters only, and that discrepancy with
// Detonation's two-bit unit flag is preserved verbatim rather than
// normalized (see DESIGN.md).
type CollisionBody struct {
	IssuingEntityID   EntityId
	CollidingEntityID EntityId
	EventID           EventId
	CollisionType     dis.CollisionType
	Velocity          LinearVelocity
	MassValue         uint32
	MassUnit          units.MassUnit
	Location          EntityCoordinateVector
}

func (b CollisionBody) PduType() dis.PduType { return dis.PduTypeCollision }

func (b CollisionBody) write(w *bitio.Writer) error {
	if err := b.IssuingEntityID.write(w); err != nil {
		return err
	}
	if err := b.CollidingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	collisionType := uint64(0)
	if b.CollisionType == dis.CollisionTypeElastic {
		collisionType = 1
	}
	if err := w.WriteUnsigned(collisionTypeBits, collisionType); err != nil {
		return err
	}
	if err := b.Velocity.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(32, uint64(b.MassValue)); err != nil {
		return err
	}
	massUnit := uint64(0)
	if b.MassUnit == units.MassUnitKilograms {
		massUnit = 1
	}
	if err := w.WriteUnsigned(1, massUnit); err != nil {
		return err
	}
	return b.Location.write(w)
}

func parseCollisionBody(h Header, r *bitio.Reader) (Body, error) {
	issuing, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	colliding, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	collisionType, err := r.Take(collisionTypeBits)
	if err != nil {
		return nil, err
	}
	ct := dis.CollisionTypeInelastic
	if collisionType == 1 {
		ct = dis.CollisionTypeElastic
	}
	velocity, err := readLinearVelocity(r)
	if err != nil {
		return nil, err
	}
	massValue, err := r.Take(32)
	if err != nil {
		return nil, err
	}
	massUnitBit, err := r.Take(1)
	if err != nil {
		return nil, err
	}
	massUnit := units.MassUnitGrams
	if massUnitBit == 1 {
		massUnit = units.MassUnitKilograms
	}
	location, err := readEntityCoordinateVector(r)
	if err != nil {
		return nil, err
	}
	return CollisionBody{
		IssuingEntityID: issuing, CollidingEntityID: colliding, EventID: event,
		CollisionType: ct, Velocity: velocity, MassValue: uint32(massValue), MassUnit: massUnit,
		Location: location,
	}, nil
}
