package dis

// CollisionBody is the body of a Collision PDU (IEEE 1278.1
// section 5.3.3.4): two entities (or an entity and terrain) have
// intersected.
type CollisionBody struct {
	IssuingEntityID   EntityId
	CollidingEntityID EntityId
	EventID           EventId
	CollisionType     CollisionType
	Velocity          VectorF32
	Mass              float32
	Location          VectorF32
}

func (b CollisionBody) PduType() PduType { return PduTypeCollision }

func (b CollisionBody) write(w *ByteWriter) error {
	if err := b.IssuingEntityID.write(w); err != nil {
		return err
	}
	if err := b.CollidingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.CollisionType)); err != nil {
		return err
	}
	if err := w.Pad(1); err != nil {
		return err
	}
	if err := b.Velocity.write(w); err != nil {
		return err
	}
	if err := w.WriteFloat32(b.Mass); err != nil {
		return err
	}
	return b.Location.write(w)
}

func parseCollisionBody(h Header, r *ByteReader) (Body, error) {
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
	collisionType, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil {
		return nil, err
	}
	velocity, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	mass, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	location, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	return CollisionBody{
		IssuingEntityID: issuing, CollidingEntityID: colliding, EventID: event,
		CollisionType: CollisionType(collisionType), Velocity: velocity, Mass: mass, Location: location,
	}, nil
}
