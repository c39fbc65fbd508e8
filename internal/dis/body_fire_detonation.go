package dis

// BurstDescriptor identifies the munition type and its burst parameters,
// per IEEE 1278.1 section 6.2.13. Shared between Fire and Detonation.
type BurstDescriptor struct {
	MunitionType EntityType
	Warhead      uint16
	Fuse         uint16
	Quantity     uint16
	Rate         uint16
}

func (b BurstDescriptor) write(w *ByteWriter) error {
	if err := b.MunitionType.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Warhead); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Fuse); err != nil {
		return err
	}
	if err := w.WriteUint16(b.Quantity); err != nil {
		return err
	}
	return w.WriteUint16(b.Rate)
}

func readBurstDescriptor(r *ByteReader) (BurstDescriptor, error) {
	munitionType, err := readEntityType(r)
	if err != nil {
		return BurstDescriptor{}, err
	}
	warhead, err := r.ReadUint16()
	if err != nil {
		return BurstDescriptor{}, err
	}
	fuse, err := r.ReadUint16()
	if err != nil {
		return BurstDescriptor{}, err
	}
	quantity, err := r.ReadUint16()
	if err != nil {
		return BurstDescriptor{}, err
	}
	rate, err := r.ReadUint16()
	if err != nil {
		return BurstDescriptor{}, err
	}
	return BurstDescriptor{MunitionType: munitionType, Warhead: warhead, Fuse: fuse, Quantity: quantity, Rate: rate}, nil
}

// NoFireMission is the sentinel fire-mission index C-DIS recognizes as "this
// Fire PDU carries no fire-mission index" and elides entirely on the wire;
// the DIS side always writes the full field, zeroed.
var NoFireMission uint32 = 0

// FireBody is the body of a Fire PDU (IEEE 1278.1 section 5.3.3.2):
// notification that a munition has been launched or an indirect-fire
// mission initiated.
type FireBody struct {
	FiringEntityID   EntityId
	TargetEntityID   EntityId
	MunitionEntityID EntityId
	EventID          EventId
	FireMissionIndex uint32
	Location         WorldCoordinates
	Descriptor       BurstDescriptor
	Velocity         VectorF32
	Range            float32
}

func (b FireBody) PduType() PduType { return PduTypeFire }

func (b FireBody) write(w *ByteWriter) error {
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
	if err := w.WriteUint32(b.FireMissionIndex); err != nil {
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
	return w.WriteFloat32(b.Range)
}

func parseFireBody(h Header, r *ByteReader) (Body, error) {
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
	fireMissionIndex, err := r.ReadUint32()
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
	velocity, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	rng, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return FireBody{
		FiringEntityID: firing, TargetEntityID: target, MunitionEntityID: munition,
		EventID: event, FireMissionIndex: fireMissionIndex, Location: location,
		Descriptor: descriptor, Velocity: velocity, Range: rng,
	}, nil
}

// DetonationBody is the body of a Detonation PDU (IEEE 1278.1
// section 5.3.3.3): the outcome of a previously-fired munition, or of an
// entity-to-entity collision munition-less burst.
//
// The DetonationResult field historically reused the same SISO table as
// a munition "detonation result" code for non-munition events (e.g. an
// entity simply expiring); that overload is preserved verbatim here and
// on the compressed side rather than split into two fields, matching
// how every deployed DIS implementation actually encodes it.
type DetonationBody struct {
	FiringEntityID              EntityId
	TargetEntityID              EntityId
	ExplodingEntityID           EntityId
	EventID                     EventId
	Velocity                    VectorF32
	LocationInWorldCoordinates  WorldCoordinates
	Descriptor                  BurstDescriptor
	LocationInEntityCoordinates VectorF32
	DetonationResult            uint8
	VariableParameters          []VariableParameter
}

func (b DetonationBody) PduType() PduType { return PduTypeDetonation }

func (b DetonationBody) write(w *ByteWriter) error {
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
	if err := w.WriteUint8(b.DetonationResult); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(b.VariableParameters))); err != nil {
		return err
	}
	if err := w.WriteUint16(0); err != nil {
		return err
	}
	for _, vp := range b.VariableParameters {
		if err := vp.write(w); err != nil {
			return err
		}
	}
	return nil
}

func parseDetonationBody(h Header, r *ByteReader) (Body, error) {
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
	velocity, err := readVectorF32(r)
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
	entityLoc, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	result, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	numVP, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	vps := make([]VariableParameter, 0, numVP)
	for i := uint8(0); i < numVP; i++ {
		vp, err := readVariableParameter(r)
		if err != nil {
			return nil, err
		}
		vps = append(vps, vp)
	}
	return DetonationBody{
		FiringEntityID: firing, TargetEntityID: target, ExplodingEntityID: exploding,
		EventID: event, Velocity: velocity, LocationInWorldCoordinates: worldLoc,
		Descriptor: descriptor, LocationInEntityCoordinates: entityLoc,
		DetonationResult: result, VariableParameters: vps,
	}, nil
}
