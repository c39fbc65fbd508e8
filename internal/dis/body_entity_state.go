package dis

// DeadReckoningParameters bundles the extrapolation model and its
// parameters, per IEEE 1278.1 section 6.2.21.
type DeadReckoningParameters struct {
	Algorithm           DeadReckoningAlgorithm
	OtherParameters     [15]byte
	LinearAcceleration  VectorF32
	AngularVelocity     VectorF32
}

func (d DeadReckoningParameters) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(d.Algorithm)); err != nil {
		return err
	}
	if err := w.WriteBytes(d.OtherParameters[:]); err != nil {
		return err
	}
	if err := d.LinearAcceleration.write(w); err != nil {
		return err
	}
	return d.AngularVelocity.write(w)
}

func readDeadReckoningParameters(r *ByteReader) (DeadReckoningParameters, error) {
	algo, err := r.ReadUint8()
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	other, err := r.ReadBytes(15)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	accel, err := readVectorF32(r)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	angular, err := readVectorF32(r)
	if err != nil {
		return DeadReckoningParameters{}, err
	}
	var d DeadReckoningParameters
	d.Algorithm = DeadReckoningAlgorithm(algo)
	copy(d.OtherParameters[:], other)
	d.LinearAcceleration = accel
	d.AngularVelocity = angular
	return d, nil
}

// EntityMarking is the 11-character callsign/hull-number shown to
// operators, per IEEE 1278.1 section 6.2.28. CharacterSet is an opaque
// SISO code; 1 means ASCII.
type EntityMarking struct {
	CharacterSet uint8
	Characters   string // at most 11 bytes
}

func (m EntityMarking) write(w *ByteWriter) error {
	if err := w.WriteUint8(m.CharacterSet); err != nil {
		return err
	}
	return w.WriteFixedString("EntityMarking.Characters", m.Characters, 11)
}

func readEntityMarking(r *ByteReader) (EntityMarking, error) {
	cs, err := r.ReadUint8()
	if err != nil {
		return EntityMarking{}, err
	}
	chars, err := r.ReadFixedString(11)
	if err != nil {
		return EntityMarking{}, err
	}
	return EntityMarking{CharacterSet: cs, Characters: chars}, nil
}

// EntityStateBody is the body of an EntityState PDU (IEEE 1278.1
// section 5.3.2): full-fidelity kinematic and appearance state for one
// entity, the single most frequently exchanged PDU type on a DIS
// exercise and the primary target of C-DIS's heartbeat/partial-update
// compression.
type EntityStateBody struct {
	EntityID                EntityId
	ForceID                 ForceId
	EntityType              EntityType
	AlternativeEntityType   EntityType
	EntityLinearVelocity    VectorF32
	EntityLocation          WorldCoordinates
	EntityOrientation       Orientation
	EntityAppearance        uint32
	DeadReckoningParameters DeadReckoningParameters
	EntityMarking           EntityMarking
	Capabilities            uint32
	VariableParameters      []VariableParameter
}

func (b EntityStateBody) PduType() PduType { return PduTypeEntityState }

func (b EntityStateBody) write(w *ByteWriter) error {
	if err := b.EntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.ForceID)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(b.VariableParameters))); err != nil {
		return err
	}
	if err := b.EntityType.write(w); err != nil {
		return err
	}
	if err := b.AlternativeEntityType.write(w); err != nil {
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
	if err := w.WriteUint32(b.EntityAppearance); err != nil {
		return err
	}
	if err := b.DeadReckoningParameters.write(w); err != nil {
		return err
	}
	if err := b.EntityMarking.write(w); err != nil {
		return err
	}
	if err := w.WriteUint32(b.Capabilities); err != nil {
		return err
	}
	for _, vp := range b.VariableParameters {
		if err := vp.write(w); err != nil {
			return err
		}
	}
	return nil
}

func parseEntityStateBody(h Header, r *ByteReader) (Body, error) {
	entityID, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	forceID, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	numVP, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	entityType, err := readEntityType(r)
	if err != nil {
		return nil, err
	}
	altType, err := readEntityType(r)
	if err != nil {
		return nil, err
	}
	velocity, err := readVectorF32(r)
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
	appearance, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	dr, err := readDeadReckoningParameters(r)
	if err != nil {
		return nil, err
	}
	marking, err := readEntityMarking(r)
	if err != nil {
		return nil, err
	}
	capabilities, err := r.ReadUint32()
	if err != nil {
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
	return EntityStateBody{
		EntityID:                entityID,
		ForceID:                 ForceId(forceID),
		EntityType:              entityType,
		AlternativeEntityType:   altType,
		EntityLinearVelocity:    velocity,
		EntityLocation:          location,
		EntityOrientation:       orientation,
		EntityAppearance:        appearance,
		DeadReckoningParameters: dr,
		EntityMarking:           marking,
		Capabilities:            capabilities,
		VariableParameters:      vps,
	}, nil
}
