package dis

// DesignatorBody is the body of a Designator PDU (IEEE 1278.1
// section 5.3.7.2): reports where a laser/IR designator is pointed,
// relative to the entity carrying it and in world coordinates.
type DesignatorBody struct {
	DesignatingEntityID            EntityId
	CodeName                       DesignatorSystemName
	DesignatedEntityID             EntityId
	DesignatorCode                 DesignatorCode
	DesignatorPower                float32
	DesignatorWavelength           float32
	DesignatorSpotWrtDesignated    VectorF32
	DesignatorSpotLocation         WorldCoordinates
	DeadReckoningAlgorithm         DeadReckoningAlgorithm
	EntityLinearAcceleration       VectorF32
}

func (b DesignatorBody) PduType() PduType { return PduTypeDesignator }

func (b DesignatorBody) write(w *ByteWriter) error {
	if err := b.DesignatingEntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(b.CodeName)); err != nil {
		return err
	}
	if err := b.DesignatedEntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(b.DesignatorCode)); err != nil {
		return err
	}
	if err := w.WriteFloat32(b.DesignatorPower); err != nil {
		return err
	}
	if err := w.WriteFloat32(b.DesignatorWavelength); err != nil {
		return err
	}
	if err := b.DesignatorSpotWrtDesignated.write(w); err != nil {
		return err
	}
	if err := b.DesignatorSpotLocation.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.DeadReckoningAlgorithm)); err != nil {
		return err
	}
	if err := w.Pad(3); err != nil {
		return err
	}
	return b.EntityLinearAcceleration.write(w)
}

func parseDesignatorBody(h Header, r *ByteReader) (Body, error) {
	designating, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	codeName, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	designated, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	code, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	power, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	wavelength, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	spotWrt, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	spotLocation, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	algo, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(3); err != nil {
		return nil, err
	}
	accel, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	return DesignatorBody{
		DesignatingEntityID: designating, CodeName: DesignatorSystemName(codeName),
		DesignatedEntityID: designated, DesignatorCode: DesignatorCode(code),
		DesignatorPower: power, DesignatorWavelength: wavelength,
		DesignatorSpotWrtDesignated: spotWrt, DesignatorSpotLocation: spotLocation,
		DeadReckoningAlgorithm: DeadReckoningAlgorithm(algo), EntityLinearAcceleration: accel,
	}, nil
}
