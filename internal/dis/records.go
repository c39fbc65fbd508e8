package dis

// EntityId uniquely identifies one simulated entity within a site and
// application pair. The all-0xFFFF entity component means "all entities".
type EntityId struct {
	Site        uint16
	Application uint16
	Entity      uint16
}

func (e EntityId) write(w *ByteWriter) error {
	if err := w.WriteUint16(e.Site); err != nil {
		return err
	}
	if err := w.WriteUint16(e.Application); err != nil {
		return err
	}
	return w.WriteUint16(e.Entity)
}

func readEntityId(r *ByteReader) (EntityId, error) {
	site, err := r.ReadUint16()
	if err != nil {
		return EntityId{}, err
	}
	app, err := r.ReadUint16()
	if err != nil {
		return EntityId{}, err
	}
	ent, err := r.ReadUint16()
	if err != nil {
		return EntityId{}, err
	}
	return EntityId{Site: site, Application: app, Entity: ent}, nil
}

// EventId identifies one discrete event (a munition firing, a collision)
// so later PDUs (e.g. Detonation) can be correlated back to it.
type EventId struct {
	Site        uint16
	Application uint16
	EventNumber uint16
}

func (e EventId) write(w *ByteWriter) error {
	if err := w.WriteUint16(e.Site); err != nil {
		return err
	}
	if err := w.WriteUint16(e.Application); err != nil {
		return err
	}
	return w.WriteUint16(e.EventNumber)
}

func readEventId(r *ByteReader) (EventId, error) {
	site, err := r.ReadUint16()
	if err != nil {
		return EventId{}, err
	}
	app, err := r.ReadUint16()
	if err != nil {
		return EventId{}, err
	}
	num, err := r.ReadUint16()
	if err != nil {
		return EventId{}, err
	}
	return EventId{Site: site, Application: app, EventNumber: num}, nil
}

// EntityType is the 7-component SISO enumeration identifying what kind of
// thing an entity or munition is.
type EntityType struct {
	Kind        EntityKind
	Domain      Domain
	Country     Country
	Category    Category
	Subcategory Subcategory
	Specific    Specific
	Extra       Extra
}

func (e EntityType) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(e.Kind)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(e.Domain)); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(e.Country)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(e.Category)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(e.Subcategory)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(e.Specific)); err != nil {
		return err
	}
	return w.WriteUint8(uint8(e.Extra))
}

func readEntityType(r *ByteReader) (EntityType, error) {
	kind, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	domain, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	country, err := r.ReadUint16()
	if err != nil {
		return EntityType{}, err
	}
	category, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	subcategory, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	specific, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	extra, err := r.ReadUint8()
	if err != nil {
		return EntityType{}, err
	}
	return EntityType{
		Kind: EntityKind(kind), Domain: Domain(domain), Country: Country(country),
		Category: Category(category), Subcategory: Subcategory(subcategory),
		Specific: Specific(specific), Extra: Extra(extra),
	}, nil
}

// WorldCoordinates locates an entity in the geocentric (ECEF) frame, in
// meters, per IEEE 1278.1 section 6.2.97.
type WorldCoordinates struct {
	X, Y, Z float64
}

func (c WorldCoordinates) write(w *ByteWriter) error {
	if err := w.WriteFloat64(c.X); err != nil {
		return err
	}
	if err := w.WriteFloat64(c.Y); err != nil {
		return err
	}
	return w.WriteFloat64(c.Z)
}

func readWorldCoordinates(r *ByteReader) (WorldCoordinates, error) {
	x, err := r.ReadFloat64()
	if err != nil {
		return WorldCoordinates{}, err
	}
	y, err := r.ReadFloat64()
	if err != nil {
		return WorldCoordinates{}, err
	}
	z, err := r.ReadFloat64()
	if err != nil {
		return WorldCoordinates{}, err
	}
	return WorldCoordinates{X: x, Y: y, Z: z}, nil
}

// VectorF32 is a generic 3-component single-precision vector, used for
// linear velocity/acceleration and angular velocity records.
type VectorF32 struct {
	X, Y, Z float32
}

func (v VectorF32) write(w *ByteWriter) error {
	if err := w.WriteFloat32(v.X); err != nil {
		return err
	}
	if err := w.WriteFloat32(v.Y); err != nil {
		return err
	}
	return w.WriteFloat32(v.Z)
}

func readVectorF32(r *ByteReader) (VectorF32, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return VectorF32{}, err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return VectorF32{}, err
	}
	z, err := r.ReadFloat32()
	if err != nil {
		return VectorF32{}, err
	}
	return VectorF32{X: x, Y: y, Z: z}, nil
}

// Orientation holds the psi/theta/phi Euler angles, in radians, per IEEE
// 1278.1 section 6.2.48.
type Orientation struct {
	Psi, Theta, Phi float32
}

func (o Orientation) write(w *ByteWriter) error {
	if err := w.WriteFloat32(o.Psi); err != nil {
		return err
	}
	if err := w.WriteFloat32(o.Theta); err != nil {
		return err
	}
	return w.WriteFloat32(o.Phi)
}

func readOrientation(r *ByteReader) (Orientation, error) {
	psi, err := r.ReadFloat32()
	if err != nil {
		return Orientation{}, err
	}
	theta, err := r.ReadFloat32()
	if err != nil {
		return Orientation{}, err
	}
	phi, err := r.ReadFloat32()
	if err != nil {
		return Orientation{}, err
	}
	return Orientation{Psi: psi, Theta: theta, Phi: phi}, nil
}

// ClockTime is the DIS absolute/relative timestamp pair: a count of
// hours, plus a 32-bit time past that hour whose low bit flags absolute
// (1) vs relative (0) time, per section 6.2.14.
type ClockTime struct {
	Hour               int32
	TimePastHour uint32
}

func (c ClockTime) write(w *ByteWriter) error {
	if err := w.WriteInt32(c.Hour); err != nil {
		return err
	}
	return w.WriteUint32(c.TimePastHour)
}

func readClockTime(r *ByteReader) (ClockTime, error) {
	hour, err := r.ReadInt32()
	if err != nil {
		return ClockTime{}, err
	}
	tph, err := r.ReadUint32()
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Hour: hour, TimePastHour: tph}, nil
}

// IsAbsolute reports whether the timestamp's low bit marks it as an
// absolute (vs relative/unsynchronized) DIS time.
func (c ClockTime) IsAbsolute() bool { return c.TimePastHour&1 == 1 }

// FixedDatum is one fixed-width appended field: a 32-bit value keyed by
// an opaque SISO datum-id.
type FixedDatum struct {
	DatumId    uint32
	DatumValue uint32
}

type VariableDatum struct {
	DatumId         uint32
	DatumValueBytes []byte // already padded to a multiple of 8 bytes by the caller
}

// DatumSpecification carries the trailing fixed/variable datum lists used
// by SetData, Data, Comment and several simulation-management PDUs.
type DatumSpecification struct {
	FixedDatums    []FixedDatum
	VariableDatums []VariableDatum
}

func (d DatumSpecification) write(w *ByteWriter) error {
	if err := w.WriteUint32(uint32(len(d.FixedDatums))); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(d.VariableDatums))); err != nil {
		return err
	}
	for _, fd := range d.FixedDatums {
		if err := w.WriteUint32(fd.DatumId); err != nil {
			return err
		}
		if err := w.WriteUint32(fd.DatumValue); err != nil {
			return err
		}
	}
	for _, vd := range d.VariableDatums {
		if err := w.WriteUint32(vd.DatumId); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(len(vd.DatumValueBytes) * 8)); err != nil {
			return err
		}
		if err := w.WriteBytes(vd.DatumValueBytes); err != nil {
			return err
		}
	}
	return nil
}

func readDatumSpecification(r *ByteReader) (DatumSpecification, error) {
	numFixed, err := r.ReadUint32()
	if err != nil {
		return DatumSpecification{}, err
	}
	numVar, err := r.ReadUint32()
	if err != nil {
		return DatumSpecification{}, err
	}
	spec := DatumSpecification{
		FixedDatums:    make([]FixedDatum, 0, numFixed),
		VariableDatums: make([]VariableDatum, 0, numVar),
	}
	for i := uint32(0); i < numFixed; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return DatumSpecification{}, err
		}
		val, err := r.ReadUint32()
		if err != nil {
			return DatumSpecification{}, err
		}
		spec.FixedDatums = append(spec.FixedDatums, FixedDatum{DatumId: id, DatumValue: val})
	}
	for i := uint32(0); i < numVar; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return DatumSpecification{}, err
		}
		lengthBits, err := r.ReadUint32()
		if err != nil {
			return DatumSpecification{}, err
		}
		nBytes := int((lengthBits + 7) / 8)
		val, err := r.ReadBytes(nBytes)
		if err != nil {
			return DatumSpecification{}, err
		}
		spec.VariableDatums = append(spec.VariableDatums, VariableDatum{DatumId: id, DatumValueBytes: val})
	}
	return spec, nil
}

// VariableParameter is a 16-byte tagged union appended to EntityState
// (articulated/attached parts) and other PDUs. Only the raw tag and
// payload are modeled; interpretation of the payload is caller-specific.
type VariableParameter struct {
	RecordType uint8
	Payload    [15]byte
}

func (p VariableParameter) write(w *ByteWriter) error {
	if err := w.WriteUint8(p.RecordType); err != nil {
		return err
	}
	return w.WriteBytes(p.Payload[:])
}

func readVariableParameter(r *ByteReader) (VariableParameter, error) {
	recordType, err := r.ReadUint8()
	if err != nil {
		return VariableParameter{}, err
	}
	payload, err := r.ReadBytes(15)
	if err != nil {
		return VariableParameter{}, err
	}
	var p VariableParameter
	p.RecordType = recordType
	copy(p.Payload[:], payload)
	return p, nil
}
