package dis

// PduStatus is the optional status bitmap introduced in DIS 7. Which bits
// are meaningful depends on the PDU type carrying it; unused bits must be
// zero. We expose it as a plain octet plus typed accessors for the slots
// the implemented PDU bodies actually read.
type PduStatus struct {
	present bool
	raw     uint8
}

// NewPduStatus builds a present status byte from its raw octet.
func NewPduStatus(raw uint8) PduStatus { return PduStatus{present: true, raw: raw} }

// Present reports whether this PDU carries a status field at all; some
// legacy PDU types never do.
func (s PduStatus) Present() bool { return s.present }

// Raw returns the status octet.
func (s PduStatus) Raw() uint8 { return s.raw }

// TEIndicator, LVCIndicator and CEIIndicator decode the status octet's
// bit 0, bits 1-2 and bit 3 respectively.
func (s PduStatus) TEIndicator() bool  { return s.raw&0x01 != 0 }
func (s PduStatus) LVCIndicator() uint8 { return (s.raw >> 1) & 0x03 }
func (s PduStatus) CEIIndicator() bool  { return s.raw&0x08 != 0 }

// Header is the 12-byte fixed prefix common to every DIS PDU.
type Header struct {
	ProtocolVersion  uint8
	ExerciseId       uint8
	PduType          PduType
	ProtocolFamily   ProtocolFamily
	Timestamp        uint32
	Length           uint16 // total PDU length in bytes, header included
	PduStatus        PduStatus
	Padding          uint8
}

func (h Header) write(w *ByteWriter) error {
	if err := w.WriteUint8(h.ProtocolVersion); err != nil {
		return err
	}
	if err := w.WriteUint8(h.ExerciseId); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(h.PduType)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(h.ProtocolFamily)); err != nil {
		return err
	}
	if err := w.WriteUint32(h.Timestamp); err != nil {
		return err
	}
	if err := w.WriteUint16(h.Length); err != nil {
		return err
	}
	if h.PduStatus.Present() {
		if err := w.WriteUint8(h.PduStatus.Raw()); err != nil {
			return err
		}
		return w.WriteUint8(h.Padding)
	}
	return w.WriteUint16(0)
}

// readHeader parses the 12-byte fixed prefix. statusCarrying reports
// whether bytes 11-12 are an actual PduStatus+padding pair (DIS 7 PDUs
// that define one) versus a plain padding uint16 (legacy PDUs).
func readHeader(r *ByteReader, statusCarrying func(PduType) bool) (Header, error) {
	if r.Remaining() < MinHeaderLength {
		return Header{}, &InsufficientHeaderLengthError{Found: r.Remaining()}
	}
	version, err := r.ReadUint8()
	if err != nil {
		return Header{}, err
	}
	exercise, err := r.ReadUint8()
	if err != nil {
		return Header{}, err
	}
	pduType, err := r.ReadUint8()
	if err != nil {
		return Header{}, err
	}
	family, err := r.ReadUint8()
	if err != nil {
		return Header{}, err
	}
	timestamp, err := r.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	length, err := r.ReadUint16()
	if err != nil {
		return Header{}, err
	}
	h := Header{
		ProtocolVersion: version,
		ExerciseId:      exercise,
		PduType:         PduType(pduType),
		ProtocolFamily:  ProtocolFamily(family),
		Timestamp:       timestamp,
		Length:          length,
	}
	if statusCarrying(h.PduType) {
		status, err := r.ReadUint8()
		if err != nil {
			return Header{}, err
		}
		padding, err := r.ReadUint8()
		if err != nil {
			return Header{}, err
		}
		h.PduStatus = NewPduStatus(status)
		h.Padding = padding
	} else {
		if err := r.Skip(2); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}
