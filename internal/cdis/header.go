package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// MTUBits is the maximum size of a C-DIS PDU on the wire, per spec.md
// section 2: 1500 octets.
const MTUBits = 1500 * 8

const (
	protocolVersionBits = 4
	pduTypeBits         = 8
	lengthFieldBits     = 16
	pduStatusBits       = 8

	minHeaderBits = protocolVersionBits + 1 + 4 /* exercise id: UVINT8 selector plus smallest payload */ + pduTypeBits +
		1 + clockTimeTickBits + lengthFieldBits + pduStatusBits
)

// Header is the bit-packed prefix common to every C-DIS PDU: a 4-bit
// protocol version, a UVINT8 exercise id, an 8-bit PDU type, a 26-bit
// packed timestamp, a 16-bit total-length-in-bits field, and an 8-bit
// PDU status octet, per spec.md section 3.3.
type Header struct {
	ProtocolVersion uint8
	ExerciseId      varint.UVINT8
	PduType         dis.PduType
	Timestamp       ClockTime
	LengthBits      uint16
	PduStatus       uint8
}

func (h Header) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(protocolVersionBits, uint64(h.ProtocolVersion)); err != nil {
		return err
	}
	if err := h.ExerciseId.Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(pduTypeBits, uint64(h.PduType)); err != nil {
		return err
	}
	if err := h.Timestamp.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(lengthFieldBits, uint64(h.LengthBits)); err != nil {
		return err
	}
	return w.WriteUnsigned(pduStatusBits, uint64(h.PduStatus))
}

func readHeader(r *bitio.Reader) (Header, error) {
	if r.Remaining() < minHeaderBits {
		return Header{}, &InsufficientPduLengthError{ExpectedBits: minHeaderBits, FoundBits: r.Remaining()}
	}
	version, err := r.Take(protocolVersionBits)
	if err != nil {
		return Header{}, err
	}
	exercise, err := varint.ReadUVINT8(r)
	if err != nil {
		return Header{}, err
	}
	pduType, err := r.Take(pduTypeBits)
	if err != nil {
		return Header{}, err
	}
	timestamp, err := readClockTime(r)
	if err != nil {
		return Header{}, err
	}
	length, err := r.Take(lengthFieldBits)
	if err != nil {
		return Header{}, err
	}
	status, err := r.Take(pduStatusBits)
	if err != nil {
		return Header{}, err
	}
	return Header{
		ProtocolVersion: uint8(version),
		ExerciseId:      exercise,
		PduType:         dis.PduType(pduType),
		Timestamp:       timestamp,
		LengthBits:      uint16(length),
		PduStatus:       uint8(status),
	}, nil
}
