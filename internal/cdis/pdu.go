package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
)

// Body is implemented by every concrete C-DIS PDU body codec.
type Body interface {
	PduType() dis.PduType
	write(w *bitio.Writer) error
}

// Pdu pairs a bit-packed header with its decoded body.
type Pdu struct {
	Header Header
	Body   Body
}

// bodyParser decodes a body given the already-parsed header and a reader
// positioned just past it, bounded to header.LengthBits total.
type bodyParser func(h Header, r *bitio.Reader) (Body, error)

var bodyParsers = map[dis.PduType]bodyParser{
	dis.PduTypeEntityState:             parseEntityStateBody,
	dis.PduTypeFire:                    parseFireBody,
	dis.PduTypeDetonation:              parseDetonationBody,
	dis.PduTypeCollision:               parseCollisionBody,
	dis.PduTypeCreateEntity:            parseCreateEntityBody,
	dis.PduTypeRemoveEntity:            parseRemoveEntityBody,
	dis.PduTypeStartResume:             parseStartResumeBody,
	dis.PduTypeStopFreeze:              parseStopFreezeBody,
	dis.PduTypeAcknowledge:             parseAcknowledgeBody,
	dis.PduTypeDesignator:              parseDesignatorBody,
	dis.PduTypeTransmitter:             parseTransmitterBody,
	dis.PduTypeElectromagneticEmission: parseElectromagneticEmissionBody,
	dis.PduTypeIFF:                     parseIFFBody,
}

// ParsePdu decodes one C-DIS PDU from buf, which must hold exactly one PDU
// (the caller demultiplexes a UDP datagram into single-PDU slices before
// calling this). totalBits bounds how many bits of the final byte are
// valid, since C-DIS PDUs are not byte-aligned in length.
func ParsePdu(buf []byte, totalBits int) (Pdu, error) {
	r := bitio.NewReader(buf, totalBits)
	header, err := readHeader(r)
	if err != nil {
		return Pdu{}, err
	}
	if int(header.LengthBits) > totalBits {
		return Pdu{}, &InsufficientPduLengthError{ExpectedBits: int(header.LengthBits), FoundBits: totalBits}
	}

	parse, ok := bodyParsers[header.PduType]
	if !ok {
		return Pdu{}, &UnsupportedPduError{PduTypeValue: uint8(header.PduType)}
	}
	body, err := parse(header, r)
	if err != nil {
		return Pdu{}, err
	}
	return Pdu{Header: header, Body: body}, nil
}

// SerializePdu encodes pdu, back-patching the header's bit-length field
// once the body's true size is known. The length field sits at a bit
// offset that depends on the exercise id's chosen UVINT8 bucket, so the
// patch recomputes that offset rather than assuming a fixed position.
func SerializePdu(pdu Pdu) ([]byte, error) {
	w := bitio.NewWriter()
	pdu.Header.PduType = pdu.Body.PduType()

	lengthFieldOffset := protocolVersionBits + pdu.Header.ExerciseId.BitSize() + pduTypeBits + 1 + clockTimeTickBits

	if err := pdu.Header.write(w); err != nil {
		return nil, err
	}
	if err := pdu.Body.write(w); err != nil {
		return nil, err
	}
	total := w.Cursor()
	if total > MTUBits {
		return nil, &InsufficientBufferSizeError{NeededBits: total, AvailableBits: MTUBits}
	}
	out := w.Bytes()
	patchBitsAt(out, lengthFieldOffset, lengthFieldBits, uint64(total))
	return out, nil
}

// patchBitsAt overwrites bitWidth bits of buf starting at bitOffset with
// value's low bitWidth bits, using the same big-endian, MSB-first bit
// order bitio.Writer uses internally.
func patchBitsAt(buf []byte, bitOffset, bitWidth int, value uint64) {
	for i := 0; i < bitWidth; i++ {
		bit := (value >> uint(bitWidth-1-i)) & 1
		pos := bitOffset + i
		byteIdx := pos / 8
		bitIdx := 7 - uint(pos%8)
		if bit != 0 {
			buf[byteIdx] |= 1 << bitIdx
		} else {
			buf[byteIdx] &^= 1 << bitIdx
		}
	}
}
