// Package dis implements the byte-aligned IEEE 1278.1 (DIS) wire format:
// the 12-byte PDU header, the shared record types every body draws on, and
// a dispatch table of concrete body codecs for the PDU types this gateway
// understands structurally. Anything outside that set still round-trips,
// carried opaquely as an Other body.
package dis

// Body is implemented by every concrete PDU body codec.
type Body interface {
	PduType() PduType
	write(w *ByteWriter) error
}

// Pdu pairs a header with its decoded body.
type Pdu struct {
	Header Header
	Body   Body
}

// statusCarryingTypes lists the PDU types whose 11th/12th header bytes are
// a genuine PduStatus+padding pair rather than a legacy all-zero filler.
// Grounded on the dis-rs header parser, which branches on pdu type for
// exactly this reason.
var statusCarryingTypes = map[PduType]bool{
	PduTypeEntityState:             true,
	PduTypeFire:                    true,
	PduTypeDetonation:              true,
	PduTypeCollision:               true,
	PduTypeCreateEntity:            true,
	PduTypeRemoveEntity:            true,
	PduTypeStartResume:             true,
	PduTypeStopFreeze:              true,
	PduTypeAcknowledge:             true,
	PduTypeDesignator:              true,
	PduTypeTransmitter:             true,
	PduTypeElectromagneticEmission: true,
	PduTypeIFF:                     true,
}

func isStatusCarrying(t PduType) bool { return statusCarryingTypes[t] }

// bodyParser decodes a body given the already-parsed header and the
// remaining bytes of this PDU (exactly header.Length - MinHeaderLength,
// already length-checked by ParsePdu).
type bodyParser func(h Header, r *ByteReader) (Body, error)

var bodyParsers = map[PduType]bodyParser{
	PduTypeEntityState:             parseEntityStateBody,
	PduTypeFire:                    parseFireBody,
	PduTypeDetonation:              parseDetonationBody,
	PduTypeCollision:               parseCollisionBody,
	PduTypeCreateEntity:            parseCreateEntityBody,
	PduTypeRemoveEntity:            parseRemoveEntityBody,
	PduTypeStartResume:             parseStartResumeBody,
	PduTypeStopFreeze:              parseStopFreezeBody,
	PduTypeAcknowledge:             parseAcknowledgeBody,
	PduTypeDesignator:              parseDesignatorBody,
	PduTypeTransmitter:             parseTransmitterBody,
	PduTypeElectromagneticEmission: parseElectromagneticEmissionBody,
	PduTypeIFF:                     parseIFFBody,
}

// ParsePdu decodes one PDU from buf, which must hold exactly one PDU (the
// caller demultiplexes a UDP datagram or TCP framing into single-PDU
// slices before calling this).
func ParsePdu(buf []byte) (Pdu, error) {
	r := NewByteReader(buf)
	header, err := readHeader(r, isStatusCarrying)
	if err != nil {
		return Pdu{}, err
	}
	if int(header.Length) > len(buf) {
		return Pdu{}, &InsufficientPduLengthError{Expected: int(header.Length), Found: len(buf)}
	}
	// Bound the body reader to exactly the declared PDU length so trailing
	// bytes belonging to a subsequent PDU in the same buffer are never
	// consumed.
	bodyBuf := buf[MinHeaderLength:header.Length]
	bodyReader := NewByteReader(bodyBuf)

	parse, ok := bodyParsers[header.PduType]
	if !ok {
		body, err := parseOtherBody(header, bodyReader)
		if err != nil {
			return Pdu{}, err
		}
		return Pdu{Header: header, Body: body}, nil
	}
	body, err := parse(header, bodyReader)
	if err != nil {
		return Pdu{}, err
	}
	return Pdu{Header: header, Body: body}, nil
}

// SerializePdu encodes pdu, back-patching the header's Length field once
// the body's true size is known (the classic two-pass length write every
// DIS codec needs since the header precedes the body it measures).
func SerializePdu(pdu Pdu) ([]byte, error) {
	w := NewByteWriter()
	pdu.Header.PduType = pdu.Body.PduType()
	if err := pdu.Header.write(w); err != nil {
		return nil, err
	}
	if err := pdu.Body.write(w); err != nil {
		return nil, err
	}
	total := w.Len()
	out := w.Bytes()
	// Length lives at a fixed offset (8) regardless of pdu type, so the
	// back-patch is a direct in-place write rather than a second pass.
	patchLength(out, uint16(total))
	return out, nil
}

const lengthFieldOffset = 8

func patchLength(buf []byte, length uint16) {
	buf[lengthFieldOffset] = byte(length >> 8)
	buf[lengthFieldOffset+1] = byte(length)
}
