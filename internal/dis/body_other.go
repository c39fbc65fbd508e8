package dis

// OtherBody carries any PDU type this package has no structural codec
// for. Its payload is the raw body bytes, letting a gateway forward a
// PDU it doesn't understand unchanged rather than reject it outright.
type OtherBody struct {
	Type    PduType
	Payload []byte
}

func (b OtherBody) PduType() PduType { return b.Type }

func (b OtherBody) write(w *ByteWriter) error {
	return w.WriteBytes(b.Payload)
}

func parseOtherBody(h Header, r *ByteReader) (Body, error) {
	payload, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return nil, err
	}
	return OtherBody{Type: h.PduType, Payload: payload}, nil
}
