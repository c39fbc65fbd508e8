package dis

// IFFSystemID names the transponder/interrogator system carrying this PDU,
// per IEEE 1278.1 section 6.2.43. ChangeOptions is an opaque bitfield
// (SISO table) carried through unmodified.
type IFFSystemID struct {
	SystemType    IFFSystemType
	SystemName    IFFSystemName
	SystemMode    IFFSystemMode
	ChangeOptions uint8
}

func (s IFFSystemID) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(s.SystemType)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(s.SystemName)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(s.SystemMode)); err != nil {
		return err
	}
	return w.WriteUint8(s.ChangeOptions)
}

func readIFFSystemID(r *ByteReader) (IFFSystemID, error) {
	t, err := r.ReadUint8()
	if err != nil {
		return IFFSystemID{}, err
	}
	name, err := r.ReadUint8()
	if err != nil {
		return IFFSystemID{}, err
	}
	mode, err := r.ReadUint8()
	if err != nil {
		return IFFSystemID{}, err
	}
	options, err := r.ReadUint8()
	if err != nil {
		return IFFSystemID{}, err
	}
	return IFFSystemID{SystemType: IFFSystemType(t), SystemName: IFFSystemName(name), SystemMode: IFFSystemMode(mode), ChangeOptions: options}, nil
}

// IFFFundamentalOperationalData is Layer 1's parameter block, per IEEE
// 1278.1 section 6.2.43.
type IFFFundamentalOperationalData struct {
	SystemStatus        uint8
	AlternateParameter4 uint8
	InformationLayers   uint8
	ModifierParameter   uint8
	ParameterOne        uint16
	ParameterTwo        uint16
	ParameterThree      uint16
	ParameterFour       uint16
	ParameterFive       uint16
	ParameterSix        uint16
}

func (d IFFFundamentalOperationalData) write(w *ByteWriter) error {
	if err := w.WriteUint8(d.SystemStatus); err != nil {
		return err
	}
	if err := w.WriteUint8(d.AlternateParameter4); err != nil {
		return err
	}
	if err := w.WriteUint8(d.InformationLayers); err != nil {
		return err
	}
	if err := w.WriteUint8(d.ModifierParameter); err != nil {
		return err
	}
	for _, v := range []uint16{d.ParameterOne, d.ParameterTwo, d.ParameterThree, d.ParameterFour, d.ParameterFive, d.ParameterSix} {
		if err := w.WriteUint16(v); err != nil {
			return err
		}
	}
	return nil
}

func readIFFFundamentalOperationalData(r *ByteReader) (IFFFundamentalOperationalData, error) {
	status, err := r.ReadUint8()
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	alt4, err := r.ReadUint8()
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	layers, err := r.ReadUint8()
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	modifier, err := r.ReadUint8()
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	var params [6]uint16
	for i := range params {
		v, err := r.ReadUint16()
		if err != nil {
			return IFFFundamentalOperationalData{}, err
		}
		params[i] = v
	}
	return IFFFundamentalOperationalData{
		SystemStatus: status, AlternateParameter4: alt4, InformationLayers: layers, ModifierParameter: modifier,
		ParameterOne: params[0], ParameterTwo: params[1], ParameterThree: params[2],
		ParameterFour: params[3], ParameterFive: params[4], ParameterSix: params[5],
	}, nil
}

const iffLayerHeaderBytes = 4
const iffLayer1FixedBytes = iffLayerHeaderBytes + 12 + 4 + 2 + 16 // header + Location + SystemID + pad + FundamentalOperationalData

// IFFBeamData is the Beam Data Record Layer 2 carries, per IEEE 1278.1
// section 6.2.43: the antenna beam's azimuth/elevation center and sweep
// half-angles plus its sweep-sync percentage, all as 32-bit float.
type IFFBeamData struct {
	AzimuthCenter   float32
	AzimuthSweep    float32
	ElevationCenter float32
	ElevationSweep  float32
	SweepSync       float32
}

func (b IFFBeamData) write(w *ByteWriter) error {
	for _, v := range []float32{b.AzimuthCenter, b.AzimuthSweep, b.ElevationCenter, b.ElevationSweep, b.SweepSync} {
		if err := w.WriteFloat32(v); err != nil {
			return err
		}
	}
	return nil
}

func readIFFBeamData(r *ByteReader) (IFFBeamData, error) {
	var vals [5]float32
	for i := range vals {
		v, err := r.ReadFloat32()
		if err != nil {
			return IFFBeamData{}, err
		}
		vals[i] = v
	}
	return IFFBeamData{AzimuthCenter: vals[0], AzimuthSweep: vals[1], ElevationCenter: vals[2], ElevationSweep: vals[3], SweepSync: vals[4]}, nil
}

// IFFFundamentalParameterData is one entry of Layer 2's Fundamental
// Parameter Data array, per IEEE 1278.1 section 6.2.43: the emission
// parameters of one IFF transponder mode, plus a 3-byte system-specific
// data block carried through opaquely.
type IFFFundamentalParameterData struct {
	ERP                float32
	Frequency          float32
	PGRF               float32
	PulseWidth         float32
	BurstLength        uint32
	ApplicableModes    uint8
	SystemSpecificData [3]byte
}

func (d IFFFundamentalParameterData) write(w *ByteWriter) error {
	for _, v := range []float32{d.ERP, d.Frequency, d.PGRF, d.PulseWidth} {
		if err := w.WriteFloat32(v); err != nil {
			return err
		}
	}
	if err := w.WriteUint32(d.BurstLength); err != nil {
		return err
	}
	if err := w.WriteUint8(d.ApplicableModes); err != nil {
		return err
	}
	return w.WriteBytes(d.SystemSpecificData[:])
}

func readIFFFundamentalParameterData(r *ByteReader) (IFFFundamentalParameterData, error) {
	var floats [4]float32
	for i := range floats {
		v, err := r.ReadFloat32()
		if err != nil {
			return IFFFundamentalParameterData{}, err
		}
		floats[i] = v
	}
	burst, err := r.ReadUint32()
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	modes, err := r.ReadUint8()
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	ssd, err := r.ReadBytes(3)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	var data IFFFundamentalParameterData
	data.ERP, data.Frequency, data.PGRF, data.PulseWidth = floats[0], floats[1], floats[2], floats[3]
	data.BurstLength = burst
	data.ApplicableModes = modes
	copy(data.SystemSpecificData[:], ssd)
	return data, nil
}

// IFFLayer2 is IFF's Mode 5/Mode S emission-parameter layer, per IEEE
// 1278.1 section 6.2.43: a Beam Data Record, two operational parameter
// bytes, and a variable-length array of IFFFundamentalParameterData.
// Layers 3 through 5 (the Mode 5 Message Formats, Mode S, and
// Miscellaneous layers) have no structural model here — see
// AdditionalLayers.
type IFFLayer2 struct {
	BeamData              IFFBeamData
	OperationalParameter1 uint8
	OperationalParameter2 uint8
	FundamentalParameters []IFFFundamentalParameterData
}

const iffLayer2FixedBytes = iffLayerHeaderBytes + 20 + 1 + 1 + 2 // header + BeamData + 2 params + count
const iffFundamentalParameterDataBytes = 16 + 4 + 1 + 3

func (l IFFLayer2) byteLen() int {
	return iffLayer2FixedBytes + len(l.FundamentalParameters)*iffFundamentalParameterDataBytes
}

func (l IFFLayer2) write(w *ByteWriter) error {
	if err := w.WriteUint8(2); err != nil { // layer number
		return err
	}
	if err := w.WriteUint8(0); err != nil { // layer-specific information, unused
		return err
	}
	if err := w.WriteUint16(uint16(l.byteLen())); err != nil {
		return err
	}
	if err := l.BeamData.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(l.OperationalParameter1); err != nil {
		return err
	}
	if err := w.WriteUint8(l.OperationalParameter2); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(len(l.FundamentalParameters))); err != nil {
		return err
	}
	for _, p := range l.FundamentalParameters {
		if err := p.write(w); err != nil {
			return err
		}
	}
	return nil
}

// readIFFLayer2 parses a Layer 2 block whose 4-byte layer header has
// already been consumed by the caller. The parameter array is read by
// its own count field; the header's length field is not consulted, and
// running out of bytes before count parameters are read is an error.
func readIFFLayer2(r *ByteReader) (IFFLayer2, error) {
	beamData, err := readIFFBeamData(r)
	if err != nil {
		return IFFLayer2{}, err
	}
	op1, err := r.ReadUint8()
	if err != nil {
		return IFFLayer2{}, err
	}
	op2, err := r.ReadUint8()
	if err != nil {
		return IFFLayer2{}, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return IFFLayer2{}, err
	}
	params := make([]IFFFundamentalParameterData, 0, count)
	for i := uint16(0); i < count; i++ {
		p, err := readIFFFundamentalParameterData(r)
		if err != nil {
			return IFFLayer2{}, err
		}
		params = append(params, p)
	}
	return IFFLayer2{BeamData: beamData, OperationalParameter1: op1, OperationalParameter2: op2, FundamentalParameters: params}, nil
}

// IFFBody is the body of an IFF PDU (IEEE 1278.1 section 5.7.2): a
// transponder's identification-friend-or-foe state, structured as a
// mandatory Layer 1 followed by zero or more optional appended layers
// (Mode 5, Mode S, ...). Layer 1 and Layer 2 are interpreted
// structurally; any further layers are carried as an opaque trailing
// block so a gateway that doesn't understand a given appended layer
// still forwards it byte-for-byte instead of dropping it.
type IFFBody struct {
	EmittingEntityID           EntityId
	EventID                    EventId
	RelativeAntennaLocation    VectorF32
	SystemID                   IFFSystemID
	FundamentalOperationalData IFFFundamentalOperationalData
	Layer2                     *IFFLayer2
	AdditionalLayers           []byte
}

func (b IFFBody) PduType() PduType { return PduTypeIFF }

func (b IFFBody) write(w *ByteWriter) error {
	if err := b.EmittingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	// Layer 1 header: layer number 1, layer-specific info unused here, and
	// the layer's total byte length including this 4-byte header.
	if err := w.WriteUint8(1); err != nil {
		return err
	}
	if err := w.WriteUint8(0); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(iffLayer1FixedBytes)); err != nil {
		return err
	}
	if err := b.RelativeAntennaLocation.write(w); err != nil {
		return err
	}
	if err := b.SystemID.write(w); err != nil {
		return err
	}
	if err := w.Pad(2); err != nil {
		return err
	}
	if err := b.FundamentalOperationalData.write(w); err != nil {
		return err
	}
	if b.Layer2 != nil {
		if err := b.Layer2.write(w); err != nil {
			return err
		}
	}
	if len(b.AdditionalLayers) > 0 {
		return w.WriteBytes(b.AdditionalLayers)
	}
	return nil
}

func parseIFFBody(h Header, r *ByteReader) (Body, error) {
	emitting, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(4); err != nil { // layer 1 header: number, info, length
		return nil, err
	}
	location, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	systemID, err := readIFFSystemID(r)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	fod, err := readIFFFundamentalOperationalData(r)
	if err != nil {
		return nil, err
	}
	var layer2 *IFFLayer2
	if r.Remaining() >= iffLayerHeaderBytes {
		layerNumber, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if layerNumber == 2 {
			if err := r.Skip(1); err != nil { // layer-specific information
				return nil, err
			}
			if err := r.Skip(2); err != nil { // layer byte length, re-derived from the parsed array
				return nil, err
			}
			l2, err := readIFFLayer2(r)
			if err != nil {
				return nil, err
			}
			layer2 = &l2
		} else {
			if err := r.Rewind(1); err != nil {
				return nil, err
			}
		}
	}
	var additional []byte
	if r.Remaining() > 0 {
		additional, err = r.ReadBytes(r.Remaining())
		if err != nil {
			return nil, err
		}
	}
	return IFFBody{
		EmittingEntityID: emitting, EventID: event, RelativeAntennaLocation: location,
		SystemID: systemID, FundamentalOperationalData: fod, Layer2: layer2, AdditionalLayers: additional,
	}, nil
}
