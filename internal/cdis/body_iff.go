package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// IFFSystemID mirrors dis.IFFSystemID.
type IFFSystemID struct {
	SystemType    uint8
	SystemName    uint8
	SystemMode    uint8
	ChangeOptions uint8
}

// IFF System Type codes known to this package, per IEEE 1278.1's IFF
// System Type enumeration: 0 is the explicit "not used"/no-statement
// value, 1-5 name a concrete transponder or interrogator family. Any
// other code is undetermined.
const (
	iffSystemTypeNotUsed  uint8 = 0
	iffSystemTypeMaxKnown uint8 = 5
)

// validateIFFSystemID rejects a System ID this package cannot classify:
// a SystemType outside the known range, or SystemType "not used" paired
// with a nonzero SystemName (a concrete system named without a type to
// go with it).
func validateIFFSystemID(s IFFSystemID) error {
	if s.SystemType > iffSystemTypeMaxKnown {
		return &IffUndeterminedSystemTypeError{SystemType: s.SystemType}
	}
	if s.SystemType == iffSystemTypeNotUsed && s.SystemName != 0 {
		return &IffIncorrectSystemTypeError{SystemType: s.SystemType, SystemName: uint16(s.SystemName)}
	}
	return nil
}

func (s IFFSystemID) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(s.SystemType)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(s.SystemName)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(s.SystemMode)); err != nil {
		return err
	}
	return w.WriteUnsigned(8, uint64(s.ChangeOptions))
}

func readIFFSystemID(r *bitio.Reader) (IFFSystemID, error) {
	t, err := r.Take(8)
	if err != nil {
		return IFFSystemID{}, err
	}
	name, err := r.Take(8)
	if err != nil {
		return IFFSystemID{}, err
	}
	mode, err := r.Take(8)
	if err != nil {
		return IFFSystemID{}, err
	}
	options, err := r.Take(8)
	if err != nil {
		return IFFSystemID{}, err
	}
	return IFFSystemID{SystemType: uint8(t), SystemName: uint8(name), SystemMode: uint8(mode), ChangeOptions: uint8(options)}, nil
}

// IFFFundamentalOperationalData mirrors dis.IFFFundamentalOperationalData,
// its six parameter slots narrowed to UVINT16.
type IFFFundamentalOperationalData struct {
	SystemStatus        uint8
	AlternateParameter4 uint8
	InformationLayers   uint8
	ModifierParameter   uint8
	ParameterOne        varint.UVINT16
	ParameterTwo        varint.UVINT16
	ParameterThree      varint.UVINT16
	ParameterFour       varint.UVINT16
	ParameterFive       varint.UVINT16
	ParameterSix        varint.UVINT16
}

func (d IFFFundamentalOperationalData) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(d.SystemStatus)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(d.AlternateParameter4)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(d.InformationLayers)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(d.ModifierParameter)); err != nil {
		return err
	}
	for _, p := range []varint.UVINT16{d.ParameterOne, d.ParameterTwo, d.ParameterThree, d.ParameterFour, d.ParameterFive, d.ParameterSix} {
		if err := p.Write(w); err != nil {
			return err
		}
	}
	return nil
}

func readIFFFundamentalOperationalData(r *bitio.Reader) (IFFFundamentalOperationalData, error) {
	status, err := r.Take(8)
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	alt4, err := r.Take(8)
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	layers, err := r.Take(8)
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	modifier, err := r.Take(8)
	if err != nil {
		return IFFFundamentalOperationalData{}, err
	}
	var params [6]varint.UVINT16
	for i := range params {
		p, err := varint.ReadUVINT16(r)
		if err != nil {
			return IFFFundamentalOperationalData{}, err
		}
		params[i] = p
	}
	return IFFFundamentalOperationalData{
		SystemStatus: uint8(status), AlternateParameter4: uint8(alt4), InformationLayers: uint8(layers), ModifierParameter: uint8(modifier),
		ParameterOne: params[0], ParameterTwo: params[1], ParameterThree: params[2],
		ParameterFour: params[3], ParameterFive: params[4], ParameterSix: params[5],
	}, nil
}

// IFFBeamData mirrors cdis-assemble's electromagnetic_emission::model::
// BeamData (src/electromagnetic_emission/model.rs), the same record type
// IFF Layer 2's beam_data field reuses (src/iff/writer.rs): four
// SVINT13-quantized angles and a raw 16-bit sweep-sync percentage.
type IFFBeamData struct {
	AzimuthCenter   varint.SVINT13
	AzimuthSweep    varint.SVINT13
	ElevationCenter varint.SVINT13
	ElevationSweep  varint.SVINT13
	SweepSync       uint16
}

func iffBeamDataFromDis(b dis.IFFBeamData) IFFBeamData {
	return IFFBeamData{
		AzimuthCenter:   varint.NewSVINT13(int16(b.AzimuthCenter)),
		AzimuthSweep:    varint.NewSVINT13(int16(b.AzimuthSweep)),
		ElevationCenter: varint.NewSVINT13(int16(b.ElevationCenter)),
		ElevationSweep:  varint.NewSVINT13(int16(b.ElevationSweep)),
		SweepSync:       uint16(b.SweepSync),
	}
}

func (b IFFBeamData) toDis() dis.IFFBeamData {
	return dis.IFFBeamData{
		AzimuthCenter:   float32(b.AzimuthCenter.Value),
		AzimuthSweep:    float32(b.AzimuthSweep.Value),
		ElevationCenter: float32(b.ElevationCenter.Value),
		ElevationSweep:  float32(b.ElevationSweep.Value),
		SweepSync:       float32(b.SweepSync),
	}
}

func (b IFFBeamData) write(w *bitio.Writer) error {
	for _, v := range []varint.SVINT13{b.AzimuthCenter, b.AzimuthSweep, b.ElevationCenter, b.ElevationSweep} {
		if err := v.Write(w); err != nil {
			return err
		}
	}
	return w.WriteUnsigned(16, uint64(b.SweepSync))
}

func readIFFBeamData(r *bitio.Reader) (IFFBeamData, error) {
	var angles [4]varint.SVINT13
	for i := range angles {
		v, err := varint.ReadSVINT13(r)
		if err != nil {
			return IFFBeamData{}, err
		}
		angles[i] = v
	}
	sync, err := r.Take(16)
	if err != nil {
		return IFFBeamData{}, err
	}
	return IFFBeamData{
		AzimuthCenter: angles[0], AzimuthSweep: angles[1], ElevationCenter: angles[2], ElevationSweep: angles[3],
		SweepSync: uint16(sync),
	}, nil
}

const (
	iffParamERPBits         = 8
	iffParamPGRFBits        = 10
	iffParamPulseWidthBits  = 10
	iffParamBurstLengthBits = 10
	iffParamModesBits       = 3
)

// IFFFundamentalParameterData mirrors cdis-assemble's
// IffFundamentalParameterData (src/iff/writer.rs): an 8-bit ERP, a
// compressed-float frequency, three 10-bit timing fields, a 3-bit
// applicable-modes bitmap, and a 3-byte system-specific data block.
type IFFFundamentalParameterData struct {
	ERP                uint8
	Frequency          float32
	PGRF               uint16
	PulseWidth         uint16
	BurstLength        uint16
	ApplicableModes    uint8
	SystemSpecificData [3]byte
}

func iffFundamentalParameterDataFromDis(d dis.IFFFundamentalParameterData) IFFFundamentalParameterData {
	return IFFFundamentalParameterData{
		ERP:                uint8(d.ERP),
		Frequency:          d.Frequency,
		PGRF:               uint16(d.PGRF),
		PulseWidth:         uint16(d.PulseWidth),
		BurstLength:        uint16(d.BurstLength),
		ApplicableModes:    d.ApplicableModes,
		SystemSpecificData: d.SystemSpecificData,
	}
}

func (d IFFFundamentalParameterData) toDis() dis.IFFFundamentalParameterData {
	return dis.IFFFundamentalParameterData{
		ERP: float32(d.ERP), Frequency: d.Frequency, PGRF: float32(d.PGRF), PulseWidth: float32(d.PulseWidth),
		BurstLength: uint32(d.BurstLength), ApplicableModes: d.ApplicableModes, SystemSpecificData: d.SystemSpecificData,
	}
}

func (d IFFFundamentalParameterData) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(iffParamERPBits, uint64(d.ERP)); err != nil {
		return err
	}
	if err := genericFloatCodec.write(w, d.Frequency); err != nil {
		return err
	}
	if err := w.WriteUnsigned(iffParamPGRFBits, uint64(d.PGRF)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(iffParamPulseWidthBits, uint64(d.PulseWidth)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(iffParamBurstLengthBits, uint64(d.BurstLength)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(iffParamModesBits, uint64(d.ApplicableModes)); err != nil {
		return err
	}
	for _, by := range d.SystemSpecificData {
		if err := w.WriteUnsigned(8, uint64(by)); err != nil {
			return err
		}
	}
	return nil
}

func readIFFFundamentalParameterData(r *bitio.Reader) (IFFFundamentalParameterData, error) {
	erp, err := r.Take(iffParamERPBits)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	freq, err := genericFloatCodec.read(r)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	pgrf, err := r.Take(iffParamPGRFBits)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	pulseWidth, err := r.Take(iffParamPulseWidthBits)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	burst, err := r.Take(iffParamBurstLengthBits)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	modes, err := r.Take(iffParamModesBits)
	if err != nil {
		return IFFFundamentalParameterData{}, err
	}
	var ssd [3]byte
	for i := range ssd {
		by, err := r.Take(8)
		if err != nil {
			return IFFFundamentalParameterData{}, err
		}
		ssd[i] = byte(by)
	}
	return IFFFundamentalParameterData{
		ERP: uint8(erp), Frequency: freq, PGRF: uint16(pgrf), PulseWidth: uint16(pulseWidth),
		BurstLength: uint16(burst), ApplicableModes: uint8(modes), SystemSpecificData: ssd,
	}, nil
}

// IFFLayer2 mirrors cdis-assemble's IffLayer2 (src/iff/writer.rs):
// BeamData, two operational-parameter bytes, and a UVINT8-counted array
// of IFFFundamentalParameterData (the Rust source writes the count as a
// bare EIGHT_BITS field; UVINT8 keeps the count in the same family as
// every other array-length field this package writes).
type IFFLayer2 struct {
	BeamData              IFFBeamData
	OperationalParameter1 uint8
	OperationalParameter2 uint8
	FundamentalParameters []IFFFundamentalParameterData
}

func IFFLayer2FromDis(l dis.IFFLayer2) IFFLayer2 {
	params := make([]IFFFundamentalParameterData, len(l.FundamentalParameters))
	for i, p := range l.FundamentalParameters {
		params[i] = iffFundamentalParameterDataFromDis(p)
	}
	return IFFLayer2{
		BeamData:              iffBeamDataFromDis(l.BeamData),
		OperationalParameter1: l.OperationalParameter1,
		OperationalParameter2: l.OperationalParameter2,
		FundamentalParameters: params,
	}
}

func (l IFFLayer2) ToDis() dis.IFFLayer2 {
	params := make([]dis.IFFFundamentalParameterData, len(l.FundamentalParameters))
	for i, p := range l.FundamentalParameters {
		params[i] = p.toDis()
	}
	return dis.IFFLayer2{
		BeamData:              l.BeamData.toDis(),
		OperationalParameter1: l.OperationalParameter1,
		OperationalParameter2: l.OperationalParameter2,
		FundamentalParameters: params,
	}
}

func (l IFFLayer2) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(1, 1); err != nil { // layer marker, always 1 for IffLayer2
		return err
	}
	if err := l.BeamData.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(l.OperationalParameter1)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(l.OperationalParameter2)); err != nil {
		return err
	}
	if err := varint.NewUVINT8(uint8(len(l.FundamentalParameters))).Write(w); err != nil {
		return err
	}
	for _, p := range l.FundamentalParameters {
		if err := p.write(w); err != nil {
			return err
		}
	}
	return nil
}

func readIFFLayer2(r *bitio.Reader) (IFFLayer2, error) {
	if _, err := r.Take(1); err != nil { // layer marker
		return IFFLayer2{}, err
	}
	beamData, err := readIFFBeamData(r)
	if err != nil {
		return IFFLayer2{}, err
	}
	op1, err := r.Take(8)
	if err != nil {
		return IFFLayer2{}, err
	}
	op2, err := r.Take(8)
	if err != nil {
		return IFFLayer2{}, err
	}
	count, err := varint.ReadUVINT8(r)
	if err != nil {
		return IFFLayer2{}, err
	}
	params := make([]IFFFundamentalParameterData, 0, count.Value)
	for i := uint8(0); i < count.Value; i++ {
		p, err := readIFFFundamentalParameterData(r)
		if err != nil {
			return IFFLayer2{}, err
		}
		params = append(params, p)
	}
	return IFFLayer2{BeamData: beamData, OperationalParameter1: uint8(op1), OperationalParameter2: uint8(op2), FundamentalParameters: params}, nil
}

const (
	iffLayer2Present           uint32 = 1 << 0
	iffAdditionalLayersPresent uint32 = 1 << 1
	iffFieldsPresentBits              = 2
)

// IFFBody is the C-DIS form of dis.IFFBody: Layer 1 and Layer 2 are
// interpreted structurally; any layers beyond that (Mode 5 Message
// Formats, Mode S, Miscellaneous) are carried opaquely, since
// cdis-assemble's own IffLayer3/IffLayer4/IffLayer5 serializers are
// unimplemented (src/iff/writer.rs: each is a bare todo!()) — see
// DESIGN.md. Both optional blocks are gated by a fields-present bitmap
// rather than always reserving the layer header bytes the DIS side
// needs purely for self-describing length.
type IFFBody struct {
	EmittingEntityID           EntityId
	EventID                    EventId
	RelativeAntennaLocation    EntityCoordinateVector
	SystemID                   IFFSystemID
	FundamentalOperationalData IFFFundamentalOperationalData
	Layer2                     *IFFLayer2
	AdditionalLayers           []byte
}

func (b IFFBody) PduType() dis.PduType { return dis.PduTypeIFF }

func (b IFFBody) write(w *bitio.Writer) error {
	if err := validateIFFSystemID(b.SystemID); err != nil {
		return err
	}
	present := uint32(0)
	if b.Layer2 != nil {
		present |= iffLayer2Present
	}
	if len(b.AdditionalLayers) > 0 {
		present |= iffAdditionalLayersPresent
	}
	if err := w.WriteUnsigned(iffFieldsPresentBits, uint64(present)); err != nil {
		return err
	}
	if err := b.EmittingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := b.RelativeAntennaLocation.write(w); err != nil {
		return err
	}
	if err := b.SystemID.write(w); err != nil {
		return err
	}
	if err := b.FundamentalOperationalData.write(w); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(present&iffLayer2Present != 0, func() error {
		return b.Layer2.write(w)
	}); err != nil {
		return err
	}
	return bitio.WriteWhenPresent(present&iffAdditionalLayersPresent != 0, func() error {
		if err := varint.NewUVINT16(uint16(len(b.AdditionalLayers))).Write(w); err != nil {
			return err
		}
		for _, by := range b.AdditionalLayers {
			if err := w.WriteUnsigned(8, uint64(by)); err != nil {
				return err
			}
		}
		return nil
	})
}

func parseIFFBody(h Header, r *bitio.Reader) (Body, error) {
	present, err := r.Take(iffFieldsPresentBits)
	if err != nil {
		return nil, err
	}
	emitting, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	location, err := readEntityCoordinateVector(r)
	if err != nil {
		return nil, err
	}
	systemID, err := readIFFSystemID(r)
	if err != nil {
		return nil, err
	}
	if err := validateIFFSystemID(systemID); err != nil {
		return nil, err
	}
	fod, err := readIFFFundamentalOperationalData(r)
	if err != nil {
		return nil, err
	}
	layer2, _, err := bitio.ReadWhenPresent(uint32(present), iffLayer2Present, func() (*IFFLayer2, error) {
		l, err := readIFFLayer2(r)
		if err != nil {
			return nil, err
		}
		return &l, nil
	})
	if err != nil {
		return nil, err
	}
	additional, _, err := bitio.ReadWhenPresent(uint32(present), iffAdditionalLayersPresent, func() ([]byte, error) {
		count, err := varint.ReadUVINT16(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, count.Value)
		for i := range buf {
			b, err := r.Take(8)
			if err != nil {
				return nil, err
			}
			buf[i] = byte(b)
		}
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return IFFBody{
		EmittingEntityID: emitting, EventID: event, RelativeAntennaLocation: location,
		SystemID: systemID, FundamentalOperationalData: fod, Layer2: layer2, AdditionalLayers: additional,
	}, nil
}
