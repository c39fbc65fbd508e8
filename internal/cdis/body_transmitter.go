package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// RadioEntityType mirrors dis.RadioEntityType with its free-ranging
// components narrowed to UVINT.
type RadioEntityType struct {
	Kind                uint8
	Domain              uint8
	Country             uint16
	Category            varint.UVINT8
	NomenclatureVersion uint8
	Nomenclature        varint.UVINT16
}

func (t RadioEntityType) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(t.Kind)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(t.Domain)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(16, uint64(t.Country)); err != nil {
		return err
	}
	if err := t.Category.Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(t.NomenclatureVersion)); err != nil {
		return err
	}
	return t.Nomenclature.Write(w)
}

func readRadioEntityType(r *bitio.Reader) (RadioEntityType, error) {
	kind, err := r.Take(8)
	if err != nil {
		return RadioEntityType{}, err
	}
	domain, err := r.Take(8)
	if err != nil {
		return RadioEntityType{}, err
	}
	country, err := r.Take(16)
	if err != nil {
		return RadioEntityType{}, err
	}
	category, err := varint.ReadUVINT8(r)
	if err != nil {
		return RadioEntityType{}, err
	}
	version, err := r.Take(8)
	if err != nil {
		return RadioEntityType{}, err
	}
	nomenclature, err := varint.ReadUVINT16(r)
	if err != nil {
		return RadioEntityType{}, err
	}
	return RadioEntityType{
		Kind: uint8(kind), Domain: uint8(domain), Country: uint16(country),
		Category: category, NomenclatureVersion: uint8(version), Nomenclature: nomenclature,
	}, nil
}

// ModulationType mirrors dis.ModulationType, UVINT16-packed.
type ModulationType struct {
	SpreadSpectrum  varint.UVINT16
	MajorModulation varint.UVINT16
	Detail          varint.UVINT16
	System          varint.UVINT16
}

func (m ModulationType) write(w *bitio.Writer) error {
	if err := m.SpreadSpectrum.Write(w); err != nil {
		return err
	}
	if err := m.MajorModulation.Write(w); err != nil {
		return err
	}
	if err := m.Detail.Write(w); err != nil {
		return err
	}
	return m.System.Write(w)
}

func readModulationType(r *bitio.Reader) (ModulationType, error) {
	ss, err := varint.ReadUVINT16(r)
	if err != nil {
		return ModulationType{}, err
	}
	major, err := varint.ReadUVINT16(r)
	if err != nil {
		return ModulationType{}, err
	}
	detail, err := varint.ReadUVINT16(r)
	if err != nil {
		return ModulationType{}, err
	}
	system, err := varint.ReadUVINT16(r)
	if err != nil {
		return ModulationType{}, err
	}
	return ModulationType{SpreadSpectrum: ss, MajorModulation: major, Detail: detail, System: system}, nil
}

const (
	transmitterModulationParamsPresent uint32 = 1 << 0
	transmitterAntennaParamsPresent    uint32 = 1 << 1
	transmitterFieldsPresentBits               = 2

	transmitterFrequencyBits = 40
)

// TransmitterBody is the C-DIS form of dis.TransmitterBody. The optional
// antenna-pattern and modulation-parameter blocks are gated by a
// fields-present bitmap rather than always-present 4-byte-aligned length
// fields, since most radios key silent (TransmitState == off) most of the
// time and carry neither block.
type TransmitterBody struct {
	EntityID                   EntityId
	RadioID                    varint.UVINT16
	RadioEntityType            RadioEntityType
	TransmitState              uint8
	InputSource                uint8
	AntennaLocation            WorldCoordinates
	RelativeAntennaLocation    EntityCoordinateVector
	AntennaPatternType         varint.UVINT16
	Frequency                  uint64
	TransmitFrequencyBandwidth float32
	Power                      uint8
	ModulationType             ModulationType
	CryptoSystem               varint.UVINT16
	CryptoKeyId                varint.UVINT16
	ModulationParameters       []byte
	AntennaPatternParameters   []byte
}

func (b TransmitterBody) PduType() dis.PduType { return dis.PduTypeTransmitter }

func (b TransmitterBody) write(w *bitio.Writer) error {
	present := uint32(0)
	if len(b.ModulationParameters) > 0 {
		present |= transmitterModulationParamsPresent
	}
	if len(b.AntennaPatternParameters) > 0 {
		present |= transmitterAntennaParamsPresent
	}
	if err := w.WriteUnsigned(transmitterFieldsPresentBits, uint64(present)); err != nil {
		return err
	}
	if err := b.EntityID.write(w); err != nil {
		return err
	}
	if err := b.RadioID.Write(w); err != nil {
		return err
	}
	if err := b.RadioEntityType.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.TransmitState)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.InputSource)); err != nil {
		return err
	}
	if err := b.AntennaLocation.write(w); err != nil {
		return err
	}
	if err := b.RelativeAntennaLocation.write(w); err != nil {
		return err
	}
	if err := b.AntennaPatternType.Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(transmitterFrequencyBits, b.Frequency); err != nil {
		return err
	}
	if err := pulseWidthFloatCodec.write(w, b.TransmitFrequencyBandwidth); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.Power)); err != nil {
		return err
	}
	if err := b.ModulationType.write(w); err != nil {
		return err
	}
	if err := b.CryptoSystem.Write(w); err != nil {
		return err
	}
	if err := b.CryptoKeyId.Write(w); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(present&transmitterModulationParamsPresent != 0, func() error {
		if err := varint.NewUVINT8(uint8(len(b.ModulationParameters))).Write(w); err != nil {
			return err
		}
		for _, by := range b.ModulationParameters {
			if err := w.WriteUnsigned(8, uint64(by)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return bitio.WriteWhenPresent(present&transmitterAntennaParamsPresent != 0, func() error {
		if err := varint.NewUVINT8(uint8(len(b.AntennaPatternParameters))).Write(w); err != nil {
			return err
		}
		for _, by := range b.AntennaPatternParameters {
			if err := w.WriteUnsigned(8, uint64(by)); err != nil {
				return err
			}
		}
		return nil
	})
}

func parseTransmitterBody(h Header, r *bitio.Reader) (Body, error) {
	present, err := r.Take(transmitterFieldsPresentBits)
	if err != nil {
		return nil, err
	}
	entityID, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	radioID, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	radioEntityType, err := readRadioEntityType(r)
	if err != nil {
		return nil, err
	}
	transmitState, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	inputSource, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	antennaLoc, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	relativeLoc, err := readEntityCoordinateVector(r)
	if err != nil {
		return nil, err
	}
	patternType, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	frequency, err := r.Take(transmitterFrequencyBits)
	if err != nil {
		return nil, err
	}
	bandwidth, err := pulseWidthFloatCodec.read(r)
	if err != nil {
		return nil, err
	}
	power, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	modType, err := readModulationType(r)
	if err != nil {
		return nil, err
	}
	cryptoSystem, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	cryptoKeyId, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	modParams, _, err := bitio.ReadWhenPresent(uint32(present), transmitterModulationParamsPresent, func() ([]byte, error) {
		count, err := varint.ReadUVINT8(r)
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
	antennaParams, _, err := bitio.ReadWhenPresent(uint32(present), transmitterAntennaParamsPresent, func() ([]byte, error) {
		count, err := varint.ReadUVINT8(r)
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
	return TransmitterBody{
		EntityID: entityID, RadioID: radioID, RadioEntityType: radioEntityType,
		TransmitState: uint8(transmitState), InputSource: uint8(inputSource),
		AntennaLocation: antennaLoc, RelativeAntennaLocation: relativeLoc,
		AntennaPatternType: patternType, Frequency: frequency,
		TransmitFrequencyBandwidth: bandwidth, Power: uint8(power), ModulationType: modType,
		CryptoSystem: cryptoSystem, CryptoKeyId: cryptoKeyId,
		ModulationParameters:     modParams,
		AntennaPatternParameters: antennaParams,
	}, nil
}
