package dis

// RadioEntityType mirrors EntityType's shape but names a radio system
// rather than a simulated entity, per IEEE 1278.1 section 6.2.68.
type RadioEntityType struct {
	Kind                EntityKind
	Domain              Domain
	Country             Country
	Category            Category
	NomenclatureVersion uint8
	Nomenclature        uint16
}

func (t RadioEntityType) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(t.Kind)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(t.Domain)); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(t.Country)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(t.Category)); err != nil {
		return err
	}
	if err := w.WriteUint8(t.NomenclatureVersion); err != nil {
		return err
	}
	return w.WriteUint16(t.Nomenclature)
}

func readRadioEntityType(r *ByteReader) (RadioEntityType, error) {
	kind, err := r.ReadUint8()
	if err != nil {
		return RadioEntityType{}, err
	}
	domain, err := r.ReadUint8()
	if err != nil {
		return RadioEntityType{}, err
	}
	country, err := r.ReadUint16()
	if err != nil {
		return RadioEntityType{}, err
	}
	category, err := r.ReadUint8()
	if err != nil {
		return RadioEntityType{}, err
	}
	version, err := r.ReadUint8()
	if err != nil {
		return RadioEntityType{}, err
	}
	nomenclature, err := r.ReadUint16()
	if err != nil {
		return RadioEntityType{}, err
	}
	return RadioEntityType{
		Kind: EntityKind(kind), Domain: Domain(domain), Country: Country(country),
		Category: Category(category), NomenclatureVersion: version, Nomenclature: nomenclature,
	}, nil
}

// ModulationType identifies the carrier modulation scheme, per IEEE
// 1278.1 section 6.2.59.
type ModulationType struct {
	SpreadSpectrum  uint16
	MajorModulation uint16
	Detail          uint16
	System          uint16
}

func (m ModulationType) write(w *ByteWriter) error {
	if err := w.WriteUint16(m.SpreadSpectrum); err != nil {
		return err
	}
	if err := w.WriteUint16(m.MajorModulation); err != nil {
		return err
	}
	if err := w.WriteUint16(m.Detail); err != nil {
		return err
	}
	return w.WriteUint16(m.System)
}

func readModulationType(r *ByteReader) (ModulationType, error) {
	ss, err := r.ReadUint16()
	if err != nil {
		return ModulationType{}, err
	}
	major, err := r.ReadUint16()
	if err != nil {
		return ModulationType{}, err
	}
	detail, err := r.ReadUint16()
	if err != nil {
		return ModulationType{}, err
	}
	system, err := r.ReadUint16()
	if err != nil {
		return ModulationType{}, err
	}
	return ModulationType{SpreadSpectrum: ss, MajorModulation: major, Detail: detail, System: system}, nil
}

// pad32 rounds n up to the next multiple of 4 bytes, the alignment the
// Transmitter PDU's variable-length parameter blocks require.
func pad32(n int) int {
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}
	return n
}

// TransmitterBody is the body of a Transmitter PDU (IEEE 1278.1
// section 5.3.8.2): describes one radio's configuration and its antenna
// and modulation parameters. Those parameter blocks are written with
// their lengths whatever the TransmitState; C-DIS sets the corresponding
// bitmap bits only when a block is non-empty.
type TransmitterBody struct {
	EntityID                   EntityId
	RadioID                    uint16
	RadioEntityType             RadioEntityType
	TransmitState               TransmitState
	InputSource                 InputSource
	AntennaLocation              WorldCoordinates
	RelativeAntennaLocation      VectorF32
	AntennaPatternType           uint16
	Frequency                    uint64
	TransmitFrequencyBandwidth   float32
	Power                        float32
	ModulationType               ModulationType
	CryptoSystem                 uint16
	CryptoKeyId                  uint16
	ModulationParameters         []byte
	AntennaPatternParameters     []byte
}

func (b TransmitterBody) PduType() PduType { return PduTypeTransmitter }

func (b TransmitterBody) write(w *ByteWriter) error {
	if err := b.EntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(b.RadioID); err != nil {
		return err
	}
	if err := b.RadioEntityType.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.TransmitState)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.InputSource)); err != nil {
		return err
	}
	if err := w.WriteUint16(0); err != nil {
		return err
	}
	if err := b.AntennaLocation.write(w); err != nil {
		return err
	}
	if err := b.RelativeAntennaLocation.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(b.AntennaPatternType); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(pad32(len(b.AntennaPatternParameters)) / 4)); err != nil {
		return err
	}
	if err := w.WriteUint64(b.Frequency); err != nil {
		return err
	}
	if err := w.WriteFloat32(b.TransmitFrequencyBandwidth); err != nil {
		return err
	}
	if err := w.WriteFloat32(b.Power); err != nil {
		return err
	}
	if err := b.ModulationType.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(b.CryptoSystem); err != nil {
		return err
	}
	if err := w.WriteUint16(b.CryptoKeyId); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(b.ModulationParameters))); err != nil {
		return err
	}
	if err := w.Pad(3); err != nil {
		return err
	}
	padded := make([]byte, pad32(len(b.ModulationParameters)))
	copy(padded, b.ModulationParameters)
	if err := w.WriteBytes(padded); err != nil {
		return err
	}
	antennaPadded := make([]byte, pad32(len(b.AntennaPatternParameters)))
	copy(antennaPadded, b.AntennaPatternParameters)
	return w.WriteBytes(antennaPadded)
}

func parseTransmitterBody(h Header, r *ByteReader) (Body, error) {
	entityID, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	radioID, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	radioEntityType, err := readRadioEntityType(r)
	if err != nil {
		return nil, err
	}
	transmitState, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	inputSource, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	antennaLoc, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	relativeLoc, err := readVectorF32(r)
	if err != nil {
		return nil, err
	}
	patternType, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	patternLengthWords, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	frequency, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	bandwidth, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	power, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	modType, err := readModulationType(r)
	if err != nil {
		return nil, err
	}
	cryptoSystem, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	cryptoKeyId, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	modParamLength, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(3); err != nil {
		return nil, err
	}
	modParams, err := r.ReadBytes(pad32(int(modParamLength)))
	if err != nil {
		return nil, err
	}
	antennaParams, err := r.ReadBytes(int(patternLengthWords) * 4)
	if err != nil {
		return nil, err
	}
	return TransmitterBody{
		EntityID: entityID, RadioID: radioID, RadioEntityType: radioEntityType,
		TransmitState: TransmitState(transmitState), InputSource: InputSource(inputSource),
		AntennaLocation: antennaLoc, RelativeAntennaLocation: relativeLoc,
		AntennaPatternType: patternType, Frequency: frequency,
		TransmitFrequencyBandwidth: bandwidth, Power: power, ModulationType: modType,
		CryptoSystem: cryptoSystem, CryptoKeyId: cryptoKeyId,
		ModulationParameters:     modParams[:modParamLength],
		AntennaPatternParameters: antennaParams,
	}, nil
}
