package dis

// FundamentalParameterData carries one beam's RF parameters, per IEEE
// 1278.1 section 6.2.22.
type FundamentalParameterData struct {
	Frequency           float32
	FrequencyRange      float32
	ERP                 float32
	PRF                 float32
	PulseWidth          float32
	BeamAzimuthCenter   float32
	BeamAzimuthSweep    float32
	BeamElevationCenter float32
	BeamElevationSweep  float32
	SweepSync           float32
}

func (f FundamentalParameterData) write(w *ByteWriter) error {
	vals := []float32{
		f.Frequency, f.FrequencyRange, f.ERP, f.PRF, f.PulseWidth,
		f.BeamAzimuthCenter, f.BeamAzimuthSweep, f.BeamElevationCenter, f.BeamElevationSweep, f.SweepSync,
	}
	for _, v := range vals {
		if err := w.WriteFloat32(v); err != nil {
			return err
		}
	}
	return nil
}

func readFundamentalParameterData(r *ByteReader) (FundamentalParameterData, error) {
	var vals [10]float32
	for i := range vals {
		v, err := r.ReadFloat32()
		if err != nil {
			return FundamentalParameterData{}, err
		}
		vals[i] = v
	}
	return FundamentalParameterData{
		Frequency: vals[0], FrequencyRange: vals[1], ERP: vals[2], PRF: vals[3], PulseWidth: vals[4],
		BeamAzimuthCenter: vals[5], BeamAzimuthSweep: vals[6], BeamElevationCenter: vals[7],
		BeamElevationSweep: vals[8], SweepSync: vals[9],
	}, nil
}

// TrackJamTarget names one entity a jamming beam is directed at, per IEEE
// 1278.1 section 6.2.86.
type TrackJamTarget struct {
	EntityID      EntityId
	EmitterNumber uint8
	BeamNumber    uint8
}

const trackJamTargetBytes = 8

func (t TrackJamTarget) write(w *ByteWriter) error {
	if err := t.EntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(t.EmitterNumber); err != nil {
		return err
	}
	return w.WriteUint8(t.BeamNumber)
}

func readTrackJamTarget(r *ByteReader) (TrackJamTarget, error) {
	id, err := readEntityId(r)
	if err != nil {
		return TrackJamTarget{}, err
	}
	emitter, err := r.ReadUint8()
	if err != nil {
		return TrackJamTarget{}, err
	}
	beam, err := r.ReadUint8()
	if err != nil {
		return TrackJamTarget{}, err
	}
	return TrackJamTarget{EntityID: id, EmitterNumber: emitter, BeamNumber: beam}, nil
}

// EmitterBeam is one radiating beam of an emitter system, per IEEE 1278.1
// section 6.2.17.
type EmitterBeam struct {
	BeamIDNumber          uint8
	ParameterIndex        uint16
	FundamentalParameters FundamentalParameterData
	BeamFunction          uint8
	HighDensityTrackJam   uint8
	JammingTechnique      uint32
	TrackJamTargets       []TrackJamTarget
}

const beamFixedBytes = 1 + 1 + 2 + 40 + 1 + 1 + 1 + 1 + 4 // DataLength+ID+ParamIdx+FPD+Function+NumTargets+HDTJ+pad+Jamming

func (b EmitterBeam) byteLen() int { return beamFixedBytes + len(b.TrackJamTargets)*trackJamTargetBytes }

func (b EmitterBeam) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(b.byteLen() / 4)); err != nil {
		return err
	}
	if err := w.WriteUint8(b.BeamIDNumber); err != nil {
		return err
	}
	if err := w.WriteUint16(b.ParameterIndex); err != nil {
		return err
	}
	if err := b.FundamentalParameters.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(b.BeamFunction); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(b.TrackJamTargets))); err != nil {
		return err
	}
	if err := w.WriteUint8(b.HighDensityTrackJam); err != nil {
		return err
	}
	if err := w.Pad(1); err != nil {
		return err
	}
	if err := w.WriteUint32(b.JammingTechnique); err != nil {
		return err
	}
	for _, t := range b.TrackJamTargets {
		if err := t.write(w); err != nil {
			return err
		}
	}
	return nil
}

func readEmitterBeam(r *ByteReader) (EmitterBeam, error) {
	if _, err := r.ReadUint8(); err != nil { // beam data length, derivable from targets count, re-verified below
		return EmitterBeam{}, err
	}
	id, err := r.ReadUint8()
	if err != nil {
		return EmitterBeam{}, err
	}
	paramIdx, err := r.ReadUint16()
	if err != nil {
		return EmitterBeam{}, err
	}
	fpd, err := readFundamentalParameterData(r)
	if err != nil {
		return EmitterBeam{}, err
	}
	function, err := r.ReadUint8()
	if err != nil {
		return EmitterBeam{}, err
	}
	numTargets, err := r.ReadUint8()
	if err != nil {
		return EmitterBeam{}, err
	}
	hdtj, err := r.ReadUint8()
	if err != nil {
		return EmitterBeam{}, err
	}
	if err := r.Skip(1); err != nil {
		return EmitterBeam{}, err
	}
	jamming, err := r.ReadUint32()
	if err != nil {
		return EmitterBeam{}, err
	}
	targets := make([]TrackJamTarget, 0, numTargets)
	for i := uint8(0); i < numTargets; i++ {
		t, err := readTrackJamTarget(r)
		if err != nil {
			return EmitterBeam{}, err
		}
		targets = append(targets, t)
	}
	return EmitterBeam{
		BeamIDNumber: id, ParameterIndex: paramIdx, FundamentalParameters: fpd,
		BeamFunction: function, HighDensityTrackJam: hdtj, JammingTechnique: jamming, TrackJamTargets: targets,
	}, nil
}

// EmitterSystem is one radar/jammer/etc. mounted on an emitting entity,
// per IEEE 1278.1 section 6.2.23. Name/Function/Number jointly identify
// the system the way EntityType identifies a platform; C-DIS keys its
// site/application de-duplication off the emitting entity's own EntityId,
// not this record.
type EmitterSystem struct {
	Name     uint16
	Function uint8
	Number   uint8
	Location VectorF32
	Beams    []EmitterBeam
}

const emitterSystemFixedBytes = 1 + 1 + 2 + 2 + 1 + 1 + 12 // DataLength+NumBeams+pad+Name+Function+Number+Location

func (s EmitterSystem) byteLen() int {
	total := emitterSystemFixedBytes
	for _, b := range s.Beams {
		total += b.byteLen()
	}
	return total
}

func (s EmitterSystem) write(w *ByteWriter) error {
	if err := w.WriteUint8(uint8(s.byteLen() / 4)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(s.Beams))); err != nil {
		return err
	}
	if err := w.Pad(2); err != nil {
		return err
	}
	if err := w.WriteUint16(s.Name); err != nil {
		return err
	}
	if err := w.WriteUint8(s.Function); err != nil {
		return err
	}
	if err := w.WriteUint8(s.Number); err != nil {
		return err
	}
	if err := s.Location.write(w); err != nil {
		return err
	}
	for _, b := range s.Beams {
		if err := b.write(w); err != nil {
			return err
		}
	}
	return nil
}

func readEmitterSystem(r *ByteReader) (EmitterSystem, error) {
	if _, err := r.ReadUint8(); err != nil { // system data length, re-derivable
		return EmitterSystem{}, err
	}
	numBeams, err := r.ReadUint8()
	if err != nil {
		return EmitterSystem{}, err
	}
	if err := r.Skip(2); err != nil {
		return EmitterSystem{}, err
	}
	name, err := r.ReadUint16()
	if err != nil {
		return EmitterSystem{}, err
	}
	function, err := r.ReadUint8()
	if err != nil {
		return EmitterSystem{}, err
	}
	number, err := r.ReadUint8()
	if err != nil {
		return EmitterSystem{}, err
	}
	location, err := readVectorF32(r)
	if err != nil {
		return EmitterSystem{}, err
	}
	beams := make([]EmitterBeam, 0, numBeams)
	for i := uint8(0); i < numBeams; i++ {
		b, err := readEmitterBeam(r)
		if err != nil {
			return EmitterSystem{}, err
		}
		beams = append(beams, b)
	}
	return EmitterSystem{Name: name, Function: function, Number: number, Location: location, Beams: beams}, nil
}

// ElectromagneticEmissionBody is the body of an ElectromagneticEmission
// PDU (IEEE 1278.1 section 5.3.7.1): the radar/jammer emission state of
// one entity's mounted systems and their beams.
type ElectromagneticEmissionBody struct {
	EmittingEntityID     EntityId
	EventID              EventId
	StateUpdateIndicator uint8
	Systems              []EmitterSystem
}

func (b ElectromagneticEmissionBody) PduType() PduType { return PduTypeElectromagneticEmission }

func (b ElectromagneticEmissionBody) write(w *ByteWriter) error {
	if err := b.EmittingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(b.StateUpdateIndicator); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(len(b.Systems))); err != nil {
		return err
	}
	if err := w.Pad(2); err != nil {
		return err
	}
	for _, s := range b.Systems {
		if err := s.write(w); err != nil {
			return err
		}
	}
	return nil
}

func parseElectromagneticEmissionBody(h Header, r *ByteReader) (Body, error) {
	emitting, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	stateUpdate, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	numSystems, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	systems := make([]EmitterSystem, 0, numSystems)
	for i := uint8(0); i < numSystems; i++ {
		s, err := readEmitterSystem(r)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}
	return ElectromagneticEmissionBody{
		EmittingEntityID: emitting, EventID: event, StateUpdateIndicator: stateUpdate, Systems: systems,
	}, nil
}
