package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// FundamentalParameterData mirrors dis.FundamentalParameterData, every
// field compressed-float encoded.
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

// fundamentalParameterCodecs pairs each field with the CDISFloat width
// cdis-assemble grounds it on: Frequency/FrequencyRange use
// FrequencyFloat's 17/4 split, PulseWidth uses PulseWidthFloat's 14/3
// split, and the remaining fields (no per-field constant found in the
// retrieved source) fall back to genericFloatCodec.
var fundamentalParameterCodecs = [10]CDISFloat{
	frequencyFloatCodec,  // Frequency
	frequencyFloatCodec,  // FrequencyRange
	genericFloatCodec,    // ERP
	genericFloatCodec,    // PRF
	pulseWidthFloatCodec, // PulseWidth
	genericFloatCodec,    // BeamAzimuthCenter
	genericFloatCodec,    // BeamAzimuthSweep
	genericFloatCodec,    // BeamElevationCenter
	genericFloatCodec,    // BeamElevationSweep
	genericFloatCodec,    // SweepSync
}

func (f FundamentalParameterData) write(w *bitio.Writer) error {
	vals := []float32{
		f.Frequency, f.FrequencyRange, f.ERP, f.PRF, f.PulseWidth,
		f.BeamAzimuthCenter, f.BeamAzimuthSweep, f.BeamElevationCenter, f.BeamElevationSweep, f.SweepSync,
	}
	for i, v := range vals {
		if err := fundamentalParameterCodecs[i].write(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readFundamentalParameterData(r *bitio.Reader) (FundamentalParameterData, error) {
	var vals [10]float32
	for i := range vals {
		v, err := fundamentalParameterCodecs[i].read(r)
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

// boolBit packs b into a single wire bit.
func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// TrackJamTarget mirrors dis.TrackJamTarget.
type TrackJamTarget struct {
	EntityID      EntityId
	EmitterNumber uint8
	BeamNumber    uint8
}

func (t TrackJamTarget) write(w *bitio.Writer) error {
	if err := t.EntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(t.EmitterNumber)); err != nil {
		return err
	}
	return w.WriteUnsigned(8, uint64(t.BeamNumber))
}

func readTrackJamTarget(r *bitio.Reader) (TrackJamTarget, error) {
	id, err := readEntityId(r)
	if err != nil {
		return TrackJamTarget{}, err
	}
	emitter, err := r.Take(8)
	if err != nil {
		return TrackJamTarget{}, err
	}
	beam, err := r.Take(8)
	if err != nil {
		return TrackJamTarget{}, err
	}
	return TrackJamTarget{EntityID: id, EmitterNumber: uint8(emitter), BeamNumber: uint8(beam)}, nil
}

// EmitterBeam mirrors dis.EmitterBeam. The per-record byte-length prefix
// dis-rs carries (re-derivable from the target count) is dropped here;
// C-DIS PDUs are parsed structurally, not skip-scanned, so no decoder
// ever needs to jump over a beam it doesn't understand.
//
// FundamentalParameters is the re-indexing cache's unit of reuse: this
// gateway's FundamentalParameterData already folds the Rust model's
// separate FundamentalParameter and BeamData records into one struct
// (see its doc comment), so ParameterIndex serves as both the
// fundamental_params_index and beam_data_index back-reference the
// record model keeps distinct. ParametersPresent governs whether
// FundamentalParameters is actually carried on the wire for this beam;
// when false the value at ParameterIndex in the per-entity cache
// (internal/engine) applies instead, per spec.md's EE partial-update
// model.
type EmitterBeam struct {
	BeamIDNumber          uint8
	ParameterIndex        varint.UVINT16
	ParametersPresent     bool
	FundamentalParameters FundamentalParameterData
	BeamFunction          uint8
	HighDensityTrackJam   uint8
	JammingTechnique      uint32
	TrackJamTargets       []TrackJamTarget
}

func (b EmitterBeam) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(b.BeamIDNumber)); err != nil {
		return err
	}
	if err := b.ParameterIndex.Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(1, boolBit(b.ParametersPresent)); err != nil {
		return err
	}
	if err := bitio.WriteWhenPresent(b.ParametersPresent, func() error {
		return b.FundamentalParameters.write(w)
	}); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.BeamFunction)); err != nil {
		return err
	}
	if err := varint.NewUVINT8(uint8(len(b.TrackJamTargets))).Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.HighDensityTrackJam)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(32, uint64(b.JammingTechnique)); err != nil {
		return err
	}
	for _, t := range b.TrackJamTargets {
		if err := t.write(w); err != nil {
			return err
		}
	}
	return nil
}

func readEmitterBeam(r *bitio.Reader) (EmitterBeam, error) {
	id, err := r.Take(8)
	if err != nil {
		return EmitterBeam{}, err
	}
	paramIdx, err := varint.ReadUVINT16(r)
	if err != nil {
		return EmitterBeam{}, err
	}
	presentBit, err := r.Take(1)
	if err != nil {
		return EmitterBeam{}, err
	}
	present := presentBit != 0
	fpd, _, err := bitio.ReadWhenPresent(uint32(presentBit), 1, func() (FundamentalParameterData, error) {
		return readFundamentalParameterData(r)
	})
	if err != nil {
		return EmitterBeam{}, err
	}
	function, err := r.Take(8)
	if err != nil {
		return EmitterBeam{}, err
	}
	numTargets, err := varint.ReadUVINT8(r)
	if err != nil {
		return EmitterBeam{}, err
	}
	hdtj, err := r.Take(8)
	if err != nil {
		return EmitterBeam{}, err
	}
	jamming, err := r.Take(32)
	if err != nil {
		return EmitterBeam{}, err
	}
	targets := make([]TrackJamTarget, 0, numTargets.Value)
	for i := uint8(0); i < numTargets.Value; i++ {
		t, err := readTrackJamTarget(r)
		if err != nil {
			return EmitterBeam{}, err
		}
		targets = append(targets, t)
	}
	return EmitterBeam{
		BeamIDNumber: uint8(id), ParameterIndex: paramIdx, ParametersPresent: present, FundamentalParameters: fpd,
		BeamFunction: uint8(function), HighDensityTrackJam: uint8(hdtj), JammingTechnique: uint32(jamming), TrackJamTargets: targets,
	}, nil
}

// EmitterSystem mirrors dis.EmitterSystem. As on the DIS side, C-DIS keys
// its site/application de-duplication (internal/engine) off the emitting
// entity's own EntityId, not this record.
type EmitterSystem struct {
	Name     varint.UVINT16
	Function uint8
	Number   uint8
	Location LinearVelocity
	Beams    []EmitterBeam
}

func (s EmitterSystem) write(w *bitio.Writer) error {
	if err := varint.NewUVINT8(uint8(len(s.Beams))).Write(w); err != nil {
		return err
	}
	if err := s.Name.Write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(s.Function)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(s.Number)); err != nil {
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

func readEmitterSystem(r *bitio.Reader) (EmitterSystem, error) {
	numBeams, err := varint.ReadUVINT8(r)
	if err != nil {
		return EmitterSystem{}, err
	}
	name, err := varint.ReadUVINT16(r)
	if err != nil {
		return EmitterSystem{}, err
	}
	function, err := r.Take(8)
	if err != nil {
		return EmitterSystem{}, err
	}
	number, err := r.Take(8)
	if err != nil {
		return EmitterSystem{}, err
	}
	location, err := readLinearVelocity(r)
	if err != nil {
		return EmitterSystem{}, err
	}
	beams := make([]EmitterBeam, 0, numBeams.Value)
	for i := uint8(0); i < numBeams.Value; i++ {
		b, err := readEmitterBeam(r)
		if err != nil {
			return EmitterSystem{}, err
		}
		beams = append(beams, b)
	}
	return EmitterSystem{Name: name, Function: uint8(function), Number: uint8(number), Location: location, Beams: beams}, nil
}

// ElectromagneticEmissionBody is the C-DIS form of
// dis.ElectromagneticEmissionBody.
type ElectromagneticEmissionBody struct {
	EmittingEntityID     EntityId
	EventID              EventId
	StateUpdateIndicator uint8
	Systems              []EmitterSystem
}

func (b ElectromagneticEmissionBody) PduType() dis.PduType {
	return dis.PduTypeElectromagneticEmission
}

func (b ElectromagneticEmissionBody) write(w *bitio.Writer) error {
	if err := b.EmittingEntityID.write(w); err != nil {
		return err
	}
	if err := b.EventID.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.StateUpdateIndicator)); err != nil {
		return err
	}
	if err := varint.NewUVINT8(uint8(len(b.Systems))).Write(w); err != nil {
		return err
	}
	for _, s := range b.Systems {
		if err := s.write(w); err != nil {
			return err
		}
	}
	return nil
}

func parseElectromagneticEmissionBody(h Header, r *bitio.Reader) (Body, error) {
	emitting, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	event, err := readEventId(r)
	if err != nil {
		return nil, err
	}
	stateUpdate, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	numSystems, err := varint.ReadUVINT8(r)
	if err != nil {
		return nil, err
	}
	systems := make([]EmitterSystem, 0, numSystems.Value)
	for i := uint8(0); i < numSystems.Value; i++ {
		s, err := readEmitterSystem(r)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}
	return ElectromagneticEmissionBody{
		EmittingEntityID: emitting, EventID: event, StateUpdateIndicator: uint8(stateUpdate), Systems: systems,
	}, nil
}
