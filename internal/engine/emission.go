package engine

import (
	"sort"

	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
	"github.com/google/go-cmp/cmp"
)

// SiteAppPair is a deduplicated (site, application) simulation address,
// per spec.md section 4.6's site_app_pairs table: entities sharing a site
// and application are jammed/tracked under one table entry rather than
// repeating the pair per track-jam target.
type SiteAppPair struct {
	Site        uint16
	Application uint16
}

// DeduplicateSiteAppPairs reduces a list of track-jam entity ids to the
// sorted, unique list of (site, application) pairs they name. The
// resulting index (position in the returned slice) is what beams
// reference in place of repeating the full pair.
func DeduplicateSiteAppPairs(entityIDs []dis.EntityId) []SiteAppPair {
	seen := make(map[SiteAppPair]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		seen[SiteAppPair{Site: id.Site, Application: id.Application}] = struct{}{}
	}
	pairs := make([]SiteAppPair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Site != pairs[j].Site {
			return pairs[i].Site < pairs[j].Site
		}
		return pairs[i].Application < pairs[j].Application
	})
	return pairs
}

func emissionKey(b dis.ElectromagneticEmissionBody) dis.EntityId { return b.EmittingEntityID }

func fundamentalParameterDataFromDis(f dis.FundamentalParameterData) cdis.FundamentalParameterData {
	return cdis.FundamentalParameterData{
		Frequency: f.Frequency, FrequencyRange: f.FrequencyRange, ERP: f.ERP, PRF: f.PRF, PulseWidth: f.PulseWidth,
		BeamAzimuthCenter: f.BeamAzimuthCenter, BeamAzimuthSweep: f.BeamAzimuthSweep,
		BeamElevationCenter: f.BeamElevationCenter, BeamElevationSweep: f.BeamElevationSweep, SweepSync: f.SweepSync,
	}
}

func fundamentalParameterDataToDis(f cdis.FundamentalParameterData) dis.FundamentalParameterData {
	return dis.FundamentalParameterData{
		Frequency: f.Frequency, FrequencyRange: f.FrequencyRange, ERP: f.ERP, PRF: f.PRF, PulseWidth: f.PulseWidth,
		BeamAzimuthCenter: f.BeamAzimuthCenter, BeamAzimuthSweep: f.BeamAzimuthSweep,
		BeamElevationCenter: f.BeamElevationCenter, BeamElevationSweep: f.BeamElevationSweep, SweepSync: f.SweepSync,
	}
}

func trackJamTargetFromDis(t dis.TrackJamTarget) cdis.TrackJamTarget {
	return cdis.TrackJamTarget{EntityID: cdis.EntityIdFromDis(t.EntityID), EmitterNumber: t.EmitterNumber, BeamNumber: t.BeamNumber}
}

func trackJamTargetToDis(t cdis.TrackJamTarget) dis.TrackJamTarget {
	return dis.TrackJamTarget{EntityID: t.EntityID.ToDis(), EmitterNumber: t.EmitterNumber, BeamNumber: t.BeamNumber}
}

// emitterBeamFromDis converts one beam to its C-DIS form, consulting
// params for the fundamental/beam-data re-indexing spec.md's EE
// partial-update model requires: if entity already has an identical
// FundamentalParameterData cached at some index, the beam references
// that index and omits the data; otherwise it claims the next free
// index, carries the data in full, and records it in params for later
// beams (this one's own future re-appearances included) to reuse.
func emitterBeamFromDis(params *EmissionParameterCache, entity dis.EntityId, b dis.EmitterBeam) cdis.EmitterBeam {
	targets := make([]cdis.TrackJamTarget, len(b.TrackJamTargets))
	for i, t := range b.TrackJamTargets {
		targets[i] = trackJamTargetFromDis(t)
	}

	index := params.indexOf(entity, b.FundamentalParameters)
	present := index < 0
	if present {
		index = int(params.nextIndex(entity))
		params.store(entity, uint16(index), b.FundamentalParameters)
	}

	return cdis.EmitterBeam{
		BeamIDNumber:          b.BeamIDNumber,
		ParameterIndex:        varint.NewUVINT16(uint16(index)),
		ParametersPresent:     present,
		FundamentalParameters: fundamentalParameterDataFromDis(b.FundamentalParameters),
		BeamFunction:          b.BeamFunction,
		HighDensityTrackJam:   b.HighDensityTrackJam,
		JammingTechnique:      b.JammingTechnique,
		TrackJamTargets:       targets,
	}
}

// emitterBeamToDis is the inverse of emitterBeamFromDis: when the wire
// form omits FundamentalParameters, it is restored from params at
// ParameterIndex; when present, params is updated so later beams (and a
// later decode of this same beam's own re-appearance) can reuse it.
func emitterBeamToDis(params *EmissionParameterCache, entity dis.EntityId, b cdis.EmitterBeam) dis.EmitterBeam {
	targets := make([]dis.TrackJamTarget, len(b.TrackJamTargets))
	for i, t := range b.TrackJamTargets {
		targets[i] = trackJamTargetToDis(t)
	}

	var data dis.FundamentalParameterData
	if b.ParametersPresent {
		data = fundamentalParameterDataToDis(b.FundamentalParameters)
		params.store(entity, b.ParameterIndex.Value, data)
	} else {
		data = params.lookup(entity, b.ParameterIndex.Value)
	}

	return dis.EmitterBeam{
		BeamIDNumber:          b.BeamIDNumber,
		ParameterIndex:        b.ParameterIndex.Value,
		FundamentalParameters: data,
		BeamFunction:          b.BeamFunction,
		HighDensityTrackJam:   b.HighDensityTrackJam,
		JammingTechnique:      b.JammingTechnique,
		TrackJamTargets:       targets,
	}
}

func emitterSystemFromDis(params *EmissionParameterCache, entity dis.EntityId, s dis.EmitterSystem) cdis.EmitterSystem {
	beams := make([]cdis.EmitterBeam, len(s.Beams))
	for i, b := range s.Beams {
		beams[i] = emitterBeamFromDis(params, entity, b)
	}
	return cdis.EmitterSystem{
		Name:     varint.NewUVINT16(s.Name),
		Function: s.Function,
		Number:   s.Number,
		Location: cdis.LinearVelocityFromDis(s.Location),
		Beams:    beams,
	}
}

func emitterSystemToDis(params *EmissionParameterCache, entity dis.EntityId, s cdis.EmitterSystem) dis.EmitterSystem {
	beams := make([]dis.EmitterBeam, len(s.Beams))
	for i, b := range s.Beams {
		beams[i] = emitterBeamToDis(params, entity, b)
	}
	return dis.EmitterSystem{
		Name:     s.Name.Value,
		Function: s.Function,
		Number:   s.Number,
		Location: s.Location.ToDis(),
		Beams:    beams,
	}
}

// EncodeElectromagneticEmission converts a DIS ElectromagneticEmission
// body to C-DIS, applying the same whole-body heartbeat policy as
// Transmitter/IFF/Designator for the decision of whether this PDU is
// worth sending at all. Independently of that decision, every beam's
// FundamentalParameterData is re-indexed against params: a beam whose
// data is identical to data already cached for that emitting entity, at
// whatever ParameterIndex, omits it from the wire entirely, per spec.md
// section 4.6's fundamental_params/beam_data cache. The site_app_pairs
// deduplication described by that section is exposed separately via
// DeduplicateSiteAppPairs, which this encoder does not call.
func EncodeElectromagneticEmission(cache *GenericCache[dis.ElectromagneticEmissionBody], params *EmissionParameterCache, body dis.ElectromagneticEmissionBody, opts Options) (cdis.ElectromagneticEmissionBody, StateChange, error) {
	now := cache.clock.Now()
	entry, cached := cache.entries[emissionKey(body)]
	threshold := opts.Federation.emissionThreshold()
	full := opts.Mode == FullUpdate || !cached || now.Sub(entry.lastHeartbeat) > threshold || !cmp.Equal(entry.body, body)

	entityID := cdis.EntityIdFromDis(body.EmittingEntityID)
	systems := make([]cdis.EmitterSystem, len(body.Systems))
	for i, s := range body.Systems {
		systems[i] = emitterSystemFromDis(params, body.EmittingEntityID, s)
	}
	out := cdis.ElectromagneticEmissionBody{
		EmittingEntityID:     entityID,
		EventID:              cdis.EventIdFromDis(body.EventID),
		StateUpdateIndicator: body.StateUpdateIndicator,
		Systems:              systems,
	}

	change := StateChange{Kind: StateUnaffected}
	if full {
		change.Kind = StateUpdate
		cache.entries[emissionKey(body)] = genericEntry[dis.ElectromagneticEmissionBody]{lastHeartbeat: now, body: body}
	}
	return out, change, nil
}

// DecodeElectromagneticEmission is the inverse of
// EncodeElectromagneticEmission: each beam's FundamentalParameterData is
// restored from params when the wire form omitted it, and params is
// kept current for every beam carried in full so a later omission can
// be resolved.
func DecodeElectromagneticEmission(cache *GenericCache[dis.ElectromagneticEmissionBody], params *EmissionParameterCache, body cdis.ElectromagneticEmissionBody) (dis.ElectromagneticEmissionBody, StateChange, error) {
	entityID := body.EmittingEntityID.ToDis()

	systems := make([]dis.EmitterSystem, len(body.Systems))
	for i, s := range body.Systems {
		systems[i] = emitterSystemToDis(params, entityID, s)
	}
	out := dis.ElectromagneticEmissionBody{
		EmittingEntityID:     entityID,
		EventID:              body.EventID.ToDis(),
		StateUpdateIndicator: body.StateUpdateIndicator,
		Systems:              systems,
	}

	change := StateChange{Kind: StateUpdate}
	now := cache.clock.Now()
	cache.entries[entityID] = genericEntry[dis.ElectromagneticEmissionBody]{lastHeartbeat: now, body: out}
	return out, change, nil
}
