package engine

import (
	"math"

	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/geodetic"
	"github.com/dis-interop/cdis-gateway/internal/units"
	"github.com/dis-interop/cdis-gateway/internal/varint"
	"github.com/google/go-cmp/cmp"
)

// Transmitter, IFF and Designator apply the "whole body" policy of spec.md
// section 4.6: the cache compares an entire decoded body rather than
// diffing named fields, and a partial update only ever empties the
// optional trailing blocks these bodies already gate with a
// fields-present bit (ModulationParameters/AntennaPatternParameters for
// Transmitter, Layer2 and AdditionalLayers for IFF). Designator carries no optional
// field at all, so its "partial" case only affects the returned
// StateChange, never the wire body.

func worldCoordinatesFromECEF(c dis.WorldCoordinates) cdis.WorldCoordinates {
	geo := geodetic.ToGeodetic(geodetic.ECEF{X: c.X, Y: c.Y, Z: c.Z})
	return cdis.WorldCoordinatesFromGeodetic(geo.LatitudeRadians, geo.LongitudeRadians, geo.AltitudeMeters)
}

func worldCoordinatesToECEF(c cdis.WorldCoordinates) dis.WorldCoordinates {
	lat, lon, alt := c.ToGeodetic()
	ecef := geodetic.ToECEF(geodetic.Geodetic{LatitudeRadians: lat, LongitudeRadians: lon, AltitudeMeters: alt})
	return dis.WorldCoordinates{X: ecef.X, Y: ecef.Y, Z: ecef.Z}
}

// relativeLocationFromDis and relativeLocationToDis convert the small
// entity-relative vectors these three PDU types carry (antenna location
// relative to the host entity, designator spot relative to the
// designated entity). None of these fields carries a wire-level unit
// flag, so per the Collision precedent (DESIGN.md) the conversion is
// fixed to meters rather than auto-selecting centimeters.
func relativeLocationFromDis(v dis.VectorF32) cdis.EntityCoordinateVector {
	return entityCoordinateVectorMeters(v)
}

func relativeLocationToDis(v cdis.EntityCoordinateVector) dis.VectorF32 {
	return v.ToDis(units.LocationUnitMeters)
}

func radioEntityTypeFromDis(t dis.RadioEntityType) cdis.RadioEntityType {
	return cdis.RadioEntityType{
		Kind:                t.Kind,
		Domain:              uint8(t.Domain),
		Country:             uint16(t.Country),
		Category:            varint.NewUVINT8(uint8(t.Category)),
		NomenclatureVersion: t.NomenclatureVersion,
		Nomenclature:        varint.NewUVINT16(t.Nomenclature),
	}
}

func radioEntityTypeToDis(t cdis.RadioEntityType) dis.RadioEntityType {
	return dis.RadioEntityType{
		Kind:                dis.EntityKind(t.Kind),
		Domain:              dis.Domain(t.Domain),
		Country:             dis.Country(t.Country),
		Category:            dis.Category(t.Category.Value),
		NomenclatureVersion: t.NomenclatureVersion,
		Nomenclature:        t.Nomenclature.Value,
	}
}

func modulationTypeFromDis(m dis.ModulationType) cdis.ModulationType {
	return cdis.ModulationType{
		SpreadSpectrum:  varint.NewUVINT16(m.SpreadSpectrum),
		MajorModulation: varint.NewUVINT16(m.MajorModulation),
		Detail:          varint.NewUVINT16(m.Detail),
		System:          varint.NewUVINT16(m.System),
	}
}

func modulationTypeToDis(m cdis.ModulationType) dis.ModulationType {
	return dis.ModulationType{
		SpreadSpectrum:  m.SpreadSpectrum.Value,
		MajorModulation: m.MajorModulation.Value,
		Detail:          m.Detail.Value,
		System:          m.System.Value,
	}
}

func transmitterKey(b dis.TransmitterBody) dis.EntityId { return b.EntityID }

// EncodeTransmitter converts a DIS Transmitter body to C-DIS, applying the
// whole-body heartbeat policy: on a partial update the optional parameter
// blocks are carried only when they differ from the cache, letting the
// existing fields-present bit fall out naturally.
func EncodeTransmitter(cache *GenericCache[dis.TransmitterBody], body dis.TransmitterBody, opts Options) (cdis.TransmitterBody, StateChange, error) {
	now := cache.clock.Now()
	entry, cached := cache.entries[transmitterKey(body)]
	threshold := opts.Federation.transmitterThreshold()
	full := opts.Mode == FullUpdate || !cached || now.Sub(entry.lastHeartbeat) > threshold || !cmp.Equal(entry.body, body)

	out := cdis.TransmitterBody{
		EntityID:                   cdis.EntityIdFromDis(body.EntityID),
		RadioID:                    varint.NewUVINT16(body.RadioID),
		RadioEntityType:            radioEntityTypeFromDis(body.RadioEntityType),
		TransmitState:              uint8(body.TransmitState),
		InputSource:                uint8(body.InputSource),
		AntennaLocation:            worldCoordinatesFromECEF(body.AntennaLocation),
		RelativeAntennaLocation:    relativeLocationFromDis(body.RelativeAntennaLocation),
		AntennaPatternType:         varint.NewUVINT16(body.AntennaPatternType),
		Frequency:                  body.Frequency,
		TransmitFrequencyBandwidth: body.TransmitFrequencyBandwidth,
		Power:                      uint8(body.Power),
		ModulationType:             modulationTypeFromDis(body.ModulationType),
		CryptoSystem:               varint.NewUVINT16(body.CryptoSystem),
		CryptoKeyId:                varint.NewUVINT16(body.CryptoKeyId),
	}

	modulationUnchanged := cached && bytesEqual(entry.body.ModulationParameters, body.ModulationParameters)
	antennaUnchanged := cached && bytesEqual(entry.body.AntennaPatternParameters, body.AntennaPatternParameters)
	if full || !modulationUnchanged {
		out.ModulationParameters = body.ModulationParameters
	}
	if full || !antennaUnchanged {
		out.AntennaPatternParameters = body.AntennaPatternParameters
	}

	change := StateChange{Kind: StateUnaffected}
	if full {
		change.Kind = StateUpdate
		cache.entries[transmitterKey(body)] = genericEntry[dis.TransmitterBody]{lastHeartbeat: now, body: body}
	}
	return out, change, nil
}

// DecodeTransmitter is the inverse of EncodeTransmitter: when an optional
// block is absent from the wire body, it is restored from the decoder's
// own cache.
func DecodeTransmitter(cache *GenericCache[dis.TransmitterBody], body cdis.TransmitterBody) (dis.TransmitterBody, StateChange, error) {
	entityID := body.EntityID.ToDis()
	entry, cached := cache.entries[entityID]

	out := dis.TransmitterBody{
		EntityID:                   entityID,
		RadioID:                    body.RadioID.Value,
		RadioEntityType:            radioEntityTypeToDis(body.RadioEntityType),
		TransmitState:              dis.TransmitState(body.TransmitState),
		InputSource:                dis.InputSource(body.InputSource),
		AntennaLocation:            worldCoordinatesToECEF(body.AntennaLocation),
		RelativeAntennaLocation:    relativeLocationToDis(body.RelativeAntennaLocation),
		AntennaPatternType:         body.AntennaPatternType.Value,
		Frequency:                  body.Frequency,
		TransmitFrequencyBandwidth: body.TransmitFrequencyBandwidth,
		Power:                      float32(body.Power),
		ModulationType:             modulationTypeToDis(body.ModulationType),
		CryptoSystem:               body.CryptoSystem.Value,
		CryptoKeyId:                body.CryptoKeyId.Value,
	}

	if len(body.ModulationParameters) > 0 {
		out.ModulationParameters = body.ModulationParameters
	} else if cached {
		out.ModulationParameters = entry.body.ModulationParameters
	}
	if len(body.AntennaPatternParameters) > 0 {
		out.AntennaPatternParameters = body.AntennaPatternParameters
	} else if cached {
		out.AntennaPatternParameters = entry.body.AntennaPatternParameters
	}

	change := StateChange{Kind: StateUnaffected}
	if !cached || len(body.ModulationParameters) > 0 || len(body.AntennaPatternParameters) > 0 {
		change.Kind = StateUpdate
	}
	now := cache.clock.Now()
	cache.entries[entityID] = genericEntry[dis.TransmitterBody]{lastHeartbeat: now, body: out}
	return out, change, nil
}

func iffKey(b dis.IFFBody) dis.EntityId { return b.EmittingEntityID }

func iffLayer2FromDisPtr(l *dis.IFFLayer2) *cdis.IFFLayer2 {
	if l == nil {
		return nil
	}
	out := cdis.IFFLayer2FromDis(*l)
	return &out
}

func iffLayer2ToDisPtr(l *cdis.IFFLayer2) *dis.IFFLayer2 {
	if l == nil {
		return nil
	}
	out := l.ToDis()
	return &out
}

// EncodeIFF applies the same whole-body policy to the IFF PDU's two
// optional blocks, Layer2 and the opaque AdditionalLayers tail.
func EncodeIFF(cache *GenericCache[dis.IFFBody], body dis.IFFBody, opts Options) (cdis.IFFBody, StateChange, error) {
	now := cache.clock.Now()
	entry, cached := cache.entries[iffKey(body)]
	threshold := opts.Federation.iffThreshold()
	full := opts.Mode == FullUpdate || !cached || now.Sub(entry.lastHeartbeat) > threshold || !cmp.Equal(entry.body, body)

	out := cdis.IFFBody{
		EmittingEntityID:        cdis.EntityIdFromDis(body.EmittingEntityID),
		EventID:                 cdis.EventIdFromDis(body.EventID),
		RelativeAntennaLocation: relativeLocationFromDis(body.RelativeAntennaLocation),
		SystemID: cdis.IFFSystemID{
			SystemType:    uint8(body.SystemID.SystemType),
			SystemName:    uint8(body.SystemID.SystemName),
			SystemMode:    uint8(body.SystemID.SystemMode),
			ChangeOptions: body.SystemID.ChangeOptions,
		},
		FundamentalOperationalData: cdis.IFFFundamentalOperationalData{
			SystemStatus:        body.FundamentalOperationalData.SystemStatus,
			AlternateParameter4: body.FundamentalOperationalData.AlternateParameter4,
			InformationLayers:   body.FundamentalOperationalData.InformationLayers,
			ModifierParameter:   body.FundamentalOperationalData.ModifierParameter,
			ParameterOne:        varint.NewUVINT16(body.FundamentalOperationalData.ParameterOne),
			ParameterTwo:        varint.NewUVINT16(body.FundamentalOperationalData.ParameterTwo),
			ParameterThree:      varint.NewUVINT16(body.FundamentalOperationalData.ParameterThree),
			ParameterFour:       varint.NewUVINT16(body.FundamentalOperationalData.ParameterFour),
			ParameterFive:       varint.NewUVINT16(body.FundamentalOperationalData.ParameterFive),
			ParameterSix:        varint.NewUVINT16(body.FundamentalOperationalData.ParameterSix),
		},
	}

	layer2Unchanged := cached && cmp.Equal(entry.body.Layer2, body.Layer2)
	if full || !layer2Unchanged {
		out.Layer2 = iffLayer2FromDisPtr(body.Layer2)
	}

	layersUnchanged := cached && bytesEqual(entry.body.AdditionalLayers, body.AdditionalLayers)
	if full || !layersUnchanged {
		out.AdditionalLayers = body.AdditionalLayers
	}

	change := StateChange{Kind: StateUnaffected}
	if full {
		change.Kind = StateUpdate
		cache.entries[iffKey(body)] = genericEntry[dis.IFFBody]{lastHeartbeat: now, body: body}
	}
	return out, change, nil
}

// DecodeIFF is the inverse of EncodeIFF.
func DecodeIFF(cache *GenericCache[dis.IFFBody], body cdis.IFFBody) (dis.IFFBody, StateChange, error) {
	entityID := body.EmittingEntityID.ToDis()
	entry, cached := cache.entries[entityID]

	out := dis.IFFBody{
		EmittingEntityID:        entityID,
		EventID:                 body.EventID.ToDis(),
		RelativeAntennaLocation: relativeLocationToDis(body.RelativeAntennaLocation),
		SystemID: dis.IFFSystemID{
			SystemType:    dis.IFFSystemType(body.SystemID.SystemType),
			SystemName:    dis.IFFSystemName(body.SystemID.SystemName),
			SystemMode:    dis.IFFSystemMode(body.SystemID.SystemMode),
			ChangeOptions: body.SystemID.ChangeOptions,
		},
		FundamentalOperationalData: dis.IFFFundamentalOperationalData{
			SystemStatus:        body.FundamentalOperationalData.SystemStatus,
			AlternateParameter4: body.FundamentalOperationalData.AlternateParameter4,
			InformationLayers:   body.FundamentalOperationalData.InformationLayers,
			ModifierParameter:   body.FundamentalOperationalData.ModifierParameter,
			ParameterOne:        body.FundamentalOperationalData.ParameterOne.Value,
			ParameterTwo:        body.FundamentalOperationalData.ParameterTwo.Value,
			ParameterThree:      body.FundamentalOperationalData.ParameterThree.Value,
			ParameterFour:       body.FundamentalOperationalData.ParameterFour.Value,
			ParameterFive:       body.FundamentalOperationalData.ParameterFive.Value,
			ParameterSix:        body.FundamentalOperationalData.ParameterSix.Value,
		},
	}

	if body.Layer2 != nil {
		out.Layer2 = iffLayer2ToDisPtr(body.Layer2)
	} else if cached {
		out.Layer2 = entry.body.Layer2
	}

	if len(body.AdditionalLayers) > 0 {
		out.AdditionalLayers = body.AdditionalLayers
	} else if cached {
		out.AdditionalLayers = entry.body.AdditionalLayers
	}

	change := StateChange{Kind: StateUnaffected}
	if !cached || body.Layer2 != nil || len(body.AdditionalLayers) > 0 {
		change.Kind = StateUpdate
	}
	now := cache.clock.Now()
	cache.entries[entityID] = genericEntry[dis.IFFBody]{lastHeartbeat: now, body: out}
	return out, change, nil
}

func designatorKey(b dis.DesignatorBody) dis.EntityId { return b.DesignatingEntityID }

// EncodeDesignator converts a DIS Designator body to C-DIS. Every field is
// mandatory on the wire, so a "partial" result never omits anything; the
// whole-body comparison only governs the returned StateChange, which a
// gateway can use to suppress redundant retransmission.
func EncodeDesignator(cache *GenericCache[dis.DesignatorBody], body dis.DesignatorBody, opts Options) (cdis.DesignatorBody, StateChange, error) {
	now := cache.clock.Now()
	entry, cached := cache.entries[designatorKey(body)]
	threshold := opts.Federation.designatorThreshold()
	full := opts.Mode == FullUpdate || !cached || now.Sub(entry.lastHeartbeat) > threshold || !cmp.Equal(entry.body, body)

	out := cdis.DesignatorBody{
		DesignatingEntityID:         cdis.EntityIdFromDis(body.DesignatingEntityID),
		CodeName:                    varint.NewUVINT16(uint16(body.CodeName)),
		DesignatedEntityID:          cdis.EntityIdFromDis(body.DesignatedEntityID),
		DesignatorCode:              varint.NewUVINT16(uint16(body.DesignatorCode)),
		DesignatorPower:             varint.NewUVINT32(uint32(math.Round(float64(body.DesignatorPower)))),
		DesignatorWavelength:        varint.NewUVINT32(uint32(math.Round(float64(body.DesignatorWavelength)))),
		DesignatorSpotWrtDesignated: relativeLocationFromDis(body.DesignatorSpotWrtDesignated),
		DesignatorSpotLocation:      worldCoordinatesFromECEF(body.DesignatorSpotLocation),
		DeadReckoningAlgorithm:      uint8(body.DeadReckoningAlgorithm),
		EntityLinearAcceleration:    relativeLocationFromDis(body.EntityLinearAcceleration),
	}

	change := StateChange{Kind: StateUnaffected}
	if full {
		change.Kind = StateUpdate
		cache.entries[designatorKey(body)] = genericEntry[dis.DesignatorBody]{lastHeartbeat: now, body: body}
	}
	return out, change, nil
}

// DecodeDesignator is the inverse of EncodeDesignator.
func DecodeDesignator(cache *GenericCache[dis.DesignatorBody], body cdis.DesignatorBody) (dis.DesignatorBody, StateChange, error) {
	entityID := body.DesignatingEntityID.ToDis()

	out := dis.DesignatorBody{
		DesignatingEntityID:         entityID,
		CodeName:                    dis.DesignatorSystemName(body.CodeName.Value),
		DesignatedEntityID:          body.DesignatedEntityID.ToDis(),
		DesignatorCode:              dis.DesignatorCode(body.DesignatorCode.Value),
		DesignatorPower:             float32(body.DesignatorPower.Value),
		DesignatorWavelength:        float32(body.DesignatorWavelength.Value),
		DesignatorSpotWrtDesignated: relativeLocationToDis(body.DesignatorSpotWrtDesignated),
		DesignatorSpotLocation:      worldCoordinatesToECEF(body.DesignatorSpotLocation),
		DeadReckoningAlgorithm:      dis.DeadReckoningAlgorithm(body.DeadReckoningAlgorithm),
		EntityLinearAcceleration:    relativeLocationToDis(body.EntityLinearAcceleration),
	}

	change := StateChange{Kind: StateUpdate}
	now := cache.clock.Now()
	cache.entries[entityID] = genericEntry[dis.DesignatorBody]{lastHeartbeat: now, body: out}
	return out, change, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
