package engine

import (
	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/geodetic"
)

// EncodeEntityState converts a full-fidelity DIS EntityState body to its
// C-DIS form, applying the timeout decision algorithm of spec.md section
// 4.6: a full update is emitted when the cache holds nothing for this
// entity yet, when the cache is stale past the heartbeat threshold, or
// when opts.Mode is FullUpdate; otherwise only the optional fields that
// differ from the cached body are marked present.
func EncodeEntityState(cache *EntityStateCache, body dis.EntityStateBody, opts Options) (cdis.EntityStateBody, StateChange, error) {
	now := cache.clock.Now()
	entry, cached := cache.entries[body.EntityID]
	threshold := opts.Federation.entityStateThreshold()
	full := opts.Mode == FullUpdate || !cached || now.Sub(entry.lastHeartbeat) > threshold

	out := cdis.EntityStateBody{
		EntityID:             cdis.EntityIdFromDis(body.EntityID),
		ForceID:              uint8(body.ForceID),
		EntityType:           cdis.EntityTypeFromDis(body.EntityType),
		EntityLinearVelocity: cdis.LinearVelocityFromDis(body.EntityLinearVelocity),
		EntityOrientation:    cdis.OrientationFromDis(body.EntityOrientation),
		EntityAppearance:     body.EntityAppearance,
	}
	geo := geodetic.ToGeodetic(geodetic.ECEF{X: body.EntityLocation.X, Y: body.EntityLocation.Y, Z: body.EntityLocation.Z})
	out.EntityLocation = cdis.WorldCoordinatesFromGeodetic(geo.LatitudeRadians, geo.LongitudeRadians, geo.AltitudeMeters)

	setOptional := func(mask uint32, differs bool, apply func()) {
		if full || differs {
			out.FieldsPresent |= mask
			apply()
		}
	}

	setOptional(cdis.EntityStateAltTypePresent, !cached || entry.body.AlternativeEntityType != body.AlternativeEntityType, func() {
		out.AlternativeEntityType = cdis.EntityTypeFromDis(body.AlternativeEntityType)
	})
	setOptional(cdis.EntityStateDeadReckonPresent, !cached || entry.body.DeadReckoningParameters != body.DeadReckoningParameters, func() {
		out.DeadReckoningParameters = cdis.DeadReckoningParameters{
			Algorithm:          uint8(body.DeadReckoningParameters.Algorithm),
			OtherParameters:    body.DeadReckoningParameters.OtherParameters,
			LinearAcceleration: cdis.LinearVelocityFromDis(body.DeadReckoningParameters.LinearAcceleration),
			AngularVelocity:    cdis.LinearVelocityFromDis(body.DeadReckoningParameters.AngularVelocity),
		}
	})
	setOptional(cdis.EntityStateMarkingPresent, !cached || entry.body.EntityMarking != body.EntityMarking, func() {
		out.EntityMarking = cdis.EntityMarking{CharacterSet: body.EntityMarking.CharacterSet, Characters: body.EntityMarking.Characters}
	})
	setOptional(cdis.EntityStateCapabilitiesPresent, !cached || entry.body.Capabilities != body.Capabilities, func() {
		out.Capabilities = body.Capabilities
	})
	setOptional(cdis.EntityStateVarParamsPresent, !cached || !variableParametersEqual(entry.body.VariableParameters, body.VariableParameters), func() {
		out.VariableParameters = make([]cdis.VariableParameter, len(body.VariableParameters))
		for i, vp := range body.VariableParameters {
			out.VariableParameters[i] = cdis.VariableParameterFromDis(vp)
		}
	})

	change := StateChange{Kind: StateUnaffected}
	if full {
		change.Kind = StateUpdate
		cache.entries[body.EntityID] = entityStateEntry{lastHeartbeat: now, body: body}
	}
	return out, change, nil
}

func variableParametersEqual(a, b []dis.VariableParameter) bool {
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

// DecodeEntityState restores a C-DIS EntityState body to full fidelity,
// filling any omitted optional field from the decoder's own cache. A
// partial update for an entity id with no prior full update is a
// ParseError, per spec.md section 4.6.
func DecodeEntityState(cache *EntityStateCache, body cdis.EntityStateBody) (dis.EntityStateBody, StateChange, error) {
	entityID := body.EntityID.ToDis()
	entry, cached := cache.entries[entityID]

	allPresent := body.FieldsPresent == (cdis.EntityStateAltTypePresent | cdis.EntityStateDeadReckonPresent |
		cdis.EntityStateMarkingPresent | cdis.EntityStateCapabilitiesPresent | cdis.EntityStateVarParamsPresent)

	if !cached && !allPresent {
		return dis.EntityStateBody{}, StateChange{}, &ParseError{
			Reason:   "partial update without prior full update",
			EntityID: entityID,
		}
	}

	out := entry.body
	out.EntityID = entityID
	out.ForceID = dis.ForceId(body.ForceID)
	out.EntityType = body.EntityType.ToDis()
	out.EntityLinearVelocity = body.EntityLinearVelocity.ToDis()
	lat, lon, alt := body.EntityLocation.ToGeodetic()
	ecef := geodetic.ToECEF(geodetic.Geodetic{LatitudeRadians: lat, LongitudeRadians: lon, AltitudeMeters: alt})
	out.EntityLocation = dis.WorldCoordinates{X: ecef.X, Y: ecef.Y, Z: ecef.Z}
	out.EntityOrientation = body.EntityOrientation.ToDis()
	out.EntityAppearance = body.EntityAppearance

	if body.FieldsPresent&cdis.EntityStateAltTypePresent != 0 {
		out.AlternativeEntityType = body.AlternativeEntityType.ToDis()
	}
	if body.FieldsPresent&cdis.EntityStateDeadReckonPresent != 0 {
		out.DeadReckoningParameters = dis.DeadReckoningParameters{
			Algorithm:          dis.DeadReckoningAlgorithm(body.DeadReckoningParameters.Algorithm),
			OtherParameters:    body.DeadReckoningParameters.OtherParameters,
			LinearAcceleration: body.DeadReckoningParameters.LinearAcceleration.ToDis(),
			AngularVelocity:    body.DeadReckoningParameters.AngularVelocity.ToDis(),
		}
	}
	if body.FieldsPresent&cdis.EntityStateMarkingPresent != 0 {
		out.EntityMarking = dis.EntityMarking{CharacterSet: body.EntityMarking.CharacterSet, Characters: body.EntityMarking.Characters}
	}
	if body.FieldsPresent&cdis.EntityStateCapabilitiesPresent != 0 {
		out.Capabilities = body.Capabilities
	}
	if body.FieldsPresent&cdis.EntityStateVarParamsPresent != 0 {
		out.VariableParameters = make([]dis.VariableParameter, len(body.VariableParameters))
		for i, vp := range body.VariableParameters {
			out.VariableParameters[i] = vp.ToDis()
		}
	}

	change := StateChange{Kind: StateUnaffected}
	now := cache.clock.Now()
	if allPresent || !cached {
		change.Kind = StateUpdate
	}
	cache.entries[entityID] = entityStateEntry{lastHeartbeat: now, body: out}
	return out, change, nil
}
