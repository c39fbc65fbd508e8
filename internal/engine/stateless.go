package engine

import (
	"math"

	"github.com/dis-interop/cdis-gateway/internal/cdis"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/units"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// Fire, Detonation, Collision, CreateEntity, RemoveEntity, StartResume,
// StopFreeze and Acknowledge carry no heartbeat semantics, per the
// FederationParameters list in spec.md section 4.6: each is a one-shot
// event rather than a periodically refreshed entity attribute, so these
// conversions are pure functions with no cache and always return
// StateUpdate.

func burstDescriptorFromDis(b dis.BurstDescriptor) cdis.BurstDescriptor {
	return cdis.BurstDescriptor{
		MunitionType: cdis.EntityTypeFromDis(b.MunitionType),
		Warhead:      varint.NewUVINT16(b.Warhead),
		Fuse:         varint.NewUVINT16(b.Fuse),
		Quantity:     varint.NewUVINT16(b.Quantity),
		Rate:         varint.NewUVINT16(b.Rate),
	}
}

func burstDescriptorToDis(b cdis.BurstDescriptor) dis.BurstDescriptor {
	return dis.BurstDescriptor{
		MunitionType: b.MunitionType.ToDis(),
		Warhead:      b.Warhead.Value,
		Fuse:         b.Fuse.Value,
		Quantity:     b.Quantity.Value,
		Rate:         b.Rate.Value,
	}
}

// EncodeFire converts a DIS Fire body to C-DIS.
func EncodeFire(body dis.FireBody) (cdis.FireBody, error) {
	return cdis.FireBody{
		FiringEntityID:   cdis.EntityIdFromDis(body.FiringEntityID),
		TargetEntityID:   cdis.EntityIdFromDis(body.TargetEntityID),
		MunitionEntityID: cdis.EntityIdFromDis(body.MunitionEntityID),
		EventID:          cdis.EventIdFromDis(body.EventID),
		FireMissionIndex: varint.NewUVINT32(body.FireMissionIndex),
		Location:         worldCoordinatesFromECEF(body.Location),
		Descriptor:       burstDescriptorFromDis(body.Descriptor),
		Velocity:         cdis.LinearVelocityFromDis(body.Velocity),
		Range:            varint.NewUVINT32(uint32(math.Round(float64(body.Range)))),
	}, nil
}

// DecodeFire is the inverse of EncodeFire.
func DecodeFire(body cdis.FireBody) (dis.FireBody, error) {
	return dis.FireBody{
		FiringEntityID:   body.FiringEntityID.ToDis(),
		TargetEntityID:   body.TargetEntityID.ToDis(),
		MunitionEntityID: body.MunitionEntityID.ToDis(),
		EventID:          body.EventID.ToDis(),
		FireMissionIndex: body.FireMissionIndex.Value,
		Location:         worldCoordinatesToECEF(body.Location),
		Descriptor:       burstDescriptorToDis(body.Descriptor),
		Velocity:         body.Velocity.ToDis(),
		Range:            float32(body.Range.Value),
	}, nil
}

func detonationLocationUnitFromUnits(u units.LocationUnit) cdis.DetonationLocationUnit {
	if u == units.LocationUnitMeters {
		return cdis.DetonationLocationMeters
	}
	return cdis.DetonationLocationCentimeters
}

func detonationLocationUnitToUnits(u cdis.DetonationLocationUnit) units.LocationUnit {
	if u == cdis.DetonationLocationCentimeters {
		return units.LocationUnitCentimeters
	}
	return units.LocationUnitMeters
}

// EncodeDetonation converts a DIS Detonation body to C-DIS.
func EncodeDetonation(body dis.DetonationBody) (cdis.DetonationBody, error) {
	entityLoc, unit := cdis.EntityCoordinateVectorFromDis(body.LocationInEntityCoordinates)
	vps := make([]cdis.VariableParameter, len(body.VariableParameters))
	for i, vp := range body.VariableParameters {
		vps[i] = cdis.VariableParameterFromDis(vp)
	}
	return cdis.DetonationBody{
		FiringEntityID:              cdis.EntityIdFromDis(body.FiringEntityID),
		TargetEntityID:              cdis.EntityIdFromDis(body.TargetEntityID),
		ExplodingEntityID:           cdis.EntityIdFromDis(body.ExplodingEntityID),
		EventID:                     cdis.EventIdFromDis(body.EventID),
		Velocity:                    cdis.LinearVelocityFromDis(body.Velocity),
		LocationInWorldCoordinates:  worldCoordinatesFromECEF(body.LocationInWorldCoordinates),
		Descriptor:                  burstDescriptorFromDis(body.Descriptor),
		LocationInEntityCoordinates: entityLoc,
		EntityCoordinateUnit:        detonationLocationUnitFromUnits(unit),
		DetonationResult:            body.DetonationResult,
		VariableParameters:          vps,
	}, nil
}

// DecodeDetonation is the inverse of EncodeDetonation.
func DecodeDetonation(body cdis.DetonationBody) (dis.DetonationBody, error) {
	vps := make([]dis.VariableParameter, len(body.VariableParameters))
	for i, vp := range body.VariableParameters {
		vps[i] = vp.ToDis()
	}
	return dis.DetonationBody{
		FiringEntityID:              body.FiringEntityID.ToDis(),
		TargetEntityID:              body.TargetEntityID.ToDis(),
		ExplodingEntityID:           body.ExplodingEntityID.ToDis(),
		EventID:                     body.EventID.ToDis(),
		Velocity:                    body.Velocity.ToDis(),
		LocationInWorldCoordinates:  worldCoordinatesToECEF(body.LocationInWorldCoordinates),
		Descriptor:                  burstDescriptorToDis(body.Descriptor),
		LocationInEntityCoordinates: body.LocationInEntityCoordinates.ToDis(detonationLocationUnitToUnits(body.EntityCoordinateUnit)),
		DetonationResult:            body.DetonationResult,
		VariableParameters:          vps,
	}, nil
}

// entityCoordinateVectorMeters quantizes a position fixed to the meters
// scale, rather than QuantizeEntityLocation's centimeter/meter
// auto-selection, for the record types (Collision) that carry no unit
// flag and so must commit to one scale unconditionally.
func entityCoordinateVectorMeters(v dis.VectorF32) cdis.EntityCoordinateVector {
	return cdis.EntityCoordinateVector{
		X: varint.NewSVINT16(int16(math.Round(float64(v.X)))),
		Y: varint.NewSVINT16(int16(math.Round(float64(v.Y)))),
		Z: varint.NewSVINT16(int16(math.Round(float64(v.Z)))),
	}
}

// EncodeCollision converts a DIS Collision body to C-DIS. Location is
// always meters on the wire (no unit flag), per the Collision/Detonation
// discrepancy decision recorded in DESIGN.md.
func EncodeCollision(body dis.CollisionBody) (cdis.CollisionBody, error) {
	massValue, massUnit := units.QuantizeMass(float64(body.Mass))
	location := entityCoordinateVectorMeters(body.Location)
	return cdis.CollisionBody{
		IssuingEntityID:   cdis.EntityIdFromDis(body.IssuingEntityID),
		CollidingEntityID: cdis.EntityIdFromDis(body.CollidingEntityID),
		EventID:           cdis.EventIdFromDis(body.EventID),
		CollisionType:     body.CollisionType,
		Velocity:          cdis.LinearVelocityFromDis(body.Velocity),
		MassValue:         massValue,
		MassUnit:          massUnit,
		Location:          location,
	}, nil
}

// DecodeCollision is the inverse of EncodeCollision.
func DecodeCollision(body cdis.CollisionBody) (dis.CollisionBody, error) {
	return dis.CollisionBody{
		IssuingEntityID:   body.IssuingEntityID.ToDis(),
		CollidingEntityID: body.CollidingEntityID.ToDis(),
		EventID:           body.EventID.ToDis(),
		CollisionType:     body.CollisionType,
		Velocity:          body.Velocity.ToDis(),
		Mass:              float32(units.DequantizeMass(body.MassValue, body.MassUnit)),
		Location:          body.Location.ToDis(units.LocationUnitMeters),
	}, nil
}

// EncodeCreateEntity converts a DIS CreateEntity body to C-DIS.
func EncodeCreateEntity(body dis.CreateEntityBody) (cdis.CreateEntityBody, error) {
	return cdis.CreateEntityBody{
		OriginatingEntityID: cdis.EntityIdFromDis(body.OriginatingEntityID),
		ReceivingEntityID:   cdis.EntityIdFromDis(body.ReceivingEntityID),
		RequestID:           varint.NewUVINT32(body.RequestID),
	}, nil
}

// DecodeCreateEntity is the inverse of EncodeCreateEntity.
func DecodeCreateEntity(body cdis.CreateEntityBody) (dis.CreateEntityBody, error) {
	return dis.CreateEntityBody{
		OriginatingEntityID: body.OriginatingEntityID.ToDis(),
		ReceivingEntityID:   body.ReceivingEntityID.ToDis(),
		RequestID:           body.RequestID.Value,
	}, nil
}

// EncodeRemoveEntity converts a DIS RemoveEntity body to C-DIS.
func EncodeRemoveEntity(body dis.RemoveEntityBody) (cdis.RemoveEntityBody, error) {
	return cdis.RemoveEntityBody{
		OriginatingEntityID: cdis.EntityIdFromDis(body.OriginatingEntityID),
		ReceivingEntityID:   cdis.EntityIdFromDis(body.ReceivingEntityID),
		RequestID:           varint.NewUVINT32(body.RequestID),
	}, nil
}

// DecodeRemoveEntity is the inverse of EncodeRemoveEntity.
func DecodeRemoveEntity(body cdis.RemoveEntityBody) (dis.RemoveEntityBody, error) {
	return dis.RemoveEntityBody{
		OriginatingEntityID: body.OriginatingEntityID.ToDis(),
		ReceivingEntityID:   body.ReceivingEntityID.ToDis(),
		RequestID:           body.RequestID.Value,
	}, nil
}

// EncodeStartResume converts a DIS StartResume body to C-DIS.
func EncodeStartResume(body dis.StartResumeBody) (cdis.StartResumeBody, error) {
	return cdis.StartResumeBody{
		OriginatingEntityID: cdis.EntityIdFromDis(body.OriginatingEntityID),
		ReceivingEntityID:   cdis.EntityIdFromDis(body.ReceivingEntityID),
		RealWorldTime:       cdis.ClockTimeFromDis(body.RealWorldTime),
		SimulationTime:      cdis.ClockTimeFromDis(body.SimulationTime),
		RequestID:           varint.NewUVINT32(body.RequestID),
	}, nil
}

// DecodeStartResume is the inverse of EncodeStartResume. hour supplies the
// out-of-band synchronized hour component spec.md section 3.2 says
// ClockTime omits from the wire.
func DecodeStartResume(body cdis.StartResumeBody, hour int32) (dis.StartResumeBody, error) {
	return dis.StartResumeBody{
		OriginatingEntityID: body.OriginatingEntityID.ToDis(),
		ReceivingEntityID:   body.ReceivingEntityID.ToDis(),
		RealWorldTime:       body.RealWorldTime.ToDis(hour),
		SimulationTime:      body.SimulationTime.ToDis(hour),
		RequestID:           body.RequestID.Value,
	}, nil
}

// EncodeStopFreeze converts a DIS StopFreeze body to C-DIS.
func EncodeStopFreeze(body dis.StopFreezeBody) (cdis.StopFreezeBody, error) {
	return cdis.StopFreezeBody{
		OriginatingEntityID: cdis.EntityIdFromDis(body.OriginatingEntityID),
		ReceivingEntityID:   cdis.EntityIdFromDis(body.ReceivingEntityID),
		RealWorldTime:       cdis.ClockTimeFromDis(body.RealWorldTime),
		Reason:              body.Reason,
		RunSimulationClock:  body.RunSimulationClock,
		TransmitUpdates:     body.TransmitUpdates,
		ProcessUpdates:      body.ProcessUpdates,
		RequestID:           varint.NewUVINT32(body.RequestID),
	}, nil
}

// DecodeStopFreeze is the inverse of EncodeStopFreeze.
func DecodeStopFreeze(body cdis.StopFreezeBody, hour int32) (dis.StopFreezeBody, error) {
	return dis.StopFreezeBody{
		OriginatingEntityID: body.OriginatingEntityID.ToDis(),
		ReceivingEntityID:   body.ReceivingEntityID.ToDis(),
		RealWorldTime:       body.RealWorldTime.ToDis(hour),
		Reason:              body.Reason,
		RunSimulationClock:  body.RunSimulationClock,
		TransmitUpdates:     body.TransmitUpdates,
		ProcessUpdates:      body.ProcessUpdates,
		RequestID:           body.RequestID.Value,
	}, nil
}

// EncodeAcknowledge converts a DIS Acknowledge body to C-DIS.
func EncodeAcknowledge(body dis.AcknowledgeBody) (cdis.AcknowledgeBody, error) {
	return cdis.AcknowledgeBody{
		OriginatingEntityID: cdis.EntityIdFromDis(body.OriginatingEntityID),
		ReceivingEntityID:   cdis.EntityIdFromDis(body.ReceivingEntityID),
		AcknowledgeFlag:     body.AcknowledgeFlag,
		ResponseFlag:        body.ResponseFlag,
		RequestID:           varint.NewUVINT32(body.RequestID),
	}, nil
}

// DecodeAcknowledge is the inverse of EncodeAcknowledge.
func DecodeAcknowledge(body cdis.AcknowledgeBody) (dis.AcknowledgeBody, error) {
	return dis.AcknowledgeBody{
		OriginatingEntityID: body.OriginatingEntityID.ToDis(),
		ReceivingEntityID:   body.ReceivingEntityID.ToDis(),
		AcknowledgeFlag:     body.AcknowledgeFlag,
		ResponseFlag:        body.ResponseFlag,
		RequestID:           body.RequestID.Value,
	}, nil
}
