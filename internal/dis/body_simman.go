package dis

// CreateEntityBody is the body of a CreateEntity PDU (IEEE 1278.1
// section 5.6.5.2): directs a receiving simulation to instantiate a new
// entity.
type CreateEntityBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RequestID           uint32
}

func (b CreateEntityBody) PduType() PduType { return PduTypeCreateEntity }

func (b CreateEntityBody) write(w *ByteWriter) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	return w.WriteUint32(b.RequestID)
}

func parseCreateEntityBody(h Header, r *ByteReader) (Body, error) {
	origin, receiving, requestID, err := readOriginReceivingRequest(r)
	if err != nil {
		return nil, err
	}
	return CreateEntityBody{OriginatingEntityID: origin, ReceivingEntityID: receiving, RequestID: requestID}, nil
}

// RemoveEntityBody is the body of a RemoveEntity PDU (IEEE 1278.1
// section 5.6.5.3): directs a receiving simulation to delete an entity.
type RemoveEntityBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RequestID           uint32
}

func (b RemoveEntityBody) PduType() PduType { return PduTypeRemoveEntity }

func (b RemoveEntityBody) write(w *ByteWriter) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	return w.WriteUint32(b.RequestID)
}

func parseRemoveEntityBody(h Header, r *ByteReader) (Body, error) {
	origin, receiving, requestID, err := readOriginReceivingRequest(r)
	if err != nil {
		return nil, err
	}
	return RemoveEntityBody{OriginatingEntityID: origin, ReceivingEntityID: receiving, RequestID: requestID}, nil
}

func readOriginReceivingRequest(r *ByteReader) (EntityId, EntityId, uint32, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return EntityId{}, EntityId{}, 0, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return EntityId{}, EntityId{}, 0, err
	}
	requestID, err := r.ReadUint32()
	if err != nil {
		return EntityId{}, EntityId{}, 0, err
	}
	return origin, receiving, requestID, nil
}

// StartResumeBody is the body of a StartResume PDU (IEEE 1278.1
// section 5.6.5.4): directs a receiving simulation to start or resume an
// exercise, or a specific entity's participation in it.
type StartResumeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RealWorldTime       ClockTime
	SimulationTime      ClockTime
	RequestID           uint32
}

func (b StartResumeBody) PduType() PduType { return PduTypeStartResume }

func (b StartResumeBody) write(w *ByteWriter) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	if err := b.RealWorldTime.write(w); err != nil {
		return err
	}
	if err := b.SimulationTime.write(w); err != nil {
		return err
	}
	return w.WriteUint32(b.RequestID)
}

func parseStartResumeBody(h Header, r *ByteReader) (Body, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	realWorld, err := readClockTime(r)
	if err != nil {
		return nil, err
	}
	simTime, err := readClockTime(r)
	if err != nil {
		return nil, err
	}
	requestID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return StartResumeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving,
		RealWorldTime: realWorld, SimulationTime: simTime, RequestID: requestID,
	}, nil
}

// StopFreezeBody is the body of a StopFreeze PDU (IEEE 1278.1
// section 5.6.5.5): directs a receiving simulation to stop or freeze an
// exercise, or a specific entity's participation in it.
//
// FrozenBehavior is documented by SISO-REF-010 as three independent
// single-bit flags (run-simulation-clock, transmit-updates,
// process-updates) packed into the low three bits of one octet; earlier
// drafts of this gateway modeled it as an opaque uint8, which silently
// dropped the per-bit semantics a receiving simulation needs. It is
// exposed here as three bools instead.
type StopFreezeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RealWorldTime       ClockTime
	Reason              StopFreezeReason
	RunSimulationClock  bool
	TransmitUpdates     bool
	ProcessUpdates      bool
	RequestID           uint32
}

func (b StopFreezeBody) frozenBehaviorOctet() uint8 {
	var v uint8
	if b.RunSimulationClock {
		v |= 0x01
	}
	if b.TransmitUpdates {
		v |= 0x02
	}
	if b.ProcessUpdates {
		v |= 0x04
	}
	return v
}

func (b StopFreezeBody) PduType() PduType { return PduTypeStopFreeze }

func (b StopFreezeBody) write(w *ByteWriter) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	if err := b.RealWorldTime.write(w); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(b.Reason)); err != nil {
		return err
	}
	if err := w.WriteUint8(b.frozenBehaviorOctet()); err != nil {
		return err
	}
	if err := w.WriteUint16(0); err != nil {
		return err
	}
	return w.WriteUint32(b.RequestID)
}

func parseStopFreezeBody(h Header, r *ByteReader) (Body, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	realWorld, err := readClockTime(r)
	if err != nil {
		return nil, err
	}
	reason, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	frozen, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	requestID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return StopFreezeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving, RealWorldTime: realWorld,
		Reason:             StopFreezeReason(reason),
		RunSimulationClock: frozen&0x01 != 0,
		TransmitUpdates:    frozen&0x02 != 0,
		ProcessUpdates:     frozen&0x04 != 0,
		RequestID:          requestID,
	}, nil
}

// AcknowledgeBody is the body of an Acknowledge PDU (IEEE 1278.1
// section 5.6.5.6): confirms receipt of a CreateEntity, RemoveEntity,
// StartResume, StopFreeze or (DIS7) data-query/set-data request.
type AcknowledgeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	AcknowledgeFlag     AcknowledgeFlag
	ResponseFlag        ResponseFlag
	RequestID           uint32
}

func (b AcknowledgeBody) PduType() PduType { return PduTypeAcknowledge }

func (b AcknowledgeBody) write(w *ByteWriter) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(b.AcknowledgeFlag)); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(b.ResponseFlag)); err != nil {
		return err
	}
	return w.WriteUint32(b.RequestID)
}

func parseAcknowledgeBody(h Header, r *ByteReader) (Body, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	ack, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	resp, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	requestID, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return AcknowledgeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving,
		AcknowledgeFlag: AcknowledgeFlag(ack), ResponseFlag: ResponseFlag(resp), RequestID: requestID,
	}, nil
}
