package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

func readOriginReceivingRequest(r *bitio.Reader) (EntityId, EntityId, varint.UVINT32, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return EntityId{}, EntityId{}, varint.UVINT32{}, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return EntityId{}, EntityId{}, varint.UVINT32{}, err
	}
	requestID, err := varint.ReadUVINT32(r)
	if err != nil {
		return EntityId{}, EntityId{}, varint.UVINT32{}, err
	}
	return origin, receiving, requestID, nil
}

// CreateEntityBody is the C-DIS form of dis.CreateEntityBody.
type CreateEntityBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RequestID           varint.UVINT32
}

func (b CreateEntityBody) PduType() dis.PduType { return dis.PduTypeCreateEntity }

func (b CreateEntityBody) write(w *bitio.Writer) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	return b.RequestID.Write(w)
}

func parseCreateEntityBody(h Header, r *bitio.Reader) (Body, error) {
	origin, receiving, requestID, err := readOriginReceivingRequest(r)
	if err != nil {
		return nil, err
	}
	return CreateEntityBody{OriginatingEntityID: origin, ReceivingEntityID: receiving, RequestID: requestID}, nil
}

// RemoveEntityBody is the C-DIS form of dis.RemoveEntityBody.
type RemoveEntityBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RequestID           varint.UVINT32
}

func (b RemoveEntityBody) PduType() dis.PduType { return dis.PduTypeRemoveEntity }

func (b RemoveEntityBody) write(w *bitio.Writer) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	return b.RequestID.Write(w)
}

func parseRemoveEntityBody(h Header, r *bitio.Reader) (Body, error) {
	origin, receiving, requestID, err := readOriginReceivingRequest(r)
	if err != nil {
		return nil, err
	}
	return RemoveEntityBody{OriginatingEntityID: origin, ReceivingEntityID: receiving, RequestID: requestID}, nil
}

// StartResumeBody is the C-DIS form of dis.StartResumeBody.
type StartResumeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RealWorldTime       ClockTime
	SimulationTime      ClockTime
	RequestID           varint.UVINT32
}

func (b StartResumeBody) PduType() dis.PduType { return dis.PduTypeStartResume }

func (b StartResumeBody) write(w *bitio.Writer) error {
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
	return b.RequestID.Write(w)
}

func parseStartResumeBody(h Header, r *bitio.Reader) (Body, error) {
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
	requestID, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	return StartResumeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving,
		RealWorldTime: realWorld, SimulationTime: simTime, RequestID: requestID,
	}, nil
}

// StopFreezeBody is the C-DIS form of dis.StopFreezeBody, keeping the
// three-bit frozen-behavior expansion rather than an opaque octet.
type StopFreezeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	RealWorldTime       ClockTime
	Reason              dis.StopFreezeReason
	RunSimulationClock  bool
	TransmitUpdates     bool
	ProcessUpdates      bool
	RequestID           varint.UVINT32
}

func (b StopFreezeBody) frozenBehaviorBits() uint64 {
	var v uint64
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

func (b StopFreezeBody) PduType() dis.PduType { return dis.PduTypeStopFreeze }

func (b StopFreezeBody) write(w *bitio.Writer) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	if err := b.RealWorldTime.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.Reason)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(3, b.frozenBehaviorBits()); err != nil {
		return err
	}
	return b.RequestID.Write(w)
}

func parseStopFreezeBody(h Header, r *bitio.Reader) (Body, error) {
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
	reason, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	frozen, err := r.Take(3)
	if err != nil {
		return nil, err
	}
	requestID, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	return StopFreezeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving, RealWorldTime: realWorld,
		Reason:             dis.StopFreezeReason(reason),
		RunSimulationClock: frozen&0x01 != 0,
		TransmitUpdates:    frozen&0x02 != 0,
		ProcessUpdates:     frozen&0x04 != 0,
		RequestID:          requestID,
	}, nil
}

// AcknowledgeBody is the C-DIS form of dis.AcknowledgeBody.
type AcknowledgeBody struct {
	OriginatingEntityID EntityId
	ReceivingEntityID   EntityId
	AcknowledgeFlag     dis.AcknowledgeFlag
	ResponseFlag        dis.ResponseFlag
	RequestID           varint.UVINT32
}

func (b AcknowledgeBody) PduType() dis.PduType { return dis.PduTypeAcknowledge }

func (b AcknowledgeBody) write(w *bitio.Writer) error {
	if err := b.OriginatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.ReceivingEntityID.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(16, uint64(b.AcknowledgeFlag)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(16, uint64(b.ResponseFlag)); err != nil {
		return err
	}
	return b.RequestID.Write(w)
}

func parseAcknowledgeBody(h Header, r *bitio.Reader) (Body, error) {
	origin, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	receiving, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	ack, err := r.Take(16)
	if err != nil {
		return nil, err
	}
	resp, err := r.Take(16)
	if err != nil {
		return nil, err
	}
	requestID, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	return AcknowledgeBody{
		OriginatingEntityID: origin, ReceivingEntityID: receiving,
		AcknowledgeFlag: dis.AcknowledgeFlag(ack), ResponseFlag: dis.ResponseFlag(resp), RequestID: requestID,
	}, nil
}
