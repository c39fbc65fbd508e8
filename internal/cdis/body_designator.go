package cdis

import (
	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// DesignatorBody is the C-DIS form of dis.DesignatorBody. Power and
// wavelength are UVINT32 fields, not compressed floats: the designator
// record model carries them as plain variable-length unsigned integers.
type DesignatorBody struct {
	DesignatingEntityID         EntityId
	CodeName                    varint.UVINT16
	DesignatedEntityID          EntityId
	DesignatorCode               varint.UVINT16
	DesignatorPower             varint.UVINT32
	DesignatorWavelength        varint.UVINT32
	DesignatorSpotWrtDesignated EntityCoordinateVector
	DesignatorSpotLocation      WorldCoordinates
	DeadReckoningAlgorithm      uint8
	EntityLinearAcceleration    LinearVelocity
}

func (b DesignatorBody) PduType() dis.PduType { return dis.PduTypeDesignator }

func (b DesignatorBody) write(w *bitio.Writer) error {
	if err := b.DesignatingEntityID.write(w); err != nil {
		return err
	}
	if err := b.CodeName.Write(w); err != nil {
		return err
	}
	if err := b.DesignatedEntityID.write(w); err != nil {
		return err
	}
	if err := b.DesignatorCode.Write(w); err != nil {
		return err
	}
	if err := b.DesignatorPower.Write(w); err != nil {
		return err
	}
	if err := b.DesignatorWavelength.Write(w); err != nil {
		return err
	}
	if err := b.DesignatorSpotWrtDesignated.write(w); err != nil {
		return err
	}
	if err := b.DesignatorSpotLocation.write(w); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(b.DeadReckoningAlgorithm)); err != nil {
		return err
	}
	return b.EntityLinearAcceleration.write(w)
}

func parseDesignatorBody(h Header, r *bitio.Reader) (Body, error) {
	designating, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	codeName, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	designated, err := readEntityId(r)
	if err != nil {
		return nil, err
	}
	code, err := varint.ReadUVINT16(r)
	if err != nil {
		return nil, err
	}
	power, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	wavelength, err := varint.ReadUVINT32(r)
	if err != nil {
		return nil, err
	}
	spotWrt, err := readEntityCoordinateVector(r)
	if err != nil {
		return nil, err
	}
	spotLocation, err := readWorldCoordinates(r)
	if err != nil {
		return nil, err
	}
	algo, err := r.Take(8)
	if err != nil {
		return nil, err
	}
	accel, err := readLinearVelocity(r)
	if err != nil {
		return nil, err
	}
	return DesignatorBody{
		DesignatingEntityID: designating, CodeName: codeName,
		DesignatedEntityID: designated, DesignatorCode: code,
		DesignatorPower: power, DesignatorWavelength: wavelength,
		DesignatorSpotWrtDesignated: spotWrt, DesignatorSpotLocation: spotLocation,
		DeadReckoningAlgorithm: uint8(algo), EntityLinearAcceleration: accel,
	}, nil
}
