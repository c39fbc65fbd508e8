// Package cdis implements the bit-aligned C-DIS wire format: the
// bit-packed PDU header, the shared record types every body draws on
// (mirroring internal/dis's record model but quantized), and a dispatch
// table of concrete body codecs for the PDU types this gateway
// understands structurally.
package cdis

import (
	"math"

	"github.com/dis-interop/cdis-gateway/internal/bitio"
	"github.com/dis-interop/cdis-gateway/internal/dis"
	"github.com/dis-interop/cdis-gateway/internal/units"
	"github.com/dis-interop/cdis-gateway/internal/varint"
)

// EntityId mirrors dis.EntityId but with each component carried as a
// UVINT16, per spec.md section 3.1.
type EntityId struct {
	Site        varint.UVINT16
	Application varint.UVINT16
	Entity      varint.UVINT16
}

// EntityIdFromDis quantizes a full-fidelity EntityId into its C-DIS form.
func EntityIdFromDis(id dis.EntityId) EntityId {
	return EntityId{
		Site:        varint.NewUVINT16(id.Site),
		Application: varint.NewUVINT16(id.Application),
		Entity:      varint.NewUVINT16(id.Entity),
	}
}

// ToDis reconstitutes the full-fidelity EntityId.
func (e EntityId) ToDis() dis.EntityId {
	return dis.EntityId{Site: e.Site.Value, Application: e.Application.Value, Entity: e.Entity.Value}
}

func (e EntityId) write(w *bitio.Writer) error {
	if err := e.Site.Write(w); err != nil {
		return err
	}
	if err := e.Application.Write(w); err != nil {
		return err
	}
	return e.Entity.Write(w)
}

func readEntityId(r *bitio.Reader) (EntityId, error) {
	site, err := varint.ReadUVINT16(r)
	if err != nil {
		return EntityId{}, err
	}
	app, err := varint.ReadUVINT16(r)
	if err != nil {
		return EntityId{}, err
	}
	entity, err := varint.ReadUVINT16(r)
	if err != nil {
		return EntityId{}, err
	}
	return EntityId{Site: site, Application: app, Entity: entity}, nil
}

// EventId mirrors dis.EventId, UVINT16-packed.
type EventId struct {
	Site        varint.UVINT16
	Application varint.UVINT16
	EventNumber varint.UVINT16
}

func EventIdFromDis(id dis.EventId) EventId {
	return EventId{
		Site:        varint.NewUVINT16(id.Site),
		Application: varint.NewUVINT16(id.Application),
		EventNumber: varint.NewUVINT16(id.EventNumber),
	}
}

func (e EventId) ToDis() dis.EventId {
	return dis.EventId{Site: e.Site.Value, Application: e.Application.Value, EventNumber: e.EventNumber.Value}
}

func (e EventId) write(w *bitio.Writer) error {
	if err := e.Site.Write(w); err != nil {
		return err
	}
	if err := e.Application.Write(w); err != nil {
		return err
	}
	return e.EventNumber.Write(w)
}

func readEventId(r *bitio.Reader) (EventId, error) {
	site, err := varint.ReadUVINT16(r)
	if err != nil {
		return EventId{}, err
	}
	app, err := varint.ReadUVINT16(r)
	if err != nil {
		return EventId{}, err
	}
	num, err := varint.ReadUVINT16(r)
	if err != nil {
		return EventId{}, err
	}
	return EventId{Site: site, Application: app, EventNumber: num}, nil
}

// EntityType mirrors dis.EntityType; per spec.md section 3.1 the last
// four components are UVINT8 while kind/domain/country stay fixed-width
// (kind and domain are small closed enumerations, country is a 16-bit
// SISO code with no natural small-bucket skew).
type EntityType struct {
	Kind        uint8
	Domain      uint8
	Country     uint16
	Category    varint.UVINT8
	Subcategory varint.UVINT8
	Specific    varint.UVINT8
	Extra       varint.UVINT8
}

func EntityTypeFromDis(t dis.EntityType) EntityType {
	return EntityType{
		Kind: uint8(t.Kind), Domain: uint8(t.Domain), Country: uint16(t.Country),
		Category:    varint.NewUVINT8(uint8(t.Category)),
		Subcategory: varint.NewUVINT8(uint8(t.Subcategory)),
		Specific:    varint.NewUVINT8(uint8(t.Specific)),
		Extra:       varint.NewUVINT8(uint8(t.Extra)),
	}
}

func (e EntityType) ToDis() dis.EntityType {
	return dis.EntityType{
		Kind: dis.EntityKind(e.Kind), Domain: dis.Domain(e.Domain), Country: dis.Country(e.Country),
		Category: dis.Category(e.Category.Value), Subcategory: dis.Subcategory(e.Subcategory.Value),
		Specific: dis.Specific(e.Specific.Value), Extra: dis.Extra(e.Extra.Value),
	}
}

func (e EntityType) write(w *bitio.Writer) error {
	if err := w.WriteUnsigned(8, uint64(e.Kind)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(8, uint64(e.Domain)); err != nil {
		return err
	}
	if err := w.WriteUnsigned(16, uint64(e.Country)); err != nil {
		return err
	}
	if err := e.Category.Write(w); err != nil {
		return err
	}
	if err := e.Subcategory.Write(w); err != nil {
		return err
	}
	if err := e.Specific.Write(w); err != nil {
		return err
	}
	return e.Extra.Write(w)
}

func readEntityType(r *bitio.Reader) (EntityType, error) {
	kind, err := r.Take(8)
	if err != nil {
		return EntityType{}, err
	}
	domain, err := r.Take(8)
	if err != nil {
		return EntityType{}, err
	}
	country, err := r.Take(16)
	if err != nil {
		return EntityType{}, err
	}
	category, err := varint.ReadUVINT8(r)
	if err != nil {
		return EntityType{}, err
	}
	subcategory, err := varint.ReadUVINT8(r)
	if err != nil {
		return EntityType{}, err
	}
	specific, err := varint.ReadUVINT8(r)
	if err != nil {
		return EntityType{}, err
	}
	extra, err := varint.ReadUVINT8(r)
	if err != nil {
		return EntityType{}, err
	}
	return EntityType{
		Kind: uint8(kind), Domain: uint8(domain), Country: uint16(country),
		Category: category, Subcategory: subcategory, Specific: specific, Extra: extra,
	}, nil
}

// LinearVelocity is three SVINT16 components at a fixed 1 dm/s LSB, per
// spec.md section 3.2 — no unit-selector bit accompanies it.
type LinearVelocity struct {
	X, Y, Z varint.SVINT16
}

func LinearVelocityFromDis(v dis.VectorF32) LinearVelocity {
	return LinearVelocity{
		X: varint.NewSVINT16(int16(units.QuantizeLinearVelocityComponent(float64(v.X)))),
		Y: varint.NewSVINT16(int16(units.QuantizeLinearVelocityComponent(float64(v.Y)))),
		Z: varint.NewSVINT16(int16(units.QuantizeLinearVelocityComponent(float64(v.Z)))),
	}
}

func (v LinearVelocity) ToDis() dis.VectorF32 {
	return dis.VectorF32{
		X: float32(units.DequantizeLinearVelocityComponent(int32(v.X.Value))),
		Y: float32(units.DequantizeLinearVelocityComponent(int32(v.Y.Value))),
		Z: float32(units.DequantizeLinearVelocityComponent(int32(v.Z.Value))),
	}
}

func (v LinearVelocity) write(w *bitio.Writer) error {
	if err := v.X.Write(w); err != nil {
		return err
	}
	if err := v.Y.Write(w); err != nil {
		return err
	}
	return v.Z.Write(w)
}

func readLinearVelocity(r *bitio.Reader) (LinearVelocity, error) {
	x, err := varint.ReadSVINT16(r)
	if err != nil {
		return LinearVelocity{}, err
	}
	y, err := varint.ReadSVINT16(r)
	if err != nil {
		return LinearVelocity{}, err
	}
	z, err := varint.ReadSVINT16(r)
	if err != nil {
		return LinearVelocity{}, err
	}
	return LinearVelocity{X: x, Y: y, Z: z}, nil
}

// EntityCoordinateVector is an entity-relative position, unit-selectable
// between centimeters and meters by a flag carried in the enclosing PDU,
// per spec.md section 3.2 and section 4.3.
type EntityCoordinateVector struct {
	X, Y, Z varint.SVINT16
}

func EntityCoordinateVectorFromDis(v dis.VectorF32) (EntityCoordinateVector, units.LocationUnit) {
	qx, qy, qz, unit := units.QuantizeEntityLocation(float64(v.X), float64(v.Y), float64(v.Z))
	return EntityCoordinateVector{X: varint.NewSVINT16(int16(qx)), Y: varint.NewSVINT16(int16(qy)), Z: varint.NewSVINT16(int16(qz))}, unit
}

func (v EntityCoordinateVector) ToDis(unit units.LocationUnit) dis.VectorF32 {
	x, y, z := units.DequantizeEntityLocation(int32(v.X.Value), int32(v.Y.Value), int32(v.Z.Value), unit)
	return dis.VectorF32{X: float32(x), Y: float32(y), Z: float32(z)}
}

func (v EntityCoordinateVector) write(w *bitio.Writer) error {
	if err := v.X.Write(w); err != nil {
		return err
	}
	if err := v.Y.Write(w); err != nil {
		return err
	}
	return v.Z.Write(w)
}

func readEntityCoordinateVector(r *bitio.Reader) (EntityCoordinateVector, error) {
	x, err := varint.ReadSVINT16(r)
	if err != nil {
		return EntityCoordinateVector{}, err
	}
	y, err := varint.ReadSVINT16(r)
	if err != nil {
		return EntityCoordinateVector{}, err
	}
	z, err := varint.ReadSVINT16(r)
	if err != nil {
		return EntityCoordinateVector{}, err
	}
	return EntityCoordinateVector{X: x, Y: y, Z: z}, nil
}

// Orientation fields are fixed-width 13-bit signed angles at LSB =
// pi/4096 radians, per spec.md section 3.2.
type Orientation struct {
	Psi, Theta, Phi int16
}

const (
	orientationBits = 13
	orientationLSB  = math.Pi / 4096
)

func OrientationFromDis(o dis.Orientation) Orientation {
	return Orientation{
		Psi:   quantizeAngle(float64(o.Psi)),
		Theta: quantizeAngle(float64(o.Theta)),
		Phi:   quantizeAngle(float64(o.Phi)),
	}
}

func quantizeAngle(radians float64) int16 {
	v := int64(math.Round(radians / orientationLSB))
	const lo, hi = -4096, 4095
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return int16(v)
}

func (o Orientation) ToDis() dis.Orientation {
	return dis.Orientation{
		Psi:   float32(float64(o.Psi) * orientationLSB),
		Theta: float32(float64(o.Theta) * orientationLSB),
		Phi:   float32(float64(o.Phi) * orientationLSB),
	}
}

func (o Orientation) write(w *bitio.Writer) error {
	if err := w.WriteSigned(orientationBits, int64(o.Psi)); err != nil {
		return err
	}
	if err := w.WriteSigned(orientationBits, int64(o.Theta)); err != nil {
		return err
	}
	return w.WriteSigned(orientationBits, int64(o.Phi))
}

func readOrientation(r *bitio.Reader) (Orientation, error) {
	psi, err := r.TakeSigned(orientationBits)
	if err != nil {
		return Orientation{}, err
	}
	theta, err := r.TakeSigned(orientationBits)
	if err != nil {
		return Orientation{}, err
	}
	phi, err := r.TakeSigned(orientationBits)
	if err != nil {
		return Orientation{}, err
	}
	return Orientation{Psi: int16(psi), Theta: int16(theta), Phi: int16(phi)}, nil
}

// WorldCoordinates is a bit-packed geodetic position: latitude (31-bit
// signed fraction of pi/2), longitude (32-bit signed fraction of pi),
// and altitude (24-bit signed, unit-selectable meters/dekameters), per
// spec.md sections 3.2 and 4.3.
type WorldCoordinates struct {
	LatitudeScaled  int64
	LongitudeScaled int64
	AltitudeValue   int32
	AltitudeUnit    units.AltitudeUnit
}

const (
	latitudeBits  = 31
	longitudeBits = 32
	altitudeBits  = 24

	latitudeBound  = math.Pi / 2
	longitudeBound = math.Pi
)

var (
	latitudeScale  = float64((int64(1)<<(latitudeBits-1))-1) / latitudeBound
	longitudeScale = float64((int64(1)<<(longitudeBits-2))-1) / longitudeBound
)

// WorldCoordinatesFromGeodetic quantizes a WGS-84 geodetic position
// (latitude and longitude in radians, altitude in meters).
func WorldCoordinatesFromGeodetic(latRadians, lonRadians, altMeters float64) WorldCoordinates {
	altValue, altUnit := units.QuantizeAltitude(altMeters)
	return WorldCoordinates{
		LatitudeScaled:  int64(math.Round(latRadians * latitudeScale)),
		LongitudeScaled: int64(math.Round(lonRadians * longitudeScale)),
		AltitudeValue:   altValue,
		AltitudeUnit:    altUnit,
	}
}

// ToGeodetic is the inverse of WorldCoordinatesFromGeodetic.
func (c WorldCoordinates) ToGeodetic() (latRadians, lonRadians, altMeters float64) {
	latRadians = float64(c.LatitudeScaled) / latitudeScale
	lonRadians = float64(c.LongitudeScaled) / longitudeScale
	altMeters = units.DequantizeAltitude(c.AltitudeValue, c.AltitudeUnit)
	return
}

func (c WorldCoordinates) write(w *bitio.Writer) error {
	if err := w.WriteSigned(latitudeBits, c.LatitudeScaled); err != nil {
		return err
	}
	if err := w.WriteSigned(longitudeBits, c.LongitudeScaled); err != nil {
		return err
	}
	if err := w.WriteSigned(altitudeBits, int64(c.AltitudeValue)); err != nil {
		return err
	}
	unit := uint64(0)
	if c.AltitudeUnit == units.AltitudeUnitDekameters {
		unit = 1
	}
	return w.WriteUnsigned(1, unit)
}

func readWorldCoordinates(r *bitio.Reader) (WorldCoordinates, error) {
	lat, err := r.TakeSigned(latitudeBits)
	if err != nil {
		return WorldCoordinates{}, err
	}
	lon, err := r.TakeSigned(longitudeBits)
	if err != nil {
		return WorldCoordinates{}, err
	}
	alt, err := r.TakeSigned(altitudeBits)
	if err != nil {
		return WorldCoordinates{}, err
	}
	unitBit, err := r.Take(1)
	if err != nil {
		return WorldCoordinates{}, err
	}
	unit := units.AltitudeUnitMeters
	if unitBit == 1 {
		unit = units.AltitudeUnitDekameters
	}
	return WorldCoordinates{LatitudeScaled: lat, LongitudeScaled: lon, AltitudeValue: int32(alt), AltitudeUnit: unit}, nil
}

// ClockTime packs the DIS ClockTime's sub-hour component into 26 bits
// (1 absolute/relative flag bit + 25 quantized time bits), per
// spec.md section 3.2. The hour component is not carried at the PDU
// level; federations synchronize it out of band the way they
// synchronize exercise start time.
type ClockTime struct {
	Absolute       bool
	QuantizedTicks uint32 // 25 bits
}

const (
	clockTimeTickBits = 25
	nanosecondsPerHour = 3.6e12
)

var clockTimeTicksPerHour = float64((uint32(1)<<clockTimeTickBits)-1) / nanosecondsPerHour

func ClockTimeFromDis(c dis.ClockTime) ClockTime {
	// TimePastHour's upper 31 bits are the fraction-of-hour value in DIS's
	// own tick units (3.6e12/(2^31-1) ns each); rescale to this format's
	// 25-bit tick.
	disTicks := c.TimePastHour >> 1
	nanos := float64(disTicks) * (nanosecondsPerHour / float64((uint32(1)<<31)-1))
	return ClockTime{Absolute: c.IsAbsolute(), QuantizedTicks: uint32(math.Round(nanos * clockTimeTicksPerHour))}
}

func (c ClockTime) ToDis(hour int32) dis.ClockTime {
	nanos := float64(c.QuantizedTicks) / clockTimeTicksPerHour
	disTicks := uint32(math.Round(nanos / (nanosecondsPerHour / float64((uint32(1)<<31)-1))))
	tph := disTicks << 1
	if c.Absolute {
		tph |= 1
	}
	return dis.ClockTime{Hour: hour, TimePastHour: tph}
}

func (c ClockTime) write(w *bitio.Writer) error {
	abs := uint64(0)
	if c.Absolute {
		abs = 1
	}
	if err := w.WriteUnsigned(1, abs); err != nil {
		return err
	}
	return w.WriteUnsigned(clockTimeTickBits, uint64(c.QuantizedTicks))
}

func readClockTime(r *bitio.Reader) (ClockTime, error) {
	abs, err := r.Take(1)
	if err != nil {
		return ClockTime{}, err
	}
	ticks, err := r.Take(clockTimeTickBits)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Absolute: abs == 1, QuantizedTicks: uint32(ticks)}, nil
}

// VariableParameter mirrors dis.VariableParameter: a UVINT8 record type
// tag followed by its 15-byte payload, carried as raw bits since the
// payload's interpretation depends on the tag.
type VariableParameter struct {
	RecordType varint.UVINT8
	Payload    [15]byte
}

func VariableParameterFromDis(p dis.VariableParameter) VariableParameter {
	return VariableParameter{RecordType: varint.NewUVINT8(p.RecordType), Payload: p.Payload}
}

func (v VariableParameter) ToDis() dis.VariableParameter {
	return dis.VariableParameter{RecordType: v.RecordType.Value, Payload: v.Payload}
}

func (v VariableParameter) write(w *bitio.Writer) error {
	if err := v.RecordType.Write(w); err != nil {
		return err
	}
	for _, b := range v.Payload {
		if err := w.WriteUnsigned(8, uint64(b)); err != nil {
			return err
		}
	}
	return nil
}

func readVariableParameter(r *bitio.Reader) (VariableParameter, error) {
	recordType, err := varint.ReadUVINT8(r)
	if err != nil {
		return VariableParameter{}, err
	}
	var payload [15]byte
	for i := range payload {
		b, err := r.Take(8)
		if err != nil {
			return VariableParameter{}, err
		}
		payload[i] = byte(b)
	}
	return VariableParameter{RecordType: recordType, Payload: payload}, nil
}
