// Package varint implements the UVINT and SVINT variable-length integer
// families used throughout C-DIS: a small bucket-selector prefix followed
// by the value in the smallest bucket width that contains it.
package varint

import (
	"fmt"

	"github.com/dis-interop/cdis-gateway/internal/bitio"
)

// bucketed describes one variable-integer family: its selector width in
// bits and the ordered list of payload widths the selector indexes into.
type bucketed struct {
	selectorBits int
	widths       []int
}

var (
	uvint8Buckets  = bucketed{selectorBits: 1, widths: []int{4, 8}}
	uvint16Buckets = bucketed{selectorBits: 2, widths: []int{8, 11, 14, 16}}
	uvint32Buckets = bucketed{selectorBits: 2, widths: []int{8, 15, 18, 32}}

	svint12Buckets = bucketed{selectorBits: 2, widths: []int{3, 6, 9, 12}}
	svint13Buckets = bucketed{selectorBits: 2, widths: []int{5, 7, 10, 13}}
	svint14Buckets = bucketed{selectorBits: 2, widths: []int{4, 7, 9, 14}}
	svint16Buckets = bucketed{selectorBits: 2, widths: []int{8, 12, 13, 16}}
	svint24Buckets = bucketed{selectorBits: 2, widths: []int{16, 19, 21, 24}}
)

// unsignedBucket returns the index of the smallest bucket whose width can
// hold value unsigned.
func unsignedBucket(b bucketed, value uint64) int {
	for i, width := range b.widths {
		if width >= 64 || value < (uint64(1)<<uint(width)) {
			return i
		}
	}
	return len(b.widths) - 1
}

// signedBucket returns the index of the smallest bucket whose two's
// complement width can hold value.
func signedBucket(b bucketed, value int64) int {
	for i, width := range b.widths {
		lo := -(int64(1) << uint(width-1))
		hi := (int64(1) << uint(width-1)) - 1
		if value >= lo && value <= hi {
			return i
		}
	}
	return len(b.widths) - 1
}

func writeUnsigned(w *bitio.Writer, b bucketed, value uint64) error {
	idx := unsignedBucket(b, value)
	if err := w.WriteUnsigned(b.selectorBits, uint64(idx)); err != nil {
		return err
	}
	return w.WriteUnsigned(b.widths[idx], value)
}

func readUnsigned(r *bitio.Reader, b bucketed) (uint64, error) {
	sel, err := r.Take(b.selectorBits)
	if err != nil {
		return 0, err
	}
	idx := int(sel)
	if idx >= len(b.widths) {
		return 0, fmt.Errorf("varint: selector %d out of range for %d buckets", idx, len(b.widths))
	}
	return r.Take(b.widths[idx])
}

func writeSigned(w *bitio.Writer, b bucketed, value int64) error {
	idx := signedBucket(b, value)
	if err := w.WriteUnsigned(b.selectorBits, uint64(idx)); err != nil {
		return err
	}
	return w.WriteSigned(b.widths[idx], value)
}

func readSigned(r *bitio.Reader, b bucketed) (int64, error) {
	sel, err := r.Take(b.selectorBits)
	if err != nil {
		return 0, err
	}
	idx := int(sel)
	if idx >= len(b.widths) {
		return 0, fmt.Errorf("varint: selector %d out of range for %d buckets", idx, len(b.widths))
	}
	return r.TakeSigned(b.widths[idx])
}

// UVINT8 is an unsigned variable-length integer over an 8-bit domain.
type UVINT8 struct{ Value uint8 }

// NewUVINT8 constructs a UVINT8 from a raw value.
func NewUVINT8(v uint8) UVINT8 { return UVINT8{Value: v} }

// Write serializes the value choosing the smallest bucket that fits.
func (v UVINT8) Write(w *bitio.Writer) error {
	return writeUnsigned(w, uvint8Buckets, uint64(v.Value))
}

// ReadUVINT8 parses a UVINT8 from r.
func ReadUVINT8(r *bitio.Reader) (UVINT8, error) {
	val, err := readUnsigned(r, uvint8Buckets)
	if err != nil {
		return UVINT8{}, err
	}
	return UVINT8{Value: uint8(val)}, nil
}

// UVINT16 is an unsigned variable-length integer over a 16-bit domain.
type UVINT16 struct{ Value uint16 }

func NewUVINT16(v uint16) UVINT16 { return UVINT16{Value: v} }

func (v UVINT16) Write(w *bitio.Writer) error {
	return writeUnsigned(w, uvint16Buckets, uint64(v.Value))
}

func ReadUVINT16(r *bitio.Reader) (UVINT16, error) {
	val, err := readUnsigned(r, uvint16Buckets)
	if err != nil {
		return UVINT16{}, err
	}
	return UVINT16{Value: uint16(val)}, nil
}

// UVINT32 is an unsigned variable-length integer over a 32-bit domain.
type UVINT32 struct{ Value uint32 }

func NewUVINT32(v uint32) UVINT32 { return UVINT32{Value: v} }

func (v UVINT32) Write(w *bitio.Writer) error {
	return writeUnsigned(w, uvint32Buckets, uint64(v.Value))
}

func ReadUVINT32(r *bitio.Reader) (UVINT32, error) {
	val, err := readUnsigned(r, uvint32Buckets)
	if err != nil {
		return UVINT32{}, err
	}
	return UVINT32{Value: uint32(val)}, nil
}

// SVINT12 is a signed variable-length integer with buckets {3,6,9,12}.
type SVINT12 struct{ Value int16 }

func NewSVINT12(v int16) SVINT12 { return SVINT12{Value: v} }
func (v SVINT12) Write(w *bitio.Writer) error {
	return writeSigned(w, svint12Buckets, int64(v.Value))
}
func ReadSVINT12(r *bitio.Reader) (SVINT12, error) {
	val, err := readSigned(r, svint12Buckets)
	if err != nil {
		return SVINT12{}, err
	}
	return SVINT12{Value: int16(val)}, nil
}

// SVINT13 is a signed variable-length integer with buckets {5,7,10,13}.
type SVINT13 struct{ Value int16 }

func NewSVINT13(v int16) SVINT13 { return SVINT13{Value: v} }
func (v SVINT13) Write(w *bitio.Writer) error {
	return writeSigned(w, svint13Buckets, int64(v.Value))
}
func ReadSVINT13(r *bitio.Reader) (SVINT13, error) {
	val, err := readSigned(r, svint13Buckets)
	if err != nil {
		return SVINT13{}, err
	}
	return SVINT13{Value: int16(val)}, nil
}

// SVINT14 is a signed variable-length integer with buckets {4,7,9,14}.
type SVINT14 struct{ Value int16 }

func NewSVINT14(v int16) SVINT14 { return SVINT14{Value: v} }
func (v SVINT14) Write(w *bitio.Writer) error {
	return writeSigned(w, svint14Buckets, int64(v.Value))
}
func ReadSVINT14(r *bitio.Reader) (SVINT14, error) {
	val, err := readSigned(r, svint14Buckets)
	if err != nil {
		return SVINT14{}, err
	}
	return SVINT14{Value: int16(val)}, nil
}

// SVINT16 is a signed variable-length integer with buckets {8,12,13,16}.
type SVINT16 struct{ Value int16 }

func NewSVINT16(v int16) SVINT16 { return SVINT16{Value: v} }
func (v SVINT16) Write(w *bitio.Writer) error {
	return writeSigned(w, svint16Buckets, int64(v.Value))
}
func ReadSVINT16(r *bitio.Reader) (SVINT16, error) {
	val, err := readSigned(r, svint16Buckets)
	if err != nil {
		return SVINT16{}, err
	}
	return SVINT16{Value: int16(val)}, nil
}

// SVINT24 is a signed variable-length integer with buckets {16,19,21,24},
// stored in an int32 since the DIS side (entity-relative angular rates,
// some altitudes) exceeds the 16-bit domain.
type SVINT24 struct{ Value int32 }

func NewSVINT24(v int32) SVINT24 { return SVINT24{Value: v} }
func (v SVINT24) Write(w *bitio.Writer) error {
	return writeSigned(w, svint24Buckets, int64(v.Value))
}
func ReadSVINT24(r *bitio.Reader) (SVINT24, error) {
	val, err := readSigned(r, svint24Buckets)
	if err != nil {
		return SVINT24{}, err
	}
	return SVINT24{Value: int32(val)}, nil
}

// BitSize returns the number of bits the value would occupy on the wire,
// selector included — used by the minimality property test and by callers
// estimating PDU size before committing to serialize.
func (v UVINT8) BitSize() int  { return uvint8Buckets.selectorBits + uvint8Buckets.widths[unsignedBucket(uvint8Buckets, uint64(v.Value))] }
func (v UVINT16) BitSize() int { return uvint16Buckets.selectorBits + uvint16Buckets.widths[unsignedBucket(uvint16Buckets, uint64(v.Value))] }
func (v UVINT32) BitSize() int { return uvint32Buckets.selectorBits + uvint32Buckets.widths[unsignedBucket(uvint32Buckets, uint64(v.Value))] }
