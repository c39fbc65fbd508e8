package dis

import (
	"encoding/binary"
	"math"
)

// MinHeaderLength is the fixed size, in bytes, of a DIS PDU header.
const MinHeaderLength = 12

// MTUBytes bounds a single DIS PDU the way bitio.MTUBytes bounds a C-DIS
// one; DIS is byte-aligned so the cursor below counts octets, not bits.
const MTUBytes = 8192

// ByteWriter accumulates a byte-aligned DIS PDU into a fixed buffer.
type ByteWriter struct {
	buf    [MTUBytes]byte
	cursor int
}

// NewByteWriter returns a zeroed ByteWriter.
func NewByteWriter() *ByteWriter { return &ByteWriter{} }

// Len returns the number of bytes written so far.
func (w *ByteWriter) Len() int { return w.cursor }

// Bytes returns the written prefix.
func (w *ByteWriter) Bytes() []byte {
	out := make([]byte, w.cursor)
	copy(out, w.buf[:w.cursor])
	return out
}

func (w *ByteWriter) reserve(n int) ([]byte, error) {
	if w.cursor+n > MTUBytes {
		return nil, &InsufficientBufferSizeError{Needed: w.cursor + n, Available: MTUBytes}
	}
	b := w.buf[w.cursor : w.cursor+n]
	w.cursor += n
	return b, nil
}

func (w *ByteWriter) WriteUint8(v uint8) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (w *ByteWriter) WriteUint16(v uint16) error {
	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, v)
	return nil
}

func (w *ByteWriter) WriteUint32(v uint32) error {
	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, v)
	return nil
}

func (w *ByteWriter) WriteUint64(v uint64) error {
	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, v)
	return nil
}

func (w *ByteWriter) WriteInt8(v int8) error  { return w.WriteUint8(uint8(v)) }
func (w *ByteWriter) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }
func (w *ByteWriter) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

func (w *ByteWriter) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

func (w *ByteWriter) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteFixedString writes s left-justified and zero-padded to exactly n
// bytes, the convention DIS marking/specification strings use. field
// names the record field in error messages; s must be ASCII and must
// not exceed n bytes, or the write is rejected rather than silently
// truncated.
func (w *ByteWriter) WriteFixedString(field, s string, n int) error {
	if !isASCII(s) {
		return &StringNotASCIIError{Field: field}
	}
	if len(s) > n {
		return &StringTooLongError{Field: field, Max: n}
	}
	b, err := w.reserve(n)
	if err != nil {
		return err
	}
	copy(b, []byte(s))
	return nil
}

// isASCII reports whether every byte of s is a 7-bit ASCII code point.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func (w *ByteWriter) WriteBytes(p []byte) error {
	b, err := w.reserve(len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

// Pad writes n zero bytes, used for documented padding fields.
func (w *ByteWriter) Pad(n int) error {
	_, err := w.reserve(n)
	return err
}

// PatchUint16At overwrites a previously-reserved uint16 slot at offset.
func (w *ByteWriter) PatchUint16At(offset int, v uint16) {
	binary.BigEndian.PutUint16(w.buf[offset:offset+2], v)
}

// ByteReader walks a borrowed byte slice received over the wire.
type ByteReader struct {
	buf    []byte
	cursor int
}

func NewByteReader(buf []byte) *ByteReader { return &ByteReader{buf: buf} }

func (r *ByteReader) Len() int       { return len(r.buf) }
func (r *ByteReader) Cursor() int    { return r.cursor }
func (r *ByteReader) Remaining() int { return len(r.buf) - r.cursor }

func (r *ByteReader) take(n int) ([]byte, error) {
	if r.cursor+n > len(r.buf) {
		return nil, &InsufficientPduLengthError{Expected: r.cursor + n, Found: len(r.buf)}
	}
	b := r.buf[r.cursor : r.cursor+n]
	r.cursor += n
	return b, nil
}

func (r *ByteReader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ByteReader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *ByteReader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *ByteReader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *ByteReader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *ByteReader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *ByteReader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *ByteReader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *ByteReader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadFixedString reads exactly n bytes and trims trailing NUL padding.
func (r *ByteReader) ReadFixedString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}

func (r *ByteReader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (r *ByteReader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// Rewind moves the cursor back n bytes, for callers that peek ahead to
// decide how to parse a variable-layout tail.
func (r *ByteReader) Rewind(n int) error {
	if r.cursor-n < 0 {
		return &InsufficientPduLengthError{Expected: n, Found: r.cursor}
	}
	r.cursor -= n
	return nil
}
