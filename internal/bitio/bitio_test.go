package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteUnsigned(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()
		w := NewWriter()
		require.NoError(t, w.WriteUnsigned(6, 0))
		assert.Equal(t, 6, w.Cursor())
		assert.Equal(t, byte(0x00), w.Bytes()[0])
	})

	t.Run("positive value", func(t *testing.T) {
		t.Parallel()
		w := NewWriter()
		require.NoError(t, w.WriteUnsigned(6, 15))
		assert.Equal(t, byte(0x3C), w.Bytes()[0])
	})

	t.Run("rejects overflow", func(t *testing.T) {
		t.Parallel()
		w := NewWriter()
		err := w.WriteUnsigned(4, 16)
		assert.Error(t, err)
	})
}

func TestWriter_WriteSigned(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value int64
		want  []byte
	}{
		{"min 16-bit", -32768, []byte{0x80, 0x00}},
		{"max 16-bit", 32767, []byte{0x7F, 0xFF}},
		{"negative one", -1, []byte{0xFF, 0xFF}},
		{"zero", 0, []byte{0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := NewWriter()
			require.NoError(t, w.WriteSigned(16, tc.value))
			assert.Equal(t, tc.want, w.Bytes()[:2])
		})
	}

	t.Run("rejects out of range", func(t *testing.T) {
		t.Parallel()
		w := NewWriter()
		assert.Error(t, w.WriteSigned(16, 32768))
		assert.Error(t, w.WriteSigned(16, -32769))
	})
}

func TestRoundTrip_Unsigned(t *testing.T) {
	t.Parallel()
	w := NewWriter()
	require.NoError(t, w.WriteUnsigned(3, 5))
	require.NoError(t, w.WriteUnsigned(13, 4095))
	require.NoError(t, w.WriteUnsigned(8, 200))

	r := NewReader(w.Bytes(), w.Cursor())
	v1, err := r.Take(3)
	require.NoError(t, err)
	v2, err := r.Take(13)
	require.NoError(t, err)
	v3, err := r.Take(8)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), v1)
	assert.Equal(t, uint64(4095), v2)
	assert.Equal(t, uint64(200), v3)
}

func TestRoundTrip_Signed(t *testing.T) {
	t.Parallel()
	for _, v := range []int64{-32768, -1, 0, 1, 32767, -12345, 9999} {
		w := NewWriter()
		require.NoError(t, w.WriteSigned(16, v))
		r := NewReader(w.Bytes(), w.Cursor())
		got, err := r.TakeSigned(16)
		require.NoError(t, err)
		assert.Equal(t, v, got, "round trip of %d", v)
	}
}

func TestReader_InsufficientLength(t *testing.T) {
	t.Parallel()
	r := NewReader([]byte{0xFF}, 4)
	_, err := r.Take(8)
	assert.Error(t, err)
	var insufficient *InsufficientPduLengthError
	assert.ErrorAs(t, err, &insufficient)
}

func TestPadToByte(t *testing.T) {
	t.Parallel()
	w := NewWriter()
	require.NoError(t, w.WriteUnsigned(3, 5))
	cursor := w.PadToByte()
	assert.Equal(t, 8, cursor)
}
