package varint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dis-interop/cdis-gateway/internal/bitio"
)

func TestUVINT16_BucketBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value    uint16
		wantBits int // selector + payload
	}{
		{255, 2 + 8},
		{256, 2 + 11},
		{2048, 2 + 14},
		{65535, 2 + 16},
	}
	for _, tc := range cases {
		w := bitio.NewWriter()
		require.NoError(t, NewUVINT16(tc.value).Write(w))
		assert.Equal(t, tc.wantBits, w.Cursor(), "value %d", tc.value)

		r := bitio.NewReader(w.Bytes(), w.Cursor())
		got, err := ReadUVINT16(r)
		require.NoError(t, err)
		assert.Equal(t, tc.value, got.Value)
	}
}

func TestUVINT_Minimality(t *testing.T) {
	t.Parallel()
	// For every value, the chosen bucket must be no larger than any other
	// bucket that could also hold the value.
	for v := 0; v < 70000; v += 97 {
		w := bitio.NewWriter()
		require.NoError(t, NewUVINT32(uint32(v)).Write(w))
		chosen := w.Cursor()

		for _, width := range uvint32Buckets.widths {
			if width >= 32 || uint64(v) < (uint64(1)<<uint(width)) {
				alt := uvint32Buckets.selectorBits + width
				assert.LessOrEqual(t, chosen, alt, "value %d chose larger bucket than necessary", v)
				break
			}
		}
	}
}

func TestSVINT_RoundTrip(t *testing.T) {
	t.Parallel()
	values := []int16{-2048, -1, 0, 1, 2047, -100, 999}
	for _, v := range values {
		w := bitio.NewWriter()
		require.NoError(t, NewSVINT12(v).Write(w))
		r := bitio.NewReader(w.Bytes(), w.Cursor())
		got, err := ReadSVINT12(r)
		require.NoError(t, err)
		assert.Equal(t, v, got.Value)
	}
}

func TestSVINT24_RoundTrip(t *testing.T) {
	t.Parallel()
	values := []int32{-8388608, -1, 0, 1, 8388607, 123456}
	for _, v := range values {
		w := bitio.NewWriter()
		require.NoError(t, NewSVINT24(v).Write(w))
		r := bitio.NewReader(w.Bytes(), w.Cursor())
		got, err := ReadSVINT24(r)
		require.NoError(t, err)
		assert.Equal(t, v, got.Value)
	}
}

func TestSequentialFields(t *testing.T) {
	t.Parallel()
	w := bitio.NewWriter()
	require.NoError(t, NewUVINT8(12).Write(w))
	require.NoError(t, NewSVINT16(-4000).Write(w))
	require.NoError(t, NewUVINT32(70000).Write(w))

	r := bitio.NewReader(w.Bytes(), w.Cursor())
	a, err := ReadUVINT8(r)
	require.NoError(t, err)
	b, err := ReadSVINT16(r)
	require.NoError(t, err)
	c, err := ReadUVINT32(r)
	require.NoError(t, err)

	assert.Equal(t, uint8(12), a.Value)
	assert.Equal(t, int16(-4000), b.Value)
	assert.Equal(t, uint32(70000), c.Value)
}
