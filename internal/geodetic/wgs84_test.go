package geodetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestRoundTrip_ECEFToGeodeticToECEF(t *testing.T) {
	t.Parallel()

	cases := []ECEF{
		{X: 4395122.92, Y: 454787.17, Z: 4527894.29}, // roughly over the Netherlands
		{X: 6378137.0, Y: 0, Z: 0},                   // on the equator, prime meridian
		{X: 0, Y: 0, Z: 6356752.314245},              // north pole
	}

	for _, ecef := range cases {
		g := ToGeodetic(ecef)
		back := ToECEF(g)
		assert.True(t, floats.EqualWithinAbs(ecef.X, back.X, 1e-3), "x: %v vs %v", ecef.X, back.X)
		assert.True(t, floats.EqualWithinAbs(ecef.Y, back.Y, 1e-3), "y: %v vs %v", ecef.Y, back.Y)
		assert.True(t, floats.EqualWithinAbs(ecef.Z, back.Z, 1e-3), "z: %v vs %v", ecef.Z, back.Z)
	}
}

func TestToGeodetic_Equator(t *testing.T) {
	t.Parallel()
	g := ToGeodetic(ECEF{X: SemiMajorAxis, Y: 0, Z: 0})
	assert.True(t, floats.EqualWithinAbs(g.LatitudeRadians, 0, 1e-9))
	assert.True(t, floats.EqualWithinAbs(g.LongitudeRadians, 0, 1e-9))
	assert.True(t, floats.EqualWithinAbs(g.AltitudeMeters, 0, 1e-3))
}

func TestToGeodetic_DegenerateNearCenter(t *testing.T) {
	t.Parallel()
	g := ToGeodetic(ECEF{X: 1, Y: 1, Z: 1})
	assert.Equal(t, Geodetic{}, g)
}

func TestToECEF_NorthPole(t *testing.T) {
	t.Parallel()
	g := Geodetic{LatitudeRadians: math.Pi / 2, LongitudeRadians: 0, AltitudeMeters: 0}
	ecef := ToECEF(g)
	assert.True(t, floats.EqualWithinAbs(ecef.X, 0, 1e-6))
	assert.True(t, floats.EqualWithinAbs(ecef.Y, 0, 1e-6))
	assert.True(t, ecef.Z > 6356000 && ecef.Z < 6357000)
}
