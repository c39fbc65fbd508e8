// Package geodetic converts between the WGS-84 ECEF (earth-centered,
// earth-fixed) frame DIS carries WorldCoordinates in, and the geodetic
// latitude/longitude/altitude frame C-DIS quantizes them into.
package geodetic

import "math"

// WGS-84 reference ellipsoid constants, per SISO-REF-010 and the
// original dis-rs/cdis-assemble constants module.
const (
	SemiMajorAxis             = 6378137.0
	FirstEccentricitySquared  = 6.6943799901377997e-3
)

var (
	a1 = SemiMajorAxis * FirstEccentricitySquared
	a2 = a1 * a1
	a3 = a1 * FirstEccentricitySquared / 2.0
	a4 = 2.5 * a2
	a5 = a1 + a3
	a6 = 1.0 - FirstEccentricitySquared
)

// Geodetic is a latitude/longitude/altitude coordinate, angles in
// radians and altitude in meters above the ellipsoid.
type Geodetic struct {
	LatitudeRadians  float64
	LongitudeRadians float64
	AltitudeMeters   float64
}

// ECEF is an earth-centered, earth-fixed Cartesian coordinate in meters.
type ECEF struct {
	X, Y, Z float64
}

// branchThreshold selects between the sine-stable and cosine-stable
// branches of Olson's closed-form solution, per spec.md section 6.5.
const branchThreshold = 0.3

// nearCenterRadiusMeters below this distance from the origin the
// algorithm's assumptions break down; such points cannot represent a
// physical DIS entity so the conversion reports the degenerate origin.
const nearCenterRadiusMeters = 100000.0

// ToGeodetic converts an ECEF coordinate to geodetic latitude, longitude
// and altitude, using Olson's 1996 closed-form algorithm (the same one
// cdis-assemble's EcefToGeoConstants drives).
func ToGeodetic(e ECEF) Geodetic {
	w2 := e.X*e.X + e.Y*e.Y
	w := math.Sqrt(w2)
	z2 := e.Z * e.Z
	r2 := w2 + z2
	r := math.Sqrt(r2)

	if r < nearCenterRadiusMeters {
		return Geodetic{}
	}

	lon := math.Atan2(e.Y, e.X)

	s2 := z2 / r2
	c2 := w2 / r2
	u := a2 / r
	v := a3 - a4/r

	var lat, s, c, ss float64
	if c2 > branchThreshold {
		s = (e.Z / r) * (1.0 + c2*(a1+u+s2*v)/r)
		lat = math.Asin(s)
		ss = s * s
		c = math.Sqrt(1.0 - ss)
	} else {
		c = (w / r) * (1.0 - s2*(a5-u-c2*v)/r)
		lat = math.Acos(c)
		ss = 1.0 - c*c
		s = math.Sqrt(ss)
		if e.Z < 0 {
			lat = -lat
			s = -s
		}
	}

	g := 1.0 - FirstEccentricitySquared*ss
	rg := SemiMajorAxis / math.Sqrt(g)
	rf := a6 * rg
	uu := w - rg*c
	vv := e.Z - rf*s
	f := c*uu + s*vv
	m := c*vv - s*uu
	p := m / (rg/g + f)

	lat += p
	alt := f + m*p/2.0

	return Geodetic{LatitudeRadians: lat, LongitudeRadians: lon, AltitudeMeters: alt}
}

// ToECEF converts a geodetic coordinate to ECEF, the closed-form inverse
// (no iteration required in this direction).
func ToECEF(g Geodetic) ECEF {
	sinLat := math.Sin(g.LatitudeRadians)
	cosLat := math.Cos(g.LatitudeRadians)
	sinLon := math.Sin(g.LongitudeRadians)
	cosLon := math.Cos(g.LongitudeRadians)

	n := SemiMajorAxis / math.Sqrt(1.0-FirstEccentricitySquared*sinLat*sinLat)

	return ECEF{
		X: (n + g.AltitudeMeters) * cosLat * cosLon,
		Y: (n + g.AltitudeMeters) * cosLat * sinLon,
		Z: (n*a6 + g.AltitudeMeters) * sinLat,
	}
}
