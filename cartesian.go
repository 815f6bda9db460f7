package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Geographic <-> geocentric cartesian (ECEF) conversion, generalized from the ancestor's           */
/* LatLonEllipsoidalDatum.ToCartesian / Cartesian.ToLatLon (latlon-ellipsoidal-datum.go) to take an  */
/* arbitrary Ellipsoid rather than a fixed Datum, and to report a near-pole fallback explicitly.     */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// GeographicToCartesian converts geodetic (lon, lat, height) in radians/metres
// to geocentric cartesian (X, Y, Z) in metres, via the closed-form
// x=(N+h)cosφcosλ, y=(N+h)cosφsinλ, z=(N(1-e²)+h)sinφ.
func GeographicToCartesian(lon, lat, height float64, e Ellipsoid) (x, y, z float64) {
	sinPhi, cosPhi := math.Sincos(lat)
	sinLam, cosLam := math.Sincos(lon)
	n := e.PrimeVertical(lat)

	x = (n + height) * cosPhi * cosLam
	y = (n + height) * cosPhi * sinLam
	z = (n*(1-e.Esq()) + height) * sinPhi
	return x, y, z
}

// horizontalRadiusEpsilon is the "near the polar singularity" threshold from
// the spec: below this horizontal radius (in metres), treat the point as
// exactly on the polar axis.
const horizontalRadiusEpsilon = 1e-12

// CartesianToGeographic converts geocentric cartesian (X, Y, Z) metres to
// geodetic (lon, lat, height) via Bowring's (1985) closed-form iteration-free
// formulation with Rouault's numerically stable c,s computation (single
// atan2, no iteration), per §4.C. Near the polar singularity (horizontal
// radius below 1 pm) it returns (±pi/2, atan2(y,x), |z|-b) directly.
func CartesianToGeographic(x, y, z float64, e Ellipsoid) (lon, lat, height float64) {
	a, b := e.A, e.B()
	e2 := e.Esq()
	ePrime2 := e.EPrimeSq()

	p := math.Hypot(x, y)
	lon = math.Atan2(y, x)

	if p < horizontalRadiusEpsilon {
		lat = math.Copysign(math.Pi/2, z)
		height = math.Abs(z) - b
		return lon, lat, height
	}

	r := math.Hypot(p, z)

	// parametric (reduced) latitude via Bowring eqn. 17
	tanBeta := (b * z) / (a * p) * (1 + ePrime2*b/r)
	sinBeta := tanBeta / math.Sqrt(1+tanBeta*tanBeta)
	cosBeta := sinBeta / tanBeta

	lat = math.Atan2(z+ePrime2*b*sinBeta*sinBeta*sinBeta, p-e2*a*cosBeta*cosBeta*cosBeta)

	sinPhi, cosPhi := math.Sincos(lat)
	n := a / math.Sqrt(1-e2*sinPhi*sinPhi)
	height = p*cosPhi + z*sinPhi - a*a/n

	return lon, lat, height
}
