package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Normal gravity formulas (Somigliana family) and height corrections, supplementing §4.C per       */
/* SPEC_FULL.md; backs the `gravity` operator (op_gravity.go). Grounded on                           */
/* original_source/src/ellipsoid/gravity.rs, reimplemented against this package's Ellipsoid type.    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// GravityFormula names a normal-gravity parameterization.
type GravityFormula int

const (
	Somigliana GravityFormula = iota
	Cassinis30
	Jeffreys48
	GRS67
	GRS80Gravity
)

type gravityConstants struct {
	gammaEquator float64 // gamma_a, m/s^2, gravity at the equator
	gammaPole    float64 // gamma_b, m/s^2, gravity at the pole
}

var gravityTable = map[GravityFormula]gravityConstants{
	Somigliana:   {gammaEquator: 9.7803253359, gammaPole: 9.8321849378}, // WGS84 normal gravity
	Cassinis30:   {gammaEquator: 9.78049, gammaPole: 9.83057869},
	Jeffreys48:   {gammaEquator: 9.780373, gammaPole: 9.832246},
	GRS67:        {gammaEquator: 9.7803184559, gammaPole: 9.8321863685},
	GRS80Gravity: {gammaEquator: 9.7803267715, gammaPole: 9.8321863685},
}

// NormalGravity returns normal gravity at the ellipsoid surface at geodetic
// latitude phi (radians), via the Somigliana formula parameterized by the
// chosen historical constants:
//
//	gamma(phi) = (a*gammaEquator*cos^2(phi) + b*gammaPole*sin^2(phi)) / sqrt(a^2 cos^2(phi) + b^2 sin^2(phi))
func NormalGravity(phi float64, e Ellipsoid, formula GravityFormula) float64 {
	c := gravityTable[formula]
	a, b := e.A, e.B()
	sinPhi, cosPhi := math.Sincos(phi)
	num := a*c.gammaEquator*cosPhi*cosPhi + b*c.gammaPole*sinPhi*sinPhi
	den := math.Sqrt(a*a*cosPhi*cosPhi + b*b*sinPhi*sinPhi)
	return num / den
}

// FreeAirCorrection returns the free-air correction (m/s^2) to apply to
// surface normal gravity for a point at orthometric height h (metres) above
// the ellipsoid: approximately -0.3086 mGal/m, i.e. -3.086e-6 * h in SI
// units, via the linear free-air gradient.
func FreeAirCorrection(height float64) float64 {
	return -3.086e-6 * height
}

// NormalGravityAtHeight returns normal gravity at latitude phi and
// orthometric height h, combining the Somigliana surface value with the
// free-air correction.
func NormalGravityAtHeight(phi, height float64, e Ellipsoid, formula GravityFormula) float64 {
	return NormalGravity(phi, e, formula) + FreeAirCorrection(height)
}

// WELMEC combines surface normal gravity and the free-air correction per the
// WELMEC (European cooperation in legal metrology) guide formula, used for
// weighing-instrument calibration: gamma(phi) * (1 - 2/a*(1+f+m-2f*sin^2(phi))*h + 3/a^2*h^2),
// where m = omega^2*a^2*b/GM is the ellipsoid's gravity flattening ratio,
// approximated here via the WGS84 constant since SPEC_FULL.md does not
// parameterize it per ellipsoid.
func WELMEC(phi, height float64, e Ellipsoid) float64 {
	const m = 0.00344978650684 // WGS84 gravity-flattening ratio m
	sinPhi := math.Sin(phi)
	gamma := NormalGravity(phi, e, GRS80Gravity)
	a := e.A
	return gamma * (1 - 2/a*(1+e.F+m-2*e.F*sinPhi*sinPhi)*height + 3/(a*a)*height*height)
}
