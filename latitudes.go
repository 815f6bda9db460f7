package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Auxiliary latitudes: conformal (chi), rectifying (mu) and authalic (xi), plus isometric latitude */
/* (psi), all as pure functions of geographic latitude phi and an Ellipsoid. Conformal latitude is  */
/* tied to isometric latitude by the exact identity chi = gd(psi) (gd = Gudermannian, mathprim.go),  */
/* which is how this kernel avoids needing a separate truncated series for it: isometric latitude   */
/* itself has the spec's mandated exact closed form, so composing it with the (also exact)           */
/* Gudermannian gives conformal latitude to full float64 precision rather than a 6-term truncation.  */
/* Rectifying latitude is evaluated from the 4-term meridian-arc series in n (MeridianArc) and        */
/* inverted by Newton iteration; authalic latitude uses Snyder's closed-form q function forward and  */
/* his series in e^2 (through e^6) for the inverse.                                                  */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// IsometricLatitude returns psi(phi) = asinh(tan(phi)) - e*atanh(e*sin(phi)),
// the exact forward isometric-latitude formula.
func IsometricLatitude(phi float64, e Ellipsoid) float64 {
	ecc := e.E()
	sinPhi := math.Sin(phi)
	return math.Asinh(math.Tan(phi)) - ecc*math.Atanh(ecc*sinPhi)
}

// InverseIsometricLatitude recovers phi from isometric latitude psi by
// Newton iteration on psi(phi) - psi = 0, following Karney: up to five
// iterations, converging to sqrt(epsilon). The derivative of psi w.r.t. phi
// is (1-e^2) / (cos(phi)*(1-e^2 sin^2(phi))).
func InverseIsometricLatitude(psi float64, e Ellipsoid) float64 {
	ecc2 := e.Esq()
	phi := Gudermannian(psi) // spherical (e=0) inverse as starting guess
	const maxIter = 5
	tol := math.Sqrt(epsFloat64)
	for i := 0; i < maxIter; i++ {
		f := IsometricLatitude(phi, e) - psi
		sinPhi, cosPhi := math.Sincos(phi)
		df := (1 - ecc2) / (cosPhi * (1 - ecc2*sinPhi*sinPhi))
		delta := f / df
		phi -= delta
		if math.Abs(delta) < tol {
			break
		}
	}
	return phi
}

const epsFloat64 = 2.220446049250313e-16

// ConformalLatitude returns the conformal latitude chi(phi) = gd(psi(phi)).
func ConformalLatitude(phi float64, e Ellipsoid) float64 {
	return Gudermannian(IsometricLatitude(phi, e))
}

// InverseConformalLatitude recovers phi from conformal latitude chi.
func InverseConformalLatitude(chi float64, e Ellipsoid) float64 {
	return InverseIsometricLatitude(InverseGudermannian(chi), e)
}

// Ts returns the numerically stable "t" function used by conic projections
// (LCC): ts = exp(-psi) where psi is the isometric latitude, computed
// directly from phi without forming psi so it stays accurate near the poles
// (Snyder 1987 eq. 15-9).
func Ts(phi, sinPhi, e float64) float64 {
	eSinPhi := e * sinPhi
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-eSinPhi)/(1+eSinPhi), e/2)
}

// MeridianArc returns the meridional arc length from the equator to
// geographic latitude phi, via the classical 4-term series in the third
// flattening n (Helmert/Redfearn), generalized here from the teacher's
// hardcoded-to-Airy-1830 meridional arc terms (see the OS-grid-reference
// projection this package's ancestor implemented) to an arbitrary Ellipsoid.
func MeridianArc(phi float64, e Ellipsoid) float64 {
	n := e.N()
	n2, n3 := n*n, n*n*n
	b := e.B()

	ma := (1 + n + 5.0/4*n2 + 5.0/4*n3) * phi
	mb := (3*n + 3*n2 + 21.0/8*n3) * math.Sin(phi) * math.Cos(phi)
	mc := (15.0/8*n2 + 15.0/8*n3) * math.Sin(2*phi) * math.Cos(2*phi)
	md := (35.0 / 24 * n3) * math.Sin(3*phi) * math.Cos(3*phi)

	return b * (ma - mb + mc - md)
}

// meridianQuarter is the meridian arc length from the equator to the pole,
// M(pi/2), used to normalize rectifying latitude to the range of phi.
func meridianQuarter(e Ellipsoid) float64 {
	return MeridianArc(math.Pi/2, e)
}

// RectifyingLatitude returns the rectifying latitude mu(phi), defined so
// that mu is proportional to meridian arc length and shares phi's range:
// mu = (pi/2) * M(phi) / M(pi/2).
func RectifyingLatitude(phi float64, e Ellipsoid) float64 {
	mp := meridianQuarter(e)
	if mp == 0 {
		return phi
	}
	return (math.Pi / 2) * MeridianArc(phi, e) / mp
}

// InverseRectifyingLatitude recovers phi from rectifying latitude mu by
// Newton iteration on the (monotonic, smooth) arc-length relation, using the
// meridian radius of curvature as the derivative dM/dphi.
func InverseRectifyingLatitude(mu float64, e Ellipsoid) float64 {
	mp := meridianQuarter(e)
	target := mu / (math.Pi / 2) * mp
	phi := mu // good starting guess: mu ~= phi for small flattening
	for i := 0; i < 10; i++ {
		f := MeridianArc(phi, e) - target
		df := e.MeridianRadius(phi)
		if df == 0 {
			break
		}
		delta := f / df
		phi -= delta
		if math.Abs(delta) < 1e-15 {
			break
		}
	}
	return phi
}

// authalicQ returns Snyder's (1987) eq. 3-12 "q" function, twice the area of
// the polar cap from the equator to phi divided by a^2.
func authalicQ(phi float64, e Ellipsoid) float64 {
	ecc := e.E()
	sinPhi := math.Sin(phi)
	if ecc == 0 {
		return 2 * sinPhi
	}
	return (1 - ecc*ecc) * (sinPhi/(1-ecc*ecc*sinPhi*sinPhi) -
		(1/(2*ecc))*math.Log((1-ecc*sinPhi)/(1+ecc*sinPhi)))
}

// AuthalicLatitude returns the authalic latitude xi(phi), the latitude on an
// authalic (equal-area) sphere that preserves area, via Snyder eq. 3-11,
// asin(q(phi)/q(pi/2)).
func AuthalicLatitude(phi float64, e Ellipsoid) float64 {
	qp := authalicQ(math.Pi/2, e)
	if qp == 0 {
		return phi
	}
	ratio := authalicQ(phi, e) / qp
	ratio = math.Max(-1, math.Min(1, ratio))
	return math.Asin(ratio)
}

// InverseAuthalicLatitude recovers phi from authalic latitude xi via
// Snyder's series (eq. 3-18), a Horner-evaluated polynomial in e^2 with
// coefficients through e^6.
func InverseAuthalicLatitude(xi float64, e Ellipsoid) float64 {
	e2 := e.Esq()
	e4 := e2 * e2
	e6 := e4 * e2

	c2 := e2/3 + 31*e4/180 + 517*e6/5040
	c4 := 23*e4/360 + 251*e6/3780
	c6 := 761 * e6 / 45360

	return xi + c2*math.Sin(2*xi) + c4*math.Sin(4*xi) + c6*math.Sin(6*xi)
}

// GeocentricLatitude returns the geocentric latitude psi_c(phi), the angle
// from the equatorial plane to the line from the ellipsoid center (as
// opposed to the geodetic normal).
func GeocentricLatitude(phi float64, e Ellipsoid) float64 {
	return math.Atan((1 - e.Esq()) * math.Tan(phi))
}

// InverseGeocentricLatitude recovers geodetic latitude from geocentric
// latitude; the relation is its own (exact) inverse up to the reciprocal
// factor.
func InverseGeocentricLatitude(psiC float64, e Ellipsoid) float64 {
	return math.Atan(math.Tan(psiC) / (1 - e.Esq()))
}

// ReducedLatitude (parametric latitude) returns beta(phi) = atan((1-f) tan(phi)),
// the latitude on the auxiliary sphere used by Vincenty's geodesic formulas.
func ReducedLatitude(phi float64, e Ellipsoid) float64 {
	return math.Atan((1 - e.F) * math.Tan(phi))
}

// InverseReducedLatitude recovers phi from reduced latitude beta.
func InverseReducedLatitude(beta float64, e Ellipsoid) float64 {
	return math.Atan(math.Tan(beta) / (1 - e.F))
}
