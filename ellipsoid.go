package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* The biaxial ellipsoid: an immutable {a, f} record plus derived shape accessors. Generalizes the  */
/* ancestor's Ellipseoid{a, b, f} (latlon-ellipsoidal-datum.go) to carry only the two independent    */
/* parameters and derive everything else (b, e, e', n...) on demand, since operators need more of    */
/* these derived quantities than the ancestor ever exposed.                                          */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// Ellipsoid is an immutable biaxial ellipsoid of revolution, parameterized by
// semi-major axis a (metres) and flattening f.
type Ellipsoid struct {
	A float64
	F float64
}

// B returns the semi-minor axis, a(1-f).
func (e Ellipsoid) B() float64 { return e.A * (1 - e.F) }

// N returns the third flattening, f/(2-f).
func (e Ellipsoid) N() float64 { return e.F / (2 - e.F) }

// Esq returns the (first) eccentricity squared, f(2-f).
func (e Ellipsoid) Esq() float64 { return e.F * (2 - e.F) }

// E returns the (first) eccentricity.
func (e Ellipsoid) E() float64 { return math.Sqrt(e.Esq()) }

// EPrimeSq returns the second eccentricity squared, e²/(1-e²).
func (e Ellipsoid) EPrimeSq() float64 {
	e2 := e.Esq()
	return e2 / (1 - e2)
}

// EPrime returns the second eccentricity.
func (e Ellipsoid) EPrime() float64 { return math.Sqrt(e.EPrimeSq()) }

// AspectRatio returns b/a = 1-f.
func (e Ellipsoid) AspectRatio() float64 { return 1 - e.F }

// PrimeVertical returns the radius of curvature in the prime vertical at
// geographic latitude phi (radians): N(phi) = a / sqrt(1 - e^2 sin^2(phi)).
func (e Ellipsoid) PrimeVertical(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return e.A / math.Sqrt(1-e.Esq()*sinPhi*sinPhi)
}

// MeridianRadius returns the meridional radius of curvature at geographic
// latitude phi (radians): M(phi) = a(1-e^2) / (1 - e^2 sin^2(phi))^1.5.
func (e Ellipsoid) MeridianRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	denom := 1 - e.Esq()*sinPhi*sinPhi
	return e.A * (1 - e.Esq()) / math.Pow(denom, 1.5)
}

// PolarRadius returns the polar radius of curvature, c = a^2/b.
func (e Ellipsoid) PolarRadius() float64 {
	b := e.B()
	return e.A * e.A / b
}

// GaussianRadius returns the Gaussian mean radius of curvature at latitude
// phi, sqrt(M(phi)*N(phi)).
func (e Ellipsoid) GaussianRadius(phi float64) float64 {
	return math.Sqrt(e.MeridianRadius(phi) * e.PrimeVertical(phi))
}

// MeanRadius returns the arithmetic mean radius of curvature (M+N)/2 at
// latitude phi.
func (e Ellipsoid) MeanRadius(phi float64) float64 {
	return (e.MeridianRadius(phi) + e.PrimeVertical(phi)) / 2
}

// AzimuthalRadius returns the radius of curvature in the direction of azimuth
// alpha (radians) at latitude phi, via Euler's formula.
func (e Ellipsoid) AzimuthalRadius(phi, alpha float64) float64 {
	m := e.MeridianRadius(phi)
	n := e.PrimeVertical(phi)
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	return 1 / (cosA*cosA/m + sinA*sinA/n)
}

// Ellipsoids is the registry of named presets consulted through
// LookupEllipsoid by the `ellps`/`ellps_1` operator parameters. Values per IOGP/EPSG and the teacher's own preset table
// (latlon-ellipsoidal-datum.go's `ellipsoids` map), extended with the extra
// historical ellipsoids this spec names explicitly.
var Ellipsoids = map[string]Ellipsoid{
	"GRS80":      {A: 6378137, F: 1 / 298.257222101},
	"WGS84":      {A: 6378137, F: 1 / 298.257223563},
	"intl":       {A: 6378388, F: 1 / 297.0},
	"bessel":     {A: 6377397.155, F: 1 / 299.1528128},
	"airy":       {A: 6377563.396, F: 1 / 299.3249646},
	"clrk66":     {A: 6378206.4, F: 1 / 294.9786982},
	"clrk80":     {A: 6378249.145, F: 1 / 293.465},
	"clrk80ign":  {A: 6378249.2, F: 1 / 293.4660213},
	"krass":      {A: 6378245.0, F: 1 / 298.3},
	"sphere":     {A: 6371000.0, F: 0},
	"unitsphere": {A: 1.0, F: 0},
	"Helmert":    {A: 6378200.0, F: 1 / 298.3},
	"WGS72":      {A: 6378135.0, F: 1 / 298.26},
}

// DefaultEllipsoidName is used whenever a gamut's `ellps` parameter is
// absent and no default is otherwise specified.
const DefaultEllipsoidName = "GRS80"

// LookupEllipsoid resolves a named ellipsoid preset, returning a BadParam
// error naming the offending value if unknown.
func LookupEllipsoid(name string) (Ellipsoid, error) {
	if e, ok := Ellipsoids[name]; ok {
		return e, nil
	}
	return Ellipsoid{}, errBadParam("ellps", name, "unknown ellipsoid")
}
