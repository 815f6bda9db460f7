package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Exercises the degenerate sphere case (f=0) of GeodesicInverse/GeodesicDirect against the plain    */
/* haversine great-circle formulas, adapted from the ancestor's LatLon.DistanceTo/DestinationPoint    */
/* (latlon-spherical.go), which this module's ellipsoidal geodesics generalize.                      */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const meanEarthRadius = 6_371_000.0

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dPhi := lat2 - lat1
	dLambda := lon2 - lon1
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * meanEarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func haversineInitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	dLambda := lon2 - lon1
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLambda)
	y := math.Sin(dLambda) * math.Cos(lat2)
	return NormalizePositive(math.Atan2(y, x))
}

func TestGeodesicInverseAgreesWithHaversineOnSphere(t *testing.T) {
	sphere := Ellipsoid{A: meanEarthRadius, F: 0}

	lat1, lon1 := 52.205*degToRad, 0.119*degToRad
	lat2, lon2 := 48.857*degToRad, 2.351*degToRad

	want := haversineDistance(lat1, lon1, lat2, lon2)
	wantBearing := haversineInitialBearing(lat1, lon1, lat2, lon2)

	got := GeodesicInverse(lat1, lon1, lat2, lon2, sphere)
	assert.True(t, got.Converged)
	assert.InDelta(t, want, got.Distance, 1e-6)
	assert.InDelta(t, wantBearing, got.AzimuthAtStart, 1e-9)
}

func TestGeodesicDirectRoundTripsThroughInverse(t *testing.T) {
	wgs84 := Ellipsoids["WGS84"]
	lat1, lon1 := 51.47788*degToRad, -0.00147*degToRad

	inv := GeodesicInverse(lat1, lon1, 48.857*degToRad, 2.351*degToRad, wgs84)
	dir := GeodesicDirect(lat1, lon1, inv.AzimuthAtStart, inv.Distance, wgs84)

	assert.True(t, dir.Converged)
	assert.InDelta(t, 48.857*degToRad, dir.Lat2, 1e-9)
	assert.InDelta(t, 2.351*degToRad, NormalizeSymmetric(dir.Lon2), 1e-9)
}

func TestGeodesicInverseCoincidentPoints(t *testing.T) {
	wgs84 := Ellipsoids["WGS84"]
	lat, lon := 10*degToRad, 20*degToRad
	got := GeodesicInverse(lat, lon, lat, lon, wgs84)
	assert.True(t, got.Converged)
	assert.Equal(t, 0.0, got.Distance)
}
