package geodesy

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gravsoftFixture = `
# tiny 1-band geoid patch, 2x2
55.0 56.0 12.0 13.0 1.0 1.0
# row at lat=56 (north row first)
10.0 12.0
# row at lat=55
14.0 16.0
`

func TestParseGravsoftDegreeHeaderAndBilinearInterpolation(t *testing.T) {
	g, err := ParseGravsoft(strings.NewReader(gravsoftFixture), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, 2, g.Cols)
	assert.InDelta(t, 56.0*degToRad, g.Lat0, 1e-12)
	assert.InDelta(t, 55.0*degToRad, g.Lat1, 1e-12)

	// exact corner values.
	assert.InDelta(t, 10.0, g.Interpolate(12.0*degToRad, 56.0*degToRad, 0), 1e-9)
	assert.InDelta(t, 16.0, g.Interpolate(13.0*degToRad, 55.0*degToRad, 0), 1e-9)

	// centre of the cell is the average of all four corners.
	centreLon := 12.5 * degToRad
	centreLat := 55.5 * degToRad
	assert.InDelta(t, 13.0, g.Interpolate(centreLon, centreLat, 0), 1e-9)
}

// Invariant 8: queries outside grid coverage must not panic and must return
// the bilinear value at the nearest cell (clamped extrapolation).
func TestGridExtrapolationClampsToNearestCell(t *testing.T) {
	g, err := ParseGravsoft(strings.NewReader(gravsoftFixture), 1)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		far := g.Interpolate(200*degToRad, 89*degToRad, 0)
		edge := g.Interpolate(13.0*degToRad, 56.0*degToRad, 0)
		assert.InDelta(t, edge, far, 1e-9)
	})
}

func synthetic2BandShiftGrid() *Grid {
	return &Grid{
		Lat0: 56 * degToRad, Lat1: 55 * degToRad,
		Lon0: 12 * degToRad, Lon1: 13 * degToRad,
		DLat: -1 * degToRad, DLon: 1 * degToRad,
		Rows: 2, Cols: 2, Bands: 2,
		Data: []float64{
			0.001 * degToRad, 0.002 * degToRad, 0.001 * degToRad, 0.002 * degToRad,
			0.001 * degToRad, 0.002 * degToRad, 0.001 * degToRad, 0.002 * degToRad,
		},
	}
}

func TestGridInverseShiftRoundTrips(t *testing.T) {
	g := synthetic2BandShiftGrid()
	fromLon, fromLat := 12.4*degToRad, 55.6*degToRad
	dLon := g.Interpolate(fromLon, fromLat, 0)
	dLat := g.Interpolate(fromLon, fromLat, 1)
	toLon, toLat := fromLon+dLon, fromLat+dLat

	recoveredLon, recoveredLat, converged := g.InverseShift(toLon, toLat)
	assert.True(t, converged)
	assert.InDelta(t, fromLon, recoveredLon, 1e-12)
	assert.InDelta(t, fromLat, recoveredLat, 1e-12)
}

func TestGridshiftOperatorAppliesAndInvertsConstantShift(t *testing.T) {
	ctx := NewContext()
	ctx.RegisterGrid("test.shift", synthetic2BandShiftGrid())
	handle, err := ctx.Op("gridshift grids=test.shift")
	require.NoError(t, err)

	in := Coor4D{12.4 * degToRad, 55.6 * degToRad, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)
	assert.InDelta(t, in[0]+0.001*degToRad, out[0], 1e-12)
	assert.InDelta(t, in[1]+0.002*degToRad, out[1], 1e-12)

	back := applyOne(t, ctx, handle, Inv, out)
	assert.InDelta(t, in[0], back[0], 1e-9)
	assert.InDelta(t, in[1], back[1], 1e-9)
}

func TestGridshiftOneBandAddsHeightOnlyAndHasNoInverse(t *testing.T) {
	ctx := NewContext()
	geoid := &Grid{
		Lat0: 56 * degToRad, Lat1: 55 * degToRad,
		Lon0: 12 * degToRad, Lon1: 13 * degToRad,
		DLat: -1 * degToRad, DLon: 1 * degToRad,
		Rows: 2, Cols: 2, Bands: 1,
		Data: []float64{40.0, 40.0, 40.0, 40.0},
	}
	ctx.RegisterGrid("test.geoid", geoid)
	handle, err := ctx.Op("gridshift grids=test.geoid")
	require.NoError(t, err)

	in := Coor4D{12.5 * degToRad, 55.5 * degToRad, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)
	assert.InDelta(t, 40.0, out[2], 1e-9)

	_, err = ctx.Apply(handle, Inv, NewCoorSlice(4, []Coor4D{out}))
	require.Error(t, err)
}

// S10: deformation displacement length matches ENU velocity magnitude * dt.
func TestDeformationDisplacementMagnitudeMatchesVelocityTimesDt(t *testing.T) {
	ctx := NewContext()
	ve, vn, vu := 0.012, -0.008, 0.003 // m/yr
	grid := &Grid{
		Lat0: 56 * degToRad, Lat1: 55 * degToRad,
		Lon0: 12 * degToRad, Lon1: 13 * degToRad,
		DLat: -1 * degToRad, DLon: 1 * degToRad,
		Rows: 2, Cols: 2, Bands: 3,
		Data: []float64{
			ve, vn, vu, ve, vn, vu,
			ve, vn, vu, ve, vn, vu,
		},
	}
	ctx.RegisterGrid("test.deformation", grid)
	handle, err := ctx.Op("deformation dt=1000 grids=test.deformation")
	require.NoError(t, err)

	ellps, _ := LookupEllipsoid(DefaultEllipsoidName)
	copenhagenLon, copenhagenLat := 12.57*degToRad, 55.68*degToRad
	x0, y0, z0 := GeographicToCartesian(copenhagenLon, copenhagenLat, 0, ellps)

	in := Coor4D{copenhagenLon, copenhagenLat, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)
	x1, y1, z1 := GeographicToCartesian(out[0], out[1], out[2], ellps)

	displacement := math.Sqrt((x1-x0)*(x1-x0) + (y1-y0)*(y1-y0) + (z1-z0)*(z1-z0))
	expected := 1000 * math.Sqrt(ve*ve+vn*vn+vu*vu)
	assert.InDelta(t, expected, displacement, 1e-6)
}
