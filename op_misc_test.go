package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvaturePrimeVerticalAtEquatorEqualsSemiMajorAxis(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("curvature ellps=GRS80 prime")
	require.NoError(t, err)

	out := applyOne(t, ctx, handle, Fwd, Coor4D{0, 0, 0, 0})
	ellps, _ := LookupEllipsoid("GRS80")
	assert.InDelta(t, ellps.A, out[0], 1e-6)
}

func TestCurvatureRejectsZeroOrMultipleFlags(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("curvature ellps=GRS80")
	require.Error(t, err)

	_, err = ctx.Op("curvature ellps=GRS80 prime meridian")
	require.Error(t, err)
}

func TestUnitconvertKilometresToMetres(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("unitconvert xy_in=km xy_out=m")
	require.NoError(t, err)

	out := applyOne(t, ctx, handle, Fwd, Coor4D{1, 2, 3, 0})
	assert.InDelta(t, 1000, out[0], 1e-9)
	assert.InDelta(t, 2000, out[1], 1e-9)
	assert.InDelta(t, 3, out[2], 1e-9)

	back := applyOne(t, ctx, handle, Inv, out)
	assert.InDelta(t, 1, back[0], 1e-9)
	assert.InDelta(t, 2, back[1], 1e-9)
}

func TestUnitconvertRejectsUnknownUnit(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("unitconvert xy_in=furlong")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, BadParam, e.Kind)
}

// Invariant 1: somerc round-trips for a representative point away from the
// tangent pole's antipode.
func TestSomercRoundTrip(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("somerc ellps=bessel lon_0=7.43958333 lat_0=46.95240556")
	require.NoError(t, err)

	in := Coor4D{8.5 * degToRad, 47.2 * degToRad, 0, 0}
	fwd := applyOne(t, ctx, handle, Fwd, in)
	back := applyOne(t, ctx, handle, Inv, fwd)

	assert.InDelta(t, in[0], back[0], 1e-12)
	assert.InDelta(t, in[1], back[1], 1e-12)
}

func TestHelmertRequiresEpochWhenRatesGiven(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("helmert x=1 dx=0.01")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, MissingParam, e.Kind)
}

// Invariant 1: helmert with `exact` round-trips a rotation+scale+translation.
func TestHelmertExactRoundTrip(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("helmert x=100 y=-50 z=20 rx=0.3 ry=-0.2 rz=0.1 s=5 exact")
	require.NoError(t, err)

	in := Coor4D{4000000, 300000, 4900000, 0}
	fwd := applyOne(t, ctx, handle, Fwd, in)
	back := applyOne(t, ctx, handle, Inv, fwd)

	assert.InDelta(t, in[0], back[0], 1e-6)
	assert.InDelta(t, in[1], back[1], 1e-6)
	assert.InDelta(t, in[2], back[2], 1e-6)
}

func TestGravityWELMECOverridesSomigliana(t *testing.T) {
	ctx := NewContext()
	plain, err := ctx.Op("gravity ellps=GRS80")
	require.NoError(t, err)
	welmec, err := ctx.Op("gravity ellps=GRS80 welmec")
	require.NoError(t, err)

	in := Coor4D{0, 50 * degToRad, 200, 0}
	plainOut := applyOne(t, ctx, plain, Fwd, in)
	welmecOut := applyOne(t, ctx, welmec, Fwd, in)

	assert.False(t, math.IsNaN(plainOut[2]))
	assert.False(t, math.IsNaN(welmecOut[2]))
	assert.NotEqual(t, plainOut[2], welmecOut[2])
}

func TestStackSwapRoundTrip(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("stack push=1 | stack push=2 | stack swap | stack pop=1 | stack pop=2")
	require.NoError(t, err)

	out := applyOne(t, ctx, handle, Fwd, Coor4D{11, 12, 13, 14})
	// push comp0(11), push comp1(12); swap exchanges top two frames; pop into
	// comp0 takes the (now-top) first-pushed frame [11], pop into comp1 takes
	// the second-pushed frame [12] — net no-op after the swap undoes itself.
	assert.Equal(t, Coor4D{11, 12, 13, 14}, out)
}

func TestStackUnderflowStompsNaN(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("stack pop=1")
	require.NoError(t, err)

	set := NewCoorSlice(4, []Coor4D{{1, 2, 3, 4}})
	n, err := ctx.Apply(handle, Fwd, set)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, set.GetCoord(0).IsNaN())
}
