package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyOne(t *testing.T, ctx *Context, handle OpHandle, dir Direction, c Coor4D) Coor4D {
	t.Helper()
	set := NewCoorSlice(4, []Coor4D{c})
	_, err := ctx.Apply(handle, dir, set)
	require.NoError(t, err)
	return set.GetCoord(0)
}

// S1/S2: utm zone=32 forward, then its own inverse recovers the input.
func TestUTMZone32ForwardAndInverse(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("utm zone=32")
	require.NoError(t, err)

	in := Coor4D{12 * degToRad, 55 * degToRad, 0, 0}
	fwd := applyOne(t, ctx, handle, Fwd, in)
	assert.InDelta(t, 691875.632140, fwd[0], 1e-2)
	assert.InDelta(t, 6098907.825005, fwd[1], 1e-2)

	back := applyOne(t, ctx, handle, Inv, fwd)
	assert.InDelta(t, in[0], back[0], 1e-8*degToRad)
	assert.InDelta(t, in[1], back[1], 1e-8*degToRad)
}

// S3: WGS84 -> ED50 via cart/helmert/cart, inverted.
func TestHelmertDatumShiftWGS84ToED50(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("cart ellps=intl | helmert x=-87 y=-96 z=-120 | cart inv=true ellps=GRS80")
	require.NoError(t, err)

	in := Coor4D{12 * degToRad, 55 * degToRad, 0, 0}
	out := applyOne(t, ctx, handle, Inv, in)

	assert.InDelta(t, 12.1309658097, out[0]*radToDeg, 5e-4)
	assert.InDelta(t, 53.8101570592, out[1]*radToDeg, 5e-4)
	assert.InDelta(t, 28.0247, out[2], 5e-3)
}

// S4: single-parallel Lambert Conformal Conic.
func TestLCCSingleParallel(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("lcc lat_1=57 lon_0=12")
	require.NoError(t, err)

	in := Coor4D{12 * degToRad, 55 * degToRad, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)

	assert.InDelta(t, 0.0, out[0], 1e-6)
	assert.InDelta(t, -222728.1223, out[1], 1e-3)
}

// S5: adapt permutes axes and converts degrees to gon in one step.
func TestAdaptAxisPermutationAndUnitConversion(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("adapt from=neut_deg to=enut_gon")
	require.NoError(t, err)

	in := Coor4D{90, 180, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)

	assert.InDelta(t, 200.0, out[0], 1e-9)
	assert.InDelta(t, 100.0, out[1], 1e-9)
	assert.Equal(t, 0.0, out[2])
	assert.Equal(t, 0.0, out[3])
}

// Invariant 9: adapt composed with its mirror descriptor is the identity.
func TestAdaptPermutationRoundTrip(t *testing.T) {
	ctx := NewContext()
	fwdHandle, err := ctx.Op("adapt from=neut_deg to=enut_gon")
	require.NoError(t, err)
	invHandle, err := ctx.Op("adapt from=enut_gon to=neut_deg")
	require.NoError(t, err)

	in := Coor4D{13.5, 271.25, 0, 0}
	mid := applyOne(t, ctx, fwdHandle, Fwd, in)
	back := applyOne(t, ctx, invHandle, Fwd, mid)

	assert.InDelta(t, in[0], back[0], 1e-9)
	assert.InDelta(t, in[1], back[1], 1e-9)
}

// S6: molodensky's geographic-space shift should agree closely with the
// equivalent cart/helmert/cart round trip for a small translation-only datum
// pair (both linearize the same physical shift near the surface).
func TestMolodenskyAgreesWithHelmertRoundTrip(t *testing.T) {
	ctx := NewContext()
	molo, err := ctx.Op("molodensky ellps=WGS84 ellps_1=intl dx=84.87 dy=96.49 dz=116.95")
	require.NoError(t, err)
	viaHelmert, err := ctx.Op("cart ellps=WGS84 | helmert x=84.87 y=96.49 z=116.95 | cart inv=true ellps=intl")
	require.NoError(t, err)

	in := Coor4D{2.12955 * degToRad, 53.80939 * degToRad, 73, 0}
	a := applyOne(t, ctx, molo, Fwd, in)
	b := applyOne(t, ctx, viaHelmert, Fwd, in)

	ellps, _ := LookupEllipsoid("intl")
	aX, aY, aZ := GeographicToCartesian(a[0], a[1], a[2], ellps)
	bX, bY, bZ := GeographicToCartesian(b[0], b[1], b[2], ellps)
	dist := math.Sqrt((aX-bX)*(aX-bX) + (aY-bY)*(aY-bY) + (aZ-bZ)*(aZ-bZ))
	assert.Less(t, dist, 0.01)
}

// S7: a macro whose body is "addone | addone | addone inv" expands inline,
// so its steps net a single +1.
func TestMacroExpansionStupidWay(t *testing.T) {
	ctx := NewContext()
	ctx.RegisterResource("stupid:way", "addone | addone | addone inv")
	handle, err := ctx.Op("stupid:way")
	require.NoError(t, err)

	out := applyOne(t, ctx, handle, Fwd, Coor4D{5, 0, 0, 0})
	assert.InDelta(t, 6.0, out[0], 1e-12)
}

// S8: conformal latitude is an exact closed-form identity, not a truncated
// series, so it should reproduce the reference value to very high precision.
func TestLatitudeConformalGRS80(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("latitude conformal ellps=GRS80")
	require.NoError(t, err)

	in := Coor4D{0, 55 * degToRad, 0, 0}
	out := applyOne(t, ctx, handle, Fwd, in)
	assert.InDelta(t, 54.819109023689, out[1]*radToDeg, 1e-9)
}

// S9: a push then a pop of the same (1-based) axis numbers swaps those two
// components, per the corpus's 1-based positional convention.
func TestStackPushPopSwapsAxes(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("stack push=1,2 | stack pop=1,2")
	require.NoError(t, err)

	out := applyOne(t, ctx, handle, Fwd, Coor4D{11, 12, 13, 14})
	assert.Equal(t, Coor4D{12, 11, 13, 14}, out)
}

// Invariant 4: pipeline inversion is reversed-steps-each-inverted.
func TestPipelineInversionLaw(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("addone amount=1 | addone amount=2 | addone amount=3")
	require.NoError(t, err)

	in := Coor4D{0, 0, 0, 0}
	fwd := applyOne(t, ctx, handle, Fwd, in)
	assert.InDelta(t, 6.0, fwd[0], 1e-12)

	back := applyOne(t, ctx, handle, Inv, fwd)
	assert.InDelta(t, in[0], back[0], 1e-12)
}

// omit_fwd/omit_inv: a step flagged omit_fwd is skipped when the pipeline
// runs Fwd, but still runs (and is itself invertible) when the pipeline runs
// Inv, per §4.G.
func TestOmitFwdSkipsStepInForwardDirectionOnly(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("addone amount=5 omit_fwd | addone amount=1")
	require.NoError(t, err)

	fwd := applyOne(t, ctx, handle, Fwd, Coor4D{0, 0, 0, 0})
	assert.InDelta(t, 1.0, fwd[0], 1e-12)

	back := applyOne(t, ctx, handle, Inv, fwd)
	assert.InDelta(t, -5.0, back[0], 1e-12)
}

// Invariant 7: NaN in a read position propagates to NaN in the write
// position without an application-time error, and successes decreases.
func TestNaNPropagatesWithoutError(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("addone")
	require.NoError(t, err)

	set := NewCoorSlice(4, []Coor4D{{1, 2, 3, 4}, NaNCoor})
	n, err := ctx.Apply(handle, Fwd, set)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, set.GetCoord(1).IsNaN())
	assert.False(t, set.GetCoord(0).IsNaN())
}

// Invariant 6: mutually-referencing macros fail construction with Recursion,
// rather than looping forever.
func TestMutuallyRecursiveMacrosFailConstruction(t *testing.T) {
	ctx := NewContext()
	ctx.RegisterResource("foo:a", "foo:b")
	ctx.RegisterResource("foo:b", "foo:a")

	_, err := ctx.Op("foo:a")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, Recursion, e.Kind)
}

// An out-of-domain tmerc input (|lon - lon_0| beyond tmercClampRad) is
// rejected with NaN rather than panicking. The grid clamp of invariant 8 is
// tested in grid_test.go.
func TestTmercOutOfDomainReturnsNaNNotPanic(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("tmerc ellps=GRS80 lon_0=0")
	require.NoError(t, err)

	require.NotPanics(t, func() {
		out := applyOne(t, ctx, handle, Fwd, Coor4D{179 * degToRad, 0, 0, 0})
		assert.True(t, math.IsNaN(out[0]))
	})
}
