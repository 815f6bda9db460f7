package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOmercRequiresAlphaOrTwoPointForm(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("omerc ellps=GRS80 lonc=0 lat_0=0")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, MissingParam, e.Kind)
}

func TestOmercTwoPointFormConstructsWithoutAlpha(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.Op("omerc ellps=GRS80 lonc=0 lat_0=45 lon_1=-1 lat_1=40 lon_2=1 lat_2=50")
	require.NoError(t, err)
}

// Invariant 1, best-effort: azimuth-form omerc round-trips near its centre.
func TestOmercAzimuthFormRoundTripsNearCentre(t *testing.T) {
	ctx := NewContext()
	handle, err := ctx.Op("omerc ellps=GRS80 lonc=0 lat_0=0 alpha=90")
	require.NoError(t, err)

	in := Coor4D{0.02, 0.01, 0, 0}
	fwd := applyOne(t, ctx, handle, Fwd, in)
	back := applyOne(t, ctx, handle, Inv, fwd)

	assert.InDelta(t, in[0], back[0], 1e-6)
	assert.InDelta(t, in[1], back[1], 1e-6)
}
