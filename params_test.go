package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalsShadowGlobals(t *testing.T) {
	locals := NewParamMap()
	locals.Insert("ellps", "intl")
	globals := NewParamMap()
	globals.Insert("ellps", "GRS80")

	value, found, err := Resolve("ellps", nil, locals, globals)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "intl", value)
}

func TestResolveReverseInsertionOrderWithinAScope(t *testing.T) {
	locals := NewParamMap()
	locals.Insert("x", "1")
	locals.Insert("x", "2")

	value, found, err := Resolve("x", nil, locals, nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", value)
}

func TestResolveDereferencesDollarName(t *testing.T) {
	globals := NewParamMap()
	globals.Insert("base", "GRS80")
	locals := NewParamMap()
	locals.Insert("ellps", "$base")

	value, found, err := Resolve("ellps", nil, locals, globals)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "GRS80", value)
}

func TestResolveDollarNameFallsBackToInlineDefault(t *testing.T) {
	locals := NewParamMap()
	locals.Insert("ellps", "$missing(WGS84)")

	value, found, err := Resolve("ellps", nil, locals, nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "WGS84", value)
}

func TestResolveParenDefaultContinuesSearch(t *testing.T) {
	globals := NewParamMap()
	globals.Insert("x", "7")
	locals := NewParamMap()
	locals.Insert("x", "(0)")

	value, found, err := Resolve("x", nil, locals, globals)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "7", value)
}

func TestResolveMissingKeyUsesGamutDefault(t *testing.T) {
	gamut := Gamut{RealEntry("k_0", "1")}
	value, found, err := Resolve("k_0", gamut, nil, nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", value)
}

func TestExtractGamutParsesEveryKind(t *testing.T) {
	gamut := Gamut{
		FlagEntry("exact"),
		NaturalEntry("zone"),
		IntegerEntry("count"),
		RealEntry("x"),
		SeriesEntry("s"),
		TextEntry("name"),
		TextsEntry("tags"),
	}
	locals := NewParamMap()
	locals.Insert("exact", "true")
	locals.Insert("zone", "30")
	locals.Insert("count", "-5")
	locals.Insert("x", "1.5")
	locals.Insert("s", "1,2,3")
	locals.Insert("name", "GRS80")
	locals.Insert("tags", "a,b,c")

	parsed, err := ExtractGamut(gamut, locals, nil)
	require.NoError(t, err)
	assert.True(t, parsed.Flag("exact"))
	assert.EqualValues(t, 30, parsed.Natural("zone"))
	assert.EqualValues(t, -5, parsed.Integer("count"))
	assert.InDelta(t, 1.5, parsed.Real("x"), 1e-12)
	assert.Equal(t, []float64{1, 2, 3}, parsed.SeriesOf("s"))
	assert.Equal(t, "GRS80", parsed.Text("name"))
	assert.Equal(t, []string{"a", "b", "c"}, parsed.TextsOf("tags"))
}

func TestExtractGamutMissingRequiredParamErrors(t *testing.T) {
	gamut := Gamut{RealEntry("dx")}
	_, err := ExtractGamut(gamut, nil, nil)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, MissingParam, e.Kind)
}

func TestExtractGamutBadValueErrors(t *testing.T) {
	gamut := Gamut{IntegerEntry("zone")}
	locals := NewParamMap()
	locals.Insert("zone", "not-a-number")
	_, err := ExtractGamut(gamut, locals, nil)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, BadParam, e.Kind)
}

func TestExtractGamutImplicitFlagsDefaultFalse(t *testing.T) {
	parsed, err := ExtractGamut(nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, parsed.Flag("inv"))
	assert.False(t, parsed.Flag("omit_fwd"))
	assert.False(t, parsed.Flag("omit_inv"))
}
