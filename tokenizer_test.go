package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesWhitespaceAndComments(t *testing.T) {
	recipe := "cart   ellps = GRS80 | # a comment\n helmert  x=1  y=2 \r\n"
	normalized, _ := Normalize(recipe)
	assert.Equal(t, "cart ellps=GRS80|helmert x=1 y=2", normalized)
}

func TestNormalizeExtractsDocstring(t *testing.T) {
	recipe := "## does a thing\n## across two lines\ncart ellps=GRS80"
	_, doc := Normalize(recipe)
	assert.Equal(t, "does a thing\nacross two lines", doc)
}

func TestSplitStepsDropsEmpties(t *testing.T) {
	steps := SplitSteps("cart ellps=GRS80 | | helmert x=1")
	assert.Equal(t, []string{"cart ellps=GRS80", "helmert x=1"}, steps)
}

func TestSplitParamsRecognizesNameFlagsAndKeyValues(t *testing.T) {
	s := SplitParams("helmert x=1 exact inv")
	assert.Equal(t, "helmert", s.Name)
	require.Len(t, s.Params, 4)
	assert.Equal(t, Param{"name", "helmert"}, s.Params[0])
	assert.Equal(t, Param{"x", "1"}, s.Params[1])
	assert.Equal(t, Param{"exact", "true"}, s.Params[2])
	assert.Equal(t, Param{"inv", "true"}, s.Params[3])
}

func TestTokenizeRejectsEmptyRecipe(t *testing.T) {
	_, _, err := Tokenize("   ")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, Syntax, e.Kind)
}

func TestTokenizeMultiStepPipeline(t *testing.T) {
	steps, _, err := Tokenize("cart ellps=GRS80 | helmert x=1 y=2 z=3 | cart inv ellps=intl")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "cart", steps[0].Name)
	assert.Equal(t, "helmert", steps[1].Name)
	assert.Equal(t, "cart", steps[2].Name)
}

func TestIsPipelineAndIsResourceName(t *testing.T) {
	assert.True(t, IsPipeline("cart | helmert"))
	assert.False(t, IsPipeline("cart ellps=GRS80"))
	assert.True(t, IsResourceName("geo:in"))
	assert.False(t, IsResourceName("cart"))
}
