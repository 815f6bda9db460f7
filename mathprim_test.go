package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func naiveSin(x float64, c []float64) float64 {
	sum := 0.0
	for i, ci := range c {
		sum += ci * math.Sin(float64(i+1)*x)
	}
	return sum
}

func naiveCos(x float64, c []float64) float64 {
	sum := c[0]
	for i := 1; i < len(c); i++ {
		sum += c[i] * math.Cos(float64(i)*x)
	}
	return sum
}

func naiveHorner(x float64, c []float64) float64 {
	sum := 0.0
	for i, ci := range c {
		sum += ci * math.Pow(x, float64(i))
	}
	return sum
}

// Invariant 2: Clenshaw summation agrees with the naive trigonometric sum to
// within 1e-14 for up-to-6-term series.
func TestClenshawAgreesWithNaiveSum(t *testing.T) {
	c := []float64{0.1, -0.02, 0.003, -0.0004, 0.00005, -0.000006}
	for _, x := range []float64{0.0, 0.3, 1.0, 2.5, -1.7} {
		assert.InDelta(t, naiveSin(x, c), ClenshawSin(x, c), 1e-14)
		assert.InDelta(t, naiveCos(x, c), ClenshawCos(x, c), 1e-14)
	}
}

// Invariant 3: Horner evaluation agrees with naive polynomial evaluation to
// within 1e-14 on coefficients up to order 6.
func TestHornerAgreesWithNaivePolynomial(t *testing.T) {
	c := []float64{1.5, -2.25, 0.75, 3.0, -0.125, 0.0625}
	for _, x := range []float64{0.0, 0.5, -0.5, 1.3, 2.0} {
		assert.InDelta(t, naiveHorner(x, c), Horner(x, c), 1e-14)
	}
}

func TestComplexSinZeroImaginaryReducesToRealClenshaw(t *testing.T) {
	c := []float64{0.05, -0.01, 0.002}
	x := 0.8
	re, im := ComplexSin(x, 0, c)
	assert.InDelta(t, ClenshawSin(x, c), re, 1e-13)
	assert.InDelta(t, 0.0, im, 1e-13)
}

func TestGudermannianRoundTrip(t *testing.T) {
	for _, x := range []float64{-1.2, -0.1, 0.0, 0.4, 1.1} {
		assert.InDelta(t, x, InverseGudermannian(Gudermannian(x)), 1e-12)
	}
}

func TestNormalizeSymmetricWrapsIntoRange(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeSymmetric(2*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, NormalizeSymmetric(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, NormalizeSymmetric(math.Pi/2), 1e-12)
}

func TestParseSexagesimalAcceptsDecimalAndDMS(t *testing.T) {
	v, err := ParseSexagesimal("12.5")
	assert.NoError(t, err)
	assert.InDelta(t, 12.5, v, 1e-12)

	v, err = ParseSexagesimal("nan")
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = ParseSexagesimal("12:30:00S")
	assert.NoError(t, err)
	assert.InDelta(t, -12.5, v, 1e-9)
}
