package geodesy

import (
	"fmt"
	"math"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Coordinate tuples and batch coordinate sets.                                                   */
/*                                                                                                  */
/* A coordinate is carried internally as a fixed 4-wide record (Coor4D) regardless of the           */
/* "effective" dimensionality of the data it represents; this avoids duplicating operator code for  */
/* 2D/3D/4D variants (see vector3d.go in the ancestor of this package for the componentwise vector  */
/* operations this type generalizes: Plus/Minus/Times become Add/Sub/Scale on four components       */
/* instead of three).                                                                                */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// Coor4D is a 4-wide coordinate tuple. By convention component 0 is longitude
// (radians) or easting (metres) or X (metres, geocentric); component 1 is
// latitude (radians) or northing (metres) or Y; component 2 is height (metres)
// or Z; component 3 is time (years, for deformation) or an auxiliary ordinate.
type Coor4D [4]float64

// NaNCoor is the canonical "failed" coordinate: every operator stomps a
// coordinate to this value (or at least NaNs its affected components) when it
// cannot compute a result.
var NaNCoor = Coor4D{math.NaN(), math.NaN(), math.NaN(), math.NaN()}

// IsNaN reports whether any component of c is NaN.
func (c Coor4D) IsNaN() bool {
	for _, v := range c {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Add returns the componentwise sum of c and other.
func (c Coor4D) Add(other Coor4D) Coor4D {
	return Coor4D{c[0] + other[0], c[1] + other[1], c[2] + other[2], c[3] + other[3]}
}

// Sub returns the componentwise difference of c and other.
func (c Coor4D) Sub(other Coor4D) Coor4D {
	return Coor4D{c[0] - other[0], c[1] - other[1], c[2] - other[2], c[3] - other[3]}
}

// Scale returns c with every component multiplied by factor.
func (c Coor4D) Scale(factor float64) Coor4D {
	return Coor4D{c[0] * factor, c[1] * factor, c[2] * factor, c[3] * factor}
}

// Dot returns the dot product of the first three components of c and other
// (the spatial components; component 3 is excluded as it is usually time).
func (c Coor4D) Dot(other Coor4D) float64 {
	return c[0]*other[0] + c[1]*other[1] + c[2]*other[2]
}

// ToRadians scales the first two components (lon, lat) from degrees to
// radians, leaving height/time untouched.
func (c Coor4D) ToRadians() Coor4D {
	return Coor4D{c[0] * degToRad, c[1] * degToRad, c[2], c[3]}
}

// ToDegrees scales the first two components (lon, lat) from radians to
// degrees, leaving height/time untouched.
func (c Coor4D) ToDegrees() Coor4D {
	return Coor4D{c[0] * radToDeg, c[1] * radToDeg, c[2], c[3]}
}

func (c Coor4D) X() float64 { return c[0] }
func (c Coor4D) Y() float64 { return c[1] }
func (c Coor4D) Z() float64 { return c[2] }
func (c Coor4D) T() float64 { return c[3] }

func (c Coor4D) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", c[0], c[1], c[2], c[3])
}

// CoordinateSet abstracts over a batch-addressable container of coordinate
// tuples of a declared effective dimensionality. Reads beyond Dim() yield NaN;
// writes beyond Dim() are dropped. Operators iterate indices 0..Len()-1 and
// stamp NaN into a tuple in place on failure; they never resize or reorder the
// set.
type CoordinateSet interface {
	Len() int
	Dim() int
	GetCoord(i int) Coor4D
	SetCoord(i int, c Coor4D)
}

// CoorSlice is the canonical in-memory CoordinateSet: a flat slice of Coor4D
// plus a declared effective dimensionality.
type CoorSlice struct {
	dim  int
	data []Coor4D
}

// NewCoorSlice wraps data (not copied) as a CoordinateSet of the given
// effective dimensionality, which must be 2, 3, or 4.
func NewCoorSlice(dim int, data []Coor4D) *CoorSlice {
	if dim < 2 || dim > 4 {
		panic("geodesy: coordinate dimensionality must be 2, 3, or 4")
	}
	return &CoorSlice{dim: dim, data: data}
}

func (s *CoorSlice) Len() int { return len(s.data) }
func (s *CoorSlice) Dim() int { return s.dim }

func (s *CoorSlice) GetCoord(i int) Coor4D {
	c := s.data[i]
	for d := s.dim; d < 4; d++ {
		c[d] = math.NaN()
	}
	return c
}

func (s *CoorSlice) SetCoord(i int, c Coor4D) {
	for d := 0; d < s.dim; d++ {
		s.data[i][d] = c[d]
	}
}

// Raw exposes the backing slice, e.g. for callers that want to pre-allocate
// and reuse buffers across Apply calls.
func (s *CoorSlice) Raw() []Coor4D { return s.data }
