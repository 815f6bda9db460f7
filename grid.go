package geodesy

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* GRAVSOFT-format regular grids: header parse, bilinear interpolation, and the fixed-point          */
/* inverse iteration used by datum-shift/deformation/geoid operators. Grid blobs are opened via a    */
/* memory-mapped reader (golang.org/x/exp/mmap) rather than slurped into a []byte up front, per      */
/* §1's "memory-mapped regular grids" and §4.E.                                                      */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// Grid is an immutable regular grid of `Bands` scalars per node, covering
// [Lon0,Lon1]x[Lat1,Lat0] (Lat0 is north, Lat1 is south, so DLat is negative),
// stored row-major north-to-south, west-to-east. A geoid-style 1-band grid
// carries height corrections in metres; the first two bands of a 2+-band
// shift grid read from a degree-valued header are (lon, lat) shifts in radians.
type Grid struct {
	Lat0, Lat1 float64 // north, south bounds (radians, Lat0 > Lat1)
	Lon0, Lon1 float64 // west, east bounds (radians)
	DLat, DLon float64 // cell size (radians); DLat < 0
	Rows, Cols int
	Bands      int
	Data       []float64 // Rows*Cols*Bands, row-major north-to-south, west-to-east
}

// degreeBound is the spec's "within ±720" heuristic for distinguishing
// degree-valued headers (convert to radians) from already-linear headers
// (leave untouched).
const degreeBound = 720.0

// ParseGravsoft parses a GRAVSOFT-format grid from r: a header of six
// whitespace-separated floats (lat_1 south, lat_0 north, lon_0 west, lon_1
// east, |dlat|, dlon), followed by rows*cols*bands values, '#'-to-EOL
// comments stripped throughout. If any header coordinate exceeds ±720
// degrees the header (and values) are assumed to already be in linear units
// and are left untouched; otherwise the header is treated as degrees and
// converted to radians, and for bands>=2 the values are treated as
// arcseconds-of-(lat,lon) shift and converted to radians with the component
// order swapped to (lon,lat) to match this package's internal convention.
// This lat/lon swap for bands>=2 but not bands=1 is asymmetric by design
// (see spec §9) — it mirrors how GRAVSOFT grid files are actually produced
// in the wild, and must not be "fixed" to be symmetric.
func ParseGravsoft(r io.Reader, bands int) (*Grid, error) {
	fields, err := tokenizeGravsoft(r)
	if err != nil {
		return nil, err
	}
	if len(fields) < 6 {
		return nil, errIo("grid header truncated", nil)
	}

	header := make([]float64, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errIo("grid header is not numeric: "+fields[i], err)
		}
		header[i] = v
	}
	lat1, lat0, lon0, lon1, dlatAbs, dlon := header[0], header[1], header[2], header[3], header[4], header[5]

	linear := false
	for _, v := range []float64{lat0, lat1, lon0, lon1} {
		if v > degreeBound || v < -degreeBound {
			linear = true
			break
		}
	}

	rows := int(roundHalfAwayFromZero((lat0-lat1)/dlatAbs)) + 1
	cols := int(roundHalfAwayFromZero((lon1-lon0)/dlon)) + 1
	if rows <= 0 || cols <= 0 || bands <= 0 {
		return nil, errIo("grid header describes an empty grid", nil)
	}

	values := fields[6:]
	want := rows * cols * bands
	if len(values) < want {
		return nil, errIo("grid body truncated", nil)
	}

	data := make([]float64, want)
	for i := 0; i < want; i++ {
		v, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			return nil, errIo("grid value is not numeric: "+values[i], err)
		}
		data[i] = v
	}

	g := &Grid{
		Lat0: lat0, Lat1: lat1, Lon0: lon0, Lon1: lon1,
		DLat: -dlatAbs, DLon: dlon,
		Rows: rows, Cols: cols, Bands: bands,
	}

	if linear {
		g.Data = data
	} else {
		g.Lat0 *= degToRad
		g.Lat1 *= degToRad
		g.Lon0 *= degToRad
		g.Lon1 *= degToRad
		g.DLat *= degToRad
		g.DLon *= degToRad

		if bands == 1 {
			g.Data = data // geoid-style: metres, no swap
		} else {
			const asecToRad = degToRad / 3600
			g.Data = make([]float64, want)
			for node := 0; node < rows*cols; node++ {
				base := node * bands
				// source order is (lat-shift, lon-shift, ...); swap to (lon, lat, ...)
				g.Data[base] = data[base+1] * asecToRad
				g.Data[base+1] = data[base] * asecToRad
				for b := 2; b < bands; b++ {
					g.Data[base+b] = data[base+b]
				}
			}
		}
	}

	return g, nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

// tokenizeGravsoft strips '#'-to-EOL comments and splits on whitespace.
func tokenizeGravsoft(r io.Reader) ([]string, error) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		buf.WriteString(line)
		buf.WriteByte(' ')
	}
	if err := scanner.Err(); err != nil {
		return nil, errIo("reading grid", err)
	}
	return strings.Fields(buf.String()), nil
}

// LoadGravsoftFile memory-maps path and parses it as a GRAVSOFT grid of the
// given band count. The mapping is closed once parsing completes; the
// returned Grid owns its own copy of the values (grids are small enough in
// practice that holding the mapping open for the lifetime of the Grid buys
// nothing once the values are extracted, and closing promptly avoids
// exhausting file descriptors when many grids are loaded).
func LoadGravsoftFile(path string, bands int) (*Grid, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, errIo("opening grid file "+path, err)
	}
	defer reader.Close()

	section := io.NewSectionReader(reader, 0, int64(reader.Len()))
	return ParseGravsoft(section, bands)
}

// cellIndex clamps (lon, lat) to the grid's index space, per §4.E: the
// lower-left corner of the bilinear cell is clamped to
// [0, cols-2] x [1, rows-1] in index space and the fractional offsets to
// [0, 1], so queries outside the grid coverage return the value at the
// nearest point of the nearest edge cell instead of panicking.
func (g *Grid) cellIndex(lon, lat float64) (col, row int, rlon, rlat float64) {
	colF := (lon - g.Lon0) / g.DLon
	rowF := (lat - g.Lat0) / g.DLat // DLat < 0, so rowF increases southward

	col = int(colF)
	row = int(rowF) + 1 // the south row of the cell containing rowF

	if col < 0 {
		col = 0
	} else if col > g.Cols-2 {
		col = g.Cols - 2
	}
	if row < 1 {
		row = 1
	} else if row > g.Rows-1 {
		row = g.Rows - 1
	}

	rlon = clamp(colF-float64(col), 0, 1)
	rlat = clamp(rowF-float64(row-1), 0, 1)
	return col, row, rlon, rlat
}

func (g *Grid) node(col, row, band int) float64 {
	return g.Data[(row*g.Cols+col)*g.Bands+band]
}

// Interpolate returns the bilinearly interpolated value of band `band` at
// query point (lon, lat), per §4.E: fetch the four corner records, interpolate
// first in latitude (down each column), then in longitude.
func (g *Grid) Interpolate(lon, lat float64, band int) float64 {
	col, row, rlon, rlat := g.cellIndex(lon, lat)

	ll := g.node(col, row, band)   // lower-left: south row
	ul := g.node(col, row-1, band) // upper-left: north row
	lr := g.node(col+1, row, band)
	ur := g.node(col+1, row-1, band)

	// rlat is the query's fractional offset from the north edge of the cell
	// (0 at row-1/ul, 1 at row/ll): weight ul at (1-rlat), ll at rlat.
	left := ul + rlat*(ll-ul)
	right := ur + rlat*(lr-ur)
	return left + rlon*(right-left)
}

// InterpolateAll returns every band's bilinearly interpolated value at
// (lon, lat).
func (g *Grid) InterpolateAll(lon, lat float64) []float64 {
	out := make([]float64, g.Bands)
	for b := 0; b < g.Bands; b++ {
		out[b] = g.Interpolate(lon, lat, b)
	}
	return out
}

// gridInverseMaxIterations and gridInverseTolerance bound the fixed-point
// iteration in InverseShift, per §4.E (5-30 iterations, ||d|| < 1e-10).
const (
	gridInverseMaxIterations = 30
	gridInverseTolerance     = 1e-10
)

// InverseShift solves from + interp(from) = to for `from`, given a 2-band
// (lon, lat) shift grid and a target `to`, via fixed-point iteration seeded
// with from0 = to - interp(to). NaN values from the grid propagate as NaN
// outputs without error.
func (g *Grid) InverseShift(toLon, toLat float64) (fromLon, fromLat float64, converged bool) {
	dLon0 := g.Interpolate(toLon, toLat, 0)
	dLat0 := g.Interpolate(toLon, toLat, 1)
	fromLon, fromLat = toLon-dLon0, toLat-dLat0

	for i := 0; i < gridInverseMaxIterations; i++ {
		dLon := g.Interpolate(fromLon, fromLat, 0)
		dLat := g.Interpolate(fromLon, fromLat, 1)

		residualLon := fromLon + dLon - toLon
		residualLat := fromLat + dLat - toLat

		fromLon -= residualLon
		fromLat -= residualLat

		if residualLon*residualLon+residualLat*residualLat < gridInverseTolerance*gridInverseTolerance {
			return fromLon, fromLat, true
		}
	}
	return fromLon, fromLat, false
}
