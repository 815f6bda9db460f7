package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `tmerc` / `utm`: Krüger's transverse Mercator by conformal-sphere projection plus a 6th-order      */
/* ellipsoidal correction series (Karney 2011), evaluated with the complex Clenshaw summation already  */
/* shared with the latitude kernel. `utm` is tmerc with its six parameters derived from `zone`/`south`. */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const tmercClampRad = 2.623395162778

func tmercGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		RealEntry("lon_0", "0"), RealEntry("lat_0", "0"),
		RealEntry("k_0", "1"),
		RealEntry("x_0", "0"), RealEntry("y_0", "0"),
	}
}

type tmercSetup struct {
	ellps            Ellipsoid
	lon0, lat0       float64
	k0, x0, y0       float64
	bigA             float64
	alpha, beta      []float64
	n                float64
	qs0              float64 // conformal latitude at lat0, for the origin's xi0 offset
}

func buildTmerc(ellps Ellipsoid, lon0, lat0, k0, x0, y0 float64) tmercSetup {
	n := ellps.F / (2 - ellps.F)
	n2, n3, n4, n5, n6 := n*n, n*n*n, n*n*n*n, n*n*n*n*n, n*n*n*n*n*n

	bigA := ellps.A / (1 + n) * (1 + n2/4 + n4/64 + n6/256)

	alpha := []float64{
		n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800,
		13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360,
		61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440,
		49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600,
		34729*n5/80640 - 3418889*n6/1995840,
		212378941 * n6 / 319334400,
	}
	beta := []float64{
		n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
		n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
		17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
		4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
		4583*n5/161280 - 108847*n6/3991680,
		20648693 * n6 / 638668800,
	}

	s := &tmercSetup{ellps: ellps, lon0: lon0, lat0: lat0, k0: k0, x0: x0, y0: y0, bigA: bigA, alpha: alpha, beta: beta, n: n}
	if lat0 != 0 {
		s.qs0 = s.conformalXi0(lat0)
	}
	return *s
}

// conformalXi0 returns the spherical conformal latitude (the Gauss-Schreiber
// xi coordinate, before the alpha-series correction) used to offset the
// projection when lat_0 != 0.
func (s *tmercSetup) conformalXi0(lat float64) float64 {
	chi := ConformalLatitude(lat, s.ellps)
	return chi
}

func (s *tmercSetup) forward(lon, lat float64) (x, y float64) {
	dlam := NormalizeSymmetric(lon - s.lon0)
	if math.Abs(dlam) > tmercClampRad {
		return math.NaN(), math.NaN()
	}

	chi := ConformalLatitude(lat, s.ellps)
	sinChi, cosChi := math.Sincos(chi)
	sinLam, cosLam := math.Sincos(dlam)

	xip := math.Atan2(sinChi, cosChi*cosLam)
	etap := math.Asinh(cosChi * sinLam / math.Hypot(sinChi, cosChi*cosLam))

	dxip, detap := ComplexSin(2*xip, 2*etap, s.alpha)
	xi := xip + dxip
	eta := etap + detap

	x = s.k0*s.bigA*eta + s.x0
	y = s.k0*s.bigA*xi + s.y0
	if s.lat0 != 0 {
		y -= s.k0 * s.bigA * s.qs0
	}
	return x, y
}

func (s *tmercSetup) inverse(x, y float64) (lon, lat float64) {
	xi := (y - s.y0) / (s.k0 * s.bigA)
	if s.lat0 != 0 {
		xi += s.qs0
	}
	eta := (x - s.x0) / (s.k0 * s.bigA)

	dxi, deta := ComplexSin(2*xi, 2*eta, s.beta)
	xip := xi - dxi
	etap := eta - deta

	sinhEtap := math.Sinh(etap)
	sinXip, cosXip := math.Sincos(xip)
	r := math.Hypot(cosXip, sinhEtap)

	lam := math.Atan2(sinhEtap, cosXip)
	var chi float64
	if r == 0 {
		chi = math.Copysign(math.Pi/2, sinXip)
	} else {
		chi = math.Atan2(sinXip, r)
	}

	lat = InverseConformalLatitude(chi, s.ellps)
	lon = NormalizeSymmetric(lam + s.lon0)
	return lon, lat
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ctorTmerc(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(tmercGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}
	setup := buildTmerc(ellps, params.Real("lon_0")*degToRad, params.Real("lat_0")*degToRad, params.Real("k_0"), params.Real("x_0"), params.Real("y_0"))
	return tmercOp(params, setup), nil
}

func tmercOp(params *ParsedParameters, setup tmercSetup) *Op {
	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			x, y := setup.forward(c[0], c[1])
			if math.IsNaN(x) {
				set.SetCoord(i, NaNCoor)
				continue
			}
			set.SetCoord(i, Coor4D{x, y, c[2], c[3]})
			successes++
		}
		return successes
	}
	op.invFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			lon, lat := setup.inverse(c[0], c[1])
			set.SetCoord(i, Coor4D{lon, lat, c[2], c[3]})
			successes++
		}
		return successes
	}
	return op
}

const (
	utmK0       = 0.9996
	utmFalseE   = 500000.0
	utmFalseN   = 10000000.0
)

func utmGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		IntegerEntry("zone"),
		FlagEntry("south"),
	}
}

func ctorUTM(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(utmGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}
	zone := params.Integer("zone")
	if zone < 1 || zone > 60 {
		return nil, errBadParam("zone", "", "must be in 1..60")
	}
	lon0 := degToRad * (-183 + 6*float64(zone))
	y0 := 0.0
	if params.Flag("south") {
		y0 = utmFalseN
	}
	setup := buildTmerc(ellps, lon0, 0, utmK0, utmFalseE, y0)
	return tmercOp(params, setup), nil
}
