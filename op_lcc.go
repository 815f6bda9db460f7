package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `lcc`: Lambert Conformal Conic, one or two standard parallels, per Snyder (1987) §14-1..14-4.       */
/* Reuses Ts (latitudes.go) for Snyder's numerically stable t-function, shared with omerc.             */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func lccGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		RealEntry("lon_0", "0"), RealEntry("lat_0", "nan"),
		RealEntry("lat_1"), RealEntry("lat_2", "nan"),
		RealEntry("x_0", "0"), RealEntry("y_0", "0"),
	}
}

type lccSetup struct {
	ellps      Ellipsoid
	lon0       float64
	x0, y0     float64
	n, f, rho0 float64
}

func buildLCC(ellps Ellipsoid, lon0, lat0, lat1, lat2, x0, y0 float64) lccSetup {
	e := ellps.E()
	a := ellps.A

	m := func(phi float64) float64 {
		sinPhi := math.Sin(phi)
		return math.Cos(phi) / math.Sqrt(1-e*e*sinPhi*sinPhi)
	}
	t := func(phi float64) float64 {
		return Ts(phi, math.Sin(phi), e)
	}

	var n float64
	if lat1 == lat2 {
		n = math.Sin(lat1)
	} else {
		m1, m2 := m(lat1), m(lat2)
		t1, t2 := t(lat1), t(lat2)
		n = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	}

	f := m(lat1) / (n * math.Pow(t(lat1), n))
	rho0 := a * f * math.Pow(t(lat0), n)

	return lccSetup{ellps: ellps, lon0: lon0, x0: x0, y0: y0, n: n, f: f, rho0: rho0}
}

func (s *lccSetup) forward(lon, lat float64) (x, y float64) {
	e := s.ellps.E()
	tphi := Ts(lat, math.Sin(lat), e)
	rho := s.ellps.A * s.f * math.Pow(tphi, s.n)
	theta := s.n * NormalizeSymmetric(lon-s.lon0)
	sinTheta, cosTheta := math.Sincos(theta)
	x = s.x0 + rho*sinTheta
	y = s.y0 + s.rho0 - rho*cosTheta
	return x, y
}

func (s *lccSetup) inverse(x, y float64) (lon, lat float64) {
	e := s.ellps.E()
	dx := x - s.x0
	dy := s.rho0 - (y - s.y0)
	rhoPrime := math.Hypot(dx, dy)
	if s.n < 0 {
		rhoPrime = -rhoPrime
	}
	thetaPrime := math.Atan2(dx, dy)

	tPrime := math.Pow(rhoPrime/(s.ellps.A*s.f), 1/s.n)
	phi := math.Pi/2 - 2*math.Atan(tPrime)
	for i := 0; i < 15; i++ {
		sinPhi := math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(tPrime*math.Pow((1-e*sinPhi)/(1+e*sinPhi), e/2))
		delta := next - phi
		phi = next
		if math.Abs(delta) < 1e-15 {
			break
		}
	}

	lat = phi
	lon = NormalizeSymmetric(thetaPrime/s.n + s.lon0)
	return lon, lat
}

func ctorLCC(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(lccGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}

	lat1 := params.Real("lat_1") * degToRad
	lat2 := params.Real("lat_2") * degToRad
	if math.IsNaN(lat2) {
		lat2 = lat1
	}

	// lat_0 defaults to lat_1 when the tangent (single-parallel) case applies
	// and no explicit lat_0 was given; otherwise it defaults to 0.
	lat0 := params.Real("lat_0") * degToRad
	if math.IsNaN(lat0) {
		if lat1 == lat2 {
			lat0 = lat1
		} else {
			lat0 = 0
		}
	}

	setup := buildLCC(ellps, params.Real("lon_0")*degToRad, lat0, lat1, lat2, params.Real("x_0"), params.Real("y_0"))

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
	return op, nil
}
