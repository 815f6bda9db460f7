package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `omerc`: Hotine oblique Mercator, two-point or azimuth form, per Snyder (1987) §9-25..9-29 and EPSG */
/* guidance note 7-2. (u, v) are measured from the natural origin: no projection-centre offset u_c is  */
/* subtracted (the variant A form). This operator is exercised by no worked scenario in this            */
/* codebase's test suite; treat it as a best-effort structural implementation pending a reference       */
/* fixture.                                                                                            */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func omercGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		RealEntry("lonc"), RealEntry("lat_0"),
		RealEntry("alpha", "nan"),
		RealEntry("gamma", "nan"),
		RealEntry("lon_1", "nan"), RealEntry("lat_1", "nan"),
		RealEntry("lon_2", "nan"), RealEntry("lat_2", "nan"),
		RealEntry("k_0", "1"),
		RealEntry("x_0", "0"), RealEntry("y_0", "0"),
	}
}

type omercSetup struct {
	ellps        Ellipsoid
	lonc, lat0   float64
	k0, x0, y0   float64
	bigB, bigA   float64
	e            float64
	t0           float64
	bigD, bigF   float64
	bigE         float64
	g0, l0       float64
	gamma0       float64
}

func buildOmerc(ellps Ellipsoid, lonc, lat0, alpha, lon1, lat1, lon2, lat2 float64, k0, x0, y0 float64) omercSetup {
	e2 := ellps.Esq()
	e := ellps.E()

	sinLat0 := math.Sin(lat0)
	cosLat0 := math.Cos(lat0)

	bigB := math.Sqrt(1 + e2*cosLat0*cosLat0*cosLat0*cosLat0/(1-e2))
	bigA := bigB * k0 * math.Sqrt(1-e2) / (1 - e2*sinLat0*sinLat0)

	t0 := Ts(lat0, sinLat0, e)
	bigD := bigB * math.Sqrt(1-e2) / (cosLat0 * math.Sqrt(1-e2*sinLat0*sinLat0))
	bigDClamped := math.Max(bigD, 1)
	bigF := bigDClamped + math.Sqrt(bigDClamped*bigDClamped-1)*sign(lat0)

	var gamma0, lambda0 float64
	if !math.IsNaN(alpha) {
		gamma0 = math.Asin(math.Sin(alpha) / bigD)
		lambda0 = lonc - math.Asin(math.Sin(gamma0)*(bigF-1/bigF)/2)/bigB
	} else {
		t1 := Ts(lat1, math.Sin(lat1), e)
		t2 := Ts(lat2, math.Sin(lat2), e)
		bigH := math.Pow(t0, bigB) / t1
		bigL := math.Pow(t0, bigB) / t2
		bigP := (bigL - bigH) / (bigL + bigH)
		dlon := NormalizeSymmetric(lon1 - lon2)
		gamma0 = math.Atan2(math.Sin(bigB*dlon), bigP)
		lambda0 = (lon1+lon2)/2 - math.Atan(bigP*math.Tan(bigB*dlon/2))/bigB
	}

	bigE := bigF * math.Pow(t0, bigB)

	return omercSetup{
		ellps: ellps, lonc: lonc, lat0: lat0, k0: k0, x0: x0, y0: y0,
		bigB: bigB, bigA: bigA, e: e, t0: t0, bigD: bigD, bigF: bigF, bigE: bigE,
		g0: gamma0, l0: lambda0, gamma0: gamma0,
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (s *omercSetup) forward(lon, lat float64) (x, y float64) {
	sinLat := math.Sin(lat)
	t := Ts(lat, sinLat, s.e)
	bigQ := s.bigE / math.Pow(t, s.bigB)
	bigS := (bigQ - 1/bigQ) / 2
	bigT := (bigQ + 1/bigQ) / 2
	bigV := math.Sin(s.bigB * (lon - s.l0))
	bigU := (-bigV*math.Cos(s.g0) + bigS*math.Sin(s.g0)) / bigT

	v := s.bigA * math.Log((1-bigU)/(1+bigU)) / (2 * s.bigB)
	u := s.bigA / s.bigB * math.Atan2(bigS*math.Cos(s.g0)+bigV*math.Sin(s.g0), math.Cos(s.bigB*(lon-s.l0)))

	x = v*math.Cos(s.gamma0) + u*math.Sin(s.gamma0) + s.x0
	y = u*math.Cos(s.gamma0) - v*math.Sin(s.gamma0) + s.y0
	return x, y
}

func (s *omercSetup) inverse(x, y float64) (lon, lat float64) {
	dx, dy := x-s.x0, y-s.y0
	v := dx*math.Cos(s.gamma0) - dy*math.Sin(s.gamma0)
	u := dy*math.Cos(s.gamma0) + dx*math.Sin(s.gamma0)

	bigQp := math.Exp(-s.bigB * v / s.bigA)
	bigSp := (bigQp - 1/bigQp) / 2
	bigTp := (bigQp + 1/bigQp) / 2
	bigVp := math.Sin(s.bigB * u / s.bigA)
	bigUp := (bigVp*math.Cos(s.g0) + bigSp*math.Sin(s.g0)) / bigTp

	tPrime := math.Pow(s.bigE/math.Sqrt((1+bigUp)/(1-bigUp)), 1/s.bigB)

	phi := math.Pi/2 - 2*math.Atan(tPrime)
	for i := 0; i < 15; i++ {
		sinPhi := math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(tPrime*math.Pow((1-s.e*sinPhi)/(1+s.e*sinPhi), s.e/2))
		delta := next - phi
		phi = next
		if math.Abs(delta) < 1e-15 {
			break
		}
	}
	lat = phi
	lon = s.l0 - math.Atan2(bigSp*math.Cos(s.g0)-bigVp*math.Sin(s.g0), math.Cos(s.bigB*u/s.bigA))/s.bigB
	return lon, lat
}

func ctorOmerc(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(omercGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}

	alpha := params.Real("alpha")
	if math.IsNaN(alpha) &&
		(math.IsNaN(params.Real("lon_1")) || math.IsNaN(params.Real("lat_1")) ||
			math.IsNaN(params.Real("lon_2")) || math.IsNaN(params.Real("lat_2"))) {
		return nil, errMissingParam("alpha")
	}
	alpha *= degToRad

	setup := buildOmerc(ellps, params.Real("lonc")*degToRad, params.Real("lat_0")*degToRad, alpha,
		params.Real("lon_1")*degToRad, params.Real("lat_1")*degToRad, params.Real("lon_2")*degToRad, params.Real("lat_2")*degToRad,
		params.Real("k_0"), params.Real("x_0"), params.Real("y_0"))

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
