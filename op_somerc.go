package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `somerc`: Swiss oblique Mercator (the projection behind CH1903/LV95), a double conformal mapping   */
/* through a sphere tangent at lat_0. The forward sphere latitude is exactly a scaled, offset          */
/* isometric latitude (alpha*psi(phi) + K), so the inverse reuses InverseIsometricLatitude's Newton    */
/* loop directly rather than a bespoke iteration.                                                     */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func somercGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		RealEntry("lon_0"), RealEntry("lat_0"),
		RealEntry("k_0", "1"),
		RealEntry("x_0", "0"), RealEntry("y_0", "0"),
	}
}

type somercSetup struct {
	ellps      Ellipsoid
	lon0, lat0 float64
	k0, x0, y0 float64
	alpha, b0  float64
	kConst     float64
	r          float64
}

func buildSomerc(ellps Ellipsoid, lon0, lat0, k0, x0, y0 float64) somercSetup {
	e2 := ellps.Esq()

	sinLat0 := math.Sin(lat0)
	cosLat0 := math.Cos(lat0)

	rho0 := ellps.MeridianRadius(lat0)
	nu0 := ellps.PrimeVertical(lat0)
	r := math.Sqrt(rho0 * nu0)

	alpha := math.Sqrt(1 + e2*cosLat0*cosLat0*cosLat0*cosLat0/(1-e2))
	b0 := math.Asin(sinLat0 / alpha)

	psi0 := IsometricLatitude(lat0, ellps)
	kConst := math.Log(math.Tan(math.Pi/4+b0/2)) - alpha*psi0

	return somercSetup{ellps: ellps, lon0: lon0, lat0: lat0, k0: k0, x0: x0, y0: y0, alpha: alpha, b0: b0, kConst: kConst, r: r}
}

// forward rotates the auxiliary (tangent) sphere so its pole sits at
// (lon_0, b0) before projecting with the standard spherical Mercator
// formulas (Snyder 1987 eq. 22, adapted for an arbitrary pole).
func (s *somercSetup) forward(lon, lat float64) (x, y float64) {
	psi := IsometricLatitude(lat, s.ellps)
	sPrime := s.alpha*psi + s.kConst
	bPrime := 2*math.Atan(math.Exp(sPrime)) - math.Pi/2

	lPrime := s.alpha * (lon - s.lon0)

	sinB, cosB := math.Sincos(bPrime)
	sinL, cosL := math.Sincos(lPrime)
	sinB0, cosB0 := math.Sincos(s.b0)

	sinBDD := cosB0*sinB - sinB0*cosB*cosL
	lDD := math.Atan2(cosB*sinL, sinB0*sinB+cosB0*cosB*cosL)

	x = s.k0*s.r*lDD + s.x0
	y = s.k0*s.r*math.Log(math.Tan(math.Pi/4+math.Asin(clamp(sinBDD, -1, 1))/2)) + s.y0
	return x, y
}

func (s *somercSetup) inverse(x, y float64) (lon, lat float64) {
	lDD := (x - s.x0) / (s.k0 * s.r)
	bDD := 2*math.Atan(math.Exp((y-s.y0)/(s.k0*s.r))) - math.Pi/2

	sinB0, cosB0 := math.Sincos(s.b0)
	sinBDD, cosBDD := math.Sincos(bDD)
	sinLDD, cosLDD := math.Sincos(lDD)

	sinB := cosB0*sinBDD + sinB0*cosBDD*cosLDD
	bPrime := math.Asin(clamp(sinB, -1, 1))
	lPrime := math.Atan2(cosBDD*sinLDD, sinB0*(-sinBDD)+cosB0*cosBDD*cosLDD)

	sPrime := math.Log(math.Tan(math.Pi/4 + bPrime/2))
	psi := (sPrime - s.kConst) / s.alpha

	lon = s.lon0 + lPrime/s.alpha
	lat = InverseIsometricLatitude(psi, s.ellps)
	return lon, lat
}

func ctorSomerc(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(somercGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}
	setup := buildSomerc(ellps, params.Real("lon_0")*degToRad, params.Real("lat_0")*degToRad, params.Real("k_0"), params.Real("x_0"), params.Real("y_0"))

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
