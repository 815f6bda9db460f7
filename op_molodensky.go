package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `molodensky`: abridged or full 3-parameter (dx,dy,dz) datum shift applied directly in geographic   */
/* space, avoiding a round trip through cartesian. Standard Molodensky series, generalized from the    */
/* single-ellipsoid-pair ancestor constants to arbitrary ellps/ellps_1 (or explicit da/df) per §4.F.   */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func molodenskyGamut() Gamut {
	return Gamut{
		RealEntry("dx", "0"), RealEntry("dy", "0"), RealEntry("dz", "0"),
		TextEntry("ellps", DefaultEllipsoidName),
		TextEntry("ellps_1", ""),
		RealEntry("da", "0"), RealEntry("df", "0"),
		FlagEntry("abridged"),
	}
}

func ctorMolodensky(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(molodenskyGamut(), locals, globals)
	if err != nil {
		return nil, err
	}

	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}

	da, df := params.Real("da"), params.Real("df")
	if target := params.Text("ellps_1"); target != "" {
		ellps1, err := LookupEllipsoid(target)
		if err != nil {
			return nil, err
		}
		da = ellps1.A - ellps.A
		df = ellps1.F - ellps.F
	}

	dx, dy, dz := params.Real("dx"), params.Real("dy"), params.Real("dz")
	abridged := params.Flag("abridged")
	a, f, esq := ellps.A, ellps.F, ellps.Esq()

	shift := func(lon, lat, h float64, sign float64) (float64, float64, float64) {
		sinLat, cosLat := math.Sincos(lat)
		sinLon, cosLon := math.Sincos(lon)

		rm := ellps.MeridianRadius(lat)
		rn := ellps.PrimeVertical(lat)

		ddx, ddy, ddz := sign*dx, sign*dy, sign*dz
		dda, ddf := sign*da, sign*df

		dlat := (-ddx*sinLat*cosLon - ddy*sinLat*sinLon + ddz*cosLat +
			dda*(rn*esq*sinLat*cosLat/a) + ddf*(rm*a/ellps.B()+rn*ellps.B()/a)*sinLat*cosLat) / (rm + h)
		if abridged {
			dlat = (-ddx*sinLat*cosLon - ddy*sinLat*sinLon + ddz*cosLat +
				(a*ddf+f*dda)*math.Sin(2*lat)) / (rm + h)
		}

		dlon := (-ddx*sinLon + ddy*cosLon) / ((rn + h) * cosLat)

		dh := ddx*cosLat*cosLon + ddy*cosLat*sinLon + ddz*sinLat - dda*a/rn + ddf*(rn*ellps.B()/a)*sinLat*sinLat
		if abridged {
			dh = ddx*cosLat*cosLon + ddy*cosLat*sinLon + ddz*sinLat +
				(a*ddf+f*dda)*sinLat*sinLat - dda
		}

		return lon + dlon, lat + dlat, h + dh
	}

	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			lon, lat, h := shift(c[0], c[1], c[2], 1)
			set.SetCoord(i, Coor4D{lon, lat, h, c[3]})
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
			lon, lat, h := shift(c[0], c[1], c[2], -1)
			set.SetCoord(i, Coor4D{lon, lat, h, c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
