package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `cart`: geographic <-> geocentric cartesian, per §4.C/§4.F. Thin operator wrapper around           */
/* cartesian.go's GeographicToCartesian/CartesianToGeographic, grounded on the same ancestor this     */
/* kernel file generalizes (latlon-ellipsoidal-datum.go's ToCartesian/ToLatLon).                      */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func cartGamut() Gamut {
	return Gamut{TextEntry("ellps", DefaultEllipsoidName)}
}

func ctorCart(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(cartGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
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
			x, y, z := GeographicToCartesian(c[0], c[1], c[2], ellps)
			set.SetCoord(i, Coor4D{x, y, z, c[3]})
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
			lon, lat, h := CartesianToGeographic(c[0], c[1], c[2], ellps)
			set.SetCoord(i, Coor4D{lon, lat, h, c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
