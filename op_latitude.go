package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `latitude`: converts coord[1] to/from one of the auxiliary latitudes (latitudes.go), selected by     */
/* exactly one flag, per §4.C/§4.F. Invertible: the inverse direction runs the matching Inverse*         */
/* function.                                                                                            */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func latitudeGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		FlagEntry("geocentric"),
		FlagEntry("reduced"),
		FlagEntry("conformal"),
		FlagEntry("authalic"),
		FlagEntry("rectifying"),
	}
}

func ctorLatitude(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(latitudeGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}

	type conv struct {
		fwd func(float64, Ellipsoid) float64
		inv func(float64, Ellipsoid) float64
	}

	selected := 0
	var c conv
	if params.Flag("geocentric") {
		selected++
		c = conv{GeocentricLatitude, InverseGeocentricLatitude}
	}
	if params.Flag("reduced") {
		selected++
		c = conv{ReducedLatitude, InverseReducedLatitude}
	}
	if params.Flag("conformal") {
		selected++
		c = conv{ConformalLatitude, InverseConformalLatitude}
	}
	if params.Flag("authalic") {
		selected++
		c = conv{AuthalicLatitude, InverseAuthalicLatitude}
	}
	if params.Flag("rectifying") {
		selected++
		c = conv{RectifyingLatitude, InverseRectifyingLatitude}
	}
	if selected != 1 {
		return nil, errBadParam("latitude", "", "exactly one of geocentric, reduced, conformal, authalic, rectifying must be set")
	}

	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			cd := set.GetCoord(i)
			if cd.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			set.SetCoord(i, Coor4D{cd[0], c.fwd(cd[1], ellps), cd[2], cd[3]})
			successes++
		}
		return successes
	}
	op.invFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			cd := set.GetCoord(i)
			if cd.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			set.SetCoord(i, Coor4D{cd[0], c.inv(cd[1], ellps), cd[2], cd[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
