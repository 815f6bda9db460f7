package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `curvature`: replaces coord[0] with one of the ellipsoid's radii of curvature at coord[1], per       */
/* §4.C/§4.F. Exactly one of the five flags selects which Ellipsoid method runs; not invertible (the    */
/* original latitude/longitude is discarded, as coord[0] is overwritten).                               */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func curvatureGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		FlagEntry("prime"),
		FlagEntry("meridian"),
		FlagEntry("gaussian"),
		FlagEntry("mean"),
		FlagEntry("azimuthal"),
		RealEntry("azi", "0"),
	}
}

func ctorCurvature(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(curvatureGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}

	selected := 0
	var radius func(phi float64) float64
	if params.Flag("prime") {
		selected++
		radius = ellps.PrimeVertical
	}
	if params.Flag("meridian") {
		selected++
		radius = ellps.MeridianRadius
	}
	if params.Flag("gaussian") {
		selected++
		radius = ellps.GaussianRadius
	}
	if params.Flag("mean") {
		selected++
		radius = ellps.MeanRadius
	}
	azi := params.Real("azi")
	if params.Flag("azimuthal") {
		selected++
		radius = func(phi float64) float64 { return ellps.AzimuthalRadius(phi, azi) }
	}
	if selected != 1 {
		return nil, errBadParam("curvature", "", "exactly one of prime, meridian, gaussian, mean, azimuthal must be set")
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
			set.SetCoord(i, Coor4D{radius(c[1]), c[1], c[2], c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
