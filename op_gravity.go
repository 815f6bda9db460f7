package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `gravity`: replaces coord[2] with normal gravity at (coord[1], coord[2]), per gravity.go's           */
/* Somigliana family, supplementing §4.C/§4.F. A `formula` flag selects the historical constant set     */
/* (default somigliana/WGS84); `welmec` overrides with the WELMEC legal-metrology combination instead   */
/* of the plain free-air correction. Not invertible: height is overwritten, not recoverable.             */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func gravityGamut() Gamut {
	return Gamut{
		TextEntry("ellps", DefaultEllipsoidName),
		TextEntry("formula", "somigliana"),
		FlagEntry("welmec"),
	}
}

var gravityFormulaNames = map[string]GravityFormula{
	"somigliana": Somigliana,
	"cassinis30": Cassinis30,
	"jeffreys48": Jeffreys48,
	"grs67":      GRS67,
	"grs80":      GRS80Gravity,
}

func ctorGravity(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(gravityGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}
	formula, ok := gravityFormulaNames[params.Text("formula")]
	if !ok {
		return nil, errBadParam("formula", params.Text("formula"), "unrecognized gravity formula")
	}
	welmec := params.Flag("welmec")

	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			var g float64
			if welmec {
				g = WELMEC(c[1], c[2], ellps)
			} else {
				g = NormalGravityAtHeight(c[1], c[2], ellps, formula)
			}
			set.SetCoord(i, Coor4D{c[0], c[1], g, c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
