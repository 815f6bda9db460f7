package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `gridshift`: additive correction from a shared Grid (geoid height, 1 band; or lon/lat datum shift,   */
/* 2 bands), looked up by name in the Context's grid registry, per §4.E/§4.F. The 2-band inverse uses   */
/* Grid.InverseShift's fixed-point iteration; the 1-band (geoid) case defines no inverse: `invFn` is    */
/* left nil, so applying it in the inverse direction returns an Unsupported error.                      */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func gridshiftGamut() Gamut {
	return Gamut{
		TextEntry("grids"),
	}
}

func ctorGridshift(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(gridshiftGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	grid, err := ctx.GetGrid(params.Text("grids"))
	if err != nil {
		return nil, err
	}

	op := &Op{Params: params, inverted: params.Flag("inv")}

	switch grid.Bands {
	case 1:
		op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
			successes := 0
			for i := 0; i < set.Len(); i++ {
				c := set.GetCoord(i)
				if c.IsNaN() {
					set.SetCoord(i, NaNCoor)
					continue
				}
				correction := grid.Interpolate(c[0], c[1], 0)
				set.SetCoord(i, Coor4D{c[0], c[1], c[2] + correction, c[3]})
				successes++
			}
			return successes
		}
	default:
		op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
			successes := 0
			for i := 0; i < set.Len(); i++ {
				c := set.GetCoord(i)
				if c.IsNaN() {
					set.SetCoord(i, NaNCoor)
					continue
				}
				dlon := grid.Interpolate(c[0], c[1], 0)
				dlat := grid.Interpolate(c[0], c[1], 1)
				set.SetCoord(i, Coor4D{c[0] + dlon, c[1] + dlat, c[2], c[3]})
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
				lon, lat, converged := grid.InverseShift(c[0], c[1])
				if !converged {
					set.SetCoord(i, NaNCoor)
					continue
				}
				set.SetCoord(i, Coor4D{lon, lat, c[2], c[3]})
				successes++
			}
			return successes
		}
	}
	return op, nil
}
