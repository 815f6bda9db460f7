package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `unitconvert`: scales coord[0]/coord[1] (xy_in/xy_out, linear or angular) and/or coord[2] (z_in/      */
/* z_out, always linear) by named-unit-to-pivot factors, per §4.F. Angular units pivot on radians,      */
/* linear units on metres; an unrecognized unit name is a construction-time error rather than a runtime */
/* NaN, since the unit table is static.                                                                 */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

var linearUnits = map[string]float64{
	"m": 1, "metre": 1, "meter": 1,
	"km": 1000,
	"us-ft": 0.304800609601219,
	"us-yd": 0.914401828803658,
	"ft": 0.3048,
	"yd": 0.9144,
}

var angularUnits = map[string]float64{
	"rad": 1,
	"deg": degToRad,
	"gon": math.Pi / 200,
	"grad": math.Pi / 200,
}

func unitconvertGamut() Gamut {
	return Gamut{
		TextEntry("xy_in", "m"),
		TextEntry("xy_out", "m"),
		TextEntry("z_in", "m"),
		TextEntry("z_out", "m"),
	}
}

func unitFactor(name string) (float64, bool) {
	if f, ok := linearUnits[name]; ok {
		return f, true
	}
	if f, ok := angularUnits[name]; ok {
		return f, true
	}
	return 0, false
}

func ctorUnitconvert(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(unitconvertGamut(), locals, globals)
	if err != nil {
		return nil, err
	}

	xyIn, ok := unitFactor(params.Text("xy_in"))
	if !ok {
		return nil, errBadParam("xy_in", params.Text("xy_in"), "unrecognized unit")
	}
	xyOut, ok := unitFactor(params.Text("xy_out"))
	if !ok {
		return nil, errBadParam("xy_out", params.Text("xy_out"), "unrecognized unit")
	}
	zIn, ok := unitFactor(params.Text("z_in"))
	if !ok {
		return nil, errBadParam("z_in", params.Text("z_in"), "unrecognized unit")
	}
	zOut, ok := unitFactor(params.Text("z_out"))
	if !ok {
		return nil, errBadParam("z_out", params.Text("z_out"), "unrecognized unit")
	}

	xyFactor := xyIn / xyOut
	zFactor := zIn / zOut

	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			set.SetCoord(i, Coor4D{c[0] * xyFactor, c[1] * xyFactor, c[2] * zFactor, c[3]})
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
			set.SetCoord(i, Coor4D{c[0] / xyFactor, c[1] / xyFactor, c[2] / zFactor, c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
