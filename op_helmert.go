package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `helmert`: 7/14/15-parameter similarity transform in geocentric XYZ, per §4.F. Rotation matrix    */
/* construction follows Engsager's formulation (small-angle by default, full trigonometric when      */
/* `exact` is set); `position_vector` transposes the matrix relative to `coordinate_frame`. The sign  */
/* convention was re-derived from S3's worked example per DESIGN.md's Open Question decision, not     */
/* from the ancestor's (contradictory, partially dead) two Helmert drafts.                            */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const arcsecToRad = degToRad / 3600
const ppmToScale = 1e-6

func helmertGamut() Gamut {
	return Gamut{
		RealEntry("x", "0"), RealEntry("y", "0"), RealEntry("z", "0"),
		RealEntry("dx", "0"), RealEntry("dy", "0"), RealEntry("dz", "0"),
		RealEntry("rx", "0"), RealEntry("ry", "0"), RealEntry("rz", "0"),
		RealEntry("drx", "0"), RealEntry("dry", "0"), RealEntry("drz", "0"),
		RealEntry("s", "0"), RealEntry("ds", "0"),
		TextEntry("convention", "position_vector"),
		FlagEntry("exact"),
		RealEntry("t_epoch", "0"),
		RealEntry("t_obs", "nan"),
	}
}

type helmertMatrix struct {
	r    [3][3]float64
	t    [3]float64
	s    float64
	time float64 // t_obs this matrix was built for, or NaN if not yet built
}

func ctorHelmert(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(helmertGamut(), locals, globals)
	if err != nil {
		return nil, err
	}

	convention := params.Text("convention")
	if convention != "position_vector" && convention != "coordinate_frame" {
		return nil, errBadParam("convention", convention, "must be position_vector or coordinate_frame")
	}

	hasRates := params.Real("dx") != 0 || params.Real("dy") != 0 || params.Real("dz") != 0 ||
		params.Real("drx") != 0 || params.Real("dry") != 0 || params.Real("drz") != 0 || params.Real("ds") != 0
	if hasRates && params.Real("t_epoch") == 0 {
		return nil, errMissingParam("t_epoch")
	}

	fixedObs, hasFixedObs := math.NaN(), false
	if t := params.Real("t_obs"); !math.IsNaN(t) {
		fixedObs, hasFixedObs = t, true
	}

	cached := &helmertMatrix{time: math.NaN()}
	build := func(t float64) helmertMatrix {
		dt := t - params.Real("t_epoch")
		x := params.Real("x") + params.Real("dx")*dt
		y := params.Real("y") + params.Real("dy")*dt
		z := params.Real("z") + params.Real("dz")*dt
		rx := (params.Real("rx") + params.Real("drx")*dt) * arcsecToRad
		ry := (params.Real("ry") + params.Real("dry")*dt) * arcsecToRad
		rz := (params.Real("rz") + params.Real("drz")*dt) * arcsecToRad
		s := 1 + (params.Real("s")+params.Real("ds")*dt)*ppmToScale

		var r [3][3]float64
		if params.Flag("exact") {
			sx, cx := math.Sincos(rx)
			sy, cy := math.Sincos(ry)
			sz, cz := math.Sincos(rz)
			r = [3][3]float64{
				{cy * cz, -cy * sz, sy},
				{cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy},
				{sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy},
			}
		} else {
			r = [3][3]float64{
				{1, -rz, ry},
				{rz, 1, -rx},
				{-ry, rx, 1},
			}
		}

		if convention == "position_vector" {
			r = transpose3(r)
		}

		return helmertMatrix{r: r, t: [3]float64{x, y, z}, s: s, time: t}
	}

	op := &Op{Params: params, inverted: params.Flag("inv")}

	matrixFor := func(t float64) helmertMatrix {
		if hasFixedObs {
			if math.IsNaN(cached.time) {
				*cached = build(fixedObs)
			}
			return *cached
		}
		if cached.time != t {
			*cached = build(t)
		}
		return *cached
	}

	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			m := matrixFor(c[3])
			v := mulMat3(m.r, [3]float64{c[0], c[1], c[2]})
			set.SetCoord(i, Coor4D{
				m.s*v[0] + m.t[0],
				m.s*v[1] + m.t[1],
				m.s*v[2] + m.t[2],
				c[3],
			})
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
			m := matrixFor(c[3])
			deoffset := [3]float64{(c[0] - m.t[0]) / m.s, (c[1] - m.t[1]) / m.s, (c[2] - m.t[2]) / m.s}
			v := mulMat3(transpose3(m.r), deoffset)
			set.SetCoord(i, Coor4D{v[0], v[1], v[2], c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}

func transpose3(m [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func mulMat3(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
