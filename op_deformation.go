package geodesy

import "math"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `deformation`: kinematic correction from a 3-band (east, north, up velocity) grid, applied in        */
/* geocentric XYZ space and scaled by elapsed time, per §4.E/§4.F. The per-coordinate east/north/up      */
/* velocity is rotated into XYZ via the standard ENU-to-ECEF rotation (sin/cos of lon, lat), scaled by   */
/* Δt = t_obs - t_epoch (t_obs from coord[3] unless `dt` is given explicitly), and added to the          */
/* cartesian position before converting back to geographic.                                              */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func deformationGamut() Gamut {
	return Gamut{
		TextEntry("grids"),
		TextEntry("ellps", DefaultEllipsoidName),
		RealEntry("t_epoch", "0"),
		RealEntry("dt", "nan"),
	}
}

func ctorDeformation(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(deformationGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	grid, err := ctx.GetGrid(params.Text("grids"))
	if err != nil {
		return nil, err
	}
	if grid.Bands < 3 {
		return nil, errBadParam("grids", params.Text("grids"), "deformation requires a 3-band (east,north,up) grid")
	}
	ellps, err := LookupEllipsoid(params.Text("ellps"))
	if err != nil {
		return nil, err
	}
	tEpoch := params.Real("t_epoch")
	fixedDt := params.Real("dt")

	shift := func(lon, lat, h, t, sign float64) (float64, float64, float64) {
		dt := fixedDt
		if math.IsNaN(dt) {
			dt = t - tEpoch
		}
		dt *= sign

		velocities := grid.InterpolateAll(lon, lat)
		ve, vn, vu := velocities[0], velocities[1], velocities[2]

		sinLon, cosLon := math.Sincos(lon)
		sinLat, cosLat := math.Sincos(lat)

		dx := -sinLon*ve - sinLat*cosLon*vn + cosLat*cosLon*vu
		dy := cosLon*ve - sinLat*sinLon*vn + cosLat*sinLon*vu
		dz := cosLat*vn + sinLat*vu

		x, y, z := GeographicToCartesian(lon, lat, h, ellps)
		x += dt * dx
		y += dt * dy
		z += dt * dz

		return CartesianToGeographic(x, y, z, ellps)
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
			lon, lat, h := shift(c[0], c[1], c[2], c[3], 1)
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
			lon, lat, h := shift(c[0], c[1], c[2], c[3], -1)
			set.SetCoord(i, Coor4D{lon, lat, h, c[3]})
			successes++
		}
		return successes
	}
	return op, nil
}
