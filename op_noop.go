package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `noop` and `addone`: identity and single-constant-offset operators used as macro/resource test       */
/* scaffolding (the stupid:way example in §4.H/§6) and as placeholder resource bodies in NewContext.     */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func ctorNoop(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(nil, locals, globals)
	if err != nil {
		return nil, err
	}
	identity := func(_ *Op, _ *Context, set CoordinateSet) int { return set.Len() }
	return &Op{Params: params, inverted: params.Flag("inv"), fwdFn: identity, invFn: identity}, nil
}

func addoneGamut() Gamut {
	return Gamut{RealEntry("amount", "1")}
}

func ctorAddone(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(addoneGamut(), locals, globals)
	if err != nil {
		return nil, err
	}
	amount := params.Real("amount")

	op := &Op{Params: params, inverted: params.Flag("inv")}
	op.fwdFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			c[0] += amount
			set.SetCoord(i, c)
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
			c[0] -= amount
			set.SetCoord(i, c)
			successes++
		}
		return successes
	}
	return op, nil
}
