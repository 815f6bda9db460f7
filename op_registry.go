package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* registerBuiltinOperators wires every operator constructor into a fresh Context, per §4.F's listed    */
/* catalogue plus the supplemented `gravity` operator. Each name maps to exactly one ctor<Name>          */
/* function defined in its own op_*.go file.                                                            */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func registerBuiltinOperators(ctx *Context) {
	ctx.RegisterOp("cart", ctorCart)
	ctx.RegisterOp("helmert", ctorHelmert)
	ctx.RegisterOp("molodensky", ctorMolodensky)
	ctx.RegisterOp("tmerc", ctorTmerc)
	ctx.RegisterOp("utm", ctorUTM)
	ctx.RegisterOp("lcc", ctorLCC)
	ctx.RegisterOp("somerc", ctorSomerc)
	ctx.RegisterOp("omerc", ctorOmerc)
	ctx.RegisterOp("curvature", ctorCurvature)
	ctx.RegisterOp("latitude", ctorLatitude)
	ctx.RegisterOp("adapt", ctorAdapt)
	ctx.RegisterOp("unitconvert", ctorUnitconvert)
	ctx.RegisterOp("deformation", ctorDeformation)
	ctx.RegisterOp("gridshift", ctorGridshift)
	ctx.RegisterOp("stack", ctorStack)
	ctx.RegisterOp("noop", ctorNoop)
	ctx.RegisterOp("addone", ctorAddone)
	ctx.RegisterOp("gravity", ctorGravity)
}
