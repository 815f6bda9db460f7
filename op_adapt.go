package geodesy

import (
	"math"
	"strings"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `adapt`: coordinate order/unit reinterpretation via four-letter `from`/`to` axis descriptors over   */
/* {e,n,u,t} (east/north/up/time) and their negated counterparts {w,s,d,r} (west/south/down/reversed-   */
/* time), each optionally suffixed with an angular unit (_deg, _gon, _rad, _any), per §4.F. `from`      */
/* describes what the incoming axes mean; `to` what the outgoing axes should mean; a permutation plus   */
/* per-axis sign/unit multiplier is precomputed once at construction. `pass` on either side is a literal */
/* no-op sentinel (identity permutation, unit multiplier 1).                                           */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func adaptGamut() Gamut {
	return Gamut{
		TextEntry("from", "pass"),
		TextEntry("to", "pass"),
	}
}

type axisSense struct {
	kind int // 0=E/W, 1=N/S, 2=U/D, 3=T/R
	sign float64
}

var axisLetters = map[byte]axisSense{
	'e': {0, 1}, 'w': {0, -1},
	'n': {1, 1}, 's': {1, -1},
	'u': {2, 1}, 'd': {2, -1},
	't': {3, 1}, 'r': {3, -1},
}

func unitToRad(unit string) float64 {
	switch unit {
	case "deg":
		return degToRad
	case "gon":
		return math.Pi / 200
	case "rad", "any", "":
		return 1
	default:
		return 1
	}
}

func parseAdaptDescriptor(desc string) (axes [4]axisSense, unit string, err error) {
	parts := strings.SplitN(desc, "_", 2)
	letters := parts[0]
	if len(parts) == 2 {
		unit = parts[1]
	}
	if len(letters) != 4 {
		return axes, "", errBadParam("adapt", desc, "axis descriptor must have exactly 4 letters")
	}
	for i := 0; i < 4; i++ {
		sense, ok := axisLetters[letters[i]]
		if !ok {
			return axes, "", errBadParam("adapt", desc, "unrecognized axis letter")
		}
		axes[i] = sense
	}
	return axes, unit, nil
}

func ctorAdapt(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(adaptGamut(), locals, globals)
	if err != nil {
		return nil, err
	}

	fromDesc, toDesc := params.Text("from"), params.Text("to")

	post := [4]int{0, 1, 2, 3}
	mult := [4]float64{1, 1, 1, 1}

	if fromDesc != "pass" || toDesc != "pass" {
		from, fromUnit := normalizeAdaptSentinel(fromDesc)
		to, toUnit := normalizeAdaptSentinel(toDesc)

		fromAxes, fu, err := parseAdaptDescriptor(from)
		if err != nil {
			return nil, err
		}
		toAxes, tu, err := parseAdaptDescriptor(to)
		if err != nil {
			return nil, err
		}
		if fu != "" {
			fromUnit = fu
		}
		if tu != "" {
			toUnit = tu
		}

		for j := 0; j < 4; j++ {
			found := false
			for i := 0; i < 4; i++ {
				if fromAxes[i].kind == toAxes[j].kind {
					post[j] = i
					mult[j] = toAxes[j].sign * fromAxes[i].sign
					if toAxes[j].kind == 0 || toAxes[j].kind == 1 {
						mult[j] *= unitToRad(fromUnit) / unitToRad(toUnit)
					}
					found = true
					break
				}
			}
			if !found {
				return nil, errBadParam("adapt", toDesc, "no matching axis kind in from descriptor")
			}
		}
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
			set.SetCoord(i, Coor4D{
				mult[0] * c[post[0]],
				mult[1] * c[post[1]],
				mult[2] * c[post[2]],
				mult[3] * c[post[3]],
			})
			successes++
		}
		return successes
	}
	op.invFn = func(_ *Op, _ *Context, set CoordinateSet) int {
		successes := 0
		var inv [4]int
		var invMult [4]float64
		for j := 0; j < 4; j++ {
			inv[post[j]] = j
			invMult[post[j]] = 1 / mult[j]
		}
		for i := 0; i < set.Len(); i++ {
			c := set.GetCoord(i)
			if c.IsNaN() {
				set.SetCoord(i, NaNCoor)
				continue
			}
			set.SetCoord(i, Coor4D{
				invMult[0] * c[inv[0]],
				invMult[1] * c[inv[1]],
				invMult[2] * c[inv[2]],
				invMult[3] * c[inv[3]],
			})
			successes++
		}
		return successes
	}
	return op, nil
}

// normalizeAdaptSentinel expands the bare "pass" sentinel to the identity
// descriptor "enut" with a neutral unit, so a one-sided "pass" (only `from`
// or only `to` given) still composes correctly against an explicit
// descriptor on the other side.
func normalizeAdaptSentinel(desc string) (string, string) {
	if desc == "pass" {
		return "enut", "any"
	}
	return desc, ""
}
