package geodesy

import (
	"strconv"
	"strings"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* `stack`: manipulates the per-Apply operand stack (pipeline.go's pipelineStack) that lets a pipeline  */
/* stash a coordinate component and recall it later, per §4.G/§9. Exactly one of push/pop/swap/drop/     */
/* roll is given per step. Running the operator in Inv exchanges the roles of push and pop (with their  */
/* index lists reversed) rather than literally reversing the forward action, matching how every other    */
/* operator's `inv` flag works: Inv is "the other half of the contract", not "undo".                     */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

func stackGamut() Gamut {
	return Gamut{
		TextEntry("push", ""),
		TextEntry("pop", ""),
		FlagEntry("swap"),
		FlagEntry("drop"),
		TextEntry("roll", ""),
	}
}

// parseIndexList parses a comma-separated list of 1-based axis numbers (as
// used throughout recipe text, e.g. "push=1,2" means the first and second
// components) into 0-based Coor4D indices.
func parseIndexList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 4 {
			return nil, errBadParam("stack", s, "axis numbers must be 1..4")
		}
		out[i] = n - 1
	}
	return out, nil
}

func reverseInts(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func stackPush(ctx *Context, set CoordinateSet, indices []int) int {
	s := ctx.currentStack()
	for _, idx := range indices {
		frame := make([]float64, set.Len())
		for i := 0; i < set.Len(); i++ {
			frame[i] = set.GetCoord(i)[idx]
		}
		s.push(frame)
	}
	return set.Len()
}

func stackPop(ctx *Context, set CoordinateSet, indices []int) int {
	s := ctx.currentStack()
	for _, idx := range indices {
		frame, ok := s.pop()
		if !ok {
			for i := 0; i < set.Len(); i++ {
				set.SetCoord(i, NaNCoor)
			}
			return 0
		}
		for i := 0; i < set.Len() && i < len(frame); i++ {
			c := set.GetCoord(i)
			c[idx] = frame[i]
			set.SetCoord(i, c)
		}
	}
	return set.Len()
}

func ctorStack(ctx *Context, locals, globals *ParamMap) (*Op, error) {
	params, err := ExtractGamut(stackGamut(), locals, globals)
	if err != nil {
		return nil, err
	}

	pushIdx, err := parseIndexList(params.Text("push"))
	if err != nil {
		return nil, err
	}
	popIdx, err := parseIndexList(params.Text("pop"))
	if err != nil {
		return nil, err
	}

	mode := 0
	if len(pushIdx) > 0 {
		mode++
	}
	if len(popIdx) > 0 {
		mode++
	}
	if params.Flag("swap") {
		mode++
	}
	if params.Flag("drop") {
		mode++
	}
	rollSpec := params.Text("roll")
	var rollN, rollM int
	if rollSpec != "" {
		mode++
		fields := strings.Split(rollSpec, ",")
		if len(fields) != 2 {
			return nil, errBadParam("roll", rollSpec, "must be n,m")
		}
		rollN, err = strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, errBadParam("roll", rollSpec, "n must be an integer")
		}
		rollM, err = strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, errBadParam("roll", rollSpec, "m must be an integer")
		}
	}
	if mode != 1 {
		return nil, errBadParam("stack", "", "exactly one of push, pop, swap, drop, roll must be set")
	}

	op := &Op{Params: params, inverted: params.Flag("inv")}

	run := func(ctx *Context, set CoordinateSet, asPush bool) int {
		switch {
		case len(pushIdx) > 0:
			if asPush {
				return stackPush(ctx, set, pushIdx)
			}
			return stackPop(ctx, set, reverseInts(pushIdx))
		case len(popIdx) > 0:
			if asPush {
				return stackPop(ctx, set, popIdx)
			}
			return stackPush(ctx, set, reverseInts(popIdx))
		case params.Flag("swap"):
			s := ctx.currentStack()
			a, okA := s.pop()
			b, okB := s.pop()
			if !okA || !okB {
				for i := 0; i < set.Len(); i++ {
					set.SetCoord(i, NaNCoor)
				}
				return 0
			}
			s.push(a)
			s.push(b)
			return set.Len()
		case params.Flag("drop"):
			s := ctx.currentStack()
			if _, ok := s.pop(); !ok {
				for i := 0; i < set.Len(); i++ {
					set.SetCoord(i, NaNCoor)
				}
				return 0
			}
			return set.Len()
		default:
			s := ctx.currentStack()
			n, m := rollN, rollM
			if !asPush {
				m = -m
			}
			if n <= 0 || n > len(s.frames) {
				for i := 0; i < set.Len(); i++ {
					set.SetCoord(i, NaNCoor)
				}
				return 0
			}
			top := s.frames[len(s.frames)-n:]
			shift := ((m % n) + n) % n
			rolled := append(append([][]float64{}, top[n-shift:]...), top[:n-shift]...)
			copy(top, rolled)
			return set.Len()
		}
	}

	op.fwdFn = func(_ *Op, ctx *Context, set CoordinateSet) int { return run(ctx, set, true) }
	op.invFn = func(_ *Op, ctx *Context, set CoordinateSet) int { return run(ctx, set, false) }
	return op, nil
}
