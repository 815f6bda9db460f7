package geodesy

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Pipeline execution: step ordering/inversion, omit_fwd/omit_inv, and the per-apply operand stack   */
/* the `stack` operator manipulates. Built fresh in the ancestor's plain-struct/explicit-loop idiom   */
/* (no generic "visitor" or "executor interface" layer) since the spec itself has no direct           */
/* precedent for a pipeline concept in the teacher repo.                                              */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// pipelineStack is the per-apply auxiliary value stack `stack` operator steps
// push/pop components onto; it lives only for the duration of one Apply call
// and is discarded afterwards (spec §4.G, §9).
type pipelineStack struct {
	frames [][]float64
}

func (s *pipelineStack) push(frame []float64) {
	s.frames = append(s.frames, frame)
}

func (s *pipelineStack) pop() ([]float64, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	last := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return last, true
}

// applyPipeline iterates op.Steps in the order implied by direction (forward
// order for Fwd, reverse order for Inv — each step's own Apply already
// accounts for its individual `inv` flag), skipping any step whose
// omit_fwd/omit_inv flag matches the direction it would run in.
func applyPipeline(op *Op, ctx *Context, direction Direction, set CoordinateSet) (int, error) {
	stack := &pipelineStack{}
	ctx.pushStack(stack)
	defer ctx.popStack()

	successes := set.Len()

	steps := op.Steps
	if direction == Fwd {
		for _, step := range steps {
			n, err := applyStep(step, ctx, Fwd, set)
			if err != nil {
				return 0, err
			}
			if n < successes {
				successes = n
			}
		}
		return successes, nil
	}

	for i := len(steps) - 1; i >= 0; i-- {
		n, err := applyStep(steps[i], ctx, Inv, set)
		if err != nil {
			return 0, err
		}
		if n < successes {
			successes = n
		}
	}
	return successes, nil
}

// applyStep applies a single pipeline step, honoring omit_fwd/omit_inv
// against the direction the step is about to run in (before its own `inv`
// flag toggles dispatch — omission is a pipeline-executor concern, not an
// operator one).
func applyStep(step *Op, ctx *Context, direction Direction, set CoordinateSet) (int, error) {
	if direction == Fwd && step.Params != nil && step.Params.Flag("omit_fwd") {
		return set.Len(), nil
	}
	if direction == Inv && step.Params != nil && step.Params.Flag("omit_inv") {
		return set.Len(), nil
	}
	return step.Apply(ctx, direction, set)
}
