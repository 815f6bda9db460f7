package geodesy

import "github.com/google/uuid"

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* The Op record: an instantiated, apply-ready transformation. Dynamic dispatch over operator        */
/* implementations is a tagged function-pointer pair rather than an interface, per spec §9 ("avoid    */
/* polymorphism via trait objects except where the abstraction adds real value"); OpHandle is a       */
/* fresh UUID minted at registration, following the ancestor's general preference for opaque,         */
/* string-backed identifiers over raw integer indices (see its grid-reference/coordinate-name         */
/* handling) and the pack's `google/uuid` usage for similar opaque-handle needs.                      */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// Direction selects which half of an operator's contract Apply invokes.
type Direction int

const (
	Fwd Direction = iota
	Inv
)

// OpHandle opaquely identifies an instantiated Op within a Context.
type OpHandle uuid.UUID

func newOpHandle() OpHandle { return OpHandle(uuid.New()) }

func (h OpHandle) String() string { return uuid.UUID(h).String() }

// OpFunc is an operator's forward or inverse transformation: it iterates
// set's coordinates in place and returns the count that did not stomp NaN.
type OpFunc func(op *Op, ctx *Context, set CoordinateSet) int

// Op is an instantiated, apply-ready transformation: a descriptor pair
// (fwdFn, invFn), its immutable parsed parameters, and — for pipeline ops —
// an ordered list of child steps. Once constructed, an Op's Params are never
// mutated; Apply is a pure function of (Op, Context, CoordinateSet, Direction).
type Op struct {
	Definition string // recipe text of a pipeline Op, the resource name of a macro-expanded Op, "" for a built-in step
	Name       string // operator name, or "" for a bare pipeline
	Params     *ParsedParameters
	fwdFn      OpFunc
	invFn      OpFunc // nil if the operator does not support inversion
	inverted   bool   // this step's own `inv` flag, independent of pipeline-level inversion
	Steps      []*Op  // non-nil only for pipeline Ops
}

// Invertible reports whether Apply(Inv, ...) is meaningful for op.
func (op *Op) Invertible() bool {
	return op.invFn != nil
}

// Apply runs op in the given direction, honoring its own `inv` flag: a step
// constructed with inv=true swaps which of fwdFn/invFn responds to Fwd vs Inv
// (spec §4.G).
func (op *Op) Apply(ctx *Context, direction Direction, set CoordinateSet) (int, error) {
	effective := direction
	if op.inverted {
		effective = toggle(direction)
	}

	if op.Steps != nil {
		return applyPipeline(op, ctx, effective, set)
	}

	switch effective {
	case Fwd:
		return op.fwdFn(op, ctx, set), nil
	default:
		if op.invFn == nil {
			return 0, errUnsupported("operator %q has no inverse", op.Name)
		}
		return op.invFn(op, ctx, set), nil
	}
}

func toggle(d Direction) Direction {
	if d == Fwd {
		return Inv
	}
	return Fwd
}
