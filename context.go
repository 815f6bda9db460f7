package geodesy

import (
	"io"

	"github.com/sirupsen/logrus"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Context/Provider: the registry of operator constructors, macros/resources and grids, plus op      */
/* instantiation and application. Registration follows the same "name -> constructor function in a    */
/* map, looked up by string at call time" shape the pack's oahumap-proj repo uses for its projection   */
/* registry (`core.RegisterConvertLPToXY`, `operations/Lambert.go`'s `init()`-time self-registration), */
/* adopted here for this runtime's operator catalogue. Construction-time diagnostics use logrus,       */
/* discarding output by default so application-time hot loops never touch a logger.                   */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// ConstructorFunc builds an Op from a step's already-tokenized locals and the
// globals in scope at the point of invocation.
type ConstructorFunc func(ctx *Context, locals, globals *ParamMap) (*Op, error)

// maxMacroDepth bounds resource/macro expansion recursion (spec §4.H: "hard
// limit ~100 levels").
const maxMacroDepth = 100

// Context aggregates the constructor registry, the macro/resource registry,
// the grid cache, global defaults, and the map of instantiated Ops by handle.
// Mutating methods (RegisterOp, RegisterResource, Op) must not run
// concurrently with Apply; once construction is complete, Apply is safe to
// call from multiple goroutines sharing the same Context (spec §5).
type Context struct {
	constructors map[string]ConstructorFunc
	resources    map[string]string
	grids        map[string]*Grid
	globals      *ParamMap
	ops          map[OpHandle]*Op
	Logger       *logrus.Logger
	stacks       []*pipelineStack
}

// NewContext returns a minimal context with the built-in operator catalogue
// registered, a couple of illustrative adaptor resource aliases (spec §4.H:
// "e.g. aliases for geo:in, gis:in" — the spec leaves their exact bodies
// unspecified, so these are conservative no-op placeholders a caller is
// expected to override via RegisterResource), GRS80 as the default ellipsoid,
// and a logger that discards output until the caller opts in.
func NewContext() *Context {
	ctx := &Context{
		constructors: map[string]ConstructorFunc{},
		resources:    map[string]string{},
		grids:        map[string]*Grid{},
		globals:      NewParamMap(),
		ops:          map[OpHandle]*Op{},
		Logger:       discardLogger(),
	}
	ctx.globals.Insert("ellps", DefaultEllipsoidName)

	registerBuiltinOperators(ctx)
	ctx.resources["geo:in"] = "noop"
	ctx.resources["gis:in"] = "noop"

	return ctx
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// RegisterOp registers a named operator constructor, e.g. for an embedding
// application's custom operators.
func (ctx *Context) RegisterOp(name string, ctor ConstructorFunc) {
	ctx.constructors[name] = ctor
}

// RegisterResource registers (or overrides) a macro/resource's recipe text
// under name, which must contain a colon.
func (ctx *Context) RegisterResource(name, definition string) {
	ctx.resources[name] = definition
}

// GetResource returns a registered resource's raw text.
func (ctx *Context) GetResource(name string) (string, bool) {
	text, ok := ctx.resources[name]
	return text, ok
}

// GetGrid returns the shared, immutable Grid installed under name by
// RegisterGrid, or a NotFound error; it does not load grid files itself.
// Operators consulting a grid by name always see the same *Grid instance
// (spec §9 "grid sharing").
func (ctx *Context) GetGrid(name string) (*Grid, error) {
	if g, ok := ctx.grids[name]; ok {
		return g, nil
	}
	return nil, errNotFound(name, "grid")
}

// RegisterGrid installs a pre-loaded grid under name, so that subsequent
// operator constructions referring to it by name share this instance.
func (ctx *Context) RegisterGrid(name string, g *Grid) {
	ctx.grids[name] = g
}

// Globals exposes the context's default parameter scope (e.g. `ellps`), so
// callers can add further session-wide defaults before constructing ops.
func (ctx *Context) Globals() *ParamMap { return ctx.globals }

func (ctx *Context) pushStack(s *pipelineStack) { ctx.stacks = append(ctx.stacks, s) }
func (ctx *Context) popStack()                  { ctx.stacks = ctx.stacks[:len(ctx.stacks)-1] }
func (ctx *Context) currentStack() *pipelineStack {
	if len(ctx.stacks) == 0 {
		return &pipelineStack{} // a stack step applied outside a pipeline sees an empty stack
	}
	return ctx.stacks[len(ctx.stacks)-1]
}

// Op tokenizes definition, expands any macro/resource references (bounded by
// maxMacroDepth), dispatches to the matching constructor(s), and registers
// the resulting Op under a fresh handle.
func (ctx *Context) Op(definition string) (OpHandle, error) {
	op, err := ctx.buildOp(definition, ctx.globals, 0, "")
	if err != nil {
		return OpHandle{}, err
	}

	handle := newOpHandle()
	ctx.ops[handle] = op
	ctx.Logger.WithFields(logrus.Fields{
		"handle":     handle.String(),
		"definition": definition,
	}).Debug("constructed op")
	return handle, nil
}

func (ctx *Context) buildOp(definition string, outerGlobals *ParamMap, depth int, outerName string) (*Op, error) {
	if depth > maxMacroDepth {
		return nil, errRecursion(outerName, definition)
	}

	steps, _, err := Tokenize(definition)
	if err != nil {
		return nil, err
	}

	if len(steps) > 1 {
		children := make([]*Op, 0, len(steps))
		for _, s := range steps {
			child, err := ctx.buildStep(s, outerGlobals, depth)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Op{Definition: definition, Steps: children, Params: newParsedParameters()}, nil
	}

	return ctx.buildStep(steps[0], outerGlobals, depth)
}

func (ctx *Context) buildStep(step Step, outerGlobals *ParamMap, depth int) (*Op, error) {
	locals := ParamMapFromStep(step)

	if IsResourceName(step.Name) {
		resourceText, ok := ctx.resources[step.Name]
		if !ok {
			return nil, errNotFound(step.Name, "resource")
		}
		innerGlobals := mergeGlobals(locals, outerGlobals)
		op, err := ctx.buildOp(resourceText, innerGlobals, depth+1, step.Name)
		if err != nil {
			return nil, err
		}
		if localFlag(locals, "inv") {
			op.inverted = !op.inverted
		}
		op.Definition = step.Name
		return op, nil
	}

	ctor, ok := ctx.constructors[step.Name]
	if !ok {
		return nil, errNotFound(step.Name, "operator")
	}
	op, err := ctor(ctx, locals, outerGlobals)
	if err != nil {
		return nil, err
	}
	op.Name = step.Name
	return op, nil
}

// mergeGlobals builds the globals scope a macro body resolves $ references
// against: the caller's own locals (highest priority, per spec §4.H "the
// caller's parameters forming the outer scope") followed by whatever globals
// were already in scope at the call site.
func mergeGlobals(locals, outerGlobals *ParamMap) *ParamMap {
	merged := NewParamMap()
	if outerGlobals != nil {
		merged.entries = append(merged.entries, outerGlobals.entries...)
	}
	if locals != nil {
		merged.entries = append(merged.entries, locals.entries...)
	}
	return merged
}

// localFlag reads a flag from a single ParamMap (no $/() chasing, no gamut
// default) — used for the bare `inv` flag on a macro-reference step, which
// has no declared gamut of its own.
func localFlag(m *ParamMap, key string) bool {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].key == key {
			return parseFlagValue(m.entries[i].value)
		}
	}
	return false
}

// Apply runs the Op identified by handle in the given direction over set,
// returning the count of coordinates that did not stomp NaN.
func (ctx *Context) Apply(handle OpHandle, direction Direction, set CoordinateSet) (int, error) {
	op, ok := ctx.ops[handle]
	if !ok {
		return 0, errNotFound(handle.String(), "op handle")
	}
	return op.Apply(ctx, direction, set)
}
