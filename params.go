package geodesy

import (
	"strconv"
	"strings"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Parameter resolution: a pair of ordered key->string maps (locals, globals), consulted in reverse  */
/* insertion order with $name / $name(default) / (default) chasing, feeding typed extraction against */
/* a declared Gamut. The ordered-map-with-reverse-scan shape follows the same "most recent wins,     */
/* scan backwards" idea the ancestor used for its flat key=value DMS suffix parsing (dms.go),         */
/* generalized here to a full scoped lookup machine.                                                  */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

type paramEntry struct {
	key, value string
}

// ParamMap is an ordered, append-only key->string multimap: later insertions
// of the same key shadow earlier ones when scanned in reverse.
type ParamMap struct {
	entries []paramEntry
}

// NewParamMap returns an empty ParamMap.
func NewParamMap() *ParamMap { return &ParamMap{} }

// Insert appends a key/value pair, shadowing any earlier entry for the same
// key in reverse-order scans.
func (m *ParamMap) Insert(key, value string) {
	m.entries = append(m.entries, paramEntry{key, value})
}

// ParamMapFromStep builds a locals ParamMap from a tokenized Step, in
// encounter order (including the "name" entry).
func ParamMapFromStep(step Step) *ParamMap {
	m := NewParamMap()
	for _, p := range step.Params {
		m.Insert(p.Key, p.Value)
	}
	return m
}

const maxParamChainDepth = 64

// reversedEntries returns m's entries in reverse insertion order, or nil for
// a nil map.
func reversedEntries(m *ParamMap) []paramEntry {
	if m == nil {
		return nil
	}
	out := make([]paramEntry, len(m.entries))
	for i, e := range m.entries {
		out[len(m.entries)-1-i] = e
	}
	return out
}

// scopeChain concatenates locals' and globals' entries, each in reverse
// insertion order, locals first: this is the single ordered sequence rule 1
// ("scan locals then globals in reverse insertion order") scans, and that
// rule 3's "continue the search for the original K" resumes from partway
// through.
func scopeChain(locals, globals *ParamMap) []paramEntry {
	return append(reversedEntries(locals), reversedEntries(globals)...)
}

func findFrom(chain []paramEntry, key string, from int) (value string, idx int, ok bool) {
	for i := from; i < len(chain); i++ {
		if chain[i].key == key {
			return chain[i].value, i, true
		}
	}
	return "", -1, false
}

// parseDereference splits the text following a leading '$' into the
// dereferenced name and an optional inline default: "name" or
// "name(default)".
func parseDereference(s string) (name, def string, hasDefault bool) {
	if idx := strings.IndexByte(s, '('); idx >= 0 && strings.HasSuffix(s, ")") {
		return s[:idx], s[idx+1 : len(s)-1], true
	}
	return s, "", false
}

// parseParenDefault parses a bare "(default)" marker.
func parseParenDefault(s string) (def string, ok bool) {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func gamutDefault(gamut Gamut, key string) (string, bool) {
	for _, e := range gamut {
		if e.Key == key {
			return e.Default, e.HasDefault
		}
	}
	return "", false
}

// chase follows one resolved raw value through any $ or (default) indirection
// until a literal value is reached, per spec §4.B rules 2-4.
func chase(chain []paramEntry, gamut Gamut, key, value string, idx, depth int) (string, bool, error) {
	if depth > maxParamChainDepth {
		return "", false, errSyntax("parameter %q: dereference chain too deep", key)
	}
	switch {
	case strings.HasPrefix(value, "$"):
		name, inlineDefault, hasInline := parseDereference(value[1:])
		if name == "" {
			return "", false, errSyntax("parameter %q: malformed dereference %q", key, value)
		}
		if v, j, ok := findFrom(chain, name, 0); ok {
			return chase(chain, gamut, name, v, j, depth+1)
		}
		if hasInline {
			return inlineDefault, true, nil
		}
		if def, has := gamutDefault(gamut, key); has {
			return def, true, nil
		}
		return "", false, nil

	case strings.HasPrefix(value, "("):
		def, hasInline := parseParenDefault(value)
		if !hasInline {
			return "", false, errSyntax("parameter %q: malformed default %q", key, value)
		}
		if v, j, ok := findFrom(chain, key, idx+1); ok {
			return chase(chain, gamut, key, v, j, depth+1)
		}
		return def, true, nil

	default:
		return value, true, nil
	}
}

// Resolve looks up key K against locals then globals (reverse insertion
// order within each), chases any $/() indirection, and falls back to the
// gamut's declared default. It reports (value, found).
func Resolve(key string, gamut Gamut, locals, globals *ParamMap) (string, bool, error) {
	chain := scopeChain(locals, globals)
	value, idx, ok := findFrom(chain, key, 0)
	if !ok {
		if def, has := gamutDefault(gamut, key); has {
			return def, true, nil
		}
		return "", false, nil
	}
	return chase(chain, gamut, key, value, idx, 0)
}

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Typed gamut declarations and extraction.                                                         */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// ParamKind classifies a gamut entry's accepted value shape.
type ParamKind int

const (
	FlagKind ParamKind = iota
	NaturalKind
	IntegerKind
	RealKind
	SeriesKind
	TextKind
	TextsKind
)

// GamutEntry declares one parameter an operator accepts.
type GamutEntry struct {
	Key        string
	Kind       ParamKind
	Default    string
	HasDefault bool
}

// Gamut is an operator's ordered, declared parameter set.
type Gamut []GamutEntry

func withDefault(key string, kind ParamKind, def []string) GamutEntry {
	if len(def) == 0 {
		return GamutEntry{Key: key, Kind: kind}
	}
	return GamutEntry{Key: key, Kind: kind, Default: def[0], HasDefault: true}
}

func FlagEntry(key string) GamutEntry                 { return GamutEntry{Key: key, Kind: FlagKind} }
func NaturalEntry(key string, def ...string) GamutEntry { return withDefault(key, NaturalKind, def) }
func IntegerEntry(key string, def ...string) GamutEntry { return withDefault(key, IntegerKind, def) }
func RealEntry(key string, def ...string) GamutEntry    { return withDefault(key, RealKind, def) }
func SeriesEntry(key string, def ...string) GamutEntry  { return withDefault(key, SeriesKind, def) }
func TextEntry(key string, def ...string) GamutEntry    { return withDefault(key, TextKind, def) }
func TextsEntry(key string, def ...string) GamutEntry   { return withDefault(key, TextsKind, def) }

// implicitGamut is appended to every operator's declared gamut: `inv`,
// `omit_fwd`, `omit_inv` are accepted by all operators per spec §3.
var implicitGamut = Gamut{
	FlagEntry("inv"),
	FlagEntry("omit_fwd"),
	FlagEntry("omit_inv"),
}

// ParsedParameters holds an Op's typed, immutable parameter values, extracted
// once at construction time; it is the sole state an operator's fwd/inv
// function reads (spec §3 "Op" invariants).
type ParsedParameters struct {
	Flags    map[string]bool
	Naturals map[string]uint64
	Integers map[string]int64
	Reals    map[string]float64
	Series   map[string][]float64
	Texts    map[string]string
	TextList map[string][]string
}

func newParsedParameters() *ParsedParameters {
	return &ParsedParameters{
		Flags:    map[string]bool{},
		Naturals: map[string]uint64{},
		Integers: map[string]int64{},
		Reals:    map[string]float64{},
		Series:   map[string][]float64{},
		Texts:    map[string]string{},
		TextList: map[string][]string{},
	}
}

func (p *ParsedParameters) Flag(key string) bool           { return p.Flags[key] }
func (p *ParsedParameters) Natural(key string) uint64      { return p.Naturals[key] }
func (p *ParsedParameters) Integer(key string) int64       { return p.Integers[key] }
func (p *ParsedParameters) Real(key string) float64        { return p.Reals[key] }
func (p *ParsedParameters) SeriesOf(key string) []float64   { return p.Series[key] }
func (p *ParsedParameters) Text(key string) string          { return p.Texts[key] }
func (p *ParsedParameters) TextsOf(key string) []string     { return p.TextList[key] }
func (p *ParsedParameters) HasText(key string) bool {
	_, ok := p.Texts[key]
	return ok
}

// parseFlagValue implements the Flag coercion rule: present (even without a
// value) or a value case-insensitively not equal to "false" is true.
func parseFlagValue(value string) bool {
	return !strings.EqualFold(value, "false")
}

// ExtractGamut resolves and type-converts every entry of gamut (plus the
// implicit inv/omit_fwd/omit_inv flags) against locals/globals, returning a
// ParsedParameters or the first BadParam/MissingParam error encountered.
func ExtractGamut(gamut Gamut, locals, globals *ParamMap) (*ParsedParameters, error) {
	out := newParsedParameters()

	full := make(Gamut, 0, len(gamut)+len(implicitGamut))
	full = append(full, gamut...)
	full = append(full, implicitGamut...)

	for _, entry := range full {
		value, found, err := Resolve(entry.Key, full, locals, globals)
		if err != nil {
			return nil, err
		}
		if !found {
			if entry.Kind == FlagKind {
				out.Flags[entry.Key] = false
				continue
			}
			return nil, errMissingParam(entry.Key)
		}

		switch entry.Kind {
		case FlagKind:
			out.Flags[entry.Key] = parseFlagValue(value)
		case NaturalKind:
			n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return nil, errBadParam(entry.Key, value, "not a natural number")
			}
			out.Naturals[entry.Key] = n
		case IntegerKind:
			n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return nil, errBadParam(entry.Key, value, "not an integer")
			}
			out.Integers[entry.Key] = n
		case RealKind:
			r, err := ParseSexagesimal(value)
			if err != nil {
				return nil, errBadParam(entry.Key, value, "not a real number")
			}
			out.Reals[entry.Key] = r
		case SeriesKind:
			parts := strings.Split(value, ",")
			series := make([]float64, len(parts))
			for i, p := range parts {
				r, err := ParseSexagesimal(p)
				if err != nil {
					return nil, errBadParam(entry.Key, value, "not a comma-separated series of reals")
				}
				series[i] = r
			}
			out.Series[entry.Key] = series
		case TextKind:
			out.Texts[entry.Key] = strings.TrimSpace(value)
		case TextsKind:
			parts := strings.Split(value, ",")
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			out.TextList[entry.Key] = parts
		}
	}

	return out, nil
}
