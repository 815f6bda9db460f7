package geodesy

import (
	"strings"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Recipe tokenizer: normalizes a raw recipe string, splits it into pipeline steps, and splits each  */
/* step into key=value parameters. Grounded on the ancestor's hand-rolled DMS/grid-reference parsing */
/* style (trim-and-split rather than a full parser-combinator or lexer-generator stack) in           */
/* `dms.go`/`osgridref.go`, generalized from a fixed little grammar (one coordinate string) to the    */
/* recipe grammar's steps/params/comments/docstring.                                                  */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

// Param is one step parameter: a bare flag (Value == "true") or key=value.
type Param struct {
	Key   string
	Value string
}

// Step is one pipeline step: the tokens of a single `name param param...`
// segment, in encounter order. The operator name itself is stored as the
// first Param with Key "name" and is also duplicated into Name for
// convenience.
type Step struct {
	Name   string
	Params []Param
}

// trimTokens is the set of punctuation around which Normalize strips
// adjacent whitespace.
const trimTokens = "=:,|"

// Normalize collapses contiguous whitespace, converts CRLF/CR line endings to
// LF, strips whitespace surrounding '=', ':', ',', '|' and a leading '$' of a
// dereference marker, and separates out docstring/comment lines: lines
// starting with "##" are collected (sans the "##" prefix) as docstring
// content, a bare "#" (or an inline "#...") marks the rest of its line as a
// discarded comment.
func Normalize(recipe string) (normalized, docstring string) {
	recipe = strings.ReplaceAll(recipe, "\r\n", "\n")
	recipe = strings.ReplaceAll(recipe, "\r", "\n")

	var doc strings.Builder
	var body strings.Builder

	for _, line := range strings.Split(recipe, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "##") {
			doc.WriteString(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "##")))
			doc.WriteByte('\n')
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		body.WriteString(line)
		body.WriteByte(' ')
	}

	fields := strings.Fields(body.String())
	joined := strings.Join(fields, " ")

	for _, tok := range trimTokens {
		joined = collapseAround(joined, tok)
	}
	joined = collapseDollarSpace(joined)

	return strings.TrimSpace(joined), strings.TrimSpace(doc.String())
}

// collapseAround removes " tok" / "tok " / " tok " whitespace around a single
// punctuation rune, leaving "tok" with no adjacent space.
func collapseAround(s string, tok rune) string {
	t := string(tok)
	s = strings.ReplaceAll(s, " "+t, t)
	s = strings.ReplaceAll(s, t+" ", t)
	return s
}

// collapseDollarSpace strips the space between "=" and a following "$" (the
// leading '$' of a dereference marker must stay glued to its value), but
// leaves the space separating one token from the next "$name" flag alone.
func collapseDollarSpace(s string) string {
	return strings.ReplaceAll(s, "= $", "=$")
}

// SplitSteps splits a normalized recipe on '|' into its pipeline steps,
// dropping empty segments (leading/trailing/doubled '|').
func SplitSteps(normalized string) []string {
	raw := strings.Split(normalized, "|")
	steps := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// SplitParams tokenizes one step's text into a Step: the first bare token (no
// '=') is the operator name (also stored under key "name"); every other
// token is either "key=value" or a bare flag, whose value defaults to the
// literal "true".
func SplitParams(step string) Step {
	fields := strings.Fields(step)
	out := Step{Params: make([]Param, 0, len(fields))}

	nameSeen := false
	for _, tok := range fields {
		if idx := strings.IndexByte(tok, '='); idx >= 0 {
			key, val := tok[:idx], tok[idx+1:]
			out.Params = append(out.Params, Param{Key: key, Value: val})
			continue
		}
		if !nameSeen {
			out.Name = tok
			out.Params = append(out.Params, Param{Key: "name", Value: tok})
			nameSeen = true
			continue
		}
		out.Params = append(out.Params, Param{Key: tok, Value: "true"})
	}
	return out
}

// Tokenize runs Normalize, SplitSteps and SplitParams in sequence, returning
// the recipe's steps and docstring.
func Tokenize(recipe string) (steps []Step, docstring string, err error) {
	normalized, doc := Normalize(recipe)
	if normalized == "" {
		return nil, doc, errSyntax("empty recipe")
	}
	for _, raw := range SplitSteps(normalized) {
		s := SplitParams(raw)
		if s.Name == "" {
			return nil, doc, errSyntax("step %q has no operator name", raw)
		}
		steps = append(steps, s)
	}
	return steps, doc, nil
}

// IsPipeline reports whether a recipe describes more than one step.
func IsPipeline(normalized string) bool {
	return strings.ContainsRune(normalized, '|')
}

// IsResourceName reports whether name refers to a macro/resource (category:name)
// rather than a built-in operator.
func IsResourceName(name string) bool {
	return strings.ContainsRune(name, ':')
}
