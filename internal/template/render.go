package template

import (
	"strings"
)

// Render walks a token sequence against ctx and produces the output string.
// A variable whose key is absent renders nothing, as does a call whose
// argument is absent or whose helper declines the value. Calling an
// unregistered function is fatal: rendering stops and partial output is
// discarded.
func Render(tokens []Token, ctx *Context) (string, error) {
	var out strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case KindLiteral:
			out.WriteString(tok.Text)

		case KindVariable:
			if v, ok := ctx.Lookup(tok.Text); ok {
				out.WriteString(v.String())
			}

		case KindCall:
			helper, ok := helpers[tok.Text]
			if !ok {
				return "", unknownFunctionError(tok.Text)
			}
			v, ok := ctx.Lookup(tok.Arg)
			if !ok {
				continue
			}
			if s, ok := helper(v); ok {
				out.WriteString(s)
			}
		}
	}
	return out.String(), nil
}

// Expand tokenizes format and renders it against ctx in one step
func Expand(format string, ctx *Context) (string, error) {
	tokens, err := Tokenize(format)
	if err != nil {
		return "", err
	}
	return Render(tokens, ctx)
}
