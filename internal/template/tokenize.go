package template

import (
	"strings"
	"unicode"
)

// MaxFormatLen is the longest format string Tokenize accepts
const MaxFormatLen = 1028

type parseState int

const (
	statePassthrough parseState = iota
	stateInside
	stateParamsOpen
	stateParamsClosed
)

// Tokenize scans a format string into its token sequence. The scan is a
// single left-to-right pass: literal text accumulates until "{{" opens an
// expression, which holds either a variable name or a function name followed
// by "(", one argument name, ")" and the closing "}}". Outside an expression
// "}}", "(" and ")" are ordinary literal bytes, as is a lone "{" or "}" at
// the end of the input. There is exactly one valid tokenization for any
// input, or exactly one error.
func Tokenize(format string) ([]Token, error) {
	if len(format) > MaxFormatLen {
		return nil, tooLongError()
	}

	var (
		tokens []Token
		buf    strings.Builder
		fn     string
		state  = statePassthrough
	)

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			if state != statePassthrough {
				return nil, syntaxErrorf(i, `unexpected token: "{{" (position %d)`, i)
			}
			if buf.Len() > 0 {
				tokens = append(tokens, Token{Kind: KindLiteral, Text: buf.String()})
				buf.Reset()
			}
			i++
			state = stateInside

		case c == '}' && i+1 < len(format) && format[i+1] == '}' && state != statePassthrough:
			switch state {
			case stateParamsOpen:
				return nil, syntaxErrorf(i, `unexpected token: "}}" (expected closing parens: ")" at position %d)`, i)
			case stateInside:
				name := strings.TrimSpace(buf.String())
				if name == "" {
					return nil, syntaxErrorf(i, "got empty template expression at position %d", i)
				}
				tokens = append(tokens, Token{Kind: KindVariable, Text: name})
			case stateParamsClosed:
				// only whitespace may sit between ")" and "}}"
				trailing := buf.String()
				for k := 0; k < len(trailing); k++ {
					if !unicode.IsSpace(rune(trailing[k])) {
						pos := i - len(trailing) + k
						return nil, syntaxErrorf(pos, "got unexpected input after closing parens at position %d", pos)
					}
				}
			}
			buf.Reset()
			i++
			state = statePassthrough

		case c == '(' && state != statePassthrough:
			if state != stateInside {
				return nil, syntaxErrorf(i, `unexpected token: "(" at position %d`, i)
			}
			name := strings.TrimSpace(buf.String())
			if name == "" {
				return nil, syntaxErrorf(i, "expected a function name to call at position %d", i)
			}
			fn = name
			buf.Reset()
			state = stateParamsOpen

		case c == ')' && state != statePassthrough:
			if state != stateParamsOpen {
				return nil, syntaxErrorf(i, `unexpected token: ")" at position %d`, i)
			}
			name := strings.TrimSpace(buf.String())
			if name == "" {
				return nil, syntaxErrorf(i, "expected a function parameter at position %d", i)
			}
			tokens = append(tokens, Token{Kind: KindCall, Text: fn, Arg: name})
			fn = ""
			buf.Reset()
			state = stateParamsClosed

		default:
			buf.WriteByte(c)
		}
	}

	switch state {
	case stateInside, stateParamsClosed:
		return nil, syntaxErrorf(len(format), `unmatched opener "{{" (expected a matching "}}" at the end)`)
	case stateParamsOpen:
		return nil, syntaxErrorf(len(format), `unmatched opener "(" (expected a matching ")")`)
	}

	if buf.Len() > 0 {
		tokens = append(tokens, Token{Kind: KindLiteral, Text: buf.String()})
	}

	return tokens, nil
}
