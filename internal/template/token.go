package template

// Kind identifies the variant of a parsed token
type Kind int

const (
	// KindLiteral is verbatim passthrough text
	KindLiteral Kind = iota
	// KindVariable is a context lookup by name
	KindVariable
	// KindCall is a helper function applied to one variable
	KindCall
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindVariable:
		return "variable"
	case KindCall:
		return "call"
	default:
		return "unknown"
	}
}

// Token is one element of a tokenized format string. Text holds the literal
// text, the variable name, or the function name depending on Kind. Arg is the
// name of the variable passed to a call and is set only for KindCall; a call
// argument can never be anything other than a variable name.
type Token struct {
	Kind Kind
	Text string
	Arg  string
}
