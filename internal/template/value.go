package template

import (
	"strconv"
	"strings"
)

type valueKind uint8

const (
	valueInvalid valueKind = iota
	valueString
	valueStringList
	valueInt64
	valueFloat64
)

// Value is a dynamically typed context entry. The zero Value is invalid and
// formats to the empty string.
type Value struct {
	kind valueKind
	str  string
	list []string
	num  int64
	flt  float64
}

// StringValue wraps a plain string
func StringValue(s string) Value {
	return Value{kind: valueString, str: s}
}

// StringListValue wraps a list of strings, rendered joined with ", "
func StringListValue(elems ...string) Value {
	return Value{kind: valueStringList, list: elems}
}

// IntValue wraps a signed integer
func IntValue(n int64) Value {
	return Value{kind: valueInt64, num: n}
}

// FloatValue wraps a floating point number
func FloatValue(f float64) Value {
	return Value{kind: valueFloat64, flt: f}
}

// String renders the value the way a variable reference prints it
func (v Value) String() string {
	switch v.kind {
	case valueString:
		return v.str
	case valueStringList:
		return strings.Join(v.list, ", ")
	case valueInt64:
		return strconv.FormatInt(v.num, 10)
	case valueFloat64:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	default:
		return ""
	}
}

// Int64 reports the integer payload, if the value holds one
func (v Value) Int64() (int64, bool) {
	if v.kind != valueInt64 {
		return 0, false
	}
	return v.num, true
}
