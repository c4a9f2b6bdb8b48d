package scurry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the result of evaluating an expression: one of Boolean,
// Integer, Float, String, ListValue, Function or *Exception.
type Value interface {
	fmt.Stringer
	value()
}

type Boolean bool

type Integer int64

type Float float64

type String string

type ListValue struct {
	Items *List[Value]
}

// Function holds only its body. Free identifiers in the body are resolved
// against whatever scope stack is live when the function is called.
type Function struct {
	Body Block
}

func (Boolean) value()    {}
func (Integer) value()    {}
func (Float) value()      {}
func (String) value()     {}
func (ListValue) value()  {}
func (Function) value()   {}
func (*Exception) value() {}

func NewListValue(items ...Value) ListValue {
	return ListValue{Items: NewList(items...)}
}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (n Integer) String() string {
	return strconv.FormatInt(int64(n), 10)
}

func (f Float) String() string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (s String) String() string {
	return string(s)
}

func (l ListValue) String() string {
	parts := []string{}
	for _, v := range l.Items.Slice() {
		parts = append(parts, v.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (Function) String() string {
	return "<function>"
}

// copyValue returns a value that shares no list nodes with v.
func copyValue(v Value) Value {
	switch t := v.(type) {
	case ListValue:
		return ListValue{Items: t.Items.Copy(copyValue)}
	case *Exception:
		return t.copy()
	default:
		return v
	}
}

// equal is structural equality as used by the = primitive. Values of
// different kinds are never equal.
func equal(a, b Value) bool {
	switch x := a.(type) {
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case ListValue:
		y, ok := b.(ListValue)
		if !ok || x.Items.Len() != y.Items.Len() {
			return false
		}
		cx, cy := x.Items, y.Items
		for !cx.Empty() {
			if !equal(cx.head, cy.head) {
				return false
			}
			cx, cy = cx.tail, cy.tail
		}
		return true
	default:
		return false
	}
}

type Flavor uint8

const (
	Return Flavor = iota
	Error
	ArgError
	ParseError
	TypeError
	TypeMismatch
	DivByZero
	RuntimeError
	UndefError
	RedefError
)

var flavorNames = map[Flavor]string{
	Return:       "return",
	Error:        "error",
	ArgError:     "parameter length",
	ParseError:   "parse error",
	TypeError:    "type error",
	TypeMismatch: "type mismatch",
	DivByZero:    "division by zero",
	RuntimeError: "runtime error",
	UndefError:   "undefined function",
	RedefError:   "redefinition error",
}

func (f Flavor) String() string {
	if s, ok := flavorNames[f]; ok {
		return s
	}
	return fmt.Sprintf("flavor(%d)", uint8(f))
}

// Exception is an ordinary value that unwinds blocks until it is caught.
// Stack collects the context name of every block it leaves, innermost
// first. Return exceptions stop after unwinding a single block.
type Exception struct {
	Flavor  Flavor
	Payload Value
	Stack   []string
}

func newException(flavor Flavor, id, format string, args ...any) *Exception {
	msg := fmt.Sprintf(format, args...)
	return &Exception{
		Flavor:  flavor,
		Payload: String(fmt.Sprintf("%s : %s", id, msg)),
	}
}

func (e *Exception) copy() *Exception {
	return &Exception{
		Flavor:  e.Flavor,
		Payload: copyValue(e.Payload),
		Stack:   append([]string(nil), e.Stack...),
	}
}

// ToList is what catch hands back: [flavor payload [stack...]].
func (e *Exception) ToList() ListValue {
	stack := newListBuilder[Value]()
	for _, s := range e.Stack {
		stack.push(String(s))
	}
	return NewListValue(String(e.Flavor.String()), e.Payload, ListValue{Items: stack.list()})
}

func (e *Exception) String() string {
	return e.ToList().String()
}

func (e *Exception) Error() string {
	return fmt.Sprintf("%s: %s", e.Flavor, e.Payload)
}

// Report renders an exception that escaped the main program.
func (e *Exception) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nRUNTIME EXCEPTION: %s\n%s:\n\n  calling context:\n", e.Flavor, e.Payload)
	for i, name := range e.Stack {
		fmt.Fprintf(&b, "   -- called from function %d: %s\n", len(e.Stack)-1-i, name)
	}
	return b.String()
}
