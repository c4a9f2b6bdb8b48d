package scurry

import (
	"fmt"
	"math"
	"strconv"
)

// BuiltinProc receives the already evaluated argument list; its length
// has been checked against the declared arity.
type BuiltinProc func(p *process, id string, args []Value) Value

type primitive struct {
	arity int
	fn    BuiltinProc
}

// primitives is filled in once at package initialisation and only read
// afterwards.
var primitives = map[string]primitive{
	"int":    {1, toInt},
	"float":  {1, toFloat},
	"string": {1, toString},
	">>":     {1, display},
	"+":      {2, add},
	"-":      {2, sub},
	"*":      {2, mul},
	"/":      {2, div},
	"%":      {2, mod},
	"!":      {1, not},
	"&":      {2, and},
	"|":      {2, or},
	"?":      {3, ternary},
	"=":      {2, eq},
	">":      {2, gt},
	"<":      {2, lt},
	"substr": {3, substr},
	"strlen": {1, strlen},
	"car":    {1, car},
	"cdr":    {1, cdr},
	"catch":  {1, catch},
	"raise":  {1, raise},
	"~":      {1, ret},
}

// Primitives lists the names of the built-in operations.
func Primitives() []string {
	names := make([]string, 0, len(primitives))
	for name := range primitives {
		names = append(names, name)
	}
	return names
}

// callPrimitive dispatches a built-in. Except for ? and catch, the first
// exception among the arguments is returned instead of calling it.
func (p *process) callPrimitive(id string, params *List[Value]) Value {
	args := params.Slice()
	if id != "?" && id != "catch" {
		for _, arg := range args {
			if ex, ok := arg.(*Exception); ok {
				return ex
			}
		}
	}
	prim, ok := primitives[id]
	if !ok {
		return newException(UndefError, id, "function is not defined in scope")
	}
	if len(args) != prim.arity {
		return newException(ArgError, id, "expected argument list of length %d but got %d", prim.arity, len(args))
	}
	return prim.fn(p, id, args)
}

func toInt(p *process, id string, args []Value) Value {
	switch x := args[0].(type) {
	case Float:
		f := math.Trunc(float64(x))
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return newException(RuntimeError, id, "float %s out of integer range", x)
		}
		return Integer(int64(f))
	case String:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return newException(ParseError, id, "unable to parse string %s", x)
		}
		return Integer(n)
	}
	return newException(TypeError, id, "float or string argument expected")
}

func toFloat(p *process, id string, args []Value) Value {
	switch x := args[0].(type) {
	case Integer:
		return Float(float64(x))
	case String:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return newException(ParseError, id, "unable to parse string %s", x)
		}
		return Float(f)
	}
	return newException(TypeError, id, "integer or string argument expected")
}

func toString(p *process, id string, args []Value) Value {
	return String(args[0].String())
}

func display(p *process, id string, args []Value) Value {
	s, ok := args[0].(String)
	if !ok {
		return newException(TypeError, id, "string argument expected")
	}
	fmt.Fprintln(p.out, string(s))
	return Boolean(true)
}

// arith applies the integer or the float version of an operator,
// promoting an integer operand when the other one is a float.
func arith(id string, a, b Value, ints func(x, y int64) Value, floats func(x, y float64) Value) Value {
	switch x := a.(type) {
	case Integer:
		switch y := b.(type) {
		case Integer:
			return ints(int64(x), int64(y))
		case Float:
			return floats(float64(x), float64(y))
		}
		return newException(TypeMismatch, id, "mismatched argument types")
	case Float:
		switch y := b.(type) {
		case Integer:
			return floats(float64(x), float64(y))
		case Float:
			return floats(float64(x), float64(y))
		}
		return newException(TypeMismatch, id, "mismatched argument types")
	}
	return newException(TypeError, id, "numeric arguments expected")
}

func add(p *process, id string, args []Value) Value {
	switch x := args[0].(type) {
	case String:
		y, ok := args[1].(String)
		if !ok {
			return newException(TypeMismatch, id, "mismatched argument types")
		}
		return x + y
	case ListValue:
		y, ok := args[1].(ListValue)
		if !ok {
			return newException(TypeMismatch, id, "mismatched argument types")
		}
		b := newListBuilder[Value]()
		b.attach(x.Items.Copy(copyValue))
		b.attach(y.Items.Copy(copyValue))
		return ListValue{Items: b.list()}
	case Integer, Float:
		return arith(id, args[0], args[1],
			func(x, y int64) Value { return Integer(x + y) },
			func(x, y float64) Value { return Float(x + y) })
	}
	return newException(TypeError, id, "number, list, or string arguments expected")
}

func sub(p *process, id string, args []Value) Value {
	return arith(id, args[0], args[1],
		func(x, y int64) Value { return Integer(x - y) },
		func(x, y float64) Value { return Float(x - y) })
}

func mul(p *process, id string, args []Value) Value {
	return arith(id, args[0], args[1],
		func(x, y int64) Value { return Integer(x * y) },
		func(x, y float64) Value { return Float(x * y) })
}

func div(p *process, id string, args []Value) Value {
	return arith(id, args[0], args[1],
		func(x, y int64) Value {
			if y == 0 {
				return newException(DivByZero, id, "attempt to divide by zero")
			}
			return Integer(x / y)
		},
		func(x, y float64) Value {
			if y == 0 {
				return newException(DivByZero, id, "attempt to divide by zero")
			}
			return Float(x / y)
		})
}

func mod(p *process, id string, args []Value) Value {
	x, ok := args[0].(Integer)
	if !ok {
		return newException(TypeError, id, "integer arguments expected")
	}
	y, ok := args[1].(Integer)
	if !ok {
		return newException(TypeMismatch, id, "integer arguments expected")
	}
	if y == 0 {
		return newException(DivByZero, id, "attempt to divide by zero")
	}
	return x % y
}

func not(p *process, id string, args []Value) Value {
	b, ok := args[0].(Boolean)
	if !ok {
		return newException(TypeError, id, "boolean argument expected")
	}
	return !b
}

func logic(id string, args []Value, op func(x, y Boolean) Boolean) Value {
	x, ok := args[0].(Boolean)
	if !ok {
		return newException(TypeError, id, "boolean arguments expected")
	}
	y, ok := args[1].(Boolean)
	if !ok {
		return newException(TypeMismatch, id, "mismatched argument types")
	}
	return op(x, y)
}

func and(p *process, id string, args []Value) Value {
	return logic(id, args, func(x, y Boolean) Boolean { return x && y })
}

func or(p *process, id string, args []Value) Value {
	return logic(id, args, func(x, y Boolean) Boolean { return x || y })
}

// ternary picks between two values that have both been evaluated already.
func ternary(p *process, id string, args []Value) Value {
	switch c := args[0].(type) {
	case Boolean:
		if c {
			return args[1]
		}
		return args[2]
	case *Exception:
		return c
	}
	return newException(TypeError, id, "boolean arguments expected")
}

func eq(p *process, id string, args []Value) Value {
	return Boolean(equal(args[0], args[1]))
}

func compare(id string, args []Value, ints func(x, y int64) bool, floats func(x, y float64) bool) Value {
	switch args[0].(type) {
	case Integer, Float:
	default:
		return newException(TypeError, id, "numeric arguments expected")
	}
	switch args[1].(type) {
	case Integer, Float:
	default:
		return newException(TypeMismatch, id, "numeric arguments expected")
	}
	return arith(id, args[0], args[1],
		func(x, y int64) Value { return Boolean(ints(x, y)) },
		func(x, y float64) Value { return Boolean(floats(x, y)) })
}

func gt(p *process, id string, args []Value) Value {
	return compare(id, args,
		func(x, y int64) bool { return x > y },
		func(x, y float64) bool { return x > y })
}

func lt(p *process, id string, args []Value) Value {
	return compare(id, args,
		func(x, y int64) bool { return x < y },
		func(x, y float64) bool { return x < y })
}

// substr counts in characters. A start past the end gives the empty
// string and a length running past the end stops at the end.
func substr(p *process, id string, args []Value) Value {
	s, ok := args[0].(String)
	if !ok {
		return newException(TypeError, id, "first argument must be string")
	}
	start, ok := args[1].(Integer)
	if !ok {
		return newException(TypeError, id, "second argument expects integer for start")
	}
	length, ok := args[2].(Integer)
	if !ok {
		return newException(TypeError, id, "third argument expects integer for length")
	}
	runes := []rune(string(s))
	n := Integer(len(runes))
	if start < 0 || start >= n || length <= 0 {
		return String("")
	}
	end := start + length
	if end > n || end < start {
		end = n
	}
	return String(runes[start:end])
}

func strlen(p *process, id string, args []Value) Value {
	s, ok := args[0].(String)
	if !ok {
		return newException(TypeError, id, "string argument expected")
	}
	return Integer(len([]rune(string(s))))
}

func car(p *process, id string, args []Value) Value {
	l, ok := args[0].(ListValue)
	if !ok {
		return newException(TypeError, id, "list argument expected")
	}
	head, ok := l.Items.Car()
	if !ok {
		return newException(RuntimeError, id, "attempt to get head of empty list")
	}
	return copyValue(head)
}

func cdr(p *process, id string, args []Value) Value {
	l, ok := args[0].(ListValue)
	if !ok {
		return newException(TypeError, id, "list argument expected")
	}
	if l.Items.Empty() {
		return newException(RuntimeError, id, "attempt to get tail of empty list")
	}
	return ListValue{Items: l.Items.Cdr().Copy(copyValue)}
}

// catch turns an exception into [flavor payload stack] and anything else
// into ["ok" value].
func catch(p *process, id string, args []Value) Value {
	if ex, ok := args[0].(*Exception); ok {
		return ex.ToList()
	}
	return NewListValue(String("ok"), args[0])
}

func raise(p *process, id string, args []Value) Value {
	return &Exception{Flavor: Error, Payload: args[0]}
}

func ret(p *process, id string, args []Value) Value {
	return &Exception{Flavor: Return, Payload: args[0]}
}
