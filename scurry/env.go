package scurry

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	mainContext    = "[main program]"
	libraryContext = "[library]"
	applyForm      = ","
)

// frame is one activation on the scope stack: the functions defined while
// it was innermost and the argument list it was invoked with.
type frame struct {
	bindings map[string]Function
	params   *List[Value]
}

func newFrame(params *List[Value]) *frame {
	if params == nil {
		params = NewList[Value]()
	}
	return &frame{bindings: map[string]Function{}, params: params}
}

// process owns the scope stack of one evaluation. It is not safe for
// concurrent use.
type process struct {
	scope   []*frame
	library map[string]Function
	out     io.Writer
	log     *log.Entry
}

func newProcess(out io.Writer, logger *log.Entry) *process {
	return &process{
		library: map[string]Function{},
		out:     out,
		log:     logger,
	}
}

func (p *process) push(params *List[Value]) *frame {
	f := newFrame(params)
	p.scope = append(p.scope, f)
	return f
}

func (p *process) pop() {
	p.scope = p.scope[:len(p.scope)-1]
}

// find walks the live stack from the innermost frame outwards, so a
// function sees the bindings of whoever called it.
func (p *process) find(id string) (Function, bool) {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if f, ok := p.scope[i].bindings[id]; ok {
			return f, true
		}
	}
	return Function{}, false
}

// evalBlock runs block in a fresh frame. A Return exception ends this
// block only and yields its payload; any other exception leaves with
// context appended to its stack.
func (p *process) evalBlock(block Block, params *List[Value], context string) Value {
	p.push(params)
	defer p.pop()
	var result Value = Boolean(false)
	for _, e := range block {
		v := p.evalExpr(e)
		if ex, ok := v.(*Exception); ok {
			if ex.Flavor == Return {
				return ex.Payload
			}
			ex.Stack = append(ex.Stack, context)
			return ex
		}
		result = v
	}
	return result
}

func (p *process) evalExpr(e Expression) Value {
	switch t := e.(type) {
	case BooleanExpr:
		return Boolean(t)
	case IntegerExpr:
		return Integer(t)
	case FloatExpr:
		return Float(t)
	case StringExpr:
		return String(t)
	case ListExpr:
		return ListValue{Items: p.evalList(t.Items)}
	case *Call:
		return p.evalCall(t)
	case *Definition:
		return p.evalDefinition(t)
	}
	panic("unknown expression")
}

// evalList evaluates every expression left to right. Exceptions end up in
// the result like any other value; callers decide what to do with them.
func (p *process) evalList(exprs *List[Expression]) *List[Value] {
	b := newListBuilder[Value]()
	for c := exprs; !c.Empty(); c = c.tail {
		b.push(p.evalExpr(c.head))
	}
	return b.list()
}

func (p *process) evalCall(c *Call) Value {
	if f, ok := p.find(c.ID); ok {
		return p.invoke(f, p.evalList(c.Args), c.ID)
	}
	if f, ok := p.library[c.ID]; ok {
		return p.invoke(f, p.evalList(c.Args), c.ID)
	}
	if c.ID == applyForm {
		return p.apply(c)
	}
	if depth, ok := parametricDepth(c.ID); ok {
		if depth > len(p.scope) {
			return newException(UndefError, c.ID, "attempt to reach out of main scope with _*")
		}
		params := p.scope[len(p.scope)-depth].params
		return ListValue{Items: params.Copy(copyValue)}
	}
	return p.callPrimitive(c.ID, p.evalList(c.Args))
}

func (p *process) invoke(f Function, params *List[Value], context string) Value {
	if p.log.Logger.IsLevelEnabled(log.TraceLevel) {
		p.log.WithFields(log.Fields{
			"function": context,
			"depth":    len(p.scope),
			"args":     ListValue{Items: params}.String(),
		}).Trace("invoke")
	}
	return p.evalBlock(f.Body, params, context)
}

// apply is the , form: invoke a function value on a list value.
func (p *process) apply(c *Call) Value {
	if n := c.Args.Len(); n != 2 {
		return newException(ArgError, c.ID, "expected argument list of length 2 but got %d", n)
	}
	first, _ := c.Args.Nth(0)
	fn := p.evalExpr(first)
	if ex, ok := fn.(*Exception); ok {
		return ex
	}
	f, ok := fn.(Function)
	if !ok {
		return newException(TypeError, c.ID, "function expected as first argument")
	}
	second, _ := c.Args.Nth(1)
	l, ok := p.evalExpr(second).(ListValue)
	if !ok {
		return newException(TypeError, c.ID, "list expected as second argument")
	}
	return p.invoke(f, l.Items.Copy(copyValue), c.ID)
}

func (p *process) evalDefinition(d *Definition) Value {
	current := p.scope[len(p.scope)-1]
	if d.ID != "" {
		if _, ok := current.bindings[d.ID]; ok {
			return newException(RedefError, "", "attempt to redefine %s", d.ID)
		}
	}
	f := Function{Body: d.Body}
	if d.ID != "" {
		current.bindings[d.ID] = f
	}
	return f
}

// parametricDepth recognises _, __, ___ and so on.
func parametricDepth(id string) (int, bool) {
	if id == "" || strings.Trim(id, "_") != "" {
		return 0, false
	}
	return len(id), true
}
