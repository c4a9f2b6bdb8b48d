package scurry

// Expression is one of BooleanExpr, IntegerExpr, FloatExpr, StringExpr,
// ListExpr, *Call or *Definition. Expressions are built once by the parser
// and never mutated afterwards.
type Expression interface {
	expression()
}

// Block is a semicolon separated sequence of expressions: a function body
// or a whole program.
type Block []Expression

type BooleanExpr bool

type IntegerExpr int64

type FloatExpr float64

type StringExpr string

type ListExpr struct {
	Items *List[Expression]
}

// Call applies ID to Args. A bare identifier is a call with no arguments.
type Call struct {
	ID   string
	Args *List[Expression]
	Line int
}

// Definition binds Body to ID in the innermost frame. ID is empty for an
// anonymous function.
type Definition struct {
	ID   string
	Body Block
	Line int
}

func (BooleanExpr) expression() {}
func (IntegerExpr) expression() {}
func (FloatExpr) expression()   {}
func (StringExpr) expression()  {}
func (ListExpr) expression()    {}
func (*Call) expression()       {}
func (*Definition) expression() {}
