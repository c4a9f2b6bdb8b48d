package scurry

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Interpreter evaluates scurry programs. Library functions loaded with
// Load stay available to every program it runs afterwards.
type Interpreter struct {
	process *process
}

type Option func(*Interpreter)

// WithOutput redirects what >> prints. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.process.out = w
	}
}

func WithLogger(logger *log.Entry) Option {
	return func(i *Interpreter) {
		i.process.log = logger
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		process: newProcess(os.Stdout, log.NewEntry(log.StandardLogger())),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Eval parses and runs a whole program. An exception escaping the main
// program comes back as a *Exception error.
func (i *Interpreter) Eval(src string) (Value, error) {
	block, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return i.EvalBlock(block)
}

func (i *Interpreter) EvalBlock(block Block) (Value, error) {
	p := i.process
	p.scope = p.scope[:0]
	v := p.evalBlock(block, NewList[Value](), mainContext)
	if ex, ok := v.(*Exception); ok {
		p.log.WithFields(log.Fields{
			"flavor": ex.Flavor.String(),
			"depth":  len(ex.Stack),
		}).Debug("exception escaped main program")
		return nil, ex
	}
	return v, nil
}
