package scurry

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// Load evaluates library source in a frame of its own. The functions it
// defines by name are kept and can be called from any later program;
// a program defining the same name shadows them.
func (i *Interpreter) Load(data string) error {
	block, err := ParseString(data)
	if err != nil {
		return err
	}
	return i.LoadBlock(block)
}

func (i *Interpreter) LoadBlock(block Block) error {
	p := i.process
	f := p.push(NewList[Value]())
	defer p.pop()
	for _, e := range block {
		v := p.evalExpr(e)
		ex, ok := v.(*Exception)
		if !ok {
			continue
		}
		if ex.Flavor == Return {
			break
		}
		ex.Stack = append(ex.Stack, libraryContext)
		return ex
	}
	for name, fn := range f.bindings {
		if _, ok := p.library[name]; ok {
			p.log.WithField("function", name).Warn("library function replaced")
		}
		p.library[name] = fn
	}
	p.log.WithFields(log.Fields{
		"functions": len(f.bindings),
	}).Debug("library loaded")
	return nil
}

// Library returns the names of the loaded library functions, sorted.
func (i *Interpreter) Library() []string {
	names := make([]string, 0, len(i.process.library))
	for name := range i.process.library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
