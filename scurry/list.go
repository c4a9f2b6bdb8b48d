package scurry

// List is a singly linked chain of nodes. The empty list is a node with
// no value and no tail; every non-empty node has a tail, ending in an
// empty node. Nodes may be shared for reading, but a list that crosses
// an ownership boundary is copied first.
type List[T any] struct {
	head T
	tail *List[T]
}

func NewList[T any](items ...T) *List[T] {
	b := newListBuilder[T]()
	for _, item := range items {
		b.push(item)
	}
	return b.list()
}

func (l *List[T]) Empty() bool {
	return l == nil || l.tail == nil
}

func (l *List[T]) Len() int {
	n := 0
	for c := l; !c.Empty(); c = c.tail {
		n++
	}
	return n
}

func (l *List[T]) Car() (T, bool) {
	if l.Empty() {
		var zero T
		return zero, false
	}
	return l.head, true
}

// Cdr returns the tail of a non-empty list and nil for an empty one.
func (l *List[T]) Cdr() *List[T] {
	if l.Empty() {
		return nil
	}
	return l.tail
}

// Nth returns the i-th element, zero based.
func (l *List[T]) Nth(i int) (T, bool) {
	c := l
	for ; i > 0 && !c.Empty(); i-- {
		c = c.tail
	}
	return c.Car()
}

func (l *List[T]) Slice() []T {
	out := []T{}
	for c := l; !c.Empty(); c = c.tail {
		out = append(out, c.head)
	}
	return out
}

// Copy builds a structurally independent list, cloning every element
// with clone (which may be nil for element types that need no cloning).
func (l *List[T]) Copy(clone func(T) T) *List[T] {
	b := newListBuilder[T]()
	for c := l; !c.Empty(); c = c.tail {
		v := c.head
		if clone != nil {
			v = clone(v)
		}
		b.push(v)
	}
	return b.list()
}

// listBuilder appends in place while a list is still owned by the
// code constructing it. Once list() has been handed out, stop pushing.
type listBuilder[T any] struct {
	first *List[T]
	last  *List[T]
}

func newListBuilder[T any]() *listBuilder[T] {
	l := &List[T]{}
	return &listBuilder[T]{first: l, last: l}
}

func (b *listBuilder[T]) push(v T) {
	b.last.head = v
	b.last.tail = &List[T]{}
	b.last = b.last.tail
}

// attach makes tail the remainder of the list under construction.
// tail must already be owned by the builder's caller.
func (b *listBuilder[T]) attach(tail *List[T]) {
	if tail.Empty() {
		return
	}
	*b.last = *tail
	for !b.last.Empty() {
		b.last = b.last.tail
	}
}

func (b *listBuilder[T]) list() *List[T] {
	return b.first
}
