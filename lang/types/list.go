package types

import "strings"

// List is an immutable singly-linked list, the only composite value in the
// language. The empty list is the nil *List, so that it can be produced
// without allocation and tested for with a plain nil comparison; car and
// cdr on it are dynamic errors rather than panics, since a nil receiver
// only ever reaches Head/Tail through those methods.
type List struct {
	head Value
	tail *List
}

// Cons returns a new list whose head is v and whose tail is rest. rest may
// be nil (the empty list).
func Cons(v Value, rest *List) *List {
	return &List{head: v, tail: rest}
}

// Empty is the canonical empty list value.
var Empty *List

// IsEmpty reports whether l is the empty list.
func (l *List) IsEmpty() bool { return l == nil }

// Head returns the first element of l and true, or (nil, false) if l is
// empty.
func (l *List) Head() (Value, bool) {
	if l == nil {
		return nil, false
	}
	return l.head, true
}

// Tail returns the rest of l (itself a *List, possibly empty) and true, or
// (nil, false) if l is empty.
func (l *List) Tail() (*List, bool) {
	if l == nil {
		return nil, false
	}
	return l.tail, true
}

// Len returns the number of elements in l.
func (l *List) Len() int {
	n := 0
	for cur := l; cur != nil; cur = cur.tail {
		n++
	}
	return n
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for cur, i := l, 0; cur != nil; cur, i = cur.tail, i+1 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(cur.head.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (l *List) Type() string { return "list" }
