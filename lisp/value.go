// Package lisp implements the embedded dialect that scripts the editor:
// a tagged value model, an interned symbol table, lexical environments,
// a handwritten s-expression parser, a recursive evaluator, a mark-and
// sweep collector, and the builtin registry bound into the root
// environment at startup.
package lisp

import "github.com/inkwell-editor/inkwell/buffer"

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindPair
	KindSymbol
	KindInteger
	KindString
	KindBuiltin
	KindClosure
	KindMacro
	KindEnvironment
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindPair:
		return "pair"
	case KindSymbol:
		return "symbol"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBuiltin:
		return "builtin"
	case KindClosure:
		return "closure"
	case KindMacro:
		return "macro"
	case KindEnvironment:
		return "environment"
	case KindBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Value is the tagged sum every Lisp datum satisfies. Identity rules
// (heap identity vs. structural equality) are load-bearing for the
// evaluator and the collector — see Eq in eval.go.
type Value interface {
	Kind() Kind
}

// gcHeader is embedded by every heap-allocated Value variant, giving the
// collector one shared mark bit regardless of concrete type — the Go
// analogue of the mark bit every Atom carries in the original source.
// The collector's allocation list (not a field here) plays the role of
// the original's galloc linked list.
type gcHeader struct {
	mark bool
}

// Marked reports the collector's mark bit for this allocation.
func (h *gcHeader) Marked() bool { return h.mark }

// SetMark sets or clears the collector's mark bit for this allocation.
func (h *gcHeader) SetMark(v bool) { h.mark = v }

// nilValue is the Nil singleton: the empty list and the canonical false
// value.
type nilValue struct{}

func (nilValue) Kind() Kind { return KindNil }

// Nil is the one Nil value. Comparisons against it use Go's interface
// equality, which holds for nilValue{} because it carries no fields.
var Nil Value = nilValue{}

// NilP reports whether v is Nil. A Go nil interface is treated as Nil
// too, defensively, since zero-value Value fields are one source of
// those.
func NilP(v Value) bool {
	return v == nil || v == Nil
}

// Integer is a 64-bit signed integer, compared structurally.
type Integer int64

func (Integer) Kind() Kind { return KindInteger }

// String is an opaque, possibly non-UTF-8, byte sequence. Two distinct
// String values are never canonicalized even if byte-equal — identity
// is heap identity, per spec.
type String struct {
	gcHeader
	Bytes []byte
}

func (*String) Kind() Kind { return KindString }

// NewString allocates a String holding a private copy of b.
func NewString(b []byte) *String {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &String{Bytes: cp}
}

// Symbol is an interned name. Two Symbols are the same binding iff they
// are the same pointer — SymbolTable.Intern guarantees that invariant.
// Symbols are permanent: the symbol table is itself a GC root, so a
// Symbol is never swept.
type Symbol struct {
	Name string // already uppercased
	Hash uint64 // xxhash64 of Name, computed once at intern time
}

func (*Symbol) Kind() Kind { return KindSymbol }

// Pair is the universal cons cell. A proper list is a chain of Pairs
// whose final Cdr is Nil; any other final Cdr makes it a dotted/
// improper list.
type Pair struct {
	gcHeader
	Car, Cdr Value
}

func (*Pair) Kind() Kind { return KindPair }

// Car and Cdr tolerate Nil (returning Nil) so callers rarely need a type
// switch before destructuring a possibly-empty list.
func Car(v Value) Value {
	if p, ok := v.(*Pair); ok {
		return p.Car
	}
	return Nil
}

func Cdr(v Value) Value {
	if p, ok := v.(*Pair); ok {
		return p.Cdr
	}
	return Nil
}

// ListP reports whether x is a proper list: repeatedly taking Cdr
// reaches Nil without encountering a non-pair.
func ListP(x Value) bool {
	for {
		if NilP(x) {
			return true
		}
		p, ok := x.(*Pair)
		if !ok {
			return false
		}
		x = p.Cdr
	}
}

// ListLength returns the number of elements in a proper list, or -1 if
// x is not a proper list.
func ListLength(x Value) int {
	n := 0
	for {
		if NilP(x) {
			return n
		}
		p, ok := x.(*Pair)
		if !ok {
			return -1
		}
		n++
		x = p.Cdr
	}
}

// ListToSlice collects a proper list's elements into a slice, ignoring
// whether the list is actually proper beyond what it can walk.
func ListToSlice(x Value) []Value {
	var out []Value
	for {
		p, ok := x.(*Pair)
		if !ok {
			break
		}
		out = append(out, p.Car)
		x = p.Cdr
	}
	return out
}

// SliceToList builds a proper list from elems, right to left.
func SliceToList(elems []Value) Value {
	var out Value = Nil
	for i := len(elems) - 1; i >= 0; i-- {
		out = &Pair{Car: elems[i], Cdr: out}
	}
	return out
}

// CopyList returns a fresh proper-list spine holding the same element
// Values (shallow copy) as x.
func CopyList(x Value) Value {
	return SliceToList(ListToSlice(x))
}

// Builtin wraps a native Go function exposed to Lisp under Name.
type Builtin struct {
	Name string
	Doc  string
	Fn   BuiltinFunc
}

func (*Builtin) Kind() Kind { return KindBuiltin }

// BuiltinFunc is the signature every primitive registered in the root
// environment implements: it receives the already-evaluated argument
// list (a proper list) and the collector/environment it is running
// under, and returns a result or a typed error.
type BuiltinFunc func(c *Collector, env *Environment, args Value) (Value, *Error)

// Closure is a user-defined function: a captured environment, a
// parameter spec, and a body. Params is a (possibly dotted or bare-
// symbol) list of formal parameter symbols; Body is a proper list of
// forms evaluated in order, the last of which supplies the result.
type Closure struct {
	gcHeader
	Env    *Environment
	Params Value
	Body   Value
}

func (*Closure) Kind() Kind { return KindClosure }

// Macro has the same shape as Closure but applies to the *unevaluated*
// argument list; its result is evaluated again in the caller's
// environment.
type Macro struct {
	gcHeader
	Env    *Environment
	Params Value
	Body   Value
}

func (*Macro) Kind() Kind { return KindMacro }

// Buffer wraps a live editor buffer as a first-class Lisp value.
type Buffer struct {
	gcHeader
	Buf *buffer.Buffer
}

func (*Buffer) Kind() Kind { return KindBuffer }
