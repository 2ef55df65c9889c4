package lisp

import "github.com/inkwell-editor/inkwell/buffer"

// Collector is the mark-and-sweep garbage collector over every pair,
// string, closure, macro, environment, and buffer wrapper this package
// allocates. It mirrors original_source/src/evaluation.c's two trigger
// counters and the roots enumerated in spec.md §4.7, but its allocation
// list is a Go slice rather than a hand-rolled linked list, and "free"
// means dropping the last collector-held reference so Go's own runtime
// reclaims the memory — the logical liveness decision is still entirely
// ours, which is what the spec's mark/sweep contract actually requires.
type Collector struct {
	Symtab *SymbolTable
	Root   *Environment

	// ExtraRoots, when set, supplies additional GC roots gathered at
	// collection time: every live buffer's environment slot. The
	// popup-buffer handle is not supplied here; Collect marks
	// PopupBuffer itself. The editor package wires this once buffers
	// exist, since this package has no knowledge of the editor state.
	ExtraRoots func() []Value

	allocs []Value
	pins   []Value

	evalCount int
	pairCount int

	// Quit is set by the QUIT-LISP builtin. Callers driving a REPL or
	// script loop should check it after each top-level evaluation and
	// stop if true; the collector itself never inspects it.
	Quit bool

	// Buffers backs OPEN-BUFFER and BUFFER-TABLE. Nil until the editor
	// package wires a process-wide table in; buffer builtins that need
	// it report ErrGeneric if it hasn't been set.
	Buffers *buffer.Table

	// Reading and PopupBuffer implement spec.md §9's dynamic
	// "env_get_containing(reading ⇒ POPUP-BUFFER)" substitution: while
	// Reading is true, a read of CURRENT-BUFFER is rewritten to
	// POPUP-BUFFER instead, so prompt-mode input lands in the popup
	// buffer without the keymap pipeline or any builtin needing to know
	// prompt mode exists. READ-PROMPTED/FINISH-READ (builtins_io.go)
	// are the entry and exit points; ReadSymbol is the single rewrite
	// site every CURRENT-BUFFER reader goes through.
	Reading     bool
	PopupBuffer *Buffer
}

// ReadSymbol applies spec.md §9's reading-mode substitution: while
// c.Reading is true, a read of CURRENT-BUFFER is redirected to
// POPUP-BUFFER. Every reader of CURRENT-BUFFER — Eval's symbol case,
// the keymap pipeline's buffer lookup, and the editor's snapshot
// rendering — must resolve the symbol through this method rather than
// looking it up literally, so the substitution is a property of the
// lookup entry point itself, not a special case duplicated at each
// call site.
func (c *Collector) ReadSymbol(sym *Symbol) *Symbol {
	if c.Reading && sym.Name == "CURRENT-BUFFER" {
		return c.Symtab.Intern("POPUP-BUFFER")
	}
	return sym
}

// StartReading is the single entry point for entering popup/prompt
// mode, shared by the READ-PROMPTED builtin and editor.State.
// StartPrompt: it creates a fresh in-memory popup buffer, binds it to
// POPUP-BUFFER, and turns on reading-mode substitution.
func (c *Collector) StartReading() *Buffer {
	raw, _ := buffer.Create("")
	popup := c.NewBuffer(raw)
	c.PopupBuffer = popup
	c.Root.Set(c.Symtab.Intern("POPUP-BUFFER"), popup)
	c.Reading = true
	return popup
}

// StopReading is the single exit point from popup/prompt mode, the
// inverse of StartReading.
func (c *Collector) StopReading() {
	c.Reading = false
	c.PopupBuffer = nil
}

// NewCollector returns a collector with a fresh, empty root environment.
// Callers should run Bootstrap(c) to populate the root environment's
// builtins and tunable variables before evaluating anything.
func NewCollector(symtab *SymbolTable) *Collector {
	c := &Collector{Symtab: symtab}
	c.Root = NewEnvironment(Nil)
	return c
}

// NewPair allocates a fresh cons cell and registers it with the
// collector.
func (c *Collector) NewPair(car, cdr Value) *Pair {
	p := &Pair{Car: car, Cdr: cdr}
	c.allocs = append(c.allocs, p)
	c.pairCount++
	return p
}

// NewString allocates a fresh String and registers it.
func (c *Collector) NewString(b []byte) *String {
	s := NewString(b)
	c.allocs = append(c.allocs, s)
	return s
}

// NewClosure allocates and registers a Closure.
func (c *Collector) NewClosure(env *Environment, params, body Value) *Closure {
	cl := &Closure{Env: env, Params: params, Body: body}
	c.allocs = append(c.allocs, cl)
	return cl
}

// NewMacro allocates and registers a Macro.
func (c *Collector) NewMacro(env *Environment, params, body Value) *Macro {
	m := &Macro{Env: env, Params: params, Body: body}
	c.allocs = append(c.allocs, m)
	return m
}

// NewChildEnvironment allocates and registers a child of parent.
func (c *Collector) NewChildEnvironment(parent *Environment) *Environment {
	var p Value = Nil
	if parent != nil {
		p = parent
	}
	e := NewEnvironment(p)
	c.allocs = append(c.allocs, e)
	return e
}

// NewBuffer wraps buf as a Lisp value and registers it. The rope and
// path it owns are not GC-managed (buffers live for the process
// lifetime, per spec.md §3); only the Lisp environment slot is
// reachable through this wrapper for marking purposes.
func (c *Collector) NewBuffer(buf *buffer.Buffer) *Buffer {
	b := &Buffer{Buf: buf}
	c.allocs = append(c.allocs, b)
	return b
}

// EnterEval is called on every entry to Eval; it advances the
// evaluation-count trigger.
func (c *Collector) EnterEval() {
	c.evalCount++
}

// pairThreshold and evalThreshold read the user-tunable Lisp variables
// by the original's names, falling back to the original's own defaults
// when unbound or non-integer.
func (c *Collector) pairThreshold() int64 {
	return c.intVarOr("GARBAGE-COLLECTOR-PAIR-ALLOCATIONS-THRESHOLD", 290500)
}

func (c *Collector) evalThreshold() int64 {
	return c.intVarOr("GARBAGE-COLLECTOR-EVALUATION-ITERATIONS-THRESHOLD", 100000)
}

func (c *Collector) intVarOr(name string, fallback int64) int64 {
	sym, ok := c.Symtab.Lookup(name)
	if !ok {
		return fallback
	}
	v, ok := c.Root.Get(sym)
	if !ok {
		return fallback
	}
	i, ok := v.(Integer)
	if !ok {
		return fallback
	}
	return int64(i)
}

// duePending reports whether either trigger counter has crossed its
// threshold since the last collection.
func (c *Collector) duePending() bool {
	return int64(c.evalCount) >= c.evalThreshold() || int64(c.pairCount) >= c.pairThreshold()
}

// PinMark returns a token that UnpinTo can later restore the pin stack
// to.
func (c *Collector) PinMark() int { return len(c.pins) }

// Pin adds v to the transient root set. Every Value reachable from a
// pinned root survives a collection that happens before the matching
// UnpinTo — this is how a builtin call's in-progress argument list
// stays alive while the collector might run between evaluating one
// argument and the next.
func (c *Collector) Pin(v Value) {
	c.pins = append(c.pins, v)
}

// UnpinTo truncates the pin stack back to mark.
func (c *Collector) UnpinTo(mark int) {
	c.pins = c.pins[:mark]
}

// SafePoint runs a collection if a trigger has fired and no transient
// root is currently pinned. Only call this between evaluator top-
// levels and between builtin calls — the two places spec.md §4.7 and
// §5 designate as safe.
func (c *Collector) SafePoint() {
	if len(c.pins) != 0 {
		return
	}
	if !c.duePending() {
		return
	}
	c.Collect()
}

// Collect runs an immediate mark-and-sweep regardless of the trigger
// counters. Exposed for tests; production code should prefer SafePoint.
func (c *Collector) Collect() {
	for _, v := range c.allocs {
		setMark(v, false)
	}

	markValue(c.Root)
	if c.PopupBuffer != nil {
		markValue(c.PopupBuffer)
	}
	for _, v := range c.pins {
		markValue(v)
	}
	if c.ExtraRoots != nil {
		for _, v := range c.ExtraRoots() {
			markValue(v)
		}
	}

	kept := c.allocs[:0]
	for _, v := range c.allocs {
		if marked(v) {
			kept = append(kept, v)
		}
	}
	c.allocs = kept

	c.evalCount = 0
	c.pairCount = 0
}

// Stats reports the collector's bookkeeping counters, used by the
// DEBUG/MEMORY diagnostic.
type Stats struct {
	LiveAllocations int
	EvalCount       int
	PairCount       int
}

func (c *Collector) Stats() Stats {
	return Stats{LiveAllocations: len(c.allocs), EvalCount: c.evalCount, PairCount: c.pairCount}
}

func marked(v Value) bool {
	switch t := v.(type) {
	case *Pair:
		return t.Marked()
	case *String:
		return t.Marked()
	case *Closure:
		return t.Marked()
	case *Macro:
		return t.Marked()
	case *Environment:
		return t.Marked()
	case *Buffer:
		return t.Marked()
	default:
		return true
	}
}

func setMark(v Value, m bool) {
	switch t := v.(type) {
	case *Pair:
		t.SetMark(m)
	case *String:
		t.SetMark(m)
	case *Closure:
		t.SetMark(m)
	case *Macro:
		t.SetMark(m)
	case *Environment:
		t.SetMark(m)
	case *Buffer:
		t.SetMark(m)
	}
}

// markValue recursively marks v and everything reachable from it,
// through pair car/cdr, closure/macro (env, params, body), environment
// (parent plus every directly bound value), and a buffer's Lisp
// environment slot — per spec.md §4.7's mark rule. Already-marked nodes
// short-circuit, which is what makes this safe over the cyclic graphs
// closures-capturing-environments-capturing-closures can form.
func markValue(v Value) {
	switch t := v.(type) {
	case nil, nilValue, Integer, *Symbol, *Builtin:
		return
	case *Pair:
		if t.Marked() {
			return
		}
		t.SetMark(true)
		markValue(t.Car)
		markValue(t.Cdr)
	case *String:
		t.SetMark(true)
	case *Closure:
		if t.Marked() {
			return
		}
		t.SetMark(true)
		markValue(t.Env)
		markValue(t.Params)
		markValue(t.Body)
	case *Macro:
		if t.Marked() {
			return
		}
		t.SetMark(true)
		markValue(t.Env)
		markValue(t.Params)
		markValue(t.Body)
	case *Environment:
		if t.Marked() {
			return
		}
		t.SetMark(true)
		markValue(t.Parent)
		t.Each(func(_ *Symbol, val Value) { markValue(val) })
	case *Buffer:
		if t.Marked() {
			return
		}
		t.SetMark(true)
		if env, ok := t.Buf.Env.(*Environment); ok {
			markValue(env)
		}
	}
}
