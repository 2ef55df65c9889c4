package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectSweepsUnreachableAllocations(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)

	reachable := c.NewPair(Integer(1), Nil)
	c.Root.Set(c.Symtab.Intern("KEEP-ME"), reachable)

	c.NewPair(Integer(2), Nil) // unreachable once collected

	before := c.Stats().LiveAllocations
	c.Collect()
	after := c.Stats().LiveAllocations

	require.Less(t, after, before)
	v, ok := c.Root.Get(c.Symtab.Intern("KEEP-ME"))
	require.True(t, ok)
	require.Same(t, reachable, v)
}

func TestCollectPreservesCyclicStructures(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)

	a := c.NewPair(Integer(1), Nil)
	b := c.NewPair(Integer(2), a)
	a.Cdr = b // a -> b -> a cycle

	c.Root.Set(c.Symtab.Intern("CYCLE-HEAD"), a)
	c.Collect()

	v, ok := c.Root.Get(c.Symtab.Intern("CYCLE-HEAD"))
	require.True(t, ok)
	require.Same(t, a, v)
	require.Same(t, b, Cdr(v))
}

func TestPinProtectsTransientRootsDuringCollect(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)

	mark := c.PinMark()
	pinned := c.NewPair(Integer(7), Nil)
	c.Pin(pinned)

	c.Collect()

	found := false
	for _, v := range allocsSnapshot(c) {
		if v == Value(pinned) {
			found = true
		}
	}
	require.True(t, found)
	c.UnpinTo(mark)
}

func TestSafePointSkipsCollectionWhenPinned(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)
	c.Pin(Integer(1))
	before := c.Stats()
	c.SafePoint()
	after := c.Stats()
	require.Equal(t, before, after)
}

func allocsSnapshot(c *Collector) []Value {
	return append([]Value{}, c.allocs...)
}

func TestStartReadingRedirectsCurrentBufferReads(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)

	editing := c.NewString([]byte("editing"))
	c.Root.Set(c.Symtab.Intern("CURRENT-BUFFER"), editing)
	require.False(t, c.Reading)

	currentBufferSym := c.Symtab.Intern("CURRENT-BUFFER")
	require.Same(t, currentBufferSym, c.ReadSymbol(currentBufferSym))

	popup := c.StartReading()
	require.True(t, c.Reading)
	require.Same(t, popup, c.PopupBuffer)

	resolved := c.ReadSymbol(currentBufferSym)
	require.Equal(t, "POPUP-BUFFER", resolved.Name)
	v, ok := c.Root.Get(resolved)
	require.True(t, ok)
	require.Same(t, popup, v)

	c.StopReading()
	require.False(t, c.Reading)
	require.Nil(t, c.PopupBuffer)
	require.Same(t, currentBufferSym, c.ReadSymbol(currentBufferSym))
}

func TestCollectMarksPopupBufferAsRoot(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)

	popup := c.StartReading()
	c.Collect()

	found := false
	for _, v := range allocsSnapshot(c) {
		if v == Value(popup) {
			found = true
		}
	}
	require.True(t, found, "popup buffer must survive a collection as a root while reading")
}

// TestEvalListPinsEachEvaluatedArgument guards against a collection
// sweeping an already-evaluated argument while a later argument in the
// same call is still being evaluated (spec.md §4.7's "the currently-
// building argument list during a builtin call must be reachable from
// a root before the collector can run").
func TestEvalListPinsEachEvaluatedArgument(t *testing.T) {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)
	env := c.Root

	// (QUOTE (1)) evaluates to a fresh pair reachable from nowhere but
	// evalList's own bookkeeping.
	first := c.NewPair(Integer(1), Nil)
	quoted := c.NewPair(c.Symtab.Intern("QUOTE"), c.NewPair(first, Nil))

	register(env, c.Symtab, "TEST-FORCE-GC", "test-only: run an immediate collection.",
		func(cc *Collector, _ *Environment, _ Value) (Value, *Error) {
			cc.Collect()
			return Nil, nil
		})
	forceGC := c.NewPair(c.Symtab.Intern("TEST-FORCE-GC"), Nil)

	list := c.NewPair(quoted, c.NewPair(forceGC, Nil))
	result, err := evalList(c, env, list)
	require.Nil(t, err)

	vals := ListToSlice(result)
	require.Len(t, vals, 2)
	require.Same(t, first, vals[0])

	stillTracked := false
	for _, v := range allocsSnapshot(c) {
		if v == Value(first) {
			stillTracked = true
		}
	}
	require.True(t, stillTracked, "first argument's pair must survive a collection triggered while evaluating a later argument")
}
