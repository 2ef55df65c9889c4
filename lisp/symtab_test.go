package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIsIdempotentAndCaseInsensitive(t *testing.T) {
	t1 := NewSymbolTable()
	a := t1.Intern("foo")
	b := t1.Intern("FOO")
	c := t1.Intern("Foo")
	require.Same(t, a, b)
	require.Same(t, a, c)
	require.Equal(t, "FOO", a.Name)
}

func TestInternDistinctNamesAreDistinctSymbols(t *testing.T) {
	t1 := NewSymbolTable()
	a := t1.Intern("FOO")
	b := t1.Intern("BAR")
	require.NotSame(t, a, b)
}

func TestLookupWithoutInterning(t *testing.T) {
	t1 := NewSymbolTable()
	_, ok := t1.Lookup("UNSEEN")
	require.False(t, ok)
	t1.Intern("UNSEEN")
	found, ok := t1.Lookup("unseen")
	require.True(t, ok)
	require.Equal(t, "UNSEEN", found.Name)
}

func TestGrowthPreservesIdentity(t *testing.T) {
	t1 := NewSymbolTable()
	first := t1.Intern("SYM0")
	for i := 1; i < 200; i++ {
		t1.Intern("SYM" + string(rune('A'+i%26)) + string(rune(i)))
	}
	require.Same(t, first, t1.Intern("SYM0"))
	require.Equal(t, 200, t1.Count())
}

func TestNamesIncludesEveryInterned(t *testing.T) {
	t1 := NewSymbolTable()
	t1.Intern("ALPHA")
	t1.Intern("BETA")
	names := t1.Names()
	require.Contains(t, names, "ALPHA")
	require.Contains(t, names, "BETA")
}
