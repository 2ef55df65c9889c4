package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndGetDirectBinding(t *testing.T) {
	symtab := NewSymbolTable()
	env := NewEnvironment(Nil)
	x := symtab.Intern("X")
	env.Set(x, Integer(42))
	v, ok := env.Get(x)
	require.True(t, ok)
	require.Equal(t, Integer(42), v)
}

func TestGetWalksParentChain(t *testing.T) {
	symtab := NewSymbolTable()
	root := NewEnvironment(Nil)
	x := symtab.Intern("X")
	root.Set(x, Integer(1))
	child := NewEnvironment(root)
	v, ok := child.Get(x)
	require.True(t, ok)
	require.Equal(t, Integer(1), v)
}

func TestSetNeverWalksParentChain(t *testing.T) {
	symtab := NewSymbolTable()
	root := NewEnvironment(Nil)
	x := symtab.Intern("X")
	root.Set(x, Integer(1))
	child := NewEnvironment(root)
	child.Set(x, Integer(2))
	rootVal, _ := root.Get(x)
	childVal, _ := child.Get(x)
	require.Equal(t, Integer(1), rootVal)
	require.Equal(t, Integer(2), childVal)
}

func TestGetUnboundReturnsFalse(t *testing.T) {
	symtab := NewSymbolTable()
	env := NewEnvironment(Nil)
	_, ok := env.Get(symtab.Intern("MISSING"))
	require.False(t, ok)
}

func TestGetContainingFindsDefiningEnvironment(t *testing.T) {
	symtab := NewSymbolTable()
	root := NewEnvironment(Nil)
	x := symtab.Intern("X")
	root.Set(x, Integer(1))
	child := NewEnvironment(root)
	require.Same(t, root, child.GetContaining(x))
	require.Nil(t, child.GetContaining(symtab.Intern("NOWHERE")))
}

func TestNonNilTreatsUnboundAsNil(t *testing.T) {
	symtab := NewSymbolTable()
	env := NewEnvironment(Nil)
	flag := symtab.Intern("DEBUG/FOO")
	require.False(t, env.NonNil(flag))
	env.Set(flag, Integer(1))
	require.True(t, env.NonNil(flag))
	env.Set(flag, Nil)
	require.False(t, env.NonNil(flag))
}

func TestEnvironmentGrowsAndPreservesBindings(t *testing.T) {
	symtab := NewSymbolTable()
	env := NewEnvironment(Nil)
	syms := make([]*Symbol, 0, 50)
	for i := 0; i < 50; i++ {
		s := symtab.Intern("VAR" + string(rune('A'+i%26)) + string(rune(i)))
		syms = append(syms, s)
		env.Set(s, Integer(int64(i)))
	}
	for i, s := range syms {
		v, ok := env.Get(s)
		require.True(t, ok)
		require.Equal(t, Integer(int64(i)), v)
	}
}

func TestEachVisitsOnlyDirectBindings(t *testing.T) {
	symtab := NewSymbolTable()
	root := NewEnvironment(Nil)
	root.Set(symtab.Intern("A"), Integer(1))
	child := NewEnvironment(root)
	child.Set(symtab.Intern("B"), Integer(2))
	seen := map[string]Value{}
	child.Each(func(sym *Symbol, v Value) { seen[sym.Name] = v })
	require.Len(t, seen, 1)
	require.Equal(t, Integer(2), seen["B"])
}
