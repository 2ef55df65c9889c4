package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func callBuiltin(t *testing.T, c *Collector, name string, args ...Value) (Value, *Error) {
	t.Helper()
	sym := c.Symtab.Intern(name)
	v, ok := c.Root.Get(sym)
	require.True(t, ok, "builtin %s not registered", name)
	b, ok := v.(*Builtin)
	require.True(t, ok, "%s is not a builtin", name)
	return b.Fn(c, c.Root, SliceToList(args))
}

func TestConsCarCdr(t *testing.T) {
	c := newBootstrappedCollector()
	p, err := callBuiltin(t, c, "CONS", Integer(1), Integer(2))
	require.Nil(t, err)
	car, err := callBuiltin(t, c, "CAR", p)
	require.Nil(t, err)
	require.Equal(t, Integer(1), car)
	cdr, err := callBuiltin(t, c, "CDR", p)
	require.Nil(t, err)
	require.Equal(t, Integer(2), cdr)
}

func TestCarOfNonPairIsTypeError(t *testing.T) {
	c := newBootstrappedCollector()
	_, err := callBuiltin(t, c, "CAR", Integer(5))
	require.NotNil(t, err)
	require.Equal(t, ErrType, err.Kind)
}

func TestArithmeticBuiltins(t *testing.T) {
	c := newBootstrappedCollector()
	sum, err := callBuiltin(t, c, "ADD", Integer(2), Integer(3))
	require.Nil(t, err)
	require.Equal(t, Integer(5), sum)

	_, err = callBuiltin(t, c, "DIVIDE", Integer(1), Integer(0))
	require.NotNil(t, err)
	require.Equal(t, ErrArguments, err.Kind)
}

func TestComparisonBuiltins(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := callBuiltin(t, c, "NUMLT", Integer(1), Integer(2))
	require.Nil(t, err)
	require.False(t, NilP(v))

	v, err = callBuiltin(t, c, "NUMLT", Integer(2), Integer(1))
	require.Nil(t, err)
	require.True(t, NilP(v))
}

func TestBitwiseBuiltins(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := callBuiltin(t, c, "BITAND", Integer(0b1100), Integer(0b1010))
	require.Nil(t, err)
	require.Equal(t, Integer(0b1000), v)

	v, err = callBuiltin(t, c, "BITSHL", Integer(1), Integer(4))
	require.Nil(t, err)
	require.Equal(t, Integer(16), v)
}

func TestTypePredicates(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := callBuiltin(t, c, "INTEGERP", Integer(1))
	require.Nil(t, err)
	require.False(t, NilP(v))

	v, err = callBuiltin(t, c, "PAIRP", Integer(1))
	require.Nil(t, err)
	require.True(t, NilP(v))
}

func TestStringBuiltins(t *testing.T) {
	c := newBootstrappedCollector()
	a := c.NewString([]byte("foo"))
	b := c.NewString([]byte("bar"))

	length, err := callBuiltin(t, c, "STRING-LENGTH", a)
	require.Nil(t, err)
	require.Equal(t, Integer(3), length)

	joined, err := callBuiltin(t, c, "STRING-CONCAT", a, b)
	require.Nil(t, err)
	require.Equal(t, "foobar", string(joined.(*String).Bytes))

	idx, err := callBuiltin(t, c, "STRING-INDEX", joined, b)
	require.Nil(t, err)
	require.Equal(t, Integer(3), idx)
}

func TestArgumentCountErrors(t *testing.T) {
	c := newBootstrappedCollector()
	_, err := callBuiltin(t, c, "CAR")
	require.NotNil(t, err)
	require.Equal(t, ErrArguments, err.Kind)

	_, err = callBuiltin(t, c, "CONS", Integer(1))
	require.NotNil(t, err)
	require.Equal(t, ErrArguments, err.Kind)
}

func TestEvaluateStringBuiltin(t *testing.T) {
	c := newBootstrappedCollector()
	src := c.NewString([]byte("(add 1 2)"))
	v, err := callBuiltin(t, c, "EVALUATE-STRING", src)
	require.Nil(t, err)
	require.Equal(t, Integer(3), v)
}

func TestQuitLispSetsFlag(t *testing.T) {
	c := newBootstrappedCollector()
	require.False(t, c.Quit)
	_, err := callBuiltin(t, c, "QUIT-LISP")
	require.Nil(t, err)
	require.True(t, c.Quit)
}

func TestIOBuiltinsReportTODO(t *testing.T) {
	c := newBootstrappedCollector()
	_, err := callBuiltin(t, c, "CLIPBOARD-PASTE")
	require.NotNil(t, err)
	require.Equal(t, ErrTODO, err.Kind)
}
