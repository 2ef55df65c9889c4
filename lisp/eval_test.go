package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func evalOneString(t *testing.T, c *Collector, src string) (Value, *Error) {
	t.Helper()
	forms, perr := ParseAll([]byte(src), c.Symtab, c)
	require.Nil(t, perr)
	require.Len(t, forms, 1)
	return EvalTopLevel(c, c.Root, forms[0])
}

func newBootstrappedCollector() *Collector {
	c := NewCollector(NewSymbolTable())
	Bootstrap(c)
	return c
}

func TestEvalSelfEvaluatingAtoms(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "42")
	require.Nil(t, err)
	require.Equal(t, Integer(42), v)
}

func TestEvalQuoteReturnsUnevaluated(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "'(a b c)")
	require.Nil(t, err)
	slice := ListToSlice(v)
	require.Len(t, slice, 3)
	require.Equal(t, "A", slice[0].(*Symbol).Name)
}

func TestEvalDefineBindsAndReturnsSymbol(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "(define x 10)")
	require.Nil(t, err)
	sym, ok := v.(*Symbol)
	require.True(t, ok)
	require.Equal(t, "X", sym.Name)

	v2, err := evalOneString(t, c, "x")
	require.Nil(t, err)
	require.Equal(t, Integer(10), v2)
}

func TestEvalIfBranches(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "(if t 1 2)")
	require.Nil(t, err)
	require.Equal(t, Integer(1), v)

	v, err = evalOneString(t, c, "(if nil 1 2)")
	require.Nil(t, err)
	require.Equal(t, Integer(2), v)
}

func TestEvalLambdaApplicationFixedParams(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "((lambda (x y) (add x y)) 3 4)")
	require.Nil(t, err)
	require.Equal(t, Integer(7), v)
}

func TestEvalLambdaApplicationDottedVariadic(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "((lambda (x . rest) rest) 1 2 3)")
	require.Nil(t, err)
	require.True(t, ListP(v))
	require.Equal(t, []Value{Integer(2), Integer(3)}, ListToSlice(v))
}

func TestEvalLambdaBareSymbolParamsCollectsAll(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "((lambda args args) 1 2 3)")
	require.Nil(t, err)
	require.Equal(t, []Value{Integer(1), Integer(2), Integer(3)}, ListToSlice(v))
}

func TestEvalUnboundSymbolErrorsWithSuggestion(t *testing.T) {
	c := newBootstrappedCollector()
	evalOneString(t, c, "(define my-counter 1)")
	_, err := evalOneString(t, c, "my-counterr")
	require.NotNil(t, err)
	require.Equal(t, ErrNotBound, err.Kind)
	require.Equal(t, "MY-COUNTER", err.Suggestion)
}

func TestEvalTooFewArgumentsErrors(t *testing.T) {
	c := newBootstrappedCollector()
	_, err := evalOneString(t, c, "((lambda (x y) x) 1)")
	require.NotNil(t, err)
	require.Equal(t, ErrArguments, err.Kind)
}

func TestEqIdentitySemantics(t *testing.T) {
	c := newBootstrappedCollector()
	p1 := c.NewPair(Integer(1), Nil)
	p2 := c.NewPair(Integer(1), Nil)
	require.True(t, Eq(p1, p1))
	require.False(t, Eq(p1, p2))
	require.True(t, Eq(Integer(5), Integer(5)))
	require.True(t, Eq(Nil, Nil))
}

func TestApplyToNonFunctionIsTypeError(t *testing.T) {
	c := newBootstrappedCollector()
	_, err := Apply(c, Integer(1), Nil)
	require.NotNil(t, err)
	require.Equal(t, ErrType, err.Kind)
}

func TestEvalWhileLoopsUntilConditionIsNil(t *testing.T) {
	c := newBootstrappedCollector()
	evalOneString(t, c, "(define i 0)")
	evalOneString(t, c, "(define total 0)")
	v, err := evalOneString(t, c, "(while (numlt i 5) (define total (add total i)) (define i (add i 1)))")
	require.Nil(t, err)
	require.Same(t, c.Symtab.Intern("I"), v)

	total, err := evalOneString(t, c, "total")
	require.Nil(t, err)
	require.Equal(t, Integer(0+1+2+3+4), total)
}

func TestEvalWhileNeverRunningReturnsNil(t *testing.T) {
	c := newBootstrappedCollector()
	v, err := evalOneString(t, c, "(while nil 1)")
	require.Nil(t, err)
	require.True(t, NilP(v))
}

func TestEvalWhileExceedingRecurseLimitErrors(t *testing.T) {
	c := newBootstrappedCollector()
	evalOneString(t, c, "(define WHILE-RECURSE-LIMIT 3)")
	_, err := evalOneString(t, c, "(while t 1)")
	require.NotNil(t, err)
	require.Equal(t, ErrGeneric, err.Kind)
}
