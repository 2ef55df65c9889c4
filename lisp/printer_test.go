package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintQuotesStrings(t *testing.T) {
	c := newTestCollector()
	s := c.NewString([]byte("hi"))
	require.Equal(t, `"hi"`, Print(s))
	require.Equal(t, "hi", Prins(s))
}

func TestPrintListRoundTrip(t *testing.T) {
	c := newTestCollector()
	forms, perr := ParseAll([]byte(`(1 "two" three)`), c.Symtab, c)
	require.Nil(t, perr)
	printed := Print(forms[0])

	reparsed, perr := ParseAll([]byte(printed), c.Symtab, c)
	require.Nil(t, perr)
	require.Len(t, reparsed, 1)
	require.Equal(t, ListToSlice(forms[0])[0], ListToSlice(reparsed[0])[0])

	orig := ListToSlice(forms[0])
	again := ListToSlice(reparsed[0])
	require.Equal(t, string(orig[1].(*String).Bytes), string(again[1].(*String).Bytes))
	require.Equal(t, orig[2].(*Symbol).Name, again[2].(*Symbol).Name)
}

func TestPrintDottedPair(t *testing.T) {
	c := newTestCollector()
	p := c.NewPair(Integer(1), Integer(2))
	require.Equal(t, "(1 . 2)", Print(p))
}

func TestPrintNil(t *testing.T) {
	require.Equal(t, "NIL", Print(Nil))
}

func TestPrintOpaqueValuesAreTagged(t *testing.T) {
	c := newTestCollector()
	cl := c.NewClosure(c.Root, Nil, Nil)
	require.Equal(t, "#<CLOSURE>", Print(cl))
}
