package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-editor/inkwell/lisp"
)

func TestAlistGetFindsMatchingEntry(t *testing.T) {
	c, _ := newFixture(t)
	a := alist(c, entry(c, "a", lisp.Integer(1)), entry(c, "b", lisp.Integer(2)))
	require.Equal(t, lisp.Integer(2), AlistGet(a, "b"))
}

func TestAlistGetMissingKeyReturnsNil(t *testing.T) {
	c, _ := newFixture(t)
	a := alist(c, entry(c, "a", lisp.Integer(1)))
	require.True(t, lisp.NilP(AlistGet(a, "z")))
}

func TestAlistGetOnNonAlistReturnsNil(t *testing.T) {
	require.True(t, lisp.NilP(AlistGet(lisp.Integer(5), "a")))
	require.True(t, lisp.NilP(AlistGet(lisp.Nil, "a")))
}

func TestAlistPRejectsImproperEntries(t *testing.T) {
	c, _ := newFixture(t)
	// A proper list whose first element is not itself a Pair (e.g. an
	// ordinary call form like (SAVE-BUFFER)) must not read as a nested
	// keymap.
	notAlist := c.NewPair(c.Symtab.Intern("SAVE-BUFFER"), lisp.Nil)
	require.False(t, AlistP(notAlist))
}

func TestAlistPAcceptsMultiEntryAlist(t *testing.T) {
	c, _ := newFixture(t)
	a := alist(c, entry(c, "a", lisp.Integer(1)), entry(c, "b", lisp.Integer(2)))
	require.True(t, AlistP(a))
}
