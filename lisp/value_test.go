package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilPRecognizesCanonicalAndGoNil(t *testing.T) {
	require.True(t, NilP(Nil))
	require.True(t, NilP(nil))
	require.False(t, NilP(Integer(0)))
}

func TestCarCdrTolerateNil(t *testing.T) {
	require.Equal(t, Nil, Car(Nil))
	require.Equal(t, Nil, Cdr(Nil))
}

func TestListRoundTrip(t *testing.T) {
	elems := []Value{Integer(1), Integer(2), Integer(3)}
	list := SliceToList(elems)
	require.True(t, ListP(list))
	require.Equal(t, 3, ListLength(list))
	require.Equal(t, elems, ListToSlice(list))
}

func TestListLengthRejectsImproperList(t *testing.T) {
	dotted := &Pair{Car: Integer(1), Cdr: Integer(2)}
	require.Equal(t, -1, ListLength(dotted))
	require.False(t, ListP(dotted))
}

func TestCopyListIsASeparateSpine(t *testing.T) {
	original := SliceToList([]Value{Integer(1), Integer(2)})
	copied := CopyList(original)
	require.NotSame(t, original.(*Pair), copied.(*Pair))
	require.Equal(t, ListToSlice(original), ListToSlice(copied))
}

func TestStringCopiesInputBytes(t *testing.T) {
	src := []byte("hello")
	s := NewString(src)
	src[0] = 'H'
	require.Equal(t, "hello", string(s.Bytes))
}
