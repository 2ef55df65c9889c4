package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	b, err := Create(filepath.Join(dir, "does-not-exist.lisp"))
	require.NoError(t, err)
	assert.Equal(t, "\n", b.String())
	assert.Equal(t, 0, b.Point())
	assert.False(t, b.Modified())
}

func TestCreateReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0644))
	b, err := Create(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", b.String())
}

func TestInsertAdvancesPointByExactLength(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abc")))
	assert.Equal(t, "abc\n", b.String())
	assert.Equal(t, 3, b.Point())
}

func TestUndoRedoScenario(t *testing.T) {
	// Scenario S2 from spec.md: empty buffer, insert "abc", insert "DEF",
	// undo, redo.
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abc")))
	require.NoError(t, b.Insert([]byte("DEF")))
	require.Equal(t, "abcDEF\n", b.String())
	pointBeforeUndo := b.Point()

	require.NoError(t, b.Undo())
	assert.Equal(t, "abc\n", b.String())

	require.NoError(t, b.Redo())
	assert.Equal(t, "abcDEF\n", b.String())
	assert.Equal(t, pointBeforeUndo, b.Point())
}

func TestUndoWithNothingToUndoErrors(t *testing.T) {
	b := NewEmpty()
	assert.Error(t, b.Undo())
}

func TestRedoWithNothingToRedoErrors(t *testing.T) {
	b := NewEmpty()
	assert.Error(t, b.Redo())
}

func TestInsertClearsRedoStack(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abc")))
	require.NoError(t, b.Undo())
	require.NoError(t, b.Insert([]byte("xyz")))
	assert.Error(t, b.Redo())
}

func TestRemoveBytesBackward(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abcdef")))
	n, err := b.RemoveBytes(3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc\n", b.String())
	assert.Equal(t, 3, b.Point())
}

func TestRemoveBytesBackwardClampsAtStart(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("ab")))
	b.SetPoint(1)
	n, err := b.RemoveBytes(100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Point())
}

func TestRemoveBytesForwardLeavesPoint(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abcdef")))
	b.SetPoint(2)
	n, err := b.RemoveBytesForward(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, b.Point())
	assert.Equal(t, "abef\n", b.String())
}

func TestUndoOfRemoveRestoresData(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abcdef")))
	_, err := b.RemoveBytes(3)
	require.NoError(t, err)
	require.Equal(t, "abc\n", b.String())
	require.NoError(t, b.Undo())
	assert.Equal(t, "abcdef\n", b.String())
}

func TestMarkAndRegion(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("hello world")))
	b.SetMark(0)
	b.SetMarkActivation(true)
	b.SetPoint(5)
	assert.True(t, b.MarkActive())
	assert.Equal(t, "hello", string(b.Region()))
	assert.Equal(t, 5, b.RegionLength())
}

func TestToggleMark(t *testing.T) {
	b := NewEmpty()
	assert.False(t, b.MarkActive())
	b.ToggleMark()
	assert.True(t, b.MarkActive())
	b.ToggleMark()
	assert.False(t, b.MarkActive())
}

func TestRemoveRegion(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("hello world")))
	b.SetMark(0)
	b.SetPoint(6)
	require.NoError(t, b.RemoveRegion())
	assert.Equal(t, "world\n", b.String())
	assert.Equal(t, 0, b.Point())
}

func TestSeekUntilByte(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("one,two,three")))
	b.SetPoint(0)
	moved := b.SeekUntilByte([]byte(","), Forward)
	assert.Equal(t, 3, moved)
	assert.Equal(t, byte(','), []byte(b.String())[b.Point()])
}

func TestSeekWhileByte(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("   abc")))
	b.SetPoint(0)
	moved := b.SeekWhileByte([]byte(" "), Forward)
	assert.Equal(t, 3, moved)
}

func TestSeekUntilSubstrForwardAndBackward(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("abc needle def needle ghi")))
	b.SetPoint(0)
	moved := b.SeekUntilSubstr([]byte("needle"), Forward)
	assert.Equal(t, 4, moved)
	first := b.Point()

	b.SetPoint(b.Length())
	moved = b.SeekUntilSubstr([]byte("needle"), Backward)
	assert.True(t, moved < 0)
	assert.True(t, b.Point() > first)
}

func TestRowCol(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("line one\nline two\nline three")))
	row, col := b.RowCol(0)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col = b.RowCol(9)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestLineAndCurrentLine(t *testing.T) {
	b := NewEmpty()
	require.NoError(t, b.Insert([]byte("alpha\nbeta\ngamma")))
	assert.Equal(t, "alpha\n", b.Line(0))
	assert.Equal(t, "beta\n", b.Line(1))
	assert.Equal(t, "gamma\n", b.Line(2))

	b.SetPoint(7) // inside "beta"
	assert.Equal(t, "beta\n", b.CurrentLine())
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	b, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, b.Insert([]byte("saved contents")))
	require.NoError(t, b.Save())
	assert.False(t, b.Modified())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved contents\n", string(contents))
}

func TestSaveWithoutPathErrors(t *testing.T) {
	b := NewEmpty()
	assert.Error(t, b.Save())
}

func TestTableOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.txt")
	table := NewTable()

	b1, err := table.Open(path)
	require.NoError(t, err)
	b2, err := table.Open(path)
	require.NoError(t, err)
	assert.Same(t, b1, b2)
}

func TestTablePathsSorted(t *testing.T) {
	dir := t.TempDir()
	table := NewTable()
	_, err := table.Open(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	_, err = table.Open(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)

	paths := table.Paths()
	require.Len(t, paths, 2)
	assert.True(t, paths[0] < paths[1])
}
