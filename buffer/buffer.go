// Package buffer implements the file-backed, rope-stored text buffer:
// point, optional mark/region, and an undo/redo history of edits.
package buffer

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/inkwell-editor/inkwell/fileio"
	"github.com/inkwell-editor/inkwell/rope"
)

// HistoryKind distinguishes an insertion record from a removal record in
// the undo/redo stacks.
type HistoryKind int

const (
	HistoryInsert HistoryKind = iota
	HistoryRemove
)

// HistoryRecord is one entry of undo or redo history, grounded on
// original_source/src/buffer.h's BufferHistoryNode.
type HistoryRecord struct {
	Kind   HistoryKind
	Offset int
	Length int
	Data   []byte
}

func (r HistoryRecord) inverse() HistoryRecord {
	switch r.Kind {
	case HistoryInsert:
		return HistoryRecord{Kind: HistoryRemove, Offset: r.Offset, Length: r.Length, Data: r.Data}
	default:
		return HistoryRecord{Kind: HistoryInsert, Offset: r.Offset, Length: r.Length, Data: r.Data}
	}
}

// Buffer is a file path, a rope, a caret, an optional mark/region, and
// undo/redo history.
type Buffer struct {
	path    string
	hasPath bool

	rope *rope.Rope

	point int

	mark       int
	markActive bool

	undo []HistoryRecord
	redo []HistoryRecord

	modified bool

	// Env holds the buffer-local Lisp environment slot (spec.md §3's
	// "environment: a per-buffer Lisp environment slot"). It is typed as
	// any to avoid an import cycle between buffer and lisp — the lisp
	// package is the only reader/writer, via type assertion.
	Env any
}

// Create opens path, reading its contents if the file exists. A missing
// or unreadable file yields an empty buffer, represented per spec.md §3
// as a single newline so the rope invariant (non-empty) always holds.
func Create(path string) (*Buffer, error) {
	b := &Buffer{path: path, hasPath: path != ""}
	contents, err := fileio.ReadWholeFile(path)
	if err != nil || len(contents) == 0 {
		b.rope = rope.FromString("\n")
	} else {
		b.rope = rope.Create(contents)
	}
	return b, nil
}

// NewEmpty returns a pathless scratch buffer, used for e.g. the popup
// buffer that backs prompted reads.
func NewEmpty() *Buffer {
	return &Buffer{rope: rope.FromString("\n")}
}

// Path returns the buffer's file path and whether one is set.
func (b *Buffer) Path() (string, bool) { return b.path, b.hasPath }

// Length returns the buffer's size in bytes.
func (b *Buffer) Length() int { return rope.Length(b.rope) }

// Point returns the current caret byte offset.
func (b *Buffer) Point() int { return b.point }

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.modified }

// SetPoint clamps i to [0, Length] and moves point there.
func (b *Buffer) SetPoint(i int) {
	b.point = clamp(i, 0, b.Length())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Insert inserts s at point, advances point by len(s), and pushes an
// undo record. Per spec.md §9's resolution of the original's
// inconsistent off-by-one, point always advances by exactly len(s).
func (b *Buffer) Insert(s []byte) error {
	return b.InsertIndexed(b.point, s)
}

// InsertIndexed inserts s at byte index i (clamped to [0, Length]) and
// moves point to min(i+len(s), Length).
func (b *Buffer) InsertIndexed(i int, s []byte) error {
	if s == nil {
		return fmt.Errorf("buffer: cannot insert nil bytes")
	}
	i = clamp(i, 0, b.Length())
	b.rope = rope.Insert(b.rope, i, s)
	b.point = clamp(i+len(s), 0, b.Length())
	b.pushUndo(HistoryRecord{Kind: HistoryInsert, Offset: i, Length: len(s), Data: cloneBytes(s)})
	b.modified = true
	return nil
}

// RemoveBytes removes up to n bytes backward from point. It returns the
// number of bytes actually removed, which may be less than n when point
// is near the start of the buffer.
func (b *Buffer) RemoveBytes(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	if n > b.point {
		n = b.point
	}
	offset := b.point - n
	removed := b.sliceBytes(offset, n)
	b.rope = rope.RemoveSpan(b.rope, offset, n)
	b.point = offset
	b.pushUndo(HistoryRecord{Kind: HistoryRemove, Offset: offset, Length: n, Data: removed})
	b.modified = true
	return n, nil
}

// RemoveBytesForward removes up to n bytes forward from point, leaving
// point unchanged.
func (b *Buffer) RemoveBytesForward(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	avail := b.Length() - b.point
	if n > avail {
		n = avail
	}
	removed := b.sliceBytes(b.point, n)
	b.rope = rope.RemoveSpan(b.rope, b.point, n)
	b.pushUndo(HistoryRecord{Kind: HistoryRemove, Offset: b.point, Length: n, Data: removed})
	b.modified = true
	return n, nil
}

func (b *Buffer) sliceBytes(offset, n int) []byte {
	s := rope.String(b.rope)
	if offset < 0 {
		offset = 0
	}
	if offset+n > len(s) {
		n = len(s) - offset
	}
	if n < 0 {
		n = 0
	}
	return []byte(s[offset : offset+n])
}

func (b *Buffer) pushUndo(r HistoryRecord) {
	b.undo = append(b.undo, r)
	b.redo = nil
}

func (b *Buffer) applyRecord(r HistoryRecord) {
	switch r.Kind {
	case HistoryInsert:
		b.rope = rope.Insert(b.rope, r.Offset, r.Data)
		b.point = clamp(r.Offset+len(r.Data), 0, b.Length())
	case HistoryRemove:
		b.rope = rope.RemoveSpan(b.rope, r.Offset, r.Length)
		b.point = clamp(r.Offset, 0, b.Length())
	}
}

// Undo pops the top of the undo stack, applies its inverse, and pushes
// that inverse onto the redo stack.
func (b *Buffer) Undo() error {
	if len(b.undo) == 0 {
		return fmt.Errorf("buffer: nothing to undo")
	}
	top := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	inv := top.inverse()
	b.applyRecord(inv)
	b.redo = append(b.redo, inv)
	b.modified = true
	return nil
}

// Redo mirrors Undo: pops the top of the redo stack, applies its
// inverse, and pushes that onto the undo stack.
func (b *Buffer) Redo() error {
	if len(b.redo) == 0 {
		return fmt.Errorf("buffer: nothing to redo")
	}
	top := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	inv := top.inverse()
	b.applyRecord(inv)
	b.undo = append(b.undo, inv)
	b.modified = true
	return nil
}

// Mark returns the buffer's mark byte offset (meaningless unless
// MarkActive reports true).
func (b *Buffer) Mark() int { return b.mark }

// MarkActive reports whether the mark is currently in use for a region.
func (b *Buffer) MarkActive() bool { return b.markActive }

// SetMark sets the mark byte offset, clamped to [0, Length].
func (b *Buffer) SetMark(i int) { b.mark = clamp(i, 0, b.Length()) }

// ToggleMark flips the mark's activation state.
func (b *Buffer) ToggleMark() { b.markActive = !b.markActive }

// SetMarkActivation sets the mark's activation state directly.
func (b *Buffer) SetMarkActivation(active bool) { b.markActive = active }

// Region returns the bytes between min(point, mark) and max(point, mark).
func (b *Buffer) Region() []byte {
	lo, hi := b.regionBounds()
	return []byte(rope.String(b.rope))[lo:hi]
}

// RegionLength returns the byte length of the current region.
func (b *Buffer) RegionLength() int {
	lo, hi := b.regionBounds()
	return hi - lo
}

func (b *Buffer) regionBounds() (int, int) {
	lo, hi := b.point, b.mark
	if lo > hi {
		lo, hi = hi, lo
	}
	return clamp(lo, 0, b.Length()), clamp(hi, 0, b.Length())
}

// RemoveRegion deletes the text between point and mark.
func (b *Buffer) RemoveRegion() error {
	lo, hi := b.regionBounds()
	if hi <= lo {
		return nil
	}
	removed := b.sliceBytes(lo, hi-lo)
	b.rope = rope.RemoveSpan(b.rope, lo, hi-lo)
	b.point = lo
	b.pushUndo(HistoryRecord{Kind: HistoryRemove, Offset: lo, Length: hi - lo, Data: removed})
	b.modified = true
	return nil
}

// direction matches the original source's `char direction` parameter:
// negative searches backward, non-negative searches forward.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func inSet(set []byte, c byte) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// SeekUntilByte moves point to the next byte that IS in ctrl, in
// direction dir, and returns the number of bytes point moved by. If no
// matching byte is found, point is left unchanged.
func (b *Buffer) SeekUntilByte(ctrl []byte, dir Direction) int {
	return b.seek(dir, func(c byte) bool { return inSet(ctrl, c) })
}

// SeekWhileByte moves point past bytes that ARE in ctrl.
func (b *Buffer) SeekWhileByte(ctrl []byte, dir Direction) int {
	return b.seek(dir, func(c byte) bool { return !inSet(ctrl, c) })
}

// seek advances point one byte at a time in direction dir until stop
// returns true for the byte currently under point, or the buffer edge is
// reached. It returns the signed number of bytes moved (matching the
// original's "amount of bytes point_byte was moved by").
func (b *Buffer) seek(dir Direction, stop func(byte) bool) int {
	start := b.point
	pos := b.point
	length := b.Length()
	if dir >= 0 {
		for pos < length && !stop(rope.Index(b.rope, pos)) {
			pos++
		}
	} else {
		for pos > 0 && !stop(rope.Index(b.rope, pos-1)) {
			pos--
		}
	}
	b.point = pos
	return pos - start
}

// SeekUntilSubstr moves point to the start of the next occurrence of
// needle in direction dir.
func (b *Buffer) SeekUntilSubstr(needle []byte, dir Direction) int {
	if len(needle) == 0 {
		return 0
	}
	s := rope.String(b.rope)
	start := b.point
	if dir >= 0 {
		idx := indexFrom(s, string(needle), start)
		if idx < 0 {
			return 0
		}
		b.point = idx
		return idx - start
	}
	idx := lastIndexBefore(s, string(needle), start)
	if idx < 0 {
		return 0
	}
	b.point = idx
	return idx - start
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		from = len(s)
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func lastIndexBefore(s, sub string, before int) int {
	if before > len(s) {
		before = len(s)
	}
	for i := before - len(sub); i >= 0; i-- {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// RowCol returns the 0-indexed row and byte-offset column of offset
// within the buffer's contents, rows being newline-terminated.
func (b *Buffer) RowCol(offset int) (row, col int) {
	s := rope.String(b.rope)
	if offset > len(s) {
		offset = len(s)
	}
	lineStart := 0
	for i := 0; i < offset; i++ {
		if s[i] == '\n' {
			row++
			lineStart = i + 1
		}
	}
	return row, offset - lineStart
}

// String returns the buffer's full contents.
func (b *Buffer) String() string { return rope.String(b.rope) }

// DumpRope writes the buffer's backing rope's tree structure to w, for
// debugging the rope's shape independent of its string contents.
func (b *Buffer) DumpRope(w io.Writer) { rope.Dump(w, b.rope) }

// Lines returns lineCount lines of text starting at lineNumber
// (0-indexed), each including its trailing newline where present.
func (b *Buffer) Lines(lineNumber, lineCount int) string {
	all := splitLinesKeepEnds(rope.String(b.rope))
	if lineNumber < 0 || lineNumber >= len(all) {
		return ""
	}
	end := lineNumber + lineCount
	if end > len(all) || lineCount < 0 {
		end = len(all)
	}
	out := ""
	for _, l := range all[lineNumber:end] {
		out += l
	}
	return out
}

// Line returns a single line (0-indexed), including its trailing
// newline where present.
func (b *Buffer) Line(lineNumber int) string {
	return b.Lines(lineNumber, 1)
}

// CurrentLine returns the line surrounding point.
func (b *Buffer) CurrentLine() string {
	row, _ := b.RowCol(b.point)
	return b.Line(row)
}

func splitLinesKeepEnds(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// Save writes the buffer's contents to its path, clearing the modified
// flag on success. It errors if the buffer has no path.
func (b *Buffer) Save() error {
	if !b.hasPath {
		return fmt.Errorf("buffer: cannot save, no path set")
	}
	contents := rope.String(b.rope)
	written, err := fileio.WriteWholeFile(b.path, []byte(contents))
	if err != nil {
		return err
	}
	if written != len(contents) {
		return fmt.Errorf("buffer: short write saving %q: wrote %d of %d bytes", b.path, written, len(contents))
	}
	b.modified = false
	return nil
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// Table is the process-wide registry of open buffers keyed by path,
// per spec.md §3's buffer lifecycle: created on demand, never freed
// until process shutdown (buffers are explicitly not GC-managed).
type Table struct {
	mu      sync.Mutex
	byPath  map[string]*Buffer
	ordered []*Buffer
}

// NewTable returns an empty buffer table.
func NewTable() *Table {
	return &Table{byPath: make(map[string]*Buffer)}
}

// Open returns the existing buffer for path if one is already open, or
// creates and registers a new one.
func (t *Table) Open(path string) (*Buffer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.byPath[path]; ok {
		return b, nil
	}
	b, err := Create(path)
	if err != nil {
		return nil, err
	}
	t.byPath[path] = b
	t.ordered = append(t.ordered, b)
	return b, nil
}

// Get looks up an already-open buffer by path without creating one.
func (t *Table) Get(path string) (*Buffer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.byPath[path]
	return b, ok
}

// Paths returns every open buffer's path, sorted for deterministic
// iteration (e.g. a buffer-list display).
func (t *Table) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	paths := make([]string, 0, len(t.byPath))
	for p := range t.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
