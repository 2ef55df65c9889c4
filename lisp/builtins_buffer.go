package lisp

import (
	"github.com/inkwell-editor/inkwell/buffer"
	"github.com/inkwell-editor/inkwell/internal/debug"
)

// registerBufferBuiltins binds the BUFFERS section of builtins.h. The
// actual builtin_buffer_* wrapper bodies aren't present in the
// retrieved original source (only their names, in builtins.h), so each
// one here takes an explicit buffer value as its first argument rather
// than consulting an implicit current-buffer slot — consistent with
// every other builtin in this roster, and directly testable without
// standing up editor state.
func registerBufferBuiltins(env *Environment, symtab *SymbolTable) {
	register(env, symtab, "OPEN-BUFFER", "Open or fetch the buffer backing a file path.", builtinOpenBuffer)
	register(env, symtab, "BUFFER-TABLE", "Return the sorted list of every open buffer's path as strings.", builtinBufferTable)
	register(env, symtab, "BUFFER-PATH", "Return a buffer's file path, or NIL for a pathless buffer.", builtinBufferPath)

	register(env, symtab, "BUFFER-INSERT", "Insert a string at a buffer's point.", builtinBufferInsert)
	register(env, symtab, "BUFFER-REMOVE", "Remove N bytes backward from a buffer's point.", builtinBufferRemove)
	register(env, symtab, "BUFFER-REMOVE-FORWARD", "Remove N bytes forward from a buffer's point.", builtinBufferRemoveForward)
	register(env, symtab, "BUFFER-UNDO", "Undo the most recent edit to a buffer.", builtinBufferUndo)
	register(env, symtab, "BUFFER-REDO", "Redo the most recently undone edit to a buffer.", builtinBufferRedo)

	register(env, symtab, "BUFFER-SET-POINT", "Set a buffer's point, clamped to its bounds.", builtinBufferSetPoint)
	register(env, symtab, "BUFFER-POINT", "Return a buffer's point.", builtinBufferPoint)
	register(env, symtab, "BUFFER-INDEX", "Return a buffer's length in bytes.", builtinBufferIndex)
	register(env, symtab, "BUFFER-STRING", "Return a buffer's entire contents as a string.", builtinBufferString)
	register(env, symtab, "BUFFER-LINES", "Return a range of lines from a buffer as a string.", builtinBufferLines)
	register(env, symtab, "BUFFER-LINE", "Return a single line from a buffer as a string.", builtinBufferLine)
	register(env, symtab, "BUFFER-CURRENT-LINE", "Return the line containing a buffer's point.", builtinBufferCurrentLine)
	register(env, symtab, "BUFFER-DUMP-ROPE", "Write a buffer's rope tree structure to the debug log, if the log's rope tag is enabled.", builtinBufferDumpRope)

	register(env, symtab, "BUFFER-TOGGLE-MARK", "Toggle whether a buffer's mark is active.", builtinBufferToggleMark)
	register(env, symtab, "BUFFER-SET-MARK-ACTIVATION", "Explicitly set whether a buffer's mark is active.", builtinBufferSetMarkActivation)
	register(env, symtab, "BUFFER-SET-MARK", "Set a buffer's mark to an offset.", builtinBufferSetMark)
	register(env, symtab, "BUFFER-MARK", "Return a buffer's mark offset.", builtinBufferMark)
	register(env, symtab, "BUFFER-MARK-ACTIVATED", "T if a buffer's mark is active.", builtinBufferMarkActivated)
	register(env, symtab, "BUFFER-REGION", "Return the bytes between a buffer's point and mark as a string.", builtinBufferRegion)
	register(env, symtab, "BUFFER-REGION-LENGTH", "Return the length in bytes of a buffer's point-mark region.", builtinBufferRegionLength)

	register(env, symtab, "BUFFER-SEEK-BYTE", "Move a buffer's point to the next occurrence of any byte in a set.", builtinBufferSeekByte)
	register(env, symtab, "BUFFER-SEEK-PAST-BYTE", "Move a buffer's point past a run of bytes in a set.", builtinBufferSeekPastByte)
	register(env, symtab, "BUFFER-SEEK-SUBSTRING", "Move a buffer's point to the next occurrence of a substring.", builtinBufferSeekSubstring)

	register(env, symtab, "SAVE", "Write a buffer's contents back to its file path.", builtinSave)
}

func builtinOpenBuffer(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	path, err := asString(v)
	if err != nil {
		return Nil, err
	}
	if c.Buffers == nil {
		return Nil, newError(ErrGeneric, Nil, "no buffer table configured")
	}
	buf, oerr := c.Buffers.Open(string(path.Bytes))
	if oerr != nil {
		return Nil, newError(ErrGeneric, Nil, oerr.Error())
	}
	return c.NewBuffer(buf), nil
}

func builtinBufferTable(c *Collector, env *Environment, args Value) (Value, *Error) {
	if !NilP(args) {
		return Nil, argumentsError("BUFFER-TABLE takes no arguments")
	}
	if c.Buffers == nil {
		return Nil, newError(ErrGeneric, Nil, "no buffer table configured")
	}
	paths := c.Buffers.Paths()
	elems := make([]Value, len(paths))
	for i, p := range paths {
		elems[i] = c.NewString([]byte(p))
	}
	return SliceToList(elems), nil
}

func builtinBufferPath(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	path, ok := buf.Path()
	if !ok {
		return Nil, nil
	}
	return c.NewString([]byte(path)), nil
}

func singleBufferArg(args Value) (*buffer.Buffer, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return nil, err
	}
	return asBuffer(v)
}

func builtinBufferInsert(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, sv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	s, err := asString(sv)
	if err != nil {
		return Nil, err
	}
	if ierr := buf.Insert(s.Bytes); ierr != nil {
		return Nil, newError(ErrGeneric, Nil, ierr.Error())
	}
	return Nil, nil
}

func builtinBufferRemove(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, nv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	n, err := asInteger(nv)
	if err != nil {
		return Nil, err
	}
	removed, rerr := buf.RemoveBytes(int(n))
	if rerr != nil {
		return Nil, newError(ErrGeneric, Nil, rerr.Error())
	}
	return Integer(removed), nil
}

func builtinBufferRemoveForward(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, nv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	n, err := asInteger(nv)
	if err != nil {
		return Nil, err
	}
	removed, rerr := buf.RemoveBytesForward(int(n))
	if rerr != nil {
		return Nil, newError(ErrGeneric, Nil, rerr.Error())
	}
	return Integer(removed), nil
}

func builtinBufferUndo(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	if uerr := buf.Undo(); uerr != nil {
		return Nil, newError(ErrGeneric, Nil, uerr.Error())
	}
	return Nil, nil
}

func builtinBufferRedo(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	if rerr := buf.Redo(); rerr != nil {
		return Nil, newError(ErrGeneric, Nil, rerr.Error())
	}
	return Nil, nil
}

func builtinBufferSetPoint(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, iv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	i, err := asInteger(iv)
	if err != nil {
		return Nil, err
	}
	buf.SetPoint(int(i))
	return Nil, nil
}

func builtinBufferPoint(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.Point()), nil
}

func builtinBufferIndex(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.Length()), nil
}

func builtinBufferString(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(buf.String())), nil
}

func builtinBufferLines(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, startv, countv, err := exactly3(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	start, err := asInteger(startv)
	if err != nil {
		return Nil, err
	}
	count, err := asInteger(countv)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(buf.Lines(int(start), int(count)))), nil
}

func builtinBufferLine(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, nv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	n, err := asInteger(nv)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(buf.Line(int(n)))), nil
}

func builtinBufferCurrentLine(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(buf.CurrentLine())), nil
}

// builtinBufferDumpRope is a debug-only tool: it mirrors rope_print's
// original use, printed only when the debug log's "rope" tag is enabled, never
// unconditionally to stdout.
func builtinBufferDumpRope(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	if debug.Enabled("rope") {
		buf.DumpRope(debug.Writer())
	}
	return Nil, nil
}

func builtinBufferToggleMark(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	buf.ToggleMark()
	return Nil, nil
}

func builtinBufferSetMarkActivation(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, av, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	buf.SetMarkActivation(!NilP(av))
	return Nil, nil
}

func builtinBufferSetMark(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, iv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	i, err := asInteger(iv)
	if err != nil {
		return Nil, err
	}
	buf.SetMark(int(i))
	return Nil, nil
}

func builtinBufferMark(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.Mark()), nil
}

func builtinBufferMarkActivated(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return boolValue(c, buf.MarkActive()), nil
}

func builtinBufferRegion(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString(buf.Region()), nil
}

func builtinBufferRegionLength(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.RegionLength()), nil
}

func builtinBufferSeekByte(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, setv, dirv, err := exactly3(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	set, err := asString(setv)
	if err != nil {
		return Nil, err
	}
	dir, err := seekDirection(dirv)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.SeekUntilByte(set.Bytes, dir)), nil
}

func builtinBufferSeekPastByte(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, setv, dirv, err := exactly3(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	set, err := asString(setv)
	if err != nil {
		return Nil, err
	}
	dir, err := seekDirection(dirv)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.SeekWhileByte(set.Bytes, dir)), nil
}

func builtinBufferSeekSubstring(c *Collector, env *Environment, args Value) (Value, *Error) {
	bv, needlev, dirv, err := exactly3(args)
	if err != nil {
		return Nil, err
	}
	buf, err := asBuffer(bv)
	if err != nil {
		return Nil, err
	}
	needle, err := asString(needlev)
	if err != nil {
		return Nil, err
	}
	dir, err := seekDirection(dirv)
	if err != nil {
		return Nil, err
	}
	return Integer(buf.SeekUntilSubstr(needle.Bytes, dir)), nil
}

func seekDirection(v Value) (buffer.Direction, *Error) {
	n, err := asInteger(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return buffer.Backward, nil
	}
	return buffer.Forward, nil
}

func builtinSave(c *Collector, env *Environment, args Value) (Value, *Error) {
	buf, err := singleBufferArg(args)
	if err != nil {
		return Nil, err
	}
	if serr := buf.Save(); serr != nil {
		return Nil, newError(ErrGeneric, Nil, serr.Error())
	}
	return Nil, nil
}
