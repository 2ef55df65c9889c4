package lisp

import (
	"strconv"
	"strings"
)

// Print renders v in machine-readable form: strings are quoted, so that
// for any value produced by the parser, re-parsing Print's output
// yields a structurally equal value (spec.md §8 property 5). This
// backs the `print` builtin.
func Print(v Value) string {
	var b strings.Builder
	writeValue(&b, v, true)
	return b.String()
}

// Prins renders v for human display: strings are written without
// surrounding quotes. This backs the `prins` builtin and the footline's
// "set to printed result" behavior in the input pipeline.
func Prins(v Value) string {
	var b strings.Builder
	writeValue(&b, v, false)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, readable bool) {
	if NilP(v) {
		b.WriteString("NIL")
		return
	}
	switch t := v.(type) {
	case Integer:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case *Symbol:
		b.WriteString(t.Name)
	case *String:
		if readable {
			b.WriteByte('"')
			b.Write(t.Bytes)
			b.WriteByte('"')
		} else {
			b.Write(t.Bytes)
		}
	case *Pair:
		writePair(b, t, readable)
	case *Builtin:
		b.WriteString("#<BUILTIN ")
		b.WriteString(t.Name)
		b.WriteByte('>')
	case *Closure:
		b.WriteString("#<CLOSURE>")
	case *Macro:
		b.WriteString("#<MACRO>")
	case *Environment:
		b.WriteString("#<ENVIRONMENT>")
	case *Buffer:
		b.WriteString("#<BUFFER")
		if path, ok := t.Buf.Path(); ok {
			b.WriteByte(' ')
			b.WriteString(path)
		}
		b.WriteByte('>')
	default:
		b.WriteString("#<UNKNOWN>")
	}
}

func writePair(b *strings.Builder, p *Pair, readable bool) {
	b.WriteByte('(')
	writeValue(b, p.Car, readable)
	cur := p.Cdr
	for {
		if NilP(cur) {
			break
		}
		next, ok := cur.(*Pair)
		if !ok {
			b.WriteString(" . ")
			writeValue(b, cur, readable)
			break
		}
		b.WriteByte(' ')
		writeValue(b, next.Car, readable)
		cur = next.Cdr
	}
	b.WriteByte(')')
}
