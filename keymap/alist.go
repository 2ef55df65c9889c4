package keymap

import "github.com/inkwell-editor/inkwell/lisp"

// AlistP reports whether v is a non-empty proper list every element of
// which is itself a Pair — an association list, the shape spec.md
// §4.8 calls a "nested keymap". Grounded on original_source/src/api.c
// and builtins.h's alistp: a bare Nil is deliberately excluded (it
// reads as "not found", not "an empty nested keymap"), matching the
// original's dispatch order of checking alistp before nilp.
func AlistP(v lisp.Value) bool {
	p, ok := v.(*lisp.Pair)
	if !ok {
		return false
	}
	for {
		if _, ok := p.Car.(*lisp.Pair); !ok {
			return false
		}
		switch cdr := p.Cdr.(type) {
		case *lisp.Pair:
			p = cdr
		default:
			return lisp.NilP(p.Cdr)
		}
	}
}

// AlistGet looks up key among alist's (key . value) entries, comparing
// key by byte equality against each entry's *lisp.String car. It
// returns Nil if alist isn't a list of pairs or no entry matches —
// callers can't distinguish "bound to Nil" from "not found", matching
// original_source/src/api.c's alist_get.
func AlistGet(alist lisp.Value, key string) lisp.Value {
	cur := alist
	for {
		p, ok := cur.(*lisp.Pair)
		if !ok {
			return lisp.Nil
		}
		entry, ok := p.Car.(*lisp.Pair)
		if ok {
			if s, ok := entry.Car.(*lisp.String); ok && string(s.Bytes) == key {
				return entry.Cdr
			}
		}
		cur = p.Cdr
	}
}

// AlistKeys returns every key string bound in alist, in alist order —
// used as the candidate set for the suggestion engine's "did you mean"
// lookup against an unrecognized modifier/keystring.
func AlistKeys(alist lisp.Value) []string {
	var keys []string
	cur := alist
	for {
		p, ok := cur.(*lisp.Pair)
		if !ok {
			return keys
		}
		if entry, ok := p.Car.(*lisp.Pair); ok {
			if s, ok := entry.Car.(*lisp.String); ok {
				keys = append(keys, string(s.Bytes))
			}
		}
		cur = p.Cdr
	}
}

// sameAlist reports whether a and b are the same alist by head-pair
// identity (or both Nil) — used to detect "the key loop has fallen all
// the way back to the root keymap" per spec.md §4.8.
func sameAlist(a, b lisp.Value) bool {
	if lisp.NilP(a) && lisp.NilP(b) {
		return true
	}
	pa, oka := a.(*lisp.Pair)
	pb, okb := b.(*lisp.Pair)
	return oka && okb && pa == pb
}
