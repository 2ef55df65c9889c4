package lisp

import "bytes"

// registerStringBuiltins binds the STRINGS section of builtins.h.
// STRING-LENGTH/STRING-CONCAT/STRING-INDEX mirror the pair/list
// builtins' argument-checking shape; TO-STRING is the printer's Prins
// wrapped as a builtin so Lisp code can stringify any value for display.
func registerStringBuiltins(env *Environment, symtab *SymbolTable) {
	register(env, symtab, "STRING-LENGTH", "Return the byte length of a string.", builtinStringLength)
	register(env, symtab, "STRING-CONCAT", "Concatenate two strings into a new string.", builtinStringConcat)
	register(env, symtab, "STRING-INDEX", "Return the byte offset of a substring within a string, or NIL.", builtinStringIndex)
	register(env, symtab, "TO-STRING", "Render any value as a display string.", builtinToString)
}

func builtinStringLength(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	s, err := asString(v)
	if err != nil {
		return Nil, err
	}
	return Integer(len(s.Bytes)), nil
}

func builtinStringConcat(c *Collector, env *Environment, args Value) (Value, *Error) {
	av, bv, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	a, err := asString(av)
	if err != nil {
		return Nil, err
	}
	b, err := asString(bv)
	if err != nil {
		return Nil, err
	}
	joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
	joined = append(joined, a.Bytes...)
	joined = append(joined, b.Bytes...)
	return c.NewString(joined), nil
}

func builtinStringIndex(c *Collector, env *Environment, args Value) (Value, *Error) {
	hayv, needlev, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	hay, err := asString(hayv)
	if err != nil {
		return Nil, err
	}
	needle, err := asString(needlev)
	if err != nil {
		return Nil, err
	}
	idx := bytes.Index(hay.Bytes, needle.Bytes)
	if idx < 0 {
		return Nil, nil
	}
	return Integer(idx), nil
}

func builtinToString(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(Prins(v))), nil
}
