package lisp

import "github.com/inkwell-editor/inkwell/fileio"

// registerEvalBuiltins binds the OTHER section of builtins.h that deals
// with meta-evaluation: copying structures, evaluating strings and
// files, explicit application, introspecting the symbol table and
// docstrings, and the top-level quit signal.
func registerEvalBuiltins(env *Environment, symtab *SymbolTable) {
	register(env, symtab, "COPY", "Shallow-copy a list's spine; other values are returned unchanged.", builtinCopy)
	register(env, symtab, "EVALUATE-STRING", "Parse and evaluate every form in a string, returning the last result.", builtinEvaluateString)
	register(env, symtab, "EVALUATE-FILE", "Parse and evaluate every form in a file, returning the last result.", builtinEvaluateFile)
	register(env, symtab, "APPLY", "Apply a function to a list of arguments.", builtinApply)
	register(env, symtab, "SYMBOL-TABLE", "Return the list of every interned symbol.", builtinSymbolTable)
	register(env, symtab, "PRINT", "Render a value as its readable (quoted) representation.", builtinPrint)
	register(env, symtab, "PRINS", "Render a value as its display (unquoted) representation.", builtinPrins)
	register(env, symtab, "DOCSTRING", "Return a builtin's documentation string, or NIL.", builtinDocstring)
	register(env, symtab, "QUIT-LISP", "Signal the host loop to stop evaluating further top-level forms.", builtinQuitLisp)
}

func builtinCopy(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	if _, ok := v.(*Pair); !ok {
		return v, nil
	}
	return CopyList(v), nil
}

func builtinEvaluateString(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	s, err := asString(v)
	if err != nil {
		return Nil, err
	}
	return evalSource(c, env, s.Bytes)
}

func builtinEvaluateFile(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	path, err := asString(v)
	if err != nil {
		return Nil, err
	}
	data, ferr := fileio.ReadWholeFile(string(path.Bytes))
	if ferr != nil {
		return Nil, newError(ErrGeneric, Nil, ferr.Error())
	}
	return evalSource(c, env, data)
}

func evalSource(c *Collector, env *Environment, src []byte) (Value, *Error) {
	forms, perr := ParseAll(src, c.Symtab, c)
	if perr != nil {
		return Nil, perr
	}
	result := Value(Nil)
	for _, form := range forms {
		var err *Error
		result, err = EvalTopLevel(c, env, form)
		if err != nil {
			return Nil, err
		}
	}
	return result, nil
}

func builtinApply(c *Collector, env *Environment, args Value) (Value, *Error) {
	fn, argList, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	if argList.Kind() != KindNil && argList.Kind() != KindPair {
		return Nil, typeError(argList, "APPLY requires a list of arguments")
	}
	return Apply(c, fn, argList)
}

func builtinSymbolTable(c *Collector, env *Environment, args Value) (Value, *Error) {
	if !NilP(args) {
		return Nil, argumentsError("SYMBOL-TABLE takes no arguments")
	}
	return symbolTableList(c), nil
}

func builtinPrint(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(Print(v))), nil
}

func builtinPrins(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	return c.NewString([]byte(Prins(v))), nil
}

func builtinDocstring(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	b, ok := v.(*Builtin)
	if !ok || b.Doc == "" {
		return Nil, nil
	}
	return c.NewString([]byte(b.Doc)), nil
}

func builtinQuitLisp(c *Collector, env *Environment, args Value) (Value, *Error) {
	if !NilP(args) {
		return Nil, argumentsError("QUIT-LISP takes no arguments")
	}
	c.Quit = true
	return Nil, nil
}
