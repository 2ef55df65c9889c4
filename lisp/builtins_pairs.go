package lisp

// registerCoreBuiltins binds the pair/list, type-predicate, and logical
// builtins, grounded on original_source/src/builtins.c (car/cdr/cons/
// eq shown in full) and the declaration roster in builtins.h's TYPES/
// PAIRS/LISTS/LOGICAL sections.
func registerCoreBuiltins(env *Environment, symtab *SymbolTable) {
	register(env, symtab, "CONS", "Allocate a new pair (car . cdr).", builtinCons)
	register(env, symtab, "CAR", "Return the first element of a pair, or NIL.", builtinCar)
	register(env, symtab, "CDR", "Return the second element of a pair, or NIL.", builtinCdr)
	register(env, symtab, "SETCAR", "Destructively set a pair's car.", builtinSetcar)
	register(env, symtab, "SETCDR", "Destructively set a pair's cdr.", builtinSetcdr)
	register(env, symtab, "MEMBER", "Return the sublist of a list starting at the first element EQ to an item, or NIL.", builtinMember)
	register(env, symtab, "LENGTH", "Return the number of elements in a proper list.", builtinLength)

	register(env, symtab, "NILP", "T if the argument is NIL.", predicate(func(v Value) bool { return NilP(v) }))
	register(env, symtab, "PAIRP", "T if the argument is a pair.", predicate(func(v Value) bool { _, ok := v.(*Pair); return ok }))
	register(env, symtab, "SYMBOLP", "T if the argument is a symbol.", predicate(func(v Value) bool { _, ok := v.(*Symbol); return ok }))
	register(env, symtab, "INTEGERP", "T if the argument is an integer.", predicate(func(v Value) bool { _, ok := v.(Integer); return ok }))
	register(env, symtab, "BUILTINP", "T if the argument is a builtin function.", predicate(func(v Value) bool { _, ok := v.(*Builtin); return ok }))
	register(env, symtab, "CLOSUREP", "T if the argument is a closure.", predicate(func(v Value) bool { _, ok := v.(*Closure); return ok }))
	register(env, symtab, "MACROP", "T if the argument is a macro.", predicate(func(v Value) bool { _, ok := v.(*Macro); return ok }))
	register(env, symtab, "STRINGP", "T if the argument is a string.", predicate(func(v Value) bool { _, ok := v.(*String); return ok }))
	register(env, symtab, "BUFFERP", "T if the argument is a buffer.", predicate(func(v Value) bool { _, ok := v.(*Buffer); return ok }))
	register(env, symtab, "ENVP", "T if the argument is an environment.", predicate(func(v Value) bool { _, ok := v.(*Environment); return ok }))

	register(env, symtab, "NOT", "T if the argument is NIL, else NIL.", builtinNot)
	register(env, symtab, "EQ", "T if both arguments are the same value (typed structural equality).", builtinEq)
}

// predicate adapts a single-argument Go bool test into a BuiltinFunc.
func predicate(test func(Value) bool) BuiltinFunc {
	return func(c *Collector, env *Environment, args Value) (Value, *Error) {
		v, err := exactly1(args)
		if err != nil {
			return Nil, err
		}
		return boolValue(c, test(v)), nil
	}
}

func builtinCons(c *Collector, env *Environment, args Value) (Value, *Error) {
	a, b, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	return c.NewPair(a, b), nil
}

func builtinCar(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	if NilP(v) {
		return Nil, nil
	}
	p, ok := v.(*Pair)
	if !ok {
		return Nil, typeError(v, "CAR requires a pair or NIL")
	}
	return p.Car, nil
}

func builtinCdr(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	if NilP(v) {
		return Nil, nil
	}
	p, ok := v.(*Pair)
	if !ok {
		return Nil, typeError(v, "CDR requires a pair or NIL")
	}
	return p.Cdr, nil
}

func builtinSetcar(c *Collector, env *Environment, args Value) (Value, *Error) {
	target, val, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	p, ok := target.(*Pair)
	if !ok {
		return Nil, typeError(target, "SETCAR requires a pair")
	}
	p.Car = val
	return val, nil
}

func builtinSetcdr(c *Collector, env *Environment, args Value) (Value, *Error) {
	target, val, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	p, ok := target.(*Pair)
	if !ok {
		return Nil, typeError(target, "SETCDR requires a pair")
	}
	p.Cdr = val
	return val, nil
}

func builtinMember(c *Collector, env *Environment, args Value) (Value, *Error) {
	item, list, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	cur := list
	for {
		p, ok := cur.(*Pair)
		if !ok {
			return Nil, nil
		}
		if Eq(item, p.Car) {
			return p, nil
		}
		cur = p.Cdr
	}
}

func builtinLength(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	n := ListLength(v)
	if n < 0 {
		return Nil, typeError(v, "LENGTH requires a proper list")
	}
	return Integer(n), nil
}

func builtinNot(c *Collector, env *Environment, args Value) (Value, *Error) {
	v, err := exactly1(args)
	if err != nil {
		return Nil, err
	}
	return boolValue(c, NilP(v)), nil
}

func builtinEq(c *Collector, env *Environment, args Value) (Value, *Error) {
	a, b, err := exactly2(args)
	if err != nil {
		return Nil, err
	}
	return boolValue(c, Eq(a, b)), nil
}
