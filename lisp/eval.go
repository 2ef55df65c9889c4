package lisp

import "github.com/inkwell-editor/inkwell/internal/debug"

// Eval implements eval(expr, env) → value from spec.md §4.5: symbols
// look themselves up, non-pair/non-symbol values self-evaluate, and
// pairs dispatch either to one of the special forms (QUOTE, DEFINE,
// LAMBDA, IF, WHILE, SYM) or to ordinary application. Grounded on
// original_source/src/evaluation.c's evaluate_expr, including its
// per-entry evaluation-count bump that ultimately triggers the
// collector.
func Eval(c *Collector, env *Environment, expr Value) (Value, *Error) {
	c.EnterEval()
	if NilP(expr) {
		return Nil, nil
	}
	switch t := expr.(type) {
	case *Symbol:
		sym := c.ReadSymbol(t)
		v, ok := env.Get(sym)
		if !ok {
			return Nil, notBoundError(c, sym)
		}
		return v, nil
	case *Pair:
		return evalPair(c, env, t)
	default:
		// Integer, *String, *Builtin, *Closure, *Macro, *Environment,
		// *Buffer are all self-evaluating.
		return expr, nil
	}
}

// EvalTopLevel is the entry point for one independent evaluation —
// once per startup form, per `evaluate-string`/`evaluate-file` form,
// and per keymap-bound expression. It is the only place a collection is
// allowed to run to completion, per spec.md §5's safe-point rule.
func EvalTopLevel(c *Collector, env *Environment, expr Value) (Value, *Error) {
	result, err := Eval(c, env, expr)
	c.SafePoint()
	return result, err
}

func notBoundError(c *Collector, sym *Symbol) *Error {
	e := newError(ErrNotBound, sym, "symbol not bound in any environment: "+sym.Name)
	e.Suggestion = SuggestSymbol(c.Symtab, sym.Name)
	return e
}

func evalPair(c *Collector, env *Environment, p *Pair) (Value, *Error) {
	if sym, ok := p.Car.(*Symbol); ok {
		switch sym.Name {
		case "QUOTE":
			args := ListToSlice(p.Cdr)
			if len(args) != 1 {
				return Nil, argumentsError("QUOTE takes exactly one argument")
			}
			return args[0], nil
		case "DEFINE":
			target, ok := Car(p.Cdr).(*Symbol)
			if !ok {
				return Nil, typeError(Car(p.Cdr), "DEFINE requires a symbol as its first argument")
			}
			val, err := Eval(c, env, Car(Cdr(p.Cdr)))
			if err != nil {
				return Nil, err
			}
			env.Set(target, val)
			return target, nil
		case "LAMBDA":
			params := Car(p.Cdr)
			body := Cdr(p.Cdr)
			return c.NewClosure(env, params, body), nil
		case "IF":
			rest := p.Cdr
			cond, err := Eval(c, env, Car(rest))
			if err != nil {
				return Nil, err
			}
			if NilP(cond) {
				return Eval(c, env, Car(Cdr(Cdr(rest))))
			}
			return Eval(c, env, Car(Cdr(rest)))
		case "WHILE":
			return evalWhile(c, env, p.Cdr)
		case "SYM":
			return symbolTableList(c), nil
		}
	}

	opVal, err := Eval(c, env, p.Car)
	if err != nil {
		return Nil, err
	}

	if macro, ok := opVal.(*Macro); ok {
		expansion, err := applyClosureLike(c, macro.Env, macro.Params, macro.Body, p.Cdr)
		if err != nil {
			return Nil, err
		}
		return Eval(c, env, expansion)
	}

	mark := c.PinMark()
	c.Pin(p.Cdr)
	argVals, err := evalList(c, env, p.Cdr)
	if err != nil {
		c.UnpinTo(mark)
		return Nil, err
	}
	c.Pin(argVals)
	result, aerr := Apply(c, opVal, argVals)
	c.UnpinTo(mark)
	return result, aerr
}

// evalWhile implements `(WHILE cond body...)` from spec.md §4.5:
// re-evaluate cond each pass, evaluating body in order while cond is
// non-nil, returning the last body value (or Nil if the loop never
// ran). Bounded by the user-tunable WHILE-RECURSE-LIMIT Lisp variable
// (spec.md §5: "Runaway Lisp programs are bounded only by
// WHILE-RECURSE-LIMIT (for WHILE) and the 256-step keybind recursion
// bound") so a runaway loop is a reportable error, not a hang.
func evalWhile(c *Collector, env *Environment, rest Value) (Value, *Error) {
	cond := Car(rest)
	body := ListToSlice(Cdr(rest))
	limit := c.intVarOr("WHILE-RECURSE-LIMIT", 10000)
	debugOn := c.Root.NonNil(c.Symtab.Intern("DEBUG/WHILE"))

	var result Value = Nil
	var iterations int64
	for {
		cv, err := Eval(c, env, cond)
		if err != nil {
			return Nil, err
		}
		if NilP(cv) {
			return result, nil
		}
		if iterations >= limit {
			return Nil, newError(ErrGeneric, rest, "WHILE exceeded WHILE-RECURSE-LIMIT")
		}
		iterations++
		if debugOn {
			debug.Logf("while", "iteration %d, cond %s", iterations, Print(cond))
		}
		for _, form := range body {
			v, err := Eval(c, env, form)
			if err != nil {
				return Nil, err
			}
			result = v
		}
	}
}

// evalList evaluates each element of list left-to-right, pinning every
// already-evaluated result as it's produced. Without this, a result
// from an earlier argument (e.g. the fresh Pair from `(CONS 1 2)`) is
// reachable only from a local Go slice — invisible to the collector —
// while a later argument's evaluation runs arbitrary code that can
// reach a GC safe point (spec.md §4.7: "the currently-building argument
// list during a builtin call must be reachable from a root before the
// collector can run").
func evalList(c *Collector, env *Environment, list Value) (Value, *Error) {
	elems := ListToSlice(list)
	results := make([]Value, 0, len(elems))
	for _, e := range elems {
		v, err := Eval(c, env, e)
		if err != nil {
			return Nil, err
		}
		c.Pin(v)
		results = append(results, v)
	}
	var out Value = Nil
	for i := len(results) - 1; i >= 0; i-- {
		out = c.NewPair(results[i], out)
	}
	return out, nil
}

// Apply implements apply(f, args) from spec.md §4.5: args here are
// already-evaluated values. Builtins are called directly; closures get
// a fresh environment with parameters bound (a trailing bare symbol
// captures the remainder as a proper list); anything else is a type
// error.
func Apply(c *Collector, f Value, args Value) (Value, *Error) {
	switch t := f.(type) {
	case *Builtin:
		result, err := t.Fn(c, c.Root, args)
		c.SafePoint()
		return result, err
	case *Closure:
		result, err := applyClosureLike(c, t.Env, t.Params, t.Body, args)
		c.SafePoint()
		return result, err
	default:
		return Nil, typeError(f, "cannot apply a non-function value")
	}
}

func applyClosureLike(c *Collector, capturedEnv *Environment, params, body, args Value) (Value, *Error) {
	child := c.NewChildEnvironment(capturedEnv)
	if err := bindParams(child, params, args); err != nil {
		return Nil, err
	}
	var result Value = Nil
	for _, form := range ListToSlice(body) {
		v, err := Eval(c, child, form)
		if err != nil {
			return Nil, err
		}
		result = v
	}
	return result, nil
}

// bindParams binds params (a proper, possibly dotted-tail, list of
// formal parameter symbols — or a single bare symbol to collect every
// argument) against an already-evaluated args list.
func bindParams(env *Environment, params, args Value) *Error {
	cur := params
	rest := args
	for {
		switch t := cur.(type) {
		case *Symbol:
			env.Set(t, rest)
			return nil
		case *Pair:
			formal, ok := t.Car.(*Symbol)
			if !ok {
				return typeError(t.Car, "lambda parameter must be a symbol")
			}
			argPair, ok := rest.(*Pair)
			if !ok {
				return argumentsError("too few arguments for closure")
			}
			env.Set(formal, argPair.Car)
			rest = argPair.Cdr
			cur = t.Cdr
		default:
			if !NilP(rest) {
				return argumentsError("too many arguments for closure")
			}
			return nil
		}
	}
}

func symbolTableList(c *Collector) Value {
	names := c.Symtab.Names()
	var out Value = Nil
	for i := len(names) - 1; i >= 0; i-- {
		out = c.NewPair(c.Symtab.Intern(names[i]), out)
	}
	return out
}

// Eq implements typed structural equality for the `eq` builtin: same
// Kind, then pointer identity for every heap variant, structural
// equality for Integer, and singleton identity for Nil.
func Eq(a, b Value) bool {
	if NilP(a) && NilP(b) {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Integer:
		bv := b.(Integer)
		return av == bv
	case *Symbol:
		return av == b.(*Symbol)
	case *Pair:
		return av == b.(*Pair)
	case *String:
		return av == b.(*String)
	case *Builtin:
		return av == b.(*Builtin)
	case *Closure:
		return av == b.(*Closure)
	case *Macro:
		return av == b.(*Macro)
	case *Environment:
		return av == b.(*Environment)
	case *Buffer:
		return av == b.(*Buffer)
	default:
		return false
	}
}
