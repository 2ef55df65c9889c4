package lisp

// register interns name and binds a *Builtin wrapping fn directly into
// env — used only for populating the root environment at bootstrap.
func register(env *Environment, symtab *SymbolTable, name, doc string, fn BuiltinFunc) {
	sym := symtab.Intern(name)
	env.Set(sym, &Builtin{Name: name, Doc: doc, Fn: fn})
}

func setVar(env *Environment, symtab *SymbolTable, name string, v Value) {
	env.Set(symtab.Intern(name), v)
}

// Bootstrap populates c.Root with the ~80-entry builtin registry
// (spec.md §4.6) plus the tunable Lisp variables the original source
// sets in default_environment: T, WHILE-RECURSE-LIMIT, the two GC
// threshold counters, and the DEBUG/* diagnostic flags, all nil by
// default. Call this once per collector before evaluating anything.
func Bootstrap(c *Collector) {
	env := c.Root
	symtab := c.Symtab

	tSym := symtab.Intern("T")
	env.Set(tSym, tSym)

	setVar(env, symtab, "WHILE-RECURSE-LIMIT", Integer(10000))
	setVar(env, symtab, "GARBAGE-COLLECTOR-EVALUATION-ITERATIONS-THRESHOLD", Integer(100000))
	setVar(env, symtab, "GARBAGE-COLLECTOR-PAIR-ALLOCATIONS-THRESHOLD", Integer(290500))
	setVar(env, symtab, "REDISPLAY-IDLE-MS", Integer(16))

	for _, name := range []string{
		"DEBUG/ENVIRONMENT", "DEBUG/EVALUATE", "DEBUG/KEYBINDING",
		"DEBUG/MACRO", "DEBUG/MEMORY", "DEBUG/WHILE",
	} {
		setVar(env, symtab, name, Nil)
	}

	registerCoreBuiltins(env, symtab)
	registerNumericBuiltins(env, symtab)
	registerStringBuiltins(env, symtab)
	registerEvalBuiltins(env, symtab)
	registerBufferBuiltins(env, symtab)
	registerIOBuiltins(env, symtab)
}
