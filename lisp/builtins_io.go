package lisp

// registerIOBuiltins binds the OTHER-section builtins that cross into
// the graphical front end: clipboard, window/font geometry, and
// scrolling. The graphical backend itself is out of scope here, so
// every one of those reports ErrTODO rather than silently doing
// nothing — a caller depending on display plumbing should see a clear
// signal, not success that changed nothing. READ-PROMPTED and
// FINISH-READ are the exception: entering and leaving prompt mode is a
// property of the Collector's reading-mode substitution (spec.md §9),
// not the graphical backend, so they are implemented for real below.
func registerIOBuiltins(env *Environment, symtab *SymbolTable) {
	stubs := []struct {
		name string
		doc  string
	}{
		{"CLIPBOARD-CUT", "Cut the active region to the system clipboard."},
		{"CLIPBOARD-COPY", "Copy the active region to the system clipboard."},
		{"CLIPBOARD-PASTE", "Insert the system clipboard's contents at point."},
		{"CHANGE-FONT", "Change the display font."},
		{"CHANGE-FONT-SIZE", "Change the display font size."},
		{"WINDOW-SIZE", "Return the current window size in pixels."},
		{"CHANGE-WINDOW-SIZE", "Resize the window."},
		{"CHANGE-WINDOW-MODE", "Switch the window between windowed and fullscreen."},
		{"SCROLL-UP", "Scroll the active view up."},
		{"SCROLL-DOWN", "Scroll the active view down."},
		{"SCROLL-LEFT", "Scroll the active view left."},
		{"SCROLL-RIGHT", "Scroll the active view right."},
		{"SET-CARRIAGE-RETURN-CHARACTER", "Set the character inserted for a carriage return."},
	}
	for _, s := range stubs {
		register(env, symtab, s.name, s.doc, notImplementedStub(s.name))
	}

	register(env, symtab, "READ-PROMPTED",
		"Start a prompted minibuffer read: bind POPUP-BUFFER to a fresh buffer and redirect CURRENT-BUFFER reads to it until FINISH-READ.",
		builtinReadPrompted)
	register(env, symtab, "FINISH-READ",
		"Complete a prompted minibuffer read, restoring CURRENT-BUFFER reads to the editing buffer.",
		builtinFinishRead)
}

func notImplementedStub(name string) BuiltinFunc {
	return func(c *Collector, env *Environment, args Value) (Value, *Error) {
		return Nil, newError(ErrTODO, Nil, name+" requires a graphical front end")
	}
}

// builtinReadPrompted is the Lisp-facing entry point for
// Collector.StartReading.
func builtinReadPrompted(c *Collector, env *Environment, args Value) (Value, *Error) {
	if !NilP(args) {
		return Nil, argumentsError("READ-PROMPTED takes no arguments")
	}
	return c.StartReading(), nil
}

// builtinFinishRead is the Lisp-facing entry point for
// Collector.StopReading.
func builtinFinishRead(c *Collector, env *Environment, args Value) (Value, *Error) {
	if !NilP(args) {
		return Nil, argumentsError("FINISH-READ takes no arguments")
	}
	c.StopReading()
	return Nil, nil
}
