package lisp

import "github.com/inkwell-editor/inkwell/buffer"

func exactly1(args Value) (Value, *Error) {
	if NilP(args) || !NilP(Cdr(args)) {
		return nil, argumentsError("expected exactly 1 argument")
	}
	return Car(args), nil
}

func exactly2(args Value) (Value, Value, *Error) {
	if NilP(args) || NilP(Cdr(args)) || !NilP(Cdr(Cdr(args))) {
		return nil, nil, argumentsError("expected exactly 2 arguments")
	}
	return Car(args), Car(Cdr(args)), nil
}

func exactly3(args Value) (Value, Value, Value, *Error) {
	rest := Cdr(Cdr(args))
	if NilP(args) || NilP(Cdr(args)) || NilP(rest) || !NilP(Cdr(rest)) {
		return nil, nil, nil, argumentsError("expected exactly 3 arguments")
	}
	return Car(args), Car(Cdr(args)), Car(rest), nil
}

func asInteger(v Value) (int64, *Error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, typeError(v, "expected an integer")
	}
	return int64(i), nil
}

func asString(v Value) (*String, *Error) {
	s, ok := v.(*String)
	if !ok {
		return nil, typeError(v, "expected a string")
	}
	return s, nil
}

func asBuffer(v Value) (*buffer.Buffer, *Error) {
	b, ok := v.(*Buffer)
	if !ok {
		return nil, typeError(v, "expected a buffer")
	}
	return b.Buf, nil
}

// boolValue renders a Go bool as the canonical interned T symbol or
// Nil — it must go through c.Symtab so the result is pointer-equal to
// every other reference to T in the same collector's environment.
func boolValue(c *Collector, b bool) Value {
	if b {
		return c.Symtab.Intern("T")
	}
	return Nil
}
