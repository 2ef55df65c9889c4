package keymap

import "strconv"

// Well-known keystrings, grounded byte-for-byte on
// original_source/src/keystrings.h's LITE_KEYSTRING_* constants. A
// Lisp keymap binds these exact strings as alist keys; the input
// pipeline never special-cases them beyond the modifier-rebinding
// keys declared in pipeline.go.
const (
	KeyReturn     = "<return>"
	KeyBackspace  = "<backspace>"
	KeyTab        = "<tab>"
	KeyCapsLock   = "<capslock>"
	KeyEscape     = "<escape>"
	KeyInsert     = "<insert>"
	KeyDelete     = "<delete>"
	KeyHome       = "<home>"
	KeyEnd        = "<end>"
	KeyPageUp     = "<page-up>"
	KeyPageDown   = "<page-down>"
	KeyLeftArrow  = "<left-arrow>"
	KeyRightArrow = "<right-arrow>"
	KeyUpArrow    = "<up-arrow>"
	KeyDownArrow  = "<down-arrow>"
	KeyScrollLock  = "<scroll-lock>"
	KeyPause       = "<pause>"
	KeyPrintScreen = "<print-screen>"
)

// KeyFunction returns the keystring for function key n (1-24), per
// keystrings.h's LITE_KEYSTRING_F1..F24.
func KeyFunction(n int) string {
	return "<f" + strconv.Itoa(n) + ">"
}

// KeyNumpadDigit returns the keystring for numpad digit d (0-9).
func KeyNumpadDigit(d int) string {
	return "<numpad:" + strconv.Itoa(d) + ">"
}
