// Package keymap implements the input-to-action pipeline of spec.md
// §4.8: a modifier-aware keymap traversal that turns a keystring plus
// the currently-held modifier keys into a built-in action, a
// self-insert, a rebinding, or an evaluated Lisp expression. Grounded
// on original_source/src/api.c's handle_character_dn_modifiers and
// handle_keydown, restated as the cleaner, uniformly-reset algorithm
// spec.md §4.8 describes (see DESIGN.md for where this departs from
// the original's inconsistent reset timing).
package keymap

import (
	"fmt"
	"strings"

	"github.com/inkwell-editor/inkwell/internal/debug"
	"github.com/inkwell-editor/inkwell/lisp"
)

// RecursionLimit bounds the per-key rebinding loop. Rebinding steps
// taken while resolving modifiers add to the same counter, but the
// modifier-resolution loop does not check the limit itself.
const RecursionLimit = 256

// ignoredBytes mirrors original_source/src/api.c's
// `strpbrk(keystring, "\e\f\v")`: a keystring containing any of these
// bytes is dropped before traversal, per spec.md §4.8.
const ignoredBytes = "\x1b\x0c\x0b"

// Pipeline holds the interned symbols the traversal reads and writes
// in the collector's root environment: KEYMAP (root), CURRENT-KEYMAP,
// CURRENT-BUFFER, and FOOTLINE. It carries no other state — the
// modifier bitset is the caller's (editor.State's) to own and pass by
// value into HandleKeyDown, since "the modifier up/down handlers only
// update the bitset" independently of any single keydown dispatch.
type Pipeline struct {
	c *lisp.Collector

	symKeymap        *lisp.Symbol
	symCurrentKeymap *lisp.Symbol
	symCurrentBuffer *lisp.Symbol
	symFootline      *lisp.Symbol
	symIgnore        *lisp.Symbol
	symSelfInsert    *lisp.Symbol
}

// NewPipeline returns a Pipeline driving c's root environment.
func NewPipeline(c *lisp.Collector) *Pipeline {
	t := c.Symtab
	return &Pipeline{
		c:                c,
		symKeymap:        t.Intern("KEYMAP"),
		symCurrentKeymap: t.Intern("CURRENT-KEYMAP"),
		symCurrentBuffer: t.Intern("CURRENT-BUFFER"),
		symFootline:      t.Intern("FOOTLINE"),
		symIgnore:        t.Intern("IGNORE"),
		symSelfInsert:    t.Intern("SELF-INSERT"),
	}
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.c.Root.NonNil(p.c.Symtab.Intern("DEBUG/KEYBINDING")) {
		debug.Logf("keybinding", format, args...)
	}
}

func (p *Pipeline) setFootline(msg string) {
	p.c.Root.Set(p.symFootline, p.c.NewString([]byte(msg)))
}

// setFootlineUndefined reports keystr as unbound in alist, appending a
// suggestion engine "did you mean" hint (spec.md §7's optional
// suggestion mechanism, applied here to an unrecognized keystring
// rather than a NotBound symbol) when one of alist's bound keys is
// close enough by Jaro-Winkler distance.
func (p *Pipeline) setFootlineUndefined(keystr string, alist lisp.Value) {
	msg := "Undefined keybinding!"
	if suggestion := lisp.Suggest(keystr, AlistKeys(alist)); suggestion != "" {
		msg = fmt.Sprintf("Undefined keybinding! (did you mean %q?)", suggestion)
	}
	p.setFootline(msg)
}

// HandleKeyDown runs the full algorithm of spec.md §4.8 for one
// keystring, given the modifiers currently held.
func (p *Pipeline) HandleKeyDown(keystr string, mods Set) {
	if keystr == "" || strings.ContainsAny(keystr, ignoredBytes) {
		return
	}
	env := p.c.Root
	p.debugf("keydown: %q", keystr)

	rootKeymap, _ := env.Get(p.symKeymap)
	currentKeymap, ok := env.Get(p.symCurrentKeymap)
	if !ok || lisp.NilP(currentKeymap) {
		currentKeymap = rootKeymap
	}

	bufVal, _ := env.Get(p.c.ReadSymbol(p.symCurrentBuffer))
	buf, ok := bufVal.(*lisp.Buffer)
	if !ok {
		return
	}

	recursion := 0
	currentKeymap, ok = p.resolveModifiers(currentKeymap, mods, &recursion)
	env.Set(p.symCurrentKeymap, currentKeymap)
	if !ok {
		return
	}

	nestedPending := false
	exhausted := false
	for keystr != "" {
		if recursion >= RecursionLimit {
			exhausted = true
			break
		}
		currentKeymap, _ = env.Get(p.symCurrentKeymap)
		keybind := AlistGet(currentKeymap, keystr)
		p.debugf("current keymap %s, key %q -> %s", lisp.Print(currentKeymap), keystr, lisp.Print(keybind))

		switch {
		case AlistP(keybind):
			env.Set(p.symCurrentKeymap, keybind)
			nestedPending = true
			keystr = ""

		case lisp.NilP(keybind):
			if sameAlist(currentKeymap, rootKeymap) {
				p.insert(buf, keystr)
				keystr = ""
				continue
			}
			env.Set(p.symCurrentKeymap, rootKeymap)
			recursion++

		case isSymbol(keybind, p.symIgnore):
			keystr = ""

		case isSymbol(keybind, p.symSelfInsert):
			p.insert(buf, keystr)
			keystr = ""

		default:
			if s, ok := keybind.(*lisp.String); ok {
				keystr = string(s.Bytes)
				recursion++
				continue
			}
			result, everr := lisp.EvalTopLevel(p.c, env, keybind)
			if everr != nil {
				p.setFootline(everr.Error())
				env.Set(p.symCurrentKeymap, rootKeymap)
			} else {
				p.setFootline(lisp.Prins(result))
			}
			keystr = ""
		}
	}

	if exhausted {
		p.setFootline("Keybinding recursion limit exceeded")
		env.Set(p.symCurrentKeymap, rootKeymap)
		return
	}
	if !nestedPending {
		env.Set(p.symCurrentKeymap, rootKeymap)
	}
}

func (p *Pipeline) insert(buf *lisp.Buffer, s string) {
	if err := buf.Buf.Insert([]byte(s)); err != nil {
		p.setFootline(err.Error())
	}
}

func isSymbol(v lisp.Value, sym *lisp.Symbol) bool {
	s, ok := v.(*lisp.Symbol)
	return ok && s == sym
}

// resolveModifiers implements spec.md §4.8 step 1: for each held
// modifier, resolve at most one string-rebinding indirection and
// descend into a nested keymap, or report "Undefined keybinding!" and
// signal discard (ok=false) — except for Shift, whose absence is
// silently tolerated.
func (p *Pipeline) resolveModifiers(currentKeymap lisp.Value, mods Set, recursion *int) (lisp.Value, bool) {
	for _, k := range modifierOrder {
		if !mods.Held(k) {
			continue
		}
		bound := AlistGet(currentKeymap, alistKeyName[k])
		if s, ok := bound.(*lisp.String); ok {
			bound = AlistGet(currentKeymap, string(s.Bytes))
			*recursion++
		}
		if AlistP(bound) {
			currentKeymap = bound
			continue
		}
		if optional(k) {
			continue
		}
		p.setFootlineUndefined(alistKeyName[k], currentKeymap)
		return currentKeymap, false
	}
	return currentKeymap, true
}

// HandleKeyUp is delivered symmetrically to HandleKeyDown (spec.md
// §6) but the traversal algorithm only fires on keydown, matching
// original_source/src/api.c (which never defines a handle_keyup).
func (p *Pipeline) HandleKeyUp(keystr string, mods Set) {}

// HandleModifierDown updates mods only — it must never traverse the
// keymap, per spec.md §4.8.
func (p *Pipeline) HandleModifierDown(mods *Set, k Key) { mods.Down(k) }

// HandleModifierUp updates mods only.
func (p *Pipeline) HandleModifierUp(mods *Set, k Key) { mods.Up(k) }
