// Package editor assembles the process-wide singletons spec.md §9
// calls for into a single "editor state" value: the symbol table, the
// root environment (together, a *lisp.Collector), the buffer table,
// the modifier bitset, and the display sink/event source pair. It is
// constructed once at the entry point and threaded through the rest of
// the program, replacing the global mutable state the original C
// source uses.
package editor

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/inkwell-editor/inkwell/buffer"
	"github.com/inkwell-editor/inkwell/display"
	"github.com/inkwell-editor/inkwell/fileio"
	"github.com/inkwell-editor/inkwell/internal/debug"
	"github.com/inkwell-editor/inkwell/keymap"
	"github.com/inkwell-editor/inkwell/lisp"
	"github.com/inkwell-editor/inkwell/syntax"
)

// State is the editor's single root value. Zero value is not usable;
// construct with New.
type State struct {
	Collector *lisp.Collector
	Pipeline  *keymap.Pipeline
	Syntax    *syntax.Registry

	Sink   display.Sink
	Source display.EventSource

	mods keymap.Set
}

// New builds a fully bootstrapped editor state. sink and source default
// to display.NullSink{}/display.NullSource{} when nil, so a headless
// caller (cmd/inkwell's default wiring) never needs its own no-op types.
func New(sink display.Sink, source display.EventSource) *State {
	symtab := lisp.NewSymbolTable()
	c := lisp.NewCollector(symtab)
	lisp.Bootstrap(c)

	c.Buffers = buffer.NewTable()

	s := &State{
		Collector: c,
		Syntax:    syntax.NewRegistry(),
		Sink:      sink,
		Source:    source,
	}
	if s.Sink == nil {
		s.Sink = display.NullSink{}
	}
	if s.Source == nil {
		s.Source = display.NullSource{}
	}
	s.Pipeline = keymap.NewPipeline(c)

	c.ExtraRoots = s.extraRoots
	return s
}

// extraRoots supplies the GC roots this package owns: the environment
// slot of every open buffer in the collector's buffer table that has
// one, reachable independently of whether any other environment still
// references it. (The popup-buffer handle is a Collector-owned root,
// marked directly by Collect.)
func (s *State) extraRoots() []lisp.Value {
	if s.Collector.Buffers == nil {
		return nil
	}
	var roots []lisp.Value
	for _, path := range s.Collector.Buffers.Paths() {
		buf, ok := s.Collector.Buffers.Get(path)
		if !ok {
			continue
		}
		if env, ok := buf.Env.(*lisp.Environment); ok {
			roots = append(roots, env)
		}
	}
	return roots
}

// StartPrompt enters popup/prompt mode (spec.md §3's GUI context
// "reading" flag) via Collector.StartReading, so every subsequent read
// of CURRENT-BUFFER — by keymap dispatch, self-insert, or evaluated
// Lisp — resolves to the popup buffer until FinishPrompt. This is the
// same operation the READ-PROMPTED builtin performs from Lisp.
func (s *State) StartPrompt() *lisp.Buffer {
	return s.Collector.StartReading()
}

// FinishPrompt leaves popup/prompt mode via Collector.StopReading, the
// same operation the FINISH-READ builtin performs from Lisp.
func (s *State) FinishPrompt() {
	s.Collector.StopReading()
}

// Reading reports whether the editor is currently in popup/prompt mode.
func (s *State) Reading() bool { return s.Collector.Reading }

// OpenFile opens (or fetches) the buffer backing path, wraps it as a
// lisp.Buffer, makes it CURRENT-BUFFER, and returns it.
func (s *State) OpenFile(path string) (*lisp.Buffer, error) {
	raw, err := s.Collector.Buffers.Open(path)
	if err != nil {
		return nil, err
	}
	wrapped := s.Collector.NewBuffer(raw)
	s.Collector.Root.Set(s.Collector.Symtab.Intern("CURRENT-BUFFER"), wrapped)
	return wrapped, nil
}

// EvaluateConfigDir evaluates every *.lisp file in dir, in lexical
// filename order, via EvalTopLevel — the startup behavior SPEC_FULL.md
// §4.10 describes for cmd/inkwell. A missing directory is not an error;
// an empty config is a valid, if minimal, editor.
func (s *State) EvaluateConfigDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lisp"))
	if err != nil {
		return err
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := s.evaluateFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) evaluateFile(path string) error {
	src, err := fileio.ReadWholeFile(path)
	if err != nil {
		return err
	}
	forms, perr := lisp.ParseAll(src, s.Collector.Symtab, s.Collector)
	if perr != nil {
		return perr
	}
	for _, form := range forms {
		if _, everr := lisp.EvalTopLevel(s.Collector, s.Collector.Root, form); everr != nil {
			return everr
		}
		if s.Collector.Quit {
			return nil
		}
	}
	return nil
}

// SetDebugKeybinding toggles the DEBUG/KEYBINDING Lisp variable, mapped
// from cmd/inkwell's -debug-keybinding flag.
func (s *State) SetDebugKeybinding(on bool) {
	s.setDebugVar("DEBUG/KEYBINDING", "keybinding", on)
}

// SetDebugEvaluate toggles the DEBUG/EVALUATE Lisp variable, mapped
// from cmd/inkwell's -debug-evaluate flag.
func (s *State) SetDebugEvaluate(on bool) {
	s.setDebugVar("DEBUG/EVALUATE", "evaluate", on)
}

func (s *State) setDebugVar(lispVar, debugTag string, on bool) {
	var v lisp.Value = lisp.Nil
	if on {
		v = s.Collector.Symtab.Intern("T")
	}
	debug.SetEnabled(debugTag, on)
	s.Collector.Root.Set(s.Collector.Symtab.Intern(lispVar), v)
}

// HandleEvent dispatches one display.Event to the keymap pipeline or
// the modifier bitset, per spec.md §4.8.
func (s *State) HandleEvent(ev display.Event) {
	switch ev.Kind {
	case display.EventKeyDown:
		s.Pipeline.HandleKeyDown(ev.Keystring, s.mods)
	case display.EventKeyUp:
		s.Pipeline.HandleKeyUp(ev.Keystring, s.mods)
	case display.EventModifierDown:
		s.Pipeline.HandleModifierDown(&s.mods, toKeymapKey(ev.Modifier))
	case display.EventModifierUp:
		s.Pipeline.HandleModifierUp(&s.mods, toKeymapKey(ev.Modifier))
	}
}

func toKeymapKey(k display.ModifierKey) keymap.Key { return keymap.Key(k) }

// Run drives the draw → wait-for-event → handle-event → draw cycle
// spec.md §5 describes until the event source reports ok=false or a
// Lisp QUIT-LISP call sets Collector.Quit. REDISPLAY-IDLE-MS, if bound
// to an Integer, sleeps between frames.
func (s *State) Run() error {
	for {
		snap := s.Snapshot()
		if err := s.Sink.Draw(snap); err != nil {
			return err
		}
		if s.Collector.Quit {
			return nil
		}
		ev, ok := s.Source.WaitEvent()
		if !ok {
			return nil
		}
		s.HandleEvent(ev)
		s.idle()
	}
}

func (s *State) idle() {
	ms := s.Collector.Root
	v, ok := ms.Get(s.Collector.Symtab.Intern("REDISPLAY-IDLE-MS"))
	if !ok {
		return
	}
	n, ok := v.(lisp.Integer)
	if !ok || n <= 0 {
		return
	}
	time.Sleep(time.Duration(n) * time.Millisecond)
}

// Snapshot renders the current GUI context into a display.Snapshot,
// per spec.md §3's "{title?, headline, contents, footline, popup?,
// reading, default_fg, default_bg}", annotating contents with whatever
// syntax.Provider is registered for the current buffer's language.
func (s *State) Snapshot() display.Snapshot {
	env := s.Collector.Root
	symtab := s.Collector.Symtab

	footline := s.stringVar(symtab.Intern("FOOTLINE"))

	var contents display.AnnotatedString
	bufVal, _ := env.Get(s.Collector.ReadSymbol(symtab.Intern("CURRENT-BUFFER")))
	if buf, ok := bufVal.(*lisp.Buffer); ok {
		text := []byte(buf.Buf.String())
		contents = display.AnnotatedString{Text: text}
		var syntaxSpans []display.PropertySpan
		if lang, ok := s.languageOf(buf); ok {
			if spans, found, err := s.Syntax.Annotate(lang, text); err == nil && found {
				syntaxSpans = spans
			}
		}
		cursor := display.PropertySpan{Offset: buf.Buf.Point(), Length: 1, ID: display.PropertyCursor}
		contents.Spans = mergeSpans(cursor, syntaxSpans)
	}

	var popup *display.AnnotatedString
	if s.Collector.Reading && s.Collector.PopupBuffer != nil {
		popup = &display.AnnotatedString{Text: []byte(s.Collector.PopupBuffer.Buf.String())}
	}

	return display.Snapshot{
		Headline: display.AnnotatedString{},
		Contents: contents,
		Footline: display.AnnotatedString{Text: []byte(footline)},
		Popup:    popup,
		Reading:  s.Collector.Reading,
	}
}

// mergeSpans combines the user-assigned cursor span with syntax's
// spans, per SPEC_FULL §4.8: user-assigned spans take priority on
// overlap, so any syntax span overlapping cursor is clipped or dropped
// rather than drawn over it.
func mergeSpans(cursor display.PropertySpan, syntaxSpans []display.PropertySpan) []display.PropertySpan {
	spans := make([]display.PropertySpan, 0, len(syntaxSpans)+1)
	cEnd := cursor.Offset + cursor.Length
	for _, sp := range syntaxSpans {
		spEnd := sp.Offset + sp.Length
		if sp.Offset < cEnd && cursor.Offset < spEnd {
			if sp.Offset < cursor.Offset {
				spans = append(spans, display.PropertySpan{Offset: sp.Offset, Length: cursor.Offset - sp.Offset, FG: sp.FG, BG: sp.BG, ID: sp.ID})
			}
			if spEnd > cEnd {
				spans = append(spans, display.PropertySpan{Offset: cEnd, Length: spEnd - cEnd, FG: sp.FG, BG: sp.BG, ID: sp.ID})
			}
			continue
		}
		spans = append(spans, sp)
	}
	spans = append(spans, cursor)
	return spans
}

func (s *State) stringVar(sym *lisp.Symbol) string {
	v, ok := s.Collector.Root.Get(sym)
	if !ok {
		return ""
	}
	str, ok := v.(*lisp.String)
	if !ok {
		return ""
	}
	return string(str.Bytes)
}

// languageOf maps a buffer's file extension to a syntax.Provider
// language name. Only ".zig" is recognized, matching the one
// demonstration provider syntax/treesitter ships.
func (s *State) languageOf(buf *lisp.Buffer) (string, bool) {
	path, ok := buf.Buf.Path()
	if !ok {
		return "", false
	}
	if filepath.Ext(path) == ".zig" {
		return "zig", true
	}
	return "", false
}
