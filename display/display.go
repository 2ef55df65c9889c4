// Package display is the pure-data boundary to the graphical backend
// (spec.md §1 Non-goals, §6 External Interfaces): the core never
// imports a graphics toolkit, it only produces Snapshot values for a
// Sink to draw and consumes Events from an EventSource. Shaped as Go
// interfaces the way clarete-langlang/go/vm.go's Input interface
// abstracts over a byte source, per DESIGN.md.
package display

// PropertyID tags a PropertySpan's purpose, per spec.md §3's
// "id ∈ {DEFAULT, CURSOR, REGION, USER+n}".
type PropertyID int

const (
	PropertyDefault PropertyID = iota
	PropertyCursor
	PropertyRegion
	// PropertyUserBase is the first id a caller-assigned span (e.g. a
	// syntax.Provider's token class) may use; USER+n is PropertyUserBase+n.
	PropertyUserBase PropertyID = 16
)

// Color is an RGBA color, per spec.md §6 ("Colors are RGBA bytes").
type Color struct {
	R, G, B, A uint8
}

// PropertySpan annotates [Offset, Offset+Length) of an AnnotatedString
// with foreground/background colors, per spec.md §3.
type PropertySpan struct {
	Offset int
	Length int
	FG     Color
	BG     Color
	ID     PropertyID
}

// AnnotatedString is a byte string plus an ordered list of property
// spans, per spec.md §3/§6.
type AnnotatedString struct {
	Text  []byte
	Spans []PropertySpan
}

// Snapshot is the per-frame display state the core emits, per spec.md
// §6: "{title?, headline, contents, footline, popup?, reading,
// default_fg, default_bg}".
type Snapshot struct {
	Title    *AnnotatedString
	Headline AnnotatedString
	Contents AnnotatedString
	Footline AnnotatedString
	Popup    *AnnotatedString

	// Reading selects whether keystrokes target Contents (false,
	// normal editing) or Popup (true, prompt mode) — spec.md §3's
	// "GUI context" reading flag.
	Reading bool

	DefaultFG Color
	DefaultBG Color
}

// Sink receives a Snapshot once per frame and is responsible for
// rasterizing it. The core's main loop calls Draw, then waits on its
// EventSource, per spec.md §5's draw → wait-for-event → handle-event
// → draw cycle.
type Sink interface {
	Draw(Snapshot) error
}

// EventKind tags the three event shapes spec.md §6 says the backend
// delivers.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventModifierDown
	EventModifierUp
)

// Event is one delivery from an EventSource. For EventKeyDown/KeyUp,
// Keystring holds the textual key identifier (e.g. "<return>" or a
// printable UTF-8 byte sequence); for EventModifierDown/Up, Modifier
// holds the held key. The zero value of the field not relevant to Kind
// is unused.
type Event struct {
	Kind      EventKind
	Keystring string
	Modifier  ModifierKey
}

// ModifierKey enumerates the closed set of modifier keys spec.md §3
// tracks in the 64-bit bitset.
type ModifierKey int

const (
	LeftControl ModifierKey = iota
	RightControl
	LeftAlt
	RightAlt
	LeftShift
	RightShift
	LeftSuper
	RightSuper
)

// EventSource delivers the next input event, blocking until one is
// available. WaitEvent returns ok=false when the source has been
// closed (e.g. the window was closed), which ends the core's main
// loop.
type EventSource interface {
	WaitEvent() (Event, bool)
}

// NullSink discards every Snapshot. It backs cmd/inkwell's default
// smoke-testable wiring (spec.md §4.10), since no real graphics
// backend ships with this module.
type NullSink struct{}

func (NullSink) Draw(Snapshot) error { return nil }

// NullSource never produces an event; WaitEvent reports ok=false
// immediately, which is enough to let a headless main loop exit
// cleanly on its first iteration.
type NullSource struct{}

func (NullSource) WaitEvent() (Event, bool) { return Event{}, false }
