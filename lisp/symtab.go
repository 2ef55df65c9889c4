package lisp

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SymbolTable is the process-wide interner: make_sym(name) returns the
// existing Symbol on a name match (byte-equality of the uppercased
// name), otherwise allocates and inserts one. All symbol comparisons
// elsewhere use pointer equality against the values this table hands
// out.
//
// Internally this is an open-addressed table keyed by an xxhash-64
// digest of the uppercased name, linearly probed — the hash replaces
// original_source/src/environment.c's linear scan with an O(1) expected
// lookup; identity is still decided by name equality, the hash is
// purely an index accelerator.
type SymbolTable struct {
	mu      sync.Mutex
	slots   []*Symbol
	count   int
	scratch []byte
}

const symtabInitialCapacity = 64

// NewSymbolTable returns an empty interner.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{slots: make([]*Symbol, symtabInitialCapacity)}
}

// Intern returns the canonical Symbol for name, uppercasing it first.
func (t *SymbolTable) Intern(name string) *Symbol {
	upper := strings.ToUpper(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.internLocked(upper)
}

func (t *SymbolTable) internLocked(upper string) *Symbol {
	if t.count*2 >= len(t.slots) {
		t.growLocked()
	}
	hash := xxhash.Sum64String(upper)
	mask := uint64(len(t.slots) - 1)
	idx := hash & mask
	for {
		existing := t.slots[idx]
		if existing == nil {
			sym := &Symbol{Name: upper, Hash: hash}
			t.slots[idx] = sym
			t.count++
			return sym
		}
		if existing.Name == upper {
			return existing
		}
		idx = (idx + 1) & mask
	}
}

func (t *SymbolTable) growLocked() {
	old := t.slots
	t.slots = make([]*Symbol, len(old)*2)
	t.count = 0
	for _, sym := range old {
		if sym == nil {
			continue
		}
		mask := uint64(len(t.slots) - 1)
		idx := sym.Hash & mask
		for t.slots[idx] != nil {
			idx = (idx + 1) & mask
		}
		t.slots[idx] = sym
		t.count++
	}
}

// Lookup finds an already-interned symbol without creating one.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	upper := strings.ToUpper(name)
	hash := xxhash.Sum64String(upper)
	t.mu.Lock()
	defer t.mu.Unlock()
	mask := uint64(len(t.slots) - 1)
	idx := hash & mask
	for {
		existing := t.slots[idx]
		if existing == nil {
			return nil, false
		}
		if existing.Name == upper {
			return existing, true
		}
		idx = (idx + 1) & mask
	}
}

// Names returns every interned symbol name, in table order (not
// insertion order). Used by the suggestion engine and by the `(SYM)`
// special form's "symbol table head" behavior, here exposed as a full
// snapshot rather than a single cons-cell head since this
// implementation doesn't thread the table itself as a Lisp list.
func (t *SymbolTable) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, t.count)
	for _, sym := range t.slots {
		if sym != nil {
			names = append(names, sym.Name)
		}
	}
	return names
}

// Count returns the number of interned symbols.
func (t *SymbolTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
