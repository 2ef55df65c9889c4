// Package rope implements the byte-addressed, weight-indexed tree that
// backs every buffer's text storage.
//
// A rope is a binary tree: every internal node carries the byte length of
// its left subtree as its weight, and every leaf carries a byte string.
// Indexing descends right when the sought index is not less than the
// current weight (subtracting the weight along the way) and left
// otherwise. Edits return a new rope; unaffected subtrees are shared with
// the original.
package rope

import (
	"fmt"
	"io"
	"strings"
)

// Rope is an immutable-per-edit binary tree over a byte sequence.
//
// A nil *Rope is a valid, empty rope: Length, Index, String and Sum all
// treat it as zero bytes, matching the original implementation's
// tolerance for NULL rope pointers.
type Rope struct {
	weight int    // byte length of the left subtree (internal) or of the leaf string
	leaf   []byte // non-nil only at a leaf
	left   *Rope
	right  *Rope
}

// Create builds a single-leaf rope (wrapped under one internal parent,
// mirroring the original C source's shape) holding a private copy of b.
func Create(b []byte) *Rope {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	leaf := &Rope{weight: len(cp), leaf: cp}
	return &Rope{weight: len(cp), left: leaf}
}

// FromString is a convenience wrapper around Create.
func FromString(s string) *Rope {
	return Create([]byte(s))
}

// Length returns the total number of bytes held by r.
func Length(r *Rope) int {
	if r == nil {
		return 0
	}
	if r.leaf != nil {
		return r.weight
	}
	return r.weight + Length(r.right)
}

// Sum mirrors rope_sum from the original source: the total byte count of
// every leaf reachable from r. For a weight-consistent tree this equals
// Length; unlike Length it never reads an internal node's weight field.
func Sum(r *Rope) int {
	if r == nil {
		return 0
	}
	if r.leaf != nil {
		return r.weight
	}
	return Sum(r.left) + Sum(r.right)
}

// Index returns the byte at position i, or 0 if i is out of range — an
// out-of-range index is not an error per spec.
func Index(r *Rope, i int) byte {
	if r == nil || i < 0 {
		return 0
	}
	cur, idx := r, i
	for cur != nil && cur.leaf == nil {
		if idx >= cur.weight {
			idx -= cur.weight
			cur = cur.right
		} else {
			cur = cur.left
		}
	}
	if cur == nil || idx >= len(cur.leaf) {
		return 0
	}
	return cur.leaf[idx]
}

// String returns the in-order concatenation of every leaf under r.
func String(r *Rope) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(Length(r))
	writeString(r, &b)
	return b.String()
}

func writeString(r *Rope, b *strings.Builder) {
	if r == nil {
		return
	}
	if r.leaf != nil {
		b.Write(r.leaf)
		return
	}
	writeString(r.left, b)
	writeString(r.right, b)
}

// Insert returns a new rope with s inserted at byte offset i.
//
// i >= Length(r) appends; i == 0 prepends; any other i splits the
// addressed leaf into prefix/new/suffix leaves, incrementing the weight
// of every ancestor whose left subtree the insertion fell inside of.
// This mirrors original_source/src/rope.c's rope_insert, collapsed into
// a single descent instead of separate append/prepend/middle branches —
// the three cases share one invariant (weight == length of left
// subtree) and one walk satisfies all of them.
func Insert(r *Rope, i int, s []byte) *Rope {
	if r == nil || s == nil {
		return nil
	}
	if len(s) == 0 {
		// Still a structurally fresh rope, per spec, even though no
		// content changes.
		fresh := *r
		return &fresh
	}
	contents := make([]byte, len(s))
	copy(contents, s)

	total := Length(r)
	if i < 0 {
		i = 0
	}
	if i > total {
		i = total
	}

	if r.leaf != nil {
		// A bare leaf at the top; wrap it so the descent below (which
		// expects an internal root) applies uniformly.
		r = &Rope{weight: r.weight, left: &Rope{weight: r.weight, leaf: r.leaf}}
	}

	// Copy every node on the descent path so the caller's rope is left
	// untouched; subtrees off the path are shared.
	fresh := *r
	r = &fresh

	type frame struct {
		node      *Rope
		wentRight bool
	}
	var path []frame
	cur, idx := r, i
	for cur.leaf == nil {
		if idx >= cur.weight && cur.right != nil {
			idx -= cur.weight
			path = append(path, frame{cur, true})
			right := *cur.right
			cur.right = &right
			cur = cur.right
			continue
		}
		// Either idx addresses the left subtree, or there is no right
		// sibling and idx sits exactly at the end of this node (the
		// append case) — both descend left without adjusting idx.
		path = append(path, frame{cur, false})
		left := *cur.left
		cur.left = &left
		cur = cur.left
	}

	splitLeaf(cur, idx, contents)

	for _, f := range path {
		if !f.wentRight {
			f.node.weight += len(contents)
		}
	}
	return r
}

// splitLeaf mutates a leaf node in place into an internal node with two
// or three children: the byte-prefix of the original leaf, the new
// contents, and the byte-suffix, dropping any empty piece. idx is the
// byte offset inside the leaf where contents should be inserted.
func splitLeaf(leaf *Rope, idx int, contents []byte) {
	if idx > len(leaf.leaf) {
		idx = len(leaf.leaf)
	}
	prefix := leaf.leaf[:idx]
	suffix := leaf.leaf[idx:]

	switch {
	case len(prefix) == 0:
		newNode := &Rope{weight: len(contents), leaf: contents}
		suffixNode := &Rope{weight: len(suffix), leaf: suffix}
		leaf.leaf = nil
		leaf.weight = len(contents)
		leaf.left = newNode
		leaf.right = suffixNode
	case len(suffix) == 0:
		prefixNode := &Rope{weight: len(prefix), leaf: prefix}
		newNode := &Rope{weight: len(contents), leaf: contents}
		leaf.leaf = nil
		leaf.weight = len(prefix)
		leaf.left = prefixNode
		leaf.right = newNode
	default:
		prefixNode := &Rope{weight: len(prefix), leaf: prefix}
		newNode := &Rope{weight: len(contents), leaf: contents}
		leftNode := &Rope{weight: len(prefix), left: prefixNode, right: newNode}
		suffixNode := &Rope{weight: len(suffix), leaf: suffix}
		leaf.leaf = nil
		leaf.weight = len(prefix)
		leaf.left = leftNode
		leaf.right = suffixNode
	}
}

// RemoveSpan returns a new rope with count bytes removed starting at
// offset, clamped so offset+count never exceeds Length(r). count == 0 is
// a no-op that returns r unchanged.
func RemoveSpan(r *Rope, offset, count int) *Rope {
	if r == nil || count == 0 {
		return r
	}
	total := Length(r)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if offset+count > total {
		count = total - offset
	}
	if count <= 0 {
		return r
	}
	s := String(r)
	return FromString(s[:offset] + s[offset+count:])
}

// Dump writes r's tree structure to w, one node per line indented by
// depth, mirroring original_source/src/rope.c's rope_print — a leaf
// prints its quoted string and weight, an internal node prints "<node>"
// followed by its "l:" and "r:" subtrees and a closing "END".
func Dump(w io.Writer, r *Rope) {
	dump(w, r, 0)
}

func dump(w io.Writer, r *Rope, depth int) {
	if r == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if r.leaf != nil {
		fmt.Fprintf(w, "%s%q (%d)\n", indent, r.leaf, r.weight)
		return
	}
	fmt.Fprintf(w, "%s<node> (%d)\n", indent, r.weight)
	fmt.Fprintf(w, "%sl:\n", indent)
	dump(w, r.left, depth+1)
	fmt.Fprintf(w, "%sr:\n", indent)
	dump(w, r.right, depth+1)
	fmt.Fprintf(w, "%sEND\n", indent)
}

// Weight exposes the internal weight field for tests and debugging; it
// is not part of the public contract callers should rely on for
// indexing decisions (use Length/Index instead).
func Weight(r *Rope) int {
	if r == nil {
		return 0
	}
	return r.weight
}

// checkInvariant reports whether every internal node's weight equals the
// byte length of its left subtree, used by tests to catch regressions in
// Insert's weight bookkeeping.
func checkInvariant(r *Rope) bool {
	if r == nil || r.leaf != nil {
		return true
	}
	return r.weight == Length(r.left) && checkInvariant(r.left) && checkInvariant(r.right)
}
