// Package hashing provides duplicate detection for pawn configurations tried
// during one pawn feasibility search.
package hashing

import "slices"

// PawnSetTracker is a prefix tree over sorted pawn-position sequences. A
// root-to-node path is one pawn set; sets reached through different insertion
// orders sort to the same path and are recognised as already tried. A set
// whose path already exists, including as the prefix of a longer tried set,
// counts as tried.
//
// A tracker is only meaningful within one major-piece configuration and is
// discarded when its search ends. It is not safe for concurrent use.
type PawnSetTracker struct {
	root           *pawnNode
	uniqueCount    int
	duplicateCount int
}

type pawnNode struct {
	children map[int]*pawnNode
}

func newPawnNode() *pawnNode {
	return &pawnNode{children: make(map[int]*pawnNode)}
}

// NewPawnSetTracker creates an empty tracker.
func NewPawnSetTracker() *PawnSetTracker {
	return &PawnSetTracker{root: newPawnNode()}
}

// TryAdd inserts a sorted pawn-position sequence, creating missing nodes.
// It returns true if and only if at least one node was created. The caller
// must sort the sequence (see Canonical).
func (t *PawnSetTracker) TryAdd(config []int) bool {
	added := false
	current := t.root

	for _, pos := range config {
		next, ok := current.children[pos]
		if !ok {
			next = newPawnNode()
			current.children[pos] = next
			added = true
		}
		current = next
	}

	if added {
		t.uniqueCount++
	} else {
		t.duplicateCount++
	}
	return added
}

// UniqueCount returns how many insertions created a new path.
func (t *PawnSetTracker) UniqueCount() int {
	return t.uniqueCount
}

// DuplicateCount returns how many insertions were rejected as already tried.
func (t *PawnSetTracker) DuplicateCount() int {
	return t.duplicateCount
}

// Canonical returns the pawn positions plus extra as a new sorted slice.
// Lower positions come first; they are the hardest to cover and are tried first.
func Canonical(positions []int, extra int) []int {
	out := make([]int, 0, len(positions)+1)
	out = append(out, positions...)
	out = append(out, extra)
	slices.Sort(out)
	return out
}
