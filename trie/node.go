// Package trie implements the AMQP-style wildcard pattern trie (spec
// §4.10), grounded on a message-broker routing-table reference: patterns
// are dot-separated segment paths where "*" matches exactly one segment
// and "#" matches zero or more segments. Subscribers are attached to the
// terminal node of the pattern they subscribed with; Match walks the trie
// against a concrete topic and returns every subscriber whose pattern
// matches it.
package trie

import "github.com/kelindar/varkit/internal/hash"

// Kind classifies a single path segment.
type Kind uint8

const (
	Literal Kind = iota
	Star
	Hash
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "*"
	case Hash:
		return "#"
	default:
		return "literal"
	}
}

// Subscriber pairs a subscriber id with the display name it registered
// under.
//
// Spec §3 models the subscriber id as u32; ID is kept as uint64 here since
// nothing in this package packs it into a fixed-width wire field, and the
// wider type costs nothing but avoids a truncation hazard for callers.
type Subscriber struct {
	ID   uint64
	Name string
}

// Node is one segment of one or more registered patterns. The root node
// has an empty Segment and Kind Literal.
type Node struct {
	Segment     string
	Kind        Kind
	Terminal    bool
	Subscribers []Subscriber
	Children    []*Node

	subSet map[uint64]string
	index  map[uint64][]int
}

func newNode(segment string, kind Kind) *Node {
	return &Node{Segment: segment, Kind: kind, index: make(map[uint64][]int)}
}

// childKey hashes (kind, segment) into the bucket key used by index. A
// NUL separator keeps "1x" (kind=1,seg="x") from colliding with "1" +
// "x" style concatenation ambiguities.
func childKey(kind Kind, segment string) uint64 {
	return hash.ID(string([]byte{byte(kind), 0}) + segment)
}

// findChild returns the existing child with the given (kind, segment),
// or nil. Bucket collisions are resolved by verifying equality on every
// candidate index in the bucket, since childKey only narrows the search.
func (n *Node) findChild(kind Kind, segment string) *Node {
	for _, idx := range n.index[childKey(kind, segment)] {
		c := n.Children[idx]
		if c.Kind == kind && c.Segment == segment {
			return c
		}
	}

	return nil
}

func (n *Node) addChild(child *Node) {
	idx := len(n.Children)
	n.Children = append(n.Children, child)
	key := childKey(child.Kind, child.Segment)
	n.index[key] = append(n.index[key], idx)
}

// removeChild deletes the child at position idx, used by pruning after a
// pattern is fully removed. It rebuilds the index rather than patching it
// in place since indices shift.
func (n *Node) removeChild(idx int) {
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	n.index = make(map[uint64][]int, len(n.Children))
	for i, c := range n.Children {
		key := childKey(c.Kind, c.Segment)
		n.index[key] = append(n.index[key], i)
	}
}

// addSubscriber records (id, name) as a subscriber of this (terminal)
// node, reporting whether it was newly added. Re-adding an id already
// present is a no-op; the existing name is kept.
func (n *Node) addSubscriber(id uint64, name string) bool {
	if n.subSet == nil {
		n.subSet = make(map[uint64]string)
	}
	if _, exists := n.subSet[id]; exists {
		return false
	}

	n.subSet[id] = name
	n.Subscribers = append(n.Subscribers, Subscriber{ID: id, Name: name})

	return true
}

// removeSubscriber deletes id from this node, reporting whether it was
// present.
func (n *Node) removeSubscriber(id uint64) bool {
	if _, exists := n.subSet[id]; !exists {
		return false
	}

	delete(n.subSet, id)
	for i, s := range n.Subscribers {
		if s.ID == id {
			n.Subscribers = append(n.Subscribers[:i], n.Subscribers[i+1:]...)
			break
		}
	}

	return true
}

// isEmpty reports whether n carries no useful information: not terminal,
// no subscribers, no children. Used by pruning.
func (n *Node) isEmpty() bool {
	return !n.Terminal && len(n.Subscribers) == 0 && len(n.Children) == 0
}

// clearSubscribers drops every subscriber from this node in one call and
// reports how many were removed, for RemovePattern.
func (n *Node) clearSubscribers() int {
	count := len(n.Subscribers)
	n.Subscribers = nil
	n.subSet = nil

	return count
}
