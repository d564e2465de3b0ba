// Package art implements an in-memory ordered index over fixed-width
// 64-bit unsigned keys, backed by an adaptive radix tree: inner nodes
// grow from a 4-way body up through 16-way, 48-way, and finally a
// direct 256-way array as their child count demands it, and shrink
// back down as children are removed. Compressed paths are stored
// inline up to a small budget and, beyond that, resolved lazily from
// a descendant leaf's key rather than carried in full at every node.
//
// A second node kind, NLinear, is available only through BulkLoad: it
// fits a linear model over a batch of keys and dispatches to one of
// ten buckets by prediction rather than exact byte match, trading the
// adaptive nodes' incremental-build story for a cheaper bulk
// construction of a static key set.
package art

import "go.uber.org/zap"

// Node describes one node visited by Each, exposing enough for a
// caller to render or audit the tree's shape.
type Node interface {
	NodeType() NodeType
	Key() [8]byte
	Value() uint64
}

// Callback receives one Node per call from Each, invoked for every
// inner node and every leaf in ascending key order, each inner node
// before its descendants.
type Callback func(node Node)

// Tree is an adaptive radix tree over [8]byte keys mapping to uint64
// values, whose top bit is reserved: only the low 63 bits of a value
// are significant application payload, per the leaf tagging scheme in
// leaf.go.
type Tree struct {
	root        childRef
	size        int64
	logger      *zap.Logger
	n48Capacity N48Capacity
}

// New constructs an empty Tree. By default Node48 bodies use the
// ART-paper capacity of 48 and diagnostics are discarded; use
// WithN48Capacity and WithLogger to change either.
func New(opts ...Option) *Tree {
	t := &Tree{logger: zap.NewNop(), n48Capacity: N48CapacityStandard}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the number of keys currently indexed.
func (t *Tree) Size() int {
	return int(t.size)
}
