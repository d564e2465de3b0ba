package art

import "encoding/binary"

// LoadKey renders v as its big-endian 8-byte encoding, so that
// byte-lexicographic order over the result equals numeric order over
// v. This is the pure "key loader" function the core consumes: every
// leaf's value must be recoverable to the exact key bytes it was
// inserted under via LoadKey, since prefix reconstruction beyond the
// inline budget (see prefixMismatch) re-derives key bytes from a
// descendant leaf's value rather than storing them.
func LoadKey(v uint64) [8]byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], v)
	return k
}

// childRef is the tagged, safe stand-in for the reference
// implementation's bit-stolen leaf pointer (see DESIGN.md and
// SPEC_FULL.md §3). Its zero value
// denotes an empty slot: neither a leaf nor an inner node.
//
// A leaf carries its 63-bit-significant value inline — isLeaf is set
// and no allocation backs it, matching invariant 1's "leaves have no
// heap allocation." An inner node instead carries a pointer to one of
// the node4/node16/node48/node256/nodeLinear bodies through the inner
// field.
type childRef struct {
	isLeaf bool
	leaf   uint64
	inner  innerNode
}

// isEmpty reports whether the slot holds neither a leaf nor an inner
// node.
func (c childRef) isEmpty() bool {
	return !c.isLeaf && c.inner == nil
}

// makeLeaf returns a childRef tagged as a leaf carrying v.
func makeLeaf(v uint64) childRef {
	return childRef{isLeaf: true, leaf: v}
}

// leafValue returns the value carried by a leaf childRef. The caller
// must have already established c.isLeaf.
func (c childRef) leafValue() uint64 {
	return c.leaf
}

// innerRef wraps an inner node in a childRef.
func innerRef(n innerNode) childRef {
	return childRef{inner: n}
}

// isMatch reports whether the leaf's key (its value reloaded through
// LoadKey) equals key.
func (c childRef) isMatch(key [8]byte) bool {
	if !c.isLeaf {
		return false
	}
	return LoadKey(c.leaf) == key
}
