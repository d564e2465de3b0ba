package art

import "github.com/kavadb/lart/internal/nodescan"

// flipSign toggles a byte's top bit. Applying it to two raw key bytes
// preserves their unsigned order in the signed-int8 order of the
// results — the classic trick for reusing a signed comparison
// primitive to compare unsigned bytes. unflipSign is its own inverse.
func flipSign(b byte) byte   { return b ^ 0x80 }
func unflipSign(b byte) byte { return b ^ 0x80 }

// node16 holds up to node16Max children, keyed by sign-flipped byte
// and kept in ascending (signed) order so that the lookup in
// internal/nodescan can treat the key array as a small sorted vector.
type node16 struct {
	header
	keys     [node16Max]byte
	children [node16Max]childRef
}

func (n *node16) hdr() *header   { return &n.header }
func (n *node16) kind() NodeType { return Node16 }

func findByteInNode16(n *node16, keyByte byte) int {
	return nodescan.FindByte(&n.keys, n.count, flipSign(keyByte))
}

func insertNode16(n *node16, keyByte byte, child childRef) {
	flipped := flipSign(keyByte)
	pos := nodescan.InsertPosition(&n.keys, n.count, flipped)
	for i := n.count; i > pos; i-- {
		n.keys[i] = n.keys[i-1]
		n.children[i] = n.children[i-1]
	}
	n.keys[pos] = flipped
	n.children[pos] = child
	n.count++
}

func removeFromNode16(n *node16, keyByte byte) {
	idx := findByteInNode16(n, keyByte)
	if idx < 0 {
		return
	}
	for i := idx; i < n.count-1; i++ {
		n.keys[i] = n.keys[i+1]
		n.children[i] = n.children[i+1]
	}
	n.keys[n.count-1] = 0
	n.children[n.count-1] = childRef{}
	n.count--
}
