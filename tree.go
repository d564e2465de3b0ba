package art

// Insert indexes value under key, overwriting any value already
// stored there. The caller must maintain key == LoadKey(value): the
// tree never stores key bytes beyond a small inline prefix budget, so
// bytes past that budget are reconstructed later by reloading a
// descendant leaf's value through LoadKey. A mismatched pair silently
// corrupts every lookup that depends on the reconstructed bytes.
func (t *Tree) Insert(key [8]byte, value uint64) {
	if t.insertAt(&t.root, key, value, 0) {
		t.size++
	}
}

// insertAt inserts value at key into *ref (rooted at depth bytes
// already consumed) and reports whether a new leaf was created, as
// opposed to an existing one being overwritten.
func (t *Tree) insertAt(ref *childRef, key [8]byte, value uint64, depth int) bool {
	if ref.isEmpty() {
		*ref = makeLeaf(value)
		return true
	}
	if ref.isLeaf {
		if LoadKey(ref.leaf) == key {
			ref.leaf = value
			return false
		}
		t.splitLeaf(ref, key, value, depth)
		return true
	}

	n := ref.inner
	h := n.hdr()
	if h.prefixLen != 0 {
		mismatch := prefixMismatch(n, key, depth)
		if mismatch != h.prefixLen {
			t.splitPrefix(ref, key, value, depth, mismatch)
			return true
		}
		depth += h.prefixLen
	}
	if depth >= 8 {
		t.fail("insert: reached full key width without resolving to a leaf")
	}

	child := findChild(n, key[depth])
	if child == nil {
		t.addChild(ref, key[depth], makeLeaf(value))
		return true
	}
	return t.insertAt(child, key, value, depth+1)
}

// splitLeaf replaces the leaf at *ref with a fresh node4 holding both
// the existing leaf and a new one for key/value, under whatever bytes
// they share starting at depth.
func (t *Tree) splitLeaf(ref *childRef, key [8]byte, value uint64, depth int) {
	old := *ref
	existingKey := LoadKey(old.leaf)

	n4 := &node4{}
	i := 0
	for depth+i < 8 && existingKey[depth+i] == key[depth+i] {
		if i < maxInlinePrefix {
			n4.prefix[i] = key[depth+i]
		}
		i++
	}
	n4.prefixLen = i
	newDepth := depth + i
	if newDepth >= 8 {
		t.fail("insert: two distinct values produced identical key bytes")
	}

	*ref = innerRef(n4)
	t.addChild(ref, existingKey[newDepth], old)
	t.addChild(ref, key[newDepth], makeLeaf(value))
}

// splitPrefix handles inserting key/value under an inner node whose
// prefix diverges from key partway through, at the given mismatch
// offset: it introduces a new node4 covering the matched prefix bytes
// and reparents both the original node (with its prefix trimmed) and
// a new leaf beneath it.
func (t *Tree) splitPrefix(ref *childRef, key [8]byte, value uint64, depth, mismatch int) {
	old := ref.inner
	h := old.hdr()

	n4 := &node4{}
	n4.prefixLen = mismatch
	copy(n4.prefix[:min(mismatch, maxInlinePrefix)], h.prefix[:min(mismatch, maxInlinePrefix)])

	var divergentByte byte
	if h.prefixLen <= maxInlinePrefix {
		divergentByte = h.prefix[mismatch]
		copyPrefixTail(h, mismatch+1)
	} else {
		minKey := LoadKey(minimum(*ref).leafValue())
		divergentByte = minKey[depth+mismatch]
		tail := minKey[depth+mismatch+1:]
		h.prefixLen -= mismatch + 1
		n := min(h.prefixLen, maxInlinePrefix)
		copy(h.prefix[:n], tail[:n])
	}

	oldRef := innerRef(old)
	*ref = innerRef(n4)
	t.addChild(ref, divergentByte, oldRef)
	t.addChild(ref, key[depth+mismatch], makeLeaf(value))
}

// copyPrefixTail shifts h's inline prefix left by skip bytes in place,
// after skip bytes (the matched span plus the one divergent byte) have
// been consumed by the new parent node.
func copyPrefixTail(h *header, skip int) {
	remaining := h.prefixLen - skip
	var shifted [maxInlinePrefix]byte
	if skip < maxInlinePrefix {
		n := min(remaining, maxInlinePrefix-skip)
		if n > 0 {
			copy(shifted[:n], h.prefix[skip:skip+n])
		}
	}
	h.prefix = shifted
	h.prefixLen = remaining
}

// Search performs an optimistic lookup: it checks only the inline
// portion of every node's compressed path (skipping reconstruction of
// bytes beyond the budget) and confirms the result with a full key
// comparison at the leaf. This is faster than SearchPessimistic when
// most lookups hit, since it avoids reconstructing long prefixes on
// the way down, but it does that reconstruction work regardless if the
// path leads to a leaf whose key turns out not to match.
func (t *Tree) Search(key [8]byte) (uint64, bool) {
	return t.searchHelper(t.root, key, 0, false)
}

// SearchPessimistic performs the same lookup but verifies every node's
// full logical prefix — including bytes beyond the inline budget,
// reconstructed from that node's minimum leaf — before descending, so
// a mismatch is caught as high in the tree as possible instead of only
// at the final leaf comparison. Both variants consume key bytes the
// same way; they differ only in how much of each prefix they verify.
func (t *Tree) SearchPessimistic(key [8]byte) (uint64, bool) {
	return t.searchHelper(t.root, key, 0, true)
}

// searchHelper walks the tree from ref. At every inner node it skips
// the node's prefix and then advances depth by one for the byte that
// selected the child, for every node kind. In optimistic mode
// (pessimistic == false, i.e. Search) only the inline prefix bytes are
// compared on the way down; the full-key comparison at the leaf
// catches any difference in the bytes that were not checked.
func (t *Tree) searchHelper(ref childRef, key [8]byte, depth int, pessimistic bool) (uint64, bool) {
	for {
		if ref.isEmpty() {
			return 0, false
		}
		if ref.isLeaf {
			if ref.isMatch(key) {
				return ref.leaf, true
			}
			return 0, false
		}

		n := ref.inner
		h := n.hdr()
		if h.prefixLen != 0 {
			if pessimistic {
				if prefixMismatch(n, key, depth) != h.prefixLen {
					return 0, false
				}
			} else {
				limit := min(h.prefixLen, maxInlinePrefix)
				for i := 0; i < limit; i++ {
					if key[depth+i] != h.prefix[i] {
						return 0, false
					}
				}
			}
			depth += h.prefixLen
		}
		if depth >= 8 {
			return 0, false
		}

		child := findChild(n, key[depth])
		if child == nil {
			return 0, false
		}
		depth++
		ref = *child
	}
}

// Delete removes key from the tree, reporting whether it was present.
// A node4 left with a single surviving child is dissolved into its
// parent (one-way path compression); Node16/48/256 shrink to the next
// smaller body once their occupancy drops far enough below capacity.
// NLinear nodes built by BulkLoad are never compacted this way: a
// deleted bucket is simply left empty.
func (t *Tree) Delete(key [8]byte) bool {
	deleted := t.deleteAt(&t.root, key, 0)
	if deleted {
		t.size--
	}
	return deleted
}

func (t *Tree) deleteAt(ref *childRef, key [8]byte, depth int) bool {
	if ref.isEmpty() {
		return false
	}
	if ref.isLeaf {
		if ref.isMatch(key) {
			*ref = childRef{}
			return true
		}
		return false
	}

	n := ref.inner
	h := n.hdr()
	if h.prefixLen != 0 {
		if prefixMismatch(n, key, depth) != h.prefixLen {
			return false
		}
		depth += h.prefixLen
	}
	if depth >= 8 {
		return false
	}

	child := findChild(n, key[depth])
	if child == nil {
		return false
	}
	if child.isLeaf {
		if !child.isMatch(key) {
			return false
		}
		if _, ok := n.(*nodeLinear); ok {
			*child = childRef{}
			return true
		}
		t.removeChild(ref, key[depth])
		return true
	}
	return t.deleteAt(child, key, depth+1)
}

// Each walks the tree in ascending key order, visiting every leaf and,
// on the way down to it, every inner node above it. A caller that only
// wants leaves (the values it inserted) filters by NodeType() ==
// LeafNode; a caller building a shape profile (see cmd/lartbench) reads
// the inner-node kinds directly instead of re-deriving them from a
// separate traversal API.
func (t *Tree) Each(cb Callback) {
	t.eachHelper(t.root, cb)
}

func (t *Tree) eachHelper(ref childRef, cb Callback) {
	if ref.isEmpty() {
		return
	}
	if ref.isLeaf {
		cb(visitedLeaf{key: LoadKey(ref.leaf), value: ref.leaf})
		return
	}
	n := ref.inner
	children := n.hdr().count
	if lin, ok := n.(*nodeLinear); ok {
		children = 0
		for i := range lin.children {
			if !lin.children[i].isEmpty() {
				children++
			}
		}
	}
	cb(visitedInner{kind: n.kind(), children: children})
	switch n := n.(type) {
	case *node4:
		for i := 0; i < n.count; i++ {
			t.eachHelper(n.children[i], cb)
		}
	case *node16:
		for i := 0; i < n.count; i++ {
			t.eachHelper(n.children[i], cb)
		}
	case *node48:
		for b := 0; b < 256; b++ {
			idx := n.childIndex[b]
			if idx != n.empty {
				t.eachHelper(n.children[idx], cb)
			}
		}
	case *node256:
		for i := range n.children {
			t.eachHelper(n.children[i], cb)
		}
	case *nodeLinear:
		for i := range n.children {
			t.eachHelper(n.children[i], cb)
		}
	}
}

// visitedLeaf is the concrete Node passed to Each's callback for a
// leaf entry.
type visitedLeaf struct {
	key   [8]byte
	value uint64
}

func (v visitedLeaf) NodeType() NodeType { return LeafNode }
func (v visitedLeaf) Key() [8]byte       { return v.key }
func (v visitedLeaf) Value() uint64      { return v.value }

// visitedInner is the concrete Node passed to Each's callback for an
// inner node. Key is always the zero key: an inner node spans a range
// of keys rather than owning one. Value carries its live child count,
// which is what a shape profile (cmd/lartbench) wants out of it.
type visitedInner struct {
	kind     NodeType
	children int
}

func (v visitedInner) NodeType() NodeType { return v.kind }
func (v visitedInner) Key() [8]byte       { return [8]byte{} }
func (v visitedInner) Value() uint64      { return uint64(v.children) }
