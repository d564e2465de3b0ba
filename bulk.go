package art

import (
	"sort"

	"go.uber.org/zap"
)

// bulkSmallThreshold is the batch size at or below which BulkLoad
// falls back to ordinary point insertion rather than fitting a linear
// model: fitting is not worth it (and, for very small or
// single-valued batches, not well-defined) until there is enough data
// to fit against.
const bulkSmallThreshold = 8

// BulkLoad constructs the tree's contents from values in one pass,
// building NLinear nodes wherever a batch is large enough to fit a
// useful model and falling back to ordinary insertion otherwise. It
// requires an empty tree; call it once, before any Insert.
func (t *Tree) BulkLoad(values []uint64) error {
	if t.size != 0 {
		return ErrNotEmpty
	}
	if len(values) == 0 {
		return nil
	}

	keys := make([][8]byte, len(values))
	for i, v := range values {
		keys[i] = LoadKey(v)
	}
	sortKeyValuePairs(keys, values)

	t.root = t.bulkLoad(keys, values, 0)
	t.size = int64(len(values))
	return nil
}

// bulkLoad builds the subtree for keys/values (sorted ascending,
// index-aligned), all of which agree on their first depth bytes.
func (t *Tree) bulkLoad(keys [][8]byte, values []uint64, depth int) childRef {
	switch {
	case len(keys) == 0:
		return childRef{}
	case len(keys) == 1:
		return makeLeaf(values[0])
	case len(keys) <= bulkSmallThreshold:
		return t.insertBatch(keys, values, depth)
	}

	prefixLen := commonPrefixLen(keys, depth)
	node := &nodeLinear{}
	node.prefixLen = prefixLen
	copy(node.prefix[:min(prefixLen, maxInlinePrefix)], keys[0][depth:depth+min(prefixLen, maxInlinePrefix)])
	depth += prefixLen
	if depth >= 8 {
		t.fail("bulk load exhausted key width with duplicate keys remaining")
	}

	samples := histogram(keys, depth)
	node.a, node.b = fitLinear(samples)
	if t.logger != nil {
		t.logger.Debug("art: bulk fit",
			zap.Float64("a", node.a),
			zap.Float64("b", node.b),
			zap.Int("keys", len(keys)),
			zap.Int("distinctBytes", len(samples)),
		)
	}

	var bucketKeys [linearFanout][][8]byte
	var bucketVals [linearFanout][]uint64
	for i, k := range keys {
		bk := predictBucket(node, k[depth])
		bucketKeys[bk] = append(bucketKeys[bk], k)
		bucketVals[bk] = append(bucketVals[bk], values[i])
	}

	for i := 0; i < linearFanout; i++ {
		switch {
		case len(bucketKeys[i]) == 0:
			continue
		case len(bucketKeys[i]) == len(keys):
			// The fit failed to split this batch at all (every key
			// landed in one bucket); fall back to point insertion so
			// bulk loading always terminates instead of recursing
			// forever on an identical batch.
			if t.logger != nil {
				t.logger.Warn("art: bulk fit collapsed to a single bucket", zap.Int("keys", len(keys)))
			}
			node.children[i] = t.insertBatch(bucketKeys[i], bucketVals[i], depth+1)
		default:
			node.children[i] = t.bulkLoad(bucketKeys[i], bucketVals[i], depth+1)
		}
	}
	return innerRef(node)
}

// insertBatch point-inserts every value in the batch, starting from an
// empty slot at the given depth. Insertion is idempotent on repeated
// keys, so this also serves as BulkLoad's base case without special
// casing the first element.
func (t *Tree) insertBatch(keys [][8]byte, values []uint64, depth int) childRef {
	var ref childRef
	for i, v := range values {
		t.insertAt(&ref, keys[i], v, depth)
	}
	return ref
}

// commonPrefixLen returns how many bytes starting at depth every key
// agrees on, bounded by the remaining key width.
func commonPrefixLen(keys [][8]byte, depth int) int {
	n := 0
	for depth+n < 8 {
		b := keys[0][depth+n]
		agree := true
		for _, k := range keys[1:] {
			if k[depth+n] != b {
				agree = false
				break
			}
		}
		if !agree {
			break
		}
		n++
	}
	return n
}

// sortKeyValuePairs sorts keys ascending, keeping values aligned by
// index.
func sortKeyValuePairs(keys [][8]byte, values []uint64) {
	sort.Sort(&keyValueSorter{keys: keys, values: values})
}

type keyValueSorter struct {
	keys   [][8]byte
	values []uint64
}

func (s *keyValueSorter) Len() int { return len(s.keys) }
func (s *keyValueSorter) Less(i, j int) bool {
	return less8(s.keys[i], s.keys[j])
}
func (s *keyValueSorter) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// less8 compares two 8-byte keys lexicographically.
func less8(a, b [8]byte) bool {
	for i := 0; i < 8; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
