// Command lartbench drives the art package the way original_source/ART.cpp's
// own main() drove the tree it was extracted from: build a batch of keys,
// bulk-load them, look every one back up, then erase them all, printing
// throughput and a node-shape profile along the way. None of this lives in
// the core package: key generation, timing, and profiling are all done here
// against the public Insert/Search/Delete/BulkLoad/Each surface.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kavadb/lart"
)

// keyMode selects one of the three key distributions original_source/ART.cpp
// generates in main(), by the same 0/1/2 encoding.
type keyMode int

const (
	modeSortedDense keyMode = iota
	modeShuffledDense
	modeSparseRandom
)

func (m keyMode) String() string {
	switch m {
	case modeSortedDense:
		return "sorted-dense"
	case modeShuffledDense:
		return "shuffled-dense"
	case modeSparseRandom:
		return "sparse-random"
	default:
		return "unknown"
	}
}

var errUsage = errors.New("usage: lartbench n 0|1|2\nn: number of keys\n0: sorted keys\n1: shuffled dense keys\n2: sparse keys")

func parseArgs(args []string) (n int, mode keyMode, err error) {
	if len(args) != 2 {
		return 0, 0, errUsage
	}
	n, err = strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, 0, errors.Wrap(errUsage, "n must be a non-negative integer")
	}
	m, err := strconv.Atoi(args[1])
	if err != nil || m < 0 || m > 2 {
		return 0, 0, errors.Wrap(errUsage, "mode must be 0, 1, or 2")
	}
	return n, keyMode(m), nil
}

// generateKeys mirrors original_source/ART.cpp's main(): dense ascending
// keys for mode 0, the same keys shuffled for mode 1, and pairs of 32-bit
// halves concatenated for mode 2 (the "pseudo-sparse" case, which loses the
// top bit of the resulting value the same way the reference's rand() OR
// does).
func generateKeys(n int, mode keyMode, rng *rand.Rand) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(i + 1)
	}
	switch mode {
	case modeShuffledDense:
		rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	case modeSparseRandom:
		for i := range keys {
			keys[i] = uint64(rng.Uint32()>>1)<<32 | uint64(rng.Uint32())
		}
	}
	return keys
}

// shapeProfile tallies live node counts by kind, the Go replacement for
// original_source/ART.cpp's travel/profile pair. It is built purely by
// draining Tree.Each, which now surfaces inner nodes as well as leaves.
type shapeProfile struct {
	leaves int
	nodes  map[art.NodeType]int
}

func profileTree(tr *art.Tree) shapeProfile {
	p := shapeProfile{nodes: make(map[art.NodeType]int)}
	tr.Each(func(n art.Node) {
		if n.NodeType() == art.LeafNode {
			p.leaves++
			return
		}
		p.nodes[n.NodeType()]++
	})
	return p
}

func (p shapeProfile) log(logger *zap.Logger) {
	logger.Info("tree shape",
		zap.Int("leaves", p.leaves),
		zap.Int("node4", p.nodes[art.Node4]),
		zap.Int("node16", p.nodes[art.Node16]),
		zap.Int("node48", p.nodes[art.Node48]),
		zap.Int("node256", p.nodes[art.Node256]),
		zap.Int("nodeLinear", p.nodes[art.NodeLinear]),
	)
}

func run(logger *zap.Logger, n int, mode keyMode) error {
	runID := uuid.New()
	logger = logger.With(zap.String("run", runID.String()), zap.Int("n", n), zap.String("mode", mode.String()))

	rng := rand.New(rand.NewSource(int64(n)*3 + int64(mode)))
	keys := generateKeys(n, mode, rng)

	tr := art.New(art.WithLogger(logger))

	start := time.Now()
	if err := tr.BulkLoad(keys); err != nil {
		return errors.Wrap(err, "bulk load")
	}
	buildElapsed := time.Since(start)
	logger.Info("bulk load complete", zap.Duration("elapsed", buildElapsed), zap.Int("size", tr.Size()))

	profileTree(tr).log(logger)

	start = time.Now()
	for _, k := range keys {
		if _, ok := tr.Search(art.LoadKey(k)); !ok {
			logger.Error("lookup miss for bulk-loaded key", zap.Uint64("key", k))
		}
	}
	lookupElapsed := time.Since(start)
	logger.Info("lookup pass complete", zap.Duration("elapsed", lookupElapsed))

	start = time.Now()
	for _, k := range keys {
		tr.Delete(art.LoadKey(k))
	}
	eraseElapsed := time.Since(start)
	logger.Info("erase pass complete", zap.Duration("elapsed", eraseElapsed), zap.Int("size", tr.Size()))

	if tr.Size() != 0 {
		return errors.Errorf("tree should be empty after erasing every key, has %d entries left", tr.Size())
	}
	return nil
}

func main() {
	n, mode, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, n, mode); err != nil {
		logger.Error("benchmark run failed", zap.Error(err))
		os.Exit(1)
	}
}
