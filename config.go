package art

import "go.uber.org/zap"

// N48Capacity selects the physical fan-out of a Node48 body, resolving
// the discrepancy between the ART paper (capacity 48) and the
// reference implementation this package descends from (capacity 24,
// with shrink thresholds scaled to match). See DESIGN.md, Open
// Question O3.
type N48Capacity uint8

const (
	// N48CapacityStandard is the ART-paper capacity: up to 48 children,
	// EMPTY sentinel 48, grow at count 48, shrink to Node16 at count 12.
	N48CapacityStandard N48Capacity = iota
	// N48CapacityReference matches original_source/ART.cpp: up to 24
	// children, EMPTY sentinel 24, grow at count 24, shrink to Node16
	// at count 6 (a quarter of 24, proportional to the standard 12/48).
	N48CapacityReference
)

func (c N48Capacity) capacity() int {
	if c == N48CapacityReference {
		return 24
	}
	return 48
}

func (c N48Capacity) empty() uint8 {
	return uint8(c.capacity())
}

func (c N48Capacity) shrinkAt() int {
	if c == N48CapacityReference {
		return 6
	}
	return 12
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger wires a structured logger for grow/shrink transitions,
// bulk-load fit diagnostics, and structural-assertion failures. The
// default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithN48Capacity resolves Open Question O3 (DESIGN.md); it selects
// whether Node48 bodies follow the ART paper's 48-slot layout or the
// reference implementation's 24-slot layout.
func WithN48Capacity(c N48Capacity) Option {
	return func(t *Tree) {
		t.n48Capacity = c
	}
}
