package mesh

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cdt3d/arena"
)

// Sentinel errors of the mesh package.
var (
	// ErrBadSnapshot indicates a snapshot that is syntactically or
	// geometrically malformed: truncated input, a failed count checksum, an
	// out-of-range index, or an unordered neighbor list that cannot be
	// brought into the canonical slot convention.
	ErrBadSnapshot = errors.New("mesh: bad snapshot")

	// ErrInvariant is the class wrapped by Validate for every structural
	// violation it finds.
	ErrInvariant = errors.New("mesh: invariant violated")

	// ErrBadStrictness indicates a strictness level outside 0..3.
	ErrBadStrictness = errors.New("mesh: strictness must be in 0..3")

	// ErrBadCapacity indicates a non-positive capacity option.
	ErrBadCapacity = errors.New("mesh: capacity must be positive")

	// ErrNilRand indicates a nil generator passed to WithRand.
	ErrNilRand = errors.New("mesh: rng is required")
)

// Handle aliases. All cross-references between mesh entities use these;
// a zero value is the explicit nil reference.
type (
	VertexID   = arena.Handle[Vertex]
	TetraID    = arena.Handle[Tetra]
	HalfEdgeID = arena.Handle[HalfEdge]
	TriangleID = arena.Handle[Triangle]
)

// Kind classifies a tetrahedron by how its vertices split across the two
// adjacent time layers it spans.
type Kind uint8

const (
	// KindThreeOne: vertices 0..2 on the base layer, vertex 3 one layer up.
	KindThreeOne Kind = iota
	// KindOneThree: vertex 0 one layer down, vertices 1..3 on the top layer.
	KindOneThree
	// KindTwoTwo: vertices 0,1 on the lower layer, vertices 2,3 above.
	KindTwoTwo
)

// String returns the conventional short form: 31, 13 or 22.
func (k Kind) String() string {
	switch k {
	case KindThreeOne:
		return "31"
	case KindOneThree:
		return "13"
	case KindTwoTwo:
		return "22"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// kindOf matches the layer times of four vertices in slot order against
// the three legal patterns. The second return is false for any other
// arrangement.
func kindOf(t0, t1, t2, t3 int) (Kind, bool) {
	switch {
	case t0 == t1 && t1 == t2 && t2 != t3:
		return KindThreeOne, true
	case t1 == t2 && t2 == t3 && t0 != t1:
		return KindOneThree, true
	case t0 == t1 && t2 == t3 && t1 != t2:
		return KindTwoTwo, true
	}
	return 0, false
}

// classifyKind is the surgery-path form of kindOf: the patterns are
// exhaustive for causal tetrahedra, so an illegal arrangement can only
// come from corrupted surgery and panics.
func classifyKind(t0, t1, t2, t3 int) Kind {
	k, ok := kindOf(t0, t1, t2, t3)
	if !ok {
		panic(fmt.Sprintf("mesh: illegal vertex time pattern (%d %d %d %d)", t0, t1, t2, t3))
	}
	return k
}
