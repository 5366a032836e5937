package mesh

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/cdt3d/arena"
	"github.com/katalvlaran/cdt3d/randset"
)

// Default arena capacities. Half-edge and triangle pools are sized from
// the tetra capacity: a mesh of n tetrahedra holds at most n/2+1 base
// tetrahedra, each owning one triangle and three half-edges.
const (
	DefaultVertexCapacity = 1 << 16
	DefaultTetraCapacity  = 1 << 18
)

// Strictness levels for degeneracy rejection during surgery. Higher levels
// only add restrictions.
const (
	// StrictnessNone allows every locally consistent configuration,
	// including self-glued degeneracies.
	StrictnessNone = 0
	// StrictnessNoSelfPair forbids contractions that would leave a vertex
	// at spatial coordination 1.
	StrictnessNoSelfPair = 1
	// StrictnessNoDoubleFold additionally keeps spatial coordination at 3
	// or above, blocking the flips and contractions that would breach it.
	StrictnessNoDoubleFold = 2
	// StrictnessSimplicial additionally forbids reintroducing an edge that
	// already exists, keeping the complex simplicial.
	StrictnessSimplicial = 3
)

type config struct {
	rng        *rand.Rand
	strictness int
	vertexCap  int
	tetraCap   int
}

// Option customizes universe construction at Load time.
type Option func(*config) error

// WithRand injects the random generator shared by candidate picks. Use it
// when the driver must draw from the same sequence; otherwise WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) error {
		if rng == nil {
			return ErrNilRand
		}
		c.rng = rng
		return nil
	}
}

// WithSeed seeds a fresh generator. Two universes loaded from the same
// snapshot with the same seed evolve identically under identical drivers.
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.rng = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithStrictness sets the degeneracy rejection level, 0..3.
func WithStrictness(level int) Option {
	return func(c *config) error {
		if level < StrictnessNone || level > StrictnessSimplicial {
			return fmt.Errorf("%w: got %d", ErrBadStrictness, level)
		}
		c.strictness = level
		return nil
	}
}

// WithVertexCapacity bounds the vertex arena.
func WithVertexCapacity(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: vertices %d", ErrBadCapacity, n)
		}
		c.vertexCap = n
		return nil
	}
}

// WithTetraCapacity bounds the tetra arena; derived pools scale with it.
func WithTetraCapacity(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: tetras %d", ErrBadCapacity, n)
		}
		c.tetraCap = n
		return nil
	}
}

// Universe is the complete state of one triangulated spacetime: entity
// arenas, the randomized candidate sets driving uniform picks, per-layer
// volume counters, and the single random generator. Construct via Load.
type Universe struct {
	rng        *rand.Rand
	strictness int

	nSlices    int
	slabSizes  []int // tetrahedra per slab, keyed by Tetra.Time()
	sliceSizes []int // (3,1) tetrahedra per slice, keyed by base layer

	vertices  *arena.Arena[Vertex]
	tetras    *arena.Arena[Tetra]
	halfEdges *arena.Arena[HalfEdge]
	triangles *arena.Arena[Triangle]

	tetrasAll   *randset.Set[Tetra]
	tetras31    *randset.Set[Tetra]
	verticesAll *randset.Set[Vertex]

	// Derived adjacency, valid from the last Reconstruct until the next
	// surgery operation.
	vertexList   []VertexID
	halfEdgeList []HalfEdgeID
	triangleList []TriangleID
	vertexNbr    [][]VertexID
}

func newUniverse(opts ...Option) (*Universe, error) {
	cfg := config{
		rng:       rand.New(rand.NewSource(1)),
		vertexCap: DefaultVertexCapacity,
		tetraCap:  DefaultTetraCapacity,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	triCap := cfg.tetraCap/2 + 1
	u := &Universe{rng: cfg.rng, strictness: cfg.strictness}

	var err error
	if u.vertices, err = arena.New[Vertex](cfg.vertexCap); err != nil {
		return nil, err
	}
	if u.tetras, err = arena.New[Tetra](cfg.tetraCap); err != nil {
		return nil, err
	}
	if u.halfEdges, err = arena.New[HalfEdge](3 * triCap); err != nil {
		return nil, err
	}
	if u.triangles, err = arena.New[Triangle](triCap); err != nil {
		return nil, err
	}
	if u.tetrasAll, err = randset.New[Tetra](cfg.tetraCap, cfg.rng); err != nil {
		return nil, err
	}
	if u.tetras31, err = randset.New[Tetra](cfg.tetraCap, cfg.rng); err != nil {
		return nil, err
	}
	if u.verticesAll, err = randset.New[Vertex](cfg.vertexCap, cfg.rng); err != nil {
		return nil, err
	}
	return u, nil
}

// Vertex resolves a handle. Panics on a dead or stale handle.
func (u *Universe) Vertex(id VertexID) *Vertex { return u.vertices.Get(id) }

// Tetra resolves a handle. Panics on a dead or stale handle.
func (u *Universe) Tetra(id TetraID) *Tetra { return u.tetras.Get(id) }

// HalfEdge resolves a handle. Panics on a dead or stale handle.
func (u *Universe) HalfEdge(id HalfEdgeID) *HalfEdge { return u.halfEdges.Get(id) }

// Triangle resolves a handle. Panics on a dead or stale handle.
func (u *Universe) Triangle(id TriangleID) *Triangle { return u.triangles.Get(id) }

// VertexCount returns the number of live vertices.
func (u *Universe) VertexCount() int { return u.vertices.Count() }

// TetraCount returns the number of live tetrahedra of all kinds.
func (u *Universe) TetraCount() int { return u.tetras.Count() }

// Tetra31Count returns the number of live (3,1) tetrahedra.
func (u *Universe) Tetra31Count() int { return u.tetras31.Size() }

// SliceCount returns the number of time layers (periodic).
func (u *Universe) SliceCount() int { return u.nSlices }

// SliceSizes returns a copy of the per-slice (3,1) counts.
func (u *Universe) SliceSizes() []int {
	out := make([]int, len(u.sliceSizes))
	copy(out, u.sliceSizes)
	return out
}

// SlabSizes returns a copy of the per-slab tetrahedron counts.
func (u *Universe) SlabSizes() []int {
	out := make([]int, len(u.slabSizes))
	copy(out, u.slabSizes)
	return out
}

// Strictness returns the degeneracy rejection level.
func (u *Universe) Strictness() int { return u.strictness }

// Rand exposes the universe's generator so a driver can share the one
// sequence instead of carrying a second seed.
func (u *Universe) Rand() *rand.Rand { return u.rng }

// PickTetra returns a uniformly random live tetrahedron.
func (u *Universe) PickTetra() TetraID { return u.tetrasAll.Pick() }

// PickTetra31 returns a uniformly random live (3,1) tetrahedron.
func (u *Universe) PickTetra31() TetraID { return u.tetras31.Pick() }

// PickVertex returns a uniformly random live vertex.
func (u *Universe) PickVertex() VertexID { return u.verticesAll.Pick() }

// EachTetra iterates live tetrahedra in arena slot order until fn returns
// false. No surgery may run during the traversal.
func (u *Universe) EachTetra(fn func(TetraID, *Tetra) bool) { u.tetras.Each(fn) }

// EachVertex iterates live vertices in arena slot order until fn returns
// false. No surgery may run during the traversal.
func (u *Universe) EachVertex(fn func(VertexID, *Vertex) bool) { u.vertices.Each(fn) }

// Tetras31 returns the live (3,1) tetrahedra in set order.
func (u *Universe) Tetras31() []TetraID { return u.tetras31.Members() }

// createVertex allocates a vertex and registers it in the candidate set.
// Arena exhaustion is fatal: surgery cannot be unwound halfway.
func (u *Universe) createVertex() VertexID {
	h, err := u.vertices.Allocate()
	if err != nil {
		panic(err)
	}
	u.verticesAll.Add(h)
	return h
}

func (u *Universe) destroyVertex(v VertexID) {
	u.verticesAll.Remove(v)
	u.vertices.Free(v)
}

// createTetra allocates a tetrahedron and registers it in the all-tetras
// set; the caller adds it to the (3,1) set once its kind is known.
func (u *Universe) createTetra() TetraID {
	h, err := u.tetras.Allocate()
	if err != nil {
		panic(err)
	}
	u.tetrasAll.Add(h)
	return h
}

func (u *Universe) destroyTetra(t TetraID) {
	if u.Tetra(t).Is31() {
		u.tetras31.Remove(t)
	}
	u.tetrasAll.Remove(t)
	u.tetras.Free(t)
}
