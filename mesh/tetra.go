package mesh

import (
	"fmt"

	"github.com/katalvlaran/cdt3d/arena"
)

// Tetra is one tetrahedron. Slot convention: the face-neighbor in nbr[i]
// is the tetrahedron across the face opposite vertex vs[i]. For a (3,1)
// kind, vs[0..2] is the base triangle on layer time and vs[3] the apex one
// layer up, so nbr[3] is the vertical (1,3) partner below the apex; for a
// (1,3) kind the mirror holds with nbr[0] pointing at the (3,1) partner.
// The hes slots are only meaningful on (3,1) tetrahedra after Reconstruct:
// hes[i] is the directed base edge vs[i] -> vs[(i+1)%3].
type Tetra struct {
	time int
	kind Kind
	// Fields use arena.Handle[...] directly rather than the VertexID /
	// TetraID / HalfEdgeID aliases: spelling the alias inside its own
	// recursive type trips go.dev/issue/50729 on pre-1.23 toolchains.
	vs   [4]arena.Handle[Vertex]
	nbr  [4]arena.Handle[Tetra]
	hes  [3]arena.Handle[HalfEdge]
}

// Kind returns the layer-split classification of the tetrahedron.
func (t *Tetra) Kind() Kind { return t.kind }

// Time returns the layer of the tetrahedron's lowest base: for (3,1) and
// (2,2) kinds the lower layer it touches, for (1,3) the layer of its
// bottom apex. Slab accounting keys on this value.
func (t *Tetra) Time() int { return t.time }

// Is31 reports kind (3,1).
func (t *Tetra) Is31() bool { return t.kind == KindThreeOne }

// Is13 reports kind (1,3).
func (t *Tetra) Is13() bool { return t.kind == KindOneThree }

// Is22 reports kind (2,2).
func (t *Tetra) Is22() bool { return t.kind == KindTwoTwo }

// Vertices returns the vertex slots in order.
func (t *Tetra) Vertices() [4]VertexID { return t.vs }

// Neighbors returns the face-neighbor slots in order.
func (t *Tetra) Neighbors() [4]TetraID { return t.nbr }

// HalfEdges returns the base edge cycle set by the last Reconstruct.
// Meaningful on (3,1) tetrahedra only.
func (t *Tetra) HalfEdges() [3]HalfEdgeID { return t.hes }

// HasVertex reports whether v is one of the tetrahedron's vertices.
func (t *Tetra) HasVertex(v VertexID) bool {
	return t.vs[0] == v || t.vs[1] == v || t.vs[2] == v || t.vs[3] == v
}

// HasNeighbor reports whether tn is one of the four face-neighbors.
func (t *Tetra) HasNeighbor(tn TetraID) bool {
	return t.nbr[0] == tn || t.nbr[1] == tn || t.nbr[2] == tn || t.nbr[3] == tn
}

// Opposite returns the neighbor across the face opposite vertex v.
// Panics if v is not a vertex of the tetrahedron.
func (t *Tetra) Opposite(v VertexID) TetraID {
	for i, w := range t.vs {
		if w == v {
			return t.nbr[i]
		}
	}
	panic(fmt.Sprintf("mesh: Opposite: vertex %v not in tetra", v))
}

// OppositeVertexOf returns the vertex whose opposite face is shared with
// neighbor tn. Panics if tn is not a neighbor.
func (t *Tetra) OppositeVertexOf(tn TetraID) VertexID {
	for i, w := range t.nbr {
		if w == tn {
			return t.vs[i]
		}
	}
	panic(fmt.Sprintf("mesh: OppositeVertexOf: tetra %v not a neighbor", tn))
}

// setVertices assigns the vertex slots of t, classifying the kind from the
// vertex layer times and recording the tetrahedron's slab time.
func (u *Universe) setVertices(t TetraID, v0, v1, v2, v3 VertexID) {
	tt := u.Tetra(t)
	tt.vs = [4]VertexID{v0, v1, v2, v3}
	t0 := u.Vertex(v0).time
	tt.kind = classifyKind(t0, u.Vertex(v1).time, u.Vertex(v2).time, u.Vertex(v3).time)
	tt.time = t0
}

// setNeighbors assigns all four face-neighbor slots of t.
func (u *Universe) setNeighbors(t TetraID, n0, n1, n2, n3 TetraID) {
	u.Tetra(t).nbr = [4]TetraID{n0, n1, n2, n3}
}

// exchangeOpposite redirects the neighbor slot of t opposite vertex v to
// tn. The vertex form is the only safe way to patch an outside tetrahedron
// during surgery: the old neighbor handle may already be freed, but the
// opposite vertex survives the rewrite. Panics if v is not in t.
func (u *Universe) exchangeOpposite(t TetraID, v VertexID, tn TetraID) {
	tt := u.Tetra(t)
	for i, w := range tt.vs {
		if w == v {
			tt.nbr[i] = tn
			return
		}
	}
	panic(fmt.Sprintf("mesh: exchangeOpposite: vertex %v not in tetra %v", v, t))
}

// vertexOpposite returns the vertex of the neighbor across from v in t:
// the one vertex of that neighbor not lying on the shared face.
func (u *Universe) vertexOpposite(t TetraID, v VertexID) VertexID {
	tt := u.Tetra(t)
	tn := u.Tetra(tt.Opposite(v))
	for _, w := range tn.vs {
		if w != v && !tt.HasVertex(w) {
			return w
		}
	}
	panic(fmt.Sprintf("mesh: vertexOpposite: neighbor of %v shares all vertices", t))
}

// basePosition returns the base slot (0..2) holding v. Panics if v is not
// a base vertex — callers have already established it must be.
func (t *Tetra) basePosition(v VertexID) int {
	for i := 0; i < 3; i++ {
		if t.vs[i] == v {
			return i
		}
	}
	panic(fmt.Sprintf("mesh: vertex %v not in base", v))
}

// halfEdgeTo returns the base half-edge of a (3,1) tetrahedron ending at
// vertex v. Panics if no base edge ends there.
func (u *Universe) halfEdgeTo(t TetraID, v VertexID) HalfEdgeID {
	tt := u.Tetra(t)
	for _, h := range tt.hes {
		if u.HalfEdge(h).vs[1] == v {
			return h
		}
	}
	panic(fmt.Sprintf("mesh: no half-edge of %v ends at %v", t, v))
}
