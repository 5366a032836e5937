package mesh

import "github.com/katalvlaran/cdt3d/arena"

// Triangle is one spatial triangle of a slice, derived state produced by
// Reconstruct. There is exactly one per (3,1) tetrahedron: its base. Slot
// convention mirrors Tetra: nbr[i] is the triangle across the edge opposite
// vertex vs[i].
type Triangle struct {
	time int
	// Fields use arena.Handle[...] directly rather than the VertexID /
	// HalfEdgeID / TriangleID aliases: spelling the alias inside its own
	// recursive type trips go.dev/issue/50729 on pre-1.23 toolchains.
	vs   [3]arena.Handle[Vertex]
	hes  [3]arena.Handle[HalfEdge]
	nbr  [3]arena.Handle[Triangle]
}

// Time returns the slice the triangle lies in.
func (tr *Triangle) Time() int { return tr.time }

// Vertices returns the corner slots in order.
func (tr *Triangle) Vertices() [3]VertexID { return tr.vs }

// HalfEdges returns the boundary cycle: hes[i] runs vs[i] -> vs[(i+1)%3].
func (tr *Triangle) HalfEdges() [3]HalfEdgeID { return tr.hes }

// Neighbors returns the three edge-neighbors, nbr[i] opposite vs[i].
func (tr *Triangle) Neighbors() [3]TriangleID { return tr.nbr }

// HasVertex reports whether v is a corner of the triangle.
func (tr *Triangle) HasVertex(v VertexID) bool {
	return tr.vs[0] == v || tr.vs[1] == v || tr.vs[2] == v
}
