package mesh

// HalfEdge is one directed spatial edge, derived state produced by
// Reconstruct. The three half-edges of a spatial triangle form a cycle
// through next/prev; adj is the antiparallel twin bounding the neighboring
// triangle of the same slice.
type HalfEdge struct {
	vs       [2]VertexID
	adj      HalfEdgeID
	next     HalfEdgeID
	prev     HalfEdgeID
	tetra    TetraID
	triangle TriangleID
}

// Source returns the tail vertex.
func (h *HalfEdge) Source() VertexID { return h.vs[0] }

// Target returns the head vertex.
func (h *HalfEdge) Target() VertexID { return h.vs[1] }

// Adjacent returns the antiparallel twin half-edge.
func (h *HalfEdge) Adjacent() HalfEdgeID { return h.adj }

// Next returns the following half-edge of the triangle cycle.
func (h *HalfEdge) Next() HalfEdgeID { return h.next }

// Prev returns the preceding half-edge of the triangle cycle.
func (h *HalfEdge) Prev() HalfEdgeID { return h.prev }

// Tetra returns the (3,1) tetrahedron whose base carries this half-edge.
func (h *HalfEdge) Tetra() TetraID { return h.tetra }

// Triangle returns the spatial triangle this half-edge bounds.
func (h *HalfEdge) Triangle() TriangleID { return h.triangle }
