package mesh

// Vertex is a point of the triangulation. Its coordination statistics are
// maintained incrementally by the surgery operations; its seed tetrahedron
// is some (3,1) tetrahedron holding the vertex in its base, the anchor from
// which star walks start.
type Vertex struct {
	time  int
	scnum int // spatial coordination: (3,1) tetrahedra with this vertex in the base
	cnum  int // total coordination: tetrahedra containing this vertex
	tetra TetraID
}

// Time returns the vertex's layer index.
func (v *Vertex) Time() int { return v.time }

// Coordination returns the number of live tetrahedra containing the vertex.
func (v *Vertex) Coordination() int { return v.cnum }

// SpatialCoordination returns the number of (3,1) tetrahedra holding the
// vertex in their base triangle, which equals the number of spatial
// triangles incident to the vertex in its slice.
func (v *Vertex) SpatialCoordination() int { return v.scnum }

// Seed returns a (3,1) tetrahedron containing the vertex in its base.
func (v *Vertex) Seed() TetraID { return v.tetra }

// linked reports whether vertices a and b share an edge right now, by a
// breadth-first walk over the star of a: every tetrahedron containing a is
// reachable from the seed through face-neighbors that also contain a.
// Unlike VertexNeighbors this never relies on reconstruction state, so the
// surgery operations can use it mid-run.
func (u *Universe) linked(a, b VertexID) bool {
	if a == b {
		return false
	}
	seed := u.Vertex(a).tetra
	if u.Tetra(seed).HasVertex(b) {
		return true
	}
	visited := map[TetraID]bool{seed: true}
	queue := []TetraID{seed}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, tn := range u.Tetra(t).nbr {
			if visited[tn] || !u.Tetra(tn).HasVertex(a) {
				continue
			}
			if u.Tetra(tn).HasVertex(b) {
				return true
			}
			visited[tn] = true
			queue = append(queue, tn)
		}
	}
	return false
}
