package mesh

// InverseShiftUp undoes ShiftUp: a (3,1) tetrahedron and the two (2,2)
// neighbors sharing its timelike apex edge collapse back into a lateral
// (3,1)/(2,2) pair, deleting that edge. The slab loses one tetrahedron.
// Returns false, leaving the mesh untouched, unless t31 is a (3,1) with
// t22l and t22r as lateral (2,2) neighbors that border each other, share
// the expected three vertices, and the outside tetrahedra do not already
// hold the vertices they would gain.
func (u *Universe) InverseShiftUp(t31, t22l, t22r TetraID) bool {
	if t31 == t22l || t31 == t22r || t22l == t22r {
		return false
	}
	a := u.Tetra(t31)
	l := u.Tetra(t22l)
	r := u.Tetra(t22r)
	if !a.Is31() || !l.Is22() || !r.Is22() {
		return false
	}
	if !a.HasNeighbor(t22l) || !a.HasNeighbor(t22r) || !l.HasNeighbor(t22r) {
		return false
	}

	v1 := a.vs[3]
	v3 := l.OppositeVertexOf(t31)
	v4 := a.OppositeVertexOf(t22l)
	i := a.basePosition(v4)
	v0 := a.vs[(i+1)%3]
	v2 := a.vs[(i+2)%3]
	// Orientation: t22r must sit across the base vertex on the other side
	// of the apex edge, and carry the same far top vertex as t22l.
	if a.OppositeVertexOf(t22r) != v2 || !r.HasVertex(v3) {
		return false
	}

	ta023 := l.Opposite(v1)
	ta034 := r.Opposite(v1)
	ta123 := l.Opposite(v0)
	ta124 := a.Opposite(v0)
	ta134 := r.Opposite(v0)
	if u.Tetra(ta023).HasVertex(v4) || u.Tetra(ta123).HasVertex(v4) ||
		u.Tetra(ta034).HasVertex(v2) || u.Tetra(ta124).HasVertex(v3) ||
		u.Tetra(ta134).HasVertex(v2) {
		return false
	}

	wa023 := u.vertexOpposite(t22l, v1)
	wa034 := u.vertexOpposite(t22r, v1)
	wa123 := u.vertexOpposite(t22l, v0)
	wa124 := u.vertexOpposite(t31, v0)
	wa134 := u.vertexOpposite(t22r, v0)
	below := a.nbr[3]

	nt31 := u.createTetra()
	nt22 := u.createTetra()
	u.tetras31.Add(nt31)

	u.setVertices(nt31, v0, v2, v4, v3)
	u.setVertices(nt22, v2, v4, v1, v3)
	u.setNeighbors(nt31, nt22, ta034, ta023, below)
	u.setNeighbors(nt22, ta134, ta123, nt31, ta124)

	u.exchangeOpposite(below, u.Tetra(below).vs[0], nt31)
	u.exchangeOpposite(ta023, wa023, nt31)
	u.exchangeOpposite(ta034, wa034, nt31)
	u.exchangeOpposite(ta123, wa123, nt22)
	u.exchangeOpposite(ta124, wa124, nt22)
	u.exchangeOpposite(ta134, wa134, nt22)

	u.Vertex(v0).cnum -= 2
	u.Vertex(v1).cnum -= 2
	u.slabSizes[u.Tetra(nt31).time]--

	u.Vertex(v0).tetra = nt31
	u.Vertex(v2).tetra = nt31
	u.Vertex(v4).tetra = nt31

	u.destroyTetra(t31)
	u.destroyTetra(t22l)
	u.destroyTetra(t22r)
	return true
}

// InverseShiftDown undoes ShiftDown: a (1,3) tetrahedron and the two (2,2)
// neighbors sharing its downward apex edge collapse into a lateral
// (1,3)/(2,2) pair, deleting that edge. Returns false under the mirrored
// legality conditions of InverseShiftUp.
func (u *Universe) InverseShiftDown(t13, t22l, t22r TetraID) bool {
	if t13 == t22l || t13 == t22r || t22l == t22r {
		return false
	}
	a := u.Tetra(t13)
	l := u.Tetra(t22l)
	r := u.Tetra(t22r)
	if !a.Is13() || !l.Is22() || !r.Is22() {
		return false
	}
	if !a.HasNeighbor(t22l) || !a.HasNeighbor(t22r) || !l.HasNeighbor(t22r) {
		return false
	}

	v1 := a.vs[0]
	v3 := l.OppositeVertexOf(t13)
	v4 := a.OppositeVertexOf(t22l)
	above := a.nbr[0]
	if !u.Tetra(above).Is31() {
		return false
	}
	i := u.Tetra(above).basePosition(v4)
	v0 := u.Tetra(above).vs[(i+1)%3]
	v2 := u.Tetra(above).vs[(i+2)%3]
	if a.OppositeVertexOf(t22r) != v2 || !r.HasVertex(v3) {
		return false
	}

	ta023 := l.Opposite(v1)
	ta034 := r.Opposite(v1)
	ta123 := l.Opposite(v0)
	ta124 := a.Opposite(v0)
	ta134 := r.Opposite(v0)
	if u.Tetra(ta023).HasVertex(v4) || u.Tetra(ta123).HasVertex(v4) ||
		u.Tetra(ta034).HasVertex(v2) || u.Tetra(ta124).HasVertex(v3) ||
		u.Tetra(ta134).HasVertex(v2) {
		return false
	}

	wa023 := u.vertexOpposite(t22l, v1)
	wa034 := u.vertexOpposite(t22r, v1)
	wa123 := u.vertexOpposite(t22l, v0)
	wa124 := u.vertexOpposite(t13, v0)
	wa134 := u.vertexOpposite(t22r, v0)

	nt13 := u.createTetra()
	nt22 := u.createTetra()

	u.setVertices(nt13, v3, v0, v2, v4)
	u.setVertices(nt22, v1, v3, v2, v4)
	u.setNeighbors(nt13, above, nt22, ta034, ta023)
	u.setNeighbors(nt22, nt13, ta124, ta134, ta123)

	u.exchangeOpposite(above, u.Tetra(above).vs[3], nt13)
	u.exchangeOpposite(ta023, wa023, nt13)
	u.exchangeOpposite(ta034, wa034, nt13)
	u.exchangeOpposite(ta123, wa123, nt22)
	u.exchangeOpposite(ta124, wa124, nt22)
	u.exchangeOpposite(ta134, wa134, nt22)

	u.Vertex(v0).cnum -= 2
	u.Vertex(v1).cnum -= 2
	u.slabSizes[u.Tetra(nt13).time]--

	u.destroyTetra(t13)
	u.destroyTetra(t22l)
	u.destroyTetra(t22r)
	return true
}
