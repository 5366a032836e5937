package mesh

// ShiftUp replaces a lateral (3,1)/(2,2) pair by a (3,1) and two (2,2)
// tetrahedra, creating the timelike edge between the base vertex of t31
// facing away from t22 and the far top vertex of t22. The slab gains one
// tetrahedron; slice volumes are unchanged. Returns false, leaving the
// mesh untouched, if the pair is not a (3,1) with a lateral (2,2)
// neighbor, if the new edge already exists, or if any surrounding
// tetrahedron already holds the vertex it would gain.
func (u *Universe) ShiftUp(t31, t22 TetraID) bool {
	if t31 == t22 {
		return false
	}
	a := u.Tetra(t31)
	b := u.Tetra(t22)
	if !a.Is31() || !b.Is22() || !a.HasNeighbor(t22) {
		return false
	}

	v0 := a.OppositeVertexOf(t22)
	v1 := b.OppositeVertexOf(t31)
	i := a.basePosition(v0)
	v2 := a.vs[(i+1)%3]
	v4 := a.vs[(i+2)%3]
	v3 := a.vs[3]

	ta023 := a.Opposite(v4)
	ta034 := a.Opposite(v2)
	ta123 := b.Opposite(v4)
	ta124 := b.Opposite(v3)
	ta134 := b.Opposite(v2)
	if u.Tetra(ta023).HasVertex(v1) || u.Tetra(ta123).HasVertex(v0) ||
		u.Tetra(ta034).HasVertex(v1) || u.Tetra(ta134).HasVertex(v0) ||
		u.linked(v0, v1) {
		return false
	}

	wa023 := u.vertexOpposite(t31, v4)
	wa034 := u.vertexOpposite(t31, v2)
	wa123 := u.vertexOpposite(t22, v4)
	wa124 := u.vertexOpposite(t22, v3)
	wa134 := u.vertexOpposite(t22, v2)
	below := a.nbr[3]

	tn31 := u.createTetra()
	tn22l := u.createTetra()
	tn22r := u.createTetra()
	u.tetras31.Add(tn31)

	u.setVertices(tn31, v0, v2, v4, v1)
	u.setVertices(tn22l, v0, v2, v1, v3)
	u.setVertices(tn22r, v0, v4, v1, v3)

	u.setNeighbors(tn31, ta124, tn22r, tn22l, below)
	u.setNeighbors(tn22l, ta123, tn22r, ta023, tn31)
	u.setNeighbors(tn22r, ta134, tn22l, ta034, tn31)

	u.exchangeOpposite(below, u.Tetra(below).vs[0], tn31)
	u.exchangeOpposite(ta023, wa023, tn22l)
	u.exchangeOpposite(ta034, wa034, tn22r)
	u.exchangeOpposite(ta123, wa123, tn22l)
	u.exchangeOpposite(ta124, wa124, tn31)
	u.exchangeOpposite(ta134, wa134, tn22r)

	u.Vertex(v0).cnum += 2
	u.Vertex(v1).cnum += 2
	u.slabSizes[u.Tetra(tn31).time]++

	u.Vertex(v0).tetra = tn31
	u.Vertex(v2).tetra = tn31
	u.Vertex(v4).tetra = tn31

	u.destroyTetra(t31)
	u.destroyTetra(t22)
	return true
}

// ShiftDown is the mirror of ShiftUp one slab lower: it acts on a (1,3)
// tetrahedron and a lateral (2,2) neighbor, creating the timelike edge
// between the top vertex of t13 facing away from t22 and the far bottom
// vertex of t22. Returns false under the mirrored legality conditions.
func (u *Universe) ShiftDown(t13, t22 TetraID) bool {
	if t13 == t22 {
		return false
	}
	a := u.Tetra(t13)
	b := u.Tetra(t22)
	if !a.Is13() || !b.Is22() || !a.HasNeighbor(t22) {
		return false
	}

	v0 := a.OppositeVertexOf(t22)
	v1 := b.OppositeVertexOf(t13)
	above := a.nbr[0]
	if !u.Tetra(above).Is31() {
		return false
	}
	i := u.Tetra(above).basePosition(v0)
	v2 := u.Tetra(above).vs[(i+1)%3]
	v4 := u.Tetra(above).vs[(i+2)%3]
	v3 := a.vs[0]

	ta023 := a.Opposite(v4)
	ta034 := a.Opposite(v2)
	ta123 := b.Opposite(v4)
	ta124 := b.Opposite(v3)
	ta134 := b.Opposite(v2)
	if u.Tetra(ta023).HasVertex(v1) || u.Tetra(ta123).HasVertex(v0) ||
		u.Tetra(ta034).HasVertex(v1) || u.Tetra(ta134).HasVertex(v0) ||
		u.linked(v0, v1) {
		return false
	}

	wa023 := u.vertexOpposite(t13, v4)
	wa034 := u.vertexOpposite(t13, v2)
	wa123 := u.vertexOpposite(t22, v4)
	wa124 := u.vertexOpposite(t22, v3)
	wa134 := u.vertexOpposite(t22, v2)

	tn13 := u.createTetra()
	tn22l := u.createTetra()
	tn22r := u.createTetra()

	u.setVertices(tn13, v1, v0, v2, v4)
	u.setVertices(tn22l, v1, v3, v0, v2)
	u.setVertices(tn22r, v1, v3, v0, v4)

	u.setNeighbors(tn13, above, ta124, tn22r, tn22l)
	u.setNeighbors(tn22l, ta023, tn13, ta123, tn22r)
	u.setNeighbors(tn22r, ta034, tn13, ta134, tn22l)

	u.exchangeOpposite(above, u.Tetra(above).vs[3], tn13)
	u.exchangeOpposite(ta023, wa023, tn22l)
	u.exchangeOpposite(ta034, wa034, tn22r)
	u.exchangeOpposite(ta123, wa123, tn22l)
	u.exchangeOpposite(ta124, wa124, tn13)
	u.exchangeOpposite(ta134, wa134, tn22r)

	u.Vertex(v0).cnum += 2
	u.Vertex(v1).cnum += 2
	u.slabSizes[u.Tetra(tn13).time]++

	u.destroyTetra(t13)
	u.destroyTetra(t22)
	return true
}
