package mesh

// Expand subdivides the base triangle of a (3,1) tetrahedron: a new vertex
// of coordination 6 is dropped into the base, replacing t and its vertical
// (1,3) partner with three (3,1)/(1,3) pairs. Returns false, leaving the
// mesh untouched, if t is not a (3,1) tetrahedron or its vertical partner
// is not a (1,3).
func (u *Universe) Expand(t TetraID) bool {
	tt := u.Tetra(t)
	if !tt.Is31() {
		return false
	}
	tv := tt.nbr[3]
	if !u.Tetra(tv).Is13() {
		return false
	}

	time := tt.time
	v0, v1, v2, vt := tt.vs[0], tt.vs[1], tt.vs[2], tt.vs[3]
	vb := u.Tetra(tv).vs[0]

	to0 := tt.Opposite(v0)
	to1 := tt.Opposite(v1)
	to2 := tt.Opposite(v2)
	tvo0 := u.Tetra(tv).Opposite(v0)
	tvo1 := u.Tetra(tv).Opposite(v1)
	tvo2 := u.Tetra(tv).Opposite(v2)

	vn := u.createVertex()
	nv := u.Vertex(vn)
	nv.time = time
	nv.scnum = 3
	nv.cnum = 6

	tn01 := u.createTetra()
	tn12 := u.createTetra()
	tn20 := u.createTetra()
	tvn01 := u.createTetra()
	tvn12 := u.createTetra()
	tvn20 := u.createTetra()
	u.tetras31.Add(tn01)
	u.tetras31.Add(tn12)
	u.tetras31.Add(tn20)

	u.setVertices(tn01, v0, v1, vn, vt)
	u.setVertices(tn12, v1, v2, vn, vt)
	u.setVertices(tn20, v2, v0, vn, vt)
	u.setVertices(tvn01, vb, v0, v1, vn)
	u.setVertices(tvn12, vb, v1, v2, vn)
	u.setVertices(tvn20, vb, v2, v0, vn)

	u.setNeighbors(tn01, tn12, tn20, to2, tvn01)
	u.setNeighbors(tn12, tn20, tn01, to0, tvn12)
	u.setNeighbors(tn20, tn01, tn12, to1, tvn20)
	u.setNeighbors(tvn01, tn01, tvn12, tvn20, tvo2)
	u.setNeighbors(tvn12, tn12, tvn20, tvn01, tvo0)
	u.setNeighbors(tvn20, tn20, tvn01, tvn12, tvo1)

	// Patch the outside ring before the old pair is destroyed: the far
	// vertex of each external tetrahedron survives the rewrite, its old
	// neighbor handle does not.
	u.exchangeOpposite(to0, u.vertexOpposite(t, v0), tn12)
	u.exchangeOpposite(to1, u.vertexOpposite(t, v1), tn20)
	u.exchangeOpposite(to2, u.vertexOpposite(t, v2), tn01)
	u.exchangeOpposite(tvo0, u.vertexOpposite(tv, v0), tvn12)
	u.exchangeOpposite(tvo1, u.vertexOpposite(tv, v1), tvn20)
	u.exchangeOpposite(tvo2, u.vertexOpposite(tv, v2), tvn01)

	u.Vertex(v0).cnum += 2
	u.Vertex(v1).cnum += 2
	u.Vertex(v2).cnum += 2
	u.Vertex(vt).cnum += 2
	u.Vertex(vb).cnum += 2
	u.Vertex(v0).scnum++
	u.Vertex(v1).scnum++
	u.Vertex(v2).scnum++

	u.slabSizes[time] += 2
	u.slabSizes[(time-1+u.nSlices)%u.nSlices] += 2
	u.sliceSizes[time] += 2

	u.Vertex(v0).tetra = tn01
	u.Vertex(v1).tetra = tn12
	u.Vertex(v2).tetra = tn20
	u.Vertex(vn).tetra = tn01

	u.destroyTetra(t)
	u.destroyTetra(tv)
	return true
}

// Contract is the inverse of Expand: it removes a vertex of total
// coordination 6 and spatial coordination 3, merging the three surrounding
// (3,1)/(1,3) pairs back into one. Returns false, leaving the mesh
// untouched, if the coordination numbers do not match, the surrounding
// star is not the expected 3+3 arrangement, or a strictness level forbids
// the resulting coordination drop on the outer triangle.
func (u *Universe) Contract(v VertexID) bool {
	vv := u.Vertex(v)
	if vv.cnum != 6 || vv.scnum != 3 {
		return false
	}

	t01 := vv.tetra
	a := u.Tetra(t01)
	if !a.Is31() {
		return false
	}
	vpos := a.basePosition(v)
	v0 := a.vs[(vpos+1)%3]
	v1 := a.vs[(vpos+2)%3]
	vt := a.vs[3]

	t12 := a.Opposite(v0)
	t20 := a.Opposite(v1)
	if !u.Tetra(t12).Is31() || !u.Tetra(t20).Is31() {
		return false
	}
	v2 := u.vertexOpposite(t01, v0)

	tv01 := a.nbr[3]
	tv12 := u.Tetra(t12).nbr[3]
	tv20 := u.Tetra(t20).nbr[3]
	if !u.Tetra(tv01).Is13() || !u.Tetra(tv12).Is13() || !u.Tetra(tv20).Is13() {
		return false
	}
	vb := u.Tetra(tv01).vs[0]
	if u.Tetra(tv12).vs[0] != vb || u.Tetra(tv20).vs[0] != vb {
		return false
	}

	// The merged tetrahedron needs three distinct outer vertices; a
	// degenerate link cannot be contracted at any strictness.
	if v0 == v1 || v1 == v2 || v2 == v0 {
		return false
	}
	if u.strictness >= StrictnessNoSelfPair &&
		(u.Vertex(v0).scnum == 2 || u.Vertex(v1).scnum == 2 || u.Vertex(v2).scnum == 2) {
		return false
	}
	if u.strictness >= StrictnessNoDoubleFold &&
		(u.Vertex(v0).scnum == 3 || u.Vertex(v1).scnum == 3 || u.Vertex(v2).scnum == 3) {
		return false
	}

	to01 := u.Tetra(t01).Opposite(v)
	to12 := u.Tetra(t12).Opposite(v)
	to20 := u.Tetra(t20).Opposite(v)
	tvo01 := u.Tetra(tv01).Opposite(v)
	tvo12 := u.Tetra(tv12).Opposite(v)
	tvo20 := u.Tetra(tv20).Opposite(v)

	w01 := u.vertexOpposite(t01, v)
	w12 := u.vertexOpposite(t12, v)
	w20 := u.vertexOpposite(t20, v)
	wv01 := u.vertexOpposite(tv01, v)
	wv12 := u.vertexOpposite(tv12, v)
	wv20 := u.vertexOpposite(tv20, v)

	tn := u.createTetra()
	tvn := u.createTetra()
	u.tetras31.Add(tn)

	u.setVertices(tn, v0, v1, v2, vt)
	u.setVertices(tvn, vb, v0, v1, v2)
	u.setNeighbors(tn, to12, to20, to01, tvn)
	u.setNeighbors(tvn, tn, tvo12, tvo20, tvo01)

	u.exchangeOpposite(to01, w01, tn)
	u.exchangeOpposite(to12, w12, tn)
	u.exchangeOpposite(to20, w20, tn)
	u.exchangeOpposite(tvo01, wv01, tvn)
	u.exchangeOpposite(tvo12, wv12, tvn)
	u.exchangeOpposite(tvo20, wv20, tvn)

	u.Vertex(v0).cnum -= 2
	u.Vertex(v1).cnum -= 2
	u.Vertex(v2).cnum -= 2
	u.Vertex(vt).cnum -= 2
	u.Vertex(vb).cnum -= 2
	u.Vertex(v0).scnum--
	u.Vertex(v1).scnum--
	u.Vertex(v2).scnum--

	time := vv.time
	u.slabSizes[time] -= 2
	u.slabSizes[(time-1+u.nSlices)%u.nSlices] -= 2
	u.sliceSizes[time] -= 2

	u.Vertex(v0).tetra = tn
	u.Vertex(v1).tetra = tn
	u.Vertex(v2).tetra = tn

	u.destroyTetra(t01)
	u.destroyTetra(t12)
	u.destroyTetra(t20)
	u.destroyTetra(tv01)
	u.destroyTetra(tv12)
	u.destroyTetra(tv20)
	u.destroyVertex(v)
	return true
}
