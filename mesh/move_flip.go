package mesh

// Flip performs the spatial edge flip: two (3,1) tetrahedra sharing a base
// edge, together with their vertical (1,3) partners, exchange that edge
// for the opposite diagonal of the base quadrilateral. Volumes and kind
// counts are unchanged; only adjacency and coordination move. Returns
// false, leaving the mesh untouched, when the pair is not two lateral
// (3,1) neighbors with adjacent vertical partners, when the far vertices
// coincide, when the outside tetrahedra already close up around the quad,
// or when a strictness level forbids the rewiring.
func (u *Universe) Flip(t012, t230 TetraID) bool {
	if t012 == t230 {
		return false
	}
	a := u.Tetra(t012)
	b := u.Tetra(t230)
	if !a.Is31() || !b.Is31() || !a.HasNeighbor(t230) {
		return false
	}
	tv012 := a.nbr[3]
	tv230 := b.nbr[3]
	if !u.Tetra(tv012).Is13() || !u.Tetra(tv230).Is13() {
		return false
	}
	if !u.Tetra(tv012).HasNeighbor(tv230) {
		return false
	}

	v1 := a.OppositeVertexOf(t230)
	v3 := b.OppositeVertexOf(t012)
	// The new diagonal runs v1-v3; coincident endpoints would degenerate
	// the pair into a fold, which is not a tetrahedron at any strictness.
	if v1 == v3 {
		return false
	}
	i := a.basePosition(v1)
	v2 := a.vs[(i+1)%3]
	v0 := a.vs[(i+2)%3]
	vt := a.vs[3]
	vb := u.Tetra(tv012).vs[0]

	if u.strictness >= StrictnessNoDoubleFold &&
		(u.Vertex(v0).scnum == 3 || u.Vertex(v2).scnum == 3) {
		return false
	}
	if u.strictness >= StrictnessSimplicial && u.linked(v1, v3) {
		return false
	}

	ta01 := a.Opposite(v2)
	ta12 := a.Opposite(v0)
	ta23 := b.Opposite(v0)
	ta30 := b.Opposite(v2)
	tva01 := u.Tetra(tv012).Opposite(v2)
	tva12 := u.Tetra(tv012).Opposite(v0)
	tva23 := u.Tetra(tv230).Opposite(v0)
	tva30 := u.Tetra(tv230).Opposite(v2)
	if ta01 == t230 || ta23 == t012 || tva01 == tv230 || tva23 == tv012 {
		return false
	}

	// Far vertices of the four externals that get rewired, captured before
	// the slots below are overwritten.
	w01 := u.vertexOpposite(t012, v2)
	w23 := u.vertexOpposite(t230, v0)
	wv01 := u.vertexOpposite(tv012, v2)
	wv23 := u.vertexOpposite(tv230, v0)

	// The four labels are reused in place: t230 becomes the tetrahedron on
	// the v0 side of the new diagonal, t012 the one on the v2 side, and the
	// vertical partners follow. Externals across unchanged faces keep
	// pointing at the right labels for free.
	tn013, tn123 := t230, t012
	tvn013, tvn123 := tv230, tv012

	u.setVertices(tn013, v0, v1, v3, vt)
	u.setVertices(tn123, v1, v2, v3, vt)
	u.setVertices(tvn013, vb, v0, v1, v3)
	u.setVertices(tvn123, vb, v1, v2, v3)

	u.setNeighbors(tn013, tn123, ta30, ta01, tvn013)
	u.setNeighbors(tn123, ta23, tn013, ta12, tvn123)
	u.setNeighbors(tvn013, tn013, tvn123, tva30, tva01)
	u.setNeighbors(tvn123, tn123, tva23, tvn013, tva12)

	u.exchangeOpposite(ta01, w01, tn013)
	u.exchangeOpposite(ta23, w23, tn123)
	u.exchangeOpposite(tva01, wv01, tvn013)
	u.exchangeOpposite(tva23, wv23, tvn123)

	u.Vertex(v0).cnum -= 2
	u.Vertex(v2).cnum -= 2
	u.Vertex(v1).cnum += 2
	u.Vertex(v3).cnum += 2
	u.Vertex(v0).scnum--
	u.Vertex(v2).scnum--
	u.Vertex(v1).scnum++
	u.Vertex(v3).scnum++

	// The reused labels no longer contain their old far vertices in the
	// base, so reseat the two seeds that can have gone stale.
	u.Vertex(v0).tetra = tn013
	u.Vertex(v2).tetra = tn123
	return true
}
