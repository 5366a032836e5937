package mesh

// Reconstruct rebuilds all derived adjacency from the tetrahedral gluing:
// vertex neighbor lists first, then the directed spatial edges, then the
// spatial triangles with their dual graph. Call it after surgery has
// settled and before reading VertexNeighbors, HalfEdges, Triangles or the
// slice observables; any subsequent surgery invalidates the result.
func (u *Universe) Reconstruct() {
	u.rebuildVertexAdjacency()
	u.rebuildHalfEdges()
	u.rebuildTriangles()
}

// Vertices returns the live vertices recorded by the last Reconstruct, in
// arena slot order.
func (u *Universe) Vertices() []VertexID { return u.vertexList }

// HalfEdges returns the directed spatial edges built by the last
// Reconstruct.
func (u *Universe) HalfEdges() []HalfEdgeID { return u.halfEdgeList }

// Triangles returns the spatial triangles built by the last Reconstruct.
func (u *Universe) Triangles() []TriangleID { return u.triangleList }

// VertexNeighbors returns the distinct vertices sharing an edge with v, as
// of the last Reconstruct. The returned slice is owned by the universe.
func (u *Universe) VertexNeighbors(v VertexID) []VertexID {
	return u.vertexNbr[v.Index()]
}

/// rebuildVertexAdjacency walks the star of every vertex: each tetrahedron
// containing v is reachable from the seed through face-neighbors that also
// contain v, and the union of their vertices minus v is the neighbor set.
func (u *Universe) rebuildVertexAdjacency() {
	u.vertexList = u.vertexList[:0]
	maxIdx := -1
	u.vertices.Each(func(id VertexID, _ *Vertex) bool {
		u.vertexList = append(u.vertexList, id)
		if id.Index() > maxIdx {
			maxIdx = id.Index()
		}
		return true
	})
	u.vertexNbr = make([][]VertexID, maxIdx+1)

	for _, v := range u.vertexList {
		seed := u.Vertex(v).tetra
		visited := map[TetraID]bool{seed: true}
		queue := []TetraID{seed}
		seen := map[VertexID]bool{}
		var nbr []VertexID
		for len(queue) > 0 {
			t := queue[0]
			queue = queue[1:]
			for _, w := range u.Tetra(t).vs {
				if w != v && !seen[w] {
					seen[w] = true
					nbr = append(nbr, w)
				}
			}
			for _, tn := range u.Tetra(t).nbr {
				if !visited[tn] && u.Tetra(tn).HasVertex(v) {
					visited[tn] = true
					queue = append(queue, tn)
				}
			}
		}
		u.vertexNbr[v.Index()] = nbr
	}
}

// rebuildHalfEdges recreates the three directed base edges of every (3,1)
// tetrahedron and pairs each with its antiparallel twin by walking the
// column of (2,2) tetrahedra around the shared spatial edge until the
// (3,1) on the far side is reached.
func (u *Universe) rebuildHalfEdges() {
	for _, h := range u.halfEdgeList {
		u.halfEdges.Free(h)
	}
	u.halfEdgeList = u.halfEdgeList[:0]

	t31s := u.tetras31.Members()
	for _, t := range t31s {
		tt := u.Tetra(t)
		var hs [3]HalfEdgeID
		for i := 0; i < 3; i++ {
			h, err := u.halfEdges.Allocate()
			if err != nil {
				panic(err)
			}
			he := u.HalfEdge(h)
			*he = HalfEdge{vs: [2]VertexID{tt.vs[i], tt.vs[(i+1)%3]}, tetra: t}
			hs[i] = h
			u.halfEdgeList = append(u.halfEdgeList, h)
		}
		for i := 0; i < 3; i++ {
			u.HalfEdge(hs[i]).next = hs[(i+1)%3]
			u.HalfEdge(hs[i]).prev = hs[(i+2)%3]
		}
		tt.hes = hs
	}

	for _, t := range t31s {
		tt := u.Tetra(t)
		for i := 0; i < 3; i++ {
			// The edge vs[i+1] -> vs[i+2] lies on the face opposite vs[i].
			// Pivot around it through the slab until a (3,1) reappears.
			tc := tt.Opposite(tt.vs[i])
			vcur := tt.vs[3]
			for u.Tetra(tc).Is22() {
				tcr := u.Tetra(tc)
				tn := tcr.Opposite(vcur)
				if tcr.vs[2] == vcur {
					vcur = tcr.vs[3]
				} else {
					vcur = tcr.vs[2]
				}
				tc = tn
			}
			if !u.Tetra(tc).Is31() {
				panic("mesh: edge column did not close on a (3,1) tetra")
			}
			hthis := tt.hes[(i+1)%3]
			hthat := u.halfEdgeTo(tc, tt.vs[(i+1)%3])
			u.HalfEdge(hthis).adj = hthat
			u.HalfEdge(hthat).adj = hthis
		}
	}
}

// rebuildTriangles materializes one spatial triangle per (3,1) base and
// links the dual graph of each slice through the half-edge twins.
func (u *Universe) rebuildTriangles() {
	for _, tr := range u.triangleList {
		u.triangles.Free(tr)
	}
	u.triangleList = u.triangleList[:0]

	for _, t := range u.tetras31.Members() {
		tt := u.Tetra(t)
		h, err := u.triangles.Allocate()
		if err != nil {
			panic(err)
		}
		tr := u.Triangle(h)
		*tr = Triangle{
			time: tt.time,
			vs:   [3]VertexID{tt.vs[0], tt.vs[1], tt.vs[2]},
			hes:  tt.hes,
		}
		for _, he := range tt.hes {
			u.HalfEdge(he).triangle = h
		}
		u.triangleList = append(u.triangleList, h)
	}

	for _, h := range u.triangleList {
		tr := u.Triangle(h)
		// hes[i] runs vs[i] -> vs[i+1], the edge opposite vs[i+2].
		for i := 0; i < 3; i++ {
			twin := u.HalfEdge(tr.hes[i]).adj
			tr.nbr[(i+2)%3] = u.HalfEdge(twin).triangle
		}
	}
}
