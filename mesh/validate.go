package mesh

import "fmt"

// Validate exhaustively audits the structural invariants: set/arena
// agreement, vertex distinctness and layer patterns, mutual face
// adjacency, kind constraints on the neighbor slots, seed validity,
// incremental coordination statistics against a from-scratch recount, the
// per-layer volume tables, and — when present — the derived half-edge and
// triangle structures. It returns the first violation found wrapped in
// ErrInvariant, or nil. Intended as a test and debugging oracle; it is
// never called on the hot path.
func (u *Universe) Validate() error {
	if n, m := u.tetrasAll.Size(), u.tetras.Count(); n != m {
		return fmt.Errorf("%w: tetra set has %d members, arena %d live", ErrInvariant, n, m)
	}
	if n, m := u.verticesAll.Size(), u.vertices.Count(); n != m {
		return fmt.Errorf("%w: vertex set has %d members, arena %d live", ErrInvariant, n, m)
	}

	n31 := 0
	var err error
	u.tetras.Each(func(t TetraID, tt *Tetra) bool {
		if tt.Is31() {
			n31++
		}
		err = u.validateTetra(t, tt)
		return err == nil
	})
	if err != nil {
		return err
	}
	if n31 != u.tetras31.Size() {
		return fmt.Errorf("%w: %d (3,1) tetras live, set holds %d", ErrInvariant, n31, u.tetras31.Size())
	}

	if err = u.validateVertices(); err != nil {
		return err
	}
	if err = u.validateVolumes(); err != nil {
		return err
	}
	return u.validateDerived()
}

func (u *Universe) validateTetra(t TetraID, tt *Tetra) error {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if tt.vs[i] == tt.vs[j] {
				return fmt.Errorf("%w: tetra %v repeats vertex %v", ErrInvariant, t, tt.vs[i])
			}
		}
	}

	lower := tt.time
	upper := (lower + 1) % u.nSlices
	wantTimes := [4]int{lower, lower, lower, upper}
	switch tt.kind {
	case KindOneThree:
		wantTimes = [4]int{lower, upper, upper, upper}
	case KindTwoTwo:
		wantTimes = [4]int{lower, lower, upper, upper}
	}
	for i, v := range tt.vs {
		if !u.vertices.Live(v) {
			return fmt.Errorf("%w: tetra %v references dead vertex slot %d", ErrInvariant, t, i)
		}
		if got := u.Vertex(v).time; got != wantTimes[i] {
			return fmt.Errorf("%w: tetra %v kind %v slot %d at layer %d, want %d",
				ErrInvariant, t, tt.kind, i, got, wantTimes[i])
		}
	}

	for i, tn := range tt.nbr {
		if tn == t {
			return fmt.Errorf("%w: tetra %v neighbors itself", ErrInvariant, t)
		}
		if !u.tetras.Live(tn) || !u.tetrasAll.Contains(tn) {
			return fmt.Errorf("%w: tetra %v slot %d references dead neighbor", ErrInvariant, t, i)
		}
		nt := u.Tetra(tn)
		if !nt.HasNeighbor(t) {
			return fmt.Errorf("%w: adjacency not mutual between %v and %v", ErrInvariant, t, tn)
		}
		shared := 0
		var far VertexID
		hasFar := false
		for _, w := range nt.vs {
			if tt.HasVertex(w) {
				shared++
			} else {
				far, hasFar = w, true
			}
		}
		if shared < 3 {
			return fmt.Errorf("%w: tetras %v and %v share only %d vertices", ErrInvariant, t, tn, shared)
		}
		for j, w := range tt.vs {
			if j != i && !nt.HasVertex(w) {
				return fmt.Errorf("%w: tetra %v slot %d face vertex %v missing from neighbor",
					ErrInvariant, t, i, w)
			}
		}
		// The neighbor must point back across the shared face, i.e. from
		// the slot opposite its one vertex not on that face.
		if hasFar && nt.Opposite(far) != t {
			return fmt.Errorf("%w: tetra %v is not opposite %v in neighbor %v", ErrInvariant, t, far, tn)
		}
	}

	switch tt.kind {
	case KindThreeOne:
		if !u.Tetra(tt.nbr[3]).Is13() {
			return fmt.Errorf("%w: (3,1) tetra %v vertical slot holds a %v",
				ErrInvariant, t, u.Tetra(tt.nbr[3]).kind)
		}
		for i := 0; i < 3; i++ {
			if u.Tetra(tt.nbr[i]).Is13() {
				return fmt.Errorf("%w: (3,1) tetra %v lateral slot %d holds a (1,3)", ErrInvariant, t, i)
			}
		}
	case KindOneThree:
		if !u.Tetra(tt.nbr[0]).Is31() {
			return fmt.Errorf("%w: (1,3) tetra %v vertical slot holds a %v",
				ErrInvariant, t, u.Tetra(tt.nbr[0]).kind)
		}
		for i := 1; i < 4; i++ {
			if u.Tetra(tt.nbr[i]).Is31() {
				return fmt.Errorf("%w: (1,3) tetra %v lateral slot %d holds a (3,1)", ErrInvariant, t, i)
			}
		}
	}
	return nil
}

func (u *Universe) validateVertices() error {
	cnum := map[VertexID]int{}
	scnum := map[VertexID]int{}
	u.tetras.Each(func(_ TetraID, tt *Tetra) bool {
		for _, v := range tt.vs {
			cnum[v]++
		}
		if tt.Is31() {
			for i := 0; i < 3; i++ {
				scnum[tt.vs[i]]++
			}
		}
		return true
	})

	var err error
	u.vertices.Each(func(v VertexID, vv *Vertex) bool {
		switch {
		case vv.time < 0 || vv.time >= u.nSlices:
			err = fmt.Errorf("%w: vertex %v at layer %d of %d", ErrInvariant, v, vv.time, u.nSlices)
		case !u.tetras.Live(vv.tetra) || !u.Tetra(vv.tetra).Is31():
			err = fmt.Errorf("%w: vertex %v seed is not a live (3,1) tetra", ErrInvariant, v)
		case u.Tetra(vv.tetra).vs[0] != v && u.Tetra(vv.tetra).vs[1] != v && u.Tetra(vv.tetra).vs[2] != v:
			err = fmt.Errorf("%w: vertex %v not in the base of its seed", ErrInvariant, v)
		case vv.cnum != cnum[v]:
			err = fmt.Errorf("%w: vertex %v coordination %d, recount %d", ErrInvariant, v, vv.cnum, cnum[v])
		case vv.scnum != scnum[v]:
			err = fmt.Errorf("%w: vertex %v spatial coordination %d, recount %d",
				ErrInvariant, v, vv.scnum, scnum[v])
		case u.strictness >= StrictnessNoDoubleFold && vv.scnum < 3:
			err = fmt.Errorf("%w: vertex %v spatial coordination %d under strictness %d",
				ErrInvariant, v, vv.scnum, u.strictness)
		}
		return err == nil
	})
	return err
}

func (u *Universe) validateVolumes() error {
	slabs := make([]int, u.nSlices)
	slices := make([]int, u.nSlices)
	u.tetras.Each(func(_ TetraID, tt *Tetra) bool {
		slabs[tt.time]++
		if tt.Is31() {
			slices[tt.time]++
		}
		return true
	})
	for i := 0; i < u.nSlices; i++ {
		if slabs[i] != u.slabSizes[i] {
			return fmt.Errorf("%w: slab %d size %d, recount %d", ErrInvariant, i, u.slabSizes[i], slabs[i])
		}
		if slices[i] != u.sliceSizes[i] {
			return fmt.Errorf("%w: slice %d size %d, recount %d", ErrInvariant, i, u.sliceSizes[i], slices[i])
		}
	}
	return nil
}

// validateDerived audits the half-edge and triangle layers when a
// Reconstruct has populated them.
func (u *Universe) validateDerived() error {
	for _, h := range u.halfEdgeList {
		he := u.HalfEdge(h)
		twin := u.HalfEdge(he.adj)
		if twin.adj != h {
			return fmt.Errorf("%w: half-edge %v twin link not mutual", ErrInvariant, h)
		}
		if twin.vs[0] != he.vs[1] || twin.vs[1] != he.vs[0] {
			return fmt.Errorf("%w: half-edge %v twin is not antiparallel", ErrInvariant, h)
		}
		if u.HalfEdge(he.next).prev != h || u.HalfEdge(he.prev).next != h {
			return fmt.Errorf("%w: half-edge %v cycle links broken", ErrInvariant, h)
		}
	}
	for _, trID := range u.triangleList {
		tr := u.Triangle(trID)
		for i, tn := range tr.nbr {
			nt := u.Triangle(tn)
			if nt.time != tr.time {
				return fmt.Errorf("%w: triangle %v neighbor %d crosses slices", ErrInvariant, trID, i)
			}
			mutual := false
			for _, back := range nt.nbr {
				if back == trID {
					mutual = true
					break
				}
			}
			if !mutual {
				return fmt.Errorf("%w: triangle adjacency not mutual between %v and %v",
					ErrInvariant, trID, tn)
			}
		}
	}
	return nil
}
