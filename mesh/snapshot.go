package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Snapshot layout, whitespace-separated integers:
//
//	ordered flag (0 or 1)
//	vertex count, then one layer time per vertex
//	vertex count again (checksum)
//	tetra count, then per tetra 4 vertex indices and 4 neighbor indices
//	tetra count again (checksum)
//
// Indices are zero-based positions in file order. An ordered snapshot
// already lists each neighbor in the slot opposite the matching vertex;
// an unordered one has the canonical order re-derived at load.

// Load reads a snapshot and builds a universe around it. All derived
// state (coordination numbers, volume tables, candidate sets, seeds) is
// computed here; call Reconstruct afterwards if the half-edge or triangle
// layers are needed. Malformed input yields an ErrBadSnapshot-wrapped
// error and no universe.
func Load(r io.Reader, opts ...Option) (*Universe, error) {
	u, err := newUniverse(opts...)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 64*1024), 64*1024)
	next := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
			}
			return 0, fmt.Errorf("%w: truncated input", ErrBadSnapshot)
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrBadSnapshot, sc.Text())
		}
		return n, nil
	}

	ordered, err := next()
	if err != nil {
		return nil, err
	}
	if ordered != 0 && ordered != 1 {
		return nil, fmt.Errorf("%w: ordered flag %d", ErrBadSnapshot, ordered)
	}

	n0, err := next()
	if err != nil {
		return nil, err
	}
	if n0 < 1 {
		return nil, fmt.Errorf("%w: vertex count %d", ErrBadSnapshot, n0)
	}
	if n0 > u.vertices.Capacity() {
		return nil, fmt.Errorf("%w: snapshot holds %d vertices, capacity %d",
			ErrBadCapacity, n0, u.vertices.Capacity())
	}
	vids := make([]VertexID, n0)
	maxTime := 0
	for i := range vids {
		t, err := next()
		if err != nil {
			return nil, err
		}
		if t < 0 {
			return nil, fmt.Errorf("%w: vertex %d at negative layer %d", ErrBadSnapshot, i, t)
		}
		if t > maxTime {
			maxTime = t
		}
		vids[i] = u.createVertex()
		u.Vertex(vids[i]).time = t
	}
	if check, err := next(); err != nil {
		return nil, err
	} else if check != n0 {
		return nil, fmt.Errorf("%w: vertex checksum %d, want %d", ErrBadSnapshot, check, n0)
	}
	u.nSlices = maxTime + 1
	u.slabSizes = make([]int, u.nSlices)
	u.sliceSizes = make([]int, u.nSlices)

	n3, err := next()
	if err != nil {
		return nil, err
	}
	if n3 < 2 {
		return nil, fmt.Errorf("%w: tetra count %d", ErrBadSnapshot, n3)
	}
	if n3 > u.tetras.Capacity() {
		return nil, fmt.Errorf("%w: snapshot holds %d tetras, capacity %d",
			ErrBadCapacity, n3, u.tetras.Capacity())
	}

	// Neighbor indices reference forward, so allocate every handle first.
	tids := make([]TetraID, n3)
	for i := range tids {
		tids[i] = u.createTetra()
	}
	rawNbr := make([][4]int, n3)
	for i := 0; i < n3; i++ {
		var vs [4]VertexID
		var times [4]int
		for j := 0; j < 4; j++ {
			idx, err := next()
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= n0 {
				return nil, fmt.Errorf("%w: tetra %d vertex index %d out of range", ErrBadSnapshot, i, idx)
			}
			vs[j] = vids[idx]
			times[j] = u.Vertex(vs[j]).time
		}
		kind, ok := kindOf(times[0], times[1], times[2], times[3])
		if !ok {
			return nil, fmt.Errorf("%w: tetra %d has layer pattern %v", ErrBadSnapshot, i, times)
		}
		lower, upper := times[0], times[3]
		if kind == KindOneThree {
			upper = times[1]
		}
		if upper != (lower+1)%u.nSlices {
			return nil, fmt.Errorf("%w: tetra %d spans layers %d and %d of %d",
				ErrBadSnapshot, i, lower, upper, u.nSlices)
		}
		tt := u.Tetra(tids[i])
		tt.vs = vs
		tt.kind = kind
		tt.time = lower
		for j := 0; j < 4; j++ {
			idx, err := next()
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= n3 {
				return nil, fmt.Errorf("%w: tetra %d neighbor index %d out of range", ErrBadSnapshot, i, idx)
			}
			rawNbr[i][j] = idx
		}
	}
	if check, err := next(); err != nil {
		return nil, err
	} else if check != n3 {
		return nil, fmt.Errorf("%w: tetra checksum %d, want %d", ErrBadSnapshot, check, n3)
	}

	for i := 0; i < n3; i++ {
		tt := u.Tetra(tids[i])
		if ordered == 1 {
			for j := 0; j < 4; j++ {
				tt.nbr[j] = tids[rawNbr[i][j]]
			}
			continue
		}
		// Canonicalize: each neighbor goes to the slot whose opposite
		// vertex is the one it does not contain.
		var assigned [4]bool
		for j := 0; j < 4; j++ {
			nt := u.Tetra(tids[rawNbr[i][j]])
			slot := -1
			for k := 0; k < 4; k++ {
				carries := true
				for m := 0; m < 4; m++ {
					if m != k && !nt.HasVertex(tt.vs[m]) {
						carries = false
						break
					}
				}
				if carries && !nt.HasVertex(tt.vs[k]) {
					slot = k
					break
				}
			}
			if slot == -1 || assigned[slot] {
				return nil, fmt.Errorf("%w: tetra %d neighbors cannot be canonically ordered",
					ErrBadSnapshot, i)
			}
			assigned[slot] = true
			tt.nbr[slot] = tids[rawNbr[i][j]]
		}
	}

	// Derived bookkeeping: volumes, coordination numbers, candidate sets,
	// vertex seeds. A vertex in no (3,1) base keeps a nil seed; Validate
	// flags it, Load tolerates it so pathological-but-countable snapshots
	// still open.
	for _, t := range tids {
		tt := u.Tetra(t)
		u.slabSizes[tt.time]++
		for _, v := range tt.vs {
			u.Vertex(v).cnum++
		}
		if tt.Is31() {
			u.tetras31.Add(t)
			u.sliceSizes[tt.time]++
			for j := 0; j < 3; j++ {
				u.Vertex(tt.vs[j]).scnum++
				u.Vertex(tt.vs[j]).tetra = t
			}
		}
	}
	return u, nil
}

// Export writes the universe as an ordered snapshot, one integer per
// line. Loading the output reproduces the same triangulation with handles
// renumbered to file order.
func (u *Universe) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	put := func(n int) {
		bw.WriteString(strconv.Itoa(n))
		bw.WriteByte('\n')
	}

	put(1)

	vidx := make(map[VertexID]int, u.vertices.Count())
	var vorder []VertexID
	u.vertices.Each(func(v VertexID, _ *Vertex) bool {
		vidx[v] = len(vorder)
		vorder = append(vorder, v)
		return true
	})
	put(len(vorder))
	for _, v := range vorder {
		put(u.Vertex(v).time)
	}
	put(len(vorder))

	tidx := make(map[TetraID]int, u.tetras.Count())
	var torder []TetraID
	u.tetras.Each(func(t TetraID, _ *Tetra) bool {
		tidx[t] = len(torder)
		torder = append(torder, t)
		return true
	})
	put(len(torder))
	for _, t := range torder {
		tt := u.Tetra(t)
		for _, v := range tt.vs {
			put(vidx[v])
		}
		for _, tn := range tt.nbr {
			put(tidx[tn])
		}
	}
	put(len(torder))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mesh: export: %w", err)
	}
	return nil
}
