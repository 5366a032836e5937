package mesh_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cdt3d/mesh"
)

// productSnapshot builds the text snapshot of the product triangulation of
// a tetrahedron boundary with a periodic time circle: every slice is the
// 4-vertex, 4-triangle boundary sphere, and the prism over each triangle
// between consecutive slices is cut into a (3,1), a (2,2) and a (1,3)
// along the diagonals running from each quad's lowest-index vertex to the
// raised copy of its highest. That diagonal choice agrees across prisms
// sharing a quad, so every face is glued exactly twice.
//
// The snapshot is written with the ordered flag cleared and the neighbor
// lists rotated out of canonical order, exercising re-derivation at load.
func productSnapshot(t *testing.T, slices int) string {
	t.Helper()
	require.GreaterOrEqual(t, slices, 3)

	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	var tetras [][4]int
	for s := 0; s < slices; s++ {
		up := (s + 1) % slices
		for _, f := range faces {
			a, b, c := 4*s+f[0], 4*s+f[1], 4*s+f[2]
			a2, b2, c2 := 4*up+f[0], 4*up+f[1], 4*up+f[2]
			tetras = append(tetras,
				[4]int{a, b, c, c2},
				[4]int{a, b, b2, c2},
				[4]int{a, a2, b2, c2},
			)
		}
	}

	// Glue: every sorted vertex triple appears on exactly two tetrahedra.
	type side struct{ tetra, slot int }
	glue := map[[3]int][]side{}
	for ti, vs := range tetras {
		for slot := 0; slot < 4; slot++ {
			var f []int
			for j, v := range vs {
				if j != slot {
					f = append(f, v)
				}
			}
			sort.Ints(f)
			key := [3]int{f[0], f[1], f[2]}
			glue[key] = append(glue[key], side{ti, slot})
		}
	}
	nbr := make([][4]int, len(tetras))
	for key, sides := range glue {
		require.Len(t, sides, 2, "face %v", key)
		nbr[sides[0].tetra][sides[0].slot] = sides[1].tetra
		nbr[sides[1].tetra][sides[1].slot] = sides[0].tetra
	}

	var sb strings.Builder
	put := func(n int) { fmt.Fprintf(&sb, "%d\n", n) }
	put(0) // unordered
	put(4 * slices)
	for i := 0; i < 4*slices; i++ {
		put(i / 4)
	}
	put(4 * slices)
	put(len(tetras))
	for ti, vs := range tetras {
		for _, v := range vs {
			put(v)
		}
		for j := 0; j < 4; j++ {
			put(nbr[ti][(j+1)%4]) // rotate away from canonical order
		}
	}
	put(len(tetras))
	return sb.String()
}

// loadProduct loads the product triangulation with a fixed seed.
func loadProduct(t *testing.T, slices int) *mesh.Universe {
	t.Helper()
	u, err := mesh.Load(strings.NewReader(productSnapshot(t, slices)), mesh.WithSeed(7))
	require.NoError(t, err)
	return u
}

// pillowSnapshot builds the product over the two-triangle sphere: every
// slice is a pillow, two triangles glued along all three edges over the
// same 3 vertices, so each slice vertex starts at spatial coordination 2.
// Each of the two prisms per slab is cut into a (3,1), a (2,2) and a
// (1,3) as in productSnapshot. The doubled faces make the neighbor lists
// ambiguous to re-derive, so this snapshot is written in canonical slot
// order with the ordered flag set.
func pillowSnapshot(slices int) string {
	idx := func(s, k, j int) int { return 6*s + 3*k + j }

	var sb strings.Builder
	put := func(n int) { fmt.Fprintf(&sb, "%d\n", n) }
	put(1) // ordered
	put(3 * slices)
	for i := 0; i < 3*slices; i++ {
		put(i / 3)
	}
	put(3 * slices)
	put(6 * slices)
	for s := 0; s < slices; s++ {
		up := (s + 1) % slices
		down := (s - 1 + slices) % slices
		a, b, c := 3*s, 3*s+1, 3*s+2
		a2, b2, c2 := 3*up, 3*up+1, 3*up+2
		for k := 0; k < 2; k++ {
			o := 1 - k
			row := func(vs, nbr [4]int) {
				for _, v := range vs {
					put(v)
				}
				for _, n := range nbr {
					put(n)
				}
			}
			// (3,1): base abc, apex c2, the twin across both base slots.
			row([4]int{a, b, c, c2},
				[4]int{idx(s, o, 0), idx(s, o, 0), idx(s, k, 1), idx(down, k, 2)})
			// (2,2): edge ab below, edge b2c2 above.
			row([4]int{a, b, b2, c2},
				[4]int{idx(s, o, 1), idx(s, k, 2), idx(s, k, 0), idx(s, o, 1)})
			// (1,3): tip a below, base a2b2c2.
			row([4]int{a, a2, b2, c2},
				[4]int{idx(up, k, 0), idx(s, k, 1), idx(s, o, 2), idx(s, o, 2)})
		}
	}
	put(6 * slices)
	return sb.String()
}

// twoTetraSnapshot is the smallest loadable universe: one (3,1) and one
// (1,3) glued along every face, five vertices on two layers.
func twoTetraSnapshot() string {
	lines := []string{
		"1",             // ordered
		"5",             // vertices
		"0", "0", "1", "1", "1",
		"5",             // vertex checksum
		"2",             // tetras
		"2", "3", "4", "0", "1", "1", "1", "1",
		"1", "2", "3", "4", "0", "0", "0", "0",
		"2", // tetra checksum
	}
	return strings.Join(lines, "\n") + "\n"
}
