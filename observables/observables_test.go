package observables_test

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cdt3d/mesh"
	"github.com/katalvlaran/cdt3d/observables"
)

// productSnapshot builds the product triangulation of a tetrahedron
// boundary over a periodic time circle: 4 vertices per slice, 3
// tetrahedra per triangle prism.
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
	put(0)
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
			put(nbr[ti][j])
		}
	}
	put(len(tetras))
	return sb.String()
}

func loadProduct(t *testing.T) *mesh.Universe {
	t.Helper()
	u, err := mesh.Load(strings.NewReader(productSnapshot(t, 3)), mesh.WithSeed(7))
	require.NoError(t, err)
	u.Reconstruct()
	return u
}

func TestWriter_Append(t *testing.T) {
	_, err := observables.NewWriter(t.TempDir(), "")
	assert.ErrorIs(t, err, observables.ErrBadRunID)

	dir := t.TempDir()
	w, err := observables.NewWriter(dir, "r1")
	require.NoError(t, err)
	require.NoError(t, w.Append("probe", "1 2 3"))
	require.NoError(t, w.Append("probe", "4 5 6"))

	data, err := os.ReadFile(w.Path("probe"))
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n4 5 6\n", string(data))
}

func TestVolumeProfile(t *testing.T) {
	u := loadProduct(t)
	w, err := observables.NewWriter(t.TempDir(), "r1")
	require.NoError(t, err)

	p := observables.NewVolumeProfile(w)
	require.NoError(t, p.Measure(u))
	require.True(t, u.Expand(u.Tetras31()[0]))
	require.NoError(t, p.Measure(u))

	data, err := os.ReadFile(w.Path(p.Name()))
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "4 4 4", rows[0])
	// One slice gained two (3,1) tetrahedra.
	total := 0
	for _, f := range strings.Fields(rows[1]) {
		n := 0
		fmt.Sscanf(f, "%d", &n)
		total += n
	}
	assert.Equal(t, 14, total)
}

func TestCoordination(t *testing.T) {
	u := loadProduct(t)
	w, err := observables.NewWriter(t.TempDir(), "r1")
	require.NoError(t, err)

	c := observables.NewCoordination(w)
	require.NoError(t, c.Measure(u))

	data, err := os.ReadFile(w.Path(c.Name()))
	require.NoError(t, err)
	// All 12 vertices sit at spatial coordination 3.
	assert.Equal(t, "0 0 0 12", strings.TrimSpace(string(data)))
}

func TestCoordination_AtVolume(t *testing.T) {
	u := loadProduct(t)
	require.True(t, u.Expand(u.Tetras31()[0]))
	w, err := observables.NewWriter(t.TempDir(), "r1")
	require.NoError(t, err)

	// Only the expanded slice holds 6 (3,1) tetrahedra. Its five vertices:
	// the new one and one untouched corner at coordination 3, the base
	// triangle's corners raised to 4.
	c := observables.NewCoordinationAtVolume(w, 6)
	require.NoError(t, c.Measure(u))

	data, err := os.ReadFile(w.Path(c.Name()))
	require.NoError(t, err)
	assert.Equal(t, "0 0 0 2 3", strings.TrimSpace(string(data)))
}

// TestRicci2d: on the product mesh every slice is the complete graph on
// 4 vertices, so the radius-1 average is the same for any random picks:
// both spheres hold 3 vertices, two of them shared, giving pair
// distances summing to 7 over 9 pairs. Larger radii see empty spheres.
func TestRicci2d(t *testing.T) {
	u := loadProduct(t)
	w, err := observables.NewWriter(t.TempDir(), "r1")
	require.NoError(t, err)

	r := observables.NewRicci2d(w, rand.New(rand.NewSource(3)), 0)
	require.NoError(t, r.Measure(u))

	data, err := os.ReadFile(w.Path(r.Name()))
	require.NoError(t, err)
	fields := strings.Fields(strings.TrimSpace(string(data)))
	require.Len(t, fields, 10)

	first, err := strconv.ParseFloat(fields[0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/9.0, first, 1e-12)
	for _, f := range fields[1:] {
		assert.Equal(t, "0", f)
	}
}

func TestRicci2d_AtVolume(t *testing.T) {
	u := loadProduct(t)
	w, err := observables.NewWriter(t.TempDir(), "r1")
	require.NoError(t, err)

	// No slice holds 5 (3,1) tetrahedra, so there is no legal origin.
	r := observables.NewRicci2d(w, rand.New(rand.NewSource(3)), 5)
	assert.ErrorIs(t, r.Measure(u), observables.ErrNoOrigin)

	// Every slice holds 4, so the restriction admits all vertices.
	r = observables.NewRicci2d(w, rand.New(rand.NewSource(3)), 4)
	require.NoError(t, r.Measure(u))
}

func TestSphere_Vertex(t *testing.T) {
	u := loadProduct(t)
	v := u.Vertices()[0]

	assert.Equal(t, []mesh.VertexID{v}, observables.Sphere(u, v, 0))
	// With 3 slices every vertex sees all 4 vertices of the slices above
	// and below plus its 3 slice companions: the vertex graph is complete.
	assert.Len(t, observables.Sphere(u, v, 1), 11)
	assert.Empty(t, observables.Sphere(u, v, 2))

	// The slice graph is the complete graph on the 4 slice vertices.
	assert.Len(t, observables.Sphere2D(u, v, 1), 3)
	assert.Empty(t, observables.Sphere2D(u, v, 2))
}

func TestSphere_Dual(t *testing.T) {
	u := loadProduct(t)
	t0 := u.Tetras31()[0]

	first := observables.SphereDual(u, t0, 1)
	assert.Len(t, first, 4)
	for _, tn := range first {
		assert.NotEqual(t, t0, tn)
		d := observables.DistanceDual(u, t0, tn)
		assert.Equal(t, 1, d)
	}

	// Each slice has 4 triangles glued pairwise along all edges.
	tr := u.Triangles()[0]
	assert.Len(t, observables.Sphere2DDual(u, tr, 1), 3)
	assert.Empty(t, observables.Sphere2DDual(u, tr, 2))
}

func TestDistance(t *testing.T) {
	u := loadProduct(t)
	vs := u.Vertices()
	v := vs[0]

	assert.Equal(t, 0, observables.Distance(u, v, v))
	for _, w := range u.VertexNeighbors(v) {
		assert.Equal(t, 1, observables.Distance(u, v, w))
	}

	// Complete vertex graph: nothing sits farther than one step.
	far := 0
	for _, w := range vs {
		if w != v && observables.Distance(u, v, w) == 2 {
			far++
		}
	}
	assert.Equal(t, 0, far)
}
