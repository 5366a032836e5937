package mesh_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cdt3d/mesh"
)

// coordinationSix returns the vertices with total coordination 6 and
// spatial coordination 3, the only candidates for Contract.
func coordinationSix(u *mesh.Universe) []mesh.VertexID {
	var out []mesh.VertexID
	u.EachVertex(func(id mesh.VertexID, v *mesh.Vertex) bool {
		if v.Coordination() == 6 && v.SpatialCoordination() == 3 {
			out = append(out, id)
		}
		return true
	})
	return out
}

// TestExpandContract_RoundTrip grows a base triangle and removes the new
// vertex again, checking counts, volume tables and full invariants at
// every step.
func TestExpandContract_RoundTrip(t *testing.T) {
	u := loadProduct(t, 3)
	require.Empty(t, coordinationSix(u), "pristine product mesh has no contractible vertex")

	target := u.Tetras31()[0]
	slice := u.Tetra(target).Time()
	require.True(t, u.Expand(target))
	require.NoError(t, u.Validate())

	assert.Equal(t, 13, u.VertexCount())
	assert.Equal(t, 40, u.TetraCount())
	assert.Equal(t, 14, u.Tetra31Count())
	assert.Equal(t, 6, u.SliceSizes()[slice])

	fresh := coordinationSix(u)
	require.Len(t, fresh, 1, "expansion introduces exactly one coordination-6 vertex")
	require.True(t, u.Contract(fresh[0]))
	require.NoError(t, u.Validate())

	assert.Equal(t, 12, u.VertexCount())
	assert.Equal(t, 36, u.TetraCount())
	assert.Equal(t, 12, u.Tetra31Count())
	assert.Equal(t, []int{12, 12, 12}, u.SlabSizes())
	assert.Equal(t, []int{4, 4, 4}, u.SliceSizes())
}

// TestExpand_RejectsWrongKinds: a (2,2) target is refused outright, and so
// is a (3,1) whose vertical slot holds another (3,1).
func TestExpand_RejectsWrongKinds(t *testing.T) {
	u := loadProduct(t, 3)
	u.EachTetra(func(id mesh.TetraID, tt *mesh.Tetra) bool {
		if !tt.Is31() {
			assert.False(t, u.Expand(id), "kind %v must be rejected", tt.Kind())
		}
		return true
	})
	assert.Equal(t, 36, u.TetraCount())

	// Two (3,1) tetrahedra glued to each other everywhere: each one's
	// vertical partner has the wrong kind, so expansion must refuse.
	lines := []string{
		"1", "5", "0", "0", "1", "1", "1", "5",
		"2",
		"2", "3", "4", "0", "1", "1", "1", "1",
		"2", "3", "4", "1", "0", "0", "0", "0",
		"2", "",
	}
	v, err := mesh.Load(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.Equal(t, 2, v.Tetra31Count())
	for _, id := range v.Tetras31() {
		assert.False(t, v.Expand(id))
	}
	assert.Equal(t, 2, v.TetraCount())
}

// TestContract_RejectsWrongCoordination refuses every pristine vertex.
func TestContract_RejectsWrongCoordination(t *testing.T) {
	u := loadProduct(t, 3)
	u.EachVertex(func(id mesh.VertexID, _ *mesh.Vertex) bool {
		assert.False(t, u.Contract(id))
		return true
	})
	assert.Equal(t, 12, u.VertexCount())
	require.NoError(t, u.Validate())
}

// TestFlip_AfterExpand: one expansion leaves the slice with lateral
// (3,1) pairs both around the new vertex and on the untouched apex
// triple; flipping one must keep every count and invariant intact.
func TestFlip_AfterExpand(t *testing.T) {
	u := loadProduct(t, 3)
	require.True(t, u.Expand(u.Tetras31()[0]))

	flipped := false
	for _, id := range u.Tetras31() {
		for _, tn := range lateral31Neighbors(u, id) {
			if u.Flip(id, tn) {
				flipped = true
				break
			}
		}
		if flipped {
			break
		}
	}
	require.True(t, flipped, "no eligible flip found")
	require.NoError(t, u.Validate())
	assert.Equal(t, 40, u.TetraCount())
	assert.Equal(t, 14, u.Tetra31Count())
	assert.Equal(t, 13, u.VertexCount())
}

func lateral31Neighbors(u *mesh.Universe, id mesh.TetraID) []mesh.TetraID {
	var out []mesh.TetraID
	nbr := u.Tetra(id).Neighbors()
	for i := 0; i < 3; i++ {
		if u.Tetra(nbr[i]).Is31() {
			out = append(out, nbr[i])
		}
	}
	return out
}

// tetra31With returns the unique (3,1) tetrahedron whose base holds all
// three given same-slice vertices.
func tetra31With(t *testing.T, u *mesh.Universe, a, b, c mesh.VertexID) mesh.TetraID {
	t.Helper()
	var found []mesh.TetraID
	for _, id := range u.Tetras31() {
		tt := u.Tetra(id)
		if tt.HasVertex(a) && tt.HasVertex(b) && tt.HasVertex(c) {
			found = append(found, id)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}

// TestShiftUp_RoundTrip finds one legal upward shift, checks the slab grew
// by one tetrahedron, then undoes it with the inverse shift.
func TestShiftUp_RoundTrip(t *testing.T) {
	u := loadProduct(t, 3)

	shifted := false
	for _, id := range u.Tetras31() {
		nbr := u.Tetra(id).Neighbors()
		for i := 0; i < 3 && !shifted; i++ {
			shifted = u.ShiftUp(id, nbr[i])
		}
		if shifted {
			break
		}
	}
	require.True(t, shifted, "no eligible upward shift found")
	require.NoError(t, u.Validate())
	assert.Equal(t, 37, u.TetraCount())
	assert.Equal(t, 12, u.Tetra31Count())
	assert.Equal(t, 12, u.VertexCount())

	inverted := false
	for _, id := range u.Tetras31() {
		nbr := u.Tetra(id).Neighbors()
		for i := 0; i < 3 && !inverted; i++ {
			for j := 0; j < 3 && !inverted; j++ {
				if i != j {
					inverted = u.InverseShiftUp(id, nbr[i], nbr[j])
				}
			}
		}
		if inverted {
			break
		}
	}
	require.True(t, inverted, "no eligible inverse shift found")
	require.NoError(t, u.Validate())
	assert.Equal(t, 36, u.TetraCount())
	assert.Equal(t, []int{12, 12, 12}, u.SlabSizes())
}

// TestShiftDown_RoundTrip mirrors TestShiftUp_RoundTrip one slab lower.
func TestShiftDown_RoundTrip(t *testing.T) {
	u := loadProduct(t, 3)

	var t13s []mesh.TetraID
	u.EachTetra(func(id mesh.TetraID, tt *mesh.Tetra) bool {
		if tt.Is13() {
			t13s = append(t13s, id)
		}
		return true
	})
	require.Len(t, t13s, 12)

	shifted := false
	for _, id := range t13s {
		nbr := u.Tetra(id).Neighbors()
		for i := 1; i < 4 && !shifted; i++ {
			shifted = u.ShiftDown(id, nbr[i])
		}
		if shifted {
			break
		}
	}
	require.True(t, shifted, "no eligible downward shift found")
	require.NoError(t, u.Validate())
	assert.Equal(t, 37, u.TetraCount())
	assert.Equal(t, 12, u.Tetra31Count())

	t13s = t13s[:0]
	u.EachTetra(func(id mesh.TetraID, tt *mesh.Tetra) bool {
		if tt.Is13() {
			t13s = append(t13s, id)
		}
		return true
	})
	inverted := false
	for _, id := range t13s {
		nbr := u.Tetra(id).Neighbors()
		for i := 1; i < 4 && !inverted; i++ {
			for j := 1; j < 4 && !inverted; j++ {
				if i != j {
					inverted = u.InverseShiftDown(id, nbr[i], nbr[j])
				}
			}
		}
		if inverted {
			break
		}
	}
	require.True(t, inverted, "no eligible inverse shift found")
	require.NoError(t, u.Validate())
	assert.Equal(t, 36, u.TetraCount())
	assert.Equal(t, []int{12, 12, 12}, u.SlabSizes())
}

// TestRejection_LeavesMeshUntouched compares byte-exact exports around a
// batch of refused operations.
func TestRejection_LeavesMeshUntouched(t *testing.T) {
	u := loadProduct(t, 3)
	var before bytes.Buffer
	require.NoError(t, u.Export(&before))

	t31 := u.Tetras31()[0]
	assert.False(t, u.Flip(t31, t31))
	assert.False(t, u.InverseShiftUp(t31, t31, t31))
	u.EachTetra(func(id mesh.TetraID, tt *mesh.Tetra) bool {
		if tt.Is22() {
			assert.False(t, u.Expand(id))
			assert.False(t, u.ShiftUp(id, t31))
		}
		return true
	})
	u.EachVertex(func(id mesh.VertexID, _ *mesh.Vertex) bool {
		assert.False(t, u.Contract(id))
		return true
	})

	var after bytes.Buffer
	require.NoError(t, u.Export(&after))
	assert.Equal(t, before.String(), after.String())
}

// TestStrictness_BlocksExistingEdge: after two expansions the slice keeps
// a lateral (3,1) pair whose shared base edge has both ends at spatial
// coordination 4, but whose far vertices are still joined by a surviving
// edge. Level 3 refuses to lay a second copy of that edge and leaves the
// mesh byte-identical; level 2 accepts the same flip.
func TestStrictness_BlocksExistingEdge(t *testing.T) {
	setup := func(strictness int) (*mesh.Universe, mesh.TetraID, mesh.TetraID) {
		u, err := mesh.Load(
			strings.NewReader(productSnapshot(t, 3)),
			mesh.WithSeed(7),
			mesh.WithStrictness(strictness),
		)
		require.NoError(t, err)

		var vs []mesh.VertexID
		u.EachVertex(func(id mesh.VertexID, _ *mesh.Vertex) bool {
			vs = append(vs, id)
			return true
		})
		require.True(t, u.Expand(tetra31With(t, u, vs[0], vs[1], vs[2])))
		require.True(t, u.Expand(tetra31With(t, u, vs[1], vs[2], vs[3])))

		p := tetra31With(t, u, vs[0], vs[1], vs[3])
		q := tetra31With(t, u, vs[0], vs[2], vs[3])
		require.True(t, u.Tetra(p).HasNeighbor(q))
		return u, p, q
	}

	u, p, q := setup(mesh.StrictnessSimplicial)
	var before bytes.Buffer
	require.NoError(t, u.Export(&before))
	assert.False(t, u.Flip(p, q))
	assert.False(t, u.Flip(q, p))
	var after bytes.Buffer
	require.NoError(t, u.Export(&after))
	assert.Equal(t, before.String(), after.String())

	u, p, q = setup(mesh.StrictnessNoDoubleFold)
	require.True(t, u.Flip(p, q))
	require.NoError(t, u.Validate())
}

// TestStrictness_BlocksPillowContraction: expanding one pillow (3,1)
// drops in a vertex whose three outer corners sit at spatial coordination
// 3. Removing it again is legal at levels 0 and 1 but would fold the
// corners back to coordination 2, which level 2 refuses without touching
// the mesh.
func TestStrictness_BlocksPillowContraction(t *testing.T) {
	contractible := func(strictness int) (*mesh.Universe, mesh.VertexID) {
		u, err := mesh.Load(
			strings.NewReader(pillowSnapshot(3)),
			mesh.WithSeed(7),
			mesh.WithStrictness(strictness),
		)
		require.NoError(t, err)
		require.True(t, u.Expand(u.Tetras31()[0]))

		fresh := coordinationSix(u)
		require.Len(t, fresh, 1)
		return u, fresh[0]
	}

	for _, level := range []int{mesh.StrictnessNone, mesh.StrictnessNoSelfPair} {
		u, v := contractible(level)
		require.True(t, u.Contract(v), "level %d", level)
		require.NoError(t, u.Validate())
		assert.Equal(t, 9, u.VertexCount())
		assert.Equal(t, 18, u.TetraCount())
	}

	u, v := contractible(mesh.StrictnessNoDoubleFold)
	var before bytes.Buffer
	require.NoError(t, u.Export(&before))
	assert.False(t, u.Contract(v))
	var after bytes.Buffer
	require.NoError(t, u.Export(&after))
	assert.Equal(t, before.String(), after.String())
}

// TestStrictness_BlocksDoubleFold: at level 2 a flip may not push a vertex
// to spatial coordination 2, and every vertex of the pristine mesh sits at
// exactly 3, so no flip is legal at all.
func TestStrictness_BlocksDoubleFold(t *testing.T) {
	u, err := mesh.Load(
		strings.NewReader(productSnapshot(t, 3)),
		mesh.WithSeed(7),
		mesh.WithStrictness(mesh.StrictnessNoDoubleFold),
	)
	require.NoError(t, err)
	require.True(t, u.Expand(u.Tetras31()[0]))

	for _, id := range u.Tetras31() {
		for _, tn := range lateral31Neighbors(u, id) {
			assert.False(t, u.Flip(id, tn))
		}
	}
	require.NoError(t, u.Validate())
}
