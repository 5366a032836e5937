package observables

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/cdt3d/mesh"
)

// Coordination records the spatial coordination histogram: bin k counts
// the vertices with k spatial triangle fans. With a slice volume set it
// counts only the vertices of slices holding exactly that many (3,1)
// tetrahedra, so successive rows compare slices of equal area.
type Coordination struct {
	w           *Writer
	sliceVolume int
}

// NewCoordination binds the histogram to a writer, over all vertices.
func NewCoordination(w *Writer) *Coordination {
	return &Coordination{w: w}
}

// NewCoordinationAtVolume restricts the histogram to slices holding
// exactly n2 (3,1) tetrahedra.
func NewCoordinationAtVolume(w *Writer, n2 int) *Coordination {
	return &Coordination{w: w, sliceVolume: n2}
}

func (*Coordination) Name() string { return "coordination" }

// Measure appends the current histogram as a space-joined row.
func (c *Coordination) Measure(u *mesh.Universe) error {
	sizes := u.SliceSizes()
	hist := []int{}
	u.EachVertex(func(_ mesh.VertexID, v *mesh.Vertex) bool {
		if c.sliceVolume > 0 && sizes[v.Time()] != c.sliceVolume {
			return true
		}
		k := v.SpatialCoordination()
		for len(hist) <= k {
			hist = append(hist, 0)
		}
		hist[k]++
		return true
	})
	fields := make([]string, len(hist))
	for i, n := range hist {
		fields[i] = strconv.Itoa(n)
	}
	return c.w.Append(c.Name(), strings.Join(fields, " "))
}
