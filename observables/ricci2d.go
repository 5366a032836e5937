package observables

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"

	"github.com/katalvlaran/cdt3d/mesh"
)

// ErrNoOrigin indicates that no vertex qualifies as a measurement origin.
var ErrNoOrigin = errors.New("observables: no vertex at the origin slice volume")

// ricciMaxRadius is the largest sphere radius sampled per measurement.
const ricciMaxRadius = 10

// Ricci2d estimates the coarse Ricci curvature of the spatial slices
// through average sphere distances: for each radius it grows a sphere
// around a random origin, a second sphere around a random point of the
// first, and averages the pairwise slice distance between the two. On a
// flat geometry the average grows linearly with the radius; curvature
// shows up as the deviation from that line.
type Ricci2d struct {
	w           *Writer
	rng         *rand.Rand
	sliceVolume int
}

// NewRicci2d binds the measurement to a writer and a generator. A
// non-zero n2 restricts origin picks to vertices of slices holding
// exactly n2 (3,1) tetrahedra; 0 admits every vertex.
func NewRicci2d(w *Writer, rng *rand.Rand, n2 int) *Ricci2d {
	return &Ricci2d{w: w, rng: rng, sliceVolume: n2}
}

func (*Ricci2d) Name() string { return "ricci2d" }

// Measure appends one space-joined row of average sphere distances, one
// per radius from 1 through ricciMaxRadius, each around a fresh origin.
func (r *Ricci2d) Measure(u *mesh.Universe) error {
	fields := make([]string, 0, ricciMaxRadius)
	for radius := 1; radius <= ricciMaxRadius; radius++ {
		origin, err := r.pickOrigin(u)
		if err != nil {
			return err
		}
		avg := r.averageSphereDistance(u, origin, radius)
		fields = append(fields, strconv.FormatFloat(avg, 'g', -1, 64))
	}
	return r.w.Append(r.Name(), strings.Join(fields, " "))
}

func (r *Ricci2d) pickOrigin(u *mesh.Universe) (mesh.VertexID, error) {
	vs := u.Vertices()
	if r.sliceVolume > 0 {
		sizes := u.SliceSizes()
		var at []mesh.VertexID
		for _, v := range vs {
			if sizes[u.Vertex(v).Time()] == r.sliceVolume {
				at = append(at, v)
			}
		}
		vs = at
	}
	if len(vs) == 0 {
		var none mesh.VertexID
		return none, ErrNoOrigin
	}
	return vs[r.rng.Intn(len(vs))], nil
}

// averageSphereDistance grows two spheres of the given radius, one on
// origin and one on a random member of the first, then averages the
// slice distance from every vertex of the smaller sphere to every
// reachable vertex of the larger, normalized by the radius. An empty
// sphere yields 0.
func (r *Ricci2d) averageSphereDistance(u *mesh.Universe, origin mesh.VertexID, radius int) float64 {
	s1 := Sphere2D(u, origin, radius)
	if len(s1) == 0 {
		return 0
	}
	s2 := Sphere2D(u, s1[r.rng.Intn(len(s1))], radius)
	if len(s2) == 0 {
		return 0
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	targets := make(map[mesh.VertexID]bool, len(s2))
	for _, v := range s2 {
		targets[v] = true
	}
	slice := u.Vertex(origin).Time()
	next := func(v mesh.VertexID) []mesh.VertexID {
		var out []mesh.VertexID
		for _, w := range u.VertexNeighbors(v) {
			if u.Vertex(w).Time() == slice {
				out = append(out, w)
			}
		}
		return out
	}

	sum, count := 0, 0
	for _, v := range s1 {
		for _, d := range bfsDistances(v, targets, 3*radius+1, next) {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / (float64(radius) * float64(count))
}
