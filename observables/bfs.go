package observables

import (
	"github.com/katalvlaran/cdt3d/mesh"
)

// bfsSphere returns the nodes at exactly radius steps from origin.
func bfsSphere[T comparable](origin T, radius int, next func(T) []T) []T {
	if radius <= 0 {
		return []T{origin}
	}
	visited := map[T]bool{origin: true}
	frontier := []T{origin}
	for depth := 0; depth < radius && len(frontier) > 0; depth++ {
		var grown []T
		for _, n := range frontier {
			for _, m := range next(n) {
				if !visited[m] {
					visited[m] = true
					grown = append(grown, m)
				}
			}
		}
		frontier = grown
	}
	return frontier
}

// bfsDistance returns the step count from a to b, or -1 when b is not
// reachable from a.
func bfsDistance[T comparable](a, b T, next func(T) []T) int {
	if a == b {
		return 0
	}
	visited := map[T]bool{a: true}
	frontier := []T{a}
	for depth := 1; len(frontier) > 0; depth++ {
		var grown []T
		for _, n := range frontier {
			for _, m := range next(n) {
				if m == b {
					return depth
				}
				if !visited[m] {
					visited[m] = true
					grown = append(grown, m)
				}
			}
		}
		frontier = grown
	}
	return -1
}

// bfsDistances returns the step counts from origin to every reachable
// target within maxDepth steps, in discovery order. Unreached targets
// contribute nothing.
func bfsDistances[T comparable](origin T, targets map[T]bool, maxDepth int, next func(T) []T) []int {
	var out []int
	if targets[origin] {
		out = append(out, 0)
	}
	visited := map[T]bool{origin: true}
	frontier := []T{origin}
	for depth := 1; depth <= maxDepth && len(frontier) > 0 && len(out) < len(targets); depth++ {
		var grown []T
		for _, n := range frontier {
			for _, m := range next(n) {
				if !visited[m] {
					visited[m] = true
					if targets[m] {
						out = append(out, depth)
					}
					grown = append(grown, m)
				}
			}
		}
		frontier = grown
	}
	return out
}

// Sphere returns the vertices at exactly radius edges from origin in the
// full vertex graph.
func Sphere(u *mesh.Universe, origin mesh.VertexID, radius int) []mesh.VertexID {
	return bfsSphere(origin, radius, func(v mesh.VertexID) []mesh.VertexID {
		return u.VertexNeighbors(v)
	})
}

// Sphere2D restricts the sphere to the spatial graph of origin's slice.
func Sphere2D(u *mesh.Universe, origin mesh.VertexID, radius int) []mesh.VertexID {
	t := u.Vertex(origin).Time()
	return bfsSphere(origin, radius, func(v mesh.VertexID) []mesh.VertexID {
		var out []mesh.VertexID
		for _, w := range u.VertexNeighbors(v) {
			if u.Vertex(w).Time() == t {
				out = append(out, w)
			}
		}
		return out
	})
}

// SphereDual returns the tetrahedra at exactly radius face crossings
// from origin.
func SphereDual(u *mesh.Universe, origin mesh.TetraID, radius int) []mesh.TetraID {
	return bfsSphere(origin, radius, func(t mesh.TetraID) []mesh.TetraID {
		nbr := u.Tetra(t).Neighbors()
		return nbr[:]
	})
}

// Sphere2DDual returns the slice triangles at exactly radius edge
// crossings from origin.
func Sphere2DDual(u *mesh.Universe, origin mesh.TriangleID, radius int) []mesh.TriangleID {
	return bfsSphere(origin, radius, func(t mesh.TriangleID) []mesh.TriangleID {
		nbr := u.Triangle(t).Neighbors()
		return nbr[:]
	})
}

// Distance returns the edge distance between two vertices in the full
// vertex graph, -1 when disconnected.
func Distance(u *mesh.Universe, a, b mesh.VertexID) int {
	return bfsDistance(a, b, func(v mesh.VertexID) []mesh.VertexID {
		return u.VertexNeighbors(v)
	})
}

// DistanceDual returns the face-crossing distance between two
// tetrahedra, -1 when disconnected.
func DistanceDual(u *mesh.Universe, a, b mesh.TetraID) int {
	return bfsDistance(a, b, func(t mesh.TetraID) []mesh.TetraID {
		nbr := u.Tetra(t).Neighbors()
		return nbr[:]
	})
}
