// Package path defines paths in graphs: identities at a vertex or non-empty
// sequences of edges. Paths are the morphisms of free categories, and the
// model packages build composition, membership and equations on top of them.
package path

import "fmt"

// Path is either the identity path at a vertex or a non-empty sequence of
// edges. The zero value is the identity path at the zero vertex.
type Path[V, E any] struct {
	vertex V
	edges  []E
}

// Empty returns the identity path at vertex v.
func Empty[V, E any](v V) Path[V, E] {
	return Path[V, E]{vertex: v}
}

// Single returns the path consisting of the one edge e.
func Single[V, E any](e E) Path[V, E] {
	return Path[V, E]{edges: []E{e}}
}

// Seq returns the path with the given edges in order. With no edges it
// returns the identity path at the zero vertex; callers that need a specific
// identity use Empty.
func Seq[V, E any](edges ...E) Path[V, E] {
	if len(edges) == 0 {
		return Path[V, E]{}
	}
	return Path[V, E]{edges: append([]E(nil), edges...)}
}

// IsEmpty reports whether p is an identity path.
func (p Path[V, E]) IsEmpty() bool {
	return len(p.edges) == 0
}

// Len returns the number of edges in p.
func (p Path[V, E]) Len() int {
	return len(p.edges)
}

// Vertex returns the vertex of an identity path. The second result is false
// when p has edges.
func (p Path[V, E]) Vertex() (V, bool) {
	if len(p.edges) > 0 {
		var zero V
		return zero, false
	}
	return p.vertex, true
}

// Edges returns a copy of the edges of p, nil for identity paths.
func (p Path[V, E]) Edges() []E {
	if len(p.edges) == 0 {
		return nil
	}
	return append([]E(nil), p.edges...)
}

// First returns the first edge of p. The second result is false for
// identity paths.
func (p Path[V, E]) First() (E, bool) {
	if len(p.edges) == 0 {
		var zero E
		return zero, false
	}
	return p.edges[0], true
}

// Last returns the last edge of p. The second result is false for identity
// paths.
func (p Path[V, E]) Last() (E, bool) {
	if len(p.edges) == 0 {
		var zero E
		return zero, false
	}
	return p.edges[len(p.edges)-1], true
}

// String formats identity paths as id(v) and sequences as [e1 e2 ...].
func (p Path[V, E]) String() string {
	if len(p.edges) == 0 {
		return fmt.Sprintf("id(%v)", p.vertex)
	}
	return fmt.Sprintf("%v", p.edges)
}

// Concat concatenates p and q without checking that they meet at a common
// vertex. An identity on either side is dropped.
func Concat[V, E any](p, q Path[V, E]) Path[V, E] {
	switch {
	case p.IsEmpty():
		return q
	case q.IsEmpty():
		return p
	}
	edges := make([]E, 0, len(p.edges)+len(q.edges))
	edges = append(edges, p.edges...)
	edges = append(edges, q.edges...)
	return Path[V, E]{edges: edges}
}

// Map applies fv to the vertex of an identity path and fe to every edge of
// a sequence.
func Map[V, E, W, F any](p Path[V, E], fv func(V) W, fe func(E) F) Path[W, F] {
	if p.IsEmpty() {
		return Path[W, F]{vertex: fv(p.vertex)}
	}
	edges := make([]F, len(p.edges))
	for i, e := range p.edges {
		edges[i] = fe(e)
	}
	return Path[W, F]{edges: edges}
}

// Flatten turns a path of paths into a path by concatenating the inner
// paths. Inner identities are dropped unless every inner path is an
// identity, in which case the first one is returned. No compatibility of
// endpoints is checked; see FlattenIn.
func Flatten[V, E any](pp Path[V, Path[V, E]]) Path[V, E] {
	if pp.IsEmpty() {
		return Path[V, E]{vertex: pp.vertex}
	}
	var edges []E
	for _, p := range pp.edges {
		edges = append(edges, p.edges...)
	}
	if len(edges) == 0 {
		return pp.edges[0]
	}
	return Path[V, E]{edges: edges}
}

// Equal reports whether two paths over comparable vertices and edges are
// the same path.
func Equal[V, E comparable](p, q Path[V, E]) bool {
	return EqualFunc(p, q,
		func(x, y V) bool { return x == y },
		func(e, f E) bool { return e == f })
}

// EqualFunc reports whether p and q are the same path, using eqV and eqE to
// compare vertices and edges.
func EqualFunc[V, E any](p, q Path[V, E], eqV func(V, V) bool, eqE func(E, E) bool) bool {
	if len(p.edges) != len(q.edges) {
		return false
	}
	if len(p.edges) == 0 {
		return eqV(p.vertex, q.vertex)
	}
	for i := range p.edges {
		if !eqE(p.edges[i], q.edges[i]) {
			return false
		}
	}
	return true
}
